package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wandernote/internal/handler"
)

func TestListCurrencies_200(t *testing.T) {
	rec := do(t, newHTTPHandler(handler.Services{}), http.MethodGet, "/api/currencies", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]handler.Currency](t, rec)
	require.NotEmpty(t, list)

	codes := make([]string, len(list))
	for i, c := range list {
		codes[i] = c.Code
	}
	assert.Contains(t, codes, "USD")
	assert.Contains(t, codes, "TWD")
	assert.Contains(t, codes, "JPY")
}

func TestConvertCurrency_200(t *testing.T) {
	rec := do(t, newHTTPHandler(handler.Services{}), http.MethodGet,
		"/api/currencies/convert?amount=100&from=eur&to=USD", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[handler.Conversion](t, rec)
	assert.Equal(t, "EUR", resp.From)
	assert.Equal(t, "USD", resp.To)
	assert.InDelta(t, 108, resp.Converted, 1e-9)
	assert.InDelta(t, 1.08, resp.Rate, 1e-9)
	assert.Equal(t, "$108.00", resp.Formatted)
}

func TestConvertCurrency_SameCode(t *testing.T) {
	rec := do(t, newHTTPHandler(handler.Services{}), http.MethodGet,
		"/api/currencies/convert?amount=1234.5&from=JPY&to=JPY", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[handler.Conversion](t, rec)
	assert.InDelta(t, 1234.5, resp.Converted, 1e-9)
	assert.InDelta(t, 1, resp.Rate, 1e-9)
	assert.Equal(t, "¥1,235", resp.Formatted)
}

func TestConvertCurrency_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
		code   string
	}{
		{"missing amount", "from=USD&to=EUR", http.StatusBadRequest, "bad_request"},
		{"non-numeric amount", "amount=ten&from=USD&to=EUR", http.StatusBadRequest, "bad_request"},
		{"missing to", "amount=1&from=USD", http.StatusBadRequest, "bad_request"},
		{"unsupported from", "amount=1&from=XYZ&to=USD", http.StatusUnprocessableEntity, "validation_error"},
		{"unsupported to", "amount=1&from=USD&to=XYZ", http.StatusUnprocessableEntity, "validation_error"},
		{"unsupported same code", "amount=10&from=XXX&to=XXX", http.StatusUnprocessableEntity, "validation_error"},
		{"NaN amount", "amount=NaN&from=USD&to=EUR", http.StatusBadRequest, "bad_request"},
		{"infinite amount", "amount=Inf&from=USD&to=USD", http.StatusBadRequest, "bad_request"},
		{"overflowing result", "amount=1e308&from=JPY&to=KRW", http.StatusUnprocessableEntity, "validation_error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, newHTTPHandler(handler.Services{}), http.MethodGet, "/api/currencies/convert?"+tc.query, nil)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, errorCode(t, rec))
		})
	}
}

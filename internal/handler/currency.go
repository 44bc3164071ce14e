package handler

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkordes/wandernote/internal/currency"
)

// Currency is one entry of GET /api/currencies.
type Currency struct {
	Code      string  `json:"code"`
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	RateToUSD float64 `json:"rate_to_usd"`
	Decimals  int     `json:"decimals"`
}

// Conversion is the body of GET /api/currencies/convert.
type Conversion struct {
	Amount    float64 `json:"amount"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Rate      float64 `json:"rate"`
	Converted float64 `json:"converted"`
	Formatted string  `json:"formatted"`
}

// ListCurrencies handles GET /api/currencies.
func (s *Server) ListCurrencies(w http.ResponseWriter, _ *http.Request) {
	infos := s.currencies.Supported()
	out := make([]Currency, len(infos))
	for i, c := range infos {
		out[i] = Currency{
			Code:      string(c.Code),
			Symbol:    c.Symbol,
			Name:      c.Name,
			RateToUSD: c.RateToUSD,
			Decimals:  c.Decimals,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// ConvertCurrency handles GET /api/currencies/convert?amount=&from=&to=.
// Unknown codes are rejected rather than converted at a guessed rate.
func (s *Server) ConvertCurrency(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	amount, err := strconv.ParseFloat(strings.TrimSpace(q.Get("amount")), 64)
	if err != nil || !isFinite(amount) {
		writeError(w, http.StatusBadRequest, badRequestBody("amount must be a number"))
		return
	}
	from, to := currency.ParseCode(q.Get("from")), currency.ParseCode(q.Get("to"))
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, badRequestBody("from and to are required"))
		return
	}
	for _, code := range []currency.Code{from, to} {
		if !s.currencies.IsSupported(code) {
			writeError(w, http.StatusUnprocessableEntity, requestBody("unsupported currency: "+string(code)))
			return
		}
	}

	converted, err := s.currencies.Convert(amount, from, to)
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	if !isFinite(converted) {
		writeError(w, http.StatusUnprocessableEntity, requestBody("converted amount is out of range"))
		return
	}
	rate, err := s.currencies.ExchangeRate(from, to)
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, Conversion{
		Amount:    amount,
		From:      string(from),
		To:        string(to),
		Rate:      rate,
		Converted: converted,
		Formatted: s.currencies.Format(converted, to),
	})
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

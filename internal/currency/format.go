package currency

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type formatOptions struct {
	decimals *int
	showCode bool
	lang     language.Tag
}

// FormatOption customizes Format.
type FormatOption func(*formatOptions)

// WithDecimals overrides the currency's default number of fraction digits.
// Negative values are treated as 0.
func WithDecimals(n int) FormatOption {
	return func(o *formatOptions) {
		if n < 0 {
			n = 0
		}
		o.decimals = &n
	}
}

// WithCode appends the currency code, e.g. "€10.00 EUR".
func WithCode() FormatOption {
	return func(o *formatOptions) { o.showCode = true }
}

// WithLanguage selects the locale used for digit grouping. Defaults to English.
func WithLanguage(tag language.Tag) FormatOption {
	return func(o *formatOptions) { o.lang = tag }
}

// Format renders amount with the currency's symbol and locale digit grouping,
// e.g. "NT$1,234.50" or "¥1,235". Codes missing from the table use the code
// itself as the symbol and two fraction digits.
//
// Rounding is half away from zero at the requested precision.
func (t *Table) Format(amount float64, code Code, opts ...FormatOption) string {
	o := formatOptions{lang: language.English}
	for _, opt := range opts {
		opt(&o)
	}

	symbol, decimals := string(code), 2
	if info, ok := t.infos[code]; ok {
		symbol, decimals = info.Symbol, info.Decimals
	}
	if o.decimals != nil {
		decimals = *o.decimals
	}

	value := amount
	if !math.IsNaN(amount) && !math.IsInf(amount, 0) {
		value = decimal.NewFromFloat(amount).Round(int32(decimals)).InexactFloat64()
	}

	p := message.NewPrinter(o.lang)
	out := symbol + p.Sprint(number.Decimal(value, number.Scale(decimals)))
	if o.showCode {
		out += " " + string(code)
	}
	return out
}

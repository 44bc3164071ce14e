// Package currency converts and formats monetary amounts between the fixed
// set of currencies WanderNote supports.
//
// Rates are expressed relative to USD (the reference unit) and never change
// while the process runs: a Table is built once and only read afterwards,
// so a single Table can be shared by any number of goroutines.
package currency

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a three-letter currency code such as "USD".
type Code string

const (
	USD Code = "USD"
	TWD Code = "TWD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	JPY Code = "JPY"
	CNY Code = "CNY"
	KRW Code = "KRW"
	THB Code = "THB"
	AUD Code = "AUD"
	CAD Code = "CAD"
)

// ErrUnsupportedCurrency is returned when a code is not present in the Table.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// ParseCode normalizes s (trimmed, upper-cased) into a Code.
// It does not check the code against any Table.
func ParseCode(s string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(s)))
}

// Info describes one supported currency.
type Info struct {
	Code   Code
	Symbol string
	Name   string
	// RateToUSD is the value of one unit of this currency in USD.
	RateToUSD float64
	// Decimals is the default number of fraction digits when formatting.
	Decimals int
}

var defaultInfos = []Info{
	{Code: USD, Symbol: "$", Name: "US Dollar", RateToUSD: 1, Decimals: 2},
	{Code: TWD, Symbol: "NT$", Name: "New Taiwan Dollar", RateToUSD: 0.031, Decimals: 2},
	{Code: EUR, Symbol: "€", Name: "Euro", RateToUSD: 1.08, Decimals: 2},
	{Code: GBP, Symbol: "£", Name: "British Pound", RateToUSD: 1.27, Decimals: 2},
	{Code: JPY, Symbol: "¥", Name: "Japanese Yen", RateToUSD: 0.0067, Decimals: 0},
	{Code: CNY, Symbol: "¥", Name: "Chinese Yuan", RateToUSD: 0.14, Decimals: 2},
	{Code: KRW, Symbol: "₩", Name: "Korean Won", RateToUSD: 0.00075, Decimals: 0},
	{Code: THB, Symbol: "฿", Name: "Thai Baht", RateToUSD: 0.028, Decimals: 2},
	{Code: AUD, Symbol: "A$", Name: "Australian Dollar", RateToUSD: 0.65, Decimals: 2},
	{Code: CAD, Symbol: "C$", Name: "Canadian Dollar", RateToUSD: 0.74, Decimals: 2},
}

var defaultTable = mustNewTable(defaultInfos)

// Default returns the built-in rate table.
func Default() *Table {
	return defaultTable
}

// Table is an immutable set of currencies and their USD rates.
type Table struct {
	order []Code
	infos map[Code]Info
}

// NewTable builds a Table from infos, preserving their order for Supported.
// Every rate must be positive and every code unique.
func NewTable(infos []Info) (*Table, error) {
	t := &Table{
		order: make([]Code, 0, len(infos)),
		infos: make(map[Code]Info, len(infos)),
	}
	for _, info := range infos {
		if info.Code == "" {
			return nil, errors.New("currency.NewTable: empty code")
		}
		if info.RateToUSD <= 0 {
			return nil, fmt.Errorf("currency.NewTable: %s: rate must be positive", info.Code)
		}
		if _, dup := t.infos[info.Code]; dup {
			return nil, fmt.Errorf("currency.NewTable: %s: duplicate code", info.Code)
		}
		t.order = append(t.order, info.Code)
		t.infos[info.Code] = info
	}
	return t, nil
}

func mustNewTable(infos []Info) *Table {
	t, err := NewTable(infos)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the Info for code.
func (t *Table) Lookup(code Code) (Info, bool) {
	info, ok := t.infos[code]
	return info, ok
}

// IsSupported reports whether code is in the table.
func (t *Table) IsSupported(code Code) bool {
	_, ok := t.infos[code]
	return ok
}

// Supported returns every currency in table order. The slice is a copy.
func (t *Table) Supported() []Info {
	out := make([]Info, len(t.order))
	for i, c := range t.order {
		out[i] = t.infos[c]
	}
	return out
}

// Convert converts amount from one currency to another through USD.
// Identical codes return amount unchanged, without a rate round trip.
// Returns ErrUnsupportedCurrency if either code is unknown.
func (t *Table) Convert(amount float64, from, to Code) (float64, error) {
	if from == to {
		return amount, nil
	}
	fromRate, toRate, err := t.rates(from, to)
	if err != nil {
		return 0, err
	}
	return amount * fromRate / toRate, nil
}

// ConvertFallback converts like Convert but treats unknown codes as having a
// rate of 1 (as if they were USD). ok is false when that fallback was applied
// to either side, so callers can surface the approximation.
func (t *Table) ConvertFallback(amount float64, from, to Code) (converted float64, ok bool) {
	if from == to {
		return amount, true
	}
	fromRate, fromOK := t.rateOrOne(from)
	toRate, toOK := t.rateOrOne(to)
	return amount * fromRate / toRate, fromOK && toOK
}

// ExchangeRate returns r such that an amount in from times r is the amount in to.
// Identical codes yield exactly 1.
func (t *Table) ExchangeRate(from, to Code) (float64, error) {
	if from == to {
		return 1, nil
	}
	fromRate, toRate, err := t.rates(from, to)
	if err != nil {
		return 0, err
	}
	return fromRate / toRate, nil
}

func (t *Table) rates(from, to Code) (float64, float64, error) {
	fromInfo, ok := t.infos[from]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, from)
	}
	toInfo, ok := t.infos[to]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, to)
	}
	return fromInfo.RateToUSD, toInfo.RateToUSD, nil
}

func (t *Table) rateOrOne(code Code) (float64, bool) {
	if info, ok := t.infos[code]; ok {
		return info.RateToUSD, true
	}
	return 1, false
}

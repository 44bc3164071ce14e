// Package budget aggregates a trip's expenses into its budget currency.
//
// Expenses may be recorded in any currency; every amount is converted into
// the budget currency before it is summed. Summing raw amounts across
// currencies is never done.
package budget

import (
	"cmp"
	"slices"
	"time"

	"github.com/pkordes/wandernote/internal/currency"
	"github.com/pkordes/wandernote/internal/domain"
)

// CategoryTotal is the converted spend in one category.
type CategoryTotal struct {
	Category domain.Category
	Total    float64
	Count    int
	// Share is Total as a percentage of all spending, 0 when nothing was spent.
	Share float64
}

// CurrencyTotal is the raw spend recorded in one currency.
type CurrencyTotal struct {
	Currency  currency.Code
	Total     float64 // in Currency
	Count     int
	Converted float64 // Total in the budget currency
}

// DailyTotal is the converted spend on one calendar day.
type DailyTotal struct {
	Date  time.Time
	Total float64
	Count int
}

// Summary is the budget view of a trip.
type Summary struct {
	Currency   currency.Code
	Budget     *float64
	TotalSpent float64
	// Remaining is Budget - TotalSpent, nil when no budget is set.
	Remaining *float64
	// PercentUsed is TotalSpent / Budget * 100, nil when no budget is set or
	// the budget is zero.
	PercentUsed *float64
	ByCategory  []CategoryTotal
	ByCurrency  []CurrencyTotal
	Daily       []DailyTotal
	// Unsupported lists currencies missing from the rate table. Their amounts
	// were converted at a rate of 1, so the totals are approximate.
	Unsupported []currency.Code
}

// OverBudget reports whether spending exceeds a set budget.
func (s Summary) OverBudget() bool {
	return s.Remaining != nil && *s.Remaining < 0
}

// converter converts into one target currency and remembers which source
// currencies needed the rate-1 fallback.
type converter struct {
	rates       *currency.Table
	to          currency.Code
	unsupported []currency.Code
}

func (c *converter) convert(e domain.Expense) float64 {
	v, ok := c.rates.ConvertFallback(e.Amount, e.Currency, c.to)
	if !ok {
		for _, code := range []currency.Code{e.Currency, c.to} {
			if !c.rates.IsSupported(code) && !slices.Contains(c.unsupported, code) {
				c.unsupported = append(c.unsupported, code)
			}
		}
	}
	return v
}

// TotalSpent converts every expense into budgetCurrency and sums them.
// An empty list totals 0.
func TotalSpent(expenses []domain.Expense, budgetCurrency currency.Code, rates *currency.Table) float64 {
	c := &converter{rates: rates, to: budgetCurrency}
	var total float64
	for _, e := range expenses {
		total += c.convert(e)
	}
	return total
}

// GroupByCategory converts and sums expenses per category, sorted by
// descending total. Ties keep domain.Categories order. Unrecognized
// categories count as domain.CategoryOther, so the totals always add up to
// TotalSpent.
func GroupByCategory(expenses []domain.Expense, budgetCurrency currency.Code, rates *currency.Table) []CategoryTotal {
	return groupByCategory(&converter{rates: rates, to: budgetCurrency}, expenses)
}

func groupByCategory(c *converter, expenses []domain.Expense) []CategoryTotal {
	totals := map[domain.Category]*CategoryTotal{}
	var grand float64
	for _, e := range expenses {
		cat := domain.ParseCategory(string(e.Category))
		ct, ok := totals[cat]
		if !ok {
			ct = &CategoryTotal{Category: cat}
			totals[cat] = ct
		}
		v := c.convert(e)
		ct.Total += v
		ct.Count++
		grand += v
	}

	out := make([]CategoryTotal, 0, len(totals))
	for _, cat := range domain.Categories {
		ct, ok := totals[cat]
		if !ok {
			continue
		}
		if grand > 0 {
			ct.Share = ct.Total / grand * 100
		}
		out = append(out, *ct)
	}
	slices.SortStableFunc(out, func(a, b CategoryTotal) int {
		return cmp.Compare(b.Total, a.Total)
	})
	return out
}

// Remaining returns budget - spent, or nil when budget is nil.
func Remaining(spent float64, budget *float64) *float64 {
	if budget == nil {
		return nil
	}
	r := *budget - spent
	return &r
}

// PercentUsed returns spent as a percentage of budget. It is nil when budget
// is nil or zero, so callers never see a non-finite value.
func PercentUsed(spent float64, budget *float64) *float64 {
	if budget == nil || *budget == 0 {
		return nil
	}
	p := spent / *budget * 100
	return &p
}

// Summarize builds the full budget view of trip from its expenses.
func Summarize(trip domain.Trip, expenses []domain.Expense, rates *currency.Table) Summary {
	c := &converter{rates: rates, to: trip.BudgetCurrency}

	s := Summary{
		Currency:   trip.BudgetCurrency,
		Budget:     trip.Budget,
		ByCategory: groupByCategory(c, expenses),
		ByCurrency: byCurrency(c, expenses),
		Daily:      daily(c, expenses),
	}
	for _, e := range expenses {
		s.TotalSpent += c.convert(e)
	}
	s.Remaining = Remaining(s.TotalSpent, trip.Budget)
	s.PercentUsed = PercentUsed(s.TotalSpent, trip.Budget)
	s.Unsupported = c.unsupported
	if s.Unsupported == nil {
		s.Unsupported = []currency.Code{}
	}
	return s
}

// byCurrency totals raw amounts per currency in order of first appearance.
func byCurrency(c *converter, expenses []domain.Expense) []CurrencyTotal {
	out := []CurrencyTotal{}
	index := map[currency.Code]int{}
	for _, e := range expenses {
		i, ok := index[e.Currency]
		if !ok {
			i = len(out)
			index[e.Currency] = i
			out = append(out, CurrencyTotal{Currency: e.Currency})
		}
		out[i].Total += e.Amount
		out[i].Count++
	}
	for i := range out {
		out[i].Converted = c.convert(domain.Expense{Amount: out[i].Total, Currency: out[i].Currency})
	}
	return out
}

// daily totals converted spend per calendar day, most recent first.
func daily(c *converter, expenses []domain.Expense) []DailyTotal {
	byDay := map[string]*DailyTotal{}
	for _, e := range expenses {
		day := domain.CalendarDate(e.Date)
		key := domain.DateKey(day)
		dt, ok := byDay[key]
		if !ok {
			dt = &DailyTotal{Date: day}
			byDay[key] = dt
		}
		dt.Total += c.convert(e)
		dt.Count++
	}

	out := make([]DailyTotal, 0, len(byDay))
	for _, dt := range byDay {
		out = append(out, *dt)
	}
	slices.SortFunc(out, func(a, b DailyTotal) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

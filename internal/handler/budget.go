package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/wandernote/internal/budget"
	"github.com/pkordes/wandernote/internal/currency"
	"github.com/pkordes/wandernote/internal/domain"
)

// BudgetSummary is the body of GET /api/trips/{tripId}/budget.
// Every amount is in Currency unless the field says otherwise.
type BudgetSummary struct {
	Currency    string          `json:"currency"`
	Budget      *float64        `json:"budget"`
	TotalSpent  float64         `json:"total_spent"`
	Remaining   *float64        `json:"remaining"`
	PercentUsed *float64        `json:"percent_used"`
	OverBudget  bool            `json:"over_budget"`
	Formatted   BudgetFormatted `json:"formatted"`
	ByCategory  []CategoryTotal `json:"by_category"`
	ByCurrency  []CurrencyTotal `json:"by_currency"`
	Daily       []DailyTotal    `json:"daily"`
	// Unsupported lists currencies converted at rate 1 because the rate
	// table does not know them.
	Unsupported []string `json:"unsupported_currencies"`
}

// BudgetFormatted holds display strings for the summary's headline amounts.
type BudgetFormatted struct {
	Budget     *string `json:"budget,omitempty"`
	TotalSpent string  `json:"total_spent"`
	Remaining  *string `json:"remaining,omitempty"`
}

// CategoryTotal is the converted spend in one category.
type CategoryTotal struct {
	Category domain.Category `json:"category"`
	Total    float64         `json:"total"`
	Count    int             `json:"count"`
	Share    float64         `json:"share"`
}

// CurrencyTotal is the raw spend recorded in one currency.
type CurrencyTotal struct {
	Currency  string  `json:"currency"`
	Total     float64 `json:"total"`
	Count     int     `json:"count"`
	Converted float64 `json:"converted"`
}

// DailyTotal is the converted spend on one day.
type DailyTotal struct {
	Date  openapi_types.Date `json:"date"`
	Total float64            `json:"total"`
	Count int                `json:"count"`
}

// GetBudget handles GET /api/trips/{tripId}/budget.
func (s *Server) GetBudget(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := userAndTrip(w, r)
	if !ok {
		return
	}
	sum, err := s.budgets.Summary(r.Context(), userID, tripID)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, s.budgetToResponse(sum))
}

func (s *Server) budgetToResponse(sum budget.Summary) BudgetSummary {
	resp := BudgetSummary{
		Currency:    string(sum.Currency),
		Budget:      sum.Budget,
		TotalSpent:  sum.TotalSpent,
		Remaining:   sum.Remaining,
		PercentUsed: sum.PercentUsed,
		OverBudget:  sum.OverBudget(),
		Formatted: BudgetFormatted{
			Budget:     s.formatOptional(sum.Budget, sum.Currency),
			TotalSpent: s.currencies.Format(sum.TotalSpent, sum.Currency),
			Remaining:  s.formatOptional(sum.Remaining, sum.Currency),
		},
		ByCategory:  make([]CategoryTotal, len(sum.ByCategory)),
		ByCurrency:  make([]CurrencyTotal, len(sum.ByCurrency)),
		Daily:       make([]DailyTotal, len(sum.Daily)),
		Unsupported: make([]string, len(sum.Unsupported)),
	}
	for i, c := range sum.ByCategory {
		resp.ByCategory[i] = CategoryTotal(c)
	}
	for i, c := range sum.ByCurrency {
		resp.ByCurrency[i] = CurrencyTotal{
			Currency:  string(c.Currency),
			Total:     c.Total,
			Count:     c.Count,
			Converted: c.Converted,
		}
	}
	for i, d := range sum.Daily {
		resp.Daily[i] = DailyTotal{Date: openapi_types.Date{Time: d.Date}, Total: d.Total, Count: d.Count}
	}
	for i, c := range sum.Unsupported {
		resp.Unsupported[i] = string(c)
	}
	return resp
}

func (s *Server) formatOptional(v *float64, code currency.Code) *string {
	if v == nil {
		return nil
	}
	f := s.currencies.Format(*v, code)
	return &f
}

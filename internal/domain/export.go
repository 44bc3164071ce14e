package domain

// ExpenseExportRow is a single row in a trip's expense export.
// It is a flat, denormalized view: one row per expense with the trip's budget
// currency and the amount converted into it alongside the original amount.
type ExpenseExportRow struct {
	TripName       string
	Date           string // "2006-01-02"
	Category       Category
	Description    string
	Amount         float64
	Currency       string
	BudgetCurrency string
	Converted      float64
	PaidBy         string
	Notes          string
}

package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/wandernote/internal/currency"
)

// Category classifies an expense. Unrecognized values fold into CategoryOther.
type Category string

const (
	CategoryTransport     Category = "transport"
	CategoryAccommodation Category = "accommodation"
	CategoryFood          Category = "food"
	CategoryActivities    Category = "activities"
	CategoryShopping      Category = "shopping"
	CategoryOther         Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryTransport,
	CategoryAccommodation,
	CategoryFood,
	CategoryActivities,
	CategoryShopping,
	CategoryOther,
}

// ParseCategory maps s to a known Category, falling back to CategoryOther.
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if string(c) == s {
			return c
		}
	}
	return CategoryOther
}

// Expense is a single amount spent during a trip, in its own currency.
type Expense struct {
	ID          uuid.UUID
	TripID      uuid.UUID
	Category    Category
	Description string
	Amount      float64
	Currency    currency.Code
	Date        time.Time
	PaidBy      string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ExpenseFilter narrows an expense listing. A nil Category lists all.
type ExpenseFilter struct {
	Category *Category
}

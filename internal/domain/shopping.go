package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShoppingListStatus represents the lifecycle state of a shopping list.
type ShoppingListStatus string

const (
	ListOpen      ShoppingListStatus = "open"
	ListCompleted ShoppingListStatus = "completed"
)

// ShoppingList is a purchase plan whose completion produces one EXPENSE
// transaction through the mutator.
type ShoppingList struct {
	ID        string
	OwnerID   string
	Name      string
	Status    ShoppingListStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShoppingItem is a line in a shopping list. ActualPrice is filled while
// shopping; EstimatedPrice is the planning figure.
type ShoppingItem struct {
	ID             string
	ListID         string
	Name           string
	Quantity       int
	EstimatedPrice decimal.Decimal
	ActualPrice    decimal.Decimal
	Checked        bool
}

// Total returns the purchase price of the item: actual price when set,
// estimated otherwise, times quantity. Unchecked items cost nothing.
func (i *ShoppingItem) Total() decimal.Decimal {
	if !i.Checked {
		return decimal.Zero
	}

	price := i.ActualPrice
	if price.IsZero() {
		price = i.EstimatedPrice
	}

	qty := i.Quantity
	if qty < 1 {
		qty = 1
	}

	return price.Mul(decimal.NewFromInt(int64(qty)))
}

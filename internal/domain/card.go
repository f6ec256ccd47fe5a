package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CardStatus represents the lifecycle state of a card.
type CardStatus string

const (
	CardActive  CardStatus = "active"
	CardBlocked CardStatus = "blocked"
)

// Card is a credit card whose current invoice is derived from its expense
// transactions. The invoice accumulates every card expense regardless of
// is_paid; paying the invoice is modeled as a transaction against the
// linked account, not as a write to the card.
type Card struct {
	ID              string
	OwnerID         string
	Name            string
	Limit           decimal.Decimal
	CurrentInvoice  decimal.Decimal
	ClosingDay      int
	DueDay          int
	LinkedAccountID string
	Status          CardStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AvailableLimit returns the limit minus the current invoice.
func (c *Card) AvailableLimit() decimal.Decimal {
	return c.Limit.Sub(c.CurrentInvoice)
}

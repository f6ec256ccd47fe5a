package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger row.
type TransactionType string

const (
	TypeIncome   TransactionType = "INCOME"
	TypeExpense  TransactionType = "EXPENSE"
	TypeTransfer TransactionType = "TRANSFER"
)

// Transaction is one ledger row. Installment purchases are stored as one
// row per installment; rows of the same purchase share
// OriginalTransactionID.
type Transaction struct {
	ID                    string
	OwnerID               string
	Description           string
	Amount                decimal.Decimal
	Date                  time.Time
	Type                  TransactionType
	Category              string
	AccountID             string
	CardID                string
	IsPaid                bool
	Installments          int
	InstallmentNumber     int
	OriginalTransactionID string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// BalanceImpact returns the signed effect of this row on its account
// balance. The same rule drives the mutator's deltas and reconciliation's
// replay; they must never diverge.
//
// A row has no account impact when it is unpaid, has no account, or is
// charged to a card (the card invoice absorbs it until the invoice is
// settled). Transfers net to zero at the aggregate level.
func (t *Transaction) BalanceImpact() decimal.Decimal {
	if !t.IsPaid || t.AccountID == "" || t.CardID != "" {
		return decimal.Zero
	}

	switch t.Type {
	case TypeIncome:
		return t.Amount
	case TypeExpense:
		return t.Amount.Neg()
	}

	return decimal.Zero
}

// InvoiceImpact returns the effect of this row on its card's open
// invoice. Card expenses post to the invoice when created, paid or not;
// settling the invoice is a separate account-level event.
func (t *Transaction) InvoiceImpact() decimal.Decimal {
	if t.CardID == "" || t.Type != TypeExpense {
		return decimal.Zero
	}

	return t.Amount
}

// InMonth reports whether the row is dated inside (year, month). The last
// instant of the month still counts as inside it.
func (t *Transaction) InMonth(year int, month time.Month) bool {
	return t.Date.Year() == year && t.Date.Month() == month
}

// AfterMonth reports whether the row is dated strictly after the end of
// (year, month).
func (t *Transaction) AfterMonth(year int, month time.Month) bool {
	return !t.Date.Before(MonthStart(year, month).AddDate(0, 1, 0))
}

// MonthStart returns midnight UTC on the first day of (year, month).
func MonthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// PreviousMonth returns the calendar month before (year, month).
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}

	return year, month - 1
}

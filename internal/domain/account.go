package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountInvestment AccountType = "investment"
	AccountCash       AccountType = "cash"
)

// Account holds a cached balance derived from its transaction history.
// The balance is only ever written by the transaction mutator (as atomic
// deltas) and by reconciliation (as a full replay).
type Account struct {
	ID        string
	OwnerID   string
	Name      string
	Type      AccountType
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidAccountType reports whether t is a known account type.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountChecking, AccountSavings, AccountInvestment, AccountCash:
		return true
	}

	return false
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings target funded through ordinary transactions.
type Goal struct {
	ID            string
	OwnerID       string
	Name          string
	CurrentAmount decimal.Decimal
	TargetAmount  decimal.Decimal
	Deadline      time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// GoalDepositType distinguishes deposits from withdrawals.
type GoalDepositType string

const (
	GoalDeposit    GoalDepositType = "DEPOSIT"
	GoalWithdrawal GoalDepositType = "WITHDRAWAL"
)

// GoalMovement records a deposit or withdrawal against a goal, linked to
// the ledger transaction the mutator created for it.
type GoalMovement struct {
	ID                   string
	GoalID               string
	Amount               decimal.Decimal
	Type                 GoalDepositType
	Date                 time.Time
	Description          string
	RelatedTransactionID string
}

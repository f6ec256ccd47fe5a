package domain

import "errors"

var (
	// Validation errors. All wrap ErrValidation so callers can match the
	// whole class with errors.Is.
	ErrValidation          = errors.New("validation failed")
	ErrEmptyDescription    = errors.New("description cannot be empty")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidInstallments = errors.New("installments must be at least 1")
	ErrInvalidType         = errors.New("unknown transaction type")
	ErrInvalidAccountType  = errors.New("unknown account type")

	// Not-found errors.
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrCardNotFound         = errors.New("card not found")
	ErrGoalNotFound         = errors.New("goal not found")
	ErrShoppingListNotFound = errors.New("shopping list not found")

	// ErrInconsistentState signals that a paid transaction references an
	// account or card that no longer exists. Callers are expected to run
	// reconciliation rather than absorb it.
	ErrInconsistentState = errors.New("ledger state is inconsistent")

	// Collaborator errors.
	ErrListAlreadyCompleted = errors.New("shopping list is already completed")
	ErrEmptyPurchase        = errors.New("no priced items in shopping list")
)

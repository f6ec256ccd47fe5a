package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxDescriptionLength = 255
	MaxInstallments      = 120
	MaxAmount            = "1000000000" // 1 billion, minor-unit sanity cap
)

// ValidateDescription validates a transaction description.
func ValidateDescription(description string) error {
	description = strings.TrimSpace(description)

	if description == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyDescription)
	}

	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrValidation, MaxDescriptionLength)
	}

	return nil
}

// ValidateAmount validates a monetary amount: positive, at most two decimal
// places (currency minor units), below the sanity cap.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidAmount)
	}

	if amount.Exponent() < -2 {
		return fmt.Errorf("%w: amount %s has sub-cent precision", ErrValidation, amount)
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: amount exceeds maximum of %s", ErrValidation, MaxAmount)
	}

	return nil
}

// ValidateInstallments validates an installment count.
func ValidateInstallments(installments int) error {
	if installments < 1 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidInstallments)
	}

	if installments > MaxInstallments {
		return fmt.Errorf("%w: installments exceed maximum of %d", ErrValidation, MaxInstallments)
	}

	return nil
}

// ValidateTransactionType validates a transaction type.
func ValidateTransactionType(t TransactionType) error {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return nil
	}

	return fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidType, t)
}

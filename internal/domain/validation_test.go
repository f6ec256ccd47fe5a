package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateDescription(t *testing.T) {
	t.Parallel()

	if err := ValidateDescription("Groceries"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := ValidateDescription("   "); !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got %v", err)
	}

	tooLong := strings.Repeat("a", MaxDescriptionLength+1)
	if err := ValidateDescription(tooLong); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	if err := ValidateAmount(decimal.RequireFromString("100.25")); err != nil {
		t.Fatalf("expected valid amount, got %v", err)
	}

	if err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}

	if err := ValidateAmount(decimal.RequireFromString("-5")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}

	if err := ValidateAmount(decimal.RequireFromString("1.999")); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for sub-cent precision, got %v", err)
	}

	huge := decimal.RequireFromString(MaxAmount).Add(decimal.NewFromInt(1))
	if err := ValidateAmount(huge); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for huge amount, got %v", err)
	}
}

func TestValidateInstallments(t *testing.T) {
	t.Parallel()

	if err := ValidateInstallments(1); err != nil {
		t.Fatalf("expected 1 installment to be valid, got %v", err)
	}

	if err := ValidateInstallments(12); err != nil {
		t.Fatalf("expected 12 installments to be valid, got %v", err)
	}

	if err := ValidateInstallments(0); !errors.Is(err, ErrInvalidInstallments) {
		t.Fatalf("expected ErrInvalidInstallments, got %v", err)
	}

	if err := ValidateInstallments(MaxInstallments + 1); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestValidateTransactionType(t *testing.T) {
	t.Parallel()

	for _, typ := range []TransactionType{TypeIncome, TypeExpense, TypeTransfer} {
		if err := ValidateTransactionType(typ); err != nil {
			t.Fatalf("expected %s to be valid, got %v", typ, err)
		}
	}

	if err := ValidateTransactionType("REFUND"); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestScopeContains(t *testing.T) {
	t.Parallel()

	personal := PersonalScope("user-1")
	if !personal.Contains("user-1") || personal.Contains("user-2") {
		t.Fatal("personal scope should contain only the acting user")
	}

	shared := SharedScope([]string{"user-1", "user-2"})
	if !shared.Contains("user-1") || !shared.Contains("user-2") {
		t.Fatal("shared scope should contain every member")
	}
	if shared.Contains("user-3") {
		t.Fatal("shared scope should not contain non-members")
	}
}

func TestShoppingItemTotal(t *testing.T) {
	t.Parallel()

	t.Run("actual price wins over estimate", func(t *testing.T) {
		item := ShoppingItem{
			Quantity:       2,
			EstimatedPrice: decimal.RequireFromString("10.00"),
			ActualPrice:    decimal.RequireFromString("12.50"),
			Checked:        true,
		}
		if got := item.Total(); got.String() != "25" {
			t.Fatalf("Total() = %s, want 25", got)
		}
	})

	t.Run("estimate used when actual missing", func(t *testing.T) {
		item := ShoppingItem{Quantity: 3, EstimatedPrice: decimal.RequireFromString("4.00"), Checked: true}
		if got := item.Total(); got.String() != "12" {
			t.Fatalf("Total() = %s, want 12", got)
		}
	})

	t.Run("unchecked items cost nothing", func(t *testing.T) {
		item := ShoppingItem{Quantity: 1, ActualPrice: decimal.RequireFromString("9.99")}
		if !item.Total().IsZero() {
			t.Fatalf("Total() = %s, want 0", item.Total())
		}
	})
}

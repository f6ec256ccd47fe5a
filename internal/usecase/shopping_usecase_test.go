package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/usecase"
	"github.com/caixinha/caixinha/internal/usecase/mocks"
)

type shoppingFixture struct {
	txRepo       *mocks.MockTransactionRepository
	accountRepo  *mocks.MockAccountRepository
	cardRepo     *mocks.MockCardRepository
	shoppingRepo *mocks.MockShoppingRepository
	uc           *usecase.ShoppingUseCase
}

func newShoppingFixture() *shoppingFixture {
	f := &shoppingFixture{
		txRepo:       mocks.NewMockTransactionRepository(),
		accountRepo:  mocks.NewMockAccountRepository(),
		cardRepo:     mocks.NewMockCardRepository(),
		shoppingRepo: mocks.NewMockShoppingRepository(),
	}
	mutator := usecase.NewTransactionUseCase(mocks.NewMockTxManager(), f.txRepo, f.accountRepo, f.cardRepo, mocks.NewMockIDGenerator())
	f.uc = usecase.NewShoppingUseCase(mocks.NewMockTxManager(), f.shoppingRepo, mutator)

	f.accountRepo.Seed(&domain.Account{ID: "acc-1", OwnerID: "user-1", Balance: decimal.RequireFromString("500.00")})

	return f
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCompleteList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("prices checked items and records one expense", func(t *testing.T) {
		t.Parallel()
		f := newShoppingFixture()
		f.shoppingRepo.SeedList(
			&domain.ShoppingList{ID: "list-1", OwnerID: "user-1", Name: "Weekly groceries", Status: domain.ListOpen},
			&domain.ShoppingItem{ID: "i1", Name: "Milk", Quantity: 2, EstimatedPrice: price("4.50"), ActualPrice: price("4.80"), Checked: true},
			&domain.ShoppingItem{ID: "i2", Name: "Bread", Quantity: 1, EstimatedPrice: price("6.00"), Checked: true}, // falls back to estimate
			&domain.ShoppingItem{ID: "i3", Name: "Caviar", Quantity: 1, ActualPrice: price("90.00"), Checked: false}, // skipped
		)

		row, err := f.uc.CompleteList(ctx, usecase.CompleteListInput{
			ListID:    "list-1",
			OwnerID:   "user-1",
			AccountID: "acc-1",
		})
		if err != nil {
			t.Fatalf("CompleteList: %v", err)
		}

		// 2 * 4.80 + 6.00 = 15.60
		if !row.Amount.Equal(price("15.60")) {
			t.Fatalf("amount = %s, want 15.60", row.Amount)
		}
		if row.Type != domain.TypeExpense || !row.IsPaid {
			t.Fatalf("row is %s/paid=%v, want paid EXPENSE", row.Type, row.IsPaid)
		}
		if row.Category != "Groceries" {
			t.Fatalf("category = %q, want Groceries", row.Category)
		}
		if row.Description != "Purchase: Weekly groceries" {
			t.Fatalf("description = %q", row.Description)
		}
		if got := f.accountRepo.Balance("acc-1"); !got.Equal(price("484.40")) {
			t.Fatalf("balance = %s, want 484.40", got)
		}

		list, err := f.shoppingRepo.GetList(ctx, "list-1")
		if err != nil {
			t.Fatalf("GetList: %v", err)
		}
		if list.Status != domain.ListCompleted {
			t.Fatalf("status = %s, want completed", list.Status)
		}
	})

	t.Run("card purchase posts to the invoice instead", func(t *testing.T) {
		t.Parallel()
		f := newShoppingFixture()
		f.cardRepo.Seed(&domain.Card{ID: "card-1", OwnerID: "user-1", Status: domain.CardActive})
		f.shoppingRepo.SeedList(
			&domain.ShoppingList{ID: "list-1", OwnerID: "user-1", Name: "Pharmacy", Status: domain.ListOpen},
			&domain.ShoppingItem{ID: "i1", Name: "Aspirin", Quantity: 1, ActualPrice: price("12.00"), Checked: true},
		)

		if _, err := f.uc.CompleteList(ctx, usecase.CompleteListInput{
			ListID:  "list-1",
			OwnerID: "user-1",
			CardID:  "card-1",
		}); err != nil {
			t.Fatalf("CompleteList: %v", err)
		}
		if got := f.cardRepo.Invoice("card-1"); !got.Equal(price("12.00")) {
			t.Fatalf("invoice = %s, want 12.00", got)
		}
	})

	t.Run("already completed", func(t *testing.T) {
		t.Parallel()
		f := newShoppingFixture()
		f.shoppingRepo.SeedList(
			&domain.ShoppingList{ID: "list-1", OwnerID: "user-1", Name: "Done", Status: domain.ListCompleted},
			&domain.ShoppingItem{ID: "i1", Name: "Milk", Quantity: 1, ActualPrice: price("4.00"), Checked: true},
		)

		_, err := f.uc.CompleteList(ctx, usecase.CompleteListInput{ListID: "list-1", OwnerID: "user-1", AccountID: "acc-1"})
		if !errors.Is(err, domain.ErrListAlreadyCompleted) {
			t.Fatalf("err = %v, want ErrListAlreadyCompleted", err)
		}
	})

	t.Run("second completion fails and debits nothing", func(t *testing.T) {
		t.Parallel()
		f := newShoppingFixture()
		f.shoppingRepo.SeedList(
			&domain.ShoppingList{ID: "list-1", OwnerID: "user-1", Name: "Weekly groceries", Status: domain.ListOpen},
			&domain.ShoppingItem{ID: "i1", Name: "Milk", Quantity: 1, ActualPrice: price("20.00"), Checked: true},
		)
		input := usecase.CompleteListInput{ListID: "list-1", OwnerID: "user-1", AccountID: "acc-1"}

		if _, err := f.uc.CompleteList(ctx, input); err != nil {
			t.Fatalf("first CompleteList: %v", err)
		}

		// The repeated request observes the committed status through the
		// locked read and stops before creating a second expense.
		_, err := f.uc.CompleteList(ctx, input)
		if !errors.Is(err, domain.ErrListAlreadyCompleted) {
			t.Fatalf("err = %v, want ErrListAlreadyCompleted", err)
		}
		if got := f.accountRepo.Balance("acc-1"); !got.Equal(price("480.00")) {
			t.Fatalf("balance = %s, want a single debit to 480.00", got)
		}
	})

	t.Run("nothing checked", func(t *testing.T) {
		t.Parallel()
		f := newShoppingFixture()
		f.shoppingRepo.SeedList(
			&domain.ShoppingList{ID: "list-1", OwnerID: "user-1", Name: "Wishlist", Status: domain.ListOpen},
			&domain.ShoppingItem{ID: "i1", Name: "TV", Quantity: 1, ActualPrice: price("2000.00"), Checked: false},
		)

		_, err := f.uc.CompleteList(ctx, usecase.CompleteListInput{ListID: "list-1", OwnerID: "user-1", AccountID: "acc-1"})
		if !errors.Is(err, domain.ErrEmptyPurchase) {
			t.Fatalf("err = %v, want ErrEmptyPurchase", err)
		}
	})

	t.Run("unknown list", func(t *testing.T) {
		t.Parallel()
		f := newShoppingFixture()

		_, err := f.uc.CompleteList(ctx, usecase.CompleteListInput{ListID: "missing", OwnerID: "user-1", AccountID: "acc-1"})
		if !errors.Is(err, domain.ErrShoppingListNotFound) {
			t.Fatalf("err = %v, want ErrShoppingListNotFound", err)
		}
	})
}

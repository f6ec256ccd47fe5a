package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/infrastructure/metrics"
)

// ShoppingUseCase finalizes shopping lists. Completing a list prices the
// checked items and records the purchase as one EXPENSE through the
// mutator, preserving the single-writer invariant on balances and
// invoices.
type ShoppingUseCase struct {
	txManager    TxManager
	shoppingRepo ShoppingRepository
	transactions *TransactionUseCase
	metrics      *metrics.Metrics
}

// NewShoppingUseCase creates a new ShoppingUseCase.
func NewShoppingUseCase(txManager TxManager, shoppingRepo ShoppingRepository, transactions *TransactionUseCase) *ShoppingUseCase {
	return &ShoppingUseCase{
		txManager:    txManager,
		shoppingRepo: shoppingRepo,
		transactions: transactions,
	}
}

// WithMetrics attaches Prometheus metrics.
func (uc *ShoppingUseCase) WithMetrics(m *metrics.Metrics) *ShoppingUseCase {
	uc.metrics = m
	return uc
}

// CompleteListInput represents input for completing a shopping list.
type CompleteListInput struct {
	ListID    string
	OwnerID   string
	AccountID string
	CardID    string
	Category  string
}

// CompleteList sums the checked items (actual price falling back to the
// estimate, times quantity), creates one paid EXPENSE for the total, and
// marks the list completed.
func (uc *ShoppingUseCase) CompleteList(ctx context.Context, input CompleteListInput) (*domain.Transaction, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// The list row stays locked until the status flip commits, so of two
	// concurrent completions the second blocks here and then sees the
	// completed status instead of debiting the account again.
	list, err := uc.shoppingRepo.GetListForUpdate(ctx, tx, input.ListID)
	if err != nil {
		return nil, err
	}

	if list.Status == domain.ListCompleted {
		return nil, fmt.Errorf("%w: %s", domain.ErrListAlreadyCompleted, list.ID)
	}

	items, err := uc.shoppingRepo.ListItemsByListIDs(ctx, []string{list.ID})
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total())
	}

	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyPurchase, list.ID)
	}

	category := input.Category
	if category == "" {
		category = "Groceries"
	}

	rows, err := uc.transactions.Create(ctx, CreateTransactionInput{
		OwnerID:     input.OwnerID,
		Description: fmt.Sprintf("Purchase: %s", list.Name),
		Amount:      total.Round(2),
		Date:        time.Now().UTC(),
		Type:        domain.TypeExpense,
		Category:    category,
		AccountID:   input.AccountID,
		CardID:      input.CardID,
		IsPaid:      true,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.shoppingRepo.SetListStatus(ctx, tx, list.ID, domain.ListCompleted, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ShoppingListsCompleted.Inc()
	}

	return rows[0], nil
}

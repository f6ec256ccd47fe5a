package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/infrastructure/metrics"
)

// TransactionUseCase is the single writer of transaction rows and the only
// trigger of account-balance and card-invoice deltas. Every collaborator
// that needs a transaction created (goal deposits, shopping-list
// completion) goes through Create.
type TransactionUseCase struct {
	txManager       TxManager
	transactionRepo TransactionRepository
	accountRepo     AccountRepository
	cardRepo        CardRepository
	idGen           IDGenerator
	metrics         *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TxManager,
	transactionRepo TransactionRepository,
	accountRepo AccountRepository,
	cardRepo CardRepository,
	idGen IDGenerator,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		cardRepo:        cardRepo,
		idGen:           idGen,
	}
}

// WithMetrics attaches Prometheus metrics. A nil receiver field is fine;
// every increment is guarded.
func (uc *TransactionUseCase) WithMetrics(m *metrics.Metrics) *TransactionUseCase {
	uc.metrics = m
	return uc
}

// CreateTransactionInput represents input for creating a transaction.
type CreateTransactionInput struct {
	OwnerID      string
	Description  string
	Amount       decimal.Decimal
	Date         time.Time
	Type         domain.TransactionType
	Category     string
	AccountID    string
	CardID       string
	IsPaid       bool
	Installments int
}

func (in *CreateTransactionInput) validate() error {
	if err := domain.ValidateDescription(in.Description); err != nil {
		return err
	}
	if err := domain.ValidateAmount(in.Amount); err != nil {
		return err
	}
	if err := domain.ValidateTransactionType(in.Type); err != nil {
		return err
	}
	if in.Installments == 0 {
		in.Installments = 1
	}

	return domain.ValidateInstallments(in.Installments)
}

// Create validates the input, expands installment purchases into one row
// per installment, persists the rows, and applies the resulting balance
// and invoice deltas. Rows and deltas commit as one storage transaction.
func (uc *TransactionUseCase) Create(ctx context.Context, input CreateTransactionInput) ([]*domain.Transaction, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rows := uc.expandInstallments(input, now)

	// Side effects are computed over all generated rows through the same
	// impact rule reconciliation replays.
	balanceDelta := decimal.Zero
	invoiceDelta := decimal.Zero
	for _, row := range rows {
		balanceDelta = balanceDelta.Add(row.BalanceImpact())
		invoiceDelta = invoiceDelta.Add(row.InvoiceImpact())
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.transactionRepo.CreateBatch(ctx, tx, rows); err != nil {
		return nil, err
	}

	if !balanceDelta.IsZero() {
		if err := uc.applyBalanceDelta(ctx, tx, input.AccountID, balanceDelta, now); err != nil {
			return nil, err
		}
	}

	if !invoiceDelta.IsZero() {
		if err := uc.applyInvoiceDelta(ctx, tx, input.CardID, invoiceDelta, now); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsCreated.WithLabelValues(string(input.Type)).Inc()
		uc.metrics.InstallmentsExpanded.Observe(float64(len(rows)))
	}

	return rows, nil
}

// expandInstallments turns the input into persistable rows with
// pre-generated IDs. N-installment purchases become N rows dated one
// calendar month apart, all sharing the first row's ID as
// OriginalTransactionID. Each of the first N-1 rows carries
// round(total/N, 2); the final row absorbs the rounding remainder so the
// rows sum exactly to the original amount.
func (uc *TransactionUseCase) expandInstallments(input CreateTransactionInput, now time.Time) []*domain.Transaction {
	n := input.Installments
	if n <= 1 {
		return []*domain.Transaction{{
			ID:                uc.idGen.Generate(),
			OwnerID:           input.OwnerID,
			Description:       input.Description,
			Amount:            input.Amount,
			Date:              input.Date,
			Type:              input.Type,
			Category:          input.Category,
			AccountID:         input.AccountID,
			CardID:            input.CardID,
			IsPaid:            input.IsPaid,
			Installments:      1,
			InstallmentNumber: 1,
			CreatedAt:         now,
			UpdatedAt:         now,
		}}
	}

	ids := make([]string, n)
	for i := range ids {
		ids[i] = uc.idGen.Generate()
	}
	originID := ids[0]

	perRow := input.Amount.Div(decimal.NewFromInt(int64(n))).Round(2)

	rows := make([]*domain.Transaction, n)
	allocated := decimal.Zero
	for i := 0; i < n; i++ {
		amount := perRow
		if i == n-1 {
			amount = input.Amount.Sub(allocated)
		}
		allocated = allocated.Add(amount)

		rows[i] = &domain.Transaction{
			ID:                    ids[i],
			OwnerID:               input.OwnerID,
			Description:           fmt.Sprintf("%s (%d/%d)", input.Description, i+1, n),
			Amount:                amount,
			Date:                  input.Date.AddDate(0, i, 0),
			Type:                  input.Type,
			Category:              input.Category,
			AccountID:             input.AccountID,
			CardID:                input.CardID,
			IsPaid:                input.IsPaid,
			Installments:          n,
			InstallmentNumber:     i + 1,
			OriginalTransactionID: originID,
			CreatedAt:             now,
			UpdatedAt:             now,
		}
	}

	return rows
}

// UpdateTransactionCommand describes exactly which fields may change. Nil
// fields are left untouched; pointers to zero values clear the field.
type UpdateTransactionCommand struct {
	Description *string
	Amount      *decimal.Decimal
	Date        *time.Time
	Type        *domain.TransactionType
	Category    *string
	AccountID   *string
	CardID      *string
	IsPaid      *bool
}

// Validate checks every present field before any persistence is attempted.
func (c *UpdateTransactionCommand) Validate() error {
	if c.Description != nil {
		if err := domain.ValidateDescription(*c.Description); err != nil {
			return err
		}
	}
	if c.Amount != nil {
		if err := domain.ValidateAmount(*c.Amount); err != nil {
			return err
		}
	}
	if c.Type != nil {
		if err := domain.ValidateTransactionType(*c.Type); err != nil {
			return err
		}
	}

	return nil
}

func (c *UpdateTransactionCommand) applyTo(t *domain.Transaction) {
	if c.Description != nil {
		t.Description = *c.Description
	}
	if c.Amount != nil {
		t.Amount = *c.Amount
	}
	if c.Date != nil {
		t.Date = *c.Date
	}
	if c.Type != nil {
		t.Type = *c.Type
	}
	if c.Category != nil {
		t.Category = *c.Category
	}
	if c.AccountID != nil {
		t.AccountID = *c.AccountID
	}
	if c.CardID != nil {
		t.CardID = *c.CardID
	}
	if c.IsPaid != nil {
		t.IsPaid = *c.IsPaid
	}
}

// Update fetches the old row under lock, reverses its account-balance
// contribution, persists the field changes, and applies the new
// contribution. Card invoices are not re-derived on update; see DESIGN.md
// for why that asymmetry with Create/Delete is kept.
func (uc *TransactionUseCase) Update(ctx context.Context, id string, cmd UpdateTransactionCommand) (*domain.Transaction, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	old, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	updated := *old
	cmd.applyTo(&updated)
	updated.UpdatedAt = time.Now().UTC()

	if err := uc.transactionRepo.Update(ctx, tx, &updated); err != nil {
		return nil, err
	}

	oldImpact := old.BalanceImpact()
	newImpact := updated.BalanceImpact()

	switch {
	case old.AccountID == updated.AccountID:
		// Reverse-then-reapply against one account collapses into a
		// single delta.
		delta := newImpact.Sub(oldImpact)
		if !delta.IsZero() {
			if err := uc.applyBalanceDelta(ctx, tx, updated.AccountID, delta, updated.UpdatedAt); err != nil {
				return nil, err
			}
		}
	default:
		if !oldImpact.IsZero() {
			if err := uc.applyBalanceDelta(ctx, tx, old.AccountID, oldImpact.Neg(), updated.UpdatedAt); err != nil {
				return nil, err
			}
		}
		if !newImpact.IsZero() {
			if err := uc.applyBalanceDelta(ctx, tx, updated.AccountID, newImpact, updated.UpdatedAt); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsUpdated.Inc()
	}

	return &updated, nil
}

// Delete fetches the row under lock, removes it, and reverses its
// account-balance and card-invoice contributions. A second delete of the
// same id fails with domain.ErrTransactionNotFound before any side effect.
func (uc *TransactionUseCase) Delete(ctx context.Context, id string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	row, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := uc.transactionRepo.Delete(ctx, tx, id); err != nil {
		return err
	}

	if impact := row.BalanceImpact(); !impact.IsZero() {
		if err := uc.applyBalanceDelta(ctx, tx, row.AccountID, impact.Neg(), time.Now().UTC()); err != nil {
			return err
		}
	}

	if invoice := row.InvoiceImpact(); !invoice.IsZero() {
		if err := uc.applyInvoiceDelta(ctx, tx, row.CardID, invoice.Neg(), time.Now().UTC()); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsDeleted.Inc()
	}

	return nil
}

// Get retrieves a transaction by ID.
func (uc *TransactionUseCase) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// List lists transactions visible in the given scope.
func (uc *TransactionUseCase) List(ctx context.Context, scope domain.Scope, filter TransactionFilter) ([]*domain.Transaction, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}

	return uc.transactionRepo.List(ctx, scope, filter)
}

func (uc *TransactionUseCase) applyBalanceDelta(ctx context.Context, tx Tx, accountID string, delta decimal.Decimal, at time.Time) error {
	err := uc.accountRepo.ApplyBalanceDelta(ctx, tx, accountID, delta, at)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return fmt.Errorf("%w: paid transaction references account %s: %w", domain.ErrInconsistentState, accountID, err)
	}

	return err
}

func (uc *TransactionUseCase) applyInvoiceDelta(ctx context.Context, tx Tx, cardID string, delta decimal.Decimal, at time.Time) error {
	err := uc.cardRepo.ApplyInvoiceDelta(ctx, tx, cardID, delta, at)
	if errors.Is(err, domain.ErrCardNotFound) {
		return fmt.Errorf("%w: expense references card %s: %w", domain.ErrInconsistentState, cardID, err)
	}

	return err
}

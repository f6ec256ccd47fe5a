package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/infrastructure/metrics"
)

// ReconciliationUseCase recomputes account balances and card invoices from
// a full replay of the transaction history, through the same impact rule
// the mutator applies incrementally. It heals drift left behind by partial
// failures; it is not part of the mutation path.
type ReconciliationUseCase struct {
	txManager       TxManager
	transactionRepo TransactionRepository
	accountRepo     AccountRepository
	cardRepo        CardRepository
	retrier         Retrier
	metrics         *metrics.Metrics
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(
	txManager TxManager,
	transactionRepo TransactionRepository,
	accountRepo AccountRepository,
	cardRepo CardRepository,
	retrier Retrier,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		txManager:       txManager,
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		cardRepo:        cardRepo,
		retrier:         retrier,
	}
}

// WithMetrics attaches Prometheus metrics. Every increment is nil-guarded.
func (uc *ReconciliationUseCase) WithMetrics(m *metrics.Metrics) *ReconciliationUseCase {
	uc.metrics = m
	return uc
}

// ReconciliationResult is the outcome for a single account or card.
type ReconciliationResult struct {
	ID         string
	Kind       string // "account" or "card"
	Recorded   decimal.Decimal
	Calculated decimal.Decimal
	Difference decimal.Decimal
	Adjusted   bool
}

// ReconciliationReport summarizes one reconciliation run.
type ReconciliationReport struct {
	Results   []*ReconciliationResult
	Adjusted  int
	CheckedAt time.Time
}

// snapshotAccount computes one account's recorded versus replayed balance
// under the row lock held by tx.
func (uc *ReconciliationUseCase) snapshotAccount(ctx context.Context, tx Tx, accountID string) (*ReconciliationResult, error) {
	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	rows, err := uc.transactionRepo.ListByAccount(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	calculated := decimal.Zero
	for _, row := range rows {
		calculated = calculated.Add(row.BalanceImpact())
	}

	return &ReconciliationResult{
		ID:         accountID,
		Kind:       "account",
		Recorded:   account.Balance,
		Calculated: calculated,
		Difference: calculated.Sub(account.Balance),
	}, nil
}

// snapshotCard computes one card's recorded versus replayed invoice under
// the row lock held by tx. Unlike account balances, invoices count every
// card expense, paid or not.
func (uc *ReconciliationUseCase) snapshotCard(ctx context.Context, tx Tx, cardID string) (*ReconciliationResult, error) {
	card, err := uc.cardRepo.GetByIDForUpdate(ctx, tx, cardID)
	if err != nil {
		return nil, err
	}

	rows, err := uc.transactionRepo.ListByCard(ctx, tx, cardID)
	if err != nil {
		return nil, err
	}

	calculated := decimal.Zero
	for _, row := range rows {
		calculated = calculated.Add(row.InvoiceImpact())
	}

	return &ReconciliationResult{
		ID:         cardID,
		Kind:       "card",
		Recorded:   card.CurrentInvoice,
		Calculated: calculated,
		Difference: calculated.Sub(card.CurrentInvoice),
	}, nil
}

// ReconcileAccount replays one account's history and rewrites its balance
// if it drifted. The account row is locked for the duration, so the
// snapshot of its transactions cannot be interleaved with a mutation
// against the same account.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, accountID string) (*ReconciliationResult, error) {
	var result *ReconciliationResult

	op := func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		result, err = uc.snapshotAccount(ctx, tx, accountID)
		if err != nil {
			return err
		}

		if !result.Difference.IsZero() {
			calculated := result.Calculated
			if err := uc.accountRepo.SetBalance(ctx, tx, accountID, calculated, time.Now().UTC()); err != nil {
				return err
			}
			result.Adjusted = true
		}

		return tx.Commit(ctx)
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, op)
	} else {
		err = op()
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ReconcileCard replays one card's expense history and rewrites its
// current invoice if it drifted. Unlike account balances, invoices count
// every card expense, paid or not.
func (uc *ReconciliationUseCase) ReconcileCard(ctx context.Context, cardID string) (*ReconciliationResult, error) {
	var result *ReconciliationResult

	op := func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		result, err = uc.snapshotCard(ctx, tx, cardID)
		if err != nil {
			return err
		}

		if !result.Difference.IsZero() {
			if err := uc.cardRepo.SetInvoice(ctx, tx, cardID, result.Calculated, time.Now().UTC()); err != nil {
				return err
			}
			result.Adjusted = true
		}

		return tx.Commit(ctx)
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, op)
	} else {
		err = op()
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Run reconciles every account and card in the scope. Each account and
// card is reconciled in its own storage transaction; running it twice in
// a row changes nothing.
func (uc *ReconciliationUseCase) Run(ctx context.Context, scope domain.Scope) (*ReconciliationReport, error) {
	start := time.Now()

	accounts, err := uc.accountRepo.List(ctx, scope)
	if err != nil {
		return nil, err
	}

	cards, err := uc.cardRepo.List(ctx, scope)
	if err != nil {
		return nil, err
	}

	report := &ReconciliationReport{CheckedAt: time.Now().UTC()}

	for _, account := range accounts {
		result, err := uc.ReconcileAccount(ctx, account.ID)
		if err != nil {
			return nil, fmt.Errorf("reconcile account %s: %w", account.ID, err)
		}
		report.Results = append(report.Results, result)
		if result.Adjusted {
			report.Adjusted++
		}
	}

	for _, card := range cards {
		result, err := uc.ReconcileCard(ctx, card.ID)
		if err != nil {
			return nil, fmt.Errorf("reconcile card %s: %w", card.ID, err)
		}
		report.Results = append(report.Results, result)
		if result.Adjusted {
			report.Adjusted++
		}
	}

	if uc.metrics != nil {
		uc.metrics.ReconciliationRuns.Inc()
		uc.metrics.ReconciliationDuration.Observe(time.Since(start).Seconds())
		for _, result := range report.Results {
			if result.Adjusted {
				uc.metrics.BalancesAdjusted.WithLabelValues(result.Kind).Inc()
			}
		}
	}

	return report, nil
}

// Report computes the drift of every account and card in the scope without
// rewriting anything. Each balance is snapshotted under the same row lock
// the repair path takes, then the transaction is rolled back, so the report
// is accurate at the moment it is read.
func (uc *ReconciliationUseCase) Report(ctx context.Context, scope domain.Scope) (*ReconciliationReport, error) {
	accounts, err := uc.accountRepo.List(ctx, scope)
	if err != nil {
		return nil, err
	}

	cards, err := uc.cardRepo.List(ctx, scope)
	if err != nil {
		return nil, err
	}

	report := &ReconciliationReport{CheckedAt: time.Now().UTC()}

	inspect := func(snapshot func(context.Context, Tx, string) (*ReconciliationResult, error), id string) (*ReconciliationResult, error) {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback(ctx)

		return snapshot(ctx, tx, id)
	}

	for _, account := range accounts {
		result, err := inspect(uc.snapshotAccount, account.ID)
		if err != nil {
			return nil, fmt.Errorf("inspect account %s: %w", account.ID, err)
		}
		report.Results = append(report.Results, result)
	}

	for _, card := range cards {
		result, err := inspect(uc.snapshotCard, card.ID)
		if err != nil {
			return nil, fmt.Errorf("inspect card %s: %w", card.ID, err)
		}
		report.Results = append(report.Results, result)
	}

	return report, nil
}

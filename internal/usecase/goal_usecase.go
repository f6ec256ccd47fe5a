package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/infrastructure/metrics"
)

// GoalUseCase funds savings goals. It never writes account or card rows
// itself: the money movement is a regular transaction created through the
// mutator, and the goal only records the linked movement.
type GoalUseCase struct {
	txManager    TxManager
	goalRepo     GoalRepository
	transactions *TransactionUseCase
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewGoalUseCase creates a new GoalUseCase.
func NewGoalUseCase(txManager TxManager, goalRepo GoalRepository, transactions *TransactionUseCase, idGen IDGenerator) *GoalUseCase {
	return &GoalUseCase{
		txManager:    txManager,
		goalRepo:     goalRepo,
		transactions: transactions,
		idGen:        idGen,
	}
}

// WithMetrics attaches Prometheus metrics.
func (uc *GoalUseCase) WithMetrics(m *metrics.Metrics) *GoalUseCase {
	uc.metrics = m
	return uc
}

// GoalMovementInput represents a deposit into or withdrawal from a goal.
type GoalMovementInput struct {
	GoalID    string
	OwnerID   string
	AccountID string
	Amount    decimal.Decimal
	Date      time.Time
	Type      domain.GoalDepositType
}

// Move deposits into or withdraws from a goal. A deposit leaves the
// funding account as a paid EXPENSE; a withdrawal returns as a paid
// INCOME. The ledger transaction is created first, then the goal movement
// referencing it.
func (uc *GoalUseCase) Move(ctx context.Context, input GoalMovementInput) (*domain.GoalMovement, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	goal, err := uc.goalRepo.GetByID(ctx, input.GoalID)
	if err != nil {
		return nil, err
	}

	txType := domain.TypeExpense
	verb := "deposit"
	goalDelta := input.Amount
	if input.Type == domain.GoalWithdrawal {
		txType = domain.TypeIncome
		verb = "withdrawal"
		goalDelta = input.Amount.Neg()
	}

	rows, err := uc.transactions.Create(ctx, CreateTransactionInput{
		OwnerID:     input.OwnerID,
		Description: fmt.Sprintf("Goal %s: %s", verb, goal.Name),
		Amount:      input.Amount,
		Date:        input.Date,
		Type:        txType,
		Category:    "Goals",
		AccountID:   input.AccountID,
		IsPaid:      true,
	})
	if err != nil {
		return nil, err
	}

	movement := &domain.GoalMovement{
		ID:                   uc.idGen.Generate(),
		GoalID:               goal.ID,
		Amount:               input.Amount,
		Type:                 input.Type,
		Date:                 input.Date,
		Description:          rows[0].Description,
		RelatedTransactionID: rows[0].ID,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.goalRepo.CreateMovement(ctx, tx, movement); err != nil {
		return nil, err
	}

	if err := uc.goalRepo.ApplyAmountDelta(ctx, tx, goal.ID, goalDelta, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.GoalMovements.WithLabelValues(verb).Inc()
	}

	return movement, nil
}

// ListMovements lists a goal's deposits and withdrawals.
func (uc *GoalUseCase) ListMovements(ctx context.Context, goalID string) ([]*domain.GoalMovement, error) {
	return uc.goalRepo.ListMovements(ctx, goalID)
}

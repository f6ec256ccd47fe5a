package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/usecase"
)

// GoalRepository implements usecase.GoalRepository.
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository.
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

// GetByID retrieves a goal by ID.
func (r *GoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	var (
		g         domain.Goal
		current   pgtype.Numeric
		target    pgtype.Numeric
		deadline  pgtype.Timestamptz
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx,
		`SELECT id, owner_id, name, current_amount, target_amount, deadline, created_at, updated_at
		FROM goals WHERE id = $1`, id).
		Scan(&g.ID, &g.OwnerID, &g.Name, &current, &target, &deadline, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}

		return nil, err
	}

	g.CurrentAmount = numericToDecimal(current)
	g.TargetAmount = numericToDecimal(target)
	g.Deadline = deadline.Time
	g.CreatedAt = createdAt.Time
	g.UpdatedAt = updatedAt.Time

	return &g, nil
}

// ApplyAmountDelta adds delta to the goal's current amount in one
// conditional write.
func (r *GoalRepository) ApplyAmountDelta(ctx context.Context, tx usecase.Tx, id string, delta decimal.Decimal, updatedAt time.Time) error {
	tag, err := txQuerier(tx).Exec(ctx,
		`UPDATE goals SET current_amount = current_amount + $2, updated_at = $3 WHERE id = $1`,
		id, decimalToNumeric(delta), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}

	return nil
}

// CreateMovement records a deposit or withdrawal against a goal.
func (r *GoalRepository) CreateMovement(ctx context.Context, tx usecase.Tx, movement *domain.GoalMovement) error {
	_, err := txQuerier(tx).Exec(ctx,
		`INSERT INTO goal_movements (id, goal_id, amount, type, date, description, related_transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		movement.ID,
		movement.GoalID,
		decimalToNumeric(movement.Amount),
		string(movement.Type),
		timeToPgTimestamptz(movement.Date),
		movement.Description,
		textOrNull(movement.RelatedTransactionID),
	)

	return err
}

// ListMovements lists a goal's movements, newest first.
func (r *GoalRepository) ListMovements(ctx context.Context, goalID string) ([]*domain.GoalMovement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, goal_id, amount, type, date, description, related_transaction_id
		FROM goal_movements WHERE goal_id = $1 ORDER BY date DESC, id`, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.GoalMovement
	for rows.Next() {
		var (
			m       domain.GoalMovement
			amount  pgtype.Numeric
			typ     string
			date    pgtype.Timestamptz
			related pgtype.Text
		)
		if err := rows.Scan(&m.ID, &m.GoalID, &amount, &typ, &date, &m.Description, &related); err != nil {
			return nil, err
		}
		m.Amount = numericToDecimal(amount)
		m.Type = domain.GoalDepositType(typ)
		m.Date = date.Time
		m.RelatedTransactionID = textValue(related)
		out = append(out, &m)
	}

	return out, rows.Err()
}

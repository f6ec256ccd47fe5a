package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caixinha/caixinha/internal/domain"
)

// InvestmentRepository implements usecase.InvestmentRepository.
type InvestmentRepository struct {
	pool *pgxpool.Pool
}

// NewInvestmentRepository creates a new InvestmentRepository.
func NewInvestmentRepository(pool *pgxpool.Pool) *InvestmentRepository {
	return &InvestmentRepository{pool: pool}
}

// List lists the investments owned by the scope's members.
func (r *InvestmentRepository) List(ctx context.Context, scope domain.Scope) ([]*domain.Investment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, owner_id, name, type, amount, date, account_id, created_at
		FROM investments WHERE owner_id = ANY($1) ORDER BY date, id`,
		scope.OwnerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Investment
	for rows.Next() {
		var (
			inv       domain.Investment
			amount    pgtype.Numeric
			date      pgtype.Timestamptz
			accountID pgtype.Text
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&inv.ID, &inv.OwnerID, &inv.Name, &inv.Type, &amount, &date, &accountID, &createdAt); err != nil {
			return nil, err
		}
		inv.Amount = numericToDecimal(amount)
		inv.Date = date.Time
		inv.AccountID = textValue(accountID)
		inv.CreatedAt = createdAt.Time
		out = append(out, &inv)
	}

	return out, rows.Err()
}

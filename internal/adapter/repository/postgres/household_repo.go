package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HouseholdRepository implements usecase.HouseholdRepository.
type HouseholdRepository struct {
	pool *pgxpool.Pool
}

// NewHouseholdRepository creates a new HouseholdRepository.
func NewHouseholdRepository(pool *pgxpool.Pool) *HouseholdRepository {
	return &HouseholdRepository{pool: pool}
}

// ListMemberIDs returns the user ids of every member of a household.
func (r *HouseholdRepository) ListMemberIDs(ctx context.Context, householdID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id FROM household_members WHERE household_id = $1 ORDER BY joined_at, user_id`,
		householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}

	return out, rows.Err()
}

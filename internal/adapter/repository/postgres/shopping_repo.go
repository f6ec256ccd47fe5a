package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/usecase"
)

// ShoppingRepository implements usecase.ShoppingRepository.
type ShoppingRepository struct {
	pool *pgxpool.Pool
}

// NewShoppingRepository creates a new ShoppingRepository.
func NewShoppingRepository(pool *pgxpool.Pool) *ShoppingRepository {
	return &ShoppingRepository{pool: pool}
}

// GetList retrieves a shopping list by ID.
func (r *ShoppingRepository) GetList(ctx context.Context, id string) (*domain.ShoppingList, error) {
	return r.getList(ctx, r.pool, id, "")
}

// GetListForUpdate retrieves a shopping list by ID with a FOR UPDATE lock.
func (r *ShoppingRepository) GetListForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.ShoppingList, error) {
	return r.getList(ctx, txQuerier(tx), id, " FOR UPDATE")
}

func (r *ShoppingRepository) getList(ctx context.Context, q querier, id, suffix string) (*domain.ShoppingList, error) {
	var (
		l         domain.ShoppingList
		status    string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := q.QueryRow(ctx,
		`SELECT id, owner_id, name, status, created_at, updated_at
		FROM shopping_lists WHERE id = $1`+suffix, id).
		Scan(&l.ID, &l.OwnerID, &l.Name, &status, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShoppingListNotFound
		}

		return nil, err
	}

	l.Status = domain.ShoppingListStatus(status)
	l.CreatedAt = createdAt.Time
	l.UpdatedAt = updatedAt.Time

	return &l, nil
}

// ListItemsByListIDs batch-selects the items of several lists at once.
func (r *ShoppingRepository) ListItemsByListIDs(ctx context.Context, listIDs []string) ([]*domain.ShoppingItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, list_id, name, quantity, estimated_price, actual_price, checked
		FROM shopping_items WHERE list_id = ANY($1) ORDER BY list_id, id`, listIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ShoppingItem
	for rows.Next() {
		var (
			item      domain.ShoppingItem
			estimated pgtype.Numeric
			actual    pgtype.Numeric
		)
		if err := rows.Scan(&item.ID, &item.ListID, &item.Name, &item.Quantity, &estimated, &actual, &item.Checked); err != nil {
			return nil, err
		}
		item.EstimatedPrice = numericToDecimal(estimated)
		item.ActualPrice = numericToDecimal(actual)
		out = append(out, &item)
	}

	return out, rows.Err()
}

// SetListStatus moves a list through its lifecycle.
func (r *ShoppingRepository) SetListStatus(ctx context.Context, tx usecase.Tx, id string, status domain.ShoppingListStatus, updatedAt time.Time) error {
	tag, err := txQuerier(tx).Exec(ctx,
		`UPDATE shopping_lists SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrShoppingListNotFound
	}

	return nil
}

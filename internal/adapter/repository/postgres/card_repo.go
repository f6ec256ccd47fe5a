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

const cardColumns = `id, owner_id, name, credit_limit, current_invoice, closing_day,
	due_day, linked_account_id, status, created_at, updated_at`

// CardRepository implements usecase.CardRepository.
type CardRepository struct {
	pool *pgxpool.Pool
}

// NewCardRepository creates a new CardRepository.
func NewCardRepository(pool *pgxpool.Pool) *CardRepository {
	return &CardRepository{pool: pool}
}

// Create creates a new card.
func (r *CardRepository) Create(ctx context.Context, card *domain.Card) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO cards (`+cardColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		card.ID,
		card.OwnerID,
		card.Name,
		decimalToNumeric(card.Limit),
		decimalToNumeric(card.CurrentInvoice),
		card.ClosingDay,
		card.DueDay,
		textOrNull(card.LinkedAccountID),
		string(card.Status),
		timeToPgTimestamptz(card.CreatedAt),
		timeToPgTimestamptz(card.UpdatedAt),
	)

	return err
}

// GetByID retrieves a card by ID.
func (r *CardRepository) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	return r.getByID(ctx, r.pool, id, "")
}

// GetByIDForUpdate retrieves a card by ID with a FOR UPDATE lock.
func (r *CardRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Card, error) {
	return r.getByID(ctx, txQuerier(tx), id, " FOR UPDATE")
}

func (r *CardRepository) getByID(ctx context.Context, q querier, id, suffix string) (*domain.Card, error) {
	row := q.QueryRow(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1`+suffix, id)

	card, err := scanCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}

		return nil, err
	}

	return card, nil
}

// ApplyInvoiceDelta adds delta to the stored invoice in one conditional
// write.
func (r *CardRepository) ApplyInvoiceDelta(ctx context.Context, tx usecase.Tx, id string, delta decimal.Decimal, updatedAt time.Time) error {
	tag, err := txQuerier(tx).Exec(ctx,
		`UPDATE cards SET current_invoice = current_invoice + $2, updated_at = $3 WHERE id = $1`,
		id, decimalToNumeric(delta), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCardNotFound
	}

	return nil
}

// SetInvoice writes an absolute invoice total; reconciliation only.
func (r *CardRepository) SetInvoice(ctx context.Context, tx usecase.Tx, id string, invoice decimal.Decimal, updatedAt time.Time) error {
	tag, err := txQuerier(tx).Exec(ctx,
		`UPDATE cards SET current_invoice = $2, updated_at = $3 WHERE id = $1`,
		id, decimalToNumeric(invoice), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCardNotFound
	}

	return nil
}

// List lists the cards owned by the scope's members.
func (r *CardRepository) List(ctx context.Context, scope domain.Scope) ([]*domain.Card, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE owner_id = ANY($1) ORDER BY name, id`,
		scope.OwnerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, card)
	}

	return out, rows.Err()
}

func scanCard(row pgx.Row) (*domain.Card, error) {
	var (
		c             domain.Card
		limit         pgtype.Numeric
		invoice       pgtype.Numeric
		linkedAccount pgtype.Text
		status        string
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&c.ID,
		&c.OwnerID,
		&c.Name,
		&limit,
		&invoice,
		&c.ClosingDay,
		&c.DueDay,
		&linkedAccount,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Limit = numericToDecimal(limit)
	c.CurrentInvoice = numericToDecimal(invoice)
	c.LinkedAccountID = textValue(linkedAccount)
	c.Status = domain.CardStatus(status)
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}

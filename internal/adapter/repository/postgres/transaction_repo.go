package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/usecase"
)

const transactionColumns = `id, owner_id, description, amount, date, type, category,
	account_id, card_id, is_paid, installments, installment_number,
	original_transaction_id, created_at, updated_at`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// CreateBatch inserts all rows of one logical transaction in a single
// batch. Installment purchases arrive here as N pre-expanded rows.
func (r *TransactionRepository) CreateBatch(ctx context.Context, tx usecase.Tx, rows []*domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(`INSERT INTO transactions (`+transactionColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			row.ID,
			row.OwnerID,
			row.Description,
			decimalToNumeric(row.Amount),
			timeToPgTimestamptz(row.Date),
			string(row.Type),
			row.Category,
			textOrNull(row.AccountID),
			textOrNull(row.CardID),
			row.IsPaid,
			row.Installments,
			row.InstallmentNumber,
			textOrNull(row.OriginalTransactionID),
			timeToPgTimestamptz(row.CreatedAt),
			timeToPgTimestamptz(row.UpdatedAt),
		)
	}

	results := pgxTx.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}

	return results.Close()
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	return r.getByID(ctx, r.pool, id, "")
}

// GetByIDForUpdate retrieves a transaction by ID with a FOR UPDATE lock.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Transaction, error) {
	return r.getByID(ctx, txQuerier(tx), id, " FOR UPDATE")
}

func (r *TransactionRepository) getByID(ctx context.Context, q querier, id, suffix string) (*domain.Transaction, error) {
	row := q.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`+suffix, id)

	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return t, nil
}

// Update rewrites every mutable column of a transaction row.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Tx, row *domain.Transaction) error {
	tag, err := txQuerier(tx).Exec(ctx,
		`UPDATE transactions SET
			description = $2, amount = $3, date = $4, type = $5, category = $6,
			account_id = $7, card_id = $8, is_paid = $9, updated_at = $10
		WHERE id = $1`,
		row.ID,
		row.Description,
		decimalToNumeric(row.Amount),
		timeToPgTimestamptz(row.Date),
		string(row.Type),
		row.Category,
		textOrNull(row.AccountID),
		textOrNull(row.CardID),
		row.IsPaid,
		timeToPgTimestamptz(row.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a transaction row.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Tx, id string) error {
	tag, err := txQuerier(tx).Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// List lists transactions in the scope, narrowed by the filter.
func (r *TransactionRepository) List(ctx context.Context, scope domain.Scope, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE owner_id = ANY($1)`)

	args := []any{scope.OwnerIDs}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.StartDate != nil {
		sb.WriteString(` AND date >= ` + arg(*filter.StartDate))
	}
	if filter.EndDate != nil {
		sb.WriteString(` AND date <= ` + arg(*filter.EndDate))
	}
	if filter.Type != "" {
		sb.WriteString(` AND type = ` + arg(string(filter.Type)))
	}
	if filter.Category != "" {
		sb.WriteString(` AND category = ` + arg(filter.Category))
	}
	if filter.Search != "" {
		sb.WriteString(` AND description ILIKE ` + arg("%"+filter.Search+"%"))
	}

	sb.WriteString(orderClause(filter.SortBy))

	if filter.Limit > 0 {
		sb.WriteString(` LIMIT ` + arg(filter.Limit))
	}
	if filter.Offset > 0 {
		sb.WriteString(` OFFSET ` + arg(filter.Offset))
	}

	return r.queryRows(ctx, r.pool, sb.String(), args...)
}

// ListByAccount reads every row linked to an account inside the given
// storage transaction.
func (r *TransactionRepository) ListByAccount(ctx context.Context, tx usecase.Tx, accountID string) ([]*domain.Transaction, error) {
	return r.queryRows(ctx, txQuerier(tx),
		`SELECT `+transactionColumns+` FROM transactions WHERE account_id = $1`, accountID)
}

// ListByCard reads every row linked to a card inside the given storage
// transaction.
func (r *TransactionRepository) ListByCard(ctx context.Context, tx usecase.Tx, cardID string) ([]*domain.Transaction, error) {
	return r.queryRows(ctx, txQuerier(tx),
		`SELECT `+transactionColumns+` FROM transactions WHERE card_id = $1`, cardID)
}

func (r *TransactionRepository) queryRows(ctx context.Context, q querier, sql string, args ...any) ([]*domain.Transaction, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, rows.Err()
}

func orderClause(sortBy string) string {
	switch sortBy {
	case "date-asc":
		return ` ORDER BY date ASC, id ASC`
	case "amount-desc":
		return ` ORDER BY amount DESC, id ASC`
	case "amount-asc":
		return ` ORDER BY amount ASC, id ASC`
	default:
		return ` ORDER BY date DESC, id ASC`
	}
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t         domain.Transaction
		amount    pgtype.Numeric
		date      pgtype.Timestamptz
		accountID pgtype.Text
		cardID    pgtype.Text
		originID  pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
		typ       string
	)

	err := row.Scan(
		&t.ID,
		&t.OwnerID,
		&t.Description,
		&amount,
		&date,
		&typ,
		&t.Category,
		&accountID,
		&cardID,
		&t.IsPaid,
		&t.Installments,
		&t.InstallmentNumber,
		&originID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Amount = numericToDecimal(amount)
	t.Date = date.Time
	t.Type = domain.TransactionType(typ)
	t.AccountID = textValue(accountID)
	t.CardID = textValue(cardID)
	t.OriginalTransactionID = textValue(originID)
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}

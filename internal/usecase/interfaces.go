package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caixinha/caixinha/internal/domain"
)

// TransactionFilter narrows a transaction listing. Zero values mean "no
// constraint".
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      domain.TransactionType
	Category  string
	Search    string
	SortBy    string // date-desc, date-asc, amount-desc, amount-asc
	Limit     int
	Offset    int
}

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	CreateBatch(ctx context.Context, tx Tx, rows []*domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.Transaction, error)
	Update(ctx context.Context, tx Tx, row *domain.Transaction) error
	Delete(ctx context.Context, tx Tx, id string) error
	List(ctx context.Context, scope domain.Scope, filter TransactionFilter) ([]*domain.Transaction, error)
	// ListByAccount and ListByCard read inside a transaction so
	// reconciliation sees a snapshot consistent with the lock it holds on
	// the account or card row.
	ListByAccount(ctx context.Context, tx Tx, accountID string) ([]*domain.Transaction, error)
	ListByCard(ctx context.Context, tx Tx, cardID string) ([]*domain.Transaction, error)
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.Account, error)
	// ApplyBalanceDelta issues a single conditional write
	// (balance = balance + delta); it must return
	// domain.ErrAccountNotFound when no row matches.
	ApplyBalanceDelta(ctx context.Context, tx Tx, id string, delta decimal.Decimal, updatedAt time.Time) error
	// SetBalance writes an absolute balance; reconciliation only.
	SetBalance(ctx context.Context, tx Tx, id string, balance decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, scope domain.Scope) ([]*domain.Account, error)
}

// CardRepository defines data access for cards.
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.Card, error)
	// ApplyInvoiceDelta issues a single conditional write
	// (current_invoice = current_invoice + delta); it must return
	// domain.ErrCardNotFound when no row matches.
	ApplyInvoiceDelta(ctx context.Context, tx Tx, id string, delta decimal.Decimal, updatedAt time.Time) error
	// SetInvoice writes an absolute invoice total; reconciliation only.
	SetInvoice(ctx context.Context, tx Tx, id string, invoice decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, scope domain.Scope) ([]*domain.Card, error)
}

// HouseholdRepository defines data access for shared households.
type HouseholdRepository interface {
	ListMemberIDs(ctx context.Context, householdID string) ([]string, error)
}

// GoalRepository defines data access for savings goals.
type GoalRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	ApplyAmountDelta(ctx context.Context, tx Tx, id string, delta decimal.Decimal, updatedAt time.Time) error
	CreateMovement(ctx context.Context, tx Tx, movement *domain.GoalMovement) error
	ListMovements(ctx context.Context, goalID string) ([]*domain.GoalMovement, error)
}

// ShoppingRepository defines data access for shopping lists.
type ShoppingRepository interface {
	GetList(ctx context.Context, id string) (*domain.ShoppingList, error)
	GetListForUpdate(ctx context.Context, tx Tx, id string) (*domain.ShoppingList, error)
	// ListItemsByListIDs batch-selects the items of several lists at once.
	ListItemsByListIDs(ctx context.Context, listIDs []string) ([]*domain.ShoppingItem, error)
	SetListStatus(ctx context.Context, tx Tx, id string, status domain.ShoppingListStatus, updatedAt time.Time) error
}

// InvestmentRepository defines data access for investments.
type InvestmentRepository interface {
	List(ctx context.Context, scope domain.Scope) ([]*domain.Investment, error)
}

// Tx represents a storage transaction. A transaction row write and its
// balance/invoice delta commit as one unit or not at all.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager handles storage transaction lifecycle.
type TxManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// IDGenerator generates unique IDs. The mutator relies on generating IDs
// before the batch insert so installment rows can share an
// original_transaction_id atomically.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

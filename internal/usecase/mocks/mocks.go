// Package mocks provides hand-written, in-memory implementations of the
// usecase interfaces. Defaults behave like a tiny consistent store; every
// method can be overridden per test through its Func field.
package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/usecase"
)

// MockTx is a no-op storage transaction.
type MockTx struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTx) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	return nil
}

func (t *MockTx) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	return nil
}

// MockTxManager hands out MockTx values.
type MockTxManager struct {
	BeginFunc func(ctx context.Context) (usecase.Tx, error)
	Begun     int
}

func NewMockTxManager() *MockTxManager { return &MockTxManager{} }

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	m.Begun++
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTx{}, nil
}

// MockIDGenerator generates sequential ids.
type MockIDGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func NewMockIDGenerator() *MockIDGenerator { return &MockIDGenerator{prefix: "id"} }

func (g *MockIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next)
}

// MockTransactionRepository is an in-memory TransactionRepository.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	rows map[string]*domain.Transaction

	CreateBatchFunc      func(ctx context.Context, tx usecase.Tx, rows []*domain.Transaction) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Tx, id string) (*domain.Transaction, error)
	UpdateFunc           func(ctx context.Context, tx usecase.Tx, row *domain.Transaction) error
	DeleteFunc           func(ctx context.Context, tx usecase.Tx, id string) error
	ListFunc             func(ctx context.Context, scope domain.Scope, filter usecase.TransactionFilter) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{rows: make(map[string]*domain.Transaction)}
}

// Seed inserts rows directly, bypassing any side effects.
func (m *MockTransactionRepository) Seed(rows ...*domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		cp := *r
		m.rows[r.ID] = &cp
	}
}

// All returns every stored row sorted by id.
func (m *MockTransactionRepository) All() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Transaction, 0, len(m.rows))
	for _, r := range m.rows {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *MockTransactionRepository) CreateBatch(ctx context.Context, tx usecase.Tx, rows []*domain.Transaction) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tx, rows)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		cp := *r
		m.rows[r.ID] = &cp
	}
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rows[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Transaction, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx usecase.Tx, row *domain.Transaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, row)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[row.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	cp := *row
	m.rows[row.ID] = &cp
	return nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, tx usecase.Tx, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *MockTransactionRepository) List(ctx context.Context, scope domain.Scope, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, scope, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.Transaction
	for _, r := range m.rows {
		if !scope.Contains(r.OwnerID) {
			continue
		}
		if filter.StartDate != nil && r.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && r.Date.After(*filter.EndDate) {
			continue
		}
		if filter.Type != "" && r.Type != filter.Type {
			continue
		}
		if filter.Category != "" && r.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(r.Description), strings.ToLower(filter.Search)) {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, tx usecase.Tx, accountID string) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, r := range m.rows {
		if r.AccountID == accountID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockTransactionRepository) ListByCard(ctx context.Context, tx usecase.Tx, cardID string) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, r := range m.rows {
		if r.CardID == cardID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MockAccountRepository is an in-memory AccountRepository. Balance deltas
// apply atomically under the repository lock, as the postgres
// implementation does with a single UPDATE.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	// BalanceDeltas records every delta applied through the default path,
	// in order, so tests can assert how many writes a mutation issued.
	BalanceDeltas []decimal.Decimal

	ApplyBalanceDeltaFunc func(ctx context.Context, tx usecase.Tx, id string, delta decimal.Decimal, updatedAt time.Time) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	ListFunc              func(ctx context.Context, scope domain.Scope) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*domain.Account)}
}

func (m *MockAccountRepository) Seed(accounts ...*domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range accounts {
		cp := *a
		m.accounts[a.ID] = &cp
	}
}

// Balance returns the stored balance of an account.
func (m *MockAccountRepository) Balance(id string) decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[id]; ok {
		return a.Balance
	}
	return decimal.Zero
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *account
	m.accounts[account.ID] = &cp
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Account, error) {
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) ApplyBalanceDelta(ctx context.Context, tx usecase.Tx, id string, delta decimal.Decimal, updatedAt time.Time) error {
	if m.ApplyBalanceDeltaFunc != nil {
		return m.ApplyBalanceDeltaFunc(ctx, tx, id, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Balance = a.Balance.Add(delta)
	a.UpdatedAt = updatedAt
	m.BalanceDeltas = append(m.BalanceDeltas, delta)
	return nil
}

func (m *MockAccountRepository) SetBalance(ctx context.Context, tx usecase.Tx, id string, balance decimal.Decimal, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Balance = balance
	a.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, scope domain.Scope) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, scope)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Account
	for _, a := range m.accounts {
		if scope.Contains(a.OwnerID) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MockCardRepository is an in-memory CardRepository.
type MockCardRepository struct {
	mu    sync.RWMutex
	cards map[string]*domain.Card

	ApplyInvoiceDeltaFunc func(ctx context.Context, tx usecase.Tx, id string, delta decimal.Decimal, updatedAt time.Time) error
}

func NewMockCardRepository() *MockCardRepository {
	return &MockCardRepository{cards: make(map[string]*domain.Card)}
}

func (m *MockCardRepository) Seed(cards ...*domain.Card) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range cards {
		cp := *c
		m.cards[c.ID] = &cp
	}
}

// Invoice returns the stored current invoice of a card.
func (m *MockCardRepository) Invoice(id string) decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.cards[id]; ok {
		return c.CurrentInvoice
	}
	return decimal.Zero
}

func (m *MockCardRepository) Create(ctx context.Context, card *domain.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *card
	m.cards[card.ID] = &cp
	return nil
}

func (m *MockCardRepository) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.cards[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, domain.ErrCardNotFound
}

func (m *MockCardRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Card, error) {
	return m.GetByID(ctx, id)
}

func (m *MockCardRepository) ApplyInvoiceDelta(ctx context.Context, tx usecase.Tx, id string, delta decimal.Decimal, updatedAt time.Time) error {
	if m.ApplyInvoiceDeltaFunc != nil {
		return m.ApplyInvoiceDeltaFunc(ctx, tx, id, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[id]
	if !ok {
		return domain.ErrCardNotFound
	}
	c.CurrentInvoice = c.CurrentInvoice.Add(delta)
	c.UpdatedAt = updatedAt
	return nil
}

func (m *MockCardRepository) SetInvoice(ctx context.Context, tx usecase.Tx, id string, invoice decimal.Decimal, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[id]
	if !ok {
		return domain.ErrCardNotFound
	}
	c.CurrentInvoice = invoice
	c.UpdatedAt = updatedAt
	return nil
}

func (m *MockCardRepository) List(ctx context.Context, scope domain.Scope) ([]*domain.Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Card
	for _, c := range m.cards {
		if scope.Contains(c.OwnerID) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MockHouseholdRepository is an in-memory HouseholdRepository.
type MockHouseholdRepository struct {
	mu      sync.RWMutex
	members map[string][]string

	ListMemberIDsFunc func(ctx context.Context, householdID string) ([]string, error)
}

func NewMockHouseholdRepository() *MockHouseholdRepository {
	return &MockHouseholdRepository{members: make(map[string][]string)}
}

func (m *MockHouseholdRepository) SeedMembers(householdID string, userIDs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[householdID] = append([]string(nil), userIDs...)
}

func (m *MockHouseholdRepository) ListMemberIDs(ctx context.Context, householdID string) ([]string, error) {
	if m.ListMemberIDsFunc != nil {
		return m.ListMemberIDsFunc(ctx, householdID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.members[householdID]...), nil
}

// MockGoalRepository is an in-memory GoalRepository.
type MockGoalRepository struct {
	mu        sync.RWMutex
	goals     map[string]*domain.Goal
	movements map[string][]*domain.GoalMovement
}

func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{
		goals:     make(map[string]*domain.Goal),
		movements: make(map[string][]*domain.GoalMovement),
	}
}

func (m *MockGoalRepository) Seed(goals ...*domain.Goal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range goals {
		cp := *g
		m.goals[g.ID] = &cp
	}
}

// Current returns the stored current amount of a goal.
func (m *MockGoalRepository) Current(id string) decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.goals[id]; ok {
		return g.CurrentAmount
	}
	return decimal.Zero
}

func (m *MockGoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.goals[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, domain.ErrGoalNotFound
}

func (m *MockGoalRepository) ApplyAmountDelta(ctx context.Context, tx usecase.Tx, id string, delta decimal.Decimal, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok {
		return domain.ErrGoalNotFound
	}
	g.CurrentAmount = g.CurrentAmount.Add(delta)
	g.UpdatedAt = updatedAt
	return nil
}

func (m *MockGoalRepository) CreateMovement(ctx context.Context, tx usecase.Tx, movement *domain.GoalMovement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *movement
	m.movements[movement.GoalID] = append(m.movements[movement.GoalID], &cp)
	return nil
}

func (m *MockGoalRepository) ListMovements(ctx context.Context, goalID string) ([]*domain.GoalMovement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.GoalMovement, 0, len(m.movements[goalID]))
	for _, mv := range m.movements[goalID] {
		cp := *mv
		out = append(out, &cp)
	}
	return out, nil
}

// MockShoppingRepository is an in-memory ShoppingRepository.
type MockShoppingRepository struct {
	mu    sync.RWMutex
	lists map[string]*domain.ShoppingList
	items map[string][]*domain.ShoppingItem
}

func NewMockShoppingRepository() *MockShoppingRepository {
	return &MockShoppingRepository{
		lists: make(map[string]*domain.ShoppingList),
		items: make(map[string][]*domain.ShoppingItem),
	}
}

func (m *MockShoppingRepository) SeedList(list *domain.ShoppingList, items ...*domain.ShoppingItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *list
	m.lists[list.ID] = &cp
	for _, it := range items {
		icp := *it
		icp.ListID = list.ID
		m.items[list.ID] = append(m.items[list.ID], &icp)
	}
}

func (m *MockShoppingRepository) GetList(ctx context.Context, id string) (*domain.ShoppingList, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.lists[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, domain.ErrShoppingListNotFound
}

func (m *MockShoppingRepository) GetListForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.ShoppingList, error) {
	return m.GetList(ctx, id)
}

func (m *MockShoppingRepository) ListItemsByListIDs(ctx context.Context, listIDs []string) ([]*domain.ShoppingItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.ShoppingItem
	for _, id := range listIDs {
		for _, it := range m.items[id] {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockShoppingRepository) SetListStatus(ctx context.Context, tx usecase.Tx, id string, status domain.ShoppingListStatus, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lists[id]
	if !ok {
		return domain.ErrShoppingListNotFound
	}
	l.Status = status
	l.UpdatedAt = updatedAt
	return nil
}

// MockInvestmentRepository is an in-memory InvestmentRepository.
type MockInvestmentRepository struct {
	mu          sync.RWMutex
	investments []*domain.Investment
}

func NewMockInvestmentRepository() *MockInvestmentRepository {
	return &MockInvestmentRepository{}
}

func (m *MockInvestmentRepository) Seed(investments ...*domain.Investment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inv := range investments {
		cp := *inv
		m.investments = append(m.investments, &cp)
	}
}

func (m *MockInvestmentRepository) List(ctx context.Context, scope domain.Scope) ([]*domain.Investment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Investment
	for _, inv := range m.investments {
		if scope.Contains(inv.OwnerID) {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

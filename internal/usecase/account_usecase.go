package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caixinha/caixinha/internal/domain"
)

// InitialBalanceCategory marks the seeded income row a non-empty opening
// balance produces.
const InitialBalanceCategory = "Initial balance"

// AccountUseCase handles account business logic. Accounts are created with
// a zero balance; a non-zero opening balance is recorded as a paid INCOME
// transaction through the mutator, so the balance invariant holds from the
// first row onward.
type AccountUseCase struct {
	accountRepo  AccountRepository
	transactions *TransactionUseCase
	idGen        IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, transactions *TransactionUseCase, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo:  accountRepo,
		transactions: transactions,
		idGen:        idGen,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	OwnerID        string
	Name           string
	Type           domain.AccountType
	InitialBalance decimal.Decimal
}

// CreateAccount creates an account and, when an initial balance is given,
// seeds it through the mutator.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateDescription(input.Name); err != nil {
		return nil, err
	}
	if !domain.ValidAccountType(input.Type) {
		return nil, fmt.Errorf("%w: %w: %q", domain.ErrValidation, domain.ErrInvalidAccountType, input.Type)
	}
	if input.InitialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", domain.ErrValidation)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		OwnerID:   input.OwnerID,
		Name:      input.Name,
		Type:      input.Type,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if input.InitialBalance.IsPositive() {
		rows, err := uc.transactions.Create(ctx, CreateTransactionInput{
			OwnerID:     input.OwnerID,
			Description: InitialBalanceCategory,
			Amount:      input.InitialBalance,
			Date:        now,
			Type:        domain.TypeIncome,
			Category:    InitialBalanceCategory,
			AccountID:   account.ID,
			IsPaid:      true,
		})
		if err != nil {
			return nil, err
		}
		account.Balance = rows[0].Amount
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccounts lists the accounts visible in the given scope.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, scope domain.Scope) ([]*domain.Account, error) {
	return uc.accountRepo.List(ctx, scope)
}

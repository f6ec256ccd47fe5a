package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/usecase"
)

// CreateTransactionRequest represents a request to create a transaction.
type CreateTransactionRequest struct {
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Type         string          `json:"type"`
	Category     string          `json:"category"`
	AccountID    string          `json:"account_id,omitempty"`
	CardID       string          `json:"card_id,omitempty"`
	IsPaid       bool            `json:"is_paid"`
	Installments int             `json:"installments,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput(ownerID string) usecase.CreateTransactionInput {
	return usecase.CreateTransactionInput{
		OwnerID:      ownerID,
		Description:  r.Description,
		Amount:       r.Amount,
		Date:         r.Date,
		Type:         domain.TransactionType(r.Type),
		Category:     r.Category,
		AccountID:    r.AccountID,
		CardID:       r.CardID,
		IsPaid:       r.IsPaid,
		Installments: r.Installments,
	}
}

// UpdateTransactionRequest represents a partial update. Absent fields are
// left untouched.
type UpdateTransactionRequest struct {
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
	Type        *string          `json:"type,omitempty"`
	Category    *string          `json:"category,omitempty"`
	AccountID   *string          `json:"account_id,omitempty"`
	CardID      *string          `json:"card_id,omitempty"`
	IsPaid      *bool            `json:"is_paid,omitempty"`
}

// ToCommand converts to the use case update command.
func (r *UpdateTransactionRequest) ToCommand() usecase.UpdateTransactionCommand {
	cmd := usecase.UpdateTransactionCommand{
		Description: r.Description,
		Amount:      r.Amount,
		Date:        r.Date,
		Category:    r.Category,
		AccountID:   r.AccountID,
		CardID:      r.CardID,
		IsPaid:      r.IsPaid,
	}
	if r.Type != nil {
		typ := domain.TransactionType(*r.Type)
		cmd.Type = &typ
	}

	return cmd
}

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(ownerID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		OwnerID:        ownerID,
		Name:           r.Name,
		Type:           domain.AccountType(r.Type),
		InitialBalance: r.InitialBalance,
	}
}

// CreateCardRequest represents a request to create a card.
type CreateCardRequest struct {
	Name            string          `json:"name"`
	Limit           decimal.Decimal `json:"limit"`
	ClosingDay      int             `json:"closing_day"`
	DueDay          int             `json:"due_day"`
	LinkedAccountID string          `json:"linked_account_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCardRequest) ToUseCaseInput(ownerID string) usecase.CreateCardInput {
	return usecase.CreateCardInput{
		OwnerID:         ownerID,
		Name:            r.Name,
		Limit:           r.Limit,
		ClosingDay:      r.ClosingDay,
		DueDay:          r.DueDay,
		LinkedAccountID: r.LinkedAccountID,
	}
}

// GoalMovementRequest represents a deposit into or withdrawal from a goal.
type GoalMovementRequest struct {
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Type      string          `json:"type"`
}

// ToUseCaseInput converts to use case input.
func (r *GoalMovementRequest) ToUseCaseInput(goalID, ownerID string) usecase.GoalMovementInput {
	return usecase.GoalMovementInput{
		GoalID:    goalID,
		OwnerID:   ownerID,
		AccountID: r.AccountID,
		Amount:    r.Amount,
		Date:      r.Date,
		Type:      domain.GoalDepositType(r.Type),
	}
}

// CompleteListRequest represents a request to complete a shopping list.
type CompleteListRequest struct {
	AccountID string `json:"account_id,omitempty"`
	CardID    string `json:"card_id,omitempty"`
	Category  string `json:"category,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CompleteListRequest) ToUseCaseInput(listID, ownerID string) usecase.CompleteListInput {
	return usecase.CompleteListInput{
		ListID:    listID,
		OwnerID:   ownerID,
		AccountID: r.AccountID,
		CardID:    r.CardID,
		Category:  r.Category,
	}
}

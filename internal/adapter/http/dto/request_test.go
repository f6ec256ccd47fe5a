package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caixinha/caixinha/internal/domain"
)

func TestCreateTransactionRequestToUseCaseInput(t *testing.T) {
	req := CreateTransactionRequest{
		Description:  "Rent",
		Amount:       decimal.RequireFromString("1200.00"),
		Date:         time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
		Type:         "EXPENSE",
		Category:     "Housing",
		AccountID:    "acc-1",
		IsPaid:       true,
		Installments: 3,
	}

	input := req.ToUseCaseInput("alice")

	assert.Equal(t, "alice", input.OwnerID)
	assert.Equal(t, domain.TypeExpense, input.Type)
	assert.Equal(t, "acc-1", input.AccountID)
	assert.Equal(t, 3, input.Installments)
	assert.True(t, input.Amount.Equal(req.Amount))
}

func TestUpdateTransactionRequestToCommand(t *testing.T) {
	typ := "INCOME"
	amount := decimal.RequireFromString("50.00")
	req := UpdateTransactionRequest{
		Type:   &typ,
		Amount: &amount,
	}

	cmd := req.ToCommand()

	require.NotNil(t, cmd.Type)
	assert.Equal(t, domain.TypeIncome, *cmd.Type)
	require.NotNil(t, cmd.Amount)
	assert.True(t, cmd.Amount.Equal(amount))
	assert.Nil(t, cmd.Description)
	assert.Nil(t, cmd.IsPaid)
}

func TestUpdateTransactionRequestClearsFields(t *testing.T) {
	empty := ""
	req := UpdateTransactionRequest{AccountID: &empty}

	cmd := req.ToCommand()

	require.NotNil(t, cmd.AccountID)
	assert.Empty(t, *cmd.AccountID)
	assert.Nil(t, cmd.CardID)
}

func TestGoalMovementRequestToUseCaseInput(t *testing.T) {
	req := GoalMovementRequest{
		AccountID: "acc-1",
		Amount:    decimal.RequireFromString("150.00"),
		Date:      time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		Type:      "WITHDRAWAL",
	}

	input := req.ToUseCaseInput("goal-1", "bob")

	assert.Equal(t, "goal-1", input.GoalID)
	assert.Equal(t, "bob", input.OwnerID)
	assert.Equal(t, domain.GoalWithdrawal, input.Type)
}

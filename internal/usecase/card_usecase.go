package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caixinha/caixinha/internal/domain"
)

// CardUseCase handles card business logic. A card starts with an empty
// invoice; only the mutator and reconciliation ever write it.
type CardUseCase struct {
	cardRepo CardRepository
	idGen    IDGenerator
}

// NewCardUseCase creates a new CardUseCase.
func NewCardUseCase(cardRepo CardRepository, idGen IDGenerator) *CardUseCase {
	return &CardUseCase{cardRepo: cardRepo, idGen: idGen}
}

// CreateCardInput represents input for creating a card.
type CreateCardInput struct {
	OwnerID         string
	Name            string
	Limit           decimal.Decimal
	ClosingDay      int
	DueDay          int
	LinkedAccountID string
}

// CreateCard creates a new card.
func (uc *CardUseCase) CreateCard(ctx context.Context, input CreateCardInput) (*domain.Card, error) {
	if err := domain.ValidateDescription(input.Name); err != nil {
		return nil, err
	}
	if input.Limit.IsNegative() {
		return nil, fmt.Errorf("%w: limit cannot be negative", domain.ErrValidation)
	}
	if input.ClosingDay < 1 || input.ClosingDay > 31 || input.DueDay < 1 || input.DueDay > 31 {
		return nil, fmt.Errorf("%w: closing and due days must be within 1..31", domain.ErrValidation)
	}

	now := time.Now().UTC()
	card := &domain.Card{
		ID:              uc.idGen.Generate(),
		OwnerID:         input.OwnerID,
		Name:            input.Name,
		Limit:           input.Limit,
		CurrentInvoice:  decimal.Zero,
		ClosingDay:      input.ClosingDay,
		DueDay:          input.DueDay,
		LinkedAccountID: input.LinkedAccountID,
		Status:          domain.CardActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.cardRepo.Create(ctx, card); err != nil {
		return nil, err
	}

	return card, nil
}

// GetCard retrieves a card by ID.
func (uc *CardUseCase) GetCard(ctx context.Context, id string) (*domain.Card, error) {
	return uc.cardRepo.GetByID(ctx, id)
}

// ListCards lists the cards visible in the given scope.
func (uc *CardUseCase) ListCards(ctx context.Context, scope domain.Scope) ([]*domain.Card, error) {
	return uc.cardRepo.List(ctx, scope)
}

package usecase

import (
	"context"
	"fmt"

	"github.com/caixinha/caixinha/internal/domain"
)

// ScopeUseCase resolves the row scope the other use cases operate over:
// either only the acting user's rows, or the rows of every member of a
// shared household. It never touches any arithmetic; it only decides which
// rows are visible as input.
type ScopeUseCase struct {
	householdRepo HouseholdRepository
}

// NewScopeUseCase creates a new ScopeUseCase.
func NewScopeUseCase(householdRepo HouseholdRepository) *ScopeUseCase {
	return &ScopeUseCase{householdRepo: householdRepo}
}

// ResolveScopeInput represents input for resolving a scope.
type ResolveScopeInput struct {
	ActingUserID string
	HouseholdID  string
	SharedView   bool
}

// Resolve turns the request identity into an explicit owner set. Shared
// view without a household, or a household the acting user is not a
// member of, falls back to the personal scope.
func (uc *ScopeUseCase) Resolve(ctx context.Context, input ResolveScopeInput) (domain.Scope, error) {
	if input.ActingUserID == "" {
		return domain.Scope{}, fmt.Errorf("%w: acting user id is required", domain.ErrValidation)
	}

	if !input.SharedView || input.HouseholdID == "" {
		return domain.PersonalScope(input.ActingUserID), nil
	}

	members, err := uc.householdRepo.ListMemberIDs(ctx, input.HouseholdID)
	if err != nil {
		return domain.Scope{}, err
	}

	shared := domain.SharedScope(members)
	if !shared.Contains(input.ActingUserID) {
		return domain.PersonalScope(input.ActingUserID), nil
	}

	return shared, nil
}

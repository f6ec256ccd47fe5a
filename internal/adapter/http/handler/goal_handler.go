package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caixinha/caixinha/internal/adapter/http/dto"
	"github.com/caixinha/caixinha/internal/adapter/http/middleware"
	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/usecase"
)

// GoalService defines the behavior needed by GoalHandler.
type GoalService interface {
	Move(ctx context.Context, input usecase.GoalMovementInput) (*domain.GoalMovement, error)
	ListMovements(ctx context.Context, goalID string) ([]*domain.GoalMovement, error)
}

// GoalHandler handles goal funding HTTP requests.
type GoalHandler struct {
	goalUC GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalUC GoalService) *GoalHandler {
	return &GoalHandler{goalUC: goalUC}
}

// Move deposits into or withdraws from a goal.
func (h *GoalHandler) Move(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "id")

	var req dto.GoalMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ownerID := middleware.UserIDFromContext(r.Context())
	movement, err := h.goalUC.Move(r.Context(), req.ToUseCaseInput(goalID, ownerID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to move goal funds", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.GoalMovementFromDomain(movement))
}

// ListMovements lists a goal's deposits and withdrawals.
func (h *GoalHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "id")

	movements, err := h.goalUC.ListMovements(r.Context(), goalID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GoalMovementsFromDomain(movements))
}

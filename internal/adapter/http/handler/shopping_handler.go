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

// ShoppingService defines the behavior needed by ShoppingHandler.
type ShoppingService interface {
	CompleteList(ctx context.Context, input usecase.CompleteListInput) (*domain.Transaction, error)
}

// ShoppingHandler handles shopping list completion requests.
type ShoppingHandler struct {
	shoppingUC ShoppingService
}

// NewShoppingHandler creates a new ShoppingHandler.
func NewShoppingHandler(shoppingUC ShoppingService) *ShoppingHandler {
	return &ShoppingHandler{shoppingUC: shoppingUC}
}

// Complete finalizes a shopping list into one expense transaction.
func (h *ShoppingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "id")

	var req dto.CompleteListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ownerID := middleware.UserIDFromContext(r.Context())
	row, err := h.shoppingUC.CompleteList(r.Context(), req.ToUseCaseInput(listID, ownerID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to complete list", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(row))
}

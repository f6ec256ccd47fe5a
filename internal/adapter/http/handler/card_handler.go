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

// CardService defines the behavior needed by CardHandler.
type CardService interface {
	CreateCard(ctx context.Context, input usecase.CreateCardInput) (*domain.Card, error)
	GetCard(ctx context.Context, id string) (*domain.Card, error)
	ListCards(ctx context.Context, scope domain.Scope) ([]*domain.Card, error)
}

// CardHandler handles card-related HTTP requests.
type CardHandler struct {
	cardUC CardService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardUC CardService) *CardHandler {
	return &CardHandler{cardUC: cardUC}
}

// Create creates a new card.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ownerID := middleware.UserIDFromContext(r.Context())
	card, err := h.cardUC.CreateCard(r.Context(), req.ToUseCaseInput(ownerID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create card", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CardFromDomain(card))
}

// Get retrieves a card by ID.
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	card, err := h.cardUC.GetCard(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get card", err.Error())
		return
	}

	if !middleware.ScopeFromContext(r.Context()).Contains(card.OwnerID) {
		writeError(w, http.StatusNotFound, "failed to get card", domain.ErrCardNotFound.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CardFromDomain(card))
}

// List lists the cards visible in the request scope.
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cardUC.ListCards(r.Context(), middleware.ScopeFromContext(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list cards", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CardsFromDomain(cards))
}

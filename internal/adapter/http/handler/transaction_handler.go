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

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	Create(ctx context.Context, input usecase.CreateTransactionInput) ([]*domain.Transaction, error)
	Get(ctx context.Context, id string) (*domain.Transaction, error)
	Update(ctx context.Context, id string, cmd usecase.UpdateTransactionCommand) (*domain.Transaction, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, scope domain.Scope, filter usecase.TransactionFilter) ([]*domain.Transaction, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Create creates a transaction. Installment purchases return every
// generated row.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ownerID := middleware.UserIDFromContext(r.Context())
	rows, err := h.transactionUC.Create(r.Context(), req.ToUseCaseInput(ownerID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(rows),
		Total:        int64(len(rows)),
	})
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	row, err := h.transactionUC.Get(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	if !middleware.ScopeFromContext(r.Context()).Contains(row.OwnerID) {
		writeError(w, http.StatusNotFound, "failed to get transaction", domain.ErrTransactionNotFound.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(row))
}

// Update applies a partial update to a transaction. Rows outside the
// request scope are reported as missing, the same as Get.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if !h.inScope(w, r, id, "failed to update transaction") {
		return
	}

	row, err := h.transactionUC.Update(r.Context(), id, req.ToCommand())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(row))
}

// Delete removes a transaction and reverses its side effects. Rows outside
// the request scope are reported as missing, the same as Get.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if !h.inScope(w, r, id, "failed to delete transaction") {
		return
	}

	if err := h.transactionUC.Delete(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete transaction", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// inScope loads the row and rejects the request when its owner is not in
// the resolved scope. A rejection writes the response and returns false.
func (h *TransactionHandler) inScope(w http.ResponseWriter, r *http.Request, id, msg string) bool {
	row, err := h.transactionUC.Get(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), msg, err.Error())
		return false
	}

	if !middleware.ScopeFromContext(r.Context()).Contains(row.OwnerID) {
		writeError(w, http.StatusNotFound, msg, domain.ErrTransactionNotFound.Error())
		return false
	}

	return true
}

// List lists the transactions visible in the request scope.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	startDate, err := parseTimeQuery(r, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date", err.Error())
		return
	}
	endDate, err := parseTimeQuery(r, "end_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date", err.Error())
		return
	}

	filter := usecase.TransactionFilter{
		StartDate: startDate,
		EndDate:   endDate,
		Type:      domain.TransactionType(r.URL.Query().Get("type")),
		Category:  r.URL.Query().Get("category"),
		Search:    r.URL.Query().Get("search"),
		SortBy:    r.URL.Query().Get("sort"),
		Limit:     parseIntQuery(r, "limit", 50),
		Offset:    parseIntQuery(r, "offset", 0),
	}

	rows, err := h.transactionUC.List(r.Context(), middleware.ScopeFromContext(r.Context()), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(rows),
		Total:        int64(len(rows)),
	})
}

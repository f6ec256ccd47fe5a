package handler

import (
	"context"
	"net/http"

	"github.com/caixinha/caixinha/internal/adapter/http/dto"
	"github.com/caixinha/caixinha/internal/adapter/http/middleware"
	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/usecase"
)

// ReconciliationService defines the behavior needed by ReconciliationHandler.
type ReconciliationService interface {
	Run(ctx context.Context, scope domain.Scope) (*usecase.ReconciliationReport, error)
	Report(ctx context.Context, scope domain.Scope) (*usecase.ReconciliationReport, error)
}

// ReconciliationHandler triggers balance reconciliation runs.
type ReconciliationHandler struct {
	reconciliationUC ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconciliationUC ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationUC: reconciliationUC}
}

// Run reconciles every account and card in the request scope and returns
// the per-balance report.
func (h *ReconciliationHandler) Run(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.Run(r.Context(), middleware.ScopeFromContext(r.Context()))
	if err != nil {
		writeError(w, mapDomainError(err), "reconciliation failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationReportFromUseCase(report))
}

// Report returns the current drift per balance without repairing anything.
func (h *ReconciliationHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.Report(r.Context(), middleware.ScopeFromContext(r.Context()))
	if err != nil {
		writeError(w, mapDomainError(err), "reconciliation report failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationReportFromUseCase(report))
}

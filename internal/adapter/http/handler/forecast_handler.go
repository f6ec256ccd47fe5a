package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/caixinha/caixinha/internal/adapter/http/dto"
	"github.com/caixinha/caixinha/internal/adapter/http/middleware"
	rediscache "github.com/caixinha/caixinha/internal/adapter/repository/redis"
	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/infrastructure/metrics"
	"github.com/caixinha/caixinha/internal/usecase"
)

const forecastCacheTTL = 30 * time.Second

// ForecastService defines the behavior needed by ForecastHandler.
type ForecastService interface {
	Forecast(ctx context.Context, scope domain.Scope, year int, month time.Month) (*usecase.Forecast, error)
	CumulativeBalance(ctx context.Context, scope domain.Scope, year int, month time.Month) (decimal.Decimal, error)
	AccountCumulativeBalance(ctx context.Context, scope domain.Scope, accountID string, year int, month time.Month) (decimal.Decimal, error)
	InvestmentsTotal(ctx context.Context, scope domain.Scope, year int, month time.Month) (decimal.Decimal, error)
}

// ForecastHandler handles forecast and balance computation requests.
// Responses are cached briefly; any mutation naturally outlives the TTL.
type ForecastHandler struct {
	forecastUC ForecastService
	cache      usecase.Cache
	cacheTTL   time.Duration
	metrics    *metrics.Metrics
}

// NewForecastHandler creates a new ForecastHandler. cache may be nil.
func NewForecastHandler(forecastUC ForecastService, cache usecase.Cache) *ForecastHandler {
	return &ForecastHandler{forecastUC: forecastUC, cache: cache, cacheTTL: forecastCacheTTL}
}

// WithCacheTTL overrides the default forecast cache TTL.
func (h *ForecastHandler) WithCacheTTL(ttl time.Duration) *ForecastHandler {
	if ttl > 0 {
		h.cacheTTL = ttl
	}
	return h
}

// WithMetrics attaches Prometheus metrics.
func (h *ForecastHandler) WithMetrics(m *metrics.Metrics) *ForecastHandler {
	h.metrics = m
	return h
}

// Forecast returns the carry view of one month.
func (h *ForecastHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month", err.Error())
		return
	}

	scope := middleware.ScopeFromContext(r.Context())

	if h.metrics != nil {
		h.metrics.ForecastRequests.Inc()
	}

	var cacheKey string
	if h.cache != nil {
		cacheKey = rediscache.ForecastKey(scope, year, month)
		if cached, err := h.cache.Get(r.Context(), cacheKey); err == nil {
			if h.metrics != nil {
				h.metrics.ForecastCacheHits.Inc()
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "hit")
			w.Write([]byte(cached))
			return
		}
	}

	forecast, err := h.forecastUC.Forecast(r.Context(), scope, year, month)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build forecast", err.Error())
		return
	}

	resp := dto.ForecastFromUseCase(forecast)
	if h.cache != nil {
		if body, err := json.Marshal(resp); err == nil {
			h.cache.Set(r.Context(), cacheKey, string(body), h.cacheTTL)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// CumulativeBalance returns the scope's total balance as of a month end.
func (h *ForecastHandler) CumulativeBalance(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month", err.Error())
		return
	}

	balance, err := h.forecastUC.CumulativeBalance(r.Context(), middleware.ScopeFromContext(r.Context()), year, month)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{Year: year, Month: int(month), Balance: balance})
}

// AccountBalance returns one account's balance as of a month end.
func (h *ForecastHandler) AccountBalance(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month", err.Error())
		return
	}

	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account id", "")
		return
	}

	balance, err := h.forecastUC.AccountCumulativeBalance(r.Context(), middleware.ScopeFromContext(r.Context()), accountID, year, month)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{Year: year, Month: int(month), Balance: balance})
}

// Investments returns the flat investment total up to a month end.
func (h *ForecastHandler) Investments(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month", err.Error())
		return
	}

	total, err := h.forecastUC.InvestmentsTotal(r.Context(), middleware.ScopeFromContext(r.Context()), year, month)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute investments total", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{Year: year, Month: int(month), Balance: total})
}

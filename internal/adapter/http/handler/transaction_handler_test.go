package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/caixinha/caixinha/internal/adapter/http/dto"
	"github.com/caixinha/caixinha/internal/adapter/http/middleware"
	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/usecase"
)

type transactionServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateTransactionInput) ([]*domain.Transaction, error)
	getFn    func(ctx context.Context, id string) (*domain.Transaction, error)
	updateFn func(ctx context.Context, id string, cmd usecase.UpdateTransactionCommand) (*domain.Transaction, error)
	deleteFn func(ctx context.Context, id string) error
	listFn   func(ctx context.Context, scope domain.Scope, filter usecase.TransactionFilter) ([]*domain.Transaction, error)
}

func (s *transactionServiceStub) Create(ctx context.Context, input usecase.CreateTransactionInput) ([]*domain.Transaction, error) {
	return s.createFn(ctx, input)
}

func (s *transactionServiceStub) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.getFn(ctx, id)
}

func (s *transactionServiceStub) Update(ctx context.Context, id string, cmd usecase.UpdateTransactionCommand) (*domain.Transaction, error) {
	return s.updateFn(ctx, id, cmd)
}

func (s *transactionServiceStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *transactionServiceStub) List(ctx context.Context, scope domain.Scope, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	return s.listFn(ctx, scope, filter)
}

func scopedRequest(req *http.Request, userID string) *http.Request {
	ctx := middleware.WithScope(req.Context(), domain.PersonalScope(userID), userID)
	return req.WithContext(ctx)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestTransactionHandler_Create_Success(t *testing.T) {
	row := &domain.Transaction{
		ID:      "tx-1",
		OwnerID: "user-1",
		Type:    domain.TypeExpense,
		Amount:  decimal.NewFromInt(100),
	}

	var captured usecase.CreateTransactionInput
	h := NewTransactionHandler(&transactionServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransactionInput) ([]*domain.Transaction, error) {
			captured = input
			return []*domain.Transaction{row}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateTransactionRequest{
		Description: "Groceries",
		Amount:      decimal.NewFromInt(100),
		Date:        time.Now(),
		Type:        "EXPENSE",
		AccountID:   "acc-1",
		IsPaid:      true,
	})

	req := scopedRequest(httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.OwnerID != "user-1" {
		t.Fatalf("expected acting user as owner, got %q", captured.OwnerID)
	}

	var resp dto.ListTransactionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 || resp.Transactions[0].ID != "tx-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestTransactionHandler_Create_ValidationError(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransactionInput) ([]*domain.Transaction, error) {
			return nil, domain.ValidateDescription("")
		},
	})

	body, _ := json.Marshal(dto.CreateTransactionRequest{Type: "EXPENSE"})
	req := scopedRequest(httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransactionHandler_Create_InvalidJSON(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransactionInput) ([]*domain.Transaction, error) {
			t.Fatal("Create should not be called for invalid payload")
			return nil, nil
		},
	})

	req := scopedRequest(httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString("{invalid")), "user-1")
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransactionHandler_Get_OutOfScope(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Transaction, error) {
			if id != "tx-1" {
				t.Fatalf("unexpected id %q", id)
			}
			return &domain.Transaction{ID: id, OwnerID: "someone-else"}, nil
		},
	})

	req := scopedRequest(httptest.NewRequest(http.MethodGet, "/transactions/tx-1", nil), "user-1")
	req = withURLParam(req, "id", "tx-1")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	// Rows outside the scope are indistinguishable from missing rows.
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTransactionHandler_Delete_NotFound(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Transaction, error) {
			return nil, domain.ErrTransactionNotFound
		},
		deleteFn: func(ctx context.Context, id string) error {
			t.Fatal("Delete should not be called for a missing row")
			return nil
		},
	})

	req := scopedRequest(httptest.NewRequest(http.MethodDelete, "/transactions/missing", nil), "user-1")
	req = withURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTransactionHandler_Delete_OutOfScope(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Transaction, error) {
			return &domain.Transaction{ID: id, OwnerID: "someone-else"}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			t.Fatal("Delete must not touch a row outside the scope")
			return nil
		},
	})

	req := scopedRequest(httptest.NewRequest(http.MethodDelete, "/transactions/tx-1", nil), "user-1")
	req = withURLParam(req, "id", "tx-1")
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTransactionHandler_Update_OutOfScope(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Transaction, error) {
			return &domain.Transaction{ID: id, OwnerID: "someone-else"}, nil
		},
		updateFn: func(ctx context.Context, id string, cmd usecase.UpdateTransactionCommand) (*domain.Transaction, error) {
			t.Fatal("Update must not touch a row outside the scope")
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.UpdateTransactionRequest{Description: strPtr("hijacked")})
	req := scopedRequest(httptest.NewRequest(http.MethodPatch, "/transactions/tx-1", bytes.NewReader(body)), "user-1")
	req = withURLParam(req, "id", "tx-1")
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func strPtr(s string) *string { return &s }

func TestTransactionHandler_Create_InconsistentState(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransactionInput) ([]*domain.Transaction, error) {
			return nil, domain.ErrInconsistentState
		},
	})

	body, _ := json.Marshal(dto.CreateTransactionRequest{Type: "EXPENSE"})
	req := scopedRequest(httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestTransactionHandler_List_PassesFilter(t *testing.T) {
	var capturedScope domain.Scope
	var capturedFilter usecase.TransactionFilter
	h := NewTransactionHandler(&transactionServiceStub{
		listFn: func(ctx context.Context, scope domain.Scope, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
			capturedScope = scope
			capturedFilter = filter
			return nil, nil
		},
	})

	req := scopedRequest(httptest.NewRequest(http.MethodGet,
		"/transactions?type=EXPENSE&category=Food&limit=10&start_date=2026-03-01", nil), "user-1")
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !capturedScope.Contains("user-1") {
		t.Fatalf("expected personal scope, got %+v", capturedScope)
	}
	if capturedFilter.Type != domain.TypeExpense || capturedFilter.Category != "Food" || capturedFilter.Limit != 10 {
		t.Fatalf("unexpected filter: %+v", capturedFilter)
	}
	if capturedFilter.StartDate == nil || capturedFilter.StartDate.Month() != time.March {
		t.Fatalf("start date not parsed: %+v", capturedFilter.StartDate)
	}
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/usecase"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// TransactionResponse represents a transaction in responses.
type TransactionResponse struct {
	ID                    string          `json:"id"`
	OwnerID               string          `json:"owner_id"`
	Description           string          `json:"description"`
	Amount                decimal.Decimal `json:"amount"`
	Date                  time.Time       `json:"date"`
	Type                  string          `json:"type"`
	Category              string          `json:"category"`
	AccountID             string          `json:"account_id,omitempty"`
	CardID                string          `json:"card_id,omitempty"`
	IsPaid                bool            `json:"is_paid"`
	Installments          int             `json:"installments"`
	InstallmentNumber     int             `json:"installment_number"`
	OriginalTransactionID string          `json:"original_transaction_id,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction.
func TransactionFromDomain(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                    t.ID,
		OwnerID:               t.OwnerID,
		Description:           t.Description,
		Amount:                t.Amount,
		Date:                  t.Date,
		Type:                  string(t.Type),
		Category:              t.Category,
		AccountID:             t.AccountID,
		CardID:                t.CardID,
		IsPaid:                t.IsPaid,
		Installments:          t.Installments,
		InstallmentNumber:     t.InstallmentNumber,
		OriginalTransactionID: t.OriginalTransactionID,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}

// TransactionsFromDomain converts a slice of domain transactions.
func TransactionsFromDomain(rows []*domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(rows))
	for _, t := range rows {
		out = append(out, TransactionFromDomain(t))
	}

	return out
}

// ListTransactionsResponse represents a transaction listing.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
}

// AccountResponse represents an account in responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account.
func AccountFromDomain(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		OwnerID:   a.OwnerID,
		Name:      a.Name,
		Type:      string(a.Type),
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts a slice of domain accounts.
func AccountsFromDomain(accounts []*domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, AccountFromDomain(a))
	}

	return out
}

// CardResponse represents a card in responses.
type CardResponse struct {
	ID              string          `json:"id"`
	OwnerID         string          `json:"owner_id"`
	Name            string          `json:"name"`
	Limit           decimal.Decimal `json:"limit"`
	CurrentInvoice  decimal.Decimal `json:"current_invoice"`
	AvailableLimit  decimal.Decimal `json:"available_limit"`
	ClosingDay      int             `json:"closing_day"`
	DueDay          int             `json:"due_day"`
	LinkedAccountID string          `json:"linked_account_id,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CardFromDomain converts a domain card.
func CardFromDomain(c *domain.Card) CardResponse {
	return CardResponse{
		ID:              c.ID,
		OwnerID:         c.OwnerID,
		Name:            c.Name,
		Limit:           c.Limit,
		CurrentInvoice:  c.CurrentInvoice,
		AvailableLimit:  c.AvailableLimit(),
		ClosingDay:      c.ClosingDay,
		DueDay:          c.DueDay,
		LinkedAccountID: c.LinkedAccountID,
		Status:          string(c.Status),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// CardsFromDomain converts a slice of domain cards.
func CardsFromDomain(cards []*domain.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, CardFromDomain(c))
	}

	return out
}

// ForecastResponse represents one month's carry view.
type ForecastResponse struct {
	Year            int                   `json:"year"`
	Month           int                   `json:"month"`
	CarryIn         decimal.Decimal       `json:"carry_in"`
	CarryOut        decimal.Decimal       `json:"carry_out"`
	PaidIncome      decimal.Decimal       `json:"paid_income"`
	PendingIncome   decimal.Decimal       `json:"pending_income"`
	PaidExpenses    decimal.Decimal       `json:"paid_expenses"`
	PendingExpenses decimal.Decimal       `json:"pending_expenses"`
	Net             decimal.Decimal       `json:"net"`
	Transfers       []TransactionResponse `json:"transfers"`
}

// ForecastFromUseCase converts a usecase forecast.
func ForecastFromUseCase(f *usecase.Forecast) ForecastResponse {
	return ForecastResponse{
		Year:            f.Year,
		Month:           int(f.Month),
		CarryIn:         f.CarryIn,
		CarryOut:        f.CarryOut,
		PaidIncome:      f.PaidIncome,
		PendingIncome:   f.PendingIncome,
		PaidExpenses:    f.PaidExpenses,
		PendingExpenses: f.PendingExpenses,
		Net:             f.Net,
		Transfers:       TransactionsFromDomain(f.Transfers),
	}
}

// ReconciliationResultResponse represents one reconciled balance.
type ReconciliationResultResponse struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	Recorded   decimal.Decimal `json:"recorded"`
	Calculated decimal.Decimal `json:"calculated"`
	Difference decimal.Decimal `json:"difference"`
	Adjusted   bool            `json:"adjusted"`
}

// ReconciliationReportResponse represents a reconciliation run.
type ReconciliationReportResponse struct {
	Results   []ReconciliationResultResponse `json:"results"`
	Adjusted  int                            `json:"adjusted"`
	CheckedAt time.Time                      `json:"checked_at"`
}

// ReconciliationReportFromUseCase converts a usecase report.
func ReconciliationReportFromUseCase(report *usecase.ReconciliationReport) ReconciliationReportResponse {
	out := ReconciliationReportResponse{
		Results:   make([]ReconciliationResultResponse, 0, len(report.Results)),
		Adjusted:  report.Adjusted,
		CheckedAt: report.CheckedAt,
	}
	for _, r := range report.Results {
		out.Results = append(out.Results, ReconciliationResultResponse{
			ID:         r.ID,
			Kind:       r.Kind,
			Recorded:   r.Recorded,
			Calculated: r.Calculated,
			Difference: r.Difference,
			Adjusted:   r.Adjusted,
		})
	}

	return out
}

// GoalMovementResponse represents a goal movement in responses.
type GoalMovementResponse struct {
	ID                   string          `json:"id"`
	GoalID               string          `json:"goal_id"`
	Amount               decimal.Decimal `json:"amount"`
	Type                 string          `json:"type"`
	Date                 time.Time       `json:"date"`
	Description          string          `json:"description"`
	RelatedTransactionID string          `json:"related_transaction_id,omitempty"`
}

// GoalMovementFromDomain converts a domain goal movement.
func GoalMovementFromDomain(m *domain.GoalMovement) GoalMovementResponse {
	return GoalMovementResponse{
		ID:                   m.ID,
		GoalID:               m.GoalID,
		Amount:               m.Amount,
		Type:                 string(m.Type),
		Date:                 m.Date,
		Description:          m.Description,
		RelatedTransactionID: m.RelatedTransactionID,
	}
}

// GoalMovementsFromDomain converts a slice of domain goal movements.
func GoalMovementsFromDomain(movements []*domain.GoalMovement) []GoalMovementResponse {
	out := make([]GoalMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, GoalMovementFromDomain(m))
	}

	return out
}

// BalanceResponse represents a single computed balance figure.
type BalanceResponse struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Balance decimal.Decimal `json:"balance"`
}

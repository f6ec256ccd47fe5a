package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caixinha/caixinha/internal/domain"
)

// ForecastUseCase derives monthly totals, cumulative balances and
// carry-in/carry-out forecasts. It is read-only and side-effect-free; each
// call fetches one snapshot of the scoped data and every figure in the
// response is computed from that single snapshot.
type ForecastUseCase struct {
	transactionRepo TransactionRepository
	accountRepo     AccountRepository
	investmentRepo  InvestmentRepository
}

// NewForecastUseCase creates a new ForecastUseCase.
func NewForecastUseCase(
	transactionRepo TransactionRepository,
	accountRepo AccountRepository,
	investmentRepo InvestmentRepository,
) *ForecastUseCase {
	return &ForecastUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		investmentRepo:  investmentRepo,
	}
}

// Forecast is the carry view of one calendar month.
type Forecast struct {
	Year            int
	Month           time.Month
	CarryIn         decimal.Decimal
	CarryOut        decimal.Decimal
	PaidIncome      decimal.Decimal
	PendingIncome   decimal.Decimal
	PaidExpenses    decimal.Decimal
	PendingExpenses decimal.Decimal
	Net             decimal.Decimal
	// Transfers are the month's TRANSFER rows, returned unaggregated for
	// display. They are excluded from Net: a transfer nets to zero across
	// the ledger even though it moves money between specific accounts.
	Transfers []*domain.Transaction
}

// MonthlyTotal sums transactions of the given type and paid state dated
// inside (year, month).
func MonthlyTotal(rows []*domain.Transaction, typ domain.TransactionType, paid bool, year int, month time.Month) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		if row.Type == typ && row.IsPaid == paid && row.InMonth(year, month) {
			total = total.Add(row.Amount)
		}
	}

	return total
}

// AccountCumulativeBalance returns the account's balance as of the end of
// (year, month): the live balance minus the signed impact of every paid,
// account-linked, non-card transaction dated strictly after that month.
// Walking backward from the present balance keeps past months correct as
// long as the live balance satisfies its invariant.
func AccountCumulativeBalance(account *domain.Account, rows []*domain.Transaction, year int, month time.Month) decimal.Decimal {
	balance := account.Balance
	for _, row := range rows {
		if row.AccountID != account.ID {
			continue
		}
		if row.AfterMonth(year, month) {
			balance = balance.Sub(row.BalanceImpact())
		}
	}

	return balance
}

// CumulativeBalance sums AccountCumulativeBalance across accounts.
func CumulativeBalance(accounts []*domain.Account, rows []*domain.Transaction, year int, month time.Month) decimal.Decimal {
	total := decimal.Zero
	for _, account := range accounts {
		total = total.Add(AccountCumulativeBalance(account, rows, year, month))
	}

	return total
}

// InvestmentsTotalUntil flat-sums investments dated on or before the end
// of (year, month). No yield projection.
func InvestmentsTotalUntil(investments []*domain.Investment, year int, month time.Month) decimal.Decimal {
	cutoff := domain.MonthStart(year, month).AddDate(0, 1, 0)

	total := decimal.Zero
	for _, inv := range investments {
		if inv.Date.Before(cutoff) {
			total = total.Add(inv.Amount)
		}
	}

	return total
}

// BuildForecast computes the carry view of (year, month) from one
// snapshot: carryIn is the cumulative balance at the end of the previous
// month, net is the month's paid plus pending income minus paid plus
// pending expenses, and carryOut = carryIn + net. A month with no
// transactions forecasts carryOut == carryIn.
func BuildForecast(accounts []*domain.Account, rows []*domain.Transaction, year int, month time.Month) *Forecast {
	prevYear, prevMonth := domain.PreviousMonth(year, month)

	f := &Forecast{
		Year:            year,
		Month:           month,
		CarryIn:         CumulativeBalance(accounts, rows, prevYear, prevMonth),
		PaidIncome:      MonthlyTotal(rows, domain.TypeIncome, true, year, month),
		PendingIncome:   MonthlyTotal(rows, domain.TypeIncome, false, year, month),
		PaidExpenses:    MonthlyTotal(rows, domain.TypeExpense, true, year, month),
		PendingExpenses: MonthlyTotal(rows, domain.TypeExpense, false, year, month),
	}

	for _, row := range rows {
		if row.Type == domain.TypeTransfer && row.InMonth(year, month) {
			f.Transfers = append(f.Transfers, row)
		}
	}

	f.Net = f.PaidIncome.Add(f.PendingIncome).Sub(f.PaidExpenses).Sub(f.PendingExpenses)
	f.CarryOut = f.CarryIn.Add(f.Net)

	return f
}

// Forecast fetches one snapshot of the scope and builds the carry view of
// (year, month).
func (uc *ForecastUseCase) Forecast(ctx context.Context, scope domain.Scope, year int, month time.Month) (*Forecast, error) {
	accounts, rows, err := uc.snapshot(ctx, scope)
	if err != nil {
		return nil, err
	}

	return BuildForecast(accounts, rows, year, month), nil
}

// CumulativeBalance fetches one snapshot and sums every scoped account's
// balance as of the end of (year, month).
func (uc *ForecastUseCase) CumulativeBalance(ctx context.Context, scope domain.Scope, year int, month time.Month) (decimal.Decimal, error) {
	accounts, rows, err := uc.snapshot(ctx, scope)
	if err != nil {
		return decimal.Zero, err
	}

	return CumulativeBalance(accounts, rows, year, month), nil
}

// AccountCumulativeBalance fetches one snapshot and computes a single
// account's balance as of the end of (year, month). Accounts not owned by
// the scope are indistinguishable from missing ones.
func (uc *ForecastUseCase) AccountCumulativeBalance(ctx context.Context, scope domain.Scope, accountID string, year int, month time.Month) (decimal.Decimal, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	if !scope.Contains(account.OwnerID) {
		return decimal.Zero, domain.ErrAccountNotFound
	}

	rows, err := uc.transactionRepo.List(ctx, scope, TransactionFilter{})
	if err != nil {
		return decimal.Zero, err
	}

	return AccountCumulativeBalance(account, rows, year, month), nil
}

// InvestmentsTotal fetches the scoped investments and flat-sums those
// dated on or before the end of (year, month).
func (uc *ForecastUseCase) InvestmentsTotal(ctx context.Context, scope domain.Scope, year int, month time.Month) (decimal.Decimal, error) {
	investments, err := uc.investmentRepo.List(ctx, scope)
	if err != nil {
		return decimal.Zero, err
	}

	return InvestmentsTotalUntil(investments, year, month), nil
}

func (uc *ForecastUseCase) snapshot(ctx context.Context, scope domain.Scope) ([]*domain.Account, []*domain.Transaction, error) {
	accounts, err := uc.accountRepo.List(ctx, scope)
	if err != nil {
		return nil, nil, err
	}

	rows, err := uc.transactionRepo.List(ctx, scope, TransactionFilter{})
	if err != nil {
		return nil, nil, err
	}

	return accounts, rows, nil
}

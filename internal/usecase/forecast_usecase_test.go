package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/usecase"
	"github.com/caixinha/caixinha/internal/usecase/mocks"
)

func dated(id, owner, accountID string, typ domain.TransactionType, amount string, paid bool, date time.Time) *domain.Transaction {
	return &domain.Transaction{
		ID:        id,
		OwnerID:   owner,
		AccountID: accountID,
		Type:      typ,
		Amount:    decimal.RequireFromString(amount),
		Date:      date,
		IsPaid:    paid,
	}
}

func TestMonthlyTotal(t *testing.T) {
	t.Parallel()

	march10 := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	march31 := time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC)
	april1 := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	rows := []*domain.Transaction{
		dated("t1", "u", "a", domain.TypeIncome, "100.00", true, march10),
		dated("t2", "u", "a", domain.TypeIncome, "50.00", true, march31), // last instant still in March
		dated("t3", "u", "a", domain.TypeIncome, "25.00", true, april1),  // next month
		dated("t4", "u", "a", domain.TypeIncome, "10.00", false, march10),
		dated("t5", "u", "a", domain.TypeExpense, "30.00", true, march10),
	}

	if got := usecase.MonthlyTotal(rows, domain.TypeIncome, true, 2026, time.March); !got.Equal(decimal.RequireFromString("150.00")) {
		t.Fatalf("paid income = %s, want 150.00", got)
	}
	if got := usecase.MonthlyTotal(rows, domain.TypeIncome, false, 2026, time.March); !got.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("pending income = %s, want 10.00", got)
	}
	if got := usecase.MonthlyTotal(rows, domain.TypeExpense, true, 2026, time.March); !got.Equal(decimal.RequireFromString("30.00")) {
		t.Fatalf("paid expenses = %s, want 30.00", got)
	}
}

func TestAccountCumulativeBalance(t *testing.T) {
	t.Parallel()

	account := &domain.Account{ID: "acc-1", OwnerID: "u", Balance: decimal.RequireFromString("1000.00")}
	rows := []*domain.Transaction{
		// April rows are after March and get subtracted from the live balance.
		dated("t1", "u", "acc-1", domain.TypeIncome, "400.00", true, time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)),
		dated("t2", "u", "acc-1", domain.TypeExpense, "150.00", true, time.Date(2026, time.April, 20, 0, 0, 0, 0, time.UTC)),
		// In-month and earlier rows are already inside the live balance.
		dated("t3", "u", "acc-1", domain.TypeExpense, "999.00", true, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)),
		// Pending and foreign-account rows never move the walk.
		dated("t4", "u", "acc-1", domain.TypeExpense, "77.00", false, time.Date(2026, time.April, 9, 0, 0, 0, 0, time.UTC)),
		dated("t5", "u", "acc-2", domain.TypeIncome, "500.00", true, time.Date(2026, time.April, 9, 0, 0, 0, 0, time.UTC)),
	}

	// 1000 - 400 + 150 = 750 at the end of March.
	got := usecase.AccountCumulativeBalance(account, rows, 2026, time.March)
	if !got.Equal(decimal.RequireFromString("750.00")) {
		t.Fatalf("cumulative = %s, want 750.00", got)
	}

	// At the end of April everything is already included.
	got = usecase.AccountCumulativeBalance(account, rows, 2026, time.April)
	if !got.Equal(decimal.RequireFromString("1000.00")) {
		t.Fatalf("cumulative = %s, want 1000.00", got)
	}
}

func TestBuildForecast(t *testing.T) {
	t.Parallel()

	t.Run("carry chain", func(t *testing.T) {
		t.Parallel()

		accounts := []*domain.Account{{ID: "acc-1", OwnerID: "u", Balance: decimal.RequireFromString("500.00")}}
		rows := []*domain.Transaction{
			dated("t1", "u", "acc-1", domain.TypeIncome, "500.00", true, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)),
			dated("t2", "u", "acc-1", domain.TypeIncome, "3000.00", false, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)),
			dated("t3", "u", "acc-1", domain.TypeExpense, "900.00", false, time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)),
		}

		f := usecase.BuildForecast(accounts, rows, 2026, time.March)
		if !f.CarryIn.Equal(decimal.RequireFromString("500.00")) {
			t.Fatalf("carryIn = %s, want 500.00", f.CarryIn)
		}
		if !f.Net.Equal(decimal.RequireFromString("2100.00")) {
			t.Fatalf("net = %s, want 2100.00", f.Net)
		}
		if !f.CarryOut.Equal(decimal.RequireFromString("2600.00")) {
			t.Fatalf("carryOut = %s, want 2600.00", f.CarryOut)
		}
	})

	t.Run("empty month carries through unchanged", func(t *testing.T) {
		t.Parallel()

		accounts := []*domain.Account{{ID: "acc-1", OwnerID: "u", Balance: decimal.RequireFromString("250.00")}}
		rows := []*domain.Transaction{
			dated("t1", "u", "acc-1", domain.TypeIncome, "250.00", true, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)),
		}

		f := usecase.BuildForecast(accounts, rows, 2026, time.June)
		if !f.CarryOut.Equal(f.CarryIn) {
			t.Fatalf("carryOut = %s, carryIn = %s, want equal", f.CarryOut, f.CarryIn)
		}
		if !f.Net.IsZero() {
			t.Fatalf("net = %s, want 0", f.Net)
		}
	})

	t.Run("transfers are listed but excluded from net", func(t *testing.T) {
		t.Parallel()

		accounts := []*domain.Account{{ID: "acc-1", OwnerID: "u", Balance: decimal.Zero}}
		rows := []*domain.Transaction{
			dated("t1", "u", "acc-1", domain.TypeTransfer, "300.00", true, time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)),
			dated("t2", "u", "acc-1", domain.TypeTransfer, "120.00", true, time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)),
		}

		f := usecase.BuildForecast(accounts, rows, 2026, time.March)
		if len(f.Transfers) != 2 {
			t.Fatalf("transfers = %d, want 2", len(f.Transfers))
		}
		if !f.Net.IsZero() {
			t.Fatalf("net = %s, want 0", f.Net)
		}
	})

	t.Run("no pending rows makes carryOut the cumulative balance", func(t *testing.T) {
		t.Parallel()

		// Every row is paid, so the forecast of the current month must land
		// exactly on the cumulative balance at its end.
		accounts := []*domain.Account{{ID: "acc-1", OwnerID: "u", Balance: decimal.RequireFromString("2149.50")}}
		rows := []*domain.Transaction{
			dated("t1", "u", "acc-1", domain.TypeIncome, "3000.00", true, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)),
			dated("t2", "u", "acc-1", domain.TypeExpense, "850.50", true, time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)),
		}

		f := usecase.BuildForecast(accounts, rows, 2026, time.March)
		cumulative := usecase.CumulativeBalance(accounts, rows, 2026, time.March)
		if !f.CarryOut.Equal(cumulative) {
			t.Fatalf("carryOut = %s, cumulative = %s, want equal", f.CarryOut, cumulative)
		}
	})

	t.Run("december rolls the carry into january", func(t *testing.T) {
		t.Parallel()

		accounts := []*domain.Account{{ID: "acc-1", OwnerID: "u", Balance: decimal.RequireFromString("100.00")}}
		rows := []*domain.Transaction{
			dated("t1", "u", "acc-1", domain.TypeIncome, "100.00", true, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)),
		}

		f := usecase.BuildForecast(accounts, rows, 2026, time.January)
		if !f.CarryIn.Equal(decimal.RequireFromString("100.00")) {
			t.Fatalf("carryIn = %s, want 100.00", f.CarryIn)
		}
	})
}

func TestForecastScopes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	txRepo := mocks.NewMockTransactionRepository()
	accountRepo := mocks.NewMockAccountRepository()
	investmentRepo := mocks.NewMockInvestmentRepository()

	// Alice and Bob share a household; Carol does not.
	accountRepo.Seed(
		&domain.Account{ID: "acc-a", OwnerID: "alice", Balance: decimal.RequireFromString("1000.00")},
		&domain.Account{ID: "acc-b", OwnerID: "bob", Balance: decimal.RequireFromString("400.00")},
		&domain.Account{ID: "acc-c", OwnerID: "carol", Balance: decimal.RequireFromString("9999.00")},
	)
	march := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	txRepo.Seed(
		dated("t1", "alice", "acc-a", domain.TypeExpense, "200.00", false, march),
		dated("t2", "bob", "acc-b", domain.TypeExpense, "100.00", false, march),
		dated("t3", "carol", "acc-c", domain.TypeExpense, "500.00", false, march),
	)

	uc := usecase.NewForecastUseCase(txRepo, accountRepo, investmentRepo)

	personal, err := uc.Forecast(ctx, domain.PersonalScope("alice"), 2026, time.March)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if !personal.PendingExpenses.Equal(decimal.RequireFromString("200.00")) {
		t.Fatalf("personal pending expenses = %s, want 200.00", personal.PendingExpenses)
	}
	if !personal.CarryIn.Equal(decimal.RequireFromString("1000.00")) {
		t.Fatalf("personal carryIn = %s, want 1000.00", personal.CarryIn)
	}

	shared, err := uc.Forecast(ctx, domain.SharedScope([]string{"alice", "bob"}), 2026, time.March)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if !shared.PendingExpenses.Equal(decimal.RequireFromString("300.00")) {
		t.Fatalf("shared pending expenses = %s, want 300.00", shared.PendingExpenses)
	}
	if !shared.CarryIn.Equal(decimal.RequireFromString("1400.00")) {
		t.Fatalf("shared carryIn = %s, want 1400.00", shared.CarryIn)
	}
	// The same arithmetic runs in both views; only the owner set differs,
	// so Carol's rows never leak in.
	if !shared.CarryOut.Equal(decimal.RequireFromString("1100.00")) {
		t.Fatalf("shared carryOut = %s, want 1100.00", shared.CarryOut)
	}
}

func TestAccountCumulativeBalanceScope(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	txRepo := mocks.NewMockTransactionRepository()
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(
		&domain.Account{ID: "acc-a", OwnerID: "alice", Balance: decimal.RequireFromString("1000.00")},
		&domain.Account{ID: "acc-c", OwnerID: "carol", Balance: decimal.RequireFromString("9999.00")},
	)

	uc := usecase.NewForecastUseCase(txRepo, accountRepo, mocks.NewMockInvestmentRepository())

	// The owner sees their own account.
	balance, err := uc.AccountCumulativeBalance(ctx, domain.PersonalScope("alice"), "acc-a", 2026, time.March)
	if err != nil {
		t.Fatalf("AccountCumulativeBalance: %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("1000.00")) {
		t.Fatalf("balance = %s, want 1000.00", balance)
	}

	// Another user's account looks exactly like a missing one.
	_, err = uc.AccountCumulativeBalance(ctx, domain.PersonalScope("alice"), "acc-c", 2026, time.March)
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
}

func TestInvestmentsTotal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	investmentRepo := mocks.NewMockInvestmentRepository()
	investmentRepo.Seed(
		&domain.Investment{ID: "i1", OwnerID: "u", Amount: decimal.RequireFromString("1000.00"), Date: time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)},
		&domain.Investment{ID: "i2", OwnerID: "u", Amount: decimal.RequireFromString("500.00"), Date: time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)},
		&domain.Investment{ID: "i3", OwnerID: "u", Amount: decimal.RequireFromString("250.00"), Date: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)},
	)

	uc := usecase.NewForecastUseCase(mocks.NewMockTransactionRepository(), mocks.NewMockAccountRepository(), investmentRepo)

	got, err := uc.InvestmentsTotal(ctx, domain.PersonalScope("u"), 2026, time.March)
	if err != nil {
		t.Fatalf("InvestmentsTotal: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("1500.00")) {
		t.Fatalf("total = %s, want 1500.00 (April position excluded)", got)
	}
}

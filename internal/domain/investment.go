package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment is a flat position. Forecasting only ever sums amounts; yield
// projection is out of scope.
type Investment struct {
	ID        string
	OwnerID   string
	Name      string
	Type      string
	Amount    decimal.Decimal
	Date      time.Time
	AccountID string
	CreatedAt time.Time
}

package fugle

import "github.com/shopspring/decimal"

// For compile-time restrictions.

type AccountID string          //
func (id AccountID) S() string { return string(id) }

type StockID string          //
func (id StockID) S() string { return string(id) }

type OrderID string          //
func (id OrderID) S() string { return string(id) }

type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

type PlaceOrderRequest struct {
	StockID  StockID
	Side     Side
	Quantity int64 // Shares, not lots.
	Price    decimal.Decimal
	OddLot   bool
}

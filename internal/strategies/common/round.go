package common

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BoardLot is the number of shares in a regular lot on TWSE.
const BoardLot = 1000

var tickSizes = []struct {
	below decimal.Decimal
	tick  decimal.Decimal
}{
	{below: decimal.NewFromInt(10), tick: decimal.RequireFromString("0.01")},
	{below: decimal.NewFromInt(50), tick: decimal.RequireFromString("0.05")},
	{below: decimal.NewFromInt(100), tick: decimal.RequireFromString("0.1")},
	{below: decimal.NewFromInt(500), tick: decimal.RequireFromString("0.5")},
	{below: decimal.NewFromInt(1000), tick: decimal.NewFromInt(1)},
}

var maxTickSize = decimal.NewFromInt(5)

// TickSize returns the minimum price increment for a stock trading at price.
func TickSize(price decimal.Decimal) decimal.Decimal {
	for _, t := range tickSizes {
		if price.LessThan(t.below) {
			return t.tick
		}
	}
	return maxTickSize
}

func RoundToMinPriceIncrement(price, step decimal.Decimal) decimal.Decimal {
	if !step.IsPositive() {
		panic(fmt.Sprintf("invalid usage of common.RoundToMinPriceIncrement: step: %s <= 0", step.String()))
	}
	return price.Div(step).Round(0).Mul(step)
}

func RoundToTick(price decimal.Decimal) decimal.Decimal {
	return RoundToMinPriceIncrement(price, TickSize(price))
}

// SplitLots splits a share count into whole board lots and the odd-lot rest.
func SplitLots(shares int64) (board, odd int64) {
	if shares <= 0 {
		return 0, 0
	}
	return shares / BoardLot * BoardLot, shares % BoardLot
}

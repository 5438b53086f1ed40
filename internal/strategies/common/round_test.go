package common_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/thejimmylin/f5project/internal/strategies/common"
)

func TestRoundToMinPriceIncrement(t *testing.T) {
	cases := []struct {
		in, step, expected string
	}{
		{in: "122.0181", step: "0.01", expected: "122.02"},
		{in: "5.038", step: "0.2", expected: "5"},
		{in: "5.438", step: "0.2", expected: "5.4"},
		{in: "130.2727", step: "0.5", expected: "130.5"},
		{in: "201.01", step: "5", expected: "200"},
		{in: "204", step: "5", expected: "205"},
	}

	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			in, step := decimal.RequireFromString(tt.in), decimal.RequireFromString(tt.step)
			rounded := common.RoundToMinPriceIncrement(in, step)
			assert.Equal(t, tt.expected, rounded.String())
			assert.True(t, rounded.Mod(step).IsZero())
		})
	}
}

func TestRoundToTick(t *testing.T) {
	cases := []struct {
		in, expected string
	}{
		{in: "9.994", expected: "9.99"},
		{in: "12.02", expected: "12"},
		{in: "12.03", expected: "12.05"},
		{in: "57.66", expected: "57.7"},
		{in: "123.2", expected: "123"},
		{in: "123.3", expected: "123.5"},
		{in: "612.4", expected: "612"},
		{in: "1012", expected: "1010"},
		{in: "1013", expected: "1015"},
	}

	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			rounded := common.RoundToTick(decimal.RequireFromString(tt.in))
			assert.Equal(t, tt.expected, rounded.String())
		})
	}
}

func TestSplitLots(t *testing.T) {
	cases := []struct {
		shares     int64
		board, odd int64
	}{
		{shares: 0, board: 0, odd: 0},
		{shares: -5, board: 0, odd: 0},
		{shares: 999, board: 0, odd: 999},
		{shares: 1000, board: 1000, odd: 0},
		{shares: 2345, board: 2000, odd: 345},
	}

	for _, tt := range cases {
		board, odd := common.SplitLots(tt.shares)
		assert.Equal(t, tt.board, board, tt.shares)
		assert.Equal(t, tt.odd, odd, tt.shares)
	}
}

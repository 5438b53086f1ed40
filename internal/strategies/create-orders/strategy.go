// Package createorders turns the target position of an analytics strategy
// into broker orders sized by the invested fund.
package createorders

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/thejimmylin/f5project/internal/clients/finlab"
	"github.com/thejimmylin/f5project/internal/clients/fugle"
	"github.com/thejimmylin/f5project/internal/strategies/common"
)

//go:generate mockgen -source=$GOFILE -destination=mocks/strategy_generated.go -package createordersmocks

const DefaultStrategy = "peg"

type PositionProvider interface {
	GetPosition(ctx context.Context, strategy string) ([]finlab.Holding, error)
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, request fugle.PlaceOrderRequest) (fugle.OrderID, error)
}

type Params struct {
	ViewOnly bool            `json:"view_only"`
	Fund     decimal.Decimal `json:"fund"`
	OddLot   bool            `json:"odd_lot"`
}

// DefaultParams are safe to run: nothing is sent to the broker.
func DefaultParams() Params {
	return Params{
		ViewOnly: true,
		Fund:     decimal.NewFromInt(10000),
		OddLot:   true,
	}
}

// Record describes one order. OrderID is set once the broker accepted it.
type Record struct {
	StockID  fugle.StockID   `json:"stock_id"`
	Side     fugle.Side      `json:"side"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	OddLot   bool            `json:"odd_lot"`
	OrderID  fugle.OrderID   `json:"order_id,omitempty"`
}

type Strategy struct {
	name      string
	positions PositionProvider
	logger    zerolog.Logger
}

func New(name string, positions PositionProvider) *Strategy {
	if name == "" {
		name = DefaultStrategy
	}
	return &Strategy{
		name:      name,
		positions: positions,
		logger:    log.With().Str("strategy", name).Logger(),
	}
}

func (s *Strategy) Name() string {
	return s.name
}

// Run plans the orders and, unless params.ViewOnly, places them. placer is
// not used in view only mode and may be nil.
func (s *Strategy) Run(ctx context.Context, params Params, placer OrderPlacer) ([]Record, error) {
	records, err := s.Plan(ctx, params.Fund, params.OddLot)
	if err != nil {
		return nil, err
	}
	if params.ViewOnly {
		return records, nil
	}
	return s.Execute(ctx, placer, records)
}

// Plan sizes the target position with fund. Without oddLot only whole board
// lots are bought.
func (s *Strategy) Plan(ctx context.Context, fund decimal.Decimal, oddLot bool) ([]Record, error) {
	if !fund.IsPositive() {
		return nil, fmt.Errorf("fund must be positive, got %s", fund)
	}

	holdings, err := s.positions.GetPosition(ctx, s.name)
	if err != nil {
		return nil, fmt.Errorf("get position: %w", err)
	}

	records := make([]Record, 0, len(holdings))
	for _, h := range holdings {
		if !h.Weight.IsPositive() || !h.Price.IsPositive() {
			s.logger.Debug().Str("stock", h.StockID).Msg("skip holding without weight or price")
			continue
		}

		shares := fund.Mul(h.Weight).Div(h.Price).Floor().IntPart()
		board, odd := common.SplitLots(shares)
		price := common.RoundToTick(h.Price)

		if board > 0 {
			records = append(records, Record{
				StockID:  fugle.StockID(h.StockID),
				Side:     fugle.SideBuy,
				Quantity: board,
				Price:    price,
			})
		}
		if oddLot && odd > 0 {
			records = append(records, Record{
				StockID:  fugle.StockID(h.StockID),
				Side:     fugle.SideBuy,
				Quantity: odd,
				Price:    price,
				OddLot:   true,
			})
		}
	}

	s.logger.Info().
		Str("fund", fund.String()).
		Bool("odd_lot", oddLot).
		Int("orders", len(records)).
		Msg("orders planned")

	return records, nil
}

// Execute places records in order and stops at the first rejected one.
func (s *Strategy) Execute(ctx context.Context, placer OrderPlacer, records []Record) ([]Record, error) {
	if placer == nil {
		return nil, fmt.Errorf("no order placer")
	}

	placed := make([]Record, len(records))
	copy(placed, records)

	for i, r := range placed {
		logger := s.logger.With().Str("stock", r.StockID.S()).Int64("quantity", r.Quantity).Logger()

		id, err := placer.PlaceOrder(ctx, fugle.PlaceOrderRequest{
			StockID:  r.StockID,
			Side:     r.Side,
			Quantity: r.Quantity,
			Price:    r.Price,
			OddLot:   r.OddLot,
		})
		if err != nil {
			return placed[:i], fmt.Errorf("place order %s x %d: %w", r.StockID, r.Quantity, err)
		}
		placed[i].OrderID = id

		logger.Info().Str("order_id", id.S()).Msg("order placed")
		common.CollectOrder(r.Price.InexactFloat64(), s.name, r.StockID, r.Side)
	}
	return placed, nil
}

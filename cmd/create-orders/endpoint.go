package main

import (
	"context"
	"fmt"

	projectruntime "github.com/thejimmylin/f5project/internal/services/project-runtime"
	createorders "github.com/thejimmylin/f5project/internal/strategies/create-orders"
)

func createOrders(rt *projectruntime.Runtime, s *createorders.Strategy, dataDir string) projectruntime.EndpointFunc {
	return func(ctx context.Context, p projectruntime.Params) (any, error) {
		params := createorders.DefaultParams()
		if err := p.Decode(&params); err != nil {
			return nil, err
		}

		if err := rt.Setup(ctx, dataDir); err != nil {
			return nil, fmt.Errorf("setup project: %w", err)
		}

		var placer createorders.OrderPlacer
		if !params.ViewOnly {
			session, err := rt.Session()
			if err != nil {
				return nil, err
			}
			placer = session
		}

		return s.Run(ctx, params, placer)
	}
}

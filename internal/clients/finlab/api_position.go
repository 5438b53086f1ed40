package finlab

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

// Holding is one stock of a strategy's target position.
type Holding struct {
	StockID string          `json:"stock_id"`
	Weight  decimal.Decimal `json:"weight"`
	Price   decimal.Decimal `json:"price"`
}

type positionResponse struct {
	Holdings []Holding `json:"holdings"`
}

// GetPosition returns the latest target position of the named strategy.
// The response is also written to the storage directory.
func (c *Client) GetPosition(ctx context.Context, strategy string) ([]Holding, error) {
	if c.sessionToken == "" {
		return nil, ErrNotLoggedIn
	}

	var resp positionResponse
	path := "/api/strategies/" + url.PathEscape(strategy) + "/position"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get position call: %w", err)
	}

	if c.storagePath != "" {
		if err := c.store(strategy, resp); err != nil {
			c.logger.Warn().Err(err).Str("strategy", strategy).Msg("cache position")
		}
	}
	return resp.Holdings, nil
}

func (c *Client) store(strategy string, resp positionResponse) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.storagePath, "position-"+url.PathEscape(strategy)+".json"), b, 0o600)
}

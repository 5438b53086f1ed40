package finlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

type loginRequest struct {
	APIToken string `json:"api_token"`
}

type loginResponse struct {
	SessionToken string `json:"session_token"`
}

// Login replaces the current session with one for token.
func (c *Client) Login(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("api token must be defined")
	}

	var resp loginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", loginRequest{APIToken: token}, &resp); err != nil {
		if isStatus(err, http.StatusUnauthorized) {
			return ErrInvalidToken
		}
		return fmt.Errorf("login call: %w", err)
	}
	if resp.SessionToken == "" {
		return fmt.Errorf("login call: empty session token")
	}

	c.sessionToken = resp.SessionToken
	c.logger.Info().Msg("logged in")
	return nil
}

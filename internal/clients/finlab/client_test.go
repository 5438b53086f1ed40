package finlab_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thejimmylin/f5project/internal/clients/finlab"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req["api_token"] != "good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"session_token": "sess"})
	})
	mux.HandleFunc("/api/strategies/peg/position", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sess" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"holdings":[{"stock_id":"2330","weight":"0.5","price":"512.5"}]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient(t *testing.T) {
	srv := newServer(t)
	storage := filepath.Join(t.TempDir(), "finlab_db")

	c, err := finlab.NewClient(srv.URL, srv.Client())
	require.NoError(t, err)
	require.NoError(t, c.SetDataDirectory(storage))
	assert.DirExists(t, storage)

	_, err = c.GetPosition(context.Background(), "peg")
	require.ErrorIs(t, err, finlab.ErrNotLoggedIn)

	err = c.Login(context.Background(), "bad-token")
	require.ErrorIs(t, err, finlab.ErrInvalidToken)

	require.NoError(t, c.Login(context.Background(), "good-token"))

	holdings, err := c.GetPosition(context.Background(), "peg")
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "2330", holdings[0].StockID)
	assert.True(t, holdings[0].Weight.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, holdings[0].Price.Equal(decimal.RequireFromString("512.5")))

	_, err = os.Stat(filepath.Join(storage, "position-peg.json"))
	assert.NoError(t, err)
}

func TestNewClient_NoBaseURL(t *testing.T) {
	_, err := finlab.NewClient("", nil)
	assert.Error(t, err)
}

package fugle_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thejimmylin/f5project/internal/clients/fugle"
	"github.com/thejimmylin/f5project/internal/keyring"
)

func newBroker(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req["password"] != "password" || req["cert_password"] != "cert-password" ||
			r.Header.Get("X-Api-Key") != "key" || r.Header.Get("X-Market-Api-Key") != "market-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "AQID", req["cert"])
		assert.Equal(t, "acc", req["account"])
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "session-token"})
	})
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer session-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2330", req["stock_id"])
		assert.Equal(t, "buy", req["side"])
		assert.EqualValues(t, 1000, req["quantity"])
		assert.NotEmpty(t, req["client_order_id"])

		_ = json.NewEncoder(w).Encode(map[string]string{"order_id": "oid1"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, entry string) string {
	t.Helper()

	path, err := fugle.Config{
		Cert:      "AQID",
		APIEntry:  entry,
		APIKey:    "key",
		APISecret: "secret",
		Account:   "acc",
	}.WriteFiles(t.TempDir())
	require.NoError(t, err)
	return path
}

func TestClient_Login(t *testing.T) {
	srv := newBroker(t)
	configPath := writeConfig(t, srv.URL)

	creds := keyring.NewMemory()
	require.NoError(t, creds.Put(fugle.NamespaceAccount, "acc", "password"))
	require.NoError(t, creds.Put(fugle.NamespaceCert, "acc", "cert-password"))

	c := fugle.NewClient(srv.Client())

	t.Run("ok", func(t *testing.T) {
		account, err := c.Login(context.Background(), configPath, "market-key", creds)
		require.NoError(t, err)
		assert.Equal(t, fugle.AccountID("acc"), account.ID())

		orderID, err := account.PlaceOrder(context.Background(), fugle.PlaceOrderRequest{
			StockID:  "2330",
			Side:     fugle.SideBuy,
			Quantity: 1000,
			Price:    decimal.RequireFromString("512.5"),
		})
		require.NoError(t, err)
		assert.Equal(t, fugle.OrderID("oid1"), orderID)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		_, err := c.Login(context.Background(), configPath, "wrong-market-key", creds)
		assert.ErrorIs(t, err, fugle.ErrInvalidCredentials)
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := c.Login(context.Background(), configPath, "market-key", keyring.NewMemory())
		assert.ErrorIs(t, err, keyring.ErrNotFound)
	})
}

func TestAccount_PlaceOrder_NotLoggedIn(t *testing.T) {
	_, err := new(fugle.Account).PlaceOrder(context.Background(), fugle.PlaceOrderRequest{Quantity: 1})
	assert.Error(t, err)
}

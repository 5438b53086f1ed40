package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

var stocks = []string{"2330", "2317", "2454", "1101", "2603", "0050"}

// Simulator fakes the analytics and broker HTTP APIs.
type Simulator struct {
	mu            sync.Mutex
	finlabTokens  map[string]struct{}
	fugleSessions map[string]string // Token to account.
	orders        []order
}

type order struct {
	ID      string          `json:"order_id"`
	Account string          `json:"account"`
	StockID string          `json:"stock_id"`
	Side    string          `json:"side"`
	Qty     int64           `json:"quantity"`
	Price   decimal.Decimal `json:"price"`
	OddLot  bool            `json:"odd_lot"`
}

func NewSimulator() *Simulator {
	return &Simulator{
		finlabTokens:  make(map[string]struct{}),
		fugleSessions: make(map[string]string),
	}
}

func (s *Simulator) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", s.finlabLogin)
	mux.HandleFunc("/api/strategies/", s.finlabPosition)
	mux.HandleFunc("/fugle/login", s.fugleLogin)
	mux.HandleFunc("/fugle/orders", s.fuglePlaceOrder)
	return mux
}

func (s *Simulator) Orders() []order {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]order, len(s.orders))
	copy(result, s.orders)
	return result
}

func bearer(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

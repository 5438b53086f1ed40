package main

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (s *Simulator) finlabLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "post only")
		return
	}

	var req struct {
		APIToken string `json:"api_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.APIToken == "" {
		writeError(w, http.StatusUnauthorized, "empty api token")
		return
	}

	token := uuid.NewString()

	s.mu.Lock()
	s.finlabTokens[token] = struct{}{}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"session_token": token})
}

func (s *Simulator) finlabPosition(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet || !strings.HasSuffix(r.URL.Path, "/position") {
		writeError(w, http.StatusNotFound, "simulator supports positions only")
		return
	}

	s.mu.Lock()
	_, ok := s.finlabTokens[bearer(r)]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusUnauthorized, "unknown session")
		return
	}

	n := 1 + rand.Intn(len(stocks))
	weight := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(n)))

	holdings := make([]map[string]any, 0, n)
	for _, i := range rand.Perm(len(stocks))[:n] {
		price := decimal.NewFromFloat(10 + rand.Float64()*990).Round(2)
		holdings = append(holdings, map[string]any{
			"stock_id": stocks[i],
			"weight":   weight,
			"price":    price,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"holdings": holdings})
}

package main

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

func (s *Simulator) fugleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "post only")
		return
	}
	if r.Header.Get("X-Api-Key") == "" || r.Header.Get("X-Api-Secret") == "" {
		writeError(w, http.StatusUnauthorized, "missing api key")
		return
	}

	var req struct {
		Account      string `json:"account"`
		Password     string `json:"password"`
		Cert         string `json:"cert"`
		CertPassword string `json:"cert_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Account == "" || req.Password == "" || req.CertPassword == "" {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}
	if _, err := base64.StdEncoding.DecodeString(req.Cert); err != nil || req.Cert == "" {
		writeError(w, http.StatusUnauthorized, "bad certificate")
		return
	}

	token := uuid.NewString()

	s.mu.Lock()
	s.fugleSessions[token] = req.Account
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Simulator) fuglePlaceOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "post only")
		return
	}

	s.mu.Lock()
	account, ok := s.fugleSessions[bearer(r)]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusUnauthorized, "unknown session")
		return
	}

	var o order
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if o.Account != account {
		writeError(w, http.StatusForbidden, "foreign account")
		return
	}
	if o.Qty <= 0 || (!o.OddLot && o.Qty%1000 != 0) || !o.Price.IsPositive() {
		writeError(w, http.StatusUnprocessableEntity, "invalid quantity or price")
		return
	}

	o.ID = uuid.NewString()

	s.mu.Lock()
	s.orders = append(s.orders, o)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"order_id": o.ID})
}

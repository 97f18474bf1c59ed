package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tallybook/tallybook/internal/books"
	"github.com/tallybook/tallybook/internal/journal"
)

// BalanceHandler handles balance and trial balance queries.
type BalanceHandler struct {
	service *books.Service
}

// NewBalanceHandler creates a new balance handler.
func NewBalanceHandler(service *books.Service) *BalanceHandler {
	return &BalanceHandler{service: service}
}

// GetAccountBalances handles GET /journals/{id}/balances.
// Balances are signed nets: positive means a net-debit position.
func (h *BalanceHandler) GetAccountBalances(w http.ResponseWriter, r *http.Request) {
	j, ok := h.journal(w, r)
	if !ok {
		return
	}

	balances, err := j.AccountBalances()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	out := make(map[string]map[string]string, len(balances))
	for category, accounts := range balances {
		bucket := make(map[string]string, len(accounts))
		for account, balance := range accounts {
			bucket[account] = balance.String()
		}
		out[string(category)] = bucket
	}

	respondJSON(w, out, http.StatusOK)
}

// GetCategoryBalances handles GET /journals/{id}/balances/categories.
func (h *BalanceHandler) GetCategoryBalances(w http.ResponseWriter, r *http.Request) {
	j, ok := h.journal(w, r)
	if !ok {
		return
	}

	totals, err := j.CategoryBalances()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	out := make(map[string]string, len(totals))
	for category, total := range totals {
		out[string(category)] = total.String()
	}

	respondJSON(w, out, http.StatusOK)
}

// GetAccountBalance handles GET /journals/{id}/balances/accounts/{name}.
func (h *BalanceHandler) GetAccountBalance(w http.ResponseWriter, r *http.Request) {
	j, ok := h.journal(w, r)
	if !ok {
		return
	}

	account := chi.URLParam(r, "name")
	balance, err := j.AccountBalance(account)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, map[string]string{
		"account": account,
		"balance": balance.String(),
	}, http.StatusOK)
}

// GetTrialBalance handles GET /journals/{id}/trial-balance.
func (h *BalanceHandler) GetTrialBalance(w http.ResponseWriter, r *http.Request) {
	j, ok := h.journal(w, r)
	if !ok {
		return
	}

	trial, err := j.TrialBalance()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, map[string]string{"trial_balance": trial.String()}, http.StatusOK)
}

func (h *BalanceHandler) journal(w http.ResponseWriter, r *http.Request) (*journal.Journal, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid journal ID", http.StatusBadRequest)
		return nil, false
	}

	j, err := h.service.GetJournal(id)
	if err != nil {
		respondServiceError(w, err)
		return nil, false
	}
	return j, true
}

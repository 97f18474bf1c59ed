package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallybook/tallybook/internal/books"
	"github.com/tallybook/tallybook/internal/journal"
)

// TransactionHandler handles transaction and entry requests.
type TransactionHandler struct {
	service *books.Service
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(service *books.Service) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// EntryRequest carries the debit/credit fields of one entry. Amounts are
// decimal strings.
type EntryRequest struct {
	Date           string `json:"date"` // YYYY-MM-DD
	Description    string `json:"description"`
	DebitCategory  string `json:"debit_category"`
	DebitAccount   string `json:"debit_account"`
	DebitAmount    string `json:"debit_amount"`
	CreditCategory string `json:"credit_category"`
	CreditAccount  string `json:"credit_account"`
	CreditAmount   string `json:"credit_amount"`
}

// TransactionResponse represents a recorded transaction.
type TransactionResponse struct {
	ID          int64          `json:"id"`
	Date        string         `json:"date"`
	Description string         `json:"description"`
	Entry       *EntryResponse `json:"entry,omitempty"`
}

// EntryResponse represents an entry or journal entry.
type EntryResponse struct {
	TransactionID  int64  `json:"transaction_id,omitempty"`
	Date           string `json:"date,omitempty"`
	Description    string `json:"description,omitempty"`
	DebitCategory  string `json:"debit_category"`
	DebitAccount   string `json:"debit_account"`
	DebitAmount    string `json:"debit_amount"`
	CreditCategory string `json:"credit_category"`
	CreditAccount  string `json:"credit_account"`
	CreditAmount   string `json:"credit_amount"`
}

// CreateTransaction handles POST /journals/{id}/transactions.
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, h.service.RecordTransaction)
}

// CreateAdjustment handles POST /journals/{id}/adjustments.
func (h *TransactionHandler) CreateAdjustment(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, h.service.PostAdjustment)
}

func (h *TransactionHandler) record(
	w http.ResponseWriter, r *http.Request,
	post func(uuid.UUID, string, string, books.EntryInput) (*journal.Transaction, error),
) {
	journalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid journal ID", http.StatusBadRequest)
		return
	}

	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Date == "" {
		respondError(w, "date is required", http.StatusBadRequest)
		return
	}

	in, err := entryInputFromRequest(req)
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	txn, err := post(journalID, req.Date, req.Description, in)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, transactionResponse(txn), http.StatusCreated)
}

// ListEntries handles GET /journals/{id}/entries with optional date= and
// account= filters.
func (h *TransactionHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	journalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid journal ID", http.StatusBadRequest)
		return
	}

	j, err := h.service.GetJournal(journalID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var entries []journal.JournalEntry
	switch {
	case r.URL.Query().Get("date") != "":
		entries = j.EntriesByDate(r.URL.Query().Get("date"))
	case r.URL.Query().Get("account") != "":
		entries = j.EntriesByAccount(r.URL.Query().Get("account"))
	default:
		entries = j.AllEntries()
	}

	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryResponse{
			TransactionID:  e.TransactionID,
			Date:           e.Date,
			Description:    e.Description,
			DebitCategory:  string(e.DebitCategory),
			DebitAccount:   e.DebitAccount,
			DebitAmount:    e.DebitAmount.String(),
			CreditCategory: string(e.CreditCategory),
			CreditAccount:  e.CreditAccount,
			CreditAmount:   e.CreditAmount.String(),
		})
	}

	respondJSON(w, out, http.StatusOK)
}

func entryInputFromRequest(req EntryRequest) (books.EntryInput, error) {
	debitAmount, err := parseAmountField("debit_amount", req.DebitAmount)
	if err != nil {
		return books.EntryInput{}, err
	}
	creditAmount, err := parseAmountField("credit_amount", req.CreditAmount)
	if err != nil {
		return books.EntryInput{}, err
	}

	return books.EntryInput{
		DebitCategory:  req.DebitCategory,
		DebitAccount:   req.DebitAccount,
		DebitAmount:    debitAmount,
		CreditCategory: req.CreditCategory,
		CreditAccount:  req.CreditAccount,
		CreditAmount:   creditAmount,
	}, nil
}

func parseAmountField(name, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, &amountError{field: name}
	}
	return d, nil
}

type amountError struct {
	field string
}

func (e *amountError) Error() string {
	return "invalid decimal value for " + e.field
}

func transactionResponse(txn *journal.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          txn.ID,
		Date:        txn.Date,
		Description: txn.Description,
	}
	if txn.Entry != nil {
		resp.Entry = &EntryResponse{
			DebitCategory:  string(txn.Entry.DebitCategory),
			DebitAccount:   txn.Entry.DebitAccount,
			DebitAmount:    txn.Entry.DebitAmount.String(),
			CreditCategory: string(txn.Entry.CreditCategory),
			CreditAccount:  txn.Entry.CreditAccount,
			CreditAmount:   txn.Entry.CreditAmount.String(),
		}
	}
	return resp
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tallybook/tallybook/internal/books"
	"github.com/tallybook/tallybook/internal/journal"
)

// JournalHandler handles journal lifecycle requests.
type JournalHandler struct {
	service *books.Service
}

// NewJournalHandler creates a new journal handler.
func NewJournalHandler(service *books.Service) *JournalHandler {
	return &JournalHandler{service: service}
}

// CreateJournalRequest represents the journal creation request.
type CreateJournalRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

// JournalResponse represents a journal summary.
type JournalResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Transactions int    `json:"transactions"`
	Adjustments  int    `json:"adjustments"`
	Summary      string `json:"summary,omitempty"`
}

// CreateJournal handles POST /journals.
func (h *JournalHandler) CreateJournal(w http.ResponseWriter, r *http.Request) {
	var req CreateJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.service.CreateJournal(req.Name, req.StartDate, req.EndDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, JournalResponse{
		ID:        id.String(),
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}, http.StatusCreated)
}

// ListJournals handles GET /journals.
func (h *JournalHandler) ListJournals(w http.ResponseWriter, r *http.Request) {
	infos := h.service.ListJournals()

	out := make([]JournalResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, JournalResponse{
			ID:           info.ID.String(),
			Name:         info.Name,
			StartDate:    info.StartDate,
			EndDate:      info.EndDate,
			Transactions: info.Transactions,
			Adjustments:  info.Adjustments,
		})
	}

	respondJSON(w, out, http.StatusOK)
}

// GetJournal handles GET /journals/{id}.
func (h *JournalHandler) GetJournal(w http.ResponseWriter, r *http.Request) {
	id, j, ok := h.journalFromRequest(w, r)
	if !ok {
		return
	}

	respondJSON(w, JournalResponse{
		ID:           id.String(),
		Name:         j.Name,
		StartDate:    j.StartDate,
		EndDate:      j.EndDate,
		Transactions: j.Count(),
		Adjustments:  j.AdjustmentCount(),
		Summary:      j.Describe(),
	}, http.StatusOK)
}

func (h *JournalHandler) journalFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, *journal.Journal, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid journal ID", http.StatusBadRequest)
		return uuid.Nil, nil, false
	}

	j, err := h.service.GetJournal(id)
	if err != nil {
		respondServiceError(w, err)
		return uuid.Nil, nil, false
	}

	return id, j, true
}

package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tallybook/tallybook/internal/books"
	"github.com/tallybook/tallybook/internal/journal"
	"github.com/tallybook/tallybook/internal/report"
)

// ReportCacheInterface defines the cache operations needed by ReportHandler.
type ReportCacheInterface interface {
	Get(ctx context.Context, journalID uuid.UUID, revision int) (string, bool, error)
	Set(ctx context.Context, journalID uuid.UUID, revision int, document string) error
}

// ReportHandler handles report rendering, CSV export and CSV import.
type ReportHandler struct {
	service *books.Service
	cache   ReportCacheInterface // optional
}

// NewReportHandler creates a new report handler. cache may be nil.
func NewReportHandler(service *books.Service, cache ReportCacheInterface) *ReportHandler {
	return &ReportHandler{service: service, cache: cache}
}

// GetTrialBalanceReport handles GET /journals/{id}/report. The rendered
// document is cached by journal revision when a cache is configured.
func (h *ReportHandler) GetTrialBalanceReport(w http.ResponseWriter, r *http.Request) {
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

	revision := j.Revision()
	if h.cache != nil {
		if doc, ok, err := h.cache.Get(r.Context(), journalID, revision); err == nil && ok {
			writeText(w, doc)
			return
		}
	}

	var buf bytes.Buffer
	if err := report.WriteTrialBalance(&buf, j); err != nil {
		respondServiceError(w, err)
		return
	}

	if h.cache != nil {
		// Cache failures only cost the next render.
		_ = h.cache.Set(r.Context(), journalID, revision, buf.String())
	}

	writeText(w, buf.String())
}

// ExportEntries handles GET /journals/{id}/entries/export.
func (h *ReportHandler) ExportEntries(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="entries.csv"`)
	if err := report.WriteEntriesCSV(w, j.AllEntries()); err != nil {
		respondError(w, "failed to export entries", http.StatusInternalServerError)
	}
}

// ImportTransactions handles POST /journals/{id}/import with a CSV body.
func (h *ReportHandler) ImportTransactions(w http.ResponseWriter, r *http.Request) {
	journalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid journal ID", http.StatusBadRequest)
		return
	}

	n, err := h.service.ImportCSV(journalID, r.Body)
	if err != nil {
		switch {
		case errors.Is(err, books.ErrJournalNotFound),
			errors.Is(err, journal.ErrInvalidAmount),
			errors.Is(err, journal.ErrUnbalancedEntry),
			errors.Is(err, journal.ErrInvalidCategory),
			errors.Is(err, journal.ErrNoEntryRecorded):
			respondServiceError(w, err)
		default:
			// Malformed CSV is a client error.
			respondError(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	respondJSON(w, map[string]int{"imported": n}, http.StatusCreated)
}

func writeText(w http.ResponseWriter, doc string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tallybook/tallybook/internal/books"
	"github.com/tallybook/tallybook/internal/journal"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, ErrorResponse{Error: message}, statusCode)
}

// respondServiceError maps service and journal errors to HTTP status codes.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, books.ErrJournalNotFound):
		respondError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, books.ErrNameRequired):
		respondError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, journal.ErrLedgerImbalance):
		respondError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, journal.ErrInvalidAmount),
		errors.Is(err, journal.ErrUnbalancedEntry),
		errors.Is(err, journal.ErrInvalidCategory),
		errors.Is(err, journal.ErrNoEntryRecorded):
		respondError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		respondError(w, "internal server error", http.StatusInternalServerError)
	}
}

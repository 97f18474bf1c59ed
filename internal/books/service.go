// Package books is the service boundary over the core journal package: a
// registry of journals plus the orchestration the HTTP layer talks to.
package books

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallybook/tallybook/internal/importer"
	"github.com/tallybook/tallybook/internal/journal"
)

// EntryInput carries the debit/credit fields of one entry across the service
// boundary. Categories are plain strings here; the journal validates them.
type EntryInput struct {
	DebitCategory  string
	DebitAccount   string
	DebitAmount    decimal.Decimal
	CreditCategory string
	CreditAccount  string
	CreditAmount   decimal.Decimal
}

// JournalInfo is a summary of one registered journal.
type JournalInfo struct {
	ID           uuid.UUID
	Name         string
	StartDate    string
	EndDate      string
	Transactions int
	Adjustments  int
}

// Service owns the process-wide transaction ID sequence and an in-memory,
// uuid-keyed registry of journals.
type Service struct {
	seq *journal.Sequence

	mu       sync.RWMutex
	journals map[uuid.UUID]*journal.Journal
}

// NewService creates an empty service with a fresh ID sequence.
func NewService() *Service {
	return &Service{
		seq:      journal.NewSequence(),
		journals: make(map[uuid.UUID]*journal.Journal),
	}
}

// CreateJournal registers a new journal and returns its ID.
func (s *Service) CreateJournal(name, startDate, endDate string) (uuid.UUID, error) {
	if name == "" {
		return uuid.Nil, ErrNameRequired
	}

	id := uuid.New()
	j := journal.New(name, startDate, endDate, s.seq)

	s.mu.Lock()
	s.journals[id] = j
	s.mu.Unlock()

	return id, nil
}

// GetJournal returns the journal registered under id.
func (s *Service) GetJournal(id uuid.UUID) (*journal.Journal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.journals[id]
	if !ok {
		return nil, ErrJournalNotFound
	}
	return j, nil
}

// ListJournals returns a summary of every registered journal, sorted by name.
func (s *Service) ListJournals() []JournalInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]JournalInfo, 0, len(s.journals))
	for id, j := range s.journals {
		out = append(out, JournalInfo{
			ID:           id,
			Name:         j.Name,
			StartDate:    j.StartDate,
			EndDate:      j.EndDate,
			Transactions: j.Count(),
			Adjustments:  j.AdjustmentCount(),
		})
	}

	sort.Slice(out, func(i, k int) bool {
		if out[i].Name != out[k].Name {
			return out[i].Name < out[k].Name
		}
		return out[i].ID.String() < out[k].ID.String()
	})
	return out
}

// RecordTransaction constructs a transaction from the input, validates its
// entry and appends it to the journal.
func (s *Service) RecordTransaction(journalID uuid.UUID, date, description string, in EntryInput) (*journal.Transaction, error) {
	j, err := s.GetJournal(journalID)
	if err != nil {
		return nil, err
	}

	txn := journal.NewTransaction(s.seq, date, description)
	err = txn.AddEntry(
		journal.Category(in.DebitCategory), in.DebitAccount, in.DebitAmount,
		journal.Category(in.CreditCategory), in.CreditAccount, in.CreditAmount,
	)
	if err != nil {
		return nil, err
	}

	if err := j.AddTransaction(txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// PostAdjustment posts an adjusting entry to the journal.
func (s *Service) PostAdjustment(journalID uuid.UUID, date, description string, in EntryInput) (*journal.Transaction, error) {
	j, err := s.GetJournal(journalID)
	if err != nil {
		return nil, err
	}

	return j.AdjustEntry(date, description,
		journal.Category(in.DebitCategory), in.DebitAccount, in.DebitAmount,
		journal.Category(in.CreditCategory), in.CreditAccount, in.CreditAmount,
	)
}

// ImportCSV reads transaction records from r and posts them into the
// journal. It returns the number of records posted.
func (s *Service) ImportCSV(journalID uuid.UUID, r io.Reader) (int, error) {
	j, err := s.GetJournal(journalID)
	if err != nil {
		return 0, err
	}

	records, err := importer.ReadCSV(r)
	if err != nil {
		return 0, fmt.Errorf("failed to parse import: %w", err)
	}

	if err := importer.Post(j, s.seq, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

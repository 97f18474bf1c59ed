// Package importer reads transaction-like records from a tabular source and
// posts them into a journal. It is a boundary collaborator: all validation
// stays in the journal package.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tallybook/internal/journal"
)

// Record is one imported transaction row. Absent numeric fields default to
// zero and absent text fields to the empty string.
type Record struct {
	Date           string
	Description    string
	DebitCategory  string
	DebitAccount   string
	DebitAmount    decimal.Decimal
	CreditCategory string
	CreditAccount  string
	CreditAmount   decimal.Decimal
}

// Expected column headers. Matching is exact after whitespace trimming.
const (
	colTransactionID  = "Transaction ID"
	colDate           = "Date"
	colDescription    = "Description"
	colDebitCategory  = "Debit Category"
	colDebitAccount   = "Debit Account"
	colDebitAmount    = "Debit Amount"
	colCreditCategory = "Credit Category"
	colCreditAccount  = "Credit Account"
	colCreditAmount   = "Credit Amount"
)

// ReadCSV parses transaction records from a CSV document with a header row.
// Each record is keyed by its Transaction ID column when present and
// non-empty, otherwise by date plus the description truncated to 20
// characters, so rows without explicit IDs do not overwrite each other.
func ReadCSV(r io.Reader) (map[string]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	if _, ok := cols[colDate]; !ok {
		return nil, fmt.Errorf("missing required column %q", colDate)
	}

	records := make(map[string]Record)
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		line++

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		debitAmount, err := parseAmount(field(colDebitAmount))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		creditAmount, err := parseAmount(field(colCreditAmount))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		rec := Record{
			Date:           field(colDate),
			Description:    field(colDescription),
			DebitCategory:  field(colDebitCategory),
			DebitAccount:   field(colDebitAccount),
			DebitAmount:    debitAmount,
			CreditCategory: field(colCreditCategory),
			CreditAccount:  field(colCreditAccount),
			CreditAmount:   creditAmount,
		}

		key := field(colTransactionID)
		if key == "" {
			key = rec.Date + "_" + truncate(rec.Description, 20)
		}
		records[key] = rec
	}

	return records, nil
}

// Post turns each record into one transaction and appends it to the journal.
// Records are posted in sorted key order so repeated imports of the same
// document produce the same entry order. The first failing record aborts the
// import with its key wrapped in the error.
func Post(j *journal.Journal, seq *journal.Sequence, records map[string]Record) error {
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		rec := records[key]

		txn := journal.NewTransaction(seq, rec.Date, rec.Description)
		err := txn.AddEntry(
			journal.Category(rec.DebitCategory), rec.DebitAccount, rec.DebitAmount,
			journal.Category(rec.CreditCategory), rec.CreditAccount, rec.CreditAmount,
		)
		if err != nil {
			return fmt.Errorf("record %q: %w", key, err)
		}

		if err := j.AddTransaction(txn); err != nil {
			return fmt.Errorf("record %q: %w", key, err)
		}
	}

	return nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

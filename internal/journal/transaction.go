package journal

import (
	"sync/atomic"

	"github.com/shopspring/decimal"
)

// Category classifies an account under the accounting equation
// (Assets = Liabilities + Equity).
type Category string

const (
	CategoryAsset     Category = "asset"
	CategoryLiability Category = "liability"
	CategoryEquity    Category = "equity"
)

// IsValid reports whether the category is one of the three known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryAsset, CategoryLiability, CategoryEquity:
		return true
	}
	return false
}

// AllCategories returns the categories in accounting-equation order.
func AllCategories() []Category {
	return []Category{CategoryAsset, CategoryLiability, CategoryEquity}
}

// Sequence allocates monotonically increasing transaction IDs. One Sequence
// is shared by every transaction constructed in the process; tests create
// their own to isolate numbering.
type Sequence struct {
	n atomic.Int64
}

// NewSequence creates a sequence starting at 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next returns the next transaction ID.
func (s *Sequence) Next() int64 {
	return s.n.Add(1)
}

// Entry is one balanced debit/credit pair. Once recorded on a transaction it
// is never mutated.
type Entry struct {
	DebitCategory  Category
	DebitAccount   string
	DebitAmount    decimal.Decimal
	CreditCategory Category
	CreditAccount  string
	CreditAmount   decimal.Decimal
}

// Validate checks the entry invariants: non-negative amounts, debit equal to
// credit, and known categories on both sides.
func (e *Entry) Validate() error {
	if e.DebitAmount.IsNegative() || e.CreditAmount.IsNegative() {
		return ErrInvalidAmount
	}

	if !e.DebitAmount.Equal(e.CreditAmount) {
		return ErrUnbalancedEntry
	}

	if !e.DebitCategory.IsValid() || !e.CreditCategory.IsValid() {
		return ErrInvalidCategory
	}

	return nil
}

// Transaction represents a single business transaction. It becomes usable
// once AddEntry has recorded its balanced debit/credit pair.
type Transaction struct {
	ID          int64
	Date        string // YYYY-MM-DD
	Description string
	Entry       *Entry
}

// NewTransaction allocates an ID from seq and returns a transaction with no
// entry recorded yet.
func NewTransaction(seq *Sequence, date, description string) *Transaction {
	return &Transaction{
		ID:          seq.Next(),
		Date:        date,
		Description: description,
	}
}

// AddEntry validates and records the transaction's debit/credit pair.
// Calling it again replaces the previous entry; callers are expected to
// record the entry exactly once.
func (t *Transaction) AddEntry(
	debitCategory Category, debitAccount string, debitAmount decimal.Decimal,
	creditCategory Category, creditAccount string, creditAmount decimal.Decimal,
) error {
	entry := &Entry{
		DebitCategory:  debitCategory,
		DebitAccount:   debitAccount,
		DebitAmount:    debitAmount,
		CreditCategory: creditCategory,
		CreditAccount:  creditAccount,
		CreditAmount:   creditAmount,
	}

	if err := entry.Validate(); err != nil {
		return err
	}

	t.Entry = entry
	return nil
}

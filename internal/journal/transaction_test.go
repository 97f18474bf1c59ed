package journal_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tallybook/internal/journal"
)

func TestCategory_IsValid(t *testing.T) {
	for _, c := range journal.AllCategories() {
		t.Run(string(c), func(t *testing.T) {
			assert.True(t, c.IsValid())
		})
	}

	assert.False(t, journal.Category("revenue").IsValid())
	assert.False(t, journal.Category("").IsValid())
	assert.False(t, journal.Category("Asset").IsValid(), "categories are case-sensitive")
}

func TestSequence_Next(t *testing.T) {
	seq := journal.NewSequence()

	assert.Equal(t, int64(1), seq.Next())
	assert.Equal(t, int64(2), seq.Next())
	assert.Equal(t, int64(3), seq.Next())

	// A fresh sequence starts over; numbering is per-allocator, not global.
	other := journal.NewSequence()
	assert.Equal(t, int64(1), other.Next())
}

func TestNewTransaction(t *testing.T) {
	seq := journal.NewSequence()

	txn := journal.NewTransaction(seq, "2025-11-04", "Owner invested $100,000 cash")

	assert.Equal(t, int64(1), txn.ID)
	assert.Equal(t, "2025-11-04", txn.Date)
	assert.Equal(t, "Owner invested $100,000 cash", txn.Description)
	assert.Nil(t, txn.Entry, "a new transaction has no entry recorded")
}

func TestTransaction_AddEntry(t *testing.T) {
	seq := journal.NewSequence()

	t.Run("valid entry", func(t *testing.T) {
		txn := journal.NewTransaction(seq, "2025-11-04", "Owner investment")
		err := txn.AddEntry(
			journal.CategoryAsset, "Cash", decimal.NewFromInt(100000),
			journal.CategoryEquity, "Owners Capital", decimal.NewFromInt(100000),
		)
		require.NoError(t, err)
		require.NotNil(t, txn.Entry)
		assert.Equal(t, "Cash", txn.Entry.DebitAccount)
		assert.Equal(t, "Owners Capital", txn.Entry.CreditAccount)
		assert.True(t, txn.Entry.DebitAmount.Equal(txn.Entry.CreditAmount))
	})

	t.Run("negative amount", func(t *testing.T) {
		txn := journal.NewTransaction(seq, "2025-11-04", "bad amount")
		err := txn.AddEntry(
			journal.CategoryAsset, "Cash", decimal.NewFromInt(-1),
			journal.CategoryEquity, "Owners Capital", decimal.NewFromInt(-1),
		)
		assert.ErrorIs(t, err, journal.ErrInvalidAmount)
		assert.Nil(t, txn.Entry, "failed AddEntry must not record an entry")
	})

	t.Run("debit does not match credit", func(t *testing.T) {
		txn := journal.NewTransaction(seq, "2025-11-04", "unbalanced")
		err := txn.AddEntry(
			journal.CategoryAsset, "Cash", decimal.NewFromInt(100),
			journal.CategoryEquity, "Owners Capital", decimal.NewFromInt(99),
		)
		assert.ErrorIs(t, err, journal.ErrUnbalancedEntry)
	})

	t.Run("unknown category", func(t *testing.T) {
		txn := journal.NewTransaction(seq, "2025-11-04", "bad category")
		err := txn.AddEntry(
			journal.Category("expense"), "Rent", decimal.NewFromInt(100),
			journal.CategoryAsset, "Cash", decimal.NewFromInt(100),
		)
		assert.ErrorIs(t, err, journal.ErrInvalidCategory)
	})

	t.Run("negative amount reported before imbalance", func(t *testing.T) {
		txn := journal.NewTransaction(seq, "2025-11-04", "both invalid")
		err := txn.AddEntry(
			journal.CategoryAsset, "Cash", decimal.NewFromInt(-5),
			journal.CategoryEquity, "Owners Capital", decimal.NewFromInt(5),
		)
		assert.ErrorIs(t, err, journal.ErrInvalidAmount)
	})

	t.Run("second call overwrites the entry", func(t *testing.T) {
		txn := journal.NewTransaction(seq, "2025-11-04", "overwrite")
		require.NoError(t, txn.AddEntry(
			journal.CategoryAsset, "Cash", decimal.NewFromInt(100),
			journal.CategoryEquity, "Owners Capital", decimal.NewFromInt(100),
		))
		require.NoError(t, txn.AddEntry(
			journal.CategoryAsset, "Land", decimal.NewFromInt(200),
			journal.CategoryAsset, "Cash", decimal.NewFromInt(200),
		))
		assert.Equal(t, "Land", txn.Entry.DebitAccount)
		assert.True(t, txn.Entry.DebitAmount.Equal(decimal.NewFromInt(200)))
	})
}

func TestEntry_Validate_ZeroAmounts(t *testing.T) {
	e := &journal.Entry{
		DebitCategory:  journal.CategoryAsset,
		DebitAccount:   "Cash",
		DebitAmount:    decimal.Zero,
		CreditCategory: journal.CategoryEquity,
		CreditAccount:  "Owners Capital",
		CreditAmount:   decimal.Zero,
	}

	assert.NoError(t, e.Validate(), "zero amounts are non-negative and balanced")
}

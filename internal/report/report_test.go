package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tallybook/internal/journal"
	"github.com/tallybook/tallybook/internal/report"
)

func buildJournal(t *testing.T) *journal.Journal {
	t.Helper()

	seq := journal.NewSequence()
	j := journal.New("Acme Trading", "2025-01-01", "2025-12-31", seq)

	txn := journal.NewTransaction(seq, "2025-11-04", "Owner invested $100,000 cash")
	require.NoError(t, txn.AddEntry(
		journal.CategoryAsset, "Cash", decimal.NewFromInt(100000),
		journal.CategoryEquity, "Owners Capital", decimal.NewFromInt(100000),
	))
	require.NoError(t, j.AddTransaction(txn))

	txn = journal.NewTransaction(seq, "2025-11-10", "Received unearned revenue")
	require.NoError(t, txn.AddEntry(
		journal.CategoryAsset, "Cash", decimal.NewFromInt(4800),
		journal.CategoryLiability, "Unearned revenue", decimal.NewFromInt(4800),
	))
	require.NoError(t, j.AddTransaction(txn))

	return j
}

func TestWriteTrialBalance(t *testing.T) {
	j := buildJournal(t)

	var buf bytes.Buffer
	require.NoError(t, report.WriteTrialBalance(&buf, j))
	out := buf.String()

	assert.Contains(t, out, "Acme Trading")
	assert.Contains(t, out, "Adjusted Trial Balance")
	assert.Contains(t, out, "Operating period 2025-01-01 to 2025-12-31")
	assert.Contains(t, out, "Assets:")
	assert.Contains(t, out, "Liabilities and Equity:")
	assert.Contains(t, out, "Cash")
	assert.Contains(t, out, "104800")

	// Credit-side balances are printed as absolute values.
	assert.Contains(t, out, "Owners Capital")
	assert.NotContains(t, out, "-100000")

	assert.Contains(t, out, "Total assets")
	assert.Contains(t, out, "Total liabilities")
	assert.Contains(t, out, "Total equity")
	assert.Contains(t, out, "Total liabilities and equity")

	// Grand total matches the asset side when the ledger balances.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := lines[len(lines)-1]
	assert.Contains(t, last, "104800")
}

func TestWriteTrialBalance_SkipsZeroBalances(t *testing.T) {
	seq := journal.NewSequence()
	j := journal.New("Acme Trading", "2025-01-01", "2025-12-31", seq)

	txn := journal.NewTransaction(seq, "2025-11-04", "Owner investment")
	require.NoError(t, txn.AddEntry(
		journal.CategoryAsset, "Cash", decimal.NewFromInt(500),
		journal.CategoryEquity, "Owners Capital", decimal.NewFromInt(500),
	))
	require.NoError(t, j.AddTransaction(txn))

	// Supplies nets to zero: bought and fully credited back.
	txn = journal.NewTransaction(seq, "2025-11-05", "Buy supplies")
	require.NoError(t, txn.AddEntry(
		journal.CategoryAsset, "Supplies", decimal.NewFromInt(100),
		journal.CategoryAsset, "Cash", decimal.NewFromInt(100),
	))
	require.NoError(t, j.AddTransaction(txn))
	txn = journal.NewTransaction(seq, "2025-11-06", "Return supplies")
	require.NoError(t, txn.AddEntry(
		journal.CategoryAsset, "Cash", decimal.NewFromInt(100),
		journal.CategoryAsset, "Supplies", decimal.NewFromInt(100),
	))
	require.NoError(t, j.AddTransaction(txn))

	var buf bytes.Buffer
	require.NoError(t, report.WriteTrialBalance(&buf, j))

	assert.NotContains(t, buf.String(), "Supplies")
}

func TestWriteTrialBalance_Imbalance(t *testing.T) {
	// An empty journal is trivially balanced; the writer reports whatever
	// the journal's balance check reports.
	seq := journal.NewSequence()
	j := journal.New("Acme Trading", "2025-01-01", "2025-12-31", seq)

	var buf bytes.Buffer
	assert.NoError(t, report.WriteTrialBalance(&buf, j))
}

func TestWriteTransactionTable(t *testing.T) {
	j := buildJournal(t)

	var buf bytes.Buffer
	require.NoError(t, report.WriteTransactionTable(&buf, j.Transactions()))
	out := buf.String()

	assert.Contains(t, out, "Owner invested $100,000 cash")
	assert.Contains(t, out, "Received unearned revenue")
	assert.Contains(t, out, "Cash")
	assert.Contains(t, out, "100000")
}

func TestWriteEntriesCSV_RoundTripsThroughImporter(t *testing.T) {
	j := buildJournal(t)

	var buf bytes.Buffer
	require.NoError(t, report.WriteEntriesCSV(&buf, j.AllEntries()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Transaction ID,Date,Description"))
	assert.Contains(t, out, "asset,Cash,100000,equity,Owners Capital,100000")
	assert.Equal(t, 3, strings.Count(out, "\n"), "header plus one line per entry")
}

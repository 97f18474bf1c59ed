// Package report renders a journal's derived data into plain-text and CSV
// documents. Sign normalization happens here and nowhere else: the core
// keeps signed net balances, the report prints absolute values.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tallybook/internal/journal"
)

// WriteTransactionTable writes the transaction register as an aligned text
// table. Transactions without a recorded entry are skipped.
func WriteTransactionTable(w io.Writer, txns []*journal.Transaction) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tDate\tDescription\tDebit Account\tDebit\tCredit Account\tCredit")
	for _, txn := range txns {
		if txn.Entry == nil {
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			txn.ID, txn.Date, txn.Description,
			txn.Entry.DebitAccount, txn.Entry.DebitAmount,
			txn.Entry.CreditAccount, txn.Entry.CreditAmount,
		)
	}

	return tw.Flush()
}

// WriteTrialBalance writes the adjusted trial balance document: an Assets
// section and a Liabilities and Equity section with subtotals, followed by
// the grand total of liabilities plus equity. Accounts with a zero balance
// are omitted.
func WriteTrialBalance(w io.Writer, j *journal.Journal) error {
	balances, err := j.AccountBalances()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, j.Name)
	fmt.Fprintln(w, "Adjusted Trial Balance")
	fmt.Fprintf(w, "Operating period %s to %s\n\n", j.StartDate, j.EndDate)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	assetTotal := writeSection(tw, "Assets:", balances[journal.CategoryAsset])
	fmt.Fprintf(tw, "Total assets\t%s\n\n", assetTotal.Abs())

	fmt.Fprintln(tw, "Liabilities and Equity:")
	liabilityTotal := writeAccounts(tw, balances[journal.CategoryLiability])
	equityTotal := writeAccounts(tw, balances[journal.CategoryEquity])
	fmt.Fprintf(tw, "Total liabilities\t%s\n", liabilityTotal.Abs())
	fmt.Fprintf(tw, "Total equity\t%s\n", equityTotal.Abs())
	fmt.Fprintf(tw, "Total liabilities and equity\t%s\n", liabilityTotal.Abs().Add(equityTotal.Abs()))

	return tw.Flush()
}

// WriteEntriesCSV exports journal entries in the same column layout the
// importer reads, so an exported journal can be re-imported.
func WriteEntriesCSV(w io.Writer, entries []journal.JournalEntry) error {
	cw := csv.NewWriter(w)

	header := []string{
		"Transaction ID", "Date", "Description",
		"Debit Category", "Debit Account", "Debit Amount",
		"Credit Category", "Credit Account", "Credit Amount",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, e := range entries {
		row := []string{
			fmt.Sprintf("%d", e.TransactionID), e.Date, e.Description,
			string(e.DebitCategory), e.DebitAccount, e.DebitAmount.String(),
			string(e.CreditCategory), e.CreditAccount, e.CreditAmount.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeSection(w io.Writer, title string, accounts map[string]decimal.Decimal) decimal.Decimal {
	fmt.Fprintln(w, title)
	return writeAccounts(w, accounts)
}

// writeAccounts prints non-zero account balances in name order and returns
// the signed section total.
func writeAccounts(w io.Writer, accounts map[string]decimal.Decimal) decimal.Decimal {
	names := make([]string, 0, len(accounts))
	for name := range accounts {
		names = append(names, name)
	}
	sort.Strings(names)

	total := decimal.Zero
	for _, name := range names {
		balance := accounts[name]
		if balance.IsZero() {
			continue
		}
		total = total.Add(balance)
		fmt.Fprintf(w, "  %s\t%s\n", name, balance.Abs())
	}
	return total
}

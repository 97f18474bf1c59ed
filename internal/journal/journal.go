package journal

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// JournalEntry is the flattened, read-only projection of a transaction and
// its entry. One is derived per transaction added; entries are never mutated
// or removed.
type JournalEntry struct {
	TransactionID  int64
	Date           string
	Description    string
	DebitCategory  Category
	DebitAccount   string
	DebitAmount    decimal.Decimal
	CreditCategory Category
	CreditAccount  string
	CreditAmount   decimal.Decimal
}

// Journal is an append-only ordered collection of transactions. Balances and
// the trial balance are derived on demand; the total debit/credit equality is
// re-checked before every balance query rather than cached.
//
// The journal is safe for concurrent use: queries take a read lock, mutations
// a write lock.
type Journal struct {
	Name      string
	StartDate string
	EndDate   string

	mu           sync.RWMutex
	seq          *Sequence
	transactions []*Transaction
	entries      []JournalEntry
	adjustments  int
}

// New creates an empty journal covering the given operating period.
// Adjusting entries posted through AdjustEntry draw their IDs from seq.
func New(name, startDate, endDate string, seq *Sequence) *Journal {
	return &Journal{
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
		seq:       seq,
	}
}

// AddTransaction appends txn to the journal and derives its journal entry.
// The transaction must have an entry recorded. Insertion order is preserved;
// callers control chronological ordering by insertion order.
func (j *Journal) AddTransaction(txn *Transaction) error {
	if txn.Entry == nil {
		return ErrNoEntryRecorded
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.transactions = append(j.transactions, txn)
	j.entries = append(j.entries, JournalEntry{
		TransactionID:  txn.ID,
		Date:           txn.Date,
		Description:    txn.Description,
		DebitCategory:  txn.Entry.DebitCategory,
		DebitAccount:   txn.Entry.DebitAccount,
		DebitAmount:    txn.Entry.DebitAmount,
		CreditCategory: txn.Entry.CreditCategory,
		CreditAccount:  txn.Entry.CreditAccount,
		CreditAmount:   txn.Entry.CreditAmount,
	})

	return nil
}

// AdjustEntry posts an adjusting entry: a normal transaction tracked by the
// adjustment counter instead of the transaction count. Amount positivity and
// debit/credit equality are checked here before construction; AddEntry
// re-validates them along with the categories.
func (j *Journal) AdjustEntry(
	adjustmentDate, description string,
	debitCategory Category, debitAccount string, debitAmount decimal.Decimal,
	creditCategory Category, creditAccount string, creditAmount decimal.Decimal,
) (*Transaction, error) {
	j.mu.Lock()
	j.adjustments++
	j.mu.Unlock()

	if debitAmount.IsNegative() || creditAmount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	if !debitAmount.Equal(creditAmount) {
		return nil, ErrUnbalancedEntry
	}

	txn := NewTransaction(j.seq, adjustmentDate, description)
	if err := txn.AddEntry(debitCategory, debitAccount, debitAmount, creditCategory, creditAccount, creditAmount); err != nil {
		return nil, err
	}

	if err := j.AddTransaction(txn); err != nil {
		return nil, err
	}

	return txn, nil
}

// AllEntries returns every journal entry in insertion order.
func (j *Journal) AllEntries() []JournalEntry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]JournalEntry, len(j.entries))
	copy(out, j.entries)
	return out
}

// EntriesByDate returns the entries whose date exactly equals date, in
// insertion order. Dates are compared as strings; there are no range
// semantics.
func (j *Journal) EntriesByDate(date string) []JournalEntry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var out []JournalEntry
	for _, e := range j.entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// EntriesByAccount returns the entries where account appears on either the
// debit or the credit side (case-sensitive exact match), in insertion order.
func (j *Journal) EntriesByAccount(account string) []JournalEntry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var out []JournalEntry
	for _, e := range j.entries {
		if e.DebitAccount == account || e.CreditAccount == account {
			out = append(out, e)
		}
	}
	return out
}

// Transactions returns the transactions in insertion order.
func (j *Journal) Transactions() []*Transaction {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]*Transaction, len(j.transactions))
	copy(out, j.transactions)
	return out
}

// TotalDebits returns the sum of all debit amounts.
func (j *Journal) TotalDebits() decimal.Decimal {
	j.mu.RLock()
	defer j.mu.RUnlock()

	debits, _ := j.totalsLocked()
	return debits
}

// TotalCredits returns the sum of all credit amounts.
func (j *Journal) TotalCredits() decimal.Decimal {
	j.mu.RLock()
	defer j.mu.RUnlock()

	_, credits := j.totalsLocked()
	return credits
}

// AccountBalance returns the signed net balance of a single account:
// sum of its debits minus sum of its credits. A positive result is a
// net-debit position.
func (j *Journal) AccountBalance(account string) (decimal.Decimal, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if err := j.checkBalanceLocked(); err != nil {
		return decimal.Zero, err
	}

	return j.accountBalanceLocked(account), nil
}

// AccountBalances returns the signed net balance of every account, grouped
// by the category the account appeared under. An account name used under two
// categories shows up in both buckets with the same account-keyed balance;
// keeping one category per account name is a caller convention.
func (j *Journal) AccountBalances() (map[Category]map[string]decimal.Decimal, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if err := j.checkBalanceLocked(); err != nil {
		return nil, err
	}

	return j.accountBalancesLocked(), nil
}

// CategoryBalances sums each category's account balances. Totals are raw
// sums of signed nets and can be negative.
func (j *Journal) CategoryBalances() (map[Category]decimal.Decimal, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if err := j.checkBalanceLocked(); err != nil {
		return nil, err
	}

	totals := make(map[Category]decimal.Decimal)
	for category, accounts := range j.accountBalancesLocked() {
		total := decimal.Zero
		for _, balance := range accounts {
			total = total.Add(balance)
		}
		totals[category] = total
	}
	return totals, nil
}

// TrialBalance returns the asset category total. By the accounting equation
// this equals total liabilities plus equity whenever the ledger is balanced.
func (j *Journal) TrialBalance() (decimal.Decimal, error) {
	totals, err := j.CategoryBalances()
	if err != nil {
		return decimal.Zero, err
	}
	return totals[CategoryAsset], nil
}

// Count returns the number of non-adjustment transactions.
func (j *Journal) Count() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.transactions) - j.adjustments
}

// AdjustmentCount returns the number of adjusting entries posted.
func (j *Journal) AdjustmentCount() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.adjustments
}

// Revision returns the number of journal entries recorded. Entries are
// append-only, so equal revisions imply identical derived balances.
func (j *Journal) Revision() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// Describe returns a human-readable summary of the journal.
func (j *Journal) Describe() string {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return fmt.Sprintf("%s, operating period %s to %s: %d transactions, %d adjustments",
		j.Name, j.StartDate, j.EndDate, len(j.transactions)-j.adjustments, j.adjustments)
}

// accountBalanceLocked computes an account's signed net balance. Callers
// must hold at least the read lock.
func (j *Journal) accountBalanceLocked(account string) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range j.entries {
		if e.DebitAccount == account {
			balance = balance.Add(e.DebitAmount)
		}
		if e.CreditAccount == account {
			balance = balance.Sub(e.CreditAmount)
		}
	}
	return balance
}

// accountBalancesLocked builds the category -> account -> balance mapping.
// Callers must hold at least the read lock.
func (j *Journal) accountBalancesLocked() map[Category]map[string]decimal.Decimal {
	balances := make(map[Category]map[string]decimal.Decimal)

	record := func(category Category, account string) {
		if balances[category] == nil {
			balances[category] = make(map[string]decimal.Decimal)
		}
		balances[category][account] = j.accountBalanceLocked(account)
	}

	for _, e := range j.entries {
		record(e.DebitCategory, e.DebitAccount)
		record(e.CreditCategory, e.CreditAccount)
	}

	return balances
}

// totalsLocked sums all debit and credit amounts. Callers must hold at
// least the read lock.
func (j *Journal) totalsLocked() (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, e := range j.entries {
		debits = debits.Add(e.DebitAmount)
		credits = credits.Add(e.CreditAmount)
	}
	return debits, credits
}

// checkBalanceLocked re-validates the ledger-wide invariant before a balance
// query. An imbalance can only arise from state constructed outside the
// validated paths, and since entries are never removed it is permanent for
// this journal.
func (j *Journal) checkBalanceLocked() error {
	debits, credits := j.totalsLocked()
	if !debits.Equal(credits) {
		return ErrLedgerImbalance
	}
	return nil
}

package journal

import "errors"

// Entry errors
var (
	ErrInvalidAmount   = errors.New("amount cannot be negative")
	ErrUnbalancedEntry = errors.New("debit amount does not match credit amount")
	ErrInvalidCategory = errors.New("category must be asset, liability or equity")
)

// Journal errors
var (
	ErrNoEntryRecorded = errors.New("transaction has no entry recorded")
	ErrLedgerImbalance = errors.New("total debits do not match total credits")
)

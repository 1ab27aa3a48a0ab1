package model

import "github.com/shopspring/decimal"

// DisputeState tracks where a committed transaction sits in the dispute
// lifecycle. ChargedBack is terminal.
type DisputeState string

const (
	DisputeClean       DisputeState = "clean"
	DisputeDisputed    DisputeState = "disputed"
	DisputeResolved    DisputeState = "resolved"
	DisputeChargedBack DisputeState = "charged-back"
)

// Disputable reports whether a new dispute may be opened from s. A resolved
// transaction may be disputed again; a charged-back one may not.
func (s DisputeState) Disputable() bool {
	return s == DisputeClean || s == DisputeResolved
}

// TransactionRecord is a committed deposit or withdrawal, kept for the life
// of the run so later dispute-lifecycle events can reference it. Records are
// never deleted; a charged-back record remains as the audit trail.
type TransactionRecord struct {
	Tx     TxID
	Owner  ClientID
	Kind   EventKind       // KindDeposit or KindWithdrawal
	Amount decimal.Decimal // strictly positive
	State  DisputeState
}

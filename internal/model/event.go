package model

import "github.com/shopspring/decimal"

// ClientID identifies an account holder. Event logs carry 16-bit client ids.
type ClientID uint16

// TxID identifies a transaction uniquely across a whole event log.
type TxID uint32

// EventKind classifies a row in the event log.
type EventKind string

const (
	KindDeposit    EventKind = "deposit"
	KindWithdrawal EventKind = "withdrawal"
	KindDispute    EventKind = "dispute"
	KindResolve    EventKind = "resolve"
	KindChargeback EventKind = "chargeback"
)

// Valid reports whether k is one of the five known event kinds.
func (k EventKind) Valid() bool {
	switch k {
	case KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback:
		return true
	}
	return false
}

// Event is one parsed row of the transaction log. Amount is set only for
// deposits and withdrawals; dispute-lifecycle rows reference a prior Tx.
type Event struct {
	Kind   EventKind
	Client ClientID
	Tx     TxID
	Amount decimal.NullDecimal
}

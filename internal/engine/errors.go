package engine

import (
	"errors"
	"fmt"

	"github.com/settled-dev/settled/internal/model"
)

// Sentinel rejection reasons. This is the complete set; callers can match
// with errors.Is to decide how to report a dropped event.
var (
	// ErrInvalidAmount is returned when a deposit or withdrawal carries a
	// missing or non-positive amount.
	ErrInvalidAmount = errors.New("missing or non-positive amount")

	// ErrAccountFrozen is returned for deposits and withdrawals on an
	// account a chargeback has frozen.
	ErrAccountFrozen = errors.New("account is frozen")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the
	// account's available balance.
	ErrInsufficientFunds = errors.New("insufficient available funds")

	// ErrDuplicateTx is returned when a deposit or withdrawal reuses a
	// transaction id already in the ledger.
	ErrDuplicateTx = errors.New("duplicate transaction id")

	// ErrUnknownTx is returned when a dispute-lifecycle event references a
	// transaction id never committed.
	ErrUnknownTx = errors.New("unknown transaction id")

	// ErrWrongOwner is returned when the referenced transaction belongs to
	// a different client.
	ErrWrongOwner = errors.New("transaction belongs to another client")

	// ErrInvalidDisputeState is returned when the record's dispute state
	// does not permit the attempted transition.
	ErrInvalidDisputeState = errors.New("dispute state does not permit event")
)

// RejectionError reports why an event was dropped, with the event context
// the adapter needs to log or count it. It unwraps to one of the sentinel
// reasons above.
type RejectionError struct {
	Kind   model.EventKind
	Client model.ClientID
	Tx     model.TxID
	Reason error
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s client=%d tx=%d: %v", e.Kind, e.Client, e.Tx, e.Reason)
}

func (e *RejectionError) Unwrap() error {
	return e.Reason
}

func reject(ev model.Event, reason error) error {
	return &RejectionError{Kind: ev.Kind, Client: ev.Client, Tx: ev.Tx, Reason: reason}
}

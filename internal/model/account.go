package model

import "github.com/shopspring/decimal"

// Account holds the balances for one client. Accounts are created lazily by
// the first event that references a client id.
type Account struct {
	Client    ClientID
	Available decimal.Decimal // funds not held by an open dispute; may go negative while a withdrawal is disputed
	Held      decimal.Decimal // funds under an open dispute, never negative
	Frozen    bool            // set by a chargeback, never cleared
}

// Total returns available + held. It is always derived, never stored.
func (a *Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

// Summary is the reportable snapshot of an account at the end of a replay.
type Summary struct {
	Client    ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Frozen    bool
}

// Summarize returns the account's current Summary.
func (a *Account) Summarize() Summary {
	return Summary{
		Client:    a.Client,
		Available: a.Available,
		Held:      a.Held,
		Total:     a.Total(),
		Frozen:    a.Frozen,
	}
}

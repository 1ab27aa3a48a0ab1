package ledger

import (
	"errors"

	"github.com/settled-dev/settled/internal/model"
)

// ErrDuplicateRecord is returned by InsertRecord when the transaction id is
// already present.
var ErrDuplicateRecord = errors.New("transaction id already recorded")

// Store owns the per-run account and transaction maps. It is lookup and
// insert only; all validation lives in the engine.
type Store struct {
	accounts map[model.ClientID]*model.Account
	records  map[model.TxID]*model.TransactionRecord
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[model.ClientID]*model.Account),
		records:  make(map[model.TxID]*model.TransactionRecord),
	}
}

// GetOrCreateAccount returns the account for client, creating it with zero
// balances if absent.
func (s *Store) GetOrCreateAccount(client model.ClientID) *model.Account {
	if a, ok := s.accounts[client]; ok {
		return a
	}
	a := &model.Account{Client: client}
	s.accounts[client] = a
	return a
}

// Record returns the committed record for tx, or nil. It never creates.
func (s *Store) Record(tx model.TxID) *model.TransactionRecord {
	return s.records[tx]
}

// InsertRecord adds rec keyed by its transaction id.
func (s *Store) InsertRecord(rec *model.TransactionRecord) error {
	if _, ok := s.records[rec.Tx]; ok {
		return ErrDuplicateRecord
	}
	s.records[rec.Tx] = rec
	return nil
}

// Accounts returns all accounts in map order.
func (s *Store) Accounts() []*model.Account {
	accts := make([]*model.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		accts = append(accts, a)
	}
	return accts
}

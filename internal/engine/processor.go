package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/settled-dev/settled/internal/ledger"
	"github.com/settled-dev/settled/internal/model"
)

// Processor replays events against a ledger store. Each Apply call is
// independent: a rejected event leaves the store exactly as it was.
type Processor struct {
	store *ledger.Store
}

// NewProcessor creates a Processor over store. The store must not be
// mutated by anyone else for the duration of the run.
func NewProcessor(store *ledger.Store) *Processor {
	return &Processor{store: store}
}

// Apply validates one event and commits its mutation, or returns a
// *RejectionError and changes nothing. All checks happen before any
// balance or record is touched.
func (p *Processor) Apply(ev model.Event) error {
	switch ev.Kind {
	case model.KindDeposit:
		return p.deposit(ev)
	case model.KindWithdrawal:
		return p.withdraw(ev)
	case model.KindDispute:
		return p.dispute(ev)
	case model.KindResolve:
		return p.resolve(ev)
	case model.KindChargeback:
		return p.chargeback(ev)
	default:
		return fmt.Errorf("unknown event kind %q", ev.Kind)
	}
}

func (p *Processor) deposit(ev model.Event) error {
	amount, err := eventAmount(ev)
	if err != nil {
		return err
	}

	acct := p.store.GetOrCreateAccount(ev.Client)
	if acct.Frozen {
		return reject(ev, ErrAccountFrozen)
	}

	rec := &model.TransactionRecord{
		Tx:     ev.Tx,
		Owner:  ev.Client,
		Kind:   model.KindDeposit,
		Amount: amount,
		State:  model.DisputeClean,
	}
	if err := p.store.InsertRecord(rec); err != nil {
		return reject(ev, ErrDuplicateTx)
	}

	acct.Available = acct.Available.Add(amount)
	return nil
}

func (p *Processor) withdraw(ev model.Event) error {
	amount, err := eventAmount(ev)
	if err != nil {
		return err
	}

	acct := p.store.GetOrCreateAccount(ev.Client)
	if acct.Frozen {
		return reject(ev, ErrAccountFrozen)
	}
	if acct.Available.LessThan(amount) {
		return reject(ev, ErrInsufficientFunds)
	}

	rec := &model.TransactionRecord{
		Tx:     ev.Tx,
		Owner:  ev.Client,
		Kind:   model.KindWithdrawal,
		Amount: amount,
		State:  model.DisputeClean,
	}
	if err := p.store.InsertRecord(rec); err != nil {
		return reject(ev, ErrDuplicateTx)
	}

	acct.Available = acct.Available.Sub(amount)
	return nil
}

// dispute moves the recorded amount from available to held. For a disputed
// withdrawal this can drive available negative: the funds are provisionally
// set aside in the disputing client's favor.
func (p *Processor) dispute(ev model.Event) error {
	rec, acct, err := p.lookup(ev)
	if err != nil {
		return err
	}
	if !rec.State.Disputable() {
		return reject(ev, ErrInvalidDisputeState)
	}

	acct.Available = acct.Available.Sub(rec.Amount)
	acct.Held = acct.Held.Add(rec.Amount)
	rec.State = model.DisputeDisputed
	return nil
}

// resolve releases the hold back to available. The record becomes eligible
// for a new dispute.
func (p *Processor) resolve(ev model.Event) error {
	rec, acct, err := p.lookup(ev)
	if err != nil {
		return err
	}
	if rec.State != model.DisputeDisputed {
		return reject(ev, ErrInvalidDisputeState)
	}

	acct.Held = acct.Held.Sub(rec.Amount)
	acct.Available = acct.Available.Add(rec.Amount)
	rec.State = model.DisputeResolved
	return nil
}

// chargeback discharges the held amount and freezes the account. For a
// deposit the funds leave the system; for a withdrawal the original debit is
// reinstated rather than refunded, so available is not credited in either
// case. ChargedBack is terminal.
func (p *Processor) chargeback(ev model.Event) error {
	rec, acct, err := p.lookup(ev)
	if err != nil {
		return err
	}
	if rec.State != model.DisputeDisputed {
		return reject(ev, ErrInvalidDisputeState)
	}

	acct.Held = acct.Held.Sub(rec.Amount)
	acct.Frozen = true
	rec.State = model.DisputeChargedBack
	return nil
}

// lookup resolves the record and owning account for a dispute-lifecycle
// event. Freeze does not block these: a frozen account's existing disputes
// may still be resolved or charged back.
func (p *Processor) lookup(ev model.Event) (*model.TransactionRecord, *model.Account, error) {
	rec := p.store.Record(ev.Tx)
	if rec == nil {
		return nil, nil, reject(ev, ErrUnknownTx)
	}
	if rec.Owner != ev.Client {
		return nil, nil, reject(ev, ErrWrongOwner)
	}
	return rec, p.store.GetOrCreateAccount(rec.Owner), nil
}

func eventAmount(ev model.Event) (decimal.Decimal, error) {
	if !ev.Amount.Valid || !ev.Amount.Decimal.IsPositive() {
		return decimal.Decimal{}, reject(ev, ErrInvalidAmount)
	}
	return ev.Amount.Decimal, nil
}

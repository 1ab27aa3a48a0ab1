package replay

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/settled-dev/settled/internal/auditlog"
	"github.com/settled-dev/settled/internal/engine"
	"github.com/settled-dev/settled/internal/eventcsv"
	"github.com/settled-dev/settled/internal/ledger"
	"github.com/settled-dev/settled/internal/model"
)

// RejectPolicy controls what the service does with events the engine drops.
type RejectPolicy string

const (
	// PolicyLog writes one line per rejected or malformed row to the
	// configured log writer.
	PolicyLog RejectPolicy = "log"
	// PolicySilent drops rejections without reporting them. Stats still
	// count them.
	PolicySilent RejectPolicy = "silent"
)

// Stats summarizes one replay run.
type Stats struct {
	Applied   int
	Rejected  int
	Malformed int
	Reasons   map[string]int // rejection reason label -> count
}

// Options configures a replay run.
type Options struct {
	Policy    RejectPolicy
	LogTo     io.Writer // rejection log destination under PolicyLog; ignored when nil
	AuditPath string    // when non-empty, rejected events are appended here
}

// Service streams parsed events into the processor and accumulates the
// final account state for one closed log.
type Service struct {
	store  *ledger.Store
	proc   *engine.Processor
	parser eventcsv.Parser
	opts   Options
}

// NewService creates a Service with a fresh ledger store.
func NewService(parser eventcsv.Parser, opts Options) *Service {
	if opts.Policy == "" {
		opts.Policy = PolicyLog
	}
	store := ledger.NewStore()
	return &Service{
		store:  store,
		proc:   engine.NewProcessor(store),
		parser: parser,
		opts:   opts,
	}
}

// Run replays the event log from r to exhaustion and returns run
// statistics. Rejected events never abort the run; only unreadable input or
// an audit log failure does.
func (s *Service) Run(r io.Reader) (Stats, error) {
	events, rowErrs, err := s.parser.Parse(r)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Malformed: len(rowErrs),
		Reasons:   make(map[string]int),
	}
	for _, re := range rowErrs {
		s.logf("skipping malformed %v", re)
	}

	var rejected []auditlog.Entry
	for _, ev := range events {
		err := s.proc.Apply(ev)
		if err == nil {
			stats.Applied++
			continue
		}

		stats.Rejected++
		stats.Reasons[ReasonLabel(err)]++
		s.logf("rejected %v", err)
		if s.opts.AuditPath != "" {
			rejected = append(rejected, auditlog.Entry{
				Timestamp: time.Now().UTC(),
				Kind:      ev.Kind,
				Client:    ev.Client,
				Tx:        ev.Tx,
				Reason:    ReasonLabel(err),
			})
		}
	}

	if len(rejected) > 0 {
		if err := auditlog.Append(s.opts.AuditPath, rejected); err != nil {
			return stats, fmt.Errorf("writing audit log: %w", err)
		}
	}
	return stats, nil
}

// Summaries returns the final account snapshots sorted by client id.
func (s *Service) Summaries() []model.Summary {
	accts := s.store.Accounts()
	sums := make([]model.Summary, 0, len(accts))
	for _, a := range accts {
		sums = append(sums, a.Summarize())
	}
	sort.Slice(sums, func(i, j int) bool { return sums[i].Client < sums[j].Client })
	return sums
}

func (s *Service) logf(format string, args ...any) {
	if s.opts.Policy != PolicyLog || s.opts.LogTo == nil {
		return
	}
	fmt.Fprintf(s.opts.LogTo, format+"\n", args...)
}

// ReasonLabel maps a rejection to a stable label for stats and the audit
// log.
func ReasonLabel(err error) string {
	switch {
	case errors.Is(err, engine.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, engine.ErrAccountFrozen):
		return "account_frozen"
	case errors.Is(err, engine.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, engine.ErrDuplicateTx):
		return "duplicate_tx"
	case errors.Is(err, engine.ErrUnknownTx):
		return "unknown_tx"
	case errors.Is(err, engine.ErrWrongOwner):
		return "wrong_owner"
	case errors.Is(err, engine.ErrInvalidDisputeState):
		return "invalid_dispute_state"
	default:
		return "other"
	}
}

package eventcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/settled-dev/settled/internal/model"
)

// Header is the expected header row for the standard dialect.
const Header = "type,client,tx,amount"

const (
	colKind   = 0
	colClient = 1
	colTx     = 2
	colAmount = 3
)

// StandardParser parses "type,client,tx,amount" event logs. Fields may be
// padded with whitespace, and the amount column may be omitted or empty on
// dispute-lifecycle rows.
type StandardParser struct{}

// Format returns the parser name.
func (p *StandardParser) Format() string { return "standard" }

// Parse reads an event log, returning the parsed events plus a RowError per
// malformed row. The first row is the header and is skipped.
func (p *StandardParser) Parse(r io.Reader) ([]model.Event, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // amount column is optional
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading event CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil, nil
	}

	var events []model.Event
	var rowErrs []RowError
	for i, rec := range records[1:] {
		ev, err := parseRow(rec)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: i + 2, Err: err})
			continue
		}
		events = append(events, ev)
	}
	return events, rowErrs, nil
}

func parseRow(rec []string) (model.Event, error) {
	if len(rec) < 3 || len(rec) > 4 {
		return model.Event{}, fmt.Errorf("expected 3 or 4 fields, got %d", len(rec))
	}

	kind := model.EventKind(strings.ToLower(strings.TrimSpace(rec[colKind])))
	if !kind.Valid() {
		return model.Event{}, fmt.Errorf("unknown event type %q", strings.TrimSpace(rec[colKind]))
	}

	client, err := strconv.ParseUint(strings.TrimSpace(rec[colClient]), 10, 16)
	if err != nil {
		return model.Event{}, fmt.Errorf("parsing client %q: %w", rec[colClient], err)
	}

	tx, err := strconv.ParseUint(strings.TrimSpace(rec[colTx]), 10, 32)
	if err != nil {
		return model.Event{}, fmt.Errorf("parsing tx %q: %w", rec[colTx], err)
	}

	var amount decimal.NullDecimal
	if len(rec) > colAmount {
		if field := strings.TrimSpace(rec[colAmount]); field != "" {
			d, err := decimal.NewFromString(field)
			if err != nil {
				return model.Event{}, fmt.Errorf("parsing amount %q: %w", field, err)
			}
			if err := checkScale(d); err != nil {
				return model.Event{}, err
			}
			amount = decimal.NullDecimal{Decimal: d, Valid: true}
		}
	}

	return model.Event{
		Kind:   kind,
		Client: model.ClientID(client),
		Tx:     model.TxID(tx),
		Amount: amount,
	}, nil
}

// checkScale rejects amounts finer than four decimal places.
func checkScale(d decimal.Decimal) error {
	scaled := d.Mul(decimal.NewFromInt(10000))
	if !scaled.Equal(scaled.Floor()) {
		return fmt.Errorf("amount %s has more than 4 decimal places", d)
	}
	return nil
}

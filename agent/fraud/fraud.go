// Package fraud implements the card-fraud verification agent core: a shared
// case database, case-insensitive customer lookup, and a two-attempt identity
// verification session that is irreversible once the attempt budget is spent.
package fraud

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	contractx "github.com/voicelab-go/agentkit/agent/contract"
	storex "github.com/voicelab-go/agentkit/agent/store"
)

type Status string

const (
	StatusPending            Status = "pending"
	StatusConfirmedSafe      Status = "confirmed_safe"
	StatusConfirmedFraud     Status = "confirmed_fraud"
	StatusVerificationFailed Status = "verification_failed"
)

// Transaction is the flagged activity under review.
type Transaction struct {
	ID       string `json:"id"`
	Amount   string `json:"amount"`
	Merchant string `json:"merchant"`
	Date     string `json:"date"`
}

// Case is one record in the shared fraud database file.
type Case struct {
	SecurityID       string      `json:"security_id"`
	CustomerName     string      `json:"customer_name"`
	SecurityQuestion string      `json:"security_question"`
	SecurityAnswer   string      `json:"security_answer"`
	Transaction      Transaction `json:"transaction"`
	Status           Status      `json:"status"`
}

// Database holds the full case collection loaded from one shared JSON
// document. Status changes rewrite the whole collection; concurrent writers
// race and the last write wins.
type Database struct {
	recorder storex.Recorder
	docName  string
	cases    []Case
}

// OpenDatabase loads the case collection from the recorder's document store,
// seeding it from seed when the document does not exist yet.
func OpenDatabase(ctx context.Context, recorder storex.Recorder, docName string, seed []Case) (*Database, error) {
	if recorder == nil {
		return nil, fmt.Errorf("%w: recorder is required", contractx.ErrValidation)
	}
	db := &Database{
		recorder: recorder,
		docName:  docName,
	}

	err := recorder.LoadDocument(ctx, docName, &db.cases)
	switch {
	case err == nil:
		return db, nil
	case errors.Is(err, contractx.ErrNotFound) && seed != nil:
		db.cases = seed
		if _, err := recorder.SaveDocument(ctx, docName, db.cases); err != nil {
			return nil, err
		}
		log.Info().Str("document", docName).Int("cases", len(seed)).Msg("fraud database seeded")
		return db, nil
	default:
		return nil, err
	}
}

func (d *Database) Len() int {
	return len(d.cases)
}

// LookupByName scans linearly for an exact, case-insensitive customer name
// match. "john smith" finds John Smith; "Jon Smith" does not.
func (d *Database) LookupByName(name string) (*Case, error) {
	name = strings.TrimSpace(name)
	for i := range d.cases {
		if strings.EqualFold(d.cases[i].CustomerName, name) {
			return &d.cases[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no fraud case for customer %q", contractx.ErrNotFound, name)
}

// SetStatus mutates the case in place and rewrites the whole collection.
func (d *Database) SetStatus(ctx context.Context, securityID string, status Status) error {
	for i := range d.cases {
		if d.cases[i].SecurityID == securityID {
			d.cases[i].Status = status
			if _, err := d.recorder.SaveDocument(ctx, d.docName, d.cases); err != nil {
				return err
			}
			log.Info().
				Str("security_id", securityID).
				Str("status", string(status)).
				Msg("fraud case status updated")
			return nil
		}
	}
	return fmt.Errorf("%w: fraud case security_id=%s", contractx.ErrNotFound, securityID)
}

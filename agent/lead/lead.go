// Package lead implements the sales lead-capture agent core.
package lead

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	contractx "github.com/voicelab-go/agentkit/agent/contract"
	storex "github.com/voicelab-go/agentkit/agent/store"
)

// Lead is the persisted record of one captured prospect.
type Lead struct {
	LeadID    string    `json:"lead_id"`
	Name      string    `json:"name"`
	Company   string    `json:"company,omitempty"`
	Interest  string    `json:"interest"`
	Budget    string    `json:"budget,omitempty"`
	Timeline  string    `json:"timeline,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (l Lead) validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("%w: lead name is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(l.Interest) == "" {
		return fmt.Errorf("%w: lead interest is required", contractx.ErrValidation)
	}
	return nil
}

const leadsCollection = "leads"

// Book captures leads into the record store.
type Book struct {
	recorder storex.Recorder
	now      func() time.Time
}

// BookOption customizes a Book.
type BookOption func(*Book)

func WithClock(now func() time.Time) BookOption {
	return func(b *Book) {
		if now != nil {
			b.now = now
		}
	}
}

func NewBook(recorder storex.Recorder, opts ...BookOption) (*Book, error) {
	if recorder == nil {
		return nil, fmt.Errorf("%w: recorder is required", contractx.ErrValidation)
	}
	b := &Book{recorder: recorder, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b, nil
}

// Capture validates the lead, stamps id and timestamp, and persists it as a
// new record file named after the prospect.
func (b *Book) Capture(ctx context.Context, l Lead) (Lead, error) {
	if err := l.validate(); err != nil {
		return Lead{}, err
	}

	l.LeadID = uuid.NewString()
	l.Timestamp = b.now().UTC()

	path, err := b.recorder.SaveRecord(ctx, leadsCollection, l.Name, l)
	if err != nil {
		return Lead{}, err
	}

	log.Info().Str("lead_id", l.LeadID).Str("path", path).Msg("lead captured")
	return l, nil
}

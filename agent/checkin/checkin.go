// Package checkin implements the wellness check-in agent core.
package checkin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	contractx "github.com/voicelab-go/agentkit/agent/contract"
	storex "github.com/voicelab-go/agentkit/agent/store"
)

// CheckIn is the persisted record of one daily wellness conversation.
type CheckIn struct {
	Mood       string    `json:"mood"`
	Energy     int       `json:"energy"`
	Highlights string    `json:"highlights,omitempty"`
	Concerns   string    `json:"concerns,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func (c CheckIn) validate() error {
	if strings.TrimSpace(c.Mood) == "" {
		return fmt.Errorf("%w: mood is required", contractx.ErrValidation)
	}
	if c.Energy < 1 || c.Energy > 10 {
		return fmt.Errorf("%w: energy must be between 1 and 10, got %d", contractx.ErrValidation, c.Energy)
	}
	return nil
}

const checkinsCollection = "checkins"

// Journal records check-ins for one user.
type Journal struct {
	recorder storex.Recorder
	userName string
	now      func() time.Time
}

// JournalOption customizes a Journal.
type JournalOption func(*Journal)

func WithClock(now func() time.Time) JournalOption {
	return func(j *Journal) {
		if now != nil {
			j.now = now
		}
	}
}

func NewJournal(recorder storex.Recorder, userName string, opts ...JournalOption) (*Journal, error) {
	if recorder == nil {
		return nil, fmt.Errorf("%w: recorder is required", contractx.ErrValidation)
	}
	j := &Journal{
		recorder: recorder,
		userName: strings.TrimSpace(userName),
		now:      time.Now,
	}
	if j.userName == "" {
		j.userName = "guest"
	}
	for _, opt := range opts {
		if opt != nil {
			opt(j)
		}
	}
	return j, nil
}

// Record validates and persists one check-in as a new record file.
func (j *Journal) Record(ctx context.Context, c CheckIn) (CheckIn, error) {
	if err := c.validate(); err != nil {
		return CheckIn{}, err
	}

	c.Timestamp = j.now().UTC()
	path, err := j.recorder.SaveRecord(ctx, checkinsCollection, j.userName, c)
	if err != nil {
		return CheckIn{}, err
	}

	log.Info().Str("user", j.userName).Str("path", path).Msg("check-in recorded")
	return c, nil
}

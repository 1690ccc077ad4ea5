package fraud

import (
	"context"
	"fmt"
	"strings"
	"time"

	contractx "github.com/voicelab-go/agentkit/agent/contract"
	sessionx "github.com/voicelab-go/agentkit/agent/session"
)

const (
	PhaseUnverified    sessionx.Phase = "unverified"
	PhaseVerified      sessionx.Phase = "verified"
	PhaseResolvedSafe  sessionx.Phase = "resolved_safe"
	PhaseResolvedFraud sessionx.Phase = "resolved_fraud"
	PhaseFailed        sessionx.Phase = "resolved_failed"
)

const (
	// DefaultMaxAttempts is the two-strikes verification policy.
	DefaultMaxAttempts = 2

	attemptsCounter = "verification_attempts"

	transitionVerify       = "verify"
	transitionFail         = "fail"
	transitionResolveSafe  = "resolve_safe"
	transitionResolveFraud = "resolve_fraud"
)

func newVerificationMachine() *sessionx.Machine {
	m, err := sessionx.NewMachine(PhaseUnverified, []sessionx.Transition{
		{Name: transitionVerify, From: []sessionx.Phase{PhaseUnverified}, To: PhaseVerified},
		{Name: transitionFail, From: []sessionx.Phase{PhaseUnverified}, To: PhaseFailed},
		{Name: transitionResolveSafe, From: []sessionx.Phase{PhaseVerified}, To: PhaseResolvedSafe},
		{Name: transitionResolveFraud, From: []sessionx.Phase{PhaseVerified}, To: PhaseResolvedFraud},
	}, PhaseFailed, PhaseResolvedSafe, PhaseResolvedFraud)
	if err != nil {
		// The table above is static; a construction failure is a programming error.
		panic(err)
	}
	return m
}

// Session drives one customer's identity verification over a single case.
type Session struct {
	db          *Database
	fraudCase   *Case
	machine     *sessionx.Machine
	maxAttempts int
	now         func() time.Time
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

func WithMaxAttempts(n int) SessionOption {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSession starts verification for the named customer. The case must exist.
func NewSession(db *Database, customerName string, opts ...SessionOption) (*Session, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: database is required", contractx.ErrValidation)
	}
	c, err := db.LookupByName(customerName)
	if err != nil {
		return nil, err
	}

	s := &Session{
		db:          db,
		fraudCase:   c,
		machine:     newVerificationMachine(),
		maxAttempts: DefaultMaxAttempts,
		now:         time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *Session) Phase() sessionx.Phase {
	return s.machine.Phase()
}

func (s *Session) Attempts() int {
	return s.machine.Counter(attemptsCounter)
}

func (s *Session) Case() Case {
	return *s.fraudCase
}

// SecurityQuestion is what the agent reads to the customer.
func (s *Session) SecurityQuestion() string {
	return s.fraudCase.SecurityQuestion
}

// VerifyAnswer checks one spoken answer against the case's security answer.
// A wrong answer burns one attempt; at the attempt budget the session drops
// into its terminal failed phase, the case is marked verification_failed, and
// every later answer, right or wrong, is rejected with ErrInvalidState.
func (s *Session) VerifyAnswer(ctx context.Context, answer string) (bool, error) {
	if s.machine.Phase() != PhaseUnverified {
		return false, fmt.Errorf("%w: verification is %s", contractx.ErrInvalidState, s.machine.Phase())
	}

	if strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(s.fraudCase.SecurityAnswer)) {
		if _, err := s.machine.Apply(transitionVerify, s.now()); err != nil {
			return false, err
		}
		return true, nil
	}

	exhausted, err := s.machine.FailAttempt(attemptsCounter, s.maxAttempts, transitionFail, s.now())
	if err != nil {
		return false, err
	}
	if exhausted {
		if err := s.db.SetStatus(ctx, s.fraudCase.SecurityID, StatusVerificationFailed); err != nil {
			return false, err
		}
	}
	return false, nil
}

// Resolve records the customer's verdict on the flagged transaction. Only a
// verified session may resolve.
func (s *Session) Resolve(ctx context.Context, fraudulent bool) error {
	transition, status := transitionResolveSafe, StatusConfirmedSafe
	if fraudulent {
		transition, status = transitionResolveFraud, StatusConfirmedFraud
	}

	if _, err := s.machine.Apply(transition, s.now()); err != nil {
		return err
	}
	return s.db.SetStatus(ctx, s.fraudCase.SecurityID, status)
}

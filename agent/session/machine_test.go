package session

import (
	"errors"
	"testing"
	"time"

	contractx "github.com/voicelab-go/agentkit/agent/contract"
)

func newVerifyMachine(t *testing.T) *Machine {
	t.Helper()
	m, err := NewMachine("unverified", []Transition{
		{Name: "verify", From: []Phase{"unverified"}, To: "verified"},
		{Name: "fail", From: []Phase{"unverified"}, To: "failed"},
		{Name: "resolve", From: []Phase{"verified"}, To: "resolved"},
	}, "failed", "resolved")
	if err != nil {
		t.Fatalf("new machine: %v", err)
	}
	return m
}

func TestApplyValidTransition(t *testing.T) {
	t.Parallel()

	m := newVerifyMachine(t)
	now := time.Now()

	phase, err := m.Apply("verify", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if phase != "verified" || m.Phase() != "verified" {
		t.Fatalf("unexpected phase: %s", phase)
	}
}

func TestApplyFromWrongPhaseDoesNotMutate(t *testing.T) {
	t.Parallel()

	m := newVerifyMachine(t)
	_, err := m.Apply("resolve", time.Now())
	if !errors.Is(err, contractx.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	if m.Phase() != "unverified" {
		t.Fatalf("phase must be unchanged, got %s", m.Phase())
	}
}

func TestUnknownTransition(t *testing.T) {
	t.Parallel()

	m := newVerifyMachine(t)
	_, err := m.Apply("teleport", time.Now())
	if !errors.Is(err, ErrUnknownTransition) {
		t.Fatalf("expected unknown transition, got %v", err)
	}
}

func TestTerminalPhaseBlocksEverything(t *testing.T) {
	t.Parallel()

	m := newVerifyMachine(t)
	now := time.Now()
	if _, err := m.Apply("fail", now); err != nil {
		t.Fatalf("fail transition: %v", err)
	}
	if !m.InTerminalPhase() {
		t.Fatal("failed must be terminal")
	}

	// Even an otherwise-valid transition is rejected past the terminal phase.
	_, err := m.Apply("verify", now)
	if !errors.Is(err, contractx.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestFailAttemptBoundedRetry(t *testing.T) {
	t.Parallel()

	m := newVerifyMachine(t)
	now := time.Now()

	exhausted, err := m.FailAttempt("verification_attempts", 2, "fail", now)
	if err != nil || exhausted {
		t.Fatalf("first failure must not exhaust: %v %v", exhausted, err)
	}
	if m.Counter("verification_attempts") != 1 {
		t.Fatalf("counter = %d", m.Counter("verification_attempts"))
	}

	exhausted, err = m.FailAttempt("verification_attempts", 2, "fail", now)
	if err != nil {
		t.Fatalf("second failure: %v", err)
	}
	if !exhausted || m.Phase() != "failed" {
		t.Fatalf("expected terminal failure, phase=%s", m.Phase())
	}

	// The machine is irreversible past the limit.
	if _, err := m.Apply("verify", now); !errors.Is(err, contractx.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestSnapshotRestore(t *testing.T) {
	t.Parallel()

	m := newVerifyMachine(t)
	now := time.Now()
	m.Increment("rounds")
	m.Increment("rounds")
	if _, err := m.Apply("verify", now); err != nil {
		t.Fatalf("apply: %v", err)
	}

	snap := m.Snapshot()

	m2 := newVerifyMachine(t)
	if err := m2.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if m2.Phase() != "verified" || m2.Counter("rounds") != 2 {
		t.Fatalf("restore mismatch: phase=%s rounds=%d", m2.Phase(), m2.Counter("rounds"))
	}

	if err := m2.Restore(Snapshot{Phase: "limbo"}); !errors.Is(err, ErrUnknownPhase) {
		t.Fatalf("expected unknown phase, got %v", err)
	}
}

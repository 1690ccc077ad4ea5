package router

import (
	"errors"
	"testing"

	contractx "github.com/voicelab-go/agentkit/agent/contract"
)

func TestHandoffFollowsTable(t *testing.T) {
	t.Parallel()

	r, err := New(contractx.AgentTypeTutorRouter, DefaultTutorTable())
	if err != nil {
		t.Fatalf("new router: %v", err)
	}

	next, err := r.Handoff(contractx.AgentTypeTutorMath)
	if err != nil {
		t.Fatalf("handoff: %v", err)
	}
	if next != contractx.AgentTypeTutorMath || r.Current() != contractx.AgentTypeTutorMath {
		t.Fatalf("unexpected mode: %s", next)
	}

	// Subject tutors only hand back to the router, never sideways.
	if _, err := r.Handoff(contractx.AgentTypeTutorScience); !errors.Is(err, contractx.ErrInvalidState) {
		t.Fatalf("expected invalid handoff, got %v", err)
	}
	if r.Current() != contractx.AgentTypeTutorMath {
		t.Fatal("failed handoff must not change the mode")
	}

	if _, err := r.Handoff(contractx.AgentTypeTutorRouter); err != nil {
		t.Fatalf("hand back: %v", err)
	}
}

func TestNewRouterValidation(t *testing.T) {
	t.Parallel()

	if _, err := New("", DefaultTutorTable()); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := New(contractx.AgentTypeCoffee, DefaultTutorTable()); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("initial mode outside the table must fail, got %v", err)
	}
}

func TestTargets(t *testing.T) {
	t.Parallel()

	r, err := New(contractx.AgentTypeTutorRouter, DefaultTutorTable())
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	if got := r.Targets(); len(got) != 3 {
		t.Fatalf("expected 3 subjects, got %v", got)
	}
}

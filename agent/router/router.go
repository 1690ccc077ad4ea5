// Package router models handoff between agent modes as an explicit finite
// state machine: a transition table over agent types, where every handoff is
// validated against the table instead of matching on ad-hoc strings.
package router

import (
	"fmt"

	contractx "github.com/voicelab-go/agentkit/agent/contract"
)

// Table declares which handoffs are legal: source mode -> reachable modes.
type Table map[contractx.AgentType][]contractx.AgentType

// DefaultTutorTable wires the tutoring flow: the router hands students to a
// subject tutor, and every subject tutor can hand back to the router.
func DefaultTutorTable() Table {
	subjects := []contractx.AgentType{
		contractx.AgentTypeTutorMath,
		contractx.AgentTypeTutorReading,
		contractx.AgentTypeTutorScience,
	}
	t := Table{contractx.AgentTypeTutorRouter: subjects}
	for _, s := range subjects {
		t[s] = []contractx.AgentType{contractx.AgentTypeTutorRouter}
	}
	return t
}

// Router tracks the active agent mode for one conversation.
type Router struct {
	current contractx.AgentType
	table   Table
}

func New(initial contractx.AgentType, table Table) (*Router, error) {
	if initial == "" {
		return nil, fmt.Errorf("%w: initial mode is empty", contractx.ErrValidation)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: transition table is empty", contractx.ErrValidation)
	}
	if _, ok := table[initial]; !ok {
		return nil, fmt.Errorf("%w: initial mode %s is not in the table", contractx.ErrValidation, initial)
	}
	return &Router{current: initial, table: table}, nil
}

func (r *Router) Current() contractx.AgentType {
	return r.current
}

// Targets lists the modes reachable from the current one.
func (r *Router) Targets() []contractx.AgentType {
	targets := r.table[r.current]
	out := make([]contractx.AgentType, len(targets))
	copy(out, targets)
	return out
}

// Handoff moves to target if the table allows it and returns the new mode.
// An edge missing from the table is an invalid transition, not a routing
// guess.
func (r *Router) Handoff(target contractx.AgentType) (contractx.AgentType, error) {
	for _, allowed := range r.table[r.current] {
		if allowed == target {
			r.current = target
			return target, nil
		}
	}
	return r.current, fmt.Errorf("%w: no handoff from %s to %s", contractx.ErrInvalidState, r.current, target)
}

// Package session implements the per-conversation phase machine shared by the
// agent variants: a finite phase set, named transitions valid only from
// declared source phases, and monotonically increasing counters that gate
// bounded-retry and round-limit behavior.
package session

import (
	"errors"
	"fmt"
	"time"

	contractx "github.com/voicelab-go/agentkit/agent/contract"
)

type Phase string

// Transition is one named edge of the machine. Applying it from a phase not
// listed in From is rejected without mutating state.
type Transition struct {
	Name string
	From []Phase
	To   Phase
}

var (
	ErrUnknownTransition = errors.New("unknown transition")
	ErrUnknownPhase      = errors.New("unknown phase")
)

type Machine struct {
	phase       Phase
	transitions map[string]Transition
	phases      map[Phase]bool
	terminal    map[Phase]bool
	counters    map[string]int
	updatedAt   time.Time
}

func NewMachine(initial Phase, transitions []Transition, terminal ...Phase) (*Machine, error) {
	if initial == "" {
		return nil, fmt.Errorf("%w: initial phase is empty", contractx.ErrValidation)
	}
	if len(transitions) == 0 {
		return nil, fmt.Errorf("%w: machine needs at least one transition", contractx.ErrValidation)
	}

	m := &Machine{
		phase:       initial,
		transitions: make(map[string]Transition, len(transitions)),
		phases:      map[Phase]bool{initial: true},
		terminal:    make(map[Phase]bool, len(terminal)),
		counters:    make(map[string]int, 4),
	}

	for _, tr := range transitions {
		if tr.Name == "" || tr.To == "" || len(tr.From) == 0 {
			return nil, fmt.Errorf("%w: transition %q is incomplete", contractx.ErrValidation, tr.Name)
		}
		if _, dup := m.transitions[tr.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate transition %q", contractx.ErrValidation, tr.Name)
		}
		m.transitions[tr.Name] = tr
		m.phases[tr.To] = true
		for _, from := range tr.From {
			m.phases[from] = true
		}
	}
	for _, p := range terminal {
		m.terminal[p] = true
	}
	return m, nil
}

func (m *Machine) Phase() Phase {
	return m.phase
}

func (m *Machine) InTerminalPhase() bool {
	return m.terminal[m.phase]
}

func (m *Machine) UpdatedAt() time.Time {
	return m.updatedAt
}

// Can reports whether the named transition is applicable right now.
func (m *Machine) Can(name string) bool {
	tr, ok := m.transitions[name]
	if !ok || m.terminal[m.phase] {
		return false
	}
	for _, from := range tr.From {
		if from == m.phase {
			return true
		}
	}
	return false
}

// Apply fires the named transition. Firing from an invalid source phase, or
// from any terminal phase, returns ErrInvalidState and leaves the machine
// untouched.
func (m *Machine) Apply(name string, now time.Time) (Phase, error) {
	tr, ok := m.transitions[name]
	if !ok {
		return m.phase, fmt.Errorf("%w: %s", ErrUnknownTransition, name)
	}
	if m.terminal[m.phase] {
		return m.phase, fmt.Errorf("%w: %s is terminal", contractx.ErrInvalidState, m.phase)
	}
	for _, from := range tr.From {
		if from == m.phase {
			m.phase = tr.To
			m.updatedAt = now.UTC()
			return m.phase, nil
		}
	}
	return m.phase, fmt.Errorf("%w: cannot %s from %s", contractx.ErrInvalidState, name, m.phase)
}

/* ------------------------------- Counters -------------------------------- */

func (m *Machine) Counter(name string) int {
	return m.counters[name]
}

// Increment bumps a counter and returns the new value. Counters only grow.
func (m *Machine) Increment(name string) int {
	m.counters[name]++
	return m.counters[name]
}

// FailAttempt records one failed try against a bounded counter. When the
// configured maximum is reached it fires failTransition, forcing the machine
// into its terminal failure phase. Returns whether attempts are exhausted.
func (m *Machine) FailAttempt(counter string, max int, failTransition string, now time.Time) (bool, error) {
	if m.terminal[m.phase] {
		return true, fmt.Errorf("%w: %s is terminal", contractx.ErrInvalidState, m.phase)
	}
	attempts := m.Increment(counter)
	if attempts < max {
		return false, nil
	}
	if _, err := m.Apply(failTransition, now); err != nil {
		return true, err
	}
	return true, nil
}

/* ------------------------------- Snapshots -------------------------------- */

// Snapshot is the serializable view of a machine, used when a variant
// persists its session alongside other state (game documents).
type Snapshot struct {
	Phase     Phase          `json:"phase"`
	Counters  map[string]int `json:"counters,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (m *Machine) Snapshot() Snapshot {
	counters := make(map[string]int, len(m.counters))
	for k, v := range m.counters {
		counters[k] = v
	}
	return Snapshot{
		Phase:     m.phase,
		Counters:  counters,
		UpdatedAt: m.updatedAt,
	}
}

// Restore replaces the machine's mutable state from a snapshot. The phase
// must belong to this machine's declared phase set.
func (m *Machine) Restore(s Snapshot) error {
	if !m.phases[s.Phase] {
		return fmt.Errorf("%w: %s", ErrUnknownPhase, s.Phase)
	}
	m.phase = s.Phase
	m.counters = make(map[string]int, len(s.Counters))
	for k, v := range s.Counters {
		m.counters[k] = v
	}
	m.updatedAt = s.UpdatedAt
	return nil
}

package game

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	contractx "github.com/voicelab-go/agentkit/agent/contract"
	sessionx "github.com/voicelab-go/agentkit/agent/session"
)

// Scenario is one improv game setup from the static scenario file.
type Scenario struct {
	Name    string   `json:"name"`
	Setup   string   `json:"setup"`
	Prompts []string `json:"prompts,omitempty"`
}

func LoadScenarios(path string) ([]Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenarios %s: %w", path, err)
	}
	var scenarios []Scenario
	if err := json.Unmarshal(raw, &scenarios); err != nil {
		return nil, fmt.Errorf("decode scenarios %s: %w", path, err)
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("%w: scenario file %s is empty", contractx.ErrValidation, path)
	}
	return scenarios, nil
}

const (
	PhaseWarmup  sessionx.Phase = "warmup"
	PhasePlaying sessionx.Phase = "playing"

	roundsCounter = "round_count"

	transitionOpenShow  = "open_show"
	transitionNextRound = "next_round"
	transitionCloseShow = "close_show"
)

func newShowMachine() *sessionx.Machine {
	m, err := sessionx.NewMachine(PhaseWarmup, []sessionx.Transition{
		{Name: transitionOpenShow, From: []sessionx.Phase{PhaseWarmup}, To: PhasePlaying},
		{Name: transitionNextRound, From: []sessionx.Phase{PhasePlaying}, To: PhasePlaying},
		{Name: transitionCloseShow, From: []sessionx.Phase{PhaseWarmup, PhasePlaying}, To: PhaseDone},
	}, PhaseDone)
	if err != nil {
		panic(err)
	}
	return m
}

// Host runs an improv show: a bounded number of rounds, each dealing the
// next scenario in file order.
type Host struct {
	scenarios   []Scenario
	machine     *sessionx.Machine
	roundBudget int
	now         func() time.Time
}

const DefaultRoundBudget = 3

// HostOption customizes a Host.
type HostOption func(*Host)

func WithRoundBudget(n int) HostOption {
	return func(h *Host) {
		if n > 0 {
			h.roundBudget = n
		}
	}
}

func WithHostClock(now func() time.Time) HostOption {
	return func(h *Host) {
		if now != nil {
			h.now = now
		}
	}
}

func NewHost(scenarios []Scenario, opts ...HostOption) (*Host, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("%w: at least one scenario is required", contractx.ErrValidation)
	}
	h := &Host{
		scenarios:   scenarios,
		machine:     newShowMachine(),
		roundBudget: DefaultRoundBudget,
		now:         time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h, nil
}

func (h *Host) Phase() sessionx.Phase {
	return h.machine.Phase()
}

func (h *Host) Round() int {
	return h.machine.Counter(roundsCounter)
}

// StartRound deals the next scenario. The round counter grows monotonically;
// asking for a round past the budget closes the show and reports the
// terminal no-more-rounds condition.
func (h *Host) StartRound() (Scenario, error) {
	transition := transitionNextRound
	if h.machine.Phase() == PhaseWarmup {
		transition = transitionOpenShow
	}

	if h.machine.Counter(roundsCounter) >= h.roundBudget {
		if _, err := h.machine.Apply(transitionCloseShow, h.now()); err != nil {
			return Scenario{}, err
		}
		return Scenario{}, fmt.Errorf("%w: no more rounds, the show is over", contractx.ErrInvalidState)
	}

	if _, err := h.machine.Apply(transition, h.now()); err != nil {
		return Scenario{}, err
	}
	round := h.machine.Increment(roundsCounter)
	return h.scenarios[(round-1)%len(h.scenarios)], nil
}

// CloseShow ends the show early.
func (h *Host) CloseShow() error {
	_, err := h.machine.Apply(transitionCloseShow, h.now())
	return err
}

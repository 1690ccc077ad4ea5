// Package game implements the interactive-fiction game master and the improv
// show host: turn-bounded phase progressions over static content documents,
// with the fiction session persisted as a single overwritten JSON document.
package game

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	contractx "github.com/voicelab-go/agentkit/agent/contract"
	sessionx "github.com/voicelab-go/agentkit/agent/session"
	storex "github.com/voicelab-go/agentkit/agent/store"
)

const (
	PhaseIntro    sessionx.Phase = "intro"
	PhaseActive   sessionx.Phase = "active"
	PhaseReacting sessionx.Phase = "reacting"
	PhaseDone     sessionx.Phase = "done"
)

const (
	turnsCounter = "turn_count"

	transitionBegin    = "begin"
	transitionReact    = "react"
	transitionContinue = "continue"
	transitionFinish   = "finish"
)

// Scene is one location in the world definition.
type Scene struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Choices     []string `json:"choices,omitempty"`
}

// World is the static story definition loaded once at startup.
type World struct {
	Title       string  `json:"title"`
	Opening     string  `json:"opening"`
	StartScene  string  `json:"start_scene"`
	Scenes      []Scene `json:"scenes"`
	DefaultTurn int     `json:"turn_budget,omitempty"`
}

// LoadWorld reads a world definition file.
func LoadWorld(path string) (World, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return World{}, fmt.Errorf("read world %s: %w", path, err)
	}
	var w World
	if err := json.Unmarshal(raw, &w); err != nil {
		return World{}, fmt.Errorf("decode world %s: %w", path, err)
	}
	if len(w.Scenes) == 0 {
		return World{}, fmt.Errorf("%w: world file %s has no scenes", contractx.ErrValidation, path)
	}
	return w, nil
}

func (w *World) Scene(id string) (Scene, error) {
	for _, s := range w.Scenes {
		if s.ID == id {
			return s, nil
		}
	}
	return Scene{}, fmt.Errorf("%w: scene %q", contractx.ErrNotFound, id)
}

// SessionDoc is the mutable sub-object persisted next to the world.
type SessionDoc struct {
	SceneID string            `json:"scene_id"`
	Log     []string          `json:"log,omitempty"`
	Machine sessionx.Snapshot `json:"machine"`
}

// StateDoc is the full persisted game-state document: world definition plus
// the mutable session sub-object, overwritten as a whole on every save.
type StateDoc struct {
	World   World      `json:"world"`
	Session SessionDoc `json:"session"`
}

func newStoryMachine() *sessionx.Machine {
	m, err := sessionx.NewMachine(PhaseIntro, []sessionx.Transition{
		{Name: transitionBegin, From: []sessionx.Phase{PhaseIntro}, To: PhaseActive},
		{Name: transitionReact, From: []sessionx.Phase{PhaseActive}, To: PhaseReacting},
		{Name: transitionContinue, From: []sessionx.Phase{PhaseReacting}, To: PhaseActive},
		{Name: transitionFinish, From: []sessionx.Phase{PhaseActive, PhaseReacting}, To: PhaseDone},
	}, PhaseDone)
	if err != nil {
		panic(err)
	}
	return m
}

// Master runs one interactive-fiction session over a world definition.
type Master struct {
	world      World
	machine    *sessionx.Machine
	sceneID    string
	log        []string
	turnBudget int

	recorder storex.Recorder
	docName  string
	now      func() time.Time
}

const DefaultTurnBudget = 12

// MasterOption customizes a Master.
type MasterOption func(*Master)

func WithTurnBudget(n int) MasterOption {
	return func(g *Master) {
		if n > 0 {
			g.turnBudget = n
		}
	}
}

func WithGameClock(now func() time.Time) MasterOption {
	return func(g *Master) {
		if now != nil {
			g.now = now
		}
	}
}

func NewMaster(world World, recorder storex.Recorder, docName string, opts ...MasterOption) (*Master, error) {
	if recorder == nil {
		return nil, fmt.Errorf("%w: recorder is required", contractx.ErrValidation)
	}
	if len(world.Scenes) == 0 {
		return nil, fmt.Errorf("%w: world has no scenes", contractx.ErrValidation)
	}
	start := world.StartScene
	if start == "" {
		start = world.Scenes[0].ID
	}
	if _, err := world.Scene(start); err != nil {
		return nil, err
	}

	g := &Master{
		world:      world,
		machine:    newStoryMachine(),
		sceneID:    start,
		turnBudget: world.DefaultTurn,
		recorder:   recorder,
		docName:    docName,
		now:        time.Now,
	}
	if g.turnBudget <= 0 {
		g.turnBudget = DefaultTurnBudget
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// ResumeMaster restores a persisted game-state document.
func ResumeMaster(ctx context.Context, recorder storex.Recorder, docName string, opts ...MasterOption) (*Master, error) {
	var doc StateDoc
	if err := recorder.LoadDocument(ctx, docName, &doc); err != nil {
		return nil, err
	}
	g, err := NewMaster(doc.World, recorder, docName, opts...)
	if err != nil {
		return nil, err
	}
	if err := g.machine.Restore(doc.Session.Machine); err != nil {
		return nil, err
	}
	g.sceneID = doc.Session.SceneID
	g.log = doc.Session.Log
	return g, nil
}

func (g *Master) Phase() sessionx.Phase {
	return g.machine.Phase()
}

func (g *Master) Turns() int {
	return g.machine.Counter(turnsCounter)
}

func (g *Master) CurrentScene() (Scene, error) {
	return g.world.Scene(g.sceneID)
}

// Begin opens the story and returns the opening narration.
func (g *Master) Begin(ctx context.Context) (string, error) {
	if _, err := g.machine.Apply(transitionBegin, g.now()); err != nil {
		return "", err
	}
	if err := g.save(ctx); err != nil {
		return "", err
	}
	return g.world.Opening, nil
}

// PlayerAction records one player turn. Valid only while the story is
// active; the machine moves to reacting until Narrate supplies the outcome.
func (g *Master) PlayerAction(ctx context.Context, action string) error {
	action = strings.TrimSpace(action)
	if action == "" {
		return fmt.Errorf("%w: action is empty", contractx.ErrValidation)
	}
	if _, err := g.machine.Apply(transitionReact, g.now()); err != nil {
		return err
	}
	g.machine.Increment(turnsCounter)
	g.log = append(g.log, "player: "+action)
	return g.save(ctx)
}

// Narrate records the outcome of the last action and either returns play to
// the active phase or, once the turn budget is spent, forces the ending.
func (g *Master) Narrate(ctx context.Context, outcome, nextSceneID string) (ended bool, err error) {
	if nextSceneID != "" {
		if _, err := g.world.Scene(nextSceneID); err != nil {
			return false, err
		}
	}

	transition := transitionContinue
	if g.machine.Counter(turnsCounter) >= g.turnBudget {
		transition = transitionFinish
	}
	if _, err := g.machine.Apply(transition, g.now()); err != nil {
		return false, err
	}

	if nextSceneID != "" {
		g.sceneID = nextSceneID
	}
	if outcome = strings.TrimSpace(outcome); outcome != "" {
		g.log = append(g.log, "gm: "+outcome)
	}
	if err := g.save(ctx); err != nil {
		return false, err
	}

	ended = g.machine.Phase() == PhaseDone
	if ended {
		log.Info().Str("world", g.world.Title).Int("turns", g.Turns()).Msg("story finished")
	}
	return ended, nil
}

// Finish ends the story early.
func (g *Master) Finish(ctx context.Context) error {
	if _, err := g.machine.Apply(transitionFinish, g.now()); err != nil {
		return err
	}
	return g.save(ctx)
}

func (g *Master) save(ctx context.Context) error {
	doc := StateDoc{
		World: g.world,
		Session: SessionDoc{
			SceneID: g.sceneID,
			Log:     g.log,
			Machine: g.machine.Snapshot(),
		},
	}
	_, err := g.recorder.SaveDocument(ctx, g.docName, doc)
	return err
}

// Package registry assembles the agent variants: each one pairs a persona,
// a declared tool surface, and an executor bound to its domain core. The
// registry is the only place that knows how the cores are wired together.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	cartx "github.com/voicelab-go/agentkit/agent/cart"
	catalogx "github.com/voicelab-go/agentkit/agent/catalog"
	checkinx "github.com/voicelab-go/agentkit/agent/checkin"
	coffeex "github.com/voicelab-go/agentkit/agent/coffee"
	contractx "github.com/voicelab-go/agentkit/agent/contract"
	fraudx "github.com/voicelab-go/agentkit/agent/fraud"
	gamex "github.com/voicelab-go/agentkit/agent/game"
	leadx "github.com/voicelab-go/agentkit/agent/lead"
	promptx "github.com/voicelab-go/agentkit/agent/prompt"
	routerx "github.com/voicelab-go/agentkit/agent/router"
	storex "github.com/voicelab-go/agentkit/agent/store"
	toolx "github.com/voicelab-go/agentkit/agent/tool"
)

// Config locates the static content files and the data directory every
// record and document lands under.
type Config struct {
	ContentDir string `split_words:"true" default:"content"`
	DataDir    string `split_words:"true" default:"data"`
}

// Static content file names under ContentDir.
const (
	groceryCatalogFile  = "grocery_catalog.json"
	productCatalogFile  = "product_catalog.json"
	storyWorldFile      = "story_world.json"
	improvScenariosFile = "improv_scenarios.json"
	fraudCasesFile      = "fraud_cases.json"

	fraudCasesDoc = "fraud_cases"
	storyStateDoc = "story_state"
)

// Agent is one ready-to-serve variant.
type Agent struct {
	Type    contractx.AgentType
	Persona string
	Tools   []*schema.ToolInfo
	Execute toolx.Executor
}

// Registry holds every built agent variant and implements the tool gateway
// the external controller drives.
type Registry struct {
	agents map[contractx.AgentType]*Agent
	router *routerx.Router
}

var _ contractx.ToolGateway = (*Registry)(nil)

// New builds all agent variants from the static content under cfg.ContentDir,
// persisting into cfg.DataDir.
func New(ctx context.Context, cfg Config) (*Registry, error) {
	recorder, err := storex.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	r := &Registry{agents: make(map[contractx.AgentType]*Agent, 12)}

	bar, err := coffeex.NewBar(recorder)
	if err != nil {
		return nil, err
	}
	r.add(contractx.AgentTypeCoffee, toolx.NewCoffeeExecutor(bar))

	journal, err := checkinx.NewJournal(recorder, "")
	if err != nil {
		return nil, err
	}
	r.add(contractx.AgentTypeWellness, toolx.NewCheckinExecutor(journal))

	r.router, err = routerx.New(contractx.AgentTypeTutorRouter, routerx.DefaultTutorTable())
	if err != nil {
		return nil, err
	}
	r.add(contractx.AgentTypeTutorRouter, toolx.NewTutorRouterExecutor(r.router))
	r.add(contractx.AgentTypeTutorMath, toolx.NewMathTutorExecutor(r.router))
	r.add(contractx.AgentTypeTutorReading, toolx.NewSubjectExecutor(contractx.AgentTypeTutorReading, r.router))
	r.add(contractx.AgentTypeTutorScience, toolx.NewSubjectExecutor(contractx.AgentTypeTutorScience, r.router))

	groceries, err := catalogx.Load(filepath.Join(cfg.ContentDir, groceryCatalogFile))
	if err != nil {
		return nil, err
	}
	groceryCart, err := cartx.New(groceries, recorder)
	if err != nil {
		return nil, err
	}
	r.add(contractx.AgentTypeGrocery, toolx.NewCartExecutor(contractx.AgentTypeGrocery, groceryCart))

	products, err := catalogx.Load(filepath.Join(cfg.ContentDir, productCatalogFile))
	if err != nil {
		return nil, err
	}
	shoppingCart, err := cartx.New(products, recorder)
	if err != nil {
		return nil, err
	}
	r.add(contractx.AgentTypeShopping, toolx.NewCartExecutor(contractx.AgentTypeShopping, shoppingCart))

	book, err := leadx.NewBook(recorder)
	if err != nil {
		return nil, err
	}
	r.add(contractx.AgentTypeSalesLead, toolx.NewLeadExecutor(book))

	seed, err := loadFraudSeed(filepath.Join(cfg.ContentDir, fraudCasesFile))
	if err != nil {
		return nil, err
	}
	db, err := fraudx.OpenDatabase(ctx, recorder, fraudCasesDoc, seed)
	if err != nil {
		return nil, err
	}
	r.add(contractx.AgentTypeFraud, toolx.NewFraudExecutor(db))

	world, err := gamex.LoadWorld(filepath.Join(cfg.ContentDir, storyWorldFile))
	if err != nil {
		return nil, err
	}
	gm, err := gamex.NewMaster(world, recorder, storyStateDoc)
	if err != nil {
		return nil, err
	}
	r.add(contractx.AgentTypeFictionGM, toolx.NewStoryExecutor(gm))

	scenarios, err := gamex.LoadScenarios(filepath.Join(cfg.ContentDir, improvScenariosFile))
	if err != nil {
		return nil, err
	}
	host, err := gamex.NewHost(scenarios)
	if err != nil {
		return nil, err
	}
	r.add(contractx.AgentTypeImprov, toolx.NewImprovExecutor(host))

	log.Info().Int("agents", len(r.agents)).Str("content_dir", cfg.ContentDir).Str("data_dir", cfg.DataDir).Msg("agent registry built")
	return r, nil
}

func (r *Registry) add(agentType contractx.AgentType, exec toolx.Executor) {
	persona, err := promptx.ForAgent(agentType)
	if err != nil {
		// Every AgentType constant has an embedded persona.
		panic(err)
	}
	r.agents[agentType] = &Agent{
		Type:    agentType,
		Persona: persona,
		Tools:   toolx.InfosFor(agentType),
		Execute: exec,
	}
}

// Agent returns one built variant.
func (r *Registry) Agent(agentType contractx.AgentType) (*Agent, error) {
	a, ok := r.agents[agentType]
	if !ok {
		return nil, fmt.Errorf("%w: agent %s", contractx.ErrNotFound, agentType)
	}
	return a, nil
}

// Types lists the built variants.
func (r *Registry) Types() []contractx.AgentType {
	out := make([]contractx.AgentType, 0, len(r.agents))
	for t := range r.agents {
		out = append(out, t)
	}
	return out
}

// Router exposes the tutoring handoff state shared by the tutor variants.
func (r *Registry) Router() *routerx.Router {
	return r.router
}

// Execute implements contract.ToolGateway: it runs each request against the
// named agent's executor. Domain failures ride inside the results; only a
// missing agent or a programmer-level fault aborts the batch.
func (r *Registry) Execute(ctx context.Context, agentType contractx.AgentType, reqs []contractx.ToolRequest) ([]contractx.ToolResult, error) {
	a, err := r.Agent(agentType)
	if err != nil {
		return nil, err
	}

	results := make([]contractx.ToolResult, 0, len(reqs))
	for _, req := range reqs {
		res, err := a.Execute(ctx, req.Tool, req.Args)
		if err != nil {
			return results, fmt.Errorf("agent %s tool %s: %w", agentType, req.Tool, err)
		}
		log.Debug().Str("agent", string(agentType)).Str("tool", req.Tool).Bool("ok", res.Error == "").Msg("tool executed")
		results = append(results, res)
	}
	return results, nil
}

func loadFraudSeed(path string) ([]fraudx.Case, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fraud cases %s: %w", path, err)
	}
	var seed []fraudx.Case
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("decode fraud cases %s: %w", path, err)
	}
	return seed, nil
}

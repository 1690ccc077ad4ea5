package prompt

import (
	"errors"
	"strings"
	"testing"

	contractx "github.com/voicelab-go/agentkit/agent/contract"
)

func TestForAgentCoversEveryVariant(t *testing.T) {
	t.Parallel()

	variants := []contractx.AgentType{
		contractx.AgentTypeCoffee,
		contractx.AgentTypeWellness,
		contractx.AgentTypeTutorRouter,
		contractx.AgentTypeTutorMath,
		contractx.AgentTypeTutorReading,
		contractx.AgentTypeTutorScience,
		contractx.AgentTypeGrocery,
		contractx.AgentTypeSalesLead,
		contractx.AgentTypeFraud,
		contractx.AgentTypeFictionGM,
		contractx.AgentTypeShopping,
		contractx.AgentTypeImprov,
	}
	for _, v := range variants {
		p, err := ForAgent(v)
		if err != nil {
			t.Fatalf("%s: %v", v, err)
		}
		if p == "" || strings.HasPrefix(p, " ") || strings.HasSuffix(p, "\n") {
			t.Fatalf("%s: persona not trimmed: %q", v, p)
		}
	}
}

func TestForAgentUnknown(t *testing.T) {
	t.Parallel()

	if _, err := ForAgent(contractx.AgentType("nope")); !errors.Is(err, contractx.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCoffeePersonaNamesTheTool(t *testing.T) {
	t.Parallel()

	p, err := ForAgent(contractx.AgentTypeCoffee)
	if err != nil {
		t.Fatalf("persona: %v", err)
	}
	if !strings.Contains(p, "save_order") {
		t.Fatal("coffee persona must instruct the save_order call")
	}
}

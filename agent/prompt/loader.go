package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	contractx "github.com/voicelab-go/agentkit/agent/contract"
)

var (
	//go:embed template/coffee.txt
	coffeeRaw string

	//go:embed template/wellness.txt
	wellnessRaw string

	//go:embed template/tutor_router.txt
	tutorRouterRaw string

	//go:embed template/tutor_math.txt
	tutorMathRaw string

	//go:embed template/tutor_reading.txt
	tutorReadingRaw string

	//go:embed template/tutor_science.txt
	tutorScienceRaw string

	//go:embed template/grocery.txt
	groceryRaw string

	//go:embed template/sales_lead.txt
	salesLeadRaw string

	//go:embed template/fraud.txt
	fraudRaw string

	//go:embed template/fiction_gm.txt
	fictionGMRaw string

	//go:embed template/shopping.txt
	shoppingRaw string

	//go:embed template/improv.txt
	improvRaw string
)

// ForAgent returns the persona instructions for one agent variant.
// The embed is compile-time; trimming is cheap, so this is safe to call per
// conversation.
func ForAgent(agentType contractx.AgentType) (string, error) {
	var raw string
	switch agentType {
	case contractx.AgentTypeCoffee:
		raw = coffeeRaw
	case contractx.AgentTypeWellness:
		raw = wellnessRaw
	case contractx.AgentTypeTutorRouter:
		raw = tutorRouterRaw
	case contractx.AgentTypeTutorMath:
		raw = tutorMathRaw
	case contractx.AgentTypeTutorReading:
		raw = tutorReadingRaw
	case contractx.AgentTypeTutorScience:
		raw = tutorScienceRaw
	case contractx.AgentTypeGrocery:
		raw = groceryRaw
	case contractx.AgentTypeSalesLead:
		raw = salesLeadRaw
	case contractx.AgentTypeFraud:
		raw = fraudRaw
	case contractx.AgentTypeFictionGM:
		raw = fictionGMRaw
	case contractx.AgentTypeShopping:
		raw = shoppingRaw
	case contractx.AgentTypeImprov:
		raw = improvRaw
	default:
		return "", fmt.Errorf("%w: no persona for agent %s", contractx.ErrNotFound, agentType)
	}
	return strings.TrimSpace(raw), nil
}

package contract

// AgentType names one configured conversational persona plus its tool set.
type AgentType string

const (
	AgentTypeCoffee       AgentType = "coffee"
	AgentTypeWellness     AgentType = "wellness"
	AgentTypeTutorRouter  AgentType = "tutor_router"
	AgentTypeTutorMath    AgentType = "tutor_math"
	AgentTypeTutorReading AgentType = "tutor_reading"
	AgentTypeTutorScience AgentType = "tutor_science"
	AgentTypeGrocery      AgentType = "grocery"
	AgentTypeSalesLead    AgentType = "sales_lead"
	AgentTypeFraud        AgentType = "fraud"
	AgentTypeFictionGM    AgentType = "fiction_gm"
	AgentTypeShopping     AgentType = "shopping"
	AgentTypeImprov       AgentType = "improv"
)

// ToolRequest is one invocation the external controller asks for.
type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

// ToolResult is what crosses back over the tool boundary. Domain failures are
// carried in Error as a human-readable message so the conversation can
// continue; a Go error is reserved for programmer-level faults.
type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

package contract

import "context"

// ToolGateway executes a batch of tool requests on behalf of one agent.
type ToolGateway interface {
	Execute(ctx context.Context, agentType AgentType, reqs []ToolRequest) ([]ToolResult, error)
}

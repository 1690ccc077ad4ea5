package tool

import (
	"fmt"
	"strings"

	contractx "github.com/voicelab-go/agentkit/agent/contract"
)

// Argument coercion for values arriving from JSON tool calls: strings come
// through as-is, numbers as float64, and missing optional fields as nil.

func stringArg(args map[string]any, key string, required bool) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		if required {
			return "", fmt.Errorf("%s is required", key)
		}
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	s = strings.TrimSpace(s)
	if required && s == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return s, nil
}

func intArg(args map[string]any, key string, fallback int) (int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return fallback, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%s must be a whole number", key)
		}
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, fmt.Errorf("%s must be a number", key)
	}
}

func floatArg(args map[string]any, key string) (float64, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%s is required", key)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%s must be a number", key)
	}
}

func boolArg(args map[string]any, key string) (bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return false, fmt.Errorf("%s is required", key)
	}
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%s must be a boolean", key)
	}
	return b, nil
}

// fail wraps a domain error into a tool result. Every error crossing the
// tool boundary becomes a message the controller can speak; the conversation
// continues.
func fail(tool string, err error) contractx.ToolResult {
	return contractx.ToolResult{Tool: tool, Error: err.Error()}
}

func failf(tool, format string, args ...any) contractx.ToolResult {
	return contractx.ToolResult{Tool: tool, Error: fmt.Sprintf(format, args...)}
}

func ok(tool string, result any) contractx.ToolResult {
	return contractx.ToolResult{Tool: tool, Result: result}
}

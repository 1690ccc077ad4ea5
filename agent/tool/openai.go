package tool

import (
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/openai/openai-go"
)

// ToolParams renders a variant's tool surface as OpenAI function-tool
// parameters, for controllers that speak the OpenAI tool-calling dialect.
// The declarations stay in eino ToolInfo form; this is only a projection at
// the controller seam.
func ToolParams(infos []*schema.ToolInfo) ([]openai.ChatCompletionToolParam, error) {
	params := make([]openai.ChatCompletionToolParam, 0, len(infos))
	for _, info := range infos {
		if info == nil || info.Name == "" {
			continue
		}

		fn := openai.FunctionDefinitionParam{Name: info.Name}
		if info.Desc != "" {
			fn.Description = openai.String(info.Desc)
		}

		if info.ParamsOneOf != nil {
			js, err := info.ParamsOneOf.ToOpenAPIV3()
			if err != nil {
				return nil, fmt.Errorf("tool %s: render params schema: %w", info.Name, err)
			}
			raw, err := json.Marshal(js)
			if err != nil {
				return nil, fmt.Errorf("tool %s: marshal params schema: %w", info.Name, err)
			}
			var m map[string]any
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, fmt.Errorf("tool %s: decode params schema: %w", info.Name, err)
			}
			fn.Parameters = openai.FunctionParameters(m)
		}

		params = append(params, openai.ChatCompletionToolParam{Function: fn})
	}
	return params, nil
}

// Package tool is the dispatch surface between the agent cores and the
// LLM-driven controller. Tools are declared as eino ToolInfo so any
// tool-calling model layer can bind them; executors convert every domain
// failure into a ToolResult message instead of a Go error.
package tool

import (
	"context"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/voicelab-go/agentkit/agent/contract"
)

// Executor runs one named tool with JSON-decoded arguments.
type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

const (
	ToolSaveOrder      = "save_order"
	ToolRecordCheckin  = "record_checkin"
	ToolRouteToSubject = "route_to_subject"
	ToolListSubjects   = "list_subjects"
	ToolReturnToRouter = "return_to_router"
	ToolMathEvaluate   = "math.evaluate"
	ToolMathCheck      = "math.check_answer"
	ToolSearchCatalog  = "search_catalog"
	ToolAddToCart      = "add_to_cart"
	ToolUpdateQuantity = "update_quantity"
	ToolRemoveFromCart = "remove_from_cart"
	ToolViewCart       = "view_cart"
	ToolCheckout       = "checkout"
	ToolCaptureLead    = "capture_lead"
	ToolStartCase      = "start_verification"
	ToolVerifyAnswer   = "verify_answer"
	ToolGetTransaction = "get_transaction"
	ToolResolveCase    = "resolve_case"
	ToolBeginStory     = "begin_story"
	ToolTakeAction     = "take_action"
	ToolNarrate        = "narrate"
	ToolEndStory       = "end_story"
	ToolStartRound     = "start_round"
	ToolEndShow        = "end_show"
)

func cartToolInfos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolSearchCatalog,
			Desc: "Search the product catalog by name or tag.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {Type: schema.String, Desc: "Search words from the customer", Required: true},
			}),
		},
		{
			Name: ToolAddToCart,
			Desc: "Add an item to the cart by id or name. Re-adding the same item increases its quantity.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"item":     {Type: schema.String, Desc: "Item id or name", Required: true},
				"quantity": {Type: schema.Integer, Desc: "How many to add, default 1"},
				"size":     {Type: schema.String, Desc: "Size variant if the item has sizes"},
			}),
		},
		{
			Name: ToolUpdateQuantity,
			Desc: "Set the quantity of an item already in the cart.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"item_id":  {Type: schema.String, Desc: "Catalog item id", Required: true},
				"quantity": {Type: schema.Integer, Desc: "New quantity, at least 1", Required: true},
			}),
		},
		{
			Name: ToolRemoveFromCart,
			Desc: "Remove an item from the cart.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"item_id": {Type: schema.String, Desc: "Catalog item id", Required: true},
			}),
		},
		{
			Name: ToolViewCart,
			Desc: "List the cart contents and the current total.",
		},
		{
			Name: ToolCheckout,
			Desc: "Place the order for everything in the cart and clear it.",
		},
	}
}

func returnToRouterInfo() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: ToolReturnToRouter,
		Desc: "Hand the student back to the tutoring front desk.",
	}
}

// InfosFor returns the declared tool surface of one agent variant.
func InfosFor(agentType contractx.AgentType) []*schema.ToolInfo {
	switch agentType {
	case contractx.AgentTypeCoffee:
		return []*schema.ToolInfo{
			{
				Name: ToolSaveOrder,
				Desc: "Save a completed coffee order. Call only after confirming all details with the customer.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"drink_type":    {Type: schema.String, Desc: "Drink ordered, e.g. latte, cappuccino", Required: true},
					"size":          {Type: schema.String, Desc: "small, medium, or large", Required: true},
					"milk":          {Type: schema.String, Desc: "whole, skim, oat, almond, soy, or none", Required: true},
					"extras":        {Type: schema.String, Desc: "Comma-separated extras, may be empty"},
					"customer_name": {Type: schema.String, Desc: "Name for the order", Required: true},
				}),
			},
		}
	case contractx.AgentTypeWellness:
		return []*schema.ToolInfo{
			{
				Name: ToolRecordCheckin,
				Desc: "Record today's wellness check-in.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"mood":       {Type: schema.String, Desc: "How the user says they feel", Required: true},
					"energy":     {Type: schema.Integer, Desc: "Energy level from 1 to 10", Required: true},
					"highlights": {Type: schema.String, Desc: "Good moments from the day"},
					"concerns":   {Type: schema.String, Desc: "Anything worrying the user"},
				}),
			},
		}
	case contractx.AgentTypeTutorRouter:
		return []*schema.ToolInfo{
			{
				Name: ToolRouteToSubject,
				Desc: "Hand the student to a subject tutor.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"subject": {Type: schema.String, Desc: "math, reading, or science", Required: true},
				}),
			},
			{
				Name: ToolListSubjects,
				Desc: "List the subjects this tutor can help with.",
			},
		}
	case contractx.AgentTypeTutorMath:
		return []*schema.ToolInfo{
			{
				Name: ToolMathEvaluate,
				Desc: "Evaluate an arithmetic expression.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"expression": {Type: schema.String, Desc: "Expression to evaluate", Required: true},
				}),
			},
			{
				Name: ToolMathCheck,
				Desc: "Check a student's answer to an arithmetic expression.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"expression": {Type: schema.String, Desc: "The exercise expression", Required: true},
					"answer":     {Type: schema.Number, Desc: "The student's answer", Required: true},
				}),
			},
			returnToRouterInfo(),
		}
	case contractx.AgentTypeTutorReading, contractx.AgentTypeTutorScience:
		return []*schema.ToolInfo{returnToRouterInfo()}
	case contractx.AgentTypeGrocery, contractx.AgentTypeShopping:
		return cartToolInfos()
	case contractx.AgentTypeSalesLead:
		return []*schema.ToolInfo{
			{
				Name: ToolCaptureLead,
				Desc: "Save a qualified sales lead. Call after collecting at least name and interest.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"name":     {Type: schema.String, Desc: "Prospect's name", Required: true},
					"company":  {Type: schema.String, Desc: "Prospect's company"},
					"interest": {Type: schema.String, Desc: "What they are interested in", Required: true},
					"budget":   {Type: schema.String, Desc: "Stated budget range"},
					"timeline": {Type: schema.String, Desc: "When they want to buy"},
					"notes":    {Type: schema.String, Desc: "Anything else worth keeping"},
				}),
			},
		}
	case contractx.AgentTypeFraud:
		return []*schema.ToolInfo{
			{
				Name: ToolStartCase,
				Desc: "Look up the customer's fraud case and start identity verification.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"customer_name": {Type: schema.String, Desc: "Customer's full name", Required: true},
				}),
			},
			{
				Name: ToolVerifyAnswer,
				Desc: "Check the customer's answer to their security question. Two wrong answers end verification.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"answer": {Type: schema.String, Desc: "The customer's answer", Required: true},
				}),
			},
			{
				Name: ToolGetTransaction,
				Desc: "Read the flagged transaction to the verified customer.",
			},
			{
				Name: ToolResolveCase,
				Desc: "Record whether the verified customer recognizes the transaction.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"fraudulent": {Type: schema.Boolean, Desc: "True when the customer does not recognize it", Required: true},
				}),
			},
		}
	case contractx.AgentTypeFictionGM:
		return []*schema.ToolInfo{
			{
				Name: ToolBeginStory,
				Desc: "Open the story and get the opening narration.",
			},
			{
				Name: ToolTakeAction,
				Desc: "Record the player's action for this turn.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"action": {Type: schema.String, Desc: "What the player does", Required: true},
				}),
			},
			{
				Name: ToolNarrate,
				Desc: "Record the outcome of the player's action and optionally move to another scene.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"outcome":       {Type: schema.String, Desc: "Narrated outcome", Required: true},
					"next_scene_id": {Type: schema.String, Desc: "Scene to move to, if any"},
				}),
			},
			{
				Name: ToolEndStory,
				Desc: "End the story early.",
			},
		}
	case contractx.AgentTypeImprov:
		return []*schema.ToolInfo{
			{
				Name: ToolStartRound,
				Desc: "Start the next improv round and get its scenario.",
			},
			{
				Name: ToolEndShow,
				Desc: "Close the show before the round limit.",
			},
		}
	default:
		return nil
	}
}

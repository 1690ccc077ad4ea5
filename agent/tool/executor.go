package tool

import (
	"context"
	"fmt"

	cartx "github.com/voicelab-go/agentkit/agent/cart"
	checkinx "github.com/voicelab-go/agentkit/agent/checkin"
	coffeex "github.com/voicelab-go/agentkit/agent/coffee"
	contractx "github.com/voicelab-go/agentkit/agent/contract"
	fraudx "github.com/voicelab-go/agentkit/agent/fraud"
	gamex "github.com/voicelab-go/agentkit/agent/game"
	leadx "github.com/voicelab-go/agentkit/agent/lead"
	routerx "github.com/voicelab-go/agentkit/agent/router"
)

// DefaultExecutor answers every tool with an unavailable message; variant
// executors fall back to it for names outside their surface.
func DefaultExecutor(agentType contractx.AgentType) Executor {
	return func(_ context.Context, tool string, _ map[string]any) (contractx.ToolResult, error) {
		return failf(tool, "tool=%s is unavailable for agent=%s", tool, agentType), nil
	}
}

/* ------------------------------- Coffee ---------------------------------- */

func NewCoffeeExecutor(bar *coffeex.Bar) Executor {
	fallback := DefaultExecutor(contractx.AgentTypeCoffee)
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		if tool != ToolSaveOrder {
			return fallback(ctx, tool, args)
		}
		drink, err := stringArg(args, "drink_type", true)
		if err != nil {
			return fail(tool, err), nil
		}
		size, err := stringArg(args, "size", true)
		if err != nil {
			return fail(tool, err), nil
		}
		milk, err := stringArg(args, "milk", true)
		if err != nil {
			return fail(tool, err), nil
		}
		extras, err := stringArg(args, "extras", false)
		if err != nil {
			return fail(tool, err), nil
		}
		name, err := stringArg(args, "customer_name", true)
		if err != nil {
			return fail(tool, err), nil
		}

		msg, err := bar.SaveOrder(ctx, drink, size, milk, extras, name)
		if err != nil {
			return fail(tool, err), nil
		}
		return ok(tool, msg), nil
	}
}

/* ------------------------------ Wellness --------------------------------- */

func NewCheckinExecutor(journal *checkinx.Journal) Executor {
	fallback := DefaultExecutor(contractx.AgentTypeWellness)
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		if tool != ToolRecordCheckin {
			return fallback(ctx, tool, args)
		}
		mood, err := stringArg(args, "mood", true)
		if err != nil {
			return fail(tool, err), nil
		}
		energy, err := intArg(args, "energy", 0)
		if err != nil {
			return fail(tool, err), nil
		}
		highlights, _ := stringArg(args, "highlights", false)
		concerns, _ := stringArg(args, "concerns", false)

		rec, err := journal.Record(ctx, checkinx.CheckIn{
			Mood:       mood,
			Energy:     energy,
			Highlights: highlights,
			Concerns:   concerns,
		})
		if err != nil {
			return fail(tool, err), nil
		}
		return ok(tool, rec), nil
	}
}

/* ---------------------------- Tutor routing ------------------------------ */

func NewTutorRouterExecutor(r *routerx.Router) Executor {
	fallback := DefaultExecutor(contractx.AgentTypeTutorRouter)
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		switch tool {
		case ToolRouteToSubject:
			subject, err := stringArg(args, "subject", true)
			if err != nil {
				return fail(tool, err), nil
			}
			target, known := subjectAgent(subject)
			if !known {
				return failf(tool, "unknown subject %q, offer math, reading, or science", subject), nil
			}
			next, err := r.Handoff(target)
			if err != nil {
				return fail(tool, err), nil
			}
			return contractx.ToolResult{Tool: tool, Result: map[string]any{"agent": string(next)}}, nil
		case ToolListSubjects:
			return ok(tool, []string{"math", "reading", "science"}), nil
		default:
			return fallback(ctx, tool, args)
		}
	}
}

// NewSubjectExecutor is the surface shared by subject tutors that carry no
// tools of their own: the one thing they can do is hand the student back.
func NewSubjectExecutor(agentType contractx.AgentType, r *routerx.Router) Executor {
	fallback := DefaultExecutor(agentType)
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		if tool != ToolReturnToRouter {
			return fallback(ctx, tool, args)
		}
		next, err := r.Handoff(contractx.AgentTypeTutorRouter)
		if err != nil {
			return fail(tool, err), nil
		}
		return contractx.ToolResult{Tool: tool, Result: map[string]any{"agent": string(next)}}, nil
	}
}

func subjectAgent(subject string) (contractx.AgentType, bool) {
	switch subject {
	case "math":
		return contractx.AgentTypeTutorMath, true
	case "reading":
		return contractx.AgentTypeTutorReading, true
	case "science":
		return contractx.AgentTypeTutorScience, true
	default:
		return "", false
	}
}

/* ------------------------------ Math tutor -------------------------------- */

type MathEvaluateOutput struct {
	Expression string  `json:"expression"`
	Result     float64 `json:"result"`
}

type MathCheckOutput struct {
	Expression string  `json:"expression"`
	Answer     float64 `json:"answer"`
	Correct    bool    `json:"correct"`
	Expected   float64 `json:"expected"`
}

func NewMathTutorExecutor(r *routerx.Router) Executor {
	fallback := NewSubjectExecutor(contractx.AgentTypeTutorMath, r)
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		switch tool {
		case ToolMathEvaluate:
			expr, err := stringArg(args, "expression", true)
			if err != nil {
				return fail(tool, err), nil
			}
			v, err := evaluateExpression(expr)
			if err != nil {
				return fail(tool, err), nil
			}
			return ok(tool, MathEvaluateOutput{Expression: expr, Result: v}), nil
		case ToolMathCheck:
			expr, err := stringArg(args, "expression", true)
			if err != nil {
				return fail(tool, err), nil
			}
			answer, err := floatArg(args, "answer")
			if err != nil {
				return fail(tool, err), nil
			}
			correct, expected, err := checkAnswer(expr, answer)
			if err != nil {
				return fail(tool, err), nil
			}
			return ok(tool, MathCheckOutput{
				Expression: expr,
				Answer:     answer,
				Correct:    correct,
				Expected:   expected,
			}), nil
		default:
			return fallback(ctx, tool, args)
		}
	}
}

/* ------------------------------- Shopping --------------------------------- */

type CartLineView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Variant  string `json:"variant,omitempty"`
	Subtotal string `json:"subtotal"`
}

type CartView struct {
	Lines []CartLineView `json:"lines"`
	Total string         `json:"total"`
}

// NewCartExecutor serves both the grocery and e-commerce variants; they
// differ only in catalog content and persona.
func NewCartExecutor(agentType contractx.AgentType, cart *cartx.Cart) Executor {
	fallback := DefaultExecutor(agentType)
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		switch tool {
		case ToolSearchCatalog:
			query, err := stringArg(args, "query", true)
			if err != nil {
				return fail(tool, err), nil
			}
			items := cart.Catalog().Search(query)
			if len(items) == 0 {
				return failf(tool, "nothing in the catalog matches %q", query), nil
			}
			return ok(tool, items), nil

		case ToolAddToCart:
			ref, err := stringArg(args, "item", true)
			if err != nil {
				return fail(tool, err), nil
			}
			qty, err := intArg(args, "quantity", 1)
			if err != nil {
				return fail(tool, err), nil
			}
			size, _ := stringArg(args, "size", false)
			line, err := cart.Add(ref, qty, size)
			if err != nil {
				return fail(tool, err), nil
			}
			return ok(tool, CartLineView{
				ID:       line.Item.ID,
				Name:     line.Item.Name,
				Quantity: line.Quantity,
				Variant:  line.Variant,
				Subtotal: line.Subtotal().StringFixed(2),
			}), nil

		case ToolUpdateQuantity:
			id, err := stringArg(args, "item_id", true)
			if err != nil {
				return fail(tool, err), nil
			}
			qty, err := intArg(args, "quantity", 0)
			if err != nil {
				return fail(tool, err), nil
			}
			if err := cart.SetQuantity(id, qty); err != nil {
				return fail(tool, err), nil
			}
			return ok(tool, fmt.Sprintf("quantity of %s set to %d", id, qty)), nil

		case ToolRemoveFromCart:
			id, err := stringArg(args, "item_id", true)
			if err != nil {
				return fail(tool, err), nil
			}
			if err := cart.Remove(id); err != nil {
				return fail(tool, err), nil
			}
			return ok(tool, fmt.Sprintf("%s removed from the cart", id)), nil

		case ToolViewCart:
			lines, total := cart.View()
			view := CartView{Total: total.StringFixed(2), Lines: make([]CartLineView, 0, len(lines))}
			for _, line := range lines {
				view.Lines = append(view.Lines, CartLineView{
					ID:       line.Item.ID,
					Name:     line.Item.Name,
					Quantity: line.Quantity,
					Variant:  line.Variant,
					Subtotal: line.Subtotal().StringFixed(2),
				})
			}
			return ok(tool, view), nil

		case ToolCheckout:
			order, err := cart.Checkout(ctx)
			if err != nil {
				return fail(tool, err), nil
			}
			return ok(tool, order), nil

		default:
			return fallback(ctx, tool, args)
		}
	}
}

/* ------------------------------ Sales lead -------------------------------- */

func NewLeadExecutor(book *leadx.Book) Executor {
	fallback := DefaultExecutor(contractx.AgentTypeSalesLead)
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		if tool != ToolCaptureLead {
			return fallback(ctx, tool, args)
		}
		name, err := stringArg(args, "name", true)
		if err != nil {
			return fail(tool, err), nil
		}
		interest, err := stringArg(args, "interest", true)
		if err != nil {
			return fail(tool, err), nil
		}
		company, _ := stringArg(args, "company", false)
		budget, _ := stringArg(args, "budget", false)
		timeline, _ := stringArg(args, "timeline", false)
		notes, _ := stringArg(args, "notes", false)

		captured, err := book.Capture(ctx, leadx.Lead{
			Name:     name,
			Company:  company,
			Interest: interest,
			Budget:   budget,
			Timeline: timeline,
			Notes:    notes,
		})
		if err != nil {
			return fail(tool, err), nil
		}
		return ok(tool, captured), nil
	}
}

/* -------------------------------- Fraud ----------------------------------- */

// NewFraudExecutor keeps the per-conversation verification session behind
// the tool surface: start_verification binds the session, the rest operate
// on it.
func NewFraudExecutor(db *fraudx.Database) Executor {
	fallback := DefaultExecutor(contractx.AgentTypeFraud)
	var session *fraudx.Session

	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		switch tool {
		case ToolStartCase:
			name, err := stringArg(args, "customer_name", true)
			if err != nil {
				return fail(tool, err), nil
			}
			s, err := fraudx.NewSession(db, name)
			if err != nil {
				return fail(tool, err), nil
			}
			session = s
			return ok(tool, map[string]any{
				"security_question": s.SecurityQuestion(),
				"phase":             string(s.Phase()),
			}), nil

		case ToolVerifyAnswer:
			if session == nil {
				return failf(tool, "no verification in progress, call %s first", ToolStartCase), nil
			}
			answer, err := stringArg(args, "answer", true)
			if err != nil {
				return fail(tool, err), nil
			}
			verified, err := session.VerifyAnswer(ctx, answer)
			if err != nil {
				return fail(tool, err), nil
			}
			return ok(tool, map[string]any{
				"verified": verified,
				"attempts": session.Attempts(),
				"phase":    string(session.Phase()),
			}), nil

		case ToolGetTransaction:
			if session == nil {
				return failf(tool, "no verification in progress, call %s first", ToolStartCase), nil
			}
			if session.Phase() != fraudx.PhaseVerified {
				return failf(tool, "customer is not verified yet"), nil
			}
			return ok(tool, session.Case().Transaction), nil

		case ToolResolveCase:
			if session == nil {
				return failf(tool, "no verification in progress, call %s first", ToolStartCase), nil
			}
			fraudulent, err := boolArg(args, "fraudulent")
			if err != nil {
				return fail(tool, err), nil
			}
			if err := session.Resolve(ctx, fraudulent); err != nil {
				return fail(tool, err), nil
			}
			return ok(tool, map[string]any{"phase": string(session.Phase())}), nil

		default:
			return fallback(ctx, tool, args)
		}
	}
}

/* --------------------------------- Game ----------------------------------- */

func NewStoryExecutor(gm *gamex.Master) Executor {
	fallback := DefaultExecutor(contractx.AgentTypeFictionGM)
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		switch tool {
		case ToolBeginStory:
			opening, err := gm.Begin(ctx)
			if err != nil {
				return fail(tool, err), nil
			}
			return ok(tool, opening), nil

		case ToolTakeAction:
			action, err := stringArg(args, "action", true)
			if err != nil {
				return fail(tool, err), nil
			}
			if err := gm.PlayerAction(ctx, action); err != nil {
				return fail(tool, err), nil
			}
			scene, err := gm.CurrentScene()
			if err != nil {
				return fail(tool, err), nil
			}
			return ok(tool, map[string]any{
				"scene": scene,
				"turn":  gm.Turns(),
			}), nil

		case ToolNarrate:
			outcome, err := stringArg(args, "outcome", true)
			if err != nil {
				return fail(tool, err), nil
			}
			nextScene, _ := stringArg(args, "next_scene_id", false)
			ended, err := gm.Narrate(ctx, outcome, nextScene)
			if err != nil {
				return fail(tool, err), nil
			}
			return ok(tool, map[string]any{
				"ended": ended,
				"phase": string(gm.Phase()),
			}), nil

		case ToolEndStory:
			if err := gm.Finish(ctx); err != nil {
				return fail(tool, err), nil
			}
			return ok(tool, "story ended"), nil

		default:
			return fallback(ctx, tool, args)
		}
	}
}

func NewImprovExecutor(host *gamex.Host) Executor {
	fallback := DefaultExecutor(contractx.AgentTypeImprov)
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		switch tool {
		case ToolStartRound:
			scenario, err := host.StartRound()
			if err != nil {
				return fail(tool, err), nil
			}
			return ok(tool, map[string]any{
				"round":    host.Round(),
				"scenario": scenario,
			}), nil

		case ToolEndShow:
			if err := host.CloseShow(); err != nil {
				return fail(tool, err), nil
			}
			return ok(tool, "show closed"), nil

		default:
			return fallback(ctx, tool, args)
		}
	}
}

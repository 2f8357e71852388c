package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/buildagent/multibuild/internal/domain"
	"github.com/buildagent/multibuild/internal/recommend"
	"github.com/buildagent/multibuild/internal/session"
)

// topic is the keyword classification of an interactive message.
type topic string

const (
	topicAlternatives    topic = "alternatives"
	topicCost            topic = "cost"
	topicSafety          topic = "safety"
	topicTime            topic = "time"
	topicRecommendations topic = "recommendations"
	topicGeneral         topic = "general"
)

// topicKeywords is scanned in order; the first matching topic wins.
var topicKeywords = []struct {
	topic    topic
	keywords []string
}{
	{topicAlternatives, []string{"alternative", "alternativen", "cheaper", "instead", "substitute", "swap"}},
	{topicRecommendations, []string{"recommend", "empfehlung", "suggest", "which material", "better material"}},
	{topicCost, []string{"cost", "price", "budget", "kosten", "preis", "expensive", "€", "euro"}},
	{topicSafety, []string{"safety", "safe", "danger", "sicherheit", "protect", "risk"}},
	{topicTime, []string{"how long", "time", "duration", "dauer", "days", "when", "schedule"}},
}

func classify(text string) topic {
	lower := strings.ToLower(text)
	for _, entry := range topicKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.topic
			}
		}
	}
	return topicGeneral
}

// handleInteractive answers follow-up questions against the existing
// blueprint and materials without re-deriving them.
func (e *Engine) handleInteractive(ctx context.Context, state *session.State, text string) *Response {
	if state.Blueprint == nil {
		// Nothing to discuss yet; treat the message as a new project.
		state.Phase = domain.PhaseInput
		return e.handleParse(ctx, state, text)
	}

	switch classify(text) {
	case topicAlternatives:
		return e.respondAlternatives(state)
	case topicCost:
		return e.respondCost(state)
	case topicSafety:
		return e.respondSafety(state)
	case topicTime:
		return e.respondTime(state)
	case topicRecommendations:
		return e.respondRecommendations(state)
	default:
		return e.respondGeneral(ctx, state, text)
	}
}

func (e *Engine) recommendContext(state *session.State, priority recommend.Priority) recommend.Context {
	rc := recommend.Context{Priority: priority}
	if state.ParsedRequest != nil {
		rc.BuildType = state.ParsedRequest.BuildType
		rc.Experience = state.ParsedRequest.Experience
		rc.Budget = state.ParsedRequest.Budget
	}
	return rc
}

func (e *Engine) respondAlternatives(state *session.State) *Response {
	if state.Materials == nil {
		return &Response{Message: "I don't have a material list for this project yet, so there is nothing to swap. Ask me to recalculate first."}
	}

	recs := e.recommender.Recommendations(state.Materials.Materials, e.recommendContext(state, recommend.PriorityCost))
	if len(recs) == 0 {
		return &Response{Message: "I checked the catalog and your current materials are already the most suitable options; I found no worthwhile alternatives."}
	}

	var b strings.Builder
	b.WriteString("Here are the alternatives I found:\n")
	for _, r := range recs {
		fmt.Fprintf(&b, "- %s → %s: %s\n", r.OriginalID, r.Alternative.Name, r.Reason)
	}
	return &Response{Message: b.String(), Recommendations: recs}
}

func (e *Engine) respondCost(state *session.State) *Response {
	if state.Materials == nil {
		return &Response{Message: "I haven't calculated materials for this project yet, so I can't break down costs."}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total material cost: €%.2f\n", state.Materials.TotalCost)
	for _, item := range state.Materials.Materials {
		fmt.Fprintf(&b, "- %s: %d %s at €%.2f = €%.2f\n",
			item.Material.Name, item.Quantity, item.Material.Unit, item.Material.Price, item.TotalCost)
	}

	budget := 0.0
	if state.ParsedRequest != nil {
		budget = state.ParsedRequest.Budget
	}
	if recs, savings := e.recommender.CostOptimizations(state.Materials, budget); savings > 0 {
		fmt.Fprintf(&b, "\nSwitching to cheaper alternatives could save up to €%.2f.", savings)
		return &Response{Message: b.String(), Recommendations: recs}
	}
	return &Response{Message: b.String()}
}

func (e *Engine) respondSafety(state *session.State) *Response {
	var b strings.Builder
	b.WriteString("Safety guidelines for your project:\n")
	for _, g := range state.Blueprint.SafetyGuidelines {
		marker := ""
		if g.Severity == domain.SeverityCritical {
			marker = " (critical)"
		}
		fmt.Fprintf(&b, "- %s%s: %s\n", g.Title, marker, g.Description)
	}
	return &Response{Message: b.String()}
}

func (e *Engine) respondTime(state *session.State) *Response {
	bp := state.Blueprint
	var total float64
	var b strings.Builder
	fmt.Fprintf(&b, "Estimated build time: %s\n", bp.EstimatedTime)
	for _, ph := range bp.Phases {
		total += ph.EstimatedHours
		fmt.Fprintf(&b, "%d. %s: %s\n", ph.Order, ph.Name, ph.Duration)
	}
	fmt.Fprintf(&b, "That's roughly %.0f working hours in total. Weather-dependent phases may shift the schedule.", total)
	return &Response{Message: b.String()}
}

func (e *Engine) respondRecommendations(state *session.State) *Response {
	if state.Materials == nil {
		return &Response{Message: "I need a calculated material list before I can recommend upgrades or swaps."}
	}

	recs := e.recommender.Recommendations(state.Materials.Materials, e.recommendContext(state, recommend.PriorityBalanced))
	if len(recs) == 0 {
		return &Response{Message: "Your current material selection is already well matched to this build; I have no changes to recommend."}
	}

	var b strings.Builder
	b.WriteString("My recommendations:\n")
	for _, r := range recs {
		fmt.Fprintf(&b, "- %s instead of %s: %s\n", r.Alternative.Name, r.OriginalID, r.Reason)
	}
	return &Response{Message: b.String(), Recommendations: recs}
}

// respondGeneral answers open questions, preferring the AI adapter when
// configured and falling back to a deterministic summary.
func (e *Engine) respondGeneral(ctx context.Context, state *session.State, text string) *Response {
	answer := e.advisor.ExpertAdvice(ctx, text, e.projectContext(state), state.History)
	return &Response{Message: answer}
}

// planSummary renders the main response after a plan is produced.
func planSummary(state *session.State) string {
	bp := state.Blueprint
	var b strings.Builder

	fmt.Fprintf(&b, "Here is your %s plan:\n\n", bp.BuildType.Display())
	fmt.Fprintf(&b, "Difficulty: %s | Estimated time: %s | Phases: %d\n\n", bp.Difficulty, bp.EstimatedTime, len(bp.Phases))
	for _, ph := range bp.Phases {
		fmt.Fprintf(&b, "%d. %s (%s): %s\n", ph.Order, ph.Name, ph.Duration, ph.Description)
	}

	if calc := state.Materials; calc != nil {
		fmt.Fprintf(&b, "\nMaterials (total €%.2f, delivery %s):\n", calc.TotalCost, calc.DeliveryTime)
		for _, item := range calc.Materials {
			fmt.Fprintf(&b, "- %d %s %s (€%.2f)\n", item.Quantity, item.Material.Unit, item.Material.Name, item.TotalCost)
		}
	}

	if state.ParsedRequest != nil && state.ParsedRequest.Budget > 0 && state.Materials != nil {
		diff := state.ParsedRequest.Budget - state.Materials.TotalCost
		if diff >= 0 {
			fmt.Fprintf(&b, "\nThis fits your budget of €%.2f with €%.2f to spare.\n", state.ParsedRequest.Budget, diff)
		} else {
			fmt.Fprintf(&b, "\nThis exceeds your budget of €%.2f by €%.2f; ask me about cheaper alternatives.\n", state.ParsedRequest.Budget, -diff)
		}
	}

	b.WriteString("\nAsk me about alternatives, costs, safety or timing whenever you like.")
	return b.String()
}

// clarificationMessage frames the highest-priority open question.
func clarificationMessage(req domain.ParsedRequest, q domain.Question) string {
	var b strings.Builder
	if req.BuildType != domain.BuildUnknown {
		fmt.Fprintf(&b, "A %s, nice choice! ", req.BuildType.Display())
	}
	b.WriteString(q.Text)
	if len(q.Suggestions) > 0 {
		b.WriteString(" For example: ")
		b.WriteString(strings.Join(q.Suggestions, ", "))
		b.WriteString(".")
	}
	return b.String()
}

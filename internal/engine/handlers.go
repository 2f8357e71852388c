package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/buildagent/multibuild/internal/advisor"
	"github.com/buildagent/multibuild/internal/domain"
	"github.com/buildagent/multibuild/internal/parser"
	"github.com/buildagent/multibuild/internal/session"
)

// dispatch routes one message to the handler for the session's phase.
// Panics anywhere in the pipeline become apologetic responses with the
// phase left unchanged, so the same message class can be retried.
func (e *Engine) dispatch(ctx context.Context, state *session.State, text string) (resp *Response) {
	phaseBefore := state.Phase
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Any("panic", r).Str("phase", string(phaseBefore)).Msg("message processing panicked")
			state.Phase = phaseBefore
			resp = &Response{Message: apology("other")}
		}
	}()

	switch state.Phase {
	case domain.PhaseInput, domain.PhaseClarification:
		return e.handleParse(ctx, state, text)
	case domain.PhasePlanning:
		return e.runPipeline(ctx, state)
	case domain.PhaseMaterials:
		return e.resumeMaterials(ctx, state)
	case domain.PhaseAIAnalysis:
		return e.resumeAnalysis(ctx, state)
	case domain.PhaseInteractive:
		return e.handleInteractive(ctx, state, text)
	default:
		state.Phase = domain.PhaseInput
		return e.handleParse(ctx, state, text)
	}
}

// handleParse covers the input and clarification phases. High-confidence
// parses with no outstanding required questions go straight to planning;
// open questions surface the single highest-priority one; everything
// else proceeds with partial information rather than dead-ending.
func (e *Engine) handleParse(ctx context.Context, state *session.State, text string) *Response {
	req := parser.Parse(text)
	if state.Phase == domain.PhaseClarification && state.ParsedRequest != nil {
		req = mergeRequests(*state.ParsedRequest, req)
	}
	state.ParsedRequest = &req

	questions := parser.ClarifyingQuestions(req)

	if req.Confidence >= 0.7 && !parser.HasRequiredQuestions(questions) {
		state.PendingQuestions = nil
		e.setPhase(state, domain.PhasePlanning)
		return e.runPipeline(ctx, state)
	}

	if len(questions) > 0 {
		state.PendingQuestions = questions
		e.setPhase(state, domain.PhaseClarification)
		q := questions[0]
		return &Response{
			Message:  clarificationMessage(req, q),
			Question: &q,
		}
	}

	// Low confidence but nothing left to ask: plan with what we have.
	state.PendingQuestions = nil
	e.setPhase(state, domain.PhasePlanning)
	return e.runPipeline(ctx, state)
}

// runPipeline carries a session from planning through materials and
// optional AI analysis to interactive.
func (e *Engine) runPipeline(ctx context.Context, state *session.State) *Response {
	if state.ParsedRequest == nil {
		state.Phase = domain.PhaseInput
		return &Response{Message: "Tell me about your project first. What would you like to build, and how big should it be?"}
	}

	bp, err := e.planner.CreateBlueprint(*state.ParsedRequest)
	if err != nil {
		e.log.Warn().Err(err).Str("session_id", state.ID).Msg("blueprint creation failed")
		e.setPhase(state, domain.PhaseInput)
		return &Response{Message: fmt.Sprintf(
			"I couldn't build a plan for a %s project yet. Could you describe the build type differently? I know walls, garden walls, pizza ovens, fire pits, foundations and small structures.",
			state.ParsedRequest.BuildType.Display())}
	}
	state.Blueprint = bp
	e.setPhase(state, domain.PhaseMaterials)

	return e.resumeMaterials(ctx, state)
}

// resumeMaterials computes the bill of materials and hands off to AI
// analysis or directly to interactive.
func (e *Engine) resumeMaterials(ctx context.Context, state *session.State) *Response {
	if state.Blueprint == nil {
		state.Phase = domain.PhaseInput
		return &Response{Message: "Let's start over. What would you like to build?"}
	}

	calc, err := e.catalog.CalculateNeeds(state.Blueprint.BuildType, state.Blueprint.Dimensions)
	if err != nil {
		e.log.Warn().Err(err).Str("session_id", state.ID).Msg("material calculation failed")
		e.setPhase(state, domain.PhaseInteractive)
		return &Response{
			Blueprint: state.Blueprint,
			Message:   planSummary(state) + "\n\nI couldn't price the materials for this build type, but the construction plan above still applies.",
		}
	}
	state.Materials = calc

	if e.advisor.Enabled() {
		e.setPhase(state, domain.PhaseAIAnalysis)
		return e.resumeAnalysis(ctx, state)
	}

	e.setPhase(state, domain.PhaseInteractive)
	return &Response{
		Blueprint: state.Blueprint,
		Materials: calc,
		Message:   planSummary(state),
	}
}

// resumeAnalysis runs the best-effort AI analysis. It cannot block
// progress: the advisor returns fallback content on any failure.
func (e *Engine) resumeAnalysis(ctx context.Context, state *session.State) *Response {
	adv, err := e.advisor.AnalyzeProject(ctx, e.projectContext(state), state.History)
	state.Advisory = &adv

	e.setPhase(state, domain.PhaseInteractive)

	msg := planSummary(state)
	if err != nil {
		switch errorCategory(err) {
		case "credential":
			msg += "\n\nAI insights are unavailable (the configured API key was rejected), so the analysis is from my built-in guidance."
		case "network":
			msg += "\n\nAI insights are unavailable right now (service unreachable), so the analysis is from my built-in guidance."
		default:
			msg += "\n\nAI insights are unavailable right now, so the analysis is from my built-in guidance."
		}
	}
	return &Response{
		Blueprint: state.Blueprint,
		Materials: state.Materials,
		Advisory:  &adv,
		Message:   msg,
	}
}

func (e *Engine) projectContext(state *session.State) advisor.ProjectContext {
	pc := advisor.ProjectContext{
		Blueprint: state.Blueprint,
		Materials: state.Materials,
	}
	if state.ParsedRequest != nil {
		pc.Request = *state.ParsedRequest
	}
	return pc
}

// mergeRequests folds a clarification answer into the previously parsed
// request, keeping earlier values where the new message adds nothing.
func mergeRequests(prev, next domain.ParsedRequest) domain.ParsedRequest {
	merged := next
	if merged.BuildType == domain.BuildUnknown {
		merged.BuildType = prev.BuildType
	}
	if !merged.Dimensions.Any() {
		merged.Dimensions = prev.Dimensions
	}
	if merged.Experience == "" {
		merged.Experience = prev.Experience
	}
	// Low is the parser's no-signal default, not an explicit downgrade.
	if merged.Urgency == domain.UrgencyLow && prev.Urgency != "" {
		merged.Urgency = prev.Urgency
	}
	if merged.Budget == 0 {
		merged.Budget = prev.Budget
	}
	if len(merged.Materials) == 0 {
		merged.Materials = prev.Materials
	}
	if len(merged.Constraints) == 0 {
		merged.Constraints = prev.Constraints
	}
	if prev.Confidence > merged.Confidence {
		merged.Confidence = prev.Confidence
	}
	// A clarification answer that fills a gap raises confidence.
	if merged.BuildType != domain.BuildUnknown && merged.Dimensions.Any() && merged.Confidence < 0.7 {
		merged.Confidence = 0.7
	}
	return merged
}

// apology renders the user-visible message for an absorbed error.
func apology(category string) string {
	switch category {
	case "network":
		return "Sorry, I'm having trouble reaching an external service. Your project is safe; please try that again in a moment."
	case "credential":
		return "Sorry, the AI service rejected my credentials. Your project plan still works without it; check the configured API key if you want AI insights."
	default:
		return "Sorry, something went wrong processing that message. Your session is unchanged, so please try again."
	}
}

// errorCategory maps an error to the coarse user-facing category.
func errorCategory(err error) string {
	switch {
	case errors.Is(err, advisor.ErrBadCredentials):
		return "credential"
	case errors.Is(err, advisor.ErrUnavailable), errors.Is(err, advisor.ErrTimeout):
		return "network"
	default:
		return "other"
	}
}

// Package engine orchestrates the conversation workflow: it routes each
// inbound message through the phase state machine, invoking the parser,
// planner, calculator, recommender and advisor as phases advance, and
// persists session state after every message.
package engine

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/buildagent/multibuild/internal/advisor"
	"github.com/buildagent/multibuild/internal/catalog"
	"github.com/buildagent/multibuild/internal/domain"
	"github.com/buildagent/multibuild/internal/planner"
	"github.com/buildagent/multibuild/internal/recommend"
	"github.com/buildagent/multibuild/internal/session"
)

// transitions is the closed phase transition table. A transition absent
// here is a bug; setPhase falls back to a reset rather than proceeding.
var transitions = map[domain.Phase][]domain.Phase{
	domain.PhaseInput:         {domain.PhaseClarification, domain.PhasePlanning},
	domain.PhaseClarification: {domain.PhaseClarification, domain.PhaseInput, domain.PhasePlanning},
	domain.PhasePlanning:      {domain.PhaseMaterials, domain.PhaseInput},
	domain.PhaseMaterials:     {domain.PhaseAIAnalysis, domain.PhaseInteractive},
	domain.PhaseAIAnalysis:    {domain.PhaseInteractive},
	domain.PhaseInteractive:   {domain.PhaseInteractive},
}

// Response is what the engine returns for one processed message.
type Response struct {
	SessionID       string                        `json:"session_id"`
	Phase           domain.Phase                  `json:"phase"`
	Message         string                        `json:"message"`
	Question        *domain.Question              `json:"question,omitempty"`
	Blueprint       *domain.Blueprint             `json:"blueprint,omitempty"`
	Materials       *domain.MaterialCalculation   `json:"materials,omitempty"`
	Recommendations []recommend.Recommendation    `json:"recommendations,omitempty"`
	Advisory        *advisor.Advisory             `json:"advisory,omitempty"`
}

// Engine drives one conversation at a time. Sessions are single-reader
// single-writer; concurrent access to the same id is last-write-wins.
type Engine struct {
	catalog     *catalog.Catalog
	planner     *planner.Planner
	recommender *recommend.Engine
	advisor     *advisor.Advisor
	store       session.Store
	log         zerolog.Logger
}

func New(cat *catalog.Catalog, plan *planner.Planner, rec *recommend.Engine, adv *advisor.Advisor, store session.Store, log zerolog.Logger) *Engine {
	return &Engine{
		catalog:     cat,
		planner:     plan,
		recommender: rec,
		advisor:     adv,
		store:       store,
		log:         log,
	}
}

// ProcessMessage handles one user message end to end. It loads (or
// creates) the session, dispatches to the current phase handler, appends
// exactly one user and one assistant message, persists, and returns the
// response. Pipeline errors become apologetic responses; the method only
// errors when persistence itself fails.
func (e *Engine) ProcessMessage(ctx context.Context, sessionID, text string) (*Response, error) {
	state := e.loadOrCreate(ctx, sessionID)
	state.Append(domain.RoleUser, uuid.NewString(), text)

	resp := e.dispatch(ctx, state, text)
	resp.SessionID = state.ID
	resp.Phase = state.Phase

	state.Append(domain.RoleAssistant, uuid.NewString(), resp.Message)

	if err := e.store.Put(ctx, state); err != nil {
		return nil, err
	}
	if err := e.store.SetCurrentID(ctx, state.ID); err != nil {
		return nil, err
	}
	return resp, nil
}

// Reset abandons the current session and starts a fresh one.
func (e *Engine) Reset(ctx context.Context) (*session.State, error) {
	state := session.NewState()
	if err := e.store.Put(ctx, state); err != nil {
		return nil, err
	}
	if err := e.store.SetCurrentID(ctx, state.ID); err != nil {
		return nil, err
	}
	return state, nil
}

// SessionInfo summarizes a stored session.
type SessionInfo struct {
	ID             string           `json:"id"`
	Phase          domain.Phase     `json:"phase"`
	BuildType      domain.BuildType `json:"build_type,omitempty"`
	Messages       int              `json:"messages"`
	HasBlueprint   bool             `json:"has_blueprint"`
	TotalCost      float64          `json:"total_cost,omitempty"`
	AdvisorEnabled bool             `json:"advisor_enabled"`
}

// Info returns the summary for a session id.
func (e *Engine) Info(ctx context.Context, id string) (*SessionInfo, error) {
	state, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	info := &SessionInfo{
		ID:             state.ID,
		Phase:          state.Phase,
		Messages:       len(state.History),
		HasBlueprint:   state.Blueprint != nil,
		AdvisorEnabled: e.advisor.Enabled(),
	}
	if state.ParsedRequest != nil {
		info.BuildType = state.ParsedRequest.BuildType
	}
	if state.Materials != nil {
		info.TotalCost = state.Materials.TotalCost
	}
	return info, nil
}

// Delete removes a session.
func (e *Engine) Delete(ctx context.Context, id string) error {
	return e.store.Delete(ctx, id)
}

// loadOrCreate fetches a session, failing soft on missing or corrupt
// state and resetting unrecognized phases to input.
func (e *Engine) loadOrCreate(ctx context.Context, id string) *session.State {
	if id == "" {
		return session.NewState()
	}
	state, err := e.store.Get(ctx, id)
	switch {
	case errors.Is(err, session.ErrCorrupt):
		e.log.Warn().Str("session_id", id).Msg("corrupt session state, starting over")
		state = session.NewState()
		state.ID = id
		return state
	case err != nil:
		state = session.NewState()
		state.ID = id
		return state
	}
	if !domain.ValidPhases[state.Phase] {
		e.log.Warn().Str("session_id", id).Str("phase", string(state.Phase)).Msg("unknown phase, forcing reset to input")
		state.Phase = domain.PhaseInput
		state.ParsedRequest = nil
		state.Blueprint = nil
		state.Materials = nil
		state.PendingQuestions = nil
	}
	return state
}

// setPhase applies a transition from the table. An unlisted transition
// resets the session to input instead of proceeding in an undefined state.
func (e *Engine) setPhase(state *session.State, to domain.Phase) {
	for _, allowed := range transitions[state.Phase] {
		if allowed == to {
			state.Phase = to
			return
		}
	}
	e.log.Error().
		Str("from", string(state.Phase)).
		Str("to", string(to)).
		Msg("illegal phase transition, resetting to input")
	state.Phase = domain.PhaseInput
}

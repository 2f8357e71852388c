package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildagent/multibuild/internal/domain"
)

type stubClient struct {
	reply   string
	err     error
	enabled bool
	lastMsg []Message
}

func (s *stubClient) Complete(_ context.Context, messages []Message) (string, error) {
	s.lastMsg = messages
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubClient) Enabled() bool { return s.enabled }

func ovenContext() ProjectContext {
	return ProjectContext{
		Request: domain.ParsedRequest{
			BuildType:  domain.BuildPizzaOven,
			Dimensions: domain.Dimensions{Diameter: 1.2, Height: 0.6},
			Experience: domain.ExperienceBeginner,
		},
		Blueprint: &domain.Blueprint{
			Difficulty:    domain.DifficultyAdvanced,
			EstimatedTime: "3-5 days",
			Phases:        make([]domain.BuildPhase, 4),
		},
	}
}

func TestAnalyzeProject_UsesModelOutput(t *testing.T) {
	stub := &stubClient{enabled: true, reply: sampleAdvisory}
	a := New(stub, zerolog.Nop())

	adv, err := a.AnalyzeProject(context.Background(), ovenContext(), nil)
	require.NoError(t, err)
	assert.Equal(t, "ai", adv.Source)
	assert.NotEmpty(t, adv.Alternatives)

	require.NotEmpty(t, stub.lastMsg)
	assert.Equal(t, "system", stub.lastMsg[0].Role)
	assert.Contains(t, stub.lastMsg[1].Content, "pizza oven")
}

func TestAnalyzeProject_FallbackOnError(t *testing.T) {
	for _, clientErr := range []error{ErrTimeout, ErrUnavailable, errors.New("boom")} {
		a := New(&stubClient{enabled: true, err: clientErr}, zerolog.Nop())

		adv, err := a.AnalyzeProject(context.Background(), ovenContext(), nil)
		assert.ErrorIs(t, err, clientErr)
		assert.Equal(t, "fallback", adv.Source, clientErr)
		assert.NotEmpty(t, adv.Summary)
		assert.NotEmpty(t, adv.Tips)
	}
}

func TestAnalyzeProject_DisabledIsNotAnError(t *testing.T) {
	a := New(&stubClient{enabled: false, err: ErrDisabled}, zerolog.Nop())

	adv, err := a.AnalyzeProject(context.Background(), ovenContext(), nil)
	require.NoError(t, err)
	assert.Equal(t, "fallback", adv.Source)
}

func TestExpertAdvice_IncludesRecentHistory(t *testing.T) {
	stub := &stubClient{enabled: true, reply: "go with firebrick"}
	a := New(stub, zerolog.Nop())

	history := make([]domain.ChatMessage, 10)
	for i := range history {
		history[i] = domain.ChatMessage{Role: domain.RoleUser, Content: "old message"}
	}

	answer := a.ExpertAdvice(context.Background(), "which bricks?", ovenContext(), history)
	assert.Equal(t, "go with firebrick", answer)

	// system + context + capped history + question
	assert.Len(t, stub.lastMsg, 2+historyWindow+1)
	assert.Equal(t, "which bricks?", stub.lastMsg[len(stub.lastMsg)-1].Content)
}

func TestExpertAdvice_FallbackMentionsPlan(t *testing.T) {
	a := New(&stubClient{enabled: false, err: ErrDisabled}, zerolog.Nop())

	answer := a.ExpertAdvice(context.Background(), "which bricks?", ovenContext(), nil)
	assert.Contains(t, answer, "pizza oven")
	assert.Contains(t, answer, "4 phases")
}

func TestExpertAdvice_FallbackLeadInByCause(t *testing.T) {
	disabled := New(&stubClient{enabled: false, err: ErrDisabled}, zerolog.Nop())
	answer := disabled.ExpertAdvice(context.Background(), "which bricks?", ovenContext(), nil)
	assert.NotContains(t, answer, "can't reach")
	assert.Contains(t, answer, "Based on your plan")

	failing := New(&stubClient{enabled: true, err: ErrUnavailable}, zerolog.Nop())
	answer = failing.ExpertAdvice(context.Background(), "which bricks?", ovenContext(), nil)
	assert.Contains(t, answer, "can't reach the AI advisory service")
}

func TestFallbackAnalysis_BeginnerGetsExtraTip(t *testing.T) {
	pc := ovenContext()
	beginner := fallbackAnalysis(pc)

	pc.Request.Experience = domain.ExperienceExpert
	expert := fallbackAnalysis(pc)

	assert.Greater(t, len(beginner.Tips), len(expert.Tips))
	assert.Equal(t, "7/10", beginner.Complexity)
}

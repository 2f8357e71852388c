package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/buildagent/multibuild/internal/domain"
)

const systemPrompt = `You are an experienced masonry consultant advising a hobbyist on a small construction project. Answer concisely. Structure project analyses with "Alternatives:", "Tips:" and "Warnings:" bullet sections and finish with a complexity rating out of 10.`

const historyWindow = 6

// ProjectContext bundles everything the advisor may see about a project.
type ProjectContext struct {
	Request   domain.ParsedRequest
	Blueprint *domain.Blueprint
	Materials *domain.MaterialCalculation
}

// Advisor produces project analyses and free-text advice, backed by a
// completion client with deterministic fallbacks.
type Advisor struct {
	client Client
	log    zerolog.Logger
}

func New(client Client, log zerolog.Logger) *Advisor {
	return &Advisor{client: client, log: log}
}

// Enabled reports whether the underlying adapter has credentials.
func (a *Advisor) Enabled() bool {
	return a.client.Enabled()
}

// AnalyzeProject asks the model for a structured take on the project.
// Any adapter failure yields the deterministic fallback analysis; the
// returned error is informational only (the cause of degradation, nil
// when disabled) and the Advisory is always usable.
func (a *Advisor) AnalyzeProject(ctx context.Context, pc ProjectContext, history []domain.ChatMessage) (Advisory, error) {
	messages := []Message{
		{Role: "system", Content: systemPrompt},
	}
	for _, msg := range recentHistory(history) {
		messages = append(messages, Message{Role: string(msg.Role), Content: msg.Content})
	}
	messages = append(messages, Message{Role: "user", Content: "Analyze this project:\n" + describeProject(pc)})

	text, err := a.client.Complete(ctx, messages)
	if err != nil {
		if errors.Is(err, ErrDisabled) {
			return fallbackAnalysis(pc), nil
		}
		a.log.Warn().Err(err).Msg("project analysis degraded to fallback")
		return fallbackAnalysis(pc), err
	}
	return ParseAdvisoryText(text), nil
}

// ExpertAdvice answers an open-ended question with full project context.
// Failures yield a deterministic fallback paragraph, never an error.
func (a *Advisor) ExpertAdvice(ctx context.Context, question string, pc ProjectContext, history []domain.ChatMessage) string {
	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: "Project context:\n" + describeProject(pc)},
	}
	for _, msg := range recentHistory(history) {
		messages = append(messages, Message{Role: string(msg.Role), Content: msg.Content})
	}
	messages = append(messages, Message{Role: "user", Content: question})

	text, err := a.client.Complete(ctx, messages)
	if err != nil {
		if errors.Is(err, ErrDisabled) {
			return fallbackAdvice(pc, true)
		}
		a.log.Warn().Err(err).Msg("expert advice degraded to fallback")
		return fallbackAdvice(pc, false)
	}
	return text
}

func recentHistory(history []domain.ChatMessage) []domain.ChatMessage {
	if len(history) <= historyWindow {
		return history
	}
	return history[len(history)-historyWindow:]
}

// describeProject renders the project context as plain prompt text.
func describeProject(pc ProjectContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Build type: %s\n", pc.Request.BuildType.Display())
	if pc.Request.Dimensions.Any() {
		d := pc.Request.Dimensions
		fmt.Fprintf(&b, "Dimensions: length %.1fm, width %.1fm, height %.1fm, diameter %.1fm\n",
			d.Length, d.Width, d.Height, d.Diameter)
	}
	if pc.Request.Experience != "" {
		fmt.Fprintf(&b, "Experience: %s\n", pc.Request.Experience)
	}
	if pc.Request.Budget > 0 {
		fmt.Fprintf(&b, "Budget: €%.2f\n", pc.Request.Budget)
	}
	if pc.Blueprint != nil {
		fmt.Fprintf(&b, "Planned phases: %d, difficulty %s, estimated time %s\n",
			len(pc.Blueprint.Phases), pc.Blueprint.Difficulty, pc.Blueprint.EstimatedTime)
	}
	if pc.Materials != nil {
		fmt.Fprintf(&b, "Materials: %d line items, total €%.2f\n",
			len(pc.Materials.Materials), pc.Materials.TotalCost)
	}
	return b.String()
}

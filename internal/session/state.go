// Package session defines the persisted conversation state and the
// typed store interface over it.
package session

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/buildagent/multibuild/internal/advisor"
	"github.com/buildagent/multibuild/internal/domain"
)

// MaxHistory caps the persisted conversation history length. Older
// messages are dropped from the front.
const MaxHistory = 50

// State is the full conversation state of one planning session. It is
// serialized wholesale after every processed message; concurrent writers
// to the same id are last-write-wins with no merge.
type State struct {
	ID               string                      `json:"id"`
	Phase            domain.Phase                `json:"phase"`
	ParsedRequest    *domain.ParsedRequest       `json:"parsed_request,omitempty"`
	Blueprint        *domain.Blueprint           `json:"blueprint,omitempty"`
	Materials        *domain.MaterialCalculation `json:"materials,omitempty"`
	Advisory         *advisor.Advisory           `json:"advisory,omitempty"`
	PendingQuestions []domain.Question           `json:"pending_questions,omitempty"`
	History          []domain.ChatMessage        `json:"history"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

// NewState creates a fresh session in the input phase.
func NewState() *State {
	now := time.Now().UTC()
	return &State{
		ID:        NewID(),
		Phase:     domain.PhaseInput,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewID generates a session id of the shape session-<millis>-<random>.
func NewID() string {
	return fmt.Sprintf("session-%d-%06d", time.Now().UnixMilli(), rand.Intn(1000000))
}

// Append adds a message to the history, enforcing the MaxHistory cap.
func (s *State) Append(role domain.MessageRole, id, content string) {
	s.History = append(s.History, domain.ChatMessage{
		ID:        id,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	if len(s.History) > MaxHistory {
		s.History = s.History[len(s.History)-MaxHistory:]
	}
}

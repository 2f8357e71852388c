package domain

// Dimensions is a partial record of measures in meters. A zero value means
// the dimension was not mentioned; the parser never emits negative values.
type Dimensions struct {
	Length   float64 `json:"length,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Diameter float64 `json:"diameter,omitempty"`
}

// Any reports whether at least one dimension was detected.
func (d Dimensions) Any() bool {
	return d.Length > 0 || d.Width > 0 || d.Height > 0 || d.Diameter > 0
}

// ParsedRequest is the structured output of parsing a free-text message.
type ParsedRequest struct {
	BuildType   BuildType  `json:"build_type"`
	Dimensions  Dimensions `json:"dimensions"`
	Materials   []string   `json:"materials,omitempty"`
	Constraints []string   `json:"constraints,omitempty"`
	Confidence  float64    `json:"confidence"`
	Urgency     Urgency    `json:"urgency"`
	Budget      float64    `json:"budget,omitempty"` // euros, 0 = unspecified
	Experience  Experience `json:"experience,omitempty"`
}

// QuestionType identifies what a clarifying question is asking for.
type QuestionType string

const (
	QuestionDimensions    QuestionType = "dimensions"
	QuestionClarification QuestionType = "clarification"
	QuestionExperience    QuestionType = "experience"
	QuestionBudget        QuestionType = "budget"
)

// Question is a single clarifying question with example answers.
type Question struct {
	Type        QuestionType `json:"type"`
	Text        string       `json:"text"`
	Required    bool         `json:"required"`
	Suggestions []string     `json:"suggestions,omitempty"`
}

package domain

// Phase is the workflow engine's conversation state. The set is closed;
// a persisted value outside it is treated as corrupt and forces a reset
// to PhaseInput.
type Phase string

const (
	PhaseInput         Phase = "input"
	PhaseClarification Phase = "clarification"
	PhasePlanning      Phase = "planning"
	PhaseMaterials     Phase = "materials"
	PhaseAIAnalysis    Phase = "ai_analysis"
	PhaseInteractive   Phase = "interactive"
)

// ValidPhases is the closed set of recognized workflow phases.
var ValidPhases = map[Phase]bool{
	PhaseInput: true, PhaseClarification: true, PhasePlanning: true,
	PhaseMaterials: true, PhaseAIAnalysis: true, PhaseInteractive: true,
}

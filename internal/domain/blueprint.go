package domain

// BuildPhase is one stage of physical construction work.
type BuildPhase struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Duration         string     `json:"duration"`
	Order            int        `json:"order"`
	EstimatedHours   float64    `json:"estimated_hours"`
	Tools            []string   `json:"tools,omitempty"`
	WeatherDependent bool       `json:"weather_dependent,omitempty"`
	SkillLevel       SkillLevel `json:"skill_level"`
	SafetyPriority   Severity   `json:"safety_priority"`
}

// SafetyGuideline is a single safety rule attached to a blueprint.
type SafetyGuideline struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// QualityCheck is a verification step tied to a construction phase.
type QualityCheck struct {
	ID            string   `json:"id"`
	Phase         string   `json:"phase"`
	Description   string   `json:"description"`
	CriticalPath  bool     `json:"critical_path"`
	ToolsRequired []string `json:"tools_required,omitempty"`
}

// BuildStep is one numbered instruction within the detailed step list.
type BuildStep struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration,omitempty"`
}

// TroubleshootingEntry pairs a symptom with its fix and prevention.
type TroubleshootingEntry struct {
	Issue      string `json:"issue"`
	Symptoms   string `json:"symptoms"`
	Solution   string `json:"solution"`
	Prevention string `json:"prevention"`
}

// MaterialLine is a flattened material row carried on the blueprint.
type MaterialLine struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"price_per_unit"`
	TotalPrice   float64 `json:"total_price"`
	InStock      bool    `json:"in_stock"`
}

// Blueprint is the generated multi-phase construction plan. It is owned by
// a single conversation session and replaced, never merged, on re-planning.
//
// Invariant: phase Order values form a contiguous ascending sequence
// starting at 1.
type Blueprint struct {
	ID                    string                 `json:"id"`
	BuildType             BuildType              `json:"build_type"`
	Dimensions            Dimensions             `json:"dimensions"`
	Experience            Experience             `json:"experience"`
	Difficulty            Difficulty             `json:"difficulty"`
	Phases                []BuildPhase           `json:"phases"`
	Materials             []MaterialLine         `json:"materials"`
	TotalCost             float64                `json:"total_cost"`
	EstimatedTime         string                 `json:"estimated_time"`
	SafetyGuidelines      []SafetyGuideline      `json:"safety_guidelines"`
	QualityChecks         []QualityCheck         `json:"quality_checks"`
	DetailedSteps         []BuildStep            `json:"detailed_steps,omitempty"`
	Troubleshooting       []TroubleshootingEntry `json:"troubleshooting,omitempty"`
	Tools                 []string               `json:"tools"`
	Permits               []string               `json:"permits,omitempty"`
	WeatherConsiderations []string               `json:"weather_considerations,omitempty"`
	MaintenanceSchedule   []string               `json:"maintenance_schedule,omitempty"`
}

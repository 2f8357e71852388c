package domain

// BuildType is the category of structure being planned.
type BuildType string

const (
	BuildWall       BuildType = "wall"
	BuildGardenWall BuildType = "garden_wall"
	BuildPizzaOven  BuildType = "pizza_oven"
	BuildFirePit    BuildType = "fire_pit"
	BuildFoundation BuildType = "foundation"
	BuildStructure  BuildType = "structure"
	BuildUnknown    BuildType = "unknown"
)

// ValidBuildTypes is the closed set of build types the calculator and
// planner know about. BuildUnknown is deliberately excluded.
var ValidBuildTypes = map[BuildType]bool{
	BuildWall: true, BuildGardenWall: true, BuildPizzaOven: true,
	BuildFirePit: true, BuildFoundation: true, BuildStructure: true,
}

// Display returns the human-readable form ("pizza_oven" -> "pizza oven").
func (b BuildType) Display() string {
	out := []byte(b)
	for i := range out {
		if out[i] == '_' {
			out[i] = ' '
		}
	}
	return string(out)
}

// HeatExposed reports whether the build type involves combustion and
// therefore needs heat-rated materials and fire safety guidance.
func (b BuildType) HeatExposed() bool {
	return b == BuildPizzaOven || b == BuildFirePit
}

type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceExpert       Experience = "expert"
)

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Difficulty buckets the planner's additive difficulty score.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// MaterialCategory classifies catalog entries.
type MaterialCategory string

const (
	CategoryBrick      MaterialCategory = "brick"
	CategoryMortar     MaterialCategory = "mortar"
	CategoryTool       MaterialCategory = "tool"
	CategoryAccessory  MaterialCategory = "accessory"
	CategoryFoundation MaterialCategory = "foundation"
	CategoryInsulation MaterialCategory = "insulation"
)

// Severity grades safety guidelines.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// SkillLevel grades individual construction phases.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

package planner

import "github.com/buildagent/multibuild/internal/domain"

// phaseTemplate is the static description of one construction phase
// before experience and size scaling are applied.
type phaseTemplate struct {
	Name             string
	Description      string
	EstimatedHours   float64
	Tools            []string
	WeatherDependent bool
	SkillLevel       domain.SkillLevel
	SafetyPriority   domain.Severity
}

// buildTemplate is the per-build-type plan skeleton.
type buildTemplate struct {
	BaseDifficulty float64
	EstimatedTime  string
	Phases         []phaseTemplate
}

// templates is keyed by build type; templateFor falls back to a
// same-family template by string prefix, then to genericTemplate.
var templates = map[domain.BuildType]buildTemplate{
	domain.BuildPizzaOven: {
		BaseDifficulty: 3.0,
		EstimatedTime:  "3-5 days",
		Phases: []phaseTemplate{
			{
				Name:             "Foundation Preparation",
				Description:      "Prepare the foundation base and ensure a level surface",
				EstimatedHours:   3,
				Tools:            []string{"tool-shovel", "tool-level"},
				WeatherDependent: true,
				SkillLevel:       domain.SkillIntermediate,
				SafetyPriority:   domain.SeverityWarning,
			},
			{
				Name:           "Base Construction",
				Description:    "Build the insulated base platform",
				EstimatedHours: 4,
				Tools:          []string{"tool-trowel", "tool-mixer", "tool-level"},
				SkillLevel:     domain.SkillIntermediate,
				SafetyPriority: domain.SeverityCritical,
			},
			{
				Name:           "Dome Construction",
				Description:    "Build the oven dome from firebricks with refractory mortar",
				EstimatedHours: 7,
				Tools:          []string{"tool-trowel", "tool-angle-grinder"},
				SkillLevel:     domain.SkillAdvanced,
				SafetyPriority: domain.SeverityCritical,
			},
			{
				Name:           "Insulation & Finishing",
				Description:    "Apply the insulation layer and finishing render",
				EstimatedHours: 3,
				Tools:          []string{"tool-trowel"},
				SkillLevel:     domain.SkillIntermediate,
				SafetyPriority: domain.SeverityWarning,
			},
		},
	},
	domain.BuildGardenWall: {
		BaseDifficulty: 2.0,
		EstimatedTime:  "2-3 days",
		Phases: []phaseTemplate{
			{
				Name:             "Foundation Digging",
				Description:      "Dig the foundation trench to the required depth",
				EstimatedHours:   3,
				Tools:            []string{"tool-shovel"},
				WeatherDependent: true,
				SkillLevel:       domain.SkillBeginner,
				SafetyPriority:   domain.SeverityWarning,
			},
			{
				Name:           "Foundation Laying",
				Description:    "Pour and level the concrete strip foundation",
				EstimatedHours: 3,
				Tools:          []string{"tool-mixer", "tool-trowel", "tool-level"},
				SkillLevel:     domain.SkillIntermediate,
				SafetyPriority: domain.SeverityCritical,
			},
			{
				Name:           "Wall Construction",
				Description:    "Lay bricks with proper mortar joints and drainage backfill",
				EstimatedHours: 6,
				Tools:          []string{"tool-trowel", "tool-level", "tool-string-line"},
				SkillLevel:     domain.SkillIntermediate,
				SafetyPriority: domain.SeverityWarning,
			},
			{
				Name:           "Pointing & Finishing",
				Description:    "Finish the mortar joints and clean the wall face",
				EstimatedHours: 2,
				Tools:          []string{"tool-trowel"},
				SkillLevel:     domain.SkillBeginner,
				SafetyPriority: domain.SeverityInfo,
			},
		},
	},
	domain.BuildFirePit: {
		BaseDifficulty: 2.0,
		EstimatedTime:  "1-2 days",
		Phases: []phaseTemplate{
			{
				Name:             "Site Preparation",
				Description:      "Clear and level the site, mark the pit circumference",
				EstimatedHours:   2,
				Tools:            []string{"tool-shovel", "tool-level"},
				WeatherDependent: true,
				SkillLevel:       domain.SkillBeginner,
				SafetyPriority:   domain.SeverityWarning,
			},
			{
				Name:           "Ring Construction",
				Description:    "Lay the firebrick ring courses with refractory mortar",
				EstimatedHours: 4,
				Tools:          []string{"tool-trowel", "tool-level"},
				SkillLevel:     domain.SkillIntermediate,
				SafetyPriority: domain.SeverityCritical,
			},
			{
				Name:           "Finishing",
				Description:    "Fit the grate and finish the surround",
				EstimatedHours: 1,
				Tools:          []string{"tool-trowel"},
				SkillLevel:     domain.SkillBeginner,
				SafetyPriority: domain.SeverityInfo,
			},
		},
	},
	domain.BuildFoundation: {
		BaseDifficulty: 2.5,
		EstimatedTime:  "2-3 days",
		Phases: []phaseTemplate{
			{
				Name:             "Excavation",
				Description:      "Excavate to the required depth and compact the base",
				EstimatedHours:   4,
				Tools:            []string{"tool-shovel", "tool-wheelbarrow"},
				WeatherDependent: true,
				SkillLevel:       domain.SkillBeginner,
				SafetyPriority:   domain.SeverityWarning,
			},
			{
				Name:           "Reinforcement",
				Description:    "Place rebar reinforcement and formwork",
				EstimatedHours: 3,
				Tools:          []string{"tool-level"},
				SkillLevel:     domain.SkillIntermediate,
				SafetyPriority: domain.SeverityWarning,
			},
			{
				Name:             "Pouring & Curing",
				Description:      "Pour the concrete, level it and allow it to cure",
				EstimatedHours:   4,
				Tools:            []string{"tool-mixer", "tool-wheelbarrow", "tool-level"},
				WeatherDependent: true,
				SkillLevel:       domain.SkillIntermediate,
				SafetyPriority:   domain.SeverityCritical,
			},
		},
	},
	domain.BuildWall: {
		BaseDifficulty: 2.0,
		EstimatedTime:  "2-3 days",
		Phases: []phaseTemplate{
			{
				Name:             "Setting Out",
				Description:      "Mark the wall line and check the base is level",
				EstimatedHours:   2,
				Tools:            []string{"tool-string-line", "tool-level"},
				WeatherDependent: true,
				SkillLevel:       domain.SkillBeginner,
				SafetyPriority:   domain.SeverityWarning,
			},
			{
				Name:           "Brick Laying",
				Description:    "Lay brick courses to the string line with consistent joints",
				EstimatedHours: 6,
				Tools:          []string{"tool-trowel", "tool-level", "tool-string-line"},
				SkillLevel:     domain.SkillIntermediate,
				SafetyPriority: domain.SeverityWarning,
			},
			{
				Name:           "Pointing & Finishing",
				Description:    "Finish the joints and clean the completed wall",
				EstimatedHours: 2,
				Tools:          []string{"tool-trowel"},
				SkillLevel:     domain.SkillBeginner,
				SafetyPriority: domain.SeverityInfo,
			},
		},
	},
	domain.BuildStructure: {
		BaseDifficulty: 3.5,
		EstimatedTime:  "4-7 days",
		Phases: []phaseTemplate{
			{
				Name:             "Foundation Work",
				Description:      "Excavate and pour the slab foundation",
				EstimatedHours:   6,
				Tools:            []string{"tool-shovel", "tool-mixer", "tool-wheelbarrow", "tool-level"},
				WeatherDependent: true,
				SkillLevel:       domain.SkillIntermediate,
				SafetyPriority:   domain.SeverityCritical,
			},
			{
				Name:           "Wall Construction",
				Description:    "Build all four walls with openings as planned",
				EstimatedHours: 12,
				Tools:          []string{"tool-trowel", "tool-level", "tool-string-line"},
				SkillLevel:     domain.SkillAdvanced,
				SafetyPriority: domain.SeverityCritical,
			},
			{
				Name:           "Finishing",
				Description:    "Point the joints and finish surfaces",
				EstimatedHours: 4,
				Tools:          []string{"tool-trowel"},
				SkillLevel:     domain.SkillIntermediate,
				SafetyPriority: domain.SeverityWarning,
			},
		},
	},
}

// genericTemplate covers build types without a dedicated template.
var genericTemplate = buildTemplate{
	BaseDifficulty: 2.0,
	EstimatedTime:  "2-4 days",
	Phases: []phaseTemplate{
		{
			Name:             "Preparation",
			Description:      "Prepare materials and the work area",
			EstimatedHours:   2,
			Tools:            []string{"tool-level"},
			WeatherDependent: true,
			SkillLevel:       domain.SkillBeginner,
			SafetyPriority:   domain.SeverityWarning,
		},
		{
			Name:           "Construction",
			Description:    "Main construction work",
			EstimatedHours: 5,
			Tools:          []string{"tool-trowel", "tool-level"},
			SkillLevel:     domain.SkillIntermediate,
			SafetyPriority: domain.SeverityCritical,
		},
		{
			Name:           "Finishing",
			Description:    "Final touches and cleanup",
			EstimatedHours: 2,
			Tools:          []string{"tool-trowel"},
			SkillLevel:     domain.SkillBeginner,
			SafetyPriority: domain.SeverityInfo,
		},
	},
}

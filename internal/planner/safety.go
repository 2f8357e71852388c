package planner

import (
	"fmt"

	"github.com/buildagent/multibuild/internal/domain"
)

var commonGuidelines = []domain.SafetyGuideline{
	{
		Category:    "ppe",
		Title:       "Wear protective equipment",
		Description: "Safety glasses, work gloves and sturdy boots for all masonry work",
		Severity:    domain.SeverityCritical,
	},
	{
		Category:    "ppe",
		Title:       "Dust protection",
		Description: "Wear a dust mask when cutting bricks or mixing dry mortar",
		Severity:    domain.SeverityWarning,
	},
	{
		Category:    "tools",
		Title:       "Inspect tools before use",
		Description: "Check power tools, mixer and lifting equipment for damage before each session",
		Severity:    domain.SeverityWarning,
	},
	{
		Category:    "site",
		Title:       "Safe lifting",
		Description: "Lift with your legs and get help for loads above 25kg",
		Severity:    domain.SeverityWarning,
	},
}

var fireGuidelines = []domain.SafetyGuideline{
	{
		Category:    "fire",
		Title:       "Keep clearance from combustibles",
		Description: "Maintain at least 3m distance from fences, sheds and overhanging branches",
		Severity:    domain.SeverityCritical,
	},
	{
		Category:    "fire",
		Title:       "Cure before first fire",
		Description: "Allow refractory mortar to cure fully, then build up heat gradually over several small fires",
		Severity:    domain.SeverityCritical,
	},
	{
		Category:    "fire",
		Title:       "Keep extinguishing means at hand",
		Description: "Have water or a fire extinguisher within reach whenever a fire is lit",
		Severity:    domain.SeverityWarning,
	},
}

var beginnerGuidelines = []domain.SafetyGuideline{
	{
		Category:    "guidance",
		Title:       "Start with a dry run",
		Description: "Lay out the first course without mortar to check spacing and alignment",
		Severity:    domain.SeverityInfo,
	},
	{
		Category:    "guidance",
		Title:       "Mix small batches",
		Description: "Mix mortar in small batches until you know your working pace; it sets within the hour",
		Severity:    domain.SeverityInfo,
	},
}

// safetyGuidelines assembles the guideline list for a build. Common rules
// always apply; fire rules apply to heat-exposed builds; beginner guidance
// is appended for inexperienced builders.
func safetyGuidelines(b domain.BuildType, exp domain.Experience) []domain.SafetyGuideline {
	out := append([]domain.SafetyGuideline(nil), commonGuidelines...)
	if b.HeatExposed() {
		out = append(out, fireGuidelines...)
	}
	if b == domain.BuildFoundation || b == domain.BuildStructure {
		out = append(out, domain.SafetyGuideline{
			Category:    "site",
			Title:       "Check for buried services",
			Description: "Locate utility lines before excavating; call the utility marker service if unsure",
			Severity:    domain.SeverityCritical,
		})
	}
	if exp == domain.ExperienceBeginner {
		out = append(out, beginnerGuidelines...)
	}
	for i := range out {
		out[i].ID = fmt.Sprintf("safety-%d", i+1)
	}
	return out
}

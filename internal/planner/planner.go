package planner

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/buildagent/multibuild/internal/catalog"
	"github.com/buildagent/multibuild/internal/domain"
)

// Experience multipliers applied to per-phase estimated hours.
const (
	beginnerTimeFactor = 1.3
	expertTimeFactor   = 0.8
)

// Planner turns a parsed request into a full construction blueprint.
type Planner struct {
	catalog *catalog.Catalog
}

func New(c *catalog.Catalog) *Planner {
	return &Planner{catalog: c}
}

// CreateBlueprint builds the complete plan for the request. Missing
// dimensions default to 1 metre per axis so a plan is always producible.
func (p *Planner) CreateBlueprint(req domain.ParsedRequest) (*domain.Blueprint, error) {
	dims := normalizeDims(req.Dimensions)

	calc, err := p.catalog.CalculateNeeds(req.BuildType, dims)
	if err != nil {
		return nil, fmt.Errorf("create blueprint: %w", err)
	}

	tmpl := templateFor(req.BuildType)
	area := catalog.SurfaceArea(req.BuildType, dims)

	phases := buildPhases(tmpl, req.Experience, area)
	difficulty := assessDifficulty(tmpl, req.Experience, dims, area, calc)

	bp := &domain.Blueprint{
		ID:                    "blueprint-" + uuid.NewString(),
		BuildType:             req.BuildType,
		Dimensions:            dims,
		Experience:            req.Experience,
		Difficulty:            difficulty,
		Phases:                phases,
		Materials:             materialLines(calc),
		TotalCost:             calc.TotalCost,
		EstimatedTime:         tmpl.EstimatedTime,
		SafetyGuidelines:      safetyGuidelines(req.BuildType, req.Experience),
		QualityChecks:         qualityChecks(phases),
		DetailedSteps:         detailedSteps(phases),
		Troubleshooting:       troubleshootingFor(req.BuildType, req.Experience),
		Tools:                 toolUnion(phases, calc),
		Permits:               permitAdvisories(req.BuildType, dims),
		WeatherConsiderations: weatherConsiderations(req.BuildType),
		MaintenanceSchedule:   maintenanceSchedule(req.BuildType),
	}
	return bp, nil
}

func normalizeDims(d domain.Dimensions) domain.Dimensions {
	if !d.Any() {
		return domain.Dimensions{Length: 1, Width: 1, Height: 1}
	}
	return d
}

// templateFor resolves the plan template: exact build type first, then a
// same-family template sharing a name prefix, then the generic one.
func templateFor(b domain.BuildType) buildTemplate {
	if t, ok := templates[b]; ok {
		return t
	}
	name := string(b)
	for key, t := range templates {
		k := string(key)
		if strings.HasPrefix(name, k) || strings.HasPrefix(k, name) {
			return t
		}
	}
	return genericTemplate
}

// sizeFactor scales phase hours by surface area. The thresholds keep a
// small project at the template baseline and add up to 60% for large ones.
func sizeFactor(area float64) float64 {
	switch {
	case area >= 15:
		return 1.6
	case area >= 8:
		return 1.4
	case area >= 4:
		return 1.2
	default:
		return 1.0
	}
}

func experienceFactor(exp domain.Experience) float64 {
	switch exp {
	case domain.ExperienceBeginner:
		return beginnerTimeFactor
	case domain.ExperienceExpert:
		return expertTimeFactor
	default:
		return 1.0
	}
}

func buildPhases(tmpl buildTemplate, exp domain.Experience, area float64) []domain.BuildPhase {
	factor := experienceFactor(exp) * sizeFactor(area)

	phases := make([]domain.BuildPhase, 0, len(tmpl.Phases))
	for i, pt := range tmpl.Phases {
		hours := roundHalf(pt.EstimatedHours * factor)
		phases = append(phases, domain.BuildPhase{
			ID:               fmt.Sprintf("phase-%d", i+1),
			Name:             pt.Name,
			Description:      pt.Description,
			Duration:         durationLabel(hours),
			Order:            i + 1,
			EstimatedHours:   hours,
			Tools:            append([]string(nil), pt.Tools...),
			WeatherDependent: pt.WeatherDependent,
			SkillLevel:       pt.SkillLevel,
			SafetyPriority:   pt.SafetyPriority,
		})
	}
	return phases
}

func roundHalf(h float64) float64 {
	return math.Round(h*2) / 2
}

func durationLabel(hours float64) string {
	lo := int(math.Floor(hours))
	if lo < 1 {
		lo = 1
	}
	hi := int(math.Ceil(hours))
	if hi <= lo {
		hi = lo + 1
	}
	return fmt.Sprintf("%d-%d hours", lo, hi)
}

// assessDifficulty scores the project additively and buckets the result.
// Size, height and material variety push the score up; expert experience
// pulls it down and beginner experience pushes it up.
func assessDifficulty(tmpl buildTemplate, exp domain.Experience, dims domain.Dimensions, area float64, calc *domain.MaterialCalculation) domain.Difficulty {
	score := tmpl.BaseDifficulty

	switch {
	case area >= 8:
		score += 1.0
	case area >= 4:
		score += 0.5
	}

	switch {
	case dims.Height > 1.5:
		score += 1.0
	case dims.Height > 1.0:
		score += 0.5
	}

	if len(calc.Quantities) >= 3 {
		score += 0.5
	}

	switch exp {
	case domain.ExperienceExpert:
		score -= 1.0
	case domain.ExperienceBeginner:
		score += 1.0
	}

	switch {
	case score <= 2.0:
		return domain.DifficultyBeginner
	case score <= 3.5:
		return domain.DifficultyIntermediate
	default:
		return domain.DifficultyAdvanced
	}
}

func materialLines(calc *domain.MaterialCalculation) []domain.MaterialLine {
	lines := make([]domain.MaterialLine, 0, len(calc.Materials))
	for _, item := range calc.Materials {
		lines = append(lines, domain.MaterialLine{
			ID:           item.Material.ID,
			Name:         item.Material.Name,
			Quantity:     item.Quantity,
			Unit:         item.Material.Unit,
			PricePerUnit: item.Material.Price,
			TotalPrice:   item.TotalCost,
			InStock:      item.Material.InStock,
		})
	}
	return lines
}

func qualityChecks(phases []domain.BuildPhase) []domain.QualityCheck {
	checks := make([]domain.QualityCheck, 0, len(phases))
	for _, ph := range phases {
		check := domain.QualityCheck{
			ID:           fmt.Sprintf("check-%d", ph.Order),
			Phase:        ph.Name,
			CriticalPath: ph.SafetyPriority == domain.SeverityCritical,
		}
		switch {
		case strings.Contains(strings.ToLower(ph.Name), "foundation"),
			strings.Contains(strings.ToLower(ph.Name), "excavation"):
			check.Description = "Verify the base is level and compacted before continuing"
			check.ToolsRequired = []string{"tool-level"}
		case strings.Contains(strings.ToLower(ph.Name), "dome"):
			check.Description = "Check dome curvature against the template and joint thickness"
		case strings.Contains(strings.ToLower(ph.Name), "finish"),
			strings.Contains(strings.ToLower(ph.Name), "pointing"):
			check.Description = "Inspect all joints for gaps and clean excess mortar"
		default:
			check.Description = fmt.Sprintf("Check plumb and level after %s", strings.ToLower(ph.Name))
			check.ToolsRequired = []string{"tool-level"}
		}
		checks = append(checks, check)
	}
	return checks
}

func detailedSteps(phases []domain.BuildPhase) []domain.BuildStep {
	steps := make([]domain.BuildStep, 0, len(phases))
	for _, ph := range phases {
		steps = append(steps, domain.BuildStep{
			Number:      ph.Order,
			Title:       ph.Name,
			Description: ph.Description,
			Duration:    ph.Duration,
		})
	}
	return steps
}

// toolUnion merges phase tools with the tool requirements from the
// material calculation, deduplicated and sorted.
func toolUnion(phases []domain.BuildPhase, calc *domain.MaterialCalculation) []string {
	seen := make(map[string]bool)
	for _, ph := range phases {
		for _, t := range ph.Tools {
			seen[t] = true
		}
	}
	for _, item := range calc.Materials {
		if item.Material.Category == domain.CategoryTool {
			seen[item.Material.ID] = true
		}
	}
	tools := make([]string, 0, len(seen))
	for t := range seen {
		tools = append(tools, t)
	}
	sort.Strings(tools)
	return tools
}

// permitAdvisories flags likely permit requirements. Rules of thumb only;
// actual requirements vary by municipality.
func permitAdvisories(b domain.BuildType, dims domain.Dimensions) []string {
	var permits []string
	if dims.Height > 2.0 {
		permits = append(permits, "Structures above 2m height usually require a building permit")
	}
	if b == domain.BuildStructure {
		permits = append(permits, "Enclosed structures may require planning permission depending on floor area")
	}
	if b == domain.BuildFoundation {
		permits = append(permits, "Check local regulations before excavating near property boundaries or utilities")
	}
	if b.HeatExposed() {
		permits = append(permits, "Open fire installations may be restricted; check local fire safety regulations")
	}
	return permits
}

func weatherConsiderations(b domain.BuildType) []string {
	considerations := []string{
		"Do not lay mortar or pour concrete below 5°C",
		"Protect fresh work from rain for at least 24 hours",
		"Avoid working in direct summer heat; mortar dries too fast above 30°C",
	}
	if b == domain.BuildFoundation || b == domain.BuildStructure {
		considerations = append(considerations, "Allow concrete to cure for at least 48 hours before loading")
	}
	return considerations
}

func maintenanceSchedule(b domain.BuildType) []string {
	schedule := []string{
		"Inspect mortar joints annually and repoint where cracked",
		"Check for frost damage after each winter",
	}
	if b.HeatExposed() {
		schedule = append(schedule,
			"Remove ash after each use and keep the firebox dry",
			"Inspect firebricks for heat cracks every season")
	}
	if b == domain.BuildGardenWall {
		schedule = append(schedule, "Keep drainage gravel clear of soil buildup")
	}
	return schedule
}

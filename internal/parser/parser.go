// Package parser turns free-text user messages into structured build
// requests. Parsing is purely heuristic: keyword tables and regexes, no
// I/O, no errors. Missing fields are the only failure signal.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/buildagent/multibuild/internal/domain"
)

// buildTypeKeywords is scanned in order; more specific keywords must come
// before generic ones ("pizza oven" before "oven", "garden wall" before
// "wall"). First match wins.
var buildTypeKeywords = []struct {
	keyword string
	typ     domain.BuildType
}{
	{"pizza oven", domain.BuildPizzaOven},
	{"pizzaofen", domain.BuildPizzaOven},
	{"pizza", domain.BuildPizzaOven},
	{"oven", domain.BuildPizzaOven},
	{"garden wall", domain.BuildGardenWall},
	{"retaining wall", domain.BuildWall},
	{"brick wall", domain.BuildWall},
	{"fire pit", domain.BuildFirePit},
	{"firepit", domain.BuildFirePit},
	{"wall", domain.BuildWall},
	{"foundation", domain.BuildFoundation},
	{"base", domain.BuildFoundation},
	{"structure", domain.BuildStructure},
	{"building", domain.BuildStructure},
	{"shed", domain.BuildStructure},
}

var materialKeywords = map[string][]string{
	"brick":     {"brick", "bricks"},
	"firebrick": {"firebrick", "fire brick", "refractory brick"},
	"concrete":  {"concrete", "cement"},
	"mortar":    {"mortar", "cement mortar"},
	"stone":     {"stone", "natural stone"},
	"clay":      {"clay", "clay brick"},
}

var constraintKeywords = map[string][]string{
	"budget":     {"cheap", "budget", "affordable", "low cost"},
	"time":       {"quick", "fast", "urgent", "asap"},
	"space":      {"small space", "limited space", "compact"},
	"weather":    {"outdoor", "weatherproof", "rain resistant"},
	"insulation": {"insulated", "insulation", "heat resistant"},
}

const meterUnit = `(?:m|meter|metres?)?`

var (
	dims3DPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*` + meterUnit + `\s*[x×]\s*(\d+(?:\.\d+)?)\s*` + meterUnit + `\s*[x×]\s*(\d+(?:\.\d+)?)\s*` + meterUnit)
	dims2DPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*` + meterUnit + `\s*[x×]\s*(\d+(?:\.\d+)?)\s*` + meterUnit)

	widthPattern    = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*` + meterUnit + `\s*(?:wide|width)`)
	heightPattern   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*` + meterUnit + `\s*(?:high|height|tall)`)
	lengthPattern   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*` + meterUnit + `\s*(?:long|length)`)
	diameterPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*` + meterUnit + `\s*(?:diameter|across)`)

	budgetPatterns = []*regexp.Regexp{
		regexp.MustCompile(`€\s*(\d+(?:,\d{3})*(?:\.\d{2})?)`),
		regexp.MustCompile(`(\d+(?:,\d{3})*(?:\.\d{2})?)\s*€`),
		regexp.MustCompile(`(?i)(\d+(?:,\d{3})*(?:\.\d{2})?)\s*euros?`),
	}
)

// Parse converts one user message into a ParsedRequest. Deterministic and
// side-effect free; it never fails.
func Parse(text string) domain.ParsedRequest {
	lower := strings.ToLower(text)

	req := domain.ParsedRequest{
		BuildType:   detectBuildType(lower),
		Dimensions:  detectDimensions(text),
		Materials:   detectMaterials(lower),
		Constraints: detectConstraints(lower),
		Urgency:     detectUrgency(lower),
		Budget:      detectBudget(text),
		Experience:  detectExperience(lower),
	}
	req.Confidence = confidence(text, lower, req)
	return req
}

func detectBuildType(lower string) domain.BuildType {
	for _, entry := range buildTypeKeywords {
		if strings.Contains(lower, entry.keyword) {
			return entry.typ
		}
	}
	return domain.BuildUnknown
}

// detectDimensions runs the original-case input through the numeric
// patterns: 3-number first, then 2-number, then individual slots.
func detectDimensions(text string) domain.Dimensions {
	var d domain.Dimensions

	if m := dims3DPattern.FindStringSubmatch(text); m != nil {
		d.Length = parseFloat(m[1])
		d.Width = parseFloat(m[2])
		d.Height = parseFloat(m[3])
		return d
	}
	if m := dims2DPattern.FindStringSubmatch(text); m != nil {
		d.Length = parseFloat(m[1])
		d.Width = parseFloat(m[2])
		return d
	}
	if m := widthPattern.FindStringSubmatch(text); m != nil {
		d.Width = parseFloat(m[1])
	}
	if m := heightPattern.FindStringSubmatch(text); m != nil {
		d.Height = parseFloat(m[1])
	}
	if m := lengthPattern.FindStringSubmatch(text); m != nil {
		d.Length = parseFloat(m[1])
	}
	if m := diameterPattern.FindStringSubmatch(text); m != nil {
		d.Diameter = parseFloat(m[1])
	}
	return d
}

func detectMaterials(lower string) []string {
	var out []string
	for _, material := range []string{"brick", "firebrick", "concrete", "mortar", "stone", "clay"} {
		for _, kw := range materialKeywords[material] {
			if strings.Contains(lower, kw) {
				out = append(out, material)
				break
			}
		}
	}
	return out
}

func detectConstraints(lower string) []string {
	var out []string
	for _, constraint := range []string{"budget", "time", "space", "weather", "insulation"} {
		for _, kw := range constraintKeywords[constraint] {
			if strings.Contains(lower, kw) {
				out = append(out, constraint)
				break
			}
		}
	}
	return out
}

func detectUrgency(lower string) domain.Urgency {
	for _, kw := range []string{"urgent", "asap", "quickly", "fast", "rush"} {
		if strings.Contains(lower, kw) {
			return domain.UrgencyHigh
		}
	}
	for _, kw := range []string{"soon", "next week", "this month"} {
		if strings.Contains(lower, kw) {
			return domain.UrgencyMedium
		}
	}
	return domain.UrgencyLow
}

func detectBudget(text string) float64 {
	for _, p := range budgetPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return parseFloat(strings.ReplaceAll(m[1], ",", ""))
		}
	}
	return 0
}

func detectExperience(lower string) domain.Experience {
	for _, kw := range []string{"beginner", "first time", "never built", "new to"} {
		if strings.Contains(lower, kw) {
			return domain.ExperienceBeginner
		}
	}
	for _, kw := range []string{"expert", "professional", "experienced", "many times"} {
		if strings.Contains(lower, kw) {
			return domain.ExperienceExpert
		}
	}
	for _, kw := range []string{"some experience", "intermediate", "few times"} {
		if strings.Contains(lower, kw) {
			return domain.ExperienceIntermediate
		}
	}
	return ""
}

// confidence is an additive heuristic clamped to [0,1]: strong build-type
// keyword +0.4, weaker one +0.3, generic construction verb +0.1, any
// dimension +0.3, any material keyword +0.2, +0.1 each for length over 50
// chars and over 10 words.
func confidence(text, lower string, req domain.ParsedRequest) float64 {
	score := 0.0

	switch {
	case strings.Contains(lower, "pizza oven") || strings.Contains(lower, "pizzaofen") || strings.Contains(lower, "oven"):
		score += 0.4
	case containsAny(lower, "wall", "foundation", "fire pit", "structure"):
		score += 0.3
	case containsAny(lower, "build", "construct", "make"):
		score += 0.1
	}

	if req.Dimensions.Any() {
		score += 0.3
	}
	if len(req.Materials) > 0 {
		score += 0.2
	}
	if len(text) > 50 {
		score += 0.1
	}
	if len(strings.Fields(text)) > 10 {
		score += 0.1
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// Package recommend scores and ranks material substitution suggestions
// against the catalog.
package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/buildagent/multibuild/internal/catalog"
	"github.com/buildagent/multibuild/internal/domain"
)

// Priority selects the ranking strategy for recommendations.
type Priority string

const (
	PriorityCost     Priority = "cost"
	PriorityQuality  Priority = "quality"
	PriorityBalanced Priority = "balanced"
)

// Context carries the request attributes that influence scoring.
type Context struct {
	BuildType  domain.BuildType  `json:"build_type"`
	Experience domain.Experience `json:"experience"`
	Budget     float64           `json:"budget,omitempty"`
	Priority   Priority          `json:"priority"`
}

// Recommendation is one ranked substitution suggestion. CostDifference is
// the total cost delta across the original line item's quantity; negative
// means the alternative is cheaper.
type Recommendation struct {
	OriginalID     string          `json:"original_id"`
	Alternative    domain.Material `json:"alternative"`
	CostDifference float64         `json:"cost_difference"`
	Compatibility  float64         `json:"compatibility"`
	Reason         string          `json:"reason"`
	Benefits       []string        `json:"benefits,omitempty"`
}

const maxPerMaterial = 3

// Engine resolves alternatives against a catalog.
type Engine struct {
	catalog *catalog.Catalog
}

func New(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// Recommendations returns up to three ranked alternatives per line item.
// Candidates scoring 0.5 or below are dropped; an empty result is a valid
// outcome, not an error.
func (e *Engine) Recommendations(items []domain.CalculationItem, ctx Context) []Recommendation {
	if ctx.Priority == "" {
		ctx.Priority = PriorityBalanced
	}

	var out []Recommendation
	for _, item := range items {
		recs := e.forItem(item, ctx)
		sortRecs(recs, ctx.Priority)
		if len(recs) > maxPerMaterial {
			recs = recs[:maxPerMaterial]
		}
		out = append(out, recs...)
	}
	return out
}

// CostOptimizations keeps only the cheapest qualifying alternative per
// material and reports the total achievable savings.
func (e *Engine) CostOptimizations(calc *domain.MaterialCalculation, targetBudget float64) ([]Recommendation, float64) {
	ctx := Context{Priority: PriorityCost, Budget: targetBudget, BuildType: calc.BuildType}

	var out []Recommendation
	var savings float64
	for _, item := range calc.Materials {
		recs := e.forItem(item, ctx)
		var best *Recommendation
		for i := range recs {
			if recs[i].CostDifference >= 0 {
				continue
			}
			if best == nil || recs[i].CostDifference < best.CostDifference {
				best = &recs[i]
			}
		}
		if best != nil {
			out = append(out, *best)
			savings += -best.CostDifference
		}
	}
	return out, savings
}

// forItem gathers declared alternatives plus same-category compatibles,
// deduplicates them and scores each survivor.
func (e *Engine) forItem(item domain.CalculationItem, ctx Context) []Recommendation {
	orig := item.Material

	seen := map[string]bool{orig.ID: true}
	var candidates []domain.Material
	for _, alt := range e.catalog.Alternatives(orig.ID) {
		if !seen[alt.ID] {
			seen[alt.ID] = true
			candidates = append(candidates, alt)
		}
	}
	for _, m := range e.catalog.SearchByCategory(orig.Category) {
		if !seen[m.ID] && m.CompatibleWith(ctx.BuildType) {
			seen[m.ID] = true
			candidates = append(candidates, m)
		}
	}

	var recs []Recommendation
	for _, alt := range candidates {
		score := e.score(alt, orig, ctx)
		if score <= 0.5 {
			continue
		}
		costDiff := (alt.Price - orig.Price) * float64(item.Quantity)
		reason, benefits := describe(orig, alt, costDiff)
		recs = append(recs, Recommendation{
			OriginalID:     orig.ID,
			Alternative:    alt,
			CostDifference: costDiff,
			Compatibility:  score,
			Reason:         reason,
			Benefits:       benefits,
		})
	}
	return recs
}

// score implements the compatibility scoring rules, clamped to [0,1].
func (e *Engine) score(alt, orig domain.Material, ctx Context) float64 {
	var score float64
	if alt.CompatibleWith(ctx.BuildType) {
		score = 0.8
	}

	// Budget fit only matters when cost is the stated priority.
	if ctx.Priority == PriorityCost {
		if alt.Price < orig.Price {
			score += 0.2
		} else if alt.Price > orig.Price {
			score -= 0.2
		}
	}

	if ctx.Experience == domain.ExperienceBeginner && alt.Category == domain.CategoryTool {
		score += 0.1
	}

	if ctx.BuildType.HeatExposed() && alt.Specifications.HeatResistance > 0 {
		score += 0.2
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func sortRecs(recs []Recommendation, p Priority) {
	switch p {
	case PriorityCost:
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].CostDifference < recs[j].CostDifference
		})
	case PriorityQuality:
		sort.SliceStable(recs, func(i, j int) bool {
			return qualityScore(recs[i].Alternative) > qualityScore(recs[j].Alternative)
		})
	default:
		sort.SliceStable(recs, func(i, j int) bool {
			return balancedScore(recs[i]) > balancedScore(recs[j])
		})
	}
}

func balancedScore(r Recommendation) float64 {
	penalty := r.CostDifference
	if penalty < 0 {
		penalty = -penalty
	}
	return r.Compatibility - 0.01*penalty
}

func qualityScore(m domain.Material) float64 {
	score := m.Specifications.Strength + m.Specifications.HeatResistance/100
	if m.Specifications.WaterResistance != "" {
		score += 5
	}
	if strings.Contains(strings.ToLower(m.Name+m.Description), "premium") {
		score += 10
	}
	return score
}

// describe renders the human-readable reason and benefit fragments.
func describe(orig, alt domain.Material, costDiff float64) (string, []string) {
	var reason string
	switch {
	case costDiff < 0:
		reason = fmt.Sprintf("Save €%.2f", -costDiff)
	case costDiff > 0:
		reason = fmt.Sprintf("Premium option (+€%.2f)", costDiff)
	default:
		reason = "Similar price alternative"
	}

	var benefits []string
	if alt.Specifications.Strength > orig.Specifications.Strength {
		benefits = append(benefits, "Higher strength rating")
	}
	if alt.Specifications.HeatResistance > orig.Specifications.HeatResistance {
		benefits = append(benefits, "Better heat resistance")
	}
	if alt.Specifications.WaterResistance != "" && orig.Specifications.WaterResistance == "" {
		benefits = append(benefits, "Improved water resistance")
	}
	if strings.Contains(strings.ToLower(alt.Name+alt.Description), "premium") {
		benefits = append(benefits, "Premium quality")
	}
	if altDays, origDays := catalog.MaxLeadDays(alt.LeadTime), catalog.MaxLeadDays(orig.LeadTime); altDays < origDays {
		benefits = append(benefits, "Faster delivery")
	}
	if alt.Supplier != "" && alt.Supplier != orig.Supplier {
		benefits = append(benefits, "Available from "+alt.Supplier)
	}

	if len(benefits) > 0 {
		reason += ": " + benefits[0]
	}
	return reason, benefits
}

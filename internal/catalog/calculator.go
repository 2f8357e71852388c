package catalog

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/buildagent/multibuild/internal/domain"
)

// ErrNoRules is returned when a build type has no calculation rules entry.
// It is the single explicit validation error of the calculator.
var ErrNoRules = errors.New("no calculation rules for build type")

const defaultFoundationDepth = 0.3 // meters, used when height is unspecified

// CalculateNeeds computes required quantities and total cost for a build
// type and partial dimensions using the catalog's rules.
func (c *Catalog) CalculateNeeds(b domain.BuildType, dims domain.Dimensions) (*domain.MaterialCalculation, error) {
	rules, ok := c.rules[b]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoRules, b)
	}

	calc := &domain.MaterialCalculation{
		BuildType:          b,
		WasteFactorApplied: rules.WasteFactor,
		Quantities:         make(map[string]domain.QuantityBreakdown),
	}

	area := SurfaceArea(b, dims)
	vol := Volume(dims)

	if rules.BricksPerSqm > 0 && area > 0 {
		if brick := c.selectBrick(b); brick != nil {
			addScaled(calc, *brick, rules.BricksPerSqm*area, rules.WasteFactor)
		}
	}
	if rules.MortarBagsPerSqm > 0 && area > 0 {
		if mortar := c.selectMortar(b); mortar != nil {
			addScaled(calc, *mortar, rules.MortarBagsPerSqm*area, rules.WasteFactor)
		}
	}
	if rules.InsulationPerSqm > 0 && area > 0 {
		if ins := c.selectInsulation(b); ins != nil {
			addScaled(calc, *ins, rules.InsulationPerSqm*area, rules.WasteFactor)
		}
	}
	if rules.ConcretePerCubicM > 0 && vol > 0 {
		if concrete := c.selectConcrete(); concrete != nil {
			addScaled(calc, *concrete, rules.ConcretePerCubicM*vol, rules.WasteFactor)
		}
	}

	// Fixed additional materials, sorted for deterministic output.
	extraIDs := make([]string, 0, len(rules.AdditionalMaterials))
	for id := range rules.AdditionalMaterials {
		extraIDs = append(extraIDs, id)
	}
	sort.Strings(extraIDs)
	for _, id := range extraIDs {
		m := c.byID[id]
		if m == nil {
			continue
		}
		qty := rules.AdditionalMaterials[id]
		base := int(math.Ceil(qty))
		final := int(math.Ceil(qty * rules.WasteFactor))
		calc.Materials = append(calc.Materials, domain.CalculationItem{
			Material:      *m,
			Quantity:      final,
			TotalCost:     float64(final) * m.Price,
			WasteIncluded: true,
			Notes:         "Additional material requirement",
		})
		calc.Quantities[id] = domain.QuantityBreakdown{Base: base, Waste: final - base, Final: final}
	}

	// Tools are one-off purchases, never subject to waste.
	for _, id := range rules.ToolsRequired {
		tool := c.byID[id]
		if tool == nil {
			continue
		}
		calc.Materials = append(calc.Materials, domain.CalculationItem{
			Material:      *tool,
			Quantity:      1,
			TotalCost:     tool.Price,
			WasteIncluded: false,
			Notes:         "Essential tool for construction",
		})
		calc.Quantities[id] = domain.QuantityBreakdown{Base: 1, Waste: 0, Final: 1}
	}

	for _, item := range calc.Materials {
		calc.TotalCost += item.TotalCost
	}
	calc.DeliveryTime = maxLeadTime(calc.Materials)

	return calc, nil
}

// addScaled appends one area/volume-scaled line item with its waste split.
func addScaled(calc *domain.MaterialCalculation, m domain.Material, rawQty, wasteFactor float64) {
	base := int(math.Ceil(rawQty))
	waste := int(math.Ceil(float64(base) * (wasteFactor - 1)))
	final := base + waste
	calc.Materials = append(calc.Materials, domain.CalculationItem{
		Material:      m,
		Quantity:      final,
		TotalCost:     float64(final) * m.Price,
		WasteIncluded: true,
		Notes:         fmt.Sprintf("%d base + %d waste allowance", base, waste),
	})
	calc.Quantities[m.ID] = domain.QuantityBreakdown{Base: base, Waste: waste, Final: final}
}

// SurfaceArea applies the build-type-specific area formula.
func SurfaceArea(b domain.BuildType, d domain.Dimensions) float64 {
	switch b {
	case domain.BuildWall, domain.BuildGardenWall:
		if d.Height > 0 {
			return d.Length * d.Height
		}
		// "4m x 1.2m" parses as length x width; treat it as the face.
		return d.Length * d.Width
	case domain.BuildPizzaOven:
		if d.Diameter > 0 {
			// Hemispherical dome approximation.
			return math.Pi * math.Pow(d.Diameter/2, 2) * 2
		}
		return d.Length * d.Width * 1.5
	case domain.BuildFirePit:
		if d.Diameter > 0 {
			return math.Pi * d.Diameter * d.Height
		}
		return (d.Length + d.Width) * 2 * d.Height
	case domain.BuildStructure:
		if d.Height > 0 {
			return 2 * (d.Length*d.Height + d.Width*d.Height)
		}
		return d.Length * d.Width
	default:
		if a := d.Length * d.Height; a > 0 {
			return a
		}
		return d.Width * d.Height
	}
}

// Volume computes foundation volume. Depth falls back to 30 cm when no
// height was given.
func Volume(d domain.Dimensions) float64 {
	depth := d.Height
	if depth == 0 {
		depth = defaultFoundationDepth
	}
	if d.Diameter > 0 {
		r := d.Diameter / 2
		return math.Pi * r * r * depth
	}
	return d.Length * d.Width * depth
}

// selectBrick picks the primary brick for a build type. Heat-exposed
// builds prefer firebrick ids, everything else prefers "standard".
func (c *Catalog) selectBrick(b domain.BuildType) *domain.Material {
	candidates := c.compatibleInCategory(domain.CategoryBrick, b)
	marker := "standard"
	if b.HeatExposed() {
		marker = "firebrick"
	}
	return pickByMarker(candidates, marker)
}

// selectMortar prefers refractory mortar for heat-exposed builds and
// waterproof mortar for garden walls.
func (c *Catalog) selectMortar(b domain.BuildType) *domain.Material {
	candidates := c.compatibleInCategory(domain.CategoryMortar, b)
	switch {
	case b.HeatExposed():
		return pickByMarker(candidates, "refractory")
	case b == domain.BuildGardenWall:
		return pickByMarker(candidates, "waterproof")
	default:
		return pickByMarker(candidates, "standard")
	}
}

func (c *Catalog) selectInsulation(b domain.BuildType) *domain.Material {
	candidates := c.compatibleInCategory(domain.CategoryInsulation, b)
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0]
}

func (c *Catalog) selectConcrete() *domain.Material {
	for i := range c.materials {
		m := &c.materials[i]
		if m.Category == domain.CategoryFoundation && strings.Contains(m.ID, "concrete-standard") {
			return m
		}
	}
	return nil
}

func (c *Catalog) compatibleInCategory(cat domain.MaterialCategory, b domain.BuildType) []*domain.Material {
	var out []*domain.Material
	for i := range c.materials {
		m := &c.materials[i]
		if m.Category == cat && m.CompatibleWith(b) {
			out = append(out, m)
		}
	}
	return out
}

// pickByMarker returns the first candidate whose id contains the marker,
// falling back to the first candidate.
func pickByMarker(candidates []*domain.Material, marker string) *domain.Material {
	if len(candidates) == 0 {
		return nil
	}
	for _, m := range candidates {
		if strings.Contains(m.ID, marker) {
			return m
		}
	}
	return candidates[0]
}

var leadTimePattern = regexp.MustCompile(`(\d+)-?(\d+)?\s*days?`)

// MaxLeadDays extracts the upper bound of an "N-M days" lead time string,
// defaulting to 1 when the string does not match.
func MaxLeadDays(leadTime string) int {
	m := leadTimePattern.FindStringSubmatch(leadTime)
	if m == nil {
		return 1
	}
	if m[2] != "" {
		n, _ := strconv.Atoi(m[2])
		return n
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// maxLeadTime returns the lead time string of the slowest line item.
func maxLeadTime(items []domain.CalculationItem) string {
	best := ""
	bestDays := 0
	for _, item := range items {
		lt := item.Material.LeadTime
		if lt == "" {
			continue
		}
		if days := MaxLeadDays(lt); best == "" || days > bestDays {
			best, bestDays = lt, days
		}
	}
	if best == "" {
		return "1-2 days"
	}
	return best
}

package recommend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildagent/multibuild/internal/catalog"
	"github.com/buildagent/multibuild/internal/domain"
)

func loadedEngine(t *testing.T) (*Engine, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return New(cat), cat
}

func ovenItems(t *testing.T, cat *catalog.Catalog) *domain.MaterialCalculation {
	t.Helper()
	calc, err := cat.CalculateNeeds(domain.BuildPizzaOven, domain.Dimensions{Diameter: 1.2, Height: 0.6})
	require.NoError(t, err)
	return calc
}

func TestRecommendations_CheaperAlternativeExists(t *testing.T) {
	e, cat := loadedEngine(t)
	calc := ovenItems(t, cat)

	recs := e.Recommendations(calc.Materials, Context{
		BuildType: domain.BuildPizzaOven,
		Priority:  PriorityCost,
	})
	require.NotEmpty(t, recs)

	// The ceramic blanket has a cheaper vermiculite alternative.
	found := false
	for _, r := range recs {
		if r.OriginalID == "insulation-ceramic-blanket" && r.CostDifference < 0 {
			found = true
			assert.Contains(t, r.Reason, "Save €")
		}
	}
	assert.True(t, found)
}

func TestRecommendations_NoneIsNotAnError(t *testing.T) {
	cat, err := catalog.New([]domain.Material{
		{ID: "brick-lonely", Name: "Lonely Brick", Category: domain.CategoryBrick,
			Price: 1, Compatibility: []string{"wall"}},
	}, nil)
	require.NoError(t, err)

	recs := New(cat).Recommendations([]domain.CalculationItem{
		{Material: *cat.ByID("brick-lonely"), Quantity: 10},
	}, Context{BuildType: domain.BuildWall})
	assert.Empty(t, recs)
}

func TestRecommendations_IncompatibleFilteredOut(t *testing.T) {
	e, cat := loadedEngine(t)

	// Firebrick is only compatible with heat-exposed builds, so its
	// declared alternative survives but nothing wall-only does.
	item := domain.CalculationItem{Material: *cat.ByID("brick-firebrick"), Quantity: 50}
	recs := e.Recommendations([]domain.CalculationItem{item}, Context{BuildType: domain.BuildPizzaOven})
	for _, r := range recs {
		assert.True(t, r.Alternative.CompatibleWith(domain.BuildPizzaOven), r.Alternative.ID)
	}
}

func TestRecommendations_CappedAtThree(t *testing.T) {
	materials := []domain.Material{
		{ID: "brick-orig", Name: "Orig", Category: domain.CategoryBrick, Price: 1, Compatibility: []string{"wall"}},
	}
	for _, suffix := range []string{"a", "b", "c", "d", "e"} {
		materials = append(materials, domain.Material{
			ID: "brick-" + suffix, Name: "Brick " + suffix,
			Category: domain.CategoryBrick, Price: 1, Compatibility: []string{"wall"},
		})
	}
	cat, err := catalog.New(materials, nil)
	require.NoError(t, err)

	recs := New(cat).Recommendations([]domain.CalculationItem{
		{Material: materials[0], Quantity: 1},
	}, Context{BuildType: domain.BuildWall})
	assert.Len(t, recs, 3)
}

func TestRecommendations_DeduplicatesCandidates(t *testing.T) {
	e, cat := loadedEngine(t)

	// mortar-standard declares mortar-waterproof, which is also a
	// same-category compatible; it must appear once.
	item := domain.CalculationItem{Material: *cat.ByID("mortar-standard"), Quantity: 5}
	recs := e.Recommendations([]domain.CalculationItem{item}, Context{BuildType: domain.BuildWall})

	seen := map[string]int{}
	for _, r := range recs {
		seen[r.Alternative.ID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}
}

func TestScore_HeatBonusAndClamp(t *testing.T) {
	e, cat := loadedEngine(t)

	alt := *cat.ByID("insulation-vermiculite")
	orig := *cat.ByID("insulation-ceramic-blanket")
	score := e.score(alt, orig, Context{BuildType: domain.BuildPizzaOven, Priority: PriorityCost})
	assert.Equal(t, 1.0, score)
}

func TestScore_BeginnerToolBonus(t *testing.T) {
	e, cat := loadedEngine(t)

	tool := *cat.ByID("tool-trowel")
	base := e.score(tool, tool, Context{BuildType: domain.BuildWall})
	beginner := e.score(tool, tool, Context{BuildType: domain.BuildWall, Experience: domain.ExperienceBeginner})
	assert.InDelta(t, 0.1, beginner-base, 0.001)
}

func TestReasonText_PremiumOption(t *testing.T) {
	e, cat := loadedEngine(t)

	item := domain.CalculationItem{Material: *cat.ByID("brick-firebrick"), Quantity: 100}
	recs := e.Recommendations([]domain.CalculationItem{item}, Context{
		BuildType: domain.BuildPizzaOven,
		Priority:  PriorityQuality,
	})
	require.NotEmpty(t, recs)

	premium := recs[0]
	assert.Equal(t, "brick-firebrick-premium", premium.Alternative.ID)
	assert.True(t, strings.HasPrefix(premium.Reason, "Premium option (+€"))
	assert.Contains(t, premium.Benefits, "Better heat resistance")
}

func TestSortByCostPutsCheapestFirst(t *testing.T) {
	e, cat := loadedEngine(t)

	item := domain.CalculationItem{Material: *cat.ByID("brick-standard"), Quantity: 100}
	recs := e.Recommendations([]domain.CalculationItem{item}, Context{
		BuildType: domain.BuildWall,
		Priority:  PriorityCost,
	})
	for i := 1; i < len(recs); i++ {
		assert.LessOrEqual(t, recs[i-1].CostDifference, recs[i].CostDifference)
	}
}

func TestCostOptimizations(t *testing.T) {
	e, cat := loadedEngine(t)
	calc := ovenItems(t, cat)

	recs, savings := e.CostOptimizations(calc, 0)
	require.NotEmpty(t, recs)
	assert.Greater(t, savings, 0.0)

	perOriginal := map[string]int{}
	var sum float64
	for _, r := range recs {
		assert.Negative(t, r.CostDifference)
		perOriginal[r.OriginalID]++
		sum += -r.CostDifference
	}
	for id, n := range perOriginal {
		assert.Equal(t, 1, n, id)
	}
	assert.InDelta(t, sum, savings, 0.001)
}

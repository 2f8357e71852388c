package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildagent/multibuild/internal/domain"
)

func TestLoad_EmbeddedCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	stats := c.GetStats()
	assert.Greater(t, stats.TotalMaterials, 20)
	assert.Contains(t, stats.Categories, "brick")
	assert.Contains(t, stats.Categories, "mortar")
	assert.Contains(t, stats.Categories, "tool")

	for _, bt := range []domain.BuildType{
		domain.BuildWall, domain.BuildGardenWall, domain.BuildPizzaOven,
		domain.BuildFirePit, domain.BuildFoundation, domain.BuildStructure,
	} {
		_, ok := c.Rules(bt)
		assert.True(t, ok, "missing rules for %s", bt)
	}
}

func TestNew_RejectsBadData(t *testing.T) {
	tests := []struct {
		name      string
		materials []domain.Material
		rules     map[domain.BuildType]domain.CalculationRules
	}{
		{
			name:      "missing id",
			materials: []domain.Material{{Name: "Nameless"}},
		},
		{
			name: "duplicate id",
			materials: []domain.Material{
				{ID: "brick-a", Name: "A"},
				{ID: "brick-a", Name: "B"},
			},
		},
		{
			name: "waste factor below one",
			rules: map[domain.BuildType]domain.CalculationRules{
				domain.BuildWall: {WasteFactor: 0.9},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.materials, tt.rules)
			require.Error(t, err)
		})
	}
}

func TestSearchByBuildType(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	oven := c.SearchByBuildType(domain.BuildPizzaOven)
	require.NotEmpty(t, oven)
	for _, m := range oven {
		assert.True(t, m.CompatibleWith(domain.BuildPizzaOven), m.ID)
	}

	// "all" compatibility entries must show up for every build type.
	foundTool := false
	for _, m := range oven {
		if m.Category == domain.CategoryTool {
			foundTool = true
		}
	}
	assert.True(t, foundTool)
}

func TestSearch(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	byName := c.Search("firebrick")
	require.NotEmpty(t, byName)

	byCategory := c.Search("mortar")
	require.NotEmpty(t, byCategory)

	assert.Empty(t, c.Search(""))
	assert.Empty(t, c.Search("unobtainium"))

	// Case insensitive.
	assert.Equal(t, len(c.Search("FIREBRICK")), len(byName))
}

func TestAlternatives(t *testing.T) {
	c, err := New([]domain.Material{
		{ID: "brick-a", Name: "A", Alternatives: []string{"brick-b", "brick-gone"}},
		{ID: "brick-b", Name: "B"},
	}, nil)
	require.NoError(t, err)

	alts := c.Alternatives("brick-a")
	require.Len(t, alts, 1)
	assert.Equal(t, "brick-b", alts[0].ID)

	assert.Nil(t, c.Alternatives("brick-missing"))
}

func TestMaterialsReturnsCopy(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	all := c.Materials()
	require.NotEmpty(t, all)
	original := all[0].Name
	all[0].Name = "mutated"
	assert.Equal(t, original, c.Materials()[0].Name)
}

package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildagent/multibuild/internal/domain"
)

func TestCalculateNeeds_Wall(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	dims := domain.Dimensions{Length: 2, Height: 1.5}
	calc, err := c.CalculateNeeds(domain.BuildWall, dims)
	require.NoError(t, err)

	assert.Equal(t, domain.BuildWall, calc.BuildType)
	assert.NotEmpty(t, calc.Materials)
	assert.Greater(t, calc.TotalCost, 0.0)
	assert.NotEmpty(t, calc.DeliveryTime)

	rules, _ := c.Rules(domain.BuildWall)
	assert.Equal(t, rules.WasteFactor, calc.WasteFactorApplied)

	// 3 sqm at 60 bricks/sqm gives a 180-brick base.
	q, ok := calc.Quantities["brick-standard"]
	require.True(t, ok)
	assert.Equal(t, 180, q.Base)
	assert.Equal(t, q.Base+q.Waste, q.Final)
}

func TestCalculateNeeds_WasteInvariant(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	for _, bt := range []domain.BuildType{
		domain.BuildWall, domain.BuildGardenWall, domain.BuildPizzaOven,
		domain.BuildFirePit, domain.BuildFoundation, domain.BuildStructure,
	} {
		calc, err := c.CalculateNeeds(bt, domain.Dimensions{Length: 3, Width: 2, Height: 1.2, Diameter: 1.2})
		require.NoError(t, err, bt)

		rules, _ := c.Rules(bt)
		for id, q := range calc.Quantities {
			wantWaste := int(math.Ceil(float64(q.Base) * (rules.WasteFactor - 1)))
			assert.Equal(t, wantWaste, q.Waste, "%s %s waste", bt, id)
			assert.Equal(t, q.Base+q.Waste, q.Final, "%s %s final", bt, id)
			assert.GreaterOrEqual(t, q.Final, q.Base, "%s %s", bt, id)
		}
	}
}

func TestCalculateNeeds_UnknownBuildType(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	_, err = c.CalculateNeeds(domain.BuildUnknown, domain.Dimensions{Length: 1, Height: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoRules)
}

func TestCalculateNeeds_MaterialSelection(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	oven, err := c.CalculateNeeds(domain.BuildPizzaOven, domain.Dimensions{Diameter: 1.2, Height: 0.6})
	require.NoError(t, err)
	assert.Contains(t, oven.Quantities, "brick-firebrick")
	assert.Contains(t, oven.Quantities, "mortar-refractory")

	wall, err := c.CalculateNeeds(domain.BuildWall, domain.Dimensions{Length: 2, Height: 1})
	require.NoError(t, err)
	assert.Contains(t, wall.Quantities, "brick-standard")
	assert.Contains(t, wall.Quantities, "mortar-standard")

	garden, err := c.CalculateNeeds(domain.BuildGardenWall, domain.Dimensions{Length: 4, Height: 1})
	require.NoError(t, err)
	assert.Contains(t, garden.Quantities, "mortar-waterproof")
}

func TestCalculateNeeds_ToolsHaveNoWaste(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	calc, err := c.CalculateNeeds(domain.BuildWall, domain.Dimensions{Length: 2, Height: 1})
	require.NoError(t, err)

	foundTool := false
	for _, item := range calc.Materials {
		if item.Material.Category == domain.CategoryTool {
			foundTool = true
			assert.Equal(t, 1, item.Quantity)
			assert.False(t, item.WasteIncluded)
		}
	}
	assert.True(t, foundTool)
}

func TestCalculateNeeds_AdditionalMaterials(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	calc, err := c.CalculateNeeds(domain.BuildPizzaOven, domain.Dimensions{Diameter: 1.2, Height: 0.6})
	require.NoError(t, err)
	assert.Contains(t, calc.Quantities, "accessory-oven-door")
	assert.Contains(t, calc.Quantities, "accessory-thermometer")
}

func TestCalculateNeeds_TotalCostIsSum(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	calc, err := c.CalculateNeeds(domain.BuildGardenWall, domain.Dimensions{Length: 4, Height: 1.2})
	require.NoError(t, err)

	var sum float64
	for _, item := range calc.Materials {
		sum += item.TotalCost
	}
	assert.InDelta(t, sum, calc.TotalCost, 0.001)
}

func TestSurfaceArea(t *testing.T) {
	tests := []struct {
		name string
		bt   domain.BuildType
		dims domain.Dimensions
		want float64
	}{
		{"wall", domain.BuildWall, domain.Dimensions{Length: 4, Height: 1.5}, 6},
		{"garden wall", domain.BuildGardenWall, domain.Dimensions{Length: 3, Height: 1}, 3},
		{"dome from diameter", domain.BuildPizzaOven, domain.Dimensions{Diameter: 1.2}, math.Pi * 0.36 * 2},
		{"fire pit ring", domain.BuildFirePit, domain.Dimensions{Diameter: 1, Height: 0.5}, math.Pi * 0.5},
		{"structure walls", domain.BuildStructure, domain.Dimensions{Length: 3, Width: 2, Height: 2}, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SurfaceArea(tt.bt, tt.dims), 0.001)
		})
	}
}

func TestVolume(t *testing.T) {
	assert.InDelta(t, 3.0, Volume(domain.Dimensions{Length: 2, Width: 1.5, Height: 1}), 0.001)
	// Depth defaults to 30 cm when no height is given.
	assert.InDelta(t, 0.9, Volume(domain.Dimensions{Length: 2, Width: 1.5}), 0.001)
	assert.InDelta(t, math.Pi*0.25*0.3, Volume(domain.Dimensions{Diameter: 1}), 0.001)
}

func TestMaxLeadDays(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1-2 days", 2},
		{"3-5 days", 5},
		{"7 days", 7},
		{"next week", 1},
		{"", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaxLeadDays(tt.in), tt.in)
	}
}

func TestCalculateNeeds_DeliveryTimeIsMaxLead(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	calc, err := c.CalculateNeeds(domain.BuildPizzaOven, domain.Dimensions{Diameter: 1.2, Height: 0.6})
	require.NoError(t, err)

	maxDays := 0
	for _, item := range calc.Materials {
		if item.Material.LeadTime == "" {
			continue
		}
		if d := MaxLeadDays(item.Material.LeadTime); d > maxDays {
			maxDays = d
		}
	}
	assert.Equal(t, maxDays, MaxLeadDays(calc.DeliveryTime))
}

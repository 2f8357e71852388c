package domain

// Specifications holds optional physical and performance attributes of a
// catalog material. Empty strings / zero values mean "not specified".
type Specifications struct {
	Weight          float64 `json:"weight,omitempty"` // kg per unit
	Coverage        string  `json:"coverage,omitempty"`
	Strength        float64 `json:"strength,omitempty"`        // N/mm²
	HeatResistance  float64 `json:"heat_resistance,omitempty"` // °C
	WaterResistance string  `json:"water_resistance,omitempty"`
}

// Material is an immutable catalog entry.
type Material struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Category       MaterialCategory `json:"category"`
	Price          float64          `json:"price"` // euros per unit
	Unit           string           `json:"unit"`
	Specifications Specifications   `json:"specifications,omitempty"`
	Compatibility  []string         `json:"compatibility"` // build types, or "all"
	Alternatives   []string         `json:"alternatives,omitempty"`
	InStock        bool             `json:"in_stock"`
	Description    string           `json:"description,omitempty"`
	Supplier       string           `json:"supplier,omitempty"`
	LeadTime       string           `json:"lead_time,omitempty"` // e.g. "3-5 days"
}

// CompatibleWith reports whether the material may be used for the given
// build type. A compatibility entry of "all" matches everything.
func (m *Material) CompatibleWith(b BuildType) bool {
	for _, c := range m.Compatibility {
		if c == "all" || c == string(b) {
			return true
		}
	}
	return false
}

// CalculationRules describes how to derive quantities for one build type.
// All coefficients are optional; WasteFactor must be >= 1.0.
type CalculationRules struct {
	BricksPerSqm        float64            `json:"bricks_per_sqm,omitempty"`
	MortarBagsPerSqm    float64            `json:"mortar_bags_per_sqm,omitempty"`
	InsulationPerSqm    float64            `json:"insulation_per_sqm,omitempty"`
	ConcretePerCubicM   float64            `json:"concrete_per_cbm,omitempty"`
	WasteFactor         float64            `json:"waste_factor"`
	ToolsRequired       []string           `json:"tools_required,omitempty"`
	AdditionalMaterials map[string]float64 `json:"additional_materials,omitempty"`
}

// QuantityBreakdown records base, waste and final quantities for one line
// item so the waste allowance stays visible to the user.
type QuantityBreakdown struct {
	Base  int `json:"base"`
	Waste int `json:"waste"`
	Final int `json:"final"`
}

// CalculationItem is one line of a material calculation.
type CalculationItem struct {
	Material      Material `json:"material"`
	Quantity      int      `json:"quantity"`
	TotalCost     float64  `json:"total_cost"`
	WasteIncluded bool     `json:"waste_included"`
	Notes         string   `json:"notes,omitempty"`
}

// MaterialCalculation is the computed bill of materials for one request.
// It is replaced wholesale whenever dimensions or build type change.
type MaterialCalculation struct {
	Materials          []CalculationItem            `json:"materials"`
	TotalCost          float64                      `json:"total_cost"`
	DeliveryTime       string                       `json:"delivery_time"`
	WasteFactorApplied float64                      `json:"waste_factor_applied"`
	BuildType          BuildType                    `json:"build_type"`
	Quantities         map[string]QuantityBreakdown `json:"quantities,omitempty"`
}

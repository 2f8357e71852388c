// Package quickcalc is the quality-tier oven calculator behind the REST
// surface. Unlike the full catalog pipeline it works from a fixed component
// sheet with three pre-priced quality options and scales amounts linearly
// with the requested floor area.
package quickcalc

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
)

//go:embed data/oven.json
var ovenJSON []byte

// Tier is one of the three pre-priced quality options.
type Tier string

const (
	TierSchnell  Tier = "schnell"
	TierGuenstig Tier = "günstig"
	TierPremium  Tier = "premium"
)

// ValidTiers is the closed set of quality options.
var ValidTiers = map[Tier]bool{
	TierSchnell:  true,
	TierGuenstig: true,
	TierPremium:  true,
}

var buildTimes = map[Tier]string{
	TierSchnell:  "2-3 Tage",
	TierGuenstig: "3-5 Tage",
	TierPremium:  "5-7 Tage",
}

// Requirements is the validated calculator input. Zero values on the way in
// mean "not given" and are replaced by defaults during validation.
type Requirements struct {
	AreaSqm            float64 `json:"area_sqm"`
	MaterialPreference string  `json:"material_preference,omitempty"`
	Quality            Tier    `json:"quality_option"`
}

// ComponentCost is one line of the costed component sheet.
type ComponentCost struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Amount       int     `json:"amount"`
	PricePerUnit float64 `json:"price_per_unit"`
	TotalPrice   float64 `json:"total_price"`
}

// Calculation is the costed result for one tier and area.
type Calculation struct {
	Components []ComponentCost `json:"components"`
	TotalCost  float64         `json:"total_cost"`
	Quality    Tier            `json:"quality_option"`
}

// ImagePrompt is a plain-data description suitable for an image API. No
// image is generated here.
type ImagePrompt struct {
	Description string   `json:"description"`
	Style       string   `json:"style"`
	Details     []string `json:"details"`
}

// ShoppingList is the final summary handed back to the caller.
type ShoppingList struct {
	Project            string          `json:"project"`
	Quality            Tier            `json:"quality_option"`
	Components         []ComponentCost `json:"components"`
	TotalCost          float64         `json:"total_cost"`
	EstimatedBuildTime string          `json:"estimated_build_time"`
	ImagePrompt        ImagePrompt     `json:"image_prompt"`
}

// TierOption is one priced quantity on the component sheet.
type TierOption struct {
	Amount       int     `json:"amount"`
	PricePerUnit float64 `json:"price_per_unit"`
}

// Component is one row of the component sheet with its three tier options.
type Component struct {
	Name    string              `json:"name"`
	Unit    string              `json:"unit"`
	Options map[Tier]TierOption `json:"options"`
}

type ovenData struct {
	Project      string `json:"project"`
	Requirements struct {
		MinAreaSqm  float64 `json:"min_area_sqm"`
		MaxAreaSqm  float64 `json:"max_area_sqm"`
		BaseAreaSqm float64 `json:"base_area_sqm"`
	} `json:"requirements"`
	Components []Component `json:"components"`
}

// Calculator holds the embedded component sheet.
type Calculator struct {
	data ovenData
}

// Load parses the embedded component sheet and checks that every component
// prices all three tiers.
func Load() (*Calculator, error) {
	var data ovenData
	if err := json.Unmarshal(ovenJSON, &data); err != nil {
		return nil, fmt.Errorf("parsing embedded oven data: %w", err)
	}
	if data.Requirements.BaseAreaSqm <= 0 {
		return nil, fmt.Errorf("oven data has no base area")
	}
	for _, c := range data.Components {
		for tier := range ValidTiers {
			if _, ok := c.Options[tier]; !ok {
				return nil, fmt.Errorf("component %q has no %s option", c.Name, tier)
			}
		}
	}
	return &Calculator{data: data}, nil
}

// Project returns the project name from the component sheet.
func (c *Calculator) Project() string { return c.data.Project }

// Bounds returns the allowed area range in square meters.
func (c *Calculator) Bounds() (min, max float64) {
	return c.data.Requirements.MinAreaSqm, c.data.Requirements.MaxAreaSqm
}

// Components returns the raw component sheet for the materials endpoint.
func (c *Calculator) Components() []Component {
	out := make([]Component, len(c.data.Components))
	copy(out, c.data.Components)
	return out
}

// Validate applies defaults for missing fields and rejects out-of-range
// input with a descriptive error. Areas are never clamped.
func (c *Calculator) Validate(in Requirements) (Requirements, error) {
	if in.AreaSqm == 0 {
		in.AreaSqm = c.data.Requirements.BaseAreaSqm
	}
	if in.Quality == "" {
		in.Quality = TierGuenstig
	}
	if !ValidTiers[in.Quality] {
		return Requirements{}, fmt.Errorf("unknown quality option %q, allowed: schnell, günstig, premium", in.Quality)
	}
	if in.AreaSqm < c.data.Requirements.MinAreaSqm {
		return Requirements{}, fmt.Errorf("area %.2f sqm is below the minimum of %.1f sqm", in.AreaSqm, c.data.Requirements.MinAreaSqm)
	}
	if in.AreaSqm > c.data.Requirements.MaxAreaSqm {
		return Requirements{}, fmt.Errorf("area %.2f sqm exceeds the maximum of %.1f sqm", in.AreaSqm, c.data.Requirements.MaxAreaSqm)
	}
	return in, nil
}

// Calculate prices the component sheet for the given tier, scaling amounts
// linearly with the area relative to the baseline and rounding up.
func (c *Calculator) Calculate(req Requirements) Calculation {
	scale := req.AreaSqm / c.data.Requirements.BaseAreaSqm
	calc := Calculation{Quality: req.Quality}
	for _, comp := range c.data.Components {
		opt := comp.Options[req.Quality]
		amount := int(math.Ceil(float64(opt.Amount) * scale))
		line := ComponentCost{
			Name:         comp.Name,
			Unit:         comp.Unit,
			Amount:       amount,
			PricePerUnit: opt.PricePerUnit,
			TotalPrice:   float64(amount) * opt.PricePerUnit,
		}
		calc.Components = append(calc.Components, line)
		calc.TotalCost += line.TotalPrice
	}
	return calc
}

// BuildTime returns the estimated build time label for a tier.
func BuildTime(tier Tier) string { return buildTimes[tier] }

func (c *Calculator) imagePrompt(req Requirements, calc Calculation) ImagePrompt {
	descriptions := map[Tier]string{
		TierSchnell:  "moderner, effizienter Pizzaofen mit schlankem Design",
		TierGuenstig: "traditioneller, rustikaler Pizzaofen im Garten",
		TierPremium:  "luxuriöser, professioneller Pizzaofen mit eleganten Steinarbeiten",
	}

	size := "kompakter"
	switch {
	case req.AreaSqm > 2.0:
		size = "großer"
	case req.AreaSqm > 1.5:
		size = "mittelgroßer"
	}

	style := "rustic, traditional style"
	switch req.Quality {
	case TierPremium:
		style = "photorealistic, professional architecture"
	case TierSchnell:
		style = "modern, clean design"
	}

	bricks := 0
	for _, line := range calc.Components {
		if line.Name == "Schamottsteine" {
			bricks = line.Amount
		}
	}

	return ImagePrompt{
		Description: fmt.Sprintf("Ein %s %s aus Schamottsteinen", size, descriptions[req.Quality]),
		Style:       style,
		Details: []string{
			fmt.Sprintf("Fläche: %g Quadratmeter", req.AreaSqm),
			fmt.Sprintf("%d Schamottsteine", bricks),
			fmt.Sprintf("Qualitätsstufe: %s", req.Quality),
			"Gartenumgebung, natürliches Licht",
		},
	}
}

// Run validates the input and produces the complete shopping list in one
// step, the shape the HTTP handlers return.
func (c *Calculator) Run(in Requirements) (ShoppingList, error) {
	req, err := c.Validate(in)
	if err != nil {
		return ShoppingList{}, err
	}
	calc := c.Calculate(req)
	return ShoppingList{
		Project:            c.data.Project,
		Quality:            calc.Quality,
		Components:         calc.Components,
		TotalCost:          calc.TotalCost,
		EstimatedBuildTime: buildTimes[calc.Quality],
		ImagePrompt:        c.imagePrompt(req, calc),
	}, nil
}

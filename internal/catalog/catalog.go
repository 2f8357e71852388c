// Package catalog holds the purchasable-material reference data and the
// rule-based quantity calculator built on top of it.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/buildagent/multibuild/internal/domain"
)

//go:embed data/catalog.json
var catalogJSON []byte

// Catalog is the immutable material reference data, loaded once at startup.
type Catalog struct {
	materials []domain.Material
	byID      map[string]*domain.Material
	rules     map[domain.BuildType]domain.CalculationRules
}

type catalogFile struct {
	Materials        []domain.Material                          `json:"materials"`
	CalculationRules map[domain.BuildType]domain.CalculationRules `json:"calculation_rules"`
}

// Load parses the embedded catalog data and validates its invariants.
func Load() (*Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(catalogJSON, &file); err != nil {
		return nil, fmt.Errorf("parsing embedded catalog: %w", err)
	}
	return New(file.Materials, file.CalculationRules)
}

// New builds a Catalog from explicit data, used by Load and by tests.
// Dangling alternative ids are tolerated; a waste factor below 1.0 is not.
func New(materials []domain.Material, rules map[domain.BuildType]domain.CalculationRules) (*Catalog, error) {
	c := &Catalog{
		materials: materials,
		byID:      make(map[string]*domain.Material, len(materials)),
		rules:     rules,
	}
	for i := range c.materials {
		m := &c.materials[i]
		if m.ID == "" {
			return nil, fmt.Errorf("material %q has no id", m.Name)
		}
		if _, dup := c.byID[m.ID]; dup {
			return nil, fmt.Errorf("duplicate material id %q", m.ID)
		}
		c.byID[m.ID] = m
	}
	for bt, r := range rules {
		if r.WasteFactor < 1.0 {
			return nil, fmt.Errorf("build type %s: waste factor %.2f below 1.0", bt, r.WasteFactor)
		}
	}
	return c, nil
}

// ByID returns the material with the given id, or nil.
func (c *Catalog) ByID(id string) *domain.Material {
	return c.byID[id]
}

// Rules returns the calculation rules for a build type.
func (c *Catalog) Rules(b domain.BuildType) (domain.CalculationRules, bool) {
	r, ok := c.rules[b]
	return r, ok
}

// SearchByBuildType returns all materials compatible with the build type.
func (c *Catalog) SearchByBuildType(b domain.BuildType) []domain.Material {
	var out []domain.Material
	for i := range c.materials {
		if c.materials[i].CompatibleWith(b) {
			out = append(out, c.materials[i])
		}
	}
	return out
}

// SearchByCategory returns all materials in the given category.
func (c *Catalog) SearchByCategory(cat domain.MaterialCategory) []domain.Material {
	var out []domain.Material
	for i := range c.materials {
		if c.materials[i].Category == cat {
			out = append(out, c.materials[i])
		}
	}
	return out
}

// Search matches the query against material names, descriptions and
// categories, case-insensitively.
func (c *Catalog) Search(query string) []domain.Material {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []domain.Material
	for i := range c.materials {
		m := &c.materials[i]
		if strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.Description), q) ||
			strings.Contains(string(m.Category), q) {
			out = append(out, *m)
		}
	}
	return out
}

// Alternatives resolves a material's declared alternative ids against the
// catalog. Unresolvable ids are silently dropped.
func (c *Catalog) Alternatives(materialID string) []domain.Material {
	m := c.byID[materialID]
	if m == nil {
		return nil
	}
	var out []domain.Material
	for _, altID := range m.Alternatives {
		if alt := c.byID[altID]; alt != nil {
			out = append(out, *alt)
		}
	}
	return out
}

// Materials returns a copy of all catalog entries.
func (c *Catalog) Materials() []domain.Material {
	out := make([]domain.Material, len(c.materials))
	copy(out, c.materials)
	return out
}

// Stats summarizes the catalog contents.
type Stats struct {
	TotalMaterials int      `json:"total_materials"`
	Categories     []string `json:"categories"`
	BuildTypes     []string `json:"build_types"`
}

// GetStats returns catalog-wide statistics with sorted, deduplicated lists.
func (c *Catalog) GetStats() Stats {
	cats := map[string]bool{}
	builds := map[string]bool{}
	for i := range c.materials {
		cats[string(c.materials[i].Category)] = true
		for _, b := range c.materials[i].Compatibility {
			builds[b] = true
		}
	}
	s := Stats{TotalMaterials: len(c.materials)}
	for k := range cats {
		s.Categories = append(s.Categories, k)
	}
	for k := range builds {
		s.BuildTypes = append(s.BuildTypes, k)
	}
	sort.Strings(s.Categories)
	sort.Strings(s.BuildTypes)
	return s
}

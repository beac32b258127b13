package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/matcalc/internal/matrix"
)

// Preset is a named sample matrix that can stand in for typed input.
type Preset struct {
	Description string      `yaml:"description"`
	Rows        [][]float64 `yaml:"rows"`
}

func (p *Preset) Matrix() (*matrix.Matrix, error) {
	return matrix.FromRows(p.Rows)
}

func (p *Preset) validate() error {
	_, err := p.Matrix()
	return err
}

var Presets = map[string]*Preset{
	"identity2": {
		Description: "2x2 identity",
		Rows:        [][]float64{{1, 0}, {0, 1}},
	},
	"identity3": {
		Description: "3x3 identity",
		Rows:        [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	},
	"small": {
		Description: "2x2, determinant -2",
		Rows:        [][]float64{{1, 2}, {3, 4}},
	},
	"singular": {
		Description: "3x3 with linearly dependent rows",
		Rows:        [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
	},
	"invertible3": {
		Description: "3x3, determinant 49",
		Rows:        [][]float64{{2, -3, 1}, {2, 0, -1}, {1, 4, 5}},
	},
	"wide": {
		Description: "2x3 for multiplication and transposition",
		Rows:        [][]float64{{1, 2, 3}, {4, 5, 6}},
	},
	"tall": {
		Description: "3x2 for multiplication and transposition",
		Rows:        [][]float64{{7, 8}, {9, 10}, {11, 12}},
	},
}

// GetPreset looks name up in the config's own presets first, then in the
// built-in set.
func (c *Config) GetPreset(name string) (*Preset, error) {
	if p, ok := c.Presets[name]; ok {
		return p, nil
	}
	if p, ok := Presets[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, c.ListPresets())
}

// ListPresets returns all preset names, sorted.
func (c *Config) ListPresets() []string {
	seen := make(map[string]bool, len(Presets)+len(c.Presets))
	for name := range Presets {
		seen[name] = true
	}
	for name := range c.Presets {
		seen[name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package combat

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed archetypes.yaml
var defaultArchetypesYAML []byte

// Interval is an inclusive authoring bound for one weapon stat.
type Interval struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether v falls inside the bound.
func (i Interval) Contains(v float64) bool {
	return v >= i.Min && v <= i.Max
}

// Clamp pulls v inside the bound.
func (i Interval) Clamp(v float64) float64 {
	if v < i.Min {
		return i.Min
	}
	if v > i.Max {
		return i.Max
	}
	return v
}

// Archetype is a named weapon preset: authoring bounds for damage, cooldown
// and reach, plus the animation the presentation layer plays on a swing.
type Archetype struct {
	Type       string   `yaml:"type"`
	Animation  string   `yaml:"animation"`
	Damage     Interval `yaml:"damage"`
	CooldownMs Interval `yaml:"cooldown_ms"`
	Range      Interval `yaml:"range"`
}

// ArchetypeTable holds every known weapon type.
type ArchetypeTable struct {
	Archetypes []Archetype `yaml:"archetypes"`
}

// Lookup finds a preset by weapon type name.
func (t *ArchetypeTable) Lookup(weaponType string) (Archetype, bool) {
	for _, arch := range t.Archetypes {
		if arch.Type == weaponType {
			return arch, true
		}
	}
	return Archetype{}, false
}

// Types lists the known weapon type names in table order.
func (t *ArchetypeTable) Types() []string {
	types := make([]string, len(t.Archetypes))
	for i, arch := range t.Archetypes {
		types[i] = arch.Type
	}
	return types
}

// LoadArchetypes parses the embedded preset table, then merges the yaml file
// at path over it when path is non-empty.
func LoadArchetypes(path string) (*ArchetypeTable, error) {
	table := &ArchetypeTable{}
	if err := yaml.Unmarshal(defaultArchetypesYAML, table); err != nil {
		return nil, fmt.Errorf("parsing embedded archetypes: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading archetypes file: %w", err)
		}
		override := &ArchetypeTable{}
		if err := yaml.Unmarshal(data, override); err != nil {
			return nil, fmt.Errorf("parsing archetypes file: %w", err)
		}
		if len(override.Archetypes) > 0 {
			table.Archetypes = override.Archetypes
		}
	}

	return table, nil
}

// DefaultArchetypes returns the embedded preset table.
func DefaultArchetypes() *ArchetypeTable {
	table, err := LoadArchetypes("")
	if err != nil {
		// The embedded table is authored with the binary; failing to parse
		// it is a build defect, not a runtime condition.
		panic(err)
	}
	return table
}

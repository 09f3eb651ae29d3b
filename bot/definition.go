// Package bot holds the authoring-side data model: what a bot is made of,
// how definitions are loaded from disk, and the validation the engine relies
// on having been done before a match starts.
package bot

import (
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// Definition describes one combatant. The engine treats it as immutable and
// pre-validated; run Validate or Clamp before handing it to a match.
type Definition struct {
	Name     string       `yaml:"name"`
	Shape    string       `yaml:"shape"`
	Size     float64      `yaml:"size"`
	Speed    float64      `yaml:"speed"`
	Armor    float64      `yaml:"armor"`
	Weapon   WeaponConfig `yaml:"weapon"`
	Behavior string       `yaml:"behavior,omitempty"`

	// BehaviorFile points at a script on disk, resolved relative to the
	// definition file; LoadFile inlines it into Behavior.
	BehaviorFile string `yaml:"behavior_file,omitempty"`
}

type WeaponConfig struct {
	Type       string  `yaml:"type"`
	Damage     float64 `yaml:"damage"`
	CooldownMs float64 `yaml:"cooldown_ms"`
	Range      float64 `yaml:"range"`
}

// LoadFile reads a bot definition yaml, inlining the behavior script when the
// file references one instead of embedding it.
func LoadFile(path string) (Definition, error) {
	var def Definition

	data, err := os.ReadFile(path)
	if err != nil {
		return def, fmt.Errorf("reading bot definition: %w", err)
	}

	if err := yaml.Unmarshal(data, &def); err != nil {
		return def, fmt.Errorf("parsing bot definition %s: %w", path, err)
	}

	if def.Behavior == "" && def.BehaviorFile != "" {
		scriptpath := def.BehaviorFile
		if !filepath.IsAbs(scriptpath) {
			scriptpath = filepath.Join(filepath.Dir(path), scriptpath)
		}

		script, err := os.ReadFile(scriptpath)
		if err != nil {
			return def, fmt.Errorf("reading behavior script for %s: %w", def.Name, err)
		}
		def.Behavior = string(script)
	}

	return def, nil
}

package bot

import (
	"fmt"
	"strings"

	"github.com/LazyCat420/battle-bots/combat"
)

var (
	speedBounds = combat.Interval{Min: 1, Max: 10}
	armorBounds = combat.Interval{Min: 1, Max: 10}
	sizeBounds  = combat.Interval{Min: 0.5, Max: 3}

	// Hard stat ceilings; individual archetypes narrow these further.
	damageBounds   = combat.Interval{Min: 1, Max: 10}
	cooldownBounds = combat.Interval{Min: 200, Max: 2000}
	rangeBounds    = combat.Interval{Min: 20, Max: 120}
)

var knownShapes = []string{"box", "sphere", "cylinder", "capsule"}

func shapeKnown(shape string) bool {
	for _, s := range knownShapes {
		if s == shape {
			return true
		}
	}
	return false
}

// Validate checks a definition against the archetype table and reports the
// first violation. A definition that passes needs no further checks at match
// time.
func Validate(def Definition, table *combat.ArchetypeTable) error {
	if def.Name == "" {
		return fmt.Errorf("bot has no name")
	}

	if !shapeKnown(def.Shape) {
		return fmt.Errorf("%s: unknown shape %q (one of %s)", def.Name, def.Shape, strings.Join(knownShapes, ", "))
	}

	if !sizeBounds.Contains(def.Size) {
		return fmt.Errorf("%s: size %v outside [%v, %v]", def.Name, def.Size, sizeBounds.Min, sizeBounds.Max)
	}

	if !speedBounds.Contains(def.Speed) {
		return fmt.Errorf("%s: speed %v outside [%v, %v]", def.Name, def.Speed, speedBounds.Min, speedBounds.Max)
	}

	if !armorBounds.Contains(def.Armor) {
		return fmt.Errorf("%s: armor %v outside [%v, %v]", def.Name, def.Armor, armorBounds.Min, armorBounds.Max)
	}

	arch, ok := table.Lookup(def.Weapon.Type)
	if !ok {
		return fmt.Errorf("%s: unknown weapon type %q (one of %s)", def.Name, def.Weapon.Type, strings.Join(table.Types(), ", "))
	}

	if !arch.Damage.Contains(def.Weapon.Damage) {
		return fmt.Errorf("%s: %s damage %v outside [%v, %v]", def.Name, arch.Type, def.Weapon.Damage, arch.Damage.Min, arch.Damage.Max)
	}

	if !arch.CooldownMs.Contains(def.Weapon.CooldownMs) {
		return fmt.Errorf("%s: %s cooldown %vms outside [%v, %v]", def.Name, arch.Type, def.Weapon.CooldownMs, arch.CooldownMs.Min, arch.CooldownMs.Max)
	}

	if !arch.Range.Contains(def.Weapon.Range) {
		return fmt.Errorf("%s: %s range %v outside [%v, %v]", def.Name, arch.Type, def.Weapon.Range, arch.Range.Min, arch.Range.Max)
	}

	if def.Behavior == "" {
		return fmt.Errorf("%s: no behavior script", def.Name)
	}

	return nil
}

// Clamp returns a copy with every stat forced into its legal interval. It
// cannot repair an unknown shape or weapon type; pair it with Validate when
// those matter.
func Clamp(def Definition, table *combat.ArchetypeTable) Definition {
	out := def

	if out.Size == 0 {
		out.Size = 1
	}
	out.Size = sizeBounds.Clamp(out.Size)
	out.Speed = speedBounds.Clamp(out.Speed)
	out.Armor = armorBounds.Clamp(out.Armor)

	if arch, ok := table.Lookup(out.Weapon.Type); ok {
		out.Weapon.Damage = arch.Damage.Clamp(out.Weapon.Damage)
		out.Weapon.CooldownMs = arch.CooldownMs.Clamp(out.Weapon.CooldownMs)
		out.Weapon.Range = arch.Range.Clamp(out.Weapon.Range)
	} else {
		out.Weapon.Damage = damageBounds.Clamp(out.Weapon.Damage)
		out.Weapon.CooldownMs = cooldownBounds.Clamp(out.Weapon.CooldownMs)
		out.Weapon.Range = rangeBounds.Clamp(out.Weapon.Range)
	}

	return out
}

// internal/defs/types.go
package defs

import "gridkeep/internal/power"

// BuildingType is the category key for a building definition. Every node
// resolves its definition exactly once, at creation time.
type BuildingType string

const (
	BuildingReactor    BuildingType = "REACTOR"
	BuildingSolarArray BuildingType = "SOLAR_ARRAY"
	BuildingBattery    BuildingType = "BATTERY"
	BuildingRelay      BuildingType = "RELAY"
	BuildingTurret     BuildingType = "TURRET"
	BuildingDrill      BuildingType = "DRILL"
	BuildingWall       BuildingType = "WALL"
)

// ConnectionStats bounds a building's participation in the power network.
type ConnectionStats struct {
	Radius      float64 `mapstructure:"radius" validate:"gte=0"`
	MaxLinks    int     `mapstructure:"max_links" validate:"gte=0"`
	BridgeSame  int     `mapstructure:"bridge_same" validate:"gte=0"`
	BridgeOther int     `mapstructure:"bridge_other" validate:"gte=0"`
}

// EnergyStats describes a building's energy profile at level 1.
type EnergyStats struct {
	Generation   float64 `mapstructure:"generation" validate:"gte=0"`
	Capacity     float64 `mapstructure:"capacity" validate:"gte=0"`
	PowerCapable bool    `mapstructure:"power_capable"`
}

// LevelBonus holds the multiplicative stat bonuses and costs of one
// upgrade step. Multipliers compound across levels and land only when the
// upgrade's construction completes.
type LevelBonus struct {
	MaxHealthMult  float64 `mapstructure:"max_health_mult" validate:"gt=0"`
	GenerationMult float64 `mapstructure:"generation_mult" validate:"gt=0"`
	CapacityMult   float64 `mapstructure:"capacity_mult" validate:"gt=0"`
	UpgradeCost    float64 `mapstructure:"upgrade_cost" validate:"gte=0"`
	UpgradeEnergy  float64 `mapstructure:"upgrade_energy" validate:"gte=0"`
}

// BuildingDefinition holds all static data for one building type.
type BuildingDefinition struct {
	Type         BuildingType    `mapstructure:"type" validate:"required"`
	Name         string          `mapstructure:"name" validate:"required"`
	Category     power.Category  `mapstructure:"category" validate:"required,oneof=GENERATOR STORAGE BRIDGE SINGLE OTHER"`
	Cost         float64         `mapstructure:"cost" validate:"gte=0"`
	BuildEnergy  float64         `mapstructure:"build_energy" validate:"gte=0"`
	MaxBuildRate float64         `mapstructure:"max_build_rate" validate:"gte=0"`
	MaxHealth    float64         `mapstructure:"max_health" validate:"gt=0"`
	Footprint    float64         `mapstructure:"footprint" validate:"gt=0"`
	ResourceRate float64         `mapstructure:"resource_rate" validate:"gte=0"`
	Connection   ConnectionStats `mapstructure:"connection"`
	Energy       EnergyStats     `mapstructure:"energy"`
	Levels       []LevelBonus    `mapstructure:"levels" validate:"dive"`
}

// MaxLevel returns the highest level this building can reach.
func (d BuildingDefinition) MaxLevel() int {
	return 1 + len(d.Levels)
}

// BonusFor returns the upgrade step that takes the building from
// level-1 to level. Level 2 is Levels[0].
func (d BuildingDefinition) BonusFor(level int) (LevelBonus, bool) {
	idx := level - 2
	if idx < 0 || idx >= len(d.Levels) {
		return LevelBonus{}, false
	}
	return d.Levels[idx], true
}

// StatsAt returns max health, generation and capacity with all bonuses up
// to and including level applied.
func (d BuildingDefinition) StatsAt(level int) (maxHealth, generation, capacity float64) {
	maxHealth = d.MaxHealth
	generation = d.Energy.Generation
	capacity = d.Energy.Capacity
	for lvl := 2; lvl <= level; lvl++ {
		bonus, ok := d.BonusFor(lvl)
		if !ok {
			break
		}
		maxHealth *= bonus.MaxHealthMult
		generation *= bonus.GenerationMult
		capacity *= bonus.CapacityMult
	}
	return maxHealth, generation, capacity
}

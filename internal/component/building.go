// internal/component/building.go
package component

import "gridkeep/internal/defs"

// BuildingState is the operational state of a building. Damaged/unpowered
// looks are presentation overlays derived from health and power queries,
// not distinct states.
type BuildingState int

const (
	StateUnderConstruction BuildingState = iota
	StateOperational
	StateDestroyed
)

func (s BuildingState) String() string {
	switch s {
	case StateUnderConstruction:
		return "UnderConstruction"
	case StateOperational:
		return "Operational"
	case StateDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// Building is the lifecycle component of a placed node.
type Building struct {
	Type      defs.BuildingType
	Level     int
	State     BuildingState
	Disabled  bool
	Upgrading bool // the current construction is an upgrade, not the initial build
}

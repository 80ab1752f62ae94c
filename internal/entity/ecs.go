// internal/entity/ecs.go
package entity

import (
	"gridkeep/internal/component"
	"gridkeep/internal/types"
)

// ECS is the component store for all simulation entities. The simulation
// root owns it exclusively; collaborators only read through query methods.
type ECS struct {
	GameTime      float64
	NextID        types.NodeID
	Positions     map[types.NodeID]*component.Position
	Healths       map[types.NodeID]*component.Health
	Buildings     map[types.NodeID]*component.Building
	Constructions map[types.NodeID]*component.Construction
}

func NewECS() *ECS {
	return &ECS{
		NextID:        1,
		Positions:     make(map[types.NodeID]*component.Position),
		Healths:       make(map[types.NodeID]*component.Health),
		Buildings:     make(map[types.NodeID]*component.Building),
		Constructions: make(map[types.NodeID]*component.Construction),
	}
}

func (ecs *ECS) NewEntity() types.NodeID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

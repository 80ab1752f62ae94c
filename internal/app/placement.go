// internal/app/placement.go
package app

import (
	"gridkeep/internal/component"
	"gridkeep/internal/config"
	"gridkeep/internal/defs"
	"gridkeep/internal/event"
	"gridkeep/internal/power"
	"gridkeep/internal/types"
	"gridkeep/pkg/geom"
)

// PlaceNode validates and executes a placement command. The lump resource
// cost is deducted atomically before validation of the site and refunded
// in full when the site is rejected.
func (g *Game) PlaceNode(buildingType defs.BuildingType, x, y float64) (types.NodeID, error) {
	def, ok := defs.Library[buildingType]
	if !ok {
		return 0, &ValidationError{Reason: ReasonUnknownType}
	}
	if g.resources < def.Cost {
		return 0, &ValidationError{Reason: ReasonUnaffordable}
	}
	g.resources -= def.Cost

	if err := g.validateSite(def, x, y); err != nil {
		g.resources += def.Cost
		return 0, err
	}

	id := g.createNode(def, x, y)
	g.Graph.AutoConnect(id)

	if def.BuildEnergy <= 0 {
		// Nothing to draw; the build completes instantly.
		g.finishNode(id)
	}
	g.recompute()

	g.EventDispatcher.Dispatch(event.Event{Type: event.NodePlaced, Data: id})
	return id, nil
}

func (g *Game) validateSite(def defs.BuildingDefinition, x, y float64) error {
	bounds := geom.Rect{
		MinX: config.WorldMinX, MinY: config.WorldMinY,
		MaxX: config.WorldMaxX, MaxY: config.WorldMaxY,
	}
	pos := geom.Vec2{X: x, Y: y}
	if !bounds.Contains(pos) {
		return &ValidationError{Reason: ReasonOutOfBounds}
	}
	for otherID, building := range g.ECS.Buildings {
		if building.State == component.StateDestroyed {
			continue
		}
		otherPos := g.ECS.Positions[otherID]
		otherDef := defs.Library[building.Type]
		clearance := (def.Footprint + otherDef.Footprint) * config.PlacementClearanceFactor
		if geom.Dist(pos, geom.Vec2{X: otherPos.X, Y: otherPos.Y}) < clearance {
			return &ValidationError{Reason: ReasonOverlap}
		}
	}
	return nil
}

// createNode builds the entity, graph node and ledger registration for a
// fresh, under-construction node.
func (g *Game) createNode(def defs.BuildingDefinition, x, y float64) types.NodeID {
	id := g.ECS.NewEntity()
	g.ECS.Positions[id] = &component.Position{X: x, Y: y}
	g.ECS.Healths[id] = &component.Health{Current: def.MaxHealth, Max: def.MaxHealth}
	g.ECS.Buildings[id] = &component.Building{
		Type:  def.Type,
		Level: 1,
		State: component.StateUnderConstruction,
	}
	g.ECS.Constructions[id] = &component.Construction{
		Meter: power.NewMeter(def.BuildEnergy, def.MaxBuildRate, config.ConstructionDrawInterval),
	}

	g.Graph.AddNode(power.NodeSpec{
		ID:       id,
		Pos:      geom.Vec2{X: x, Y: y},
		Range:    def.Connection.Radius,
		Category: def.Category,
		Limits: power.ConnLimits{
			Total:       def.Connection.MaxLinks,
			BridgeSame:  def.Connection.BridgeSame,
			BridgeOther: def.Connection.BridgeOther,
		},
	})
	g.Ledger.Register(id, power.Profile{
		Generation:   def.Energy.Generation,
		Capacity:     def.Energy.Capacity,
		SelfPowered:  def.Category.SelfPowering(),
		PowerCapable: def.Energy.PowerCapable,
	})
	return id
}

// Recycle tears a node down from any state except Destroyed and returns
// the refund credited to the wallet: a fixed fraction of the nominal build
// cost plus, while still under construction, a fraction of the unconsumed
// construction energy.
func (g *Game) Recycle(id types.NodeID) (float64, error) {
	building, ok := g.ECS.Buildings[id]
	if !ok {
		return 0, &ValidationError{Reason: ReasonUnknownNode}
	}
	if building.State == component.StateDestroyed {
		return 0, &ValidationError{Reason: ReasonInvalidState}
	}
	def := defs.Library[building.Type]

	refund := def.Cost * config.RecycleRefundFraction
	if cons, underConstruction := g.ECS.Constructions[id]; underConstruction {
		refund += cons.Meter.Remaining() * config.RecycleEnergyRefundFraction
	}
	g.resources += refund

	g.removeNode(id)
	g.recompute()
	g.EventDispatcher.Dispatch(event.Event{Type: event.NodeRemoved, Data: id})
	return refund, nil
}

// removeNode deletes every trace of a node: components, graph edges,
// ledger registration.
func (g *Game) removeNode(id types.NodeID) {
	g.Graph.RemoveNode(id)
	g.Ledger.Unregister(id)
	delete(g.ECS.Positions, id)
	delete(g.ECS.Healths, id)
	delete(g.ECS.Buildings, id)
	delete(g.ECS.Constructions, id)
}

// Upgrade re-enters construction for an operational node. The level bump
// is optimistic; the stat bonuses land only when the upgrade's energy draw
// completes. Returns the lump cost deducted.
func (g *Game) Upgrade(id types.NodeID) (float64, error) {
	building, ok := g.ECS.Buildings[id]
	if !ok {
		return 0, &ValidationError{Reason: ReasonUnknownNode}
	}
	if building.State != component.StateOperational {
		return 0, &ValidationError{Reason: ReasonInvalidState}
	}
	def := defs.Library[building.Type]
	bonus, ok := def.BonusFor(building.Level + 1)
	if !ok {
		return 0, &ValidationError{Reason: ReasonMaxLevel}
	}
	if g.resources < bonus.UpgradeCost {
		return 0, &ValidationError{Reason: ReasonUnaffordable}
	}
	g.resources -= bonus.UpgradeCost

	building.Level++
	building.State = component.StateUnderConstruction
	building.Upgrading = true
	g.ECS.Constructions[id] = &component.Construction{
		Meter: power.NewMeter(bonus.UpgradeEnergy, def.MaxBuildRate, config.ConstructionDrawInterval),
	}

	// The node leaves its segment until the upgrade completes; it draws
	// the upgrade energy through its neighbors.
	g.Ledger.SetOperational(id, false)
	g.recompute()
	return bonus.UpgradeCost, nil
}

// SetDisabled flips the manual disable flag. A disabled node pauses any
// construction and drops out of segment membership on the recompute below;
// re-enabling restores eligibility.
func (g *Game) SetDisabled(id types.NodeID, disabled bool) error {
	building, ok := g.ECS.Buildings[id]
	if !ok {
		return &ValidationError{Reason: ReasonUnknownNode}
	}
	if building.State == component.StateDestroyed {
		return &ValidationError{Reason: ReasonInvalidState}
	}
	if building.Disabled == disabled {
		return nil
	}
	building.Disabled = disabled
	g.Ledger.SetDisabled(id, disabled)
	g.recompute()
	return nil
}

// Connect requests a manual edge between two nodes, subject to the same
// eligibility rules as auto-connect.
func (g *Game) Connect(a, b types.NodeID) bool {
	if !g.Graph.Connect(a, b) {
		return false
	}
	g.recompute()
	return true
}

// Disconnect removes a manual or automatic edge.
func (g *Game) Disconnect(a, b types.NodeID) {
	g.Graph.Disconnect(a, b)
	g.recompute()
}

// internal/app/lifecycle.go
package app

import (
	"gridkeep/internal/component"
	"gridkeep/internal/config"
	"gridkeep/internal/defs"
	"gridkeep/internal/event"
	"gridkeep/internal/power"
	"gridkeep/internal/types"
)

// updateBuildings runs the per-building phase of the tick. No single
// building's state may abort the pass; a building with missing components
// is simply skipped until the next recompute cleans it up.
func (g *Game) updateBuildings(dt float64) {
	for _, id := range g.buildingIDs() {
		building := g.ECS.Buildings[id]
		switch building.State {
		case component.StateUnderConstruction:
			g.updateConstruction(id, building, dt)
		case component.StateOperational:
			g.updateOperational(id, building, dt)
		}
	}
}

// updateConstruction advances a build or upgrade. The disable flag and
// zero health pause the draw without a state change; progress resumes from
// where it stopped once the guard clears.
func (g *Game) updateConstruction(id types.NodeID, building *component.Building, dt float64) {
	cons, ok := g.ECS.Constructions[id]
	if !ok {
		return
	}
	if cons.NoticeCooldown > 0 {
		cons.NoticeCooldown -= dt
	}
	if building.Disabled {
		return
	}
	if health, ok := g.ECS.Healths[id]; ok && health.Current <= 0 {
		return
	}

	segID, found := g.Ledger.DrawSegment(g.Graph, id)
	done, starved := cons.Meter.Advance(dt, func(amount float64) bool {
		if !found {
			return false
		}
		return g.Ledger.Consume(segID, amount)
	})
	if starved && cons.NoticeCooldown <= 0 {
		cons.NoticeCooldown = config.EnergyShortageNoticePeriod
		g.EventDispatcher.Dispatch(event.Event{Type: event.EnergyShortage, Data: id})
	}
	if done {
		g.completeConstruction(id, building)
	}
}

// updateOperational runs the power-gated operational behavior the core
// owns: producers credit the wallet while powered. Combat and other
// collaborator behaviors read the same power query externally.
func (g *Game) updateOperational(id types.NodeID, building *component.Building, dt float64) {
	if building.Disabled {
		return
	}
	def := defs.Library[building.Type]
	if def.ResourceRate > 0 && g.Ledger.IsPowered(id) {
		g.resources += def.ResourceRate * dt
	}
}

// completeConstruction finalizes a build or upgrade: stat bonuses land,
// the node becomes a full segment member, and the segment set is rebuilt.
func (g *Game) completeConstruction(id types.NodeID, building *component.Building) {
	def := defs.Library[building.Type]
	wasUpgrade := building.Upgrading

	if wasUpgrade {
		maxHealth, generation, capacity := def.StatsAt(building.Level)
		if health, ok := g.ECS.Healths[id]; ok {
			ratio := health.Ratio()
			health.Max = maxHealth
			health.Current = ratio * maxHealth
		}
		g.Ledger.UpdateProfile(id, power.Profile{
			Generation:   generation,
			Capacity:     capacity,
			SelfPowered:  def.Category.SelfPowering(),
			PowerCapable: def.Energy.PowerCapable,
		})
	}

	building.State = component.StateOperational
	building.Upgrading = false
	delete(g.ECS.Constructions, id)
	g.Ledger.SetOperational(id, true)
	g.recompute()

	if wasUpgrade {
		g.EventDispatcher.Dispatch(event.Event{Type: event.UpgradeCompleted, Data: id})
	} else {
		g.EventDispatcher.Dispatch(event.Event{Type: event.ConstructionCompleted, Data: id})
	}
}

// finishNode completes a zero-energy build in place, without a recompute;
// the caller recomputes.
func (g *Game) finishNode(id types.NodeID) {
	building := g.ECS.Buildings[id]
	building.State = component.StateOperational
	delete(g.ECS.Constructions, id)
	g.Ledger.SetOperational(id, true)
	g.EventDispatcher.Dispatch(event.Event{Type: event.ConstructionCompleted, Data: id})
}

// ApplyDamage lowers a node's health. An operational node destroyed this
// way loses its edges immediately and never comes back; a node under
// construction merely pauses until repaired.
func (g *Game) ApplyDamage(id types.NodeID, amount float64) {
	building, ok := g.ECS.Buildings[id]
	if !ok || building.State == component.StateDestroyed {
		return
	}
	health, ok := g.ECS.Healths[id]
	if !ok {
		return
	}
	health.Current -= amount
	if health.Current < 0 {
		health.Current = 0
	}
	if health.Current == 0 && building.State == component.StateOperational {
		g.destroyNode(id, building)
	}
}

// Repair restores health, clamped to max. A paused construction resumes on
// its own once health is above zero again.
func (g *Game) Repair(id types.NodeID, amount float64) {
	building, ok := g.ECS.Buildings[id]
	if !ok || building.State == component.StateDestroyed {
		return
	}
	if health, ok := g.ECS.Healths[id]; ok {
		health.Current += amount
		if health.Current > health.Max {
			health.Current = health.Max
		}
	}
}

// destroyNode is the irreversible Operational -> Destroyed transition.
// The wreck keeps its components for the renderer but leaves the graph and
// the ledger entirely.
func (g *Game) destroyNode(id types.NodeID, building *component.Building) {
	building.State = component.StateDestroyed
	g.Graph.RemoveNode(id)
	g.Ledger.Unregister(id)
	delete(g.ECS.Constructions, id)
	g.recompute()
	g.EventDispatcher.Dispatch(event.Event{Type: event.NodeDestroyed, Data: id})
}

// internal/app/queries.go
package app

import (
	"math"

	"gridkeep/internal/component"
	"gridkeep/internal/power"
	"gridkeep/internal/types"
)

// Line is one connection for the renderer, purely positional.
type Line struct {
	X1, Y1, X2, Y2 float64
}

// IsPowered reports whether a node is powered right now.
func (g *Game) IsPowered(id types.NodeID) bool {
	return g.Ledger.IsPowered(id)
}

// SegmentStats returns the accounting snapshot of one segment.
func (g *Game) SegmentStats(id power.SegmentID) (power.SegmentStats, bool) {
	return g.Ledger.Stats(id)
}

// SegmentOf returns the segment a node is a member of.
func (g *Game) SegmentOf(id types.NodeID) (power.SegmentID, bool) {
	return g.Ledger.SegmentOf(id)
}

// Connections snapshots every edge as a positional line for drawing.
func (g *Game) Connections() []Line {
	edges := g.Graph.Edges()
	lines := make([]Line, 0, len(edges))
	for _, edge := range edges {
		p1, ok1 := g.ECS.Positions[edge[0]]
		p2, ok2 := g.ECS.Positions[edge[1]]
		if !ok1 || !ok2 {
			continue
		}
		lines = append(lines, Line{X1: p1.X, Y1: p1.Y, X2: p2.X, Y2: p2.Y})
	}
	return lines
}

// NodeState returns a building's lifecycle state.
func (g *Game) NodeState(id types.NodeID) (component.BuildingState, bool) {
	building, ok := g.ECS.Buildings[id]
	if !ok {
		return 0, false
	}
	return building.State, true
}

// Building returns a copy of a building component for read-only use.
func (g *Game) Building(id types.NodeID) (component.Building, bool) {
	building, ok := g.ECS.Buildings[id]
	if !ok {
		return component.Building{}, false
	}
	return *building, true
}

// Health returns a copy of a node's health.
func (g *Game) Health(id types.NodeID) (component.Health, bool) {
	health, ok := g.ECS.Healths[id]
	if !ok {
		return component.Health{}, false
	}
	return *health, true
}

// Progress returns construction progress in [0,1]. Operational and
// destroyed nodes report 1 and 0 respectively.
func (g *Game) Progress(id types.NodeID) float64 {
	if cons, ok := g.ECS.Constructions[id]; ok {
		return cons.Meter.Progress()
	}
	building, ok := g.ECS.Buildings[id]
	if !ok || building.State == component.StateDestroyed {
		return 0
	}
	return 1
}

// NodeAt returns the nearest non-destroyed node within maxDist of (x,y),
// for cursor picking in the front-end.
func (g *Game) NodeAt(x, y, maxDist float64) (types.NodeID, bool) {
	best := types.NodeID(0)
	bestDist := math.Inf(1)
	for _, id := range g.buildingIDs() {
		if g.ECS.Buildings[id].State == component.StateDestroyed {
			continue
		}
		pos := g.ECS.Positions[id]
		d := math.Hypot(pos.X-x, pos.Y-y)
		if d <= maxDist && d < bestDist {
			best = id
			bestDist = d
		}
	}
	return best, best != 0
}

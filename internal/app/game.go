// internal/app/game.go
package app

import (
	"sort"

	"gridkeep/internal/config"
	"gridkeep/internal/defs"
	"gridkeep/internal/entity"
	"gridkeep/internal/event"
	"gridkeep/internal/power"
	"gridkeep/internal/types"
	"gridkeep/internal/utils"
)

// Game is the simulation root. It exclusively owns the component store,
// the network graph, the power ledger and the resource wallet; external
// collaborators mutate state only through its command methods and read it
// through its query methods.
type Game struct {
	ECS             *entity.ECS
	Graph           *power.Graph
	Ledger          *power.Ledger
	EventDispatcher *event.Dispatcher
	Rng             *utils.PRNGService

	resources    float64
	gameTime     float64
	healingTimer float64
}

// NewGame initializes a simulation with the starting wallet and a free,
// already-operational reactor at the origin so the first builds have a
// grid to draw from. defs.Load must have run first.
func NewGame(seed int64) *Game {
	g := &Game{
		ECS:             entity.NewECS(),
		Graph:           power.NewGraph(),
		Ledger:          power.NewLedger(),
		EventDispatcher: event.NewDispatcher(),
		Rng:             utils.NewPRNGService(seed),
		resources:       config.StartingResources,
	}
	g.seedInitialReactor()
	return g
}

func (g *Game) seedInitialReactor() {
	def, ok := defs.Library[defs.BuildingReactor]
	if !ok {
		return
	}
	id := g.createNode(def, 0, 0)
	g.finishNode(id)
	g.recompute()
}

// Update advances the simulation by dt seconds. Command methods are
// synchronous and run between ticks; within a tick the order is fixed:
// healing pass, generation, building updates. After Update returns the
// state is stable for external readers.
func (g *Game) Update(dt float64) {
	if dt <= 0 {
		return
	}
	if dt > config.MaxDeltaTime {
		dt = config.MaxDeltaTime
	}
	g.gameTime += dt
	g.ECS.GameTime = g.gameTime

	g.healingTimer += dt
	if g.healingTimer >= config.HealingInterval {
		g.healingTimer -= config.HealingInterval
		g.Graph.Heal()
		g.recompute()
	}

	g.Ledger.Generate(dt)
	g.updateBuildings(dt)
}

// recompute rebuilds segments from the current graph and node state. Every
// structural command calls this immediately after mutating the graph.
func (g *Game) recompute() {
	g.Ledger.Recompute(g.Graph)
	g.EventDispatcher.Dispatch(event.Event{Type: event.NetworkRecomputed})
}

// buildingIDs returns building entity IDs in ascending order so per-tick
// iteration is deterministic.
func (g *Game) buildingIDs() []types.NodeID {
	ids := make([]types.NodeID, 0, len(g.ECS.Buildings))
	for id := range g.ECS.Buildings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Resources returns the current wallet balance.
func (g *Game) Resources() float64 {
	return g.resources
}

// GameTime returns the accumulated simulated seconds.
func (g *Game) GameTime() float64 {
	return g.gameTime
}

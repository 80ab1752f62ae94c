// internal/power/graph.go
package power

import (
	"sort"

	"gridkeep/internal/types"
	"gridkeep/pkg/geom"
)

// ConnLimits bounds how many edges a node may carry. Total of zero means
// the category default is the only bound. Bridge nodes additionally cap
// same-category and other-category links separately.
type ConnLimits struct {
	Total       int
	BridgeSame  int
	BridgeOther int
}

// NodeSpec is the connection-relevant description of a node. The graph
// stores a copy; position, range and caps are fixed for the node's lifetime.
type NodeSpec struct {
	ID       types.NodeID
	Pos      geom.Vec2
	Range    float64
	Category Category
	Limits   ConnLimits
}

// Graph holds the adjacency state of the power network and enforces the
// connection-eligibility rules. It knows nothing about energy or building
// state; the ledger layers that on top.
type Graph struct {
	nodes map[types.NodeID]NodeSpec
	adj   map[types.NodeID]map[types.NodeID]struct{}
	order []types.NodeID
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[types.NodeID]NodeSpec),
		adj:   make(map[types.NodeID]map[types.NodeID]struct{}),
	}
}

// AddNode inserts a node with no edges. Re-adding an existing ID is a no-op.
func (g *Graph) AddNode(spec NodeSpec) {
	if _, exists := g.nodes[spec.ID]; exists {
		return
	}
	g.nodes[spec.ID] = spec
	g.adj[spec.ID] = make(map[types.NodeID]struct{})
	g.order = append(g.order, spec.ID)
}

// RemoveNode deletes a node and cascades removal of all its edges.
func (g *Graph) RemoveNode(id types.NodeID) {
	if _, exists := g.nodes[id]; !exists {
		return
	}
	for neighbor := range g.adj[id] {
		delete(g.adj[neighbor], id)
	}
	delete(g.adj, id)
	delete(g.nodes, id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// Has reports whether id is in the graph.
func (g *Graph) Has(id types.NodeID) bool {
	_, exists := g.nodes[id]
	return exists
}

// Node returns the stored spec for id.
func (g *Graph) Node(id types.NodeID) (NodeSpec, bool) {
	spec, exists := g.nodes[id]
	return spec, exists
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Degree returns the current number of edges on id.
func (g *Graph) Degree(id types.NodeID) int {
	return len(g.adj[id])
}

// Connected reports whether an edge (a,b) exists.
func (g *Graph) Connected(a, b types.NodeID) bool {
	_, exists := g.adj[a][b]
	return exists
}

// Neighbors returns the neighbor IDs of id in ascending order.
func (g *Graph) Neighbors(id types.NodeID) []types.NodeID {
	set, exists := g.adj[id]
	if !exists {
		return nil
	}
	out := make([]types.NodeID, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// bridgeDegrees splits a node's edge count into bridge-peer and other-peer
// links, for the separate bridge caps.
func (g *Graph) bridgeDegrees(id types.NodeID) (same, other int) {
	for n := range g.adj[id] {
		if g.nodes[n].Category == CategoryBridge {
			same++
		} else {
			other++
		}
	}
	return same, other
}

// capAllows checks whether node n has spare link capacity toward a peer of
// the given category.
func (g *Graph) capAllows(n NodeSpec, peer Category) bool {
	deg := len(g.adj[n.ID])
	switch n.Category {
	case CategorySingle:
		// Single-connection nodes carry exactly one edge, whatever the
		// configured limits say.
		return deg == 0
	case CategoryBridge:
		if n.Limits.Total > 0 && deg >= n.Limits.Total {
			return false
		}
		same, other := g.bridgeDegrees(n.ID)
		if peer == CategoryBridge {
			return n.Limits.BridgeSame <= 0 || same < n.Limits.BridgeSame
		}
		return n.Limits.BridgeOther <= 0 || other < n.Limits.BridgeOther
	default:
		return n.Limits.Total <= 0 || deg < n.Limits.Total
	}
}

// CanConnect reports whether an edge (a,b) would satisfy the eligibility
// rules: both endpoints exist, are distinct and unconnected, lie within
// min(rangeA, rangeB) of each other, and both have spare link capacity.
func (g *Graph) CanConnect(a, b types.NodeID) bool {
	if a == b {
		return false
	}
	na, okA := g.nodes[a]
	nb, okB := g.nodes[b]
	if !okA || !okB {
		return false
	}
	if g.Connected(a, b) {
		return false
	}
	reach := na.Range
	if nb.Range < reach {
		reach = nb.Range
	}
	if geom.Dist(na.Pos, nb.Pos) > reach {
		return false
	}
	return g.capAllows(na, nb.Category) && g.capAllows(nb, na.Category)
}

// Connect creates the edge (a,b) if it is eligible. Returns whether the
// edge now exists because of this call.
func (g *Graph) Connect(a, b types.NodeID) bool {
	if !g.CanConnect(a, b) {
		return false
	}
	g.adj[a][b] = struct{}{}
	g.adj[b][a] = struct{}{}
	return true
}

// Disconnect removes the edge (a,b) if present.
func (g *Graph) Disconnect(a, b types.NodeID) {
	delete(g.adj[a], b)
	delete(g.adj[b], a)
}

// AutoConnect greedily links id to eligible nodes in range, nearest first.
// Ties are broken by node ID, which follows insertion order. Returns the
// number of edges created.
func (g *Graph) AutoConnect(id types.NodeID) int {
	node, exists := g.nodes[id]
	if !exists {
		return 0
	}

	type candidate struct {
		id   types.NodeID
		dist float64
	}
	var candidates []candidate
	for otherID, other := range g.nodes {
		if otherID == id {
			continue
		}
		reach := node.Range
		if other.Range < reach {
			reach = other.Range
		}
		if d := geom.Dist(node.Pos, other.Pos); d <= reach {
			candidates = append(candidates, candidate{otherID, d})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].id < candidates[j].id
	})

	made := 0
	for _, c := range candidates {
		if g.Connect(id, c.id) {
			made++
		}
	}
	return made
}

// Heal re-runs AutoConnect over every node in insertion order. The pass is
// idempotent: a second run with no intervening change creates no edges. It
// repairs connections missed earlier because of ordering effects or
// removals.
func (g *Graph) Heal() int {
	made := 0
	for _, id := range g.order {
		made += g.AutoConnect(id)
	}
	return made
}

// Edges returns every edge exactly once as ordered pairs (low ID first),
// sorted, for deterministic snapshots.
func (g *Graph) Edges() [][2]types.NodeID {
	var edges [][2]types.NodeID
	for a, set := range g.adj {
		for b := range set {
			if a < b {
				edges = append(edges, [2]types.NodeID{a, b})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	return edges
}

// NodeIDs returns all node IDs in insertion order.
func (g *Graph) NodeIDs() []types.NodeID {
	out := make([]types.NodeID, len(g.order))
	copy(out, g.order)
	return out
}

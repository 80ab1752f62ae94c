// internal/power/ledger.go
package power

import (
	"sort"

	"gridkeep/internal/types"
)

// SegmentID identifies a network segment. It equals the smallest member
// node ID, so IDs are stable as long as the segment's composition is.
type SegmentID uint64

// Profile is the energy-relevant description of a node at its current
// level. Generation is per simulated second.
type Profile struct {
	Generation   float64
	Capacity     float64
	SelfPowered  bool
	PowerCapable bool
}

// nodeState tracks a registered node's profile plus the mutable energy and
// membership-relevant flags.
type nodeState struct {
	Profile
	Stored      float64
	Operational bool
	Disabled    bool

	consumedAccum   float64
	lastConsumption float64
}

// Segment is a maximal connected set of power-capable, operational,
// non-disabled nodes. Stats are derived from member node state on demand,
// which keeps recomputation a pure function of graph and node state.
type Segment struct {
	ID      SegmentID
	Members []types.NodeID
	Powered bool
}

// SegmentStats is the aggregated accounting snapshot of one segment.
type SegmentStats struct {
	Generation  float64
	Capacity    float64
	Stored      float64
	Consumption float64
}

// Ledger owns per-node energy state and the current segmentation of the
// network.
type Ledger struct {
	nodes    map[types.NodeID]*nodeState
	segments map[SegmentID]*Segment
	segOf    map[types.NodeID]SegmentID
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		nodes:    make(map[types.NodeID]*nodeState),
		segments: make(map[SegmentID]*Segment),
		segOf:    make(map[types.NodeID]SegmentID),
	}
}

// Register adds a node with the given profile. Nodes start non-operational
// (under construction) with no stored energy.
func (l *Ledger) Register(id types.NodeID, p Profile) {
	l.nodes[id] = &nodeState{Profile: p}
}

// Unregister drops a node and any energy it stored.
func (l *Ledger) Unregister(id types.NodeID) {
	delete(l.nodes, id)
}

// UpdateProfile replaces a node's profile, keeping stored energy clamped to
// the new capacity. Used when an upgrade's stat bonuses land.
func (l *Ledger) UpdateProfile(id types.NodeID, p Profile) {
	n, exists := l.nodes[id]
	if !exists {
		return
	}
	n.Profile = p
	if n.Stored > p.Capacity {
		n.Stored = p.Capacity
	}
}

// SetOperational marks a node as a full network member (or not).
func (l *Ledger) SetOperational(id types.NodeID, operational bool) {
	if n, exists := l.nodes[id]; exists {
		n.Operational = operational
	}
}

// SetDisabled flags a node as manually disabled. A disabled node neither
// produces, stores, nor conducts power on the next recompute.
func (l *Ledger) SetDisabled(id types.NodeID, disabled bool) {
	if n, exists := l.nodes[id]; exists {
		n.Disabled = disabled
	}
}

// Stored returns the energy currently held by one node.
func (l *Ledger) Stored(id types.NodeID) float64 {
	if n, exists := l.nodes[id]; exists {
		return n.Stored
	}
	return 0
}

// isMember reports whether a node currently qualifies for segment
// membership.
func (l *Ledger) isMember(id types.NodeID) bool {
	n, exists := l.nodes[id]
	return exists && n.PowerCapable && n.Operational && !n.Disabled
}

// Recompute rebuilds the segment set by BFS over graph edges restricted to
// member nodes. Edges referencing unregistered nodes are dropped silently;
// the graph and the ledger self-heal rather than fail. Running Recompute
// twice with no intervening change yields identical segments.
func (l *Ledger) Recompute(g *Graph) {
	l.segments = make(map[SegmentID]*Segment)
	l.segOf = make(map[types.NodeID]SegmentID)

	memberIDs := make([]types.NodeID, 0, len(l.nodes))
	for id := range l.nodes {
		if l.isMember(id) && g.Has(id) {
			memberIDs = append(memberIDs, id)
		}
	}
	sort.Slice(memberIDs, func(i, j int) bool { return memberIDs[i] < memberIDs[j] })

	visited := make(map[types.NodeID]bool, len(memberIDs))
	for _, seed := range memberIDs {
		if visited[seed] {
			continue
		}
		// Seeds are visited in ascending ID order, so the BFS root is the
		// smallest member of its component and doubles as the segment ID.
		seg := &Segment{ID: SegmentID(seed)}
		queue := []types.NodeID{seed}
		visited[seed] = true
		for head := 0; head < len(queue); head++ {
			current := queue[head]
			seg.Members = append(seg.Members, current)
			l.segOf[current] = seg.ID
			if l.nodes[current].SelfPowered {
				seg.Powered = true
			}
			for _, neighbor := range g.Neighbors(current) {
				if !visited[neighbor] && l.isMember(neighbor) {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}
		sort.Slice(seg.Members, func(i, j int) bool { return seg.Members[i] < seg.Members[j] })
		l.segments[seg.ID] = seg
	}
}

// Segments returns the current segments sorted by ID.
func (l *Ledger) Segments() []*Segment {
	out := make([]*Segment, 0, len(l.segments))
	for _, seg := range l.segments {
		out = append(out, seg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Segment returns the segment with the given ID.
func (l *Ledger) Segment(id SegmentID) (*Segment, bool) {
	seg, exists := l.segments[id]
	return seg, exists
}

// SegmentOf returns the segment a member node belongs to.
func (l *Ledger) SegmentOf(id types.NodeID) (SegmentID, bool) {
	segID, exists := l.segOf[id]
	return segID, exists
}

// DrawSegment resolves the segment a node draws construction energy from:
// its own segment when it is a member, otherwise the lowest-ID segment
// among its direct neighbors. Non-member nodes (under construction,
// disabled neighbors stripped) tap the grid they are wired to without
// conducting for it.
func (l *Ledger) DrawSegment(g *Graph, id types.NodeID) (SegmentID, bool) {
	if segID, exists := l.segOf[id]; exists {
		return segID, true
	}
	best := SegmentID(0)
	found := false
	for _, neighbor := range g.Neighbors(id) {
		if segID, exists := l.segOf[neighbor]; exists {
			if !found || segID < best {
				best = segID
				found = true
			}
		}
	}
	return best, found
}

// Stats aggregates a segment's accounting snapshot from its members.
func (l *Ledger) Stats(id SegmentID) (SegmentStats, bool) {
	seg, exists := l.segments[id]
	if !exists {
		return SegmentStats{}, false
	}
	var stats SegmentStats
	for _, member := range seg.Members {
		n := l.nodes[member]
		stats.Generation += n.Generation
		stats.Capacity += n.Capacity
		stats.Stored += n.Stored
		stats.Consumption += n.lastConsumption
	}
	return stats, true
}

// Generate accrues one tick of production for every segment, clamped to
// member capacity. Production fills members in ascending ID order; energy
// beyond total segment capacity is lost. It also closes the consumption
// window opened by Consume calls since the previous Generate.
func (l *Ledger) Generate(dt float64) {
	if dt <= 0 {
		return
	}
	for _, n := range l.nodes {
		n.lastConsumption = n.consumedAccum / dt
		n.consumedAccum = 0
	}
	for _, seg := range l.segments {
		produced := 0.0
		for _, member := range seg.Members {
			produced += l.nodes[member].Generation * dt
		}
		for _, member := range seg.Members {
			if produced <= 0 {
				break
			}
			n := l.nodes[member]
			headroom := n.Capacity - n.Stored
			if headroom <= 0 {
				continue
			}
			fill := produced
			if fill > headroom {
				fill = headroom
			}
			n.Stored += fill
			produced -= fill
		}
	}
}

// Consume atomically draws amount from a segment's stored energy. It fails
// with no side effect when the segment holds less than amount, and never
// drives stored energy negative.
func (l *Ledger) Consume(id SegmentID, amount float64) bool {
	if amount < 0 {
		return false
	}
	seg, exists := l.segments[id]
	if !exists {
		return false
	}
	total := 0.0
	for _, member := range seg.Members {
		total += l.nodes[member].Stored
	}
	if total < amount {
		return false
	}
	remaining := amount
	for _, member := range seg.Members {
		if remaining <= 0 {
			break
		}
		n := l.nodes[member]
		take := n.Stored
		if take > remaining {
			take = remaining
		}
		n.Stored -= take
		n.consumedAccum += take
		remaining -= take
	}
	return true
}

// IsPowered reports whether a node is powered: either it is itself a
// member self-powering node, or it belongs to a segment reachable from at
// least one self-powering node.
func (l *Ledger) IsPowered(id types.NodeID) bool {
	segID, exists := l.segOf[id]
	if !exists {
		return false
	}
	return l.segments[segID].Powered
}

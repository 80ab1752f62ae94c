// internal/power/graph_test.go
package power_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridkeep/internal/power"
	"gridkeep/internal/types"
	"gridkeep/pkg/geom"
)

func node(id types.NodeID, x, y, rng float64, cat power.Category, limits power.ConnLimits) power.NodeSpec {
	return power.NodeSpec{
		ID:       id,
		Pos:      geom.Vec2{X: x, Y: y},
		Range:    rng,
		Category: cat,
		Limits:   limits,
	}
}

func TestConnectRespectsRange(t *testing.T) {
	g := power.NewGraph()
	g.AddNode(node(1, 0, 0, 100, power.CategoryGenerator, power.ConnLimits{Total: 6}))
	g.AddNode(node(2, 80, 0, 100, power.CategoryOther, power.ConnLimits{Total: 3}))
	g.AddNode(node(3, 0, 90, 50, power.CategoryOther, power.ConnLimits{Total: 3}))

	// In range of both endpoints.
	assert.True(t, g.Connect(1, 2))
	// 90 exceeds min(100, 50).
	assert.False(t, g.Connect(1, 3))
	// Self and unknown endpoints never connect.
	assert.False(t, g.Connect(1, 1))
	assert.False(t, g.Connect(1, 99))
}

func TestConnectIsSymmetricAndIdempotent(t *testing.T) {
	g := power.NewGraph()
	g.AddNode(node(1, 0, 0, 100, power.CategoryGenerator, power.ConnLimits{Total: 6}))
	g.AddNode(node(2, 50, 0, 100, power.CategoryOther, power.ConnLimits{Total: 3}))

	require.True(t, g.Connect(1, 2))
	assert.True(t, g.Connected(2, 1))
	// Re-connecting an existing edge reports failure and changes nothing.
	assert.False(t, g.Connect(2, 1))
	assert.Equal(t, 1, g.Degree(1))
}

func TestSingleConnectionCapIsExactlyOne(t *testing.T) {
	g := power.NewGraph()
	g.AddNode(node(1, 0, 0, 100, power.CategoryGenerator, power.ConnLimits{Total: 6}))
	g.AddNode(node(2, 50, 0, 100, power.CategorySingle, power.ConnLimits{Total: 1}))
	g.AddNode(node(3, 100, 0, 100, power.CategoryOther, power.ConnLimits{Total: 3}))

	require.True(t, g.Connect(2, 1))
	// Even a perfectly in-range peer is refused once the single link exists.
	assert.False(t, g.Connect(2, 3))
	assert.Equal(t, 1, g.Degree(2))
}

func TestBridgeCapsSplitByPeerCategory(t *testing.T) {
	g := power.NewGraph()
	limits := power.ConnLimits{Total: 9, BridgeSame: 3, BridgeOther: 6}
	g.AddNode(node(1, 0, 0, 500, power.CategoryBridge, limits))
	// Four bridge peers: only three may link.
	for id := types.NodeID(2); id <= 5; id++ {
		g.AddNode(node(id, float64(id)*10, 0, 500, power.CategoryBridge, limits))
	}
	assert.True(t, g.Connect(1, 2))
	assert.True(t, g.Connect(1, 3))
	assert.True(t, g.Connect(1, 4))
	assert.False(t, g.Connect(1, 5), "fourth same-category link must fail")

	// Other-category peers have their own budget of six.
	for id := types.NodeID(10); id <= 16; id++ {
		g.AddNode(node(id, 0, float64(id)*10, 500, power.CategoryOther, power.ConnLimits{Total: 10}))
	}
	for id := types.NodeID(10); id <= 15; id++ {
		assert.True(t, g.Connect(1, id))
	}
	// The seventh other-category peer breaches the overall cap of nine.
	assert.False(t, g.Connect(1, 16))
	assert.Equal(t, 9, g.Degree(1))
}

func TestRemoveNodeCascadesEdges(t *testing.T) {
	g := power.NewGraph()
	g.AddNode(node(1, 0, 0, 100, power.CategoryGenerator, power.ConnLimits{Total: 6}))
	g.AddNode(node(2, 50, 0, 100, power.CategoryOther, power.ConnLimits{Total: 3}))
	g.AddNode(node(3, 100, 0, 100, power.CategoryOther, power.ConnLimits{Total: 3}))
	require.True(t, g.Connect(1, 2))
	require.True(t, g.Connect(2, 3))

	g.RemoveNode(2)

	assert.False(t, g.Has(2))
	assert.Equal(t, 0, g.Degree(1))
	assert.Equal(t, 0, g.Degree(3))
	assert.Empty(t, g.Edges())
}

func TestAutoConnectNearestFirst(t *testing.T) {
	g := power.NewGraph()
	g.AddNode(node(1, 100, 0, 200, power.CategoryOther, power.ConnLimits{Total: 5}))
	g.AddNode(node(2, -40, 0, 200, power.CategoryOther, power.ConnLimits{Total: 5}))
	// New node caps at one link; the nearer neighbor must win.
	g.AddNode(node(3, 0, 0, 200, power.CategorySingle, power.ConnLimits{Total: 1}))

	made := g.AutoConnect(3)

	assert.Equal(t, 1, made)
	assert.True(t, g.Connected(3, 2), "node 2 at distance 40 beats node 1 at 100")
	assert.False(t, g.Connected(3, 1))
}

func TestAutoConnectTieBreaksByInsertionOrder(t *testing.T) {
	g := power.NewGraph()
	g.AddNode(node(1, 60, 0, 200, power.CategoryOther, power.ConnLimits{Total: 5}))
	g.AddNode(node(2, -60, 0, 200, power.CategoryOther, power.ConnLimits{Total: 5}))
	g.AddNode(node(3, 0, 0, 200, power.CategorySingle, power.ConnLimits{Total: 1}))

	g.AutoConnect(3)

	// Equidistant candidates resolve to the earlier-inserted node.
	assert.True(t, g.Connected(3, 1))
	assert.False(t, g.Connected(3, 2))
}

func TestHealIsIdempotentAndSelfHealing(t *testing.T) {
	g := power.NewGraph()
	g.AddNode(node(1, 0, 0, 100, power.CategoryGenerator, power.ConnLimits{Total: 6}))
	g.AddNode(node(2, 50, 0, 100, power.CategoryOther, power.ConnLimits{Total: 3}))
	g.AddNode(node(3, 100, 0, 100, power.CategoryOther, power.ConnLimits{Total: 3}))
	require.Positive(t, g.Heal())

	// A second pass with no intervening change creates nothing.
	assert.Zero(t, g.Heal())

	// Drop an edge behind the graph's back; the next pass repairs it.
	g.Disconnect(1, 2)
	assert.Equal(t, 1, g.Heal())
	assert.True(t, g.Connected(1, 2))
}

func TestEdgesSatisfyEligibilityInvariant(t *testing.T) {
	g := power.NewGraph()
	specs := []power.NodeSpec{
		node(1, 0, 0, 150, power.CategoryGenerator, power.ConnLimits{Total: 6}),
		node(2, 60, 10, 120, power.CategoryOther, power.ConnLimits{Total: 3}),
		node(3, 130, 0, 100, power.CategorySingle, power.ConnLimits{Total: 1}),
		node(4, 60, -80, 220, power.CategoryBridge, power.ConnLimits{Total: 9, BridgeSame: 3, BridgeOther: 6}),
		node(5, -70, 40, 90, power.CategoryStorage, power.ConnLimits{Total: 4}),
	}
	for _, spec := range specs {
		g.AddNode(spec)
		g.AutoConnect(spec.ID)
	}
	g.Heal()

	for _, edge := range g.Edges() {
		a, _ := g.Node(edge[0])
		b, _ := g.Node(edge[1])
		reach := a.Range
		if b.Range < reach {
			reach = b.Range
		}
		assert.LessOrEqual(t, geom.Dist(a.Pos, b.Pos), reach)
	}
	for _, id := range g.NodeIDs() {
		spec, _ := g.Node(id)
		if spec.Category == power.CategorySingle {
			assert.LessOrEqual(t, g.Degree(id), 1)
		} else if spec.Limits.Total > 0 {
			assert.LessOrEqual(t, g.Degree(id), spec.Limits.Total)
		}
	}
}

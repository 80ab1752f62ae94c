// internal/app/placement_test.go
package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridkeep/internal/app"
	"gridkeep/internal/component"
	"gridkeep/internal/defs"
)

func TestPlaceNodeRejectsUnknownType(t *testing.T) {
	g := app.NewGame(1)
	before := g.Resources()

	_, err := g.PlaceNode(defs.BuildingType("BOGUS"), 100, 100)

	var ve *app.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, app.ReasonUnknownType, ve.Reason)
	assert.Equal(t, before, g.Resources())
}

func TestPlaceNodeRejectsOutOfBoundsAndRefunds(t *testing.T) {
	g := app.NewGame(1)
	before := g.Resources()

	_, err := g.PlaceNode(defs.BuildingReactor, 5000, 0)

	var ve *app.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, app.ReasonOutOfBounds, ve.Reason)
	assert.Equal(t, before, g.Resources(), "the deducted cost must come back")
}

func TestPlaceNodeRejectsOverlapAndRefunds(t *testing.T) {
	g := app.NewGame(1)
	_, err := g.PlaceNode(defs.BuildingWall, 300, 300)
	require.NoError(t, err)
	before := g.Resources()

	_, err = g.PlaceNode(defs.BuildingWall, 300, 310)

	var ve *app.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, app.ReasonOverlap, ve.Reason)
	assert.Equal(t, before, g.Resources())
}

func TestPlaceNodeRejectsUnaffordable(t *testing.T) {
	g := app.NewGame(1)
	// Burn the wallet down with reactors.
	_, err := g.PlaceNode(defs.BuildingReactor, 500, 0)
	require.NoError(t, err)
	_, err = g.PlaceNode(defs.BuildingReactor, -500, 0)
	require.NoError(t, err)
	_, err = g.PlaceNode(defs.BuildingReactor, 0, 500)
	require.NoError(t, err)
	require.Equal(t, 0.0, g.Resources())

	_, err = g.PlaceNode(defs.BuildingReactor, 0, -500)

	var ve *app.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, app.ReasonUnaffordable, ve.Reason)
}

func TestWallIsNotPowerCapable(t *testing.T) {
	g := app.NewGame(1)

	wall, err := g.PlaceNode(defs.BuildingWall, 300, 300)
	require.NoError(t, err)

	// Instantly operational, yet never a segment member.
	state, _ := g.NodeState(wall)
	assert.Equal(t, component.StateOperational, state)
	_, isMember := g.SegmentOf(wall)
	assert.False(t, isMember)
	assert.False(t, g.IsPowered(wall))
}

func TestRecycleRefundsCostAndUnconsumedEnergy(t *testing.T) {
	g := app.NewGame(1)

	// Isolated solar array: construction never progresses, the full
	// build energy is still unconsumed at recycle time.
	solar, err := g.PlaceNode(defs.BuildingSolarArray, 400, -400)
	require.NoError(t, err)
	afterPlace := g.Resources()

	refund, err := g.Recycle(solar)
	require.NoError(t, err)

	// 0.5 * 90 cost + 0.25 * 60 remaining energy.
	assert.InDelta(t, 60.0, refund, 1e-9)
	assert.InDelta(t, afterPlace+60.0, g.Resources(), 1e-9)
	_, exists := g.Building(solar)
	assert.False(t, exists)
	assert.False(t, g.Graph.Has(solar))
}

func TestRecycleOperationalRefundsCostFractionOnly(t *testing.T) {
	g := app.NewGame(1)
	wall, err := g.PlaceNode(defs.BuildingWall, 300, 300)
	require.NoError(t, err)
	afterPlace := g.Resources()

	refund, err := g.Recycle(wall)
	require.NoError(t, err)

	assert.InDelta(t, 7.5, refund, 1e-9)
	assert.InDelta(t, afterPlace+7.5, g.Resources(), 1e-9)
}

func TestRecycleDestroyedNodeIsRejected(t *testing.T) {
	g := app.NewGame(1)
	wall, err := g.PlaceNode(defs.BuildingWall, 300, 300)
	require.NoError(t, err)

	g.ApplyDamage(wall, 10000)
	state, _ := g.NodeState(wall)
	require.Equal(t, component.StateDestroyed, state)
	health, _ := g.Health(wall)
	require.Equal(t, 0.0, health.Current)

	_, err = g.Recycle(wall)

	var ve *app.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, app.ReasonInvalidState, ve.Reason)
}

func TestUpgradeIsOptimisticAndBonusesLandOnCompletion(t *testing.T) {
	g := app.NewGame(1)

	gen, err := g.PlaceNode(defs.BuildingReactor, 500, 0)
	require.NoError(t, err)
	_, err = g.PlaceNode(defs.BuildingBattery, 560, 0)
	require.NoError(t, err)
	advance(g, 20.0) // battery built, stored energy banked

	// Half health going in, to observe proportional rescaling.
	g.ApplyDamage(gen, 150)

	beforeWallet := g.Resources()
	cost, err := g.Upgrade(gen)
	require.NoError(t, err)
	assert.Equal(t, 250.0, cost)
	assert.Equal(t, beforeWallet-250.0, g.Resources())

	// Level bumps immediately, state re-enters construction, and the node
	// leaves its segment while upgrading.
	building, _ := g.Building(gen)
	assert.Equal(t, 2, building.Level)
	assert.Equal(t, component.StateUnderConstruction, building.State)
	assert.True(t, building.Upgrading)
	_, isMember := g.SegmentOf(gen)
	assert.False(t, isMember)

	// Old stats still apply until the draw completes.
	health, _ := g.Health(gen)
	assert.Equal(t, 300.0, health.Max)
	assert.Equal(t, 150.0, health.Current)

	// 120 upgrade energy at 20/s, drawn through the battery's segment.
	advance(g, 7.5)

	building, _ = g.Building(gen)
	require.Equal(t, component.StateOperational, building.State)
	assert.Equal(t, 2, building.Level)
	assert.False(t, building.Upgrading)

	// Max health multiplied by 1.5, current rescaled proportionally.
	health, _ = g.Health(gen)
	assert.InDelta(t, 450.0, health.Max, 1e-9)
	assert.InDelta(t, 225.0, health.Current, 1e-9)

	// The upgraded generation rate shows up in segment accounting.
	segID, ok := g.SegmentOf(gen)
	require.True(t, ok)
	stats, _ := g.SegmentStats(segID)
	assert.InDelta(t, 32.0, stats.Generation, 1e-9)
}

func TestUpgradeRejectedAtMaxLevelAndWrongState(t *testing.T) {
	g := app.NewGame(1)

	gen, err := g.PlaceNode(defs.BuildingReactor, 500, 0)
	require.NoError(t, err)
	relay, err := g.PlaceNode(defs.BuildingRelay, 560, 0)
	require.NoError(t, err)
	require.True(t, g.Graph.Connected(gen, relay))

	// Still under construction: wrong state.
	_, err = g.Upgrade(relay)
	var ve *app.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, app.ReasonInvalidState, ve.Reason)

	advance(g, 3.0)
	state, _ := g.NodeState(relay)
	require.Equal(t, component.StateOperational, state)

	// Relays define no upgrade levels at all.
	_, err = g.Upgrade(relay)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, app.ReasonMaxLevel, ve.Reason)
}

func TestDisableRemovesFromSegmentAndReenableRestores(t *testing.T) {
	g := app.NewGame(1)

	gen, err := g.PlaceNode(defs.BuildingReactor, 500, 0)
	require.NoError(t, err)
	battery, err := g.PlaceNode(defs.BuildingBattery, 560, 0)
	require.NoError(t, err)
	advance(g, 7.0)
	require.True(t, g.IsPowered(battery))

	require.NoError(t, g.SetDisabled(battery, true))
	_, isMember := g.SegmentOf(battery)
	assert.False(t, isMember)
	assert.False(t, g.IsPowered(battery))

	require.NoError(t, g.SetDisabled(battery, false))
	assert.True(t, g.IsPowered(battery))
	segGen, _ := g.SegmentOf(gen)
	segBat, _ := g.SegmentOf(battery)
	assert.Equal(t, segGen, segBat)
}

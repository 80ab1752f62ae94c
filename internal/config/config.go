// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1200
	ScreenHeight = 900

	WorldMinX = -1500.0
	WorldMinY = -1500.0
	WorldMaxX = 1500.0
	WorldMaxY = 1500.0

	// The front-end may call Update with a real frame dt; the core clamps
	// it so a long frame never produces a giant simulation step.
	MaxDeltaTime = 0.06

	// HealingInterval is the period of the full auto-connect re-scan, in
	// simulated seconds.
	HealingInterval = 5.0

	// ConstructionDrawInterval is the minimum simulated time between two
	// energy draws of one construction site.
	ConstructionDrawInterval = 0.1

	// EnergyShortageNoticePeriod rate-limits the shortage event a starved
	// construction site raises, in simulated seconds.
	EnergyShortageNoticePeriod = 2.0

	// RecycleRefundFraction of the nominal build cost is returned on
	// recycle. RecycleEnergyRefundFraction of the not-yet-consumed
	// construction energy is additionally returned while still building.
	RecycleRefundFraction       = 0.5
	RecycleEnergyRefundFraction = 0.25

	StartingResources = 600.0

	// Minimum center distance between two nodes is the sum of their
	// footprint radii times this factor.
	PlacementClearanceFactor = 1.0
)

var (
	BackgroundColor   = color.RGBA{20, 20, 30, 255}
	LineColor         = color.RGBA{255, 255, 0, 128}
	NodeStrokeColor   = color.RGBA{255, 255, 255, 255}
	UnpoweredColor    = color.RGBA{90, 90, 100, 255}
	ConstructionColor = color.RGBA{200, 170, 60, 255}
	DisabledColor     = color.RGBA{60, 60, 70, 255}
	WreckColor        = color.RGBA{50, 40, 40, 255}
	TextLightColor    = color.RGBA{240, 240, 240, 255}
	PanelColor        = color.RGBA{30, 30, 45, 220}
)

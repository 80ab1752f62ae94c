// internal/system/render.go
package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"gridkeep/internal/app"
	"gridkeep/internal/component"
	"gridkeep/internal/config"
	"gridkeep/internal/defs"
)

// typeColors is the presentation palette per building type.
var typeColors = map[defs.BuildingType]color.RGBA{
	defs.BuildingReactor:    {255, 120, 40, 255},
	defs.BuildingSolarArray: {255, 215, 0, 255},
	defs.BuildingBattery:    {50, 200, 120, 255},
	defs.BuildingRelay:      {120, 180, 255, 255},
	defs.BuildingTurret:     {220, 70, 70, 255},
	defs.BuildingDrill:      {180, 120, 220, 255},
	defs.BuildingWall:       {128, 128, 128, 255},
}

// RenderSystem draws the network read-only: connection lines from the
// positional snapshot, nodes colored by lifecycle state and power.
type RenderSystem struct {
	game *app.Game
}

func NewRenderSystem(game *app.Game) *RenderSystem {
	return &RenderSystem{game: game}
}

// Draw renders all connections and nodes. World origin maps to the screen
// center.
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	offX := float32(config.ScreenWidth) / 2
	offY := float32(config.ScreenHeight) / 2

	for _, line := range s.game.Connections() {
		vector.StrokeLine(screen,
			float32(line.X1)+offX, float32(line.Y1)+offY,
			float32(line.X2)+offX, float32(line.Y2)+offY,
			2.0, config.LineColor, true)
	}

	for id, building := range s.game.ECS.Buildings {
		pos, hasPos := s.game.ECS.Positions[id]
		if !hasPos {
			continue
		}
		def := defs.Library[building.Type]
		x := float32(pos.X) + offX
		y := float32(pos.Y) + offY
		radius := float32(def.Footprint) * 0.6

		c := typeColors[building.Type]
		switch {
		case building.State == component.StateDestroyed:
			c = config.WreckColor
		case building.Disabled:
			c = config.DisabledColor
		case building.State == component.StateUnderConstruction:
			c = config.ConstructionColor
		case def.Energy.PowerCapable && !s.game.IsPowered(id):
			c = config.UnpoweredColor
		}

		vector.DrawFilledCircle(screen, x, y, radius+2, config.NodeStrokeColor, true)
		vector.DrawFilledCircle(screen, x, y, radius, c, true)

		// Construction sites fill up with the type color as progress rises.
		if building.State == component.StateUnderConstruction {
			progress := s.game.Progress(id)
			if progress > 0 {
				vector.DrawFilledCircle(screen, x, y, radius*float32(progress), typeColors[building.Type], true)
			}
		}
	}
}

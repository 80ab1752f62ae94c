// internal/ui/hud.go
package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"gridkeep/internal/app"
	"gridkeep/internal/config"
	"gridkeep/internal/defs"
)

const (
	panelWidth  = 270
	panelMargin = 8
	lineHeight  = 16
)

// HUD draws the wallet, the selected building type, per-segment stats and
// details of the node under the cursor. It reads the simulation through
// query methods only.
type HUD struct {
	game     *app.Game
	fontFace font.Face
	Selected defs.BuildingType
}

func NewHUD(game *app.Game) *HUD {
	return &HUD{
		game:     game,
		fontFace: basicfont.Face7x13,
		Selected: defs.BuildingSolarArray,
	}
}

func (h *HUD) Draw(screen *ebiten.Image, cursorX, cursorY int) {
	lines := []string{
		fmt.Sprintf("resources: %.0f", h.game.Resources()),
		fmt.Sprintf("time: %.1fs", h.game.GameTime()),
		fmt.Sprintf("build: %s", h.Selected),
		"",
		"segments:",
	}
	for _, seg := range h.game.Ledger.Segments() {
		stats, _ := h.game.SegmentStats(seg.ID)
		lines = append(lines, fmt.Sprintf(" #%d n=%d gen=%.1f cap=%.0f stored=%.0f use=%.1f",
			seg.ID, len(seg.Members), stats.Generation, stats.Capacity, stats.Stored, stats.Consumption))
	}

	wx := float64(cursorX) - float64(config.ScreenWidth)/2
	wy := float64(cursorY) - float64(config.ScreenHeight)/2
	if id, ok := h.game.NodeAt(wx, wy, 40); ok {
		building, _ := h.game.Building(id)
		health, _ := h.game.Health(id)
		lines = append(lines, "",
			fmt.Sprintf("node %d: %s L%d", id, building.Type, building.Level),
			fmt.Sprintf(" state=%s powered=%v", building.State, h.game.IsPowered(id)),
			fmt.Sprintf(" hp=%.0f/%.0f progress=%.0f%%", health.Current, health.Max, h.game.Progress(id)*100),
		)
	}

	panelHeight := float32(len(lines)*lineHeight + 2*panelMargin)
	vector.DrawFilledRect(screen, 0, 0, panelWidth, panelHeight, config.PanelColor, false)
	y := panelMargin + lineHeight
	for _, line := range lines {
		text.Draw(screen, line, h.fontFace, panelMargin, y, config.TextLightColor)
		y += lineHeight
	}
}

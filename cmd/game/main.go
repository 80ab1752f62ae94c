// cmd/game/main.go
package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/joho/godotenv"

	"gridkeep/internal/app"
	"gridkeep/internal/config"
	"gridkeep/internal/defs"
	"gridkeep/internal/system"
	"gridkeep/internal/ui"
)

// buildOrder maps the number keys to placeable building types.
var buildOrder = []defs.BuildingType{
	defs.BuildingSolarArray,
	defs.BuildingReactor,
	defs.BuildingBattery,
	defs.BuildingRelay,
	defs.BuildingTurret,
	defs.BuildingDrill,
	defs.BuildingWall,
}

// runner is the ebiten front-end: it feeds commands into the simulation
// and draws the resulting read-only state.
type runner struct {
	game   *app.Game
	render *system.RenderSystem
	hud    *ui.HUD
}

func newRunner(seed int64) *runner {
	game := app.NewGame(seed)
	return &runner{
		game:   game,
		render: system.NewRenderSystem(game),
		hud:    ui.NewHUD(game),
	}
}

func (r *runner) Update() error {
	for i, buildingType := range buildOrder {
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			r.hud.Selected = buildingType
		}
	}

	cx, cy := ebiten.CursorPosition()
	wx := float64(cx) - float64(config.ScreenWidth)/2
	wy := float64(cy) - float64(config.ScreenHeight)/2

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if _, err := r.game.PlaceNode(r.hud.Selected, wx, wy); err != nil {
			var ve *app.ValidationError
			if errors.As(err, &ve) {
				log.Printf("placement rejected: %s", ve.Reason)
			}
		}
	}
	if id, ok := r.game.NodeAt(wx, wy, 40); ok {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyD):
			building, _ := r.game.Building(id)
			_ = r.game.SetDisabled(id, !building.Disabled)
		case inpututil.IsKeyJustPressed(ebiten.KeyU):
			if _, err := r.game.Upgrade(id); err != nil {
				log.Printf("upgrade rejected: %v", err)
			}
		case inpututil.IsKeyJustPressed(ebiten.KeyR):
			if _, err := r.game.Recycle(id); err != nil {
				log.Printf("recycle rejected: %v", err)
			}
		case inpututil.IsKeyJustPressed(ebiten.KeyX):
			r.game.ApplyDamage(id, 25)
		case inpututil.IsKeyJustPressed(ebiten.KeyH):
			r.game.Repair(id, 25)
		}
	}

	r.game.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (r *runner) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	r.render.Draw(screen)
	cx, cy := ebiten.CursorPosition()
	r.hud.Draw(screen, cx, cy)
}

func (r *runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	defsPath := flag.String("defs", "", "optional YAML file overriding the built-in building tables")
	seed := flag.Int64("seed", 0, "PRNG seed; 0 seeds from the clock")
	flag.Parse()

	_ = godotenv.Load()
	if err := defs.Load(*defsPath); err != nil {
		log.Fatalf("failed to load building tables: %v", err)
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("gridkeep")
	if err := ebiten.RunGame(newRunner(*seed)); err != nil {
		log.Fatal(err)
	}
}

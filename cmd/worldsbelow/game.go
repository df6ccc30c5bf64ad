package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/plus3/worldsbelow/ecs"
	"github.com/plus3/worldsbelow/ecs/debugui"
	debugui_ebiten "github.com/plus3/worldsbelow/ecs/debugui/ebiten"
	"github.com/plus3/worldsbelow/sim"
)

var (
	healthBackground = color.RGBA{R: 255, A: 255}
	healthForeground = color.NRGBA{G: 255, A: 100}
)

// Game implements ebiten.Game on top of a sim.World.
type Game struct {
	world *sim.World
	log   *zap.Logger
	last  time.Time

	// Set only with --debug.
	overlay *debugui_ebiten.ImguiBackend
	input   *ecs.Singleton[debugui.InputState]
}

func newGame(world *sim.World, log *zap.Logger) *Game {
	return &Game{world: world, log: log, last: time.Now()}
}

// intents samples the arrow keys. Keys held while an ImGui panel has keyboard
// focus do not move the player.
func (g *Game) intents() sim.Intents {
	if g.input != nil && g.input.Get().WantCaptureKeyboard {
		return sim.Intents{}
	}
	return sim.Intents{
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:    ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyArrowDown),
	}
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := time.Now()
	elapsed := now.Sub(g.last)
	g.last = now

	in := g.intents()

	if g.overlay != nil {
		g.overlay.BeginFrame()
	}
	err := g.world.Tick(elapsed, in)
	if g.overlay != nil {
		g.overlay.EndFrame()
	}

	if err != nil {
		g.log.Warn("tick failed", zap.Error(err))
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	w := g.world
	for id, box := range w.Boxes.All() {
		c := w.Colors.Get(id)
		if c == nil {
			continue
		}
		vector.DrawFilledRect(screen, box.X, box.Y, box.W, box.H, *c, false)
	}

	w.HealthBars(func(_ ecs.EntityId, background, foreground sim.Rect) {
		vector.DrawFilledRect(screen, background.X, background.Y, background.W, background.H, healthBackground, false)
		vector.DrawFilledRect(screen, foreground.X, foreground.Y, foreground.W, foreground.H, healthForeground, false)
	})

	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.f", ebiten.ActualFPS()))

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.world.Config()
	if g.overlay != nil {
		g.overlay.Layout(cfg.Window.Width, cfg.Window.Height)
	}
	return cfg.Window.Width, cfg.Window.Height
}

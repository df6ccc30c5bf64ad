package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/plus3/worldsbelow/config"
	"github.com/plus3/worldsbelow/ecs/debugui"
	debugui_ebiten "github.com/plus3/worldsbelow/ecs/debugui/ebiten"
	"github.com/plus3/worldsbelow/sim"
)

func newRunCommand(opts *rootOptions) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the game window",
		Long:  "Open the game window. Arrow keys move the player, Escape quits.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return runGame(cfg, log, debug)
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "show the ImGui entity browser and performance panels")
	return cmd
}

func runGame(cfg *config.Config, log *zap.Logger, debug bool) error {
	world, err := sim.NewWorld(cfg, log)
	if err != nil {
		return err
	}

	display := sim.Rect{W: float32(cfg.Window.Width), H: float32(cfg.Window.Height)}
	if _, err := world.Init(display); err != nil {
		return err
	}

	game := newGame(world, log)
	if debug {
		// The backend creates the window itself.
		game.overlay = debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		game.input = debugui.Install(world.Storage, world.Scheduler(), world.Destroy)
	} else {
		ebiten.SetWindowTitle(cfg.Window.Title)
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	}
	ebiten.SetFullscreen(cfg.Window.Fullscreen)

	log.Info("starting game loop", zap.Bool("debug", debug), zap.Uint64("seed", world.Seed()))
	if err := ebiten.RunGame(game); err != nil {
		return err
	}
	log.Info("window closed")
	return nil
}

// Command worldsbelow runs the Worlds Below simulation, either in a window
// (run) or headless for a fixed number of ticks (simulate).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/plus3/worldsbelow/config"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

// load reads the configuration and builds the logger every subcommand uses.
func (o *rootOptions) load() (*config.Config, *zap.Logger, error) {
	path := o.configPath
	if path == "" {
		path = os.Getenv("WORLDSBELOW_CONFIG")
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, nil, errors.Wrap(err, "load config")
		}
		cfg = loaded
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, nil, errors.Wrap(err, "create logger")
	}
	if path != "" {
		log.Info("config loaded", zap.String("path", path))
	}
	return cfg, log, nil
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "worldsbelow",
		Short:         "Characters, a house full of air, and one player",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a TOML or YAML config file (default $WORLDSBELOW_CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	cmd.AddCommand(
		newRunCommand(opts),
		newSimulateCommand(opts),
	)
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "worldsbelow: %v\n", err)
		stop()
		os.Exit(1)
	}
}

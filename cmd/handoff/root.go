package main

import (
	"fmt"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kubev2v/handoff/internal/config"
)

const envPrefix = "HANDOFF"

// app carries what the persistent pre-run prepared for the subcommands.
type app struct {
	v   *viper.Viper
	cfg *config.Configuration
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:           "handoff",
		Short:         "Hand work from a main loop to a background worker and back",
		SilenceUsage:  true,
		PersistentPreRunE: cobrautil.CommandStack(
			cobrautil.SyncViperPreRunE(envPrefix),
			a.load,
		),
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to a YAML configuration file")
	if err := a.v.BindPFlag("config", flags.Lookup("config")); err != nil {
		panic(err)
	}
	if err := config.RegisterFlags(flags, a.v); err != nil {
		panic(err)
	}

	cmd.AddCommand(newRunCommand(a), newServeCommand(a), newSubmitCommand(a), newTokenCommand(a))

	return cmd
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	zap.S().Named(cmd.Name()).Debugw("configuration loaded", "config", cfg.DebugMap())

	a.cfg = cfg
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/motionfield/config"
	"github.com/lixenwraith/motionfield/logging"
)

// app carries resolved settings from PersistentPreRunE to the subcommands
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	closeLog func() error

	// flags
	configPath string
	particles  int
	seed       int64
	colorMode  string
	debug      bool
	audio      bool
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "motionfield",
		Short: "Drifting particle background that follows the pointer",
		Long: `motionfield renders a field of dark dots drifting over a light background.
Pointer movement pushes every dot in the direction of travel; the push fades
over a few frames and the dots wrap around the viewport edges.

Run without arguments to start the terminal renderer (mouse required).`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closeLog != nil {
				_ = a.closeLog()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTerminal(cmd.Context(), a.cfg, a.logger)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file")
	pf.IntVar(&a.particles, "particles", 0, "particle count (overrides config)")
	pf.Int64Var(&a.seed, "seed", 0, "random seed, 0 picks a time based seed")
	pf.StringVar(&a.colorMode, "color", "", "color mode: auto, truecolor, 256")
	pf.BoolVar(&a.debug, "debug", false, "write debug logs to the log directory")
	pf.BoolVar(&a.audio, "audio", false, "play a chime on fast pointer bursts")

	root.AddCommand(newSimulateCmd(a), newTiltCmd(a))
	return root
}

// setup resolves config (defaults, file, env, then flags) and builds the logger
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("particles") {
		cfg.Particles = a.particles
	}
	if flags.Changed("seed") {
		cfg.Seed = a.seed
	}
	if flags.Changed("color") {
		cfg.ColorMode = a.colorMode
	}
	if flags.Changed("debug") {
		cfg.Log.Debug = a.debug
	}
	if flags.Changed("audio") {
		cfg.Audio.Enabled = a.audio
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := logging.Setup(logging.Options{Debug: cfg.Log.Debug, Dir: cfg.Log.Dir})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	a.closeLog = closeLog
	logger.Debug("config resolved",
		zap.Int("particles", cfg.Particles),
		zap.Int64("seed", cfg.Seed),
		zap.Duration("frame_interval", cfg.FrameInterval),
		zap.String("color_mode", cfg.ColorMode),
	)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

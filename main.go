package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"proximity-radar.klederson.com/internal/alert"
	"proximity-radar.klederson.com/internal/app"
	"proximity-radar.klederson.com/internal/config"
	"proximity-radar.klederson.com/internal/depth"
	"proximity-radar.klederson.com/internal/feedback"
	"proximity-radar.klederson.com/internal/logging"
)

var (
	flagConfig   string
	flagDemo     bool
	flagSource   string
	flagReplay   string
	flagLoop     bool
	flagTarget   string
	flagHeadless bool
	flagLogLevel string
	flagNoBell   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "proximity-radar",
		Short: "Proximity Radar - distance to haptic and audio feedback",
		Long: `Proximity Radar turns a stream of distance readings into repeating
tactile pulses and beeps that speed up as a surface gets closer.

Distances come from a synthetic depth feed (--demo), a recorded file
(--replay), a BLE beacon (--target) or the arrow keys (--source manual).
Use --headless to drive the feedback without the radar display.`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "YAML settings file")
	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "Use the synthetic depth feed (no hardware required)")
	rootCmd.Flags().StringVar(&flagSource, "source", "", "Distance source: demo, replay, ble or manual")
	rootCmd.Flags().StringVar(&flagReplay, "replay", "", "Replay distances from a file, one per line (- for stdin)")
	rootCmd.Flags().BoolVar(&flagLoop, "loop", false, "Repeat the replay file after the last line")
	rootCmd.Flags().StringVar(&flagTarget, "target", "", "BLE peripheral address to range against")
	rootCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Run without the radar display")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.Flags().BoolVar(&flagNoBell, "no-bell", false, "Do not ring the terminal bell on beeps")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	defaultLog := config.LogFile
	if flagHeadless {
		defaultLog = "stderr"
	}
	logger, closeLog, err := logging.New(settings, defaultLog)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	if !flagHeadless && settings.Source == config.SourceReplay &&
		(settings.Replay.Path == "" || settings.Replay.Path == "-") {
		return errors.New("replaying from stdin needs --headless; the display reads the terminal")
	}

	src, closeSrc, err := app.NewSource(settings, logger)
	if err != nil {
		if errors.Is(err, depth.ErrNoTarget) {
			fmt.Fprintln(os.Stderr, "The ble source needs a peripheral: --target AA:BB:CC:DD:EE:FF")
		}
		return err
	}
	defer closeSrc()

	if flagHeadless {
		return runHeadless(cmd.Context(), src, settings, logger)
	}
	return runTUI(src, settings, logger)
}

// loadSettings reads the settings file and applies command-line overrides.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	settings, err := config.Load(flagConfig)
	if err != nil {
		return settings, err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		settings.Source = flagSource
	}
	if flagDemo {
		settings.Source = config.SourceDemo
	}
	if flags.Changed("replay") {
		settings.Source = config.SourceReplay
		settings.Replay.Path = flagReplay
	}
	if flags.Changed("loop") {
		settings.Replay.Loop = flagLoop
	}
	if flags.Changed("target") {
		settings.Source = config.SourceBLE
		settings.BLE.Target = flagTarget
	}
	if flags.Changed("log-level") {
		settings.LogLevel = flagLogLevel
	}
	if flagNoBell {
		off := false
		settings.Feedback.Bell = &off
	}

	return settings, settings.Validate()
}

func runTUI(src depth.Source, settings config.Settings, logger *slog.Logger) error {
	var beeper feedback.Beeper
	if settings.BellEnabled() {
		beeper = alert.NewBell(os.Stderr)
	}

	model := app.New(app.Options{
		Source:   src,
		Beeper:   beeper,
		Settings: settings,
		Logger:   logger,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS),
	)

	// Start the source and the session with a reference to the tea program
	if err := model.Start(p); err != nil {
		model.Close()
		if settings.Source == config.SourceBLE {
			printPermissionHint(err)
		}
		return err
	}

	_, err := p.Run()
	model.Close()
	return err
}

func runHeadless(ctx context.Context, src depth.Source, settings config.Settings, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var beeper feedback.Beeper
	if settings.BellEnabled() {
		beeper = alert.NewBell(os.Stdout)
	}

	stats, err := app.RunHeadless(ctx, app.HeadlessOptions{
		Source:   src,
		Beeper:   beeper,
		Settings: settings,
		Logger:   logger,
	})

	logger.Info("headless run finished",
		"samples", stats.Samples,
		"pulses", stats.Pulses(),
		"beeps", stats.Beeps(),
		"coalesced", stats.Coalesced,
		"stale", stats.StaleFires,
		"outputErrors", stats.OutputErrors)

	if err != nil && settings.Source == config.SourceBLE {
		printPermissionHint(err)
	}
	return err
}

func printPermissionHint(err error) {
	fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
	fmt.Fprintln(os.Stderr, "Bluetooth scanning requires elevated permissions.")
	fmt.Fprintln(os.Stderr, "Try one of:")
	fmt.Fprintln(os.Stderr, "  sudo ./proximity-radar --target <addr>")
	fmt.Fprintln(os.Stderr, "  sudo setcap cap_net_admin+ep ./proximity-radar")
	fmt.Fprintln(os.Stderr, "  ./proximity-radar --demo    (demo mode, no hardware needed)")
}

//go:build !tinygo

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"duofb/app"
	"duofb/config"
	"duofb/hal"
	"duofb/internal/buildinfo"

	goerrors "github.com/go-errors/errors"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()
	var debug bool

	cmd := &cobra.Command{
		Use:          "duofb",
		Short:        "double-buffered display pipeline with an FPS overlay",
		Long:         "duofb renders an FPS overlay on one core and flushes it to a simulated panel on another.",
		Version:      buildinfo.Short(),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd.Context(), cfg)
			var ge *goerrors.Error
			if debug && errors.As(err, &ge) {
				fmt.Fprintln(os.Stderr, ge.ErrorStack())
			}
			return err
		},
	}

	f := cmd.Flags()
	f.BoolVar(&cfg.Headless, "headless", cfg.Headless, "Run without a window.")
	f.Uint64Var(&cfg.Frames, "frames", cfg.Frames, "Stop after N flushed frames (0 = run forever).")
	f.IntVar(&cfg.StatsInterval, "stats-interval", cfg.StatsInterval, "Stats log period in ms (0 disables).")
	f.IntVar(&cfg.HeartbeatInterval, "heartbeat-interval", cfg.HeartbeatInterval, "LED toggle period in ms (0 disables).")
	f.Uint64Var(&cfg.FailEvery, "fail-every", cfg.FailEvery, "Fail every Nth bus write (0 disables).")
	f.StringVar(&cfg.Snapshot, "snapshot", cfg.Snapshot, "Write the final panel contents to this PNG (headless only).")
	f.IntVar(&cfg.Scale, "scale", cfg.Scale, "Window zoom factor.")
	f.BoolVar(&cfg.PinCores, "pin-cores", cfg.PinCores, "Bind the render and display stages to separate CPU cores.")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Print error stacks.")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, cfg)
	}

	if cfg.Headless {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
		err := hal.RunHeadless(ctx, cfg, newApp, hal.HeadlessConfig{Snapshot: cfg.Snapshot})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return hal.RunWindow(cfg, newApp)
}

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-timeline-view/internal/application/view"
	datacache "github.com/penwyp/go-timeline-view/internal/data/cache"
)

var (
	viewViewport viewportFlags

	// Display
	viewRefreshPerSecond float64
	viewMouse            bool
	viewColor            bool
	viewMaxEvents        int

	// View state
	viewRestoreState bool
	viewStateDir     string
	viewResetState   bool
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse the timeline interactively",
	Long: `Opens a full-screen timeline in the terminal. Drag with the mouse or use the
arrow keys to pan, scroll or press +/- to zoom, and press c to expand or
collapse the gap nearest the center. Event files are watched and reloaded
when they change.

The zoom, position and expanded gaps are saved per set of files and restored
on the next start unless --restore-state=false.`,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewViewport.register(viewCmd, false)

	viewCmd.Flags().Float64Var(&viewRefreshPerSecond, "refresh-per-second", view.DefaultUIRefreshRate,
		"Resize polling rate (0.1-20 Hz)")
	viewCmd.Flags().BoolVar(&viewMouse, "mouse", true,
		"Capture the mouse for dragging and wheel zoom")
	viewCmd.Flags().BoolVar(&viewColor, "color", true,
		"Use ANSI colors")
	viewCmd.Flags().IntVar(&viewMaxEvents, "max-events", 0,
		"Limit event rows (0 = fit the terminal)")

	viewCmd.Flags().BoolVar(&viewRestoreState, "restore-state", true,
		"Restore and save the viewport per set of files")
	viewCmd.Flags().StringVar(&viewStateDir, "state-dir", view.DefaultStateDir,
		"Directory for saved view state")
	viewCmd.Flags().BoolVar(&viewResetState, "reset-state", false,
		"Forget all saved view state before starting")
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	viewViewport.apply(cmd, cfg)
	if flagApplies(cmd, "refresh-per-second") {
		cfg.UIRefreshRate = viewRefreshPerSecond
	}
	if flagApplies(cmd, "mouse") {
		cfg.Mouse = viewMouse
	}
	if flagApplies(cmd, "color") {
		cfg.Color = viewColor
	}
	if flagApplies(cmd, "max-events") {
		cfg.MaxEvents = viewMaxEvents
	}
	if flagApplies(cmd, "restore-state") {
		cfg.RestoreState = viewRestoreState
	}
	if flagApplies(cmd, "state-dir") {
		cfg.StateDir = viewStateDir
	}
	// The viewer owns the terminal, so logs always go to a file
	if cfg.LogFile == "" {
		cfg.LogFile = defaultViewLogFile
	}
	if err := initRuntime(cfg, false); err != nil {
		return err
	}
	// Validate fills in the default state dir, which may start with ~
	cfg.StateDir = expandPath(cfg.StateDir)

	if viewResetState {
		if err := resetViewState(cfg.StateDir); err != nil {
			return fmt.Errorf("failed to reset view state: %w", err)
		}
	}

	labels, days := timeAxis(cfg)
	orchestrator, err := view.NewOrchestrator(cfg, labels, days)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return orchestrator.Run(ctx)
}

func resetViewState(dir string) error {
	store, err := datacache.NewStateStore(dir)
	if err != nil {
		return err
	}
	return store.Clear()
}

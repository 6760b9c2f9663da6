package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	visibility "github.com/grindlemire/go-visibility"
	"github.com/grindlemire/go-visibility/internal/config"
)

type simulateOptions struct {
	steps int
	step  int
}

func newSimulateCmd(c *cli) *cobra.Command {
	var opts simulateOptions
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Scroll the page through a fixed viewport and print every change",
		Long: `simulate runs the tracker headless. The page starts at offset 0 and
scrolls down --step rows per step, with one tracker pass per step. Each
pass prints its changes and the set of visible regions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, err := c.loadConfig()
			if err != nil {
				return err
			}
			if opts.steps > 0 {
				f.Scroll.Steps = opts.steps
			}
			if opts.step != 0 {
				f.Scroll.Step = opts.step
			}
			return runSimulate(cmd.OutOrStdout(), f, c.trackerLogger())
		},
	}
	cmd.Flags().IntVar(&opts.steps, "steps", 0, "Number of scroll steps (default from config)")
	cmd.Flags().IntVar(&opts.step, "step", 0, "Rows scrolled per step, negative scrolls up (default from config)")
	return cmd
}

func runSimulate(out io.Writer, f *config.File, logger *zap.Logger) error {
	margin, err := f.Margin()
	if err != nil {
		return err
	}

	sched := visibility.NewManualScheduler()
	viewport := visibility.NewScrollViewport(visibility.StaticViewport(f.ViewportRect()))
	size := f.ContentSize()
	viewport.SetContentSize(size.Width, size.Height)

	tracker, err := visibility.NewTracker(sched,
		visibility.WithViewportProvider(viewport),
		visibility.WithRootMargin(margin),
		visibility.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer tracker.Close()

	visible := visibility.NewVisibleSet()
	var (
		label    string
		writeErr error
	)
	tracker.Subscribe(visible.Apply)
	tracker.Subscribe(func(changes []visibility.Change) {
		if writeErr == nil {
			writeErr = writeBatch(out, label, changes, visible)
		}
	})

	if _, err := mountPage(visibility.NewMounter(tracker, "region"), f); err != nil {
		return err
	}

	for step := 0; step <= f.Scroll.Steps; step++ {
		if step > 0 {
			viewport.ScrollBy(0, f.Scroll.Step)
		}
		_, y := viewport.Offset()
		label = fmt.Sprintf("step=%d y=%d", step, y)
		sched.Tick()
		if writeErr != nil {
			return writeErr
		}
	}
	return nil
}

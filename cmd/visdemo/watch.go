package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	visibility "github.com/grindlemire/go-visibility"
	"github.com/grindlemire/go-visibility/internal/config"
)

type watchOptions struct {
	duration time.Duration
	terminal bool
	reload   bool
}

func newWatchCmd(c *cli) *cobra.Command {
	opts := watchOptions{terminal: true, reload: true}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Auto-scroll the page on a frame loop and print changes",
		Long: `watch runs the tracker on a frame loop. The viewport follows the
terminal size and scrolls back and forth on the configured interval. When
the page came from a file, edits to that file are applied live.

Stops on interrupt or after --duration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, path, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !opts.reload {
				path = ""
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if opts.duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, opts.duration)
				defer cancel()
			}

			w := &watchSession{
				out:           cmd.OutOrStdout(),
				cfg:           f,
				path:          path,
				useTerminal:   opts.terminal,
				logger:        c.logger,
				trackerLogger: c.trackerLogger(),
			}
			return w.run(ctx)
		},
	}
	cmd.Flags().DurationVar(&opts.duration, "duration", 0, "Stop after this long (0 runs until interrupted)")
	cmd.Flags().BoolVar(&opts.terminal, "terminal", opts.terminal, "Size the viewport to the terminal")
	cmd.Flags().BoolVar(&opts.reload, "reload", opts.reload, "Reload the page when the configuration file changes")
	return cmd
}

// watchSession owns the state shared by the loop handlers. Everything except
// the output writer is touched only on the loop goroutine.
type watchSession struct {
	out           io.Writer
	cfg           *config.File
	path          string
	useTerminal   bool
	logger        *zap.Logger
	trackerLogger *zap.Logger

	viewport *visibility.ScrollViewport
	tracker  *visibility.Tracker
	mounter  *visibility.Mounter
	visible  *visibility.VisibleSet
	dir      int
}

func (w *watchSession) run(ctx context.Context) error {
	margin, err := w.cfg.Margin()
	if err != nil {
		return err
	}

	w.viewport = visibility.NewScrollViewport(w.baseViewport())
	w.fitContent()
	w.dir = 1

	watchers := []visibility.Watcher{
		visibility.OnSignal(w.resized, visibility.ResizeSignals()...),
		visibility.OnTimer(w.cfg.Scroll.Interval, w.autoScroll),
	}
	started := false
	if w.path != "" {
		fw, err := config.Watch(w.path, w.reload, w.logger)
		if err != nil {
			return err
		}
		defer func() {
			if !started {
				_ = fw.Close()
			}
		}()
		watchers = append(watchers, fw)
	}

	loop, err := visibility.NewLoop(
		visibility.WithFrameRate(w.cfg.FrameRate),
		visibility.WithLoopLogger(w.logger),
		visibility.WithWatchers(watchers...),
	)
	if err != nil {
		return err
	}

	w.tracker, err = visibility.NewTracker(loop,
		visibility.WithViewportProvider(w.viewport),
		visibility.WithRootMargin(margin),
		visibility.WithLogger(w.trackerLogger),
	)
	if err != nil {
		return err
	}
	defer w.tracker.Close()

	w.mounter = visibility.NewMounter(w.tracker, "region")
	w.visible = visibility.NewVisibleSet()

	g, gctx := errgroup.WithContext(ctx)
	lines := make(chan string, 64)

	w.tracker.Subscribe(w.visible.Apply)
	w.tracker.Subscribe(func(changes []visibility.Change) {
		var b strings.Builder
		_, y := w.viewport.Offset()
		label := "pass=" + strconv.FormatUint(changes[0].Pass, 10) + " y=" + strconv.Itoa(y)
		_ = writeBatch(&b, label, changes, w.visible)
		select {
		case lines <- b.String():
		default:
			w.logger.Warn("output backlog full, dropping batch", zap.Uint64("pass", changes[0].Pass))
		}
	})

	if _, err := mountPage(w.mounter, w.cfg); err != nil {
		return err
	}

	started = true
	g.Go(func() error {
		defer close(lines)
		return loop.Run(gctx)
	})
	g.Go(func() error {
		for line := range lines {
			if _, err := io.WriteString(w.out, line); err != nil {
				loop.Stop()
				return err
			}
		}
		return nil
	})
	return g.Wait()
}

// baseViewport returns the terminal when it can be measured, otherwise the
// configured viewport.
func (w *watchSession) baseViewport() visibility.ViewportProvider {
	static := visibility.StaticViewport(w.cfg.ViewportRect())
	if !w.useTerminal {
		return static
	}
	term := visibility.NewTerminalViewport(os.Stdout)
	if _, err := term.CurrentBounds(); err != nil {
		w.logger.Warn("terminal size unavailable, using configured viewport", zap.Error(err))
		return static
	}
	return term
}

func (w *watchSession) fitContent() {
	size := w.cfg.ContentSize()
	w.viewport.SetContentSize(size.Width, size.Height)
}

// resized re-clamps the scroll offset to the new frame and recomputes.
func (w *watchSession) resized() {
	w.fitContent()
	w.tracker.Invalidate()
}

// autoScroll moves one step, reversing direction at either end.
func (w *watchSession) autoScroll() {
	x, y := w.viewport.Offset()
	_, maxY, ok := w.viewport.MaxOffset()
	if !ok || maxY == 0 {
		return
	}
	next := y + w.dir*w.cfg.Scroll.Step
	switch {
	case next >= maxY:
		next, w.dir = maxY, -1
	case next <= 0:
		next, w.dir = 0, 1
	}
	w.viewport.ScrollTo(x, next)
}

// reload applies an edited configuration. Invalid files are logged and the
// current page is kept. Root margin and frame rate changes need a restart.
func (w *watchSession) reload() {
	f, err := config.LoadFile(w.path)
	if err != nil {
		w.logger.Warn("ignoring invalid configuration", zap.String("path", w.path), zap.Error(err))
		return
	}
	if f.RootMargin != w.cfg.RootMargin || f.FrameRate != w.cfg.FrameRate {
		w.logger.Info("root_margin and frame_rate changes apply on restart")
	}
	w.cfg = f
	removed, err := mountPage(w.mounter, f)
	if err != nil {
		w.logger.Warn("failed to mount page", zap.Error(err))
		return
	}
	kept := make(map[visibility.ID]bool)
	for _, r := range f.ObservedRegions() {
		kept[r.ID] = true
	}
	for _, id := range w.visible.IDs() {
		if !kept[id] {
			w.visible.Forget(id)
		}
	}
	w.fitContent()
	w.logger.Info("configuration reloaded", zap.String("path", w.path), zap.Int("removed", removed))
}

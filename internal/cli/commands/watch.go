package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func watchAnalyze(cmd *cobra.Command, path string, opts *AnalyzeOptions) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmdCtx := NewCommandContext(cmd)
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	run := func() {
		if err := analyzeOnce(ctx, cmdCtx, abs, opts); err != nil {
			cmdCtx.Renderer.Error(err.Error())
		}
	}

	// Initial run
	run()
	cmdCtx.Renderer.Muted(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", filepath.Base(abs)))

	return watchFile(ctx, abs, opts.Debounce, cmdCtx.Logger, func() {
		cmdCtx.Logger.Info("change detected", "file", filepath.Base(abs))
		run()
	})
}

// watchFile calls onChange once per burst of writes to path, after debounce
// of quiet, until ctx is done. onChange runs on the calling goroutine.
func watchFile(ctx context.Context, path string, debounce time.Duration, logger *slog.Logger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory so a rename over path is still seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

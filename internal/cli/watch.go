package cli

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/sceneswap"
	"github.com/aretw0/sceneswap/internal/presentation/tui"
	"github.com/fsnotify/fsnotify"
)

// settleDelay lets editors finish writing before the scene is read again.
const settleDelay = 100 * time.Millisecond

// RunWatch imports the scene, then imports it again every time its content
// changes, until interrupted.
func RunWatch(opts ImportOptions) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	out := opts.stdout()
	if !opts.Quiet {
		tui.PrintBanner(out, sceneswap.Version)
		printSystemMessage(out, "Watching '%s'.", opts.ScenePath)
	}
	logger := createLogger(false, opts.Quiet)

	err := Watch(sigCtx, opts.ScenePath, func() {
		if _, err := RunImport(sigCtx, opts); err != nil {
			logger.Error("Import failed", "path", opts.ScenePath, "err", err)
		}
		if !opts.Quiet {
			printSystemMessage(out, "Waiting for changes...")
		}
	})
	if sig := sigCtx.Signal(); sig != nil && !opts.Quiet {
		fmt.Fprintln(out)
		printSystemMessage(out, "Stopped (%s).", sig)
	}
	return err
}

// Watch calls onChange once, then again each time the content of path
// changes. Saves that leave the content as it was are ignored, so an import
// that rewrites its own input does not loop. It returns when ctx is done.
func Watch(ctx context.Context, path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace files instead of writing them.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	onChange()
	last := digest(abs)

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				settle = time.After(settleDelay)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		case <-settle:
			settle = nil
			d := digest(abs)
			if d == "" || d == last {
				continue
			}
			onChange()
			last = digest(abs)
		}
	}
}

// digest hashes the file content, or returns "" if it cannot be read.
func digest(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collects the burst of events an editor emits on save.
const DefaultDebounce = 300 * time.Millisecond

// Watch re-checks dir whenever a .txt file in it changes and hands the
// fresh reports to fn. It blocks until ctx is cancelled.
func Watch(ctx context.Context, dir string, debounce time.Duration, logger *zap.Logger, fn func([]Report)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if nested := filepath.Join(dir, "lang"); isDir(nested) {
		if err := w.Add(nested); err != nil {
			return fmt.Errorf("watch %s: %w", nested, err)
		}
	}
	logger.Info("watching language files", zap.String("dir", dir), zap.Duration("debounce", debounce))

	rerun := func() {
		reports, err := Dir(os.DirFS(dir))
		if err != nil {
			logger.Warn("check failed", zap.Error(err))
			return
		}
		fn(reports)
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(ev.Name) != ".txt" || ev.Op == fsnotify.Chmod {
				continue
			}
			logger.Debug("language file changed", zap.String("file", ev.Name), zap.String("op", ev.Op.String()))
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			rerun()
		}
	}
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

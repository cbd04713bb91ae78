package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/ginjaninja78/cardview/internal/records"
	"github.com/ginjaninja78/cardview/pkg/utils"
)

// DefaultDebounce is how long a file must be quiet before it is rendered.
const DefaultDebounce = 500 * time.Millisecond

// Watch renders record files as they are created or written in dir, until
// ctx is done. Each settled file is passed to onResult, which may be nil.
func (p *Pipeline) Watch(ctx context.Context, dir string, debounce time.Duration, onResult func(Result)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	p.Logger.Info("watching for record files", zap.String("dir", dir), zap.Duration("debounce", debounce))

	tick := min(debounce/5, 100*time.Millisecond)
	ticker := time.NewTicker(max(tick, 10*time.Millisecond))
	defer ticker.Stop()

	pending := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			p.Logger.Info("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !records.Supported(event.Name) {
				continue
			}
			switch {
			case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
				pending[event.Name] = time.Now()
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				delete(pending, event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.Logger.Warn("watcher error", zap.Error(err))

		case <-ticker.C:
			for _, path := range settled(pending, debounce) {
				if !utils.FileExists(path) {
					continue
				}
				result := p.Run(ctx, path)
				if result.Error != nil {
					p.Logger.Error("file failed", zap.String("file", path), zap.Error(result.Error))
				}
				if onResult != nil {
					onResult(result)
				}
			}
		}
	}
}

// settled removes and returns the paths quiet for at least debounce,
// oldest first.
func settled(pending map[string]time.Time, debounce time.Duration) []string {
	now := time.Now()
	var ready []string
	for path, at := range pending {
		if now.Sub(at) >= debounce {
			ready = append(ready, path)
		}
	}
	sort.Slice(ready, func(i, j int) bool {
		return pending[ready[i]].Before(pending[ready[j]])
	})
	for _, path := range ready {
		delete(pending, path)
	}
	return ready
}

package access

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// validityChecker is the slice of the session service the watcher needs
type validityChecker interface {
	IsValid(ctx context.Context) (bool, error)
}

// Watcher periodically re-validates the stored session after
// authentication and fires onExpire exactly once on the first negative
// result. It is a disposable handle: every caller must release it with
// Stop on teardown.
type Watcher struct {
	scheduler *gocron.Scheduler
	expire    sync.Once
	stop      sync.Once
}

// StartWatcher launches the recurring validity check on its own scheduler
func StartWatcher(store validityChecker, interval time.Duration, onExpire func()) (*Watcher, error) {
	w := &Watcher{
		scheduler: gocron.NewScheduler(time.UTC),
	}

	_, err := w.scheduler.Every(interval).Do(func() {
		valid, err := store.IsValid(context.Background())
		if err != nil {
			slog.Error("session validity check failed", "error", err)
			return
		}
		if valid {
			return
		}
		w.expire.Do(onExpire)
	})
	if err != nil {
		return nil, err
	}

	w.scheduler.StartAsync()
	return w, nil
}

// Stop releases the watcher; idempotent. No callback fires after Stop
// returns aside from a check already in flight.
func (w *Watcher) Stop() {
	w.stop.Do(func() {
		w.scheduler.Stop()
	})
}

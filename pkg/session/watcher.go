package session

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultCheckInterval is how often the watcher looks for a new calendar day.
const DefaultCheckInterval = time.Minute

// Watcher periodically re-evaluates the rollover so a day boundary is
// archived even when nobody logs anything.
type Watcher struct {
	session  *Session
	interval time.Duration
}

func NewWatcher(session *Session, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &Watcher{
		session:  session,
		interval: interval,
	}
}

// Run checks once immediately and then on every tick until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	logrus.Infof("rollover watcher started (interval %v)", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.check(ctx)
	for {
		select {
		case <-ctx.Done():
			logrus.Info("rollover watcher stopped")
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *Watcher) check(ctx context.Context) {
	result, err := w.session.CheckRollover(ctx)
	if err != nil {
		logrus.Errorf("rollover check failed: %v", err)
		return
	}
	if result.Advanced {
		logrus.Infof("new day %s started, archived %s (%s)",
			result.State.LastProcessedDate, result.Entry.Date, result.Entry.Outcome)
	}

	if left, ok := w.session.Countdown(); ok {
		if left.Expired() {
			logrus.Debugf("challenge period is over")
		} else {
			logrus.Debugf("challenge ends in %dd %02dh %02dm %02ds", left.Days, left.Hours, left.Minutes, left.Seconds)
		}
	}
}

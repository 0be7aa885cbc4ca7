package runner

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Loop guards a Session for hosts where input arrives on other goroutines.
// Commands are queued by Submit and drained at the start of the next Step, so
// no command ever lands in the middle of a tick.
type Loop struct {
	mu       sync.Mutex
	session  *Session
	queue    []Command
	recorder *Recorder
	steps    int
	logger   *log.Logger
}

// NewLoop wraps s. A nil logger discards diagnostics.
func NewLoop(s *Session, logger *log.Logger) *Loop {
	return &Loop{
		session: s,
		logger:  logger,
	}
}

// Record journals every drained command into rec.
func (l *Loop) Record(rec *Recorder) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.recorder = rec
}

// Submit queues cmd for the next Step. Safe for concurrent use.
func (l *Loop) Submit(cmd Command) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queue = append(l.queue, cmd)
}

// Step drains queued commands, runs one tick and returns the snapshot.
func (l *Loop) Step() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stepLocked()
}

func (l *Loop) stepLocked() Snapshot {
	before := l.session.Phase()

	for _, cmd := range l.queue {
		l.session.Apply(cmd)
		if l.recorder != nil {
			l.recorder.Record(l.steps, cmd)
		}
	}
	l.queue = l.queue[:0]

	snap := l.session.Tick()
	l.steps++

	if snap.Phase != before && l.logger != nil {
		l.logger.Debug("phase changed",
			"from", before,
			"to", snap.Phase,
			"step", l.steps,
			"score", snap.DisplayScore(),
		)
	}
	return snap
}

// Steps returns how many times Step has run.
func (l *Loop) Steps() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.steps
}

// Snapshot returns the current state without ticking.
func (l *Loop) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session.Snapshot()
}

// Run paces Step at tickRate until ctx is done and returns the last snapshot.
// onFrame, if non-nil, is called after each batch of steps with the latest
// snapshot; it runs on the Run goroutine and must not call back into Run.
func (l *Loop) Run(ctx context.Context, tickRate int, onFrame func(Snapshot)) Snapshot {
	pacer := NewPacer(tickRate)
	ticker := time.NewTicker(pacer.Step())
	defer ticker.Stop()

	last := l.Snapshot()
	for {
		select {
		case <-ctx.Done():
			return last
		case now := <-ticker.C:
			if ctx.Err() != nil {
				return last
			}
			n := pacer.Advance(now)
			if n == 0 {
				continue
			}
			l.mu.Lock()
			for range n {
				last = l.stepLocked()
			}
			l.mu.Unlock()
			if onFrame != nil {
				onFrame(last)
			}
		}
	}
}

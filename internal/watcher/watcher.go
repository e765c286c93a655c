package watcher

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/username/office-hours/internal/officehours"
	"github.com/username/office-hours/internal/store"
)

// Source provides the subjects to watch. Load is called before every check
// so edits made by other processes are picked up.
type Source interface {
	Load() error
	List() []*store.Subject
}

// Transition is a status change of one subject between two checks
type Transition struct {
	SubjectID string
	Name      string
	From      officehours.Status
	To        officehours.Status
	At        time.Time
	// Slot is the open slot when To is StatusIsOpen
	Slot *officehours.TimeSlot
}

// Watcher periodically re-evaluates every subject and reports open/closed
// transitions
type Watcher struct {
	source   Source
	interval time.Duration
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex // serializes checks
	last map[string]officehours.Status
}

// NewWatcher creates a new watcher. Schedules are evaluated in loc.
func NewWatcher(source Source, interval time.Duration, loc *time.Location, logger *zap.Logger) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	if loc == nil {
		loc = time.Local
	}

	return &Watcher{
		source:   source,
		interval: interval,
		location: loc,
		logger:   logger,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
		last:     make(map[string]officehours.Status),
	}
}

// Start runs the watcher until Stop is called or SIGINT/SIGTERM arrives
func (w *Watcher) Start() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ctx, cancel := context.WithCancel(w.ctx)
	defer cancel()

	go func() {
		select {
		case sig := <-sigChan:
			w.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	return w.Run(ctx)
}

// Run checks once immediately, then on every tick until ctx is done
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("Watcher started",
		zap.Duration("interval", w.interval),
		zap.String("timezone", w.location.String()))

	w.runCheck()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Watcher stopped")
			return nil

		case <-w.ctx.Done():
			w.logger.Info("Watcher stopped")
			return nil

		case <-ticker.C:
			w.runCheck()
		}
	}
}

// Stop stops the watcher
func (w *Watcher) Stop() {
	w.cancel()
}

func (w *Watcher) runCheck() {
	if _, err := w.Check(w.now()); err != nil {
		w.logger.Error("Status check failed", zap.Error(err))
	}
}

// Check evaluates every subject at now and returns the subjects whose
// status changed since the previous check. The first check only records
// the initial statuses.
func (w *Watcher) Check(now time.Time) ([]Transition, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.source.Load(); err != nil {
		return nil, fmt.Errorf("failed to load subjects: %w", err)
	}

	now = now.In(w.location)
	seen := make(map[string]struct{})
	var transitions []Transition

	for _, subject := range w.source.List() {
		seen[subject.ID] = struct{}{}
		eval := subject.Schedule(officehours.WithLogger(w.logger)).Evaluate(now)

		prev, known := w.last[subject.ID]
		w.last[subject.ID] = eval.Status

		if !known {
			w.logger.Info("Initial status",
				zap.String("subject", subject.Name),
				zap.String("id", subject.ID),
				zap.Stringer("status", eval.Status))
			continue
		}
		if prev == eval.Status {
			continue
		}

		t := Transition{
			SubjectID: subject.ID,
			Name:      subject.Name,
			From:      prev,
			To:        eval.Status,
			At:        now,
			Slot:      eval.Current,
		}
		transitions = append(transitions, t)

		fields := []zap.Field{
			zap.String("subject", subject.Name),
			zap.String("id", subject.ID),
			zap.Stringer("from", prev),
			zap.Stringer("to", eval.Status),
			zap.Time("at", now),
		}
		if eval.Current != nil {
			fields = append(fields, zap.Stringer("slot", *eval.Current))
		}
		w.logger.Info("Status changed", fields...)
	}

	for id := range w.last {
		if _, ok := seen[id]; !ok {
			delete(w.last, id)
		}
	}

	return transitions, nil
}

// Status returns the last observed status of every subject
func (w *Watcher) Status() map[string]officehours.Status {
	w.mu.Lock()
	defer w.mu.Unlock()

	status := make(map[string]officehours.Status, len(w.last))
	for id, s := range w.last {
		status[id] = s
	}
	return status
}

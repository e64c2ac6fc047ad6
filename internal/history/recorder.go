package history

import (
	"context"
	"fmt"

	"github.com/matheus3301/cmdc/internal/bus"
	"github.com/matheus3301/cmdc/internal/dispatch"
	"github.com/matheus3301/cmdc/internal/store"
	"go.uber.org/zap"
)

// Recorder persists page navigations and finished commands published on the bus.
type Recorder struct {
	db     *store.DB
	bus    *bus.Bus
	logger *zap.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRecorder creates a history recorder.
func NewRecorder(db *store.DB, b *bus.Bus, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		db:     db,
		bus:    b,
		logger: logger,
	}
}

// Start subscribes to page and action events.
func (r *Recorder) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})
	pages, unsubPages := r.bus.Subscribe("page.", 64)
	actions, unsubActions := r.bus.Subscribe(bus.ActionFinished, 64)

	go func() {
		defer close(r.done)
		defer unsubPages()
		defer unsubActions()
		for {
			select {
			case evt := <-pages:
				r.handleEvent(evt)
			case evt := <-actions:
				r.handleEvent(evt)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the recorder and waits for in-flight writes.
func (r *Recorder) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}

func (r *Recorder) handleEvent(evt bus.Event) {
	switch evt.Kind {
	case bus.PageNavigated:
		nav, ok := evt.Payload.(dispatch.Navigation)
		if !ok {
			return
		}
		if err := r.RecordNavigation(nav); err != nil {
			r.logger.Error("failed to record page visit", zap.Error(err), zap.String("path", nav.Path))
		}
	case bus.ActionFinished:
		res, ok := evt.Payload.(dispatch.Result)
		if !ok {
			return
		}
		if err := r.RecordResult(res); err != nil {
			r.logger.Error("failed to record action run", zap.Error(err), zap.String("run_id", res.RunID))
		}
	}
}

// RecordNavigation stores a page visit and announces the history change.
func (r *Recorder) RecordNavigation(nav dispatch.Navigation) error {
	visit := store.PageVisit{
		Path:     nav.Path,
		ItemUUID: nav.ItemUUID,
		Title:    nav.Title,
	}
	if !nav.At.IsZero() {
		visit.VisitedAt = nav.At.UnixMilli()
	}
	if err := r.db.RecordPageVisit(visit); err != nil {
		return fmt.Errorf("record page visit: %w", err)
	}
	r.bus.Emit(bus.HistoryUpdated, nav.Path)
	return nil
}

// RecordResult stores the outcome of a finished command.
func (r *Recorder) RecordResult(res dispatch.Result) error {
	run := store.ActionRun{
		ID:              res.RunID,
		ItemUUID:        res.ItemUUID,
		ApplicationUUID: res.ApplicationUUID,
		ButtonLabel:     res.ButtonLabel,
		Status:          string(res.Status),
		StartedAt:       res.StartedAt.UnixMilli(),
		FinishedAt:      res.FinishedAt.UnixMilli(),
	}
	if res.Err != nil {
		run.Error = res.Err.Error()
	}
	if err := r.db.InsertActionRun(run); err != nil {
		return fmt.Errorf("insert action run: %w", err)
	}
	return nil
}

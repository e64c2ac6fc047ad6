package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/matheus3301/cmdc/internal/bus"
	"github.com/matheus3301/cmdc/internal/center"
	"github.com/matheus3301/cmdc/internal/metrics"
	"github.com/matheus3301/cmdc/internal/status"
	"go.uber.org/zap"
)

var (
	// ErrQueueFull is reported when a command is issued faster than it can run.
	ErrQueueFull = errors.New("command queue full")
	// ErrNoApplication is returned when there is no application to open.
	ErrNoApplication = errors.New("no next application")
	// ErrNoStack is returned by application actions issued without a stack.
	ErrNoStack = errors.New("no application stack")
	// ErrNoItem is returned by execute when the command carries no item.
	ErrNoItem = errors.New("no item to execute")
)

const queueSize = 64

// Dispatcher runs button commands on a single worker goroutine, in the order
// they were issued.
type Dispatcher struct {
	bus       *bus.Bus
	requester Requester
	metrics   *metrics.Metrics
	timeout   time.Duration
	logger    *zap.Logger
	queue     chan Command
	cancel    context.CancelFunc
	done      chan struct{}
}

// New creates a dispatcher. requester and m may be nil.
func New(b *bus.Bus, requester Requester, m *metrics.Metrics, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		bus:       b,
		requester: requester,
		metrics:   m,
		timeout:   timeout,
		logger:    logger,
		queue:     make(chan Command, queueSize),
	}
}

// Start begins draining the command queue.
func (d *Dispatcher) Start(ctx context.Context) {
	ctx, d.cancel = context.WithCancel(ctx)
	d.done = make(chan struct{})
	go d.loop(ctx)
}

// Stop cancels the running command and waits for the worker to exit.
func (d *Dispatcher) Stop() {
	if d.cancel != nil {
		d.cancel()
		<-d.done
	}
}

// Dispatch queues cmd and returns its run ID.
func (d *Dispatcher) Dispatch(cmd Command) string {
	if cmd.ID == "" {
		cmd.ID = uuid.NewString()
	}
	if cmd.IssuedAt.IsZero() {
		cmd.IssuedAt = time.Now()
	}
	select {
	case d.queue <- cmd:
		d.metrics.SetQueued(len(d.queue))
		d.logger.Debug("command queued", zap.String("run_id", cmd.ID), zap.String("button", cmd.Button.Label))
	default:
		d.report(cmd, fmt.Errorf("%s: %w", cmd.Button.Label, ErrQueueFull))
	}
	return cmd.ID
}

func (d *Dispatcher) loop(ctx context.Context) {
	defer close(d.done)
	for {
		select {
		case cmd := <-d.queue:
			d.metrics.SetQueued(len(d.queue))
			_ = d.Run(ctx, cmd)
		case <-ctx.Done():
			return
		}
	}
}

// Run executes cmd synchronously. Action types run in order; the first
// failure is reported to cmd.Errors and stops the chain.
func (d *Dispatcher) Run(ctx context.Context, cmd Command) error {
	if cmd.ID == "" {
		cmd.ID = uuid.NewString()
	}
	machine := status.NewMachine(cmd.ID, d.bus)
	started := time.Now()
	_ = machine.Transition(status.Running)

	var runErr error
	for _, at := range cmd.Button.ActionTypes {
		t0 := time.Now()
		err := d.runAction(ctx, cmd, at)
		d.metrics.ObserveAction(string(at), t0, err)
		if err != nil {
			runErr = fmt.Errorf("%s %q: %w", at, cmd.Button.Label, err)
			break
		}
	}

	switch {
	case runErr == nil:
		_ = machine.Transition(status.Succeeded)
	case errors.Is(runErr, context.Canceled):
		_ = machine.Transition(status.Cancelled)
	default:
		_ = machine.Transition(status.Failed)
		d.report(cmd, runErr)
	}

	result := Result{
		RunID:       cmd.ID,
		ItemUUID:    itemUUID(cmd.Item),
		ButtonLabel: cmd.Button.Label,
		Status:      machine.Current(),
		Err:         runErr,
		StartedAt:   started,
		FinishedAt:  time.Now(),
	}
	if cmd.Application != nil {
		result.ApplicationUUID = cmd.Application.UUID
	}
	d.bus.Emit(bus.ActionFinished, result)
	d.logger.Info("command finished",
		zap.String("run_id", cmd.ID),
		zap.String("button", cmd.Button.Label),
		zap.String("status", string(result.Status)),
		zap.Duration("elapsed", result.FinishedAt.Sub(started)),
	)
	return runErr
}

func (d *Dispatcher) runAction(ctx context.Context, cmd Command, at center.ButtonActionType) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch at {
	case center.ActionAddApplication:
		if cmd.Applications == nil {
			return ErrNoStack
		}
		next, ok := d.nextApplication(cmd)
		if !ok {
			return ErrNoApplication
		}
		cmd.Applications.Push(cmd.Item, next)
		return nil
	case center.ActionCloseApplication:
		if cmd.Applications == nil {
			return ErrNoStack
		}
		if _, ok := cmd.Applications.Remove(); !ok {
			d.logger.Debug("close with no open application", zap.String("run_id", cmd.ID))
		}
		return nil
	case center.ActionReplaceApplication:
		if cmd.Applications == nil {
			return ErrNoStack
		}
		next, ok := d.nextApplication(cmd)
		if !ok {
			return ErrNoApplication
		}
		if !cmd.Applications.Replace(cmd.Item, next) {
			return ErrNoApplication
		}
		return nil
	case center.ActionExecute:
		return d.execute(ctx, cmd)
	default:
		return fmt.Errorf("unknown action type %q", at)
	}
}

func (d *Dispatcher) nextApplication(cmd Command) (*center.Application, bool) {
	if cmd.Application == nil {
		return cmd.Item.FirstApplication()
	}
	return cmd.Item.ApplicationAfter(cmd.Application.UUID)
}

func (d *Dispatcher) execute(ctx context.Context, cmd Command) error {
	if cmd.Item == nil {
		return ErrNoItem
	}
	for _, action := range cmd.Item.Actions {
		switch {
		case action.Page != nil:
			d.bus.Emit(bus.PageNavigated, Navigation{
				RunID:    cmd.ID,
				Path:     action.Page.Path,
				ItemUUID: cmd.Item.UUID,
				Title:    cmd.Item.Title,
				At:       time.Now(),
			})
		case action.Request != nil:
			if d.requester == nil {
				return ErrNoRequester
			}
			data, err := d.request(ctx, action.Request)
			if err != nil {
				return err
			}
			d.bus.Emit(bus.ActionReplied, Reply{RunID: cmd.ID, Subject: action.Request.Subject, Data: data})
		}
	}
	return nil
}

func (d *Dispatcher) request(ctx context.Context, r *center.RequestAction) ([]byte, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	return d.requester.Request(ctx, r.Subject, []byte(r.Payload))
}

func (d *Dispatcher) report(cmd Command, err error) {
	d.logger.Warn("command failed", zap.String("run_id", cmd.ID), zap.Error(err))
	if cmd.Errors != nil {
		cmd.Errors.Report(err)
	}
}

func itemUUID(it *center.Item) string {
	if it == nil {
		return ""
	}
	return it.UUID
}

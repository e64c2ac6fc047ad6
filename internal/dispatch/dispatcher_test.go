package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matheus3301/cmdc/internal/bus"
	"github.com/matheus3301/cmdc/internal/center"
	"github.com/matheus3301/cmdc/internal/metrics"
	"github.com/matheus3301/cmdc/internal/status"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

type errorLog struct {
	mu   sync.Mutex
	errs []error
}

func (e *errorLog) Report(err error) {
	e.mu.Lock()
	e.errs = append(e.errs, err)
	e.mu.Unlock()
}

func (e *errorLog) all() []error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]error(nil), e.errs...)
}

type fakeRequester struct {
	subjects []string
	reply    []byte
	err      error
}

func (f *fakeRequester) Request(_ context.Context, subject string, _ []byte) ([]byte, error) {
	f.subjects = append(f.subjects, subject)
	return f.reply, f.err
}

func testItem() *center.Item {
	return &center.Item{
		UUID:  "pipelines",
		Title: "Pipelines",
		Actions: []center.ItemAction{
			{UUID: "nav", Page: &center.PageAction{Path: "/pipelines"}},
		},
		Applications: []center.Application{
			{UUID: "detail", Buttons: []center.Button{{Label: "Open"}}},
			{UUID: "confirm", Buttons: []center.Button{{Label: "Confirm"}}},
		},
	}
}

func button(label string, types ...center.ButtonActionType) center.Button {
	return center.Button{Label: label, ActionTypes: types}
}

func newDispatcher(b *bus.Bus, r Requester, m *metrics.Metrics) *Dispatcher {
	return New(b, r, m, time.Second, zap.NewNop())
}

func TestExecuteThenClose(t *testing.T) {
	b := bus.New()
	nav, unsub := b.Subscribe(bus.PageNavigated, 4)
	defer unsub()

	item := testItem()
	stack := center.NewStack()
	stack.Push(item, &item.Applications[0])
	errs := &errorLog{}

	d := newDispatcher(b, nil, nil)
	err := d.Run(context.Background(), Command{
		ID:           "run-1",
		Application:  &item.Applications[0],
		Applications: stack,
		Button:       button("Open", center.ActionExecute, center.ActionCloseApplication),
		Item:         item,
		Errors:       errs,
	})
	if err != nil {
		t.Fatal(err)
	}
	if stack.Len() != 0 {
		t.Errorf("stack len = %d, want 0", stack.Len())
	}
	if len(errs.all()) != 0 {
		t.Errorf("unexpected errors: %v", errs.all())
	}

	select {
	case evt := <-nav:
		n, ok := evt.Payload.(Navigation)
		if !ok {
			t.Fatalf("payload type %T", evt.Payload)
		}
		if n.Path != "/pipelines" || n.ItemUUID != "pipelines" || n.RunID != "run-1" {
			t.Errorf("navigation = %+v", n)
		}
	default:
		t.Fatal("no page.navigated event")
	}
}

func TestFirstFailureStopsChain(t *testing.T) {
	b := bus.New()
	finished, unsub := b.Subscribe(bus.ActionFinished, 4)
	defer unsub()

	item := &center.Item{
		UUID:    "deploy",
		Title:   "Deploy",
		Actions: []center.ItemAction{{Request: &center.RequestAction{Subject: "cmdc.deploy"}}},
	}
	stack := center.NewStack()
	stack.Push(item, &center.Application{UUID: "confirm"})
	errs := &errorLog{}

	d := newDispatcher(b, nil, nil)
	err := d.Run(context.Background(), Command{
		Applications: stack,
		Button:       button("Deploy", center.ActionExecute, center.ActionCloseApplication),
		Item:         item,
		Errors:       errs,
	})
	if !errors.Is(err, ErrNoRequester) {
		t.Fatalf("err = %v, want ErrNoRequester", err)
	}
	if stack.Len() != 1 {
		t.Errorf("close ran after failure; stack len = %d", stack.Len())
	}
	reported := errs.all()
	if len(reported) != 1 || !errors.Is(reported[0], ErrNoRequester) {
		t.Errorf("reported = %v", reported)
	}

	evt := <-finished
	res := evt.Payload.(Result)
	if res.Status != status.Failed {
		t.Errorf("status = %s, want FAILED", res.Status)
	}
	if res.ItemUUID != "deploy" || res.ButtonLabel != "Deploy" {
		t.Errorf("result = %+v", res)
	}
}

func TestRequestAction(t *testing.T) {
	b := bus.New()
	replies, unsub := b.Subscribe(bus.ActionReplied, 4)
	defer unsub()

	req := &fakeRequester{reply: []byte("ok")}
	item := &center.Item{
		UUID:    "deploy",
		Title:   "Deploy",
		Actions: []center.ItemAction{{Request: &center.RequestAction{Subject: "cmdc.deploy", Payload: "{}"}}},
	}

	d := newDispatcher(b, req, nil)
	if err := d.Run(context.Background(), Command{Button: button("Deploy", center.ActionExecute), Item: item}); err != nil {
		t.Fatal(err)
	}
	if len(req.subjects) != 1 || req.subjects[0] != "cmdc.deploy" {
		t.Errorf("subjects = %v", req.subjects)
	}
	evt := <-replies
	if r := evt.Payload.(Reply); string(r.Data) != "ok" {
		t.Errorf("reply data = %q", r.Data)
	}
}

func TestRequestErrorIsReported(t *testing.T) {
	req := &fakeRequester{err: errors.New("no responders")}
	item := &center.Item{UUID: "x", Title: "x", Actions: []center.ItemAction{{Request: &center.RequestAction{Subject: "s"}}}}
	errs := &errorLog{}

	d := newDispatcher(bus.New(), req, nil)
	_ = d.Run(context.Background(), Command{Button: button("Go", center.ActionExecute), Item: item, Errors: errs})
	if len(errs.all()) != 1 {
		t.Fatalf("reported %d errors, want 1", len(errs.all()))
	}
}

func TestAddAndReplaceApplication(t *testing.T) {
	item := testItem()
	stack := center.NewStack()
	d := newDispatcher(bus.New(), nil, nil)

	// Without a current application, add opens the first one.
	if err := d.Run(context.Background(), Command{Applications: stack, Item: item, Button: button("Details", center.ActionAddApplication)}); err != nil {
		t.Fatal(err)
	}
	top, _ := stack.Top()
	if top.Application.UUID != "detail" {
		t.Fatalf("top = %s, want detail", top.Application.UUID)
	}

	if err := d.Run(context.Background(), Command{Applications: stack, Item: item, Application: top.Application, Button: button("Next", center.ActionReplaceApplication)}); err != nil {
		t.Fatal(err)
	}
	top, _ = stack.Top()
	if top.Application.UUID != "confirm" || stack.Len() != 1 {
		t.Fatalf("top = %s len %d, want confirm len 1", top.Application.UUID, stack.Len())
	}

	err := d.Run(context.Background(), Command{Applications: stack, Item: item, Application: top.Application, Button: button("Next", center.ActionAddApplication)})
	if !errors.Is(err, ErrNoApplication) {
		t.Errorf("err = %v, want ErrNoApplication", err)
	}
}

func TestApplicationActionsNeedStack(t *testing.T) {
	d := newDispatcher(bus.New(), nil, nil)
	for _, at := range []center.ButtonActionType{center.ActionAddApplication, center.ActionCloseApplication, center.ActionReplaceApplication} {
		err := d.Run(context.Background(), Command{Item: testItem(), Button: button("b", at)})
		if !errors.Is(err, ErrNoStack) {
			t.Errorf("%s: err = %v, want ErrNoStack", at, err)
		}
	}
}

func TestExecuteWithoutItem(t *testing.T) {
	d := newDispatcher(bus.New(), nil, nil)
	err := d.Run(context.Background(), Command{Button: button("b", center.ActionExecute)})
	if !errors.Is(err, ErrNoItem) {
		t.Errorf("err = %v, want ErrNoItem", err)
	}
}

func TestUnknownActionType(t *testing.T) {
	d := newDispatcher(bus.New(), nil, nil)
	if err := d.Run(context.Background(), Command{Button: button("b", "teleport")}); err == nil {
		t.Error("expected error for unknown action type")
	}
}

func TestStatusTransitionsPublished(t *testing.T) {
	b := bus.New()
	changes, unsub := b.Subscribe(bus.ActionStatusChanged, 8)
	defer unsub()

	d := newDispatcher(b, nil, nil)
	_ = d.Run(context.Background(), Command{ID: "r", Item: testItem(), Button: button("Open", center.ActionExecute)})

	var got []status.State
	for len(changes) > 0 {
		got = append(got, (<-changes).Payload.(status.StatusChange).To)
	}
	want := []status.State{status.Running, status.Succeeded}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("transitions = %v, want %v", got, want)
	}
}

func TestCancelledContext(t *testing.T) {
	b := bus.New()
	finished, unsub := b.Subscribe(bus.ActionFinished, 1)
	defer unsub()
	errs := &errorLog{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := newDispatcher(b, nil, nil)
	_ = d.Run(ctx, Command{Item: testItem(), Button: button("Open", center.ActionExecute), Errors: errs})

	if res := (<-finished).Payload.(Result); res.Status != status.Cancelled {
		t.Errorf("status = %s, want CANCELLED", res.Status)
	}
	if len(errs.all()) != 0 {
		t.Errorf("cancellation should not be reported: %v", errs.all())
	}
}

func TestMetricsRecorded(t *testing.T) {
	m := metrics.New()
	d := newDispatcher(bus.New(), nil, m)
	stack := center.NewStack()

	_ = d.Run(context.Background(), Command{Item: testItem(), Applications: stack, Button: button("Open", center.ActionExecute, center.ActionCloseApplication)})
	_ = d.Run(context.Background(), Command{Item: &center.Item{UUID: "r", Actions: []center.ItemAction{{Request: &center.RequestAction{Subject: "s"}}}}, Button: button("Go", center.ActionExecute)})

	if got := testutil.ToFloat64(m.ActionsDispatched.WithLabelValues("execute", metrics.ResultOK)); got != 1 {
		t.Errorf("execute ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ActionsDispatched.WithLabelValues("execute", metrics.ResultError)); got != 1 {
		t.Errorf("execute error = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ActionsDispatched.WithLabelValues("close_application", metrics.ResultOK)); got != 1 {
		t.Errorf("close ok = %v, want 1", got)
	}
}

func TestWorkerRunsQueuedCommands(t *testing.T) {
	b := bus.New()
	finished, unsub := b.Subscribe(bus.ActionFinished, 4)
	defer unsub()

	d := newDispatcher(b, nil, nil)
	d.Start(context.Background())
	defer d.Stop()

	id := d.Dispatch(Command{Item: testItem(), Button: button("Open", center.ActionExecute)})
	if id == "" {
		t.Fatal("Dispatch() returned empty run ID")
	}

	select {
	case evt := <-finished:
		res := evt.Payload.(Result)
		if res.RunID != id {
			t.Errorf("run id = %s, want %s", res.RunID, id)
		}
		if res.Status != status.Succeeded {
			t.Errorf("status = %s", res.Status)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for command to run")
	}
}

func TestDispatchReportsFullQueue(t *testing.T) {
	d := newDispatcher(bus.New(), nil, nil)
	errs := &errorLog{}
	// Not started: the queue never drains.
	for i := 0; i < queueSize; i++ {
		d.Dispatch(Command{Button: button("b")})
	}
	d.Dispatch(Command{Button: button("b"), Errors: errs})

	reported := errs.all()
	if len(reported) != 1 || !errors.Is(reported[0], ErrQueueFull) {
		t.Errorf("reported = %v, want ErrQueueFull", reported)
	}
}

func TestConnectNATSFailure(t *testing.T) {
	_, err := ConnectNATS("nats://127.0.0.1:1", zap.NewNop())
	if err == nil {
		t.Fatal("expected connection error")
	}
}

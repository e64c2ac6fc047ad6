package status

import (
	"fmt"
	"slices"
	"sync"

	"github.com/matheus3301/cmdc/internal/bus"
)

// State is the lifecycle state of one dispatched button command.
type State string

const (
	Queued    State = "QUEUED"
	Running   State = "RUNNING"
	Succeeded State = "SUCCEEDED"
	Failed    State = "FAILED"
	Cancelled State = "CANCELLED"
)

var validTransitions = map[State][]State{
	Queued:  {Running, Cancelled},
	Running: {Succeeded, Failed, Cancelled},
}

// Terminal reports whether no further transition is possible from s.
func (s State) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// Machine tracks and enforces the state of a single command run.
type Machine struct {
	mu      sync.RWMutex
	runID   string
	current State
	bus     *bus.Bus
}

// NewMachine creates a run state machine starting in Queued.
func NewMachine(runID string, b *bus.Bus) *Machine {
	return &Machine{
		runID:   runID,
		current: Queued,
		bus:     b,
	}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Transition moves the run to a new state, publishing the change on the bus.
func (m *Machine) Transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	allowed := validTransitions[m.current]
	if !slices.Contains(allowed, to) {
		return fmt.Errorf("run %s: invalid transition from %s to %s", m.runID, m.current, to)
	}
	from := m.current
	m.current = to
	if m.bus != nil {
		m.bus.Emit(bus.ActionStatusChanged, StatusChange{
			RunID: m.runID,
			From:  from,
			To:    to,
		})
	}
	return nil
}

// StatusChange is the payload for action.status_changed events.
type StatusChange struct {
	RunID string
	From  State
	To    State
}

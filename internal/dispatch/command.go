package dispatch

import (
	"time"

	"github.com/matheus3301/cmdc/internal/center"
	"github.com/matheus3301/cmdc/internal/status"
)

// Command is a button invocation with the full context it was issued in.
type Command struct {
	ID               string
	Application      *center.Application
	Applications     center.ApplicationStack
	Button           center.Button
	Item             *center.Item
	FocusedItemIndex center.ItemIndex
	Errors           center.ErrorReporter
	IssuedAt         time.Time
}

// Navigation is the payload of bus.PageNavigated.
type Navigation struct {
	RunID    string
	Path     string
	ItemUUID string
	Title    string
	At       time.Time
}

// Reply is the payload of bus.ActionReplied.
type Reply struct {
	RunID   string
	Subject string
	Data    []byte
}

// Result is the payload of bus.ActionFinished.
type Result struct {
	RunID           string
	ItemUUID        string
	ApplicationUUID string
	ButtonLabel     string
	Status          status.State
	Err             error
	StartedAt       time.Time
	FinishedAt      time.Time
}

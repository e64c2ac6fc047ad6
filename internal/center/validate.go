package center

import (
	"fmt"
	"strings"
)

// ValidationError reports an item that cannot be shown in the palette.
type ValidationError struct {
	ItemUUID string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.ItemUUID == "" {
		return "invalid item: " + e.Reason
	}
	return fmt.Sprintf("invalid item %q: %s", e.ItemUUID, e.Reason)
}

// Validate checks the invariants the palette relies on. Button labels key
// footer controls, so they must be unique within one application.
func (i *Item) Validate() error {
	if i == nil {
		return &ValidationError{Reason: "nil item"}
	}
	if strings.TrimSpace(i.UUID) == "" {
		return &ValidationError{Reason: "missing uuid"}
	}
	if strings.TrimSpace(i.Title) == "" {
		return &ValidationError{ItemUUID: i.UUID, Reason: "missing title"}
	}
	for _, a := range i.Actions {
		if (a.Page == nil) == (a.Request == nil) {
			return &ValidationError{ItemUUID: i.UUID, Reason: fmt.Sprintf("action %q must set exactly one of page or request", a.UUID)}
		}
	}
	for _, app := range i.Applications {
		seen := make(map[string]bool, len(app.Buttons))
		for _, b := range app.Buttons {
			if b.Label == "" {
				return &ValidationError{ItemUUID: i.UUID, Reason: fmt.Sprintf("application %q has a button without label", app.UUID)}
			}
			if seen[b.Label] {
				return &ValidationError{ItemUUID: i.UUID, Reason: fmt.Sprintf("application %q has duplicate button label %q", app.UUID, b.Label)}
			}
			seen[b.Label] = true
		}
	}
	return nil
}

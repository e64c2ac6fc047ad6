package center

import "github.com/matheus3301/cmdc/internal/keycode"

// ItemType describes what selecting an item does.
type ItemType string

const (
	ItemNavigate   ItemType = "navigate"
	ItemOpen       ItemType = "open"
	ItemActionType ItemType = "action"
	ItemDetail     ItemType = "detail"
	ItemCreate     ItemType = "create"
	ItemSupport    ItemType = "support"
)

// ApplicationType describes how an application panel presents its item.
type ApplicationType string

const (
	AppDetail ApplicationType = "detail"
	AppList   ApplicationType = "list"
	AppForm   ApplicationType = "form"
)

// ButtonActionType is one step a button performs when selected.
type ButtonActionType string

const (
	ActionAddApplication     ButtonActionType = "add_application"
	ActionCloseApplication   ButtonActionType = "close_application"
	ActionExecute            ButtonActionType = "execute"
	ActionReplaceApplication ButtonActionType = "replace_application"
)

// DisplaySettings holds presentation hints. The zero value means "use defaults".
type DisplaySettings struct {
	Color Color `yaml:"color_uuid,omitempty"`
	Icon  Icon  `yaml:"icon_uuid,omitempty"`
}

// PageAction navigates to a path.
type PageAction struct {
	Path string `yaml:"path"`
}

// RequestAction performs a request/reply call on a subject.
type RequestAction struct {
	Subject string `yaml:"subject"`
	Payload string `yaml:"payload,omitempty"`
}

// ItemAction is one unit of work an item executes. Exactly one of Page or Request is set.
type ItemAction struct {
	UUID    string         `yaml:"uuid"`
	Page    *PageAction    `yaml:"page,omitempty"`
	Request *RequestAction `yaml:"request,omitempty"`
}

// Button is an invokable action shown in an application footer.
type Button struct {
	Label             string             `yaml:"label"`
	Tooltip           string             `yaml:"tooltip,omitempty"`
	DisplaySettings   DisplaySettings    `yaml:"display_settings,omitempty"`
	KeyboardShortcuts [][]keycode.Code   `yaml:"keyboard_shortcuts,omitempty"`
	ActionTypes       []ButtonActionType `yaml:"action_types,omitempty"`
}

// Application is a panel opened for an item, carrying its buttons.
type Application struct {
	UUID    string          `yaml:"uuid"`
	Type    ApplicationType `yaml:"application_type,omitempty"`
	Title   string          `yaml:"title,omitempty"`
	Buttons []Button        `yaml:"buttons,omitempty"`
}

// ButtonList returns the application's buttons, or nil for a nil application.
func (a *Application) ButtonList() []Button {
	if a == nil {
		return nil
	}
	return a.Buttons
}

// ButtonCount returns the number of buttons, zero for a nil application.
func (a *Application) ButtonCount() int {
	return len(a.ButtonList())
}

// Item is a command-center entry hosting actions and applications.
type Item struct {
	UUID            string          `yaml:"uuid"`
	Title           string          `yaml:"title"`
	Description     string          `yaml:"description,omitempty"`
	ItemType        ItemType        `yaml:"item_type,omitempty"`
	ObjectType      ObjectType      `yaml:"object_type,omitempty"`
	DisplaySettings DisplaySettings `yaml:"display_settings,omitempty"`
	Actions         []ItemAction    `yaml:"actions,omitempty"`
	Applications    []Application   `yaml:"applications,omitempty"`

	// Score is assigned by search; higher ranks first.
	Score float64 `yaml:"-"`
}

// ItemTitle returns the title, empty for a nil item.
func (i *Item) ItemTitle() string {
	if i == nil {
		return ""
	}
	return i.Title
}

// ApplicationAfter returns the application following uuid in the item's list.
func (i *Item) ApplicationAfter(uuid string) (*Application, bool) {
	if i == nil {
		return nil, false
	}
	for idx := range i.Applications {
		if i.Applications[idx].UUID == uuid && idx+1 < len(i.Applications) {
			return &i.Applications[idx+1], true
		}
	}
	return nil, false
}

// FirstApplication returns the item's first application, if any.
func (i *Item) FirstApplication() (*Application, bool) {
	if i == nil || len(i.Applications) == 0 {
		return nil, false
	}
	return &i.Applications[0], true
}

// ItemIndex is an optional position in a result list.
type ItemIndex struct {
	value int
	ok    bool
}

// NoIndex is the absent index.
var NoIndex = ItemIndex{}

// IndexOf returns a present index. Negative values are treated as absent.
func IndexOf(i int) ItemIndex {
	if i < 0 {
		return NoIndex
	}
	return ItemIndex{value: i, ok: true}
}

// Get returns the index and whether it is present.
func (x ItemIndex) Get() (int, bool) {
	return x.value, x.ok
}

// ErrorReporter receives errors raised while executing an item's actions.
type ErrorReporter interface {
	Report(err error)
}

// ErrorReporterFunc adapts a function to ErrorReporter.
type ErrorReporterFunc func(err error)

// Report implements ErrorReporter.
func (f ErrorReporterFunc) Report(err error) { f(err) }

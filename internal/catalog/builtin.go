package catalog

import (
	"strings"

	"github.com/matheus3301/cmdc/internal/center"
	"github.com/matheus3301/cmdc/internal/keycode"
)

// Features gating built-in pages. A page with a feature is only offered
// while that feature is enabled.
const (
	FeatureBackfills      = "backfills"
	FeatureTerminal       = "terminal"
	FeatureVersionControl = "version_control"
	FeatureGlobalHooks    = "global_hooks"
)

type builtinPage struct {
	title   string
	path    string
	icon    center.Icon
	color   center.Color
	feature string
}

var builtinPages = []builtinPage{
	{"Overview", "/overview", center.IconProject, center.ColorPurple, ""},
	{"Pipelines", "/pipelines", center.IconPipeline, center.ColorBlue, ""},
	{"Triggers", "/triggers", center.IconTrigger, center.ColorYellow, ""},
	{"Pipeline runs", "/pipeline-runs", center.IconRun, center.ColorGreen, ""},
	{"Backfills", "/backfills", center.IconRun, center.ColorSky, FeatureBackfills},
	{"Files", "/files", center.IconFolder, center.ColorYellow, ""},
	{"Terminal", "/terminal", center.IconTerminal, center.ColorGreen, FeatureTerminal},
	{"Version control", "/version-control", center.IconBranch, center.ColorPink, FeatureVersionControl},
	{"Templates", "/templates", center.IconBlock, center.ColorSky, ""},
	{"Global hooks", "/global-hooks", center.IconChat, center.ColorPink, FeatureGlobalHooks},
	{"Settings", "/settings", center.IconSettings, center.ColorGray, ""},
}

// Features is the set of disabled features. The zero value enables all.
type Features map[string]bool

// NewFeatures disables the named features.
func NewFeatures(disabled []string) Features {
	f := make(Features, len(disabled))
	for _, name := range disabled {
		f[strings.ToLower(strings.TrimSpace(name))] = true
	}
	return f
}

// Enabled reports whether name is on. The empty feature is always on.
func (f Features) Enabled(name string) bool {
	return name == "" || !f[name]
}

// DetailApplicationUUID is the UUID of the detail application every
// navigation item opens.
const DetailApplicationUUID = "detail"

// Builtins returns the navigation items shipped with cmdc.
func Builtins() []center.Item {
	return BuiltinsFor(nil)
}

// BuiltinsFor returns the built-in items whose feature is enabled.
func BuiltinsFor(features Features) []center.Item {
	items := make([]center.Item, 0, len(builtinPages))
	for _, p := range builtinPages {
		if !features.Enabled(p.feature) {
			continue
		}
		items = append(items, navigationItem(p.title, p.path, p.icon, p.color))
	}
	return items
}

func navigationItem(title, path string, icon center.Icon, color center.Color) center.Item {
	uuid := strings.Trim(path, "/")
	return center.Item{
		UUID:        uuid,
		Title:       title,
		Description: uuid,
		ItemType:    center.ItemNavigate,
		ObjectType:  center.ObjectApplication,
		DisplaySettings: center.DisplaySettings{
			Icon:  icon,
			Color: color,
		},
		Actions: []center.ItemAction{
			{UUID: title, Page: &center.PageAction{Path: path}},
		},
		Applications: []center.Application{detailApplication(title)},
	}
}

func detailApplication(title string) center.Application {
	return center.Application{
		UUID:  DetailApplicationUUID,
		Type:  center.AppDetail,
		Title: title,
		Buttons: []center.Button{
			{
				Label:             "Open",
				Tooltip:           "Navigate to " + title,
				KeyboardShortcuts: [][]keycode.Code{{keycode.Meta, keycode.Enter}},
				ActionTypes:       []center.ButtonActionType{center.ActionExecute, center.ActionCloseApplication},
			},
			{
				Label:             "Cancel",
				Tooltip:           "Close this panel",
				KeyboardShortcuts: [][]keycode.Code{{keycode.Escape}},
				ActionTypes:       []center.ButtonActionType{center.ActionCloseApplication},
			},
		},
	}
}

package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/cmdc/internal/bus"
	"github.com/matheus3301/cmdc/internal/center"
	"github.com/matheus3301/cmdc/internal/dispatch"
	"github.com/matheus3301/cmdc/internal/store"
	"github.com/matheus3301/cmdc/internal/tui/keys"
	"github.com/matheus3301/cmdc/internal/tui/model"
	"github.com/matheus3301/cmdc/internal/tui/ui"
	"github.com/matheus3301/cmdc/internal/tui/views"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const (
	pageItems       = "items"
	pageApplication = "application"
	pageHelp        = "help"
	pageHistory     = "history"

	bottomMenu   = "menu"
	bottomFooter = "footer"

	historyLimit = 50
)

// Catalog is the searchable item source behind the palette.
type Catalog interface {
	model.Searcher
	Items() []center.Item
	Reload() error
}

// HistoryStore reads and clears the profile history.
type HistoryStore interface {
	RecentPages(limit int) ([]store.PageVisit, error)
	ListActionRuns(limit int) ([]store.ActionRun, error)
	ClearPageHistory() (int64, error)
}

// Deps are the services the palette UI drives. Only Catalog is required.
type Deps struct {
	Profile    string
	Transport  string
	Catalog    Catalog
	Dispatcher views.Dispatcher
	History    HistoryStore
	Bus        *bus.Bus
	Keys       *ui.KeyText
	Logger     *zap.Logger
}

// App is the main TUI application shell.
type App struct {
	app      *tview.Application
	deps     Deps
	theme    *ui.Theme
	palette  *model.Palette
	registry *keys.Registry
	flash    *ui.FlashModel
	started  time.Time
	lastRun  string

	pages      *ui.Pages
	bottom     *tview.Pages
	components map[string]ui.Component

	logo     *ui.Logo
	profile  *ui.ProfileInfo
	crumbs   *ui.Crumbs
	prompt   *ui.Prompt
	menu     *ui.Menu
	flashBar *ui.FlashBar
	items    *views.ItemList
	appView  *views.ApplicationView
	footer   *views.ApplicationFooter
	help     *views.HelpView
	history  *views.HistoryView

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(d Deps) *App {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	theme := ui.DefaultTheme()

	a := &App{
		app:      tview.NewApplication(),
		deps:     d,
		theme:    theme,
		palette:  model.NewPalette(d.Catalog),
		registry: keys.NewRegistry(),
		flash:    ui.NewFlashModel(),
		started:  time.Now(),
		pages:    ui.NewPages(),
		bottom:   tview.NewPages(),
		logo:     ui.NewLogo(theme),
		profile:  ui.NewProfileInfo(theme),
		crumbs:   ui.NewCrumbs(theme, "cmdc"),
		prompt:   ui.NewPrompt(theme),
		menu:     ui.NewMenu(theme),
		flashBar: ui.NewFlashBar(theme),
		items:    views.NewItemList(theme),
		appView:  views.NewApplicationView(theme),
		footer:   views.NewApplicationFooter(theme, d.Keys, d.Dispatcher, d.Logger.Named("footer")),
		help:     views.NewHelpView(theme),
		history:  views.NewHistoryView(theme),
		ctx:      ctx,
		cancel:   cancel,
	}
	a.components = map[string]ui.Component{
		pageItems:       a.items,
		pageApplication: a.appView,
		pageHelp:        a.help,
		pageHistory:     a.history,
	}

	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()
	return a
}

func (a *App) setupBindings() {
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyCtrlR, Label: "Ctrl-R",
		Description: "Reload", Visible: true,
		Handler: a.reload,
	})

	a.registry.AddView(pageItems, &keys.Action{
		Key: tcell.KeyRune, Rune: '/',
		Handler: a.focusPrompt,
	})
	a.registry.AddView(pageItems, &keys.Action{
		Key: tcell.KeyRune, Rune: ':',
		Handler: func() {
			a.prompt.Activate(ui.PromptCommand)
			a.app.SetFocus(a.prompt)
		},
	})
	a.registry.AddView(pageItems, &keys.Action{
		Key: tcell.KeyTab,
		Handler: a.focusPrompt,
	})
	a.registry.AddView(pageItems, &keys.Action{
		Key: tcell.KeyEscape,
		Handler: a.focusPrompt,
	})
	a.registry.AddView(pageItems, &keys.Action{
		Key: tcell.KeyRune, Rune: '?',
		Handler: func() { a.showPage(pageHelp, a.help) },
	})
	a.registry.AddView(pageItems, &keys.Action{
		Key: tcell.KeyRune, Rune: 'q', Label: "q",
		Description: "Quit", Visible: true,
		Handler: a.Stop,
	})

	for _, page := range []string{pageHelp, pageHistory} {
		a.registry.AddView(page, &keys.Action{
			Key: tcell.KeyEscape,
			Handler: a.back,
		})
		a.registry.AddView(page, &keys.Action{
			Key: tcell.KeyRune, Rune: 'q',
			Handler: a.back,
		})
	}
	a.registry.AddView(pageHistory, &keys.Action{
		Key: tcell.KeyTab,
		Handler: func() {
			if a.history.Pages().HasFocus() {
				a.app.SetFocus(a.history.Runs())
			} else {
				a.app.SetFocus(a.history.Pages())
			}
		},
	})
}

func (a *App) setupCallbacks() {
	a.prompt.SetOnChange(a.search)
	a.prompt.SetOnSubmit(func(mode ui.PromptMode, text string) {
		switch mode {
		case ui.PromptCommand:
			a.runCommand(ParseCommand(text))
		case ui.PromptSearch:
			if idx, item := a.items.Selected(); item != nil {
				a.open(idx)
			}
		}
	})
	a.prompt.SetOnCancel(func() {
		a.app.SetFocus(a.items)
	})

	a.items.SetOnOpen(func(idx center.ItemIndex, _ *center.Item) {
		a.open(idx)
	})
	a.items.SetSelectionChangedFunc(func(_, _ int) {
		idx, _ := a.items.Selected()
		a.palette.Focus(idx)
	})

	a.footer.SetOnTooltip(a.flash.Tooltip)

	// Stack mutations come from the dispatcher goroutine as well as the UI.
	a.palette.Stack.SetOnChange(func(_ []center.Frame) {
		go a.app.QueueUpdateDraw(a.syncStack)
	})
	a.pages.SetOnChange(func(_ []string) {
		a.updateMenu()
	})
}

func (a *App) setupLayout() {
	a.pages.Add(pageItems, a.items)
	a.pages.Add(pageApplication, a.appView)
	a.pages.Add(pageHelp, a.help)
	a.pages.Add(pageHistory, a.history)

	a.bottom.AddPage(bottomMenu, a.menu, true, true)
	a.bottom.AddPage(bottomFooter, a.footer, true, false)

	header := tview.NewFlex().
		AddItem(a.logo, 16, 0, false).
		AddItem(a.profile, 0, 1, false)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 5, 0, false).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(a.prompt, 3, 0, true).
		AddItem(a.pages, 0, 1, false).
		AddItem(a.bottom, 1, 0, false).
		AddItem(a.flashBar, 1, 0, false)

	a.app.SetRoot(root, true)
	a.app.SetInputCapture(a.handleKey)
	a.pages.Reset(pageItems)
}

func (a *App) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	page := a.pages.Current()
	if page == pageApplication {
		return a.handleApplicationKey(ev)
	}

	if a.promptFocused() {
		return a.handlePromptKey(ev)
	}

	if page == pageItems && ev.Key() == tcell.KeyRune && ev.Rune() >= '1' && ev.Rune() <= '9' {
		if idx, item := a.items.ItemByNumber(int(ev.Rune() - '0')); item != nil {
			a.open(idx)
		}
		return nil
	}

	if a.registry.HandleEvent(page, ev) {
		return nil
	}
	return ev
}

func (a *App) handlePromptKey(ev *tcell.EventKey) *tcell.EventKey {
	switch ev.Key() {
	case tcell.KeyTab, tcell.KeyDown:
		if a.pages.Current() == pageItems {
			a.app.SetFocus(a.items)
			return nil
		}
	case tcell.KeyRune:
		if ev.Rune() == ':' && a.prompt.Mode() == ui.PromptSearch && a.prompt.GetText() == "" {
			a.prompt.Activate(ui.PromptCommand)
			return nil
		}
		return ev
	}
	// Global bindings only; view bindings would swallow typed text.
	if a.registry.HandleEvent("", ev) {
		return nil
	}
	return ev
}

// handleApplicationKey gives the open application's button shortcuts
// priority over navigation keys.
func (a *App) handleApplicationKey(ev *tcell.EventKey) *tcell.EventKey {
	top, ok := a.palette.Top()
	if !ok {
		return ev
	}
	for _, b := range top.Application.ButtonList() {
		if keys.MatchAny(ev, b.KeyboardShortcuts) {
			a.footer.Press(b.Label)
			return nil
		}
	}
	switch ev.Key() {
	case tcell.KeyTab:
		a.cycleFooter(1)
		return nil
	case tcell.KeyBacktab:
		a.cycleFooter(-1)
		return nil
	case tcell.KeyEscape:
		a.palette.Stack.Remove()
		return nil
	}
	return ev
}

func (a *App) cycleFooter(step int) {
	buttons := a.footer.Focusables()
	if len(buttons) == 0 {
		return
	}
	focused := a.app.GetFocus()
	next := 0
	for i, b := range buttons {
		if b == focused {
			next = (i + step + len(buttons)) % len(buttons)
			break
		}
	}
	a.app.SetFocus(buttons[next])
}

// open opens the item's first application, or executes the item directly
// when it has none.
func (a *App) open(idx center.ItemIndex) {
	item, opened := a.palette.Open(idx)
	if item == nil || opened {
		return
	}
	if a.deps.Dispatcher == nil {
		a.flash.Warn("Nothing to run " + item.Title + " with")
		return
	}
	runID := a.deps.Dispatcher.Dispatch(dispatch.Command{
		Button: center.Button{
			Label:       item.Title,
			ActionTypes: []center.ButtonActionType{center.ActionExecute},
		},
		Item:             item,
		Applications:     a.palette.Stack,
		FocusedItemIndex: idx,
		Errors:           a.flash,
	})
	a.deps.Logger.Debug("item executed", zap.String("item", item.UUID), zap.String("run_id", runID))
	a.flash.Info("Running " + item.Title)
}

// syncStack renders the top of the application stack. Must run on the UI goroutine.
func (a *App) syncStack() {
	a.crumbs.Update(a.palette.Stack.Frames())

	top, ok := a.palette.Top()
	if !ok {
		a.footer.Update(views.FooterProps{})
		if a.pages.Current() == pageApplication {
			a.pages.Pop()
		}
		a.bottom.SwitchToPage(bottomMenu)
		a.focusPrompt()
		return
	}

	a.appView.Update(top)
	a.footer.Update(views.FooterProps{
		Application:      top.Application,
		Applications:     a.palette.Stack,
		FocusedItemIndex: a.palette.Focused(),
		Item:             top.Item,
		Errors:           a.flash,
	})
	a.pages.Push(pageApplication)
	a.bottom.SwitchToPage(bottomFooter)

	if buttons := a.footer.Focusables(); len(buttons) > 0 {
		a.app.SetFocus(buttons[0])
	} else {
		a.app.SetFocus(a.appView)
	}
}

func (a *App) search(query string) {
	results := a.palette.Search(query)
	a.items.Update(query, results)
	a.updateProfile()
}

func (a *App) refreshResults() {
	a.items.Update(a.palette.Query(), a.palette.Refresh())
	a.updateProfile()
	if a.pages.Current() == pageHistory {
		a.loadHistory()
	}
}

func (a *App) focusPrompt() {
	if a.prompt.Mode() != ui.PromptSearch {
		a.prompt.Activate(ui.PromptSearch)
	}
	a.app.SetFocus(a.prompt)
}

func (a *App) promptFocused() bool {
	f := a.app.GetFocus()
	return f == a.prompt || f == a.prompt.InputField
}

func (a *App) showPage(name string, focus tview.Primitive) {
	a.pages.Push(name)
	a.app.SetFocus(focus)
}

func (a *App) back() {
	a.pages.Pop()
	if a.pages.Current() == pageItems {
		a.app.SetFocus(a.items)
	}
}

func (a *App) updateMenu() {
	page := a.pages.Current()
	var hints []ui.MenuHint
	if c, ok := a.components[page]; ok {
		hints = append(hints, c.Hints()...)
	}
	for _, h := range a.registry.Hints(page) {
		hints = append(hints, ui.MenuHint{Key: h.Key, Description: h.Description})
	}
	a.menu.Update(hints)
}

func (a *App) updateProfile() {
	a.profile.Update(&ui.ProfileData{
		Profile:   a.deps.Profile,
		Items:     len(a.deps.Catalog.Items()),
		Results:   len(a.palette.Results()),
		Transport: a.deps.Transport,
		LastRun:   a.lastRun,
		Uptime:    time.Since(a.started),
	})
}

func (a *App) runCommand(cmd Command) {
	if cmd.Name == "" {
		return
	}
	name, ok := cmd.Canonical()
	if !ok {
		a.flash.Warn(fmt.Sprintf("Unknown command %q", cmd.Name))
		return
	}
	switch name {
	case CmdQuit:
		a.Stop()
	case CmdHelp:
		a.showPage(pageHelp, a.help)
	case CmdHistory:
		a.loadHistory()
		a.showPage(pageHistory, a.history.Pages())
	case CmdClearHistory:
		a.clearHistory()
	case CmdReload:
		a.reload()
	}
}

func (a *App) loadHistory() {
	if a.deps.History == nil {
		a.history.Update(nil, nil)
		return
	}
	pages, err := a.deps.History.RecentPages(historyLimit)
	if err != nil {
		a.flash.Err(fmt.Errorf("load page history: %w", err))
	}
	runs, err := a.deps.History.ListActionRuns(historyLimit)
	if err != nil {
		a.flash.Err(fmt.Errorf("load runs: %w", err))
	}
	a.history.Update(pages, runs)
}

func (a *App) clearHistory() {
	if a.deps.History == nil {
		return
	}
	n, err := a.deps.History.ClearPageHistory()
	if err != nil {
		a.flash.Err(fmt.Errorf("clear history: %w", err))
		return
	}
	a.flash.Info(fmt.Sprintf("Cleared %d pages", n))
	a.refreshResults()
}

func (a *App) reload() {
	if err := a.deps.Catalog.Reload(); err != nil {
		a.flash.Err(fmt.Errorf("reload catalog: %w", err))
		return
	}
	if a.deps.Bus != nil {
		a.deps.Bus.Emit(bus.CatalogReloaded, len(a.deps.Catalog.Items()))
	}
	a.flash.Info("Catalog reloaded")
	a.refreshResults()
}

// watchBus refreshes results when history changes and records the last run.
func (a *App) watchBus() {
	if a.deps.Bus == nil {
		return
	}
	history, unsubHistory := a.deps.Bus.Subscribe("history.", 16)
	finished, unsubFinished := a.deps.Bus.Subscribe(bus.ActionFinished, 16)

	go func() {
		defer unsubHistory()
		defer unsubFinished()
		for {
			select {
			case <-history:
				a.app.QueueUpdateDraw(a.refreshResults)
			case evt := <-finished:
				res, ok := evt.Payload.(dispatch.Result)
				if !ok {
					continue
				}
				a.app.QueueUpdateDraw(func() {
					a.lastRun = fmt.Sprintf("%s (%s)", res.ButtonLabel, res.Status)
					a.updateProfile()
					if a.pages.Current() == pageHistory {
						a.loadHistory()
					}
				})
			case <-a.ctx.Done():
				return
			}
		}
	}()
}

// watchFlash redraws the flash bar on new messages and once a second so
// expired messages disappear and the uptime advances.
func (a *App) watchFlash() {
	ticker := time.NewTicker(time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-a.flash.Watch():
				a.app.QueueUpdateDraw(func() {
					a.flashBar.Update(a.flash.GetMessage())
				})
			case <-ticker.C:
				a.app.QueueUpdateDraw(func() {
					a.flashBar.Update(a.flash.GetMessage())
					a.updateProfile()
				})
			case <-a.ctx.Done():
				return
			}
		}
	}()
}

// Run starts the TUI application. Blocks until the user quits.
func (a *App) Run() error {
	a.search("")
	a.updateMenu()
	a.watchBus()
	a.watchFlash()
	return a.app.Run()
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}

// internal/tui/app.go
//
// This is the main TUI (Terminal User Interface) for Weekendly.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen
//
// The store owns all plan state. Every screen reads through its selectors and
// writes through its mutations; a change subscription drives re-renders so no
// screen caches an authoritative copy.

package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/weekendly/internal/backup"
	"github.com/kingrea/weekendly/internal/journal"
	"github.com/kingrea/weekendly/internal/plan"
)

// appState represents which "screen" we're on
type appState int

const (
	stateHome       appState = iota // Main menu plus the one-step planner
	stateActivities                 // Catalog browser
	stateBoard                      // Two-day weekend board
	stateShare                      // Share card preview
	stateImport                     // Import path prompt
)

// Main menu entries. Selection dispatches on these titles.
const (
	menuPlanWeekend = "Plan my weekend"
	menuBrowse      = "Browse activities"
	menuBoard       = "Weekend board"
	menuShare       = "Share card"
	menuExport      = "Export plan"
	menuImport      = "Import plan"
	menuClear       = "Clear plan"
	menuQuit        = "Quit"
)

const shareCardFileName = "weekend-card.txt"

// planChangedMsg carries one store change into the update loop.
type planChangedMsg struct {
	change plan.Change
}

// AppOption customizes App construction.
type AppOption func(*App)

// WithJournalFeed wires the activity journal shown in the log panel.
func WithJournalFeed(jl *journal.Journal) AppOption {
	return func(a *App) {
		a.journal = jl
	}
}

// WithDefaultDay sets the day new items target before the user picks one.
func WithDefaultDay(day plan.Day) AppOption {
	return func(a *App) {
		if day.Valid() {
			a.defaultDay = day
		}
	}
}

// WithShareDir sets where the plain-text share card is written.
func WithShareDir(dir string) AppOption {
	return func(a *App) {
		if strings.TrimSpace(dir) != "" {
			a.shareDir = dir
		}
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state   appState
	store   *plan.Store
	backups *backup.Manager
	journal *journal.Journal
	sub     plan.Subscription

	defaultDay plan.Day
	shareDir   string

	// UI components
	mainMenu   list.Model
	activities *activitiesView
	board      *boardView
	importPath textinput.Model

	moodIdx   int // autofill mood cursor on the home screen, 0 means any
	statusMsg string

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// menuItem implements list.Item interface for our menu items
type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// NewApp creates a new App instance bound to the store and backup manager.
func NewApp(store *plan.Store, backups *backup.Manager, opts ...AppOption) *App {
	mainMenu := list.New(buildMainMenu(), list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "◆ WEEKENDLY"
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)

	importPath := textinput.New()
	importPath.Placeholder = "/path/to/weekend-plans-2025-01-01.json"
	importPath.CharLimit = 512

	app := &App{
		state:      stateHome,
		store:      store,
		backups:    backups,
		defaultDay: plan.Saturday,
		shareDir:   ".",
		mainMenu:   mainMenu,
		importPath: importPath,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	app.activities = newActivitiesView(store, app.defaultDay)
	app.board = newBoardView(store, app.defaultDay)
	app.sub = store.Subscribe()
	if app.journal != nil {
		app.journal.Info("Session opened · theme: %s", store.Theme())
	}
	return app
}

func buildMainMenu() []list.Item {
	return []list.Item{
		menuItem{title: menuPlanWeekend, desc: "Autofill the weekend from the current theme and mood"},
		menuItem{title: menuBrowse, desc: "Pick activities from the catalog"},
		menuItem{title: menuBoard, desc: "Arrange Saturday and Sunday"},
		menuItem{title: menuShare, desc: "Preview and save a share card"},
		menuItem{title: menuExport, desc: "Write the plan to a dated JSON file"},
		menuItem{title: menuImport, desc: "Replace the plan from an exported file"},
		menuItem{title: menuClear, desc: "Reset the weekend to empty"},
		menuItem{title: menuQuit, desc: "Exit Weekendly"},
	}
}

// Close releases the store subscription. Call after the program exits.
func (a *App) Close() {
	a.sub.Close()
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return a.waitForChange()
}

// waitForChange blocks on the store's change feed and turns each change into
// a message. Re-armed after every delivery.
func (a *App) waitForChange() tea.Cmd {
	return func() tea.Msg {
		change, ok := <-a.sub.Changes
		if !ok {
			return nil
		}
		return planChangedMsg{change: change}
	}
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-12))
		a.activities.setSize(max(0, msg.Width-6), max(0, msg.Height-14))
		a.board.setSize(max(0, msg.Width-6), max(0, msg.Height-12))
		a.importPath.Width = max(20, msg.Width-10)
		return a, nil

	case planChangedMsg:
		a.activities.refresh()
		a.board.clamp()
		return a, a.waitForChange()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.state {
	case stateHome:
		return a.handleHomeKey(msg)

	case stateActivities:
		if msg.String() == "esc" && !a.activities.query.Focused() {
			return a.returnHome()
		}
		if status, handled := a.activities.handleKey(msg); handled {
			if status != "" {
				a.statusMsg = status
			}
			return a, nil
		}
		return a, nil

	case stateBoard:
		if msg.String() == "esc" && !a.board.editing {
			return a.returnHome()
		}
		if status, handled := a.board.handleKey(msg); handled {
			if status != "" {
				a.statusMsg = status
			}
			return a, nil
		}
		return a, nil

	case stateShare:
		switch msg.String() {
		case "esc":
			return a.returnHome()
		case "s":
			a.statusMsg = a.saveShareCard()
			return a, nil
		}
		return a, nil

	case stateImport:
		switch msg.String() {
		case "esc":
			a.importPath.Blur()
			return a.returnHome()
		case "enter":
			a.statusMsg = a.runImport()
			if a.state == stateBoard {
				a.importPath.Blur()
			}
			return a, nil
		}
		var cmd tea.Cmd
		a.importPath, cmd = a.importPath.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return a, tea.Quit
	case "t":
		next := nextTheme(a.store.Theme())
		a.store.SetTheme(next)
		a.statusMsg = "Theme: " + themeLabel(next)
		return a, nil
	case "m":
		a.moodIdx = (a.moodIdx + 1) % (len(plan.Moods) + 1)
		a.statusMsg = "Autofill mood: " + a.moodLabel()
		return a, nil
	case "enter":
		return a.handleMenuSelection()
	}
	var cmd tea.Cmd
	a.mainMenu, cmd = a.mainMenu.Update(msg)
	return a, cmd
}

// handleMenuSelection processes menu item selection
func (a *App) handleMenuSelection() (tea.Model, tea.Cmd) {
	item, ok := a.mainMenu.SelectedItem().(menuItem)
	if !ok {
		return a, nil
	}

	switch item.title {
	case menuPlanWeekend:
		added := a.store.Autofill(a.store.Theme(), a.autofillMood())
		if added == 0 {
			a.statusMsg = "No matching activities to schedule"
		} else {
			a.statusMsg = fmt.Sprintf("Planned %d activities", added)
		}
		a.state = stateBoard
		return a, nil

	case menuBrowse:
		a.state = stateActivities
		a.statusMsg = ""
		return a, nil

	case menuBoard:
		a.state = stateBoard
		a.statusMsg = ""
		return a, nil

	case menuShare:
		a.state = stateShare
		a.statusMsg = ""
		return a, nil

	case menuExport:
		path, err := a.backups.Export()
		if err != nil {
			a.statusMsg = "Export failed: " + err.Error()
		} else {
			a.statusMsg = "Exported to " + path
		}
		return a, nil

	case menuImport:
		a.state = stateImport
		a.importPath.SetValue("")
		a.importPath.Focus()
		a.statusMsg = ""
		return a, nil

	case menuClear:
		a.store.ClearAll()
		a.statusMsg = "Cleared the weekend"
		return a, nil

	case menuQuit:
		return a, tea.Quit
	}
	return a, nil
}

// runImport replaces the plan from the typed file path and words the failure
// by its kind: shape problems read differently from unreadable files.
func (a *App) runImport() string {
	path := strings.TrimSpace(a.importPath.Value())
	if path == "" {
		return "Enter a file path"
	}
	err := a.backups.Import(path)
	if err == nil {
		a.state = stateBoard
		return "Plan restored from " + filepath.Base(path)
	}
	var invalid *backup.ValidationError
	if errors.As(err, &invalid) {
		return "Invalid plan file: " + invalid.Reason
	}
	return "Could not read plan file: " + err.Error()
}

func (a *App) saveShareCard() string {
	if err := os.MkdirAll(a.shareDir, 0o755); err != nil {
		return "Could not create share directory: " + err.Error()
	}
	path := filepath.Join(a.shareDir, shareCardFileName)
	if err := os.WriteFile(path, []byte(plainShareCard(a.store)), 0o644); err != nil {
		return "Could not save share card: " + err.Error()
	}
	if a.journal != nil {
		a.journal.Info("Saved share card to %s", path)
	}
	return "Share card saved to " + path
}

func (a *App) returnHome() (tea.Model, tea.Cmd) {
	a.state = stateHome
	a.statusMsg = ""
	return a, nil
}

func (a *App) autofillMood() plan.Mood {
	if a.moodIdx == 0 {
		return ""
	}
	return plan.Moods[a.moodIdx-1]
}

func (a *App) moodLabel() string {
	if m := a.autofillMood(); m != "" {
		return string(m)
	}
	return "any"
}

// nextTheme steps through the selectable themes in display order.
func nextTheme(current plan.ThemeID) plan.ThemeID {
	for i, t := range plan.Themes {
		if t == current {
			return plan.Themes[(i+1)%len(plan.Themes)]
		}
	}
	return plan.ThemeDefault
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	theme := a.store.Theme()
	header := themeStyle(theme).MarginBottom(1).
		Render(fmt.Sprintf("◆ WEEKENDLY · %s", themeLabel(theme)))

	var content string
	switch a.state {
	case stateHome:
		content = a.renderHome()
	case stateActivities:
		content = a.activities.View()
	case stateBoard:
		content = a.board.View()
	case stateShare:
		content = renderShareCard(a.store, width-8)
	case stateImport:
		content = a.renderImport()
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(40, width-2)).
		Render(content)

	sections := []string{header, box}
	if logPanel := a.renderJournalPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	if a.statusMsg != "" {
		style := statusStyle
		if strings.HasPrefix(a.statusMsg, "Could not") ||
			strings.HasPrefix(a.statusMsg, "Invalid") ||
			strings.Contains(a.statusMsg, "failed") {
			style = errorStyle
		}
		sections = append(sections, style.MarginTop(1).Render(a.statusMsg))
	}
	return strings.Join(sections, "\n")
}

func (a *App) renderHome() string {
	summary := dimStyle.Render(fmt.Sprintf(
		"%d planned · autofill mood %s · t theme · m mood · q quit",
		len(a.store.Plan().Items), a.moodLabel(),
	))
	return lipgloss.JoinVertical(lipgloss.Left, a.mainMenu.View(), summary)
}

func (a *App) renderImport() string {
	rows := []string{
		titleStyle.Render("Import a plan file"),
		"",
		a.importPath.View(),
		"",
		helpStyle.Render("enter import · esc cancel"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a *App) renderJournalPanel() string {
	if a.journal == nil {
		return ""
	}
	lines, total := a.journal.Tail(4)
	if len(lines) == 0 {
		return ""
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("RECENT · %d entries", total))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/weekendly/internal/plan"
)

// edit form field order: start, duration, notes.
const (
	editFieldStart = iota
	editFieldDuration
	editFieldNotes
	editFieldCount
)

// boardView is the two-column weekend board. One day holds the cursor at a
// time; items reorder within it and hop across with a single key.
type boardView struct {
	store *plan.Store

	dayIdx int
	cursor int
	width  int

	editing   bool
	editID    string
	editField int
	inputs    [editFieldCount]textinput.Model
}

func newBoardView(store *plan.Store, defaultDay plan.Day) *boardView {
	v := &boardView{store: store}
	for i, day := range plan.Days {
		if day == defaultDay {
			v.dayIdx = i
		}
	}
	start := textinput.New()
	start.Placeholder = "09:00"
	start.CharLimit = 5
	duration := textinput.New()
	duration.Placeholder = "60"
	duration.CharLimit = 4
	notes := textinput.New()
	notes.Placeholder = "notes"
	notes.CharLimit = 120
	v.inputs = [editFieldCount]textinput.Model{start, duration, notes}
	return v
}

func (v *boardView) day() plan.Day {
	return plan.Days[v.dayIdx%len(plan.Days)]
}

func (v *boardView) items() []plan.ScheduledItem {
	return v.store.ItemsByDay(v.day())
}

func (v *boardView) selected() (plan.ScheduledItem, bool) {
	items := v.items()
	if len(items) == 0 {
		return plan.ScheduledItem{}, false
	}
	if v.cursor >= len(items) {
		v.cursor = len(items) - 1
	}
	return items[v.cursor], true
}

// clamp re-fits the cursor after the store changed underneath us.
func (v *boardView) clamp() {
	count := len(v.items())
	if count == 0 {
		v.cursor = 0
		return
	}
	if v.cursor >= count {
		v.cursor = count - 1
	}
}

func (v *boardView) setSize(width, _ int) {
	v.width = width
	for i := range v.inputs {
		v.inputs[i].Width = max(12, width/3)
	}
}

func (v *boardView) handleKey(msg tea.KeyMsg) (string, bool) {
	if v.editing {
		return v.handleEditKey(msg)
	}

	switch msg.String() {
	case "tab", "right", "l", "left", "h":
		v.dayIdx = (v.dayIdx + 1) % len(plan.Days)
		v.clamp()
		return "Viewing " + string(v.day()), true
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
		return "", true
	case "down", "j":
		if v.cursor < len(v.items())-1 {
			v.cursor++
		}
		return "", true
	case "K":
		return v.moveSelected(-1), true
	case "J":
		return v.moveSelected(1), true
	case "e":
		return v.beginEdit(), true
	case "m":
		return v.cycleMood(), true
	case "w":
		return v.moveToOtherDay(), true
	case "x", "delete", "backspace":
		return v.removeSelected(), true
	}
	return "", false
}

// moveSelected swaps the selected item with its neighbor and commits the new
// sequence for the whole day.
func (v *boardView) moveSelected(delta int) string {
	items := v.items()
	if len(items) < 2 {
		return ""
	}
	target := v.cursor + delta
	if target < 0 || target >= len(items) {
		return ""
	}
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	ids[v.cursor], ids[target] = ids[target], ids[v.cursor]
	v.store.ReorderDay(v.day(), ids)
	v.cursor = target
	return "Reordered " + string(v.day())
}

func (v *boardView) cycleMood() string {
	item, ok := v.selected()
	if !ok {
		return ""
	}
	next := nextMood(item.Mood)
	v.store.UpdateItem(item.ID, plan.ItemPatch{Mood: &next})
	if next == "" {
		return "Cleared mood"
	}
	return "Mood: " + string(next)
}

// nextMood steps through the known moods and then back to unset.
func nextMood(current plan.Mood) plan.Mood {
	if current == "" {
		return plan.Moods[0]
	}
	for i, m := range plan.Moods {
		if m == current {
			if i+1 < len(plan.Moods) {
				return plan.Moods[i+1]
			}
			return ""
		}
	}
	return plan.Moods[0]
}

func (v *boardView) moveToOtherDay() string {
	item, ok := v.selected()
	if !ok {
		return ""
	}
	other := plan.Saturday
	if item.Day == plan.Saturday {
		other = plan.Sunday
	}
	v.store.UpdateItem(item.ID, plan.ItemPatch{Day: &other})
	v.clamp()
	return fmt.Sprintf("Moved to %s", other)
}

func (v *boardView) removeSelected() string {
	item, ok := v.selected()
	if !ok {
		return ""
	}
	v.store.RemoveItem(item.ID)
	v.clamp()
	return "Removed " + v.displayTitle(item)
}

func (v *boardView) beginEdit() string {
	item, ok := v.selected()
	if !ok {
		return ""
	}
	v.editing = true
	v.editID = item.ID
	v.editField = editFieldStart
	v.inputs[editFieldStart].SetValue(item.Start)
	v.inputs[editFieldDuration].SetValue(strconv.Itoa(item.DurationMin))
	v.inputs[editFieldNotes].SetValue(item.Notes)
	v.focusField(editFieldStart)
	return "Editing " + v.displayTitle(item)
}

func (v *boardView) focusField(field int) {
	v.editField = field
	for i := range v.inputs {
		if i == field {
			v.inputs[i].Focus()
		} else {
			v.inputs[i].Blur()
		}
	}
}

func (v *boardView) handleEditKey(msg tea.KeyMsg) (string, bool) {
	switch msg.String() {
	case "esc":
		v.editing = false
		return "Edit cancelled", true
	case "tab", "down":
		v.focusField((v.editField + 1) % editFieldCount)
		return "", true
	case "shift+tab", "up":
		v.focusField((v.editField + editFieldCount - 1) % editFieldCount)
		return "", true
	case "enter":
		return v.commitEdit(), true
	}
	v.inputs[v.editField], _ = v.inputs[v.editField].Update(msg)
	return "", true
}

func (v *boardView) commitEdit() string {
	duration, err := strconv.Atoi(strings.TrimSpace(v.inputs[editFieldDuration].Value()))
	if err != nil || duration <= 0 {
		return "Duration must be a positive number of minutes"
	}
	start := strings.TrimSpace(v.inputs[editFieldStart].Value())
	notes := v.inputs[editFieldNotes].Value()
	v.store.UpdateItem(v.editID, plan.ItemPatch{
		Start:       &start,
		DurationMin: &duration,
		Notes:       &notes,
	})
	v.editing = false
	return "Saved changes"
}

func (v *boardView) displayTitle(item plan.ScheduledItem) string {
	if a, ok := v.store.ActivityByID(item.ActivityID); ok {
		return a.Title
	}
	return item.ActivityID
}

func (v *boardView) View() string {
	if v.editing {
		return v.editView()
	}
	width := v.width
	if width <= 0 {
		width = 80
	}
	colWidth := max(24, width/2-4)
	theme := v.store.Theme()
	columns := make([]string, 0, len(plan.Days))
	for i, day := range plan.Days {
		columns = append(columns, v.renderDay(day, i == v.dayIdx, colWidth, theme))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	hint := helpStyle.Render("tab day · j/k move · J/K reorder · e edit · m mood · w switch day · x remove · esc home")
	return lipgloss.JoinVertical(lipgloss.Left, board, hint)
}

func (v *boardView) renderDay(day plan.Day, active bool, width int, theme plan.ThemeID) string {
	items := v.store.ItemsByDay(day)
	title := strings.ToUpper(string(day))
	header := themeSubtleStyle(theme).Render(title)
	if active {
		header = themeStyle(theme).Render(title)
	}
	lines := []string{header}
	if len(items) == 0 {
		lines = append(lines, dimStyle.Render("nothing planned"))
	}
	for i, item := range items {
		label := fmt.Sprintf("%s  %s (%d min)", item.Start, v.displayTitle(item), item.DurationMin)
		if item.Mood != "" {
			label += " · " + string(item.Mood)
		}
		if strings.TrimSpace(item.Notes) != "" {
			label += "\n      " + dimStyle.Render(item.Notes)
		}
		if active && i == v.cursor {
			label = selectedStyle.Render("▸ ") + selectedStyle.Render(label)
		} else {
			label = "  " + label
		}
		lines = append(lines, label)
	}
	box := columnStyle.Width(width)
	if active {
		box = box.BorderForeground(themePalettes[normalizeTheme(theme)].accent)
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (v *boardView) editView() string {
	item := "item"
	if selected, ok := v.selected(); ok && selected.ID == v.editID {
		item = v.displayTitle(selected)
	}
	rows := []string{
		titleStyle.Render("Edit " + item),
		"Start    " + v.inputs[editFieldStart].View(),
		"Duration " + v.inputs[editFieldDuration].View(),
		"Notes    " + v.inputs[editFieldNotes].View(),
		helpStyle.Render("tab next field · enter save · esc cancel"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// normalizeTheme maps unknown themes onto the default palette key.
func normalizeTheme(theme plan.ThemeID) plan.ThemeID {
	if _, ok := themePalettes[theme]; ok {
		return theme
	}
	return plan.ThemeDefault
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/weekendly/internal/plan"
)

// defaultStart is used when scheduling straight from the browser; the board's
// edit form is where users refine times.
const defaultStart = "10:00"

// activityItem implements list.Item for catalog entries.
type activityItem struct {
	activity plan.Activity
}

func (i activityItem) Title() string {
	return strings.TrimSpace(i.activity.Icon + " " + i.activity.Title)
}

func (i activityItem) Description() string {
	parts := []string{string(i.activity.Category)}
	if i.activity.DefaultDurationMin > 0 {
		parts = append(parts, fmt.Sprintf("%d min", i.activity.DefaultDurationMin))
	}
	for _, m := range i.activity.Moods {
		parts = append(parts, string(m))
	}
	return strings.Join(parts, " · ")
}

func (i activityItem) FilterValue() string { return i.activity.Title }

// activitiesView is the catalog browser: a filterable list plus a target day
// toggle. Enter schedules the selected activity onto the target day.
type activitiesView struct {
	store *plan.Store

	catalog list.Model
	query   textinput.Model

	categoryIdx int // 0 means all categories
	moodIdx     int // 0 means all moods
	dayIdx      int // index into plan.Days
}

func newActivitiesView(store *plan.Store, defaultDay plan.Day) *activitiesView {
	catalog := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	catalog.Title = "Activities"
	catalog.SetShowStatusBar(false)
	catalog.SetFilteringEnabled(false)
	catalog.SetShowHelp(false)

	query := textinput.New()
	query.Placeholder = "search activities"
	query.CharLimit = 64

	v := &activitiesView{
		store:   store,
		catalog: catalog,
		query:   query,
	}
	for i, day := range plan.Days {
		if day == defaultDay {
			v.dayIdx = i
		}
	}
	v.refresh()
	return v
}

func (v *activitiesView) targetDay() plan.Day {
	return plan.Days[v.dayIdx%len(plan.Days)]
}

func (v *activitiesView) selectedCategory() plan.Category {
	if v.categoryIdx == 0 {
		return ""
	}
	return plan.Categories[v.categoryIdx-1]
}

func (v *activitiesView) selectedMood() plan.Mood {
	if v.moodIdx == 0 {
		return ""
	}
	return plan.Moods[v.moodIdx-1]
}

// refresh re-derives the visible list from the store and the active filters.
func (v *activitiesView) refresh() {
	filtered := plan.FilterActivities(v.store.Activities(), plan.CatalogFilter{
		Query:    v.query.Value(),
		Category: v.selectedCategory(),
		Mood:     v.selectedMood(),
	})
	items := make([]list.Item, len(filtered))
	for i, a := range filtered {
		items[i] = activityItem{activity: a}
	}
	v.catalog.SetItems(items)
}

func (v *activitiesView) setSize(width, height int) {
	v.catalog.SetSize(max(20, width), max(6, height))
	v.query.Width = max(20, width-4)
}

// handleKey processes one key press. It returns a status line for the footer
// and whether the key was consumed.
func (v *activitiesView) handleKey(msg tea.KeyMsg) (string, bool) {
	if v.query.Focused() {
		switch msg.String() {
		case "enter", "esc":
			v.query.Blur()
			return "", true
		default:
			v.query, _ = v.query.Update(msg)
			v.refresh()
			return "", true
		}
	}

	switch msg.String() {
	case "/":
		v.query.Focus()
		return "Type to filter, enter to apply", true
	case "c":
		v.categoryIdx = (v.categoryIdx + 1) % (len(plan.Categories) + 1)
		v.refresh()
		return "Category: " + v.categoryLabel(), true
	case "m":
		v.moodIdx = (v.moodIdx + 1) % (len(plan.Moods) + 1)
		v.refresh()
		return "Mood: " + v.moodLabel(), true
	case "d":
		v.dayIdx = (v.dayIdx + 1) % len(plan.Days)
		return "Scheduling onto " + string(v.targetDay()), true
	case "enter":
		return v.scheduleSelected(), true
	}

	var cmd tea.Cmd
	v.catalog, cmd = v.catalog.Update(msg)
	_ = cmd
	return "", true
}

// scheduleSelected adds the highlighted activity to the target day with its
// default duration.
func (v *activitiesView) scheduleSelected() string {
	item, ok := v.catalog.SelectedItem().(activityItem)
	if !ok {
		return "Nothing to schedule"
	}
	duration := item.activity.DefaultDurationMin
	if duration <= 0 {
		duration = 60
	}
	day := v.targetDay()
	id := v.store.AddItem(plan.ItemDraft{
		ActivityID:  item.activity.ID,
		Day:         day,
		Start:       defaultStart,
		DurationMin: duration,
		Mood:        v.selectedMood(),
	})
	if id == "" {
		return "Could not schedule " + item.activity.Title
	}
	return fmt.Sprintf("Added %s to %s", item.activity.Title, day)
}

func (v *activitiesView) categoryLabel() string {
	if c := v.selectedCategory(); c != "" {
		return string(c)
	}
	return "all"
}

func (v *activitiesView) moodLabel() string {
	if m := v.selectedMood(); m != "" {
		return string(m)
	}
	return "all"
}

func (v *activitiesView) View() string {
	filters := dimStyle.Render(fmt.Sprintf(
		"category %s · mood %s · day %s",
		v.categoryLabel(), v.moodLabel(), v.targetDay(),
	))
	sections := []string{filters}
	if v.query.Focused() || v.query.Value() != "" {
		sections = append(sections, v.query.View())
	}
	sections = append(sections, v.catalog.View())
	hint := helpStyle.Render("enter schedule · / search · c category · m mood · d day · esc home")
	sections = append(sections, hint)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

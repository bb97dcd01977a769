package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/weekendly/internal/plan"
)

// renderShareCard builds the styled on-screen share card for the current plan.
func renderShareCard(store *plan.Store, width int) string {
	theme := store.Theme()
	accent := themeStyle(theme)
	lines := []string{
		accent.Render("MY WEEKEND · " + themeLabel(theme)),
		"",
	}
	for _, day := range plan.Days {
		lines = append(lines, titleStyle.Render(strings.ToUpper(string(day))))
		items := store.ItemsByDay(day)
		if len(items) == 0 {
			lines = append(lines, dimStyle.Render("  free day"))
		}
		for _, item := range items {
			lines = append(lines, "  "+shareLine(store, item))
		}
		lines = append(lines, "")
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(themePalettes[normalizeTheme(theme)].accent).
		Padding(1, 2).
		Width(max(30, width)).
		Render(strings.Join(lines, "\n"))
	hint := helpStyle.Render("s save card to exports · esc home")
	return lipgloss.JoinVertical(lipgloss.Left, card, hint)
}

// plainShareCard is the unstyled variant written to disk. No escape codes, so
// the file pastes cleanly anywhere.
func plainShareCard(store *plan.Store) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MY WEEKEND · %s\n\n", themeLabel(store.Theme()))
	for _, day := range plan.Days {
		fmt.Fprintf(&b, "%s\n", strings.ToUpper(string(day)))
		items := store.ItemsByDay(day)
		if len(items) == 0 {
			b.WriteString("  free day\n")
		}
		for _, item := range items {
			fmt.Fprintf(&b, "  %s\n", shareLine(store, item))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func shareLine(store *plan.Store, item plan.ScheduledItem) string {
	title := item.ActivityID
	icon := ""
	if a, ok := store.ActivityByID(item.ActivityID); ok {
		title = a.Title
		icon = a.Icon + " "
	}
	line := fmt.Sprintf("%s  %s%s (%d min)", item.Start, icon, title, item.DurationMin)
	if item.Mood != "" {
		line += " · " + string(item.Mood)
	}
	return line
}

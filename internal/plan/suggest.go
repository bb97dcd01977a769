package plan

import "fmt"

// autofill placement: two blocks per day, two hours apart.
const (
	autofillBaseHour  = 9
	autofillGapHours  = 2
	autofillBlockMins = 60
	autofillMaxPicks  = 4
)

// Autofill sketches a weekend in one step: it applies the theme, picks up to
// four catalog activities matching the mood (the whole catalog when mood is
// empty), and schedules two per day starting 09:00 with two-hour spacing.
// It returns the number of items added.
func (s *Store) Autofill(theme ThemeID, mood Mood) int {
	if theme.Valid() {
		s.SetTheme(theme)
	}
	pool := s.Activities()
	if mood != "" {
		pool = FilterActivities(pool, CatalogFilter{Mood: mood})
	}
	if len(pool) > autofillMaxPicks {
		pool = pool[:autofillMaxPicks]
	}
	slots := []struct {
		day    Day
		offset int
	}{
		{Saturday, 0},
		{Saturday, autofillGapHours},
		{Sunday, 0},
		{Sunday, autofillGapHours},
	}
	added := 0
	for i, pick := range pool {
		slot := slots[i]
		s.AddItem(ItemDraft{
			ActivityID:  pick.ID,
			Day:         slot.day,
			Start:       fmt.Sprintf("%02d:00", autofillBaseHour+slot.offset),
			DurationMin: autofillBlockMins,
			Mood:        mood,
		})
		added++
	}
	return added
}

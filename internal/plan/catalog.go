package plan

import "strings"

// DefaultCatalog returns the built-in activity catalog. It is seeded into the
// store on first launch only; users can replace it wholesale later.
func DefaultCatalog() []Activity {
	return []Activity{
		{ID: "brunch-cafe", Title: "Brunch at a café", Category: CategoryFood, Icon: "🥞", DefaultDurationMin: 90, Moods: []Mood{MoodHappy, MoodRelaxed}},
		{ID: "farmers-market", Title: "Farmers market run", Category: CategoryFood, Icon: "🥕", DefaultDurationMin: 60, Moods: []Mood{MoodHappy, MoodChill}},
		{ID: "bake-something", Title: "Bake something new", Category: CategoryFood, Icon: "🍞", DefaultDurationMin: 120, Moods: []Mood{MoodRelaxed, MoodChill}},
		{ID: "hiking-trail", Title: "Hiking trail", Category: CategoryOutdoor, Icon: "🥾", DefaultDurationMin: 180, Moods: []Mood{MoodEnergetic}},
		{ID: "picnic-park", Title: "Picnic in the park", Category: CategoryOutdoor, Icon: "🧺", DefaultDurationMin: 120, Moods: []Mood{MoodHappy, MoodRelaxed}},
		{ID: "cycling-loop", Title: "Cycling loop", Category: CategoryOutdoor, Icon: "🚴", DefaultDurationMin: 90, Moods: []Mood{MoodEnergetic}},
		{ID: "stargazing", Title: "Stargazing", Category: CategoryOutdoor, Icon: "🔭", DefaultDurationMin: 60, Moods: []Mood{MoodChill, MoodRelaxed}},
		{ID: "movie-night", Title: "Movie night", Category: CategoryEntertainment, Icon: "🎬", DefaultDurationMin: 150, Moods: []Mood{MoodChill, MoodHappy}},
		{ID: "board-games", Title: "Board games", Category: CategoryEntertainment, Icon: "🎲", DefaultDurationMin: 120, Moods: []Mood{MoodHappy}},
		{ID: "live-music", Title: "Live music", Category: CategoryEntertainment, Icon: "🎸", DefaultDurationMin: 180, Moods: []Mood{MoodEnergetic, MoodHappy}},
		{ID: "museum-visit", Title: "Museum visit", Category: CategoryLearning, Icon: "🏛️", DefaultDurationMin: 120, Moods: []Mood{MoodChill}},
		{ID: "reading-nook", Title: "Reading nook hour", Category: CategoryLearning, Icon: "📚", DefaultDurationMin: 60, Moods: []Mood{MoodRelaxed, MoodChill}},
		{ID: "language-hour", Title: "Language practice", Category: CategoryLearning, Icon: "🗣️", DefaultDurationMin: 45, Moods: []Mood{MoodEnergetic}},
		{ID: "morning-run", Title: "Morning run", Category: CategoryFitness, Icon: "🏃", DefaultDurationMin: 45, Moods: []Mood{MoodEnergetic}},
		{ID: "yoga-session", Title: "Yoga session", Category: CategoryFitness, Icon: "🧘", DefaultDurationMin: 60, Moods: []Mood{MoodRelaxed}},
		{ID: "swim-laps", Title: "Swim laps", Category: CategoryFitness, Icon: "🏊", DefaultDurationMin: 60, Moods: []Mood{MoodEnergetic}},
		{ID: "spa-at-home", Title: "Spa at home", Category: CategorySelfCare, Icon: "🛁", DefaultDurationMin: 90, Moods: []Mood{MoodRelaxed}},
		{ID: "journaling", Title: "Journaling", Category: CategorySelfCare, Icon: "✍️", DefaultDurationMin: 30, Moods: []Mood{MoodChill, MoodRelaxed}},
	}
}

// CatalogFilter narrows a catalog view. Zero values mean "no constraint".
type CatalogFilter struct {
	Query    string
	Category Category
	Mood     Mood
}

// FilterActivities returns the activities matching every set constraint, in
// the catalog's original order.
func FilterActivities(activities []Activity, filter CatalogFilter) []Activity {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	var out []Activity
	for _, a := range activities {
		if query != "" && !strings.Contains(strings.ToLower(a.Title), query) {
			continue
		}
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		if filter.Mood != "" && !a.HasMood(filter.Mood) {
			continue
		}
		out = append(out, a)
	}
	return out
}

package plan

import (
	"errors"
	"fmt"
	"strings"
)

// CurrentPlanID identifies the one active plan. Weekendly is a single-plan
// system: persistence, export, and import all operate on this slot.
const CurrentPlanID = "current"

// SnapshotVersion tags persisted state so future schema changes can be
// detected. No migrations exist yet.
const SnapshotVersion = 1

// Day identifies one of the two planable days.
type Day string

const (
	Saturday Day = "saturday"
	Sunday   Day = "sunday"
)

// Days lists the planable days in display order.
var Days = []Day{Saturday, Sunday}

// Valid reports whether the day is one of the two known days.
func (d Day) Valid() bool {
	return d == Saturday || d == Sunday
}

// ParseDay canonicalizes free-form input into a Day.
func ParseDay(value string) (Day, error) {
	d := Day(strings.ToLower(strings.TrimSpace(value)))
	if !d.Valid() {
		return "", fmt.Errorf("plan: unknown day %q", value)
	}
	return d, nil
}

// Mood tags an activity or scheduled item with a vibe.
type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodRelaxed   Mood = "relaxed"
	MoodEnergetic Mood = "energetic"
	MoodChill     Mood = "chill"
)

// Moods lists the known mood tags.
var Moods = []Mood{MoodHappy, MoodRelaxed, MoodEnergetic, MoodChill}

// Valid reports whether the mood is a known tag. The empty mood is not valid
// on its own; optional fields check for emptiness before validating.
func (m Mood) Valid() bool {
	switch m {
	case MoodHappy, MoodRelaxed, MoodEnergetic, MoodChill:
		return true
	}
	return false
}

// Category classifies a catalog activity.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryOutdoor       Category = "outdoor"
	CategoryEntertainment Category = "entertainment"
	CategoryLearning      Category = "learning"
	CategoryFitness       Category = "fitness"
	CategorySelfCare      Category = "self-care"
)

// Categories lists the known activity categories.
var Categories = []Category{
	CategoryFood,
	CategoryOutdoor,
	CategoryEntertainment,
	CategoryLearning,
	CategoryFitness,
	CategorySelfCare,
}

// Valid reports whether the category is known.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ThemeID selects the descriptive theme for a plan. Themes never change
// scheduling behavior; they only flavor presentation.
type ThemeID string

const (
	ThemeDefault     ThemeID = "default"
	ThemeLazy        ThemeID = "lazy"
	ThemeAdventurous ThemeID = "adventurous"
	ThemeFamily      ThemeID = "family"
)

// Themes lists the selectable themes.
var Themes = []ThemeID{ThemeDefault, ThemeLazy, ThemeAdventurous, ThemeFamily}

// Valid reports whether the theme is known.
func (t ThemeID) Valid() bool {
	switch t {
	case ThemeDefault, ThemeLazy, ThemeAdventurous, ThemeFamily:
		return true
	}
	return false
}

// Activity is one catalog entry. Entries are immutable once loaded; the
// catalog as a whole is seeded once and only ever replaced wholesale.
type Activity struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Category           Category `json:"category"`
	Icon               string   `json:"icon"`
	ImageURL           string   `json:"imageUrl,omitempty"`
	DefaultDurationMin int      `json:"defaultDurationMin,omitempty"`
	Moods              []Mood   `json:"moods,omitempty"`
}

// HasMood reports whether the activity carries the given mood tag.
func (a Activity) HasMood(m Mood) bool {
	for _, have := range a.Moods {
		if have == m {
			return true
		}
	}
	return false
}

// ScheduledItem places one activity at a day and time. IDs are generated by
// the store and never supplied by callers. ActivityID is not checked against
// the catalog; a dangling reference renders as the raw id.
type ScheduledItem struct {
	ID          string `json:"id"`
	ActivityID  string `json:"activityId"`
	Day         Day    `json:"day"`
	Start       string `json:"start"`
	DurationMin int    `json:"durationMin"`
	Mood        Mood   `json:"mood,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Order       int    `json:"order"`
}

// WeekendPlan is the aggregate root: every scheduled item across both days
// plus the theme selection. Items are not partitioned by day in storage;
// per-day views are derived.
type WeekendPlan struct {
	ID      string          `json:"id"`
	Items   []ScheduledItem `json:"items"`
	ThemeID ThemeID         `json:"themeId"`
}

// EmptyPlan returns the zero state every fresh or cleared plan starts from.
func EmptyPlan() WeekendPlan {
	return WeekendPlan{ID: CurrentPlanID, Items: []ScheduledItem{}, ThemeID: ThemeDefault}
}

// Clone returns a deep copy so callers can hold snapshots without aliasing
// store-owned slices.
func (p WeekendPlan) Clone() WeekendPlan {
	out := p
	out.Items = make([]ScheduledItem, len(p.Items))
	copy(out.Items, p.Items)
	return out
}

// ItemDraft carries the caller-supplied fields for a new scheduled item.
type ItemDraft struct {
	ActivityID  string
	Day         Day
	Start       string
	DurationMin int
	Mood        Mood
	Notes       string
}

// Validate enforces the closed-enum boundary for drafts.
func (d ItemDraft) Validate() error {
	if strings.TrimSpace(d.ActivityID) == "" {
		return errors.New("plan: activity id is required")
	}
	if !d.Day.Valid() {
		return fmt.Errorf("plan: unknown day %q", d.Day)
	}
	if d.Mood != "" && !d.Mood.Valid() {
		return fmt.Errorf("plan: unknown mood %q", d.Mood)
	}
	return nil
}

// ItemPatch describes a partial update. Nil fields are left untouched. The
// item id itself is never patchable.
type ItemPatch struct {
	ActivityID  *string
	Day         *Day
	Start       *string
	DurationMin *int
	Mood        *Mood
	Notes       *string
}

// Validate rejects unknown enum values before they reach stored state. An
// explicitly empty mood clears the tag and is allowed.
func (p ItemPatch) Validate() error {
	if p.Day != nil && !p.Day.Valid() {
		return fmt.Errorf("plan: unknown day %q", *p.Day)
	}
	if p.Mood != nil && *p.Mood != "" && !p.Mood.Valid() {
		return fmt.Errorf("plan: unknown mood %q", *p.Mood)
	}
	return nil
}

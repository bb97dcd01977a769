package plan

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Persister restores store state at construction and records it after every
// successful mutation. Saves are best-effort: implementations log failures
// and never surface them to the mutation caller.
type Persister interface {
	Load() (WeekendPlan, []Activity)
	Save(plan WeekendPlan, activities []Activity)
}

// Recorder receives one human-readable line per mutation for the activity
// journal. It matches journal.Journal's Info signature.
type Recorder interface {
	Info(format string, args ...any)
}

// Store is the single source of truth for the catalog and the weekend plan.
// Every read goes through a selector, every write through a mutation; UI
// surfaces hold no authoritative copies. Mutations persist best-effort and
// then notify subscribers.
type Store struct {
	mu         sync.RWMutex
	activities []Activity
	plan       WeekendPlan

	persister Persister
	journal   Recorder
	notifier  *notifier
	log       zerolog.Logger
	newID     func() string
}

// StoreOption customizes Store construction.
type StoreOption func(*Store)

// WithJournal wires the mutation journal.
func WithJournal(journal Recorder) StoreOption {
	return func(s *Store) {
		s.journal = journal
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(log zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// WithIDGenerator overrides scheduled-item id generation, for tests.
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New builds a store hydrated from the persister. A nil persister yields an
// in-memory-only store starting from the empty plan.
func New(persister Persister, opts ...StoreOption) *Store {
	s := &Store{
		plan:      EmptyPlan(),
		persister: persister,
		log:       zerolog.Nop(),
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.notifier = newNotifier(printfAdapter{s.log})
	if persister != nil {
		restored, activities := persister.Load()
		restored.ID = CurrentPlanID
		if restored.Items == nil {
			restored.Items = []ScheduledItem{}
		}
		if !restored.ThemeID.Valid() {
			restored.ThemeID = ThemeDefault
		}
		s.plan = restored
		s.activities = activities
	}
	return s
}

// Subscribe attaches a change feed. Surfaces refresh off this channel instead
// of polling or holding state copies.
func (s *Store) Subscribe() Subscription {
	return s.notifier.subscribe()
}

// Activities returns a snapshot of the catalog.
func (s *Store) Activities() []Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

// ActivityByID resolves a catalog entry. The second return is false for
// dangling references; callers render the raw id in that case.
func (s *Store) ActivityByID(id string) (Activity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.activities {
		if a.ID == id {
			return a, true
		}
	}
	return Activity{}, false
}

// Plan returns a deep snapshot of the current plan.
func (s *Store) Plan() WeekendPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plan.Clone()
}

// Theme returns the current theme selection.
func (s *Store) Theme() ThemeID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plan.ThemeID
}

// ItemsByDay returns the day's items sorted ascending by order, ties broken
// by lexicographic start time. The result is a fresh snapshot; mutating it
// never touches store state.
func (s *Store) ItemsByDay(day Day) []ScheduledItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ScheduledItem
	for _, item := range s.plan.Items {
		if item.Day == day {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Start < out[j].Start
	})
	return out
}

// SetActivities replaces the entire catalog. No merging.
func (s *Store) SetActivities(activities []Activity) {
	s.mu.Lock()
	s.activities = make([]Activity, len(activities))
	copy(s.activities, activities)
	s.persistLocked()
	s.mu.Unlock()
	s.notifier.publish(Change{Kind: ChangeCatalogSet})
}

// SeedActivities loads the catalog only when it is currently empty, so a
// restored catalog is never clobbered on startup.
func (s *Store) SeedActivities(activities []Activity) {
	s.mu.RLock()
	empty := len(s.activities) == 0
	s.mu.RUnlock()
	if empty {
		s.SetActivities(activities)
	}
}

// SetTheme updates the plan's theme. Unknown themes are a logged no-op.
func (s *Store) SetTheme(theme ThemeID) {
	if !theme.Valid() {
		s.log.Warn().Str("theme", string(theme)).Msg("ignoring unknown theme")
		return
	}
	s.mu.Lock()
	s.plan.ThemeID = theme
	s.persistLocked()
	s.mu.Unlock()
	s.record("Theme set to %s", theme)
	s.notifier.publish(Change{Kind: ChangeThemeSet})
}

// AddItem assigns a fresh id and the next order rank within the draft's day,
// appends the item, and returns the new id. Invalid drafts are a logged
// no-op returning the empty id.
func (s *Store) AddItem(draft ItemDraft) string {
	if err := draft.Validate(); err != nil {
		s.log.Warn().Err(err).Msg("rejecting scheduled item draft")
		return ""
	}
	s.mu.Lock()
	maxOrder := -1
	for _, item := range s.plan.Items {
		if item.Day == draft.Day && item.Order > maxOrder {
			maxOrder = item.Order
		}
	}
	item := ScheduledItem{
		ID:          s.newID(),
		ActivityID:  draft.ActivityID,
		Day:         draft.Day,
		Start:       strings.TrimSpace(draft.Start),
		DurationMin: draft.DurationMin,
		Mood:        draft.Mood,
		Notes:       draft.Notes,
		Order:       maxOrder + 1,
	}
	s.plan.Items = append(s.plan.Items, item)
	s.persistLocked()
	s.mu.Unlock()
	s.record("Added %s to %s at %s", s.displayTitle(item.ActivityID), item.Day, item.Start)
	s.notifier.publish(Change{Kind: ChangeItemAdded, Day: item.Day, ItemID: item.ID})
	return item.ID
}

// UpdateItem merges the patch into the matching item. Unknown ids and invalid
// patches are silent no-ops; the item id itself is never altered.
func (s *Store) UpdateItem(id string, patch ItemPatch) {
	if err := patch.Validate(); err != nil {
		s.log.Warn().Err(err).Str("item", id).Msg("rejecting item patch")
		return
	}
	var day Day
	found := false
	s.mu.Lock()
	for i := range s.plan.Items {
		if s.plan.Items[i].ID != id {
			continue
		}
		applyPatch(&s.plan.Items[i], patch)
		day = s.plan.Items[i].Day
		found = true
		break
	}
	if found {
		s.persistLocked()
	}
	s.mu.Unlock()
	if !found {
		return
	}
	s.record("Updated item on %s", day)
	s.notifier.publish(Change{Kind: ChangeItemUpdated, Day: day, ItemID: id})
}

// RemoveItem deletes the matching item. Unknown ids are a silent no-op.
// Remaining order values keep their gaps.
func (s *Store) RemoveItem(id string) {
	var removed ScheduledItem
	found := false
	s.mu.Lock()
	for i, item := range s.plan.Items {
		if item.ID == id {
			removed = item
			s.plan.Items = append(s.plan.Items[:i], s.plan.Items[i+1:]...)
			found = true
			break
		}
	}
	if found {
		s.persistLocked()
	}
	s.mu.Unlock()
	if !found {
		return
	}
	s.record("Removed %s from %s", s.displayTitle(removed.ActivityID), removed.Day)
	s.notifier.publish(Change{Kind: ChangeItemRemoved, Day: removed.Day, ItemID: id})
}

// ReorderDay rewrites the day's order ranks to each item's zero-based index
// within orderedIDs. Items of the day missing from orderedIDs get rank -1 and
// therefore sort first; callers avoid that by passing the complete id set.
func (s *Store) ReorderDay(day Day, orderedIDs []string) {
	if !day.Valid() {
		s.log.Warn().Str("day", string(day)).Msg("ignoring reorder for unknown day")
		return
	}
	index := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		index[id] = i
	}
	s.mu.Lock()
	for i := range s.plan.Items {
		if s.plan.Items[i].Day != day {
			continue
		}
		rank, ok := index[s.plan.Items[i].ID]
		if !ok {
			rank = -1
		}
		s.plan.Items[i].Order = rank
	}
	s.persistLocked()
	s.mu.Unlock()
	s.record("Reordered %s", day)
	s.notifier.publish(Change{Kind: ChangeDayReordered, Day: day})
}

// ClearAll resets the plan to empty with the default theme. The catalog is
// untouched.
func (s *Store) ClearAll() {
	s.mu.Lock()
	s.plan = EmptyPlan()
	s.persistLocked()
	s.mu.Unlock()
	s.record("Cleared the weekend plan")
	s.notifier.publish(Change{Kind: ChangePlanCleared})
}

// ReplacePlan swaps the whole plan in one step. The import path uses this so
// a restore is atomic: by the time callers observe anything, the old plan is
// gone entirely. The plan id is forced back to the singleton sentinel.
func (s *Store) ReplacePlan(p WeekendPlan) {
	p.ID = CurrentPlanID
	if p.Items == nil {
		p.Items = []ScheduledItem{}
	}
	if !p.ThemeID.Valid() {
		p.ThemeID = ThemeDefault
	}
	s.mu.Lock()
	s.plan = p.Clone()
	s.persistLocked()
	s.mu.Unlock()
	s.record("Restored plan with %d items", len(p.Items))
	s.notifier.publish(Change{Kind: ChangePlanReplaced})
}

// persistLocked records state through the persister. Callers hold s.mu.
// Failures stay inside the persister; in-memory state remains authoritative.
func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	s.persister.Save(s.plan.Clone(), append([]Activity(nil), s.activities...))
}

func (s *Store) record(format string, args ...any) {
	if s.journal != nil {
		s.journal.Info(format, args...)
	}
}

// displayTitle resolves an activity title, falling back to the raw id for
// dangling references.
func (s *Store) displayTitle(activityID string) string {
	if a, ok := s.ActivityByID(activityID); ok {
		return a.Title
	}
	return activityID
}

func applyPatch(item *ScheduledItem, patch ItemPatch) {
	if patch.ActivityID != nil {
		item.ActivityID = *patch.ActivityID
	}
	if patch.Day != nil {
		item.Day = *patch.Day
	}
	if patch.Start != nil {
		item.Start = strings.TrimSpace(*patch.Start)
	}
	if patch.DurationMin != nil {
		item.DurationMin = *patch.DurationMin
	}
	if patch.Mood != nil {
		item.Mood = *patch.Mood
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}
}

// printfAdapter lets the notifier log through zerolog with the shared Printf
// signature.
type printfAdapter struct {
	log zerolog.Logger
}

func (p printfAdapter) Printf(format string, args ...any) {
	p.log.Warn().Msgf(format, args...)
}

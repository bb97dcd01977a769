package plan

import (
	"fmt"
	"testing"
)

// capturePersister records the snapshots the store hands it.
type capturePersister struct {
	loadPlan       WeekendPlan
	loadActivities []Activity
	saved          []WeekendPlan
	savedCatalogs  [][]Activity
}

func (p *capturePersister) Load() (WeekendPlan, []Activity) {
	return p.loadPlan, p.loadActivities
}

func (p *capturePersister) Save(plan WeekendPlan, activities []Activity) {
	p.saved = append(p.saved, plan)
	p.savedCatalogs = append(p.savedCatalogs, activities)
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func TestNewHydratesAndNormalizesPersistedState(t *testing.T) {
	persister := &capturePersister{
		loadPlan: WeekendPlan{
			ID:      "stale-id",
			ThemeID: "never-heard-of-it",
			Items:   nil,
		},
		loadActivities: []Activity{{ID: "a1", Title: "One", Category: CategoryFood}},
	}
	s := New(persister)
	got := s.Plan()
	if got.ID != CurrentPlanID {
		t.Fatalf("plan id must be forced to %q, got %q", CurrentPlanID, got.ID)
	}
	if got.ThemeID != ThemeDefault {
		t.Fatalf("unknown persisted theme must fall back to default, got %q", got.ThemeID)
	}
	if got.Items == nil {
		t.Fatalf("items must never be nil")
	}
	if len(s.Activities()) != 1 {
		t.Fatalf("catalog not restored")
	}
}

func TestAddItemAssignsStrictlyIncreasingOrdersPerDay(t *testing.T) {
	s := New(nil, WithIDGenerator(sequentialIDs("item")))
	for i := 0; i < 3; i++ {
		s.AddItem(ItemDraft{ActivityID: "hike", Day: Saturday, Start: "09:00", DurationMin: 60})
	}
	s.AddItem(ItemDraft{ActivityID: "hike", Day: Sunday, Start: "09:00", DurationMin: 60})

	sat := s.ItemsByDay(Saturday)
	if len(sat) != 3 {
		t.Fatalf("expected 3 saturday items, got %d", len(sat))
	}
	for i, item := range sat {
		if item.Order != i {
			t.Fatalf("saturday order at %d = %d, want %d", i, item.Order, i)
		}
	}
	sun := s.ItemsByDay(Sunday)
	if len(sun) != 1 || sun[0].Order != 0 {
		t.Fatalf("sunday ordering independent of saturday, got %+v", sun)
	}
}

func TestAddItemRejectsInvalidDrafts(t *testing.T) {
	s := New(nil)
	if id := s.AddItem(ItemDraft{Day: Saturday, Start: "09:00"}); id != "" {
		t.Fatalf("missing activity id must be rejected, got id %q", id)
	}
	if id := s.AddItem(ItemDraft{ActivityID: "hike", Day: "friday"}); id != "" {
		t.Fatalf("unknown day must be rejected, got id %q", id)
	}
	if id := s.AddItem(ItemDraft{ActivityID: "hike", Day: Saturday, Mood: "grumpy"}); id != "" {
		t.Fatalf("unknown mood must be rejected, got id %q", id)
	}
	if got := len(s.Plan().Items); got != 0 {
		t.Fatalf("rejected drafts must not change the plan, got %d items", got)
	}
}

func TestItemsByDaySortsByOrderThenStart(t *testing.T) {
	s := New(nil, WithIDGenerator(sequentialIDs("item")))
	a := s.AddItem(ItemDraft{ActivityID: "a", Day: Saturday, Start: "12:00", DurationMin: 60})
	b := s.AddItem(ItemDraft{ActivityID: "b", Day: Saturday, Start: "08:00", DurationMin: 60})
	// Force an order tie so the start time breaks it.
	s.ReorderDay(Saturday, nil)
	_ = a

	items := s.ItemsByDay(Saturday)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != b {
		t.Fatalf("tie on order must sort by start, got %q first", items[0].ID)
	}
}

func TestReorderDayAppliesExactSequence(t *testing.T) {
	s := New(nil, WithIDGenerator(sequentialIDs("item")))
	first := s.AddItem(ItemDraft{ActivityID: "a", Day: Saturday, Start: "09:00", DurationMin: 60})
	second := s.AddItem(ItemDraft{ActivityID: "b", Day: Saturday, Start: "10:00", DurationMin: 60})
	third := s.AddItem(ItemDraft{ActivityID: "c", Day: Saturday, Start: "11:00", DurationMin: 60})

	s.ReorderDay(Saturday, []string{third, first, second})

	items := s.ItemsByDay(Saturday)
	want := []string{third, first, second}
	for i, item := range items {
		if item.ID != want[i] {
			t.Fatalf("position %d = %s, want %s", i, item.ID, want[i])
		}
		if item.Order != i {
			t.Fatalf("order at %d = %d, want %d", i, item.Order, i)
		}
	}
}

func TestReorderDayMissingIDGetsRankMinusOne(t *testing.T) {
	s := New(nil, WithIDGenerator(sequentialIDs("item")))
	first := s.AddItem(ItemDraft{ActivityID: "a", Day: Saturday, Start: "09:00", DurationMin: 60})
	second := s.AddItem(ItemDraft{ActivityID: "b", Day: Saturday, Start: "10:00", DurationMin: 60})

	s.ReorderDay(Saturday, []string{second})

	items := s.ItemsByDay(Saturday)
	if items[0].ID != first || items[0].Order != -1 {
		t.Fatalf("omitted item must rank -1 and sort first, got %+v", items[0])
	}
	if items[1].ID != second || items[1].Order != 0 {
		t.Fatalf("listed item must take its index, got %+v", items[1])
	}
}

func TestReorderDayIgnoresOtherDaysAndUnknownDay(t *testing.T) {
	s := New(nil, WithIDGenerator(sequentialIDs("item")))
	sat := s.AddItem(ItemDraft{ActivityID: "a", Day: Saturday, Start: "09:00", DurationMin: 60})
	sun := s.AddItem(ItemDraft{ActivityID: "b", Day: Sunday, Start: "09:00", DurationMin: 60})

	s.ReorderDay(Saturday, []string{sat, sun})
	if got := s.ItemsByDay(Sunday)[0].Order; got != 0 {
		t.Fatalf("sunday item touched by saturday reorder, order %d", got)
	}

	s.ReorderDay("someday", []string{sat})
	if got := s.ItemsByDay(Saturday)[0].Order; got != 0 {
		t.Fatalf("unknown day reorder must be a no-op, order %d", got)
	}
}

func TestUpdateItemMergesPatchAndKeepsID(t *testing.T) {
	s := New(nil, WithIDGenerator(sequentialIDs("item")))
	id := s.AddItem(ItemDraft{ActivityID: "a", Day: Saturday, Start: "09:00", DurationMin: 60, Notes: "keep me"})

	newStart := "14:00"
	newDay := Sunday
	s.UpdateItem(id, ItemPatch{Start: &newStart, Day: &newDay})

	items := s.ItemsByDay(Sunday)
	if len(items) != 1 {
		t.Fatalf("item should have moved to sunday")
	}
	got := items[0]
	if got.ID != id {
		t.Fatalf("update must never change the id, got %q", got.ID)
	}
	if got.Start != "14:00" || got.Notes != "keep me" || got.DurationMin != 60 {
		t.Fatalf("patch merge wrong: %+v", got)
	}
}

func TestUpdateItemUnknownIDAndInvalidPatchAreNoOps(t *testing.T) {
	s := New(nil, WithIDGenerator(sequentialIDs("item")))
	id := s.AddItem(ItemDraft{ActivityID: "a", Day: Saturday, Start: "09:00", DurationMin: 60})

	other := "13:00"
	s.UpdateItem("no-such-item", ItemPatch{Start: &other})

	badDay := Day("midweek")
	s.UpdateItem(id, ItemPatch{Day: &badDay})

	got := s.ItemsByDay(Saturday)[0]
	if got.Start != "09:00" || got.Day != Saturday {
		t.Fatalf("no-op updates must leave the item alone: %+v", got)
	}
}

func TestRemoveItemKeepsOrderGapsAndIgnoresUnknown(t *testing.T) {
	s := New(nil, WithIDGenerator(sequentialIDs("item")))
	s.AddItem(ItemDraft{ActivityID: "a", Day: Saturday, Start: "09:00", DurationMin: 60})
	middle := s.AddItem(ItemDraft{ActivityID: "b", Day: Saturday, Start: "10:00", DurationMin: 60})
	s.AddItem(ItemDraft{ActivityID: "c", Day: Saturday, Start: "11:00", DurationMin: 60})

	s.RemoveItem(middle)
	s.RemoveItem(middle) // second remove is a no-op
	s.RemoveItem("never-existed")

	items := s.ItemsByDay(Saturday)
	if len(items) != 2 {
		t.Fatalf("expected 2 items after remove, got %d", len(items))
	}
	if items[0].Order != 0 || items[1].Order != 2 {
		t.Fatalf("remaining orders must keep their gaps, got %d and %d", items[0].Order, items[1].Order)
	}

	// The next add still lands after the highest surviving order.
	s.AddItem(ItemDraft{ActivityID: "d", Day: Saturday, Start: "12:00", DurationMin: 60})
	items = s.ItemsByDay(Saturday)
	if items[2].Order != 3 {
		t.Fatalf("new item must take max order + 1, got %d", items[2].Order)
	}
}

func TestClearAllResetsPlanButKeepsCatalog(t *testing.T) {
	s := New(nil)
	s.SetActivities([]Activity{{ID: "a1", Title: "One", Category: CategoryFood}})
	s.SetTheme(ThemeLazy)
	s.AddItem(ItemDraft{ActivityID: "a1", Day: Saturday, Start: "09:00", DurationMin: 60})

	s.ClearAll()

	got := s.Plan()
	if got.ID != CurrentPlanID || len(got.Items) != 0 || got.ThemeID != ThemeDefault {
		t.Fatalf("clear must reset to the empty plan, got %+v", got)
	}
	if len(s.Activities()) != 1 {
		t.Fatalf("clear must not touch the catalog")
	}
}

func TestSetThemeRejectsUnknownValues(t *testing.T) {
	s := New(nil)
	s.SetTheme(ThemeFamily)
	s.SetTheme("spooky")
	if got := s.Theme(); got != ThemeFamily {
		t.Fatalf("unknown theme must be ignored, got %q", got)
	}
}

func TestSeedActivitiesOnlyFillsEmptyCatalog(t *testing.T) {
	s := New(nil)
	s.SeedActivities([]Activity{{ID: "a1", Title: "One", Category: CategoryFood}})
	s.SeedActivities([]Activity{{ID: "a2", Title: "Two", Category: CategoryFood}})
	catalog := s.Activities()
	if len(catalog) != 1 || catalog[0].ID != "a1" {
		t.Fatalf("seed must not clobber an existing catalog, got %+v", catalog)
	}
}

func TestReplacePlanForcesSingletonIdentity(t *testing.T) {
	s := New(nil)
	s.ReplacePlan(WeekendPlan{
		ID:      "imported-id",
		ThemeID: "unknown",
		Items:   []ScheduledItem{{ID: "x", ActivityID: "a", Day: Saturday, Start: "09:00", Order: 0}},
	})
	got := s.Plan()
	if got.ID != CurrentPlanID {
		t.Fatalf("replace must force the singleton plan id, got %q", got.ID)
	}
	if got.ThemeID != ThemeDefault {
		t.Fatalf("unknown theme must fall back to default, got %q", got.ThemeID)
	}
	if len(got.Items) != 1 {
		t.Fatalf("replacement items lost")
	}
}

func TestEveryMutationPersistsBestEffort(t *testing.T) {
	persister := &capturePersister{loadPlan: EmptyPlan()}
	s := New(persister, WithIDGenerator(sequentialIDs("item")))

	id := s.AddItem(ItemDraft{ActivityID: "a", Day: Saturday, Start: "09:00", DurationMin: 60})
	start := "10:00"
	s.UpdateItem(id, ItemPatch{Start: &start})
	s.ReorderDay(Saturday, []string{id})
	s.SetTheme(ThemeLazy)
	s.RemoveItem(id)
	s.ClearAll()

	if got := len(persister.saved); got != 6 {
		t.Fatalf("expected one save per mutation, got %d", got)
	}
	last := persister.saved[len(persister.saved)-1]
	if len(last.Items) != 0 || last.ThemeID != ThemeDefault {
		t.Fatalf("final snapshot should be the cleared plan, got %+v", last)
	}
}

func TestPlanSnapshotsAreIsolatedFromStoreState(t *testing.T) {
	s := New(nil, WithIDGenerator(sequentialIDs("item")))
	s.AddItem(ItemDraft{ActivityID: "a", Day: Saturday, Start: "09:00", DurationMin: 60})

	snapshot := s.Plan()
	snapshot.Items[0].Start = "23:59"
	byDay := s.ItemsByDay(Saturday)
	byDay[0].Start = "23:58"

	if got := s.Plan().Items[0].Start; got != "09:00" {
		t.Fatalf("mutating a snapshot must not touch the store, got %q", got)
	}
}

func TestScheduleReorderRemoveScenario(t *testing.T) {
	s := New(nil, WithIDGenerator(sequentialIDs("item")))
	a := s.AddItem(ItemDraft{ActivityID: "walk", Day: Saturday, Start: "09:00", DurationMin: 60})
	b := s.AddItem(ItemDraft{ActivityID: "cafe", Day: Saturday, Start: "10:00", DurationMin: 60})
	s.AddItem(ItemDraft{ActivityID: "museum", Day: Sunday, Start: "11:00", DurationMin: 120})

	sat := s.ItemsByDay(Saturday)
	if len(sat) != 2 || sat[0].ID != a || sat[1].ID != b {
		t.Fatalf("expected [A, B] on saturday, got %+v", sat)
	}
	for _, item := range sat {
		if item.Day != Saturday {
			t.Fatalf("day view leaked an item from %s", item.Day)
		}
	}

	s.ReorderDay(Saturday, []string{b, a})
	sat = s.ItemsByDay(Saturday)
	if sat[0].ID != b || sat[1].ID != a {
		t.Fatalf("expected [B, A] after reorder, got %+v", sat)
	}

	s.RemoveItem(a)
	sat = s.ItemsByDay(Saturday)
	if len(sat) != 1 || sat[0].ID != b {
		t.Fatalf("expected [B] after removing A, got %+v", sat)
	}
	if got := len(s.ItemsByDay(Sunday)); got != 1 {
		t.Fatalf("sunday must be untouched, got %d items", got)
	}
}

func TestClearAllAcrossBothDaysEmptiesEverything(t *testing.T) {
	s := New(nil, WithIDGenerator(sequentialIDs("item")))
	s.SetTheme(ThemeAdventurous)
	for i := 0; i < 3; i++ {
		s.AddItem(ItemDraft{ActivityID: "a", Day: Saturday, Start: "09:00", DurationMin: 60})
	}
	for i := 0; i < 2; i++ {
		s.AddItem(ItemDraft{ActivityID: "b", Day: Sunday, Start: "09:00", DurationMin: 60})
	}

	s.ClearAll()

	if got := len(s.ItemsByDay(Saturday)); got != 0 {
		t.Fatalf("saturday not empty after clear: %d", got)
	}
	if got := len(s.ItemsByDay(Sunday)); got != 0 {
		t.Fatalf("sunday not empty after clear: %d", got)
	}
	if got := s.Theme(); got != ThemeDefault {
		t.Fatalf("theme must reset to default, got %q", got)
	}
}

func TestActivityByIDReportsDanglingReferences(t *testing.T) {
	s := New(nil)
	s.SetActivities([]Activity{{ID: "a1", Title: "One", Category: CategoryFood}})
	if _, ok := s.ActivityByID("a1"); !ok {
		t.Fatalf("known activity not found")
	}
	if _, ok := s.ActivityByID("ghost"); ok {
		t.Fatalf("dangling reference must report false")
	}
}

package backup

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kingrea/weekendly/internal/plan"
)

func fixedClock(t *testing.T) func() time.Time {
	t.Helper()
	at, err := time.Parse("2006-01-02", "2025-06-14")
	if err != nil {
		t.Fatalf("parse clock: %v", err)
	}
	return func() time.Time { return at }
}

func newTestManager(t *testing.T) (*Manager, *plan.Store, string) {
	t.Helper()
	store := plan.New(nil)
	store.SetActivities(plan.DefaultCatalog())
	dir := t.TempDir()
	mgr := New(store, dir, zerolog.Nop(), WithClock(fixedClock(t)))
	return mgr, store, dir
}

func TestExportWritesDatedPrettyJSON(t *testing.T) {
	mgr, store, dir := newTestManager(t)
	store.AddItem(plan.ItemDraft{ActivityID: "brunch-cafe", Day: plan.Saturday, Start: "10:00", DurationMin: 90})

	path, err := mgr.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Base(path) != "weekend-plans-2025-06-14.json" {
		t.Fatalf("unexpected export name %q", filepath.Base(path))
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("export landed outside the export dir: %q", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(raw), "\n  ") {
		t.Fatalf("export should be pretty-printed:\n%s", raw)
	}
	var doc plan.WeekendPlan
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("export is not a plan document: %v", err)
	}
	if doc.ID != plan.CurrentPlanID || len(doc.Items) != 1 {
		t.Fatalf("exported document wrong: %+v", doc)
	}
}

func TestExportImportRoundTripRewritesIdentity(t *testing.T) {
	mgr, store, _ := newTestManager(t)
	store.SetTheme(plan.ThemeLazy)
	firstID := store.AddItem(plan.ItemDraft{ActivityID: "movie-night", Day: plan.Sunday, Start: "19:00", DurationMin: 150, Notes: "bring snacks"})
	store.AddItem(plan.ItemDraft{ActivityID: "yoga-session", Day: plan.Saturday, Start: "08:00", DurationMin: 60, Mood: plan.MoodRelaxed})

	path, err := mgr.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	store.ClearAll()

	if err := mgr.Import(path); err != nil {
		t.Fatalf("import: %v", err)
	}
	restored := store.Plan()
	if restored.ID != plan.CurrentPlanID {
		t.Fatalf("import must force plan id, got %q", restored.ID)
	}
	if restored.ThemeID != plan.ThemeLazy {
		t.Fatalf("theme lost across round trip, got %q", restored.ThemeID)
	}
	if len(restored.Items) != 2 {
		t.Fatalf("expected 2 restored items, got %d", len(restored.Items))
	}
	for i, item := range restored.Items {
		if item.ID == firstID {
			t.Fatalf("item ids must be regenerated on import")
		}
		if item.Order != i {
			t.Fatalf("import order must follow document position, item %d has order %d", i, item.Order)
		}
	}
	// Everything except id and order survives.
	found := false
	for _, item := range restored.Items {
		if item.ActivityID == "movie-night" {
			found = true
			if item.Start != "19:00" || item.Notes != "bring snacks" || item.Day != plan.Sunday {
				t.Fatalf("item fields lost: %+v", item)
			}
		}
	}
	if !found {
		t.Fatalf("movie-night missing from restored plan")
	}
}

func TestRestoreRejectsWrongShapesAsValidationErrors(t *testing.T) {
	cases := map[string]string{
		"null document":  `null`,
		"missing id":     `{"items":[],"themeId":"default"}`,
		"blank id":       `{"id":"  ","items":[]}`,
		"non-string id":  `{"id":7,"items":[]}`,
		"missing items":  `{"id":"current","themeId":"default"}`,
		"items not list": `{"id":"current","items":{"a":1}}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			mgr, store, _ := newTestManager(t)
			store.AddItem(plan.ItemDraft{ActivityID: "journaling", Day: plan.Saturday, Start: "09:00", DurationMin: 30})
			before := store.Plan()

			err := mgr.Restore(strings.NewReader(doc))
			var invalid *ValidationError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			after := store.Plan()
			if len(after.Items) != len(before.Items) {
				t.Fatalf("failed restore must leave the plan unchanged")
			}
		})
	}
}

func TestRestoreParseFailureIsNotAValidationError(t *testing.T) {
	mgr, store, _ := newTestManager(t)
	before := store.Plan()

	err := mgr.Restore(strings.NewReader("{broken"))
	if err == nil {
		t.Fatalf("expected parse error")
	}
	var invalid *ValidationError
	if errors.As(err, &invalid) {
		t.Fatalf("parse failures must not be validation errors: %v", err)
	}
	if got := store.Plan(); len(got.Items) != len(before.Items) {
		t.Fatalf("failed restore must leave the plan unchanged")
	}
}

func TestRestoreAcceptsDanglingActivityReferences(t *testing.T) {
	mgr, store, _ := newTestManager(t)
	doc := `{"id":"whatever","items":[{"id":"x","activityId":"not-in-catalog","day":"saturday","start":"09:00","durationMin":60,"order":5}],"themeId":"family"}`
	if err := mgr.Restore(strings.NewReader(doc)); err != nil {
		t.Fatalf("shape-valid document must import: %v", err)
	}
	items := store.Plan().Items
	if len(items) != 1 || items[0].ActivityID != "not-in-catalog" {
		t.Fatalf("dangling reference must be kept: %+v", items)
	}
	if items[0].Order != 0 {
		t.Fatalf("order must be rewritten to position, got %d", items[0].Order)
	}
}

func TestImportMissingFileSurfacesOpenError(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	err := mgr.Import(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	var invalid *ValidationError
	if errors.As(err, &invalid) {
		t.Fatalf("open failures are not validation errors: %v", err)
	}
}

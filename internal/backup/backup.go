// Package backup handles the manual file snapshot path: exporting the plan
// as a standalone JSON document and restoring from one. This is independent
// of the automatic persistence layer; its files travel between machines.
package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kingrea/weekendly/internal/plan"
)

// ValidationError reports an import document whose shape is wrong. It is
// distinguishable from a JSON parse failure so the UI can word the message.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "backup: invalid plan file: " + e.Reason
}

// Manager exports and imports plan files against a store.
type Manager struct {
	store     *plan.Store
	exportDir string
	log       zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock overrides the clock used for export file names.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) {
		if clock != nil {
			m.now = clock
		}
	}
}

// WithIDGenerator overrides item id regeneration during import, for tests.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) {
		if gen != nil {
			m.newID = gen
		}
	}
}

// New builds a Manager writing exports into exportDir.
func New(store *plan.Store, exportDir string, log zerolog.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		exportDir: exportDir,
		log:       log,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ExportFileName returns the dated name an export written now would get.
func (m *Manager) ExportFileName() string {
	return fmt.Sprintf("weekend-plans-%s.json", m.now().Format("2006-01-02"))
}

// Export writes the current plan, pretty-printed, to a dated file in the
// export directory and returns its path. Failures are logged and returned;
// store state is never touched.
func (m *Manager) Export() (string, error) {
	if err := os.MkdirAll(m.exportDir, 0o755); err != nil {
		m.log.Warn().Err(err).Msg("could not create export directory")
		return "", fmt.Errorf("backup: ensure export dir: %w", err)
	}
	path := filepath.Join(m.exportDir, m.ExportFileName())
	file, err := os.Create(path)
	if err != nil {
		m.log.Warn().Err(err).Str("path", path).Msg("could not create export file")
		return "", fmt.Errorf("backup: create export file: %w", err)
	}
	defer file.Close()
	if err := m.WritePlan(file); err != nil {
		m.log.Warn().Err(err).Str("path", path).Msg("could not write export file")
		return "", err
	}
	return path, nil
}

// WritePlan streams the current plan as pretty-printed JSON. The document is
// the bare WeekendPlan shape, not the versioned persistence envelope.
func (m *Manager) WritePlan(w io.Writer) error {
	raw, err := json.MarshalIndent(m.store.Plan(), "", "  ")
	if err != nil {
		return fmt.Errorf("backup: encode plan: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("backup: write plan: %w", err)
	}
	return nil
}

// Import reads the file at path and replaces the current plan with its
// contents. See Restore for the replacement rules.
func (m *Manager) Import(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("backup: open import file: %w", err)
	}
	defer file.Close()
	return m.Restore(file)
}

// Restore parses and validates a plan document, then atomically replaces the
// current plan. The imported plan never keeps its identity: the plan id is
// forced back to the singleton sentinel, every item id is regenerated to
// avoid collisions, and order values are rewritten to the document's
// positional sequence. On any error the store is left unchanged.
func (m *Manager) Restore(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("backup: read import: %w", err)
	}
	imported, err := decodePlan(raw)
	if err != nil {
		return err
	}
	replacement := plan.WeekendPlan{
		ID:      plan.CurrentPlanID,
		ThemeID: imported.ThemeID,
		Items:   make([]plan.ScheduledItem, len(imported.Items)),
	}
	for i, item := range imported.Items {
		item.ID = m.newID()
		item.Order = i
		replacement.Items[i] = item
	}
	m.store.ReplacePlan(replacement)
	m.log.Info().Int("items", len(replacement.Items)).Msg("restored plan from file")
	return nil
}

// decodePlan parses the document and applies the minimal shape checks: the
// value is an object, id is a non-empty string, and items is an array.
// Anything beyond shape (dangling activity ids, odd times) is accepted.
func decodePlan(raw []byte) (plan.WeekendPlan, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return plan.WeekendPlan{}, fmt.Errorf("backup: parse import: %w", err)
	}
	if probe == nil {
		return plan.WeekendPlan{}, &ValidationError{Reason: "document is null"}
	}
	var id string
	if rawID, ok := probe["id"]; ok {
		if err := json.Unmarshal(rawID, &id); err != nil {
			return plan.WeekendPlan{}, &ValidationError{Reason: "id is not a string"}
		}
	}
	if strings.TrimSpace(id) == "" {
		return plan.WeekendPlan{}, &ValidationError{Reason: "missing plan id"}
	}
	rawItems, ok := probe["items"]
	if !ok {
		return plan.WeekendPlan{}, &ValidationError{Reason: "missing items"}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(rawItems, &items); err != nil {
		return plan.WeekendPlan{}, &ValidationError{Reason: "items is not an array"}
	}
	var p plan.WeekendPlan
	if err := json.Unmarshal(raw, &p); err != nil {
		return plan.WeekendPlan{}, fmt.Errorf("backup: parse import: %w", err)
	}
	return p, nil
}

// cmd/weekendly/main.go
//
// This is the entry point for Weekendly.
// When you run `weekendly`, this is what executes.
//
// Flow:
// 1. Resolve the .weekendly home directory and load configuration
// 2. Open the log file, journal, and the plan snapshot storage
// 3. Hydrate the plan store and launch the TUI

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/weekendly/internal/backup"
	"github.com/kingrea/weekendly/internal/config"
	"github.com/kingrea/weekendly/internal/journal"
	"github.com/kingrea/weekendly/internal/kvstore"
	"github.com/kingrea/weekendly/internal/logging"
	"github.com/kingrea/weekendly/internal/persist"
	"github.com/kingrea/weekendly/internal/plan"
	"github.com/kingrea/weekendly/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "weekendly: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	if err := config.InitHomeDir(cfg.HomeDir); err != nil {
		return fmt.Errorf("initialize %s: %w", cfg.HomeDir, err)
	}

	log, closeLog, err := logging.New(cfg.LogPath(), cfg.Settings.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	jl, err := journal.New(cfg.JournalPath())
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}

	kv, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	store := plan.New(
		persist.New(kv, log),
		plan.WithJournal(jl),
		plan.WithLogger(log),
	)
	store.SeedActivities(plan.DefaultCatalog())

	defaultDay, err := plan.ParseDay(cfg.Settings.DefaultDay)
	if err != nil {
		defaultDay = plan.Saturday
	}

	app := tui.NewApp(
		store,
		backup.New(store, cfg.ExportsDir(), log),
		tui.WithJournalFeed(jl),
		tui.WithDefaultDay(defaultDay),
		tui.WithShareDir(cfg.ExportsDir()),
	)
	defer app.Close()

	log.Info().Str("home", cfg.HomeDir).Str("storage", cfg.Settings.Storage).Msg("starting weekendly")

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("tui exited with error")
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// openStorage picks the snapshot backend from configuration. The memory
// backend keeps the plan for the session only; useful for trying things out.
func openStorage(cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Settings.Storage {
	case config.StorageMemory:
		return kvstore.NewMemory(), nil
	default:
		return kvstore.OpenSQLite(cfg.DatabasePath())
	}
}

// Package persist snapshots plan-store state into a key-value byte store.
// Durability is best-effort: the in-memory store stays authoritative, reads
// tolerate corrupt data, and writes never fail a mutation.
package persist

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/kingrea/weekendly/internal/kvstore"
	"github.com/kingrea/weekendly/internal/plan"
)

// StateKey is the fixed key the snapshot lives under.
const StateKey = "weekendly-plan"

// envelope wraps the persisted subset of store state with a version tag so
// future schema migrations can be detected. Only plan and catalog are
// persisted; derived state is rebuilt on load.
type envelope struct {
	State   state `json:"state"`
	Version int   `json:"version"`
}

type state struct {
	Plan       plan.WeekendPlan `json:"plan"`
	Activities []plan.Activity  `json:"activities"`
}

// Adapter implements plan.Persister over a kvstore.Store.
type Adapter struct {
	kv  kvstore.Store
	log zerolog.Logger
}

// New wraps the given byte store.
func New(kv kvstore.Store, log zerolog.Logger) *Adapter {
	return &Adapter{kv: kv, log: log}
}

// Load restores the persisted snapshot. An absent key yields the empty state
// without complaint; unreadable or unparseable data is discarded with a
// warning. Load never fails startup.
func (a *Adapter) Load() (plan.WeekendPlan, []plan.Activity) {
	raw, ok, err := a.kv.Get(StateKey)
	if err != nil {
		a.log.Warn().Err(err).Msg("could not read persisted plan, starting empty")
		return plan.EmptyPlan(), nil
	}
	if !ok {
		return plan.EmptyPlan(), nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		a.log.Warn().Err(err).Msg("discarding corrupt persisted plan")
		return plan.EmptyPlan(), nil
	}
	if env.Version != plan.SnapshotVersion {
		a.log.Warn().Int("version", env.Version).Msg("discarding persisted plan with unknown version")
		return plan.EmptyPlan(), nil
	}
	return env.State.Plan, env.State.Activities
}

// Save writes the snapshot. Failures (full disk, closed backend) are logged
// and swallowed so the mutation that triggered the save still succeeds.
func (a *Adapter) Save(p plan.WeekendPlan, activities []plan.Activity) {
	raw, err := json.Marshal(envelope{
		State:   state{Plan: p, Activities: activities},
		Version: plan.SnapshotVersion,
	})
	if err != nil {
		a.log.Warn().Err(err).Msg("could not encode plan snapshot")
		return
	}
	if err := a.kv.Put(StateKey, raw); err != nil {
		a.log.Warn().Err(err).Msg("could not persist plan snapshot")
	}
}

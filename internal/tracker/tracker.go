// Package tracker holds the match session: the selected team, the period
// clock and every roster mutation. A Tracker is not safe for concurrent use;
// callers serialise access the way a single UI loop would.
package tracker

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/Tiliavir/field-time-tracker/internal/model"
	"github.com/Tiliavir/field-time-tracker/internal/storage"
)

// Store keys.
const (
	KeyTeams       = "teams"
	KeyClockState  = "clock_state"
	KeyPreferences = "preferences"
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces the wall clock. In production, use clockwork.NewRealClock(). In tests, a FakeClock.
func WithClock(c clockwork.Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

// WithDefaultRotation sets the rotation interval given to teams created or
// imported from now on. Zero keeps model.DefaultRotationMinutes.
func WithDefaultRotation(minutes int) Option {
	return func(t *Tracker) { t.defaultRotation = minutes }
}

// Tracker is the session context shared by every operation.
type Tracker struct {
	clock           clockwork.Clock
	store           storage.Store
	defaultRotation int

	teams map[string]*model.TeamRecord
	prefs model.Preferences

	current string
	period  model.Period
	running bool
	anchor  time.Time
}

// New returns an empty tracker backed by store. Call Load to read saved state.
func New(store storage.Store, opts ...Option) *Tracker {
	t := &Tracker{
		clock:  clockwork.NewRealClock(),
		store:  store,
		teams:  make(map[string]*model.TeamRecord),
		prefs:  model.DefaultPreferences(),
		period: model.Q1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) newRecord() *model.TeamRecord {
	rec := model.NewTeamRecord()
	if t.defaultRotation > 0 {
		rec.RotationMinutes = t.defaultRotation
	}
	return rec
}

// Load reads all persisted state. Read failures are logged and the affected
// store starts empty; Load never fails. A running clock saved for the
// selected team resumes from its saved anchor.
func (t *Tracker) Load(ctx context.Context) {
	teams := make(map[string]*model.TeamRecord)
	if err := storage.LoadJSON(ctx, t.store, KeyTeams, &teams); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error().Err(err).Str("key", KeyTeams).Msg("loading teams failed, starting empty")
		}
		teams = make(map[string]*model.TeamRecord)
	}
	for name, rec := range teams {
		if rec == nil {
			rec = model.NewTeamRecord()
			teams[name] = rec
		}
		rec.Normalize()
	}
	t.teams = teams

	prefs := model.DefaultPreferences()
	if err := storage.LoadJSON(ctx, t.store, KeyPreferences, &prefs); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error().Err(err).Str("key", KeyPreferences).Msg("loading preferences failed, using defaults")
		}
		prefs = model.DefaultPreferences()
	}
	t.prefs = prefs

	t.current = ""
	t.period = model.Q1
	t.running = false
	t.anchor = time.Time{}
	if _, ok := t.teams[prefs.SelectedTeam]; ok && prefs.SelectedTeam != "" {
		t.current = prefs.SelectedTeam
		t.restoreClock(ctx)
	}
}

// restoreClock applies the saved clock snapshot when it belongs to the
// current team. Player sessions are not touched: they carry their own anchors.
func (t *Tracker) restoreClock(ctx context.Context) {
	var state model.ClockState
	if err := storage.LoadJSON(ctx, t.store, KeyClockState, &state); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error().Err(err).Str("key", KeyClockState).Msg("loading clock state failed")
		}
		return
	}
	if state.Team != t.current {
		return
	}
	if state.Quarter.Valid() {
		t.period = state.Quarter
	}
	if state.IsRunning && state.StartTime != nil {
		t.running = true
		t.anchor = *state.StartTime
		log.Debug().
			Str("team", t.current).
			Str("quarter", string(t.period)).
			Time("anchor", t.anchor).
			Msg("resumed running match clock")
	}
}

// Now returns the tracker's current time.
func (t *Tracker) Now() time.Time {
	return t.clock.Now()
}

// CurrentTeam returns the selected team name, or "".
func (t *Tracker) CurrentTeam() string {
	return t.current
}

// Period returns the active period.
func (t *Tracker) Period() model.Period {
	return t.period
}

// Running reports whether the match clock is running.
func (t *Tracker) Running() bool {
	return t.running
}

// Teams returns all team names, sorted.
func (t *Tracker) Teams() []string {
	names := make([]string, 0, len(t.teams))
	for name := range t.teams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Team returns the record for name. The record is owned by the tracker and
// must not be mutated by callers.
func (t *Tracker) Team(name string) (*model.TeamRecord, error) {
	rec, ok := t.teams[name]
	if !ok {
		return nil, ErrTeamNotFound
	}
	return rec, nil
}

// Record returns the selected team's record.
func (t *Tracker) Record() (*model.TeamRecord, error) {
	if t.current == "" {
		return nil, ErrNoTeam
	}
	return t.Team(t.current)
}

// Preferences returns the user preferences.
func (t *Tracker) Preferences() model.Preferences {
	return t.prefs
}

// SetSoundEnabled mutes or unmutes the alert cue.
func (t *Tracker) SetSoundEnabled(ctx context.Context, enabled bool) {
	t.prefs.SoundEnabled = enabled
	t.savePreferences(ctx)
}

// SetControlsCollapsed stores the collapsed state of the controls panel.
func (t *Tracker) SetControlsCollapsed(ctx context.Context, collapsed bool) {
	t.prefs.ControlsCollapsed = collapsed
	t.savePreferences(ctx)
}

// SetRotationHistoryCollapsed stores the collapsed state of the rotation history.
func (t *Tracker) SetRotationHistoryCollapsed(ctx context.Context, collapsed bool) {
	t.prefs.RotationHistoryCollapsed = collapsed
	t.savePreferences(ctx)
}

// save writes v under key. Failures are logged and swallowed.
func (t *Tracker) save(ctx context.Context, key string, v any) {
	if err := storage.SaveJSON(ctx, t.store, key, v); err != nil {
		log.Error().Err(err).Str("key", key).Msg("persisting state failed")
	}
}

func (t *Tracker) saveTeams(ctx context.Context) {
	t.save(ctx, KeyTeams, t.teams)
}

func (t *Tracker) savePreferences(ctx context.Context) {
	t.save(ctx, KeyPreferences, t.prefs)
}

func (t *Tracker) saveClockState(ctx context.Context) {
	if t.current == "" {
		return
	}
	state := model.ClockState{
		IsRunning:   t.running,
		ElapsedTime: t.Tick(),
		Team:        t.current,
		Quarter:     t.period,
	}
	if t.running {
		anchor := t.anchor
		state.StartTime = &anchor
	}
	t.save(ctx, KeyClockState, state)
}

func (t *Tracker) clearClockState(ctx context.Context) {
	if err := t.store.Delete(ctx, KeyClockState); err != nil {
		log.Error().Err(err).Str("key", KeyClockState).Msg("clearing clock state failed")
	}
}

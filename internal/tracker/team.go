package tracker

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Tiliavir/field-time-tracker/internal/model"
)

// CreateTeam adds an empty team. It does not change the selection.
func (t *Tracker) CreateTeam(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("team name must not be empty")
	}
	if _, ok := t.teams[name]; ok {
		return ErrTeamExists
	}
	t.teams[name] = t.newRecord()
	t.saveTeams(ctx)
	return nil
}

// SelectTeam makes name the current team; "" clears the selection. A
// running clock for the previous team is stopped first so its open sessions
// are closed rather than orphaned.
func (t *Tracker) SelectTeam(ctx context.Context, name string) error {
	if name != "" {
		if _, ok := t.teams[name]; !ok {
			return ErrTeamNotFound
		}
	}
	if name == t.current {
		return nil
	}
	if t.running {
		if err := t.Stop(ctx); err != nil {
			return err
		}
	}

	t.current = name
	t.period = model.Q1
	t.prefs.SelectedTeam = name
	t.savePreferences(ctx)

	if name == "" {
		t.clearClockState(ctx)
		return nil
	}
	t.restoreClock(ctx)
	t.saveClockState(ctx)
	return nil
}

// RenameTeam moves a team's whole record to a new name.
func (t *Tracker) RenameTeam(ctx context.Context, oldName, newName string) error {
	rec, ok := t.teams[oldName]
	if !ok {
		return ErrTeamNotFound
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return invalid("team name must not be empty")
	}
	if newName == oldName {
		return nil
	}
	if _, exists := t.teams[newName]; exists {
		return ErrTeamExists
	}

	oldPlayer, newPlayer := oldName+" Player", newName+" Player"
	for i := range rec.Events {
		e := &rec.Events[i]
		if e.Type == model.EventPenalty && e.Side == model.SideTeam && e.Player == oldPlayer {
			e.Player = newPlayer
		}
	}
	delete(t.teams, oldName)
	t.teams[newName] = rec
	t.saveTeams(ctx)

	if t.current == oldName {
		t.current = newName
		t.prefs.SelectedTeam = newName
		t.savePreferences(ctx)
		t.saveClockState(ctx)
	}
	return nil
}

// DeleteTeam removes a team and everything it owns.
func (t *Tracker) DeleteTeam(ctx context.Context, name string) error {
	if _, ok := t.teams[name]; !ok {
		return ErrTeamNotFound
	}
	delete(t.teams, name)
	t.saveTeams(ctx)

	if t.current == name {
		t.current = ""
		t.period = model.Q1
		t.running = false
		t.prefs.SelectedTeam = ""
		t.savePreferences(ctx)
		t.clearClockState(ctx)
	}
	return nil
}

// Reset zeroes the selected team's match: player times, field state and
// rotation logs, events and period clocks. Player names are kept.
func (t *Tracker) Reset(ctx context.Context) error {
	rec, err := t.Record()
	if err != nil {
		return err
	}
	for i := range rec.Players {
		rec.Players[i].ResetStats()
	}
	rec.Events = []model.Event{}
	rec.QuarterClocks = model.NewQuarterClocks()

	t.running = false
	t.anchor = time.Time{}
	t.clearClockState(ctx)
	t.saveTeams(ctx)

	log.Info().Str("team", t.current).Msg("match reset")
	return nil
}

// ImportTeam replaces the named team's players. Events and clocks are
// replaced only when non-nil, so a partial share keeps what is already
// stored. The imported team becomes the selection.
func (t *Tracker) ImportTeam(ctx context.Context, name string, players []model.Player, events []model.Event, clocks model.QuarterClocks) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("imported team has no name")
	}
	if players == nil {
		return invalid("imported team has no roster")
	}
	if t.running {
		if err := t.Stop(ctx); err != nil {
			return err
		}
	}

	rec, ok := t.teams[name]
	if !ok {
		rec = t.newRecord()
	}
	rec.Players = players
	for i := range rec.Players {
		rec.Players[i].SessionStart = nil
	}
	if events != nil {
		rec.Events = events
	}
	if clocks != nil {
		rec.QuarterClocks = clocks
	}
	rec.Normalize()
	t.teams[name] = rec
	t.saveTeams(ctx)

	if t.current == name {
		t.saveClockState(ctx)
	} else if err := t.SelectTeam(ctx, name); err != nil {
		return err
	}

	log.Info().
		Str("team", name).
		Int("players", len(rec.Players)).
		Int("events", len(rec.Events)).
		Msg("team imported")
	return nil
}

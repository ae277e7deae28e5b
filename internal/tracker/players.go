package tracker

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Tiliavir/field-time-tracker/internal/model"
	"github.com/Tiliavir/field-time-tracker/internal/timecalc"
)

// Level classifies an open session against the rotation interval.
type Level int

const (
	LevelOK Level = iota
	LevelNear
	LevelOver
)

func (l Level) String() string {
	switch l {
	case LevelNear:
		return "near"
	case LevelOver:
		return "over"
	}
	return "ok"
}

// Threshold flags sessions approaching or exceeding the rotation interval:
// near at 80% of Interval, over at Interval.
type Threshold struct {
	Interval time.Duration
}

// Classify returns the level for a session of the given length.
func (th Threshold) Classify(sessionSeconds int64) Level {
	r := int64(th.Interval / time.Second)
	switch {
	case sessionSeconds >= r:
		return LevelOver
	case sessionSeconds*5 >= r*4:
		return LevelNear
	}
	return LevelOK
}

// PlayerStatus is the derived display state of one player.
type PlayerStatus struct {
	Name           string
	OnField        bool
	DisplaySeconds int64
	SessionSeconds int64
	Level          Level
}

// Warning reports whether the player is near or over the rotation interval.
func (s PlayerStatus) Warning() bool {
	return s.Level >= LevelNear
}

// Alert reports whether the player is over the rotation interval. Callers
// raise the audio cue on every redraw while this holds.
func (s PlayerStatus) Alert() bool {
	return s.Level == LevelOver
}

// NotPlayed reports whether the player is off the field with no time at all.
func (s PlayerStatus) NotPlayed() bool {
	return !s.OnField && s.DisplaySeconds == 0
}

// Players recomputes the display state of the selected team's roster.
func (t *Tracker) Players() ([]PlayerStatus, error) {
	rec, err := t.Record()
	if err != nil {
		return nil, err
	}
	now := t.clock.Now()
	th := Threshold{Interval: rec.Rotation()}

	out := make([]PlayerStatus, 0, len(rec.Players))
	for _, p := range rec.Players {
		st := PlayerStatus{
			Name:           p.Name,
			OnField:        p.OnField,
			DisplaySeconds: p.TotalTime,
		}
		if p.OnField && p.HasSession() {
			st.SessionSeconds = timecalc.ElapsedSeconds(*p.SessionStart, now)
			st.DisplaySeconds += st.SessionSeconds
		}
		if p.OnField {
			st.Level = th.Classify(st.SessionSeconds)
		}
		out = append(out, st)
	}
	return out, nil
}

// ToggleField moves a player on or off the field. Going off closes an open
// session. Going on opens a session only while the clock runs; otherwise
// time starts accruing when the clock is started.
func (t *Tracker) ToggleField(ctx context.Context, name string) (model.Player, error) {
	rec, err := t.Record()
	if err != nil {
		return model.Player{}, err
	}
	i := rec.FindPlayer(name)
	if i < 0 {
		return model.Player{}, ErrPlayerNotFound
	}

	p := &rec.Players[i]
	now := t.clock.Now()
	if p.OnField {
		if p.HasSession() {
			t.closeSession(p, now)
		}
		p.OnField = false
	} else {
		p.OnField = true
		p.SessionStart = nil
		if t.running {
			start := now
			p.SessionStart = &start
		}
	}

	t.saveTeams(ctx)
	return *p, nil
}

// AddPlayer appends a player with zeroed stats to the selected team.
func (t *Tracker) AddPlayer(ctx context.Context, name string) error {
	rec, err := t.Record()
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("player name must not be empty")
	}
	if rec.FindPlayer(name) >= 0 {
		return invalid("player %q is already on the roster", name)
	}
	rec.Players = append(rec.Players, model.NewPlayer(name))
	t.saveTeams(ctx)
	return nil
}

// RenamePlayer renames a player and rewrites our-side events that name them.
func (t *Tracker) RenamePlayer(ctx context.Context, oldName, newName string) error {
	rec, err := t.Record()
	if err != nil {
		return err
	}
	i := rec.FindPlayer(oldName)
	if i < 0 {
		return ErrPlayerNotFound
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return invalid("player name must not be empty")
	}
	if newName == oldName {
		return nil
	}
	if rec.FindPlayer(newName) >= 0 {
		return invalid("player %q is already on the roster", newName)
	}

	rec.Players[i].Name = newName
	for j := range rec.Events {
		e := &rec.Events[j]
		if e.Side == model.SideTeam && e.Player == oldName {
			e.Player = newName
		}
	}
	t.saveTeams(ctx)
	return nil
}

// RemovePlayer deletes a player from the roster. Logged events keep the name.
func (t *Tracker) RemovePlayer(ctx context.Context, name string) error {
	rec, err := t.Record()
	if err != nil {
		return err
	}
	i := rec.FindPlayer(name)
	if i < 0 {
		return ErrPlayerNotFound
	}
	rec.Players = append(rec.Players[:i], rec.Players[i+1:]...)
	t.saveTeams(ctx)
	return nil
}

// SetRotationMinutes stores the selected team's rotation interval.
func (t *Tracker) SetRotationMinutes(ctx context.Context, minutes int) error {
	rec, err := t.Record()
	if err != nil {
		return err
	}
	if minutes <= 0 {
		return invalid("rotation interval must be at least 1 minute")
	}
	rec.RotationMinutes = minutes
	t.saveTeams(ctx)
	return nil
}

// RotationRow is a rotation entry together with its player.
type RotationRow struct {
	Player string
	model.RotationEntry
}

// Rotations returns every logged session of the selected team ordered by
// in-time.
func (t *Tracker) Rotations() ([]RotationRow, error) {
	rec, err := t.Record()
	if err != nil {
		return nil, err
	}
	var rows []RotationRow
	for _, p := range rec.Players {
		for _, entry := range p.RotationLog {
			rows = append(rows, RotationRow{Player: p.Name, RotationEntry: entry})
		}
	}
	sortRotations(rows)
	return rows, nil
}

// sortRotations orders rows by in-time. The wall-clock layout is zero padded,
// so string order is time order within a match.
func sortRotations(rows []RotationRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].In < rows[j].In
	})
}

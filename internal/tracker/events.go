package tracker

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tiliavir/field-time-tracker/internal/model"
	"github.com/Tiliavir/field-time-tracker/internal/timecalc"
)

// EventInput is what the user supplies when logging or editing an event.
type EventInput struct {
	Type    model.EventType
	Side    model.Side   // goal and penalty only; defaults to SideTeam
	Player  string       // required for our goals and every non-scoring event
	Quarter model.Period // defaults to the active period on record, the event's own on edit
}

// RecordEvent validates in and appends a new event to the selected team.
func (t *Tracker) RecordEvent(ctx context.Context, in EventInput) (model.Event, error) {
	rec, err := t.Record()
	if err != nil {
		return model.Event{}, err
	}
	if in.Quarter == "" {
		in.Quarter = t.period
	}
	e, err := t.buildEvent(rec, in)
	if err != nil {
		return model.Event{}, err
	}

	now := t.clock.Now()
	e.ID = uuid.New().String()
	e.Time = timecalc.FormatWallClock(now)
	// Share links carry milliseconds.
	e.Timestamp = time.UnixMilli(now.UnixMilli())
	rec.Events = append(rec.Events, e)
	t.saveTeams(ctx)
	return e, nil
}

// EditEvent replaces an event's details, keeping its id and recorded time.
func (t *Tracker) EditEvent(ctx context.Context, ref string, in EventInput) (model.Event, error) {
	rec, err := t.Record()
	if err != nil {
		return model.Event{}, err
	}
	i, err := resolveEvent(rec, ref)
	if err != nil {
		return model.Event{}, err
	}
	old := rec.Events[i]
	if in.Quarter == "" {
		in.Quarter = old.Quarter
	}
	e, err := t.buildEvent(rec, in)
	if err != nil {
		return model.Event{}, err
	}
	e.ID = old.ID
	e.Time = old.Time
	e.Timestamp = old.Timestamp
	rec.Events[i] = e
	t.saveTeams(ctx)
	return e, nil
}

// DeleteEvent removes an event.
func (t *Tracker) DeleteEvent(ctx context.Context, ref string) error {
	rec, err := t.Record()
	if err != nil {
		return err
	}
	i, err := resolveEvent(rec, ref)
	if err != nil {
		return err
	}
	rec.Events = append(rec.Events[:i], rec.Events[i+1:]...)
	t.saveTeams(ctx)
	return nil
}

// Events returns the selected team's events in logging order.
func (t *Tracker) Events() ([]model.Event, error) {
	rec, err := t.Record()
	if err != nil {
		return nil, err
	}
	return rec.Events, nil
}

// Event looks up one event by id or id prefix.
func (t *Tracker) Event(ref string) (model.Event, error) {
	rec, err := t.Record()
	if err != nil {
		return model.Event{}, err
	}
	i, err := resolveEvent(rec, ref)
	if err != nil {
		return model.Event{}, err
	}
	return rec.Events[i], nil
}

// Score returns the selected team's score and the opponent's.
func (t *Tracker) Score() (team, other int, err error) {
	rec, err := t.Record()
	if err != nil {
		return 0, 0, err
	}
	team, other = model.Score(rec.Events)
	return team, other, nil
}

// buildEvent applies the crediting rules: opponent goals go to a generic
// player, penalties are credited to the awarded side, every other event
// belongs to one of our players.
func (t *Tracker) buildEvent(rec *model.TeamRecord, in EventInput) (model.Event, error) {
	if in.Type == "" {
		return model.Event{}, invalid("please select an event type")
	}
	if !in.Type.Valid() {
		return model.Event{}, invalid("unknown event type %q", in.Type)
	}
	if !in.Quarter.Valid() {
		return model.Event{}, invalid("unknown period %q", in.Quarter)
	}
	side := in.Side
	if side == "" {
		side = model.SideTeam
	}
	if !side.Valid() {
		return model.Event{}, invalid("unknown side %q (want team or other)", side)
	}
	player := strings.TrimSpace(in.Player)

	e := model.Event{Type: in.Type, Quarter: in.Quarter}
	switch in.Type {
	case model.EventGoal:
		e.Side = side
		if side == model.SideOther {
			e.Player = model.OtherTeamPlayer
			break
		}
		if player == "" {
			return model.Event{}, invalid("please select a player")
		}
		if rec.FindPlayer(player) < 0 {
			return model.Event{}, invalid("%q is not on the roster", player)
		}
		e.Player = player
	case model.EventPenalty:
		e.Side = side
		if side == model.SideOther {
			e.Player = model.OtherTeamPlayer
		} else {
			e.Player = t.current + " Player"
		}
	default:
		if player == "" {
			return model.Event{}, invalid("please select a player")
		}
		if rec.FindPlayer(player) < 0 {
			return model.Event{}, invalid("%q is not on the roster", player)
		}
		e.Side = model.SideTeam
		e.Player = player
	}
	return e, nil
}

// resolveEvent finds an event by id or by an unambiguous id prefix of at
// least four characters.
func resolveEvent(rec *model.TeamRecord, ref string) (int, error) {
	if i := rec.FindEvent(ref); i >= 0 {
		return i, nil
	}
	if len(ref) < 4 {
		return -1, ErrEventNotFound
	}
	found := -1
	for i := range rec.Events {
		if strings.HasPrefix(rec.Events[i].ID, ref) {
			if found >= 0 {
				return -1, invalid("event id %q is ambiguous", ref)
			}
			found = i
		}
	}
	if found < 0 {
		return -1, ErrEventNotFound
	}
	return found, nil
}

package share

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tiliavir/field-time-tracker/internal/model"
)

// Options selects what goes into a share token. Player names always do.
type Options struct {
	Times    bool // total time and field state
	Rotation bool // rotation logs
	Events   bool
	Quarters bool // period clocks
}

// DefaultOptions shares the event log only.
func DefaultOptions() Options {
	return Options{Events: true}
}

// AllOptions shares everything.
func AllOptions() Options {
	return Options{Times: true, Rotation: true, Events: true, Quarters: true}
}

// Payload is the content of a share token. Events and QuarterClocks are nil
// when the token does not carry them, which is distinct from empty.
type Payload struct {
	TeamName      string
	Players       []model.Player
	Events        []model.Event
	QuarterClocks model.QuarterClocks
}

// Build selects the shared subset of a team record. Open sessions are never
// shared.
func Build(teamName string, rec *model.TeamRecord, opts Options) Payload {
	p := Payload{TeamName: teamName, Players: make([]model.Player, 0, len(rec.Players))}
	for _, src := range rec.Players {
		pl := model.NewPlayer(src.Name)
		if opts.Times {
			pl.TotalTime = src.TotalTime
			pl.OnField = src.OnField
			if opts.Rotation {
				pl.RotationLog = append([]model.RotationEntry{}, src.RotationLog...)
			}
		}
		p.Players = append(p.Players, pl)
	}
	if opts.Events {
		p.Events = append([]model.Event{}, rec.Events...)
	}
	if opts.Quarters {
		p.QuarterClocks = model.NewQuarterClocks()
		for period, secs := range rec.QuarterClocks {
			p.QuarterClocks[period] = secs
		}
	}
	return p
}

// wire types mirror the JSON layout used by share links, including fields
// only older links carry (lastTimestamp, goals, scorer).
type wirePlayer struct {
	Name          string                `json:"name"`
	TotalTime     int64                 `json:"totalTime"`
	OnField       bool                  `json:"onField"`
	SessionStart  *int64                `json:"sessionStart"`
	LastTimestamp *int64                `json:"lastTimestamp"`
	RotationLog   []model.RotationEntry `json:"rotationLog"`
}

type wireEvent struct {
	ID        string          `json:"id,omitempty"`
	Type      model.EventType `json:"type,omitempty"`
	Player    string          `json:"player,omitempty"`
	Scorer    string          `json:"scorer,omitempty"`
	Team      model.Side      `json:"team"`
	Quarter   model.Period    `json:"quarter"`
	Time      string          `json:"time"`
	Timestamp int64           `json:"timestamp"`
}

type wirePayload struct {
	TeamName      string               `json:"teamName"`
	Team          []wirePlayer         `json:"team"`
	Events        *[]wireEvent         `json:"events,omitempty"`
	Goals         *[]wireEvent         `json:"goals,omitempty"`
	QuarterClocks *model.QuarterClocks `json:"quarterClocks,omitempty"`
}

func toWire(p Payload) wirePayload {
	w := wirePayload{TeamName: p.TeamName, Team: make([]wirePlayer, 0, len(p.Players))}
	for _, pl := range p.Players {
		log := pl.RotationLog
		if log == nil {
			log = []model.RotationEntry{}
		}
		w.Team = append(w.Team, wirePlayer{
			Name:        pl.Name,
			TotalTime:   pl.TotalTime,
			OnField:     pl.OnField,
			RotationLog: log,
		})
	}
	if p.Events != nil {
		events := make([]wireEvent, 0, len(p.Events))
		for _, e := range p.Events {
			events = append(events, wireEvent{
				ID:        e.ID,
				Type:      e.Type,
				Player:    e.Player,
				Team:      e.Side,
				Quarter:   e.Quarter,
				Time:      e.Time,
				Timestamp: e.Timestamp.UnixMilli(),
			})
		}
		w.Events = &events
	}
	if p.QuarterClocks != nil {
		qc := p.QuarterClocks
		w.QuarterClocks = &qc
	}
	return w
}

// fromWire validates a decoded token and converts it to a Payload.
func fromWire(w wirePayload) (Payload, error) {
	p := Payload{TeamName: strings.TrimSpace(w.TeamName)}
	if p.TeamName == "" {
		return Payload{}, fmt.Errorf("missing team name")
	}
	if w.Team == nil {
		return Payload{}, fmt.Errorf("missing roster")
	}

	p.Players = make([]model.Player, 0, len(w.Team))
	for i, wp := range w.Team {
		if strings.TrimSpace(wp.Name) == "" {
			return Payload{}, fmt.Errorf("player %d has no name", i)
		}
		if wp.TotalTime < 0 {
			return Payload{}, fmt.Errorf("player %q has negative time", wp.Name)
		}
		for _, r := range wp.RotationLog {
			if r.Quarter != "" && !r.Quarter.Valid() {
				return Payload{}, fmt.Errorf("player %q has a rotation in unknown period %q", wp.Name, r.Quarter)
			}
		}
		pl := model.NewPlayer(wp.Name)
		pl.TotalTime = wp.TotalTime
		pl.OnField = wp.OnField
		if wp.RotationLog != nil {
			pl.RotationLog = wp.RotationLog
		}
		p.Players = append(p.Players, pl)
	}

	if w.Events != nil || w.Goals != nil {
		p.Events = []model.Event{}
	}
	if w.Events != nil {
		for _, we := range *w.Events {
			e, err := eventFromWire(we)
			if err != nil {
				return Payload{}, err
			}
			p.Events = append(p.Events, e)
		}
	}
	if w.Goals != nil {
		for _, wg := range *w.Goals {
			wg.Type = model.EventGoal
			if wg.Player == "" {
				wg.Player = wg.Scorer
			}
			e, err := eventFromWire(wg)
			if err != nil {
				return Payload{}, err
			}
			p.Events = append(p.Events, e)
		}
	}

	if w.QuarterClocks != nil {
		p.QuarterClocks = model.QuarterClocks{}
		for period, secs := range *w.QuarterClocks {
			if !period.Valid() {
				return Payload{}, fmt.Errorf("unknown period %q in clocks", period)
			}
			if secs < 0 {
				return Payload{}, fmt.Errorf("negative clock for %s", period)
			}
			p.QuarterClocks[period] = secs
		}
	}
	return p, nil
}

func eventFromWire(we wireEvent) (model.Event, error) {
	if !we.Type.Valid() {
		return model.Event{}, fmt.Errorf("unknown event type %q", we.Type)
	}
	if !we.Team.Valid() {
		return model.Event{}, fmt.Errorf("unknown side %q", we.Team)
	}
	if !we.Quarter.Valid() {
		return model.Event{}, fmt.Errorf("unknown period %q", we.Quarter)
	}
	id := we.ID
	if id == "" {
		id = uuid.New().String()
	}
	return model.Event{
		ID:        id,
		Type:      we.Type,
		Player:    we.Player,
		Side:      we.Team,
		Quarter:   we.Quarter,
		Time:      we.Time,
		Timestamp: time.UnixMilli(we.Timestamp),
	}, nil
}

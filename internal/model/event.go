package model

import (
	"fmt"
	"time"
)

// EventType is the closed set of match events that can be logged.
type EventType string

const (
	EventGoal     EventType = "goal"
	EventPenalty  EventType = "penalty"
	EventSave     EventType = "save"
	EventInjury   EventType = "injury"
	EventCleat    EventType = "cleat"
	EventLaces    EventType = "laces"
	EventHeadbutt EventType = "headbutt"
)

// EventTypes lists every event type in menu order.
var EventTypes = []EventType{
	EventGoal,
	EventPenalty,
	EventSave,
	EventInjury,
	EventCleat,
	EventLaces,
	EventHeadbutt,
}

// Label returns the display label, or "" for an unknown type.
func (t EventType) Label() string {
	switch t {
	case EventGoal:
		return "⚽ Goal"
	case EventPenalty:
		return "🚨 Penalty Point"
	case EventSave:
		return "🛡️ Goal Prevented"
	case EventInjury:
		return "🤕 Player Injury"
	case EventCleat:
		return "👟 Lost Cleat"
	case EventLaces:
		return "👟 Untied Laces"
	case EventHeadbutt:
		return "🤕 Ball Head-butt"
	}
	return ""
}

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	return t.Label() != ""
}

// Scores reports whether events of this type count towards the score.
func (t EventType) Scores() bool {
	return t == EventGoal || t == EventPenalty
}

// ParseEventType parses an event type name.
func ParseEventType(s string) (EventType, error) {
	t := EventType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown event type %q", s)
	}
	return t, nil
}

// Side is the team an event is credited to.
type Side string

const (
	SideTeam  Side = "team"
	SideOther Side = "other"
)

// Valid reports whether s is a known side.
func (s Side) Valid() bool {
	return s == SideTeam || s == SideOther
}

// OtherTeamPlayer is the player name recorded for opponent events.
const OtherTeamPlayer = "Other Team Player"

// Event is a logged match event.
type Event struct {
	ID        string    `json:"id" yaml:"id"`
	Type      EventType `json:"type" yaml:"type"`
	Player    string    `json:"player" yaml:"player"`
	Side      Side      `json:"team" yaml:"team"`
	Quarter   Period    `json:"quarter" yaml:"quarter"`
	Time      string    `json:"time" yaml:"time"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Score counts scoring events per side.
func Score(events []Event) (team, other int) {
	for _, e := range events {
		if !e.Type.Scores() {
			continue
		}
		switch e.Side {
		case SideTeam:
			team++
		case SideOther:
			other++
		}
	}
	return team, other
}

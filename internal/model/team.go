package model

import "time"

// DefaultRotationMinutes is the rotation interval used when a team has none set.
const DefaultRotationMinutes = 5

// TeamRecord owns everything stored for one team. Renaming or deleting a team
// moves or removes players, events and clocks together.
type TeamRecord struct {
	Players         []Player      `json:"players" yaml:"players"`
	Events          []Event       `json:"events" yaml:"events"`
	QuarterClocks   QuarterClocks `json:"quarterClocks" yaml:"quarter_clocks"`
	RotationMinutes int           `json:"rotationMinutes,omitempty" yaml:"rotation_minutes,omitempty"`
}

// NewTeamRecord returns an empty record with zeroed clocks.
func NewTeamRecord() *TeamRecord {
	return &TeamRecord{
		Players:       []Player{},
		Events:        []Event{},
		QuarterClocks: NewQuarterClocks(),
	}
}

// Normalize fills nil collections left by older or partial files.
func (r *TeamRecord) Normalize() {
	if r.Players == nil {
		r.Players = []Player{}
	}
	for i := range r.Players {
		if r.Players[i].RotationLog == nil {
			r.Players[i].RotationLog = []RotationEntry{}
		}
	}
	if r.Events == nil {
		r.Events = []Event{}
	}
	if r.QuarterClocks == nil {
		r.QuarterClocks = NewQuarterClocks()
	}
	for _, p := range Periods {
		if _, ok := r.QuarterClocks[p]; !ok {
			r.QuarterClocks[p] = 0
		}
	}
}

// Rotation returns the configured rotation interval.
func (r *TeamRecord) Rotation() time.Duration {
	minutes := r.RotationMinutes
	if minutes <= 0 {
		minutes = DefaultRotationMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// FindPlayer returns the index of the named player, or -1.
func (r *TeamRecord) FindPlayer(name string) int {
	for i := range r.Players {
		if r.Players[i].Name == name {
			return i
		}
	}
	return -1
}

// FindEvent returns the index of the event with the given id, or -1.
func (r *TeamRecord) FindEvent(id string) int {
	for i := range r.Events {
		if r.Events[i].ID == id {
			return i
		}
	}
	return -1
}

// ClockState is the restart-resilient snapshot of the match clock.
// When running, ElapsedTime = now - StartTime.
type ClockState struct {
	IsRunning   bool       `json:"isRunning"`
	StartTime   *time.Time `json:"startTime"`
	ElapsedTime int64      `json:"elapsedTime"`
	Team        string     `json:"team"`
	Quarter     Period     `json:"quarter"`
}

// Preferences are the user settings that are not tied to a team.
type Preferences struct {
	SelectedTeam             string `json:"selectedTeam"`
	SoundEnabled             bool   `json:"soundEnabled"`
	ControlsCollapsed        bool   `json:"controlsCollapsed"`
	RotationHistoryCollapsed bool   `json:"rotationHistoryCollapsed"`
}

// DefaultPreferences returns the settings of a fresh install.
func DefaultPreferences() Preferences {
	return Preferences{
		SoundEnabled:             true,
		RotationHistoryCollapsed: true,
	}
}

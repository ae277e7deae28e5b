package model

import "time"

// Player is a roster member and their accumulated playing time.
// SessionStart is set only while the player is on the field and the match
// clock was running when the session opened. TotalTime excludes the open session.
type Player struct {
	Name         string          `json:"name" yaml:"name"`
	TotalTime    int64           `json:"totalTime" yaml:"total_time"`
	OnField      bool            `json:"onField" yaml:"on_field"`
	SessionStart *time.Time      `json:"sessionStart" yaml:"session_start,omitempty"`
	RotationLog  []RotationEntry `json:"rotationLog" yaml:"rotation_log"`
}

// RotationEntry is one closed field session.
type RotationEntry struct {
	In       string `json:"in" yaml:"in"`
	Out      string `json:"out" yaml:"out"`
	Duration string `json:"duration" yaml:"duration"`
	Quarter  Period `json:"quarter" yaml:"quarter"`
}

// NewPlayer returns a player with zeroed stats.
func NewPlayer(name string) Player {
	return Player{Name: name, RotationLog: []RotationEntry{}}
}

// HasSession reports whether the player has an open session.
func (p Player) HasSession() bool {
	return p.SessionStart != nil
}

// ResetStats zeroes time, field state and log while keeping the identity.
func (p *Player) ResetStats() {
	p.TotalTime = 0
	p.OnField = false
	p.SessionStart = nil
	p.RotationLog = []RotationEntry{}
}

package model_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/field-time-tracker/internal/model"
)

func TestScore(t *testing.T) {
	events := []model.Event{
		{Type: model.EventGoal, Side: model.SideTeam},
		{Type: model.EventPenalty, Side: model.SideOther},
		{Type: model.EventSave, Side: model.SideTeam},
	}
	team, other := model.Score(events)
	if team != 1 || other != 1 {
		t.Errorf("Score = %d-%d, want 1-1", team, other)
	}
}

func TestEventTypesHaveLabels(t *testing.T) {
	seen := map[string]bool{}
	for _, et := range model.EventTypes {
		label := et.Label()
		if label == "" {
			t.Errorf("event type %q has no label", et)
		}
		if seen[label] && et != model.EventCleat && et != model.EventLaces {
			t.Errorf("duplicate label %q for %q", label, et)
		}
		seen[label] = true
		if _, err := model.ParseEventType(string(et)); err != nil {
			t.Errorf("ParseEventType(%q): %v", et, err)
		}
	}
	if _, err := model.ParseEventType("corner"); err == nil {
		t.Error("ParseEventType(corner): expected error")
	}
}

func TestEventTypeScores(t *testing.T) {
	for _, et := range model.EventTypes {
		want := et == model.EventGoal || et == model.EventPenalty
		if got := et.Scores(); got != want {
			t.Errorf("%q.Scores() = %v, want %v", et, got, want)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	for _, p := range model.Periods {
		got, err := model.ParsePeriod(string(p))
		if err != nil || got != p {
			t.Errorf("ParsePeriod(%q) = %q, %v", p, got, err)
		}
	}
	if _, err := model.ParsePeriod("Q5"); err == nil {
		t.Error("ParsePeriod(Q5): expected error")
	}
}

func TestTeamRecordNormalize(t *testing.T) {
	rec := &model.TeamRecord{
		Players:       []model.Player{{Name: "Ava"}},
		QuarterClocks: model.QuarterClocks{model.Q2: 30},
	}
	rec.Normalize()

	if rec.Events == nil {
		t.Error("Events should not be nil after Normalize")
	}
	if rec.Players[0].RotationLog == nil {
		t.Error("RotationLog should not be nil after Normalize")
	}
	if len(rec.QuarterClocks) != len(model.Periods) {
		t.Errorf("QuarterClocks has %d periods, want %d", len(rec.QuarterClocks), len(model.Periods))
	}
	if rec.QuarterClocks[model.Q2] != 30 {
		t.Errorf("Normalize changed Q2 to %d", rec.QuarterClocks[model.Q2])
	}
}

func TestTeamRecordRotation(t *testing.T) {
	rec := model.NewTeamRecord()
	if got := rec.Rotation(); got != 5*time.Minute {
		t.Errorf("default Rotation = %v, want 5m", got)
	}
	rec.RotationMinutes = 8
	if got := rec.Rotation(); got != 8*time.Minute {
		t.Errorf("Rotation = %v, want 8m", got)
	}
}

func TestPlayerResetStats(t *testing.T) {
	now := time.Now()
	p := model.Player{
		Name:         "Ben",
		TotalTime:    300,
		OnField:      true,
		SessionStart: &now,
		RotationLog:  []model.RotationEntry{{In: "10:00:00", Out: "10:05:00", Duration: "5:00", Quarter: model.Q1}},
	}
	p.ResetStats()
	if p.Name != "Ben" || p.TotalTime != 0 || p.OnField || p.HasSession() || len(p.RotationLog) != 0 {
		t.Errorf("ResetStats left %+v", p)
	}
}

func TestHasSessionOnReturnedValue(t *testing.T) {
	started := time.Now()
	open := func() model.Player { return model.Player{Name: "Ava", SessionStart: &started} }
	if !open().HasSession() {
		t.Error("player with a session start should have a session")
	}
	if model.NewPlayer("Ben").HasSession() {
		t.Error("new player should not have a session")
	}
}

package tracker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Tiliavir/field-time-tracker/internal/model"
	"github.com/Tiliavir/field-time-tracker/internal/timecalc"
)

// Start runs the match clock for the active period, continuing from the
// seconds already accumulated. Every on-field player without an open session
// gets one anchored at now.
func (t *Tracker) Start(ctx context.Context) error {
	rec, err := t.Record()
	if err != nil {
		return err
	}
	if t.running {
		return ErrClockRunning
	}

	now := t.clock.Now()
	t.anchor = now.Add(-time.Duration(rec.QuarterClocks[t.period]) * time.Second)
	t.running = true

	opened := 0
	for i := range rec.Players {
		p := &rec.Players[i]
		if p.OnField && !p.HasSession() {
			start := now
			p.SessionStart = &start
			opened++
		}
	}

	t.saveClockState(ctx)
	t.saveTeams(ctx)

	log.Debug().
		Str("team", t.current).
		Str("quarter", string(t.period)).
		Int("sessions_opened", opened).
		Msg("match clock started")
	return nil
}

// Stop pauses the match clock, stores the period's accumulated seconds and
// closes every open player session.
func (t *Tracker) Stop(ctx context.Context) error {
	rec, err := t.Record()
	if err != nil {
		return err
	}
	if !t.running {
		return ErrClockStopped
	}

	now := t.clock.Now()
	rec.QuarterClocks[t.period] = timecalc.ElapsedSeconds(t.anchor, now)
	t.running = false
	t.anchor = time.Time{}

	for i := range rec.Players {
		p := &rec.Players[i]
		if p.OnField && p.HasSession() {
			t.closeSession(p, now)
		}
	}

	t.saveClockState(ctx)
	t.saveTeams(ctx)

	log.Debug().
		Str("team", t.current).
		Str("quarter", string(t.period)).
		Int64("seconds", rec.QuarterClocks[t.period]).
		Msg("match clock stopped")
	return nil
}

// SwitchPeriod activates another period. A running clock is stopped first,
// so the new period always starts paused at its previously accumulated seconds.
func (t *Tracker) SwitchPeriod(ctx context.Context, p model.Period) error {
	if !p.Valid() {
		return invalid("unknown period %q", p)
	}
	if t.running {
		if err := t.Stop(ctx); err != nil {
			return err
		}
	}
	t.period = p
	t.saveClockState(ctx)
	return nil
}

// Tick returns the seconds to display for the active period. It never
// mutates state.
func (t *Tracker) Tick() int64 {
	if t.running {
		return timecalc.ElapsedSeconds(t.anchor, t.clock.Now())
	}
	rec, err := t.Record()
	if err != nil {
		return 0
	}
	return rec.QuarterClocks[t.period]
}

// QuarterClocks returns the accumulated seconds per period for the selected
// team, with the running period reflecting the live clock.
func (t *Tracker) QuarterClocks() model.QuarterClocks {
	out := model.NewQuarterClocks()
	rec, err := t.Record()
	if err != nil {
		return out
	}
	for p, s := range rec.QuarterClocks {
		out[p] = s
	}
	if t.running {
		out[t.period] = t.Tick()
	}
	return out
}

// closeSession folds the open session into TotalTime and logs the rotation.
func (t *Tracker) closeSession(p *model.Player, now time.Time) {
	start := *p.SessionStart
	secs := timecalc.ElapsedSeconds(start, now)
	p.TotalTime += secs
	p.RotationLog = append(p.RotationLog, model.RotationEntry{
		In:       timecalc.FormatWallClock(start),
		Out:      timecalc.FormatWallClock(now),
		Duration: timecalc.FormatClock(secs),
		Quarter:  t.period,
	})
	p.SessionStart = nil
}

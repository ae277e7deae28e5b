package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/field-time-tracker/internal/alert"
	"github.com/Tiliavir/field-time-tracker/internal/schedule"
	"github.com/Tiliavir/field-time-tracker/internal/tracker"
)

const (
	displayInterval = 100 * time.Millisecond
	playerInterval  = time.Second
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live view of the match clock and playing time",
	Long: `Redraws the status view every second and the match clock ten times a
second while it runs. Changes made with other ftt commands (for example from
a second terminal) show up on the next redraw. Rings the terminal bell while
a player is over the rotation interval, unless sound is off.

Press Ctrl-C to quit.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := session(ctx)
	if t.CurrentTeam() == "" {
		return tracker.ErrNoTeam
	}

	out := cmd.OutOrStdout()
	clock := clockwork.NewRealClock()
	display := schedule.NewTicker(clock, displayInterval)
	players := schedule.NewTicker(clock, playerInterval)
	defer display.Stop()
	defer players.Stop()
	bell := alert.NewBell(out, t.Preferences().SoundEnabled)

	redraw(out, t, bell)
	for {
		display.Set(t.Running())
		players.Set(t.CurrentTeam() != "")

		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case <-display.C():
			// Rewrite the header line in place.
			fmt.Fprintf(out, "\033[s\033[1;1H%s\033[K\033[u", clockLine(t))
		case <-players.C():
			t.Load(ctx)
			bell.SetEnabled(t.Preferences().SoundEnabled)
			if t.CurrentTeam() == "" {
				fmt.Fprintln(out, "\nTeam selection cleared, leaving live view.")
				return nil
			}
			redraw(out, t, bell)
		}
	}
}

// redraw clears the screen, renders the status view and rings the bell once
// when any player is over the rotation interval.
func redraw(w io.Writer, t *tracker.Tracker, bell alert.Notifier) {
	fmt.Fprint(w, "\033[H\033[2J")
	if err := renderStatus(w, t); err != nil {
		log.Error().Err(err).Msg("rendering status")
		return
	}
	if overLimit(t) {
		if err := bell.Ding(); err != nil {
			log.Debug().Err(err).Msg("ringing bell")
		}
	}
}

func overLimit(t *tracker.Tracker) bool {
	players, err := t.Players()
	if err != nil {
		return false
	}
	for _, p := range players {
		if p.Alert() {
			return true
		}
	}
	return false
}

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/field-time-tracker/internal/model"
	"github.com/Tiliavir/field-time-tracker/internal/timecalc"
	"github.com/Tiliavir/field-time-tracker/internal/tracker"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the match clock, score and playing time",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	t := session(cmd.Context())
	if t.CurrentTeam() == "" {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "No team selected.")
		if names := t.Teams(); len(names) > 0 {
			fmt.Fprintf(out, "Teams: %s\n", strings.Join(names, ", "))
		}
		return nil
	}
	return renderStatus(cmd.OutOrStdout(), t)
}

// clockLine is the header of the status view: team, period clock and score.
func clockLine(t *tracker.Tracker) string {
	state := "paused"
	if t.Running() {
		state = "running"
	}
	team, other, _ := t.Score()
	return fmt.Sprintf("%s  %s %s (%s)  Score %d - %d",
		t.CurrentTeam(), t.Period(), timecalc.FormatClock(t.Tick()), state, team, other)
}

// renderStatus writes the full status view of the selected team.
func renderStatus(w io.Writer, t *tracker.Tracker) error {
	players, err := t.Players()
	if err != nil {
		return err
	}
	rec, err := t.Record()
	if err != nil {
		return err
	}
	prefs := t.Preferences()

	fmt.Fprintln(w, clockLine(t))
	fmt.Fprintf(w, "Rotation every %s\n\n", timecalc.FormatDuration(int64(rec.Rotation().Seconds())))

	if len(players) == 0 {
		fmt.Fprintln(w, "No players yet. Add some with: ftt player add <name>...")
	} else {
		fmt.Fprintf(w, "  %-20s %7s %8s\n", "Player", "Time", "Session")
		for _, p := range players {
			fmt.Fprintln(w, playerLine(p))
		}
	}

	if !prefs.RotationHistoryCollapsed {
		rows, err := t.Rotations()
		if err != nil {
			return err
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Rotation history")
		if len(rows) == 0 {
			fmt.Fprintln(w, "  none yet")
		}
		for _, r := range rows {
			fmt.Fprintf(w, "  %s–%s %6s  %-3s %s\n", r.In, r.Out, r.Duration, r.Quarter, r.Player)
		}
	}

	if !prefs.ControlsCollapsed {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "ftt field <player> · ftt start · ftt stop · ftt period <Q1..OT> · ftt event add <type> [player]")
	}
	return nil
}

// playerLine renders one roster row. On-field players are marked with a
// dot; near and over the rotation interval get a flag.
func playerLine(p tracker.PlayerStatus) string {
	marker := " "
	if p.OnField {
		marker = "●"
	}
	current := ""
	if p.OnField {
		current = timecalc.FormatClock(p.SessionSeconds)
	}
	note := ""
	switch {
	case p.Alert():
		note = "  !! sub now"
	case p.Warning():
		note = "  ! sub soon"
	case p.NotPlayed():
		note = "  not played"
	}
	return fmt.Sprintf("%s %-20s %7s %8s%s", marker, p.Name, timecalc.FormatClock(p.DisplaySeconds), current, note)
}

// findPlayer returns a copy of the named player of the selected team.
func findPlayer(t *tracker.Tracker, name string) (model.Player, error) {
	rec, err := t.Record()
	if err != nil {
		return model.Player{}, err
	}
	i := rec.FindPlayer(name)
	if i < 0 {
		return model.Player{}, playerError(tracker.ErrPlayerNotFound, name)
	}
	return rec.Players[i], nil
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

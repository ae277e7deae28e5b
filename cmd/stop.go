package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/field-time-tracker/internal/model"
	"github.com/Tiliavir/field-time-tracker/internal/timecalc"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the match clock and close every open player session",
	Args:  cobra.NoArgs,
	RunE:  runStop,
}

func runStop(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := session(ctx)
	rec, err := t.Record()
	if err != nil {
		return err
	}
	before := append([]model.Player(nil), rec.Players...)

	if err := t.Stop(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Stopped %s at %s\n", t.Period(), timecalc.FormatClock(t.Tick()))
	for _, line := range closedSessions(before, rec.Players) {
		fmt.Fprintln(out, "  "+line)
	}
	return nil
}

// closedSessions describes the time each player gained between two roster
// snapshots, in roster order.
func closedSessions(before, after []model.Player) []string {
	prev := make(map[string]int64, len(before))
	for _, p := range before {
		prev[p.Name] = p.TotalTime
	}
	var lines []string
	for _, p := range after {
		gained := p.TotalTime - prev[p.Name]
		if gained <= 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s +%s (total %s)",
			p.Name, timecalc.FormatClock(gained), timecalc.FormatClock(p.TotalTime)))
	}
	return lines
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/field-time-tracker/internal/model"
	"github.com/Tiliavir/field-time-tracker/internal/timecalc"
	"github.com/Tiliavir/field-time-tracker/internal/tracker"
)

var (
	reportFormat string
	reportSort   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the playing-time report of the selected team",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
	reportCmd.Flags().StringVar(&reportSort, "sort", "time", "Order players by: time, name, roster")
}

// reportRow is one player's line in the report.
type reportRow struct {
	Player    string `json:"player"`
	Seconds   int64  `json:"seconds"`
	Percent   int64  `json:"percent"`
	Rotations int    `json:"rotations"`
	Goals     int    `json:"goals"`
}

// buildReport aggregates playing time, rotations and goals per player. The
// percentage is relative to the total match clock.
func buildReport(players []tracker.PlayerStatus, rec *model.TeamRecord, matchSeconds int64) []reportRow {
	goals := map[string]int{}
	for _, e := range rec.Events {
		if e.Type == model.EventGoal && e.Side == model.SideTeam {
			goals[e.Player]++
		}
	}
	rotations := map[string]int{}
	for _, p := range rec.Players {
		rotations[p.Name] = len(p.RotationLog)
	}

	rows := make([]reportRow, 0, len(players))
	for _, p := range players {
		rows = append(rows, reportRow{
			Player:    p.Name,
			Seconds:   p.DisplaySeconds,
			Percent:   timecalc.Percent(p.DisplaySeconds, matchSeconds),
			Rotations: rotations[p.Name],
			Goals:     goals[p.Name],
		})
	}
	return rows
}

func sortReport(rows []reportRow, by string) error {
	switch by {
	case "time":
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Seconds > rows[j].Seconds })
	case "name":
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Player < rows[j].Player })
	case "roster":
	default:
		return fmt.Errorf("unknown --sort %q (want time, name or roster)", by)
	}
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	t := session(cmd.Context())
	rec, err := t.Record()
	if err != nil {
		return err
	}
	players, err := t.Players()
	if err != nil {
		return err
	}
	matchSeconds := t.QuarterClocks().Total()
	rows := buildReport(players, rec, matchSeconds)
	if err := sortReport(rows, reportSort); err != nil {
		return err
	}
	team, other, _ := t.Score()
	out := cmd.OutOrStdout()

	switch reportFormat {
	case "csv":
		fmt.Fprintln(out, "player,duration_seconds,percent,rotations,goals")
		for _, r := range rows {
			fmt.Fprintf(out, "%s,%d,%d,%d,%d\n", csvEscape(r.Player), r.Seconds, r.Percent, r.Rotations, r.Goals)
		}
	case "json":
		doc := struct {
			Team         string      `json:"team"`
			MatchSeconds int64       `json:"match_seconds"`
			Score        [2]int      `json:"score"`
			Players      []reportRow `json:"players"`
		}{t.CurrentTeam(), matchSeconds, [2]int{team, other}, rows}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Fprintln(out, string(data))
	case "md":
		printReport(out, t.CurrentTeam(), matchSeconds, team, other, rows)
	default:
		return fmt.Errorf("unknown --format %q (want md, csv or json)", reportFormat)
	}
	return nil
}

func printReport(w io.Writer, team string, matchSeconds int64, scored, conceded int, rows []reportRow) {
	fmt.Fprintf(w, "%s  %d - %d  (match clock %s)\n", team, scored, conceded, timecalc.FormatClock(matchSeconds))
	fmt.Fprintln(w, "------------------------------------------------")
	for _, r := range rows {
		goals := ""
		if r.Goals > 0 {
			goals = fmt.Sprintf("  %d⚽", r.Goals)
		}
		fmt.Fprintf(w, "%-20s%7s %4d%%  %2d rot%s\n", r.Player, timecalc.FormatClock(r.Seconds), r.Percent, r.Rotations, goals)
	}
	fmt.Fprintln(w, "------------------------------------------------")
}

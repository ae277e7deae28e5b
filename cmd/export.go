package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/field-time-tracker/internal/model"
	"github.com/Tiliavir/field-time-tracker/internal/tracker"
)

var (
	exportFormat string
	exportWhat   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the selected team's rotations or events to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md, yaml")
	exportCmd.Flags().StringVar(&exportWhat, "what", "rotations", "What to export: rotations, events, team")
}

// exportDoc is the json/yaml shape of a full team export.
type exportDoc struct {
	Team          string              `json:"team" yaml:"team"`
	Players       []model.Player      `json:"players" yaml:"players"`
	Events        []model.Event       `json:"events" yaml:"events"`
	QuarterClocks model.QuarterClocks `json:"quarterClocks" yaml:"quarter_clocks"`
}

func runExport(cmd *cobra.Command, args []string) error {
	t := session(cmd.Context())
	rec, err := t.Record()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	var v any
	switch exportWhat {
	case "rotations":
		rows, err := t.Rotations()
		if err != nil {
			return err
		}
		if exportFormat == "csv" {
			printRotationsCSV(out, rows)
			return nil
		}
		if exportFormat == "md" {
			printRotations(out, rows)
			return nil
		}
		entries := make([]rotationExport, 0, len(rows))
		for _, r := range rows {
			entries = append(entries, rotationExport{
				Player:   r.Player,
				Quarter:  r.Quarter,
				In:       r.In,
				Out:      r.Out,
				Duration: r.Duration,
				Seconds:  parseClock(r.Duration),
			})
		}
		v = entries
	case "events":
		if exportFormat == "csv" {
			printEventsCSV(out, rec.Events)
			return nil
		}
		if exportFormat == "md" {
			printEvents(out, rec.Events)
			return nil
		}
		v = rec.Events
	case "team":
		if exportFormat == "csv" || exportFormat == "md" {
			return fmt.Errorf("--what team supports json and yaml only")
		}
		v = exportDoc{
			Team:          t.CurrentTeam(),
			Players:       rec.Players,
			Events:        rec.Events,
			QuarterClocks: t.QuarterClocks(),
		}
	default:
		return fmt.Errorf("unknown --what %q (want rotations, events or team)", exportWhat)
	}

	switch exportFormat {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			fmt.Fprintln(os.Stderr, "error encoding YAML:", err)
			os.Exit(2)
		}
		_ = enc.Close()
	default:
		return fmt.Errorf("unknown --format %q (want csv, json, md or yaml)", exportFormat)
	}
	return nil
}

type rotationExport struct {
	Player   string       `json:"player" yaml:"player"`
	Quarter  model.Period `json:"quarter" yaml:"quarter"`
	In       string       `json:"in" yaml:"in"`
	Out      string       `json:"out" yaml:"out"`
	Duration string       `json:"duration" yaml:"duration"`
	Seconds  int64        `json:"duration_seconds" yaml:"duration_seconds"`
}

func printRotationsCSV(w io.Writer, rows []tracker.RotationRow) {
	fmt.Fprintln(w, "quarter,player,in,out,duration_seconds")
	for _, r := range rows {
		fmt.Fprintf(w, "%s,%s,%s,%s,%d\n",
			csvEscape(string(r.Quarter)),
			csvEscape(r.Player),
			csvEscape(r.In),
			csvEscape(r.Out),
			parseClock(r.Duration),
		)
	}
}

func printEventsCSV(w io.Writer, events []model.Event) {
	fmt.Fprintln(w, "id,quarter,time,type,player,side")
	for _, e := range events {
		fmt.Fprintf(w, "%s,%s,%s,%s,%s,%s\n",
			csvEscape(e.ID),
			csvEscape(string(e.Quarter)),
			csvEscape(e.Time),
			csvEscape(string(e.Type)),
			csvEscape(e.Player),
			csvEscape(string(e.Side)),
		)
	}
}

// parseClock turns an "M:SS" duration back into seconds; anything else is 0.
func parseClock(s string) int64 {
	m, sec, ok := strings.Cut(s, ":")
	if !ok {
		return 0
	}
	mins, err1 := strconv.ParseInt(m, 10, 64)
	secs, err2 := strconv.ParseInt(sec, 10, 64)
	if err1 != nil || err2 != nil {
		return 0
	}
	return mins*60 + secs
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}

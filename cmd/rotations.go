package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/field-time-tracker/internal/model"
	"github.com/Tiliavir/field-time-tracker/internal/tracker"
)

var rotationsPlayer string

var rotationsCmd = &cobra.Command{
	Use:   "rotations",
	Short: "List every substitution of the selected team by time on",
	Args:  cobra.NoArgs,
	RunE:  runRotations,
}

func init() {
	rotationsCmd.Flags().StringVar(&rotationsPlayer, "player", "", "Only show this player's rotations")
}

func runRotations(cmd *cobra.Command, args []string) error {
	t := session(cmd.Context())
	rows, err := t.Rotations()
	if err != nil {
		return err
	}
	if rotationsPlayer != "" {
		if _, err := findPlayer(t, rotationsPlayer); err != nil {
			return err
		}
		filtered := rows[:0]
		for _, r := range rows {
			if r.Player == rotationsPlayer {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}
	printRotations(cmd.OutOrStdout(), rows)
	return nil
}

// printRotations groups rows by period and prints them.
func printRotations(w io.Writer, rows []tracker.RotationRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No rotations logged.")
		return
	}

	var current model.Period
	for _, r := range rows {
		if r.Quarter != current {
			fmt.Fprintln(w, r.Quarter)
			current = r.Quarter
		}
		fmt.Fprintf(w, "%s–%s  %-20s (%s)\n", r.In, r.Out, r.Player, r.Duration)
	}
}

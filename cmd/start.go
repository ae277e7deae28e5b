package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/field-time-tracker/internal/timecalc"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the match clock for the active period",
	Args:  cobra.NoArgs,
	RunE:  runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := session(ctx)
	if err := t.Start(ctx); err != nil {
		return err
	}

	players, err := t.Players()
	if err != nil {
		return err
	}
	onField := 0
	for _, p := range players {
		if p.OnField {
			onField++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Started %s at %s for %s (%s), %d on the field\n",
		t.Period(), timecalc.FormatClock(t.Tick()), t.CurrentTeam(),
		timecalc.FormatWallClock(t.Now()), onField)
	return nil
}

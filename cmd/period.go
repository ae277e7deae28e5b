package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/field-time-tracker/internal/model"
	"github.com/Tiliavir/field-time-tracker/internal/timecalc"
)

var periodCmd = &cobra.Command{
	Use:   "period [Q1|Q2|Q3|Q4|OT]",
	Short: "Show the period clocks or switch the active period",
	Long: `Without an argument, prints the accumulated time of every period. With
one, switches to that period; a running clock is stopped first and the new
period starts paused at its previously accumulated time.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPeriod,
}

func runPeriod(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := session(ctx)
	if _, err := t.Record(); err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		p, err := model.ParsePeriod(strings.ToUpper(args[0]))
		if err != nil {
			return err
		}
		wasRunning := t.Running()
		if err := t.SwitchPeriod(ctx, p); err != nil {
			return err
		}
		if wasRunning {
			fmt.Fprintln(out, "Stopped the match clock.")
		}
		fmt.Fprintf(out, "Active period: %s at %s\n", p, timecalc.FormatClock(t.Tick()))
		return nil
	}

	clocks := t.QuarterClocks()
	for _, p := range model.Periods {
		marker := " "
		if p == t.Period() {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-3s %s\n", marker, p, timecalc.FormatClock(clocks[p]))
	}
	fmt.Fprintf(out, "  %-3s %s\n", "All", timecalc.FormatClock(clocks.Total()))
	return nil
}

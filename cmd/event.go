package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/field-time-tracker/internal/model"
	"github.com/Tiliavir/field-time-tracker/internal/tracker"
)

var (
	eventSide    string
	eventQuarter string
	eventYes     bool

	eventEditType    string
	eventEditPlayer  string
	eventEditSide    string
	eventEditQuarter string
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Log and edit match events",
}

var eventAddCmd = &cobra.Command{
	Use:   "add <type> [player]",
	Short: "Log an event for the active period",
	Long: `Logs an event. Types: goal, penalty, save, injury, cleat, laces, headbutt.

Goals and penalties take --side team|other (default team). A goal for our
team needs the scorer; opponent goals and penalties are credited
automatically. Every other event needs one of our players.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runEventAdd,
}

var eventEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an event's type, player, side or period",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventEdit,
}

var eventDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an event",
	Args:    cobra.ExactArgs(1),
	RunE:    runEventDelete,
}

var eventListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the selected team's events",
	Args:  cobra.NoArgs,
	RunE:  runEventList,
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show the score",
	Args:  cobra.NoArgs,
	RunE:  runScore,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Zero playing time, rotations, events and period clocks of the selected team",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	eventAddCmd.Flags().StringVar(&eventSide, "side", "team", "Side credited with a goal or penalty: team or other")
	eventAddCmd.Flags().StringVar(&eventQuarter, "quarter", "", "Period (default: the active period)")

	eventEditCmd.Flags().StringVar(&eventEditType, "type", "", "New event type")
	eventEditCmd.Flags().StringVar(&eventEditPlayer, "player", "", "New player")
	eventEditCmd.Flags().StringVar(&eventEditSide, "side", "", "New side: team or other")
	eventEditCmd.Flags().StringVar(&eventEditQuarter, "quarter", "", "New period")

	eventDeleteCmd.Flags().BoolVarP(&eventYes, "yes", "y", false, "Delete without asking")
	resetCmd.Flags().BoolVarP(&eventYes, "yes", "y", false, "Reset without asking")

	eventCmd.AddCommand(eventAddCmd)
	eventCmd.AddCommand(eventEditCmd)
	eventCmd.AddCommand(eventDeleteCmd)
	eventCmd.AddCommand(eventListCmd)
}

func runEventAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := session(ctx)

	typ, err := model.ParseEventType(strings.ToLower(args[0]))
	if err != nil {
		return err
	}
	in := tracker.EventInput{Type: typ, Side: model.Side(strings.ToLower(eventSide))}
	if len(args) == 2 {
		in.Player = args[1]
	}
	if eventQuarter != "" {
		in.Quarter = model.Period(strings.ToUpper(eventQuarter))
	}

	e, err := t.RecordEvent(ctx, in)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Logged %s\n", eventLine(e))
	if typ.Scores() {
		team, other, _ := t.Score()
		fmt.Fprintf(out, "Score %d - %d\n", team, other)
	}
	return nil
}

func runEventEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := session(ctx)

	old, err := t.Event(args[0])
	if err != nil {
		return eventError(err, args[0])
	}
	in := tracker.EventInput{Type: old.Type, Side: old.Side, Player: old.Player, Quarter: old.Quarter}
	flags := cmd.Flags()
	if flags.Changed("type") {
		typ, err := model.ParseEventType(strings.ToLower(eventEditType))
		if err != nil {
			return err
		}
		in.Type = typ
	}
	if flags.Changed("player") {
		in.Player = eventEditPlayer
	}
	if flags.Changed("side") {
		in.Side = model.Side(strings.ToLower(eventEditSide))
	}
	if flags.Changed("quarter") {
		in.Quarter = model.Period(strings.ToUpper(eventEditQuarter))
	}

	e, err := t.EditEvent(ctx, old.ID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", eventLine(e))
	return nil
}

func runEventDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := session(ctx)

	e, err := t.Event(args[0])
	if err != nil {
		return eventError(err, args[0])
	}
	if !eventYes && !confirm(cmd, fmt.Sprintf("Delete %s?", eventLine(e))) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}
	if err := t.DeleteEvent(ctx, e.ID); err != nil {
		return eventError(err, args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", eventLine(e))
	return nil
}

func runEventList(cmd *cobra.Command, args []string) error {
	t := session(cmd.Context())
	events, err := t.Events()
	if err != nil {
		return err
	}
	printEvents(cmd.OutOrStdout(), events)
	return nil
}

func runScore(cmd *cobra.Command, args []string) error {
	t := session(cmd.Context())
	team, other, err := t.Score()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d - %d Other Team\n", t.CurrentTeam(), team, other)
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := session(ctx)
	if _, err := t.Record(); err != nil {
		return err
	}
	if !eventYes && !confirm(cmd, fmt.Sprintf("Reset all playing time, events and clocks of %q?", t.CurrentTeam())) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}
	if err := t.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Reset %s. The roster is kept.\n", t.CurrentTeam())
	return nil
}

// printEvents groups events by period and prints them in logging order.
func printEvents(w io.Writer, events []model.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events logged.")
		return
	}
	for _, p := range model.Periods {
		var header bool
		for _, e := range events {
			if e.Quarter != p {
				continue
			}
			if !header {
				fmt.Fprintln(w, p)
				header = true
			}
			fmt.Fprintf(w, "  %s  %s\n", shortID(e.ID), eventLine(e))
		}
	}
}

func eventLine(e model.Event) string {
	side := ""
	if e.Type.Scores() {
		side = " [" + string(e.Side) + "]"
	}
	return fmt.Sprintf("%s %s %s – %s%s", e.Time, e.Quarter, e.Type.Label(), e.Player, side)
}

// shortID is the id prefix shown in listings; commands accept it back.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func eventError(err error, ref string) error {
	if errors.Is(err, tracker.ErrEventNotFound) {
		return fmt.Errorf("no event with id %q (see: ftt event list)", ref)
	}
	return err
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/field-time-tracker/internal/timecalc"
	"github.com/Tiliavir/field-time-tracker/internal/tracker"
)

var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "Manage the selected team's roster",
}

var playerAddCmd = &cobra.Command{
	Use:   "add <name>...",
	Short: "Add players to the roster",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlayerAdd,
}

var playerRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a player; events naming them follow",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlayerRename,
}

var playerRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a player from the roster",
	Args:    cobra.ExactArgs(1),
	RunE:    runPlayerRemove,
}

var fieldCmd = &cobra.Command{
	Use:   "field <name>...",
	Short: "Move players on or off the field",
	Long: `Toggles each named player between the bench and the field. While the
match clock runs, going on opens a session and going off closes it and logs
the rotation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runField,
}

func init() {
	playerCmd.AddCommand(playerAddCmd)
	playerCmd.AddCommand(playerRenameCmd)
	playerCmd.AddCommand(playerRemoveCmd)
}

func runPlayerAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := session(ctx)
	for _, name := range args {
		if err := t.AddPlayer(ctx, name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", name, t.CurrentTeam())
	}
	return nil
}

func runPlayerRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := session(ctx)
	if err := t.RenamePlayer(ctx, args[0], args[1]); err != nil {
		return playerError(err, args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", args[0], args[1])
	return nil
}

func runPlayerRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := session(ctx)
	if err := t.RemovePlayer(ctx, args[0]); err != nil {
		return playerError(err, args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
	return nil
}

func runField(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := session(ctx)
	out := cmd.OutOrStdout()
	for _, name := range args {
		before, err := findPlayer(t, name)
		if err != nil {
			return err
		}
		p, err := t.ToggleField(ctx, name)
		if err != nil {
			return playerError(err, name)
		}
		switch {
		case p.OnField && p.HasSession():
			fmt.Fprintf(out, "%s is on the field\n", p.Name)
		case p.OnField:
			fmt.Fprintf(out, "%s is on the field (time starts with the clock)\n", p.Name)
		default:
			played := p.TotalTime - before.TotalTime
			if played > 0 {
				fmt.Fprintf(out, "%s is off the field after %s (total %s)\n",
					p.Name, timecalc.FormatClock(played), timecalc.FormatClock(p.TotalTime))
			} else {
				fmt.Fprintf(out, "%s is off the field\n", p.Name)
			}
		}
	}
	return nil
}

func playerError(err error, name string) error {
	if errors.Is(err, tracker.ErrPlayerNotFound) {
		return fmt.Errorf("no player named %q on the roster", name)
	}
	return err
}

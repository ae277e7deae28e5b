package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/field-time-tracker/internal/tracker"
)

var (
	teamCreateSelect bool
	teamDeleteYes    bool
	teamSelectNone   bool
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Manage teams",
}

var teamCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty team",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeamCreate,
}

var teamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List teams",
	Args:  cobra.NoArgs,
	RunE:  runTeamList,
}

var teamSelectCmd = &cobra.Command{
	Use:   "select [name]",
	Short: "Select the team to track",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTeamSelect,
}

var teamRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a team, keeping its roster, events and clocks",
	Args:  cobra.ExactArgs(2),
	RunE:  runTeamRename,
}

var teamDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a team and everything recorded for it",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeamDelete,
}

func init() {
	teamCreateCmd.Flags().BoolVar(&teamCreateSelect, "select", false, "Select the new team")
	teamDeleteCmd.Flags().BoolVarP(&teamDeleteYes, "yes", "y", false, "Delete without asking")
	teamSelectCmd.Flags().BoolVar(&teamSelectNone, "none", false, "Clear the selection")

	teamCmd.AddCommand(teamCreateCmd)
	teamCmd.AddCommand(teamListCmd)
	teamCmd.AddCommand(teamSelectCmd)
	teamCmd.AddCommand(teamRenameCmd)
	teamCmd.AddCommand(teamDeleteCmd)
}

func runTeamCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := session(ctx)
	if err := t.CreateTeam(ctx, args[0]); err != nil {
		if errors.Is(err, tracker.ErrTeamExists) {
			return fmt.Errorf("team %q already exists", args[0])
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created team %q\n", args[0])
	if teamCreateSelect {
		return selectTeam(cmd, args[0])
	}
	return nil
}

func runTeamList(cmd *cobra.Command, args []string) error {
	t := session(cmd.Context())
	out := cmd.OutOrStdout()

	names := t.Teams()
	if len(names) == 0 {
		fmt.Fprintln(out, "No teams yet. Create one with: ftt team create <name>")
		return nil
	}
	for _, name := range names {
		rec, err := t.Team(name)
		if err != nil {
			return err
		}
		marker := " "
		if name == t.CurrentTeam() {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-24s %2d players  %3d events\n", marker, name, len(rec.Players), len(rec.Events))
	}
	return nil
}

func runTeamSelect(cmd *cobra.Command, args []string) error {
	switch {
	case teamSelectNone:
		return selectTeam(cmd, "")
	case len(args) == 1:
		return selectTeam(cmd, args[0])
	}
	t := session(cmd.Context())
	if t.CurrentTeam() == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "No team selected.")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), t.CurrentTeam())
	}
	return nil
}

func selectTeam(cmd *cobra.Command, name string) error {
	ctx := cmd.Context()
	t := session(ctx)
	wasRunning := t.Running()
	if err := t.SelectTeam(ctx, name); err != nil {
		if errors.Is(err, tracker.ErrTeamNotFound) {
			return fmt.Errorf("team %q not found", name)
		}
		return err
	}
	out := cmd.OutOrStdout()
	if wasRunning && !t.Running() {
		fmt.Fprintln(out, "Stopped the match clock of the previous team.")
	}
	if name == "" {
		fmt.Fprintln(out, "Team selection cleared.")
	} else {
		fmt.Fprintf(out, "Selected team %q\n", name)
	}
	return nil
}

func runTeamRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := session(ctx)
	if err := t.RenameTeam(ctx, args[0], args[1]); err != nil {
		switch {
		case errors.Is(err, tracker.ErrTeamNotFound):
			return fmt.Errorf("team %q not found", args[0])
		case errors.Is(err, tracker.ErrTeamExists):
			return fmt.Errorf("team %q already exists", args[1])
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed team %q to %q\n", args[0], args[1])
	return nil
}

func runTeamDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := session(ctx)
	name := args[0]
	if _, err := t.Team(name); err != nil {
		return fmt.Errorf("team %q not found", name)
	}
	if !teamDeleteYes && !confirm(cmd, fmt.Sprintf("Delete team %q with its roster, events and clocks?", name)) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}
	if err := t.DeleteTeam(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted team %q\n", name)
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/field-time-tracker/internal/config"
	"github.com/Tiliavir/field-time-tracker/internal/logging"
)

var (
	verbose bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ftt",
	Short: "Field Time Tracker – playing time and rotations for youth matches",
	Long: `ftt tracks who is on the field, how long every player has played in the
current match, substitutions and match events. Teams move between devices as
share links. Data is stored as JSON files in ~/.ftt/ (or in Redis).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main. Storage and configuration
// failures exit with status 2, everything else with 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	closeSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", userMessage(err))
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(fieldCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(periodCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(rotationsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(prefsCmd)
}

// setup loads the configuration and configures logging before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load()
	if err != nil {
		fatal(err)
	}
	cfg = c
	if err := logging.Setup(os.Stderr, cfg.Log.Level, verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
	}
	return nil
}

// fatal reports a storage or configuration failure and exits with status 2.
func fatal(err error) {
	closeSession()
	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
}

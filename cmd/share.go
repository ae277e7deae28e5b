package cmd

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/field-time-tracker/internal/share"
)

var (
	shareOpts  share.Options
	shareAll   bool
	shareQR    string
	shareCopy  bool
	shareToken bool

	importYes bool
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Print a link that moves the selected team to another device",
	Long: `Builds a share link for the selected team. Player names are always
included; choose what else goes along with the flags. By default only the
event log is shared.`,
	Args: cobra.NoArgs,
	RunE: runShare,
}

var importCmd = &cobra.Command{
	Use:   "import <link|token>",
	Short: "Import a team from a share link",
	Long: `Imports a team from a share link, a query string or a bare token.
The team's roster is replaced; events and period clocks are replaced only when
the link carries them. The imported team becomes the selected team.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	shareCmd.Flags().BoolVar(&shareOpts.Times, "times", false, "Include playing times and field state")
	shareCmd.Flags().BoolVar(&shareOpts.Rotation, "rotation", false, "Include rotation logs (needs --times)")
	shareCmd.Flags().BoolVar(&shareOpts.Events, "events", true, "Include the event log")
	shareCmd.Flags().BoolVar(&shareOpts.Quarters, "quarters", false, "Include the period clocks")
	shareCmd.Flags().BoolVar(&shareAll, "all", false, "Include everything")
	shareCmd.Flags().StringVar(&shareQR, "qr", "", "Also write the link as a QR code PNG to this path")
	shareCmd.Flags().BoolVar(&shareCopy, "copy", false, "Copy the link to the clipboard")
	shareCmd.Flags().BoolVar(&shareToken, "token", false, "Print the bare token instead of a link")

	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Overwrite an existing team without asking")
}

func runShare(cmd *cobra.Command, args []string) error {
	t := session(cmd.Context())
	rec, err := t.Record()
	if err != nil {
		return err
	}

	opts := shareOpts
	if shareAll {
		opts = share.AllOptions()
	}
	if opts.Rotation && !opts.Times {
		return fmt.Errorf("--rotation needs --times")
	}

	token, err := share.Encode(share.Build(t.CurrentTeam(), rec, opts))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if shareToken {
		fmt.Fprintln(out, token)
		return nil
	}
	link, err := share.Link(cfg.Share.BaseURL, token)
	if err != nil {
		return err
	}

	if shareCopy {
		if share.CopyLink(link, out) {
			fmt.Fprintln(out, "Share link copied to the clipboard.")
		}
	} else {
		fmt.Fprintln(out, link)
	}
	if shareQR != "" {
		if err := share.WriteQRCode(link, shareQR, cfg.Share.QRSize); err != nil {
			return err
		}
		fmt.Fprintf(out, "QR code written to %s\n", shareQR)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := session(ctx)

	p, err := share.ParseLink(args[0])
	if err != nil {
		log.Debug().Err(err).Msg("import failed")
		return err
	}

	if _, err := t.Team(p.TeamName); err == nil && !importYes {
		q := fmt.Sprintf("Team %q exists. Replace its roster with %d imported players?", p.TeamName, len(p.Players))
		if !confirm(cmd, q) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	if err := t.ImportTeam(ctx, p.TeamName, p.Players, p.Events, p.QuarterClocks); err != nil {
		return err
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d players", len(p.Players)))
	if p.Events != nil {
		parts = append(parts, fmt.Sprintf("%d events", len(p.Events)))
	}
	if p.QuarterClocks != nil {
		parts = append(parts, "period clocks")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %q (%s) and selected it.\n", p.TeamName, strings.Join(parts, ", "))
	return nil
}

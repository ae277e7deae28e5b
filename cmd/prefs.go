package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs [setting] [value]",
	Short: "Show or change preferences",
	Long: `Without arguments, prints every preference. Settings:

  sound on|off       ring the terminal bell when a player is over the interval
  rotation <minutes> rotation interval of the selected team
  controls on|off    show the command hint under the status view
  history on|off     show the rotation history in the status view`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runPrefs,
}

func runPrefs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	t := session(ctx)
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		p := t.Preferences()
		fmt.Fprintf(out, "sound     %s\n", onOff(p.SoundEnabled))
		if rec, err := t.Record(); err == nil {
			fmt.Fprintf(out, "rotation  %d min (%s)\n", int(rec.Rotation().Minutes()), t.CurrentTeam())
		}
		fmt.Fprintf(out, "controls  %s\n", onOff(!p.ControlsCollapsed))
		fmt.Fprintf(out, "history   %s\n", onOff(!p.RotationHistoryCollapsed))
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: ftt prefs %s <value>", args[0])
	}

	setting, value := strings.ToLower(args[0]), args[1]
	switch setting {
	case "sound":
		on, err := parseOnOff(value)
		if err != nil {
			return err
		}
		t.SetSoundEnabled(ctx, on)
	case "rotation":
		minutes, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("rotation interval must be a whole number of minutes, got %q", value)
		}
		if err := t.SetRotationMinutes(ctx, minutes); err != nil {
			return err
		}
	case "controls":
		on, err := parseOnOff(value)
		if err != nil {
			return err
		}
		t.SetControlsCollapsed(ctx, !on)
	case "history":
		on, err := parseOnOff(value)
		if err != nil {
			return err
		}
		t.SetRotationHistoryCollapsed(ctx, !on)
	default:
		return fmt.Errorf("unknown setting %q (want sound, rotation, controls or history)", setting)
	}
	fmt.Fprintf(out, "%s set to %s\n", setting, value)
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Tiliavir/field-time-tracker/internal/share"
	"github.com/Tiliavir/field-time-tracker/internal/tracker"
)

// isolate points the config and the file store at a temp dir.
func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FTT_STORAGE", "file")
	t.Setenv("FTT_DATA_DIR", filepath.Join(home, "data"))
	t.Setenv("FTT_REDIS_URL", "")
	t.Setenv("FTT_LOG_LEVEL", "error")
	t.Setenv("FTT_SHARE_BASE_URL", "https://example.org/ftt/")
	t.Setenv("FTT_ROTATION_MINUTES", "")
}

// resetFlags restores every flag to its default so invocations do not leak
// into each other through the package-level flag variables.
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes one ftt invocation and returns its output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	closeSession()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, "", args...)
	if err != nil {
		t.Fatalf("ftt %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestMatchFlow(t *testing.T) {
	isolate(t)

	mustRun(t, "team", "create", "Hornets", "--select")
	mustRun(t, "player", "add", "Ava", "Ben")

	if out := mustRun(t, "field", "Ava"); !strings.Contains(out, "starts with the clock") {
		t.Errorf("field before start: %q", out)
	}
	if out := mustRun(t, "start"); !strings.Contains(out, "Started Q1") || !strings.Contains(out, "1 on the field") {
		t.Errorf("start: %q", out)
	}
	if _, err := run(t, "", "start"); !errors.Is(err, tracker.ErrClockRunning) {
		t.Errorf("second start: err = %v", err)
	}

	if out := mustRun(t, "event", "add", "goal", "Ava"); !strings.Contains(out, "Score 1 - 0") {
		t.Errorf("goal: %q", out)
	}
	if out := mustRun(t, "event", "add", "goal", "--side", "other"); !strings.Contains(out, "Score 1 - 1") {
		t.Errorf("opponent goal: %q", out)
	}
	if _, err := run(t, "", "event", "add", "save"); !tracker.IsValidation(err) {
		t.Errorf("save without player: err = %v", err)
	}
	if out := mustRun(t, "score"); !strings.Contains(out, "Hornets 1 - 1") {
		t.Errorf("score: %q", out)
	}

	if out := mustRun(t, "stop"); !strings.Contains(out, "Stopped Q1") {
		t.Errorf("stop: %q", out)
	}
	if out := mustRun(t, "period", "q2"); !strings.Contains(out, "Active period: Q2") {
		t.Errorf("period: %q", out)
	}
	// The active period survives between invocations.
	if out := mustRun(t, "period"); !strings.Contains(out, "* Q2") {
		t.Errorf("period listing: %q", out)
	}

	out := mustRun(t, "status")
	for _, want := range []string{"Hornets", "Q2", "Ava", "Ben", "not played"} {
		if !strings.Contains(out, want) {
			t.Errorf("status lacks %q:\n%s", want, out)
		}
	}

	if out := mustRun(t, "event", "list"); !strings.Contains(out, "Q1") || !strings.Contains(out, "Other Team Player") {
		t.Errorf("event list: %q", out)
	}
}

func TestShareAndImport(t *testing.T) {
	isolate(t)
	mustRun(t, "team", "create", "Hornets", "--select")
	mustRun(t, "player", "add", "Ava", "Ben")
	mustRun(t, "event", "add", "goal", "Ben")

	token := strings.TrimSpace(mustRun(t, "share", "--all", "--token"))
	link := strings.TrimSpace(mustRun(t, "share"))
	if !strings.HasPrefix(link, "https://example.org/ftt/?data=") {
		t.Errorf("link = %q", link)
	}

	mustRun(t, "team", "delete", "Hornets", "--yes")
	if out := mustRun(t, "team", "list"); !strings.Contains(out, "No teams") {
		t.Errorf("after delete: %q", out)
	}

	out := mustRun(t, "import", token)
	if !strings.Contains(out, `Imported "Hornets" (2 players, 1 events, period clocks)`) {
		t.Errorf("import: %q", out)
	}
	if out := mustRun(t, "score"); !strings.Contains(out, "Hornets 1 - 0") {
		t.Errorf("score after import: %q", out)
	}

	// Importing over an existing team asks first.
	if out, _ := run(t, "n\n", "import", link); !strings.Contains(out, "Cancelled") {
		t.Errorf("declined import: %q", out)
	}

	if _, err := run(t, "", "import", "https://example.org/ftt/?data=broken"); !errors.Is(err, share.ErrInvalidData) {
		t.Errorf("broken link: err = %v", err)
	}
}

func TestResetAndPrefs(t *testing.T) {
	isolate(t)
	mustRun(t, "team", "create", "Hornets", "--select")
	mustRun(t, "player", "add", "Ava")
	mustRun(t, "event", "add", "injury", "Ava")

	if out, err := run(t, "no\n", "reset"); err != nil || !strings.Contains(out, "Cancelled") {
		t.Errorf("declined reset: %q, %v", out, err)
	}
	if out := mustRun(t, "event", "list"); strings.Contains(out, "No events") {
		t.Error("declined reset cleared events")
	}
	mustRun(t, "reset", "--yes")
	if out := mustRun(t, "event", "list"); !strings.Contains(out, "No events") {
		t.Errorf("events after reset: %q", out)
	}

	mustRun(t, "prefs", "sound", "off")
	mustRun(t, "prefs", "rotation", "7")
	out := mustRun(t, "prefs")
	if !strings.Contains(out, "sound     off") || !strings.Contains(out, "rotation  7 min") {
		t.Errorf("prefs: %q", out)
	}
	if _, err := run(t, "", "prefs", "rotation", "0"); !tracker.IsValidation(err) {
		t.Errorf("zero rotation: err = %v", err)
	}
	if _, err := run(t, "", "prefs", "volume", "11"); err == nil {
		t.Error("unknown setting should fail")
	}
}

func TestExportTeamJSON(t *testing.T) {
	isolate(t)
	mustRun(t, "team", "create", "Hornets", "--select")
	mustRun(t, "player", "add", "Ava")

	out := mustRun(t, "export", "--what", "team", "--format", "json")
	var doc exportDoc
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("export is not JSON: %v\n%s", err, out)
	}
	if doc.Team != "Hornets" || len(doc.Players) != 1 || doc.Players[0].Name != "Ava" {
		t.Errorf("doc = %+v", doc)
	}

	if out := mustRun(t, "export", "--what", "events", "--format", "yaml"); strings.TrimSpace(out) != "[]" {
		t.Errorf("yaml events = %q", out)
	}
	if _, err := run(t, "", "export", "--format", "xml"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestCommandsNeedTeam(t *testing.T) {
	isolate(t)
	for _, args := range [][]string{
		{"start"},
		{"player", "add", "Ava"},
		{"event", "list"},
		{"share"},
	} {
		if _, err := run(t, "", args...); !errors.Is(err, tracker.ErrNoTeam) {
			t.Errorf("ftt %s: err = %v, want ErrNoTeam", strings.Join(args, " "), err)
		}
	}
}

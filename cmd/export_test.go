package cmd

import (
	"bytes"
	"testing"

	"github.com/Tiliavir/field-time-tracker/internal/model"
	"github.com/Tiliavir/field-time-tracker/internal/tracker"
)

func TestCsvEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"with space", "with space"},
		{"with,comma", `"with,comma"`},
		{`with"quote`, `"with""quote"`},
		{"with\nnewline", "\"with\nnewline\""},
		{"with\rreturn", "\"with\rreturn\""},
		{"", ""},
	}
	for _, tt := range tests {
		got := csvEscape(tt.input)
		if got != tt.want {
			t.Errorf("csvEscape(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"0:00", 0},
		{"0:05", 5},
		{"6:30", 390},
		{"75:01", 4501},
		{"", 0},
		{"6", 0},
		{"a:b", 0},
	}
	for _, tt := range tests {
		if got := parseClock(tt.input); got != tt.want {
			t.Errorf("parseClock(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestPrintRotationsCSV(t *testing.T) {
	rows := []tracker.RotationRow{
		{Player: "Smith, Ava", RotationEntry: model.RotationEntry{In: "10:00:00", Out: "10:06:30", Duration: "6:30", Quarter: model.Q1}},
	}
	var buf bytes.Buffer
	printRotationsCSV(&buf, rows)
	want := "quarter,player,in,out,duration_seconds\nQ1,\"Smith, Ava\",10:00:00,10:06:30,390\n"
	if buf.String() != want {
		t.Errorf("csv = %q, want %q", buf.String(), want)
	}
}

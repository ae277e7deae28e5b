package cmd

import (
	"testing"

	"github.com/Tiliavir/field-time-tracker/internal/tracker"
)

func TestPlayerLine(t *testing.T) {
	tests := []struct {
		name string
		p    tracker.PlayerStatus
		want string
	}{
		{
			name: "bench, never played",
			p:    tracker.PlayerStatus{Name: "Cy"},
			want: "  Cy                      0:00           not played",
		},
		{
			name: "bench with time",
			p:    tracker.PlayerStatus{Name: "Ben", DisplaySeconds: 95},
			want: "  Ben                     1:35         ",
		},
		{
			name: "near the interval",
			p:    tracker.PlayerStatus{Name: "Ava", OnField: true, DisplaySeconds: 400, SessionSeconds: 250, Level: tracker.LevelNear},
			want: "● Ava                     6:40     4:10  ! sub soon",
		},
		{
			name: "over the interval",
			p:    tracker.PlayerStatus{Name: "Ava", OnField: true, DisplaySeconds: 300, SessionSeconds: 300, Level: tracker.LevelOver},
			want: "● Ava                     5:00     5:00  !! sub now",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := playerLine(tt.p); got != tt.want {
				t.Errorf("playerLine = %q\n          want %q", got, tt.want)
			}
		})
	}
}

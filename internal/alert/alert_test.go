package alert_test

import (
	"bytes"
	"testing"

	"github.com/Tiliavir/field-time-tracker/internal/alert"
)

func TestBell(t *testing.T) {
	var buf bytes.Buffer
	b := alert.NewBell(&buf, true)

	_ = b.Ding()
	_ = b.Ding()
	if buf.String() != "\a\a" || b.Rung() != 2 {
		t.Errorf("output = %q rung = %d, want two bells", buf.String(), b.Rung())
	}

	b.SetEnabled(false)
	_ = b.Ding()
	if buf.Len() != 2 || b.Rung() != 2 {
		t.Errorf("muted bell rang: %q", buf.String())
	}
}

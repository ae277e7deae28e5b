// Package alert raises the over-limit cue.
package alert

import (
	"io"
	"sync"
)

// Notifier plays the over-limit cue.
type Notifier interface {
	Ding() error
}

// Bell rings the terminal bell: one short fixed tone, muted when Enabled is
// false. It does not de-duplicate; callers decide how often to ring.
type Bell struct {
	mu      sync.Mutex
	w       io.Writer
	enabled bool
	rung    int
}

// NewBell returns a Bell writing to w.
func NewBell(w io.Writer, enabled bool) *Bell {
	return &Bell{w: w, enabled: enabled}
}

// SetEnabled mutes or unmutes the bell.
func (b *Bell) SetEnabled(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = enabled
}

// Ding rings once unless muted.
func (b *Bell) Ding() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.enabled {
		return nil
	}
	b.rung++
	_, err := io.WriteString(b.w, "\a")
	return err
}

// Rung returns how many times the bell has sounded.
func (b *Bell) Rung() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rung
}

// Package schedule provides the recomputation tickers used by the live view.
package schedule

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Ticker is an interval ticker that can be armed and disarmed repeatedly.
// Start on a running ticker and Stop on a stopped one are no-ops. While
// stopped, C returns a nil channel, which blocks forever in a select.
type Ticker struct {
	clock    clockwork.Clock
	interval time.Duration
	t        clockwork.Ticker
}

// NewTicker returns a stopped ticker.
func NewTicker(clock clockwork.Clock, interval time.Duration) *Ticker {
	return &Ticker{clock: clock, interval: interval}
}

// Start arms the ticker.
func (k *Ticker) Start() {
	if k.t != nil {
		return
	}
	k.t = k.clock.NewTicker(k.interval)
}

// Stop disarms the ticker immediately.
func (k *Ticker) Stop() {
	if k.t == nil {
		return
	}
	k.t.Stop()
	k.t = nil
}

// Set arms or disarms the ticker.
func (k *Ticker) Set(on bool) {
	if on {
		k.Start()
	} else {
		k.Stop()
	}
}

// Running reports whether the ticker is armed.
func (k *Ticker) Running() bool {
	return k.t != nil
}

// C returns the tick channel, or nil while stopped.
func (k *Ticker) C() <-chan time.Time {
	if k.t == nil {
		return nil
	}
	return k.t.Chan()
}

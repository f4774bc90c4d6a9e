package hal

import (
	"errors"
	"time"
)

// TickTimer runs a callback at a fixed rate on a dedicated goroutine.
//
// The RP2040 port of the runtime drives time.Ticker from the hardware timer,
// so a ticker goroutine is the platform's periodic-interrupt mechanism. The
// callback only ever runs on that one goroutine, which keeps the feeder's
// single-writer contract.
type TickTimer struct {
	// Done, when non-nil, stops the ticker goroutine once closed. On
	// device it stays nil: the hardware tick runs until reset. The host
	// simulator closes it at the end of each simulated power cycle so
	// cycles do not leak tickers.
	Done <-chan struct{}
}

// Start begins invoking fn hz times per second. The callback must return
// well within the tick period.
func (t TickTimer) Start(hz uint32, fn func()) error {
	if hz == 0 {
		return errors.New("tick rate must be nonzero")
	}
	if fn == nil {
		return errors.New("nil tick callback")
	}
	period := time.Second / time.Duration(hz)
	go func() {
		tk := time.NewTicker(period)
		defer tk.Stop()
		for {
			// Check Done first so a close stops the timer within
			// one period even while ticks keep arriving.
			select {
			case <-t.Done:
				return
			default:
			}
			select {
			case <-tk.C:
				fn()
			case <-t.Done:
				return
			}
		}
	}()
	return nil
}

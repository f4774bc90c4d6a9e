package hal

import (
	"errors"
	"sync"
	"time"
)

// SimWatchdog is a software stand-in for the hardware watchdog, for running
// the demo on a desktop. It counts down in wall-clock time and fires an
// expiry callback once when it is not fed in time, playing the role of the
// hardware reset.
type SimWatchdog struct {
	mu       sync.Mutex
	timeout  time.Duration
	deadline time.Time
	running  bool
	onExpire func()
}

// NewSimWatchdog returns a stopped simulated watchdog. onExpire runs at most
// once per Start, on the watchdog's own goroutine.
func NewSimWatchdog(timeout time.Duration, onExpire func()) *SimWatchdog {
	return &SimWatchdog{timeout: timeout, onExpire: onExpire}
}

// Start begins the countdown.
func (w *SimWatchdog) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return errors.New("watchdog already running")
	}
	if w.timeout <= 0 {
		return errors.New("watchdog timeout must be positive")
	}
	w.deadline = time.Now().Add(w.timeout)
	w.running = true
	go w.watch()
	return nil
}

// Feed restarts the countdown. Feeding a stopped or expired watchdog does
// nothing, like writing the service register of dead hardware.
func (w *SimWatchdog) Feed() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		w.deadline = time.Now().Add(w.timeout)
	}
}

// Running reports whether the countdown is live.
func (w *SimWatchdog) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *SimWatchdog) watch() {
	// Poll well inside the timeout so expiry lands close to the deadline.
	poll := w.timeout / 10
	if poll < time.Millisecond {
		poll = time.Millisecond
	}
	for {
		time.Sleep(poll)
		w.mu.Lock()
		expired := w.running && time.Now().After(w.deadline)
		if expired {
			w.running = false
		}
		w.mu.Unlock()
		if expired {
			if w.onExpire != nil {
				w.onExpire()
			}
			return
		}
	}
}

// SimResetCause is a latching stand-in for the reset-reason register.
type SimResetCause struct {
	mu sync.Mutex
	wd bool
}

// LatchWatchdog records a watchdog-caused reset, as the hardware would on
// its way down.
func (c *SimResetCause) LatchWatchdog() {
	c.mu.Lock()
	c.wd = true
	c.mu.Unlock()
}

// WatchdogCaused reports whether a watchdog reset is latched.
func (c *SimResetCause) WatchdogCaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wd
}

// Clear resets the latch. Re-reads after a clear report a clean boot until
// the next latch.
func (c *SimResetCause) Clear() {
	c.mu.Lock()
	c.wd = false
	c.mu.Unlock()
}

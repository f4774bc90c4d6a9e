// Package boot decides, once per power cycle, how the program runs based on
// why the chip last reset.
//
// A boot that follows a watchdog timeout parks in a fast-blink loop so the
// failure is visible until the next physical reset. A normal boot arms the
// watchdog, starts the periodic feed tick, and parks in the idle loop. The
// park loops themselves belong to the program main; Dispatch only picks the
// terminal state and arms the hardware for it.
package boot

import "errors"

// TicksPerSecond is the feed tick rate.
const TicksPerSecond = 1000

// State is where the program parks after dispatch. Dispatch never returns
// Booting except alongside an error.
type State uint8

const (
	Booting State = iota
	// WatchdogResetLoop fast-blinks the indicator forever; the previous
	// reset was a watchdog timeout.
	WatchdogResetLoop
	// NormalIdle spins idle while the tick timer feeds the watchdog.
	NormalIdle
)

// String returns the state name for debug output.
func (s State) String() string {
	switch s {
	case WatchdogResetLoop:
		return "watchdog-reset"
	case NormalIdle:
		return "normal"
	default:
		return "booting"
	}
}

// ResetCause is the hardware's record of why the last reset happened.
// Clear resets it so the next read reports a clean boot.
type ResetCause interface {
	WatchdogCaused() bool
	Clear()
}

// Watchdog starts the hardware watchdog countdown.
type Watchdog interface {
	Start() error
}

// TickTimer invokes fn at a fixed rate, hz times per second, until reset.
type TickTimer interface {
	Start(hz uint32, fn func()) error
}

// Dispatcher wires the reset-cause branch. All fields are required.
type Dispatcher struct {
	Cause    ResetCause
	Watchdog Watchdog
	Timer    TickTimer
	// Tick is installed as the timer callback on a normal boot. Only the
	// timer may call it afterwards.
	Tick func()
}

// Dispatch runs exactly once at startup. It reads and clears the reset
// cause, and on a normal boot arms the watchdog and the feed tick. The
// returned state is terminal for this power cycle.
func (d *Dispatcher) Dispatch() (State, error) {
	wdReset := d.Cause.WatchdogCaused()
	d.Cause.Clear()

	if wdReset {
		// Do not rearm anything: the point is to stay visibly broken
		// until someone power-cycles the board.
		return WatchdogResetLoop, nil
	}

	if err := d.Watchdog.Start(); err != nil {
		return Booting, errors.New("start watchdog:" + err.Error())
	}
	if err := d.Timer.Start(TicksPerSecond, d.Tick); err != nil {
		return Booting, errors.New("start tick timer:" + err.Error())
	}
	return NormalIdle, nil
}

//go:build rp2040

package hal

import (
	"device/rp"
	"machine"
)

// armedMagic marks SCRATCH0 while the watchdog is running. Scratch registers
// survive a watchdog reset but not a power-on reset, so the marker tells a
// watchdog reboot apart from a fresh boot even though the REASON register
// cannot be cleared from software.
const armedMagic = 0x57444f47 // "WDOG"

// xoscMHz is the crystal frequency feeding the watchdog tick generator.
const xoscMHz = 12

// WatchdogTimer drives the RP2040 hardware watchdog.
type WatchdogTimer struct {
	// TimeoutMillis is how long the countdown runs between feeds before
	// the chip resets.
	TimeoutMillis uint32
}

// Start configures and starts the watchdog countdown and arms the
// reset-cause marker.
func (w WatchdogTimer) Start() error {
	startTickGenerator()
	cfg := machine.WatchdogConfig{TimeoutMillis: w.TimeoutMillis}
	if err := machine.Watchdog.Configure(cfg); err != nil {
		return err
	}
	rp.WATCHDOG.SCRATCH0.Set(armedMagic)
	return machine.Watchdog.Start()
}

// Feed restarts the countdown.
func (w WatchdogTimer) Feed() {
	machine.Watchdog.Update()
}

// startTickGenerator enables the microsecond tick the watchdog counts on.
// The runtime normally sets this up during clock init, but a forced reset
// can leave it disabled.
func startTickGenerator() {
	rp.WATCHDOG.TICK.Set(rp.WATCHDOG_TICK_ENABLE | xoscMHz)
}

// ResetCause reads why the chip last reset.
type ResetCause struct{}

// WatchdogCaused reports whether the last reset was a watchdog timeout.
// The REASON timer bit alone also fires on deliberate watchdog reboots, so
// it is qualified by the SCRATCH0 marker left by Start.
func (ResetCause) WatchdogCaused() bool {
	return rp.WATCHDOG.REASON.HasBits(rp.WATCHDOG_REASON_TIMER) &&
		rp.WATCHDOG.SCRATCH0.Get() == armedMagic
}

// Clear drops the marker so a re-read reports a clean boot.
func (ResetCause) Clear() {
	rp.WATCHDOG.SCRATCH0.Set(0)
}

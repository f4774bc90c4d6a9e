//go:build tinygo

package hal

import "machine"

// LED is a GPIO-pin indicator with a tracked output level.
type LED struct {
	pin machine.Pin
	on  bool
}

// ConfigureLED sets pin up as a digital output, initially low.
func ConfigureLED(pin machine.Pin) *LED {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Low()
	return &LED{pin: pin}
}

// Toggle flips the output level.
func (l *LED) Toggle() {
	l.on = !l.on
	l.pin.Set(l.on)
}

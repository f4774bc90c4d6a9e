//go:build tinygo

package hal

import (
	"errors"
	"log/slog"

	"github.com/soypat/cyw43439"
)

// wlLEDPin is the CYW43439 GPIO wired to the Pico W onboard LED.
const wlLEDPin = 0

// PicoWLED drives the Pico W onboard LED. On that board the LED is not on an
// RP2040 pin at all; it hangs off GPIO 0 of the CYW43439 wireless chip, so
// toggling it goes over the chip's SPI control plane.
type PicoWLED struct {
	dev *cyw43439.Device
	on  bool
}

// ConfigurePicoWLED brings up the CYW43439 far enough to drive its GPIOs.
// No network interface is joined.
func ConfigurePicoWLED(logger *slog.Logger) (*PicoWLED, error) {
	dev := cyw43439.NewPicoWDevice()
	dev.SetLogger(logger)
	if err := dev.Init(cyw43439.DefaultWifiConfig()); err != nil {
		return nil, errors.New("cyw43439 init:" + err.Error())
	}
	return &PicoWLED{dev: dev}, nil
}

// Toggle flips the LED. A transfer error leaves the LED where it was; the
// feed schedule must not stall on a cosmetic failure, so it is dropped.
func (l *PicoWLED) Toggle() {
	l.on = !l.on
	_ = l.dev.GPIOSet(wlLEDPin, l.on)
}

//go:build tinygo

// Command wdtfeed keeps the RP2040 hardware watchdog alive from a 1 kHz
// tick, feeding it once per second for 10 feeds total. When the budget runs
// out the watchdog resets the chip, and the next boot detects the
// watchdog-caused reset and fast-blinks the LED until a physical reset.
package main

import (
	"log/slog"
	"machine"
	"time"

	"github.com/harveysanders/picowatchdog/wdtfeed/boot"
	"github.com/harveysanders/picowatchdog/wdtfeed/display"
	"github.com/harveysanders/picowatchdog/wdtfeed/feeder"
	"github.com/harveysanders/picowatchdog/wdtfeed/hal"
	"tinygo.org/x/drivers/hd44780i2c"
)

const (
	// watchdogTimeoutMillis allows one missed one-second feed before the
	// chip resets.
	watchdogTimeoutMillis = 2000
	// fastBlinkInterval is the LED half-period after a watchdog reset.
	fastBlinkInterval = 100 * time.Millisecond
	// idlePollInterval paces the idle loop's debug polling.
	idlePollInterval = 10 * time.Millisecond
	// enableStatusLCD compiles in the HD44780 status display on I2C0.
	enableStatusLCD = false
	// lcdAddr is the display's I2C address (0x27 on most backpacks).
	lcdAddr = 0x27
)

// board selects the indicator wiring. Flash a Pico W with
// -ldflags="-X main.board=pico-w" to drive the onboard LED through the
// CYW43439; anything else uses machine.LED.
var board = "pico"

func main() {
	logger := slog.New(slog.NewTextHandler(machine.Serial, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	led := configureIndicator(logger)
	wdt := hal.WatchdogTimer{TimeoutMillis: watchdogTimeoutMillis}
	fd := feeder.New(feeder.Config{}, wdt, led)

	d := boot.Dispatcher{
		Cause:    hal.ResetCause{},
		Watchdog: wdt,
		Timer:    hal.TickTimer{},
		Tick:     fd.Tick,
	}
	state, err := d.Dispatch()
	if err != nil {
		printErrForever(logger, "boot dispatch", slog.Any("reason", err))
	}
	logger.Info("boot", slog.String("state", state.String()))

	statusUpdates := configureStatusLCD(logger)
	sendStatus(statusUpdates, display.Status{State: state.String()})

	if state == boot.WatchdogResetLoop {
		// The previous run starved the watchdog. Blink fast until the
		// next physical reset.
		for {
			led.Toggle()
			time.Sleep(fastBlinkInterval)
		}
	}

	// Normal boot: the tick timer feeds the watchdog in the background,
	// so this loop only surfaces debug output.
	for {
		if fd.TakeFed() {
			logger.Debug("watchdog fed", slog.Uint64("feeds", uint64(fd.Feeds())))
			sendStatus(statusUpdates, display.Status{
				State: state.String(),
				Feeds: fd.Feeds(),
			})
		}
		time.Sleep(idlePollInterval)
	}
}

// configureIndicator picks the LED wiring for the board being flashed.
func configureIndicator(logger *slog.Logger) feeder.Toggler {
	if board == "pico-w" {
		led, err := hal.ConfigurePicoWLED(logger)
		if err != nil {
			printErrForever(logger, "configure pico-w LED", slog.Any("reason", err))
		}
		return led
	}
	return hal.ConfigureLED(machine.LED)
}

// configureStatusLCD sets up the optional debug display and returns its
// update channel, or nil when the display is compiled out.
func configureStatusLCD(logger *slog.Logger) chan<- display.Status {
	if !enableStatusLCD {
		return nil
	}

	err := machine.I2C0.Configure(machine.I2CConfig{
		SDA: machine.GP4,
		SCL: machine.GP5,
	})
	if err != nil {
		printErrForever(logger, "configure I2C", slog.Any("reason", err))
	}

	dev := hd44780i2c.New(machine.I2C0, lcdAddr)
	dev.Configure(hd44780i2c.Config{
		Width:  16,
		Height: 2,
	})

	updates := make(chan display.Status, 4)
	go display.NewHandler(dev, updates).Run()
	return updates
}

// sendStatus drops the update if the display is absent or busy.
func sendStatus(updates chan<- display.Status, s display.Status) {
	if updates == nil {
		return
	}
	select {
	case updates <- s:
	default:
	}
}

// printErrForever prints a string to serial @ 1hz. It blocks forever.
func printErrForever(logger *slog.Logger, msg string, args ...any) {
	for {
		logger.Error(msg, args...)
		time.Sleep(time.Second)
	}
}

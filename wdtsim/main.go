//go:build !tinygo

// Command wdtsim plays the watchdog-feed firmware on a desktop. The same
// feeder and boot dispatcher run against a simulated watchdog and
// reset-reason register, so the whole life cycle is observable without a
// board: normal boot, feeds until the budget runs out, watchdog "reset",
// then the next boot detects the cause and fast-blinks.
//
// Timing comes from a YAML scenario (see the scenario package); the default
// plays the cycle in under a second.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/harveysanders/picowatchdog/wdtfeed/boot"
	"github.com/harveysanders/picowatchdog/wdtfeed/feeder"
	"github.com/harveysanders/picowatchdog/wdtfeed/hal"
	"github.com/harveysanders/picowatchdog/wdtsim/scenario"
)

// consoleLED stands in for the indicator pin: it logs level changes.
type consoleLED struct {
	logger *slog.Logger
	on     bool
}

func (l *consoleLED) Toggle() {
	l.on = !l.on
	l.logger.Info("led", slog.Bool("on", l.on))
}

func main() {
	var (
		scenarioPath = flag.String("scenario", "", "YAML scenario file (built-in defaults when empty)")
		verbose      = flag.Bool("v", false, "log each feed")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	sc := scenario.Default()
	if *scenarioPath != "" {
		var err error
		sc, err = scenario.Load(*scenarioPath)
		if err != nil {
			logger.Error("load scenario", slog.Any("reason", err))
			os.Exit(1)
		}
	}
	if err := scenario.Validate(sc); err != nil {
		logger.Error("invalid scenario", slog.Any("reason", err))
		os.Exit(1)
	}

	// The reset-reason register survives the simulated reset, exactly
	// like the hardware one.
	cause := &hal.SimResetCause{}

	logger.Info("power on")
	for cycle := 1; ; cycle++ {
		state := runBootCycle(cycle, sc, cause, logger)
		if state == boot.WatchdogResetLoop {
			logger.Info("hardware would fast-blink until a physical reset; exiting")
			return
		}
	}
}

// runBootCycle is one power cycle: dispatch, then park until the simulated
// chip resets. It returns the state the cycle parked in.
func runBootCycle(cycle int, sc *scenario.Scenario, cause *hal.SimResetCause, logger *slog.Logger) boot.State {
	expired := make(chan struct{})
	wdt := hal.NewSimWatchdog(sc.Timeout(), func() {
		// The hardware latches the reason on its way down.
		cause.LatchWatchdog()
		close(expired)
	})
	led := &consoleLED{logger: logger}
	fd := feeder.New(feeder.Config{
		TicksPerFeed: sc.Feed.TicksPerFeed,
		MaxFeeds:     sc.Feed.MaxFeeds,
	}, wdt, led)

	d := boot.Dispatcher{
		Cause:    cause,
		Watchdog: wdt,
		// The expiry channel doubles as the timer stop signal, so the
		// cycle's ticker goroutine dies with its "chip".
		Timer: hal.TickTimer{Done: expired},
		Tick:  fd.Tick,
	}
	state, err := d.Dispatch()
	if err != nil {
		logger.Error("boot dispatch", slog.Any("reason", err))
		os.Exit(1)
	}
	logger.Info("boot", slog.Int("cycle", cycle), slog.String("state", state.String()))

	if state == boot.WatchdogResetLoop {
		for i := 0; i < sc.Run.FastBlinks; i++ {
			led.Toggle()
			time.Sleep(sc.BlinkInterval())
		}
		return state
	}

	// Idle until the watchdog starves. The tick timer keeps feeding in
	// the background until the feeder's budget runs out.
	for {
		select {
		case <-expired:
			logger.Warn("watchdog timeout, chip resets",
				slog.Uint64("feeds", uint64(fd.Feeds())),
			)
			return state
		default:
			if fd.TakeFed() {
				logger.Debug("watchdog fed", slog.Uint64("feeds", uint64(fd.Feeds())))
			}
			time.Sleep(time.Millisecond)
		}
	}
}

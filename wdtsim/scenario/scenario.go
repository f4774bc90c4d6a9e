// Package scenario loads and validates run parameters for the host
// simulator. A scenario compresses (or reproduces) the firmware's timing:
// the tick rate stays at 1 kHz, so one tick is one simulated millisecond,
// and the feed period and watchdog timeout shrink together.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Scenario struct {
	Watchdog WatchdogConfig `yaml:"watchdog"`
	Feed     FeedConfig     `yaml:"feed"`
	Run      RunConfig      `yaml:"run"`
}

type WatchdogConfig struct {
	TimeoutMs int `yaml:"timeout_ms"`
}

type FeedConfig struct {
	TicksPerFeed uint32 `yaml:"ticks_per_feed"`
	MaxFeeds     uint32 `yaml:"max_feeds"`
}

type RunConfig struct {
	// FastBlinks is how many fast-blink toggles to show after the
	// watchdog reset is detected, before the simulator exits. Hardware
	// blinks forever.
	FastBlinks      int `yaml:"fast_blinks"`
	BlinkIntervalMs int `yaml:"blink_interval_ms"`
}

// Default returns a compressed-time scenario: feed every 50 ms, five feeds,
// 100 ms watchdog timeout. The whole starve-reset-detect cycle plays out in
// under half a second. Hardware timing is ticks_per_feed: 1000,
// max_feeds: 10, timeout_ms: 2000.
func Default() *Scenario {
	return &Scenario{
		Watchdog: WatchdogConfig{TimeoutMs: 100},
		Feed:     FeedConfig{TicksPerFeed: 50, MaxFeeds: 5},
		Run:      RunConfig{FastBlinks: 6, BlinkIntervalMs: 20},
	}
}

// Load reads a YAML scenario file. Fields the file leaves unset keep their
// defaults.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := Default()
	if err := yaml.Unmarshal(raw, sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return sc, nil
}

// Validate checks scenario correctness. It does not mutate the scenario.
func Validate(sc *Scenario) error {
	if sc.Watchdog.TimeoutMs <= 0 {
		return errors.New("watchdog.timeout_ms must be positive")
	}
	if sc.Feed.TicksPerFeed == 0 {
		return errors.New("feed.ticks_per_feed must be positive")
	}
	if sc.Feed.MaxFeeds == 0 {
		return errors.New("feed.max_feeds must be positive")
	}
	if sc.Run.FastBlinks <= 0 {
		return errors.New("run.fast_blinks must be positive")
	}
	if sc.Run.BlinkIntervalMs <= 0 {
		return errors.New("run.blink_interval_ms must be positive")
	}
	// At the 1 kHz tick rate one feed period is ticks_per_feed
	// milliseconds; it has to land inside the watchdog timeout or the
	// simulated chip resets before the first feed.
	if int(sc.Feed.TicksPerFeed) >= sc.Watchdog.TimeoutMs {
		return fmt.Errorf(
			"feed period %dms does not fit inside watchdog timeout %dms",
			sc.Feed.TicksPerFeed, sc.Watchdog.TimeoutMs,
		)
	}
	return nil
}

// Timeout returns the watchdog timeout as a duration.
func (s *Scenario) Timeout() time.Duration {
	return time.Duration(s.Watchdog.TimeoutMs) * time.Millisecond
}

// BlinkInterval returns the fast-blink half-period as a duration.
func (s *Scenario) BlinkInterval() time.Duration {
	return time.Duration(s.Run.BlinkIntervalMs) * time.Millisecond
}

// Package feeder implements the periodic watchdog-feeding state machine.
//
// A Feeder is driven by a fixed-rate tick (1 kHz on the Pico). Every
// TicksPerFeed ticks it services the hardware watchdog and toggles the
// indicator LED, up to MaxFeeds times total. Once the feed budget is spent
// the watchdog is no longer serviced and the hardware resets the chip.
//
// Only Tick mutates the counters, and it must only ever be called from a
// single goroutine (the timer callback). The idle loop polls the accessors
// from another goroutine, so the counters and the fed flag are atomics:
// TakeFed hands the flag over with a compare-and-swap rather than a bare
// read-then-write.
package feeder

import "sync/atomic"

const (
	// DefaultTicksPerFeed is one feed per second at a 1 kHz tick rate.
	DefaultTicksPerFeed = 1000
	// DefaultMaxFeeds is the total feed budget per boot.
	DefaultMaxFeeds = 10
)

// Servicer restarts the hardware watchdog countdown. The call must land
// inside the watchdog's configured service window; enforcing that is the
// hardware's business, not the feeder's.
type Servicer interface {
	Feed()
}

// Toggler flips a digital indicator output.
type Toggler interface {
	Toggle()
}

// Config bounds the feeding schedule. Zero values select the defaults.
type Config struct {
	TicksPerFeed uint32
	MaxFeeds     uint32
}

// Feeder counts ticks and feeds the watchdog on schedule. Create with New.
type Feeder struct {
	wdt Servicer
	led Toggler

	ticksPerFeed uint32
	maxFeeds     uint32

	ticks atomic.Uint32 // ticks since the last feed
	feeds atomic.Uint32 // feeds since boot, never exceeds maxFeeds
	fed   atomic.Bool   // set on each feed, cleared by TakeFed
}

// New returns a Feeder that services wdt and toggles led on the schedule
// given by cfg.
func New(cfg Config, wdt Servicer, led Toggler) *Feeder {
	if cfg.TicksPerFeed == 0 {
		cfg.TicksPerFeed = DefaultTicksPerFeed
	}
	if cfg.MaxFeeds == 0 {
		cfg.MaxFeeds = DefaultMaxFeeds
	}
	return &Feeder{
		wdt:          wdt,
		led:          led,
		ticksPerFeed: cfg.TicksPerFeed,
		maxFeeds:     cfg.MaxFeeds,
	}
}

// Tick is the periodic interrupt body. It must not block and does not
// allocate.
func (f *Feeder) Tick() {
	if f.ticks.Add(1) == f.ticksPerFeed && f.feeds.Load() < f.maxFeeds {
		f.fed.Store(true)
		f.led.Toggle()
		f.wdt.Feed()
		f.ticks.Store(0)
		f.feeds.Add(1)
	}
	// Once the budget is spent the tick counter is deliberately left
	// running: it counts past ticksPerFeed, the equality above can never
	// hold again, and the unserviced watchdog resets the chip.
}

// Ticks returns the ticks counted since the last feed.
func (f *Feeder) Ticks() uint32 { return f.ticks.Load() }

// Feeds returns how many times the watchdog has been fed since boot.
func (f *Feeder) Feeds() uint32 { return f.feeds.Load() }

// Exhausted reports whether the feed budget has been spent.
func (f *Feeder) Exhausted() bool { return f.feeds.Load() >= f.maxFeeds }

// TakeFed reports whether a feed happened since the last call and clears
// the flag. It is meant for the idle loop's debug output.
func (f *Feeder) TakeFed() bool {
	return f.fed.CompareAndSwap(true, false)
}

package feeder

import "testing"

type fakeWatchdog struct {
	feeds int
}

func (w *fakeWatchdog) Feed() { w.feeds++ }

type fakeLED struct {
	toggles int
}

func (l *fakeLED) Toggle() { l.toggles++ }

func tick(f *Feeder, n int) {
	for i := 0; i < n; i++ {
		f.Tick()
	}
}

func TestNoFeedBeforeInterval(t *testing.T) {
	wdt := &fakeWatchdog{}
	led := &fakeLED{}
	f := New(Config{}, wdt, led)

	tick(f, 999)

	if wdt.feeds != 0 {
		t.Fatalf("feeds=%d, want 0 before the interval elapses", wdt.feeds)
	}
	if led.toggles != 0 {
		t.Fatalf("toggles=%d, want 0 before the interval elapses", led.toggles)
	}
	if f.TakeFed() {
		t.Fatal("TakeFed()=true before any feed")
	}
	if got := f.Ticks(); got != 999 {
		t.Fatalf("Ticks()=%d, want 999", got)
	}
}

func TestFeedOnInterval(t *testing.T) {
	wdt := &fakeWatchdog{}
	led := &fakeLED{}
	f := New(Config{}, wdt, led)

	tick(f, 1000)

	if wdt.feeds != 1 {
		t.Fatalf("feeds=%d, want 1", wdt.feeds)
	}
	if led.toggles != 1 {
		t.Fatalf("toggles=%d, want 1", led.toggles)
	}
	if got := f.Feeds(); got != 1 {
		t.Fatalf("Feeds()=%d, want 1", got)
	}
	if got := f.Ticks(); got != 0 {
		t.Fatalf("Ticks()=%d, want 0 after a feed", got)
	}
	if !f.TakeFed() {
		t.Fatal("TakeFed()=false right after a feed")
	}
	if f.TakeFed() {
		t.Fatal("TakeFed()=true twice; the flag must clear on read")
	}
}

func TestFeedBudget(t *testing.T) {
	wdt := &fakeWatchdog{}
	led := &fakeLED{}
	f := New(Config{}, wdt, led)

	tick(f, 10000)

	if wdt.feeds != DefaultMaxFeeds {
		t.Fatalf("feeds=%d, want %d", wdt.feeds, DefaultMaxFeeds)
	}
	if led.toggles != DefaultMaxFeeds {
		t.Fatalf("toggles=%d, want %d", led.toggles, DefaultMaxFeeds)
	}
	if !f.Exhausted() {
		t.Fatal("Exhausted()=false after the full budget")
	}
}

func TestFeedsStopAtBudget(t *testing.T) {
	wdt := &fakeWatchdog{}
	led := &fakeLED{}
	f := New(Config{}, wdt, led)

	tick(f, 30000)

	if wdt.feeds != DefaultMaxFeeds {
		t.Fatalf("feeds=%d, want %d even after 30000 ticks", wdt.feeds, DefaultMaxFeeds)
	}
	if led.toggles != DefaultMaxFeeds {
		t.Fatalf("toggles=%d, want %d even after 30000 ticks", led.toggles, DefaultMaxFeeds)
	}
	// After the last feed the counter is never reset again, so it keeps
	// counting: 30000 ticks = 10 feeds * 1000 + 20000 leftover.
	if got := f.Ticks(); got != 20000 {
		t.Fatalf("Ticks()=%d, want 20000 (counter keeps running after the budget)", got)
	}
}

// TestConcurrentPolling ticks on one goroutine while the other polls the
// accessors, the way the idle loop does. Run with -race.
func TestConcurrentPolling(t *testing.T) {
	wdt := &fakeWatchdog{}
	led := &fakeLED{}
	f := New(Config{TicksPerFeed: 10, MaxFeeds: 5}, wdt, led)

	done := make(chan struct{})
	go func() {
		tick(f, 100)
		close(done)
	}()

	observed := 0
	for running := true; running; {
		if f.TakeFed() {
			observed++
		}
		_ = f.Feeds()
		_ = f.Ticks()
		_ = f.Exhausted()
		select {
		case <-done:
			running = false
		default:
		}
	}
	// Drain a feed the last poll may have missed.
	if f.TakeFed() {
		observed++
	}

	if wdt.feeds != 5 {
		t.Fatalf("feeds=%d, want 5", wdt.feeds)
	}
	if got := f.Feeds(); got != 5 {
		t.Fatalf("Feeds()=%d, want 5", got)
	}
	// Polling may merge back-to-back feeds into one observation, but it
	// can never observe more feeds than happened.
	if observed == 0 || observed > 5 {
		t.Fatalf("observed %d feeds via TakeFed, want 1..5", observed)
	}
}

func TestCustomSchedule(t *testing.T) {
	cases := []struct {
		name      string
		cfg       Config
		ticks     int
		wantFeeds int
		wantTicks uint32
		wantSpent bool
	}{
		{"half interval", Config{TicksPerFeed: 4, MaxFeeds: 2}, 2, 0, 2, false},
		{"one interval", Config{TicksPerFeed: 4, MaxFeeds: 2}, 4, 1, 0, false},
		{"budget spent", Config{TicksPerFeed: 4, MaxFeeds: 2}, 8, 2, 0, true},
		{"past budget", Config{TicksPerFeed: 4, MaxFeeds: 2}, 20, 2, 12, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wdt := &fakeWatchdog{}
			f := New(tc.cfg, wdt, &fakeLED{})
			tick(f, tc.ticks)

			if wdt.feeds != tc.wantFeeds {
				t.Errorf("feeds=%d, want %d", wdt.feeds, tc.wantFeeds)
			}
			if got := f.Ticks(); got != tc.wantTicks {
				t.Errorf("Ticks()=%d, want %d", got, tc.wantTicks)
			}
			if got := f.Exhausted(); got != tc.wantSpent {
				t.Errorf("Exhausted()=%v, want %v", got, tc.wantSpent)
			}
		})
	}
}

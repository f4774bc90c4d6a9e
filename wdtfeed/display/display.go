//go:build tinygo

// Package display drives an optional HD44780 character LCD that mirrors the
// watchdog feeding status for bench debugging.
//
// Example usage:
//
//	updates := make(chan display.Status, 4)
//	handler := display.NewHandler(device, updates)
//	go handler.Run()
//
//	// Send updates non-blocking
//	select {
//	case updates <- display.Status{State: "normal", Feeds: 3}:
//	default:
//	    // Channel full - update dropped
//	}
package display

import (
	"strconv"

	"tinygo.org/x/drivers/hd44780i2c"
)

// Status is one snapshot of the feeding state machine.
type Status struct {
	// State names the boot branch, e.g. "normal" or "watchdog-reset".
	State string
	// Feeds is how many times the watchdog has been fed since boot.
	Feeds uint32
}

// Handler renders Status snapshots from a channel onto a 16x2 LCD.
type Handler struct {
	device  hd44780i2c.Device
	updates <-chan Status
	columns int
	// Preallocated line buffer so rendering never touches the heap.
	buf []byte
}

// NewHandler creates a 16x2 LCD status handler.
func NewHandler(device hd44780i2c.Device, updates <-chan Status) *Handler {
	return &Handler{
		device:  device,
		updates: updates,
		columns: 16,
		buf:     make([]byte, 0, 16),
	}
}

// Run renders snapshots as they arrive. Run should be called in a separate
// goroutine.
func (h *Handler) Run() {
	for s := range h.updates {
		h.show(s)
	}
}

// show prints s on the LCD, state on line one, feed count on line two.
func (h *Handler) show(s Status) {
	h.device.ClearDisplay()
	h.device.SetCursor(0, 0)

	h.buf = h.buf[:0]
	h.buf = append(h.buf, s.State...)
	h.printLine(h.buf)

	h.device.SetCursor(0, 1)
	h.buf = h.buf[:0]
	h.buf = append(h.buf, "feeds: "...)
	h.buf = strconv.AppendUint(h.buf, uint64(s.Feeds), 10)
	h.printLine(h.buf)
}

// printLine writes line truncated to the display width, in place and
// without allocating.
func (h *Handler) printLine(line []byte) {
	if len(line) > h.columns {
		line = line[:h.columns]
	}
	h.device.Print(line)
}

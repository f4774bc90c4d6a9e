// Package hal provides the hardware behind the watchdog demo: the RP2040
// watchdog and reset-reason registers, the indicator LED (plain Pico GPIO or
// the Pico W's CYW43439-attached LED), the fixed-rate tick timer, and
// software stand-ins for running the same logic on a desktop.
package hal

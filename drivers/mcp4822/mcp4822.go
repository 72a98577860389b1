// Package mcp4822 provides a minimal TinyGo driver for the Microchip
// MCP4802/4812/4822 (and MCP49x2) dual-channel SPI DACs.
//
// Design notes (datasheet references):
// • SPI mode 0,0 or 1,1, MSB first, one 16-bit write per conversion.
// • Word layout: [A/B, BUF, /GA, /SHDN, D11..D0]; 8- and 10-bit parts
//   left-align their data in the same 12-bit field.
// • /LDAC is assumed tied low so the output latches on CS rising.
// • No readback; the device has no MISO output.
package mcp4822

import (
	"sinedac-go/errcode"

	"tinygo.org/x/drivers"
)

// Channel selects output A or B.
type Channel uint8

const (
	ChannelA Channel = iota
	ChannelB
)

// Gain selects the output amplifier gain.
type Gain uint8

const (
	Gain1x Gain = iota // Vout = Vref * D/4096
	Gain2x             // Vout = 2 * Vref * D/4096
)

// Control bits of the 16-bit input word.
const (
	bitChannelB = 1 << 15
	bitBuffered = 1 << 14 // MCP49x2 only; ignored by MCP48x2
	bitGain1x   = 1 << 13 // /GA: set selects 1x
	bitActive   = 1 << 12 // /SHDN: set keeps the channel on

	// DataBits is the width of the data field.
	DataBits = 12
	dataMask = 1<<DataBits - 1
)

// Pin drives chip-select. machine.Pin satisfies it.
type Pin interface {
	Set(high bool)
}

// Config holds optional settings.
type Config struct {
	// Buffered sets BUF on every word (MCP49x2 Vref input buffer).
	Buffered bool
}

// Device is one DAC on an SPI bus.
type Device struct {
	bus drivers.SPI
	cs  Pin
	buf bool

	// Fixed buffer to avoid per-call heap allocations.
	w [2]byte
}

// New creates a driver. The bus must already be configured for mode 0 and
// a clock the part supports (20 MHz max). cs may be nil when the bus
// hardware drives chip-select itself.
func New(bus drivers.SPI, cs Pin) *Device {
	return &Device{bus: bus, cs: cs}
}

// Configure applies cfg and parks chip-select high.
func (d *Device) Configure(cfg Config) {
	d.buf = cfg.Buffered
	if d.cs != nil {
		d.cs.Set(true)
	}
}

// ConfigBits returns the constant high bits for a channel, gain and
// power state. For channel A, 1x gain, active this is 0x3000; for
// channel B it is 0xB000.
func ConfigBits(ch Channel, g Gain, active bool) uint16 {
	var v uint16
	if ch == ChannelB {
		v |= bitChannelB
	}
	if g == Gain1x {
		v |= bitGain1x
	}
	if active {
		v |= bitActive
	}
	return v
}

// WriteWord clocks one raw 16-bit word out, MSB first, and blocks until
// the bus has accepted it.
func (d *Device) WriteWord(w uint16) error {
	if d.buf {
		w |= bitBuffered
	}
	d.w[0] = byte(w >> 8)
	d.w[1] = byte(w)
	if d.cs != nil {
		d.cs.Set(false)
	}
	err := d.bus.Tx(d.w[:], nil)
	if d.cs != nil {
		d.cs.Set(true)
	}
	return errcode.Wrap(errcode.MapBusErr(err), "mcp4822.WriteWord", err)
}

// Write sets one channel to code (0..4095) at the given gain.
func (d *Device) Write(ch Channel, g Gain, code uint16) error {
	if code > dataMask {
		return errcode.New(errcode.InvalidParams, "mcp4822.Write", "code exceeds 12 bits")
	}
	return d.WriteWord(ConfigBits(ch, g, true) | code)
}

// Shutdown powers a channel down; its output goes high-impedance.
func (d *Device) Shutdown(ch Channel) error {
	return d.WriteWord(ConfigBits(ch, Gain1x, false))
}

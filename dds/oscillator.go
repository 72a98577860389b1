package dds

import "sinedac-go/errcode"

// Transport accepts one DAC word and blocks until the bus has taken it.
type Transport interface {
	WriteWord(w uint16) error
}

// Oscillator is a phase-accumulator oscillator. It is not safe for
// concurrent use: exactly one goroutine calls Tick.
type Oscillator struct {
	tab  *Table
	incr uint32
	acc  uint32
	f    WordFormat
	out  Transport
	last uint16
}

// NewOscillator wires a built table to a transport. The accumulator starts
// at zero.
func NewOscillator(tab *Table, incr uint32, f WordFormat, out Transport) (*Oscillator, error) {
	const op = "dds.NewOscillator"
	if tab == nil || out == nil {
		return nil, errcode.New(errcode.InvalidParams, op, "table and transport are required")
	}
	if incr == 0 {
		return nil, errcode.New(errcode.InvalidConfig, op, "zero phase increment")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &Oscillator{tab: tab, incr: incr, f: f, out: out}, nil
}

// Tick advances the phase by one increment, looks up and encodes the
// sample, and writes it. A transport error means the sample was dropped;
// the phase has still advanced so the waveform stays on schedule.
func (o *Oscillator) Tick() error {
	o.acc += o.incr
	w := o.f.Encode(o.tab.Lookup(o.acc))
	o.last = w
	return o.out.WriteWord(w)
}

// Phase returns the current accumulator.
func (o *Oscillator) Phase() uint32 { return o.acc }

// Increment returns the per-tick phase step.
func (o *Oscillator) Increment() uint32 { return o.incr }

// LastWord returns the most recently encoded word.
func (o *Oscillator) LastWord() uint16 { return o.last }

// Table returns the read-only lookup table.
func (o *Oscillator) Table() *Table { return o.tab }

// Format returns the output word format.
func (o *Oscillator) Format() WordFormat { return o.f }

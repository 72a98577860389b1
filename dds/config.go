package dds

import (
	"strconv"

	"sinedac-go/errcode"
	"sinedac-go/x/mathx"
)

const fullCycle = 1 << 32

// Config gathers the startup constants of one oscillator.
type Config struct {
	ToneHz    uint32
	SampleHz  uint32
	TableSize int
	Amplitude int
	Format    WordFormat
}

// Increment returns round(toneHz * 2^32 / sampleHz). It rejects a zero
// sample rate, a tone that rounds to a zero increment (flat output) and a
// tone at or above Nyquist (aliased output).
func Increment(toneHz, sampleHz uint32) (uint32, error) {
	const op = "dds.Increment"
	if sampleHz == 0 {
		return 0, errcode.New(errcode.InvalidConfig, op, "sample rate is zero")
	}
	inc := mathx.RoundDiv(uint64(toneHz)<<32, uint64(sampleHz))
	switch {
	case inc == 0:
		return 0, errcode.New(errcode.InvalidConfig, op, "tone "+strconv.FormatUint(uint64(toneHz), 10)+" Hz gives a zero increment")
	case inc >= fullCycle/2:
		return 0, errcode.New(errcode.InvalidConfig, op, "tone "+strconv.FormatUint(uint64(toneHz), 10)+" Hz is at or above Nyquist")
	}
	return uint32(inc), nil
}

// Frequency returns the tone produced by incr at sampleHz.
func Frequency(incr, sampleHz uint32) float64 {
	return float64(incr) * float64(sampleHz) / fullCycle
}

// PhaseAt returns the accumulator value after k ticks from zero.
func PhaseAt(incr uint32, k uint64) uint32 {
	return uint32(uint64(incr) * k)
}

// New validates cfg, builds the table and returns an oscillator driving out.
func New(cfg Config, out Transport) (*Oscillator, error) {
	tab, err := BuildTable(cfg.TableSize, cfg.Amplitude)
	if err != nil {
		return nil, err
	}
	if err := ValidateFormat(tab, cfg.Format); err != nil {
		return nil, err
	}
	inc, err := Increment(cfg.ToneHz, cfg.SampleHz)
	if err != nil {
		return nil, err
	}
	return NewOscillator(tab, inc, cfg.Format, out)
}

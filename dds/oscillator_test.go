package dds

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sinedac-go/errcode"
)

// recorder is a Transport that keeps every word.
type recorder struct {
	words []uint16
	err   error
}

func (r *recorder) WriteWord(w uint16) error {
	if r.err != nil {
		return r.err
	}
	r.words = append(r.words, w)
	return nil
}

func referenceConfig() Config {
	return Config{
		ToneHz:    800,
		SampleHz:  40000,
		TableSize: 256,
		Amplitude: 2047,
		Format:    chanA,
	}
}

func TestIncrement(t *testing.T) {
	inc, err := Increment(800, 40000)
	require.NoError(t, err)
	assert.Equal(t, uint32(85899346), inc)

	// Reconstructed tone is within one increment quantum.
	assert.InDelta(t, 800.0, Frequency(inc, 40000), 40000.0/(1<<32))

	for _, tc := range []struct{ tone, fs uint32 }{
		{1, 48000}, {440, 44100}, {19999, 40000}, {1000, 1 << 31},
	} {
		inc, err := Increment(tc.tone, tc.fs)
		require.NoError(t, err, "tone=%d fs=%d", tc.tone, tc.fs)
		assert.InDelta(t, float64(tc.tone), Frequency(inc, tc.fs), float64(tc.fs)/(1<<32))
	}
}

func TestIncrementRejectsBadConfig(t *testing.T) {
	for _, tc := range []struct {
		name     string
		tone, fs uint32
	}{
		{"zero sample rate", 800, 0},
		{"zero tone", 0, 40000},
		{"nyquist", 20000, 40000},
		{"above nyquist", 30000, 40000},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Increment(tc.tone, tc.fs)
			assert.Equal(t, errcode.InvalidConfig, errcode.Of(err))
		})
	}
}

func TestPhaseAtWraps(t *testing.T) {
	assert.Equal(t, uint32(0), PhaseAt(85899346, 0))
	assert.Equal(t, uint32(0), PhaseAt(1<<31, 2))
	assert.Equal(t, uint32(math.MaxUint32), PhaseAt(math.MaxUint32, 1))
	assert.Equal(t, uint32(math.MaxUint32-1), PhaseAt(math.MaxUint32, 2))
}

func TestOscillatorAccumulatorMatchesClosedForm(t *testing.T) {
	out := &recorder{}
	o, err := New(referenceConfig(), out)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), o.Phase())

	// 200k ticks passes through several 2^32 wraps.
	const ticks = 200000
	for k := uint64(1); k <= ticks; k++ {
		require.NoError(t, o.Tick())
		require.Equal(t, PhaseAt(o.Increment(), k), o.Phase(), "tick %d", k)
	}
	assert.Len(t, out.words, ticks)
}

func TestOscillatorWords(t *testing.T) {
	out := &recorder{}
	o, err := New(referenceConfig(), out)
	require.NoError(t, err)

	tab := o.Table()
	f := o.Format()
	for k := uint64(1); k <= 5000; k++ {
		require.NoError(t, o.Tick())
		w := out.words[len(out.words)-1]
		idx := tab.Index(PhaseAt(o.Increment(), k))

		assert.Equal(t, uint16(0x3000), w&^f.Mask(), "config bits at tick %d", k)
		want := uint16(int32(tab.At(idx))+f.Offset()) & f.Mask()
		assert.Equal(t, want, f.Sample(w), "sample at tick %d", k)
		assert.Equal(t, w, o.LastWord())
	}
}

func TestOscillatorReferenceScenario(t *testing.T) {
	cfg := referenceConfig()
	o, err := New(cfg, &recorder{})
	require.NoError(t, err)
	tab := o.Table()

	// Before the first tick: zero phase, zero deviation.
	p0 := PhaseAt(o.Increment(), 0)
	assert.Equal(t, 0, tab.Index(p0))
	assert.Equal(t, int16(0), tab.At(0))
	assert.Equal(t, uint16(2048), cfg.Format.Sample(cfg.Format.Encode(tab.Lookup(p0))))

	// 800 Hz at 40 kHz is 50 ticks per cycle; half a cycle lands on the
	// sign crossing in the middle of the table.
	p25 := PhaseAt(o.Increment(), 25)
	assert.InDelta(t, float64(1<<31), float64(p25), 100)
	assert.Equal(t, 128, tab.Index(p25))
	assert.Equal(t, int16(0), tab.Lookup(p25))

	// One full cycle returns to the start of the table.
	assert.Equal(t, 0, tab.Index(PhaseAt(o.Increment(), 50)))
}

func TestOscillatorCoversBothExtremes(t *testing.T) {
	// 1/256 of the sample rate steps through every slot in order.
	cfg := referenceConfig()
	cfg.ToneHz, cfg.SampleHz = 1, 256
	out := &recorder{}
	o, err := New(cfg, out)
	require.NoError(t, err)

	for i := 0; i < 256; i++ {
		require.NoError(t, o.Tick())
	}
	var lo, hi uint16 = math.MaxUint16, 0
	for _, w := range out.words {
		s := cfg.Format.Sample(w)
		lo = min(lo, s)
		hi = max(hi, s)
	}
	assert.Equal(t, uint16(2048-2047), lo)
	assert.Equal(t, uint16(2048+2047), hi)
}

func TestOscillatorTransportErrorStillAdvances(t *testing.T) {
	busErr := errors.New("tx fifo full")
	out := &recorder{err: busErr}
	o, err := New(referenceConfig(), out)
	require.NoError(t, err)

	assert.ErrorIs(t, o.Tick(), busErr)
	assert.Equal(t, o.Increment(), o.Phase())
	assert.Empty(t, out.words)
}

func TestNewRejectsBadConfig(t *testing.T) {
	bad := []func(*Config){
		func(c *Config) { c.TableSize = 100 },
		func(c *Config) { c.Amplitude = 4000 },
		func(c *Config) { c.ToneHz = 0 },
		func(c *Config) { c.SampleHz = 0 },
		func(c *Config) { c.Format.Config = 0x3800 },
	}
	for i, mut := range bad {
		cfg := referenceConfig()
		mut(&cfg)
		_, err := New(cfg, &recorder{})
		assert.Equal(t, errcode.InvalidConfig, errcode.Of(err), "case %d", i)
	}

	tab, err := BuildTable(256, 2047)
	require.NoError(t, err)
	_, err = NewOscillator(tab, 1, chanA, nil)
	assert.Equal(t, errcode.InvalidParams, errcode.Of(err))
	_, err = NewOscillator(tab, 0, chanA, &recorder{})
	assert.Equal(t, errcode.InvalidConfig, errcode.Of(err))
}

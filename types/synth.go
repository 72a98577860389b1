package types

// ------------------------
// Synth configuration
// ------------------------

// Defaults match the reference board: 800 Hz tone sampled at 40 kHz from a
// 256-entry table into channel A of a 12-bit MCP4822 on a 20 MHz bus.
const (
	DefaultToneHz    = 800
	DefaultSampleHz  = 40000
	DefaultTableSize = 256
	DefaultAmplitude = 2047
	DefaultDACBits   = 12
	DefaultChannel   = "A"
	DefaultGain      = "1x"
	DefaultSPIHz     = 20_000_000
)

type SynthConfig struct {
	ToneHz    uint32 `json:"tone_hz"`
	SampleHz  uint32 `json:"sample_hz"`
	TableSize int    `json:"table_size"`
	Amplitude int    `json:"amplitude"`
	DACBits   uint8  `json:"dac_bits"`
	Channel   string `json:"channel"` // "A" or "B"
	Gain      string `json:"gain"`    // "1x" or "2x"
	SPIHz     uint32 `json:"spi_hz"`
}

// WithDefaults fills zero fields from the Default* constants.
func (c SynthConfig) WithDefaults() SynthConfig {
	if c.ToneHz == 0 {
		c.ToneHz = DefaultToneHz
	}
	if c.SampleHz == 0 {
		c.SampleHz = DefaultSampleHz
	}
	if c.TableSize == 0 {
		c.TableSize = DefaultTableSize
	}
	if c.Amplitude == 0 {
		c.Amplitude = DefaultAmplitude
	}
	if c.DACBits == 0 {
		c.DACBits = DefaultDACBits
	}
	if c.Channel == "" {
		c.Channel = DefaultChannel
	}
	if c.Gain == "" {
		c.Gain = DefaultGain
	}
	if c.SPIHz == 0 {
		c.SPIHz = DefaultSPIHz
	}
	return c
}

// ------------------------
// Synth runtime (retained)
// ------------------------

type SynthInfo struct {
	ToneHz     uint32  `json:"tone_hz"`
	ActualHz   float64 `json:"actual_hz"` // increment * sample_hz / 2^32
	SampleHz   uint32  `json:"sample_hz"`
	PeriodNs   int64   `json:"period_ns"`
	Increment  uint32  `json:"increment"`
	TableSize  int     `json:"table_size"`
	Amplitude  int     `json:"amplitude"`
	ConfigBits uint16  `json:"config_bits"`
	DACBits    uint8   `json:"dac_bits"`
}

type SynthStats struct {
	Ticks    uint64 `json:"ticks"`
	Overruns uint64 `json:"overruns"` // callbacks that ran past the next deadline
	Dropped  uint64 `json:"dropped"`  // samples the transport rejected
	Phase    uint32 `json:"phase"`
	LastWord uint16 `json:"last_word"`
}

const (
	SynthUninitialized = "uninitialized"
	SynthReady         = "ready"
	SynthRunning       = "running"
	SynthStopped       = "stopped"
)

type SynthState struct {
	Level  string `json:"level"`  // one of the Synth* levels
	Status string `json:"status"` // freeform short code
	TS     int64  `json:"ts_ms"`
}

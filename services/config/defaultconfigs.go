package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: board profile name
// Val: raw JSON bytes for that board
// -----------------------------------------------------------------------------

// Reference board: MCP4822 channel A on spi0 (MISO 4, CS 5, SCK 6, MOSI 7).
const cfgPico = `{
  "synth": {
    "tone_hz": 800,
    "sample_hz": 40000,
    "table_size": 256,
    "amplitude": 2047,
    "dac_bits": 12,
    "channel": "A",
    "gain": "1x",
    "spi_hz": 20000000
  }
}`

const cfgPicoChanB = `{
  "synth": {
    "tone_hz": 800,
    "sample_hz": 40000,
    "channel": "B"
  }
}`

// Concert A on a finer table.
const cfgPicoA440 = `{
  "synth": {
    "tone_hz": 440,
    "sample_hz": 44100,
    "table_size": 1024
  }
}`

var embeddedConfigs = map[string][]byte{
	"pico":        []byte(cfgPico),
	"pico-chan-b": []byte(cfgPicoChanB),
	"pico-a440":   []byte(cfgPicoA440),
}

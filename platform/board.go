// Package platform supplies the board-specific pieces the synth needs: a
// configured SPI DAC and a debug console. Build tags select the rp2 or the
// host implementation.
package platform

// SPIPins is the SPI0 pin map (GP numbering).
type SPIPins struct {
	MISO, CS, SCK, MOSI int
}

// PicoDAC is the reference wiring of the MCP4822 on a Raspberry Pi Pico.
var PicoDAC = SPIPins{MISO: 4, CS: 5, SCK: 6, MOSI: 7}

// ConsoleBaud is the debug UART speed.
const ConsoleBaud = 115200

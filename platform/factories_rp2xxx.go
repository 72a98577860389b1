//go:build rp2040 || rp2350

package platform

import (
	"io"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"sinedac-go/drivers/mcp4822"
	"sinedac-go/errcode"
)

// DefaultDAC configures spi0 (mode 0, MSB first) on the PicoDAC pins at
// busHz and returns the MCP4822 on it. Chip-select is a plain GPIO framed
// by the driver around each 16-bit word.
func DefaultDAC(busHz uint32) (*mcp4822.Device, error) {
	p := PicoDAC
	spi := machine.SPI0
	if err := spi.Configure(machine.SPIConfig{
		Frequency: busHz,
		SCK:       machine.Pin(p.SCK),
		SDO:       machine.Pin(p.MOSI),
		SDI:       machine.Pin(p.MISO),
		Mode:      0,
		LSBFirst:  false,
	}); err != nil {
		return nil, errcode.Wrap(errcode.BusError, "platform.DefaultDAC", err)
	}

	cs := machine.Pin(p.CS)
	cs.Configure(machine.PinConfig{Mode: machine.PinOutput})

	dac := mcp4822.New(spi, cs)
	dac.Configure(mcp4822.Config{})
	return dac, nil
}

// DefaultConsole opens uart0 on the board-default pins.
func DefaultConsole() io.Writer {
	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: ConsoleBaud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	return u
}

// DefaultLED returns the on-board LED as an output.
func DefaultLED() machine.Pin {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return led
}

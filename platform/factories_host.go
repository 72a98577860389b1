//go:build !rp2040 && !rp2350

package platform

import (
	"io"
	"os"
	"sync"
	"time"

	"tinygo.org/x/drivers"

	"sinedac-go/drivers/mcp4822"
)

// HostSPI implements tinygo drivers.SPI for the simulator and tests. It
// decodes each two-byte transaction as one MSB-first word and keeps the
// first Capture of them.
type HostSPI struct {
	// Capture bounds the kept words; 0 keeps none.
	Capture int
	// Delay is slept inside every Tx to model bus time.
	Delay time.Duration
	// Fail, if set, is consulted before every Tx.
	Fail func() error

	mu    sync.Mutex
	words []uint16
	count uint64
}

var _ drivers.SPI = (*HostSPI)(nil)

func (h *HostSPI) Tx(w, r []byte) error {
	if h.Fail != nil {
		if err := h.Fail(); err != nil {
			return err
		}
	}
	if h.Delay > 0 {
		time.Sleep(h.Delay)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := 0; i+1 < len(w); i += 2 {
		h.count++
		if len(h.words) < h.Capture {
			h.words = append(h.words, uint16(w[i])<<8|uint16(w[i+1]))
		}
	}
	for i := range r {
		r[i] = 0
	}
	return nil
}

func (h *HostSPI) Transfer(b byte) (byte, error) { return 0, nil }

// Words returns a copy of the captured words.
func (h *HostSPI) Words() []uint16 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]uint16(nil), h.words...)
}

// Count returns how many words have been written in total.
func (h *HostSPI) Count() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

// HostPin is an inert output pin that remembers its level.
type HostPin struct {
	mu    sync.Mutex
	level bool
	edges int
}

func (p *HostPin) Set(high bool) {
	p.mu.Lock()
	if high != p.level {
		p.edges++
	}
	p.level = high
	p.mu.Unlock()
}

func (p *HostPin) Level() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// Edges counts level changes.
func (p *HostPin) Edges() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.edges
}

// hostCapture is the default capture depth: one second at 40 kHz.
const hostCapture = 40000

// NewHostDAC returns an MCP4822 wired to a fresh in-memory bus, and that
// bus so the caller can inspect what was sent. capture <= 0 keeps the
// default depth.
func NewHostDAC(capture int) (*mcp4822.Device, *HostSPI) {
	if capture <= 0 {
		capture = hostCapture
	}
	bus := &HostSPI{Capture: capture}
	dac := mcp4822.New(bus, &HostPin{})
	dac.Configure(mcp4822.Config{})
	return dac, bus
}

// DefaultDAC returns an MCP4822 on an in-memory bus. busHz is accepted for
// signature parity with the rp2 build.
func DefaultDAC(busHz uint32) (*mcp4822.Device, error) {
	dac, _ := NewHostDAC(hostCapture)
	return dac, nil
}

// DefaultConsole is stdout on the host.
func DefaultConsole() io.Writer { return os.Stdout }

// DefaultLED returns an inert host pin.
func DefaultLED() *HostPin { return &HostPin{} }

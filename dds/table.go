package dds

import (
	"math"
	"strconv"

	"sinedac-go/errcode"
	"sinedac-go/x/mathx"
)

// Table size limits. Four entries is the smallest table that reaches both
// peaks; the upper bound keeps the index shift at 16 or more.
const (
	MinTableSize = 4
	MaxTableSize = 1 << 16
)

// Table is a quantised sine lookup table. It is immutable once built.
type Table struct {
	vals  []int16
	bits  uint
	amp   int
	shift uint
}

// BuildTable returns a table of n entries where entry i is
// round(amplitude * sin(2*pi*i/n)). n must be a power of two in
// [MinTableSize, MaxTableSize] and amplitude must fit an int16.
func BuildTable(n, amplitude int) (*Table, error) {
	const op = "dds.BuildTable"
	if n < MinTableSize || n > MaxTableSize {
		return nil, errcode.New(errcode.InvalidConfig, op, "table size "+strconv.Itoa(n)+" out of range")
	}
	bits, ok := mathx.Log2(uint(n))
	if !ok {
		return nil, errcode.New(errcode.InvalidConfig, op, "table size "+strconv.Itoa(n)+" is not a power of two")
	}
	if amplitude < 1 || amplitude > math.MaxInt16 {
		return nil, errcode.New(errcode.InvalidConfig, op, "amplitude "+strconv.Itoa(amplitude)+" out of range")
	}

	vals := make([]int16, n)
	a := float64(amplitude)
	step := 2 * math.Pi / float64(n)
	for i := range vals {
		vals[i] = int16(math.Round(a * math.Sin(step*float64(i))))
	}
	return &Table{vals: vals, bits: bits, amp: amplitude, shift: 32 - bits}, nil
}

// Len returns N.
func (t *Table) Len() int { return len(t.vals) }

// Bits returns log2(N).
func (t *Table) Bits() uint { return t.bits }

// Amplitude returns the peak value A the table was built with.
func (t *Table) Amplitude() int { return t.amp }

// At returns entry i. i must be in [0, Len()).
func (t *Table) At(i int) int16 { return t.vals[i] }

// Index maps a 32-bit phase onto a table slot using its top log2(N) bits.
// The result is always in [0, Len()).
func (t *Table) Index(phase uint32) int { return int(phase >> t.shift) }

// Lookup returns the sample for phase.
func (t *Table) Lookup(phase uint32) int16 { return t.vals[phase>>t.shift] }

package dds

import (
	"strconv"

	"sinedac-go/errcode"
	"sinedac-go/x/mathx"
)

// WordFormat describes the DAC's input word: a constant configuration
// pattern in the high bits and an unsigned data field of Bits bits in the
// low bits.
type WordFormat struct {
	Config uint16
	Bits   uint8
}

// Offset is the DC bias added to signed samples: half of full scale.
func (f WordFormat) Offset() int32 { return int32(1) << (f.Bits - 1) }

// Mask covers the data field.
func (f WordFormat) Mask() uint16 { return uint16(uint32(1)<<f.Bits - 1) }

// Encode biases v into the data field and merges the configuration bits.
// Values that would fall outside the field saturate at 0 or Mask so they
// can never spill into the configuration bits.
func (f WordFormat) Encode(v int16) uint16 {
	m := f.Mask()
	s := mathx.Clamp(int32(v)+f.Offset(), 0, int32(m))
	return f.Config | uint16(s)
}

// Sample extracts the data field from an encoded word.
func (f WordFormat) Sample(w uint16) uint16 { return w & f.Mask() }

// Validate checks that the data field is usable and does not overlap the
// configuration bits.
func (f WordFormat) Validate() error {
	const op = "dds.WordFormat"
	if f.Bits < 2 || f.Bits > 16 {
		return errcode.New(errcode.InvalidConfig, op, "data width "+strconv.Itoa(int(f.Bits))+" out of range")
	}
	if f.Config&f.Mask() != 0 {
		return errcode.New(errcode.InvalidConfig, op, "configuration bits overlap the data field")
	}
	return nil
}

// ValidateFormat rejects a table whose extremes would not fit the data
// field after biasing. Such a pairing would otherwise clip silently.
func ValidateFormat(t *Table, f WordFormat) error {
	if err := f.Validate(); err != nil {
		return err
	}
	a := int32(t.Amplitude())
	if a+f.Offset() > int32(f.Mask()) || f.Offset()-a < 0 {
		return errcode.New(errcode.InvalidConfig, "dds.ValidateFormat",
			"amplitude "+strconv.Itoa(int(a))+" exceeds "+strconv.Itoa(int(f.Bits))+"-bit data field")
	}
	return nil
}

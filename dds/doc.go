// Package dds implements direct digital synthesis of a sine tone for an
// SPI DAC.
//
// A quantised sine table is built once at startup and then only read. Each
// tick of a periodic timer advances a 32-bit phase accumulator by a fixed
// increment (wrapping modulo 2^32 is the phase wraparound), takes the top
// log2(N) bits as the table index, biases the signed sample into the DAC's
// unsigned range and hands one word to the transport:
//
//	acc += incr
//	word = cfg | clamp(table[acc >> (32-log2 N)] + offset, 0, mask)
//	out.WriteWord(word)
//
// The generated frequency is exactly incr * sampleHz / 2^32.
//
// Nothing here allocates or takes locks on the tick path. An Oscillator is
// owned by a single goroutine; ticks must not overlap.
package dds

//go:build !rp2040 && !rp2350

package main

import (
	"encoding/csv"
	"io"
	"strconv"

	"sinedac-go/dds"
)

// writeCapture emits one CSV row per captured word: tick, raw word and the
// unsigned sample field.
func writeCapture(w io.Writer, words []uint16, f dds.WordFormat) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"tick", "word", "sample"}); err != nil {
		return err
	}
	for i, v := range words {
		row := []string{
			strconv.Itoa(i + 1),
			"0x" + strconv.FormatUint(uint64(v), 16),
			strconv.FormatUint(uint64(f.Sample(v)), 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

package config

import (
	"encoding/json"

	"sinedac-go/errcode"
	"sinedac-go/types"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	DefaultBoard = "pico"
	opLookup     = "config.Lookup"
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(board string) ([]byte, bool) {
	b, ok := embeddedConfigs[board]
	return b, ok
}

// document is the top-level shape of an embedded config.
type document struct {
	Synth *types.SynthConfig `json:"synth"`
}

// Lookup decodes the embedded config for board. A document without a
// "synth" section yields the defaults. Zero fields inside the section are
// also defaulted.
func Lookup(board string) (types.SynthConfig, error) {
	raw, ok := EmbeddedConfigLookup(board)
	if !ok || len(raw) == 0 {
		return types.SynthConfig{}, errcode.New(errcode.UnknownBoard, opLookup, "no embedded config for board: "+board)
	}
	return Decode(raw)
}

// Decode parses a config document.
func Decode(raw []byte) (types.SynthConfig, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return types.SynthConfig{}, errcode.Wrap(errcode.InvalidConfig, opLookup, err)
	}
	if doc.Synth == nil {
		return types.SynthConfig{}.WithDefaults(), nil
	}
	return doc.Synth.WithDefaults(), nil
}

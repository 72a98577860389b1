// Package logx is the firmware-side structured logger.
//
// Logger is the key/value subset of zap's SugaredLogger, so host builds can
// pass a *zap.SugaredLogger straight through while MCU builds use Console,
// which renders without fmt.
package logx

import (
	"io"
	"strconv"
	"time"
)

// Logger logs a message with alternating key/value pairs.
type Logger interface {
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
}

// Console writes one line per call: "Info: msg k=v k=v". A nil W falls
// back to the runtime's println.
type Console struct {
	W io.Writer
}

func (c Console) Infow(msg string, kv ...any) { c.line("Info:", msg, kv) }
func (c Console) Warnw(msg string, kv ...any) { c.line("Warn:", msg, kv) }

func (c Console) line(level, msg string, kv []any) {
	b := make([]byte, 0, 96)
	b = append(b, level...)
	b = append(b, ' ')
	b = append(b, msg...)
	b = AppendKV(b, kv...)
	if c.W == nil {
		println(string(b))
		return
	}
	b = append(b, '\n')
	_, _ = c.W.Write(b)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Infow(string, ...any) {}
func (Nop) Warnw(string, ...any) {}

// AppendKV renders " k=v" pairs. A trailing key without a value is
// rendered as "k=?".
func AppendKV(b []byte, kv ...any) []byte {
	for i := 0; i < len(kv); i += 2 {
		b = append(b, ' ')
		b = appendValue(b, kv[i])
		b = append(b, '=')
		if i+1 < len(kv) {
			b = appendValue(b, kv[i+1])
		} else {
			b = append(b, '?')
		}
	}
	return b
}

func appendValue(b []byte, v any) []byte {
	switch x := v.(type) {
	case string:
		return append(b, x...)
	case bool:
		return strconv.AppendBool(b, x)
	case int:
		return strconv.AppendInt(b, int64(x), 10)
	case int16:
		return strconv.AppendInt(b, int64(x), 10)
	case int32:
		return strconv.AppendInt(b, int64(x), 10)
	case int64:
		return strconv.AppendInt(b, x, 10)
	case uint8:
		return strconv.AppendUint(b, uint64(x), 10)
	case uint16:
		return strconv.AppendUint(b, uint64(x), 10)
	case uint32:
		return strconv.AppendUint(b, uint64(x), 10)
	case uint64:
		return strconv.AppendUint(b, x, 10)
	case uint:
		return strconv.AppendUint(b, uint64(x), 10)
	case float64:
		return strconv.AppendFloat(b, x, 'f', 3, 64)
	case time.Duration:
		return append(b, x.String()...)
	case error:
		return append(b, x.Error()...)
	case interface{ String() string }:
		return append(b, x.String()...)
	case nil:
		return append(b, "<nil>"...)
	}
	return append(b, '?')
}

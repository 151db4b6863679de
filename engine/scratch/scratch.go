// Package scratch builds short-lived strings (per-frame labels) in a reusable
// byte buffer without going through fmt.
//
// Strings returned by the View methods alias the buffer: they stay valid until
// the next Reset. Reset once per frame, before any label is built.
package scratch

import (
	"strconv"
	"unicode/utf8"
	"unsafe"
)

type Buffer struct {
	buf []byte
}

// New returns a Buffer with capacity bytes preallocated.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// Reset forgets the contents and keeps the memory.
func (b *Buffer) Reset() { b.buf = b.buf[:0] }

func (b *Buffer) Len() int { return len(b.buf) }
func (b *Buffer) Cap() int { return cap(b.buf) }

// Grow makes room for n more bytes. Appending never reallocates while the
// buffer holds live views, so size it with Grow at load time.
func (b *Buffer) Grow(n int) {
	if len(b.buf)+n <= cap(b.buf) {
		return
	}
	nb := make([]byte, len(b.buf), max(2*cap(b.buf), len(b.buf)+n))
	copy(nb, b.buf)
	b.buf = nb
}

// Mark bookmarks the current end; ViewFrom returns what was appended since.
func (b *Buffer) Mark() int { return len(b.buf) }

func (b *Buffer) ViewFrom(mark int) string {
	s := b.buf[mark:]
	if len(s) == 0 {
		return ""
	}
	return unsafe.String(&s[0], len(s))
}

// StringFrom is ViewFrom copied to the heap.
func (b *Buffer) StringFrom(mark int) string { return string(b.buf[mark:]) }

// ----- chainable appenders -----

func (b *Buffer) S(s string) *Buffer {
	b.buf = append(b.buf, s...)
	return b
}

func (b *Buffer) C(c byte) *Buffer {
	b.buf = append(b.buf, c)
	return b
}

func (b *Buffer) R(r rune) *Buffer {
	b.buf = utf8.AppendRune(b.buf, r)
	return b
}

func (b *Buffer) I(v int) *Buffer {
	b.buf = strconv.AppendInt(b.buf, int64(v), 10)
	return b
}

func (b *Buffer) U(v uint64) *Buffer {
	b.buf = strconv.AppendUint(b.buf, v, 10)
	return b
}

// F appends v with prec digits after the point.
func (b *Buffer) F(v float64, prec int) *Buffer {
	b.buf = strconv.AppendFloat(b.buf, v, 'f', prec, 64)
	return b
}

func (b *Buffer) Bool(v bool) *Buffer {
	b.buf = strconv.AppendBool(b.buf, v)
	return b
}

func (b *Buffer) Hex(v uint64) *Buffer {
	b.buf = strconv.AppendUint(b.buf, v, 16)
	return b
}

// Pad appends n copies of c.
func (b *Buffer) Pad(n int, c byte) *Buffer {
	for i := 0; i < n; i++ {
		b.buf = append(b.buf, c)
	}
	return b
}

// ----- formatter -----

// Printf understands %s %d %u %x %t %f %.Nf and %%. Unknown verbs are copied
// through. It returns a view of the formatted text.
func (b *Buffer) Printf(format string, args ...any) string {
	mark := len(b.buf)
	ai := 0
	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' {
			b.buf = append(b.buf, ch)
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			b.buf = append(b.buf, '%')
			i++
			continue
		}
		i++
		prec := -1
		if i < len(format) && format[i] == '.' {
			i++
			prec = 0
			for i < len(format) && format[i] >= '0' && format[i] <= '9' {
				prec = prec*10 + int(format[i]-'0')
				i++
			}
		}
		if i >= len(format) || ai >= len(args) {
			break
		}
		arg := args[ai]
		ai++
		switch format[i] {
		case 's':
			b.appendString(arg)
		case 'd':
			b.buf = strconv.AppendInt(b.buf, toInt64(arg), 10)
		case 'u':
			b.buf = strconv.AppendUint(b.buf, uint64(toInt64(arg)), 10)
		case 'x':
			b.buf = strconv.AppendUint(b.buf, uint64(toInt64(arg)), 16)
		case 't':
			v, _ := arg.(bool)
			b.buf = strconv.AppendBool(b.buf, v)
		case 'f':
			if prec < 0 {
				prec = 3
			}
			b.buf = strconv.AppendFloat(b.buf, toFloat64(arg), 'f', prec, 64)
		default:
			b.buf = append(b.buf, '%', format[i])
			ai--
		}
	}
	return b.ViewFrom(mark)
}

func (b *Buffer) appendString(v any) {
	switch x := v.(type) {
	case string:
		b.buf = append(b.buf, x...)
	case []byte:
		b.buf = append(b.buf, x...)
	case interface{ String() string }:
		b.buf = append(b.buf, x.String()...)
	default:
		b.buf = append(b.buf, "%!s"...)
	}
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	}
	return 0
}

func toFloat64(v any) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	}
	return float64(toInt64(v))
}

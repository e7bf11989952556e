package json

import (
	"math"
	"strconv"
	"sync"

	"github.com/uniyakcom/jsonvalue/internal/dfa"
)

// Writer is an append-only JSON serializer: direct writes into an owned
// []byte buffer, no intermediate io.Writer layer, poolable via
// AcquireWriter/ReleaseWriter.
//
//	w := json.AcquireWriter()
//	defer json.ReleaseWriter(w)
//	w.Object(func(w *json.Writer) {
//	    w.Field("name", "yak")
//	    w.FieldInt("ver", 1)
//	})
//	data := w.Bytes() // {"name":"yak","ver":1}
type Writer struct {
	buf   []byte
	style Whitespace
	depth int
}

// Whitespace selects a pretty-print style for Value encoding; the zero
// value, Compact, is canonical whitespace-free JSON.
type Whitespace int

const (
	Compact Whitespace = iota
	SpaceLf
	TabLf
	SpaceCrlf
	TabCrlf
)

func (s Whitespace) indent() string {
	switch s {
	case SpaceLf, SpaceCrlf:
		return "  "
	case TabLf, TabCrlf:
		return "\t"
	default:
		return ""
	}
}

func (s Whitespace) newline() string {
	switch s {
	case SpaceCrlf, TabCrlf:
		return "\r\n"
	case SpaceLf, TabLf:
		return "\n"
	default:
		return ""
	}
}

var writerPool = sync.Pool{
	New: func() any { return &Writer{buf: make([]byte, 0, 256)} },
}

// AcquireWriter retrieves a Writer from the pool.
func AcquireWriter() *Writer {
	w := writerPool.Get().(*Writer)
	w.buf = w.buf[:0]
	w.style = Compact
	w.depth = 0
	return w
}

// ReleaseWriter returns w to the pool.
func ReleaseWriter(w *Writer) {
	if cap(w.buf) > 1<<16 {
		w.buf = make([]byte, 0, 256)
	}
	writerPool.Put(w)
}

// Bytes returns the bytes written so far; the slice is owned by w.
func (w *Writer) Bytes() []byte { return w.buf }

// String returns the bytes written so far as a string, zero-copy.
func (w *Writer) String() string { return b2s(w.buf) }

// Len returns the number of bytes written.
func (w *Writer) Len() int { return len(w.buf) }

// Reset empties w for reuse.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.style = Compact
	w.depth = 0
}

// AppendTo appends the written bytes to dst.
func (w *Writer) AppendTo(dst []byte) []byte { return append(dst, w.buf...) }

// WriteValue renders v in canonical (whitespace-free) form.
func (w *Writer) WriteValue(v *Value) { w.writeValue(v) }

// WriteValuePretty renders v using the given pretty-print style.
func (w *Writer) WriteValuePretty(v *Value, style Whitespace) {
	prev := w.style
	w.style = style
	w.writeValue(v)
	w.style = prev
}

func (w *Writer) writeNewlineIndent() {
	if nl := w.style.newline(); nl != "" {
		w.buf = append(w.buf, nl...)
		for i := 0; i < w.depth; i++ {
			w.buf = append(w.buf, w.style.indent()...)
		}
	}
}

func (w *Writer) writeValue(v *Value) {
	switch v.Kind() {
	case KindError:
		w.buf = append(w.buf, "null"...)
	case KindNull:
		w.buf = append(w.buf, "null"...)
	case KindBool:
		if v.b {
			w.buf = append(w.buf, "true"...)
		} else {
			w.buf = append(w.buf, "false"...)
		}
	case KindNumber:
		w.buf = append(w.buf, v.n...)
	case KindString:
		w.writeQuotedString(v.s)
	case KindArray:
		w.buf = append(w.buf, '[')
		if len(v.a) > 0 {
			w.depth++
			for i, item := range v.a {
				if i > 0 {
					w.buf = append(w.buf, ',')
				}
				w.writeNewlineIndent()
				w.writeValue(item)
			}
			w.depth--
			w.writeNewlineIndent()
		}
		w.buf = append(w.buf, ']')
	case KindObject:
		w.buf = append(w.buf, '{')
		if v.o.Len() > 0 {
			w.depth++
			first := true
			v.o.Each(func(k string, val *Value) bool {
				if !first {
					w.buf = append(w.buf, ',')
				}
				first = false
				w.writeNewlineIndent()
				w.writeQuotedString(k)
				w.buf = append(w.buf, ':')
				if w.style.indent() != "" {
					w.buf = append(w.buf, ' ')
				}
				w.writeValue(val)
				return true
			})
			w.depth--
			w.writeNewlineIndent()
		}
		w.buf = append(w.buf, '}')
	}
}

// Object builds a compact JSON object {} using the Field* helpers.
func (w *Writer) Object(fn func(w *Writer)) {
	w.buf = append(w.buf, '{')
	mark := len(w.buf)
	fn(w)
	if len(w.buf) > mark && w.buf[len(w.buf)-1] == ',' {
		w.buf[len(w.buf)-1] = '}'
	} else {
		w.buf = append(w.buf, '}')
	}
}

// Field writes a string field: "key":"value",
func (w *Writer) Field(key, value string) {
	w.writeQuotedString(key)
	w.buf = append(w.buf, ':')
	w.writeQuotedString(value)
	w.buf = append(w.buf, ',')
}

// FieldBytes writes a []byte field, escaped as a JSON string.
func (w *Writer) FieldBytes(key string, value []byte) {
	w.writeQuotedString(key)
	w.buf = append(w.buf, ':')
	w.writeQuotedBytes(value)
	w.buf = append(w.buf, ',')
}

// FieldInt writes an int field: "key":123,
func (w *Writer) FieldInt(key string, value int) {
	w.writeQuotedString(key)
	w.buf = append(w.buf, ':')
	w.buf = appendInt(w.buf, int64(value))
	w.buf = append(w.buf, ',')
}

// FieldInt64 writes an int64 field.
func (w *Writer) FieldInt64(key string, value int64) {
	w.writeQuotedString(key)
	w.buf = append(w.buf, ':')
	w.buf = appendInt(w.buf, value)
	w.buf = append(w.buf, ',')
}

// FieldUint64 writes a uint64 field.
func (w *Writer) FieldUint64(key string, value uint64) {
	w.writeQuotedString(key)
	w.buf = append(w.buf, ':')
	w.buf = appendUint(w.buf, value)
	w.buf = append(w.buf, ',')
}

// FieldFloat writes a float64 field: "key":1.23,
func (w *Writer) FieldFloat(key string, value float64) {
	w.writeQuotedString(key)
	w.buf = append(w.buf, ':')
	w.writeFloat(value)
	w.buf = append(w.buf, ',')
}

// FieldBool writes a bool field: "key":true,
func (w *Writer) FieldBool(key string, value bool) {
	w.writeQuotedString(key)
	w.buf = append(w.buf, ':')
	if value {
		w.buf = append(w.buf, "true"...)
	} else {
		w.buf = append(w.buf, "false"...)
	}
	w.buf = append(w.buf, ',')
}

// FieldNull writes a null field: "key":null,
func (w *Writer) FieldNull(key string) {
	w.writeQuotedString(key)
	w.buf = append(w.buf, ':')
	w.buf = append(w.buf, "null"...)
	w.buf = append(w.buf, ',')
}

// FieldObject writes a nested object field: "key":{...},
func (w *Writer) FieldObject(key string, fn func(w *Writer)) {
	w.writeQuotedString(key)
	w.buf = append(w.buf, ':')
	w.Object(fn)
	w.buf = append(w.buf, ',')
}

// FieldArray writes a nested array field: "key":[...],
func (w *Writer) FieldArray(key string, fn func(w *Writer)) {
	w.writeQuotedString(key)
	w.buf = append(w.buf, ':')
	w.Array(fn)
	w.buf = append(w.buf, ',')
}

// FieldRaw writes a pre-encoded JSON value verbatim: "key":rawJSON,
func (w *Writer) FieldRaw(key string, rawJSON []byte) {
	w.writeQuotedString(key)
	w.buf = append(w.buf, ':')
	w.buf = append(w.buf, rawJSON...)
	w.buf = append(w.buf, ',')
}

// Array builds a compact JSON array [] using the Item* helpers.
func (w *Writer) Array(fn func(w *Writer)) {
	w.buf = append(w.buf, '[')
	mark := len(w.buf)
	fn(w)
	if len(w.buf) > mark && w.buf[len(w.buf)-1] == ',' {
		w.buf[len(w.buf)-1] = ']'
	} else {
		w.buf = append(w.buf, ']')
	}
}

// Item writes a string array element: "value",
func (w *Writer) Item(value string) {
	w.writeQuotedString(value)
	w.buf = append(w.buf, ',')
}

// ItemInt writes an int array element: 123,
func (w *Writer) ItemInt(value int) {
	w.buf = appendInt(w.buf, int64(value))
	w.buf = append(w.buf, ',')
}

// ItemFloat writes a float64 array element.
func (w *Writer) ItemFloat(value float64) {
	w.writeFloat(value)
	w.buf = append(w.buf, ',')
}

// ItemBool writes a bool array element.
func (w *Writer) ItemBool(value bool) {
	if value {
		w.buf = append(w.buf, "true"...)
	} else {
		w.buf = append(w.buf, "false"...)
	}
	w.buf = append(w.buf, ',')
}

// ItemNull writes a null array element.
func (w *Writer) ItemNull() {
	w.buf = append(w.buf, "null"...)
	w.buf = append(w.buf, ',')
}

// ItemObject writes a nested object array element.
func (w *Writer) ItemObject(fn func(w *Writer)) {
	w.Object(fn)
	w.buf = append(w.buf, ',')
}

// ItemArray writes a nested array array element.
func (w *Writer) ItemArray(fn func(w *Writer)) {
	w.Array(fn)
	w.buf = append(w.buf, ',')
}

// writeQuotedString appends a quoted, escaped, UTF-8-validated JSON string
// literal, driven by the encoder DFA (C1) rather than an ad hoc switch.
func (w *Writer) writeQuotedString(s string) {
	w.buf = dfa.AppendQuotedString(w.buf, s)
}

// writeQuotedBytes is the []byte-accepting counterpart of writeQuotedString.
func (w *Writer) writeQuotedBytes(b []byte) {
	w.writeQuotedString(b2s(b))
}

// appendInt is a fast int64 append, skipping strconv's path for small values.
func appendInt(dst []byte, v int64) []byte {
	if v >= 0 && v < 100 {
		return appendSmallInt(dst, int(v))
	}
	return strconv.AppendInt(dst, v, 10)
}

// appendUint is the uint64 counterpart of appendInt.
func appendUint(dst []byte, v uint64) []byte {
	if v < 100 {
		return appendSmallInt(dst, int(v))
	}
	return strconv.AppendUint(dst, v, 10)
}

// appendSmallInt is a lookup-free fast path for 0-99.
func appendSmallInt(dst []byte, v int) []byte {
	if v < 10 {
		return append(dst, byte('0'+v))
	}
	return append(dst, byte('0'+v/10), byte('0'+v%10))
}

// writeFloat appends a float64; NaN/Inf (not representable in JSON) become
// null, matching encoding/json's behavior for unconstrained float fields.
func (w *Writer) writeFloat(f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		w.buf = append(w.buf, "null"...)
		return
	}
	if f == math.Trunc(f) && f >= -1e15 && f <= 1e15 {
		w.buf = appendInt(w.buf, int64(f))
		return
	}
	w.buf = strconv.AppendFloat(w.buf, f, 'f', -1, 64)
}

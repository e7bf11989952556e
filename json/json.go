// Package json is a strict RFC-8259 JSON parser, in-memory value tree, and
// encoder, plus a reflection-based compatibility layer for encoding/json
// style Marshal/Unmarshal.
//
// Design principles (following valyala/fastjson's Parser+Value architecture
// and tidwall/gjson's table-driven scanning style):
//   - Parsing and encoding are both driven off the table-driven state
//     machines in internal/dfa, not a hand-rolled recursive-descent switch.
//   - Parser/Writer are pool-backed (AcquireParser/AcquireWriter) so the
//     hot path avoids repeated allocation.
//   - Numbers retain their original textual form; nothing is normalized
//     during parsing.
//   - Marshal/Unmarshal are reflection-based, for drop-in encoding/json
//     compatibility where a caller already has plain Go structs.
//
// Usage:
//
//	v := json.Parse(`{"name":"yak","version":1}`)
//	name := v.Get("name").MustString()
//
//	w := json.AcquireWriter()
//	w.Object(func(w *json.Writer) {
//	    w.Field("name", "yak")
//	    w.FieldInt("version", 1)
//	})
//	data := w.Bytes()  // {"name":"yak","version":1}
//	json.ReleaseWriter(w)
//
//	data, err := json.Marshal(myStruct)
//	err = json.Unmarshal(data, &myStruct)
package json

import (
	"fmt"
	"reflect"

	"github.com/uniyakcom/jsonvalue/internal/dfa"
)

// MaxDepth bounds container nesting depth during parsing.
const MaxDepth = 512

// MaxKeyLength bounds a single object key's length.
const MaxKeyLength = 1 << 16 // 64KB

// MaxStringLength bounds a single string value's length.
const MaxStringLength = 1 << 24 // 16MB

// MaxArrayLength bounds the element count of a single array.
const MaxArrayLength = 1 << 20 // 1M elements

// MaxObjectKeys bounds the key count of a single object.
const MaxObjectKeys = 1 << 16 // 64K keys

// MaxMarshalDepth bounds Marshal's struct-graph recursion depth.
const MaxMarshalDepth = 1000

// Marshaler mirrors encoding/json.Marshaler.
type Marshaler interface {
	MarshalJSON() ([]byte, error)
}

// Unmarshaler mirrors encoding/json.Unmarshaler.
type Unmarshaler interface {
	UnmarshalJSON([]byte) error
}

// RawMessage is a raw encoded JSON value, deferring decoding or
// precomputing encoding, mirroring encoding/json.RawMessage.
type RawMessage []byte

// MarshalJSON returns m unchanged, or "null" if m is nil.
func (m RawMessage) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	return m, nil
}

// UnmarshalJSON sets *m to a copy of data.
func (m *RawMessage) UnmarshalJSON(data []byte) error {
	if m == nil {
		return fmt.Errorf("json.RawMessage: UnmarshalJSON on nil pointer")
	}
	*m = append((*m)[:0], data...)
	return nil
}

// InvalidUnmarshalError describes an invalid argument passed to Unmarshal.
type InvalidUnmarshalError struct {
	Type reflect.Type
}

func (e *InvalidUnmarshalError) Error() string {
	if e.Type == nil {
		return "json: Unmarshal(nil)"
	}
	if e.Type.Kind() != reflect.Pointer {
		return "json: Unmarshal(non-pointer " + e.Type.String() + ")"
	}
	return "json: Unmarshal(nil " + e.Type.String() + ")"
}

// ToJSON renders v as canonical (whitespace-free) JSON text.
func ToJSON(v *Value) []byte {
	w := AcquireWriter()
	w.WriteValue(v)
	out := append([]byte(nil), w.Bytes()...)
	ReleaseWriter(w)
	return out
}

// ToJSONPretty renders v using the given pretty-print style.
func ToJSONPretty(v *Value, style Whitespace) []byte {
	w := AcquireWriter()
	w.WriteValuePretty(v, style)
	out := append([]byte(nil), w.Bytes()...)
	ReleaseWriter(w)
	return out
}

// EncodeString returns a JSON string literal (with quotes) for s.
func EncodeString(s string) []byte {
	return dfa.AppendQuotedString(nil, s)
}

// Package json is the public facade of this library: a JSON value tree
// (Value), a parser producing it from bytes, and an encoder producing bytes
// from it, plus an encoding/json-compatible reflection layer for ordinary
// Go values.
//
// The Value layout and its path-based accessors are patterned after
// valyala/fastjson's Value struct, extended to a seven-variant tagged union
// (adding Error) backed by an ordered map for objects.
package json

import (
	"unsafe"

	"github.com/uniyakcom/jsonvalue/internal/omap"
)

// Kind is Value's discriminator. The seven variants form a closed set; a
// switch over Kind is exhaustive everywhere in this package.
type Kind uint8

const (
	KindError Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the tagged-union JSON tree node (C5).
type Value struct {
	k    Kind
	b    bool
	n    string // Number: original textual form, never converted in place
	s    string // String: arbitrary bytes; may be non-UTF-8 if built directly
	a    []*Value
	o    *omap.Map[string, *Value]
	errs string // Error: diagnostic message
}

// nullValue is the shareable Null singleton: never mutated,
// never returned to a pool.
var nullValue = &Value{k: KindNull}

var (
	trueValue  = &Value{k: KindBool, b: true}
	falseValue = &Value{k: KindBool, b: false}
)

// Null returns the shared Null value.
func Null() *Value { return nullValue }

// Bool returns a shared Boolean value.
func Bool(b bool) *Value {
	if b {
		return trueValue
	}
	return falseValue
}

// NumberFromText constructs a Number, storing text verbatim. No grammar
// validation happens here; that happens in Parse, which is the only path
// that needs to reject a malformed number.
func NumberFromText(text string) *Value { return &Value{k: KindNumber, n: text} }

// NumberFromInt64 stores the decimal textual form of n.
func NumberFromInt64(n int64) *Value { return NumberFromText(string(appendInt(nil, n))) }

// NumberFromUint64 stores the decimal textual form of n.
func NumberFromUint64(n uint64) *Value { return NumberFromText(string(appendUint(nil, n))) }

// String constructs a String value from arbitrary bytes (not required to be
// valid UTF-8; the encoder substitutes invalid bytes on output).
func String(s string) *Value { return &Value{k: KindString, s: s} }

// StringBytes is the []byte-accepting counterpart of String.
func StringBytes(b []byte) *Value { return String(string(b)) }

// Array constructs an empty Array. Its backing slice is allocated lazily on
// the first ArrayAppend, not drawn from the pool here, since the parser's
// array-close path overwrites it immediately with the container stack's own
// accumulated slice (see parser.go) and would otherwise waste a pool draw.
func Array() *Value { return &Value{k: KindArray} }

// arrayAppendPooled is used by hand-built (non-parser) Array construction to
// draw initial backing capacity from the pool instead of growing from nil.
func arrayAppendPooled(v *Value, item *Value) {
	if v.a == nil {
		v.a = arrayPool.Get()[:0]
	}
	v.a = append(v.a, item)
}

// Object constructs an empty Object backed by an ordered map, drawn from a
// pool shared with Parser.Release.
func Object() *Value { return pooledObject() }

// Error constructs an Error value carrying a diagnostic message.
func Error(message string) *Value { return &Value{k: KindError, errs: message} }

func (v *Value) Kind() Kind { return v.k }

func (v *Value) IsError() bool  { return v.k == KindError }
func (v *Value) IsNull() bool   { return v.k == KindNull }
func (v *Value) IsBool() bool   { return v.k == KindBool }
func (v *Value) IsNumber() bool { return v.k == KindNumber }
func (v *Value) IsString() bool { return v.k == KindString }
func (v *Value) IsArray() bool  { return v.k == KindArray }
func (v *Value) IsObject() bool { return v.k == KindObject }

// ShapeError is raised by the Must* accessors on a shape mismatch.
// It is a programmer error: recover it only at a boundary that expects
// callers might get the JSON shape wrong.
type ShapeError struct {
	Want Kind
	Got  Kind
}

func (e *ShapeError) Error() string {
	return "json: value is " + e.Got.String() + ", not " + e.Want.String()
}

func (v *Value) mustBe(k Kind) {
	if v.k != k {
		panic(&ShapeError{Want: k, Got: v.k})
	}
}

// ErrorText returns the diagnostic message; panics if not an Error.
func (v *Value) ErrorText() string {
	v.mustBe(KindError)
	return v.errs
}

// MustBool returns the boolean payload; panics if not a Boolean.
func (v *Value) MustBool() bool {
	v.mustBe(KindBool)
	return v.b
}

// MustNumber returns the number's original textual form; panics if not a Number.
func (v *Value) MustNumber() string {
	v.mustBe(KindNumber)
	return v.n
}

// MustString returns the string payload; panics if not a String.
func (v *Value) MustString() string {
	v.mustBe(KindString)
	return v.s
}

// MustArray returns the backing slice; panics if not an Array. The slice is
// shared with v: mutate through ArrayAppend/ArraySet, not by hand, if v's
// invariants (pool reuse) matter to the caller.
func (v *Value) MustArray() []*Value {
	v.mustBe(KindArray)
	return v.a
}

// MustObject returns the backing ordered map; panics if not an Object.
func (v *Value) MustObject() *omap.Map[string, *Value] {
	v.mustBe(KindObject)
	return v.o
}

// ArrayAppend appends to an Array value, drawing the initial backing slice
// from the pool shared with Parser.Release.
func (v *Value) ArrayAppend(item *Value) {
	v.mustBe(KindArray)
	arrayAppendPooled(v, item)
}

// ArrayLen returns the number of elements; panics if not an Array.
func (v *Value) ArrayLen() int {
	v.mustBe(KindArray)
	return len(v.a)
}

// ArrayEach iterates array elements in order; stop early by returning false.
func (v *Value) ArrayEach(fn func(i int, item *Value) bool) {
	v.mustBe(KindArray)
	for i, item := range v.a {
		if !fn(i, item) {
			return
		}
	}
}

// ObjectSet inserts or overwrites key with value, preserving position_id on
// overwrite (C4 invariant 6). Panics if v is not an Object.
func (v *Value) ObjectSet(key string, val *Value) {
	v.mustBe(KindObject)
	v.o.Set(key, val)
}

// ObjectGet looks up key; ok is false if absent. Panics if v is not an Object.
func (v *Value) ObjectGet(key string) (*Value, bool) {
	v.mustBe(KindObject)
	return v.o.Get(key)
}

// ObjectLen returns the number of keys; panics if not an Object.
func (v *Value) ObjectLen() int {
	v.mustBe(KindObject)
	return v.o.Len()
}

// ObjectEach iterates key/value pairs in insertion order.
func (v *Value) ObjectEach(fn func(key string, val *Value) bool) {
	v.mustBe(KindObject)
	v.o.Each(fn)
}

// Sort reassigns the object's position ids so iteration matches ascending
// key order (C4 sort()). Panics if v is not an Object.
func (v *Value) Sort() {
	v.mustBe(KindObject)
	v.o.Sort(func(a, b string) bool { return a < b })
}

// RSort reassigns the object's position ids so iteration matches descending
// key order (C4 rsort()). Panics if v is not an Object.
func (v *Value) RSort() {
	v.mustBe(KindObject)
	v.o.RSort(func(a, b string) bool { return a < b })
}

// Get walks a chain of object keys / array indices, returning nil if any
// step is absent or of the wrong shape (unlike Must*, this never panics).
func (v *Value) Get(path ...string) *Value {
	cur := v
	for _, p := range path {
		switch cur.k {
		case KindObject:
			next, ok := cur.o.Get(p)
			if !ok {
				return nil
			}
			cur = next
		case KindArray:
			idx, ok := parseIdx(p)
			if !ok || idx < 0 || idx >= len(cur.a) {
				return nil
			}
			cur = cur.a[idx]
		default:
			return nil
		}
	}
	return cur
}

func parseIdx(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// Equal reports deep structural equality. Number compares by original
// text, not numeric value: a Number preserves its original textual form
// exactly, so "1.0" and "1.00" are not Equal even though they denote the
// same number.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.k != other.k {
		return false
	}
	switch v.k {
	case KindError:
		return v.errs == other.errs
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n == other.n
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.a) != len(other.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].Equal(other.a[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.o.Len() != other.o.Len() {
			return false
		}
		ok := true
		v.o.Each(func(k string, val *Value) bool {
			ov, present := other.o.Get(k)
			if !present || !val.Equal(ov) {
				ok = false
				return false
			}
			return true
		})
		return ok
	}
	return false
}

// s2b and b2s are zero-copy string<->[]byte conversions used on hot paths
// (encoding, hashing) where the caller guarantees the buffer outlives the
// resulting string, or vice versa.
func s2b(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func b2s(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

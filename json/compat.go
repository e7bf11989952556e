package json

import (
	"encoding/base64"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
)

const hexDigit = "0123456789abcdef"

// ─── Marshal ───

// marshalBuf recycles serialization buffers across calls.
var marshalBuf = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 512)
		return &b
	},
}

// Marshal encodes a Go value as JSON, compatible with encoding/json.Marshal.
//
// Supports:
//   - scalars: string, bool, int*, uint*, float*
//   - composites: struct, map[string]T, slice, array, pointer
//   - the Marshaler interface
//   - struct tags: `json:"name,omitempty"`, `json:"-"` to skip a field
//
// Differences from the standard library: HTML characters (<, >, &) are not
// escaped, and NaN/Inf encode as null rather than erroring.
func Marshal(v any) ([]byte, error) {
	bp := marshalBuf.Get().(*[]byte)
	buf := (*bp)[:0]
	var err error
	buf, err = appendMarshal(buf, reflect.ValueOf(v))
	if err != nil {
		*bp = buf
		marshalBuf.Put(bp)
		return nil, err
	}
	// Copy out: the caller owns the result, the pool buffer gets reused.
	result := make([]byte, len(buf))
	copy(result, buf)
	*bp = buf
	marshalBuf.Put(bp)
	return result, nil
}

// MarshalTo encodes v and appends it to dst, avoiding Marshal's copy.
func MarshalTo(dst []byte, v any) ([]byte, error) {
	return appendMarshal(dst, reflect.ValueOf(v))
}

// MarshalAppend is an alias of MarshalTo for callers that already hold a
// pool buffer and want to avoid Marshal's extra allocation.
func MarshalAppend(dst []byte, v any) ([]byte, error) {
	return appendMarshal(dst, reflect.ValueOf(v))
}

// AcquireBuf retrieves a buffer from marshalBuf.
func AcquireBuf() *[]byte {
	return marshalBuf.Get().(*[]byte)
}

// ReleaseBuf returns a buffer to marshalBuf.
func ReleaseBuf(bp *[]byte) {
	marshalBuf.Put(bp)
}

// appendMarshal is the core serialization recursion's entry point.
func appendMarshal(dst []byte, rv reflect.Value) ([]byte, error) {
	return appendMarshalDepth(dst, rv, 0)
}

// appendMarshalDepth is appendMarshal with an explicit depth limit: self-
// referential pointer chains are bounded by MaxMarshalDepth rather than
// overflowing the goroutine stack (encoding/json applies the same guard
// via its internal ptrLevel counter).
func appendMarshalDepth(dst []byte, rv reflect.Value, depth int) ([]byte, error) {
	if !rv.IsValid() {
		return append(dst, "null"...), nil
	}
	if depth > MaxMarshalDepth {
		return dst, fmt.Errorf("json: max marshal depth %d exceeded", MaxMarshalDepth)
	}

	// Fast path: match concrete types via the empty interface before
	// falling back to rv.Kind()'s reflection overhead.
	if rv.CanInterface() {
		switch val := rv.Interface().(type) {
		case string:
			return appendQuotedString(dst, val), nil
		case int:
			return appendInt(dst, int64(val)), nil
		case int64:
			return appendInt(dst, val), nil
		case bool:
			if val {
				return append(dst, "true"...), nil
			}
			return append(dst, "false"...), nil
		case map[string]string:
			return appendMapStringString(dst, val), nil
		case map[string]any:
			return appendMapStringAny(dst, val, depth+1)
		case Marshaler:
			b, err := val.MarshalJSON()
			if err != nil {
				return dst, err
			}
			return append(dst, b...), nil
		}
	}

	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return append(dst, "null"...), nil
		}
		rv = rv.Elem()
	}

	// Marshaler may be implemented on either the value or pointer receiver.
	if rv.CanInterface() {
		if m, ok := rv.Interface().(Marshaler); ok {
			b, err := m.MarshalJSON()
			if err != nil {
				return dst, err
			}
			return append(dst, b...), nil
		}
	}
	if rv.CanAddr() {
		if m, ok := rv.Addr().Interface().(Marshaler); ok {
			b, err := m.MarshalJSON()
			if err != nil {
				return dst, err
			}
			return append(dst, b...), nil
		}
	}

	switch rv.Kind() {
	case reflect.String:
		dst = appendQuotedString(dst, rv.String())
		return dst, nil

	case reflect.Bool:
		if rv.Bool() {
			return append(dst, "true"...), nil
		}
		return append(dst, "false"...), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return appendInt(dst, rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return appendUint(dst, rv.Uint()), nil

	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return append(dst, "null"...), nil
		}
		if f == math.Trunc(f) && f >= -1e15 && f <= 1e15 {
			return appendInt(dst, int64(f)), nil
		}
		bits := 64
		if rv.Kind() == reflect.Float32 {
			bits = 32
		}
		return strconv.AppendFloat(dst, f, 'f', -1, bits), nil

	case reflect.Slice:
		if rv.IsNil() {
			return append(dst, "null"...), nil
		}
		// []byte -> base64 string, matching encoding/json.
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return appendByteSlice(dst, rv.Bytes()), nil
		}
		// []string fast path, avoiding per-element boxing.
		if rv.Type().Elem().Kind() == reflect.String {
			return appendStringSlice(dst, rv), nil
		}
		return appendArray(dst, rv, depth+1)

	case reflect.Array:
		return appendArray(dst, rv, depth+1)

	case reflect.Map:
		if rv.IsNil() {
			return append(dst, "null"...), nil
		}
		return appendMap(dst, rv, depth+1)

	case reflect.Struct:
		return appendStruct(dst, rv, depth+1)

	case reflect.Interface:
		if rv.IsNil() {
			return append(dst, "null"...), nil
		}
		return appendMarshalDepth(dst, rv.Elem(), depth+1)

	default:
		return append(dst, "null"...), nil
	}
}

// appendQuotedString appends a quoted JSON string, fast-pathing the
// no-escape-needed case.
func appendQuotedString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c == '"' || c == '\\' {
			return appendQuotedStringSlow(dst, s)
		}
	}
	dst = append(dst, s...)
	dst = append(dst, '"')
	return dst
}

func appendQuotedStringSlow(dst []byte, s string) []byte {
	// dst already holds the opening quote.
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			dst = append(dst, '\\', '"')
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c == '\t':
			dst = append(dst, '\\', 't')
		case c < 0x20:
			dst = append(dst, '\\', 'u', '0', '0', hexDigit[c>>4], hexDigit[c&0xF])
		default:
			dst = append(dst, c)
		}
	}
	dst = append(dst, '"')
	return dst
}

// appendByteSlice encodes a []byte as a base64 string, matching
// encoding/json's []byte handling. This is the reflection layer's fast
// path; it intentionally doesn't share a table with the core base64 codec
// in base64.go, where alphabet fidelity actually matters.
func appendByteSlice(dst []byte, b []byte) []byte {
	if len(b) == 0 {
		return append(dst, `""`...)
	}
	dst = append(dst, '"')
	encodedLen := base64.StdEncoding.EncodedLen(len(b))
	pos := len(dst)
	dst = append(dst, make([]byte, encodedLen)...)
	base64.StdEncoding.Encode(dst[pos:], b)
	dst = append(dst, '"')
	return dst
}

// appendStringSlice is a []string fast path avoiding per-element boxing.
func appendStringSlice(dst []byte, rv reflect.Value) []byte {
	dst = append(dst, '[')
	n := rv.Len()
	for i := 0; i < n; i++ {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendQuotedString(dst, rv.Index(i).String())
	}
	dst = append(dst, ']')
	return dst
}

// appendArray encodes a slice or array.
func appendArray(dst []byte, rv reflect.Value, depth int) ([]byte, error) {
	dst = append(dst, '[')
	n := rv.Len()
	for i := 0; i < n; i++ {
		if i > 0 {
			dst = append(dst, ',')
		}
		var err error
		dst, err = appendMarshalDepth(dst, rv.Index(i), depth)
		if err != nil {
			return dst, err
		}
	}
	dst = append(dst, ']')
	return dst, nil
}

// appendMap encodes a map, sorting keys for deterministic output.
func appendMap(dst []byte, rv reflect.Value, depth int) ([]byte, error) {
	keys := rv.MapKeys()
	strKeys := make([]string, len(keys))
	for i, k := range keys {
		strKeys[i] = k.String()
	}
	sort.Strings(strKeys)

	dst = append(dst, '{')
	for i, key := range strKeys {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendQuotedString(dst, key)
		dst = append(dst, ':')
		var err error
		dst, err = appendMarshalDepth(dst, rv.MapIndex(reflect.ValueOf(key)), depth)
		if err != nil {
			return dst, err
		}
	}
	dst = append(dst, '}')
	return dst, nil
}

// appendMapStringString is a reflection-free map[string]string fast path;
// a single-key map skips sorting entirely.
func appendMapStringString(dst []byte, m map[string]string) []byte {
	dst = append(dst, '{')
	if len(m) == 0 {
		dst = append(dst, '}')
		return dst
	}
	if len(m) == 1 {
		for k, v := range m {
			dst = appendQuotedString(dst, k)
			dst = append(dst, ':')
			dst = appendQuotedString(dst, v)
		}
		dst = append(dst, '}')
		return dst
	}
	// More than one key: sort for deterministic output.
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendQuotedString(dst, k)
		dst = append(dst, ':')
		dst = appendQuotedString(dst, m[k])
	}
	dst = append(dst, '}')
	return dst
}

// appendMapStringAny is a map[string]any fast path avoiding the extra
// allocations of reflect.MapKeys combined with reflect.ValueOf(key).
func appendMapStringAny(dst []byte, m map[string]any, depth int) ([]byte, error) {
	dst = append(dst, '{')
	if len(m) == 0 {
		dst = append(dst, '}')
		return dst, nil
	}
	if len(m) == 1 {
		for k, v := range m {
			dst = appendQuotedString(dst, k)
			dst = append(dst, ':')
			var err error
			dst, err = appendMarshalDepth(dst, reflect.ValueOf(v), depth)
			if err != nil {
				return dst, err
			}
		}
		dst = append(dst, '}')
		return dst, nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendQuotedString(dst, k)
		dst = append(dst, ':')
		var err error
		dst, err = appendMarshalDepth(dst, reflect.ValueOf(m[k]), depth)
		if err != nil {
			return dst, err
		}
	}
	dst = append(dst, '}')
	return dst, nil
}

// ─── Struct encoding ───

// structFieldInfo is cached per-field metadata for struct marshaling.
type structFieldInfo struct {
	name      string // JSON key name
	nameJSON  string // precomputed `"name":`
	index     []int  // reflect field index path
	omitempty bool
}

// structCache avoids re-deriving field metadata on every call.
var structCache sync.Map // map[reflect.Type][]structFieldInfo

func getStructFields(t reflect.Type) []structFieldInfo {
	if cached, ok := structCache.Load(t); ok {
		return cached.([]structFieldInfo)
	}
	fields := buildStructFields(t)
	structCache.Store(t, fields)
	return fields
}

func buildStructFields(t reflect.Type) []structFieldInfo {
	var fields []structFieldInfo
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		// Flatten anonymous embedded structs.
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			embedded := buildStructFields(f.Type)
			for j := range embedded {
				embedded[j].index = append([]int{i}, embedded[j].index...)
			}
			fields = append(fields, embedded...)
			continue
		}

		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name := f.Name
		omitempty := false
		if tag != "" {
			parts := strings.SplitN(tag, ",", 2)
			if parts[0] != "" {
				name = parts[0]
			}
			if len(parts) > 1 && strings.Contains(parts[1], "omitempty") {
				omitempty = true
			}
		}
		fields = append(fields, structFieldInfo{
			name:      name,
			nameJSON:  `"` + name + `":`,
			index:     f.Index,
			omitempty: omitempty,
		})
	}
	return fields
}

func appendStruct(dst []byte, rv reflect.Value, depth int) ([]byte, error) {
	fields := getStructFields(rv.Type())
	dst = append(dst, '{')
	first := true
	for i := range fields {
		fi := &fields[i]
		fv := rv.FieldByIndex(fi.index)
		if fi.omitempty && isZeroValue(fv) {
			continue
		}
		if !first {
			dst = append(dst, ',')
		}
		first = false
		dst = append(dst, fi.nameJSON...)
		var err error
		dst, err = appendMarshalDepth(dst, fv, depth)
		if err != nil {
			return dst, err
		}
	}
	dst = append(dst, '}')
	return dst, nil
}

// isZeroValue reports whether v is its type's zero value (for omitempty).
func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.String:
		return v.Len() == 0
	case reflect.Slice, reflect.Map:
		return v.IsNil()
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	case reflect.Array:
		return v.Len() == 0
	case reflect.Struct:
		return false // a zero-value struct is still encoded, never omitted
	}
	return false
}

// ─── Unmarshal ───

// Unmarshal decodes JSON into a Go value, compatible with
// encoding/json.Unmarshal.
//
// Supports:
//   - *struct: fields mapped by json tag
//   - *map[string]any: generic object decoding
//   - *[]any: generic array decoding
//   - *string, *bool, *int*, *float*: scalars
//   - the Unmarshaler interface
func Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &InvalidUnmarshalError{Type: reflect.TypeOf(v)}
	}

	if u, ok := v.(Unmarshaler); ok {
		return u.UnmarshalJSON(data)
	}

	var p Parser
	jv := p.ParseBytes(data)
	if jv.IsError() {
		return fmt.Errorf("json: %s", jv.ErrorText())
	}
	return unmarshalValue(jv, rv.Elem())
}

func unmarshalValue(jv *Value, rv reflect.Value) error {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	if rv.CanAddr() {
		if u, ok := rv.Addr().Interface().(Unmarshaler); ok {
			return u.UnmarshalJSON(marshalValue(jv))
		}
	}

	switch jv.Kind() {
	case KindNull, KindError:
		rv.SetZero()
		return nil

	case KindBool:
		b := jv.MustBool()
		if rv.Kind() == reflect.Bool {
			rv.SetBool(b)
		} else if rv.Kind() == reflect.Interface {
			rv.Set(reflect.ValueOf(b))
		}
		return nil

	case KindNumber:
		return unmarshalNumber(jv, rv)

	case KindString:
		s := jv.MustString()
		if rv.Kind() == reflect.String {
			rv.SetString(s)
		} else if rv.Kind() == reflect.Interface {
			rv.Set(reflect.ValueOf(s))
		}
		return nil

	case KindArray:
		return unmarshalArray(jv, rv)

	case KindObject:
		return unmarshalObject(jv, rv)
	}
	return nil
}

func unmarshalNumber(jv *Value, rv reflect.Value) error {
	text := jv.MustNumber()
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := parseInt(text)
		if err != nil {
			return err
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := parseInt(text)
		if err != nil {
			return err
		}
		rv.SetUint(uint64(n))
	case reflect.Float32, reflect.Float64:
		f, err := parseFloat(text)
		if err != nil {
			return err
		}
		rv.SetFloat(f)
	case reflect.Interface:
		// With no static type to aim for, try integer first, then float.
		if n, err := parseInt(text); err == nil {
			rv.Set(reflect.ValueOf(n))
		} else if f, err := parseFloat(text); err == nil {
			rv.Set(reflect.ValueOf(f))
		}
	}
	return nil
}

func unmarshalArray(jv *Value, rv reflect.Value) error {
	items := jv.MustArray()
	switch rv.Kind() {
	case reflect.Slice:
		slice := reflect.MakeSlice(rv.Type(), len(items), len(items))
		for i, elem := range items {
			if err := unmarshalValue(elem, slice.Index(i)); err != nil {
				return err
			}
		}
		rv.Set(slice)
	case reflect.Array:
		for i := 0; i < rv.Len() && i < len(items); i++ {
			if err := unmarshalValue(items[i], rv.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Interface:
		arr := make([]any, len(items))
		for i, elem := range items {
			val := reflect.ValueOf(&arr[i]).Elem()
			if err := unmarshalValue(elem, val); err != nil {
				return err
			}
		}
		rv.Set(reflect.ValueOf(arr))
	}
	return nil
}

func unmarshalObject(jv *Value, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			rv.Set(reflect.MakeMap(rv.Type()))
		}
		valType := rv.Type().Elem()
		var firstErr error
		jv.ObjectEach(func(k string, v *Value) bool {
			val := reflect.New(valType).Elem()
			if err := unmarshalValue(v, val); err != nil {
				firstErr = err
				return false
			}
			rv.SetMapIndex(reflect.ValueOf(k), val)
			return true
		})
		return firstErr
	case reflect.Struct:
		return unmarshalStruct(jv, rv)
	case reflect.Interface:
		m := make(map[string]any, jv.ObjectLen())
		var firstErr error
		jv.ObjectEach(func(k string, v *Value) bool {
			var val any
			vv := reflect.ValueOf(&val).Elem()
			if err := unmarshalValue(v, vv); err != nil {
				firstErr = err
				return false
			}
			m[k] = val
			return true
		})
		if firstErr != nil {
			return firstErr
		}
		rv.Set(reflect.ValueOf(m))
	}
	return nil
}

func unmarshalStruct(jv *Value, rv reflect.Value) error {
	fields := getStructFields(rv.Type())
	var firstErr error
	jv.ObjectEach(func(k string, v *Value) bool {
		for _, fi := range fields {
			if fi.name == k {
				fv := rv.FieldByIndex(fi.index)
				if err := unmarshalValue(v, fv); err != nil {
					firstErr = err
					return false
				}
				break
			}
		}
		return true
	})
	return firstErr
}

// marshalValue re-serializes a Value tree, used to feed an Unmarshaler's
// UnmarshalJSON when a destination field implements that interface.
func marshalValue(v *Value) []byte {
	if v == nil {
		return []byte("null")
	}
	return ToJSON(v)
}

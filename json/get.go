package json

import (
	"fmt"

	"github.com/uniyakcom/jsonvalue/internal/dfa"
)

// Res is a lazy query result: a lightweight value type for a single Get
// lookup, as opposed to Value's full DOM tree.
//
//   - Value builds the complete tree (best for repeated access).
//   - Res scans just far enough to answer one query, with no tree
//     allocation at all (best for read-one-field call sites).
//
// Modeled after gjson.Result's accessor surface (String/Int/Float64/Bool/
// Exists) but implemented independently: Res keeps only the four fields
// it needs (raw, str, kind, ok) rather than gjson's six-field Result.
type Res struct {
	raw  string // the raw JSON text covering this value, e.g. `"dark"`, `42`, `{"a":1}`
	str  string // KindString: the unescaped content; otherwise empty
	kind Kind
	ok   bool
}

// String returns the string value: the unescaped content for KindString,
// or the raw JSON text otherwise.
func (r Res) String() string {
	if r.kind == KindString {
		return r.str
	}
	return r.raw
}

// Int returns the value as int64, or 0 if it is not a Number.
func (r Res) Int() int64 {
	if r.kind != KindNumber {
		return 0
	}
	n, _ := parseInt(r.raw)
	return n
}

// Float64 returns the value as float64, or 0 if it is not a Number.
func (r Res) Float64() float64 {
	if r.kind != KindNumber {
		return 0
	}
	f, _ := parseFloat(r.raw)
	return f
}

// Bool returns the boolean value, or false if it is not a Boolean.
func (r Res) Bool() bool {
	return r.kind == KindBool && r.raw == "true"
}

// Exists reports whether the queried path resolved to a value.
func (r Res) Exists() bool { return r.ok }

// Raw returns the raw JSON text covering this value.
func (r Res) Raw() string { return r.raw }

// Kind returns the value's kind; meaningless if !Exists().
func (r Res) Kind() Kind { return r.kind }

// ─── lazy query API ───

// Get scans json for the value at a dot-separated path without building a
// Value tree: it skips over keys and values it doesn't need rather than
// decoding them, so a single lookup in a large document costs only the
// scanning of containers on the path to it.
//
// Path segments are object keys or array indices:
//
//	Get(`{"user":{"name":"yak"}}`, "user.name") → "yak"
//	Get(`{"items":[1,2,3]}`, "items.1")         → 2
//	Get(`{"a":{"b":{"c":true}}}`, "a.b.c")      → true
func Get(json, path string) Res {
	n := len(json)
	i := 0
	for i < n && json[i] <= ' ' {
		i++
	}
	if i >= n {
		return Res{}
	}

	for {
		dot := 0
		for dot < len(path) && path[dot] != '.' {
			dot++
		}
		key := path[:dot]
		var more bool
		if dot < len(path) {
			path = path[dot+1:]
			more = true
		} else {
			path = ""
		}

		for i < n && json[i] <= ' ' {
			i++
		}
		if i >= n {
			return Res{}
		}

		switch json[i] {
		case '{':
			i = objFind(json, i+1, key)
			if i < 0 {
				return Res{}
			}
		case '[':
			idx := atoIdx(key)
			if idx < 0 {
				return Res{}
			}
			i = arrFind(json, i+1, idx)
			if i < 0 {
				return Res{}
			}
		default:
			return Res{} // can't navigate into a scalar
		}

		if !more {
			return parseRes(json, i)
		}
	}
}

// GetBytes is the []byte-accepting counterpart of Get.
func GetBytes(json []byte, path string) Res {
	return Get(b2s(json), path)
}

// ─── internal scanning helpers ───

// objFind locates key's value within an object, returning its start
// position, or -1 if absent. i points just past the object's opening '{'.
func objFind(s string, i int, key string) int {
	n := len(s)
	kl := len(key)
	for {
		for i < n && s[i] <= ' ' {
			i++
		}
		if i >= n || s[i] == '}' {
			return -1
		}
		if s[i] != '"' {
			return -1
		}
		i++ // skip opening quote

		// Fast path: if the key's length lands exactly on a closing quote,
		// compare bytes directly instead of extracting a substring.
		if n-i > kl && s[i+kl] == '"' {
			j := 0
			for j < kl && s[i+j] == key[j] {
				j++
			}
			if j == kl {
				i += kl + 1 // skip key + closing quote
				for i < n && s[i] <= ' ' {
					i++
				}
				if i >= n || s[i] != ':' {
					return -1
				}
				i++
				for i < n && s[i] <= ' ' {
					i++
				}
				return i
			}
		}

		// Slow path: the key didn't match, or contains an escape. Skip it.
		for i < n {
			if s[i] == '"' {
				break
			}
			if s[i] == '\\' {
				i += 2
				continue
			}
			i++
		}
		if i >= n {
			return -1
		}
		i++ // skip closing quote

		for i < n && s[i] <= ' ' {
			i++
		}
		if i >= n || s[i] != ':' {
			return -1
		}
		i++
		for i < n && s[i] <= ' ' {
			i++
		}

		i = skipVal(s, i)

		for i < n && s[i] <= ' ' {
			i++
		}
		if i < n && s[i] == ',' {
			i++
		}
	}
}

// arrFind locates the idx'th element within an array, returning its start
// position, or -1 if absent. i points just past the array's opening '['.
func arrFind(s string, i int, idx int) int {
	n := len(s)
	for j := 0; j <= idx; j++ {
		for i < n && s[i] <= ' ' {
			i++
		}
		if i >= n || s[i] == ']' {
			return -1
		}
		if j == idx {
			return i
		}
		i = skipVal(s, i)
		for i < n && s[i] <= ' ' {
			i++
		}
		if i < n && s[i] == ',' {
			i++
		}
	}
	return -1
}

// ─── batched skipVal ───

// vch classifies bytes for the batched container-skipping scan in
// skipNested, patterned after tidwall/gjson's vchars lookup table: 0 for an
// ordinary byte, 1 for a closing bracket, 2 for a quote, 3 for an opening
// bracket. depth += int(c) - 2 turns an opening bracket into +1 and a
// closing bracket into -1 in the same step as the table lookup.
var vch = [256]byte{
	'"': 2,
	'{': 3, '[': 3,
	'}': 1, ']': 1,
}

// skipVal returns the position just past the complete JSON value starting
// at i.
func skipVal(s string, i int) int {
	n := len(s)
	if i >= n {
		return n
	}
	switch s[i] {
	case '"':
		return skipStr(s, i+1)
	case '{', '[':
		return skipNested(s, i)
	case 't':
		if i+4 <= n {
			return i + 4
		}
		return n
	case 'f':
		if i+5 <= n {
			return i + 5
		}
		return n
	case 'n':
		if i+4 <= n {
			return i + 4
		}
		return n
	default:
		for i < n {
			c := s[i]
			if c <= ' ' || c == ',' || c == '}' || c == ']' {
				return i
			}
			i++
		}
		return n
	}
}

// skipStr returns the position just past the closing quote; i points at
// the string's first content byte.
func skipStr(s string, i int) int {
	n := len(s)
	for i < n {
		if s[i] > '\\' {
			i++
			continue
		}
		if s[i] == '"' {
			return i + 1
		}
		if s[i] == '\\' {
			i += 2
			continue
		}
		i++
	}
	return n
}

// skipNested skips a complete object or array using vch's batched scan,
// the core loop shape taken from tidwall/gjson's parseSquash (MIT
// License): same vchars table and depth += int(c) - 2 formula, returning a
// single position instead of gjson's (position, token) pair and dropping
// gjson's parenthesis handling, which JSON has no use for.
func skipNested(s string, i int) int {
	n := len(s)
	depth := 1
	i++ // skip opening '{' or '['
	for i < n && depth > 0 {
		for n-i >= 8 {
			c := vch[s[i]]
			if c != 0 {
				goto tok
			}
			c = vch[s[i+1]]
			if c != 0 {
				i++
				goto tok
			}
			c = vch[s[i+2]]
			if c != 0 {
				i += 2
				goto tok
			}
			c = vch[s[i+3]]
			if c != 0 {
				i += 3
				goto tok
			}
			c = vch[s[i+4]]
			if c != 0 {
				i += 4
				goto tok
			}
			c = vch[s[i+5]]
			if c != 0 {
				i += 5
				goto tok
			}
			c = vch[s[i+6]]
			if c != 0 {
				i += 6
				goto tok
			}
			c = vch[s[i+7]]
			if c != 0 {
				i += 7
				goto tok
			}
			i += 8
			continue
		tok:
			if c == 2 { // '"': skip the string
				i++
				for i < n {
					if s[i] > '\\' {
						i++
						continue
					}
					if s[i] == '"' {
						i++
						break
					}
					if s[i] == '\\' {
						i += 2
						continue
					}
					i++
				}
			} else {
				depth += int(c) - 2
				i++
				if depth == 0 {
					return i
				}
			}
			continue
		}
		// Tail shorter than 8 bytes: scan one at a time.
		c := vch[s[i]]
		if c == 0 {
			i++
			continue
		}
		if c == 2 {
			i++
			for i < n {
				if s[i] > '\\' {
					i++
					continue
				}
				if s[i] == '"' {
					i++
					break
				}
				if s[i] == '\\' {
					i += 2
					continue
				}
				i++
			}
		} else {
			depth += int(c) - 2
			i++
			if depth == 0 {
				return i
			}
		}
	}
	return i
}

// parseRes parses the value at position i into a Res without building a
// Value tree. A string longer than MaxStringLength is treated as absent,
// so Get can't be used to bypass the length guard the full parser enforces.
func parseRes(s string, i int) Res {
	n := len(s)
	if i >= n {
		return Res{}
	}
	switch s[i] {
	case '"':
		content, end, _, err := rawStr(s, i)
		if err != nil || len(content) > MaxStringLength {
			return Res{}
		}
		return Res{raw: s[i:end], str: content, kind: KindString, ok: true}
	case '{':
		end := skipVal(s, i)
		return Res{raw: s[i:end], kind: KindObject, ok: true}
	case '[':
		end := skipVal(s, i)
		return Res{raw: s[i:end], kind: KindArray, ok: true}
	case 't':
		if i+4 <= n {
			return Res{raw: s[i : i+4], kind: KindBool, ok: true}
		}
		return Res{}
	case 'f':
		if i+5 <= n {
			return Res{raw: s[i : i+5], kind: KindBool, ok: true}
		}
		return Res{}
	case 'n':
		if i+4 <= n {
			return Res{raw: s[i : i+4], kind: KindNull, ok: true}
		}
		return Res{}
	default:
		end := i
		for end < n {
			c := s[end]
			if c <= ' ' || c == ',' || c == '}' || c == ']' {
				break
			}
			end++
		}
		return Res{raw: s[i:end], kind: KindNumber, ok: true}
	}
}

// rawStr decodes the quoted string starting at i (s[i] == '"'), returning
// its unescaped content, the position just past the closing quote, and
// whether any escape sequence was present.
func rawStr(s string, i int) (content string, end int, hasEscape bool, err error) {
	n := len(s)
	start := i
	i++
	for i < n {
		c := s[i]
		if c == '"' {
			return s[start+1 : i], i + 1, false, nil
		}
		if c == '\\' {
			hasEscape = true
			break
		}
		i++
	}
	if i >= n {
		return "", n, false, fmt.Errorf("json: unterminated string")
	}

	buf := append([]byte(nil), s[start+1:i]...)
	for i < n {
		c := s[i]
		if c == '"' {
			return string(buf), i + 1, true, nil
		}
		if c != '\\' {
			buf = append(buf, c)
			i++
			continue
		}
		i++
		if i >= n {
			return "", n, true, fmt.Errorf("json: unterminated escape")
		}
		switch s[i] {
		case '"':
			buf = append(buf, '"')
			i++
		case '\\':
			buf = append(buf, '\\')
			i++
		case '/':
			buf = append(buf, '/')
			i++
		case 'b':
			buf = append(buf, '\b')
			i++
		case 'f':
			buf = append(buf, '\f')
			i++
		case 'n':
			buf = append(buf, '\n')
			i++
		case 'r':
			buf = append(buf, '\r')
			i++
		case 't':
			buf = append(buf, '\t')
			i++
		case 'u':
			i++
			if i+4 > n {
				return "", n, true, fmt.Errorf("json: truncated \\u escape")
			}
			unit, ok := hex4(s[i : i+4])
			if !ok {
				return "", n, true, fmt.Errorf("json: invalid \\u escape")
			}
			i += 4
			if unit >= 0xD800 && unit <= 0xDBFF {
				if i+6 <= n && s[i] == '\\' && s[i+1] == 'u' {
					low, ok := hex4(s[i+2 : i+6])
					if ok && low >= 0xDC00 && low <= 0xDFFF {
						r := rune(0x10000 + (unit-0xD800)*0x400 + (low - 0xDC00))
						buf = appendRune(buf, r)
						i += 6
						continue
					}
				}
				return "", n, true, fmt.Errorf("json: unpaired surrogate \\u%04x", unit)
			}
			if unit >= 0xDC00 && unit <= 0xDFFF {
				return "", n, true, fmt.Errorf("json: unpaired low surrogate \\u%04x", unit)
			}
			buf = appendRune(buf, rune(unit))
		default:
			return "", n, true, fmt.Errorf("json: invalid escape \\%c", s[i])
		}
	}
	return "", n, true, fmt.Errorf("json: unterminated string")
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hex4(s string) (uint32, bool) {
	var v uint32
	for i := 0; i < 4; i++ {
		if !isHexDigit(s[i]) {
			return 0, false
		}
		v = v<<4 | uint32(dfa.HexValue(s[i]))
	}
	return v, true
}

// atoIdx parses a non-negative integer array index, guarding against
// overflow on 32-bit platforms.
func atoIdx(s string) int {
	if len(s) == 0 || len(s) > 10 {
		return -1
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return -1
		}
		n = n*10 + int(s[i]-'0')
		if n < 0 {
			return -1
		}
	}
	return n
}

package json

import (
	"fmt"
	"sync"

	"github.com/uniyakcom/jsonvalue/internal/container"
	"github.com/uniyakcom/jsonvalue/internal/dfa"
)

// Parser drives the byte-level parser DFA (C2) together with an explicit
// container stack (C3), producing a Value tree (C5). A Parser is reusable
// across calls via Reset (implicit in Parse) but is not concurrency-safe;
// use ParserPool/AcquireParser for concurrent use.
//
//	var p json.Parser
//	v := p.Parse(`{"key":"value"}`)
//	fmt.Println(v.Get("key").MustString()) // value
type Parser struct {
	stack   container.Stack[*Value]
	scratch []byte
}

// ParserPool is a concurrency-safe pool of Parsers.
var ParserPool = sync.Pool{
	New: func() any { return new(Parser) },
}

// AcquireParser retrieves a Parser from ParserPool.
func AcquireParser() *Parser { return ParserPool.Get().(*Parser) }

// ReleaseParser returns p to ParserPool.
func ReleaseParser(p *Parser) { ParserPool.Put(p) }

// parseError carries the byte offset and DFA state at the point parsing
// failed, for diagnostics on syntactic errors.
type parseError struct {
	offset int
	state  int
	msg    string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("json: %s at offset %d (state %d)", e.msg, e.offset, e.state)
}

// Parse parses s into a Value tree. It never returns nil and never panics on
// malformed input: a syntactic problem comes back as a Value of Kind
// KindError, carrying a diagnostic message. Check v.IsError() before
// treating the result as a document. The returned Value's lifetime is
// independent of p: Parse allocates its own tree nodes.
func (p *Parser) Parse(s string) *Value {
	p.stack.Reset()
	p.scratch = p.scratch[:0]
	v, err := p.parseDocument(s)
	if err != nil {
		return Error(err.Error())
	}
	return v
}

// ParseBytes is the []byte-accepting counterpart of Parse.
func (p *Parser) ParseBytes(b []byte) *Value {
	return p.Parse(b2s(b))
}

// Parse parses s using a throwaway local Parser, for callers who
// don't need pooling.
func Parse(s string) *Value {
	var p Parser
	return p.Parse(s)
}

// ParseBytes is the []byte-accepting counterpart of Parse.
func ParseBytes(b []byte) *Value {
	return Parse(b2s(b))
}

func (p *Parser) parseDocument(s string) (*Value, error) {
	n := len(s)
	if n == 0 {
		return nil, fmt.Errorf("json: empty input")
	}

	state := dfa.StateEntry
	numStart := 0
	hexRemaining := 0
	var hexVal uint32
	var pendingHigh uint32

	var root *Value
	rootSet := false

	complete := func(v *Value) error {
		if top := p.stack.Top(); top != nil {
			if top.Kind == container.KindArray && top.Len() >= MaxArrayLength {
				return fmt.Errorf("json: array too long (> %d)", MaxArrayLength)
			}
			top.Append(v)
			return nil
		}
		if rootSet {
			return fmt.Errorf("json: unexpected trailing value")
		}
		root, rootSet = v, true
		return nil
	}

	for i := 0; i < n; i++ {
		c := s[i]
		next := dfa.ParserTransition(state, c)
		if next == dfa.StateFail {
			return nil, &parseError{offset: i, state: state, msg: "unexpected character " + quoteByte(c)}
		}

		// Numbers have no closing delimiter of their own: the byte that
		// ends one is the start of whatever comes next (a comma, a closing
		// bracket, or trailing whitespace). Finalize the pending number
		// literal here, before that byte's own effect is handled below.
		if isNumberState(state) && isValueTerminator(next) {
			if err := complete(NumberFromText(s[numStart:i])); err != nil {
				return nil, err
			}
		}

		switch int(next) {
		case dfa.StateEntry, dfa.StateWSAfterValue, dfa.StateWSBeforeKey,
			dfa.StateWSAfterKeyStr:
			// Plain whitespace/structural transitions carry no payload.

		case dfa.StateColon:
			top := p.stack.Top()
			if top == nil || top.Kind != container.KindObject || !top.HasKey {
				return nil, &parseError{offset: i, state: state, msg: "unexpected ':'"}
			}

		case dfa.StateArrayOpen:
			if p.stack.Depth()+1 > MaxDepth {
				return nil, &parseError{offset: i, state: state, msg: "max nesting depth exceeded"}
			}
			p.stack.Push(container.KindArray)

		case dfa.StateObjectOpen:
			if p.stack.Depth()+1 > MaxDepth {
				return nil, &parseError{offset: i, state: state, msg: "max nesting depth exceeded"}
			}
			p.stack.Push(container.KindObject)

		case dfa.StateArrayEmptyClose, dfa.StateArrayClose:
			top := p.stack.Top()
			if top == nil || top.Kind != container.KindArray {
				return nil, &parseError{offset: i, state: state, msg: "mismatched ']'"}
			}
			p.stack.Pop()
			v := Array()
			v.a = top.Items
			if err := complete(v); err != nil {
				return nil, err
			}

		case dfa.StateObjectEmptyClose, dfa.StateObjectClose:
			top := p.stack.Top()
			if top == nil || top.Kind != container.KindObject {
				return nil, &parseError{offset: i, state: state, msg: "mismatched '}'"}
			}
			if top.HasKey {
				return nil, &parseError{offset: i, state: state, msg: "object key without a value"}
			}
			p.stack.Pop()
			v := Object()
			for idx, key := range top.Keys {
				v.o.Set(key, top.Items[idx])
			}
			if err := complete(v); err != nil {
				return nil, err
			}

		case dfa.StateComma:
			top := p.stack.Top()
			if top == nil {
				return nil, &parseError{offset: i, state: state, msg: "unexpected ','"}
			}
			if top.Kind == container.KindObject {
				if top.HasKey {
					return nil, &parseError{offset: i, state: state, msg: "object key without a value"}
				}
				next = byte(dfa.StateObjectCommaKey)
			}

		case dfa.StateNullDone:
			if err := complete(nullValue); err != nil {
				return nil, err
			}
		case dfa.StateFalseDone:
			if err := complete(falseValue); err != nil {
				return nil, err
			}
		case dfa.StateTrueDone:
			if err := complete(trueValue); err != nil {
				return nil, err
			}

		case dfa.StateZero, dfa.StateIntDigit, dfa.StateNegZero, dfa.StateDigits,
			dfa.StateFracDigits, dfa.StateExpDigits:
			if isEntryLikeState(state) {
				numStart = i
			}

		case dfa.StateStringOpen:
			p.scratch = p.scratch[:0]

		case dfa.StateStringBody, 49, 50, 51, dfa.StateUTF8StringDone, 53, 54, 55, 56:
			if pendingHigh != 0 {
				return nil, &parseError{offset: i, state: state, msg: "unpaired UTF-16 surrogate"}
			}
			p.scratch = append(p.scratch, c)

		case dfa.StateEscape:
			// backslash consumed, no payload yet

		case 29: // \"
			if pendingHigh != 0 {
				return nil, &parseError{offset: i, state: state, msg: "unpaired UTF-16 surrogate"}
			}
			p.scratch = append(p.scratch, '"')
		case 30: // \\
			if pendingHigh != 0 {
				return nil, &parseError{offset: i, state: state, msg: "unpaired UTF-16 surrogate"}
			}
			p.scratch = append(p.scratch, '\\')
		case 31: // \/
			if pendingHigh != 0 {
				return nil, &parseError{offset: i, state: state, msg: "unpaired UTF-16 surrogate"}
			}
			p.scratch = append(p.scratch, '/')
		case 32: // \b
			if pendingHigh != 0 {
				return nil, &parseError{offset: i, state: state, msg: "unpaired UTF-16 surrogate"}
			}
			p.scratch = append(p.scratch, '\b')
		case 33: // \f
			if pendingHigh != 0 {
				return nil, &parseError{offset: i, state: state, msg: "unpaired UTF-16 surrogate"}
			}
			p.scratch = append(p.scratch, '\f')
		case 34: // \n
			if pendingHigh != 0 {
				return nil, &parseError{offset: i, state: state, msg: "unpaired UTF-16 surrogate"}
			}
			p.scratch = append(p.scratch, '\n')
		case 35: // \r
			if pendingHigh != 0 {
				return nil, &parseError{offset: i, state: state, msg: "unpaired UTF-16 surrogate"}
			}
			p.scratch = append(p.scratch, '\r')
		case 36: // \t
			if pendingHigh != 0 {
				return nil, &parseError{offset: i, state: state, msg: "unpaired UTF-16 surrogate"}
			}
			p.scratch = append(p.scratch, '\t')

		case 37: // just saw \u
			hexRemaining, hexVal = 4, 0

		case dfa.StateStringClose:
			if pendingHigh != 0 {
				return nil, &parseError{offset: i, state: state, msg: "unpaired UTF-16 surrogate"}
			}
			if len(p.scratch) > MaxStringLength {
				return nil, &parseError{offset: i, state: state, msg: "string too long"}
			}
			if top := p.stack.Top(); top != nil && top.Kind == container.KindObject && !top.HasKey {
				if len(p.scratch) > MaxKeyLength {
					return nil, &parseError{offset: i, state: state, msg: "object key too long"}
				}
				if len(top.Items) >= MaxObjectKeys {
					return nil, &parseError{offset: i, state: state, msg: "too many object keys"}
				}
				top.SetPendingKey(string(p.scratch))
			} else if err := complete(String(string(p.scratch))); err != nil {
				return nil, err
			}

		default:
			// Hex-digit accumulation states (38-48) fall through here.
			if hexRemaining > 0 {
				hexVal = hexVal<<4 | uint32(dfa.HexValue(c))
				hexRemaining--
				if hexRemaining == 0 {
					if err := p.finishHexUnit(hexVal, &pendingHigh); err != nil {
						return nil, &parseError{offset: i, state: state, msg: err.Error()}
					}
				}
			}
		}

		state = int(next)
	}

	if isNumberState(state) && p.stack.Depth() == 0 {
		if err := complete(NumberFromText(s[numStart:n])); err != nil {
			return nil, err
		}
	}
	if p.stack.Depth() > 0 || !dfa.IsAccepting(state) || !rootSet {
		return nil, &parseError{offset: n, state: state, msg: "unexpected end of input"}
	}
	return root, nil
}

func isEntryLikeState(s int) bool {
	switch s {
	case dfa.StateEntry, dfa.StateComma, dfa.StateColon, dfa.StateArrayOpen, dfa.StateObjectCommaKey:
		return true
	}
	return false
}

func isNumberState(s int) bool {
	switch s {
	case dfa.StateZero, dfa.StateIntDigit, dfa.StateNegZero, dfa.StateDigits,
		dfa.StateFracDigits, dfa.StateExpDigits:
		return true
	}
	return false
}

func isValueTerminator(next byte) bool {
	switch int(next) {
	case dfa.StateComma, dfa.StateArrayClose, dfa.StateObjectClose, dfa.StateWSAfterValue:
		return true
	}
	return false
}

// finishHexUnit decodes one \uXXXX code unit, combining it with a stashed
// high surrogate (*pendingHigh) if one is outstanding, and appends the
// resulting UTF-8 bytes to p.scratch.
func (p *Parser) finishHexUnit(unit uint32, pendingHigh *uint32) error {
	switch {
	case *pendingHigh != 0:
		if unit < 0xDC00 || unit > 0xDFFF {
			return fmt.Errorf("unpaired high surrogate \\u%04x", *pendingHigh)
		}
		r := rune(0x10000 + (*pendingHigh-0xD800)*0x400 + (unit - 0xDC00))
		p.scratch = appendRune(p.scratch, r)
		*pendingHigh = 0
	case unit >= 0xD800 && unit <= 0xDBFF:
		*pendingHigh = unit
	case unit >= 0xDC00 && unit <= 0xDFFF:
		return fmt.Errorf("unpaired low surrogate \\u%04x", unit)
	default:
		p.scratch = appendRune(p.scratch, rune(unit))
	}
	return nil
}

// appendRune appends r's UTF-8 encoding to dst without pulling in
// unicode/utf8, matching this package's preference for small hand-rolled
// encoders on the string hot path (see AppendQuotedString's counterpart).
func appendRune(dst []byte, r rune) []byte {
	switch {
	case r < 0x80:
		return append(dst, byte(r))
	case r < 0x800:
		return append(dst, byte(0xC0|(r>>6)), byte(0x80|(r&0x3F)))
	case r < 0x10000:
		return append(dst, byte(0xE0|(r>>12)), byte(0x80|((r>>6)&0x3F)), byte(0x80|(r&0x3F)))
	default:
		return append(dst, byte(0xF0|(r>>18)), byte(0x80|((r>>12)&0x3F)), byte(0x80|((r>>6)&0x3F)), byte(0x80|(r&0x3F)))
	}
}

func quoteByte(c byte) string {
	if c >= 0x20 && c < 0x7F {
		return fmt.Sprintf("%q", string(c))
	}
	return fmt.Sprintf("0x%02x", c)
}

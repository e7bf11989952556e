// Package dfa implements the two table-driven state machines that carry the
// grammar of this library: an encoder DFA that turns arbitrary bytes into a
// quoted, escaped, UTF-8-validated JSON string, and a parser DFA (parser.go)
// that recognizes JSON tokens while simultaneously validating UTF-8.
package dfa

import "sync"

// Encoder actions. Values 0-9 double as both the encoder's transition target
// for "boundary" states and the action a caller performs when the DFA lands
// on one of them: this mirrors the original state table, where a byte in
// state 0 transitions directly to its own action code.
const (
	ActCopy       = 0 // copy input byte verbatim
	ActControl    = 1 // 0x00-0x1F: emit \u00HH
	ActQuote      = 2 // '"' -> \"
	ActBackslash  = 3 // '\\' -> \\
	ActBackspace  = 4 // \b
	ActFormFeed   = 5 // \f
	ActNewline    = 6 // \n
	ActCarriage   = 7 // \r
	ActTab        = 8 // \t
	ActInvalidUTF = 9 // invalid byte, emit replacement escape
)

// EncoderStates is the number of rows in the encoder's state table.
const EncoderStates = 23

// HexDigits maps a nibble (0-15) to its lowercase hex character, precomputed
// once as a hex nibble map.
var HexDigits [16]byte

var encoderTable [256 * EncoderStates]byte

// Base64 standard-alphabet tables: hand-built rather than
// reused from encoding/base64 so the wire-format codec is table-driven like
// the rest of the core.
var (
	B64Encode [64]byte
	B64Decode [256]byte
)

var encoderOnce sync.Once

// EncoderTransition returns the encoder DFA's next state (and, when it is
// <= ActInvalidUTF, the action to perform) for the given (state, byte) pair.
func EncoderTransition(state int, b byte) byte {
	encoderOnce.Do(initEncoder)
	return encoderTable[int(b)+256*state]
}

func setEscapable(state int) {
	for i := 0; i <= 31; i++ {
		encoderTable[i+256*state] = ActControl
	}
	encoderTable[int('"')+256*state] = ActQuote
	encoderTable[int('\\')+256*state] = ActBackslash
	encoderTable[int('\b')+256*state] = ActBackspace
	encoderTable[int('\f')+256*state] = ActFormFeed
	encoderTable[int('\n')+256*state] = ActNewline
	encoderTable[int('\r')+256*state] = ActCarriage
	encoderTable[int('\t')+256*state] = ActTab
}

func copyTransitions(from, to int) {
	for i := 0; i <= 255; i++ {
		encoderTable[i+256*to] = encoderTable[i+256*from]
	}
}

// initEncoder builds the 23-state encoder table and the hex/base64 lookup
// tables, following exactly the byte-range construction of the original
// Encoder::initialize (control chars and named escapes at state 0; UTF-8
// 2/3/4-byte continuation ranges at states 10-22; invalid-byte ranges routed
// to state 9; boundary states 1-9,11,16,22 given copies of state 0's row so
// that finishing a special-character or a validated sequence resumes as
// though scanning had restarted).
func initEncoder() {
	for i := 0; i <= 9; i++ {
		HexDigits[i] = byte(i) + '0'
	}
	for i := 10; i <= 15; i++ {
		HexDigits[i] = byte(i-10) + 'a'
	}

	setEscapable(0)

	for i := 128; i <= 193; i++ {
		encoderTable[i] = ActInvalidUTF
	}
	for i := 245; i <= 255; i++ {
		encoderTable[i] = ActInvalidUTF
	}

	// UTF-8 2-byte lead.
	for i := 194; i <= 223; i++ {
		encoderTable[i] = 10
	}

	// UTF-8 3-byte: E0 A0-BF | E1-EC tail tail | ED 80-9F tail | EE-EF tail tail
	encoderTable[224] = 12
	for i := 160; i <= 191; i++ {
		encoderTable[i+256*12] = 15
	}
	for i := 225; i <= 236; i++ {
		encoderTable[i] = 13
	}
	encoderTable[238] = 13
	encoderTable[239] = 13
	encoderTable[237] = 14
	for i := 128; i <= 159; i++ {
		encoderTable[i+256*14] = 15
	}

	// UTF-8 4-byte: F0 90-BF tail tail | F1-F3 tail tail tail | F4 80-8F tail tail
	encoderTable[240] = 17
	for i := 144; i <= 191; i++ {
		encoderTable[i+256*17] = 20
	}
	encoderTable[241] = 18
	encoderTable[242] = 18
	encoderTable[243] = 18
	encoderTable[244] = 19
	for i := 128; i <= 143; i++ {
		encoderTable[i+256*19] = 20
	}

	// Trailing continuation bytes for the "known good so far" paths.
	for i := 128; i <= 191; i++ {
		encoderTable[i+256*10] = 11
		encoderTable[i+256*13] = 15
		encoderTable[i+256*15] = 16
		encoderTable[i+256*18] = 20
		encoderTable[i+256*20] = 21
		encoderTable[i+256*21] = 22
	}

	// Invalid continuations fall back to escaping.
	setEscapable(12)
	for i := 128; i <= 159; i++ {
		encoderTable[i+256*12] = ActInvalidUTF
	}
	for i := 192; i <= 255; i++ {
		encoderTable[i+256*12] = ActInvalidUTF
	}
	setEscapable(14)
	for i := 160; i <= 255; i++ {
		encoderTable[i+256*14] = ActInvalidUTF
	}
	setEscapable(17)
	for i := 128; i <= 143; i++ {
		encoderTable[i+256*17] = ActInvalidUTF
	}
	for i := 192; i <= 255; i++ {
		encoderTable[i+256*17] = ActInvalidUTF
	}
	setEscapable(19)
	for i := 144; i <= 255; i++ {
		encoderTable[i+256*19] = ActInvalidUTF
	}
	setEscapable(10)
	setEscapable(13)
	setEscapable(15)
	setEscapable(18)
	setEscapable(20)
	setEscapable(21)
	for i := 192; i <= 255; i++ {
		encoderTable[i+256*10] = ActInvalidUTF
		encoderTable[i+256*13] = ActInvalidUTF
		encoderTable[i+256*15] = ActInvalidUTF
		encoderTable[i+256*18] = ActInvalidUTF
		encoderTable[i+256*20] = ActInvalidUTF
		encoderTable[i+256*21] = ActInvalidUTF
	}

	// Boundary states behave exactly like state 0 once their special
	// character or validated sequence has been fully handled.
	for _, s := range []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 11, 16, 22} {
		copyTransitions(0, s)
	}

	for i := 0; i < 26; i++ {
		B64Encode[i] = byte(i) + 'A'
		B64Decode[byte(i)+'A'] = byte(i)
	}
	for i := 26; i < 52; i++ {
		B64Encode[i] = byte(i) + 71
		B64Decode[byte(i)+71] = byte(i)
	}
	for i := 52; i < 62; i++ {
		B64Encode[i] = byte(i) - 4
		B64Decode[byte(i)-4] = byte(i)
	}
	B64Encode[62] = '+'
	B64Decode['+'] = 62
	B64Encode[63] = '/'
	B64Decode['/'] = 63
}

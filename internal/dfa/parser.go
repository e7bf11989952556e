package dfa

import "sync"

// ParserStates is the number of rows in the parser's state table.
const ParserStates = 69

// Failure and entry states, named for readability at call sites.
const (
	StateFail  = 0
	StateEntry = 1
)

// Accepting value states: reaching one of these means a
// scalar value (or, via the container states below, a completed array or
// object) has just finished and is ready to be attached to its parent.
const (
	StateNullDone  = 5
	StateFalseDone = 10
	StateTrueDone  = 14

	StateZero        = 15
	StateIntDigit    = 16
	StateNegZero     = 18
	StateDigits      = 19
	StateFracDigits  = 21
	StateExpDigits   = 23

	StateStringOpen  = 25
	StateStringBody  = 26
	StateStringClose = 27
	StateEscape      = 28

	// \uXXXX subtree terminating states, grouped by resulting UTF-8 byte
	// count (see the comment in initParser for the derivation).
	StateHex1Byte = 46
	StateHex2Byte = 47
	StateHex3Byte = 48

	StateUTF8StringDone = 52 // 2/3/4-byte UTF-8 sequence inside a string, validated

	StateArrayOpen       = 57
	StateArrayEmptyClose = 58
	StateArrayClose      = 59
	StateComma           = 60
	StateObjectOpen      = 61
	StateObjectEmptyClose = 62
	StateObjectClose     = 63
	StateObjectCommaKey  = 64
	StateColon           = 65
	StateWSBeforeKey     = 66
	StateWSAfterKeyStr   = 67
	StateWSAfterValue    = 68
)

// ValueAcceptingStates lists every state from which a scalar value is
// materialized directly from the parser's scratch buffer.
var ValueAcceptingStates = map[int]bool{
	StateNullDone: true, StateFalseDone: true, StateTrueDone: true,
	StateZero: true, StateIntDigit: true, StateNegZero: true,
	StateDigits: true, StateFracDigits: true, StateExpDigits: true,
	StateStringClose: true,
}

var (
	parserTable    [256 * ParserStates]byte
	incompleteMap  [ParserStates]bool
	hexValueOfByte [256]byte
	parserOnce     sync.Once
)

// ParserTransition returns the parser DFA's next state for (state, byte).
func ParserTransition(state int, b byte) byte {
	parserOnce.Do(initParser)
	return parserTable[int(b)+256*state]
}

// IsAccepting reports whether end-of-input at state is a complete parse
// (modulo the container stack being empty, which the caller tracks).
func IsAccepting(state int) bool {
	parserOnce.Do(initParser)
	return !incompleteMap[state]
}

// HexValue returns the 0-15 value of an ASCII hex digit; callers must only
// invoke this once the DFA has already confirmed b is a hex digit.
func HexValue(b byte) byte {
	parserOnce.Do(initParser)
	return hexValueOfByte[b]
}

func setWhitespace(at, next int) {
	parserTable[int('\t')+256*at] = byte(next)
	parserTable[int('\n')+256*at] = byte(next)
	parserTable[int('\r')+256*at] = byte(next)
	parserTable[int(' ')+256*at] = byte(next)
}

func copyParserTransitions(from, to int) {
	for i := 0; i <= 255; i++ {
		parserTable[i+256*to] = parserTable[i+256*from]
	}
}

// initParser builds the 69-state table exactly as derived from the
// reference Parser::initialize: literal keywords, numbers, strings (with
// the \uXXXX subtree and UTF-8-in-string validation), containers, and
// whitespace wiring.
func initParser() {
	for i := range incompleteMap {
		incompleteMap[i] = true
	}

	for i := byte('0'); i <= '9'; i++ {
		hexValueOfByte[i] = i - '0'
	}
	for i := byte('A'); i <= 'F'; i++ {
		hexValueOfByte[i] = i - 55
	}
	for i := byte('a'); i <= 'f'; i++ {
		hexValueOfByte[i] = i - 87
	}

	set := func(c byte, at, next int) { parserTable[int(c)+256*at] = byte(next) }
	setRange := func(lo, hi byte, at, next int) {
		for i := lo; i <= hi; i++ {
			set(i, at, next)
		}
	}

	// null
	set('n', StateEntry, 2)
	set('u', 2, 3)
	set('l', 3, 4)
	set('l', 4, 5)
	incompleteMap[5] = false
	// false
	set('f', StateEntry, 6)
	set('a', 6, 7)
	set('l', 7, 8)
	set('s', 8, 9)
	set('e', 9, 10)
	incompleteMap[10] = false
	// true
	set('t', StateEntry, 11)
	set('r', 11, 12)
	set('u', 12, 13)
	set('e', 13, 14)
	incompleteMap[14] = false

	// numbers
	set('0', StateEntry, 15)
	incompleteMap[15] = false
	setRange('1', '9', StateEntry, 16)
	incompleteMap[16] = false
	set('-', StateEntry, 17)
	setRange('0', '9', 16, 19)
	incompleteMap[19] = false
	setRange('0', '9', 19, 19)
	set('0', 17, 18)
	incompleteMap[18] = false
	setRange('1', '9', 17, 19)
	set('.', 15, 20)
	set('.', 16, 20)
	set('.', 18, 20)
	set('.', 19, 20)
	setRange('0', '9', 20, 21)
	incompleteMap[21] = false
	setRange('0', '9', 21, 21)
	set('E', 15, 22)
	set('e', 15, 22)
	set('E', 16, 22)
	set('e', 16, 22)
	set('E', 18, 22)
	set('e', 18, 22)
	set('E', 19, 22)
	set('e', 19, 22)
	set('E', 21, 22)
	set('e', 21, 22)
	setRange('0', '9', 22, 23)
	incompleteMap[23] = false
	set('+', 22, 24)
	set('-', 22, 24)
	setRange('0', '9', 23, 23)
	setRange('0', '9', 24, 23)

	// strings
	set('"', StateEntry, 25)
	set('"', 26, 27)
	incompleteMap[27] = false
	set('\\', 26, 28)
	for i := byte(32); i <= 127; i++ {
		if i != '"' && i != '\\' {
			set(i, 26, 26)
		}
	}
	set('"', 28, 29)
	set('\\', 28, 30)
	set('/', 28, 31)
	set('b', 28, 32)
	set('f', 28, 33)
	set('n', 28, 34)
	set('r', 28, 35)
	set('t', 28, 36)

	// \uXXXX subtree: branch purely on the digit, so the byte count of the
	// resulting UTF-8 sequence is determined by which terminal state (46,
	// 47, 48) is reached, with no branching needed in the action code.
	set('u', 28, 37)
	hexDigits := func() []byte {
		var d []byte
		for c := byte('0'); c <= '9'; c++ {
			d = append(d, c)
		}
		for c := byte('A'); c <= 'F'; c++ {
			d = append(d, c)
		}
		for c := byte('a'); c <= 'f'; c++ {
			d = append(d, c)
		}
		return d
	}()
	for _, c := range hexDigits {
		set(c, 37, 39)
		set(c, 39, 40)
		set(c, 40, 45)
		set(c, 41, 43)
		set(c, 43, 47)
		set(c, 44, 46)
		set(c, 45, 48)
	}
	set('0', 37, 38) // only '0' branches differently at state 37
	for c := byte('0'); c <= '7'; c++ {
		set(c, 38, 41)
		set(c, 42, 44)
	}
	set('0', 38, 42) // only '0' branches differently at state 38
	set('8', 38, 40)
	set('8', 42, 43)
	set('9', 38, 40)
	set('9', 42, 43)
	setRange('A', 'F', 38, 40)
	setRange('A', 'F', 42, 43)
	setRange('a', 'f', 38, 40)
	setRange('a', 'f', 42, 43)

	// UTF-8 validation inside a string body (mirrors the encoder's
	// grammar, but accepts-and-continues instead of escaping).
	setRange(194, 223, 26, 49)
	setRange(128, 191, 49, 52)

	set(224, 26, 53)
	setRange(160, 191, 53, 49)

	setRange(225, 236, 26, 50)
	set(238, 26, 50)
	set(239, 26, 50)
	setRange(128, 191, 50, 49)

	set(237, 26, 54)
	setRange(128, 159, 54, 49)

	set(240, 26, 55)
	setRange(144, 191, 55, 50)

	set(241, 26, 51)
	set(242, 26, 51)
	set(243, 26, 51)
	setRange(128, 191, 51, 50)

	set(244, 26, 56)
	setRange(128, 143, 56, 50)

	// States that merely resume string-body scanning after handling a
	// special case behave exactly like state 26.
	for _, s := range []int{25, 29, 30, 31, 32, 33, 34, 35, 36, 46, 47, 48, 52} {
		copyParserTransitions(26, s)
	}

	// Whitespace and containers.
	setWhitespace(StateEntry, StateEntry)

	set('[', StateEntry, StateArrayOpen)
	incompleteMap[StateArrayEmptyClose] = false
	incompleteMap[StateArrayClose] = false
	set('{', StateEntry, StateObjectOpen)
	set('}', StateObjectOpen, StateObjectEmptyClose)
	incompleteMap[StateObjectEmptyClose] = false
	incompleteMap[StateObjectClose] = false
	set('"', StateObjectOpen, StateStringOpen)
	set('"', StateObjectCommaKey, StateStringOpen)
	set('"', StateWSBeforeKey, StateStringOpen)
	setWhitespace(StateObjectOpen, StateWSBeforeKey)
	setWhitespace(StateObjectCommaKey, StateWSBeforeKey)
	setWhitespace(StateWSBeforeKey, StateWSBeforeKey)
	set(':', StateStringClose, StateColon)
	set(':', StateWSAfterKeyStr, StateColon)
	setWhitespace(StateStringClose, StateWSAfterKeyStr)
	setWhitespace(StateWSAfterKeyStr, StateWSAfterKeyStr)
	incompleteMap[StateWSAfterKeyStr] = false

	copyParserTransitions(StateEntry, StateArrayOpen)
	set(']', StateArrayOpen, StateArrayEmptyClose)
	copyParserTransitions(StateEntry, StateComma)
	copyParserTransitions(StateEntry, StateColon)
	incompleteMap[StateWSAfterValue] = false

	for i := 0; i < ParserStates; i++ {
		if !incompleteMap[i] {
			set(']', i, StateArrayClose)
			set(',', i, StateComma)
			set('}', i, StateObjectClose)
			if i != StateStringClose && i != StateWSAfterKeyStr {
				setWhitespace(i, StateWSAfterValue)
			}
		}
	}
}

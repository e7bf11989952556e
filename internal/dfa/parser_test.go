package dfa

import "testing"

func run(state int, s string) int {
	for i := 0; i < len(s); i++ {
		state = int(ParserTransition(state, s[i]))
		if state == StateFail {
			return StateFail
		}
	}
	return state
}

func TestParserLiterals(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"null", StateNullDone},
		{"true", StateTrueDone},
		{"false", StateFalseDone},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got := run(StateEntry, c.in)
			if got != c.want {
				t.Errorf("run(%q) = %d, want %d", c.in, got, c.want)
			}
			if !IsAccepting(got) {
				t.Errorf("state %d not accepting after %q", got, c.in)
			}
		})
	}
}

func TestParserNumbers(t *testing.T) {
	cases := []struct {
		in        string
		wantState int
	}{
		{"0", StateZero},
		{"-0", StateNegZero},
		{"123", StateDigits},
		{"-42", StateDigits},
		{"1.5", StateFracDigits},
		{"1e10", StateExpDigits},
		{"1E+10", StateExpDigits},
		{"1.5e-10", StateExpDigits},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got := run(StateEntry, c.in)
			if got != c.wantState {
				t.Errorf("run(%q) = %d, want %d", c.in, got, c.wantState)
			}
			if !ValueAcceptingStates[got] {
				t.Errorf("state %d for %q is not value-accepting", got, c.in)
			}
		})
	}
}

func TestParserInvalidNumbers(t *testing.T) {
	cases := []string{"01", "-", "1.", ".5", "1e", "1e+", "--1"}
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			// Rejected either by reaching StateFail or by ending in a
			// non-accepting (incomplete) state.
			if got := run(StateEntry, in); got != StateFail && IsAccepting(got) {
				t.Errorf("run(%q) = %d, an accepting state; want StateFail or an incomplete state", in, got)
			}
		})
	}
}

func TestParserEmptyString(t *testing.T) {
	// entry '"' -> StringOpen; closing '"' from StringOpen must behave like
	// closing from StringBody, since StringOpen is a copy of StringBody's row.
	state := int(ParserTransition(StateEntry, '"'))
	if state != StateStringOpen {
		t.Fatalf("after opening quote: state=%d, want StateStringOpen", state)
	}
	state = int(ParserTransition(state, '"'))
	if state != StateStringClose {
		t.Fatalf("after empty string close: state=%d, want StateStringClose", state)
	}
}

func TestParserStringWithEscape(t *testing.T) {
	got := run(StateEntry, `"a\nb"`)
	if got != StateStringClose {
		t.Fatalf("run = %d, want StateStringClose", got)
	}
}

func TestParserUnicodeEscape(t *testing.T) {
	// \u0041 resolves to a 1-byte UTF-8 unit (StateHex1Byte); closing the
	// string right after it must still work, since StateHex1Byte is one of
	// the states copied from StateStringBody's row.
	got := run(StateEntry, "\"\\u0041\"")
	if got != StateStringClose {
		t.Fatalf("run = %d, want StateStringClose", got)
	}
}

func TestParserContainers(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"[]", StateArrayEmptyClose},
		{"{}", StateObjectEmptyClose},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := run(StateEntry, c.in); got != c.want {
				t.Errorf("run(%q) = %d, want %d", c.in, got, c.want)
			}
		})
	}
}

func TestHexValue(t *testing.T) {
	cases := map[byte]byte{
		'0': 0, '9': 9, 'a': 10, 'f': 15, 'A': 10, 'F': 15,
	}
	for b, want := range cases {
		if got := HexValue(b); got != want {
			t.Errorf("HexValue(%q) = %d, want %d", b, got, want)
		}
	}
}

func TestIsAcceptingWhitespaceLoop(t *testing.T) {
	// State 68 (WSAfterValue) must self-loop on whitespace and stay accepting.
	state := run(StateEntry, "0")
	state = int(ParserTransition(state, ' '))
	if state != StateWSAfterValue {
		t.Fatalf("after trailing space: state=%d, want StateWSAfterValue", state)
	}
	if !IsAccepting(state) {
		t.Errorf("StateWSAfterValue should be accepting")
	}
	state2 := int(ParserTransition(state, ' '))
	if state2 != StateWSAfterValue {
		t.Errorf("whitespace should self-loop, got %d", state2)
	}
}

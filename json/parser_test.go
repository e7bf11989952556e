package json

import "testing"

func TestParseScalars(t *testing.T) {
	cases := []struct {
		in   string
		kind Kind
	}{
		{"null", KindNull},
		{"true", KindBool},
		{"false", KindBool},
		{"0", KindNumber},
		{"-42", KindNumber},
		{"3.14", KindNumber},
		{"1e10", KindNumber},
		{`"hello"`, KindString},
		{"[]", KindArray},
		{"{}", KindObject},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			v := Parse(c.in)
			if v.IsError() {
				t.Fatalf("Parse(%q) returned error: %s", c.in, v.ErrorText())
			}
			if v.Kind() != c.kind {
				t.Errorf("Parse(%q).Kind() = %v, want %v", c.in, v.Kind(), c.kind)
			}
		})
	}
}

func TestParseNestedDocument(t *testing.T) {
	v := Parse(`{"name":"yak","tags":["a","b"],"meta":{"active":true,"count":3}}`)
	if v.IsError() {
		t.Fatalf("unexpected error: %s", v.ErrorText())
	}
	if got := v.Get("name").MustString(); got != "yak" {
		t.Errorf("name = %q, want yak", got)
	}
	if got := v.Get("tags", "1").MustString(); got != "b" {
		t.Errorf("tags.1 = %q, want b", got)
	}
	if got := v.Get("meta", "active").MustBool(); got != true {
		t.Errorf("meta.active = %v, want true", got)
	}
	if got := v.Get("meta", "count").MustNumber(); got != "3" {
		t.Errorf("meta.count = %q, want \"3\"", got)
	}
}

func TestParseStringEscapes(t *testing.T) {
	v := Parse(`"a\nb\tc\"d\\e"`)
	if v.IsError() {
		t.Fatalf("unexpected error: %s", v.ErrorText())
	}
	want := "a\nb\tc\"d\\e"
	if got := v.MustString(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseUnicodeEscape(t *testing.T) {
	v := Parse(`"A\` + `u00e9"`)
	if v.IsError() {
		t.Fatalf("unexpected error: %s", v.ErrorText())
	}
	want := "Aé"
	if got := v.MustString(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseSurrogatePair(t *testing.T) {
	// U+1F600 GRINNING FACE, encoded as a UTF-16 surrogate pair.
	v := Parse(`"\` + `ud83d\` + `ude00"`)
	if v.IsError() {
		t.Fatalf("unexpected error: %s", v.ErrorText())
	}
	want := "\U0001F600"
	if got := v.MustString(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseUnpairedSurrogateFails(t *testing.T) {
	v := Parse(`"\ud83d"`)
	if !v.IsError() {
		t.Fatalf("expected error for unpaired surrogate, got %v", v.Kind())
	}
}

func TestParseInvalidSyntax(t *testing.T) {
	cases := []string{
		``,
		`{`,
		`[1,2,`,
		`{"a":}`,
		`tru`,
		`01`,
		`{"a":1}{"b":2}`,
		`[1,]`,
		`{"a":1,"b"}`,
		`{"a","b":2}`,
		`["a":1]`,
	}
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			v := Parse(in)
			if !v.IsError() {
				t.Errorf("Parse(%q) did not fail, got kind %v", in, v.Kind())
			}
		})
	}
}

func TestParseNeverPanics(t *testing.T) {
	// Parse must report malformed input as an Error value, never panic.
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Parse panicked: %v", r)
		}
	}()
	for _, in := range []string{"", "{", "]", `"unterminated`, "\x00\x01", "{{{{{{", `{"a","b":2}`} {
		Parse(in)
	}
}

func TestParseDepthLimit(t *testing.T) {
	deep := make([]byte, 0, (MaxDepth+10)*2)
	for i := 0; i < MaxDepth+10; i++ {
		deep = append(deep, '[')
	}
	v := ParseBytes(deep)
	if !v.IsError() {
		t.Errorf("expected depth-limit error, got %v", v.Kind())
	}
}

func TestParserPoolRoundTrip(t *testing.T) {
	p := AcquireParser()
	defer ReleaseParser(p)

	v := p.Parse(`{"a":1}`)
	if v.IsError() {
		t.Fatalf("unexpected error: %s", v.ErrorText())
	}
	if v.Get("a").MustNumber() != "1" {
		t.Errorf("a = %q, want \"1\"", v.Get("a").MustNumber())
	}

	// Reusing the same Parser for a second, independent parse must not leak
	// state from the first (container stack reset, scratch buffer reset).
	v2 := p.Parse(`[1,2,3]`)
	if v2.IsError() {
		t.Fatalf("second parse failed: %s", v2.ErrorText())
	}
	if v2.ArrayLen() != 3 {
		t.Errorf("second parse ArrayLen() = %d, want 3", v2.ArrayLen())
	}
}

func TestRoundTripEncodeParse(t *testing.T) {
	originals := []string{
		`{"a":1,"b":[1,2,3],"c":{"d":true,"e":null},"f":"text"}`,
		`[]`,
		`{}`,
		`"simple string"`,
		`-12.5e3`,
	}
	for _, in := range originals {
		t.Run(in, func(t *testing.T) {
			v := Parse(in)
			if v.IsError() {
				t.Fatalf("Parse(%q) failed: %s", in, v.ErrorText())
			}
			out := ToJSON(v)
			v2 := ParseBytes(out)
			if v2.IsError() {
				t.Fatalf("re-parsing encoded output failed: %s", v2.ErrorText())
			}
			if !v.Equal(v2) {
				t.Errorf("round trip not equal: %s != %s", in, out)
			}
		})
	}
}

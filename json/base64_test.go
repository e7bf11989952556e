package json

import (
	"bytes"
	"testing"
)

func TestBase64RoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte(""),
		[]byte("f"),
		[]byte("fo"),
		[]byte("foo"),
		[]byte("foob"),
		[]byte("fooba"),
		[]byte("foobar"),
		[]byte("hello, world! this is a longer payload to cross multiple groups of three"),
	}
	for _, in := range cases {
		enc := EncodeBase64(in)
		dec, err := DecodeBase64(enc)
		if err != nil {
			t.Fatalf("DecodeBase64(EncodeBase64(%q)) error: %v", in, err)
		}
		if !bytes.Equal(dec, in) && !(len(dec) == 0 && len(in) == 0) {
			t.Errorf("round trip mismatch: got %q, want %q", dec, in)
		}
	}
}

func TestBase64KnownVectors(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"f", "Zg=="},
		{"fo", "Zm8="},
		{"foo", "Zm9v"},
		{"foob", "Zm9vYg=="},
		{"fooba", "Zm9vYmE="},
		{"foobar", "Zm9vYmFy"},
	}
	for _, c := range cases {
		got := string(EncodeBase64([]byte(c.in)))
		if got != c.want {
			t.Errorf("EncodeBase64(%q) = %q, want %q", c.in, got, c.want)
		}
		dec, err := DecodeBase64([]byte(c.want))
		if err != nil {
			t.Fatalf("DecodeBase64(%q) error: %v", c.want, err)
		}
		if string(dec) != c.in {
			t.Errorf("DecodeBase64(%q) = %q, want %q", c.want, dec, c.in)
		}
	}
}

func TestBase64InvalidLength(t *testing.T) {
	if _, err := DecodeBase64([]byte("abc")); err == nil {
		t.Errorf("expected error for input length not a multiple of 4")
	}
}

func TestBase64InvalidByte(t *testing.T) {
	if _, err := DecodeBase64([]byte("ab!=")); err == nil {
		t.Errorf("expected error for invalid alphabet byte")
	}
}

func TestBase64GarbageAfterPadding(t *testing.T) {
	// A '=' followed by a non-padding byte ("Zm=a") must be rejected, not
	// silently truncated.
	if _, err := DecodeBase64([]byte("Zm=a")); err == nil {
		t.Errorf("expected error for non-padding byte following '='")
	}
}

func TestBase64TruncatedGroup(t *testing.T) {
	if _, err := DecodeBase64([]byte("a===")); err == nil {
		t.Errorf("expected error for a lone data byte before all-padding")
	}
}

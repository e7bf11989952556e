package json

import (
	"fmt"

	"github.com/uniyakcom/jsonvalue/internal/dfa"
)

// EncodeBase64 encodes b using the standard base64 alphabet, table-driven
// via internal/dfa rather than encoding/base64, so the wire-format codec
// shares its table construction with the rest of the core.
func EncodeBase64(b []byte) []byte {
	// Any encoder lookup builds the dfa tables, B64Encode included.
	_ = dfa.EncoderTransition(0, 0)
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, (len(b)+2)/3*4)
	pos := 0
	i := 0
	for ; i+3 <= len(b); i += 3 {
		n := uint32(b[i])<<16 | uint32(b[i+1])<<8 | uint32(b[i+2])
		out[pos] = dfa.B64Encode[(n>>18)&0x3F]
		out[pos+1] = dfa.B64Encode[(n>>12)&0x3F]
		out[pos+2] = dfa.B64Encode[(n>>6)&0x3F]
		out[pos+3] = dfa.B64Encode[n&0x3F]
		pos += 4
	}
	switch len(b) - i {
	case 1:
		n := uint32(b[i]) << 16
		out[pos] = dfa.B64Encode[(n>>18)&0x3F]
		out[pos+1] = dfa.B64Encode[(n>>12)&0x3F]
		out[pos+2] = '='
		out[pos+3] = '='
	case 2:
		n := uint32(b[i])<<16 | uint32(b[i+1])<<8
		out[pos] = dfa.B64Encode[(n>>18)&0x3F]
		out[pos+1] = dfa.B64Encode[(n>>12)&0x3F]
		out[pos+2] = dfa.B64Encode[(n>>6)&0x3F]
		out[pos+3] = '='
	}
	return out
}

// DecodeBase64 decodes standard-alphabet base64 text, rejecting anything
// outside the 64-entry alphabet plus '=' padding.
func DecodeBase64(s []byte) ([]byte, error) {
	// Any encoder lookup builds the dfa tables, B64Decode included.
	_ = dfa.EncoderTransition(0, 0)
	if len(s)%4 != 0 {
		return nil, fmt.Errorf("json: base64 input length %d is not a multiple of 4", len(s))
	}
	out := make([]byte, 0, len(s)/4*3)
	var buf [4]byte
	bi := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '=' {
			for _, pad := range s[i:] {
				if pad != '=' {
					return nil, fmt.Errorf("json: non-padding byte %q after '=' at offset %d", pad, i)
				}
			}
			break
		}
		v := dfa.B64Decode[c]
		if v == 0 && c != 'A' {
			return nil, fmt.Errorf("json: invalid base64 byte %q at offset %d", c, i)
		}
		buf[bi] = v
		bi++
		if bi == 4 {
			out = append(out, buf[0]<<2|buf[1]>>4, buf[1]<<4|buf[2]>>2, buf[2]<<6|buf[3])
			bi = 0
		}
	}
	switch bi {
	case 0:
	case 2:
		out = append(out, buf[0]<<2|buf[1]>>4)
	case 3:
		out = append(out, buf[0]<<2|buf[1]>>4, buf[1]<<4|buf[2]>>2)
	default:
		return nil, fmt.Errorf("json: truncated base64 input")
	}
	return out, nil
}

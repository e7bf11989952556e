package dfa

// AppendQuotedString scans src byte-by-byte through the encoder DFA and
// appends a JSON string literal (including surrounding quotes) to dst.
// Never fails: bytes that cannot form valid UTF-8 are individually replaced
// by the Unicode replacement character's � escape; the DFA guarantees
// exactly 23 states are enough to track "how many pending bytes of an
// unresolved multi-byte sequence are buffered so far" (at most 3).
func AppendQuotedString(dst []byte, src string) []byte {
	dst = append(dst, '"')
	state := 0
	var pending [3]byte
	n := 0

	for i := 0; i < len(src); i++ {
		c := src[i]
		next := EncoderTransition(state, c)
		switch next {
		case 11, 16, 22:
			// Sequence just completed validly: the buffered lead/tail
			// bytes plus this one all copy through verbatim.
			dst = append(dst, pending[:n]...)
			dst = append(dst, c)
			n = 0
			state = int(next)
		default:
			if next <= ActInvalidUTF {
				if n > 0 {
					// The buffered bytes never completed a valid
					// sequence: each is individually invalid.
					for j := 0; j < n; j++ {
						dst = appendReplacement(dst)
					}
					n = 0
					// Restart at state 0 with the current byte, which
					// may itself begin a new multi-byte sequence.
					next = EncoderTransition(0, c)
					if next > ActInvalidUTF {
						pending[0] = c
						n = 1
						state = int(next)
						continue
					}
				}
				dst = appendAction(dst, next, c)
				state = int(next)
			} else {
				// Still mid multi-byte sequence; keep buffering.
				pending[n] = c
				n++
				state = int(next)
			}
		}
	}
	// Truncated trailing sequence: every buffered byte is invalid alone.
	for j := 0; j < n; j++ {
		dst = appendReplacement(dst)
	}
	dst = append(dst, '"')
	return dst
}

func appendAction(dst []byte, action byte, c byte) []byte {
	switch action {
	case ActCopy:
		return append(dst, c)
	case ActControl:
		return append(dst, '\\', 'u', '0', '0', HexDigits[c>>4], HexDigits[c&0xF])
	case ActQuote:
		return append(dst, '\\', '"')
	case ActBackslash:
		return append(dst, '\\', '\\')
	case ActBackspace:
		return append(dst, '\\', 'b')
	case ActFormFeed:
		return append(dst, '\\', 'f')
	case ActNewline:
		return append(dst, '\\', 'n')
	case ActCarriage:
		return append(dst, '\\', 'r')
	case ActTab:
		return append(dst, '\\', 't')
	default: // ActInvalidUTF
		return appendReplacement(dst)
	}
}

func appendReplacement(dst []byte) []byte {
	return append(dst, '\\', 'u', 'f', 'f', 'f', 'd')
}

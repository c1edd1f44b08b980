package lexer

import "strings"

// Normalize implements the line normalizer (spec §4.1): every CRLF or lone
// CR becomes LF, and every backslash immediately followed by a newline is
// removed along with that newline. It performs no other edits and is
// idempotent on its own output.
func Normalize(src []byte) []byte {
	var crlf strings.Builder
	crlf.Grow(len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\r' && i+1 < len(src) && src[i+1] == '\n':
			continue
		case c == '\r':
			crlf.WriteByte('\n')
		default:
			crlf.WriteByte(c)
		}
	}
	t := crlf.String()

	var out strings.Builder
	out.Grow(len(t))
	for i := 0; i < len(t); i++ {
		if t[i] == '\\' && i+1 < len(t) && t[i+1] == '\n' {
			i++
			continue
		}
		out.WriteByte(t[i])
	}
	return []byte(out.String())
}

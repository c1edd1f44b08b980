// Package emit renders the rewritten token stream back to C++ text
// (spec §4.9). It makes no attempt to preserve the input's original
// intra-line spacing.
package emit

import (
	"bytes"

	"cptrans/internal/token"
)

// Lines joins every line's tokens into text, one output line per non-empty
// input line. A Preprocessor token is always written on its own output
// line, so any tokens before or after it on the same input line form
// separate output lines. An empty line produces no output.
func Lines(lines [][]token.Token) []byte {
	var buf bytes.Buffer
	for _, line := range lines {
		emitLine(&buf, line)
	}
	return buf.Bytes()
}

func emitLine(buf *bytes.Buffer, toks []token.Token) {
	var cur []token.Token
	flush := func() {
		if len(cur) == 0 {
			return
		}
		writeTokens(buf, cur)
		buf.WriteByte('\n')
		cur = cur[:0]
	}
	for _, t := range toks {
		if t.Kind == token.Preprocessor {
			flush()
			writeTokens(buf, []token.Token{t})
			buf.WriteByte('\n')
			continue
		}
		cur = append(cur, t)
	}
	flush()
}

func writeTokens(buf *bytes.Buffer, toks []token.Token) {
	for i, t := range toks {
		if i > 0 && needsSpace(toks[i-1], t) {
			buf.WriteByte(' ')
		}
		buf.WriteString(t.Text)
	}
}

// needsSpace decides whether a space belongs between prev and next,
// per the no-space rules in spec §4.9.
func needsSpace(prev, next token.Token) bool {
	if next.Kind == token.Punct {
		switch next.Text {
		case ",", ")", "]", ";":
			return false
		case ".":
			return false
		}
	}
	if next.Kind == token.Operator && next.Text == "->" {
		return false
	}
	if prev.Kind == token.Punct {
		switch prev.Text {
		case "(", "[":
			return false
		case ".":
			return false
		}
	}
	if prev.Kind == token.Operator && prev.Text == "->" {
		return false
	}
	return true
}

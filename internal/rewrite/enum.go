// Package rewrite holds the token-stream editing passes that run after
// scope analysis: enum-body cleanup, type-block termination, line
// splitting, member-chain rewriting and semicolon insertion (spec §§4.4-4.8).
package rewrite

import "cptrans/internal/token"

// StripEnumSemicolons deletes every ';' token whose assigned scope has
// kind Enum (spec §4.4), so the input's own semicolons inside an enum body
// never terminate enumerators. Only ';' tokens are removed; enumerator
// '=' initializers are kept. The semicolon inserter, which runs later,
// never adds a ';' on an Enum-scoped line.
func StripEnumSemicolons(toks []token.Token, tree *token.Tree) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind == token.Punct && t.Text == ";" && tree.Kind(t.Scope) == token.Enum {
			continue
		}
		out = append(out, t)
	}
	return out
}

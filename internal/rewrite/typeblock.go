package rewrite

import "cptrans/internal/token"

// TerminateTypeBlocks appends ';' after every struct/union/enum body
// closer that has no declarator following it (spec §4.5). Running it on
// an already-terminated definition is a no-op: the lookahead already sees
// the existing ';' and declines to insert another.
func TerminateTypeBlocks(toks []token.Token, tree *token.Tree) []token.Token {
	out := make([]token.Token, 0, len(toks)+4)
	for i, t := range toks {
		out = append(out, t)
		if t.Kind != token.Punct || t.Text != "}" {
			continue
		}
		kind := tree.Kind(t.Scope)
		if kind != token.Struct && kind != token.Union && kind != token.Enum {
			continue
		}

		j := i + 1
		for j < len(toks) && toks[j].Kind == token.Preprocessor {
			j++
		}
		declaratorFollows := false
		if j < len(toks) {
			n := toks[j]
			declaratorFollows = n.Kind == token.Identifier ||
				(n.Kind == token.Operator && n.Text == "*") ||
				(n.Kind == token.Punct && (n.Text == "(" || n.Text == "[" || n.Text == ";"))
		}
		if !declaratorFollows {
			out = append(out, token.Token{Kind: token.Punct, Text: ";", Line: t.Line, Col: t.Col, Scope: t.Scope})
		}
	}
	return out
}

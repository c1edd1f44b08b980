package rewrite

import "cptrans/internal/token"

// RewriteMemberChains rewrites '.' into '->' or a '(*base)->' wrapping
// based on the effective pointer depth at each access, walking postfix
// '[...]' and '(...)' operators in between (spec §4.7). It operates on
// one physical line at a time, using scopeID to resolve identifiers via
// the scope tree built during analysis.
func RewriteMemberChains(line []token.Token, scopeID int, tree *token.Tree) []token.Token {
	out := append([]token.Token(nil), line...)

	for i := 0; i < len(out); i++ {
		if out[i].Kind != token.Identifier {
			continue
		}
		vi, found := tree.Resolve(scopeID, out[i].Text)
		if !found {
			continue
		}

		curPtr := vi.PointerLevel
		if curPtr == token.UnknownPointerLevel {
			curPtr = 0
		}
		curArr := vi.ArrayRank
		j := i + 1

		// Walk postfix [ ... ] and ( ... ), adjusting effective depth.
		for j < len(out) {
			if out[j].Is(token.Punct, "[") {
				k, ok := matchBracket(out, j, "[", "]")
				if !ok {
					break
				}
				if curArr > 0 {
					curArr--
				} else if curPtr > 0 {
					curPtr--
				}
				j = k + 1
				continue
			}
			if out[j].Is(token.Punct, "(") {
				k, ok := matchBracket(out, j, "(", ")")
				if !ok {
					break
				}
				j = k + 1
				continue
			}
			break
		}

		// Rewrite ". IDENT" segments in order based on the running depth.
		// A depth above 1 wraps the base once per excess level — '(*base)',
		// '(*(*base))', and so on — before the dot in front of the member
		// finally becomes '->' (spec §8, "pointer-depth rule").
		for j+1 < len(out) && out[j].Is(token.Punct, ".") && out[j+1].Kind == token.Identifier {
			if curPtr == 0 {
				j += 2
				continue
			}
			for curPtr > 1 {
				base := out[i]
				lpar := base
				lpar.Kind, lpar.Text = token.Punct, "("
				star := base
				star.Kind, star.Text = token.Operator, "*"
				rpar := out[j]
				rpar.Kind, rpar.Text = token.Punct, ")"

				out = insertAt(out, i, lpar)
				out = insertAt(out, i+1, star)
				j += 2
				out = insertAt(out, j, rpar)
				j++
				curPtr--
			}
			out[j].Kind = token.Operator
			out[j].Text = "->"
			j += 2
		}

		if j > 0 {
			i = j - 1
		}
	}
	return out
}

// matchBracket finds the index of the token matching the bracket at open
// (itself using openText/closeText), or ok=false if unbalanced.
func matchBracket(toks []token.Token, open int, openText, closeText string) (int, bool) {
	depth := 0
	for k := open; k < len(toks); k++ {
		switch {
		case toks[k].Is(token.Punct, openText):
			depth++
		case toks[k].Is(token.Punct, closeText):
			depth--
			if depth == 0 {
				return k, true
			}
		}
	}
	return 0, false
}

func insertAt(toks []token.Token, at int, t token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks)+1)
	out = append(out, toks[:at]...)
	out = append(out, t)
	out = append(out, toks[at:]...)
	return out
}

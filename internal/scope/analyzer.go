// Package scope builds the scope tree and per-scope variable tables that
// let the member-chain rewriter resolve pointer depth without a full
// parser (spec §4.3). It performs a single left-to-right walk of the
// token stream, mirroring the structure of the reference C+ analyzer.
package scope

import (
	"cptrans/internal/token"
)

// pending carries the (kind, name) pair the analyzer remembers between a
// scope-introducing construct and the next '{' (spec §3, "Pending-scope
// state"). A nil pending means "none observed" — the next '{' opens a
// plain Block. A pending pair not consumed by a '{' is dropped at the next
// ';' or '}'.
type pending struct {
	kind token.ScopeKind
	name string
}

type analyzer struct {
	toks   []token.Token
	tree   *token.Tree
	known  *KnownTypes
	cur    int
	pend   *pending
	params map[int][]token.Param // keyed by token index of the '{' it belongs to
}

// Analyze walks toks once, assigning each token's Scope field, growing
// known with typedef/tag observations, and returns the built scope tree
// with its per-scope variable tables. known is shared across every file
// processed in one invocation (spec §3, "known-type set persists").
func Analyze(toks []token.Token, known *KnownTypes) *token.Tree {
	a := &analyzer{
		toks:   toks,
		tree:   token.NewTree(),
		known:  known,
		cur:    0,
		params: make(map[int][]token.Param),
	}
	for i := range a.toks {
		a.step(i)
	}
	return a.tree
}

func (a *analyzer) step(i int) {
	a.toks[i].Scope = a.cur

	if a.isKeyword(i, "typedef") {
		a.observeTypedef(i)
	}
	if a.isKeyword(i, "struct") || a.isKeyword(i, "union") || a.isKeyword(i, "enum") {
		a.observeTag(i)
	}

	typeStart := a.isTypePosition(i)

	if typeStart {
		if iName, iLBrace, lp, rp, ok := a.looksLikeFuncSignature(i); ok && iLBrace != -1 {
			a.pend = &pending{kind: token.Function, name: a.toks[iName].Text}
			a.params[iLBrace] = a.parseParams(lp, rp)
		}
	}

	handled := false
	if typeStart {
		if _, _, _, _, ok := a.looksLikeFuncSignature(i); ok {
			// Handled at '{' via the params deposit above (or it is a
			// forward declaration with no body: nothing to declare).
		} else {
			handled = a.strictDeclaration(i)
		}
	}
	if !handled && a.toks[i].Kind == token.Identifier {
		a.relaxedDeclaration(i)
	}

	if a.toks[i].Is(token.Punct, "{") {
		a.openScope(i)
	}
	if a.toks[i].Is(token.Punct, "}") {
		a.closeScope()
	}
	if a.toks[i].Is(token.Punct, ";") {
		a.pend = nil
	}
}

func (a *analyzer) observeTypedef(i int) {
	last := -1
	for j := i + 1; j < len(a.toks) && !(a.toks[j].Kind == token.Punct && (a.toks[j].Text == ";" || a.toks[j].Text == "}")); j++ {
		if a.toks[j].Kind == token.Identifier {
			last = j
		}
	}
	if last != -1 {
		a.known.Add(a.toks[last].Text)
	}
}

func (a *analyzer) observeTag(i int) {
	var kind token.ScopeKind
	switch a.toks[i].Text {
	case "struct":
		kind = token.Struct
	case "enum":
		kind = token.Enum
	default:
		kind = token.Union
	}
	name := ""
	if i+1 < len(a.toks) && a.toks[i+1].Kind == token.Identifier {
		name = a.toks[i+1].Text
		a.known.Add(name)
	}
	a.pend = &pending{kind: kind, name: name}
}

func (a *analyzer) isTypePosition(i int) bool {
	t := a.toks[i]
	if t.Kind == token.Identifier && a.known.Has(t.Text) {
		return true
	}
	if t.Kind == token.Keyword && (IsBuiltinKeyword(t.Text) || t.Text == "struct" || t.Text == "union" || t.Text == "enum") {
		return true
	}
	return false
}

// looksLikeFuncSignature matches TYPE (keyword|*|&)* IDENT ( ... ) and, if
// a balanced ')' is found, reports whether a '{' (possibly after trailing
// modifiers) directly follows. It mirrors looks_like_func_signature in the
// reference implementation exactly, including returning ok=true even when
// no '{' follows (a forward declaration), so callers can distinguish
// "looks like a function at all" from "has a body".
func (a *analyzer) looksLikeFuncSignature(iType int) (iName, iLBrace, lp, rp int, ok bool) {
	n := len(a.toks)
	i := iType + 1
	for i < n && (a.toks[i].Kind == token.Keyword || a.isOp(i, "*") || a.isOp(i, "&")) {
		i++
	}
	if i >= n || a.toks[i].Kind != token.Identifier {
		return 0, 0, 0, 0, false
	}
	iName = i
	if i+1 < n && a.isPunct(i+1, "(") {
		lp = i + 1
		depth := 0
		j := i + 1
		for ; j < n; j++ {
			if a.isPunct(j, "(") {
				depth++
			} else if a.isPunct(j, ")") {
				depth--
				if depth == 0 {
					rp = j
					j++
					break
				}
			}
		}
		if j < n {
			for j < n && (a.toks[j].Kind == token.Keyword || a.toks[j].Kind == token.Identifier || a.isOp(j, "*") || a.isOp(j, "&")) {
				j++
			}
			if j < n && a.isPunct(j, "{") {
				iLBrace = j
			} else {
				iLBrace = -1
			}
			return iName, iLBrace, lp, rp, true
		}
	}
	return 0, 0, 0, 0, false
}

// parseParams recognizes comma-delimited parameters inside (lp, rp)
// (spec §4.3.1).
func (a *analyzer) parseParams(lp, rp int) []token.Param {
	var out []token.Param
	i := lp + 1
	for i < rp {
		if a.isPunct(i, ",") {
			i++
			continue
		}
		typeStart := false
		if i < rp && a.toks[i].Kind == token.Identifier && a.known.Has(a.toks[i].Text) {
			typeStart = true
		}
		if i < rp && a.toks[i].Kind == token.Keyword &&
			(IsBuiltinKeyword(a.toks[i].Text) || a.toks[i].Text == "struct" || a.toks[i].Text == "enum" || a.toks[i].Text == "union") {
			typeStart = true
		}
		if !typeStart {
			i++
			continue
		}

		j := i
		if a.isKeyword(j, "struct") || a.isKeyword(j, "enum") || a.isKeyword(j, "union") {
			if j+1 < rp && a.toks[j+1].Kind == token.Identifier {
				j += 2
			} else {
				i++
				continue
			}
		} else {
			for j < rp && (a.toks[j].Kind == token.Keyword || a.toks[j].Kind == token.Identifier) {
				j++
			}
		}
		stars := 0
		for j < rp && a.isOp(j, "*") {
			stars++
			j++
		}
		if !(j < rp && a.toks[j].Kind == token.Identifier) {
			i = j
			continue
		}
		out = append(out, token.Param{Name: a.toks[j].Text, Stars: stars})
		j++

		for j < rp && a.isPunct(j, "[") {
			for j < rp && !a.isPunct(j, "]") {
				j++
			}
			if j < rp {
				j++
			}
		}
		for j < rp && !a.isPunct(j, ",") {
			j++
		}
		i = j
	}
	return out
}

// strictDeclaration parses a comma-separated declarator list starting at a
// known type position (spec §4.3 step 5). Returns whether it recorded at
// least one declarator.
func (a *analyzer) strictDeclaration(i int) bool {
	n := len(a.toks)
	j := i
	if a.isKeyword(j, "struct") || a.isKeyword(j, "enum") || a.isKeyword(j, "union") {
		if j+1 < n && a.toks[j+1].Kind == token.Identifier {
			j += 2
		}
	} else {
		for j < n && (a.toks[j].Kind == token.Keyword || a.toks[j].Kind == token.Identifier) {
			j++
		}
	}

	handled := false
	for j < n {
		stars := 0
		for j < n && a.isOp(j, "*") {
			stars++
			j++
		}
		if !(j < n && a.toks[j].Kind == token.Identifier) {
			break
		}
		name := a.toks[j].Text
		j++
		arrays := 0
		for j < n && a.isPunct(j, "[") {
			for j < n && !a.isPunct(j, "]") {
				j++
			}
			if j < n {
				j++
			}
			arrays++
		}
		a.tree.Declare(a.cur, name, stars, arrays)
		handled = true
		if j < n && a.isPunct(j, ",") {
			j++
			continue
		}
		break
	}
	return handled
}

// relaxedDeclaration implements spec §4.3 step 6: a declaration whose type
// is an identifier the analyzer has never classified as a known type
// (e.g. an unseen typedef name like Vec2), recognized purely by lookahead.
func (a *analyzer) relaxedDeclaration(i int) {
	n := len(a.toks)
	j := i

	isTagKeyword := a.toks[j].Kind == token.Keyword && (a.toks[j].Text == "struct" || a.toks[j].Text == "enum" || a.toks[j].Text == "union")
	if !(a.toks[j].Kind == token.Identifier || isTagKeyword) {
		return
	}
	if isTagKeyword {
		if j+1 < n && a.toks[j+1].Kind == token.Identifier {
			j += 2
		} else {
			return
		}
	} else {
		j++
	}

	for j < n && (a.toks[j].Kind == token.Keyword || a.toks[j].Kind == token.Identifier) {
		j++
	}

	stars := 0
	for j < n && a.isOp(j, "*") {
		stars++
		j++
	}
	if !(j < n && a.toks[j].Kind == token.Identifier) {
		return
	}
	name := a.toks[j].Text
	j++

	arrays := 0
	for j < n && a.isPunct(j, "[") {
		k := j + 1
		for k < n && !a.isPunct(k, "]") {
			k++
		}
		if k == n {
			break
		}
		j = k + 1
		arrays++
	}

	if j < n && ((a.toks[j].Kind == token.Punct && (a.toks[j].Text == ";" || a.toks[j].Text == "," || a.toks[j].Text == "[")) ||
		(a.toks[j].Kind == token.Operator && a.toks[j].Text == "=") ||
		(a.toks[j].Kind == token.Punct && a.toks[j].Text == "{")) {
		a.tree.Declare(a.cur, name, stars, arrays)
	}
}

func (a *analyzer) openScope(i int) {
	kind := token.Block
	name := ""
	if a.pend != nil {
		kind = a.pend.kind
		name = a.pend.name
	}
	id := a.tree.Open(a.cur, kind, name)
	a.cur = id
	if ps, ok := a.params[i]; ok {
		for _, p := range ps {
			a.tree.Declare(id, p.Name, p.Stars, 0)
		}
	}
	a.pend = nil
}

func (a *analyzer) closeScope() {
	if a.cur != 0 {
		a.cur = a.tree.Scopes[a.cur].Parent
	}
	a.pend = nil
}

func (a *analyzer) isKeyword(i int, text string) bool {
	return i >= 0 && i < len(a.toks) && a.toks[i].Kind == token.Keyword && a.toks[i].Text == text
}

func (a *analyzer) isOp(i int, text string) bool {
	return i >= 0 && i < len(a.toks) && a.toks[i].Kind == token.Operator && a.toks[i].Text == text
}

func (a *analyzer) isPunct(i int, text string) bool {
	return i >= 0 && i < len(a.toks) && a.toks[i].Kind == token.Punct && a.toks[i].Text == text
}

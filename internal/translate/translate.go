// Package translate wires the pipeline stages together: normalize, lex,
// analyze scopes, clean up enum bodies, terminate type blocks, split into
// lines, rewrite member chains and insert semicolons per line, then emit.
package translate

import (
	"path/filepath"
	"strings"

	"cptrans/internal/emit"
	"cptrans/internal/lexer"
	"cptrans/internal/rewrite"
	"cptrans/internal/scope"
	"cptrans/internal/token"
)

// File translates one input file's bytes into output bytes, using and
// growing known across the whole invocation (spec §3, §5).
func File(src []byte, known *scope.KnownTypes) ([]byte, error) {
	normalized := lexer.Normalize(src)

	toks, err := lexer.Lex(normalized)
	if err != nil {
		return nil, err
	}

	tree := scope.Analyze(toks, known)

	toks = rewrite.StripEnumSemicolons(toks, tree)
	toks = rewrite.TerminateTypeBlocks(toks, tree)

	lines := rewrite.Split(toks)

	out := make([][]token.Token, 0, len(lines))
	for _, ln := range lines {
		rewritten := rewrite.RewriteMemberChains(ln.Toks, ln.Scope, tree)
		rewritten = rewrite.InsertSemicolons(rewritten, tree.Kind(ln.Scope))
		out = append(out, rewritten)
	}

	return emit.Lines(out), nil
}

// OutputPath derives the sibling output path for in (spec §6): the last
// '.'-delimited extension is replaced with ".cpp"; if there is no
// extension, or the only '.' lies in a directory segment, ".cpp" is
// appended instead.
func OutputPath(in string) string {
	dir, base := filepath.Split(in)
	if idx := strings.LastIndex(base, "."); idx >= 0 {
		return dir + base[:idx] + ".cpp"
	}
	return dir + base + ".cpp"
}

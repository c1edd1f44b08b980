package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cptrans/internal/lexer"
	"cptrans/internal/rewrite"
	"cptrans/internal/scope"
)

func join(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}

// rewriteLastLine declares decl (which seeds the variable table) and
// then rewrites the member chain in the final statement, returning its
// re-joined text for easy assertions.
func rewriteLastLine(t *testing.T, decl, expr string) string {
	t.Helper()
	src := decl + "\n" + expr
	toks, err := lexer.Lex([]byte(src))
	require.NoError(t, err)
	tree := scope.Analyze(toks, scope.New("Vec2"))

	lines := rewrite.Split(toks)
	last := lines[len(lines)-1]
	out := rewrite.RewriteMemberChains(last.Toks, last.Scope, tree)
	return join(lineTexts(out))
}

func TestRewriteMemberChainsPlainObjectUnchanged(t *testing.T) {
	got := rewriteLastLine(t, "Vec2* dummy;", "v . x = 3 ;")
	require.Equal(t, "v . x = 3 ;", got, "'v' is unresolved here, so it is never rewritten")
}

func TestRewriteMemberChainsSinglePointerArrow(t *testing.T) {
	got := rewriteLastLine(t, "Vec2* p;", "p . x = 3 ;")
	require.Equal(t, "p -> x = 3 ;", got)
}

func TestRewriteMemberChainsDoublePointerWrap(t *testing.T) {
	got := rewriteLastLine(t, "Vec2** pp;", "pp . x = 3 ;")
	require.Equal(t, "( * pp ) -> x = 3 ;", got)
}

func TestRewriteMemberChainsQuadruplePointerWrapsThreeTimes(t *testing.T) {
	got := rewriteLastLine(t, "Vec2**** x;", "x . f ;")
	require.Equal(t, "( * ( * ( * x ) ) ) -> f ;", got)
}

func TestRewriteMemberChainsArrayOfPointersDecrementsPointerLevel(t *testing.T) {
	got := rewriteLastLine(t, "Vec2* buf[16];", "buf [ 8 ] . dx = 1 ;")
	require.Equal(t, "buf [ 8 ] -> dx = 1 ;", got)
}

func TestRewriteMemberChainsArrayOfValuesStaysDot(t *testing.T) {
	got := rewriteLastLine(t, "Vec2 buf[16];", "buf [ 8 ] . dx = 1 ;")
	require.Equal(t, "buf [ 8 ] . dx = 1 ;", got)
}

func TestRewriteMemberChainsOpaqueCallPreservesDepth(t *testing.T) {
	got := rewriteLastLine(t, "Vec2* p;", "p ( ) . x = 3 ;")
	require.Equal(t, "p ( ) -> x = 3 ;", got)
}

package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cptrans/internal/lexer"
	"cptrans/internal/rewrite"
	"cptrans/internal/scope"
)

func TestStripEnumSemicolonsLeavesGlobalScopedSemicolons(t *testing.T) {
	toks, err := lexer.Lex([]byte("enum Color { RED, GREEN, BLUE };\nint x;"))
	require.NoError(t, err)
	tree := scope.Analyze(toks, scope.New())

	out := rewrite.StripEnumSemicolons(toks, tree)

	// Neither ';' here belongs to the enum body (the closing '}' already
	// reverts to the enclosing scope before its own terminator is seen),
	// so both survive untouched.
	var count int
	for _, tk := range out {
		if tk.Text == ";" {
			count++
		}
	}
	require.Equal(t, 2, count, "the enum-terminator ';' and the int x ';' both survive")
}

func TestStripEnumSemicolonsDropsStraySemicolon(t *testing.T) {
	toks, err := lexer.Lex([]byte("enum Color { RED; GREEN };"))
	require.NoError(t, err)
	tree := scope.Analyze(toks, scope.New())

	out := rewrite.StripEnumSemicolons(toks, tree)
	for _, tk := range out {
		require.False(t, tk.Kind.String() == "Punct" && tk.Text == ";" && tree.Kind(tk.Scope).String() == "Enum",
			"no enum-scoped ';' should survive")
	}
}

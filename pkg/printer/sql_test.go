package printer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lswen/fnordmetric/pkg/parser"
)

// roundTrip parses src, prints the result back to SQL, re-parses the
// printed text, and returns both debug dumps for structural comparison.
func roundTrip(t *testing.T, src string) (string, string) {
	t.Helper()
	tree1, errs1 := parser.New(src).Parse()
	require.Empty(t, errs1, "parsing %q", src)
	require.Len(t, tree1.Root.Children, 1)

	printed := SQL(tree1.Root.Children[0])

	tree2, errs2 := parser.New(printed).Parse()
	require.Empty(t, errs2, "re-parsing printed SQL %q", printed)
	require.Len(t, tree2.Root.Children, 1)

	return Debug(tree1.Root.Children[0]), Debug(tree2.Root.Children[0])
}

func TestSQL_RoundTripPreservesStructure(t *testing.T) {
	cases := []string{
		"SELECT *",
		"SELECT a, b FROM t",
		"SELECT x AS y FROM t WHERE x = 1",
		"SELECT a, b FROM t GROUP BY a HAVING b = 1 ORDER BY a DESC LIMIT 10 OFFSET 5",
		"SELECT count(*) FROM t",
		"SELECT t.c FROM t",
		"SELECT t.* FROM t",
		"SELECT f(a, b)",
		"SELECT 1 + 2 * 3",
		"SELECT 2 ^ 3 ^ 2",
		"SELECT -a + b",
		"SELECT x WHERE x = 'hi'",
	}
	for _, src := range cases {
		before, after := roundTrip(t, src)
		require.Equal(t, before, after, "round-trip mismatch for %q", src)
	}
}

func TestSQL_BareStarPrintsAsterisk(t *testing.T) {
	tree, errs := parser.New("SELECT *").Parse()
	require.Empty(t, errs)
	require.Equal(t, "SELECT *", SQL(tree.Root.Children[0]))
}

func TestSQL_StringLiteralIsRequoted(t *testing.T) {
	tree, errs := parser.New("SELECT x WHERE x = 'it''s'").Parse()
	require.Empty(t, errs)

	printed := SQL(tree.Root.Children[0])
	require.Contains(t, printed, "'it''s'")

	tree2, errs2 := parser.New(printed).Parse()
	require.Empty(t, errs2)
	require.Equal(t, Debug(tree.Root.Children[0]), Debug(tree2.Root.Children[0]))
}

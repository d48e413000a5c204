package printer

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/stretchr/testify/require"

	"github.com/lswen/fnordmetric/pkg/parser"
)

// TestSQL_AcceptedByRealSQLiteEngine proves the canonical printer's output
// is not merely re-parseable by this package's own parser but is
// syntactically valid SQL a real engine accepts, using a pure-Go in-memory
// sqlite database as an external oracle.
func TestSQL_AcceptedByRealSQLiteEngine(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("CREATE TABLE t (a INTEGER, b INTEGER, x INTEGER)")
	require.NoError(t, err)

	cases := []string{
		"SELECT * FROM t",
		"SELECT a, b FROM t WHERE a = 1",
		"SELECT a, b FROM t GROUP BY a HAVING b = 1 ORDER BY a DESC LIMIT 10 OFFSET 5",
		"SELECT count(*) FROM t",
		"SELECT 1 + 2 * 3",
	}
	for _, src := range cases {
		tree, errs := parser.New(src).Parse()
		require.Empty(t, errs, "parsing %q", src)
		printed := SQL(tree.Root.Children[0])

		rows, err := db.Query(printed)
		require.NoErrorf(t, err, "sqlite rejected printed SQL %q (from %q)", printed, src)
		require.NoError(t, rows.Close())
	}
}

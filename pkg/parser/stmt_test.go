package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lswen/fnordmetric/pkg/ast"
)

func TestParseFrom_MultipleTables(t *testing.T) {
	stmt := parseOK(t, "SELECT * FROM a, b, c")
	from := stmt.Child(1)
	require.Len(t, from.Children, 3)
	require.Equal(t, "a", from.Child(0).Literal())
	require.Equal(t, "c", from.Child(2).Literal())
}

func TestParseGroupBy_MultipleKeys(t *testing.T) {
	stmt := parseOK(t, "SELECT a, b FROM t GROUP BY a, b")
	groupBy := stmt.Child(2)
	require.Equal(t, ast.GroupBy, groupBy.Kind)
	require.Len(t, groupBy.Children, 2)
}

func TestParseOrderBy_DefaultsAscending(t *testing.T) {
	stmt := parseOK(t, "SELECT a FROM t ORDER BY a")
	orderBy := stmt.Child(2)
	require.Equal(t, ast.OrderBy, orderBy.Kind)
	spec := orderBy.Child(0)
	require.True(t, spec.Ascending)
	require.Nil(t, spec.Token)
}

func TestParseOrderBy_ExplicitAsc(t *testing.T) {
	stmt := parseOK(t, "SELECT a FROM t ORDER BY a ASC")
	spec := stmt.Child(2).Child(0)
	require.True(t, spec.Ascending)
	require.NotNil(t, spec.Token)
}

func TestParseOrderBy_MultipleSortSpecs(t *testing.T) {
	stmt := parseOK(t, "SELECT a, b FROM t ORDER BY a DESC, b ASC")
	orderBy := stmt.Child(2)
	require.Len(t, orderBy.Children, 2)
	require.False(t, orderBy.Child(0).Ascending)
	require.True(t, orderBy.Child(1).Ascending)
}

func TestParseLimit_WithoutOffset(t *testing.T) {
	stmt := parseOK(t, "SELECT a FROM t LIMIT 5")
	limit := stmt.Child(2)
	require.Equal(t, ast.Limit, limit.Kind)
	require.Equal(t, "5", limit.Literal())
	require.Empty(t, limit.Children)
}

func TestParseHaving_RequiresGroupByToBeMeaningfulButIsParsedIndependently(t *testing.T) {
	stmt := parseOK(t, "SELECT a FROM t HAVING a = 1")
	having := stmt.Child(2)
	require.Equal(t, ast.Having, having.Kind)
	require.Equal(t, ast.EqExpr, having.Child(0).Kind)
}

func TestParseSelectList_TrailingCommaIsReported(t *testing.T) {
	_, errs := New("SELECT a, FROM t").Parse()
	require.NotEmpty(t, errs)
}

func TestParseFrom_TableNameMismatchRecordsError(t *testing.T) {
	_, errs := New("SELECT a FROM 1").Parse()
	require.NotEmpty(t, errs)
}

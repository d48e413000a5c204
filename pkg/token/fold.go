package token

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// caseFolder performs Unicode-correct uppercasing for keyword comparison.
// Using x/text/cases instead of strings.ToUpper matters for identifiers
// containing non-ASCII letters (Turkish dotless i, German sharp s, etc.)
// that byte-wise uppercasing mishandles.
var caseFolder = cases.Upper(language.Und)

// FoldKeyword normalizes s for keyword lookup.
func FoldKeyword(s string) string {
	return caseFolder.String(s)
}

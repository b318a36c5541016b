// Package marker resolves caller-supplied marker tokens to the X/Y/Z column
// labels of a loaded trajectory table.
//
// Exports sometimes prefix marker names with a subject label joined by ':'
// ("Patient 1:poignet_D_X"), and label whitespace is inconsistent, so matching
// runs on the whitespace-stripped label and tolerates any prefix before ':'.
package marker

import (
	"regexp"
	"strings"

	"github.com/quantmotion/qdm/internal/util"
)

// Triple holds the resolved column labels for one marker. An empty string
// means the axis was not found in the table; that is a normal outcome, not an
// error — the marker simply is not present in this file.
type Triple struct {
	X string
	Y string
	Z string
}

// Complete reports whether all three axes resolved.
func (t Triple) Complete() bool { return t.X != "" && t.Y != "" && t.Z != "" }

// Empty reports whether no axis resolved.
func (t Triple) Empty() bool { return t.X == "" && t.Y == "" && t.Z == "" }

type candidate struct {
	label    string // original column label
	stripped string // whitespace-stripped form used for comparison
}

// better reports whether c should replace cur as the pick for an axis.
// Shorter stripped labels win (the unprefixed name is assumed canonical);
// equal lengths fall back to ascending lexical order of the stripped label so
// the result never depends on column iteration order.
func (c candidate) better(cur candidate) bool {
	if len(c.stripped) != len(cur.stripped) {
		return len(c.stripped) < len(cur.stripped)
	}
	return c.stripped < cur.stripped
}

// Resolve finds the X/Y/Z column labels for token in a single filtering pass
// over columns. A column matches axis A when its whitespace-stripped label
// contains "<token>_A" (case-insensitive) at the start or right after a ':',
// followed by a word boundary — so token "arm" never matches "forearm_X".
//
// The shortest-label tie-break is a heuristic, not a uniqueness guarantee;
// callers working with multi-subject files should pre-filter columns by
// subject when ambiguity matters. Resolve is pure: the same inputs always
// yield the same Triple.
func Resolve(columns []string, token string) Triple {
	pat := regexp.MustCompile(`(?i)(?:^|:)` + regexp.QuoteMeta(util.StripWhitespace(token)) + `_([XYZ])\b`)

	found := map[string]candidate{}
	for _, col := range columns {
		stripped := util.StripWhitespace(col)
		m := pat.FindStringSubmatch(stripped)
		if m == nil {
			continue
		}
		axis := strings.ToUpper(m[1])
		c := candidate{label: col, stripped: stripped}
		if cur, ok := found[axis]; !ok || c.better(cur) {
			found[axis] = c
		}
	}

	return Triple{
		X: found["X"].label,
		Y: found["Y"].label,
		Z: found["Z"].label,
	}
}

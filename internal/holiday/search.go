package holiday

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold reduces Vietnamese text to a diacritic-free, case-folded form so that
// "trung thu" matches "Tết Trung Thu".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	// Đ has no combining decomposition.
	stripped = strings.NewReplacer("đ", "d", "Đ", "D").Replace(stripped)
	return strings.Join(strings.Fields(cases.Fold().String(stripped)), " ")
}

// Search returns the definitions whose name or description contains the
// folded query. An empty query matches everything.
func (c *Catalog) Search(query string) []*Definition {
	q := Fold(query)
	if q == "" {
		return c.All()
	}

	var out []*Definition
	for _, d := range c.defs {
		if strings.Contains(Fold(d.Name), q) || strings.Contains(Fold(d.Description), q) {
			out = append(out, d)
		}
	}
	return out
}

package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonWord = regexp.MustCompile(`[^a-z0-9]+`)

// Make derives a normalized ASCII identifier from a display name:
// accents stripped, lowercased, runs of non-alphanumerics collapsed to a
// single underscore. Idempotent: Make(Make(x)) == Make(x).
func Make(name string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, name)
	if err != nil {
		folded = name
	}
	s := strings.ToLower(folded)
	s = nonWord.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// SiteKey builds the composite job-site key used throughout aggregation
// and billing: "{catalogType}__{slug(name)}".
func SiteKey(siteType, name string) string {
	return siteType + "__" + Make(name)
}

// EmployeeID derives the document id for an employee from the roster name.
// Spaces map to underscores; the rest of the name is kept as entered so
// historical document paths stay reachable.
func EmployeeID(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

package shared

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var uuidRe = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

func IsUUID(s string) bool { return uuidRe.MatchString(s) }

// NormalizeCategory folds a category path segment to the stored form:
// accent-folded, lowercased, single spaces. "Science  Fictión" and
// "science fiction" match the same rows.
func NormalizeCategory(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	t := transform.Chain(
		norm.NFKD,
		transform.RemoveFunc(func(r rune) bool { return unicode.Is(unicode.Mn, r) }),
		norm.NFC,
	)
	normed, _, _ := transform.String(t, s)

	return strings.Join(strings.Fields(strings.ToLower(normed)), " ")
}

package post

import (
	"strings"
	"unicode"
)

// buildTagQuery turns a free-text search term into a case-insensitive
// literal infix match against the tag field. Metacharacters are escaped so
// user input can never alter the query structure; an empty term matches
// every post.
func buildTagQuery(search string) string {
	term := strings.TrimSpace(search)
	if term == "" {
		return "*"
	}
	return "@tag:{*" + escapeTag(strings.ToLower(term)) + "*}"
}

// escapeTag backslash-escapes every rune the query syntax could interpret,
// leaving letters, digits and underscores bare.
func escapeTag(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

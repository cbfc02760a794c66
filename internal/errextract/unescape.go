package errextract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var entityRegex = regexp.MustCompile(`&#?\w+;`)

// Unescape replaces numeric character references (&#100;, &#x64;) and known
// named entities (&amp;) with their characters. References that do not
// resolve are left verbatim.
func Unescape(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}
	return entityRegex.ReplaceAllStringFunc(text, resolveEntity)
}

func resolveEntity(ref string) string {
	if strings.HasPrefix(ref, "&#") {
		body := ref[2 : len(ref)-1]
		base := 10
		if strings.HasPrefix(body, "x") || strings.HasPrefix(body, "X") {
			body, base = body[1:], 16
		}
		n, err := strconv.ParseInt(body, base, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return ref
		}
		return string(rune(n))
	}

	// html.UnescapeString also resolves legacy prefixes ("&ampx;" -> "&x;"),
	// so only a fully consumed reference counts as resolved.
	out := html.UnescapeString(ref)
	if out == ref || strings.HasSuffix(out, ";") {
		return ref
	}
	return out
}

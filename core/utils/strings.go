package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Uncapitalize lower-cases the first rune of s.
func Uncapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// SplitWords breaks an identifier into words at separators ("_", "-", ".", spaces)
// and case boundaries. Acronyms stay together: "HTTPServerID" → [HTTP Server ID].
func SplitWords(s string) []string {
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.' || unicode.IsSpace(r):
			flush()
			continue
		case unicode.IsUpper(r) && len(cur) > 0:
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// PascalCase joins the words of s, each capitalized: "user_name" → "UserName".
func PascalCase(s string) string {
	words := SplitWords(s)
	for i, w := range words {
		words[i] = Capitalize(strings.ToLower(w))
	}
	return strings.Join(words, "")
}

// CamelCase is PascalCase with a lower-case first word: "user_name" → "userName".
func CamelCase(s string) string {
	words := SplitWords(s)
	for i, w := range words {
		if i == 0 {
			words[i] = strings.ToLower(w)
			continue
		}
		words[i] = Capitalize(strings.ToLower(w))
	}
	return strings.Join(words, "")
}

// SnakeCase lower-cases the words of s and joins them with "_": "UserName" → "user_name".
func SnakeCase(s string) string {
	return strings.ToLower(strings.Join(SplitWords(s), "_"))
}

// ScreamingSnakeCase upper-cases the words of s and joins them with "_": "fooBar" → "FOO_BAR".
func ScreamingSnakeCase(s string) string {
	return strings.ToUpper(strings.Join(SplitWords(s), "_"))
}

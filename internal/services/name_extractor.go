package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

const AnonymousUser = "anonymous"

const namePhrase = "my name is"

// ExtractUserID guesses who is talking from phrases like "I'm Sam" or
// "my name is Jordan".
func ExtractUserID(message string) string {
	text := strings.ReplaceAll(strings.ToLower(message), "’", "'")
	tokens := strings.Fields(text)

	var candidate string
	if idx := slices.Index(tokens, "i'm"); idx >= 0 && idx+1 < len(tokens) {
		candidate = tokens[idx+1]
	} else if idx := strings.Index(text, namePhrase); idx >= 0 {
		if rest := strings.Fields(text[idx+len(namePhrase):]); len(rest) > 0 {
			candidate = rest[0]
		}
	}

	name := strings.TrimFunc(candidate, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if name == "" {
		return AnonymousUser
	}
	return capitalize(name)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

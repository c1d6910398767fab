package commando

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// token is one word of a command line and its byte offset in the input.
type token struct {
	text  string
	start int
}

// tokenize splits a command line on whitespace. Single or double quotes group
// words, and a backslash inside quotes escapes a quote or backslash.
func tokenize(input string) []token {
	var (
		tokens  []token
		current strings.Builder
		start   = -1
		quote   rune
	)
	flush := func() {
		if start >= 0 {
			tokens = append(tokens, token{text: current.String(), start: start})
		}
		current.Reset()
		start = -1
	}

	for i := 0; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])
		switch {
		case quote == 0 && unicode.IsSpace(r):
			flush()
		case quote == 0 && (r == '"' || r == '\''):
			if start < 0 {
				start = i
			}
			quote = r
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0 && r == '\\' && i+size < len(input):
			next, nsize := utf8.DecodeRuneInString(input[i+size:])
			if next == '"' || next == '\'' || next == '\\' {
				current.WriteRune(next)
				i += size + nsize
				continue
			}
			current.WriteRune(r)
		default:
			if start < 0 {
				start = i
			}
			current.WriteRune(r)
		}
		i += size
	}
	flush()
	return tokens
}

// rest returns the input from tokens[i] to the end. A single remaining token
// is returned unquoted, several are returned as typed.
func rest(input string, tokens []token, i int) string {
	if i >= len(tokens) {
		return ""
	}
	if i == len(tokens)-1 {
		return tokens[i].text
	}
	return strings.TrimSpace(input[tokens[i].start:])
}

// splitFirst separates the first word of s from the remainder.
func splitFirst(s string) (string, string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	idx := strings.IndexFunc(s, unicode.IsSpace)
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx:])
}

package commando

import (
	"strings"
	"unicode/utf8"
)

// MessageLimit is the longest text a single message may carry.
const MessageLimit = 2000

// Chunk splits text into pieces of at most limit runes. It prefers to break
// after a newline and joining the pieces gives back text unchanged.
func Chunk(text string, limit int) []string {
	if limit <= 0 {
		limit = MessageLimit
	}
	var chunks []string
	for utf8.RuneCountInString(text) > limit {
		cut := byteOffset(text, limit)
		if nl := strings.LastIndexByte(text[:cut], '\n'); nl > 0 {
			cut = nl + 1
		}
		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

// byteOffset returns the byte index just past the first n runes of s.
func byteOffset(s string, n int) int {
	i := 0
	for n > 0 && i < len(s) {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		n--
	}
	return i
}

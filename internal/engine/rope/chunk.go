package rope

import (
	"strings"
	"unicode/utf8"
)

// MaxChunkBytes is the target size of a leaf chunk. Chunks are split on
// rune boundaries, so a chunk may run a few bytes over.
const MaxChunkBytes = 256

// chunk is an immutable run of text with a cached summary.
type chunk struct {
	text string
	sum  Summary
}

func newChunk(s string) chunk {
	return chunk{
		text: s,
		sum: Summary{
			Bytes:    len(s),
			Chars:    utf8.RuneCountInString(s),
			Newlines: strings.Count(s, "\n"),
		},
	}
}

func (c chunk) isEmpty() bool {
	return len(c.text) == 0
}

// byteIdxOfChar returns the byte index of the char-th rune in s.
// char must be in [0, rune count].
func byteIdxOfChar(s string, char int) int {
	if char <= 0 {
		return 0
	}
	n := 0
	for i := range s {
		if n == char {
			return i
		}
		n++
	}
	return len(s)
}

// split divides the chunk at the given char offset.
func (c chunk) split(char int) (chunk, chunk) {
	b := byteIdxOfChar(c.text, char)
	return newChunk(c.text[:b]), newChunk(c.text[b:])
}

// charAt returns the rune at the given char offset within the chunk.
func (c chunk) charAt(char int) rune {
	b := byteIdxOfChar(c.text, char)
	r, _ := utf8.DecodeRuneInString(c.text[b:])
	return r
}

// newlinesBefore counts newlines in the first char runes of the chunk.
func (c chunk) newlinesBefore(char int) int {
	if char >= c.sum.Chars {
		return c.sum.Newlines
	}
	b := byteIdxOfChar(c.text, char)
	return strings.Count(c.text[:b], "\n")
}

// charOfNewline returns the char offset of the k-th newline (1-based)
// in the chunk, or -1 if the chunk holds fewer than k newlines.
func (c chunk) charOfNewline(k int) int {
	if k <= 0 || k > c.sum.Newlines {
		return -1
	}
	char := 0
	for _, r := range c.text {
		if r == '\n' {
			k--
			if k == 0 {
				return char
			}
		}
		char++
	}
	return -1
}

// splitIntoChunks cuts s into rune-aligned chunks of roughly
// MaxChunkBytes each.
func splitIntoChunks(s string) []chunk {
	if len(s) == 0 {
		return nil
	}

	var chunks []chunk
	for len(s) > 0 {
		end := MaxChunkBytes
		if end >= len(s) {
			chunks = append(chunks, newChunk(s))
			break
		}
		for end < len(s) && !utf8.RuneStart(s[end]) {
			end++
		}
		chunks = append(chunks, newChunk(s[:end]))
		s = s[end:]
	}
	return chunks
}

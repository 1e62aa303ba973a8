// Package rope implements a char-indexed immutable rope. Operations
// return new Rope values; the original is never modified, so a value
// copy is an O(1) clone sharing structure with its source. All public
// offsets are char (Unicode scalar value) indexes unless a name says
// otherwise.
package rope

import (
	"io"
	"strings"
)

// Rope is an immutable rope over Unicode text.
type Rope struct {
	root *node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeaf()}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return Rope{root: buildFromChunks(splitIntoChunks(s))}
}

// FromReader creates a rope from an io.Reader. The whole stream is
// read before chunking so multi-byte runes never straddle a boundary.
func FromReader(r io.Reader) (Rope, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Rope{}, err
	}
	return FromString(string(data)), nil
}

// buildFromChunks builds a balanced tree bottom-up from leaf chunks.
func buildFromChunks(chunks []chunk) *node {
	if len(chunks) == 0 {
		return newLeaf()
	}

	var leaves []*node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := i + MaxChunksPerLeaf
		if end > len(chunks) {
			end = len(chunks)
		}
		leaf := make([]chunk, end-i)
		copy(leaf, chunks[i:end])
		leaves = append(leaves, newLeafWithChunks(leaf))
	}

	nodes := leaves
	for len(nodes) > 1 {
		var parents []*node
		for i := 0; i < len(nodes); i += MaxChildren {
			end := i + MaxChildren
			if end > len(nodes) {
				end = len(nodes)
			}
			children := make([]*node, end-i)
			copy(children, nodes[i:end])
			parents = append(parents, newInternal(children))
		}
		nodes = parents
	}
	return nodes[0]
}

// LenChars returns the total char count.
func (r Rope) LenChars() int {
	if r.root == nil {
		return 0
	}
	return r.root.sum.Chars
}

// LenBytes returns the total byte length.
func (r Rope) LenBytes() int {
	if r.root == nil {
		return 0
	}
	return r.root.sum.Bytes
}

// LenLines returns the number of lines (newlines + 1).
func (r Rope) LenLines() int {
	if r.root == nil {
		return 1
	}
	return r.root.sum.Newlines + 1
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.LenChars() == 0
}

// String returns the full text. Costly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.root.sum.Bytes)
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in the char range [start, end).
func (r Rope) Slice(start, end int) string {
	if r.root == nil || start >= end {
		return ""
	}
	var sb strings.Builder
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// CharAt returns the rune at the given char offset.
func (r Rope) CharAt(offset int) (rune, bool) {
	if r.root == nil || offset < 0 || offset >= r.root.sum.Chars {
		return 0, false
	}
	return r.root.charAt(offset), true
}

// CharToByte converts a char offset to a byte offset, clamped.
func (r Rope) CharToByte(offset int) int {
	if r.root == nil || offset <= 0 {
		return 0
	}
	return r.root.charToByte(offset)
}

// ByteToChar converts a byte offset to a char offset, clamped.
func (r Rope) ByteToChar(offset int) int {
	if r.root == nil || offset <= 0 {
		return 0
	}
	return r.root.byteToChar(offset)
}

// CharToLine returns the line index containing the given char offset.
// Offsets at or past the end resolve to the last line.
func (r Rope) CharToLine(offset int) int {
	if r.root == nil || offset <= 0 {
		return 0
	}
	if offset > r.root.sum.Chars {
		offset = r.root.sum.Chars
	}
	return r.root.newlinesBefore(offset)
}

// LineToChar returns the char offset of the start of the given line.
// Line indexes at or past LenLines resolve to the end of the rope.
func (r Rope) LineToChar(line int) int {
	if r.root == nil || line <= 0 {
		return 0
	}
	if line >= r.LenLines() {
		return r.root.sum.Chars
	}
	return r.root.charOfNewline(line) + 1
}

// Line returns the text of the given line, including its trailing
// newline if present.
func (r Rope) Line(line int) string {
	start := r.LineToChar(line)
	end := r.LenChars()
	if line+1 < r.LenLines() {
		end = r.LineToChar(line + 1)
	}
	return r.Slice(start, end)
}

// LineLen returns the char count of the given line, including its
// trailing newline if present.
func (r Rope) LineLen(line int) int {
	start := r.LineToChar(line)
	end := r.LenChars()
	if line+1 < r.LenLines() {
		end = r.LineToChar(line + 1)
	}
	return end - start
}

// Insert inserts text at the given char offset and returns the new
// rope; the receiver is unchanged.
func (r Rope) Insert(offset int, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.root == nil || r.LenChars() == 0 {
		return FromString(text)
	}
	if offset <= 0 {
		return FromString(text).Concat(r)
	}
	if offset >= r.LenChars() {
		return r.Concat(FromString(text))
	}

	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right)
}

// InsertChar inserts a single rune at the given char offset.
func (r Rope) InsertChar(offset int, ch rune) Rope {
	return r.Insert(offset, string(ch))
}

// Remove deletes the char range [start, end) and returns the new rope;
// the receiver is unchanged.
func (r Rope) Remove(start, end int) Rope {
	if r.root == nil || start >= end {
		return r
	}

	n := r.LenChars()
	if start < 0 {
		start = 0
	}
	if start >= n {
		return r
	}
	if end > n {
		end = n
	}

	if start == 0 && end >= n {
		return New()
	}
	if start == 0 {
		_, right := r.Split(end)
		return right
	}
	if end >= n {
		left, _ := r.Split(start)
		return left
	}

	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right)
}

// Split divides the rope at the given char offset.
func (r Rope) Split(offset int) (Rope, Rope) {
	if r.root == nil || offset <= 0 {
		return New(), r
	}
	if offset >= r.LenChars() {
		return r, New()
	}
	left, right := r.root.split(offset)
	return Rope{root: left}, Rope{root: right}
}

// Concat joins two ropes; neither input is modified.
func (r Rope) Concat(other Rope) Rope {
	if r.root == nil || r.LenChars() == 0 {
		return other
	}
	if other.root == nil || other.LenChars() == 0 {
		return r
	}
	return Rope{root: concatNodes(r.root, other.root)}
}

// Equals reports whether two ropes hold the same text. Content
// comparison, not structural.
func (r Rope) Equals(other Rope) bool {
	if r.LenChars() != other.LenChars() || r.LenBytes() != other.LenBytes() {
		return false
	}
	return r.String() == other.String()
}

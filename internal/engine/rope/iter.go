package rope

// CharIter iterates runes from a starting char offset. The iterator
// walks a snapshot: later edits to the buffer produce new ropes and
// never invalidate it. Each step is an O(log n) descent.
type CharIter struct {
	r       Rope
	idx     int
	reverse bool
}

// CharsAt returns a forward iterator yielding the runes at offset,
// offset+1, and so on.
func (r Rope) CharsAt(offset int) *CharIter {
	return &CharIter{r: r, idx: offset}
}

// CharsBefore returns a backward iterator yielding the runes at
// offset-1, offset-2, and so on.
func (r Rope) CharsBefore(offset int) *CharIter {
	return &CharIter{r: r, idx: offset, reverse: true}
}

// Next returns the next rune, or false when the iterator is exhausted.
func (it *CharIter) Next() (rune, bool) {
	if it.reverse {
		if it.idx <= 0 {
			return 0, false
		}
		it.idx--
		return it.r.CharAt(it.idx)
	}

	ch, ok := it.r.CharAt(it.idx)
	if ok {
		it.idx++
	}
	return ch, ok
}

// LineIter iterates lines from a starting line index.
type LineIter struct {
	r       Rope
	idx     int
	reverse bool
}

// LinesAt returns a forward iterator yielding line, line+1, and so on.
// Yielded lines include their trailing newline if present.
func (r Rope) LinesAt(line int) *LineIter {
	return &LineIter{r: r, idx: line}
}

// LinesBefore returns a backward iterator yielding line-1, line-2, and
// so on.
func (r Rope) LinesBefore(line int) *LineIter {
	return &LineIter{r: r, idx: line, reverse: true}
}

// Next returns the next line, or false when the iterator is exhausted.
func (it *LineIter) Next() (string, bool) {
	if it.reverse {
		if it.idx <= 0 {
			return "", false
		}
		it.idx--
		return it.r.Line(it.idx), true
	}

	if it.idx >= it.r.LenLines() {
		return "", false
	}
	s := it.r.Line(it.idx)
	it.idx++
	return s, true
}

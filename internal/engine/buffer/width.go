package buffer

import "github.com/mattn/go-runewidth"

// DisplayWidth returns the number of terminal columns line l occupies.
// Tabs advance to the next tab stop; wide runes count per their East
// Asian width.
func (b *Buffer) DisplayWidth(l int) int {
	content, _ := trimNewline(b.Line(l))
	width := 0
	for _, ch := range content {
		if ch == '\t' {
			width += b.tabWidth - width%b.tabWidth
			continue
		}
		width += runewidth.RuneWidth(ch)
	}
	return width
}

// DisplayCol returns the terminal column of the cursor on its line,
// accounting for tabs and wide runes before it.
func (b *Buffer) DisplayCol() int {
	r := b.text()
	cursor := b.CharCursor()
	home := b.lineHome()

	width := 0
	it := r.CharsAt(home)
	for i := home; i < cursor; i++ {
		ch, ok := it.Next()
		if !ok {
			break
		}
		if ch == '\t' {
			width += b.tabWidth - width%b.tabWidth
			continue
		}
		width += runewidth.RuneWidth(ch)
	}
	return width
}

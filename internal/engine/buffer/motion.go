package buffer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/modal/internal/engine/rope"
	"github.com/dshills/modal/internal/engine/search"
	"github.com/dshills/modal/internal/event"
)

// lineChars returns the char length of a line's content, excluding
// the terminator.
func lineChars(s string) int {
	content, _ := trimNewline(s)
	return utf8.RuneCountInString(content)
}

// lineHome returns the char offset of the first char of the cursor's
// line.
func (b *Buffer) lineHome() int {
	r := b.text()
	return r.LineToChar(r.CharToLine(b.CharCursor()))
}

// motionLeft moves the cursor n chars left. LineBound stops at the
// line start; NoBound walks into earlier lines, where crossing a line
// terminator costs one step.
func motionLeft(b *Buffer, n int, pos event.Dir) error {
	cursor := b.CharCursor()
	home := b.lineHome()
	target := cursor - n

	switch {
	case (pos == event.LineBound || pos == event.NoBound) && target >= home:
		cursor = target
	case pos == event.LineBound:
		cursor = home
	case pos == event.NoBound:
		n -= cursor - home
		r := b.text()
		row := r.CharToLine(cursor)
		cursor = 0
		it := r.LinesBefore(row)
		for l := row - 1; l >= 0; l-- {
			s, ok := it.Next()
			if !ok {
				break
			}
			m := lineChars(s)
			if n <= m {
				cursor = r.LineToChar(l) + (m - n)
				break
			}
			n -= m
		}
	default:
		return fmt.Errorf("%w: left %v", ErrFatal, pos)
	}

	b.SetCursor(cursor)
	b.sticky = stickyNone
	return nil
}

// motionRight moves the cursor n chars right. LineBound stops on the
// last content char of the line; NoBound walks into later lines.
func motionRight(b *Buffer, n int, pos event.Dir) error {
	r := b.text()
	cursor := b.CharCursor()
	row := r.CharToLine(cursor)
	home := r.LineToChar(row)
	end := home + lineChars(r.Line(row))
	target := cursor + n

	switch {
	case (pos == event.LineBound || pos == event.NoBound) && target < end:
		cursor = target
	case pos == event.LineBound:
		cursor = end - 1
		if cursor < home {
			cursor = home
		}
	case pos == event.NoBound:
		n -= end - cursor
		last := r.LenChars() - 1
		if last < 0 {
			last = 0
		}
		cursor = last
		it := r.LinesAt(row + 1)
		for l := row + 1; ; l++ {
			s, ok := it.Next()
			if !ok {
				break
			}
			m := lineChars(s)
			if n <= m {
				lhome := r.LineToChar(l)
				cursor = lhome + n - 1
				if cursor < lhome {
					cursor = lhome
				}
				break
			}
			n -= m
		}
	default:
		return fmt.Errorf("%w: right %v", ErrFatal, pos)
	}

	b.SetCursor(cursor)
	b.sticky = stickyNone
	return nil
}

// motionLineHome moves to the line start. TextCol then skips to the
// first non-blank; StickyCol latches the home column for vertical
// motions.
func motionLineHome(b *Buffer, pos event.Dir) error {
	b.SetCursor(b.lineHome())
	switch pos {
	case event.TextCol:
		b.skipWhitespace(event.Right)
		b.sticky = stickyNone
	case event.StickyCol:
		b.sticky = stickyHome
	case event.DirNone:
		b.sticky = stickyNone
	default:
		return fmt.Errorf("%w: line-home %v", ErrFatal, pos)
	}
	return nil
}

// motionLineEnd moves to the last content char of the line, n-1 lines
// down. TextCol then backs up to the last non-blank; StickyCol latches
// the end column for vertical motions.
func motionLineEnd(b *Buffer, n int, pos event.Dir) error {
	if n > 1 {
		if err := motionDown(b, n-1, event.DirNone); err != nil {
			return err
		}
	}

	r := b.text()
	row := r.CharToLine(b.CharCursor())
	home := r.LineToChar(row)
	cursor := home + lineChars(r.Line(row)) - 1
	if cursor < home {
		cursor = home
	}
	b.SetCursor(cursor)

	switch pos {
	case event.TextCol:
		// land on the last non-blank rather than past it
		it := r.CharsBefore(cursor + 1)
		for cursor > home {
			ch, ok := it.Next()
			if !ok || !unicode.IsSpace(ch) {
				break
			}
			cursor--
		}
		b.SetCursor(cursor)
		b.sticky = stickyNone
	case event.StickyCol:
		b.sticky = stickyEnd
	case event.DirNone:
		b.sticky = stickyNone
	default:
		return fmt.Errorf("%w: line-end %v", ErrFatal, pos)
	}
	return nil
}

// motionColumn moves to column n of the current line, clamped to the
// line's content.
func motionColumn(b *Buffer, n int) error {
	r := b.text()
	row := r.CharToLine(b.CharCursor())
	m := lineChars(r.Line(row))
	if n > m {
		n = m
	}
	if n > 0 {
		n--
	}
	b.SetCursor(r.LineToChar(row) + n)
	b.sticky = stickyNone
	return nil
}

// motionChar finds the n-th occurrence of the motion's char within
// the current line, travelling in the motion's direction from the
// cursor. CharTill stops one char short of the occurrence. A missing
// occurrence is a no-op, not an error.
func motionChar(b *Buffer, m event.Motion) error {
	if m.Char == 0 || m.Kind == event.MotionNone {
		return nil
	}
	till := m.Kind == event.MotionCharTill
	if !till && m.Kind != event.MotionCharFind {
		return fmt.Errorf("%w: char motion %v", ErrFatal, m.Kind)
	}

	r := b.text()
	cursor := b.CharCursor()
	n := m.Count
	if n < 1 {
		n = 1
	}

	target := -1
	switch m.Dir {
	case event.Right:
		it := r.CharsAt(cursor + 1)
		for i := cursor + 1; ; i++ {
			ch, ok := it.Next()
			if !ok || ch == '\n' {
				break
			}
			if ch == m.Char {
				if n--; n == 0 {
					target = i
					break
				}
			}
		}
		if target >= 0 && till {
			target--
		}
	case event.Left:
		it := r.CharsBefore(cursor)
		for i := cursor - 1; i >= 0; i-- {
			ch, ok := it.Next()
			if !ok || ch == '\n' {
				break
			}
			if ch == m.Char {
				if n--; n == 0 {
					target = i
					break
				}
			}
		}
		if target >= 0 && till {
			target++
		}
	default:
		return fmt.Errorf("%w: char %v", ErrFatal, m.Dir)
	}

	if target >= 0 {
		b.SetCursor(target)
	}
	b.sticky = stickyNone
	return nil
}

// vertTargetCol resolves the column a vertical motion lands on in
// row, honoring a latched sticky column and clamping to the row's
// content.
func (b *Buffer) vertTargetCol(row int) int {
	r := b.text()
	last := lineChars(r.Line(row)) - 1
	if last < 0 {
		last = 0
	}
	var col int
	switch b.sticky {
	case stickyHome:
		col = 0
	case stickyEnd:
		col = last
	default:
		col = b.XYCursor().Col
	}
	if col > last {
		col = last
	}
	return col
}

// motionUp moves n lines up. TextCol lands on the first non-blank of
// the target line instead of the remembered column.
func motionUp(b *Buffer, n int, pos event.Dir) error {
	r := b.text()
	row := r.CharToLine(b.CharCursor())
	if row == 0 {
		return nil
	}
	row -= n
	if row < 0 {
		row = 0
	}
	b.SetCursor(r.LineToChar(row) + b.vertTargetCol(row))

	switch pos {
	case event.TextCol:
		return motionLineHome(b, event.TextCol)
	case event.DirNone:
		return nil
	}
	return fmt.Errorf("%w: up %v", ErrFatal, pos)
}

// motionDown moves n lines down.
func motionDown(b *Buffer, n int, pos event.Dir) error {
	r := b.text()
	row := r.CharToLine(b.CharCursor()) + n
	if last := r.LenLines() - 1; row > last {
		row = last
	}
	b.SetCursor(r.LineToChar(row) + b.vertTargetCol(row))

	switch pos {
	case event.TextCol:
		return motionLineHome(b, event.TextCol)
	case event.DirNone:
		return nil
	}
	return fmt.Errorf("%w: down %v", ErrFatal, pos)
}

// motionRow moves to row n, one-based. A count of zero or one selects
// the last row, matching the bare "G" binding.
func motionRow(b *Buffer, n int, pos event.Dir) error {
	r := b.text()
	row := r.CharToLine(b.CharCursor())
	nrows := r.LenLines()
	if n > 0 {
		n--
	}
	switch {
	case n == 0:
		return motionDown(b, nrows-1, pos)
	case n < row:
		return motionUp(b, row-n, pos)
	case n <= nrows:
		return motionDown(b, n-row, pos)
	default:
		return motionDown(b, nrows-1, pos)
	}
}

// motionPercent moves to the row n percent into the text, landing on
// its first non-blank.
func motionPercent(b *Buffer, n int) error {
	r := b.text()
	row := r.CharToLine(b.CharCursor())
	nrows := r.LenLines()
	if n >= 100 {
		return motionDown(b, nrows-1, event.TextCol)
	}
	target := (nrows - 1) * n / 100
	if target < row {
		return motionUp(b, row-target, event.TextCol)
	}
	return motionDown(b, target-row, event.TextCol)
}

// motionCursor moves to the absolute char offset n, clamped.
func motionCursor(b *Buffer, n int) error {
	b.SetCursor(n)
	b.sticky = stickyNone
	return nil
}

// charClass partitions text for word motions: whitespace,
// alphanumeric runs and punctuation runs.
type charClass uint8

const (
	classWhitespace charClass = iota
	classAlnum
	classPunct
)

func classOf(ch rune) charClass {
	switch {
	case unicode.IsSpace(ch):
		return classWhitespace
	case unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_':
		return classAlnum
	}
	return classPunct
}

// skipWhitespace moves the cursor past a run of whitespace in dir and
// returns the run length. The cursor never passes the last char of
// the text when travelling right.
func (b *Buffer) skipWhitespace(dir event.Dir) int {
	r := b.text()
	cursor := b.CharCursor()
	n := 0

	if dir == event.Right {
		it := r.CharsAt(cursor)
		for {
			ch, ok := it.Next()
			if !ok || !unicode.IsSpace(ch) {
				break
			}
			n++
		}
		last := r.LenChars() - 1
		if last < 0 {
			last = 0
		}
		cursor += n
		if cursor > last {
			cursor = last
		}
	} else {
		it := r.CharsBefore(cursor)
		for {
			ch, ok := it.Next()
			if !ok || !unicode.IsSpace(ch) {
				break
			}
			n++
		}
		cursor -= n
		if cursor < 0 {
			cursor = 0
		}
	}

	b.SetCursor(cursor)
	return n
}

// skipRun advances the cursor in dir over one maximal run of chars
// accepted by the class of the first char seen, returning the run
// length. Whitespace is never part of a run.
func skipRun(b *Buffer, dir event.Dir, sameRun func(first, ch rune) bool) int {
	r := b.text()
	cursor := b.CharCursor()

	var it *rope.CharIter
	if dir == event.Right {
		it = r.CharsAt(cursor)
	} else {
		it = r.CharsBefore(cursor)
	}

	first, ok := it.Next()
	if !ok || unicode.IsSpace(first) {
		return 0
	}
	n := 1
	for {
		ch, ok := it.Next()
		if !ok || unicode.IsSpace(ch) || !sameRun(first, ch) {
			break
		}
		n++
	}

	if dir == event.Right {
		cursor += n
		if max := r.LenChars(); cursor > max {
			cursor = max
		}
	} else {
		cursor -= n
		if cursor < 0 {
			cursor = 0
		}
	}
	b.SetCursor(cursor)
	return n
}

// skipWordRun advances over one word: a run of alphanumerics or a run
// of punctuation, whichever the first char belongs to.
func (b *Buffer) skipWordRun(dir event.Dir) int {
	return skipRun(b, dir, func(first, ch rune) bool {
		return classOf(ch) == classOf(first)
	})
}

// skipNonWhitespace advances over one WORD: a maximal run of
// non-whitespace.
func (b *Buffer) skipNonWhitespace(dir event.Dir) int {
	return skipRun(b, dir, func(first, ch rune) bool { return true })
}

func motionWords(b *Buffer, m event.Motion) error {
	return wordMotion(b, m, (*Buffer).skipWordRun)
}

func motionWWords(b *Buffer, m event.Motion) error {
	return wordMotion(b, m, (*Buffer).skipNonWhitespace)
}

// wordMotion is the shared engine for word and WORD motions; run
// selects the word-class skipper. Start lands on the first char of a
// word, End on the last.
func wordMotion(b *Buffer, m event.Motion, run func(*Buffer, event.Dir) int) error {
	switch m.Dir {
	case event.Right:
		for i := 0; i < m.Count; i++ {
			ws := b.skipWhitespace(event.Right)
			switch m.Pos {
			case event.Start:
				if ws == 0 {
					run(b, event.Right)
					b.skipWhitespace(event.Right)
				}
			case event.End:
				run(b, event.Right)
				if err := motionLeft(b, 1, event.NoBound); err != nil {
					return err
				}
			default:
				return fmt.Errorf("%w: word %v", ErrFatal, m.Pos)
			}
		}
	case event.Left:
		for i := 0; i < m.Count; i++ {
			switch m.Pos {
			case event.Start:
				b.skipWhitespace(event.Left)
				run(b, event.Left)
			case event.End:
				run(b, event.Left)
				b.skipWhitespace(event.Left)
				if err := motionLeft(b, 1, event.NoBound); err != nil {
					return err
				}
			default:
				return fmt.Errorf("%w: word %v", ErrFatal, m.Pos)
			}
		}
	default:
		return fmt.Errorf("%w: word %v", ErrFatal, m.Dir)
	}
	return nil
}

// motionSentence moves n sentence boundaries in dir. A boundary is a
// '.' followed by whitespace, or two consecutive newlines. On arrival
// the cursor skips forward over whitespace.
func motionSentence(b *Buffer, m event.Motion) error {
	r := b.text()
	cursor := b.CharCursor()
	n := m.Count
	if n < 1 {
		n = 1
	}

	var target int
	switch m.Dir {
	case event.Left:
		it := r.CharsBefore(cursor)
		var prev rune
		hasPrev := false
		// a boundary only counts once some sentence content lies
		// between it and the cursor, so the motion always makes
		// progress past the current sentence's own opening
		content := false
		target = 0
		for i := 0; ; i++ {
			ch, ok := it.Next()
			if !ok {
				target = 0
				break
			}
			boundary := hasPrev && content &&
				((ch == '.' && unicode.IsSpace(prev)) ||
					(ch == '\n' && prev == '\n'))
			if boundary {
				if n--; n == 0 {
					target = cursor - i
					break
				}
			}
			if !unicode.IsSpace(ch) && ch != '.' {
				content = true
			}
			prev, hasPrev = ch, true
		}
	case event.Right:
		it := r.CharsAt(cursor)
		var prev rune
		hasPrev := false
		target = r.LenChars() - 1
		if target < 0 {
			target = 0
		}
		for i := 0; ; i++ {
			ch, ok := it.Next()
			if !ok {
				break
			}
			boundary := hasPrev &&
				((prev == '.' && unicode.IsSpace(ch)) ||
					(prev == '\n' && ch == '\n'))
			if boundary {
				if n--; n == 0 {
					target = cursor + i
					break
				}
			}
			prev, hasPrev = ch, true
		}
	default:
		return fmt.Errorf("%w: sentence %v", ErrFatal, m.Dir)
	}

	b.SetCursor(target)
	b.skipWhitespace(event.Right)
	return nil
}

// motionPara moves n paragraph boundaries in dir. A boundary is a
// blank line, one whose first char is its terminator.
func motionPara(b *Buffer, m event.Motion) error {
	r := b.text()
	cursor := b.CharCursor()
	row := r.CharToLine(cursor)
	n := m.Count
	if n < 1 {
		n = 1
	}

	blank := func(s string) bool {
		content, _ := trimNewline(s)
		return content == ""
	}

	target := cursor
	switch m.Dir {
	case event.Left:
		it := r.LinesBefore(row)
		target = 0
		for l := row - 1; l >= 0; l-- {
			s, ok := it.Next()
			if !ok {
				target = 0
				break
			}
			if blank(s) {
				if n--; n == 0 {
					target = r.LineToChar(l)
					break
				}
			}
		}
	case event.Right:
		it := r.LinesAt(row)
		target = r.LenChars() - 1
		if target < 0 {
			target = 0
		}
		first := true
		for l := row; ; l++ {
			s, ok := it.Next()
			if !ok {
				break
			}
			// the cursor's own line never counts as a boundary
			if !first && blank(s) {
				if n--; n == 0 {
					target = r.LineToChar(l)
					break
				}
			}
			first = false
		}
	default:
		return fmt.Errorf("%w: para %v", ErrFatal, m.Dir)
	}

	b.SetCursor(target)
	return nil
}

// motionBracket moves to the n-th unnested bracket of the motion's
// pair in dir: Right seeks the unmatched close bracket, Left the
// unmatched open. A bracket of the opposite kind opens a nested pair
// which must balance before the target counts. A missing match is a
// no-op.
func motionBracket(b *Buffer, m event.Motion) error {
	r := b.text()
	cursor := b.CharCursor()
	n := m.Count
	if n < 1 {
		n = 1
	}
	nest := 0

	var target, other rune
	var it *rope.CharIter
	switch m.Dir {
	case event.Left:
		target, other = m.Open, m.Close
		it = r.CharsBefore(cursor)
	case event.Right:
		target, other = m.Close, m.Open
		it = r.CharsAt(cursor)
	default:
		return fmt.Errorf("%w: bracket %v", ErrFatal, m.Dir)
	}

	for i := 0; ; i++ {
		ch, ok := it.Next()
		if !ok {
			return nil
		}
		switch {
		case ch == target && nest > 0:
			nest--
		case ch == target:
			if n--; n == 0 {
				if m.Dir == event.Left {
					b.SetCursor(cursor - (i + 1))
				} else {
					b.SetCursor(cursor + i)
				}
				return nil
			}
		case ch == other:
			nest++
		}
	}
}

// motionPattern moves to the n-th occurrence of the motion's pattern
// in dir, wrapping cyclically. Running out of occurrences leaves the
// cursor in place; a pattern that fails to compile surfaces
// search.ErrBadPattern.
func motionPattern(b *Buffer, m event.Motion) error {
	if m.Pattern == "" {
		return nil
	}
	s, err := search.Compile(m.Pattern)
	if err != nil {
		return err
	}

	r := b.text()
	text := r.String()
	byteOff := r.CharToByte(b.CharCursor())

	var matches []search.Match
	switch m.Dir {
	case event.Right:
		matches = s.FindForward(text, byteOff)
	case event.Left:
		matches = s.FindBackward(text, byteOff)
	default:
		return fmt.Errorf("%w: pattern %v", ErrFatal, m.Dir)
	}

	idx := m.Count - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(matches) {
		return nil
	}
	b.SetCursor(r.ByteToChar(matches[idx].Start))
	b.sticky = stickyNone
	return nil
}

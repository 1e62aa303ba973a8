package buffer

import "fmt"

// Cursor is a zero-based column/row screen position. Ordering is
// row-major: a cursor on an earlier row sorts before any cursor on a
// later row regardless of column.
type Cursor struct {
	Col int
	Row int
}

func (c Cursor) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Compare returns -1, 0 or 1 as c sorts before, equal to or after o.
func (c Cursor) Compare(o Cursor) int {
	switch {
	case c.Row < o.Row:
		return -1
	case c.Row > o.Row:
		return 1
	case c.Col < o.Col:
		return -1
	case c.Col > o.Col:
		return 1
	}
	return 0
}

// stickyCol remembers a latched column intent for vertical motions.
// Home latches column zero, End latches end-of-line. Characterwise
// motions clear the latch.
type stickyCol uint8

const (
	stickyNone stickyCol = iota
	stickyHome
	stickyEnd
)

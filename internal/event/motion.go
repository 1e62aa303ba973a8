package event

import (
	"errors"
	"fmt"
)

// ErrBadDirection indicates a motion carried a direction qualifier the
// target operation does not support. This is a caller contract
// violation, not a user-facing condition.
var ErrBadDirection = errors.New("invalid motion direction")

// Dir qualifies a motion with a direction or position.
type Dir uint8

const (
	// DirNone is the absence of a qualifier.
	DirNone Dir = iota

	// Left and Right are travel directions.
	Left
	Right

	// Start and End select the near or far edge of a word motion.
	Start
	End

	// LineBound clamps a characterwise motion to the current line.
	LineBound

	// NoBound lets a characterwise motion walk across line boundaries.
	NoBound

	// TextCol positions on the first (or last) non-blank column.
	TextCol

	// StickyCol latches the cursor column for subsequent vertical
	// motions, until the next characterwise motion.
	StickyCol
)

// String returns the qualifier name.
func (d Dir) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Start:
		return "start"
	case End:
		return "end"
	case LineBound:
		return "line_bound"
	case NoBound:
		return "no_bound"
	case TextCol:
		return "text_col"
	case StickyCol:
		return "sticky_col"
	case DirNone:
		return "none"
	}
	return "unknown"
}

// MotionKind identifies a cursor motion.
type MotionKind uint8

const (
	MotionNone MotionKind = iota

	// Characterwise motions.
	MotionLeft
	MotionRight
	MotionLineHome
	MotionLineEnd
	MotionColumn
	MotionCharFind   // find the n-th occurrence of a char in the line
	MotionCharTill   // like CharFind but stop one character short
	MotionCharRepeat // repeat the last CharFind/CharTill

	// Linewise motions.
	MotionUp
	MotionDown
	MotionRow
	MotionPercent
	MotionCursor

	// Word, sentence and paragraph motions.
	MotionWord
	MotionWWord
	MotionSentence
	MotionPara

	// Other motions.
	MotionBracket
	MotionPattern
	MotionPatternRepeat
)

// String returns the motion name.
func (k MotionKind) String() string {
	switch k {
	case MotionLeft:
		return "left"
	case MotionRight:
		return "right"
	case MotionLineHome:
		return "line_home"
	case MotionLineEnd:
		return "line_end"
	case MotionColumn:
		return "column"
	case MotionCharFind:
		return "char_find"
	case MotionCharTill:
		return "char_till"
	case MotionCharRepeat:
		return "char_repeat"
	case MotionUp:
		return "up"
	case MotionDown:
		return "down"
	case MotionRow:
		return "row"
	case MotionPercent:
		return "percent"
	case MotionCursor:
		return "cursor"
	case MotionWord:
		return "word"
	case MotionWWord:
		return "wword"
	case MotionSentence:
		return "sentence"
	case MotionPara:
		return "para"
	case MotionBracket:
		return "bracket"
	case MotionPattern:
		return "pattern"
	case MotionPatternRepeat:
		return "pattern_repeat"
	}
	return "none"
}

// Motion is a tagged cursor-motion descriptor. It is pure data: the
// motion engine interprets it, the descriptor itself never mutates
// buffer state. Which fields are meaningful depends on Kind.
type Motion struct {
	Kind  MotionKind
	Count int

	// Dir is the travel direction (Left/Right) for find-char, word,
	// sentence, paragraph, bracket and pattern motions.
	Dir Dir

	// Pos is the positional qualifier: LineBound/NoBound for
	// Left/Right, TextCol/StickyCol/DirNone for line and vertical
	// motions, Start/End for word motions.
	Pos Dir

	// Char is the target of a find-char motion. Zero means absent.
	Char rune

	// Open and Close are the bracket pair for a bracket motion.
	Open, Close rune

	// Pattern is the search pattern for a pattern motion.
	Pattern string
}

// DirXor returns a copy of the motion with count n and its direction
// flipped when d is Left, kept when d is Right. Used by the repeat
// motions (";" "," "n" "N").
func (m Motion) DirXor(n int, d Dir) (Motion, error) {
	out := m
	out.Count = n
	switch {
	case m.Dir == Left && d == Right:
		out.Dir = Left
	case m.Dir == Right && d == Right:
		out.Dir = Right
	case m.Dir == Left && d == Left:
		out.Dir = Right
	case m.Dir == Right && d == Left:
		out.Dir = Left
	default:
		return out, fmt.Errorf("%w: %s xor %s", ErrBadDirection, m.Dir, d)
	}
	return out, nil
}

// MoveLeft moves count characters left; pos is LineBound or NoBound.
func MoveLeft(count int, pos Dir) Motion {
	return Motion{Kind: MotionLeft, Count: count, Pos: pos}
}

// MoveRight moves count characters right; pos is LineBound or NoBound.
func MoveRight(count int, pos Dir) Motion {
	return Motion{Kind: MotionRight, Count: count, Pos: pos}
}

// LineHome moves to column 0; pos is TextCol, StickyCol or DirNone.
func LineHome(pos Dir) Motion {
	return Motion{Kind: MotionLineHome, Pos: pos}
}

// LineEnd moves to the last column of the line count-1 lines down; pos
// is TextCol, StickyCol or DirNone.
func LineEnd(count int, pos Dir) Motion {
	return Motion{Kind: MotionLineEnd, Count: count, Pos: pos}
}

// Column moves to column count, clamped to the line.
func Column(count int) Motion {
	return Motion{Kind: MotionColumn, Count: count}
}

// CharFind finds the count-th occurrence of ch within the line.
func CharFind(count int, ch rune, dir Dir) Motion {
	return Motion{Kind: MotionCharFind, Count: count, Char: ch, Dir: dir}
}

// CharTill is CharFind stopping one character short of the target.
func CharTill(count int, ch rune, dir Dir) Motion {
	return Motion{Kind: MotionCharTill, Count: count, Char: ch, Dir: dir}
}

// CharRepeat repeats the last find-char motion; dir Left flips the
// original direction.
func CharRepeat(count int, dir Dir) Motion {
	return Motion{Kind: MotionCharRepeat, Count: count, Dir: dir}
}

// Up moves count lines up; pos is TextCol or DirNone.
func Up(count int, pos Dir) Motion {
	return Motion{Kind: MotionUp, Count: count, Pos: pos}
}

// Down moves count lines down; pos is TextCol or DirNone.
func Down(count int, pos Dir) Motion {
	return Motion{Kind: MotionDown, Count: count, Pos: pos}
}

// Row moves to the count-th line (1-based); count 0 selects the last
// line. Pos is TextCol or DirNone.
func Row(count int, pos Dir) Motion {
	return Motion{Kind: MotionRow, Count: count, Pos: pos}
}

// Percent moves to the line at count percent of the buffer.
func Percent(count int) Motion {
	return Motion{Kind: MotionPercent, Count: count}
}

// Goto moves to the absolute char offset count, clamped to the buffer.
func Goto(count int) Motion {
	return Motion{Kind: MotionCursor, Count: count}
}

// Word moves count words; dir is the travel direction, pos Start or End.
func Word(count int, dir, pos Dir) Motion {
	return Motion{Kind: MotionWord, Count: count, Dir: dir, Pos: pos}
}

// WWord moves count WORDs (whitespace-delimited words).
func WWord(count int, dir, pos Dir) Motion {
	return Motion{Kind: MotionWWord, Count: count, Dir: dir, Pos: pos}
}

// Sentence moves count sentences in dir.
func Sentence(count int, dir Dir) Motion {
	return Motion{Kind: MotionSentence, Count: count, Dir: dir}
}

// Para moves count paragraphs in dir.
func Para(count int, dir Dir) Motion {
	return Motion{Kind: MotionPara, Count: count, Dir: dir}
}

// Bracket moves to the count-th unnested bracket of the pair in dir:
// the close bracket travelling Right, the open travelling Left.
func Bracket(count int, open, close rune, dir Dir) Motion {
	return Motion{Kind: MotionBracket, Count: count, Open: open, Close: close, Dir: dir}
}

// Pattern moves to the count-th match of pattern in dir.
func Pattern(count int, pattern string, dir Dir) Motion {
	return Motion{Kind: MotionPattern, Count: count, Pattern: pattern, Dir: dir}
}

// PatternRepeat repeats the last pattern motion; dir Left flips the
// original direction.
func PatternRepeat(count int, dir Dir) Motion {
	return Motion{Kind: MotionPatternRepeat, Count: count, Dir: dir}
}

// Package buffer is the editing core: a rope-backed text buffer with a
// persistent edit history, a Normal/Insert mode machine, and the vi
// motion set. Events enter through OnEvent; everything else is
// accessors and setup.
package buffer

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/modal/internal/engine/history"
	"github.com/dshills/modal/internal/engine/rope"
	"github.com/dshills/modal/internal/event"
)

type bufMode uint8

const (
	modeNormal bufMode = iota
	modeInsert
)

func (m bufMode) String() string {
	if m == modeInsert {
		return "insert"
	}
	return "normal"
}

// Change is the payload delivered to change listeners after a
// committed mutation.
type Change struct {
	ID     string
	Cursor int
	Chars  int
	Lines  int
}

// Buffer holds one text document. The text lives in a persistent
// history arena; the buffer tracks the head node, the mode tag and
// per-mode scratch state. Buffers are not safe for concurrent use;
// callers serialize access per buffer.
type Buffer struct {
	id       string
	num      int
	readOnly bool
	format   Format
	tabWidth int

	arena *history.Arena
	head  history.NodeID
	mode  bufMode

	sticky       stickyCol
	lastFindChar event.Motion
	lastPattern  event.Motion

	// insert session: replay count and the event log feeding it
	insertRepeat int
	insertLog    []event.Event

	listeners map[string]func(Change)
}

// New creates an empty buffer.
func New(id string, opts ...Option) *Buffer {
	b := &Buffer{
		id:       id,
		format:   FormatUnix,
		tabWidth: 4,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.arena = history.NewArena()
	b.head = b.arena.Start(rope.New())
	return b
}

// FromString creates a buffer with initial content.
func FromString(id, s string, opts ...Option) *Buffer {
	b := New(id, opts...)
	b.arena.SetText(b.head, rope.FromString(s))
	return b
}

// FromReader creates a buffer from a content stream. A read failure
// returns ErrFailBuffer; no buffer is produced.
func FromReader(id string, r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFailBuffer, id, err)
	}
	return FromString(id, string(data), opts...), nil
}

// text returns the head node's rope.
func (b *Buffer) text() rope.Rope {
	return b.arena.Text(b.head)
}

// ID returns the buffer's identifier, typically a file location.
func (b *Buffer) ID() string { return b.id }

// Num returns the buffer's registry number, zero when unregistered.
func (b *Buffer) Num() int { return b.num }

// Mode reports the current mode, "normal" or "insert".
func (b *Buffer) Mode() string { return b.mode.String() }

// IsReadOnly reports whether mutating events are rejected.
func (b *Buffer) IsReadOnly() bool { return b.readOnly }

// Format returns the buffer's line-ending format.
func (b *Buffer) Format() Format { return b.format }

// IsModified reports whether any edit has been committed since the
// buffer was created or last marked clean. The head node acquires
// children only through commits.
func (b *Buffer) IsModified() bool {
	return len(b.arena.Children(b.head)) > 0 || b.arena.Parent(b.head) != history.NoNode
}

// String materializes the whole text.
func (b *Buffer) String() string { return b.text().String() }

// NChars returns the text length in chars.
func (b *Buffer) NChars() int { return b.text().LenChars() }

// NLines returns the number of lines, counting the final line even
// when it has no terminator.
func (b *Buffer) NLines() int { return b.text().LenLines() }

// Line returns line l including its terminator, if any.
func (b *Buffer) Line(l int) string { return b.text().Line(l) }

// LineLen returns the char length of line l including its terminator.
func (b *Buffer) LineLen(l int) int { return b.text().LineLen(l) }

// LineToChar returns the char offset of the first char of line l.
func (b *Buffer) LineToChar(l int) int { return b.text().LineToChar(l) }

// CharToLine returns the line holding char offset c.
func (b *Buffer) CharToLine(c int) int { return b.text().CharToLine(c) }

// CharToByte converts a char offset to a byte offset.
func (b *Buffer) CharToByte(c int) int { return b.text().CharToByte(c) }

// ByteToChar converts a byte offset to a char offset.
func (b *Buffer) ByteToChar(off int) int { return b.text().ByteToChar(off) }

// CharCursor returns the cursor as a char offset into the text.
func (b *Buffer) CharCursor() int { return b.arena.Cursor(b.head) }

// XYCursor returns the cursor as a column/row pair.
func (b *Buffer) XYCursor() Cursor {
	r := b.text()
	cursor := b.CharCursor()
	row := r.CharToLine(cursor)
	return Cursor{Col: cursor - r.LineToChar(row), Row: row}
}

// SetCursor moves the cursor to char offset c, clamped to the text.
func (b *Buffer) SetCursor(c int) *Buffer {
	n := b.NChars()
	if c > n {
		c = n
	}
	if c < 0 {
		c = 0
	}
	b.arena.SetCursor(b.head, c)
	return b
}

// SetReadOnly toggles rejection of mutating events.
func (b *Buffer) SetReadOnly(ro bool) *Buffer {
	b.readOnly = ro
	return b
}

// SetFormat sets the line-ending format for subsequent edits.
func (b *Buffer) SetFormat(f Format) *Buffer {
	b.format = f
	return b
}

// CharsAt returns a char iterator from offset c travelling in dir,
// which must be Left or Right.
func (b *Buffer) CharsAt(c int, dir event.Dir) (*rope.CharIter, error) {
	switch dir {
	case event.Right:
		return b.text().CharsAt(c), nil
	case event.Left:
		return b.text().CharsBefore(c), nil
	}
	return nil, fmt.Errorf("%w: chars-at %v", ErrFatal, dir)
}

// LinesAt returns a line iterator from line l travelling in dir,
// which must be Left or Right.
func (b *Buffer) LinesAt(l int, dir event.Dir) (*rope.LineIter, error) {
	switch dir {
	case event.Right:
		return b.text().LinesAt(l), nil
	case event.Left:
		return b.text().LinesBefore(l), nil
	}
	return nil, fmt.Errorf("%w: lines-at %v", ErrFatal, dir)
}

// Subscribe registers fn to run after every committed mutation and
// returns a token for Unsubscribe.
func (b *Buffer) Subscribe(fn func(Change)) string {
	if b.listeners == nil {
		b.listeners = make(map[string]func(Change))
	}
	token := uuid.NewString()
	b.listeners[token] = fn
	return token
}

// Unsubscribe removes the listener registered under token.
func (b *Buffer) Unsubscribe(token string) {
	delete(b.listeners, token)
}

func (b *Buffer) notify() {
	if len(b.listeners) == 0 {
		return
	}
	ch := Change{
		ID:     b.id,
		Cursor: b.CharCursor(),
		Chars:  b.NChars(),
		Lines:  b.NLines(),
	}
	for _, fn := range b.listeners {
		fn(ch)
	}
}

// OnEvent runs one event against the buffer and returns the residual
// event; a fully consumed event comes back as Noop. Errors leave the
// text untouched.
func (b *Buffer) OnEvent(e event.Event) (event.Event, error) {
	switch b.mode {
	case modeInsert:
		return b.handleInsert(e)
	default:
		return b.handleNormal(e)
	}
}

func (b *Buffer) handleNormal(e event.Event) (event.Event, error) {
	switch e := e.(type) {
	case event.Switch:
		if e.Count == 0 {
			return event.Noop{}, nil
		}
		if err := b.enterInsert(e); err != nil {
			return event.Noop{}, err
		}
		return event.Noop{}, nil
	case event.Move:
		return b.runMotion(e.Motion)
	}
	return e, nil
}

// runMotion dispatches one motion in normal mode. Unknown motion
// kinds pass through unconsumed.
func (b *Buffer) runMotion(m event.Motion) (event.Event, error) {
	var err error
	switch m.Kind {
	case event.MotionLeft:
		err = motionLeft(b, m.Count, m.Pos)
	case event.MotionRight:
		err = motionRight(b, m.Count, m.Pos)
	case event.MotionLineHome:
		err = motionLineHome(b, m.Pos)
	case event.MotionLineEnd:
		err = motionLineEnd(b, m.Count, m.Pos)
	case event.MotionColumn:
		err = motionColumn(b, m.Count)
	case event.MotionCharFind, event.MotionCharTill:
		b.lastFindChar = m
		err = motionChar(b, m)
	case event.MotionCharRepeat:
		if b.lastFindChar.Kind == event.MotionNone {
			return event.Noop{}, nil
		}
		var rm event.Motion
		rm, err = b.lastFindChar.DirXor(m.Count, m.Dir)
		if err == nil {
			err = motionChar(b, rm)
		}
	case event.MotionUp:
		err = motionUp(b, m.Count, m.Pos)
	case event.MotionDown:
		err = motionDown(b, m.Count, m.Pos)
	case event.MotionRow:
		err = motionRow(b, m.Count, m.Pos)
	case event.MotionPercent:
		err = motionPercent(b, m.Count)
	case event.MotionCursor:
		err = motionCursor(b, m.Count)
	case event.MotionWord:
		err = motionWords(b, m)
	case event.MotionWWord:
		err = motionWWords(b, m)
	case event.MotionSentence:
		err = motionSentence(b, m)
	case event.MotionPara:
		err = motionPara(b, m)
	case event.MotionBracket:
		err = motionBracket(b, m)
	case event.MotionPattern:
		if m.Pattern == "" {
			return event.Noop{}, nil
		}
		b.lastPattern = m
		err = motionPattern(b, m)
	case event.MotionPatternRepeat:
		if b.lastPattern.Kind == event.MotionNone {
			return event.Noop{}, nil
		}
		var rm event.Motion
		rm, err = b.lastPattern.DirXor(m.Count, m.Dir)
		if err == nil {
			err = motionPattern(b, rm)
		}
	default:
		return event.Move{Motion: m}, nil
	}
	if err != nil {
		return event.Noop{}, err
	}
	return event.Noop{}, nil
}

// enterInsert performs the modal entry positioning for a mode switch
// and flips the mode tag. The repeat count is banked for replay on
// Esc.
func (b *Buffer) enterInsert(sw event.Switch) error {
	if b.readOnly {
		return ErrReadOnly
	}
	b.insertRepeat = sw.Count - 1
	b.insertLog = nil

	switch sw.To {
	case event.SwitchInsert:
		if sw.Pos == event.TextCol {
			if err := motionLineHome(b, event.TextCol); err != nil {
				return err
			}
		}
	case event.SwitchAppend:
		if sw.Pos == event.End {
			if err := motionLineEnd(b, 1, event.DirNone); err != nil {
				return err
			}
		}
		b.stepAppend()
	case event.SwitchOpen:
		switch sw.Pos {
		case event.Left:
			if err := motionLineHome(b, event.DirNone); err != nil {
				return err
			}
			if err := b.cmdInsertChar('\n'); err != nil {
				return err
			}
			b.SetCursor(b.CharCursor() - 1)
		case event.Right:
			if err := motionLineEnd(b, 1, event.DirNone); err != nil {
				return err
			}
			b.stepAppend()
			if err := b.cmdInsertChar('\n'); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: open %v", ErrFatal, sw.Pos)
		}
	default:
		return fmt.Errorf("%w: switch %v", ErrFatal, sw.To)
	}

	b.mode = modeInsert
	return nil
}

// stepAppend moves the cursor one char right, allowing it to rest on
// the end-of-line insert position past the last content char.
func (b *Buffer) stepAppend() {
	r := b.text()
	cursor := b.CharCursor()
	row := r.CharToLine(cursor)
	content, _ := trimNewline(r.Line(row))
	end := r.LineToChar(row) + utf8.RuneCountInString(content)
	if cursor < end {
		cursor++
	} else {
		cursor = end
	}
	b.SetCursor(cursor)
}

func (b *Buffer) handleInsert(e event.Event) (event.Event, error) {
	switch e.(type) {
	case event.Noop:
		return e, nil
	case event.Esc:
		if err := b.replayInserts(); err != nil {
			return event.Noop{}, err
		}
		if err := motionLeft(b, 1, event.LineBound); err != nil {
			return event.Noop{}, err
		}
		b.mode = modeNormal
		return event.Noop{}, nil
	}

	b.insertLog = append(b.insertLog, e)
	return b.applyInsert(e)
}

// applyInsert runs one insert-mode event. Esc never reaches here; it
// is consumed by handleInsert before the log is appended.
func (b *Buffer) applyInsert(e event.Event) (event.Event, error) {
	switch e := e.(type) {
	case event.Char:
		return event.Noop{}, b.cmdInsertChar(e.Rune)
	case event.Enter:
		return event.Noop{}, b.cmdInsertChar('\n')
	case event.Tab:
		return event.Noop{}, b.cmdInsertChar('\t')
	case event.Backspace:
		return event.Noop{}, b.cmdBackspace(1)
	case event.Delete:
		cursor := b.CharCursor()
		return event.Noop{}, b.cmdRemove(cursor, cursor+1)
	case event.Move:
		m := e.Motion
		var err error
		switch m.Kind {
		case event.MotionLeft:
			err = motionLeft(b, m.Count, m.Pos)
		case event.MotionRight:
			err = motionRight(b, m.Count, m.Pos)
		case event.MotionUp:
			err = motionUp(b, m.Count, m.Pos)
		case event.MotionDown:
			err = motionDown(b, m.Count, m.Pos)
		case event.MotionLineHome:
			err = motionLineHome(b, m.Pos)
		case event.MotionLineEnd:
			err = motionLineEnd(b, m.Count, m.Pos)
		default:
			return e, nil
		}
		return event.Noop{}, err
	}
	return e, nil
}

// replayInserts repeats the banked insert session. Only sessions made
// purely of text events replay; a session containing motions is not a
// linear text run and replays zero extra times.
func (b *Buffer) replayInserts() error {
	log := b.insertLog
	repeat := b.insertRepeat
	b.insertLog = nil
	b.insertRepeat = 0

	if repeat <= 0 || !replayable(log) {
		return nil
	}
	for i := 0; i < repeat; i++ {
		for _, e := range log {
			if _, err := b.applyInsert(e); err != nil {
				return err
			}
		}
	}
	return nil
}

func replayable(log []event.Event) bool {
	for _, e := range log {
		switch e.(type) {
		case event.Char, event.Enter, event.Tab, event.Backspace, event.Delete:
		default:
			return false
		}
	}
	return true
}

// commit advances the head to a fresh history node so the mutation
// about to happen leaves every prior version intact.
func (b *Buffer) commit() {
	b.head = b.arena.Advance(b.head)
}

func (b *Buffer) cmdInsertChar(ch rune) error {
	if b.readOnly {
		return ErrReadOnly
	}
	b.commit()
	cursor := b.arena.Cursor(b.head)
	b.arena.SetText(b.head, b.arena.Text(b.head).InsertChar(cursor, ch))
	b.arena.SetCursor(b.head, cursor+1)
	b.notify()
	return nil
}

// cmdBackspace removes up to n chars before the cursor, saturating at
// the start of the text, and leaves the cursor on the removal point.
func (b *Buffer) cmdBackspace(n int) error {
	if b.readOnly {
		return ErrReadOnly
	}
	b.commit()
	cursor := b.arena.Cursor(b.head)
	if cursor > 0 {
		from := cursor - n
		if from < 0 {
			from = 0
		}
		b.arena.SetText(b.head, b.arena.Text(b.head).Remove(from, cursor))
		b.arena.SetCursor(b.head, from)
	}
	b.notify()
	return nil
}

// cmdRemove deletes chars in [from, to), saturating both bounds at
// the text length. The cursor does not move.
func (b *Buffer) cmdRemove(from, to int) error {
	if b.readOnly {
		return ErrReadOnly
	}
	b.commit()
	text := b.arena.Text(b.head)
	n := text.LenChars()
	if to > n {
		to = n
	}
	if from > n {
		from = n
	}
	if from < to {
		b.arena.SetText(b.head, text.Remove(from, to))
	}
	b.notify()
	return nil
}

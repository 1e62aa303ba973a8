package buffer

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/modal/internal/event"
)

func feed(t *testing.T, b *Buffer, events ...event.Event) {
	t.Helper()
	for _, e := range events {
		if _, err := b.OnEvent(e); err != nil {
			t.Fatalf("OnEvent(%s) error: %v", e.Kind(), err)
		}
	}
}

func typeText(t *testing.T, b *Buffer, s string) {
	t.Helper()
	for _, ch := range s {
		feed(t, b, event.Char{Rune: ch})
	}
}

func TestNewBuffer(t *testing.T) {
	b := New("scratch")
	if got := b.String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
	if got := b.Mode(); got != "normal" {
		t.Errorf("Mode() = %q, want normal", got)
	}
	if b.IsModified() {
		t.Error("fresh buffer reports modified")
	}
	if got := b.CharCursor(); got != 0 {
		t.Errorf("cursor = %d, want 0", got)
	}
}

func TestFromReader(t *testing.T) {
	b, err := FromReader("r1", strings.NewReader("hello\nworld"))
	if err != nil {
		t.Fatal(err)
	}
	if got := b.String(); got != "hello\nworld" {
		t.Errorf("String() = %q", got)
	}
	if got := b.NLines(); got != 2 {
		t.Errorf("NLines() = %d, want 2", got)
	}
}

type failReader struct{}

func (failReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestFromReaderFailure(t *testing.T) {
	_, err := FromReader("bad", failReader{})
	if !errors.Is(err, ErrFailBuffer) {
		t.Errorf("error = %v, want ErrFailBuffer", err)
	}
}

func TestInsertTyping(t *testing.T) {
	b := New("t")
	feed(t, b, event.Switch{To: event.SwitchInsert, Count: 1})
	if got := b.Mode(); got != "insert" {
		t.Fatalf("Mode() = %q, want insert", got)
	}
	typeText(t, b, "hello")
	feed(t, b, event.Enter{})
	typeText(t, b, "world")
	feed(t, b, event.Esc{})

	if got := b.String(); got != "hello\nworld" {
		t.Errorf("String() = %q, want %q", got, "hello\nworld")
	}
	if got := b.Mode(); got != "normal" {
		t.Errorf("Mode() = %q, want normal", got)
	}
	// esc steps the cursor back onto the last char
	if got := b.CharCursor(); got != 10 {
		t.Errorf("cursor = %d, want 10", got)
	}
}

func TestIsModifiedTransitions(t *testing.T) {
	b := FromString("m", "abc")
	if b.IsModified() {
		t.Error("unedited buffer reports modified")
	}
	feed(t, b, event.Switch{To: event.SwitchInsert, Count: 1}, event.Char{Rune: 'x'})
	if !b.IsModified() {
		t.Error("edited buffer reports unmodified")
	}
}

func TestBackspaceDelete(t *testing.T) {
	b := FromString("bd", "abcd")
	feed(t, b, event.Switch{To: event.SwitchInsert, Count: 1})
	feed(t, b, event.Move{Motion: event.MoveRight(2, event.LineBound)})
	feed(t, b, event.Backspace{})
	if got := b.String(); got != "acd" {
		t.Fatalf("after backspace: %q, want %q", got, "acd")
	}
	if got := b.CharCursor(); got != 1 {
		t.Errorf("cursor after backspace = %d, want 1", got)
	}
	feed(t, b, event.Delete{})
	if got := b.String(); got != "ad" {
		t.Errorf("after delete: %q, want %q", got, "ad")
	}
	if got := b.CharCursor(); got != 1 {
		t.Errorf("cursor after delete = %d, want 1", got)
	}
}

func TestBackspaceAtStart(t *testing.T) {
	b := New("edge")
	feed(t, b, event.Switch{To: event.SwitchInsert, Count: 1}, event.Backspace{})
	if got := b.String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
	feed(t, b, event.Delete{})
	if got := b.String(); got != "" {
		t.Errorf("String() after delete = %q, want empty", got)
	}
}

func TestInsertRepeatSession(t *testing.T) {
	b := New("rep")
	// 3iX<esc> inserts XXX
	feed(t, b, event.Switch{To: event.SwitchInsert, Count: 3})
	typeText(t, b, "X")
	feed(t, b, event.Esc{})
	if got := b.String(); got != "XXX" {
		t.Errorf("String() = %q, want %q", got, "XXX")
	}
}

func TestInsertRepeatMultiChar(t *testing.T) {
	b := New("rep2")
	feed(t, b, event.Switch{To: event.SwitchInsert, Count: 2})
	typeText(t, b, "ab")
	feed(t, b, event.Esc{})
	if got := b.String(); got != "abab" {
		t.Errorf("String() = %q, want %q", got, "abab")
	}
}

func TestInsertRepeatSkippedForMotionSession(t *testing.T) {
	b := FromString("rep3", "zz")
	feed(t, b, event.Switch{To: event.SwitchInsert, Count: 3})
	typeText(t, b, "X")
	feed(t, b, event.Move{Motion: event.MoveRight(1, event.LineBound)})
	typeText(t, b, "Y")
	feed(t, b, event.Esc{})
	// the session moved the cursor, so it replays zero extra times
	if got := b.String(); got != "XzYz" {
		t.Errorf("String() = %q, want %q", got, "XzYz")
	}
}

func TestAppendEntry(t *testing.T) {
	b := FromString("app", "ab")
	feed(t, b, event.Switch{To: event.SwitchAppend, Count: 1})
	typeText(t, b, "X")
	feed(t, b, event.Esc{})
	if got := b.String(); got != "aXb" {
		t.Errorf("a: String() = %q, want %q", got, "aXb")
	}
}

func TestAppendEndEntry(t *testing.T) {
	b := FromString("appA", "ab\ncd")
	feed(t, b, event.Switch{To: event.SwitchAppend, Count: 1, Pos: event.End})
	typeText(t, b, "X")
	feed(t, b, event.Esc{})
	if got := b.String(); got != "abX\ncd" {
		t.Errorf("A: String() = %q, want %q", got, "abX\ncd")
	}
}

func TestInsertTextColEntry(t *testing.T) {
	b := FromString("I", "  ab")
	feed(t, b, event.Move{Motion: event.MoveRight(3, event.LineBound)})
	feed(t, b, event.Switch{To: event.SwitchInsert, Count: 1, Pos: event.TextCol})
	typeText(t, b, "X")
	feed(t, b, event.Esc{})
	if got := b.String(); got != "  Xab" {
		t.Errorf("I: String() = %q, want %q", got, "  Xab")
	}
}

func TestOpenBelow(t *testing.T) {
	b := FromString("o", "ab\ncd")
	feed(t, b, event.Switch{To: event.SwitchOpen, Count: 1, Pos: event.Right})
	typeText(t, b, "X")
	feed(t, b, event.Esc{})
	if got := b.String(); got != "ab\nX\ncd" {
		t.Errorf("o: String() = %q, want %q", got, "ab\nX\ncd")
	}
}

func TestOpenAbove(t *testing.T) {
	b := FromString("O", "ab\ncd")
	feed(t, b, event.Move{Motion: event.Down(1, event.DirNone)})
	feed(t, b, event.Switch{To: event.SwitchOpen, Count: 1, Pos: event.Left})
	typeText(t, b, "X")
	feed(t, b, event.Esc{})
	if got := b.String(); got != "ab\nX\ncd" {
		t.Errorf("O: String() = %q, want %q", got, "ab\nX\ncd")
	}
}

func TestSwitchCountZeroIsNoop(t *testing.T) {
	b := FromString("z", "ab")
	feed(t, b, event.Switch{To: event.SwitchInsert, Count: 0})
	if got := b.Mode(); got != "normal" {
		t.Errorf("Mode() = %q, want normal", got)
	}
}

func TestReadOnly(t *testing.T) {
	b := FromString("ro", "ab", WithReadOnly())
	_, err := b.OnEvent(event.Switch{To: event.SwitchInsert, Count: 1})
	if !errors.Is(err, ErrReadOnly) {
		t.Errorf("error = %v, want ErrReadOnly", err)
	}
	if got := b.String(); got != "ab" {
		t.Errorf("text changed to %q", got)
	}
	if got := b.Mode(); got != "normal" {
		t.Errorf("Mode() = %q, want normal", got)
	}
}

func TestUnknownEventPassesThrough(t *testing.T) {
	b := FromString("pt", "ab")
	residual, err := b.OnEvent(event.Char{Rune: 'x'})
	if err != nil {
		t.Fatal(err)
	}
	// chars are insert-mode events; normal mode returns them unconsumed
	if _, ok := residual.(event.Char); !ok {
		t.Errorf("residual = %T, want event.Char", residual)
	}
	if got := b.String(); got != "ab" {
		t.Errorf("text changed to %q", got)
	}
}

func TestXYCursor(t *testing.T) {
	b := FromString("xy", "abc\ndef")
	b.SetCursor(5)
	got := b.XYCursor()
	if got.Row != 1 || got.Col != 1 {
		t.Errorf("XYCursor() = %v, want (1,1)", got)
	}
}

func TestSetCursorClamps(t *testing.T) {
	b := FromString("cl", "abc")
	b.SetCursor(99)
	if got := b.CharCursor(); got != 3 {
		t.Errorf("cursor = %d, want 3", got)
	}
	b.SetCursor(-1)
	if got := b.CharCursor(); got != 0 {
		t.Errorf("cursor = %d, want 0", got)
	}
}

func TestCursorCompare(t *testing.T) {
	tests := []struct {
		a, b Cursor
		want int
	}{
		{Cursor{Col: 0, Row: 0}, Cursor{Col: 0, Row: 0}, 0},
		{Cursor{Col: 5, Row: 0}, Cursor{Col: 0, Row: 1}, -1},
		{Cursor{Col: 0, Row: 2}, Cursor{Col: 9, Row: 1}, 1},
		{Cursor{Col: 1, Row: 1}, Cursor{Col: 2, Row: 1}, -1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSubscribe(t *testing.T) {
	b := New("sub")
	var changes []Change
	token := b.Subscribe(func(c Change) { changes = append(changes, c) })

	feed(t, b, event.Switch{To: event.SwitchInsert, Count: 1})
	typeText(t, b, "ab")
	if len(changes) != 2 {
		t.Fatalf("got %d notifications, want 2", len(changes))
	}
	last := changes[len(changes)-1]
	if last.Chars != 2 || last.Cursor != 2 {
		t.Errorf("last change = %+v", last)
	}

	b.Unsubscribe(token)
	typeText(t, b, "c")
	if len(changes) != 2 {
		t.Errorf("got %d notifications after unsubscribe, want 2", len(changes))
	}
}

func TestRegistryNumbering(t *testing.T) {
	g := NewRegistry()
	b1 := g.CreateFromString("one", "")
	b2 := g.CreateFromString("two", "")
	if b1.Num() != 1 || b2.Num() != 2 {
		t.Errorf("nums = %d,%d, want 1,2", b1.Num(), b2.Num())
	}
	g.Remove("one")
	b3 := g.CreateFromString("three", "")
	if b3.Num() != 3 {
		t.Errorf("num after remove = %d, want 3", b3.Num())
	}
	if g.Get("two") != b2 {
		t.Error("Get returned wrong buffer")
	}
	if g.Get("one") != nil {
		t.Error("removed buffer still registered")
	}
}

func TestHistoryIsolationThroughEdits(t *testing.T) {
	b := FromString("hist", "keep")
	feed(t, b, event.Switch{To: event.SwitchAppend, Count: 1, Pos: event.End})
	typeText(t, b, "!!")
	feed(t, b, event.Esc{})
	if got := b.String(); got != "keep!!" {
		t.Errorf("String() = %q, want %q", got, "keep!!")
	}
}

func TestDisplayWidth(t *testing.T) {
	b := FromString("w", "a\tb", WithTabWidth(4))
	// 'a' is 1 col, tab advances to col 4, 'b' is 1 col
	if got := b.DisplayWidth(0); got != 5 {
		t.Errorf("DisplayWidth = %d, want 5", got)
	}
}

func TestTrimNewline(t *testing.T) {
	tests := []struct {
		in   string
		out  string
		n    int
	}{
		{"abc\n", "abc", 1},
		{"abc\r\n", "abc", 2},
		{"abc\r", "abc", 1},
		{"abc", "abc", 0},
		{"", "", 0},
		{"\n", "", 1},
	}
	for _, tt := range tests {
		out, n := trimNewline(tt.in)
		if out != tt.out || n != tt.n {
			t.Errorf("trimNewline(%q) = %q,%d, want %q,%d", tt.in, out, n, tt.out, tt.n)
		}
	}
}

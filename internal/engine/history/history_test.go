package history

import (
	"testing"

	"github.com/dshills/modal/internal/engine/rope"
)

func TestStart(t *testing.T) {
	a := NewArena()
	root := a.Start(rope.FromString("hello"))

	if got := a.Text(root).String(); got != "hello" {
		t.Errorf("Text = %q, want %q", got, "hello")
	}
	if got := a.Parent(root); got != NoNode {
		t.Errorf("root parent = %v, want NoNode", got)
	}
	if got := len(a.Children(root)); got != 0 {
		t.Errorf("root children = %d, want 0", got)
	}
	if got := a.Len(); got != 1 {
		t.Errorf("Len = %d, want 1", got)
	}
}

func TestAdvanceLinks(t *testing.T) {
	a := NewArena()
	root := a.Start(rope.FromString("abc"))
	a.SetCursor(root, 2)

	head := a.Advance(root)

	if got := a.Text(head).String(); got != "abc" {
		t.Errorf("head text = %q, want clone of %q", got, "abc")
	}
	if got := a.Cursor(head); got != 2 {
		t.Errorf("head cursor = %d, want 2", got)
	}
	if got := a.Parent(head); got != NoNode {
		t.Errorf("head parent = %v, want NoNode", got)
	}
	if got := a.Parent(root); got != head {
		t.Errorf("old head parent = %v, want %v", got, head)
	}
	children := a.Children(head)
	if len(children) != 1 || children[0] != root {
		t.Errorf("head children = %v, want [%v]", children, root)
	}
}

func TestAdvanceIsolation(t *testing.T) {
	a := NewArena()
	root := a.Start(rope.FromString("version one"))

	head := a.Advance(root)
	a.SetText(head, a.Text(head).Remove(8, 11).Insert(8, "two"))
	a.SetCursor(head, 8)

	if got := a.Text(root).String(); got != "version one" {
		t.Errorf("past node text changed to %q", got)
	}
	if got := a.Cursor(root); got != 0 {
		t.Errorf("past node cursor changed to %d", got)
	}
	if got := a.Text(head).String(); got != "version two" {
		t.Errorf("head text = %q, want %q", got, "version two")
	}
}

func TestAdvanceChain(t *testing.T) {
	a := NewArena()
	head := a.Start(rope.New())

	texts := []string{"a", "ab", "abc"}
	for _, want := range texts {
		head = a.Advance(head)
		text := a.Text(head)
		a.SetText(head, text.Insert(text.LenChars(), want[len(want)-1:]))
	}

	// every past version remains readable by walking child edges
	id := head
	for i := len(texts) - 1; i >= 0; i-- {
		if got := a.Text(id).String(); got != texts[i] {
			t.Errorf("version %d = %q, want %q", i, got, texts[i])
		}
		children := a.Children(id)
		if len(children) != 1 {
			t.Fatalf("node %v has %d children, want 1", id, len(children))
		}
		id = children[0]
	}
	if got := a.Text(id).String(); got != "" {
		t.Errorf("root text = %q, want empty", got)
	}
	if got := a.Len(); got != len(texts)+1 {
		t.Errorf("Len = %d, want %d", got, len(texts)+1)
	}
}

package event

import (
	"errors"
	"testing"
)

func TestDirXor(t *testing.T) {
	tests := []struct {
		name   string
		stored Dir
		arg    Dir
		want   Dir
	}{
		{"right repeat keeps right", Right, Right, Right},
		{"left repeat keeps left", Left, Right, Left},
		{"right flip goes left", Right, Left, Left},
		{"left flip goes right", Left, Left, Right},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := CharFind(1, 'x', tt.stored)
			out, err := m.DirXor(3, tt.arg)
			if err != nil {
				t.Fatal(err)
			}
			if out.Dir != tt.want {
				t.Errorf("Dir = %v, want %v", out.Dir, tt.want)
			}
			if out.Count != 3 {
				t.Errorf("Count = %d, want 3", out.Count)
			}
			if out.Char != 'x' || out.Kind != MotionCharFind {
				t.Errorf("payload not preserved: %+v", out)
			}
		})
	}
}

func TestDirXorBadDirection(t *testing.T) {
	m := Motion{Kind: MotionCharFind, Dir: DirNone}
	_, err := m.DirXor(1, Right)
	if !errors.Is(err, ErrBadDirection) {
		t.Errorf("error = %v, want ErrBadDirection", err)
	}
}

func TestEventKinds(t *testing.T) {
	tests := []struct {
		e    Event
		want string
	}{
		{Noop{}, "noop"},
		{Char{Rune: 'a'}, "char"},
		{Esc{}, "esc"},
		{Move{}, "move"},
		{Switch{To: SwitchInsert}, "insert"},
		{Switch{To: SwitchAppend}, "append"},
		{Switch{To: SwitchOpen}, "open"},
	}
	for _, tt := range tests {
		if got := tt.e.Kind(); got != tt.want {
			t.Errorf("Kind() = %q, want %q", got, tt.want)
		}
	}
}

func TestConstructors(t *testing.T) {
	m := Bracket(2, '{', '}', Left)
	if m.Kind != MotionBracket || m.Count != 2 || m.Open != '{' || m.Close != '}' || m.Dir != Left {
		t.Errorf("Bracket constructor = %+v", m)
	}

	p := Pattern(1, "a+", Right)
	if p.Kind != MotionPattern || p.Pattern != "a+" {
		t.Errorf("Pattern constructor = %+v", p)
	}
}

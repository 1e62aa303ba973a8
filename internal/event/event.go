// Package event defines the command descriptors consumed by the editing
// core. Events arrive pre-decoded from the host application's keymap
// layer; this package never interprets raw keystrokes.
package event

// Event is a decoded editor command. The buffer consumes the events it
// recognizes and returns everything else unchanged, so callers may pass
// their own Event implementations through Buffer.OnEvent and re-dispatch
// whatever comes back.
type Event interface {
	// Kind returns a short tag identifying the event, for tracing.
	Kind() string
}

// Noop is the residual of a consumed event.
type Noop struct{}

// Char inserts a single character in insert mode.
type Char struct {
	Rune rune
}

// Backspace removes the character before the cursor.
type Backspace struct{}

// Delete removes the character under the cursor.
type Delete struct{}

// Enter inserts a newline.
type Enter struct{}

// Tab inserts a tab character.
type Tab struct{}

// Esc leaves insert mode, replaying the insert session if a repeat
// count is pending.
type Esc struct{}

// Move applies a cursor motion.
type Move struct {
	Motion Motion
}

// SwitchKind selects the modal-entry command.
type SwitchKind uint8

const (
	// SwitchInsert enters insert mode at the cursor ("i", "I").
	SwitchInsert SwitchKind = iota

	// SwitchAppend enters insert mode after the cursor ("a", "A").
	SwitchAppend

	// SwitchOpen opens a new line above or below ("O", "o").
	SwitchOpen
)

// Switch enters insert mode. Count is the vi repeat prefix: the insert
// session is replayed Count-1 additional times on Esc. Pos carries the
// positional qualifier (TextCol for "I", End for "A", Left/Right for
// "O"/"o", DirNone otherwise).
type Switch struct {
	To    SwitchKind
	Count int
	Pos   Dir
}

func (Noop) Kind() string      { return "noop" }
func (Char) Kind() string      { return "char" }
func (Backspace) Kind() string { return "backspace" }
func (Delete) Kind() string    { return "delete" }
func (Enter) Kind() string     { return "enter" }
func (Tab) Kind() string       { return "tab" }
func (Esc) Kind() string       { return "esc" }
func (Move) Kind() string      { return "move" }

func (s Switch) Kind() string {
	switch s.To {
	case SwitchInsert:
		return "insert"
	case SwitchAppend:
		return "append"
	case SwitchOpen:
		return "open"
	}
	return "switch"
}

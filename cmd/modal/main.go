// Command modal is an interactive demo shell for the editing core.
// Each command feeds decoded events into a buffer and prints the
// resulting state, which makes the modal machine easy to poke at
// without a terminal UI.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/modal/internal/config"
	"github.com/dshills/modal/internal/engine/buffer"
	"github.com/dshills/modal/internal/event"
)

// REPL holds the state of the interactive session.
type REPL struct {
	cfg    *config.Config
	bufs   *buffer.Registry
	buf    *buffer.Buffer
	reader *bufio.Reader
}

func main() {
	fmt.Println("modal - interactive editing-core demo")
	fmt.Println("Type 'help' for available commands, 'quit' to exit")
	fmt.Println()

	cfg := config.New()
	if path := os.Getenv("MODAL_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	repl := &REPL{
		cfg:    cfg,
		bufs:   buffer.NewRegistry(),
		reader: bufio.NewReader(os.Stdin),
	}
	repl.cmdNew(nil)

	for {
		fmt.Printf("%s[%s]> ", repl.buf.ID(), repl.buf.Mode())
		input, err := repl.reader.ReadString('\n')
		if err != nil {
			fmt.Println("\nGoodbye!")
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !repl.handleCommand(input) {
			break
		}
	}
}

func (r *REPL) handleCommand(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "help":
		r.printHelp()
	case "quit", "exit":
		fmt.Println("Goodbye!")
		return false
	case "new":
		r.cmdNew(args)
	case "load":
		r.cmdLoad(args)
	case "status":
		r.cmdStatus()
	case "dump":
		fmt.Printf("%q\n", r.buf.String())
	case "type":
		r.cmdType(input)
	case "key":
		r.cmdKeys(args)
	case "esc":
		r.send(event.Esc{})
	case "enter":
		r.send(event.Enter{})
	case "tab":
		r.send(event.Tab{})
	case "backspace", "bs":
		r.send(event.Backspace{})
	case "delete", "del":
		r.send(event.Delete{})
	case "insert", "i":
		r.send(event.Switch{To: event.SwitchInsert, Count: count(args)})
	case "append", "a":
		r.send(event.Switch{To: event.SwitchAppend, Count: count(args)})
	case "appendend", "A":
		r.send(event.Switch{To: event.SwitchAppend, Count: count(args), Pos: event.End})
	case "below", "o":
		r.send(event.Switch{To: event.SwitchOpen, Count: count(args), Pos: event.Right})
	case "above", "O":
		r.send(event.Switch{To: event.SwitchOpen, Count: count(args), Pos: event.Left})
	case "left", "h":
		r.move(event.MoveLeft(count(args), event.LineBound))
	case "right", "l":
		r.move(event.MoveRight(count(args), event.LineBound))
	case "up", "k":
		r.move(event.Up(count(args), event.DirNone))
	case "down", "j":
		r.move(event.Down(count(args), event.DirNone))
	case "home", "0":
		r.move(event.LineHome(event.StickyCol))
	case "end", "$":
		r.move(event.LineEnd(count(args), event.StickyCol))
	case "col":
		r.move(event.Column(count(args)))
	case "goto":
		r.move(event.Goto(count(args)))
	case "row", "g":
		r.move(event.Row(count(args), event.TextCol))
	case "pct":
		r.move(event.Percent(count(args)))
	case "word", "w":
		r.move(event.Word(count(args), event.Right, event.Start))
	case "wordend", "e":
		r.move(event.Word(count(args), event.Right, event.End))
	case "back", "b":
		r.move(event.Word(count(args), event.Left, event.Start))
	case "sentence":
		r.move(event.Sentence(count(args), dir(args)))
	case "para":
		r.move(event.Para(count(args), dir(args)))
	case "find", "f":
		if len(args) == 0 {
			fmt.Println("usage: find <char> [count]")
			return true
		}
		r.move(event.CharFind(countAt(args, 1), []rune(args[0])[0], event.Right))
	case "till", "t":
		if len(args) == 0 {
			fmt.Println("usage: till <char> [count]")
			return true
		}
		r.move(event.CharTill(countAt(args, 1), []rune(args[0])[0], event.Right))
	case "bracket":
		if len(args) < 2 || len(args[0]) == 0 || len(args[1]) == 0 {
			fmt.Println("usage: bracket <open> <close> [count]")
			return true
		}
		open := []rune(args[0])[0]
		close := []rune(args[1])[0]
		r.move(event.Bracket(countAt(args, 2), open, close, event.Right))
	case "search", "/":
		if len(args) == 0 {
			fmt.Println("usage: search <pattern>")
			return true
		}
		r.move(event.Pattern(1, strings.Join(args, " "), event.Right))
	case "next", "n":
		r.move(event.PatternRepeat(count(args), event.Right))
	case "prev", "N":
		r.move(event.PatternRepeat(count(args), event.Left))
	default:
		fmt.Printf("Unknown command: %s (try 'help')\n", cmd)
	}
	return true
}

// cmdNew creates a fresh buffer, or opens a file when given a path.
func (r *REPL) cmdNew(args []string) {
	ed := r.cfg.Editor()
	opts := []buffer.Option{
		buffer.WithTabWidth(ed.TabWidth),
		buffer.WithFormat(buffer.ParseFormat(ed.Format)),
	}
	if ed.ReadOnly {
		opts = append(opts, buffer.WithReadOnly())
	}

	if len(args) == 0 {
		r.buf = r.bufs.CreateFromString("scratch", "", opts...)
		return
	}

	f, err := os.Open(args[0])
	if err != nil {
		fmt.Printf("Error opening file: %v\n", err)
		return
	}
	defer f.Close()

	b, err := r.bufs.Create(args[0], f, opts...)
	if err != nil {
		fmt.Printf("Error creating buffer: %v\n", err)
		return
	}
	r.buf = b
	fmt.Printf("Buffer %d: %d chars, %d lines\n", b.Num(), b.NChars(), b.NLines())
}

// cmdLoad seeds the current buffer's registry with literal text.
func (r *REPL) cmdLoad(args []string) {
	if len(args) == 0 {
		fmt.Println("usage: load <text>")
		return
	}
	text := strings.ReplaceAll(strings.Join(args, " "), "\\n", "\n")
	r.buf = r.bufs.CreateFromString(fmt.Sprintf("text-%d", r.bufs.Len()+1), text)
	fmt.Printf("Buffer %d: %d chars, %d lines\n", r.buf.Num(), r.buf.NChars(), r.buf.NLines())
}

func (r *REPL) cmdStatus() {
	xy := r.buf.XYCursor()
	fmt.Printf("buffer %d %q mode=%s modified=%v\n", r.buf.Num(), r.buf.ID(), r.buf.Mode(), r.buf.IsModified())
	fmt.Printf("cursor char=%d col=%d row=%d display-col=%d\n", r.buf.CharCursor(), xy.Col, xy.Row, r.buf.DisplayCol())
	fmt.Printf("text %d chars, %d lines\n", r.buf.NChars(), r.buf.NLines())
}

// cmdType feeds everything after the command word as chars, keeping
// interior spaces.
func (r *REPL) cmdType(input string) {
	_, rest, ok := strings.Cut(input, " ")
	if !ok {
		fmt.Println("usage: type <text>")
		return
	}
	for _, ch := range rest {
		r.send(event.Char{Rune: ch})
	}
}

// cmdKeys feeds single chars, mostly useful in insert mode.
func (r *REPL) cmdKeys(args []string) {
	for _, a := range args {
		for _, ch := range a {
			r.send(event.Char{Rune: ch})
		}
	}
}

func (r *REPL) move(m event.Motion) {
	r.send(event.Move{Motion: m})
}

func (r *REPL) send(e event.Event) {
	residual, err := r.buf.OnEvent(e)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if _, ok := residual.(event.Noop); !ok {
		fmt.Printf("Unhandled event: %s\n", residual.Kind())
	}
	r.printLine()
}

// printLine shows the cursor's line with a caret marker under it.
func (r *REPL) printLine() {
	xy := r.buf.XYCursor()
	line, _ := strings.CutSuffix(r.buf.Line(xy.Row), "\n")
	fmt.Printf("%3d|%s\n", xy.Row, line)
	fmt.Printf("   |%s^\n", strings.Repeat(" ", xy.Col))
}

func count(args []string) int {
	return countAt(args, 0)
}

func countAt(args []string, i int) int {
	if len(args) > i {
		if n, err := strconv.Atoi(args[i]); err == nil && n > 0 {
			return n
		}
	}
	return 1
}

func dir(args []string) event.Dir {
	for _, a := range args {
		switch strings.ToLower(a) {
		case "left", "back":
			return event.Left
		case "right", "fwd":
			return event.Right
		}
	}
	return event.Right
}

func (r *REPL) printHelp() {
	fmt.Println(`Buffers:
  new [file]         create a scratch buffer, or open a file
  load <text>        create a buffer from literal text (\n for newline)
  status             show buffer, mode and cursor state
  dump               print the whole text, quoted

Mode switches (counts replay the insert session on esc):
  insert|append|appendend [n]    enter insert mode (i / a / A)
  below|above [n]                open a line (o / O)
  esc                            back to normal mode

Insert mode:
  type <text>        insert text at the cursor
  enter|tab|backspace|delete

Motions (normal mode):
  left|right|up|down [n]    basic movement
  home|end|col [n]          line positioning
  goto [n]                  absolute char offset
  row [n] | pct [n]         line addressing
  word|wordend|back [n]     word motions
  sentence|para [n] [left|right]
  find|till <char> [n]      find char in line
  bracket <open> <close> [n]
  search <pattern>          pattern motion
  next|prev [n]             repeat last pattern

quit                 exit`)
}

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/dhawalhost/jsonedit"
)

const clipboardTimeout = 2 * time.Second

const initialDocument = `{
  "name": "Crimson Voyager",
  "version": "1.0.0",
  "features": ["json-editor", "tree-view", "shadcn-ui"],
  "settings": {
    "theme": "dark",
    "notifications": true,
    "retryCount": 3
  }
}`

var (
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	indexStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	typeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	cutStyle      = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// REPL holds the state of the interactive session
type REPL struct {
	session *jsonedit.Session
	reader  *bufio.Reader
	prompt  bool
}

func main() {
	configPath := flag.String("config", "", "YAML session options file")
	verbose := flag.Bool("v", false, "log commands to stderr")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := jsonedit.DefaultSessionOptions
	if *configPath != "" {
		loaded, err := jsonedit.LoadSessionOptions(*configPath)
		if err != nil {
			fmt.Printf("Error loading options: %v\n", err)
			os.Exit(1)
		}
		opts = loaded
	}
	opts.Logger = logger

	if clip, err := jsonedit.NewSystemClipboard(); err == nil {
		opts.Clipboard = clip
	} else {
		logger.Warn("system clipboard unavailable, using in-process clipboard", "error", err)
		opts.Clipboard = &jsonedit.MemoryClipboard{}
	}

	text := []byte(initialDocument)
	if flag.NArg() > 0 {
		data, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", flag.Arg(0), err)
			os.Exit(1)
		}
		text = data
	}

	session, err := jsonedit.NewSessionFromText(text, &opts)
	if err != nil {
		fmt.Printf("Error loading document: %v\n", err)
		os.Exit(1)
	}

	repl := &REPL{
		session: session,
		reader:  bufio.NewReader(os.Stdin),
		prompt:  term.IsTerminal(int(os.Stdin.Fd())),
	}

	if repl.prompt {
		fmt.Println("jsonedit - Interactive JSON Editor")
		fmt.Println("Type 'help' for available commands, 'quit' to exit")
		fmt.Println()
	}

	for {
		if repl.prompt {
			fmt.Print("jsonedit> ")
		}
		input, err := repl.reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input != "" && !repl.handleCommand(input) {
			break
		}
		if err != nil {
			break
		}
	}
}

func (r *REPL) handleCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help":
		r.printHelp()

	case "quit", "exit":
		return false

	case "tree":
		r.cmdTree()

	case "show":
		r.cmdShow(args)

	case "text":
		r.cmdText(restOf(input, 1))

	case "format":
		r.report(r.session.FormatText())
		r.cmdText("")

	case "locate":
		r.cmdLocate(args)

	case "set":
		r.cmdSet(args, restOf(input, 3))

	case "rename":
		r.cmdRename(args)

	case "retype":
		r.cmdRetype(args)

	case "add":
		r.cmdAdd(args, restOf(input, 4))

	case "delete":
		r.cmdDelete(args)

	case "move":
		r.cmdMove(args)

	case "select":
		r.cmdSelect(args)

	case "clear":
		r.session.ClearSelection()

	case "status":
		r.cmdStatus()

	case "copy", "cut", "paste":
		r.cmdClipboard(cmd)

	case "undo":
		if !r.session.Undo() {
			fmt.Println("Nothing to undo")
		}

	case "redo":
		if !r.session.Redo() {
			fmt.Println("Nothing to redo")
		}

	case "save":
		r.cmdSave(args)

	default:
		fmt.Printf("Unknown command: %s. Type 'help' for available commands.\n", cmd)
	}

	return true
}

func (r *REPL) printHelp() {
	help := `
Available Commands:
-------------------

VIEW:
  tree                          Show the document tree (* selected, ~ cut)
  show [id]                     Print the value at id (default root)
  text [json]                   Print the text pane, or replace it with json
  format                        Re-indent the text pane
  locate <id>                   Print the text range of id
  status                        Show selection, cut set and history state

EDIT:
  set <id> <type> [value]       Replace the value at id
  rename <id> <key>             Rename an object member in place
  retype <id> <type>            Convert the value at id to type
  add <parent> <key|-> <type> [value]
                                Add a child ('-' for array parents)
  delete [id]                   Delete id, or every selected node
  move <source> <target>        Move source to target's position

SELECTION AND CLIPBOARD:
  select <id> [toggle|range]    Click a node
  clear                         Clear the selection
  copy | cut | paste            Clipboard operations on the selection

HISTORY:
  undo | redo                   Step through the edit history

OTHER:
  save <path>                   Write the text pane to a file
  help                          Show this help message
  quit, exit                    Exit the REPL

Types: object, array, string, number, boolean, null
Ids start at root, e.g. root.settings.theme or root.features.0
`
	fmt.Println(help)
}

func (r *REPL) cmdTree() {
	selected := make(map[jsonedit.NodeID]bool)
	for _, id := range r.session.Selected() {
		selected[id] = true
	}
	cut := make(map[jsonedit.NodeID]bool)
	for _, id := range r.session.CutSet() {
		cut[id] = true
	}

	var walk func(n jsonedit.Node, depth int)
	walk = func(n jsonedit.Node, depth int) {
		name := indexStyle.Render(n.Name)
		if n.IsKeyEditable {
			name = keyStyle.Render(n.Name)
		}
		line := name + " " + typeStyle.Render(n.Type.String())
		if n.Children == nil {
			line += " " + valueStyle.Render(n.Value.String())
		} else {
			line += indexStyle.Render(fmt.Sprintf(" (%d)", len(n.Children)))
		}

		marker := " "
		if cut[n.ID] {
			marker = "~"
			line = cutStyle.Render(line)
		}
		if selected[n.ID] {
			marker = "*"
			line = selectedStyle.Render(line)
		}
		fmt.Printf("%s %s%s\n", marker, strings.Repeat("  ", depth), line)

		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(r.session.Tree(), 0)
}

func (r *REPL) cmdShow(args []string) {
	id := jsonedit.RootID
	if len(args) > 0 {
		id = jsonedit.NodeID(args[0])
	}
	v, err := r.session.Resolve(id)
	if err != nil {
		r.report(err)
		return
	}
	fmt.Println(string(jsonedit.Serialize(v, "")))
}

func (r *REPL) cmdText(replacement string) {
	if replacement != "" {
		if err := r.session.SetText([]byte(replacement)); err != nil {
			r.report(err)
			return
		}
	}
	fmt.Println(string(r.session.Text()))
	if err := r.session.TextError(); err != nil {
		r.report(err)
	}
}

func (r *REPL) cmdLocate(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: locate <id>")
		return
	}
	start, end, ok := r.session.LocateText(jsonedit.NodeID(args[0]))
	if !ok {
		fmt.Println("Not found in text")
		return
	}
	fmt.Printf("bytes %d..%d: %s\n", start, end, r.session.Text()[start:end])
}

func (r *REPL) cmdSet(args []string, value string) {
	if len(args) < 2 {
		fmt.Println("Usage: set <id> <type> [value]")
		return
	}
	t, ok := r.parseType(args[1])
	if !ok {
		return
	}
	r.report(r.session.Edit(jsonedit.NodeID(args[0]), "", t, value))
}

func (r *REPL) cmdRename(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: rename <id> <key>")
		return
	}
	r.report(r.session.RenameKey(jsonedit.NodeID(args[0]), args[1]))
}

func (r *REPL) cmdRetype(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: retype <id> <type>")
		return
	}
	t, ok := r.parseType(args[1])
	if !ok {
		return
	}
	r.report(r.session.Retype(jsonedit.NodeID(args[0]), t))
}

func (r *REPL) cmdAdd(args []string, value string) {
	if len(args) < 3 {
		fmt.Println("Usage: add <parent> <key|-> <type> [value]")
		return
	}
	t, ok := r.parseType(args[2])
	if !ok {
		return
	}
	key := args[1]
	if key == "-" {
		key = ""
	}
	r.report(r.session.Add(jsonedit.NodeID(args[0]), key, t, value))
}

func (r *REPL) cmdDelete(args []string) {
	if len(args) == 0 {
		r.report(r.session.DeleteSelection())
		return
	}
	r.report(r.session.Delete(jsonedit.NodeID(args[0])))
}

func (r *REPL) cmdMove(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: move <source> <target>")
		return
	}
	r.report(r.session.Reorder(jsonedit.NodeID(args[0]), jsonedit.NodeID(args[1])))
}

func (r *REPL) cmdSelect(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: select <id> [toggle|range]")
		return
	}
	var mods jsonedit.Modifiers
	for _, m := range args[1:] {
		switch strings.ToLower(m) {
		case "toggle", "ctrl", "cmd":
			mods |= jsonedit.ModToggle
		case "range", "shift":
			mods |= jsonedit.ModRange
		default:
			fmt.Printf("Unknown modifier: %s\n", m)
			return
		}
	}
	r.session.Click(jsonedit.NodeID(args[0]), mods)
	fmt.Printf("Selected: %v\n", r.session.Selected())
}

func (r *REPL) cmdStatus() {
	last, _ := r.session.LastSelected()
	fmt.Println("Session Status:")
	fmt.Printf("  Selected: %v\n", r.session.Selected())
	fmt.Printf("  Anchor:   %s\n", last)
	fmt.Printf("  Cut set:  %v\n", r.session.CutSet())
	fmt.Printf("  Undo: %v, Redo: %v\n", r.session.CanUndo(), r.session.CanRedo())
	if err := r.session.TextError(); err != nil {
		fmt.Printf("  Text:     out of sync (%v)\n", err)
	}
}

func (r *REPL) cmdClipboard(op string) {
	ctx, cancel := context.WithTimeout(context.Background(), clipboardTimeout)
	defer cancel()

	var err error
	switch op {
	case "copy":
		err = r.session.Copy(ctx)
	case "cut":
		err = r.session.Cut(ctx)
	case "paste":
		err = r.session.Paste(ctx)
	}
	r.report(err)
}

func (r *REPL) cmdSave(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: save <path>")
		return
	}
	if err := os.WriteFile(args[0], append(r.session.Text(), '\n'), 0o644); err != nil {
		r.report(err)
		return
	}
	fmt.Printf("Wrote %s\n", args[0])
}

func (r *REPL) parseType(name string) (jsonedit.ValueType, bool) {
	t, err := jsonedit.ParseValueType(strings.ToLower(name))
	if err != nil {
		r.report(err)
		return 0, false
	}
	return t, true
}

func (r *REPL) report(err error) {
	if err == nil {
		return
	}
	var pe *jsonedit.ParseError
	switch {
	case errors.As(err, &pe):
		fmt.Println(errorStyle.Render("Invalid JSON: " + pe.Error()))
	case errors.Is(err, jsonedit.ErrClipboardUnavailable):
		fmt.Println(errorStyle.Render("Clipboard: " + err.Error()))
	default:
		fmt.Println(errorStyle.Render("Error: " + err.Error()))
	}
}

// restOf returns input after its first n fields, with inner spacing kept.
func restOf(input string, n int) string {
	s := strings.TrimSpace(input)
	for i := 0; i < n; i++ {
		j := strings.IndexAny(s, " \t")
		if j < 0 {
			return ""
		}
		s = strings.TrimLeft(s[j:], " \t")
	}
	return s
}

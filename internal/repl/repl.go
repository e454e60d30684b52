// Package repl provides an interactive Read-Eval-Print Loop that drives a
// Runtime's Execute call one Inline request per line.
//
// The REPL allows users to interactively execute JavaScript code, with features including:
//   - Multi-line input support with automatic bracket/brace detection
//   - Command history (up/down arrows)
//   - Special commands (.help, .exit, .clear)
//   - Proper error display, including rterr.Error's Kind
//
// Example usage:
//
//	rt, _ := runtime.New(runtime.Config{})
//	r := repl.New(rt, os.Stdin, os.Stdout)
//	if err := r.Run(); err != nil {
//	    log.Fatal(err)
//	}
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/borolgs/js-runtime"
)

// REPL represents an interactive JavaScript shell.
// Each evaluated line is sent to the Runtime as its own Inline request --
// unlike a single persistent goja.Runtime, variable state is not reliably
// preserved between lines: every request may be picked up by a different
// worker's Interpreter Context, and each context keeps only its own
// globals.
type REPL struct {
	rt     *runtime.Runtime // runtime front-end used to execute each line
	line   *liner.State     // Liner instance for input handling and history
	writer io.Writer        // Output writer for results and messages
}

// New creates a new REPL instance with the given runtime and I/O streams.
//
// The reader parameter is included for API compatibility but currently unused
// as liner handles input directly from the terminal.
//
// Example:
//
//	rt, _ := runtime.New(runtime.Config{})
//	repl := repl.New(rt, os.Stdin, os.Stdout)
func New(rt *runtime.Runtime, reader io.Reader, writer io.Writer) *REPL {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	return &REPL{
		rt:     rt,
		line:   line,
		writer: writer,
	}
}

// isIncompleteInput reports whether input still has an unmatched opening
// brace, bracket, or paren, in which case the REPL keeps reading lines
// instead of evaluating what it has so far. It is a pure function of the
// accumulated buffer, so it needs no REPL state.
func isIncompleteInput(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}

	unmatched := func(open, close string) bool {
		return strings.Count(input, open) > strings.Count(input, close)
	}
	return unmatched("{", "}") || unmatched("[", "]") || unmatched("(", ")")
}

// printWelcome displays the welcome message when the REPL starts.
func (r *REPL) printWelcome() {
	fmt.Fprintln(r.writer, "jsrund REPL")
	fmt.Fprintln(r.writer, "type some JS, use `.help`, or quit with `.exit`")
	fmt.Fprintln(r.writer, "")
}

// handleCommand processes REPL special commands (those starting with '.').
// Returns true if the REPL should exit, false to continue.
//
// Supported commands:
//
//	.exit, .quit - Exit the REPL
//	.help        - Display help message
//	.clear       - Clear the screen
func (r *REPL) handleCommand(cmd string) bool {
	switch cmd {
	case ".exit", ".quit":
		fmt.Fprintln(r.writer, "see ya")
		return true
	case ".help":
		r.printHelp()
		return false
	case ".clear":
		fmt.Fprint(r.writer, "\033[H\033[2J")
		return false
	default:
		fmt.Fprintf(r.writer, "Unknown command: %s (type .help for available commands)\n", cmd)
		return false
	}
}

// evalAndPrint sends code to the Runtime as one Inline request and writes
// its console output (if any) followed by its result, or the error.
func (r *REPL) evalAndPrint(code string) {
	resp, err := r.rt.Execute(runtime.Inline{Code: code}).Get()
	if err != nil {
		fmt.Fprintf(r.writer, "Error: %v\n", err)
		return
	}
	if resp.ConsoleOutput != "" {
		fmt.Fprint(r.writer, resp.ConsoleOutput)
	}
	fmt.Fprintln(r.writer, resp.Output)
}

// printHelp displays the help message with available commands.
func (r *REPL) printHelp() {
	fmt.Fprintln(r.writer, "Available commands:")
	fmt.Fprintln(r.writer, "  .help   - Show this help message")
	fmt.Fprintln(r.writer, "  .exit   - Exit the REPL (or Ctrl+D)")
	fmt.Fprintln(r.writer, "  .quit   - Same as .exit")
	fmt.Fprintln(r.writer, "  .clear  - Clear the screen")
	fmt.Fprintln(r.writer, "")
}

// Run starts the REPL loop and processes user input until exit.
//
// The REPL:
//  1. Displays a welcome message
//  2. Prompts for input (> for single-line, ... for multi-line)
//  3. Evaluates JavaScript code
//  4. Prints results or errors
//  5. Repeats until .exit command or EOF (Ctrl+D)
//
// Returns an error if there's a problem with I/O, or nil on normal exit.
func (r *REPL) Run() error {
	defer r.line.Close()

	r.printWelcome()

	var multilineBuffer strings.Builder
	inMultiline := false

	for {
		prompt := "> "
		if inMultiline {
			prompt = "... "
		}

		line, err := r.line.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Fprintln(r.writer, "\nsee ya")
				return nil
			}

			if err == io.EOF {
				fmt.Fprintln(r.writer, "\nsee ya")
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)

		if !inMultiline && strings.HasPrefix(line, ".") {
			if r.handleCommand(line) {
				return nil
			}

			continue
		}

		if inMultiline {
			multilineBuffer.WriteString(line)
			multilineBuffer.WriteString("\n")
		} else {
			multilineBuffer.WriteString(line)
		}

		currentInput := multilineBuffer.String()

		if isIncompleteInput(currentInput) {
			inMultiline = true
			continue
		}

		if !inMultiline && line != "" {
			r.line.AppendHistory(line)
		}

		r.evalAndPrint(currentInput)

		multilineBuffer.Reset()
		inMultiline = false
	}
}

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks questions line by line.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	secret func() (string, error)
}

// NewPrompter reads answers from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// NewTerminalPrompter hides secrets when f is an interactive terminal.
func NewTerminalPrompter(f *os.File, in io.Reader, out io.Writer) *Prompter {
	p := NewPrompter(in, out)
	fd := int(f.Fd())
	if term.IsTerminal(fd) {
		p.secret = func() (string, error) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(out)
			return string(b), err
		}
	}
	return p
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Ask prints label and returns the trimmed answer.
// io.EOF is returned only when the input ends before any answer.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskDefault is Ask with a value used for empty answers.
func (p *Prompter) AskDefault(label, def string) (string, error) {
	answer, err := p.Ask(fmt.Sprintf("%s [%s]", label, def))
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Secret is Ask without echo on terminals.
func (p *Prompter) Secret(label string) (string, error) {
	if p.secret == nil {
		return p.Ask(label)
	}
	fmt.Fprintf(p.out, "%s: ", label)
	return p.secret()
}

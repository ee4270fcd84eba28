package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// prompter reads answers from in and writes prompts to out. Secrets are read
// without echo when in is a terminal.
type prompter struct {
	in       *bufio.Reader
	out      io.Writer
	terminal int
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{in: bufio.NewReader(in), out: out, terminal: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.terminal = int(f.Fd())
	}
	return p
}

// text prints the prompt and reads one trimmed line. A final line without a
// newline is still returned.
func (p *prompter) text(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) secret(prompt string) (string, error) {
	if p.terminal < 0 {
		return p.text(prompt)
	}
	if _, err := fmt.Fprint(p.out, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(p.terminal)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(pw)), nil
}

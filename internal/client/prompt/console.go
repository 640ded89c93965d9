// Package prompt reads answers from the user. Every reader reports Ctrl-C and
// Ctrl-D as ErrInterrupted so callers can abandon what they were doing.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrInterrupted is returned when the user cancels input.
var ErrInterrupted = errors.New("interrupted")

// Console is a line-oriented terminal.
type Console interface {
	io.Writer
	ReadLine(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
}

// TerminalConsole puts a TTY in raw mode and edits lines with x/term.
type TerminalConsole struct {
	fd    int
	state *term.State
	t     *term.Terminal
}

// NewTerminalConsole takes over stdin. Close must be called to restore the TTY.
func NewTerminalConsole(in, out *os.File) (*TerminalConsole, error) {
	fd := int(in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	rw := struct {
		io.Reader
		io.Writer
	}{in, out}
	return &TerminalConsole{fd: fd, state: state, t: term.NewTerminal(rw, "")}, nil
}

// Write converts "\n" to "\r\n" while the TTY is raw.
func (c *TerminalConsole) Write(p []byte) (int, error) {
	return c.t.Write(p)
}

func (c *TerminalConsole) ReadLine(prompt string) (string, error) {
	c.t.SetPrompt(prompt)
	line, err := c.t.ReadLine()
	if errors.Is(err, io.EOF) {
		_, _ = c.t.Write([]byte("\n"))
		return "", ErrInterrupted
	}
	return line, err
}

func (c *TerminalConsole) ReadPassword(prompt string) (string, error) {
	line, err := c.t.ReadPassword(prompt)
	if errors.Is(err, io.EOF) {
		_, _ = c.t.Write([]byte("\n"))
		return "", ErrInterrupted
	}
	return line, err
}

// Close restores the terminal state saved by NewTerminalConsole.
func (c *TerminalConsole) Close() error {
	return term.Restore(c.fd, c.state)
}

// LineConsole reads plain lines, for pipes and tests. End of input counts as
// an interrupt.
type LineConsole struct {
	r *bufio.Reader
	w io.Writer
}

func NewLineConsole(r io.Reader, w io.Writer) *LineConsole {
	return &LineConsole{r: bufio.NewReader(r), w: w}
}

func (c *LineConsole) Write(p []byte) (int, error) {
	return c.w.Write(p)
}

func (c *LineConsole) ReadLine(prompt string) (string, error) {
	if _, err := io.WriteString(c.w, prompt); err != nil {
		return "", err
	}
	line, err := c.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line == "" {
			return "", ErrInterrupted
		}
		if !errors.Is(err, io.EOF) {
			return "", err
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadPassword does not mask; a LineConsole is never attached to a TTY.
func (c *LineConsole) ReadPassword(prompt string) (string, error) {
	return c.ReadLine(prompt)
}

// Open returns a TerminalConsole when stdin is a TTY and a LineConsole
// otherwise. The returned func releases the console.
func Open(in, out *os.File) (Console, func() error, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return NewLineConsole(in, out), func() error { return nil }, nil
	}
	c, err := NewTerminalConsole(in, out)
	if err != nil {
		return nil, nil, err
	}
	return c, c.Close, nil
}

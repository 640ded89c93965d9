package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle   = lipgloss.NewStyle().Bold(true)
	defaultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
)

// Prompter asks questions on a Console.
type Prompter struct {
	c Console
}

func New(c Console) *Prompter {
	return &Prompter{c: c}
}

// Console returns the underlying console.
func (p *Prompter) Console() Console {
	return p.c
}

func label(text, def string) string {
	s := labelStyle.Render(text)
	if def != "" {
		s += " " + defaultStyle.Render("["+def+"]")
	}
	return s + ": "
}

// Text reads one line. An empty answer returns def.
func (p *Prompter) Text(text, def string) (string, error) {
	line, err := p.c.ReadLine(label(text, def))
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Password reads a line without echo.
func (p *Prompter) Password(text string) (string, error) {
	return p.c.ReadPassword(label(text, ""))
}

// Confirm asks a yes/no question until the answer is one of y, yes, n, no or
// empty (which picks def).
func (p *Prompter) Confirm(text string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		line, err := p.c.ReadLine(labelStyle.Render(text) + " (" + hint + ") ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.Invalid(fmt.Errorf("please answer y or n"))
	}
}

// Pause waits for enter.
func (p *Prompter) Pause() error {
	_, err := p.c.ReadLine(defaultStyle.Render("Press enter to continue..."))
	return err
}

// Invalid reports a rejected answer.
func (p *Prompter) Invalid(err error) {
	fmt.Fprintln(p.c, invalidStyle.Render(err.Error()))
}

// Ask prompts until parse accepts the answer. When def is non-empty an empty
// answer returns keep=true without calling parse, so the caller retains its
// current value as is.
func Ask[T any](p *Prompter, text, def string, parse func(string) (T, error)) (v T, keep bool, err error) {
	for {
		line, err := p.c.ReadLine(label(text, def))
		if err != nil {
			return v, false, err
		}
		line = strings.TrimSpace(line)
		if line == "" && def != "" {
			return v, true, nil
		}
		v, err = parse(line)
		if err == nil {
			return v, false, nil
		}
		p.Invalid(err)
	}
}

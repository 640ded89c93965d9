// Package render draws menus, record lists and panels.
package render

import (
	_ "embed"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/muesli/termenv"

	"github.com/atinyakov/mouthpiecer/internal/client/pager"
	"github.com/atinyakov/mouthpiecer/internal/models"
)

//go:embed banner.txt
var banner string

// NoNote is shown in place of an empty note.
const NoNote = "(no note)"

// Renderer writes to one output, usually the console.
type Renderer struct {
	w   io.Writer
	out *termenv.Output
}

func New(w io.Writer) *Renderer {
	return &Renderer{w: w, out: termenv.NewOutput(w)}
}

func (r *Renderer) println(s string) {
	fmt.Fprintln(r.w, s)
}

// Clear clears the screen and moves the cursor home.
func (r *Renderer) Clear() {
	r.out.ClearScreen()
}

// Header prints the banner and the login status.
func (r *Renderer) Header(user string) {
	r.println(bannerStyle.Render(strings.TrimRight(banner, "\n")))
	if user == "" {
		r.println(statusStyle.Render("Not logged in"))
	} else {
		r.println(statusStyle.Render("Logged in as " + user))
	}
	r.println("")
}

// MenuItem is one menu line.
type MenuItem struct {
	Key     string
	Label   string
	Enabled bool
}

// Menu prints a titled menu. Enabled items are highlighted.
func (r *Renderer) Menu(title string, items []MenuItem) {
	r.println(titleStyle.Render(title))
	for _, it := range items {
		style := disabledItem
		if it.Enabled {
			style = enabledItem
		}
		r.println(style.Render(fmt.Sprintf(" %s) %s", it.Key, it.Label)))
	}
	r.println("")
}

// Choices prints a numbered option list starting at 1.
func (r *Renderer) Choices(title string, options []string) {
	r.println(hintStyle.Render(title))
	for i, o := range options {
		r.println(fmt.Sprintf("  %d) %s", i+1, o))
	}
}

func threads(m models.Mouthpiece) string {
	if t := m.EffectiveThreads(); t != models.ThreadsNone {
		return string(t)
	}
	return "-"
}

// List prints collection stats and the current page. Rows keep their global
// index so the user can select by it.
func (r *Renderer) List(records []models.Mouthpiece, page int, selectMode bool) {
	st := pager.Summarize(records)
	r.println(fmt.Sprintf("%s from %s",
		english.Plural(st.Total, "mouthpiece", ""),
		english.Plural(st.Makes, "make", "")))
	if len(st.ByType) > 0 {
		parts := make([]string, 0, len(st.ByType))
		for _, tc := range st.ByType {
			parts = append(parts, fmt.Sprintf("%s: %s", tc.Type, humanize.Comma(int64(tc.Count))))
		}
		r.println(hintStyle.Render(strings.Join(parts, "  ")))
	}
	r.println("")

	if len(records) == 0 {
		r.println(hintStyle.Render("No mouthpieces yet."))
		return
	}

	lo, hi := pager.Bounds(page, len(records), pager.PageSize)
	rows := [][]string{{"#", "Make", "Model", "Type", "Threads", "Finish"}}
	for i := lo; i < hi; i++ {
		m := records[i]
		rows = append(rows, []string{strconv.Itoa(i), m.Make, m.Model, string(m.Type), threads(m), string(m.Finish)})
	}
	r.println(table(rows, selectMode))

	if n := pager.PageCount(len(records), pager.PageSize); n > 1 {
		var nav []string
		if page > 0 {
			nav = append(nav, "(p) prev")
		}
		if page < n-1 {
			nav = append(nav, "(n) next")
		}
		r.println(hintStyle.Render(fmt.Sprintf("Page %d of %d  %s", page+1, n, strings.Join(nav, "  "))))
	}
}

func table(rows [][]string, selectMode bool) string {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, v := range row {
			widths[i] = max(widths[i], lipgloss.Width(v))
		}
	}

	lines := make([]string, 0, len(rows))
	for n, row := range rows {
		style := cell
		switch {
		case n == 0:
			style = headerCell
		case selectMode:
			style = selectedCell
		}
		cols := make([]string, len(row))
		for i, v := range row {
			cols[i] = style.Width(widths[i] + 2).Render(v)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func fields(m models.Mouthpiece) string {
	note := m.Note
	if note == "" {
		note = NoNote
	}
	return strings.Join([]string{
		"Make:    " + m.Make,
		"Model:   " + m.Model,
		"Type:    " + string(m.Type),
		"Threads: " + threads(m),
		"Finish:  " + string(m.Finish),
		"Note:    " + note,
	}, "\n")
}

// Preview shows a record before it is created.
func (r *Renderer) Preview(m models.Mouthpiece) {
	r.println(panelStyle.Render("NEW\n\n" + fields(m)))
}

// Diff shows the current and edited record side by side.
func (r *Renderer) Diff(old, updated models.Mouthpiece) {
	r.println(lipgloss.JoinHorizontal(lipgloss.Top,
		oldPanel.Render("OLD\n\n"+fields(old)),
		" ",
		newPanel.Render("NEW\n\n"+fields(updated)),
	))
}

// Detail shows one record.
func (r *Renderer) Detail(index int, m models.Mouthpiece) {
	r.println(panelStyle.Render(fmt.Sprintf("#%d\n\n%s", index, fields(m))))
}

func (r *Renderer) Error(msg string) {
	r.println(errorStyle.Render(msg))
}

func (r *Renderer) Success(msg string) {
	r.println(successStyle.Render(msg))
}

func (r *Renderer) Info(msg string) {
	r.println(hintStyle.Render(msg))
}

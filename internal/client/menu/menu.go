// Package menu owns the outer loop of the client: the main menu and the
// mouthpiece sub-menu.
package menu

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/mouthpiecer/internal/client/knack"
	"github.com/atinyakov/mouthpiecer/internal/client/prompt"
	"github.com/atinyakov/mouthpiecer/internal/client/render"
	"github.com/atinyakov/mouthpiecer/internal/client/session"
	"github.com/atinyakov/mouthpiecer/internal/client/workflow"
)

const invalidOption = "Invalid option selected."

// Navigator renders menus and dispatches selections.
type Navigator struct {
	c   *workflow.Controller
	p   *prompt.Prompter
	r   *render.Renderer
	log *zap.Logger
}

func New(c *workflow.Controller, p *prompt.Prompter, r *render.Renderer, log *zap.Logger) *Navigator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Navigator{c: c, p: p, r: r, log: log}
}

func mainItems(loggedIn bool) []render.MenuItem {
	return []render.MenuItem{
		{Key: "1", Label: "My mouthpieces", Enabled: loggedIn},
		{Key: "6", Label: "Log in", Enabled: !loggedIn},
		{Key: "7", Label: "Log out", Enabled: loggedIn},
		{Key: "8", Label: "Add a user", Enabled: !loggedIn},
		{Key: "0", Label: "Exit", Enabled: true},
	}
}

func mouthpieceItems(hasRecords bool) []render.MenuItem {
	return []render.MenuItem{
		{Key: "1", Label: "Add", Enabled: true},
		{Key: "2", Label: "Delete", Enabled: hasRecords},
		{Key: "3", Label: "Edit", Enabled: hasRecords},
		{Key: "4", Label: "View", Enabled: hasRecords},
		{Key: "n", Label: "Next page", Enabled: true},
		{Key: "p", Label: "Previous page", Enabled: true},
		{Key: "0", Label: "Back", Enabled: true},
	}
}

func (n *Navigator) header() {
	n.r.Clear()
	n.r.Header(n.c.Session().CurrentUser())
}

// pause keeps the last message on screen until the user continues. An
// interrupt here only skips the wait.
func (n *Navigator) pause() {
	_ = n.p.Pause()
}

func (n *Navigator) read() (string, error) {
	line, err := n.p.Console().ReadLine("Select an option: ")
	return strings.ToLower(strings.TrimSpace(line)), err
}

// Run shows the main menu until the user exits with 0. An interrupt at the
// main menu ends the loop with prompt.ErrInterrupted.
func (n *Navigator) Run(ctx context.Context) error {
	sess := n.c.Session()
	for {
		n.header()
		n.r.Menu("Main menu", mainItems(sess.IsAuthenticated()))

		choice, err := n.read()
		if err != nil {
			return err
		}
		n.log.Debug("main menu", zap.String("choice", choice))

		switch choice {
		case "1":
			if !sess.IsAuthenticated() {
				n.r.Error("Please log in first.")
				n.pause()
				continue
			}
			n.mouthpieces(ctx)
		case "6":
			_ = n.c.Login(ctx)
			n.pause()
		case "7":
			_ = n.c.Logout()
			n.pause()
		case "8":
			if err := n.c.AddUser(ctx); err != nil {
				n.pause()
				continue
			}
			n.mouthpieces(ctx)
		case "0":
			return nil
		default:
			n.r.Error(invalidOption)
			n.pause()
		}
	}
}

// authLost reports whether err means the user has to log in again.
func authLost(err error) bool {
	return errors.Is(err, session.ErrNotAuthenticated) || errors.Is(err, knack.ErrAuth)
}

// mouthpieces runs the sub-menu until 0, an interrupt or a lost login.
func (n *Navigator) mouthpieces(ctx context.Context) {
	sess := n.c.Session()
	if err := n.c.Refresh(ctx); err != nil {
		n.pause()
		return
	}

	for {
		n.header()
		n.r.List(sess.Records(), sess.Page(), sess.SelectMode())
		n.r.Menu("My mouthpieces", mouthpieceItems(sess.Len() > 0))

		choice, err := n.read()
		if err != nil {
			return
		}
		n.log.Debug("mouthpiece menu", zap.String("choice", choice))

		switch choice {
		case "1":
			err = n.c.Add(ctx)
			n.pause()
		case "2":
			err = n.c.Delete(ctx)
			n.pause()
		case "3":
			err = n.c.Edit(ctx)
			n.pause()
		case "4":
			err = n.c.View(ctx)
		case "n":
			sess.NextPage()
		case "p":
			sess.PrevPage()
		case "0":
			return
		default:
			n.r.Error(invalidOption)
			n.pause()
		}
		if authLost(err) {
			return
		}
	}
}

// Package workflow runs the interactive add, edit, delete and view flows and
// the account flows. Every flow reports its own outcome to the user and also
// returns it so the caller can log it.
package workflow

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/atinyakov/mouthpiecer/internal/client/choices"
	"github.com/atinyakov/mouthpiecer/internal/client/knack"
	"github.com/atinyakov/mouthpiecer/internal/client/prompt"
	"github.com/atinyakov/mouthpiecer/internal/client/render"
	"github.com/atinyakov/mouthpiecer/internal/client/session"
	"github.com/atinyakov/mouthpiecer/internal/models"
)

var (
	// ErrLastRecord is returned when deleting would leave the collection empty.
	ErrLastRecord = errors.New("cannot delete the last mouthpiece")
	// ErrNoRecords is returned when a record must be picked from an empty list.
	ErrNoRecords = errors.New("no mouthpieces")
	// ErrPasswordMismatch is returned when the password confirmation differs.
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// RecordService stores mouthpieces for the logged in user.
type RecordService interface {
	ListRecords(ctx context.Context, token string) ([]models.Mouthpiece, error)
	CreateRecord(ctx context.Context, token string, m models.Mouthpiece) error
	UpdateRecord(ctx context.Context, token, id string, m models.Mouthpiece) error
	DeleteRecord(ctx context.Context, token, id string) error
}

// AccountService logs users in and creates accounts.
type AccountService interface {
	Authenticate(ctx context.Context, email, password string) (string, error)
	CreateUser(ctx context.Context, u models.NewUser) (string, error)
}

// MakeRegistry provides and validates the allowed makes.
type MakeRegistry interface {
	Makes(ctx context.Context) []string
	ValidateMake(ctx context.Context, value string) error
}

var _ MakeRegistry = (*choices.Registry)(nil)

// Deps are the collaborators of a Controller.
type Deps struct {
	Session  *session.Session
	Records  RecordService
	Accounts AccountService
	Makes    MakeRegistry
	Prompter *prompt.Prompter
	Renderer *render.Renderer
	Log      *zap.Logger
}

// Controller drives the interactive flows over one session.
type Controller struct {
	sess     *session.Session
	records  RecordService
	accounts AccountService
	makes    MakeRegistry
	p        *prompt.Prompter
	r        *render.Renderer
	log      *zap.Logger

	// draft holds the fields of an add that the backend rejected.
	draft *models.Mouthpiece
}

func New(d Deps) *Controller {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		sess:     d.Session,
		records:  d.Records,
		accounts: d.Accounts,
		makes:    d.Makes,
		p:        d.Prompter,
		r:        d.Renderer,
		log:      log,
	}
}

// Session returns the session the controller works on.
func (c *Controller) Session() *session.Session {
	return c.sess
}

// Draft returns the pending add, if any.
func (c *Controller) Draft() (models.Mouthpiece, bool) {
	if c.draft == nil {
		return models.Mouthpiece{}, false
	}
	return *c.draft, true
}

// fail reports err to the user and returns it.
func (c *Controller) fail(action string, err error) error {
	var rerr *knack.RequestError
	switch {
	case errors.Is(err, prompt.ErrInterrupted):
		c.r.Info("Cancelled.")
	case errors.Is(err, session.ErrNotAuthenticated), errors.Is(err, knack.ErrAuth):
		c.r.Error("Please log in first.")
	case errors.As(err, &rerr):
		c.r.Error(fmt.Sprintf("%s failed: %v", action, err))
	default:
		c.r.Error(fmt.Sprintf("%s: %v", action, err))
	}
	c.log.Debug("workflow ended", zap.String("action", action), zap.Error(err))
	return err
}

func (c *Controller) requireAuth(action string) error {
	if !c.sess.IsAuthenticated() {
		return c.fail(action, session.ErrNotAuthenticated)
	}
	return nil
}

// Refresh replaces the cache with the records on the backend.
func (c *Controller) Refresh(ctx context.Context) error {
	if err := c.requireAuth("Loading mouthpieces"); err != nil {
		return err
	}
	list, err := c.records.ListRecords(ctx, c.sess.Token())
	if err != nil {
		c.sess.Invalidate()
		return c.fail("Loading mouthpieces", err)
	}
	c.sess.SetRecords(list)
	c.log.Debug("records fetched", zap.Int("count", len(list)))
	return nil
}

// ensureFresh re-fetches a snapshot invalidated by an earlier mutation.
func (c *Controller) ensureFresh(ctx context.Context) error {
	if !c.sess.Stale() {
		return nil
	}
	return c.Refresh(ctx)
}

// changed re-fetches after a confirmed mutation.
func (c *Controller) changed(ctx context.Context) {
	c.sess.Invalidate()
	_ = c.Refresh(ctx)
}

// selectIndex asks for a display index of the current snapshot.
func (c *Controller) selectIndex(label string) (int, error) {
	c.sess.SetSelectMode(true)
	defer c.sess.SetSelectMode(false)

	n := c.sess.Len()
	c.r.List(c.sess.Records(), c.sess.Page(), true)
	i, _, err := prompt.Ask(c.p, label, "", func(s string) (int, error) {
		return choices.ParseIndex(s, n)
	})
	return i, err
}

// pick runs the common preamble of edit, delete and view.
func (c *Controller) pick(ctx context.Context, action, label string) (int, models.Mouthpiece, error) {
	if err := c.requireAuth(action); err != nil {
		return 0, models.Mouthpiece{}, err
	}
	if err := c.ensureFresh(ctx); err != nil {
		return 0, models.Mouthpiece{}, err
	}
	if c.sess.Len() == 0 {
		return 0, models.Mouthpiece{}, c.fail(action, ErrNoRecords)
	}
	i, err := c.selectIndex(label)
	if err != nil {
		return 0, models.Mouthpiece{}, c.fail(action, err)
	}
	m, _ := c.sess.Record(i)
	return i, m, nil
}

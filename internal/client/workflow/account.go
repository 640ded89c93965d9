package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/atinyakov/mouthpiecer/internal/client/knack"
	"github.com/atinyakov/mouthpiecer/internal/client/session"
	"github.com/atinyakov/mouthpiecer/internal/models"
)

// Login asks for credentials and starts a session.
func (c *Controller) Login(ctx context.Context) error {
	const action = "Logging in"
	if c.sess.IsAuthenticated() {
		c.r.Error(fmt.Sprintf("Already logged in as %s. Log out first.", c.sess.CurrentUser()))
		return session.ErrAlreadyAuthenticated
	}

	email, err := c.p.Text("Email", "")
	if err != nil {
		return c.fail(action, err)
	}
	password, err := c.p.Password("Password")
	if err != nil {
		return c.fail(action, err)
	}

	if err := c.sess.Login(ctx, c.accounts, email, password); err != nil {
		if errors.Is(err, knack.ErrAuth) {
			c.r.Error("Invalid credentials.")
			return err
		}
		return c.fail(action, err)
	}
	c.r.Success("Logged in as " + email + ".")
	return nil
}

// Logout ends the session and drops everything fetched with it.
func (c *Controller) Logout() error {
	if err := c.sess.Logout(); err != nil {
		c.r.Error("Not logged in.")
		return err
	}
	c.draft = nil
	c.r.Success("Logged out.")
	return nil
}

// AddUser creates an account, logs in as it and continues with adding the
// first mouthpiece.
func (c *Controller) AddUser(ctx context.Context) error {
	const action = "Creating account"
	if c.sess.IsAuthenticated() {
		c.r.Error(fmt.Sprintf("Logged in as %s. Log out first.", c.sess.CurrentUser()))
		return session.ErrAlreadyAuthenticated
	}

	var u models.NewUser
	var err error
	if u.FirstName, err = c.p.Text("First name", ""); err != nil {
		return c.fail(action, err)
	}
	if u.LastName, err = c.p.Text("Last name", ""); err != nil {
		return c.fail(action, err)
	}
	if u.Email, err = c.p.Text("Email", ""); err != nil {
		return c.fail(action, err)
	}
	if u.Password, err = c.p.Password("Password"); err != nil {
		return c.fail(action, err)
	}
	confirm, err := c.p.Password("Confirm password")
	if err != nil {
		return c.fail(action, err)
	}
	if confirm != u.Password {
		return c.fail(action, ErrPasswordMismatch)
	}

	token, err := c.accounts.CreateUser(ctx, u)
	if err != nil {
		return c.fail(action, err)
	}
	if err := c.sess.Start(u.Email, token); err != nil {
		return c.fail(action, err)
	}
	c.r.Success(fmt.Sprintf("Welcome, %s! Let's add your first mouthpiece.", u.FirstName))
	return c.Add(ctx)
}

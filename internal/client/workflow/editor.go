package workflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/atinyakov/mouthpiecer/internal/models"
)

// Add asks for a new mouthpiece and creates it after confirmation. When the
// backend rejects it the answers are kept and offered as defaults next time.
func (c *Controller) Add(ctx context.Context) error {
	const action = "Adding mouthpiece"
	if err := c.requireAuth(action); err != nil {
		return err
	}

	var start models.Mouthpiece
	if c.draft != nil {
		start = *c.draft
		c.r.Info("Resuming the mouthpiece that could not be saved.")
	}
	m, err := c.askFields(ctx, start)
	if err != nil {
		return c.fail(action, err)
	}
	if m.Type == models.OnePiece {
		m.Threads = models.ThreadsNone
	}

	c.r.Preview(m)
	ok, err := c.p.Confirm("Add this mouthpiece?", true)
	if err != nil {
		return c.fail(action, err)
	}
	if !ok {
		c.draft = nil
		c.r.Info("Cancelled.")
		return nil
	}

	if err := c.records.CreateRecord(ctx, c.sess.Token(), m); err != nil {
		c.draft = &m
		c.log.Warn("create record failed", zap.Error(err))
		return c.fail(action, err)
	}
	c.draft = nil
	c.r.Success(fmt.Sprintf("Added %s %s.", m.Make, m.Model))
	c.changed(ctx)
	c.sess.SetPage(0)
	return nil
}

// Edit changes one mouthpiece, showing the old and new values before saving.
func (c *Controller) Edit(ctx context.Context) error {
	const action = "Editing mouthpiece"
	_, cur, err := c.pick(ctx, action, "Edit which mouthpiece (#)")
	if err != nil {
		return err
	}

	upd, err := c.askFields(ctx, cur)
	if err != nil {
		return c.fail(action, err)
	}
	c.r.Diff(cur, upd)
	ok, err := c.p.Confirm("Save changes?", true)
	if err != nil {
		return c.fail(action, err)
	}
	if !ok {
		c.r.Info("Cancelled.")
		return nil
	}

	if err := c.records.UpdateRecord(ctx, c.sess.Token(), cur.ID, upd); err != nil {
		c.log.Warn("update record failed", zap.String("id", cur.ID), zap.Error(err))
		return c.fail(action, err)
	}
	c.r.Success("Saved.")
	c.changed(ctx)
	return nil
}

// Delete removes one mouthpiece. The last remaining mouthpiece cannot be
// deleted, and the confirmation defaults to no.
func (c *Controller) Delete(ctx context.Context) error {
	const action = "Deleting mouthpiece"
	if err := c.requireAuth(action); err != nil {
		return err
	}
	if err := c.ensureFresh(ctx); err != nil {
		return err
	}
	if c.sess.Len() == 1 {
		return c.fail(action, ErrLastRecord)
	}

	_, m, err := c.pick(ctx, action, "Delete which mouthpiece (#)")
	if err != nil {
		return err
	}

	ok, err := c.p.Confirm(fmt.Sprintf("Delete %s %s?", m.Make, m.Model), false)
	if err != nil {
		return c.fail(action, err)
	}
	if !ok {
		c.r.Info("Cancelled.")
		return nil
	}

	if err := c.records.DeleteRecord(ctx, c.sess.Token(), m.ID); err != nil {
		c.log.Warn("delete record failed", zap.String("id", m.ID), zap.Error(err))
		return c.fail(action, err)
	}
	c.r.Success(fmt.Sprintf("Deleted %s %s.", m.Make, m.Model))
	c.changed(ctx)
	return nil
}

// View shows one mouthpiece in full.
func (c *Controller) View(ctx context.Context) error {
	i, m, err := c.pick(ctx, "Viewing mouthpiece", "View which mouthpiece (#)")
	if err != nil {
		return err
	}
	c.r.Detail(i, m)
	if err := c.p.Pause(); err != nil {
		return c.fail("Viewing mouthpiece", err)
	}
	return nil
}

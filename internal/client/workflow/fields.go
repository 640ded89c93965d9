package workflow

import (
	"context"

	"github.com/atinyakov/mouthpiecer/internal/client/choices"
	"github.com/atinyakov/mouthpiecer/internal/client/prompt"
	"github.com/atinyakov/mouthpiecer/internal/models"
)

// askFields prompts for every field of a mouthpiece. Each prompt offers the
// value in cur as its default; an empty answer keeps that value unchecked.
// Threads are not asked for one-piece mouthpieces.
func (c *Controller) askFields(ctx context.Context, cur models.Mouthpiece) (models.Mouthpiece, error) {
	m := cur

	c.r.Choices("Allowed makes", c.makes.Makes(ctx))
	mk, keep, err := prompt.Ask(c.p, "Make", cur.Make, func(s string) (string, error) {
		return s, c.makes.ValidateMake(ctx, s)
	})
	if err != nil {
		return m, err
	}
	if !keep {
		m.Make = mk
	}

	if m.Model, err = c.p.Text("Model", cur.Model); err != nil {
		return m, err
	}

	c.r.Choices("Type", choices.Labels(models.Types))
	typ, keep, err := prompt.Ask(c.p, "Type", string(cur.Type), choices.ParseType)
	if err != nil {
		return m, err
	}
	if !keep {
		m.Type = typ
	}

	if m.Type == models.OnePiece {
		if cur.Type != models.OnePiece {
			m.Threads = models.ThreadsNone
		}
	} else {
		c.r.Choices("Threads (empty for none)", choices.Labels(models.ThreadOptions))
		// A one-piece record's stored threads never come back as a default.
		old := cur.EffectiveThreads()
		th, keep, err := prompt.Ask(c.p, "Threads", string(old), choices.ParseThreads)
		if err != nil {
			return m, err
		}
		if keep {
			th = old
		}
		m.Threads = th
	}

	c.r.Choices("Finish", choices.Labels(models.Finishes))
	fin, keep, err := prompt.Ask(c.p, "Finish", string(cur.Finish), choices.ParseFinish)
	if err != nil {
		return m, err
	}
	if !keep {
		m.Finish = fin
	}

	if m.Note, err = c.p.Text("Note (optional)", cur.Note); err != nil {
		return m, err
	}
	return m, nil
}

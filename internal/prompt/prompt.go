// Package prompt collects the contact form through sequential line prompts,
// for terminals where the full-screen view is unwanted.
package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/smileynet/formexample/internal/form"
)

// ErrAborted signals the user aborted input (e.g., Ctrl+C).
var ErrAborted = errors.New("prompt: aborted")

// Runner asks for every field of a form in declaration order, then submits it.
type Runner struct {
	driver Driver
}

// NewRunner creates a Runner that asks through d.
func NewRunner(d Driver) *Runner {
	return &Runner{driver: d}
}

// Run fills g field by field and submits it. Each answer is checked against
// the field's rules before it is accepted, so a completed run submits a
// valid form. Existing values are offered as defaults.
func (r *Runner) Run(ctx context.Context, g *form.Group) (form.Submission, error) {
	for _, c := range g.Controls() {
		answer, err := r.driver.Input(ctx, InputConfig{
			Message:   c.Label() + ":",
			Default:   c.Value(),
			Validator: fieldValidator(c),
		})
		if err != nil {
			return form.Submission{}, fmt.Errorf("prompt: %s: %w", c.Name(), err)
		}
		if err := g.SetValue(c.Name(), answer); err != nil {
			return form.Submission{}, fmt.Errorf("prompt: %w", err)
		}
		if err := g.MarkTouched(c.Name()); err != nil {
			return form.Submission{}, fmt.Errorf("prompt: %w", err)
		}
	}
	return g.Submit(), nil
}

// fieldValidator reports the first failed rule of c as an error.
func fieldValidator(c *form.Control) func(string) error {
	return func(value string) error {
		errs := c.Check(value)
		if len(errs) == 0 {
			return nil
		}
		return errors.New(errs[0].Message(c.Label()))
	}
}

// Package account changes the signed-in account.
package account

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/prompt"
	"tableflip.dev/dreamlog/pkg/runner"
)

// ErrCancelled is returned when the user declines a confirmation.
var ErrCancelled = errors.New("cancelled")

type Password struct {
	runner.Base
	Prompt prompt.Prompter
}

func (p *Password) Do(ctx context.Context) error {
	if p.Prompt == nil {
		return prompt.ErrNotInteractive
	}
	current, err := p.Prompt.Secret("Current password")
	if err != nil {
		return err
	}
	next, err := p.Prompt.Secret("New password")
	if err != nil {
		return err
	}
	confirm, err := p.Prompt.Secret("Confirm new password")
	if err != nil {
		return err
	}
	msg, err := p.Service.ChangePassword(ctx, current, next, confirm)
	if err != nil {
		return err
	}
	if p.Structured() {
		return p.Encode(msg)
	}
	p.Printer().Success("%s", msg.Message)
	return nil
}

type Username struct {
	runner.Base
	Username string
}

func (u *Username) Do(ctx context.Context) error {
	user, err := u.Service.ChangeUsername(ctx, u.Username)
	if err != nil {
		return err
	}
	if u.Structured() {
		return u.Encode(user)
	}
	u.Printer().Success("Username changed to %s", user.Username)
	return nil
}

// Delete removes the account and every dream in it, then signs out.
type Delete struct {
	runner.Base
	Yes    bool
	Prompt prompt.Prompter
}

func (d *Delete) Do(ctx context.Context) error {
	d.Service.Guard.Arm(app.AccountTarget)
	defer d.Service.Guard.Reset()

	if !d.Yes {
		if d.Prompt == nil {
			return fmt.Errorf("%w; pass --yes to delete without asking", prompt.ErrNotInteractive)
		}
		ok, err := d.Prompt.Confirm("Delete your account and all of your dreams? This can't be undone")
		if err != nil {
			return err
		}
		if !ok {
			return ErrCancelled
		}
	}
	msg, err := d.Service.DeleteAccount(ctx)
	if err != nil {
		return err
	}
	if d.Structured() {
		return d.Encode(msg)
	}
	d.Printer().Success("%s", msg.Message)
	return nil
}

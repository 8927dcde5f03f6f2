// Package auth signs the user in and out.
package auth

import (
	"context"
	"strings"

	"tableflip.dev/dreamlog/pkg/prompt"
	"tableflip.dev/dreamlog/pkg/runner"
)

// ask returns value, or prompts for it when empty.
func ask(p prompt.Prompter, value, label string, secret bool) (string, error) {
	if value != "" {
		return value, nil
	}
	if p == nil {
		return "", prompt.ErrNotInteractive
	}
	if secret {
		return p.Secret(label)
	}
	v, err := p.Text(label, "")
	return strings.TrimSpace(v), err
}

type Login struct {
	runner.Base
	Prompt   prompt.Prompter
	Email    string
	Password string
}

func (l *Login) Do(ctx context.Context) error {
	email, err := ask(l.Prompt, l.Email, "Email", false)
	if err != nil {
		return err
	}
	password, err := ask(l.Prompt, l.Password, "Password", true)
	if err != nil {
		return err
	}
	if err := l.Service.Login(ctx, email, password); err != nil {
		return err
	}
	user := l.Service.Session.User()
	if l.Structured() {
		return l.Encode(user)
	}
	l.Printer().Success("Signed in as %s", user.Username)
	return nil
}

type Register struct {
	runner.Base
	Prompt   prompt.Prompter
	Email    string
	Username string
	Password string
	Confirm  string
}

func (r *Register) Do(ctx context.Context) error {
	email, err := ask(r.Prompt, r.Email, "Email", false)
	if err != nil {
		return err
	}
	username, err := ask(r.Prompt, r.Username, "Username", false)
	if err != nil {
		return err
	}
	password, err := ask(r.Prompt, r.Password, "Password", true)
	if err != nil {
		return err
	}
	confirm := r.Confirm
	if confirm == "" && r.Password != "" {
		confirm = r.Password
	}
	confirm, err = ask(r.Prompt, confirm, "Confirm password", true)
	if err != nil {
		return err
	}
	if err := r.Service.Register(ctx, email, username, password, confirm); err != nil {
		return err
	}
	user := r.Service.Session.User()
	if r.Structured() {
		return r.Encode(user)
	}
	r.Printer().Success("Welcome, %s. Your journal is ready.", user.Username)
	return nil
}

type Logout struct {
	runner.Base
}

func (l *Logout) Do(_ context.Context) error {
	if err := l.Service.Logout(); err != nil {
		return err
	}
	if l.Structured() {
		return l.Encode(map[string]bool{"signed_out": true})
	}
	l.Printer().Success("Signed out")
	return nil
}

type Whoami struct {
	runner.Base
}

func (w *Whoami) Do(ctx context.Context) error {
	user, err := w.Service.Whoami(ctx)
	if err != nil {
		return err
	}
	if w.Structured() {
		return w.Encode(user)
	}
	pp := w.Printer()
	pp.Title(user.Username)
	pp.Line("%s", user.Email)
	if !user.CreatedAt.IsZero() {
		pp.Faint("journaling since %s", user.CreatedAt.Format("January 2, 2006"))
	}
	return nil
}

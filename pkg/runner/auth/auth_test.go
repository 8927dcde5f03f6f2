package auth

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/dreamlog/pkg/api/apitest"
	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/prompt"
	"tableflip.dev/dreamlog/pkg/runner"
	"tableflip.dev/dreamlog/pkg/session"
	"tableflip.dev/dreamlog/pkg/store"
)

func newBase(t *testing.T) (runner.Base, *apitest.Server, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	srv := apitest.NewServer(t)
	svc := app.New(store.NewMemory(), srv.URL, nil)
	require.NoError(t, svc.Init(context.Background()))
	buf := &bytes.Buffer{}
	return runner.Base{Service: svc, Out: buf}, srv, buf
}

func TestLoginPrompts(t *testing.T) {
	base, srv, buf := newBase(t)
	srv.SeedUser("a@x.com", "dreamer", "password1")

	l := &Login{Base: base, Prompt: &prompt.Scripted{Answers: []string{"a@x.com", "password1"}}}
	require.NoError(t, l.Do(context.Background()))
	assert.Contains(t, buf.String(), "Signed in as dreamer")
	assert.True(t, base.Service.Session.Authenticated())
}

func TestLoginWithoutTerminal(t *testing.T) {
	base, _, _ := newBase(t)
	l := &Login{Base: base, Email: "a@x.com"}
	assert.ErrorIs(t, l.Do(context.Background()), prompt.ErrNotInteractive)
}

func TestRegisterJSON(t *testing.T) {
	base, _, buf := newBase(t)
	base.Format = "json"

	r := &Register{Base: base, Email: "b@x.com", Username: "sleeper", Password: "password1"}
	require.NoError(t, r.Do(context.Background()))
	assert.Contains(t, buf.String(), `"username": "sleeper"`)
}

func TestWhoamiAndLogout(t *testing.T) {
	base, srv, buf := newBase(t)
	srv.SeedUser("a@x.com", "dreamer", "password1")
	require.NoError(t, base.Service.Login(context.Background(), "a@x.com", "password1"))

	require.NoError(t, (&Whoami{Base: base}).Do(context.Background()))
	assert.Contains(t, buf.String(), "a@x.com")

	require.NoError(t, (&Logout{Base: base}).Do(context.Background()))
	assert.ErrorIs(t, (&Whoami{Base: base}).Do(context.Background()), session.ErrNoSession)
}

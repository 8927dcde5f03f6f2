package account

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
	"tableflip.dev/dreamlog/pkg/store"
)

func signedIn(t *testing.T) (runner.Base, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	srv := apitest.NewServer(t)
	srv.SeedUser("a@x.com", "dreamer", "password1")
	svc := app.New(store.NewMemory(), srv.URL, nil)
	require.NoError(t, svc.Init(context.Background()))
	require.NoError(t, svc.Login(context.Background(), "a@x.com", "password1"))
	buf := &bytes.Buffer{}
	return runner.Base{Service: svc, Out: buf}, buf
}

func TestPassword(t *testing.T) {
	b, _ := signedIn(t)
	p := &Password{Base: b, Prompt: &prompt.Scripted{Answers: []string{"password1", "password2", "password2"}}}
	require.NoError(t, p.Do(context.Background()))

	require.NoError(t, b.Service.Logout())
	require.NoError(t, b.Service.Login(context.Background(), "a@x.com", "password2"))
}

func TestPasswordNeedsTerminal(t *testing.T) {
	b, _ := signedIn(t)
	assert.ErrorIs(t, (&Password{Base: b}).Do(context.Background()), prompt.ErrNotInteractive)
}

func TestUsername(t *testing.T) {
	b, buf := signedIn(t)
	require.NoError(t, (&Username{Base: b, Username: "nightowl"}).Do(context.Background()))
	assert.Contains(t, buf.String(), "nightowl")
	assert.Equal(t, "nightowl", b.Service.Session.User().Username)
}

func TestDelete(t *testing.T) {
	b, _ := signedIn(t)
	err := (&Delete{Base: b, Prompt: &prompt.Scripted{Answers: []string{""}}}).Do(context.Background())
	assert.ErrorIs(t, err, ErrCancelled)
	assert.True(t, b.Service.Session.Authenticated())

	require.NoError(t, (&Delete{Base: b, Yes: true}).Do(context.Background()))
	assert.False(t, b.Service.Session.Authenticated())
}

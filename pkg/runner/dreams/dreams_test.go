package dreams

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/dreamlog/pkg/api/apitest"
	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/capture"
	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/journal"
	"tableflip.dev/dreamlog/pkg/prompt"
	"tableflip.dev/dreamlog/pkg/runner"
	"tableflip.dev/dreamlog/pkg/store"
)

func signedIn(t *testing.T) (runner.Base, *apitest.Server, string, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	srv := apitest.NewServer(t)
	token, _ := srv.SeedUser("a@x.com", "dreamer", "password1")
	svc := app.New(store.NewMemory(), srv.URL, nil)
	require.NoError(t, svc.Init(context.Background()))
	require.NoError(t, svc.Login(context.Background(), "a@x.com", "password1"))
	buf := &bytes.Buffer{}
	return runner.Base{Service: svc, Out: buf}, srv, token, buf
}

func TestListEmptyStates(t *testing.T) {
	base, srv, token, buf := signedIn(t)

	require.NoError(t, (&List{Base: base}).Do(context.Background()))
	assert.Contains(t, buf.String(), "No dreams yet")

	srv.SeedDream(token, dream.Dream{Body: "a lighthouse", Mood: dream.Ptr(dream.Peaceful), DreamDate: "2026-10-01"})
	buf.Reset()
	require.NoError(t, (&List{Base: base, Filter: journal.Filter{Mood: dream.Eerie}}).Do(context.Background()))
	assert.Contains(t, buf.String(), "No dreams match")
	assert.Contains(t, buf.String(), "feeling Eerie")

	buf.Reset()
	require.NoError(t, (&List{Base: base, Filter: journal.Filter{Search: "light"}}).Do(context.Background()))
	assert.Contains(t, buf.String(), "a lighthouse")
}

func TestSaveCreatesThenEdits(t *testing.T) {
	base, srv, _, buf := signedIn(t)
	now := func() time.Time { return time.Date(2026, 10, 17, 8, 0, 0, 0, time.Local) }

	add := &Save{Base: base, Body: "falling through clouds", Now: now, Fill: func(f *capture.Form) error {
		f.Tags.Add("Sky")
		return nil
	}}
	require.NoError(t, add.Do(context.Background()))
	assert.Contains(t, buf.String(), "Recorded #1 2026-10-17")
	assert.Equal(t, 1, srv.DreamCount())

	buf.Reset()
	edit := &Save{Base: base, ID: 1, Fill: func(f *capture.Form) error {
		f.Title = "Clouds"
		return nil
	}}
	require.NoError(t, edit.Do(context.Background()))
	assert.Contains(t, buf.String(), "Updated #1 2026-10-17 Clouds")

	d, err := base.Service.Dream(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"sky"}, d.Tags)
	assert.Equal(t, "falling through clouds", d.Body)
}

func TestSaveRequiresBody(t *testing.T) {
	base, srv, _, _ := signedIn(t)
	err := (&Save{Base: base}).Do(context.Background())
	assert.ErrorIs(t, err, capture.ErrEmptyBody)
	assert.Zero(t, srv.Calls("POST /dreams"))
}

func TestDeleteConfirms(t *testing.T) {
	base, srv, token, buf := signedIn(t)
	d := srv.SeedDream(token, dream.Dream{Body: "x"})

	no := &Delete{Base: base, ID: d.ID, Prompt: &prompt.Scripted{Answers: []string{"n"}}}
	assert.ErrorIs(t, no.Do(context.Background()), ErrCancelled)
	assert.Equal(t, 1, srv.DreamCount())

	noTTY := &Delete{Base: base, ID: d.ID}
	assert.ErrorIs(t, noTTY.Do(context.Background()), prompt.ErrNotInteractive)

	yes := &Delete{Base: base, ID: d.ID, Prompt: &prompt.Scripted{Answers: []string{"yes"}}}
	require.NoError(t, yes.Do(context.Background()))
	assert.Zero(t, srv.DreamCount())
	assert.Contains(t, buf.String(), "Deleted dream #1")
	assert.False(t, base.Service.Guard.Armed(app.DreamTarget(d.ID)))
}

func TestTagsAndStats(t *testing.T) {
	base, srv, token, buf := signedIn(t)
	srv.SeedDream(token, dream.Dream{Body: "x", Tags: []string{"sea"}, Mood: dream.Ptr(dream.Vivid), DreamDate: "2026-10-01"})

	require.NoError(t, (&Tags{Base: base}).Do(context.Background()))
	assert.Contains(t, buf.String(), "#sea")

	buf.Reset()
	base.Format = "yaml"
	require.NoError(t, (&Stats{Base: base}).Do(context.Background()))
	assert.Contains(t, buf.String(), "total: 1")

	buf.Reset()
	base.Format = ""
	require.NoError(t, (&Stats{Base: base, Detailed: true}).Do(context.Background()))
	assert.Contains(t, buf.String(), "Insights")
}

package calendar

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
	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/runner"
	"tableflip.dev/dreamlog/pkg/store"
)

func setup(t *testing.T) (*Calendar, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	srv := apitest.NewServer(t)
	token, _ := srv.SeedUser("a@x.com", "dreamer", "password1")
	srv.SeedDream(token, dream.Dream{Body: "x", DreamDate: "2026-10-03", Lucidity: dream.Ptr(5)})
	srv.SeedDream(token, dream.Dream{Body: "y", DreamDate: "2026-10-03"})
	srv.SeedDream(token, dream.Dream{Body: "z", DreamDate: "2026-09-12"})

	svc := app.New(store.NewMemory(), srv.URL, nil)
	require.NoError(t, svc.Init(context.Background()))
	require.NoError(t, svc.Login(context.Background(), "a@x.com", "password1"))

	buf := &bytes.Buffer{}
	now := func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.Local) }
	return &Calendar{Base: runner.Base{Service: svc, Out: buf}, Now: now}, buf
}

func TestMonth(t *testing.T) {
	c, buf := setup(t)
	require.NoError(t, c.Do(context.Background()))
	assert.Contains(t, buf.String(), "October 2026")
	assert.Contains(t, buf.String(), "2 dreams this month")
}

func TestDay(t *testing.T) {
	c, buf := setup(t)
	c.Day = "2026-10-03"
	require.NoError(t, c.Do(context.Background()))
	assert.Contains(t, buf.String(), "2026-10-03 - 2 dreams")
}

func TestStructuredScope(t *testing.T) {
	c, buf := setup(t)
	c.Format = "json"
	c.Year = true
	require.NoError(t, c.Do(context.Background()))
	assert.Contains(t, buf.String(), `"2026-09-12"`)
	assert.Contains(t, buf.String(), `"max_lucidity": 5`)

	buf.Reset()
	c.Year = false
	require.NoError(t, c.Do(context.Background()))
	assert.NotContains(t, buf.String(), `"2026-09-12"`)
}

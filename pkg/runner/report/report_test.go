package report

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

func TestReportWindow(t *testing.T) {
	color.NoColor = true
	srv := apitest.NewServer(t)
	token, _ := srv.SeedUser("a@x.com", "dreamer", "password1")
	srv.SeedDream(token, dream.Dream{Title: dream.Ptr("recent"), Body: "x", DreamDate: "2026-10-15"})
	srv.SeedDream(token, dream.Dream{Title: dream.Ptr("old"), Body: "y", DreamDate: "2026-09-01"})

	svc := app.New(store.NewMemory(), srv.URL, nil)
	require.NoError(t, svc.Init(context.Background()))
	require.NoError(t, svc.Login(context.Background(), "a@x.com", "password1"))

	buf := &bytes.Buffer{}
	r := &Report{
		Base:   runner.Base{Service: svc, Out: buf},
		Window: "1w",
		Now:    func() time.Time { return time.Date(2026, 10, 17, 22, 0, 0, 0, time.Local) },
	}
	require.NoError(t, r.Do(context.Background()))
	assert.Contains(t, buf.String(), "Dreams 2026-10-11 → 2026-10-17")
	assert.Contains(t, buf.String(), "recent")
	assert.NotContains(t, buf.String(), "old")

	r.Window = "soon"
	assert.Error(t, r.Do(context.Background()))
}

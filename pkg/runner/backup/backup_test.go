package backup

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/dreamlog/pkg/api/apitest"
	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/runner"
	"tableflip.dev/dreamlog/pkg/store"
)

func TestExportThenImport(t *testing.T) {
	color.NoColor = true
	srv := apitest.NewServer(t)
	token, _ := srv.SeedUser("a@x.com", "dreamer", "password1")
	srv.SeedDream(token, dream.Dream{Body: "kept"})

	svc := app.New(store.NewMemory(), srv.URL, nil)
	require.NoError(t, svc.Init(context.Background()))
	require.NoError(t, svc.Login(context.Background(), "a@x.com", "password1"))
	buf := &bytes.Buffer{}
	b := runner.Base{Service: svc, Out: buf, Format: "json"}

	dir := t.TempDir()
	require.NoError(t, (&Export{Base: b, Dir: dir}).Do(context.Background()))
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	buf.Reset()
	b.Format = ""
	require.NoError(t, (&Import{Base: b, Path: matches[0]}).Do(context.Background()))
	assert.Contains(t, buf.String(), "Imported 0 dreams · Skipped 1")
}

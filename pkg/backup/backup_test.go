package backup_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/dreamlog/pkg/api"
	"tableflip.dev/dreamlog/pkg/api/apitest"
	"tableflip.dev/dreamlog/pkg/backup"
	"tableflip.dev/dreamlog/pkg/dream"
)

func TestExportThenImport(t *testing.T) {
	srv := apitest.NewServer(t)
	token, _ := srv.SeedUser("a@x.com", "a", "password1")
	srv.SeedDream(token, dream.Dream{Body: "one", DreamDate: "2024-01-01"})
	srv.SeedDream(token, dream.Dream{Body: "two", DreamDate: "2024-01-02"})
	c := srv.Client(api.WithTokenSource(func() string { return token }))
	ctx := context.Background()

	dir := t.TempDir()
	path, err := backup.Export(ctx, c, dir)
	require.NoError(t, err)
	assert.Regexp(t, `dream-journal-backup-\d{8}\.json$`, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file is cleaned up")

	res, err := backup.Import(ctx, c, path)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Imported)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, "Imported 0 dreams · Skipped 2", backup.Summary(res))
}

func TestImportRejectsBadPaths(t *testing.T) {
	dir := t.TempDir()
	_, err := backup.Import(context.Background(), nil, filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, backup.ErrNoFile)

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("{}"), 0o600))
	_, err = backup.Import(context.Background(), nil, txt)
	assert.ErrorIs(t, err, backup.ErrNotJSON)
}

type brokenExporter struct{}

func (brokenExporter) Backup(_ context.Context, w io.Writer) (string, error) {
	_, _ = w.Write([]byte("[{"))
	return "", errors.New("HTTP 500")
}

func TestExportFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	_, err := backup.Export(context.Background(), brokenExporter{}, dir)
	require.Error(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Imported 1 dream", backup.Summary(&api.ImportResult{Imported: 1}))
	assert.Equal(t, "Imported 4 dreams · Skipped 2", backup.Summary(&api.ImportResult{Imported: 4, Skipped: 2}))
	assert.Equal(t, "Nothing imported", backup.Summary(nil))
}

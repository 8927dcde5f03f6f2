// Package backup exports the journal to a JSON file and imports one back.
// The journal view and the settings view both call into it.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tableflip.dev/dreamlog/pkg/api"
	"tableflip.dev/dreamlog/pkg/stats"
)

var (
	// ErrNoFile is returned when the import path does not exist.
	ErrNoFile = errors.New("backup: no such file")
	// ErrNotJSON is returned for import files without a .json extension.
	ErrNotJSON = errors.New("backup: import file must be .json")
)

// Exporter streams a backup.
type Exporter interface {
	Backup(ctx context.Context, w io.Writer) (string, error)
}

// Importer uploads a backup.
type Importer interface {
	Import(ctx context.Context, name string, r io.Reader) (*api.ImportResult, error)
}

// Export downloads the backup into dir under the server-supplied name and
// returns its path. A failed download leaves nothing behind.
func Export(ctx context.Context, c Exporter, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("backup: create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".dreamlog-backup-*")
	if err != nil {
		return "", fmt.Errorf("backup: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	name, err := c.Backup(ctx, tmp)
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}

	dest := filepath.Join(dir, filepath.Base(name))
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("backup: save %s: %w", dest, err)
	}
	return dest, nil
}

// Import uploads the JSON backup at path.
func Import(ctx context.Context, c Importer, path string) (*api.ImportResult, error) {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return nil, fmt.Errorf("%w: %s", ErrNotJSON, path)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoFile, path)
		}
		return nil, fmt.Errorf("backup: open %s: %w", path, err)
	}
	defer f.Close()
	return c.Import(ctx, filepath.Base(path), f)
}

// Summary reads like "Imported 3 dreams · Skipped 1".
func Summary(r *api.ImportResult) string {
	if r == nil {
		return "Nothing imported"
	}
	s := fmt.Sprintf("Imported %d %s", r.Imported, stats.Plural(r.Imported, "dream", "dreams"))
	if r.Skipped > 0 {
		s += fmt.Sprintf(" · Skipped %d", r.Skipped)
	}
	return s
}

// Package backup exports and imports the journal.
package backup

import (
	"context"

	bk "tableflip.dev/dreamlog/pkg/backup"
	"tableflip.dev/dreamlog/pkg/runner"
)

type Export struct {
	runner.Base
	Dir string
}

func (e *Export) Do(ctx context.Context) error {
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	path, err := e.Service.Export(ctx, dir)
	if err != nil {
		return err
	}
	if e.Structured() {
		return e.Encode(map[string]string{"path": path})
	}
	e.Printer().Success("Backup saved to %s", path)
	return nil
}

type Import struct {
	runner.Base
	Path string
}

func (i *Import) Do(ctx context.Context) error {
	res, err := i.Service.Import(ctx, i.Path)
	if err != nil {
		return err
	}
	if i.Structured() {
		return i.Encode(res)
	}
	i.Printer().Success("%s", bk.Summary(res))
	return nil
}

// Package report looks back over recent dreams.
package report

import (
	"context"
	"time"

	"tableflip.dev/dreamlog/pkg/runner"
	"tableflip.dev/dreamlog/pkg/timeutil"
)

type Report struct {
	runner.Base
	// Window is how far back to look, e.g. "1w" or "1m".
	Window string
	Now    func() time.Time
}

func (r *Report) Do(ctx context.Context) error {
	w, err := timeutil.ParseWindow(r.Window)
	if err != nil {
		return err
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	until := timeutil.StartOfDay(now())
	res, err := r.Service.Report(ctx, w.Since(until), until)
	if err != nil {
		return err
	}
	if r.Structured() {
		return r.Encode(res)
	}
	pp := r.Printer()
	pp.NewLine()
	pp.Report(res)
	return nil
}

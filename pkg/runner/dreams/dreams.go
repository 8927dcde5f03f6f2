// Package dreams lists, records, edits and deletes dreams.
package dreams

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/capture"
	"tableflip.dev/dreamlog/pkg/journal"
	"tableflip.dev/dreamlog/pkg/prompt"
	"tableflip.dev/dreamlog/pkg/runner"
)

// ErrCancelled is returned when the user declines a confirmation.
var ErrCancelled = errors.New("cancelled")

type List struct {
	runner.Base
	Filter journal.Filter
	Limit  int
	ShowID bool
}

func (l *List) Do(ctx context.Context) error {
	dreams, err := l.Service.Dreams(ctx, l.Filter.Params(l.Limit))
	if err != nil {
		return err
	}
	if l.Structured() {
		return l.Encode(dreams)
	}

	pp := l.Printer()
	pp.ShowID = l.ShowID
	pp.NewLine()
	pp.TitleWithCount(title(l.Filter), len(dreams), "dream", "dreams")
	switch (journal.Snapshot{Dreams: dreams, Filter: l.Filter}).Empty() {
	case journal.EmptyNoDreams:
		pp.Faint(" No dreams yet. Record one with `dreamlog add`.")
		pp.NewLine()
	case journal.EmptyNoMatches:
		pp.Faint(" No dreams match these filters.")
		pp.NewLine()
	default:
		pp.Dreams(dreams)
	}
	return nil
}

func title(f journal.Filter) string {
	parts := []string{"Dreams"}
	if s := strings.TrimSpace(f.Search); s != "" {
		parts = append(parts, fmt.Sprintf("matching %q", s))
	}
	if f.Mood != "" {
		parts = append(parts, "feeling "+f.Mood.Label())
	}
	if f.Tag != "" {
		parts = append(parts, "tagged #"+f.Tag)
	}
	return strings.Join(parts, " ")
}

type Show struct {
	runner.Base
	ID int64
}

func (s *Show) Do(ctx context.Context) error {
	d, err := s.Service.Dream(ctx, s.ID)
	if err != nil {
		return err
	}
	if s.Structured() {
		return s.Encode(d)
	}
	pp := s.Printer()
	pp.NewLine()
	pp.Dream(*d)
	return nil
}

// Save records a new dream, or updates one when ID is set. Fill applies the
// caller's changes to the form before it is submitted.
type Save struct {
	runner.Base
	ID   int64
	Body string
	Fill func(f *capture.Form) error
	// Now is the clock used for the default dream date.
	Now func() time.Time
}

func (s *Save) Do(ctx context.Context) error {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	var f *capture.Form
	if s.ID != 0 {
		d, err := s.Service.Dream(ctx, s.ID)
		if err != nil {
			return err
		}
		f = capture.Edit(*d)
	} else {
		f = capture.New(now())
	}
	if s.Body != "" {
		f.Body = s.Body
	}
	if s.Fill != nil {
		if err := s.Fill(f); err != nil {
			return err
		}
	}

	d, err := s.Service.Save(ctx, f)
	if err != nil {
		return err
	}
	if s.Structured() {
		return s.Encode(d)
	}
	verb := "Recorded"
	if f.Editing() {
		verb = "Updated"
	}
	s.Printer().Success("%s %s", verb, d.String())
	return nil
}

type Delete struct {
	runner.Base
	ID     int64
	Yes    bool
	Prompt prompt.Prompter
}

func (d *Delete) Do(ctx context.Context) error {
	target := app.DreamTarget(d.ID)
	d.Service.Guard.Arm(target)
	defer d.Service.Guard.Reset()

	if !d.Yes {
		if d.Prompt == nil {
			return fmt.Errorf("%w; pass --yes to delete without asking", prompt.ErrNotInteractive)
		}
		ok, err := d.Prompt.Confirm(fmt.Sprintf("Delete dream #%d? This can't be undone", d.ID))
		if err != nil {
			return err
		}
		if !ok {
			return ErrCancelled
		}
	}
	if err := d.Service.DeleteDream(ctx, d.ID); err != nil {
		return err
	}
	if d.Structured() {
		return d.Encode(map[string]int64{"deleted": d.ID})
	}
	d.Printer().Success("Deleted dream #%d", d.ID)
	return nil
}

type Tags struct {
	runner.Base
}

func (t *Tags) Do(ctx context.Context) error {
	tags, err := t.Service.Tags(ctx)
	if err != nil {
		return err
	}
	if t.Structured() {
		return t.Encode(tags)
	}
	pp := t.Printer()
	pp.TitleWithCount("Tags", len(tags), "tag", "tags")
	pp.Tags(tags)
	return nil
}

type Stats struct {
	runner.Base
	Detailed bool
}

func (s *Stats) Do(ctx context.Context) error {
	pp := s.Printer()
	if !s.Detailed {
		st, err := s.Service.Stats(ctx)
		if err != nil {
			return err
		}
		if s.Structured() {
			return s.Encode(st)
		}
		pp.Summary(st)
		return nil
	}
	d, err := s.Service.DetailedStats(ctx)
	if err != nil {
		return err
	}
	if s.Structured() {
		return s.Encode(d)
	}
	pp.Detailed(d)
	return nil
}

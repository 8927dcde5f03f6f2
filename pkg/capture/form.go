// Package capture holds the state of the record/edit dream form.
package capture

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"tableflip.dev/dreamlog/pkg/account"
	"tableflip.dev/dreamlog/pkg/dream"
)

var (
	// ErrEmptyBody blocks a submit whose body is blank.
	ErrEmptyBody = errors.New("capture: dream body is required")
	// ErrSaving rejects a second submit while one is in flight.
	ErrSaving = errors.New("capture: save already in progress")
)

// Submitter persists the form.
type Submitter interface {
	CreateDream(ctx context.Context, in dream.Input) (*dream.Dream, error)
	UpdateDream(ctx context.Context, id int64, in dream.Input) (*dream.Dream, error)
}

// Form is the editable state of one dream.
type Form struct {
	ID           int64
	Title        string
	Body         string
	Mood         dream.Mood
	Lucidity     *int
	SleepQuality *int
	Tags         TagInput
	DreamDate    string

	mu     sync.Mutex
	saving bool
	err    error
}

// New starts an empty form dated today.
func New(today time.Time) *Form {
	return &Form{DreamDate: today.Format(dream.DateLayout)}
}

// NewFor starts an empty form for a given YYYY-MM-DD, e.g. from a calendar
// day.
func NewFor(date string) *Form {
	return &Form{DreamDate: date}
}

// Edit prefills the form from d.
func Edit(d dream.Dream) *Form {
	f := &Form{
		ID:           d.ID,
		Body:         d.Body,
		Lucidity:     d.Lucidity,
		SleepQuality: d.SleepQuality,
		Tags:         TagInput{Tags: append([]string(nil), d.Tags...)},
		DreamDate:    d.DayKey(),
	}
	if d.Title != nil {
		f.Title = *d.Title
	}
	if d.Mood != nil {
		f.Mood = *d.Mood
	}
	return f
}

// Editing is true when the form updates an existing dream.
func (f *Form) Editing() bool {
	return f.ID != 0
}

// ToggleMood selects m, or clears it when already selected.
func (f *Form) ToggleMood(m dream.Mood) {
	if f.Mood == m {
		f.Mood = ""
		return
	}
	f.Mood = m
}

// SetLucidity picks r, or clears it when r is already picked.
func (f *Form) SetLucidity(r int) {
	f.Lucidity = dream.ToggleRating(f.Lucidity, r)
}

// SetSleepQuality picks r, or clears it when r is already picked.
func (f *Form) SetSleepQuality(r int) {
	f.SleepQuality = dream.ToggleRating(f.SleepQuality, r)
}

// HasMeta reports whether any of mood, ratings or tags is set.
func (f *Form) HasMeta() bool {
	return f.Mood != "" || f.Lucidity != nil || f.SleepQuality != nil || len(f.Tags.Tags) > 0
}

// CanSubmit mirrors the submit button: a body and nothing in flight.
func (f *Form) CanSubmit() bool {
	return strings.TrimSpace(f.Body) != "" && !f.Saving()
}

// Validate checks every field. Only the body is mandatory.
func (f *Form) Validate() error {
	errs := account.FieldErrors{}
	if strings.TrimSpace(f.Body) == "" {
		errs["body"] = "Write something about the dream"
	}
	if utf8.RuneCountInString(strings.TrimSpace(f.Title)) > dream.MaxTitleLength {
		errs["title"] = fmt.Sprintf("Title must be at most %d characters", dream.MaxTitleLength)
	}
	if f.Mood != "" && !f.Mood.Valid() {
		errs["mood"] = fmt.Sprintf("Unknown mood %q", f.Mood)
	}
	if !dream.ValidRating(f.Lucidity) {
		errs["lucidity"] = "Lucidity must be between 1 and 5"
	}
	if !dream.ValidRating(f.SleepQuality) {
		errs["sleep_quality"] = "Sleep quality must be between 1 and 5"
	}
	if f.DreamDate != "" {
		if _, err := time.Parse(dream.DateLayout, f.DreamDate); err != nil {
			errs["dream_date"] = "Dream date must look like YYYY-MM-DD"
		}
	}
	return errs.Err()
}

// Payload builds the request body. A blank title is sent as null and
// pending tag input is committed first.
func (f *Form) Payload() dream.Input {
	f.Tags.Blur()
	in := dream.Input{
		Body:         f.Body,
		Lucidity:     f.Lucidity,
		SleepQuality: f.SleepQuality,
		Tags:         append([]string{}, f.Tags.Tags...),
		DreamDate:    f.DreamDate,
	}
	if title := strings.TrimSpace(f.Title); title != "" {
		in.Title = &title
	}
	if f.Mood != "" {
		m := f.Mood
		in.Mood = &m
	}
	return in
}

// Saving is true while a submit is in flight.
func (f *Form) Saving() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saving
}

// Err is the error of the last failed submit.
func (f *Form) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Submit creates or updates the dream. A blank body never reaches s. On
// failure the error is kept on the form and it can be submitted again.
func (f *Form) Submit(ctx context.Context, s Submitter) (*dream.Dream, error) {
	if strings.TrimSpace(f.Body) == "" {
		return nil, ErrEmptyBody
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	if f.saving {
		f.mu.Unlock()
		return nil, ErrSaving
	}
	f.saving = true
	f.err = nil
	f.mu.Unlock()

	in := f.Payload()
	var (
		saved *dream.Dream
		err   error
	)
	if f.Editing() {
		saved, err = s.UpdateDream(ctx, f.ID, in)
	} else {
		saved, err = s.CreateDream(ctx, in)
	}

	f.mu.Lock()
	f.saving = false
	f.err = err
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return saved, nil
}

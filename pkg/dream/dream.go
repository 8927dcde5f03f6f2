// Package dream defines the dream entry model shared by the API client and
// every view built on top of it.
package dream

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar day format used for dream dates.
	DateLayout = "2006-01-02"

	// MaxTitleLength is the longest title the capture form accepts.
	MaxTitleLength = 120
)

// Dream is a single journaled record of a dream as returned by the API.
type Dream struct {
	ID           int64     `json:"id" yaml:"id"`
	UserID       int64     `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Title        *string   `json:"title" yaml:"title"`
	Body         string    `json:"body" yaml:"body"`
	Mood         *Mood     `json:"mood" yaml:"mood"`
	Lucidity     *int      `json:"lucidity" yaml:"lucidity"`
	SleepQuality *int      `json:"sleep_quality" yaml:"sleep_quality"`
	Tags         []string  `json:"tags" yaml:"tags"`
	DreamDate    string    `json:"dream_date" yaml:"dream_date"`
	CreatedAt    Timestamp `json:"created_at" yaml:"created_at"`
	UpdatedAt    Timestamp `json:"updated_at" yaml:"updated_at"`

	// Sharing fields are carried through untouched; no endpoint acts on them yet.
	IsPublic   bool    `json:"is_public,omitempty" yaml:"is_public,omitempty"`
	ShareToken *string `json:"share_token,omitempty" yaml:"share_token,omitempty"`
}

// Input is the create/update payload.
type Input struct {
	Title        *string  `json:"title"`
	Body         string   `json:"body"`
	Mood         *Mood    `json:"mood"`
	Lucidity     *int     `json:"lucidity"`
	SleepQuality *int     `json:"sleep_quality"`
	Tags         []string `json:"tags"`
	DreamDate    string   `json:"dream_date,omitempty"`
}

// DisplayTitle returns the title or a placeholder for untitled dreams.
func (d *Dream) DisplayTitle() string {
	if d.Title == nil || strings.TrimSpace(*d.Title) == "" {
		return "Untitled dream"
	}
	return *d.Title
}

// DayKey returns the YYYY-MM-DD key the dream belongs to: its dream date,
// falling back to the creation date.
func (d *Dream) DayKey() string {
	if len(d.DreamDate) >= len(DateLayout) {
		return d.DreamDate[:len(DateLayout)]
	}
	if d.CreatedAt.IsZero() {
		return ""
	}
	return d.CreatedAt.Format(DateLayout)
}

// Day parses DayKey into a local midnight time.
func (d *Dream) Day() (time.Time, bool) {
	key := d.DayKey()
	if key == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, key, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// LucidityValue returns the lucidity rating or 0 when unset.
func (d *Dream) LucidityValue() int {
	if d.Lucidity == nil {
		return 0
	}
	return *d.Lucidity
}

// Input converts the dream back into an update payload.
func (d *Dream) Input() Input {
	return Input{
		Title:        d.Title,
		Body:         d.Body,
		Mood:         d.Mood,
		Lucidity:     d.Lucidity,
		SleepQuality: d.SleepQuality,
		Tags:         append([]string(nil), d.Tags...),
		DreamDate:    d.DreamDate,
	}
}

func (d *Dream) String() string {
	return fmt.Sprintf("#%d %s %s", d.ID, d.DayKey(), d.DisplayTitle())
}

// Preview returns the first n runes of the body, with an ellipsis when cut.
func (d *Dream) Preview(n int) string {
	r := []rune(strings.TrimSpace(d.Body))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "..."
}

// Ptr returns a pointer to v; handy for optional payload fields.
func Ptr[T any](v T) *T {
	return &v
}

// Package journal keeps the dream list in step with the search box, the mood
// chips and the tag filter.
package journal

import (
	"strings"

	"tableflip.dev/dreamlog/pkg/api"
	"tableflip.dev/dreamlog/pkg/dream"
)

// Filter is the server-side filter applied to the list.
type Filter struct {
	Search string     `json:"search,omitempty" yaml:"search,omitempty"`
	Mood   dream.Mood `json:"mood,omitempty" yaml:"mood,omitempty"`
	Tag    string     `json:"tag,omitempty" yaml:"tag,omitempty"`
}

// ToggleMood selects m, or clears the mood when m is already selected.
func (f Filter) ToggleMood(m dream.Mood) Filter {
	if f.Mood == m {
		f.Mood = ""
	} else {
		f.Mood = m
	}
	return f
}

// Active reports whether any filter narrows the list.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.Search) != "" || f.Mood != "" || f.Tag != ""
}

// Params converts f into list query parameters.
func (f Filter) Params(limit int) api.ListParams {
	return api.ListParams{
		Search: strings.TrimSpace(f.Search),
		Mood:   f.Mood,
		Tag:    dream.NormalizeTag(f.Tag),
		Limit:  limit,
	}
}

// Match applies f locally. The server is authoritative; this is used to
// check its answers and to filter already loaded lists.
func (f Filter) Match(d dream.Dream) bool {
	if f.Mood != "" && (d.Mood == nil || *d.Mood != f.Mood) {
		return false
	}
	if f.Tag != "" && !dream.HasTag(d.Tags, dream.NormalizeTag(f.Tag)) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(d.Body), q) {
		return true
	}
	return d.Title != nil && strings.Contains(strings.ToLower(*d.Title), q)
}

package capture

import (
	"unicode/utf8"

	"tableflip.dev/dreamlog/pkg/dream"
)

// Keys understood by TagInput.Key.
const (
	KeyEnter     = "enter"
	KeyComma     = ","
	KeySpace     = " "
	KeyBackspace = "backspace"
)

// TagInput is the pill-style tag editor: committed tags plus the text being
// typed.
type TagInput struct {
	Tags  []string
	Input string
}

// Commit normalizes the pending input and appends it. Empty and duplicate
// tags leave Tags untouched. The input is cleared either way. Commit reports
// whether a tag was added.
func (t *TagInput) Commit() bool {
	tag := dream.NormalizeTag(t.Input)
	t.Input = ""
	if tag == "" || dream.HasTag(t.Tags, tag) {
		return false
	}
	t.Tags = append(t.Tags, tag)
	return true
}

// Add commits each value as if typed and confirmed.
func (t *TagInput) Add(values ...string) {
	for _, v := range values {
		t.Input = v
		t.Commit()
	}
}

// Key handles one keypress. Enter, comma and space commit; backspace edits
// the input or, when it is empty, removes the last tag. Any other single
// character is typed into the input. Key reports whether it consumed k.
func (t *TagInput) Key(k string) bool {
	switch k {
	case KeyEnter, KeyComma, KeySpace:
		if t.Input != "" {
			t.Commit()
		}
		return true
	case KeyBackspace:
		if t.Input != "" {
			_, size := utf8.DecodeLastRuneInString(t.Input)
			t.Input = t.Input[:len(t.Input)-size]
			return true
		}
		if n := len(t.Tags); n > 0 {
			t.Remove(t.Tags[n-1])
			return true
		}
		return false
	}
	if utf8.RuneCountInString(k) == 1 {
		t.Input += k
		return true
	}
	return false
}

// Blur commits whatever is pending when focus leaves the input.
func (t *TagInput) Blur() {
	if t.Input != "" {
		t.Commit()
	}
}

// Remove drops tag.
func (t *TagInput) Remove(tag string) {
	out := t.Tags[:0]
	for _, existing := range t.Tags {
		if existing != tag {
			out = append(out, existing)
		}
	}
	t.Tags = out
}

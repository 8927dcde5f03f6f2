package dream

import (
	"fmt"
	"strings"
)

// Mood is one of a fixed set of emotional tones.
type Mood string

const (
	Peaceful Mood = "peaceful"
	Joyful   Mood = "joyful"
	Anxious  Mood = "anxious"
	Eerie    Mood = "eerie"
	Vivid    Mood = "vivid"
	Neutral  Mood = "neutral"
)

var moods = []struct {
	mood  Mood
	label string
	emoji string
}{
	{Peaceful, "Peaceful", "🌙"},
	{Joyful, "Joyful", "✨"},
	{Anxious, "Anxious", "🌀"},
	{Eerie, "Eerie", "🌫️"},
	{Vivid, "Vivid", "🔮"},
	{Neutral, "Neutral", "🌑"},
}

// Moods returns every mood in display order.
func Moods() []Mood {
	out := make([]Mood, 0, len(moods))
	for _, m := range moods {
		out = append(out, m.mood)
	}
	return out
}

// ParseMood resolves a mood id (case-insensitive). The empty string yields "".
func ParseMood(s string) (Mood, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	for _, m := range moods {
		if string(m.mood) == s {
			return m.mood, nil
		}
	}
	return "", fmt.Errorf("unknown mood %q (want one of %s)", s, strings.Join(moodIDs(), ", "))
}

func moodIDs() []string {
	ids := make([]string, 0, len(moods))
	for _, m := range moods {
		ids = append(ids, string(m.mood))
	}
	return ids
}

// Valid reports whether m is a known mood.
func (m Mood) Valid() bool {
	for _, known := range moods {
		if known.mood == m {
			return true
		}
	}
	return false
}

// Label is the capitalised display name.
func (m Mood) Label() string {
	for _, known := range moods {
		if known.mood == m {
			return known.label
		}
	}
	return string(m)
}

// Emoji is the mood's glyph, empty for unknown moods.
func (m Mood) Emoji() string {
	for _, known := range moods {
		if known.mood == m {
			return known.emoji
		}
	}
	return ""
}

func (m Mood) String() string {
	if e := m.Emoji(); e != "" {
		return e + " " + m.Label()
	}
	return string(m)
}

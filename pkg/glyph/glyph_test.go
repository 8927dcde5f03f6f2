package glyph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tableflip.dev/dreamlog/pkg/dream"
)

func TestHeat(t *testing.T) {
	assert.Equal(t, "·", Heat(0))
	assert.Equal(t, "█", Heat(4))
	assert.Equal(t, "█", Heat(9))
	assert.Equal(t, "·", Heat(-1))
	assert.Len(t, HeatGlyphs(), 5)
}

func TestRating(t *testing.T) {
	assert.Equal(t, Unset, Rating(nil))
	assert.Equal(t, "●●●○○", Rating(dream.Ptr(3)))
	assert.Equal(t, "●●●●●", Rating(dream.Ptr(7)))
}

func TestMood(t *testing.T) {
	m := dream.Eerie
	assert.Equal(t, m.Emoji(), Mood(&m))
	assert.Equal(t, "  ", Mood(nil))
}

func TestEscapes(t *testing.T) {
	assert.Equal(t, "\x1b[1mhi\x1b[0m", Bold("hi"))
	assert.Equal(t, "#sea", Tag("sea"))
}

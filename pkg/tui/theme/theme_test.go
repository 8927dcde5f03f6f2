package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/dreamlog/pkg/store"
	"tableflip.dev/dreamlog/pkg/theme"
)

func TestNewShowsDefaultPalette(t *testing.T) {
	th := New()
	assert.Equal(t, theme.Default().Colors.Accent, th.Var("--amber"))
}

func TestThemeRestylesWhenPaletteChanges(t *testing.T) {
	th := New()
	before := th.Styles().Tabs.Active.GetBackground()

	s := theme.NewStore(store.NewMemory())
	s.AddSink(th)
	_, err := s.Set("twilight")
	require.NoError(t, err)

	p, ok := theme.Lookup("twilight")
	require.True(t, ok)
	assert.Equal(t, p.Colors.Accent, th.Var("--amber"))
	assert.NotEqual(t, before, th.Styles().Tabs.Active.GetBackground())
}

func TestBlend(t *testing.T) {
	assert.Equal(t, "#123456", blend("nope", "#123456", 2))
	assert.Equal(t, "#123456", blend("#000000", "#123456", HeatLevels-1))

	seen := map[string]bool{}
	for level := 0; level < HeatLevels; level++ {
		seen[blend("#000000", "#ffffff", level)] = true
	}
	assert.Len(t, seen, HeatLevels)
}

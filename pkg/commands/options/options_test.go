package options

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/dreamlog/pkg/capture"
	"tableflip.dev/dreamlog/pkg/dream"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("#12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	_, err = ParseID("twelve")
	assert.Error(t, err)
	_, err = ParseID("0")
	assert.Error(t, err)
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "one two\nthree", Wrap("  one   two three ", 8))
	assert.Equal(t, "", Wrap("", 8))
}

func TestOutputFormat(t *testing.T) {
	assert.Equal(t, "", (&OutputOptions{}).Format())
	assert.Equal(t, "json", (&OutputOptions{JSON: true, YAML: true}).Format())
	assert.Equal(t, "yaml", (&OutputOptions{YAML: true}).Format())

	err := assert.AnError
	assert.Equal(t, err, (&OutputOptions{}).HandleError(err))
	assert.NoError(t, (&OutputOptions{JSON: true}).HandleError(err))
}

func TestFilter(t *testing.T) {
	o := &FilterOptions{Search: "sea", Mood: "Eerie", Tag: "water"}
	f, err := o.Filter()
	require.NoError(t, err)
	assert.Equal(t, dream.Eerie, f.Mood)
	assert.Equal(t, "sea", f.Search)

	_, err = (&FilterOptions{Mood: "grumpy"}).Filter()
	assert.Error(t, err)
}

func TestDreamOptionsApplyOnlyChanged(t *testing.T) {
	cmd := &cobra.Command{Use: "edit"}
	o := &DreamOptions{}
	AddDreamArgs(cmd, o)
	require.NoError(t, cmd.ParseFlags([]string{"--lucidity=4", "--tag", "Sea,Flying", "--on", "2026-10-01"}))

	f := capture.Edit(dream.Dream{
		ID: 3, Title: dream.Ptr("kept"), Body: "b", Mood: dream.Ptr(dream.Joyful),
		SleepQuality: dream.Ptr(2), DreamDate: "2026-09-01",
	})
	require.NoError(t, o.Apply(f, time.Date(2026, 10, 17, 0, 0, 0, 0, time.Local)))

	assert.Equal(t, "kept", f.Title)
	assert.Equal(t, dream.Joyful, f.Mood)
	assert.Equal(t, 4, *f.Lucidity)
	assert.Equal(t, 2, *f.SleepQuality)
	assert.Equal(t, []string{"sea", "flying"}, f.Tags.Tags)
	assert.Equal(t, "2026-10-01", f.DreamDate)
}

func TestDreamOptionsClear(t *testing.T) {
	cmd := &cobra.Command{Use: "edit"}
	o := &DreamOptions{}
	AddDreamArgs(cmd, o)
	require.NoError(t, cmd.ParseFlags([]string{"--mood=", "--sleep=0"}))

	f := capture.Edit(dream.Dream{ID: 3, Body: "b", Mood: dream.Ptr(dream.Joyful), SleepQuality: dream.Ptr(2)})
	require.NoError(t, o.Apply(f, time.Now()))
	assert.Equal(t, dream.Mood(""), f.Mood)
	assert.Nil(t, f.SleepQuality)
}

package printers

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/calendar"
	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/stats"
)

func newTestPrinter() (*PrettyPrint, *bytes.Buffer) {
	color.NoColor = true
	buf := &bytes.Buffer{}
	return &PrettyPrint{Out: buf, ShowID: true, Width: 100}, buf
}

func sample() []dream.Dream {
	return []dream.Dream{
		{
			ID: 7, Title: dream.Ptr("Flying over the sea"), Body: "I was flying\nover the open sea.",
			Mood: dream.Ptr(dream.Joyful), Lucidity: dream.Ptr(4), SleepQuality: dream.Ptr(2),
			Tags: []string{"flying", "ocean"}, DreamDate: "2026-10-03",
		},
		{ID: 8, Body: "A quiet library", DreamDate: "2026-10-05"},
	}
}

func TestDreams(t *testing.T) {
	pp, buf := newTestPrinter()
	pp.Dreams(sample())

	out := buf.String()
	assert.Contains(t, out, "Flying over the sea")
	assert.Contains(t, out, "Untitled dream")
	assert.Contains(t, out, "2026-10-03")
	assert.Contains(t, out, "●●●●○")
	assert.Contains(t, out, "I was flying over the open sea.")
}

func TestDreamsEmpty(t *testing.T) {
	pp, buf := newTestPrinter()
	pp.Dreams(nil)
	assert.Contains(t, buf.String(), "none")
}

func TestDream(t *testing.T) {
	pp, buf := newTestPrinter()
	pp.Dream(sample()[0])

	out := buf.String()
	assert.Contains(t, out, "#7 · 2026-10-03")
	assert.Contains(t, out, "Joyful")
	assert.Contains(t, out, "Vivid")
	assert.Contains(t, out, "Fair")
	assert.Contains(t, out, "#flying #ocean")
	assert.Contains(t, out, "over the open sea.")
}

func TestTags(t *testing.T) {
	pp, buf := newTestPrinter()
	pp.Tags([]string{"a", "b"})
	assert.Contains(t, buf.String(), "#a  #b")

	pp, buf = newTestPrinter()
	pp.Tags(nil)
	assert.Contains(t, buf.String(), "no tags yet")
}

func TestMonth(t *testing.T) {
	pp, buf := newTestPrinter()
	ix := calendar.Build(sample())
	month := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.Local)
	pp.Month(ix, month, time.Sunday, time.Date(2026, time.October, 17, 0, 0, 0, 0, time.Local))

	out := buf.String()
	assert.Contains(t, out, "October 2026")
	assert.Contains(t, out, "Su Mo Tu We Th Fr Sa")
	assert.Contains(t, out, "31")
	assert.Contains(t, out, "2 dreams this month")
}

func TestHeatmap(t *testing.T) {
	pp, buf := newTestPrinter()
	ix := calendar.Build(sample())
	pp.Heatmap(ix, 2026, time.Sunday, time.Date(2026, time.October, 17, 0, 0, 0, 0, time.Local))

	out := buf.String()
	assert.Contains(t, out, "2026")
	assert.Contains(t, out, "Jan")
	assert.Contains(t, out, "Dec")
	// Lucidity 4 reaches the top level, the unrated dream sits in the middle.
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "▒")
}

func TestDay(t *testing.T) {
	pp, buf := newTestPrinter()
	pp.Day("2026-10-09", nil)
	assert.Contains(t, buf.String(), "no dreams recorded")
}

func TestSummary(t *testing.T) {
	pp, buf := newTestPrinter()
	avg := 3.25
	pp.Summary(&stats.Stats{Total: 4, Moods: map[string]int{"joyful": 3, "eerie": 1}, AvgLucidity: &avg})

	out := buf.String()
	assert.Contains(t, out, "3.3")
	assert.Contains(t, out, "3 (75%)")
	assert.Contains(t, out, "1 (25%)")
	assert.NotContains(t, out, "Peaceful")
}

func TestDetailed(t *testing.T) {
	pp, buf := newTestPrinter()
	pp.Detailed(&stats.Detailed{
		TotalDreams:      5,
		DreamsByMonth:    []stats.MonthCount{{Month: "2026-09", Count: 2}, {Month: "2026-10", Count: 3}},
		MoodDistribution: []stats.MoodCount{{Mood: "vivid", Count: 1}, {Mood: "eerie", Count: 0}},
		TopTags:          []stats.TagCount{{Tag: "flying", Count: 3}},
		LucidityTrend:    []stats.LucidityPoint{{Month: "2026-10", AvgLucidity: 2.5}},
		CurrentStreak:    1,
	})

	out := buf.String()
	assert.Contains(t, out, "1 day")
	assert.Contains(t, out, "2026-09")
	assert.Contains(t, out, "100%")
	assert.NotContains(t, out, "Eerie")
	assert.Contains(t, out, "#flying(3)")
	assert.Contains(t, out, "2.5")
}

func TestDetailedEmpty(t *testing.T) {
	pp, buf := newTestPrinter()
	pp.Detailed(&stats.Detailed{})
	assert.Contains(t, buf.String(), "record a few dreams")
}

func TestScaleBar(t *testing.T) {
	assert.Equal(t, "", scaleBar(0, 10))
	assert.Equal(t, "█", scaleBar(1, 1000))
	assert.Len(t, []rune(scaleBar(10, 10)), barWidth)
}

func TestReport(t *testing.T) {
	pp, buf := newTestPrinter()
	until := time.Date(2026, time.October, 6, 0, 0, 0, 0, time.Local)
	pp.Report(app.BuildReport(sample(), until.AddDate(0, 0, -6), until))

	out := buf.String()
	assert.Contains(t, out, "2 dreams over 2 days")
	assert.Contains(t, out, "mostly")
	assert.Contains(t, out, "2026-10-05")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("2026-10-05")), bytes.Index(buf.Bytes(), []byte("Flying")))
}

func TestThemes(t *testing.T) {
	pp, buf := newTestPrinter()
	pp.Themes("forest")

	out := buf.String()
	assert.Contains(t, out, "amber")
	assert.Contains(t, out, "*  forest")
	assert.Contains(t, out, "Rose Garden")
}

func TestEncode(t *testing.T) {
	buf := &bytes.Buffer{}
	assert.NoError(t, Encode(buf, "json", map[string]int{"total": 2}))
	assert.JSONEq(t, `{"total": 2}`, buf.String())

	buf.Reset()
	assert.NoError(t, Encode(buf, "yaml", map[string]int{"total": 2}))
	assert.Equal(t, "total: 2\n", buf.String())

	assert.Error(t, Encode(buf, "xml", nil))
}

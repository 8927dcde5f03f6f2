// Package printers renders dreamlog data for a terminal.
package printers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/glyph"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 80

type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
	Width  int
}

// New returns a printer on color.Output.
func New() *PrettyPrint {
	return &PrettyPrint{Out: color.Output, ShowID: true, Width: DefaultWidth}
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return DefaultWidth
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

// Line prints a plain line.
func (pp *PrettyPrint) Line(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(pp.out(), format+"\n", args...)
}

// Success prints a confirmation in green.
func (pp *PrettyPrint) Success(format string, args ...interface{}) {
	_, _ = color.New(color.FgGreen).Fprintf(pp.out(), format+"\n", args...)
}

// Faint prints a de-emphasised line, e.g. an empty state.
func (pp *PrettyPrint) Faint(format string, args ...interface{}) {
	_, _ = color.New(color.Faint, color.Italic).Fprintf(pp.out(), format+"\n", args...)
}

func (pp *PrettyPrint) Title(title string) {
	_, _ = color.New(color.Bold, color.Underline).Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, singular, plural string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)
	_, _ = t.Fprint(pp.out(), title)
	noun := plural
	if count == 1 {
		noun = singular
	}
	_, _ = c.Fprintf(pp.out(), " - %d %s\n", count, noun)
}

// Dreams prints one row per dream.
func (pp *PrettyPrint) Dreams(dreams []dream.Dream) {
	if len(dreams) == 0 {
		pp.Faint(" none")
		pp.NewLine()
		return
	}

	id := color.New(color.FgHiYellow, color.Faint)
	date := color.New(color.Faint)
	title := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	previewWidth := pp.width() - 60
	if previewWidth < 20 {
		previewWidth = 20
	}
	for _, d := range dreams {
		d := d
		row := []interface{}{}
		if pp.ShowID {
			row = append(row, id.Sprint(strconv.FormatInt(d.ID, 10)))
		}
		row = append(row,
			date.Sprint(d.DayKey()),
			glyph.Mood(d.Mood),
			title.Sprint(truncate.StringWithTail(d.DisplayTitle(), 28, "…")),
			glyph.Rating(d.Lucidity),
			truncate.StringWithTail(oneLine(d.Body), uint(previewWidth), "…"),
		)
		tbl.AddRow(row...)
	}
	if pp.ShowID {
		tbl.RightAlign(0)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Dream prints the full entry.
func (pp *PrettyPrint) Dream(d dream.Dream) {
	w := pp.out()
	label := color.New(color.Faint)

	pp.Title(d.DisplayTitle())
	_, _ = label.Fprintf(w, "#%d · %s", d.ID, d.DayKey())
	if d.Mood != nil {
		_, _ = fmt.Fprintf(w, " · %s %s", d.Mood.Emoji(), d.Mood.Label())
	}
	_, _ = fmt.Fprintln(w)

	tbl := uitable.New()
	tbl.Separator = "  "
	if d.Lucidity != nil {
		tbl.AddRow(label.Sprint("Lucidity"), glyph.Rating(d.Lucidity), dream.RatingLabel(dream.LucidityLabels, *d.Lucidity))
	}
	if d.SleepQuality != nil {
		tbl.AddRow(label.Sprint("Sleep"), glyph.Rating(d.SleepQuality), dream.RatingLabel(dream.SleepLabels, *d.SleepQuality))
	}
	if len(d.Tags) > 0 {
		tags := make([]string, 0, len(d.Tags))
		for _, t := range d.Tags {
			tags = append(tags, glyph.Tag(t))
		}
		tbl.AddRow(label.Sprint("Tags"), strings.Join(tags, " "), "")
	}
	if len(tbl.Rows) > 0 {
		_, _ = fmt.Fprintln(w, tbl)
	}
	pp.NewLine()
	_, _ = fmt.Fprintln(w, wordwrap.String(strings.TrimSpace(d.Body), pp.width()))
	pp.NewLine()
}

// Tags prints the distinct tags.
func (pp *PrettyPrint) Tags(tags []string) {
	if len(tags) == 0 {
		pp.Faint(" no tags yet")
		return
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, glyph.Tag(t))
	}
	_, _ = fmt.Fprintln(pp.out(), wordwrap.String(strings.Join(out, "  "), pp.width()))
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

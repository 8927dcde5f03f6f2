// Package key prints the legend for the symbols dreamlog draws.
package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/glyph"
	"tableflip.dev/dreamlog/pkg/runner"
)

// Key prints heatmap cells, moods and rating scales.
type Key struct {
	runner.Base
}

func (k *Key) Do(_ context.Context) error {
	w := k.Writer()
	bold := color.New(color.Bold)

	_, _ = fmt.Fprintln(w, "")
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Heat"), bold.Sprint("Meaning"))
	for _, g := range glyph.HeatGlyphs() {
		tbl.AddRow(g.Symbol, g.Meaning)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintln(w, "")

	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Mood"), bold.Sprint("Meaning"))
	for _, m := range dream.Moods() {
		tbl.AddRow(m.Emoji(), m.Label())
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintln(w, "")

	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Rating"), bold.Sprint("Lucidity"), bold.Sprint("Sleep"))
	for r := dream.MinRating; r <= dream.MaxRating; r++ {
		r := r
		tbl.AddRow(glyph.Rating(&r), dream.RatingLabel(dream.LucidityLabels, r), dream.RatingLabel(dream.SleepLabels, r))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintln(w, "")
	return nil
}

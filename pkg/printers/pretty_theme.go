package printers

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/dreamlog/pkg/theme"
)

func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

// Themes lists the palettes and marks the current one.
func (pp *PrettyPrint) Themes(current string) {
	pp.Title("Themes")
	mark := color.New(color.FgHiYellow, color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, p := range theme.Palettes() {
		cur := " "
		if p.ID == current {
			cur = mark.Sprint("*")
		}
		tbl.AddRow(cur, p.ID,
			swatch(p.Colors.Ink)+swatch(p.Colors.Accent)+swatch(p.Colors.Parchment),
			p.Name, faint.Sprint(p.Description))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

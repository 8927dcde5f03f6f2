// Package runner holds what the commands share: the service, where output
// goes and in which format.
package runner

import (
	"io"

	"github.com/fatih/color"

	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/printers"
)

type Base struct {
	Service *app.Service
	Out     io.Writer
	// Format is "json", "yaml" or "" for pretty output.
	Format string
}

func (b *Base) Writer() io.Writer {
	if b.Out == nil {
		return color.Output
	}
	return b.Out
}

func (b *Base) Structured() bool {
	return b.Format != ""
}

func (b *Base) Encode(v interface{}) error {
	return printers.Encode(b.Writer(), b.Format, v)
}

func (b *Base) Printer() *printers.PrettyPrint {
	pp := printers.New()
	pp.Out = b.Writer()
	return pp
}

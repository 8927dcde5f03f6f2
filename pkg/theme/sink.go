package theme

import (
	"fmt"
	"io"
)

// Sink receives style properties when a palette is applied.
type Sink interface {
	SetProperty(name, value string)
}

// Apply writes every variable of p to each sink. Applying the same palette
// twice leaves a sink in the same state.
func Apply(p Palette, sinks ...Sink) {
	vars := p.Variables()
	for _, s := range sinks {
		if s == nil {
			continue
		}
		for _, v := range vars {
			s.SetProperty(v.Name, v.Value)
		}
	}
}

// VarMap is an in-memory sink.
type VarMap map[string]string

func (m VarMap) SetProperty(name, value string) {
	m[name] = value
}

// CSSWriter emits each property as a CSS custom property declaration.
type CSSWriter struct {
	w   io.Writer
	err error
}

func NewCSSWriter(w io.Writer) *CSSWriter {
	return &CSSWriter{w: w}
}

func (c *CSSWriter) SetProperty(name, value string) {
	if c.err != nil {
		return
	}
	_, c.err = fmt.Fprintf(c.w, "  %s: %s;\n", name, value)
}

// Err returns the first write error.
func (c *CSSWriter) Err() error {
	return c.err
}

// WriteCSS writes p as a :root rule.
func WriteCSS(w io.Writer, p Palette) error {
	if _, err := fmt.Fprintf(w, "/* %s: %s */\n:root {\n", p.ID, p.Name); err != nil {
		return err
	}
	cw := NewCSSWriter(w)
	Apply(p, cw)
	if err := cw.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

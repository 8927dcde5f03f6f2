// Package theme lists, picks and exports colour palettes.
package theme

import (
	"context"
	"fmt"

	"tableflip.dev/dreamlog/pkg/prompt"
	"tableflip.dev/dreamlog/pkg/runner"
	th "tableflip.dev/dreamlog/pkg/theme"
)

type List struct {
	runner.Base
}

func (l *List) Do(_ context.Context) error {
	current := l.Service.Theme.Load()
	if l.Structured() {
		type row struct {
			ID          string `json:"id" yaml:"id"`
			Name        string `json:"name" yaml:"name"`
			Description string `json:"description" yaml:"description"`
			Current     bool   `json:"current" yaml:"current"`
		}
		var rows []row
		for _, p := range th.Palettes() {
			rows = append(rows, row{p.ID, p.Name, p.Description, p.ID == current.ID})
		}
		return l.Encode(rows)
	}
	l.Printer().Themes(current.ID)
	return nil
}

// Set selects a palette by id. With no id and a terminal it offers a picker.
type Set struct {
	runner.Base
	ID     string
	Prompt prompt.Prompter
}

func (s *Set) Do(_ context.Context) error {
	id := s.ID
	if id == "" {
		if s.Prompt == nil {
			return fmt.Errorf("%w; name a theme", prompt.ErrNotInteractive)
		}
		palettes := th.Palettes()
		names := make([]string, 0, len(palettes))
		for _, p := range palettes {
			names = append(names, p.ID)
		}
		i, err := s.Prompt.Select("Theme", names)
		if err != nil {
			return err
		}
		id = names[i]
	}
	if _, ok := th.Lookup(id); !ok {
		return fmt.Errorf("unknown theme %q", id)
	}
	p, err := s.Service.Theme.Set(id)
	if err != nil {
		return err
	}
	if s.Structured() {
		return s.Encode(map[string]string{"theme": p.ID})
	}
	s.Printer().Success("Theme set to %s", p.Name)
	return nil
}

// CSS prints the style properties of a palette, the current one by default.
type CSS struct {
	runner.Base
	ID string
}

func (c *CSS) Do(_ context.Context) error {
	p := c.Service.Theme.Load()
	if c.ID != "" {
		var ok bool
		if p, ok = th.Lookup(c.ID); !ok {
			return fmt.Errorf("unknown theme %q", c.ID)
		}
	}
	if c.Structured() {
		vars := th.VarMap{}
		th.Apply(p, vars)
		return c.Encode(vars)
	}
	return th.WriteCSS(c.Writer(), p)
}

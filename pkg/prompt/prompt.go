// Package prompt asks the user for input on a terminal.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned when input is needed but stdin is not a
// terminal.
var ErrNotInteractive = errors.New("input required but stdin is not a terminal")

// Prompter collects answers.
type Prompter interface {
	Text(label, def string) (string, error)
	Secret(label string) (string, error)
	Confirm(label string) (bool, error)
	Select(label string, items []string) (int, error)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Terminal prompts with promptui.
type Terminal struct {
	In  io.ReadCloser
	Out io.WriteCloser
}

// New returns a Terminal on stdin/stdout, or nil when stdin is not a
// terminal.
func New() Prompter {
	if !IsTerminal(os.Stdin) {
		return nil
	}
	return &Terminal{In: os.Stdin, Out: NopCloser(os.Stdout)}
}

var templates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

func (t *Terminal) Text(label, def string) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Default:   def,
		Templates: templates,
		Stdin:     t.In,
		Stdout:    t.Out,
	}
	return p.Run()
}

func (t *Terminal) Secret(label string) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Mask:      '•',
		Templates: templates,
		Validate: func(input string) error {
			if input == "" {
				return errors.New("empty")
			}
			return nil
		},
		Stdin:  t.In,
		Stdout: t.Out,
	}
	return p.Run()
}

// Confirm asks a yes/no question. Anything but an explicit yes is no.
func (t *Terminal) Confirm(label string) (bool, error) {
	p := promptui.Prompt{
		Label:     label + " [y/N]",
		Templates: templates,
		Validate: func(input string) error {
			if input == "" {
				return nil
			}
			_, err := ParseBool(input)
			return err
		},
		Stdin:  t.In,
		Stdout: t.Out,
	}
	result, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}
		return false, err
	}
	yes, _ := ParseBool(result)
	return yes, nil
}

func (t *Terminal) Select(label string, items []string) (int, error) {
	sel := promptui.Select{
		HideHelp: true,
		Label:    label,
		Items:    items,
		Size:     10,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}?",
			Active:   "➜  {{ . | bold }}",
			Inactive: "   {{ . }}",
			Selected: "{{ . | bold }}",
		},
		Searcher: func(input string, index int) bool {
			name := strings.ReplaceAll(strings.ToLower(items[index]), " ", "")
			input = strings.ReplaceAll(strings.ToLower(input), " ", "")
			return strings.Contains(name, input)
		},
		Stdin:  t.In,
		Stdout: t.Out,
	}
	i, _, err := sel.Run()
	return i, err
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

// Scripted replays canned answers, in order. Used where no terminal exists.
type Scripted struct {
	Answers []string
}

func (s *Scripted) next(label string) (string, error) {
	if len(s.Answers) == 0 {
		return "", fmt.Errorf("no answer for %q", label)
	}
	a := s.Answers[0]
	s.Answers = s.Answers[1:]
	return a, nil
}

func (s *Scripted) Text(label, def string) (string, error) {
	a, err := s.next(label)
	if err == nil && a == "" {
		a = def
	}
	return a, err
}

func (s *Scripted) Secret(label string) (string, error) {
	return s.next(label)
}

func (s *Scripted) Confirm(label string) (bool, error) {
	a, err := s.next(label)
	if err != nil {
		return false, err
	}
	yes, _ := ParseBool(a)
	return yes, nil
}

func (s *Scripted) Select(label string, items []string) (int, error) {
	a, err := s.next(label)
	if err != nil {
		return -1, err
	}
	for i, it := range items {
		if it == a {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%q is not one of %s", a, strings.Join(items, ", "))
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NopCloser wraps w so promptui cannot close it.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopWriteCloser{w}
}

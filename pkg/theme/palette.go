// Package theme holds the colour palettes and the store that persists and
// applies the selected one.
package theme

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultID is used when nothing, or something unknown, is stored.
const DefaultID = "amber"

// Colors are the twelve palette slots. Accent* map to the --amber* names.
type Colors struct {
	Ink        string `json:"ink" yaml:"ink"`
	InkSoft    string `json:"ink_soft" yaml:"ink_soft"`
	InkMuted   string `json:"ink_muted" yaml:"ink_muted"`
	Parchment  string `json:"parchment" yaml:"parchment"`
	Parchment2 string `json:"parchment2" yaml:"parchment2"`
	Parchment3 string `json:"parchment3" yaml:"parchment3"`
	Accent     string `json:"accent" yaml:"accent"`
	AccentDeep string `json:"accent_deep" yaml:"accent_deep"`
	AccentGlow string `json:"accent_glow" yaml:"accent_glow"`
	Cream      string `json:"cream" yaml:"cream"`
	Gold       string `json:"gold" yaml:"gold"`
	GoldLight  string `json:"gold_light" yaml:"gold_light"`
}

type Palette struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Colors      Colors `json:"colors" yaml:"colors"`
}

var palettes = []Palette{
	{
		ID:          "amber",
		Name:        "Amber Dream",
		Description: "Warm amber & cream (default)",
		Colors: Colors{
			Ink: "#1a0f08", InkSoft: "#3d2314", InkMuted: "#7a5c47",
			Parchment: "#f5ede0", Parchment2: "#ede0cc", Parchment3: "#e3d0b5",
			Accent: "#c4824a", AccentDeep: "#a06030", AccentGlow: "#e8a96e",
			Cream: "#faf5ed", Gold: "#d4a853", GoldLight: "#f0cc7a",
		},
	},
	{
		ID:          "twilight",
		Name:        "Twilight Purple",
		Description: "Mystical deep purple & lavender",
		Colors: Colors{
			Ink: "#0f0a1f", InkSoft: "#1a0f3d", InkMuted: "#5a4d7a",
			Parchment: "#e8e4f0", Parchment2: "#d4cfe3", Parchment3: "#c0b8d4",
			Accent: "#7c5ce6", AccentDeep: "#5a3db8", AccentGlow: "#9d80f0",
			Cream: "#f0ecf8", Gold: "#a88ce6", GoldLight: "#c4b0f0",
		},
	},
	{
		ID:          "midnight",
		Name:        "Midnight Blue",
		Description: "Calm oceanic blues",
		Colors: Colors{
			Ink: "#0a0f1a", InkSoft: "#152238", InkMuted: "#47597a",
			Parchment: "#e4e9f0", Parchment2: "#cfd9e3", Parchment3: "#b8c8d4",
			Accent: "#5c8ce6", AccentDeep: "#3d6bb8", AccentGlow: "#80a8f0",
			Cream: "#ecf2f8", Gold: "#6c9ce6", GoldLight: "#8cb0f0",
		},
	},
	{
		ID:          "forest",
		Name:        "Forest Emerald",
		Description: "Deep forest greens",
		Colors: Colors{
			Ink: "#0a1a0f", InkSoft: "#15382d", InkMuted: "#47756a",
			Parchment: "#e4f0eb", Parchment2: "#cfe8dc", Parchment3: "#b8d8cc",
			Accent: "#5ce6b4", AccentDeep: "#3db88f", AccentGlow: "#80f0c8",
			Cream: "#ecf8f3", Gold: "#6ce6be", GoldLight: "#8cf0d0",
		},
	},
	{
		ID:          "rose",
		Name:        "Rose Garden",
		Description: "Soft rose & peach tones",
		Colors: Colors{
			Ink: "#1a0f14", InkSoft: "#3d2230", InkMuted: "#7a5465",
			Parchment: "#f0e4e8", Parchment2: "#e8cfd9", Parchment3: "#d8b8c8",
			Accent: "#e65c8c", AccentDeep: "#b83d6b", AccentGlow: "#f080a8",
			Cream: "#f8ecf0", Gold: "#e66c9c", GoldLight: "#f08cb0",
		},
	},
}

// Palettes returns all palettes, default first.
func Palettes() []Palette {
	return append([]Palette(nil), palettes...)
}

// Lookup finds a palette by id. ok is false when id is unknown, in which
// case the default palette is returned.
func Lookup(id string) (Palette, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, p := range palettes {
		if p.ID == id {
			return p, true
		}
	}
	return palettes[0], false
}

// Default returns the amber palette.
func Default() Palette {
	return palettes[0]
}

// Variable is one named style property.
type Variable struct {
	Name  string
	Value string
}

// Variables returns the 24 style properties for p: twelve hex colours, then
// the same twelve as "r, g, b" triples under a -rgb suffix.
func (p Palette) Variables() []Variable {
	named := []Variable{
		{"--ink", p.Colors.Ink},
		{"--ink-soft", p.Colors.InkSoft},
		{"--ink-muted", p.Colors.InkMuted},
		{"--parchment", p.Colors.Parchment},
		{"--parchment2", p.Colors.Parchment2},
		{"--parchment3", p.Colors.Parchment3},
		{"--amber", p.Colors.Accent},
		{"--amber-deep", p.Colors.AccentDeep},
		{"--amber-glow", p.Colors.AccentGlow},
		{"--cream", p.Colors.Cream},
		{"--gold", p.Colors.Gold},
		{"--gold-light", p.Colors.GoldLight},
	}
	vars := make([]Variable, 0, 2*len(named))
	vars = append(vars, named...)
	for _, v := range named {
		vars = append(vars, Variable{Name: v.Name + "-rgb", Value: RGB(v.Value)})
	}
	return vars
}

// RGB converts "#rrggbb" to "r, g, b". Unparseable input yields "0, 0, 0".
func RGB(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "0, 0, 0"
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("%d, %d, %d", r, g, b)
}

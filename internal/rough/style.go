// Package rough turns shape geometry into hand-drawn looking strokes.
package rough

import (
	"fmt"
	"image/color"
	"sort"
)

// Style controls how strokes are sketched.
type Style struct {
	StrokeWidth float64    `json:"strokeWidth" toml:"stroke_width"`
	Roughness   float64    `json:"roughness" toml:"roughness"`
	Bowing      float64    `json:"bowing" toml:"bowing"`
	Color       color.RGBA `json:"-" toml:"-"`
}

var (
	// Bold is thick and wobbly.
	Bold = Style{StrokeWidth: 4, Roughness: 2, Bowing: 1, Color: color.RGBA{A: 255}}
	// Fine is thin with pronounced bowing.
	Fine = Style{StrokeWidth: 2, Roughness: 1, Bowing: 1.5, Color: color.RGBA{A: 255}}
)

var presets = map[string]Style{
	"bold": Bold,
	"fine": Fine,
}

// Preset looks up a named style.
func Preset(name string) (Style, error) {
	s, ok := presets[name]
	if !ok {
		return Style{}, fmt.Errorf("unknown style preset %q (have %v)", name, PresetNames())
	}
	return s, nil
}

// PresetNames returns the known preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

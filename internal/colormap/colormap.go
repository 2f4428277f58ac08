// Package colormap maps scalars in [0, 1] to colours using 256-entry
// tables for the usual scientific colormaps.
package colormap

import (
	"image/color"
	"log/slog"
	"math"
	"slices"
	"strings"
)

// Default is used when a requested name is unknown.
const Default = "viridis"

// Size is the number of entries in every table.
const Size = 256

// Colormap is an immutable lookup table.
type Colormap struct {
	name  string
	table [Size]color.NRGBA
}

type stop struct {
	pos float64
	rgb uint32
}

// Control points sampled from the reference tables; entries in between are
// linearly interpolated.
var definitions = map[string][]stop{
	"viridis": even(0x440154, 0x472d7b, 0x3b528b, 0x2c728e, 0x21918c, 0x28ae80, 0x5ec962, 0xaddc30, 0xfde725),
	"plasma":  even(0x0d0887, 0x4c02a1, 0x7e03a8, 0xa92395, 0xcc4778, 0xe56b5d, 0xf89441, 0xfdc328, 0xf0f921),
	"inferno": even(0x000004, 0x1f0c48, 0x550f6d, 0x88226a, 0xba3655, 0xe35933, 0xf98e09, 0xf9cb35, 0xfcffa4),
	"magma":   even(0x000004, 0x1c1044, 0x4f127b, 0x812581, 0xb5367a, 0xe55064, 0xfb8761, 0xfec287, 0xfcfdbf),
	"jet": {
		{0, 0x000080},
		{0.125, 0x0000ff},
		{0.375, 0x00ffff},
		{0.625, 0xffff00},
		{0.875, 0xff0000},
		{1, 0x800000},
	},
}

var registry = build()

func even(rgbs ...uint32) []stop {
	stops := make([]stop, len(rgbs))
	for i, rgb := range rgbs {
		stops[i] = stop{pos: float64(i) / float64(len(rgbs)-1), rgb: rgb}
	}
	return stops
}

func build() map[string]*Colormap {
	out := make(map[string]*Colormap, len(definitions))
	for name, stops := range definitions {
		c := &Colormap{name: name}
		for i := range c.table {
			c.table[i] = interpolate(stops, float64(i)/(Size-1))
		}
		out[name] = c
	}
	return out
}

func interpolate(stops []stop, t float64) color.NRGBA {
	j := 1
	for j < len(stops)-1 && stops[j].pos < t {
		j++
	}
	a, b := stops[j-1], stops[j]
	f := (t - a.pos) / (b.pos - a.pos)
	lerp := func(shift uint) uint8 {
		ca := float64(a.rgb >> shift & 0xff)
		cb := float64(b.rgb >> shift & 0xff)
		return uint8(math.Round(ca + (cb-ca)*f))
	}
	return color.NRGBA{R: lerp(16), G: lerp(8), B: lerp(0), A: 0xff}
}

// Get returns the named colormap.
func Get(name string) (*Colormap, bool) {
	c, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Lookup returns the named colormap, falling back to Default with a warning
// when the name is unknown.
func Lookup(name string, logger *slog.Logger) *Colormap {
	if c, ok := Get(name); ok {
		return c
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("unknown colormap, using default", "name", name, "default", Default)
	return registry[Default]
}

// Names lists the registered colormaps in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (c *Colormap) Name() string { return c.name }

// Index returns the table entry i, clamped to [0, Size-1].
func (c *Colormap) Index(i int) color.NRGBA {
	return c.table[min(max(i, 0), Size-1)]
}

// At maps t in [0, 1] to the nearest table entry. Values outside the range
// are clamped; NaN maps to the first entry.
func (c *Colormap) At(t float64) color.NRGBA {
	if math.IsNaN(t) {
		return c.table[0]
	}
	t = min(max(t, 0), 1)
	return c.table[int(math.Round(t*(Size-1)))]
}

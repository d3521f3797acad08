package puzzle

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/hyperpuzzle/names"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultSchemeName is the name of the color scheme used when none is
// selected.
const DefaultSchemeName = "Default"

// A ColorID identifies a color of a puzzle.
type ColorID uint16

// NoColor is used for facets without a color.
const NoColor ColorID = math.MaxUint16

// tag converts a color to a facet tag, where 0 means no color.
func (c ColorID) tag() int {
	if c == NoColor {
		return 0
	}
	return int(c) + 1
}

func colorFromTag(tag int) ColorID {
	if tag == 0 {
		return NoColor
	}
	return ColorID(tag - 1)
}

// A Color is a set of stickers which share a color in the solved state.
type Color struct {
	ID   ColorID
	Name string

	// Default is the display color used when a scheme doesn't specify one.
	Default string
}

func (c *Color) Ref() ElementRef {
	return ElementRef{Kind: KindColor, ID: int(c.ID)}
}

// A ColorSystem defines the colors of a puzzle and the color schemes which
// assign display colors to them.
type ColorSystem struct {
	// Autonames provides names for colors without valid names.
	// Defaults to "c1", "c2", etc.
	Autonames names.Autonames

	colors   []*Color
	names    *names.BiMap[ColorID]
	schemes  map[string]map[string]string
	warnings []Warning
}

// NewColorSystem creates an empty color system.
func NewColorSystem() *ColorSystem {
	return &ColorSystem{
		Autonames: &names.Numbered{Prefix: "c"},
		names:     names.NewBiMap[ColorID](),
		schemes:   map[string]map[string]string{},
	}
}

// Add creates a new color.
//
// The name is a name specification. If it is empty, the color is
// autonamed. If it is invalid or taken, the color is autonamed and a warning
// is recorded.
func (c *ColorSystem) Add(name, defaultColor string) (ColorID, error) {
	if len(c.colors) >= int(NoColor) {
		return NoColor, errors.Wrapf(ErrTooManyElements, "more than %d colors", int(NoColor))
	}
	id := ColorID(len(c.colors))
	c.warnings = append(c.warnings, assignName(c.names, id, name, c.Autonames, KindColor)...)
	c.colors = append(c.colors, &Color{ID: id, Name: mustName(c.names, id), Default: defaultColor})
	return id, nil
}

// Len returns the number of colors.
func (c *ColorSystem) Len() int {
	return len(c.colors)
}

// Get returns a color by id.
func (c *ColorSystem) Get(id ColorID) *Color {
	return c.colors[id]
}

// ByName looks up a color by any name matching its specification.
func (c *ColorSystem) ByName(name string) (ColorID, bool) {
	return c.names.ID(name)
}

// AddScheme adds or replaces a color scheme, mapping color names to display
// colors. Colors which the scheme omits use their defaults.
func (c *ColorSystem) AddScheme(name string, colors map[string]string) error {
	scheme := map[string]string{}
	for colorName, value := range colors {
		id, ok := c.names.ID(colorName)
		if !ok {
			return errors.Wrapf(ErrNoSuchColor, "scheme %q refers to %q", name, colorName)
		}
		scheme[c.colors[id].Name] = value
	}
	c.schemes[name] = scheme
	return nil
}

// SchemeNames returns the names of the schemes in sorted order.
func (c *ColorSystem) SchemeNames() []string {
	res := maps.Keys(c.schemes)
	slices.Sort(res)
	return res
}

// Scheme resolves a scheme to a display color for each color id.
func (c *ColorSystem) Scheme(name string) ([]string, bool) {
	scheme, ok := c.schemes[name]
	if !ok {
		return nil, false
	}
	res := make([]string, len(c.colors))
	for i, color := range c.colors {
		if value, ok := scheme[color.Name]; ok {
			res[i] = value
		} else {
			res[i] = color.Default
		}
	}
	return res, true
}

type colorCheckpoint struct {
	colors   int
	warnings int
}

func (c *ColorSystem) checkpoint() colorCheckpoint {
	return colorCheckpoint{colors: len(c.colors), warnings: len(c.warnings)}
}

// rollback removes every color added since a checkpoint.
func (c *ColorSystem) rollback(cp colorCheckpoint) {
	for id := cp.colors; id < len(c.colors); id++ {
		c.names.Remove(ColorID(id))
	}
	c.colors = c.colors[:cp.colors]
	c.warnings = c.warnings[:cp.warnings]
}

// Warnings returns every warning recorded while adding colors, plus a
// warning if the default scheme is missing.
func (c *ColorSystem) Warnings() []Warning {
	res := append([]Warning{}, c.warnings...)
	if _, ok := c.schemes[DefaultSchemeName]; !ok && len(c.colors) > 0 {
		res = append(res, Warning{Kind: KindColor, Err: ErrMissingScheme})
	}
	return res
}

func (c *ColorSystem) finalize() (colors []*Color, schemes map[string][]string) {
	colors = make([]*Color, len(c.colors))
	for i, color := range c.colors {
		copied := *color
		colors[i] = &copied
	}
	schemes = map[string][]string{}
	for name := range c.schemes {
		schemes[name], _ = c.Scheme(name)
	}
	if _, ok := schemes[DefaultSchemeName]; !ok {
		defaults := make([]string, len(colors))
		for i, color := range colors {
			defaults[i] = color.Default
		}
		schemes[DefaultSchemeName] = defaults
	}
	return colors, schemes
}

package bmfont

import "image/color"

// Style describes the face appearance used for measurement and
// rasterization. Only glyph-level attributes participate: layout-affecting
// properties (alignment, line breaking) never apply, since atlas
// generation measures and draws single glyphs in isolation.
type Style struct {
	// Family is the font family name, resolved against registered font
	// data first and the system font directories second.
	Family string

	// Size is the nominal font size in pixels at resolution 1.
	Size float64

	// Bold and Italic select the face variant. Italic glyphs reserve
	// double horizontal cell space during packing to avoid overlapping
	// the next cell.
	Bold   bool
	Italic bool

	// Fill is the glyph fill color. Nil means opaque white, the usual
	// choice for atlases tinted at draw time.
	Fill color.Color

	// StrokeWidth and StrokeColor add an outline pass around the glyph.
	StrokeWidth float64
	StrokeColor color.Color

	// ShadowDistance and ShadowColor add a drop-shadow pass offset
	// diagonally by the distance.
	ShadowDistance float64
	ShadowColor    color.Color
}

// decorationPad is the extra extent the style's stroke and shadow add to a
// rendered glyph.
func (s *Style) decorationPad() float64 {
	return s.StrokeWidth + s.ShadowDistance
}

// Extents is the measured size of a piece of text: total rendered width
// and height plus the face's ascent and descent around the baseline.
type Extents struct {
	Width   float64
	Height  float64
	Ascent  float64
	Descent float64
}

// Measurer measures text extents for a style. Measurement is synchronous
// and pure given the style: the same inputs always produce the same
// extents within a process.
type Measurer interface {
	Measure(text string, style *Style) (Extents, error)
}

// Shaper is the text shaping service atlas generation depends on: it
// measures glyph extents and rasterizes glyphs onto surfaces. Both
// operations run to completion before returning.
type Shaper interface {
	Measurer

	// Draw rasterizes text onto dst with its top-left at (x, y), in
	// device pixels, scaled by resolution. Implementations that cannot
	// draw into the given surface type return ErrUnsupportedSurface.
	Draw(dst Surface, text string, style *Style, x, y, resolution float64) error
}

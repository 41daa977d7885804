package bmfont

import (
	"strconv"
	"strings"
)

// Page identifies one texture page of a glyph atlas.
type Page struct {
	// ID is the page identifier glyphs refer to.
	ID int

	// SourceRef names the external image backing this page, e.g.
	// "arial_0.png". It is empty for pages the atlas generator produced
	// itself; those pages are supplied directly as surfaces instead.
	//
	// SourceRef may carry a density hint in the "name@2x.ext" convention.
	// The hint on the FIRST page defines the native resolution of every
	// coordinate in the descriptor.
	SourceRef string
}

// GlyphInfo describes one glyph's geometry within its page, in the
// descriptor's native resolution.
type GlyphInfo struct {
	// ID is the character code (Unicode code point).
	ID int

	// PageID is the page the glyph image lives on.
	PageID int

	// X, Y, Width, Height locate the glyph image within its page.
	X, Y, Width, Height float64

	// XOffset, YOffset displace the glyph image from the layout cursor
	// when rendering.
	XOffset, YOffset float64

	// XAdvance is how far the cursor moves after this glyph.
	XAdvance float64
}

// KerningPair adjusts the advance between two specific characters.
// First and Second are character codes; Amount is the advance delta.
//
// The fields are float64 rather than rune because the runtime index
// normalizes ALL descriptor values, character codes included, by the
// resolution factor (see RuntimeFont).
type KerningPair struct {
	First  float64
	Second float64
	Amount float64
}

// FontDescriptor is a normalized, resolution-tagged description of a glyph
// atlas: face metadata, page list, per-character geometry, and raw kerning
// pairs. It is produced either by a registered Format parser or by the
// atlas generator, is immutable once built, and is consumed exactly once
// by Build.
type FontDescriptor struct {
	// FaceName is the face the font will be installed under.
	FaceName string

	// FaceSize is the nominal pixel size at the descriptor's native
	// resolution.
	FaceSize float64

	// LineHeight is the distance between baselines, in native units.
	LineHeight float64

	// Pages lists the texture pages, ordered by appearance in the source.
	Pages []Page

	// Glyphs lists per-character geometry in native-resolution units.
	Glyphs []GlyphInfo

	// Kernings lists raw kerning pairs in native-resolution units.
	Kernings []KerningPair
}

// Resolution returns the native resolution factor of the descriptor,
// inferred from the density hint embedded in the first page's SourceRef.
// It defaults to 1 when no hint is present or when pages carry no source
// reference (the generated-atlas case).
func (d *FontDescriptor) Resolution() float64 {
	if len(d.Pages) == 0 {
		return 1
	}
	if r := parseDensityHint(d.Pages[0].SourceRef); r > 0 {
		return r
	}
	return 1
}

// parseDensityHint extracts the density factor from a source reference in
// the "name@2x.ext" convention. Returns 0 when the reference carries no
// parseable hint.
func parseDensityHint(ref string) float64 {
	at := strings.LastIndexByte(ref, '@')
	if at < 0 {
		return 0
	}
	rest := ref[at+1:]
	x := strings.IndexByte(rest, 'x')
	if x <= 0 {
		return 0
	}
	f, err := strconv.ParseFloat(rest[:x], 64)
	if err != nil || f <= 0 {
		return 0
	}
	return f
}

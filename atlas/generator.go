package atlas

import (
	"log/slog"
	"math"

	"github.com/gogpu/bmfont"
)

// Generator rasterizes character sets into bitmap font atlases.
//
// Generation is synchronous and runs to completion; there is no
// cancellation point mid-pass. The target registry is mutated without
// internal locking, so callers serialize Generate with other registry
// mutations (see bmfont.Registry).
type Generator struct {
	shaper   bmfont.Shaper
	measurer bmfont.Measurer
	registry *bmfont.Registry
}

// NewGenerator creates a generator drawing with the given shaper and
// installing results into registry (bmfont.DefaultRegistry when nil).
func NewGenerator(shaper bmfont.Shaper, registry *bmfont.Registry) *Generator {
	if registry == nil {
		registry = bmfont.DefaultRegistry
	}
	return &Generator{
		shaper:   shaper,
		measurer: shaper,
		registry: registry,
	}
}

// SetMeasurer overrides the measurement backend used for glyph extents
// and kerning analysis, e.g. a bmfont.HarfBuzzMeasurer for GPOS-accurate
// kerning or a bmfont.MemoMeasurer for large character sets. Drawing
// still goes through the generator's shaper.
func (g *Generator) SetMeasurer(m bmfont.Measurer) {
	if m == nil {
		m = g.shaper
	}
	g.measurer = m
}

// Generate rasterizes the requested character set in the given style into
// shelf-packed texture pages, derives kerning pairs, and installs the
// resulting font under faceName, replacing (and destroying) any prior
// font under that name.
//
// Either a complete font is produced and installed, or nothing is
// installed and an error is returned; every surface produced before a
// failure is destroyed.
func (g *Generator) Generate(faceName string, style *bmfont.Style, opts BuildOptions) (*bmfont.RuntimeFont, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	chars := opts.ResolveCharset()
	log := bmfont.Logger()

	var (
		pages    []bmfont.Page
		surfaces []bmfont.Surface
		glyphs   []bmfont.GlyphInfo
		current  *bmfont.ImageSurface
		cursor   *ShelfCursor
	)
	res := opts.Resolution
	lineHeight := 0.0

	fail := func(err error) (*bmfont.RuntimeFont, error) {
		for _, s := range surfaces {
			s.Destroy(true)
		}
		return nil, err
	}

	for _, ch := range chars {
		for {
			if current == nil {
				current = bmfont.NewImageSurface(int(opts.PageWidth), int(opts.PageHeight))
				surfaces = append(surfaces, current)
				pages = append(pages, bmfont.Page{ID: len(pages)})
				cursor = NewShelfCursor(opts.PageWidth, opts.PageHeight, opts.Padding, res)
				log.Debug("atlas page opened",
					slog.String("face", faceName),
					slog.Int("page", len(pages)-1))
			}

			ext, err := g.measurer.Measure(string(ch), style)
			if err != nil {
				return fail(err)
			}
			cellWidth := math.Ceil(ext.Width)
			if style.Italic {
				// Italic glyphs lean into the next cell; doubling the
				// reserved width is a loose bound, not a tight one.
				cellWidth = math.Ceil(ext.Width * 2)
			}

			x, y, result := cursor.Place(cellWidth, ext.Height, ext.Descent)
			switch result {
			case PageOverflow:
				if cursor.AtPageTop() {
					return fail(&bmfont.PageTooSmallError{
						PageWidth:  opts.PageWidth,
						PageHeight: opts.PageHeight,
						FontSize:   style.Size,
					})
				}
				// Seal the current page; the next attempt opens a
				// fresh one with a reset cursor.
				current = nil
				continue
			case RowOverflow:
				// Cursor moved to a fresh row; retry the same
				// character there.
				continue
			}

			if err := g.shaper.Draw(current, string(ch), style, x, y, res); err != nil {
				return fail(err)
			}
			glyphs = append(glyphs, bmfont.GlyphInfo{
				ID:       int(ch),
				PageID:   pages[len(pages)-1].ID,
				X:        x / res,
				Y:        y / res,
				Width:    cellWidth,
				Height:   ext.Height,
				XAdvance: math.Ceil(ext.Width - style.ShadowDistance - style.StrokeWidth),
			})
			if lh := ext.Ascent + ext.Descent; lh > lineHeight {
				lineHeight = lh
			}
			log.Debug("glyph placed",
				slog.String("face", faceName),
				slog.Int("char", int(ch)),
				slog.Int("page", len(pages)-1),
				slog.Float64("x", x),
				slog.Float64("y", y))
			break
		}
	}

	// Kerning only needs the measuring capability; no page has to stay
	// open for it.
	kernings, err := BuildKerning(chars, g.measurer, style)
	if err != nil {
		return fail(err)
	}

	desc := &bmfont.FontDescriptor{
		FaceName:   faceName,
		FaceSize:   style.Size,
		LineHeight: lineHeight,
		Pages:      pages,
		Glyphs:     glyphs,
		Kernings:   kernings,
	}
	font, err := g.registry.Install(desc, bmfont.SurfaceList(surfaces))
	if err != nil {
		return fail(err)
	}
	log.Info("atlas generated",
		slog.String("face", faceName),
		slog.Int("glyphs", len(glyphs)),
		slog.Int("pages", len(pages)),
		slog.Int("kerningPairs", len(kernings)))
	return font, nil
}

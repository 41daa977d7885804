package bmfont

import "log/slog"

// PageSurfaces resolves descriptor pages to backing surfaces during Build.
// Two implementations are provided: SurfaceList matches pages positionally,
// SurfaceMap matches them by SourceRef.
type PageSurfaces interface {
	// Resolve returns the surface for the page at the given descriptor
	// index, or false when the page cannot be resolved.
	Resolve(index int, page Page) (Surface, bool)
}

// SurfaceList resolves pages positionally: the page at descriptor index
// i resolves to list[i].
type SurfaceList []Surface

// Resolve implements PageSurfaces.
func (l SurfaceList) Resolve(index int, _ Page) (Surface, bool) {
	if index < 0 || index >= len(l) {
		return nil, false
	}
	return l[index], true
}

// SurfaceMap resolves pages by their SourceRef.
type SurfaceMap map[string]Surface

// Resolve implements PageSurfaces.
func (m SurfaceMap) Resolve(_ int, page Page) (Surface, bool) {
	s, ok := m[page.SourceRef]
	return s, ok
}

// Glyph is the resolution-normalized runtime record for one character.
type Glyph struct {
	// XOffset, YOffset displace the glyph image from the layout cursor.
	XOffset, YOffset float64

	// XAdvance is the cursor advance after this glyph.
	XAdvance float64

	// PageID identifies the page surface holding the glyph image.
	PageID int

	// Region is the glyph's rectangle in page-surface coordinates:
	// the descriptor rect translated by the page surface's own origin,
	// then divided by the resolution factor.
	Region Rect

	// Kerning maps a preceding character to the advance delta to apply
	// before this glyph. Keys are stored in normalized units: the
	// descriptor's First codes divided by the resolution factor, the
	// same normalization every other descriptor value receives.
	Kerning map[float64]float64

	frame *Frame
}

// Frame returns the glyph's region handle. Nil after the owning font has
// been destroyed.
func (g *Glyph) Frame() *Frame {
	return g.frame
}

// RuntimeFont is the queryable, resolution-normalized index over a
// FontDescriptor and its page surfaces. It is the object used at
// text-layout time.
//
// A RuntimeFont owns its page surfaces and per-glyph frames once built;
// Destroy releases all of them and nils the internal maps, so any use
// after destroy fails by construction instead of silently reading stale
// resources.
type RuntimeFont struct {
	// FaceName is the name the font is installed under.
	FaceName string

	// FaceSize is the normalized nominal size.
	FaceSize float64

	// LineHeight is the normalized distance between baselines.
	LineHeight float64

	glyphs map[rune]*Glyph
	pages  map[int]Surface
}

// Build constructs a RuntimeFont from a descriptor and its page surfaces.
//
// Every descriptor page must resolve to exactly one surface; otherwise the
// whole build fails with a *MissingPageError naming the page id. There is
// no partial success.
//
// All native-resolution values are divided by the descriptor's inferred
// resolution factor. Glyph regions combine the page surface origin BEFORE
// dividing, so the accumulated rounding error stays bounded to a single
// division per field.
func Build(desc *FontDescriptor, surfaces PageSurfaces) (*RuntimeFont, error) {
	res := desc.Resolution()

	f := &RuntimeFont{
		FaceName:   desc.FaceName,
		FaceSize:   desc.FaceSize / res,
		LineHeight: desc.LineHeight / res,
		glyphs:     make(map[rune]*Glyph, len(desc.Glyphs)),
		pages:      make(map[int]Surface, len(desc.Pages)),
	}

	for i, page := range desc.Pages {
		s, ok := surfaces.Resolve(i, page)
		if !ok || s == nil {
			return nil, &MissingPageError{PageID: page.ID}
		}
		f.pages[page.ID] = s
	}

	for _, gi := range desc.Glyphs {
		page, ok := f.pages[gi.PageID]
		if !ok {
			return nil, &MissingPageError{PageID: gi.PageID}
		}
		ox, oy := page.Origin()
		region := Rect{
			X:      (gi.X + ox) / res,
			Y:      (gi.Y + oy) / res,
			Width:  gi.Width / res,
			Height: gi.Height / res,
		}
		f.glyphs[rune(gi.ID)] = &Glyph{
			XOffset:  gi.XOffset / res,
			YOffset:  gi.YOffset / res,
			XAdvance: gi.XAdvance / res,
			PageID:   gi.PageID,
			Region:   region,
			Kerning:  make(map[float64]float64),
			frame:    &Frame{Rect: region, page: page},
		}
	}

	dropped := 0
	for _, pair := range desc.Kernings {
		second := pair.Second / res
		// A pair attaches only when a glyph id equals the normalized
		// second exactly; fractional values resolve to no glyph.
		code := rune(second)
		g, ok := f.glyphs[code]
		if !ok || float64(code) != second {
			dropped++
			continue
		}
		g.Kerning[pair.First/res] = pair.Amount / res
	}
	if dropped > 0 {
		Logger().Warn("kerning pairs dropped: no matching glyph",
			slog.String("face", desc.FaceName),
			slog.Int("dropped", dropped))
	}

	return f, nil
}

// Glyph returns the record for a character code, or false when the font
// has no glyph for it (or has been destroyed).
func (f *RuntimeFont) Glyph(code rune) (*Glyph, bool) {
	g, ok := f.glyphs[code]
	return g, ok
}

// Page returns the surface for a page id.
func (f *RuntimeFont) Page(id int) (Surface, bool) {
	s, ok := f.pages[id]
	return s, ok
}

// GlyphCount returns the number of indexed glyphs.
func (f *RuntimeFont) GlyphCount() int {
	return len(f.glyphs)
}

// PageCount returns the number of page surfaces.
func (f *RuntimeFont) PageCount() int {
	return len(f.pages)
}

// Kern returns the advance delta to apply between prev and next, looked
// up on the SECOND character of the pair, matching how layout code asks
// "what adjustment given the previous character".
func (f *RuntimeFont) Kern(prev, next rune) float64 {
	g, ok := f.glyphs[next]
	if !ok {
		return 0
	}
	return g.Kerning[float64(prev)]
}

// Destroyed reports whether Destroy has been called.
func (f *RuntimeFont) Destroyed() bool {
	return f.glyphs == nil && f.pages == nil
}

// Destroy releases every per-glyph frame, then every page surface (with
// backing), then invalidates the font's indices. Destroying twice is a
// no-op.
func (f *RuntimeFont) Destroy() {
	if f.Destroyed() {
		return
	}
	for _, g := range f.glyphs {
		g.frame.Release()
		g.frame = nil
		g.Kerning = nil
	}
	for _, s := range f.pages {
		s.Destroy(true)
	}
	f.glyphs = nil
	f.pages = nil
}

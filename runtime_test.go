package bmfont

import (
	"errors"
	"testing"
)

// stubSurface counts destroy calls for resource-accounting tests.
type stubSurface struct {
	originX, originY float64
	destroys         int
	lastRelease      bool
}

func (s *stubSurface) Origin() (float64, float64) { return s.originX, s.originY }
func (s *stubSurface) Size() (float64, float64)   { return 512, 512 }
func (s *stubSurface) Destroy(releaseBacking bool) {
	s.destroys++
	s.lastRelease = releaseBacking
}

func oneGlyphDescriptor() *FontDescriptor {
	return &FontDescriptor{
		FaceName:   "Test",
		FaceSize:   32,
		LineHeight: 36,
		Pages:      []Page{{ID: 0, SourceRef: "test@2x.png"}},
		Glyphs: []GlyphInfo{{
			ID: 65, PageID: 0,
			X: 10, Y: 10, Width: 20, Height: 20,
			XOffset: 2, YOffset: 4, XAdvance: 22,
		}},
	}
}

func TestBuild_NormalizesByResolution(t *testing.T) {
	f, err := Build(oneGlyphDescriptor(), SurfaceList{&stubSurface{}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if f.FaceSize != 16 {
		t.Errorf("FaceSize = %g, want 16", f.FaceSize)
	}
	if f.LineHeight != 18 {
		t.Errorf("LineHeight = %g, want 18", f.LineHeight)
	}

	g, ok := f.Glyph('A')
	if !ok {
		t.Fatal("glyph 'A' not indexed")
	}
	want := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	if g.Region != want {
		t.Errorf("Region = %+v, want %+v", g.Region, want)
	}
	if g.XOffset != 1 || g.YOffset != 2 || g.XAdvance != 11 {
		t.Errorf("offsets/advance = (%g,%g,%g), want (1,2,11)", g.XOffset, g.YOffset, g.XAdvance)
	}
}

func TestBuild_RegionIncludesPageOrigin(t *testing.T) {
	// Pages may be sub-regions of a larger shared surface; the glyph
	// rect is translated by the page origin BEFORE dividing.
	f, err := Build(oneGlyphDescriptor(), SurfaceList{&stubSurface{originX: 100, originY: 200}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	g, _ := f.Glyph('A')
	want := Rect{X: 55, Y: 105, Width: 10, Height: 10}
	if g.Region != want {
		t.Errorf("Region = %+v, want %+v", g.Region, want)
	}
}

func TestBuild_KerningAttachedToSecond(t *testing.T) {
	desc := &FontDescriptor{
		FaceName: "Test",
		Pages:    []Page{{ID: 0}},
		Glyphs: []GlyphInfo{
			{ID: 65, PageID: 0},
			{ID: 66, PageID: 0},
		},
		Kernings: []KerningPair{{First: 65, Second: 66, Amount: 2}},
	}
	f, err := Build(desc, SurfaceList{&stubSurface{}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	b, _ := f.Glyph('B')
	if got := b.Kerning[65]; got != 2 {
		t.Errorf("glyphs['B'].Kerning[65] = %g, want 2", got)
	}
	a, _ := f.Glyph('A')
	if len(a.Kerning) != 0 {
		t.Errorf("kerning must not appear under the first character, got %v", a.Kerning)
	}
	if got := f.Kern('A', 'B'); got != 2 {
		t.Errorf("Kern('A','B') = %g, want 2", got)
	}
	if got := f.Kern('B', 'A'); got != 0 {
		t.Errorf("Kern('B','A') = %g, want 0", got)
	}
}

func TestBuild_KerningKeysNormalized(t *testing.T) {
	// Character codes are divided by the resolution factor like every
	// other descriptor value. At resolution 2, a pair targeting glyph
	// 'A' must carry second == 130.
	desc := &FontDescriptor{
		FaceName: "Test",
		Pages:    []Page{{ID: 0, SourceRef: "t@2x.png"}},
		Glyphs:   []GlyphInfo{{ID: 65, PageID: 0}},
		Kernings: []KerningPair{
			{First: 130, Second: 130, Amount: 4},
			// Normalizes to a fractional code: no glyph matches.
			{First: 65, Second: 65, Amount: 4},
		},
	}
	f, err := Build(desc, SurfaceList{&stubSurface{}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	a, _ := f.Glyph('A')
	if got := a.Kerning[65]; got != 2 {
		t.Errorf("Kerning[65] = %g, want 2", got)
	}
	if len(a.Kerning) != 1 {
		t.Errorf("fractional pair should be dropped, kerning map: %v", a.Kerning)
	}
}

func TestBuild_MissingPage(t *testing.T) {
	desc := oneGlyphDescriptor()

	_, err := Build(desc, SurfaceList{})
	var missing *MissingPageError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingPageError, got %v", err)
	}
	if missing.PageID != 0 {
		t.Errorf("PageID = %d, want 0", missing.PageID)
	}
}

func TestBuild_MissingPageByRef(t *testing.T) {
	desc := oneGlyphDescriptor()

	_, err := Build(desc, SurfaceMap{"other.png": &stubSurface{}})
	var missing *MissingPageError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingPageError, got %v", err)
	}

	if _, err := Build(desc, SurfaceMap{"test@2x.png": &stubSurface{}}); err != nil {
		t.Errorf("SurfaceMap keyed by SourceRef should resolve, got %v", err)
	}
}

func TestBuild_GlyphWithUnknownPage(t *testing.T) {
	desc := &FontDescriptor{
		FaceName: "Test",
		Pages:    []Page{{ID: 0}},
		Glyphs:   []GlyphInfo{{ID: 65, PageID: 7}},
	}
	_, err := Build(desc, SurfaceList{&stubSurface{}})
	var missing *MissingPageError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingPageError, got %v", err)
	}
	if missing.PageID != 7 {
		t.Errorf("PageID = %d, want 7", missing.PageID)
	}
}

func TestRuntimeFont_Destroy(t *testing.T) {
	page := &stubSurface{}
	f, err := Build(oneGlyphDescriptor(), SurfaceList{page})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	g, _ := f.Glyph('A')
	frame := g.Frame()
	if frame == nil || frame.Page() == nil {
		t.Fatal("glyph frame not initialized")
	}

	f.Destroy()

	if !f.Destroyed() {
		t.Error("Destroyed() = false after Destroy")
	}
	if page.destroys != 1 {
		t.Errorf("page destroyed %d times, want 1", page.destroys)
	}
	if !page.lastRelease {
		t.Error("page backing must be released on font destroy")
	}
	if frame.Page() != nil {
		t.Error("frame must be released on font destroy")
	}
	if _, ok := f.Glyph('A'); ok {
		t.Error("glyph index must be cleared after destroy")
	}
	if _, ok := f.Page(0); ok {
		t.Error("page index must be cleared after destroy")
	}

	// Double destroy is a no-op.
	f.Destroy()
	if page.destroys != 1 {
		t.Errorf("double destroy reached the surface: %d calls", page.destroys)
	}
}

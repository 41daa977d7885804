package bmfont

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// OpenTypeShaper is the default text shaping service, backed by
// golang.org/x/image/font/opentype. It measures with kerning-aware
// font.MeasureString and rasterizes with font.Drawer into ImageSurface
// pages, applying the style's shadow, stroke and fill passes in that
// order.
//
// Font data can be registered directly per family with RegisterFont;
// unregistered families are resolved against the system font directories
// via github.com/flopp/go-findfont.
//
// OpenTypeShaper is safe for concurrent use.
type OpenTypeShaper struct {
	mu sync.RWMutex

	// fonts caches parsed fonts by variant key ("family|bold|italic").
	fonts map[string]*opentype.Font
}

// NewOpenTypeShaper creates an empty shaper resolving fonts from the
// system font directories on demand.
func NewOpenTypeShaper() *OpenTypeShaper {
	return &OpenTypeShaper{fonts: make(map[string]*opentype.Font)}
}

// RegisterFont parses font data (TTF or OTF) and registers it for the
// given family name, taking precedence over system font lookup. The same
// data serves all variants of the family unless variants are registered
// separately via styled family names ("Foo Bold").
func (s *OpenTypeShaper) RegisterFont(family string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("bmfont: parsing font data for %q: %w", family, err)
	}
	s.mu.Lock()
	s.fonts[family] = f
	s.mu.Unlock()
	return nil
}

// Measure implements Measurer. Width and Height include the extra extent
// added by the style's stroke and shadow, matching what Draw renders.
func (s *OpenTypeShaper) Measure(text string, style *Style) (Extents, error) {
	face, err := s.faceFor(style, 1)
	if err != nil {
		return Extents{}, err
	}
	defer closeFace(face)

	m := face.Metrics()
	ascent := fixedToFloat(m.Ascent)
	descent := fixedToFloat(m.Descent)
	pad := style.decorationPad()
	return Extents{
		Width:   fixedToFloat(font.MeasureString(face, text)) + pad,
		Height:  ascent + descent + pad,
		Ascent:  ascent,
		Descent: descent,
	}, nil
}

// strokeOffsets are the eight unit directions of the outline pass.
var strokeOffsets = [8][2]float64{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Draw implements Shaper. Only ImageSurface destinations are supported.
func (s *OpenTypeShaper) Draw(dst Surface, text string, style *Style, x, y, resolution float64) error {
	img, ok := dst.(*ImageSurface)
	if !ok {
		return ErrUnsupportedSurface
	}
	pix := img.Image()
	if pix == nil {
		return ErrDestroyed
	}

	face, err := s.faceFor(style, resolution)
	if err != nil {
		return err
	}
	defer closeFace(face)

	ox, oy := img.Origin()
	stroke := style.StrokeWidth * resolution
	shadow := style.ShadowDistance * resolution
	// Pen origin: (x, y) is the glyph cell's top-left; the baseline sits
	// one ascent below, past the stroke margin.
	penX := ox + x + stroke
	penY := oy + y + stroke + fixedToFloat(face.Metrics().Ascent)

	drawer := &font.Drawer{Dst: pix, Face: face}
	if shadow > 0 {
		drawer.Src = image.NewUniform(colorOrDefault(style.ShadowColor, color.Black))
		drawer.Dot = fixed.Point26_6{X: floatToFixed(penX + shadow), Y: floatToFixed(penY + shadow)}
		drawer.DrawString(text)
	}
	if stroke > 0 {
		drawer.Src = image.NewUniform(colorOrDefault(style.StrokeColor, color.Black))
		for _, off := range strokeOffsets {
			drawer.Dot = fixed.Point26_6{
				X: floatToFixed(penX + off[0]*stroke),
				Y: floatToFixed(penY + off[1]*stroke),
			}
			drawer.DrawString(text)
		}
	}
	drawer.Src = image.NewUniform(colorOrDefault(style.Fill, color.White))
	drawer.Dot = fixed.Point26_6{X: floatToFixed(penX), Y: floatToFixed(penY)}
	drawer.DrawString(text)
	return nil
}

// faceFor creates a face for the style at the given device scale.
// The face is NOT safe for concurrent use and must be closed by the
// caller.
func (s *OpenTypeShaper) faceFor(style *Style, scale float64) (font.Face, error) {
	f, err := s.fontFor(style)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    style.Size * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// fontFor resolves and caches the parsed font for a style's family and
// variant.
func (s *OpenTypeShaper) fontFor(style *Style) (*opentype.Font, error) {
	key := variantKey(style)

	s.mu.RLock()
	if f, ok := s.fonts[key]; ok {
		s.mu.RUnlock()
		return f, nil
	}
	// Fall back to the plain family registration for styled variants.
	if f, ok := s.fonts[style.Family]; ok {
		s.mu.RUnlock()
		return f, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.fonts[key]; ok {
		return f, nil
	}

	f, err := loadSystemFont(style)
	if err != nil {
		return nil, err
	}
	s.fonts[key] = f
	return f, nil
}

// loadSystemFont locates the style's family in the system font
// directories, preferring the closest variant name.
func loadSystemFont(style *Style) (*opentype.Font, error) {
	var lastErr error
	for _, candidate := range variantCandidates(style) {
		path, err := findfont.Find(candidate)
		if err != nil {
			lastErr = err
			continue
		}
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from the system font index
		if err != nil {
			lastErr = err
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			lastErr = err
			continue
		}
		return f, nil
	}
	return nil, fmt.Errorf("bmfont: font family %q not found: %w", style.Family, lastErr)
}

// variantCandidates lists family names to try against the system index,
// most specific first.
func variantCandidates(style *Style) []string {
	var names []string
	switch {
	case style.Bold && style.Italic:
		names = append(names, style.Family+" Bold Italic")
	case style.Bold:
		names = append(names, style.Family+" Bold")
	case style.Italic:
		names = append(names, style.Family+" Italic")
	}
	return append(names, style.Family)
}

func variantKey(style *Style) string {
	key := style.Family
	if style.Bold {
		key += "|bold"
	}
	if style.Italic {
		key += "|italic"
	}
	return key
}

func colorOrDefault(c color.Color, def color.Color) color.Color {
	if c == nil {
		return def
	}
	return c
}

func closeFace(face font.Face) {
	_ = face.Close()
}

// fixedToFloat converts 26.6 fixed point to float64 pixels.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// floatToFixed converts float64 pixels to 26.6 fixed point.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

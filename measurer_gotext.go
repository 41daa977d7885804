package bmfont

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// HarfBuzzMeasurer measures text extents through go-text/typesetting's
// HarfBuzz shaper. Unlike OpenTypeShaper's measurement, it applies the
// full OpenType GPOS machinery, so empirical kerning derived from it
// reflects pair positioning beyond the legacy kern table.
//
// HarfBuzzMeasurer is measurement-only; pair it with a Shaper for
// rasterization, e.g.:
//
//	shaper := bmfont.NewOpenTypeShaper()
//	gen := atlas.NewGenerator(shaper, registry)
//	gen.SetMeasurer(bmfont.NewHarfBuzzMeasurer())
//
// HarfBuzzMeasurer is safe for concurrent use. Parsed font.Font objects
// are cached (they are read-only and thread-safe); HarfbuzzShaper
// instances carry mutable state and are pooled.
type HarfBuzzMeasurer struct {
	// shaperPool pools HarfbuzzShaper instances, which are not safe for
	// concurrent use.
	shaperPool sync.Pool

	mu sync.RWMutex

	// fonts caches parsed fonts by variant key.
	fonts map[string]*font.Font
}

// NewHarfBuzzMeasurer creates a measurer resolving fonts from the system
// font directories on demand.
func NewHarfBuzzMeasurer() *HarfBuzzMeasurer {
	return &HarfBuzzMeasurer{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		fonts: make(map[string]*font.Font),
	}
}

// RegisterFont parses font data (TTF or OTF) and registers it for the
// given family name, taking precedence over system font lookup.
func (m *HarfBuzzMeasurer) RegisterFont(family string, data []byte) error {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("bmfont: parsing font data for %q: %w", family, err)
	}
	m.mu.Lock()
	m.fonts[family] = face.Font
	m.mu.Unlock()
	return nil
}

// Measure implements Measurer. Width and Height include the style's
// stroke and shadow extent, consistent with OpenTypeShaper.
func (m *HarfBuzzMeasurer) Measure(text string, style *Style) (Extents, error) {
	f, err := m.fontFor(style)
	if err != nil {
		return Extents{}, err
	}

	// font.Face is not safe for concurrent use; NewFace is cheap and
	// wraps the shared thread-safe Font.
	face := font.NewFace(f)
	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      floatToFixed(style.Size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := m.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	m.shaperPool.Put(hb)

	ascent := fixedToFloat(out.LineBounds.Ascent)
	// go-text reports descent as a negative offset below the baseline.
	descent := fixedToFloat(out.LineBounds.Descent)
	if descent < 0 {
		descent = -descent
	}
	pad := style.decorationPad()
	return Extents{
		Width:   fixedToFloat(out.Advance) + pad,
		Height:  ascent + descent + pad,
		Ascent:  ascent,
		Descent: descent,
	}, nil
}

// fontFor resolves and caches the parsed font for a style.
func (m *HarfBuzzMeasurer) fontFor(style *Style) (*font.Font, error) {
	key := variantKey(style)

	m.mu.RLock()
	if f, ok := m.fonts[key]; ok {
		m.mu.RUnlock()
		return f, nil
	}
	if f, ok := m.fonts[style.Family]; ok {
		m.mu.RUnlock()
		return f, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.fonts[key]; ok {
		return f, nil
	}

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
		face, err := font.ParseTTF(bytes.NewReader(data))
		if err != nil {
			lastErr = err
			continue
		}
		m.fonts[key] = face.Font
		return face.Font, nil
	}
	return nil, fmt.Errorf("bmfont: font family %q not found: %w", style.Family, lastErr)
}

// detectScript inspects the runes and returns the script of the first
// non-space character. Single-glyph measurement rarely needs more; mixed
// script text should be measured per run.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

package bmfont

import (
	"fmt"

	"github.com/gogpu/bmfont/cache"
)

// MemoMeasurer memoizes the results of an underlying Measurer. Kerning
// analysis performs n² pair measurements plus repeated singleton
// measurements over the same character set; wrapping the measurer makes
// that pass cheap without changing any emitted result, since measurement
// is pure given the style.
type MemoMeasurer struct {
	inner Measurer
	cache *cache.Cache[string, memoResult]
}

type memoResult struct {
	extents Extents
	err     error
}

// NewMemoMeasurer wraps a measurer with an LRU memo of the given capacity
// (0 for the default).
func NewMemoMeasurer(inner Measurer, capacity int) *MemoMeasurer {
	return &MemoMeasurer{
		inner: inner,
		cache: cache.New[string, memoResult](capacity),
	}
}

// Measure implements Measurer.
func (m *MemoMeasurer) Measure(text string, style *Style) (Extents, error) {
	key := measureKey(text, style)
	r := m.cache.GetOrCreate(key, func() memoResult {
		ext, err := m.inner.Measure(text, style)
		return memoResult{extents: ext, err: err}
	})
	return r.extents, r.err
}

// Stats exposes the memo's cache statistics.
func (m *MemoMeasurer) Stats() cache.Stats {
	return m.cache.Stats()
}

// measureKey folds every measurement-affecting style attribute into the
// cache key.
func measureKey(text string, style *Style) string {
	return fmt.Sprintf("%s\x00%s\x00%g|%g|%g", text, variantKey(style), style.Size, style.StrokeWidth, style.ShadowDistance)
}

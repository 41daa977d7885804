package atlas

import (
	"log/slog"

	"github.com/gogpu/bmfont"
)

// BuildKerning derives kerning pairs empirically: for every ordered pair
// (a, b) over the character sequence, including a == b, the pair's kerning
// amount is
//
//	measure(a+b) - (measure(a) + measure(b))
//
// and only nonzero amounts are emitted. The cost is n² pair measurements;
// singleton widths are memoized up front, which cannot change the emitted
// results since measurement is pure given the style. Callers with large
// character sets should still expect superlinear time and may additionally
// wrap the measurer in a bmfont.MemoMeasurer.
func BuildKerning(chars []rune, m bmfont.Measurer, style *bmfont.Style) ([]bmfont.KerningPair, error) {
	widths := make(map[rune]float64, len(chars))
	for _, c := range chars {
		if _, ok := widths[c]; ok {
			continue
		}
		ext, err := m.Measure(string(c), style)
		if err != nil {
			return nil, err
		}
		widths[c] = ext.Width
	}

	var pairs []bmfont.KerningPair
	buf := make([]rune, 2)
	for _, a := range chars {
		buf[0] = a
		for _, b := range chars {
			buf[1] = b
			ext, err := m.Measure(string(buf), style)
			if err != nil {
				return nil, err
			}
			amount := ext.Width - (widths[a] + widths[b])
			if amount != 0 {
				pairs = append(pairs, bmfont.KerningPair{
					First:  float64(a),
					Second: float64(b),
					Amount: amount,
				})
			}
		}
	}

	bmfont.Logger().Debug("kerning analysis complete",
		slog.Int("characters", len(chars)),
		slog.Int("pairs", len(pairs)))
	return pairs, nil
}

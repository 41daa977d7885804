package atlas

import "github.com/emirpasic/gods/sets/linkedhashset"

// Charset presets recognized by atlas generation. Alpha is letters plus
// space, AlphaNumeric adds digits, and ASCIIRange spans the full printable
// ASCII range.
const (
	CharsetAlpha        = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ "
	CharsetNumeric      = "0123456789"
	CharsetAlphaNumeric = CharsetAlpha + CharsetNumeric
)

// CharRange is an inclusive range of character codes, expanded in order
// during charset resolution.
type CharRange struct {
	Lo, Hi rune
}

// ASCIIRange covers the printable ASCII characters (space through tilde).
var ASCIIRange = CharRange{Lo: 0x20, Hi: 0x7E}

// BuildOptions is the entire externally configurable surface of atlas
// generation.
type BuildOptions struct {
	// Charset lists literal characters to include, in order.
	Charset string

	// Ranges lists inclusive character ranges, expanded after Charset.
	Ranges []CharRange

	// Resolution is the device pixel density of the produced pages.
	// Default: 1
	Resolution float64

	// Padding is the horizontal space reserved between glyph cells, in
	// logical units. Default: 4
	Padding float64

	// PageWidth and PageHeight are the pixel size of each texture page.
	// Default: 512x512
	PageWidth, PageHeight float64
}

// DefaultBuildOptions returns the default generation options with the
// full printable ASCII character set.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		Ranges:     []CharRange{ASCIIRange},
		Resolution: 1,
		Padding:    4,
		PageWidth:  512,
		PageHeight: 512,
	}
}

// OptionError reports an invalid BuildOptions field.
type OptionError struct {
	Field  string
	Reason string
}

func (e *OptionError) Error() string {
	return "atlas: invalid build options." + e.Field + ": " + e.Reason
}

// Validate checks that the options describe a usable configuration.
func (o *BuildOptions) Validate() error {
	if o.Resolution <= 0 {
		return &OptionError{Field: "Resolution", Reason: "must be positive"}
	}
	if o.Padding < 0 {
		return &OptionError{Field: "Padding", Reason: "must be non-negative"}
	}
	if o.PageWidth <= 0 {
		return &OptionError{Field: "PageWidth", Reason: "must be positive"}
	}
	if o.PageHeight <= 0 {
		return &OptionError{Field: "PageHeight", Reason: "must be positive"}
	}
	if len(o.Charset) == 0 && len(o.Ranges) == 0 {
		return &OptionError{Field: "Charset", Reason: "no characters requested"}
	}
	for _, r := range o.Ranges {
		if r.Hi < r.Lo {
			return &OptionError{Field: "Ranges", Reason: "range upper bound below lower bound"}
		}
	}
	return nil
}

// ResolveCharset expands the options into the ordered sequence of distinct
// characters to pack: Charset literals first, then each range expanded
// inclusively, duplicates removed while preserving first-seen order.
//
// Resolution happens before packing; packing order equals resolved order,
// which makes the produced layout reproducible for a fixed input set and
// style.
func (o *BuildOptions) ResolveCharset() []rune {
	set := linkedhashset.New()
	for _, c := range o.Charset {
		set.Add(c)
	}
	for _, r := range o.Ranges {
		for c := r.Lo; c <= r.Hi; c++ {
			set.Add(c)
		}
	}
	chars := make([]rune, 0, set.Size())
	for _, v := range set.Values() {
		chars = append(chars, v.(rune))
	}
	return chars
}

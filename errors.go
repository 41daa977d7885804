package bmfont

import (
	"errors"
	"fmt"
)

// Sentinel errors for the bmfont package.
var (
	// ErrUnrecognizedFormat is returned when no registered Format claims
	// the input data.
	ErrUnrecognizedFormat = errors.New("bmfont: unrecognized font data format")

	// ErrDestroyed is returned when a destroyed font or surface is used.
	ErrDestroyed = errors.New("bmfont: target has been destroyed")

	// ErrUnsupportedSurface is returned by a Shaper asked to draw onto a
	// surface type it does not know how to rasterize into.
	ErrUnsupportedSurface = errors.New("bmfont: surface does not support direct rasterization")
)

// MissingPageError is returned when a descriptor references a page id that
// cannot be resolved to a surface. The whole build fails; there is no
// partial-success mode.
type MissingPageError struct {
	PageID int
}

func (e *MissingPageError) Error() string {
	return fmt.Sprintf("bmfont: no surface resolves page %d", e.PageID)
}

// PageTooSmallError is returned by atlas generation when not even a single
// glyph of the requested style fits on an empty page, in either dimension.
// This is a configuration error and is never retried.
type PageTooSmallError struct {
	PageWidth  float64
	PageHeight float64
	FontSize   float64
}

func (e *PageTooSmallError) Error() string {
	return fmt.Sprintf("bmfont: page size %gx%g cannot fit a glyph at font size %g", e.PageWidth, e.PageHeight, e.FontSize)
}

// NotFoundError is returned by Registry.Uninstall for an unknown face name.
// The registry is left unchanged.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bmfont: font %q is not installed", e.Name)
}

package atlas

import "math"

// PlaceResult is the outcome of one placement attempt on a ShelfCursor.
type PlaceResult int

const (
	// Placed means the cell was placed and the cursor advanced past it.
	Placed PlaceResult = iota

	// RowOverflow means the cell did not fit on the current row; the
	// cursor moved to the start of a fresh row below and the same cell
	// must be retried.
	RowOverflow

	// PageOverflow means the cell does not fit on this page: either
	// nothing fits below the current row, or the cell overflows an
	// empty row. The caller retries on a fresh page, unless the cursor
	// was still at the page top: then no page of this size can ever
	// fit the cell and generation must fail.
	PageOverflow
)

// String returns the result name for diagnostics.
func (r PlaceResult) String() string {
	switch r {
	case Placed:
		return "placed"
	case RowOverflow:
		return "row-overflow"
	case PageOverflow:
		return "page-overflow"
	default:
		return "unknown"
	}
}

// ShelfCursor tracks the packing position within one texture page during
// shelf packing. Cell widths, heights and padding are in logical units;
// the cursor position is in device pixels, scaled by the resolution.
//
// The cursor is deliberately independent of rasterization so the
// row/page overflow control flow is testable in isolation.
type ShelfCursor struct {
	pageWidth  float64
	pageHeight float64
	padding    float64
	resolution float64

	posX         float64
	posY         float64
	rowMaxHeight float64
}

// NewShelfCursor creates a cursor for a page of the given device-pixel
// size.
func NewShelfCursor(pageWidth, pageHeight, padding, resolution float64) *ShelfCursor {
	return &ShelfCursor{
		pageWidth:  pageWidth,
		pageHeight: pageHeight,
		padding:    padding,
		resolution: resolution,
	}
}

// Place attempts to place one glyph cell of the given measured extent.
//
// On Placed, (x, y) is the cell's device-pixel position and the cursor has
// advanced past it. On RowOverflow the cursor has moved to a fresh row and
// the caller retries the same cell. On PageOverflow the cursor is left
// unchanged; the caller either fails (AtPageTop) or retries the cell on a
// new page.
//
// Overflow retries are normal control flow, not error recovery: they never
// surface beyond the packing loop.
func (c *ShelfCursor) Place(cellWidth, height, descent float64) (x, y float64, result PlaceResult) {
	if c.posY >= c.pageHeight-height*c.resolution {
		return 0, 0, PageOverflow
	}
	// A cell that overflows an empty row can never be placed on a page of
	// this width; reporting RowOverflow here would advance the cursor
	// forever. At the page top this surfaces as a fatal overflow.
	if c.posX == 0 && cellWidth*c.resolution >= c.pageWidth {
		return 0, 0, PageOverflow
	}
	if rowHeight := height + descent; rowHeight > c.rowMaxHeight {
		c.rowMaxHeight = rowHeight
	}
	if cellWidth*c.resolution+c.posX >= c.pageWidth {
		c.posY += math.Ceil(c.rowMaxHeight * c.resolution)
		c.posX = 0
		c.rowMaxHeight = 0
		return 0, 0, RowOverflow
	}
	x, y = c.posX, c.posY
	c.posX += math.Ceil((cellWidth + 2*c.padding) * c.resolution)
	return x, y, Placed
}

// AtPageTop reports whether nothing has been placed below the first row,
// i.e. the page is effectively empty in the vertical direction. A
// PageOverflow at the page top is fatal: an empty page already cannot fit
// the cell, so retrying would loop forever.
func (c *ShelfCursor) AtPageTop() bool {
	return c.posY == 0
}

// Reset returns the cursor to the top-left of a fresh page.
func (c *ShelfCursor) Reset() {
	c.posX = 0
	c.posY = 0
	c.rowMaxHeight = 0
}

// Position returns the current cursor position in device pixels.
func (c *ShelfCursor) Position() (x, y float64) {
	return c.posX, c.posY
}

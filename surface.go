package bmfont

import "image"

// Rect is an axis-aligned rectangle in surface coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Surface is an opaque raster destination holding one atlas page (or a
// sub-region of a larger shared page). The core only manipulates surface
// coordinates; rasterization into a surface is the Shaper's concern.
type Surface interface {
	// Origin returns the surface's own origin within its backing store.
	// Non-zero for surfaces that are sub-regions of a larger surface;
	// glyph regions are translated by it during RuntimeFont construction.
	Origin() (x, y float64)

	// Size returns the surface extent in pixels.
	Size() (w, h float64)

	// Destroy releases the surface. When releaseBacking is true the
	// backing pixel store is released too; sub-region surfaces pass
	// false to leave the shared backing alive.
	Destroy(releaseBacking bool)
}

// Frame is a per-glyph region handle within a page surface. Frames are
// created during RuntimeFont construction and owned by the RuntimeFont;
// they are released individually when the font is destroyed, since region
// handles may carry their own resources in GPU-backed Surface
// implementations.
type Frame struct {
	// Rect is the glyph's normalized rectangle within the page.
	Rect Rect

	page     Surface
	released bool
}

// Page returns the surface the frame addresses, or nil after Release.
func (f *Frame) Page() Surface {
	if f.released {
		return nil
	}
	return f.page
}

// Release drops the frame's reference to its page. Releasing twice is a
// no-op. The page surface itself is destroyed separately by its owner.
func (f *Frame) Release() {
	if f.released {
		return
	}
	f.released = true
	f.page = nil
}

// ImageSurface is a CPU raster page backed by an RGBA image. It is the
// surface type produced by the atlas generator and the only surface type
// the built-in OpenTypeShaper can draw into.
type ImageSurface struct {
	pix              *image.RGBA
	originX, originY float64
	width, height    float64
	destroyed        bool
}

// NewImageSurface allocates a blank page of the given pixel size.
func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{
		pix:    image.NewRGBA(image.Rect(0, 0, width, height)),
		width:  float64(width),
		height: float64(height),
	}
}

// SurfaceFromImage wraps an existing image as a page surface. The image is
// referenced, not copied; callers hand ownership to the RuntimeFont when
// installing.
func SurfaceFromImage(img *image.RGBA) *ImageSurface {
	b := img.Bounds()
	return &ImageSurface{
		pix:    img,
		width:  float64(b.Dx()),
		height: float64(b.Dy()),
	}
}

// SubSurface returns a view of a rectangular region sharing this surface's
// backing pixels. The view's origin is offset accordingly, so glyph
// regions built over it translate into backing-store coordinates.
func (s *ImageSurface) SubSurface(x, y, width, height float64) *ImageSurface {
	return &ImageSurface{
		pix:     s.pix,
		originX: s.originX + x,
		originY: s.originY + y,
		width:   width,
		height:  height,
	}
}

// Origin implements Surface.
func (s *ImageSurface) Origin() (x, y float64) {
	return s.originX, s.originY
}

// Size implements Surface.
func (s *ImageSurface) Size() (w, h float64) {
	return s.width, s.height
}

// Image exposes the backing pixels for upload or encoding.
// Returns nil after the backing store has been released.
func (s *ImageSurface) Image() *image.RGBA {
	return s.pix
}

// Destroy implements Surface. Destroying twice is a no-op.
func (s *ImageSurface) Destroy(releaseBacking bool) {
	if s.destroyed {
		return
	}
	s.destroyed = true
	if releaseBacking {
		s.pix = nil
	}
}

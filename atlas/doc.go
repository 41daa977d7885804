// Package atlas generates bitmap font atlases from vector fonts.
//
// A Generator rasterizes each character of a requested set into one or
// more fixed-size texture pages using shelf (row) packing: glyph cells are
// laid out left to right along the current row, rows stack downward, and
// full pages are sealed and replaced by fresh ones. The pass is online and
// deterministic; a given character set and style always produce the same
// layout.
//
// After packing, kerning pairs are derived empirically by measuring every
// ordered character pair and keeping the nonzero advance deltas. The
// result is assembled into a bmfont.FontDescriptor, indexed into a
// bmfont.RuntimeFont over the produced surfaces, and installed into the
// target registry.
package atlas

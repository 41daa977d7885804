// Package bmfont maintains typefaces as collections of pre-rasterized
// glyph images ("bitmap fonts") for renderers that draw text from texture
// atlases instead of shaping it live.
//
// # Overview
//
// The package covers two paths to a usable font:
//
//   - Ingestion: an externally produced glyph-atlas description (AngelCode
//     BMFont text or XML, or any registered Format) is parsed into a
//     FontDescriptor and indexed into a RuntimeFont for per-character
//     lookup at layout time.
//   - Generation: the atlas subpackage rasterizes a requested character
//     set from a vector font into fixed-size pages using shelf packing,
//     measures kerning pairs empirically, and installs the result.
//
// # Resolution normalization
//
// RuntimeFont values are resolution-normalized: descriptors carry
// native-resolution coordinates tagged with a density factor (inferred
// from the first page's source reference, e.g. "font@2x.png"), and the
// runtime index divides everything by that factor once, so layout code
// works in device-independent units.
//
// # Lifecycle
//
// Fonts live in a Registry keyed by face name. The registry performs no
// internal locking; callers that mutate it from multiple goroutines must
// serialize Install/Uninstall/Generate themselves. A RuntimeFont owns its
// page surfaces and per-glyph region handles once installed; Destroy
// releases all of them and invalidates the font's indices.
package bmfont

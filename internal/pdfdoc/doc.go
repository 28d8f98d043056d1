// Package pdfdoc rewrites PDF pages in place with pdfcpu.
//
// A page is rebuilt in one of three ways:
//
//   - vector: the original content becomes a form XObject drawn through a
//     scaling matrix
//   - merge: the original content streams are wrapped in a transform and the
//     overlay is appended after them
//   - raster: the page is rendered to a bitmap and painted as an image
//
// The overlay (border outline, page number, title) is always plain vector
// drawing using the standard 14 Type1 fonts, so no font files are embedded.
package pdfdoc

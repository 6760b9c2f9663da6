// Package geom holds the integer geometry used by the visibility tracker:
// rectangles in document cells, four-sided edges, and CSS-style root margins.
//
// Types are re-exported through the root visibility package for public
// consumption.
package geom

// Package geom holds the small amount of 2D math shared by the backdrop pipeline.
//
// Coordinates are logical pixels: origin top-left, X right, Y down. Device pixels only
// appear at the raster surface, which multiplies by the viewport's device pixel ratio.
package geom

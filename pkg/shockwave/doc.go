// Package shockwave detects edge-like discontinuities ("shockwave" boundaries) in a photograph
// and renders them as a monochrome visualization.
//
// A run is a fixed sequence of stages, each producing a fresh raster:
//
//	decode -> luma + contrast gain -> Smoothed | Sharpened -> CLAHE (8x8, clip 2.0)
//	-> |Laplacian| -> Gaussian adaptive threshold (11, bias 2) -> 3x3 dilation
//	-> external contours -> 2 px overlay on the original -> luma -> global equalization
//
// Border policy: Gaussian blurs, the unsharp mask, CLAHE tile extension and the Laplacian
// reflect around the edge pixel (reflect-101); the adaptive-threshold local mean replicates the
// edge pixel; dilation ignores out-of-image neighbors; contour tracing assumes a zero frame.
//
// Runs are deterministic, single-threaded and keep no state between calls. The only failure
// is *DecodeError, returned before any stage runs.
package shockwave

// Package image provides the pixel-side geometry for aperture photometry:
// calibrated rasters, sky-to-pixel projection, source cutouts, and circular
// aperture/annulus pixel selection.
//
// An [Image] is a row-major float64 raster carrying the calibration the
// photometry needs (pixel scale, gain, zero point). Pixels are centered on
// integer coordinates, so pixel (x, y) covers the half-open square
// [x-0.5, x+0.5) x [y-0.5, y+0.5).
//
// A [Cutout] is a rectangular window copied out of an image around a
// projected source position. It is owned by a single measurement: selection
// methods gather pixel values by distance from the source center without
// touching the parent image again.
//
//   - [Cutout.CirclePixels]: values with distance <= r
//   - [Cutout.AnnulusPixels]: values with rIn < distance <= rOut
//   - [Cutout.ContainsDisc]: whether a disc stays inside the parent image
//
// [SmoothGaussian] convolves an image with a separable normalized Gaussian,
// renormalizing kernel tails at the borders so flat fields stay flat. Large
// kernels switch to FFT row/column convolution automatically.
//
// Synthetic frames for tests and demos are composed with [NewFlat],
// [Image.AddNoise], [Image.AddStar], and [Image.AddDelta].
package image

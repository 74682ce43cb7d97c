// Package config reads and writes the plain-text parameter files that
// drive the photometry pipelines.
//
// A parameter file is a sequence of "key values" lines. Values are
// comma-separated; a key that appears on several lines accumulates all of
// its values in order. Lines starting with "#" are comments:
//
//	##  aperture photometry parameters
//
//	unit       arcsec
//	R          2.0, 3.0, 4.0
//	R_i        6.0
//	R_o        9.0
//	sigma      3.0
//	epsilon    0.01
//
// Values are kept as raw tokens and typed on access ([File.Float],
// [File.Floats], [File.Int], [File.Bool], [File.String]), so keys a
// program does not recognize survive a read/write round trip unchanged.
package config

package image

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownUnit is returned by ParseUnit for unrecognized unit names.
var ErrUnknownUnit = errors.New("image: unknown radius unit")

// ErrPixelScale is returned when an angular unit is used on an image
// without a positive pixel scale.
var ErrPixelScale = errors.New("image: angular unit requires a positive pixel scale")

// Unit is the unit aperture and annulus radii are given in.
type Unit int

const (
	// Pixel radii are used as-is.
	Pixel Unit = iota
	// Arcsec radii are divided by the image pixel scale.
	Arcsec
	// Arcmin radii are 60 arcseconds each.
	Arcmin
	// Degree radii are 3600 arcseconds each.
	Degree
)

// ParseUnit maps a parameter-file unit token to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pixel", "pixels", "pix":
		return Pixel, nil
	case "arcsec", "arcsecond", "arcseconds":
		return Arcsec, nil
	case "arcmin", "arcminute", "arcminutes":
		return Arcmin, nil
	case "degree", "degrees", "deg":
		return Degree, nil
	}

	return Pixel, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// String returns the canonical parameter-file token of the unit.
func (u Unit) String() string {
	switch u {
	case Arcsec:
		return "arcsec"
	case Arcmin:
		return "arcmin"
	case Degree:
		return "degree"
	default:
		return "pixel"
	}
}

// ToPixels converts a radius in this unit to pixels on an image with the
// given pixel scale (arcseconds per pixel).
func (u Unit) ToPixels(value, pixelScale float64) (float64, error) {
	if u == Pixel {
		return value, nil
	}

	if pixelScale <= 0 {
		return 0, ErrPixelScale
	}

	switch u {
	case Arcmin:
		value *= 60
	case Degree:
		value *= 3600
	}

	return value / pixelScale, nil
}

// Projector converts sky coordinates in degrees to pixel coordinates.
// Real images obtain a projector from their WCS solution; the in-repo
// [LinearProjector] serves synthetic frames and tests.
type Projector interface {
	Project(alpha, delta float64) (x, y float64)
}

// LinearProjector is a flat tangent-plane projection about a reference
// position. Right ascension increases to the left (east-left orientation)
// and is compressed by cos(delta), declination increases upward.
type LinearProjector struct {
	RefAlpha float64 // degrees at the reference pixel
	RefDelta float64
	RefX     float64 // reference pixel position
	RefY     float64
	Scale    float64 // arcseconds per pixel
}

// Project converts (alpha, delta) in degrees to pixel coordinates.
func (p LinearProjector) Project(alpha, delta float64) (float64, float64) {
	cosDelta := math.Cos(delta * math.Pi / 180)

	x := p.RefX - (alpha-p.RefAlpha)*cosDelta*3600/p.Scale
	y := p.RefY + (delta-p.RefDelta)*3600/p.Scale

	return x, y
}

// PixelProjector treats catalog coordinates as pixel positions directly,
// for catalogs that come in detector coordinates.
type PixelProjector struct{}

// Project returns (alpha, delta) unchanged.
func (PixelProjector) Project(alpha, delta float64) (float64, float64) {
	return alpha, delta
}

package image

import (
	"errors"
	"fmt"
)

// Errors returned by image construction and geometry.
var (
	ErrEmptyImage  = errors.New("image: width and height must be positive")
	ErrPixelCount  = errors.New("image: pixel count must equal width*height")
	ErrOutOfBounds = errors.New("image: window outside image bounds")
)

// Image is a single-band raster with the calibration constants the
// photometry consumes. Pix is row-major: pixel (x, y) lives at y*Width+x.
type Image struct {
	Name   string
	Width  int
	Height int
	Pix    []float64

	// PixelScale is the angular size of one pixel in arcseconds. It is
	// only consulted when aperture radii are given in angular units.
	PixelScale float64

	// Gain converts counts to photo-electrons; non-positive disables the
	// Poisson noise term downstream.
	Gain float64

	// ZeroPoint and its uncertainty calibrate magnitudes.
	ZeroPoint    float64
	ZeroPointErr float64
}

// New returns a zero-filled image of the given dimensions.
func New(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, width, height)
	}

	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}, nil
}

// Validate checks dimensions against the backing pixel slice.
func (im *Image) Validate() error {
	if im.Width <= 0 || im.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyImage, im.Width, im.Height)
	}

	if len(im.Pix) != im.Width*im.Height {
		return fmt.Errorf("%w: %d pixels for %dx%d",
			ErrPixelCount, len(im.Pix), im.Width, im.Height)
	}

	return nil
}

// In reports whether (x, y) indexes a pixel of the image.
func (im *Image) In(x, y int) bool {
	return x >= 0 && x < im.Width && y >= 0 && y < im.Height
}

// At returns the pixel value at (x, y). The caller must stay in bounds.
func (im *Image) At(x, y int) float64 {
	return im.Pix[y*im.Width+x]
}

// Set writes the pixel value at (x, y). The caller must stay in bounds.
func (im *Image) Set(x, y int, v float64) {
	im.Pix[y*im.Width+x] = v
}

// Row returns the backing slice of row y, shared with the image.
func (im *Image) Row(y int) []float64 {
	return im.Pix[y*im.Width : (y+1)*im.Width]
}

// Clone returns a deep copy sharing no pixel storage with the original.
func (im *Image) Clone() *Image {
	out := *im
	out.Pix = append([]float64(nil), im.Pix...)

	return &out
}

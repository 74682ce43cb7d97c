package image

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-astro/phot/core"
)

// fwhmToSigma converts a full width at half maximum to a Gaussian sigma.
const fwhmToSigma = 2.3548200450309493 // 2*sqrt(2*ln 2)

// NewFlat returns an image filled with a constant background level.
func NewFlat(width, height int, level float64) (*Image, error) {
	im, err := New(width, height)
	if err != nil {
		return nil, err
	}

	core.Fill(im.Pix, level)

	return im, nil
}

// AddNoise adds Gaussian noise with the given standard deviation, seeded
// for reproducibility.
func (im *Image) AddNoise(seed int64, sigma float64) {
	rng := rand.New(rand.NewSource(seed))

	for i := range im.Pix {
		im.Pix[i] += sigma * rng.NormFloat64()
	}
}

// AddStar adds a circular Gaussian source with the given total flux and
// full width at half maximum (both in pixel units) centered at (cx, cy).
// The profile is evaluated out to five sigma.
func (im *Image) AddStar(cx, cy, flux, fwhm float64) {
	sigma := fwhm / fwhmToSigma
	if sigma <= 0 || flux == 0 {
		return
	}

	amp := flux / (2 * math.Pi * sigma * sigma)
	inv2s2 := 1 / (2 * sigma * sigma)
	reach := 5 * sigma

	xLo := int(math.Floor(cx - reach))
	xHi := int(math.Ceil(cx + reach))
	yLo := int(math.Floor(cy - reach))
	yHi := int(math.Ceil(cy + reach))

	for y := yLo; y <= yHi; y++ {
		for x := xLo; x <= xHi; x++ {
			if !im.In(x, y) {
				continue
			}

			dx := float64(x) - cx
			dy := float64(y) - cy
			im.Pix[y*im.Width+x] += amp * math.Exp(-(dx*dx+dy*dy)*inv2s2)
		}
	}
}

// AddDelta adds flux to the single pixel (x, y). Out-of-bounds positions
// are ignored.
func (im *Image) AddDelta(x, y int, flux float64) {
	if !im.In(x, y) {
		return
	}

	im.Pix[y*im.Width+x] += flux
}

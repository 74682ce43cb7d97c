package image

import (
	"fmt"
	"math"
)

// Cutout is a rectangular pixel window copied out of an image around a
// projected source position. It is owned by one measurement call; selection
// methods read only the copy.
type Cutout struct {
	X0, Y0        int     // window origin in image coordinates
	Width, Height int     // window dimensions
	CX, CY        float64 // source position in image coordinates
	Pix           []float64
	Clipped       bool // window was cut down by the image border

	imgW, imgH int
}

// Extract copies the window of half-size pixels around center (cx, cy) out
// of the image. The window is clamped to the image bounds; a center whose
// window misses the image entirely returns ErrOutOfBounds.
func Extract(im *Image, cx, cy, halfSize float64) (*Cutout, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}

	if halfSize <= 0 || math.IsNaN(cx) || math.IsNaN(cy) {
		return nil, fmt.Errorf("%w: center (%g, %g) half-size %g",
			ErrOutOfBounds, cx, cy, halfSize)
	}

	x0 := int(math.Floor(cx - halfSize))
	x1 := int(math.Ceil(cx + halfSize))
	y0 := int(math.Floor(cy - halfSize))
	y1 := int(math.Ceil(cy + halfSize))

	clipped := false

	if x0 < 0 {
		x0 = 0
		clipped = true
	}

	if y0 < 0 {
		y0 = 0
		clipped = true
	}

	if x1 > im.Width-1 {
		x1 = im.Width - 1
		clipped = true
	}

	if y1 > im.Height-1 {
		y1 = im.Height - 1
		clipped = true
	}

	if x0 > x1 || y0 > y1 {
		return nil, fmt.Errorf("%w: center (%g, %g) in %dx%d image",
			ErrOutOfBounds, cx, cy, im.Width, im.Height)
	}

	w := x1 - x0 + 1
	h := y1 - y0 + 1

	cut := &Cutout{
		X0:      x0,
		Y0:      y0,
		Width:   w,
		Height:  h,
		CX:      cx,
		CY:      cy,
		Pix:     make([]float64, w*h),
		Clipped: clipped,
		imgW:    im.Width,
		imgH:    im.Height,
	}

	for y := 0; y < h; y++ {
		src := im.Pix[(y0+y)*im.Width+x0 : (y0+y)*im.Width+x0+w]
		copy(cut.Pix[y*w:(y+1)*w], src)
	}

	return cut, nil
}

// ContainsDisc reports whether the disc of radius r around the cutout
// center lies fully inside the parent image. Pixels are unit squares
// centered on integer coordinates, so the image covers
// [-0.5, W-0.5] x [-0.5, H-0.5].
func (c *Cutout) ContainsDisc(r float64) bool {
	return c.CX-r >= -0.5 &&
		c.CY-r >= -0.5 &&
		c.CX+r <= float64(c.imgW)-0.5 &&
		c.CY+r <= float64(c.imgH)-0.5
}

// CirclePixels appends the values of pixels whose centers lie within
// radius r of the cutout center and returns the extended slice. Pass a
// reusable buffer trimmed to zero length to avoid allocations.
func (c *Cutout) CirclePixels(dst []float64, r float64) []float64 {
	if r <= 0 {
		return dst
	}

	r2 := r * r

	return c.selectPixels(dst, r, func(d2 float64) bool {
		return d2 <= r2
	})
}

// AnnulusPixels appends the values of pixels whose center distance d from
// the cutout center satisfies rIn < d <= rOut, and returns the extended
// slice.
func (c *Cutout) AnnulusPixels(dst []float64, rIn, rOut float64) []float64 {
	if rOut <= 0 || rOut <= rIn {
		return dst
	}

	in2 := rIn * rIn
	out2 := rOut * rOut

	return c.selectPixels(dst, rOut, func(d2 float64) bool {
		return d2 > in2 && d2 <= out2
	})
}

// selectPixels walks the bounding box of radius reach around the center and
// appends values whose squared center distance passes keep.
func (c *Cutout) selectPixels(dst []float64, reach float64, keep func(d2 float64) bool) []float64 {
	xLo := int(math.Ceil(c.CX - reach))
	xHi := int(math.Floor(c.CX + reach))
	yLo := int(math.Ceil(c.CY - reach))
	yHi := int(math.Floor(c.CY + reach))

	if xLo < c.X0 {
		xLo = c.X0
	}

	if yLo < c.Y0 {
		yLo = c.Y0
	}

	if xHi > c.X0+c.Width-1 {
		xHi = c.X0 + c.Width - 1
	}

	if yHi > c.Y0+c.Height-1 {
		yHi = c.Y0 + c.Height - 1
	}

	for y := yLo; y <= yHi; y++ {
		dy := float64(y) - c.CY
		row := (y - c.Y0) * c.Width

		for x := xLo; x <= xHi; x++ {
			dx := float64(x) - c.CX
			if keep(dx*dx + dy*dy) {
				dst = append(dst, c.Pix[row+x-c.X0])
			}
		}
	}

	return dst
}

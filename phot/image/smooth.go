package image

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-astro/phot/core"
)

// ErrSmoothSigma is returned for non-positive or non-finite smoothing widths.
var ErrSmoothSigma = errors.New("image: smoothing sigma must be positive and finite")

// Kernels up to this many taps convolve directly; larger ones go through
// the FFT path. The crossover mirrors the one-dimensional convolution
// benchmarks this code was derived from.
const directKernelMax = 64

// SmoothGaussian returns a new image convolved with a separable normalized
// Gaussian of width sigma (pixels). Kernel tails are renormalized where
// they hang over the image border, so a flat field stays flat and no flux
// leaks out of the frame edges.
func SmoothGaussian(im *Image, sigma float64) (*Image, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}

	if sigma <= 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("%w: %g", ErrSmoothSigma, sigma)
	}

	kernel := gaussianKernel(sigma)
	out := im.Clone()

	// Row pass.
	rows, err := newLineSmoother(kernel, im.Width)
	if err != nil {
		return nil, err
	}

	scratch := make([]float64, im.Width)
	for y := 0; y < im.Height; y++ {
		row := out.Row(y)
		copy(scratch, row)
		rows.smooth(row, scratch)
	}

	// Column pass.
	cols, err := newLineSmoother(kernel, im.Height)
	if err != nil {
		return nil, err
	}

	col := make([]float64, im.Height)
	colOut := make([]float64, im.Height)

	for x := 0; x < im.Width; x++ {
		for y := 0; y < im.Height; y++ {
			col[y] = out.Pix[y*im.Width+x]
		}

		cols.smooth(colOut, col)

		for y := 0; y < im.Height; y++ {
			out.Pix[y*im.Width+x] = colOut[y]
		}
	}

	return out, nil
}

// gaussianKernel returns a unit-sum Gaussian kernel with an odd number of
// taps covering +-4 sigma.
func gaussianKernel(sigma float64) []float64 {
	radius := int(math.Ceil(4 * sigma))
	if radius < 1 {
		radius = 1
	}

	kernel := make([]float64, 2*radius+1)
	inv2s2 := 1 / (2 * sigma * sigma)

	sum := 0.0
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d * inv2s2)
		sum += kernel[i]
	}

	vecmath.ScaleBlockInPlace(kernel, 1/sum)

	return kernel
}

// lineSmoother convolves fixed-length lines with a fixed kernel in
// same-length mode, renormalizing the kernel where it overhangs the ends.
type lineSmoother struct {
	kernel []float64
	radius int
	n      int
	invW   []float64 // reciprocal in-bounds kernel weight per output position

	// direct path scratch
	scaled []float64
	full   []float64

	// FFT path
	plan *algofft.Plan[complex128]
	kfft []complex128
	in   []complex128
	out  []complex128
}

func newLineSmoother(kernel []float64, n int) (*lineSmoother, error) {
	taps := len(kernel)
	ls := &lineSmoother{
		kernel: kernel,
		radius: taps / 2,
		n:      n,
		invW:   edgeWeights(kernel, n),
	}

	if taps <= directKernelMax {
		ls.scaled = make([]float64, taps)
		ls.full = make([]float64, n+taps-1)

		return ls, nil
	}

	fftLen := nextPowerOf2(n + taps - 1)

	plan, err := algofft.NewPlan64(fftLen)
	if err != nil {
		return nil, fmt.Errorf("image: smoothing FFT plan: %w", err)
	}

	kpad := make([]complex128, fftLen)
	for i, v := range kernel {
		kpad[i] = complex(v, 0)
	}

	ls.plan = plan
	ls.kfft = make([]complex128, fftLen)
	ls.in = make([]complex128, fftLen)
	ls.out = make([]complex128, fftLen)

	if err := plan.Forward(ls.kfft, kpad); err != nil {
		return nil, fmt.Errorf("image: smoothing kernel FFT: %w", err)
	}

	return ls, nil
}

// smooth convolves src into dst. Both must have the smoother's line length
// and must not alias.
func (ls *lineSmoother) smooth(dst, src []float64) {
	if ls.plan == nil {
		ls.smoothDirect(dst, src)
	} else {
		ls.smoothFFT(dst, src)
	}

	vecmath.MulBlockInPlace(dst, ls.invW)
}

func (ls *lineSmoother) smoothDirect(dst, src []float64) {
	taps := len(ls.kernel)

	core.Zero(ls.full)

	for i, v := range src {
		vecmath.ScaleBlock(ls.scaled, ls.kernel, v)
		vecmath.AddBlockInPlace(ls.full[i:i+taps], ls.scaled)
	}

	copy(dst, ls.full[ls.radius:ls.radius+ls.n])
}

func (ls *lineSmoother) smoothFFT(dst, src []float64) {
	for i := range ls.in {
		ls.in[i] = 0
	}

	for i, v := range src {
		ls.in[i] = complex(v, 0)
	}

	// Plan errors only trigger on size mismatches, which construction
	// rules out.
	_ = ls.plan.Forward(ls.in, ls.in)

	for i := range ls.out {
		ls.out[i] = ls.in[i] * ls.kfft[i]
	}

	_ = ls.plan.Inverse(ls.out, ls.out)

	for i := 0; i < ls.n; i++ {
		dst[i] = real(ls.out[ls.radius+i])
	}
}

// edgeWeights returns the reciprocal of the in-bounds kernel mass for every
// output position of a same-length convolution. Interior positions see the
// whole unit-sum kernel; positions near the line ends see less and are
// scaled back up.
func edgeWeights(kernel []float64, n int) []float64 {
	taps := len(kernel)
	radius := taps / 2
	inv := make([]float64, n)

	for j := 0; j < n; j++ {
		lo := j + radius - (n - 1)
		if lo < 0 {
			lo = 0
		}

		hi := j + radius + 1
		if hi > taps {
			hi = taps
		}

		w := 0.0
		for k := lo; k < hi; k++ {
			w += kernel[k]
		}

		inv[j] = 1 / w
	}

	return inv
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

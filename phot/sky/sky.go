package sky

import (
	"errors"
	"math"
)

const (
	defaultSigma   = 3.0
	defaultEpsilon = 0.01
	defaultMaxIter = 64
)

// Errors returned by Estimate.
var (
	ErrNoPixels   = errors.New("sky: no usable pixels")
	ErrAllClipped = errors.New("sky: clipping rejected every pixel")
)

// Config holds sigma-clipping parameters.
type Config struct {
	// Sigma is the rejection threshold in standard deviations.
	Sigma float64

	// Epsilon is the convergence tolerance on the fractional change of the
	// mean between iterations.
	Epsilon float64

	// MaxIter bounds the number of clipping rounds.
	MaxIter int
}

// DefaultConfig returns the clipping parameters used when fields are unset.
func DefaultConfig() Config {
	return Config{
		Sigma:   defaultSigma,
		Epsilon: defaultEpsilon,
		MaxIter: defaultMaxIter,
	}
}

func normalizeConfig(cfg Config) Config {
	if cfg.Sigma <= 0 {
		cfg.Sigma = defaultSigma
	}

	if cfg.Epsilon <= 0 {
		cfg.Epsilon = defaultEpsilon
	}

	if cfg.MaxIter <= 0 {
		cfg.MaxIter = defaultMaxIter
	}

	return cfg
}

// Background holds the statistics of the surviving pixel set.
type Background struct {
	Level      float64 // clipped mean
	Scatter    float64 // clipped population standard deviation
	Used       int     // pixels surviving the final iteration
	Rejected   int     // pixels removed across all iterations
	Iterations int     // clipping rounds performed
	Converged  bool    // stopped by the Epsilon criterion or by zero rejections
}

// Estimate iteratively sigma-clips pixels and returns the statistics of the
// surviving set. The input slice is not modified.
//
// An empty input returns ErrNoPixels; a clipping round that rejects every
// remaining pixel returns ErrAllClipped. Neither case yields silent NaNs.
func Estimate(pixels []float64, cfg Config) (Background, error) {
	if len(pixels) == 0 {
		return Background{}, ErrNoPixels
	}

	cfg = normalizeConfig(cfg)

	cur := append([]float64(nil), pixels...)
	mean, std := moments(cur)

	bg := Background{
		Level:   mean,
		Scatter: std,
		Used:    len(cur),
	}

	for iter := 0; iter < cfg.MaxIter; iter++ {
		bg.Iterations = iter + 1

		kept := clip(cur, mean, cfg.Sigma*std)
		if len(kept) == 0 {
			return bg, ErrAllClipped
		}

		if len(kept) == len(cur) {
			bg.Converged = true
			break
		}

		bg.Rejected += len(cur) - len(kept)
		cur = kept

		prev := mean
		mean, std = moments(cur)
		bg.Level = mean
		bg.Scatter = std
		bg.Used = len(cur)

		if fractionalChange(prev, mean) < cfg.Epsilon {
			bg.Converged = true
			break
		}
	}

	return bg, nil
}

// clip returns the pixels within threshold of mean, filtering in place.
func clip(pixels []float64, mean, threshold float64) []float64 {
	kept := pixels[:0]

	for _, x := range pixels {
		if math.Abs(x-mean) <= threshold {
			kept = append(kept, x)
		}
	}

	return kept
}

// fractionalChange measures |next-prev| relative to |prev|, falling back to
// the absolute difference when the previous mean is zero.
func fractionalChange(prev, next float64) float64 {
	diff := math.Abs(next - prev)
	if prev == 0 {
		return diff
	}

	return diff / math.Abs(prev)
}

// moments returns the mean and population standard deviation in a single
// pass using Welford's update for numerical stability.
func moments(pixels []float64) (mean, std float64) {
	n := len(pixels)
	if n == 0 {
		return 0, 0
	}

	var m2 float64

	for i, x := range pixels {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni

		m2 += delta * deltaN * float64(i)
		mean += deltaN
	}

	return mean, math.Sqrt(m2 / float64(n))
}

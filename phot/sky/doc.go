// Package sky estimates the local sky background from annulus pixels by
// iterative sigma-clipping.
//
// Each iteration computes the mean and population standard deviation of the
// surviving pixel set, then rejects every pixel farther than Sigma standard
// deviations from the mean:
//
//	|x - mean| > Sigma * std
//
// Iteration stops when no pixel is rejected, when the fractional change of
// the mean drops below Epsilon, or after MaxIter rounds. The final mean is
// the sky level and the final standard deviation the sky scatter.
//
// The estimate depends only on the pixel multiset, not on pixel order, and
// is fully deterministic. Re-clipping an already converged set changes the
// level by less than Epsilon.
//
// # Usage
//
//	bg, err := sky.Estimate(annulusPixels, sky.Config{Sigma: 3, Epsilon: 0.01})
//	if err != nil {
//	    // empty annulus or everything clipped
//	}
//	fmt.Println(bg.Level, bg.Scatter)
package sky

package linefit

import "math"

// linspace returns n evenly spaced values over [lo, hi], inclusive.
func linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// interpolate evaluates the piecewise-linear function through (xs, ys)
// at each point of grid. Points beyond the sampled range clamp to the
// end values; the grid search bounds its offsets so that in practice the
// shifted model grid stays inside the observed range.
func interpolate(xs, ys, grid []float64) []float64 {
	out := make([]float64, len(grid))
	for i, x := range grid {
		out[i] = interpAt(xs, ys, x)
	}
	return out
}

func interpAt(xs, ys []float64, x float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}
	// xs is an instrument velocity axis, monotonically increasing.
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if xs[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}
	frac := (x - xs[lo]) / (xs[hi] - xs[lo])
	return ys[lo] + frac*(ys[hi]-ys[lo])
}

// trapz integrates y over x with the trapezoidal rule.
func trapz(x, y []float64) float64 {
	var sum float64
	for i := 1; i < len(x) && i < len(y); i++ {
		sum += 0.5 * (y[i] + y[i-1]) * (x[i] - x[i-1])
	}
	return sum
}

// chiSquared sums squared residuals between data and model, normalized
// by the noise level. Data samples below -noise are excluded: the
// asymmetric clip suppresses spurious negative outliers without touching
// positive ones.
func chiSquared(data, model []float64, noise float64) float64 {
	var sum float64
	for i := range data {
		if i >= len(model) {
			break
		}
		if data[i] < -noise {
			continue
		}
		d := data[i] - model[i]
		sum += d * d
	}
	return sum / (noise * noise)
}

// loglikelihood is the Gaussian log-likelihood of the data given the
// model at the fixed noise level, over the same clipped sample set as
// chiSquared.
func loglikelihood(data, model []float64, noise float64) float64 {
	var sum float64
	var n int
	for i := range data {
		if i >= len(model) {
			break
		}
		if data[i] < -noise {
			continue
		}
		d := (data[i] - model[i]) / noise
		sum += d * d
		n++
	}
	return -0.5*sum - float64(n)*math.Log(noise*math.Sqrt(2*math.Pi))
}

// midMean returns the mean of the 5 samples centred on the profile
// midpoint index.
func midMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mid := len(values) / 2
	lo := mid - 2
	hi := mid + 3
	if lo < 0 {
		lo = 0
	}
	if hi > len(values) {
		hi = len(values)
	}
	var sum float64
	for _, v := range values[lo:hi] {
		sum += v
	}
	return sum / float64(hi-lo)
}

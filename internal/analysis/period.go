// Package analysis extracts rhythm features from recorded force series.
package analysis

// Autocorrelation returns the normalized autocorrelation of the series for
// lags 0..len-1. The zero lag is always 1; a flat series returns all zeros
// past lag 0.
func Autocorrelation(series []float64) []float64 {
	n := len(series)
	if n == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range series {
		d := v - mean
		variance += d * d
	}

	ac := make([]float64, n)
	if variance == 0 {
		ac[0] = 1
		return ac
	}

	for lag := 0; lag < n; lag++ {
		sum := 0.0
		for i := 0; i < n-lag; i++ {
			sum += (series[i] - mean) * (series[i+lag] - mean)
		}
		ac[lag] = sum / variance
	}

	return ac
}

// DominantPeriod estimates the strongest rhythm in the series, in seconds,
// from the first autocorrelation peak past the initial decay. Returns 0
// when no rhythm stands out.
func DominantPeriod(series []float64, dt float64) float64 {
	if dt <= 0 || len(series) < 4 {
		return 0
	}

	ac := Autocorrelation(series)

	// Skip the initial decay: wait for the autocorrelation to drop below
	// zero before looking for a peak.
	start := 0
	for start < len(ac) && ac[start] > 0 {
		start++
	}
	if start == len(ac) {
		return 0
	}

	bestLag := 0
	bestVal := 0.0
	for lag := start; lag < len(ac)-1; lag++ {
		if ac[lag] > ac[lag-1] && ac[lag] >= ac[lag+1] && ac[lag] > bestVal {
			bestLag = lag
			bestVal = ac[lag]
		}
	}

	if bestLag == 0 || bestVal < 0.1 {
		return 0
	}

	return float64(bestLag) * dt
}

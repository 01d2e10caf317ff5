package analytics

import "math"

// DefaultRollingWindow is the moving-average window used by the trend
// endpoints unless configured otherwise.
const DefaultRollingWindow = 3

// MovingAverage computes a trailing moving average over values. The first
// window-1 entries are nil: the average is undefined until a full window
// exists.
func MovingAverage(values []float64, window int) []*float64 {
	if window < 1 {
		window = 1
	}

	out := make([]*float64, len(values))
	for i := range values {
		if i < window-1 {
			continue
		}
		var sum float64
		for _, v := range values[i-(window-1) : i+1] {
			sum += v
		}
		avg := sum / float64(window)
		out[i] = &avg
	}
	return out
}

// MovingAverageOnTimeline computes the moving average over only the games a
// player appeared in (non-nil entries), then re-expands the result onto the
// full game timeline. Missed games stay nil so a chart line breaks instead
// of dipping to zero and ruining the average visually.
func MovingAverageOnTimeline(timeline []*float64, window int) []*float64 {
	var played []float64
	for _, v := range timeline {
		if v != nil {
			played = append(played, *v)
		}
	}

	averaged := MovingAverage(played, window)

	out := make([]*float64, len(timeline))
	idx := 0
	for i, v := range timeline {
		if v == nil {
			continue
		}
		out[i] = averaged[idx]
		idx++
	}
	return out
}

// CoefficientOfVariation is stdev/mean of a per-game metric, the engine's
// consistency measure (lower is steadier). It is undefined (ok=false)
// with fewer than two samples or a zero mean.
func CoefficientOfVariation(values []float64) (cv float64, ok bool) {
	if len(values) < 2 {
		return 0, false
	}

	mean := Mean(values)
	if mean == 0 {
		return 0, false
	}

	return StdDev(values) / mean, true
}

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	var variance float64
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

package ta

import "math"

// SMA returns the trailing mean of the last n values, NaN when there are fewer than n.
func SMA(closes []float64, n int) float64 {
	if len(closes) < n || n <= 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := len(closes) - n; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(n)
}

// MovingAverageSeries returns a series aligned 1:1 with closes. Entry i is nil until
// w closes exist at or before i, and otherwise the mean of the trailing w closes.
func MovingAverageSeries(closes []float64, w int) []*float64 {
	out := make([]*float64, len(closes))
	if w <= 0 {
		return out
	}
	for i := w - 1; i < len(closes); i++ {
		v := SMA(closes[:i+1], w)
		out[i] = &v
	}
	return out
}

// Range returns the highest and lowest of the last n values (all of them when
// n exceeds the length). ok is false for an empty input.
func Range(vals []float64, n int) (high, low float64, ok bool) {
	if len(vals) == 0 {
		return 0, 0, false
	}
	start := len(vals) - n
	if n <= 0 || start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, v := range vals[start:] {
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}
	return high, low, true
}

package sentiment

// Aggregate returns the arithmetic mean of scores. No headlines means no
// opinion, so an empty input is neutral (0.0) rather than an error.
func Aggregate(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

package screen

// ZScore standardizes the latest price against the window's mean and
// standard deviation. The second return is false when the standard
// deviation is zero: a constant series cannot be standardized.
func ZScore(latest, mean, stddev float64) (float64, bool) {
	if stddev == 0 {
		return 0, false
	}
	return (latest - mean) / stddev, true
}

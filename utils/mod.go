package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// ArgMax returns the index of the first item with the highest score, or -1
// for an empty slice.
func ArgMax[T any](slice []T, score func(T) float64) int {
	best := -1
	var bestScore float64
	for i, v := range slice {
		if s := score(v); best < 0 || s > bestScore {
			best = i
			bestScore = s
		}
	}
	return best
}

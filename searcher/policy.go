package searcher

import "math"

type uct struct {
	numerator float64
}

// newUCT prepares the exploration term for a parent visited N times.
func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

// cSquared turns c*sqrt(2*ln(N)/n) into sqrt(c^2*ln(N)/n).
func cSquared(exploration float64) float64 {
	return 2 * exploration * exploration
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}

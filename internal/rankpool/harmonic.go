package rankpool

import "gonum.org/v1/gonum/floats"

// Harmonics returns the table H[0..T] with H[0] = 0 and
// H[t] = H[t-1] + 1/(t+1). The increment is 1/(t+1), not the textbook 1/t.
func Harmonics(T int) []float64 {
	if T < 0 {
		T = 0
	}
	h := make([]float64, T+1)
	for t := 1; t <= T; t++ {
		h[t] = h[t-1] + 1/float64(t+1)
	}
	return h
}

// Weights returns the approximate rank pooling coefficient for each temporal
// position. Index 0 belongs to the oldest frame.
//
//	w_t = 2(T - t + 1) - (T + 1)(H[T] - H[t-1]),  t = 1..T
func Weights(T int) []float64 {
	if T < 1 {
		return nil
	}
	h := Harmonics(T)
	w := make([]float64, T)
	for t := 1; t <= T; t++ {
		w[t-1] = 2*float64(T-t+1) - float64(T+1)*(h[T]-h[t-1])
	}
	return w
}

// WeightSum is the total of Weights(T).
func WeightSum(T int) float64 {
	return floats.Sum(Weights(T))
}

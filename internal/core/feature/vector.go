package feature

// Vectorize derives the fixed-length pseudo-embedding from character codes.
// This is a deterministic stand-in for a trained representation: rune values
// are folded into the vector round-robin, so any change to the input text
// perturbs the direction of the result. All-empty text yields the zero vector
func Vectorize(text string) [VectorDim]float64 {
	var v [VectorDim]float64
	i := 0
	for _, r := range text {
		v[i%VectorDim] += float64(r) / 255.0
		i++
	}
	return v
}

// IsZero reports whether the vector carries no signal
func IsZero(v [VectorDim]float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

package aggregate

// Pair is an unordered pair of canonical agent names. The constructor
// orders the fields so that Pair{"A","B"} and Pair{"B","A"} collapse to
// the same map key; equality and hashing are by value.
type Pair struct {
	A string
	B string
}

// NewPair returns the normalized pair for two names: A holds the
// lexicographically smaller one.
func NewPair(x, y string) Pair {
	if x > y {
		x, y = y, x
	}
	return Pair{A: x, B: y}
}

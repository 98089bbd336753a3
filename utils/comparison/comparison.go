package comparison

import "golang.org/x/exp/constraints"

// Min returns the smaller of a and b.
func Min[V constraints.Ordered](a, b V) V {
	if b < a {
		return b
	}
	return a
}

// Max returns the larger of a and b.
func Max[V constraints.Ordered](a, b V) V {
	if b > a {
		return b
	}
	return a
}


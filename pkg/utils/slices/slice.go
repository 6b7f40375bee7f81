package slices

// Map generates new slice with f(v) for each value v in the source.
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	dest := make([]R, len(sli))
	for i, v := range sli {
		dest[i] = mapper(v)
	}
	return dest
}

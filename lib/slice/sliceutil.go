// Package sliceutil holds generic slice helpers.
package sliceutil

// Map applies f to every element of v.
func Map[From any, To any](v []From, f func(From) To) []To {
	out := make([]To, len(v))
	for idx, e := range v {
		out[idx] = f(e)
	}
	return out
}

// Filter returns the elements of v for which keep is true, in order.
func Filter[T any](v []T, keep func(T) bool) []T {
	out := make([]T, 0, len(v))
	for _, e := range v {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

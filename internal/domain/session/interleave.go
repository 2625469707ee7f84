// Package session builds the ordered item sequence a learner works through in one
// sitting.
package session

// DefaultReviewsPerNew is the number of due reviews emitted before each new item.
const DefaultReviewsPerNew = 3

// Interleave merges the due and new pools, emitting up to reviewsPerNew due items
// followed by one new item until both are exhausted. Once either pool runs out the
// other is drained in its existing order. Inputs are not modified.
//
// A reviewsPerNew below 1 is treated as 1.
func Interleave[T any](due, fresh []T, reviewsPerNew int) []T {
	if reviewsPerNew < 1 {
		reviewsPerNew = 1
	}

	out := make([]T, 0, len(due)+len(fresh))
	d, n := 0, 0
	for d < len(due) || n < len(fresh) {
		for i := 0; i < reviewsPerNew && d < len(due); i++ {
			out = append(out, due[d])
			d++
		}
		if n < len(fresh) {
			out = append(out, fresh[n])
			n++
		}
	}
	return out
}

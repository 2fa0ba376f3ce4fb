// Package sum provides a binary sum of two iterators producing the same element type.
// go-sumiter nests it to unify any number of branch-specific iterator types into one concrete type.
package sum

import (
	"iter"
)

// Iterator pull-style producer of E values. Next reports false once it is exhausted
type Iterator[E any] interface {
	Next() (E, bool)
}

// Stopper is implemented by iterators holding resources which must be released when they are dropped
// before exhaustion, like the ones made by Pull
type Stopper interface {
	Stop()
}

// Sum holds either A (left) or B (right) and iterates over whichever is held.
// The side is fixed at construction.
type Sum[E any, A Iterator[E], B Iterator[E]] struct {
	right bool
	a     A
	b     B
}

// Left builds a Sum holding a
func Left[E any, A Iterator[E], B Iterator[E]](a A) Sum[E, A, B] {
	return Sum[E, A, B]{a: a}
}

// Right builds a Sum holding b
func Right[E any, A Iterator[E], B Iterator[E]](b B) Sum[E, A, B] {
	return Sum[E, A, B]{right: true, b: b}
}

// Next delegates to the held iterator
func (s Sum[E, A, B]) Next() (E, bool) {
	if s.right {
		return s.b.Next()
	}
	return s.a.Next()
}

// IsLeft reports whether s holds the left iterator
func (s Sum[E, A, B]) IsLeft() bool {
	return !s.right
}

// Unwrap returns both slots and whether the left one is populated
func (s Sum[E, A, B]) Unwrap() (A, B, bool) {
	return s.a, s.b, !s.right
}

// Stop releases the held iterator if it is a Stopper. Nested sums forward it down to the leaf.
func (s Sum[E, A, B]) Stop() {
	var it any = s.a
	if s.right {
		it = s.b
	}
	if st, ok := it.(Stopper); ok {
		st.Stop()
	}
}

// All ranges over the rest of s and stops it when the loop breaks
func (s Sum[E, A, B]) All() iter.Seq[E] {
	return All[E](s)
}

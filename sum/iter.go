package sum

import (
	"iter"
)

// SliceIter iterates over slice items
type SliceIter[E any] struct {
	items []E
}

// FromSlice iterator over items. The slice is not copied.
func FromSlice[E any](items []E) *SliceIter[E] {
	return &SliceIter[E]{items: items}
}

// Of iterator over the given values
func Of[E any](items ...E) *SliceIter[E] {
	return FromSlice(items)
}

// Next implements Iterator
func (it *SliceIter[E]) Next() (E, bool) {
	if len(it.items) == 0 {
		var zero E
		return zero, false
	}
	v := it.items[0]
	it.items = it.items[1:]
	return v, true
}

// OnceIter yields a single value
type OnceIter[E any] struct {
	value E
	done  bool
}

// Once iterator yielding v once
func Once[E any](v E) *OnceIter[E] {
	return &OnceIter[E]{value: v}
}

// Next implements Iterator
func (it *OnceIter[E]) Next() (E, bool) {
	if it.done {
		var zero E
		return zero, false
	}
	it.done = true
	return it.value, true
}

// EmptyIter never yields
type EmptyIter[E any] struct{}

// Empty iterator
func Empty[E any]() EmptyIter[E] {
	return EmptyIter[E]{}
}

// Next implements Iterator
func (EmptyIter[E]) Next() (E, bool) {
	var zero E
	return zero, false
}

// PullIter adapts push-style iter.Seq into Iterator
type PullIter[E any] struct {
	next func() (E, bool)
	stop func()
}

// Pull turns seq into an Iterator. Stop must be called if the iterator is dropped before exhaustion.
func Pull[E any](seq iter.Seq[E]) *PullIter[E] {
	next, stop := iter.Pull(seq)
	return &PullIter[E]{
		next: next,
		stop: stop,
	}
}

// Next implements Iterator
func (it *PullIter[E]) Next() (E, bool) {
	return it.next()
}

// Stop releases the underlying sequence
func (it *PullIter[E]) Stop() {
	it.stop()
}

// All ranges over it until it is exhausted or the loop breaks.
// A Stopper is stopped on break.
func All[E any](it Iterator[E]) iter.Seq[E] {
	return func(yield func(E) bool) {
		for {
			v, ok := it.Next()
			if !ok {
				return
			}
			if !yield(v) {
				if st, ok := it.(Stopper); ok {
					st.Stop()
				}
				return
			}
		}
	}
}

// Collect drains it into a slice
func Collect[E any](it Iterator[E]) []E {
	var res []E
	for v := range All(it) {
		res = append(res, v)
	}
	return res
}

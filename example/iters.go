//go:build sumiter

package example

//go:generate go run github.com/sirkon/go-sumiter iters.go

import (
	"iter"

	"github.com/sirkon/go-sumiter/sum"
)

// Kind three variant value for FromKind
type Kind interface {
	isKind()
}

// A first variant of Kind
type A struct{}

// B second variant of Kind
type B struct{}

// C third variant of Kind
type C struct {
	N int
}

func (A) isKind() {}
func (B) isKind() {}
func (C) isKind() {}

// Branch yields 1, 2, 3 if first is set, 4 if only second is set and nothing otherwise.
//
//sumiter:unify BranchSeq
func Branch(first, second bool) sum.Iterator[int] {
	if first {
		return sum.Of(1, 2, 3)
	} else if second {
		return sum.Once(4)
	} else {
		return sum.Empty[int]()
	}
}

// Traced picks the arm of the first true condition and records the index of every condition it checked.
//
//sumiter:unify
func Traced(trace *[]int, conds ...bool) sum.Iterator[string] {
	if check(trace, conds, 0) {
		return sum.Of("a")
	} else if check(trace, conds, 1) {
		return sum.Of("b", "b")
	} else if check(trace, conds, 2) {
		*trace = append(*trace, -1)
		return sum.Once("c")
	} else {
		return sum.Pull(repeat("d", 3))
	}
}

// FromKind yields 1, 2, 3 for A, nothing for B and N for C.
//
//sumiter:unify
func FromKind(k Kind) sum.Iterator[int] {
	switch v := k.(type) {
	case A:
		return sum.Of(1, 2, 3)
	case B:
		return sum.Empty[int]()
	case C:
		return sum.Once(v.N)
	}
	panic("unreachable")
}

// Numerals spells 1 and 2 in a few languages.
//
//sumiter:unify
func Numerals(lang string) sum.Iterator[string] {
	switch lang {
	case "en":
		return sum.Of("one", "two")
	case "de", "nl":
		return sum.Pull(numerals(lang))
	default:
		return sum.Empty[string]()
	}
}

// Window yields at most n leading items.
//
//sumiter:unify
func Window[E any](items []E, n int) sum.Iterator[E] {
	if n <= 0 || len(items) == 0 {
		return sum.Empty[E]()
	} else if n == 1 {
		return sum.Once(items[0])
	} else {
		if n > len(items) {
			n = len(items)
		}
		return sum.FromSlice(items[:n])
	}
}

// Deck deals its cards in the order defined by Mode
type Deck struct {
	Mode  int
	Cards []string
}

// Deal yields cards as they are for Mode 0 and in reverse for Mode 1.
//
//sumiter:unify
func (d *Deck) Deal() sum.Iterator[string] {
	switch d.Mode {
	case 0:
		return sum.FromSlice(d.Cards)
	case 1:
		return sum.Pull(backward(d.Cards))
	}
	panic("unknown mode")
}

func check(trace *[]int, conds []bool, i int) bool {
	*trace = append(*trace, i)
	return i < len(conds) && conds[i]
}

func repeat(v string, n int) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := 0; i < n; i++ {
			if !yield(v) {
				return
			}
		}
	}
}

func numerals(lang string) iter.Seq[string] {
	return func(yield func(string) bool) {
		words := []string{"een", "twee"}
		if lang == "de" {
			words = []string{"eins", "zwei"}
		}
		for _, w := range words {
			if !yield(w) {
				return
			}
		}
	}
}

func backward(cards []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := len(cards) - 1; i >= 0; i-- {
			if !yield(cards[i]) {
				return
			}
		}
	}
}

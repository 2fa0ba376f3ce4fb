//go:build sumiter

package switchinit

import (
	"github.com/sirkon/go-sumiter/sum"
)

//sumiter:unify
func Pick(get func() int) sum.Iterator[int] {
	switch k := get(); k {
	case 0:
		return sum.Empty[int]()
	case 1:
		return sum.Once(1)
	}
	panic("unreachable")
}

//sumiter:unify
func Kind(get func() any) sum.Iterator[int] {
	switch x := get(); v := x.(type) {
	case int:
		return sum.Once(v)
	case []int:
		return sum.FromSlice(v)
	}
	panic("unreachable")
}

//sumiter:unify
func Outer(k int) sum.Iterator[int] {
	switch k {
	case 0:
		return sum.Empty[int]()
	case 1:
		return sum.Once(1)
	}
	panic("unreachable")
}

//go:build sumiter

package returnbefore

import (
	"github.com/sirkon/go-sumiter/sum"
)

//sumiter:unify
func Pick(n int) sum.Iterator[int] {
	if n < 0 {
		return sum.Empty[int]()
	}
	if n > 0 {
		return sum.Of(n)
	} else {
		return sum.Once(0)
	}
}

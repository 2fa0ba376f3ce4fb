//go:build sumiter

package earlyreturn

import (
	"github.com/sirkon/go-sumiter/sum"
)

//sumiter:unify
func Pick(n int) sum.Iterator[int] {
	if n > 0 {
		if n > 10 {
			return sum.Empty[int]()
		}
		return sum.Of(n)
	} else {
		return sum.Once(0)
	}
}

//go:build sumiter

package shadowed

import (
	"github.com/sirkon/go-sumiter/sum"
)

//sumiter:unify
func Pick(n int) sum.Iterator[int] {
	if n > 0 {
		sum := sum.Of(n)
		return sum
	} else {
		return sum.Empty[int]()
	}
}

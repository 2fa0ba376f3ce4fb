//go:build sumiter

package localtype

import (
	"github.com/sirkon/go-sumiter/sum"
)

//sumiter:unify
func Pick(n int) sum.Iterator[int] {
	if n > 0 {
		type local struct{ *sum.SliceIter[int] }
		return local{sum.Of(n)}
	} else {
		return sum.Once(0)
	}
}

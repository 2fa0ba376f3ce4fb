//go:build sumiter

package fallthru

import (
	"github.com/sirkon/go-sumiter/sum"
)

//sumiter:unify
func Pick(n int) sum.Iterator[int] {
	switch n {
	case 0:
		fallthrough
	case 1:
		return sum.Of(1)
	default:
		return sum.Once(2)
	}
}

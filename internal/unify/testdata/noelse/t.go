//go:build sumiter

package noelse

import (
	"github.com/sirkon/go-sumiter/sum"
)

//sumiter:unify
func Pick(a, b bool) sum.Iterator[int] {
	if a {
		return sum.Of(1)
	} else if b {
		return sum.Once(2)
	}
	panic("no arm")
}

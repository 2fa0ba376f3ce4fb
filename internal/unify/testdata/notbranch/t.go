//go:build sumiter

package notbranch

import (
	"github.com/sirkon/go-sumiter/sum"
)

//sumiter:unify
func Pick(a bool) sum.Iterator[int] {
	if a {
		return sum.Of(1)
	}
	return sum.Once(2)
}

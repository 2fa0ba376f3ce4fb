package noconstraint

import (
	"github.com/sirkon/go-sumiter/sum"
)

//sumiter:unify
func Pick(a bool) sum.Iterator[int] {
	if a {
		return sum.Of(1)
	} else {
		return sum.Once(2)
	}
}

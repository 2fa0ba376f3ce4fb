//go:build sumiter

package nosite

import (
	"github.com/sirkon/go-sumiter/sum"
)

// Pick is not marked for unification
func Pick(a bool) sum.Iterator[int] {
	if a {
		return sum.Of(1)
	} else {
		return sum.Once(2)
	}
}

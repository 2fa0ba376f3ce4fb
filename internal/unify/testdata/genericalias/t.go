//go:build sumiter

package genericalias

import (
	"github.com/sirkon/go-sumiter/sum"
)

//sumiter:unify Seq
func Pick[E any](v E, many bool) sum.Iterator[E] {
	if many {
		return sum.Of(v, v)
	} else {
		return sum.Once(v)
	}
}

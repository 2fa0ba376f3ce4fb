//go:build sumiter

package aliastaken

import (
	"github.com/sirkon/go-sumiter/sum"
)

// Seq is taken
type Seq int

//sumiter:unify Seq
func Pick(n int) sum.Iterator[int] {
	if n > 0 {
		return sum.Of(n)
	} else {
		return sum.Once(0)
	}
}

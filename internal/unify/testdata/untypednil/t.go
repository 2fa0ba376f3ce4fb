//go:build sumiter

package untypednil

import (
	"github.com/sirkon/go-sumiter/sum"
)

//sumiter:unify
func Pick(n int) sum.Iterator[int] {
	if n > 0 {
		return nil
	} else {
		return sum.Once(0)
	}
}

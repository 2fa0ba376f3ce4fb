//go:build sumiter

package notiter

import (
	"github.com/sirkon/go-sumiter/sum"
)

//sumiter:unify
func Pick(n int) any {
	if n > 0 {
		return sum.Of(n)
	} else {
		return sum.Once(0)
	}
}

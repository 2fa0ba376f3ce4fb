//go:build sumiter

package oneclause

import (
	"github.com/sirkon/go-sumiter/sum"
)

//sumiter:unify
func Pick(n int) sum.Iterator[int] {
	switch n {
	case 1:
		return sum.Of(1)
	}
	panic("no arm")
}

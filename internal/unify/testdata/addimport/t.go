//go:build sumiter

package addimport

// Ints iterator over ints
type Ints interface {
	Next() (int, bool)
}

type counter struct {
	cur, limit int
}

func (c *counter) Next() (int, bool) {
	if c.cur >= c.limit {
		return 0, false
	}
	c.cur++
	return c.cur, true
}

type ones struct{}

func (ones) Next() (int, bool) {
	return 1, true
}

// Count counts up to n or yields ones forever when n is negative
//
//sumiter:unify
func Count(n int) Ints {
	if n >= 0 {
		return &counter{limit: n}
	} else {
		return ones{}
	}
}

package unify

// nesting renders the right-leaning chain of sum.Sum types for a list of arm producer types
// and the Left/Right constructions selecting a single arm in it.
type nesting struct {
	sum   string // sum package selector prefix: "sum." or empty for dot imports
	elem  string
	types []string
}

// typ returns the nested type for arms starting at i:
//
//	Sum[E, Ti, Sum[E, Ti+1, ... Tk-1]]
func (n nesting) typ(i int) string {
	if i == len(n.types)-1 {
		return n.types[i]
	}
	var c Collector
	c.Expr(`$0[$1, $2, $3]`, n.sum+"Sum", n.elem, n.types[i], n.typ(i+1))
	return c.String()
}

// wrap tags expr produced by the arm with the given index with the path leading to it.
func (n nesting) wrap(arm int, expr string) string {
	return n.wrapFrom(0, arm, expr)
}

func (n nesting) wrapFrom(level, arm int, expr string) string {
	if level == len(n.types)-1 {
		return expr
	}

	var c Collector
	if level == arm {
		c.Expr(`$0[$1, $2, $3]($4)`, n.sum+"Left", n.elem, n.types[level], n.typ(level+1), expr)
		return c.String()
	}
	c.Expr(`$0[$1, $2, $3]($4)`, n.sum+"Right", n.elem, n.types[level], n.typ(level+1), n.wrapFrom(level+1, arm, expr))
	return c.String()
}

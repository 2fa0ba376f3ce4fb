package unify

import (
	"fmt"
	"go/token"
	"sort"
	"strings"
)

// Diagnostic problem found at a unification site
type Diagnostic struct {
	Pos token.Position
	Msg string
}

func (d Diagnostic) Error() string {
	if !d.Pos.IsValid() {
		return d.Msg
	}
	return d.Pos.String() + ": " + d.Msg
}

// ErrorList all problems found in a template. Generation never produces output when there are any
type ErrorList []Diagnostic

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var buf strings.Builder
	for i, d := range l {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(d.Error())
	}
	return buf.String()
}

func (l ErrorList) sorted() ErrorList {
	sort.SliceStable(l, func(i, j int) bool {
		a, b := l[i].Pos, l[j].Pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return l
}

type reporter struct {
	fset *token.FileSet
	errs ErrorList
}

func (r *reporter) errorf(pos token.Pos, format string, a ...interface{}) {
	r.errs = append(r.errs, Diagnostic{
		Pos: r.fset.Position(pos),
		Msg: fmt.Sprintf(format, a...),
	})
}

func (r *reporter) failed() bool {
	return len(r.errs) > 0
}

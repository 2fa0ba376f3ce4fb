package unify

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"github.com/sirkon/gotify"
)

const (
	directive = "//sumiter:unify"
)

var gotifier = gotify.New(nil)

type form int

const (
	formIf form = iota
	formSwitch
	formTypeSwitch
)

func (f form) String() string {
	switch f {
	case formIf:
		return "if-else chain"
	case formSwitch:
		return "switch"
	case formTypeSwitch:
		return "type switch"
	default:
		return "unknown"
	}
}

// arm a single branch of a unification site
type arm struct {
	expr ast.Expr
	typ  types.Type
}

// site a function whose final branch construct is to be unified
type site struct {
	decl      *ast.FuncDecl
	directive *ast.Comment
	name      string // name reported by the catch-all
	alias     string
	form      form
	stmt      ast.Stmt
	result    ast.Expr // result type expression to replace
	elem      types.Type
	arms      []*arm

	// switch forms only
	hasDefault bool
	scrutinee  ast.Expr      // nil when it cannot be reported safely
	trailing   *ast.ExprStmt // panic(...) after the construct
}

type finder struct {
	reporter
	pkg  *types.Package
	info *types.Info
}

func (f *finder) sites(file *ast.File) []*site {
	var res []*site
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		c, args, ok := lookupDirective(fd.Doc)
		if !ok {
			continue
		}
		if s := f.site(fd, c, args); s != nil {
			res = append(res, s)
		}
	}
	return res
}

func lookupDirective(doc *ast.CommentGroup) (*ast.Comment, []string, bool) {
	if doc == nil {
		return nil, nil, false
	}
	for _, c := range doc.List {
		if c.Text == directive {
			return c, nil, true
		}
		if strings.HasPrefix(c.Text, directive+" ") {
			return c, strings.Fields(c.Text[len(directive):]), true
		}
	}
	return nil, nil, false
}

func (f *finder) site(fd *ast.FuncDecl, c *ast.Comment, args []string) *site {
	if fd.Body == nil {
		f.errorf(fd.Name.Pos(), "%s has no body to unify", fd.Name.Name)
		return nil
	}
	if fd.Type.Results.NumFields() != 1 {
		f.errorf(fd.Name.Pos(), "%s must return exactly one iterator, got %d results", fd.Name.Name, fd.Type.Results.NumFields())
		return nil
	}

	s := &site{
		decl:      fd,
		directive: c,
		name:      f.siteName(fd),
		result:    fd.Type.Results.List[0].Type,
	}
	resType := f.info.TypeOf(s.result)
	elem, ok := nextElem(resType)
	if !ok {
		f.errorf(s.result.Pos(), "result type %s of %s must have a method Next() (E, bool)", f.typeString(resType), fd.Name.Name)
		return nil
	}
	s.elem = elem

	if !f.checkAlias(s, args) {
		return nil
	}

	if !f.locate(s) {
		return nil
	}
	switch s.form {
	case formIf:
		f.ifArms(s, s.stmt.(*ast.IfStmt))
	default:
		f.switchArms(s)
	}
	if f.failed() {
		return nil
	}
	return s
}

func (f *finder) siteName(fd *ast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) == 0 {
		return f.pkg.Name() + "." + fd.Name.Name
	}
	recv := fd.Recv.List[0].Type
	for {
		switch v := recv.(type) {
		case *ast.StarExpr:
			recv = v.X
			continue
		case *ast.ParenExpr:
			recv = v.X
			continue
		case *ast.IndexExpr:
			recv = v.X
			continue
		case *ast.IndexListExpr:
			recv = v.X
			continue
		}
		break
	}
	if id, ok := recv.(*ast.Ident); ok {
		return f.pkg.Name() + "." + id.Name + "." + fd.Name.Name
	}
	return f.pkg.Name() + "." + fd.Name.Name
}

func (f *finder) checkAlias(s *site, args []string) bool {
	switch len(args) {
	case 0:
		return true
	case 1:
	default:
		f.errorf(s.directive.Pos(), "%s takes at most one argument, got %d", directive, len(args))
		return false
	}

	name := args[0]
	if !token.IsIdentifier(name) {
		f.errorf(s.directive.Pos(), "invalid alias name %q", name)
		return false
	}
	if s.decl.Type.TypeParams.NumFields() > 0 {
		f.errorf(s.directive.Pos(), "cannot declare alias %s for generic function %s", name, s.decl.Name.Name)
		return false
	}
	want := gotifier.Private(name)
	if ast.IsExported(s.decl.Name.Name) {
		want = gotifier.Public(name)
	}
	if name != want {
		f.errorf(s.directive.Pos(), "alias name must be %s, got %s", want, name)
		return false
	}
	if f.pkg.Scope().Lookup(name) != nil {
		f.errorf(s.directive.Pos(), "alias name %s is already declared in package %s", name, f.pkg.Name())
		return false
	}
	s.alias = name
	return true
}

// locate finds the branch construct: the last statement of the body, or the one followed by a final panic call.
func (f *finder) locate(s *site) bool {
	list := s.decl.Body.List
	if len(list) == 0 {
		f.errorf(s.decl.Body.Lbrace, "%s has an empty body", s.decl.Name.Name)
		return false
	}

	last := list[len(list)-1]
	if es, ok := last.(*ast.ExprStmt); ok && isPanic(es.X) && len(list) > 1 {
		switch list[len(list)-2].(type) {
		case *ast.IfStmt, *ast.SwitchStmt, *ast.TypeSwitchStmt:
			s.trailing = es
			last = list[len(list)-2]
		}
	}

	for _, stmt := range list {
		if stmt == last {
			break
		}
		ast.Inspect(stmt, func(node ast.Node) bool {
			switch v := node.(type) {
			case *ast.FuncLit:
				return false
			case *ast.ReturnStmt:
				f.errorf(v.Pos(), "%s may only return from the arms of its final branch construct", s.decl.Name.Name)
				return false
			}
			return true
		})
	}

	s.stmt = last
	switch last.(type) {
	case *ast.IfStmt:
		s.form = formIf
	case *ast.SwitchStmt:
		s.form = formSwitch
	case *ast.TypeSwitchStmt:
		s.form = formTypeSwitch
	default:
		f.errorf(last.Pos(), "%s must end with an if-else chain or a switch", s.decl.Name.Name)
		return false
	}
	return true
}

func isPanic(e ast.Expr) bool {
	call, ok := e.(*ast.CallExpr)
	if !ok {
		return false
	}
	id, ok := call.Fun.(*ast.Ident)
	return ok && id.Name == "panic"
}

func (f *finder) ifArms(s *site, stmt *ast.IfStmt) {
	cur := stmt
	for i := 0; ; i++ {
		f.arm(s, i, cur.Body.Lbrace, cur.Body.List)
		switch v := cur.Else.(type) {
		case nil:
			f.errorf(cur.Body.Rbrace, "%s of %s has no final else arm", s.form, s.decl.Name.Name)
			return
		case *ast.IfStmt:
			cur = v
		case *ast.BlockStmt:
			f.arm(s, i+1, v.Lbrace, v.List)
			return
		default:
			f.errorf(v.Pos(), "unexpected else branch %T", v)
			return
		}
	}
}

func (f *finder) switchArms(s *site) {
	var body *ast.BlockStmt
	switch v := s.stmt.(type) {
	case *ast.SwitchStmt:
		body = v.Body
		if v.Tag != nil && f.reportable(v.Tag, v) {
			s.scrutinee = v.Tag
		}
	case *ast.TypeSwitchStmt:
		body = v.Body
		var x ast.Expr
		switch a := v.Assign.(type) {
		case *ast.AssignStmt:
			x = a.Rhs[0]
		case *ast.ExprStmt:
			x = a.X
		}
		if ta, ok := x.(*ast.TypeAssertExpr); ok && f.reportable(ta.X, v) {
			s.scrutinee = ta.X
		}
	}

	if len(body.List) < 2 {
		f.errorf(s.stmt.Pos(), "%s of %s needs at least two clauses, got %d", s.form, s.decl.Name.Name, len(body.List))
		return
	}
	for i, stmt := range body.List {
		cc := stmt.(*ast.CaseClause)
		if cc.List == nil {
			s.hasDefault = true
		}
		f.arm(s, i, cc.Colon, cc.Body)
	}
}

// arm checks a single branch body and registers its producer.
func (f *finder) arm(s *site, index int, pos token.Pos, list []ast.Stmt) {
	if len(list) == 0 {
		f.errorf(pos, "arm %d of %s is empty, it must end with a return", index, s.decl.Name.Name)
		return
	}

	last := list[len(list)-1]
	if br, ok := last.(*ast.BranchStmt); ok && br.Tok == token.FALLTHROUGH {
		f.errorf(br.Pos(), "fallthrough is not supported in arm %d of %s", index, s.decl.Name.Name)
		return
	}
	ret, ok := last.(*ast.ReturnStmt)
	if !ok || len(ret.Results) != 1 {
		f.errorf(last.Pos(), "arm %d of %s must end with a return of a single iterator", index, s.decl.Name.Name)
		return
	}
	for _, stmt := range list[:len(list)-1] {
		ast.Inspect(stmt, func(node ast.Node) bool {
			switch v := node.(type) {
			case *ast.FuncLit:
				return false
			case *ast.ReturnStmt:
				f.errorf(v.Pos(), "only the last statement of arm %d of %s may return", index, s.decl.Name.Name)
				return false
			}
			return true
		})
	}

	expr := ret.Results[0]
	if id, ok := ast.Unparen(expr).(*ast.Ident); ok {
		if _, isNil := f.info.Uses[id].(*types.Nil); isNil {
			f.errorf(expr.Pos(), "arm %d of %s returns untyped nil", index, s.decl.Name.Name)
			return
		}
	}
	t := f.info.TypeOf(expr)
	if t == nil {
		f.errorf(expr.Pos(), "cannot determine the type of arm %d of %s", index, s.decl.Name.Name)
		return
	}
	if b, ok := t.(*types.Basic); ok && b.Info()&types.IsUntyped != 0 {
		f.errorf(expr.Pos(), "arm %d of %s returns %s", index, s.decl.Name.Name, b.Name())
		return
	}

	elem, ok := nextElem(t)
	if !ok {
		if _, ptr := nextElem(types.NewPointer(t)); ptr {
			f.errorf(expr.Pos(), "arm %d of %s returns %s whose Next has a pointer receiver, return a pointer instead", index, s.decl.Name.Name, f.typeString(t))
			return
		}
		f.errorf(expr.Pos(), "arm %d of %s returns %s which is not an iterator", index, s.decl.Name.Name, f.typeString(t))
		return
	}
	if !types.Identical(elem, s.elem) {
		f.errorf(expr.Pos(), "arm %d of %s produces %s, want %s", index, s.decl.Name.Name, f.typeString(elem), f.typeString(s.elem))
		return
	}
	if obj := f.unnameable(t, map[types.Type]bool{}); obj != nil {
		f.errorf(expr.Pos(), "arm %d of %s returns %s which cannot be named in the result type: %s is not visible outside %s", index, s.decl.Name.Name, f.typeString(t), obj.Name(), declaredIn(obj))
		return
	}

	s.arms = append(s.arms, &arm{
		expr: expr,
		typ:  t,
	})
}

// reportable checks whether e can be evaluated once more for the catch-all after stmt without side effects.
// Variables declared by stmt itself are out of scope there.
func (f *finder) reportable(e ast.Expr, stmt ast.Stmt) bool {
	switch v := e.(type) {
	case *ast.ParenExpr:
		return f.reportable(v.X, stmt)
	case *ast.Ident:
		switch obj := f.info.Uses[v].(type) {
		case *types.Var, *types.Const:
			return obj.Pos() < stmt.Pos() || obj.Pos() >= stmt.End()
		}
	case *ast.SelectorExpr:
		if sel, ok := f.info.Selections[v]; ok {
			return sel.Kind() == types.FieldVal && f.reportable(v.X, stmt)
		}
		switch f.info.Uses[v.Sel].(type) {
		case *types.Var, *types.Const:
			return true
		}
	}
	return false
}

// unnameable returns a type name referenced by t which cannot be spelled in the function signature:
// a type declared inside a function or an unexported type of another package.
func (f *finder) unnameable(t types.Type, seen map[types.Type]bool) types.Object {
	if seen[t] {
		return nil
	}
	seen[t] = true

	switch v := t.(type) {
	case *types.Named:
		obj := v.Obj()
		if obj.Pkg() != nil {
			if obj.Parent() != obj.Pkg().Scope() {
				return obj
			}
			if obj.Pkg().Path() != f.pkg.Path() && !obj.Exported() {
				return obj
			}
		}
		args := v.TypeArgs()
		for i := 0; i < args.Len(); i++ {
			if res := f.unnameable(args.At(i), seen); res != nil {
				return res
			}
		}
	case *types.Alias:
		return f.unnameable(types.Unalias(v), seen)
	case *types.Pointer:
		return f.unnameable(v.Elem(), seen)
	case *types.Slice:
		return f.unnameable(v.Elem(), seen)
	case *types.Array:
		return f.unnameable(v.Elem(), seen)
	case *types.Chan:
		return f.unnameable(v.Elem(), seen)
	case *types.Map:
		if res := f.unnameable(v.Key(), seen); res != nil {
			return res
		}
		return f.unnameable(v.Elem(), seen)
	case *types.Signature:
		for _, tuple := range []*types.Tuple{v.Params(), v.Results()} {
			for i := 0; i < tuple.Len(); i++ {
				if res := f.unnameable(tuple.At(i).Type(), seen); res != nil {
					return res
				}
			}
		}
	case *types.Struct:
		for i := 0; i < v.NumFields(); i++ {
			field := v.Field(i)
			if field.Pkg() != nil && field.Pkg().Path() != f.pkg.Path() && !field.Exported() {
				return field
			}
			if res := f.unnameable(field.Type(), seen); res != nil {
				return res
			}
		}
	}
	return nil
}

func declaredIn(obj types.Object) string {
	if obj.Pkg() == nil {
		return "its scope"
	}
	if obj.Parent() != nil && obj.Parent() != obj.Pkg().Scope() {
		return "the function declaring it"
	}
	return "package " + obj.Pkg().Name()
}

func (f *finder) typeString(t types.Type) string {
	return types.TypeString(t, types.RelativeTo(f.pkg))
}

// nextElem returns E when the method set of t has Next() (E, bool)
func nextElem(t types.Type) (types.Type, bool) {
	if t == nil {
		return nil, false
	}
	sel := types.NewMethodSet(t).Lookup(nil, "Next")
	if sel == nil {
		return nil, false
	}
	sig, ok := sel.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 2 {
		return nil, false
	}
	b, ok := sig.Results().At(1).Type().Underlying().(*types.Basic)
	if !ok || b.Kind() != types.Bool {
		return nil, false
	}
	return sig.Results().At(0).Type(), true
}

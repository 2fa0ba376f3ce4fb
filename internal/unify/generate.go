// Package unify rewrites functions marked with //sumiter:unify so that every arm of their final
// if-else chain or switch returns the same concrete nested sum.Sum type instead of an interface.
package unify

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/build/constraint"
	"go/parser"
	"go/printer"
	"go/token"
	"go/types"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sirkon/gosrcfmt"
	"golang.org/x/tools/go/ast/astutil"
)

const (
	// DefaultTag build tag guarding template files
	DefaultTag = "sumiter"

	// SumPath import path of the package with sum.Sum
	SumPath = "github.com/sirkon/go-sumiter/sum"

	generatedSuffix = "_sumiter.go"
)

// Config generation parameters
type Config struct {
	File string // template file
	Tag  string // build tag guarding the template, DefaultTag if empty
}

// OutputName returns the name of the file generated for the given template
func OutputName(file string) string {
	return strings.TrimSuffix(file, ".go") + generatedSuffix
}

// IsOutput checks whether the file looks like a generated one
func IsOutput(file string) bool {
	return strings.HasSuffix(file, generatedSuffix)
}

// Generate renders the source of the file replacing the template file in regular builds.
// Problems with unification sites are returned as ErrorList.
func Generate(cfg Config) ([]byte, error) {
	if cfg.Tag == "" {
		cfg.Tag = DefaultTag
	}

	pkg, file, err := load(cfg.File, cfg.Tag)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(pkg.Fset.File(file.Pos()).Name())
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}

	return render(pkg.Fset, pkg.Types, pkg.TypesInfo, file, src, cfg.Tag)
}

func render(fset *token.FileSet, pkg *types.Package, info *types.Info, file *ast.File, src []byte, tag string) ([]byte, error) {
	f := &finder{
		reporter: reporter{fset: fset},
		pkg:      pkg,
		info:     info,
	}
	sites := f.sites(file)
	if !f.failed() && len(sites) == 0 {
		f.errorf(file.Package, "no functions marked with %s", directive)
	}

	g := newGenerator(&f.reporter, pkg, info, file, src)
	g.constraint(file, tag)
	if f.failed() {
		return nil, f.errs.sorted()
	}

	g.insert(0, "// Code generated by go-sumiter. DO NOT EDIT.\n\n")
	for _, s := range sites {
		g.site(s)
	}
	if f.failed() {
		return nil, f.errs.sorted()
	}

	return g.output()
}

type splice struct {
	start int
	end   int
	text  string
}

type generator struct {
	*reporter
	pkg  *types.Package
	info *types.Info
	tf   *token.File
	src  []byte

	imports map[string]string // path -> local name, empty for dot imports
	taken   map[string]bool
	missing map[string]string

	splices []splice
}

func newGenerator(r *reporter, pkg *types.Package, info *types.Info, file *ast.File, src []byte) *generator {
	g := &generator{
		reporter: r,
		pkg:      pkg,
		info:     info,
		tf:       r.fset.File(file.Pos()),
		src:      src,
		imports:  map[string]string{},
		taken:    map[string]bool{},
		missing:  map[string]string{},
	}

	for _, name := range pkg.Scope().Names() {
		g.taken[name] = true
	}
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		var name string
		switch {
		case spec.Name == nil:
			pn, ok := info.Implicits[spec].(*types.PkgName)
			if !ok {
				continue
			}
			name = pn.Imported().Name()
		case spec.Name.Name == "_":
			continue
		case spec.Name.Name == ".":
			name = ""
		default:
			name = spec.Name.Name
		}
		g.imports[path] = name
		if name != "" {
			g.taken[name] = true
		}
	}

	return g
}

// qualifier returns the name to refer to p from the generated file, registering an import if it is missing
func (g *generator) qualifier(p *types.Package) string {
	if p.Path() == g.pkg.Path() {
		return ""
	}
	if name, ok := g.imports[p.Path()]; ok {
		return name
	}

	name := p.Name()
	for i := 1; g.taken[name]; i++ {
		name = p.Name() + strconv.Itoa(i)
	}
	g.imports[p.Path()] = name
	g.taken[name] = true
	g.missing[p.Path()] = name
	return name
}

func (g *generator) sumPackage() *types.Package {
	for _, p := range g.pkg.Imports() {
		if p.Path() == SumPath {
			return p
		}
	}
	return types.NewPackage(SumPath, "sum")
}

func (g *generator) site(s *site) {
	used := map[string]bool{}
	qualifier := func(p *types.Package) string {
		name := g.qualifier(p)
		if name != "" {
			used[name] = true
		}
		return name
	}

	n := nesting{
		elem:  types.TypeString(s.elem, qualifier),
		types: make([]string, len(s.arms)),
	}
	if name := qualifier(g.sumPackage()); name != "" {
		n.sum = name + "."
	}
	for i, a := range s.arms {
		n.types[i] = types.TypeString(a.typ, qualifier)
	}
	g.checkShadows(s, used)

	if s.alias == "" {
		g.replace(s.result, n.typ(0))
	} else {
		var c Collector
		c.Newl()
		c.Newl()
		c.Line(`// $0 iterator type returned by $1`, s.alias, s.decl.Name.Name)
		c.Expr(`type $0 = $1`, s.alias, n.typ(0))
		g.replace(s.result, s.alias)
		g.insert(g.offset(s.decl.End()), c.String())
	}

	for i, a := range s.arms {
		g.replace(a.expr, n.wrap(i, g.text(a.expr)))
	}

	if s.form != formIf && !s.hasDefault {
		value := "nil"
		if s.scrutinee != nil {
			value = g.text(s.scrutinee)
		}
		var c Collector
		c.Expr(`panic($0($1, $2))`, n.sum+"Unmatched", strconv.Quote(s.name), value)
		if s.trailing != nil {
			g.replace(s.trailing, c.String())
		} else {
			g.insert(g.offset(s.stmt.End()), "\n"+c.String())
		}
	}

	g.dropLine(s.directive)
	list := s.decl.Doc.List
	for i, c := range list {
		if c == s.directive && i > 0 && list[i-1].Text == "//" {
			g.dropLine(list[i-1])
		}
	}
}

// checkShadows reports package names used by generated code which are shadowed inside arms
func (g *generator) checkShadows(s *site, used map[string]bool) {
	names := make([]string, 0, len(used))
	for name := range used {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, a := range s.arms {
		scope := g.pkg.Scope().Innermost(a.expr.Pos())
		if scope == nil {
			continue
		}
		for _, name := range names {
			_, obj := scope.LookupParent(name, a.expr.Pos())
			if obj == nil {
				continue
			}
			if _, ok := obj.(*types.PkgName); ok {
				continue
			}
			g.errorf(a.expr.Pos(), "%s shadows package name %s needed by generated code", obj.Name(), name)
		}
	}
}

func (g *generator) constraint(file *ast.File, tag string) {
	var found bool
	for _, cg := range file.Comments {
		if cg.Pos() >= file.Package {
			break
		}
		for _, c := range cg.List {
			switch {
			case constraint.IsGoBuild(c.Text):
				x, err := constraint.Parse(c.Text)
				if err != nil {
					g.errorf(c.Pos(), "parse build constraint: %s", err)
					continue
				}
				neg, ok := negateTag(x, tag)
				if !ok {
					g.errorf(c.Pos(), "build constraint %q must require tag %s", x.String(), tag)
					continue
				}
				found = true
				g.replace(c, "//go:build "+neg.String())
			case constraint.IsPlusBuild(c.Text):
				g.dropLine(c)
			}
		}
	}
	if !found {
		g.errorf(file.Package, "template must be guarded with //go:build %s", tag)
	}
}

// negateTag turns the requirement of tag into its negation
func negateTag(x constraint.Expr, tag string) (constraint.Expr, bool) {
	switch v := x.(type) {
	case *constraint.TagExpr:
		if v.Tag == tag {
			return &constraint.NotExpr{X: v}, true
		}
	case *constraint.AndExpr:
		if l, ok := negateTag(v.X, tag); ok {
			return &constraint.AndExpr{X: l, Y: v.Y}, true
		}
		if r, ok := negateTag(v.Y, tag); ok {
			return &constraint.AndExpr{X: v.X, Y: r}, true
		}
	}
	return nil, false
}

func (g *generator) offset(pos token.Pos) int {
	return g.tf.Offset(pos)
}

func (g *generator) text(n ast.Node) string {
	return string(g.src[g.offset(n.Pos()):g.offset(n.End())])
}

func (g *generator) replace(n ast.Node, text string) {
	g.splices = append(g.splices, splice{
		start: g.offset(n.Pos()),
		end:   g.offset(n.End()),
		text:  text,
	})
}

func (g *generator) insert(off int, text string) {
	g.splices = append(g.splices, splice{
		start: off,
		end:   off,
		text:  text,
	})
}

// dropLine removes a line comment together with its line if nothing else is there
func (g *generator) dropLine(c *ast.Comment) {
	start, end := g.offset(c.Pos()), g.offset(c.End())

	lineStart := start
	for lineStart > 0 && (g.src[lineStart-1] == ' ' || g.src[lineStart-1] == '\t') {
		lineStart--
	}
	if (lineStart == 0 || g.src[lineStart-1] == '\n') && end < len(g.src) && g.src[end] == '\n' {
		start, end = lineStart, end+1
	}

	g.splices = append(g.splices, splice{
		start: start,
		end:   end,
	})
}

func (g *generator) output() ([]byte, error) {
	sort.SliceStable(g.splices, func(i, j int) bool {
		if g.splices[i].start != g.splices[j].start {
			return g.splices[i].start < g.splices[j].start
		}
		return g.splices[i].end < g.splices[j].end
	})

	var c Collector
	var prev int
	for _, sp := range g.splices {
		if sp.start < prev {
			return nil, fmt.Errorf("overlapping rewrites at offset %d", sp.start)
		}
		c.Raw(g.src[prev:sp.start])
		c.Raw([]byte(sp.text))
		prev = sp.end
	}
	c.Raw(g.src[prev:])

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", c.Bytes(), parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse rewritten source: %w\n%s", err, numbered(c.String()))
	}
	g.fixImports(fset, file)

	var buf bytes.Buffer
	cfg := printer.Config{
		Mode:     printer.UseSpaces | printer.TabIndent,
		Tabwidth: 8,
	}
	if err := cfg.Fprint(&buf, fset, file); err != nil {
		return nil, fmt.Errorf("print rewritten source: %w", err)
	}

	res, err := gosrcfmt.Source(buf.Bytes(), "<output>")
	if err != nil {
		return nil, fmt.Errorf("format rewritten source: %w\n%s", err, numbered(buf.String()))
	}
	return res, nil
}

// fixImports adds imports needed by nested types and drops ones only the replaced result types used
func (g *generator) fixImports(fset *token.FileSet, file *ast.File) {
	paths := make([]string, 0, len(g.missing))
	for path := range g.missing {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		name := g.missing[path]
		if name == path[strings.LastIndex(path, "/")+1:] {
			astutil.AddImport(fset, file, path)
			continue
		}
		astutil.AddNamedImport(fset, file, name, path)
	}

	refs := map[string]bool{}
	ast.Inspect(file, func(node ast.Node) bool {
		if sel, ok := node.(*ast.SelectorExpr); ok {
			if id, ok := sel.X.(*ast.Ident); ok {
				refs[id.Name] = true
			}
		}
		return true
	})
	for _, spec := range append([]*ast.ImportSpec(nil), file.Imports...) {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name, ok := g.imports[path]
		if !ok || name == "" || refs[name] {
			continue
		}
		if spec.Name != nil {
			astutil.DeleteNamedImport(fset, file, spec.Name.Name, path)
			continue
		}
		astutil.DeleteImport(fset, file, path)
	}
}

func numbered(src string) string {
	var buf strings.Builder
	lines := strings.Split(src, "\n")
	errFmt := fmt.Sprintf("%%0%dd", len(strconv.Itoa(len(lines)+1)))
	for i, l := range lines {
		_, _ = fmt.Fprintf(&buf, errFmt, i+1)
		buf.WriteByte(' ')
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	return buf.String()
}

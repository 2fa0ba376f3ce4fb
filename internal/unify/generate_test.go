package unify

import (
	"bytes"
	"go/ast"
	"go/build/constraint"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate_Example(t *testing.T) {
	res, err := Generate(Config{File: filepath.Join("..", "..", "example", "iters.go")})
	require.NoError(t, err)

	want, err := os.ReadFile(filepath.Join("..", "..", "example", "iters_sumiter.go"))
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(res, []byte("// Code generated by go-sumiter. DO NOT EDIT.\n")))
	require.Contains(t, string(res), "//go:build !sumiter\n")
	require.NotContains(t, string(res), directive)
	// regular builds only see the output, go generate must still find the directive there
	require.Contains(t, string(res), "//go:generate go run github.com/sirkon/go-sumiter iters.go\n")

	wantImports, wantDecls := declarations(t, want)
	gotImports, gotDecls := declarations(t, res)
	require.Equal(t, wantImports, gotImports)
	require.Equal(t, wantDecls, gotDecls)
}

func TestGenerate_Deterministic(t *testing.T) {
	file := filepath.Join("..", "..", "example", "iters.go")

	first, err := Generate(Config{File: file})
	require.NoError(t, err)
	second, err := Generate(Config{File: file})
	require.NoError(t, err)

	require.Equal(t, string(first), string(second))
}

func TestGenerate_AddsSumImport(t *testing.T) {
	res, err := Generate(Config{File: filepath.Join("testdata", "addimport", "t.go")})
	require.NoError(t, err)

	imports, _ := declarations(t, res)
	require.Equal(t, []string{`"` + SumPath + `"`}, imports)

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", res, 0)
	require.NoError(t, err)

	var count *ast.FuncDecl
	for _, decl := range file.Decls {
		if fd, ok := decl.(*ast.FuncDecl); ok && fd.Name.Name == "Count" {
			count = fd
		}
	}
	require.NotNil(t, count)

	var buf bytes.Buffer
	require.NoError(t, format.Node(&buf, fset, count.Type.Results.List[0].Type))
	require.Equal(t, "sum.Sum[int, *counter, ones]", buf.String())
	require.Contains(t, string(res), "sum.Left[int, *counter, ones](&counter{limit: n})")
	require.Contains(t, string(res), "sum.Right[int, *counter, ones](ones{})")
}

func TestGenerate_SwitchInitScrutinee(t *testing.T) {
	res, err := Generate(Config{File: filepath.Join("testdata", "switchinit", "t.go")})
	require.NoError(t, err)

	// variables declared by the switch are out of scope after it
	require.Contains(t, string(res), `panic(sum.Unmatched("switchinit.Pick", nil))`)
	require.Contains(t, string(res), `panic(sum.Unmatched("switchinit.Kind", nil))`)
	require.Contains(t, string(res), `panic(sum.Unmatched("switchinit.Outer", k))`)

	_, err = parser.ParseFile(token.NewFileSet(), "", res, 0)
	require.NoError(t, err)
}

func TestGenerate_Diagnostics(t *testing.T) {
	variants := []struct {
		name string
		msg  string
	}{
		{
			name: "noelse",
			msg:  "if-else chain of Pick has no final else arm",
		},
		{
			name: "oneclause",
			msg:  "switch of Pick needs at least two clauses, got 1",
		},
		{
			name: "earlyreturn",
			msg:  "only the last statement of arm 0 of Pick may return",
		},
		{
			name: "noconstraint",
			msg:  "template must be guarded with //go:build sumiter",
		},
		{
			name: "badalias",
			msg:  "alias name must be",
		},
		{
			name: "manyargs",
			msg:  "takes at most one argument, got 2",
		},
		{
			name: "nosite",
			msg:  "no functions marked with " + directive,
		},
		{
			name: "notbranch",
			msg:  "Pick must end with an if-else chain or a switch",
		},
		{
			name: "fallthru",
			msg:  "fallthrough is not supported in arm 0 of Pick",
		},
		{
			name: "returnbefore",
			msg:  "Pick may only return from the arms of its final branch construct",
		},
		{
			name: "localtype",
			msg:  "local is not visible outside the function declaring it",
		},
		{
			name: "untypednil",
			msg:  "arm 0 of Pick returns untyped nil",
		},
		{
			name: "notiter",
			msg:  "of Pick must have a method Next() (E, bool)",
		},
		{
			name: "genericalias",
			msg:  "cannot declare alias Seq for generic function Pick",
		},
		{
			name: "aliastaken",
			msg:  "alias name Seq is already declared in package aliastaken",
		},
		{
			name: "shadowed",
			msg:  "sum shadows package name sum needed by generated code",
		},
	}

	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			res, err := Generate(Config{File: filepath.Join("testdata", v.name, "t.go")})
			require.Nil(t, res)

			var lst ErrorList
			require.ErrorAs(t, err, &lst)
			require.NotEmpty(t, lst)

			var found bool
			for _, d := range lst {
				if strings.Contains(d.Msg, v.msg) {
					found = true
					require.Equal(t, "t.go", filepath.Base(d.Pos.Filename))
					require.NotZero(t, d.Pos.Line)
				}
			}
			require.True(t, found, "%q not found in\n%s", v.msg, lst.Error())
		})
	}
}

func TestGenerate_TemplateErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module broken\n\ngo 1.23\n"), 0644))
	file := filepath.Join(dir, "t.go")
	require.NoError(t, os.WriteFile(file, []byte("//go:build sumiter\n\npackage broken\n\nfunc F() int { return \"\" }\n"), 0644))

	_, err := Generate(Config{File: file})

	var lst ErrorList
	require.ErrorAs(t, err, &lst)
	require.NotEmpty(t, lst)
}

func TestNegateTag(t *testing.T) {
	variants := []struct {
		src  string
		want string
	}{
		{
			src:  "//go:build sumiter",
			want: "!sumiter",
		},
		{
			src:  "//go:build linux && sumiter",
			want: "linux && !sumiter",
		},
		{
			src:  "//go:build sumiter && (amd64 || arm64)",
			want: "!sumiter && (amd64 || arm64)",
		},
		{
			src: "//go:build linux || sumiter",
		},
		{
			src: "//go:build linux",
		},
	}

	for _, v := range variants {
		t.Run(v.src, func(t *testing.T) {
			x, err := constraint.Parse(v.src)
			require.NoError(t, err)

			res, ok := negateTag(x, DefaultTag)
			if v.want == "" {
				require.False(t, ok)
				return
			}
			require.True(t, ok)
			require.Equal(t, v.want, res.String())
		})
	}
}

func TestOutputName(t *testing.T) {
	require.Equal(t, "iters_sumiter.go", OutputName("iters.go"))
	require.Equal(t, filepath.Join("a", "b_sumiter.go"), OutputName(filepath.Join("a", "b.go")))
	require.True(t, IsOutput(OutputName("x.go")))
	require.False(t, IsOutput("x.go"))
}

func TestErrorList(t *testing.T) {
	lst := ErrorList{
		{Pos: token.Position{Filename: "b.go", Line: 1, Column: 1}, Msg: "second"},
		{Pos: token.Position{Filename: "a.go", Line: 3, Column: 2}, Msg: "first"},
		{Msg: "no position"},
	}

	require.Equal(t, "no errors", ErrorList(nil).Error())
	require.Equal(t, "a.go:3:2: first", lst[1:2].Error())
	require.Equal(t, "no position\na.go:3:2: first\nb.go:1:1: second", lst.sorted().Error())
}

// declarations returns sorted imports and top level declarations of src printed without comments
func declarations(t *testing.T, src []byte) ([]string, []string) {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", src, 0)
	require.NoError(t, err)

	var imports []string
	for _, spec := range file.Imports {
		imports = append(imports, spec.Path.Value)
	}
	sort.Strings(imports)

	var decls []string
	for _, decl := range file.Decls {
		if gd, ok := decl.(*ast.GenDecl); ok && gd.Tok == token.IMPORT {
			continue
		}
		var buf bytes.Buffer
		require.NoError(t, format.Node(&buf, fset, decl))
		decls = append(decls, buf.String())
	}
	return imports, decls
}

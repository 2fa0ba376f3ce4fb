package unify

import (
	"fmt"
	"go/ast"
	"os"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo

// load type checks the package of the template file with the generation tag set
func load(file, tag string) (*packages.Package, *ast.File, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, nil, fmt.Errorf("get absolute path of %s: %w", file, err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, nil, fmt.Errorf("check template file: %w", err)
	}

	cfg := &packages.Config{
		Mode:       loadMode,
		Dir:        filepath.Dir(abs),
		BuildFlags: []string{"-tags=" + tag},
	}
	pkgs, err := packages.Load(cfg, "file="+abs)
	if err != nil {
		return nil, nil, fmt.Errorf("load package of %s: %w", file, err)
	}
	if len(pkgs) == 0 {
		return nil, nil, fmt.Errorf("no package contains %s with tag %s", file, tag)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		var errs ErrorList
		for _, e := range pkg.Errors {
			errs = append(errs, Diagnostic{Msg: e.Error()})
		}
		return nil, nil, errs
	}

	for _, f := range pkg.Syntax {
		name := pkg.Fset.File(f.Pos()).Name()
		other, err := os.Stat(name)
		if err != nil {
			continue
		}
		if os.SameFile(fi, other) {
			return pkg, f, nil
		}
	}
	return nil, nil, fmt.Errorf("%s is not a part of package %s with tag %s", file, pkg.PkgPath, tag)
}

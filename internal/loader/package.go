package loader

import (
	"go/ast"
	"go/token"
	"go/types"
	"sort"
)

// Package is a type checked package together with the syntax needed to read
// doc comment directives
type Package struct {
	Path   string
	Name   string
	Fset   *token.FileSet
	Types  *types.Package
	Syntax []*ast.File
	Info   *types.Info

	docs     map[*types.Func]*ast.CommentGroup
	universe []*types.Package
}

func newPackage(fset *token.FileSet, tpkg *types.Package, files []*ast.File, info *types.Info) *Package {
	p := &Package{
		Path:   tpkg.Path(),
		Name:   tpkg.Name(),
		Fset:   fset,
		Types:  tpkg,
		Syntax: files,
		Info:   info,
		docs:   make(map[*types.Func]*ast.CommentGroup),
	}
	for _, file := range files {
		for _, decl := range file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Doc == nil {
				continue
			}
			if fn, ok := info.Defs[fd.Name].(*types.Func); ok {
				p.docs[fn] = fd.Doc
			}
		}
	}
	return p
}

// Functions lists every function object declared by the package: package
// level functions in scope order followed by the declared methods of each
// named type. Scope order is the sorted name order of go/types; callers must
// not rely on it beyond stability for a given load.
func (p *Package) Functions() []*types.Func {
	scope := p.Types.Scope()
	var funcs, methods []*types.Func
	for _, name := range scope.Names() {
		switch obj := scope.Lookup(name).(type) {
		case *types.Func:
			funcs = append(funcs, obj)
		case *types.TypeName:
			named, ok := obj.Type().(*types.Named)
			if !ok || obj.IsAlias() {
				continue
			}
			for i := 0; i < named.NumMethods(); i++ {
				methods = append(methods, named.Method(i))
			}
		}
	}
	return append(funcs, methods...)
}

// Doc returns the doc comment of fn, or nil
func (p *Package) Doc(fn *types.Func) *ast.CommentGroup {
	return p.docs[fn]
}

// Position returns the source position of fn
func (p *Package) Position(fn *types.Func) token.Position {
	if p.Fset == nil {
		return token.Position{}
	}
	return p.Fset.Position(fn.Pos())
}

// Imports returns the transitive closure of type checked packages reachable
// from this package, itself included
func (p *Package) Imports() []*types.Package {
	seen := make(map[*types.Package]bool)
	var out []*types.Package
	var visit func(*types.Package)
	visit = func(pkg *types.Package) {
		if seen[pkg] {
			return
		}
		seen[pkg] = true
		out = append(out, pkg)
		for _, imp := range pkg.Imports() {
			visit(imp)
		}
	}
	visit(p.Types)
	return out
}

// Universe returns every type checked package of the load that produced p.
// Capabilities a package never imports are still found there. Packages built
// outside a load fall back to Imports.
func (p *Package) Universe() []*types.Package {
	if p.universe == nil {
		return p.Imports()
	}
	return p.universe
}

func shareUniverse(pkgs []*Package, universe []*types.Package) {
	sort.Slice(universe, func(i, j int) bool { return universe[i].Path() < universe[j].Path() })
	for _, pkg := range pkgs {
		pkg.universe = universe
	}
}

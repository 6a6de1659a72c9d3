package loader

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"sort"

	"github.com/toyz/matchgen/internal/errors"
)

// Sources maps an import path to the files of that package, keyed by file name
type Sources map[string]map[string]string

// LoadSources parses and type checks in-memory packages. Imports between the
// given packages are resolved from the sources themselves; any other import
// falls back to the default importer for the toolchain.
func LoadSources(sources Sources) (map[string]*Package, error) {
	s := &sourceSet{
		fset:     token.NewFileSet(),
		sources:  sources,
		loaded:   make(map[string]*Package),
		checking: make(map[string]bool),
		fallback: importer.Default(),
	}

	paths := make([]string, 0, len(sources))
	for path := range sources {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	pkgs := make([]*Package, 0, len(paths))
	universe := make([]*types.Package, 0, len(paths))
	for _, path := range paths {
		pkg, err := s.load(path)
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, pkg)
		universe = append(universe, pkg.Types)
	}
	shareUniverse(pkgs, universe)
	return s.loaded, nil
}

type sourceSet struct {
	fset     *token.FileSet
	sources  Sources
	loaded   map[string]*Package
	checking map[string]bool
	fallback types.Importer
}

// Import implements types.Importer
func (s *sourceSet) Import(path string) (*types.Package, error) {
	if _, ok := s.sources[path]; !ok {
		return s.fallback.Import(path)
	}
	pkg, err := s.load(path)
	if err != nil {
		return nil, err
	}
	return pkg.Types, nil
}

func (s *sourceSet) load(path string) (*Package, error) {
	if pkg, ok := s.loaded[path]; ok {
		return pkg, nil
	}
	if s.checking[path] {
		return nil, errors.NewLoadError(path, fmt.Errorf("import cycle"))
	}
	s.checking[path] = true
	defer delete(s.checking, path)

	names := make([]string, 0, len(s.sources[path]))
	for name := range s.sources[path] {
		names = append(names, name)
	}
	sort.Strings(names)

	files := make([]*ast.File, 0, len(names))
	for _, name := range names {
		file, err := parser.ParseFile(s.fset, name, s.sources[path][name], parser.ParseComments)
		if err != nil {
			return nil, errors.NewLoadError(path, err)
		}
		files = append(files, file)
	}

	info := &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Defs:  make(map[*ast.Ident]types.Object),
		Uses:  make(map[*ast.Ident]types.Object),
	}
	conf := &types.Config{Importer: s}
	tpkg, err := conf.Check(path, s.fset, files, info)
	if err != nil {
		return nil, errors.NewLoadError(path, err)
	}

	pkg := newPackage(s.fset, tpkg, files, info)
	s.loaded[path] = pkg
	return pkg, nil
}

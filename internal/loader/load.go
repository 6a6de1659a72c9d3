// Package loader produces type checked packages for the factory scanner,
// either through golang.org/x/tools/go/packages or from in-memory sources.
package loader

import (
	"context"
	"fmt"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/toyz/matchgen/internal/errors"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo

// Config controls how packages are loaded
type Config struct {
	// Dir is the directory the build system runs in; empty means the
	// current directory
	Dir string
	// Env overrides the build environment
	Env []string
	// Tests includes test variants of the packages
	Tests bool
	// Require lists packages that must be in the universe even when no
	// loaded package imports them, such as the package declaring the
	// capabilities the scanner resolves by name
	Require []string
}

// Load loads and type checks the packages matching patterns. Packages are
// loaded in a single pass so that every package and its imports share the
// same type universe.
func Load(ctx context.Context, cfg Config, patterns ...string) ([]*Package, error) {
	pcfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     cfg.Dir,
		Env:     cfg.Env,
		Tests:   cfg.Tests,
	}

	pkgs, err := packages.Load(pcfg, patterns...)
	if err != nil {
		return nil, errors.NewLoadError(strings.Join(patterns, " "), err)
	}

	multi := errors.NewMultipleErrors()
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, perr := range pkg.Errors {
			multi.Add(errors.NewLoadError(pkg.PkgPath, fmt.Errorf("%s", perr.Error())))
		}
	})
	if err := multi.ErrorOrNil(); err != nil {
		return nil, err
	}

	universe := make(map[string]*types.Package)
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		if pkg.Types != nil {
			universe[pkg.PkgPath] = pkg.Types
		}
	})
	if err := loadRequired(pcfg, cfg.Require, universe); err != nil {
		return nil, err
	}

	out := make([]*Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		if pkg.Types == nil {
			continue
		}
		out = append(out, newPackage(pkg.Fset, pkg.Types, pkg.Syntax, pkg.TypesInfo))
	}

	all := make([]*types.Package, 0, len(universe))
	for _, tpkg := range universe {
		all = append(all, tpkg)
	}
	shareUniverse(out, all)
	return out, nil
}

// loadRequired type checks the required packages missing from universe.
// Required packages that fail to load are left out so that resolving a
// capability from them reports the configuration problem.
func loadRequired(pcfg *packages.Config, require []string, universe map[string]*types.Package) error {
	var missing []string
	for _, path := range require {
		if _, ok := universe[path]; !ok {
			missing = append(missing, path)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	rcfg := *pcfg
	rcfg.Mode = packages.NeedName | packages.NeedImports | packages.NeedDeps | packages.NeedTypes
	rcfg.Tests = false
	pkgs, err := packages.Load(&rcfg, missing...)
	if err != nil {
		return errors.NewLoadError(strings.Join(missing, " "), err)
	}
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		if pkg.Types != nil && len(pkg.Errors) == 0 {
			if _, ok := universe[pkg.PkgPath]; !ok {
				universe[pkg.PkgPath] = pkg.Types
			}
		}
	})
	return nil
}

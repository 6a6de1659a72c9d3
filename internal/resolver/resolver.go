// Package resolver locates capability types by fully qualified name in the
// type information of loaded packages.
//
// matchgen never imports the matcher library it scans. The marker type and
// the matcher interface are looked up here at scan time, which keeps the tool
// buildable before (and independently from) the library it annotates.
package resolver

import (
	"fmt"
	"go/types"
	"strings"

	"github.com/toyz/matchgen/internal/errors"
)

// Resolver resolves a fully qualified type name such as
// "example.com/hamcrest.Matcher" to a capability handle
type Resolver interface {
	Resolve(qualifiedName string) (*Capability, error)
}

// Capability is a handle on a resolved named type and its members
type Capability struct {
	QualifiedName string
	Obj           *types.TypeName
}

// Type returns the declared type
func (c *Capability) Type() types.Type {
	return c.Obj.Type()
}

// Named returns the declared type as a named type, or nil for an alias of an
// unnamed type
func (c *Capability) Named() *types.Named {
	named, _ := types.Unalias(c.Obj.Type()).(*types.Named)
	return named
}

// Generic reports whether the capability declares type parameters
func (c *Capability) Generic() bool {
	named := c.Named()
	return named != nil && named.TypeParams().Len() > 0
}

// Interface returns the underlying interface, or nil
func (c *Capability) Interface() *types.Interface {
	iface, _ := c.Type().Underlying().(*types.Interface)
	return iface
}

// Member looks up a struct field or a method of the capability by its exact
// name. A missing member is a configuration error.
func (c *Capability) Member(name string) (types.Object, error) {
	obj, _, _ := types.LookupFieldOrMethod(c.Type(), true, c.Obj.Pkg(), name)
	if obj != nil {
		return obj, nil
	}
	return nil, errors.NewConfigurationError(c.QualifiedName,
		fmt.Sprintf("%s has no member %s", c.QualifiedName, name)).WithMember(name)
}

// Fields returns the struct fields of the capability by name
func (c *Capability) Fields() map[string]*types.Var {
	fields := make(map[string]*types.Var)
	if st, ok := c.Type().Underlying().(*types.Struct); ok {
		for i := 0; i < st.NumFields(); i++ {
			fields[st.Field(i).Name()] = st.Field(i)
		}
	}
	return fields
}

// SplitQualifiedName splits "path/to/pkg.Name" into its package path and
// type name
func SplitQualifiedName(qualifiedName string) (pkgPath, name string, err error) {
	dot := strings.LastIndex(qualifiedName, ".")
	slash := strings.LastIndex(qualifiedName, "/")
	if dot <= 0 || dot < slash || dot == len(qualifiedName)-1 {
		return "", "", errors.NewConfigurationError(qualifiedName,
			fmt.Sprintf("%q is not a fully qualified type name", qualifiedName))
	}
	return qualifiedName[:dot], qualifiedName[dot+1:], nil
}

// PackageResolver resolves names against a fixed set of type checked packages
type PackageResolver struct {
	packages map[string]*types.Package
}

// NewPackageResolver creates a resolver over the given packages and
// everything they import
func NewPackageResolver(roots ...*types.Package) *PackageResolver {
	r := &PackageResolver{packages: make(map[string]*types.Package)}
	for _, root := range roots {
		r.add(root)
	}
	return r
}

func (r *PackageResolver) add(pkg *types.Package) {
	if _, ok := r.packages[pkg.Path()]; ok {
		return
	}
	r.packages[pkg.Path()] = pkg
	for _, imp := range pkg.Imports() {
		r.add(imp)
	}
}

// Resolve implements Resolver
func (r *PackageResolver) Resolve(qualifiedName string) (*Capability, error) {
	pkgPath, name, err := SplitQualifiedName(qualifiedName)
	if err != nil {
		return nil, err
	}

	pkg, ok := r.packages[pkgPath]
	if !ok {
		return nil, errors.NewConfigurationError(qualifiedName,
			fmt.Sprintf("package %s is not loaded", pkgPath))
	}

	obj := pkg.Scope().Lookup(name)
	if obj == nil {
		return nil, errors.NewConfigurationError(qualifiedName,
			fmt.Sprintf("%s is not declared in %s", name, pkgPath))
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, errors.NewConfigurationError(qualifiedName,
			fmt.Sprintf("%s is not a type", qualifiedName))
	}

	return &Capability{QualifiedName: qualifiedName, Obj: tn}, nil
}

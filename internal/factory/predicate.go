package factory

import (
	"fmt"
	"go/types"
	"slices"
	"strings"

	"github.com/toyz/matchgen/internal/annotations"
	"github.com/toyz/matchgen/internal/errors"
	"github.com/toyz/matchgen/internal/loader"
	"github.com/toyz/matchgen/internal/resolver"
	"github.com/toyz/matchgen/internal/typetext"
)

var errorType = types.Universe.Lookup("error").Type().Underlying().(*types.Interface)

// Check is one named condition of the factory predicate
type Check struct {
	Name string
	Test func(fn *types.Func) (bool, error)
}

// Predicate classifies functions as factory methods. A function qualifies
// when every check holds; checks run in order and stop at the first one that
// fails. An error from any check is fatal for the whole scan.
//
// A Predicate is not safe for concurrent use.
type Predicate struct {
	pkg      *loader.Package
	target   string
	parser   *annotations.Parser
	marker   *resolver.Capability
	accessor *types.Var
	matcher  *resolver.Capability

	// directive of the last function looked up, shared by the checks
	lastFn  *types.Func
	lastDir *annotations.Directive
	lastErr error
}

// newPredicate resolves the marker and matcher capabilities. Every failure
// here is a ConfigurationError.
func newPredicate(pkg *loader.Package, target string, parser *annotations.Parser, r resolver.Resolver,
	markerName, matcherName, accessor string) (*Predicate, error) {
	marker, err := r.Resolve(markerName)
	if err != nil {
		return nil, err
	}
	member, err := marker.Member(accessor)
	if err != nil {
		return nil, err
	}
	field, ok := member.(*types.Var)
	if !ok || !field.IsField() || !isStringSlice(field.Type()) {
		return nil, errors.NewConfigurationError(markerName,
			fmt.Sprintf("%s.%s must be a []string field", markerName, accessor)).WithMember(accessor)
	}

	matcher, err := r.Resolve(matcherName)
	if err != nil {
		return nil, err
	}
	if matcher.Interface() == nil {
		return nil, errors.NewConfigurationError(matcherName,
			fmt.Sprintf("%s is not an interface", matcherName))
	}

	return &Predicate{
		pkg:      pkg,
		target:   target,
		parser:   parser,
		marker:   marker,
		accessor: field,
		matcher:  matcher,
	}, nil
}

// Checks returns the checks in evaluation order
func (p *Predicate) Checks() []Check {
	return []Check{
		{Name: "static-public", Test: p.StaticPublic},
		{Name: "marked", Test: p.Marked},
		{Name: "not-excluded", Test: p.NotExcluded},
		{Name: "returns-matcher", Test: p.ReturnsMatcher},
	}
}

// Accept reports whether fn is a factory method. When it is not, the name of
// the first failing check is returned.
func (p *Predicate) Accept(fn *types.Func) (bool, string, error) {
	for _, check := range p.Checks() {
		ok, err := check.Test(fn)
		if err != nil {
			return false, check.Name, err
		}
		if !ok {
			return false, check.Name, nil
		}
	}
	return true, "", nil
}

// StaticPublic holds for exported functions without a receiver
func (p *Predicate) StaticPublic(fn *types.Func) (bool, error) {
	return fn.Exported() && fn.Signature().Recv() == nil, nil
}

// Marked holds when the doc comment carries the marker directive
func (p *Predicate) Marked(fn *types.Func) (bool, error) {
	d, err := p.directive(fn)
	return d != nil, err
}

// NotExcluded holds when the marker does not list the scan target. A marker
// without the accessor parameter excludes nothing.
func (p *Predicate) NotExcluded(fn *types.Func) (bool, error) {
	d, err := p.directive(fn)
	if err != nil {
		return false, err
	}
	if d == nil {
		return true, nil
	}

	fields := p.marker.Fields()
	for _, key := range d.Keys {
		if !hasFieldFold(fields, key) {
			return false, errors.NewSyntaxError(fmt.Sprintf("%s has no parameter '%s'", p.marker.QualifiedName, key)).
				WithDirective(d.Raw).
				WithLocation(d.Location)
		}
	}

	excludes, _ := d.Values(p.accessor.Name())
	return !slices.Contains(excludes, p.target), nil
}

// ReturnsMatcher holds when the first result is assignable to the matcher
// capability and every further result is an error
func (p *Predicate) ReturnsMatcher(fn *types.Func) (bool, error) {
	results := fn.Signature().Results()
	if results.Len() == 0 {
		return false, nil
	}
	for i := 1; i < results.Len(); i++ {
		if !types.Implements(results.At(i).Type(), errorType) {
			return false, nil
		}
	}
	return p.assignableToMatcher(results.At(0).Type()), nil
}

// MarkerDirectiveName is the directive name selecting the marker: the marker
// type name, compared case-insensitively
func (p *Predicate) MarkerDirectiveName() string {
	return p.marker.Obj.Name()
}

// directive parses the marker directive of fn once; later checks of the same
// function reuse the result
func (p *Predicate) directive(fn *types.Func) (*annotations.Directive, error) {
	if fn != p.lastFn {
		p.lastDir, p.lastErr = p.parser.Find(p.pkg.Fset, p.pkg.Doc(fn), p.MarkerDirectiveName())
		p.lastFn = fn
	}
	return p.lastDir, p.lastErr
}

func (p *Predicate) assignableToMatcher(t types.Type) bool {
	if !p.matcher.Generic() {
		return types.AssignableTo(t, p.matcher.Type())
	}

	origin := p.matcher.Named().Origin()
	if named, ok := types.Unalias(t).(*types.Named); ok && named.Origin() == origin {
		return true
	}

	for _, args := range p.candidateTypeArgs(t, typetext.NamedOf(t)) {
		inst, err := types.Instantiate(nil, origin, args, true)
		if err == nil && types.AssignableTo(t, inst) {
			return true
		}
	}
	return false
}

// candidateTypeArgs proposes instantiations of the generic matcher for t:
// t's own type arguments when the counts line up, and arguments inferred
// from the methods t shares with the matcher interface.
func (p *Predicate) candidateTypeArgs(t types.Type, named *types.Named) [][]types.Type {
	tparams := p.matcher.Named().TypeParams()
	var candidates [][]types.Type

	if named != nil && named.TypeArgs().Len() == tparams.Len() {
		args := make([]types.Type, tparams.Len())
		for i := range args {
			args[i] = named.TypeArgs().At(i)
		}
		candidates = append(candidates, args)
	}

	inferred := make([]types.Type, tparams.Len())
	iface := p.matcher.Interface()
	mset := types.NewMethodSet(t)
	if _, ok := t.Underlying().(*types.Interface); !ok {
		if _, isPtr := t.(*types.Pointer); !isPtr {
			mset = types.NewMethodSet(types.NewPointer(t))
		}
	}
	for i := 0; i < iface.NumMethods(); i++ {
		want := iface.Method(i)
		sel := mset.Lookup(want.Pkg(), want.Name())
		if sel == nil {
			continue
		}
		wantParams := want.Signature().Params()
		gotParams := sel.Obj().(*types.Func).Signature().Params()
		if wantParams.Len() != gotParams.Len() {
			continue
		}
		for j := 0; j < wantParams.Len(); j++ {
			tp, ok := types.Unalias(wantParams.At(j).Type()).(*types.TypeParam)
			if ok && inferred[tp.Index()] == nil {
				inferred[tp.Index()] = gotParams.At(j).Type()
			}
		}
	}
	if !slices.Contains(inferred, nil) {
		candidates = append(candidates, inferred)
	}
	return candidates
}

func isStringSlice(t types.Type) bool {
	slice, ok := t.Underlying().(*types.Slice)
	if !ok {
		return false
	}
	basic, ok := slice.Elem().Underlying().(*types.Basic)
	return ok && basic.Kind() == types.String
}

// hasFieldFold reports whether key names an exported field, ignoring case
func hasFieldFold(fields map[string]*types.Var, key string) bool {
	for name, field := range fields {
		if field.Exported() && strings.EqualFold(name, key) {
			return true
		}
	}
	return false
}

// Package factory discovers matcher factory functions in a loaded package and
// describes them for sugar generation.
//
//	reader := factory.NewReader(pkg, "gwt")
//	for method, err := range reader.Methods() {
//		...
//	}
//
// A function is a factory when it is exported, has no receiver, carries the
// marker directive (//hamcrest::factory by default), is not excluded for the
// reader's target and returns the matcher capability, optionally followed by
// error results. The marker type and the matcher capability are resolved by
// name from the loaded type information, never imported.
//
// Methods are reported in the order loader.Package.Functions lists them.
// That order is stable for one load but is not a contract: other loaders may
// enumerate functions differently, so compare results as sets.
package factory

import (
	"iter"

	"github.com/toyz/matchgen/internal/annotations"
	"github.com/toyz/matchgen/internal/loader"
	"github.com/toyz/matchgen/internal/models"
	"github.com/toyz/matchgen/internal/resolver"
)

// Reader reads the factory methods of one package for one generation target
type Reader struct {
	pkg         *loader.Package
	target      string
	resolver    resolver.Resolver
	parser      *annotations.Parser
	markerName  string
	matcherName string
	accessor    string
	logger      Logger
}

// NewReader creates a reader for pkg. target is the generation target whose
// exclusions apply.
func NewReader(pkg *loader.Package, target string, opts ...Option) *Reader {
	r := &Reader{
		pkg:         pkg,
		target:      target,
		parser:      annotations.NewParser(annotations.DefaultNamespace),
		markerName:  DefaultMarker,
		matcherName: DefaultMatcher,
		accessor:    DefaultAccessor,
		logger:      nopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.resolver == nil {
		r.resolver = resolver.NewPackageResolver(pkg.Universe()...)
	}
	return r
}

// Target returns the generation target
func (r *Reader) Target() string {
	return r.target
}

// Predicate resolves the capabilities and returns the factory predicate
func (r *Reader) Predicate() (*Predicate, error) {
	return newPredicate(r.pkg, r.target, r.parser, r.resolver, r.markerName, r.matcherName, r.accessor)
}

// Methods returns a lazy sequence of the package's factory methods. Each
// call starts a fresh scan. A fatal error is yielded once with a zero
// FactoryMethod and ends the sequence.
func (r *Reader) Methods() iter.Seq2[models.FactoryMethod, error] {
	return func(yield func(models.FactoryMethod, error) bool) {
		pred, err := r.Predicate()
		if err != nil {
			yield(models.FactoryMethod{}, err)
			return
		}

		for _, fn := range r.pkg.Functions() {
			ok, failed, err := pred.Accept(fn)
			if err != nil {
				yield(models.FactoryMethod{}, err)
				return
			}
			if !ok {
				r.logger.Debug("skipping %s.%s: %s", r.pkg.Path, fn.Name(), failed)
				continue
			}

			method := Describe(fn)
			r.logger.Verbose("factory method %s", method.QualifiedName())
			if !yield(method, nil) {
				return
			}
		}
	}
}

// All collects every factory method. On error no methods are returned.
func (r *Reader) All() ([]models.FactoryMethod, error) {
	methods := make([]models.FactoryMethod, 0)
	for method, err := range r.Methods() {
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	return methods, nil
}

// Cursor returns a pull style cursor over a fresh scan
func (r *Reader) Cursor() *Cursor {
	return newCursor(r.Methods())
}

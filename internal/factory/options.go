package factory

import (
	"github.com/toyz/matchgen/internal/annotations"
	"github.com/toyz/matchgen/internal/resolver"
)

const (
	// DefaultMarker is the marker type a factory directive refers to
	DefaultMarker = "github.com/toyz/matchgen/pkg/hamcrest.Factory"
	// DefaultMatcher is the capability a factory must return
	DefaultMatcher = "github.com/toyz/matchgen/pkg/hamcrest.Matcher"
	// DefaultAccessor is the marker field listing excluded targets
	DefaultAccessor = "Excludes"
)

// Logger receives scan progress. It is satisfied by utils.DiagnosticSystem.
type Logger interface {
	Debug(format string, args ...interface{})
	Verbose(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{})   {}
func (nopLogger) Verbose(string, ...interface{}) {}

// Option configures a Reader
type Option func(*Reader)

// WithResolver replaces the resolver built from the scanned package imports
func WithResolver(r resolver.Resolver) Option {
	return func(rd *Reader) {
		rd.resolver = r
	}
}

// WithMarker sets the fully qualified name of the marker type
func WithMarker(qualifiedName string) Option {
	return func(rd *Reader) {
		rd.markerName = qualifiedName
	}
}

// WithMatcher sets the fully qualified name of the matcher capability
func WithMatcher(qualifiedName string) Option {
	return func(rd *Reader) {
		rd.matcherName = qualifiedName
	}
}

// WithAccessor sets the marker field that lists excluded targets
func WithAccessor(field string) Option {
	return func(rd *Reader) {
		rd.accessor = field
	}
}

// WithNamespace sets the directive namespace
func WithNamespace(namespace string) Option {
	return func(rd *Reader) {
		rd.parser = annotations.NewParser(namespace)
	}
}

// WithLogger sets the logger
func WithLogger(l Logger) Option {
	return func(rd *Reader) {
		if l != nil {
			rd.logger = l
		}
	}
}

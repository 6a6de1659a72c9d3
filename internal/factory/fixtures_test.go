package factory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toyz/matchgen/internal/loader"
)

const (
	corePath     = "github.com/toyz/matchgen/pkg/hamcrest"
	matchersPath = "example.com/matchers"
	matcherType  = corePath + ".Matcher"
)

const coreSource = `package hamcrest

type Description interface {
	AppendText(text string) Description
}

type Matcher[T any] interface {
	Matches(actual T) bool
	DescribeTo(description Description)
}

type Factory struct {
	Excludes []string
}
`

const matchersSource = `package matchers

import "github.com/toyz/matchgen/pkg/hamcrest"

type Ordered interface{ ~int | ~float64 | ~string }

type Named interface{ Name() string }

type Describer interface{ Describe() string }

type ParseError struct{}

func (*ParseError) Error() string { return "parse error" }

type isEqual[T comparable] struct{ want T }

func (m *isEqual[T]) Matches(actual T) bool               { return m.want == actual }
func (m *isEqual[T]) DescribeTo(d hamcrest.Description) {}

type emptyString struct{}

func (emptyString) Matches(actual string) bool           { return actual == "" }
func (emptyString) DescribeTo(d hamcrest.Description) {}

// EqualToIgnoringCase matches strings regardless of case.
//
//hamcrest::factory
func EqualToIgnoringCase(s string) hamcrest.Matcher[string] { return nil }

//hamcrest::factory
func EqualTo[T comparable](v T) hamcrest.Matcher[T] { return &isEqual[T]{want: v} }

//hamcrest::factory
func Between[T Ordered](lo, hi T) hamcrest.Matcher[T] { return nil }

//hamcrest::factory
func Both[T interface {
	Named
	Describer
}](a T) hamcrest.Matcher[T] {
	return nil
}

//hamcrest::factory
func AnyOf[T any](first hamcrest.Matcher[T], rest ...hamcrest.Matcher[T]) hamcrest.Matcher[T] {
	return nil
}

//hamcrest::factory
func HasItems(grid [][]string, items ...string) hamcrest.Matcher[[]string] { return nil }

//hamcrest::factory
func Pattern(expr string) (hamcrest.Matcher[string], error) { return nil, nil }

//hamcrest::factory
func Parsed(text string) (hamcrest.Matcher[string], *ParseError, error) { return nil, nil, nil }

//hamcrest::factory
func IsEmptyString() *emptyString { return &emptyString{} }

//hamcrest::factory
func SameAs[T comparable](v T) *isEqual[T] { return &isEqual[T]{want: v} }

//hamcrest::factory -excludes=gwt
func MatchesRegex(expr string) hamcrest.Matcher[string] { return nil }

//hamcrest::factory -excludes=js,android
func OnlyGWT() hamcrest.Matcher[int] { return nil }

// Unmarked has no directive.
func Unmarked() hamcrest.Matcher[string] { return nil }

//hamcrest::factory
func unexported() hamcrest.Matcher[string] { return nil }

//hamcrest::factory
func NotAMatcher() string { return "" }

//hamcrest::factory
func NoResult() {}

//hamcrest::factory
func TwoMatchers() (hamcrest.Matcher[int], hamcrest.Matcher[int]) { return nil, nil }

//wire::core
func OtherTool() hamcrest.Matcher[int] { return nil }

type Builder struct{}

//hamcrest::factory
func (Builder) Instance() hamcrest.Matcher[int] { return nil }
`

// acceptedForGWT lists the factory methods of matchersSource for target gwt
var acceptedForGWT = []string{
	"EqualToIgnoringCase",
	"EqualTo",
	"Between",
	"Both",
	"AnyOf",
	"HasItems",
	"Pattern",
	"Parsed",
	"IsEmptyString",
	"SameAs",
	"OnlyGWT",
}

func loadPackage(t *testing.T, sources loader.Sources, path string) *loader.Package {
	t.Helper()
	pkgs, err := loader.LoadSources(sources)
	require.NoError(t, err)
	pkg, ok := pkgs[path]
	require.True(t, ok, path)
	return pkg
}

func loadMatchers(t *testing.T) *loader.Package {
	t.Helper()
	return loadPackage(t, loader.Sources{
		corePath:     {"hamcrest.go": coreSource},
		matchersPath: {"matchers.go": matchersSource},
	}, matchersPath)
}

// withMatchers loads matchersSrc as the matchers package against coreSrc
func withMatchers(t *testing.T, coreSrc, matchersSrc string) *loader.Package {
	t.Helper()
	return loadPackage(t, loader.Sources{
		corePath:     {"hamcrest.go": coreSrc},
		matchersPath: {"matchers.go": matchersSrc},
	}, matchersPath)
}

package factory

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/matchgen/internal/models"
)

func lookupFunc(t *testing.T, name string) *types.Func {
	t.Helper()
	fn, ok := loadMatchers(t).Types.Scope().Lookup(name).(*types.Func)
	require.True(t, ok, name)
	return fn
}

func TestDescribe(t *testing.T) {
	matcherOf := func(arg string) string { return matcherType + "[" + arg + "]" }

	tests := []struct {
		name     string
		expected models.FactoryMethod
	}{
		{
			name: "EqualToIgnoringCase",
			expected: models.FactoryMethod{
				DeclaringType:  matchersPath,
				Name:           "EqualToIgnoringCase",
				ReturnType:     matcherType,
				GenerifiedType: "string",
				TypeParameters: []string{},
				Parameters:     []models.Parameter{{Type: "string", Name: "param1"}},
				Exceptions:     []string{},
			},
		},
		{
			name: "EqualTo",
			expected: models.FactoryMethod{
				DeclaringType:  matchersPath,
				Name:           "EqualTo",
				ReturnType:     matcherType,
				GenerifiedType: "T",
				TypeParameters: []string{"T extends comparable"},
				Parameters:     []models.Parameter{{Type: "T", Name: "param1"}},
				Exceptions:     []string{},
			},
		},
		{
			name: "Between",
			expected: models.FactoryMethod{
				DeclaringType:  matchersPath,
				Name:           "Between",
				ReturnType:     matcherType,
				GenerifiedType: "T",
				TypeParameters: []string{"T extends example.com/matchers.Ordered"},
				Parameters:     []models.Parameter{{Type: "T", Name: "param1"}, {Type: "T", Name: "param2"}},
				Exceptions:     []string{},
			},
		},
		{
			name: "Both",
			expected: models.FactoryMethod{
				DeclaringType:  matchersPath,
				Name:           "Both",
				ReturnType:     matcherType,
				GenerifiedType: "T",
				TypeParameters: []string{"T extends example.com/matchers.Named & example.com/matchers.Describer"},
				Parameters:     []models.Parameter{{Type: "T", Name: "param1"}},
				Exceptions:     []string{},
			},
		},
		{
			name: "AnyOf",
			expected: models.FactoryMethod{
				DeclaringType:  matchersPath,
				Name:           "AnyOf",
				ReturnType:     matcherType,
				GenerifiedType: "T",
				TypeParameters: []string{"T"},
				Parameters: []models.Parameter{
					{Type: matcherOf("T"), Name: "param1"},
					{Type: matcherOf("T") + "...", Name: "param2"},
				},
				Exceptions: []string{},
			},
		},
		{
			name: "HasItems",
			expected: models.FactoryMethod{
				DeclaringType:  matchersPath,
				Name:           "HasItems",
				ReturnType:     matcherType,
				GenerifiedType: "string[]",
				TypeParameters: []string{},
				Parameters: []models.Parameter{
					{Type: "string[][]", Name: "param1"},
					{Type: "string...", Name: "param2"},
				},
				Exceptions: []string{},
			},
		},
		{
			name: "Pattern",
			expected: models.FactoryMethod{
				DeclaringType:  matchersPath,
				Name:           "Pattern",
				ReturnType:     matcherType,
				GenerifiedType: "string",
				TypeParameters: []string{},
				Parameters:     []models.Parameter{{Type: "string", Name: "param1"}},
				Exceptions:     []string{"error"},
			},
		},
		{
			name: "Parsed",
			expected: models.FactoryMethod{
				DeclaringType:  matchersPath,
				Name:           "Parsed",
				ReturnType:     matcherType,
				GenerifiedType: "string",
				TypeParameters: []string{},
				Parameters:     []models.Parameter{{Type: "string", Name: "param1"}},
				Exceptions:     []string{"*example.com/matchers.ParseError", "error"},
			},
		},
		{
			name: "IsEmptyString",
			expected: models.FactoryMethod{
				DeclaringType:  matchersPath,
				Name:           "IsEmptyString",
				ReturnType:     "example.com/matchers.emptyString",
				TypeParameters: []string{},
				Parameters:     []models.Parameter{},
				Exceptions:     []string{},
			},
		},
		{
			name: "SameAs",
			expected: models.FactoryMethod{
				DeclaringType:  matchersPath,
				Name:           "SameAs",
				ReturnType:     "example.com/matchers.isEqual",
				GenerifiedType: "T",
				TypeParameters: []string{"T extends comparable"},
				Parameters:     []models.Parameter{{Type: "T", Name: "param1"}},
				Exceptions:     []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := lookupFunc(t, tt.name)
			method := Describe(fn)

			assert.Equal(t, tt.expected, method)
			assert.Len(t, method.Parameters, fn.Signature().Params().Len())
			assert.Len(t, method.TypeParameters, fn.Signature().TypeParams().Len())
		})
	}
}

func TestDescribeGenerified(t *testing.T) {
	assert.True(t, Describe(lookupFunc(t, "EqualToIgnoringCase")).IsGenerified())
	assert.False(t, Describe(lookupFunc(t, "IsEmptyString")).IsGenerified())
	assert.True(t, Describe(lookupFunc(t, "SameAs")).IsGenerified())
}

func TestTypeParameter(t *testing.T) {
	pkg := withMatchers(t, coreSource, `package matchers

type A interface{ A() }

type B interface{ B() }

func F[
	Top any,
	Empty interface{},
	One A,
	Two interface{ A; B },
	Union ~int | ~string,
	Method interface{ M() },
	Mixed interface{ A; any },
]() {
}
`)
	fn := pkg.Types.Scope().Lookup("F").(*types.Func)
	tparams := fn.Signature().TypeParams()

	expected := []string{
		"Top",
		"Empty",
		"One extends example.com/matchers.A",
		"Two extends example.com/matchers.A & example.com/matchers.B",
		"Union extends ~int | ~string",
		"Method extends interface{M()}",
		"Mixed extends example.com/matchers.A",
	}
	require.Equal(t, len(expected), tparams.Len())
	for i, want := range expected {
		assert.Equal(t, want, TypeParameter(tparams.At(i)))
	}
}

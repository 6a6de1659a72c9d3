package loader

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/matchgen/internal/errors"
)

var testSources = Sources{
	"example.com/core": {
		"core.go": `package core

type Matcher[T any] interface{ Matches(T) bool }
`,
	},
	"example.com/lib": {
		"b.go": `package lib

import "example.com/core"

// Zeta is documented.
func Zeta() core.Matcher[int] { return nil }

type Thing struct{}

// Describe is a method.
func (Thing) Describe() string { return "" }
`,
		"a.go": `package lib

// Alpha is documented.
func Alpha() {}

func undocumented() {}
`,
	},
}

func TestLoadSources(t *testing.T) {
	pkgs, err := LoadSources(testSources)
	require.NoError(t, err)
	require.Len(t, pkgs, 2)

	lib := pkgs["example.com/lib"]
	require.NotNil(t, lib)
	assert.Equal(t, "lib", lib.Name)
	assert.Equal(t, "example.com/lib", lib.Path)

	// the imported core package is the same object as the loaded one
	assert.Same(t, pkgs["example.com/core"].Types, lib.Types.Imports()[0])
}

func TestFunctions(t *testing.T) {
	pkgs, err := LoadSources(testSources)
	require.NoError(t, err)
	lib := pkgs["example.com/lib"]

	var names []string
	for _, fn := range lib.Functions() {
		names = append(names, fn.Name())
	}
	assert.ElementsMatch(t, []string{"Alpha", "Zeta", "undocumented", "Describe"}, names)
	// methods follow package level functions
	assert.Equal(t, "Describe", names[len(names)-1])
}

func TestDocAndPosition(t *testing.T) {
	pkgs, err := LoadSources(testSources)
	require.NoError(t, err)
	lib := pkgs["example.com/lib"]

	for _, fn := range lib.Functions() {
		switch fn.Name() {
		case "Alpha", "Zeta", "Describe":
			doc := lib.Doc(fn)
			require.NotNil(t, doc, fn.Name())
			assert.Contains(t, doc.Text(), "is")
		case "undocumented":
			assert.Nil(t, lib.Doc(fn))
		}
		assert.NotEmpty(t, lib.Position(fn).Filename)
	}
}

func TestImportsClosure(t *testing.T) {
	pkgs, err := LoadSources(testSources)
	require.NoError(t, err)

	var paths []string
	for _, pkg := range pkgs["example.com/lib"].Imports() {
		paths = append(paths, pkg.Path())
	}
	assert.Equal(t, []string{"example.com/lib", "example.com/core"}, paths)
}

func TestLoadSourcesErrors(t *testing.T) {
	tests := []struct {
		name    string
		sources Sources
	}{
		{
			name:    "syntax error",
			sources: Sources{"example.com/bad": {"bad.go": "package bad\nfunc ("}},
		},
		{
			name:    "type error",
			sources: Sources{"example.com/bad": {"bad.go": "package bad\nvar x int = \"s\""}},
		},
		{
			name: "import cycle",
			sources: Sources{
				"example.com/a": {"a.go": "package a\nimport _ \"example.com/b\""},
				"example.com/b": {"b.go": "package b\nimport _ \"example.com/a\""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSources(tt.sources)
			require.Error(t, err)

			var loadErr *errors.LoadError
			assert.True(t, stderrors.As(err, &loadErr))
			assert.True(t, errors.IsFatal(err))
		})
	}
}

func TestUniverse(t *testing.T) {
	pkgs, err := LoadSources(Sources{
		"example.com/core":    {"core.go": "package core\n\ntype Matcher interface{ Matches(any) bool }\n"},
		"example.com/helpers": {"helpers.go": "package helpers\n\nfunc Trim(s string) string { return s }\n"},
	})
	require.NoError(t, err)

	helpers := pkgs["example.com/helpers"]
	var paths []string
	for _, pkg := range helpers.Universe() {
		paths = append(paths, pkg.Path())
	}
	assert.Equal(t, []string{"example.com/core", "example.com/helpers"}, paths)
	assert.Len(t, helpers.Imports(), 1)

	// a package built outside a load sees its own imports only
	standalone := newPackage(helpers.Fset, helpers.Types, helpers.Syntax, helpers.Info)
	assert.Equal(t, helpers.Imports(), standalone.Universe())
}

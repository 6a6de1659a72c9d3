package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGoMod = `module example.com/matchers

go 1.25

require (
	github.com/toyz/matchgen v0.3.0
	github.com/stretchr/testify v1.11.1
)
`

func TestParseGoMod(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "go.mod")
	require.NoError(t, os.WriteFile(path, []byte(testGoMod), 0o644))

	info, err := ParseGoMod(path)
	require.NoError(t, err)
	assert.Equal(t, "example.com/matchers", info.Path)
	assert.Equal(t, []string{"github.com/toyz/matchgen", "github.com/stretchr/testify"}, info.Requires)

	assert.True(t, info.Provides("github.com/toyz/matchgen/pkg/hamcrest"))
	assert.True(t, info.Provides("example.com/matchers/text"))
	assert.False(t, info.Provides("github.com/toyz/matchgenx/pkg"))
	assert.False(t, info.Provides("example.com/other"))
}

func TestParseGoModErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ParseGoMod(filepath.Join(dir, "other.mod"))
	assert.ErrorContains(t, err, "not a go.mod file")

	_, err = ParseGoMod(filepath.Join(dir, "go.mod"))
	assert.ErrorContains(t, err, "failed to read")

	bad := filepath.Join(dir, "go.mod")
	require.NoError(t, os.WriteFile(bad, []byte("go 1.25\n"), 0o644))
	_, err = ParseGoMod(bad)
	assert.ErrorContains(t, err, "no module declaration")
}

func TestFindGoModFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte(testGoMod), 0o644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindGoModFile(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "go.mod"), found)
}

package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExample(t *testing.T) {
	text, source, err := Load("")

	assert.NoError(t, err)
	assert.Equal(t, ExampleName, source)
	assert.Contains(t, text, "sol sol sol re# fa fa fa re")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "score.txt")
	require.NoError(t, os.WriteFile(path, []byte("do re mi\n"), 0644))

	text, source, err := Load(path)

	assert.NoError(t, err)
	assert.Equal(t, path, source)
	assert.Equal(t, "do re mi\n", text)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "could not read score")
}

package massfmt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/crosslocale/internal/jsonutil"
)

func TestFormatBytesPrettyPrintsPreservingKeyOrder(t *testing.T) {
	indent := 2
	out, err := FormatBytes([]byte(`{"b":1,"a":2}`), jsonutil.FormatterConfig{Indent: &indent})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": 2\n}\n", string(out))
}

func TestFormatBytesCompact(t *testing.T) {
	out, err := FormatBytes([]byte(`{ "a" :  [1,2,   3] }`), jsonutil.FormatterConfig{})
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":[1,2,3]}\n", string(out))
}

func TestFormatBytesAppendsMissingTrailingNewline(t *testing.T) {
	out, err := FormatBytes([]byte(`"x"`), jsonutil.FormatterConfig{})
	require.NoError(t, err)
	assert.Equal(t, "\"x\"\n", string(out))
}

func TestFormatBytesRejectsInvalidJSON(t *testing.T) {
	_, err := FormatBytes([]byte(`{not json`), jsonutil.FormatterConfig{})
	assert.Error(t, err)
}

func TestCollectInputsWalksDirectoriesRecursively(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "nested", "b.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "c.txt"), []byte(`not json`), 0o644))

	paths, err := CollectInputs([]string{root})
	require.NoError(t, err)
	require.Len(t, paths, 2)
}

func TestRunInPlaceReformatsAndCountsErrors(t *testing.T) {
	root := t.TempDir()
	goodPath := filepath.Join(root, "good.json")
	badPath := filepath.Join(root, "bad.json")
	require.NoError(t, os.WriteFile(goodPath, []byte(`{"z":1,"a":2}`), 0o644))
	require.NoError(t, os.WriteFile(badPath, []byte(`not json`), 0o644))

	indent := 2
	result, err := Run([]string{root}, Options{
		InPlace: true,
		Config:  jsonutil.FormatterConfig{Indent: &indent},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.FormattedCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, badPath, result.Errors[0].Path)

	rewritten, err := os.ReadFile(goodPath)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"z\": 1,\n  \"a\": 2\n}\n", string(rewritten))

	untouched, err := os.ReadFile(badPath)
	require.NoError(t, err)
	assert.Equal(t, "not json", string(untouched))
}

func TestRunOutputDirMirrorsRelativeStructure(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "nested", "b.json"), []byte(`{"k":"v"}`), 0o644))

	outDir := t.TempDir()
	result, err := Run([]string{root}, Options{OutputDir: outDir})
	require.NoError(t, err)
	assert.Equal(t, 1, result.FormattedCount)
	assert.Empty(t, result.Errors)

	out, err := os.ReadFile(filepath.Join(outDir, "nested", "b.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\"k\":\"v\"}\n", string(out))
}

package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/crosslocale/internal/clerrors"
)

func TestNewUnknownSplitterID(t *testing.T) {
	_, err := New("does-not-exist")
	require.Error(t, err)
	assert.True(t, clerrors.Is(err, clerrors.CodeUnknownSplitter))
}

func TestMonolithicFileAlwaysTranslation(t *testing.T) {
	s, err := New(IDMonolithicFile)
	require.NoError(t, err)
	path, ok := s.TrFileForEntireGameFile("", "data/lang/sc/gui.en_US.json")
	assert.True(t, ok)
	assert.Equal(t, "translation", path)
}

func TestSameFileTreeStripsAssetRootAndExtension(t *testing.T) {
	s := SameFileTree{}
	path, ok := s.TrFileForEntireGameFile("extension/scorpion-robo/", "extension/scorpion-robo/data/gui.json")
	assert.True(t, ok)
	assert.Equal(t, "data/gui", path)
}

func TestLmFileTreeDropsDataPrefix(t *testing.T) {
	s := LmFileTree{}
	path, ok := s.TrFileForEntireGameFile("", "data/lang/sc/gui.en_US.json")
	assert.True(t, ok)
	assert.Equal(t, "lang/sc/gui.en_US", path)
}

func TestNotabenoidChaptersKnownBuckets(t *testing.T) {
	s := NotabenoidChapters{}
	cases := map[string]string{
		"data/lang/sc/gui.en_US.json":  "lang",
		"data/database.json":           "database",
		"data/item-database.json":      "item-database",
		"data/maps/rookie-harbor/x.js": "rookie-harbor",
		"data/areas/arid.json":         "arid",
		"data/unknown-thing.json":      "etc",
		"other/thing.json":             "etc",
	}
	for input, want := range cases {
		path, ok := s.TrFileForEntireGameFile("", input)
		assert.True(t, ok)
		assert.Equal(t, want, path, input)
	}
}

func TestNextGenerationExtensionManifest(t *testing.T) {
	s := NextGeneration{}
	path, ok := s.TrFileForEntireGameFile("extension/scorpion-robo/", "extension/scorpion-robo/scorpion-robo.json")
	assert.True(t, ok)
	assert.Equal(t, "extensions", path)
}

func TestNextGenerationKnownTopLevelBuckets(t *testing.T) {
	s := NextGeneration{}
	path, ok := s.TrFileForEntireGameFile("", "data/enemies/foo.json")
	assert.True(t, ok)
	assert.Equal(t, "data/enemies", path)
}

func TestNextGenerationDatabaseRefusesWholeFile(t *testing.T) {
	s := NextGeneration{}
	_, ok := s.TrFileForEntireGameFile("", "data/database.json")
	assert.False(t, ok)
}

func TestNextGenerationDatabaseFragmentRouting(t *testing.T) {
	s := NextGeneration{}
	path := s.TrFileForFragment("", "data/database.json", "enemies/foo/0")
	assert.Equal(t, "data/database/enemies", path)
}

func TestNextGenerationFallsBackToSameFileTree(t *testing.T) {
	s := NextGeneration{}
	path, ok := s.TrFileForEntireGameFile("", "data/some-other-thing.json")
	assert.True(t, ok)
	assert.Equal(t, "data/some-other-thing", path)
}

func TestAllIDsConstructSuccessfully(t *testing.T) {
	for _, id := range IDs() {
		s, err := New(id)
		require.NoError(t, err)
		assert.Equal(t, id, s.ID())
	}
}

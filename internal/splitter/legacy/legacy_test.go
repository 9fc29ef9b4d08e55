package legacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnknownID(t *testing.T) {
	_, err := New("nope")
	assert.Error(t, err)
}

func TestNotabenoidChaptersRecognizesBareExtensionComponent(t *testing.T) {
	s := NotabenoidChapters{}
	path, ok := s.TrFileForEntireGameFile("extension/scorpion-robo/scorpion-robo.json")
	assert.True(t, ok)
	assert.Equal(t, "extension", path)
}

func TestNotabenoidChaptersMatchesCurrentGenerationOnSharedPaths(t *testing.T) {
	s := NotabenoidChapters{}
	path, ok := s.TrFileForEntireGameFile("data/database.json")
	assert.True(t, ok)
	assert.Equal(t, "database", path)
}

func TestSameFileTreeHasNoAssetRootParameter(t *testing.T) {
	s := SameFileTree{}
	path, ok := s.TrFileForEntireGameFile("data/gui.json")
	assert.True(t, ok)
	assert.Equal(t, "data/gui", path)
}

func TestAllLegacyIDsConstruct(t *testing.T) {
	for _, id := range []string{IDMonolithicFile, IDSameFileTree, IDNotabenoidChapter} {
		s, err := New(id)
		require.NoError(t, err)
		assert.Equal(t, id, s.ID())
	}
}

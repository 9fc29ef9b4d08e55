package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseWriteThenOpenRoundTrips(t *testing.T) {
	db := NewDatabase("1.4.2-4226", 1700000000)
	db.Meta.ExtractedLocales = []string{"en_US", "de_DE"}

	file := db.NewFile("", "data/gui.json", false)
	file.NewFragment("title", 42, []string{"Window title"}, map[string]string{"en_US": "Hello", "de_DE": "Hallo"})

	extFile := db.NewFile("extension/scorpion-robo/", "extension/scorpion-robo/data/lang/sc.en_US.json", true)
	extFile.NewFragment("labels/greeting", 0, nil, map[string]string{"en_US": "Hi"})

	dir := t.TempDir()
	path := filepath.Join(dir, "scan.json")
	require.NoError(t, Write(db, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, len(raw) > 0 && raw[len(raw)-1] == '\n')

	reopened, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, db.Meta.UUID, reopened.Meta.UUID)
	assert.Equal(t, db.Meta.GameVersion, reopened.Meta.GameVersion)
	assert.Equal(t, db.Meta.ExtractedLocales, reopened.Meta.ExtractedLocales)
	assert.Equal(t, db.ModificationTimestamp, reopened.ModificationTimestamp)
	require.Equal(t, []string{"data/gui.json", "extension/scorpion-robo/data/lang/sc.en_US.json"}, reopened.GameFiles.Keys())

	reGui, ok := reopened.GameFiles.Get("data/gui.json")
	require.True(t, ok)
	assert.False(t, reGui.IsLangFile)
	reFrag, ok := reGui.Fragments.Get("title")
	require.True(t, ok)
	assert.Equal(t, int32(42), reFrag.LangUID)
	assert.Equal(t, []string{"Window title"}, reFrag.Description)
	assert.Equal(t, "Hello", reFrag.Text["en_US"])
	assert.Equal(t, "Hallo", reFrag.Text["de_DE"])

	reExt, ok := reopened.GameFiles.Get("extension/scorpion-robo/data/lang/sc.en_US.json")
	require.True(t, ok)
	assert.True(t, reExt.IsLangFile)
	assert.Equal(t, "extension/scorpion-robo/", reExt.AssetRoot)
}

func TestDatabaseOpenAcceptsSimplerShapeMissingOptionalFields(t *testing.T) {
	const simple = `{
  "uuid": "00000000-0000-0000-0000-000000000000",
  "creation_timestamp": 1699999999,
  "game_version": "1.4.2-4226",
  "files": {
    "data/gui.json": {
      "is_lang_file": false,
      "fragments": {
        "title": {
          "lang_uid": 0,
          "description": [],
          "text": {"en_US": "Hi"}
        }
      }
    }
  }
}`
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.json")
	require.NoError(t, os.WriteFile(path, []byte(simple), 0o644))

	db, err := Open(path)
	require.NoError(t, err)
	assert.Nil(t, db.Meta.ExtractedLocales)
	assert.Equal(t, int64(1699999999), db.ModificationTimestamp)

	file, ok := db.GameFiles.Get("data/gui.json")
	require.True(t, ok)
	frag, ok := file.Fragments.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Hi", frag.Text["en_US"])
}

func TestDatabaseOpenRejectsMissingFilesField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"uuid":"x"}`), 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}

package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSampleProject(t *testing.T, rootDir string) *Project {
	t.Helper()
	p := New(rootDir, Meta{
		ID:                "proj-1",
		CreationTimestamp: 1000,
		GameVersion:       "1.4.2-4226",
		OriginalLocale:    "en_US",
		ReferenceLocales:  []string{"de_DE"},
		TranslationLocale: "ru_RU",
		TranslationsDir:   "translations",
		SplitterID:        "monolithic-file",
	})
	tf := p.NewTrFile("translation.json", 1000)
	frag, err := p.NewFragment(tf, "data/lang/sc/gui.en_US.json", "labels/title", 1000)
	require.NoError(t, err)
	frag.SetOriginalText("Hello\nworld\n")
	frag.ReferenceTexts["de_DE"] = "Hallo\n"
	frag.AddTranslation("alice", "Привет\n", 1100)
	frag.AddComment("bob", "needs review", 1150)
	return p
}

func TestWriteThenOpenRoundTrips(t *testing.T) {
	rootDir := t.TempDir()
	p := buildSampleProject(t, rootDir)

	require.NoError(t, p.Write())
	assert.False(t, p.IsDirty())

	reopened, err := Open(rootDir)
	require.NoError(t, err)

	assert.Equal(t, p.Meta, reopened.Meta)
	require.Equal(t, []string{"translation.json"}, reopened.TrFiles.Keys())

	frag, ok := reopened.Fragment("data/lang/sc/gui.en_US.json", "labels/title")
	require.True(t, ok)
	assert.Equal(t, "Hello\nworld\n", frag.OriginalText)
	assert.Equal(t, "Hallo\n", frag.ReferenceTexts["de_DE"])
	require.Len(t, frag.Translations, 1)
	assert.Equal(t, "Привет\n", frag.Translations[0].Text)
	require.Len(t, frag.Comments, 1)
	assert.Equal(t, "needs review", frag.Comments[0].Text)

	vgf := reopened.GetOrCreateVirtualGameFile("data/lang/sc/gui.en_US.json")
	vgfFrag, ok := vgf.FragmentByJSONPath("labels/title")
	require.True(t, ok)
	assert.Same(t, frag, vgfFrag)
}

func TestOpenRejectsUnknownSplitterID(t *testing.T) {
	rootDir := t.TempDir()
	metaPath := filepath.Join(rootDir, MetaFileName)
	require.NoError(t, os.WriteFile(metaPath, []byte(`{
		"id": "proj-1",
		"creation_timestamp": 1000,
		"modification_timestamp": 1000,
		"game_version": "1.4.2-4226",
		"original_locale": "en_US",
		"reference_locales": [],
		"translation_locale": "ru_RU",
		"translations_dir": "translations",
		"splitter": "not-a-real-splitter",
		"tr_files": []
	}`), 0o644))

	_, err := Open(rootDir)
	require.Error(t, err)
}

func TestOpenRejectsDuplicateFragmentAcrossTrFiles(t *testing.T) {
	rootDir := t.TempDir()
	translationsDir := filepath.Join(rootDir, "translations")
	require.NoError(t, os.MkdirAll(translationsDir, 0o755))

	metaPath := filepath.Join(rootDir, MetaFileName)
	require.NoError(t, os.WriteFile(metaPath, []byte(`{
		"id": "proj-1",
		"creation_timestamp": 1000,
		"modification_timestamp": 1000,
		"game_version": "1.4.2-4226",
		"original_locale": "en_US",
		"reference_locales": [],
		"translation_locale": "ru_RU",
		"translations_dir": "translations",
		"splitter": "same-file-tree",
		"tr_files": ["a.json", "b.json"]
	}`), 0o644))

	trFileBody := `{
		"id": "tf-1",
		"creation_timestamp": 1000,
		"modification_timestamp": 1000,
		"game_file_chunks": {
			"data/database.json": {
				"is_lang_file": false,
				"fragments": {
					"enemies/0": { "id": "frag-1", "original_text": ["Hi"] }
				}
			}
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(translationsDir, "a.json"), []byte(trFileBody), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(translationsDir, "b.json"), []byte(trFileBody), 0o644))

	_, err := Open(rootDir)
	require.Error(t, err)
}

func TestOpenAcceptsLegacySplittingStrategyField(t *testing.T) {
	rootDir := t.TempDir()
	metaPath := filepath.Join(rootDir, MetaFileName)
	require.NoError(t, os.WriteFile(metaPath, []byte(`{
		"id": "proj-1",
		"creation_timestamp": 1000,
		"modification_timestamp": 1000,
		"game_version": "1.4.2-4226",
		"original_locale": "en_US",
		"reference_locales": [],
		"translation_locale": "ru_RU",
		"translations_dir": "translations",
		"splitting_strategy": "monolithic-file",
		"tr_files": []
	}`), 0o644))

	p, err := Open(rootDir)
	require.NoError(t, err)
	assert.Equal(t, "monolithic-file", p.Meta.SplitterID)

	require.NoError(t, p.Write())
	raw, err := os.ReadFile(metaPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"splitter": "monolithic-file"`)
	assert.NotContains(t, string(raw), "splitting_strategy")
}

func TestOpenRejectsUnknownLegacySplittingStrategyID(t *testing.T) {
	rootDir := t.TempDir()
	metaPath := filepath.Join(rootDir, MetaFileName)
	require.NoError(t, os.WriteFile(metaPath, []byte(`{
		"id": "proj-1",
		"translations_dir": "translations",
		"splitting_strategy": "not-a-real-strategy",
		"tr_files": []
	}`), 0o644))

	_, err := Open(rootDir)
	require.Error(t, err)
}

func TestOpenIgnoresUnknownFields(t *testing.T) {
	rootDir := t.TempDir()
	translationsDir := filepath.Join(rootDir, "translations")
	require.NoError(t, os.MkdirAll(translationsDir, 0o755))

	metaPath := filepath.Join(rootDir, MetaFileName)
	require.NoError(t, os.WriteFile(metaPath, []byte(`{
		"id": "proj-1",
		"creation_timestamp": 1000,
		"modification_timestamp": 1000,
		"game_version": "1.4.2-4226",
		"original_locale": "en_US",
		"reference_locales": [],
		"translation_locale": "ru_RU",
		"translations_dir": "translations",
		"splitter": "monolithic-file",
		"tr_files": ["a.json"],
		"future_field": "ignore-me"
	}`), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(translationsDir, "a.json"), []byte(`{
		"id": "tf-1",
		"creation_timestamp": 1000,
		"modification_timestamp": 1000,
		"game_file_chunks": {
			"data/lang/sc/gui.en_US.json": {
				"fragments": {
					"labels/title": { "id": "frag-1", "original_text": ["Hi"], "unknown_future_field": 1 }
				}
			}
		},
		"another_unknown_field": true
	}`), 0o644))

	p, err := Open(rootDir)
	require.NoError(t, err)
	frag, ok := p.Fragment("data/lang/sc/gui.en_US.json", "labels/title")
	require.True(t, ok)
	assert.Equal(t, "Hi", frag.OriginalText)
}

func TestWriteListsTrFilesInSortedOrder(t *testing.T) {
	rootDir := t.TempDir()
	p := New(rootDir, Meta{ID: "proj-1", TranslationsDir: "translations", SplitterID: "monolithic-file"})
	tfB := p.NewTrFile("zeta.json", 1000)
	tfA := p.NewTrFile("alpha.json", 1000)
	_, err := p.NewFragment(tfB, "data/a.json", "x", 1000)
	require.NoError(t, err)
	_, err = p.NewFragment(tfA, "data/b.json", "y", 1000)
	require.NoError(t, err)

	require.NoError(t, p.Write())

	raw, err := os.ReadFile(filepath.Join(rootDir, MetaFileName))
	require.NoError(t, err)
	content := string(raw)
	alphaIdx := strings.Index(content, `"alpha.json"`)
	zetaIdx := strings.Index(content, `"zeta.json"`)
	require.GreaterOrEqual(t, alphaIdx, 0)
	require.GreaterOrEqual(t, zetaIdx, 0)
	assert.Less(t, alphaIdx, zetaIdx)
}

func TestWriteOnlyTouchesDirtyTrFiles(t *testing.T) {
	rootDir := t.TempDir()
	p := buildSampleProject(t, rootDir)
	require.NoError(t, p.Write())

	untouchedPath := filepath.Join(rootDir, "translations", "translation.json")
	before, err := os.Stat(untouchedPath)
	require.NoError(t, err)

	// A second Write with nothing dirty must not rewrite the tr-file, only
	// (optionally) leave the meta file untouched too since nothing changed.
	require.NoError(t, p.Write())
	after, err := os.Stat(untouchedPath)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}

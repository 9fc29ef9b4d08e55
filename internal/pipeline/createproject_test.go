package pipeline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/crosslocale/internal/scan"
)

func buildSampleScanDatabase() *scan.Database {
	db := scan.NewDatabase("1.4.2-4226", 1000)
	file := db.NewFile("data", "data/lang/sc/gui.en_US.json", false)
	file.NewFragment("labels/title", 0, nil, map[string]string{"en_US": "Hello"})
	return db
}

func TestCreateProjectScanToCreateToExportScenario(t *testing.T) {
	db := buildSampleScanDatabase()

	p, err := CreateProject(db, CreateProjectOptions{
		OriginalLocale:    "en_US",
		TranslationLocale: "ru_RU",
		TranslationsDir:   "translations",
		SplitterID:        "monolithic-file",
	}, t.TempDir(), 2000)
	require.NoError(t, err)

	require.Equal(t, []string{"translation.json"}, p.TrFiles.Keys())
	frag, ok := p.Fragment("data/lang/sc/gui.en_US.json", "labels/title")
	require.True(t, ok)
	assert.Equal(t, "Hello", frag.OriginalText)

	var buf bytes.Buffer
	require.NoError(t, ExportProject(&buf, p, IDLmTrPack, "crosslocale", "0.1.0", false))
	assert.Contains(t, buf.String(), `"lang/sc/gui.en_US.json/labels/title"`)
	assert.Contains(t, buf.String(), `"orig": "Hello"`)
	assert.Contains(t, buf.String(), `"text": ""`)
}

func TestCreateProjectSkipsFragmentsMissingOriginalLocaleText(t *testing.T) {
	db := scan.NewDatabase("1.4.2-4226", 1000)
	file := db.NewFile("data", "data/lang/sc/gui.de_DE.json", false)
	file.NewFragment("labels/title", 0, nil, map[string]string{"de_DE": "Hallo"})

	p, err := CreateProject(db, CreateProjectOptions{
		OriginalLocale:    "en_US",
		TranslationLocale: "ru_RU",
		TranslationsDir:   "translations",
		SplitterID:        "monolithic-file",
	}, t.TempDir(), 2000)
	require.NoError(t, err)

	_, ok := p.Fragment("data/lang/sc/gui.de_DE.json", "labels/title")
	assert.False(t, ok)
}

func TestCreateProjectRejectsUnknownSplitterID(t *testing.T) {
	db := buildSampleScanDatabase()
	_, err := CreateProject(db, CreateProjectOptions{
		OriginalLocale: "en_US",
		SplitterID:     "not-a-real-splitter",
	}, t.TempDir(), 2000)
	require.Error(t, err)
}

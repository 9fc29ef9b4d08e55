package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lmTrPackInput(t *testing.T) []byte {
	t.Helper()
	return []byte(`{
		"lang/sc/gui.en_US.json/labels/title": {"orig": "Hello", "text": "Привет"},
		"database.json/enemies/foo/0": {"orig": "Boss", "text": ""}
	}`)
}

func TestConvertSingleOutputWithoutSplitter(t *testing.T) {
	outputs, warnings, err := Convert(lmTrPackInput(t), ConvertOptions{
		ImporterID:         IDLmTrPack,
		ExporterID:         IDLmTrPack,
		FallbackOutputPath: "translation",
	})
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, outputs, 1)
	assert.Equal(t, "translation", outputs[0].Path)
	assert.Len(t, outputs[0].Fragments, 2)
}

func TestConvertSplitterRoutesFragmentsToDistinctBuckets(t *testing.T) {
	outputs, _, err := Convert(lmTrPackInput(t), ConvertOptions{
		ImporterID: IDLmTrPack,
		ExporterID: IDLmTrPack,
		SplitterID: "next-generation",
	})
	require.NoError(t, err)

	byPath := map[string][]ExportFragment{}
	for _, out := range outputs {
		byPath[out.Path] = out.Fragments
	}
	require.Contains(t, byPath, "data/database/enemies")
	require.Len(t, byPath["data/database/enemies"], 1)
	assert.Equal(t, "enemies/foo/0", byPath["data/database/enemies"][0].JSONPath)
}

func TestConvertMappingFileMismatchFailsSplitterInconsistent(t *testing.T) {
	_, _, err := Convert(lmTrPackInput(t), ConvertOptions{
		ImporterID: IDLmTrPack,
		ExporterID: IDLmTrPack,
		SplitterID: "same-file-tree",
		MappingFile: map[string]string{
			"data/lang/sc/gui.en_US.json": "some/other/path",
		},
	})
	require.Error(t, err)
}

func TestConvertReportsStaleOriginalText(t *testing.T) {
	db := buildSampleScanDatabase()
	outputs, warnings, err := Convert([]byte(`{
		"lang/sc/gui.en_US.json/labels/title": {"orig": "Hello there", "text": ""}
	}`), ConvertOptions{
		ImporterID:         IDLmTrPack,
		ExporterID:         IDLmTrPack,
		FallbackOutputPath: "translation",
		OriginalLocale: "en_US",
		ScanDB:         db,
	})
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	require.Len(t, warnings, 1)
	assert.Equal(t, "data/lang/sc/gui.en_US.json", warnings[0].FilePath)
	assert.Equal(t, "labels/title", warnings[0].JSONPath)
}

package localizeme

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/crosslocale/internal/jsonutil"
)

func TestParseFileDictPathSplitsAtJSONComponent(t *testing.T) {
	filePath, jsonPath, ok := ParseFileDictPath("lang/sc/gui.en_US.json/labels/title")
	require.True(t, ok)
	assert.Equal(t, "lang/sc/gui.en_US.json", filePath)
	assert.Equal(t, "labels/title", jsonPath)
}

func TestParseFileDictPathNoJSONComponent(t *testing.T) {
	_, _, ok := ParseFileDictPath("lang/sc/gui")
	assert.False(t, ok)
}

func TestSerializeDeserializeFilePathRoundTrip(t *testing.T) {
	assert.Equal(t, "lang/sc/gui.en_US.json", SerializeFilePath("data/lang/sc/gui.en_US.json"))
	assert.Equal(t, "data/lang/sc/gui.en_US.json", DeserializeFilePath("lang/sc/gui.en_US.json"))

	assert.Equal(t, "extension/scorpion-robo/data/x.json", SerializeFilePath("extension/scorpion-robo/data/x.json"))
	assert.Equal(t, "extension/scorpion-robo/data/x.json", DeserializeFilePath("extension/scorpion-robo/data/x.json"))
}

func TestImportIgnoresUnknownFields(t *testing.T) {
	const pack = `{"lang/sc/gui.en_US.json/labels/title":{"orig":"Hello","text":"Привет","quality":"spell","note":"check this","extra":123}}`
	entries, err := Import([]byte(pack))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data/lang/sc/gui.en_US.json", entries[0].FilePath)
	assert.Equal(t, "labels/title", entries[0].JSONPath)
	assert.Equal(t, "Hello", entries[0].Orig)
	assert.Equal(t, "Привет", entries[0].Text)
	assert.Equal(t, QualitySpell, entries[0].Quality)
	assert.True(t, entries[0].HasNote)
}

func TestExportEmitsOnlyOrigAndText(t *testing.T) {
	entries := []Entry{
		{FilePath: "data/lang/sc/gui.en_US.json", JSONPath: "labels/title", Orig: "Hello", Text: ""},
	}
	var buf bytes.Buffer
	indent := jsonutil.DefaultIndent
	f := jsonutil.NewFormatter(&buf, jsonutil.FormatterConfig{Indent: &indent})
	Export(f, entries)
	require.NoError(t, f.Flush())

	root, err := jsonutil.Decode(buf.Bytes())
	require.NoError(t, err)
	entry, ok := root.Obj.Get("lang/sc/gui.en_US.json/labels/title")
	require.True(t, ok)
	assert.Equal(t, 2, entry.Obj.Len())
	orig, _ := entry.Obj.Get("orig")
	assert.Equal(t, "Hello", orig.Str)
}

func TestExportImportRoundTripsBytewise(t *testing.T) {
	entries := []Entry{
		{FilePath: "data/lang/sc/gui.en_US.json", JSONPath: "labels/title", Orig: "Hello", Text: ""},
	}
	var buf bytes.Buffer
	indent := jsonutil.DefaultIndent
	f := jsonutil.NewFormatter(&buf, jsonutil.FormatterConfig{Indent: &indent})
	Export(f, entries)
	require.NoError(t, f.Flush())

	imported, err := Import(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, entries[0].FilePath, imported[0].FilePath)
	assert.Equal(t, entries[0].JSONPath, imported[0].JSONPath)
	assert.Equal(t, entries[0].Orig, imported[0].Orig)
	assert.Equal(t, entries[0].Text, imported[0].Text)
}

package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFromFileGenericFindsNestedLabel(t *testing.T) {
	root := mustDecode(t, `{"gui":{"title":{"en_US":"Hello","de_DE":"Hallo","langUid":42}}}`)

	found := FoundJSONFile{Path: "data/gui.json", AssetRoot: "", IsLangFile: false}
	labels := ExtractFromFile(found, root, ExtractionOptions{})

	require.Len(t, labels, 1)
	assert.Equal(t, "gui/title", labels[0].JSONPath)
	assert.Equal(t, int32(42), labels[0].LangUID)
	assert.Equal(t, "Hello", labels[0].MainLocaleText)
	assert.Equal(t, "Hallo", labels[0].Text["de_DE"])
}

func TestExtractFromFileDescendsIntoNonLabelObjects(t *testing.T) {
	// "a" is not itself a valid label (its "nested" field isn't a locale
	// string), so the walker descends into it and finds the label at
	// "a/nested" instead.
	root := mustDecode(t, `{"a":{"en_US":"outer","nested":{"en_US":"inner"}}}`)

	found := FoundJSONFile{Path: "data/x.json"}
	labels := ExtractFromFile(found, root, ExtractionOptions{})

	require.Len(t, labels, 1)
	assert.Equal(t, "a/nested", labels[0].JSONPath)
	assert.Equal(t, "inner", labels[0].MainLocaleText)
}

func TestExtractFromFileLangFileRequiresDoctype(t *testing.T) {
	root := mustDecode(t, `{"labels":{"title":"Hello"}}`)
	found := FoundJSONFile{Path: "data/lang/sc/gui.en_US.json", IsLangFile: true}

	labels := ExtractFromFile(found, root, ExtractionOptions{})
	assert.Nil(t, labels)
}

func TestExtractFromFileLangFileHappyPath(t *testing.T) {
	root := mustDecode(t, `{"DOCTYPE":"STATIC-LANG-FILE","labels":{"title":"Hello"}}`)
	found := FoundJSONFile{Path: "data/lang/sc/gui.en_US.json", IsLangFile: true}

	labels := ExtractFromFile(found, root, ExtractionOptions{})
	require.Len(t, labels, 1)
	assert.Equal(t, "labels/title", labels[0].JSONPath)
	assert.Equal(t, "Hello", labels[0].MainLocaleText)
	assert.Equal(t, "Hello", labels[0].Text[MainLocale])
}

func TestExtractFromFileLocalesFilter(t *testing.T) {
	root := mustDecode(t, `{"a":{"en_US":"Hi","de_DE":"Hallo","fr_FR":"Bonjour"}}`)
	found := FoundJSONFile{Path: "data/x.json"}

	labels := ExtractFromFile(found, root, ExtractionOptions{LocalesFilter: map[string]struct{}{"de_DE": {}}})
	require.Len(t, labels, 1)
	_, hasFr := labels[0].Text["fr_FR"]
	assert.False(t, hasFr)
	assert.Equal(t, "Hallo", labels[0].Text["de_DE"])
}

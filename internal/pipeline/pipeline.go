// Package pipeline implements the glue between the scanner, the splitter
// registry, and the importer/exporter registries: create-project,
// convert, and export.
package pipeline

// ImportedFragment is what an Importer produces for one fragment it read
// out of its input format.
type ImportedFragment struct {
	FilePath     string
	JSONPath     string
	OriginalText string
	Translations []ImportedTranslation
}

// ImportedTranslation is one translation candidate attached to an
// ImportedFragment.
type ImportedTranslation struct {
	AuthorUsername        string
	EditorUsername        string
	CreationTimestamp     int64
	ModificationTimestamp int64
	Text                  string
	Flags                 []string
}

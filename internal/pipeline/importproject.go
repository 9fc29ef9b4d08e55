package pipeline

import (
	"fmt"
	"sort"

	"github.com/standardbeagle/crosslocale/internal/project"
)

// ImportOptions configures ImportIntoProject.
type ImportOptions struct {
	// ImporterUsername authors (or, with EditPrevImports, re-edits)
	// every translation this import creates.
	ImporterUsername string

	// DeleteOtherTranslations drops every translation not authored by
	// ImporterUsername from a fragment before adding the imported one.
	DeleteOtherTranslations bool

	// EditPrevImports edits the fragment's existing translation
	// authored by ImporterUsername instead of adding a new one, when
	// one is present.
	EditPrevImports bool

	// AddFlags is appended to every touched fragment's Flags (without
	// duplicating an already-present flag).
	AddFlags []string
}

// ImportWarning is a non-fatal issue surfaced during ImportIntoProject,
// such as an imported fragment with no matching project fragment.
type ImportWarning struct {
	InputPath string
	FilePath  string
	JSONPath  string
	Message   string
}

// ImportResult summarizes one ImportIntoProject call.
type ImportResult struct {
	ImportedCount int
	Warnings      []ImportWarning
}

// ImportIntoProject streams inputs (file path -> contents) through the
// importer registered under importerID and merges the resulting
// translations into p: a fragment not already present in the project is
// reported as a warning and skipped (import never creates new
// fragments, only translations on existing ones), matching spec's "any
// error is reported... without aborting the whole batch".
func ImportIntoProject(p *project.Project, importerID string, inputs map[string][]byte, opts ImportOptions, now int64) (ImportResult, error) {
	importer, err := NewImporter(importerID)
	if err != nil {
		return ImportResult{}, err
	}

	var result ImportResult

	for _, inputPath := range sortedKeys(inputs) {
		data := inputs[inputPath]
		fragments, err := importer.Import(data)
		if err != nil {
			result.Warnings = append(result.Warnings, ImportWarning{
				InputPath: inputPath,
				Message:   fmt.Sprintf("import failed: %v", err),
			})
			continue
		}

		for _, imported := range fragments {
			frag, ok := p.Fragment(imported.FilePath, imported.JSONPath)
			if !ok {
				result.Warnings = append(result.Warnings, ImportWarning{
					InputPath: inputPath,
					FilePath:  imported.FilePath,
					JSONPath:  imported.JSONPath,
					Message:   "not found in the project",
				})
				continue
			}

			text := bestImportedTranslationText(imported.Translations)
			if text == "" {
				continue
			}

			if opts.DeleteOtherTranslations {
				kept := frag.Translations[:0]
				for _, tr := range frag.Translations {
					if tr.AuthorUsername == opts.ImporterUsername {
						kept = append(kept, tr)
					}
				}
				frag.Translations = kept
			}

			var prevImport *project.Translation
			if opts.EditPrevImports {
				for _, tr := range frag.Translations {
					if tr.AuthorUsername == opts.ImporterUsername {
						prevImport = tr
						break
					}
				}
			}

			if prevImport != nil {
				frag.EditTranslation(prevImport, opts.ImporterUsername, text, now)
			} else {
				frag.AddTranslation(opts.ImporterUsername, text, now)
			}

			for _, flag := range opts.AddFlags {
				if !containsString(frag.Flags, flag) {
					frag.Flags = append(frag.Flags, flag)
				}
			}

			result.ImportedCount++
		}
	}

	if err := p.Write(); err != nil {
		return result, err
	}

	return result, nil
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

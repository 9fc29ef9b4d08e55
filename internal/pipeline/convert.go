package pipeline

import (
	"fmt"

	"github.com/standardbeagle/crosslocale/internal/clerrors"
	"github.com/standardbeagle/crosslocale/internal/ordmap"
	"github.com/standardbeagle/crosslocale/internal/scan"
	"github.com/standardbeagle/crosslocale/internal/splitter"
)

// ConvertOptions configures the Convert pipeline.
type ConvertOptions struct {
	ImporterID string
	ExporterID string

	// SplitterID, if non-empty, routes fragments the same way
	// create-project does: whole-file first, then per-fragment.
	SplitterID string

	// MappingFile, if non-nil, records a caller-supplied
	// game_file_path -> output_file_path assignment that whole-file
	// routing (by the splitter, or by the absence of one) must agree
	// with. A disagreement fails SplitterInconsistent.
	MappingFile map[string]string

	// FallbackOutputPath names the single output file used for every
	// game file when no splitter and no MappingFile entry applies.
	FallbackOutputPath string

	// OriginalLocale enables the staleness check against ScanDB: a
	// fragment whose imported original_text disagrees with the scan
	// database's text for the same (file_path, json_path,
	// original_locale) is reported, not failed.
	OriginalLocale string
	ScanDB         *scan.Database
}

// ConvertWarning is a non-fatal issue surfaced during Convert, such as a
// stale original_text.
type ConvertWarning struct {
	FilePath string
	JSONPath string
	Message  string
}

// ConvertOutput is one output file Convert produced.
type ConvertOutput struct {
	Path      string
	Fragments []ExportFragment
}

// Convert streams input through the registered importer, groups the
// resulting fragments by game file, and assigns each group to an output
// path per SplitterID/MappingFile, per spec §4.9.
func Convert(input []byte, opts ConvertOptions) ([]ConvertOutput, []ConvertWarning, error) {
	importer, err := NewImporter(opts.ImporterID)
	if err != nil {
		return nil, nil, err
	}
	imported, err := importer.Import(input)
	if err != nil {
		return nil, nil, err
	}

	var split splitter.Splitter
	if opts.SplitterID != "" {
		split, err = splitter.New(opts.SplitterID)
		if err != nil {
			return nil, nil, err
		}
	}

	byGameFile := ordmap.New[string, []ImportedFragment]()
	for _, frag := range imported {
		existing, _ := byGameFile.Get(frag.FilePath)
		byGameFile.Set(frag.FilePath, append(existing, frag))
	}

	outputsByPath := ordmap.New[string, []ExportFragment]()
	var warnings []ConvertWarning

	for _, gameFilePath := range byGameFile.Keys() {
		frags, _ := byGameFile.Get(gameFilePath)

		wholeFilePath, wholeFile := "", false
		if split != nil {
			wholeFilePath, wholeFile = split.TrFileForEntireGameFile("", gameFilePath)
		}

		if mapped, hasMapping := opts.MappingFile[gameFilePath]; hasMapping {
			if split != nil && wholeFile && mapped != wholeFilePath {
				return nil, nil, clerrors.New("pipeline.Convert", clerrors.CodeSplitterInconsistent,
					fmt.Errorf("game file %q: splitter computed %q, mapping file says %q", gameFilePath, wholeFilePath, mapped)).WithPath(gameFilePath)
			}
			if split != nil && !wholeFile {
				return nil, nil, clerrors.New("pipeline.Convert", clerrors.CodeSplitterInconsistent,
					fmt.Errorf("game file %q: mapping file assigns a single output path but the splitter routes its fragments individually", gameFilePath)).WithPath(gameFilePath)
			}
			wholeFilePath, wholeFile = mapped, true
		}

		for _, frag := range frags {
			outPath := wholeFilePath
			if !wholeFile {
				switch {
				case split != nil:
					outPath = split.TrFileForFragment("", gameFilePath, frag.JSONPath)
				default:
					outPath = opts.FallbackOutputPath
				}
			}

			if opts.ScanDB != nil && opts.OriginalLocale != "" {
				if warning, stale := staleOriginalText(opts.ScanDB, gameFilePath, frag.JSONPath, opts.OriginalLocale, frag.OriginalText); stale {
					warnings = append(warnings, warning)
				}
			}

			existing, _ := outputsByPath.Get(outPath)
			outputsByPath.Set(outPath, append(existing, ExportFragment{
				FilePath:        frag.FilePath,
				JSONPath:        frag.JSONPath,
				OriginalText:    frag.OriginalText,
				TranslationText: bestImportedTranslationText(frag.Translations),
			}))
		}
	}

	outputs := make([]ConvertOutput, 0, outputsByPath.Len())
	for _, path := range outputsByPath.Keys() {
		frags, _ := outputsByPath.Get(path)
		outputs = append(outputs, ConvertOutput{Path: path, Fragments: frags})
	}

	return outputs, warnings, nil
}

func bestImportedTranslationText(translations []ImportedTranslation) string {
	var best *ImportedTranslation
	for i := range translations {
		tr := &translations[i]
		if best == nil || tr.ModificationTimestamp >= best.ModificationTimestamp {
			best = tr
		}
	}
	if best == nil {
		return ""
	}
	return best.Text
}

func staleOriginalText(db *scan.Database, gameFilePath, jsonPath, originalLocale, importedText string) (ConvertWarning, bool) {
	gameFile, ok := db.GameFiles.Get(gameFilePath)
	if !ok {
		return ConvertWarning{}, false
	}
	frag, ok := gameFile.Fragments.Get(jsonPath)
	if !ok {
		return ConvertWarning{}, false
	}
	scanText, ok := frag.Text[originalLocale]
	if !ok || scanText == importedText {
		return ConvertWarning{}, false
	}
	return ConvertWarning{
		FilePath: gameFilePath,
		JSONPath: jsonPath,
		Message:  fmt.Sprintf("stale original_text: scan database has %q, input has %q", scanText, importedText),
	}, true
}

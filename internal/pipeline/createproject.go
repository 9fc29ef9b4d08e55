package pipeline

import (
	"github.com/standardbeagle/crosslocale/internal/clerrors"
	"github.com/standardbeagle/crosslocale/internal/project"
	"github.com/standardbeagle/crosslocale/internal/scan"
	"github.com/standardbeagle/crosslocale/internal/splitter"

	"github.com/google/uuid"
)

// CreateProjectOptions configures CreateProject.
type CreateProjectOptions struct {
	OriginalLocale    string
	ReferenceLocales  []string
	TranslationLocale string
	TranslationsDir   string
	SplitterID        string
}

// CreateProject builds a new project graph from a scan database: it
// iterates scan game files in order, routes every fragment to a tr-file
// via the configured splitter (whole-file first, then per-fragment), and
// populates original_text/reference_texts from the scan fragment's
// per-locale text map. Fragments missing the original locale's text are
// skipped silently. rootDir is the project's on-disk root; now seeds
// every freshly generated timestamp.
func CreateProject(db *scan.Database, opts CreateProjectOptions, rootDir string, now int64) (*project.Project, error) {
	split, err := splitter.New(opts.SplitterID)
	if err != nil {
		return nil, err
	}

	p := project.New(rootDir, project.Meta{
		ID:                uuid.New().String(),
		CreationTimestamp: now,
		GameVersion:       db.Meta.GameVersion,
		OriginalLocale:    opts.OriginalLocale,
		ReferenceLocales:  opts.ReferenceLocales,
		TranslationLocale: opts.TranslationLocale,
		TranslationsDir:   opts.TranslationsDir,
		SplitterID:        opts.SplitterID,
	})

	for _, gameFilePath := range db.GameFiles.Keys() {
		gameFile, _ := db.GameFiles.Get(gameFilePath)

		wholeFileTrPath, wholeFile := split.TrFileForEntireGameFile(gameFile.AssetRoot, gameFile.Path)

		for _, jsonPath := range gameFile.Fragments.Keys() {
			scanFrag, _ := gameFile.Fragments.Get(jsonPath)

			originalText, hasOriginal := scanFrag.Text[opts.OriginalLocale]
			if !hasOriginal {
				continue
			}

			trFileStem := wholeFileTrPath
			if !wholeFile {
				trFileStem = split.TrFileForFragment(gameFile.AssetRoot, gameFile.Path, jsonPath)
			}

			tf := p.GetOrCreateTrFile(trFileStem+".json", now)
			frag, err := p.NewFragment(tf, gameFile.Path, jsonPath, now)
			if err != nil {
				return nil, clerrors.New("pipeline.CreateProject", clerrors.CodeDuplicateFragment, err).WithPath(gameFile.Path)
			}

			if chunk, ok := tf.GameFileChunks.Get(gameFile.Path); ok {
				chunk.IsLangFile = gameFile.IsLangFile
			}

			frag.LangUID = scanFrag.LangUID
			frag.Description = scanFrag.Description
			frag.Flags = scanFrag.Flags
			frag.SetOriginalText(originalText)
			for _, locale := range opts.ReferenceLocales {
				if text, ok := scanFrag.Text[locale]; ok {
					frag.ReferenceTexts[locale] = text
				}
			}
		}
	}

	if err := p.Write(); err != nil {
		return nil, err
	}

	return p, nil
}

// Package legacy implements SplittingStrategy, the pre-asset_root
// generation of the splitter interface. It exists solely so that project
// meta files written before asset_root-aware splitters existed can still
// be deserialized and understood; it is never offered as a choice for new
// projects (see splitter.New).
package legacy

import (
	"strings"

	"github.com/standardbeagle/crosslocale/internal/clerrors"
	"github.com/standardbeagle/crosslocale/internal/jsonutil"
)

// SplittingStrategy is the old splitter shape: it never saw the asset
// root, only the game-relative file path.
type SplittingStrategy interface {
	ID() string
	TrFileForEntireGameFile(filePath string) (path string, ok bool)
	TrFileForFragment(filePath, jsonPath string) string
}

const (
	IDMonolithicFile    = "monolithic-file"
	IDSameFileTree      = "same-file-tree"
	IDNotabenoidChapter = "notabenoid-chapters"
)

var registry = map[string]func() SplittingStrategy{
	IDMonolithicFile:    func() SplittingStrategy { return MonolithicFile{} },
	IDSameFileTree:      func() SplittingStrategy { return SameFileTree{} },
	IDNotabenoidChapter: func() SplittingStrategy { return NotabenoidChapters{} },
}

// IDs lists every legacy strategy ID, in declaration order.
func IDs() []string {
	return []string{IDMonolithicFile, IDSameFileTree, IDNotabenoidChapter}
}

// New constructs the legacy strategy registered under id, for meta-file
// deserialization only.
func New(id string) (SplittingStrategy, error) {
	ctor, ok := registry[id]
	if !ok {
		return nil, clerrors.New("legacy.New", clerrors.CodeUnknownSplitter, unknownErr{id})
	}
	return ctor(), nil
}

type unknownErr struct{ id string }

func (e unknownErr) Error() string { return "unknown legacy splitting strategy id: " + e.id }

type MonolithicFile struct{}

func (MonolithicFile) ID() string { return IDMonolithicFile }

func (MonolithicFile) TrFileForEntireGameFile(_ string) (string, bool) { return "translation", true }

func (s MonolithicFile) TrFileForFragment(filePath, _ string) string {
	path, _ := s.TrFileForEntireGameFile(filePath)
	return path
}

type SameFileTree struct{}

func (SameFileTree) ID() string { return IDSameFileTree }

func (SameFileTree) TrFileForEntireGameFile(filePath string) (string, bool) {
	stem, _, _ := jsonutil.SplitFilenameExtension(filePath)
	return stem, true
}

func (s SameFileTree) TrFileForFragment(filePath, _ string) string {
	path, _ := s.TrFileForEntireGameFile(filePath)
	return path
}

var areasWithChapters = map[string]string{
	"arena": "arena", "arid-dng": "arid-dng", "arid": "arid",
	"autumn-fall": "autumn-fall", "autumn": "autumn",
	"bergen-trail": "bergen-trail", "bergen": "bergen",
	"cargo-ship": "cargo-ship", "cold-dng": "cold-dng", "dreams": "dreams",
	"flashback": "flashback", "forest": "forest", "heat-dng": "heat-dng",
	"heat-village": "heat-village", "heat": "heat", "hideout": "hideout",
	"jungle-city": "jungle-city", "jungle": "jungle",
	"rhombus-dng": "rhombus-dng", "rhombus-sqr": "rhombus-sqr",
	"rookie-harbor": "rookie-harbor", "shock-dng": "shock-dng",
	"tree-dng": "tree-dng", "wave-dng": "wave-dng",
}

// NotabenoidChapters is the legacy (no-asset_root) predecessor of
// splitter.NotabenoidChapters: it additionally recognizes a bare
// "extension" top-level component, which the newer generation dropped.
type NotabenoidChapters struct{}

func (NotabenoidChapters) ID() string { return IDNotabenoidChapter }

func (NotabenoidChapters) TrFileForEntireGameFile(filePath string) (string, bool) {
	components := strings.Split(filePath, "/")
	return notabenoidBucket(components), true
}

func (s NotabenoidChapters) TrFileForFragment(filePath, _ string) string {
	path, _ := s.TrFileForEntireGameFile(filePath)
	return path
}

func notabenoidBucket(components []string) string {
	if len(components) == 0 {
		return "etc"
	}
	if components[0] == "extension" {
		return "extension"
	}
	if components[0] != "data" || len(components) <= 1 {
		return "etc"
	}
	switch components[1] {
	case "lang":
		return "lang"
	case "arena":
		return "arena"
	case "enemies":
		return "enemies"
	case "characters":
		return "characters"
	case "maps":
		if len(components) > 2 {
			if chapter, ok := areasWithChapters[components[2]]; ok {
				return chapter
			}
		}
	case "areas":
		if len(components) == 3 {
			areaName, ext, hasExt := jsonutil.SplitFilenameExtension(components[2])
			if hasExt && ext == "json" {
				if chapter, ok := areasWithChapters[areaName]; ok {
					return chapter
				}
			}
		}
	default:
		if len(components) == 2 {
			switch components[1] {
			case "database.json":
				return "database"
			case "item-database.json":
				return "item-database"
			}
		}
	}
	return "etc"
}

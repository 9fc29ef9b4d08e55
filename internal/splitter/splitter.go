// Package splitter implements the current (asset-root-aware) splitter
// interface: the pluggable policy that routes a game file, and optionally
// one fragment inside it, to the translation-storage file that should
// hold it.
package splitter

import (
	"strings"

	"github.com/standardbeagle/crosslocale/internal/clerrors"
	"github.com/standardbeagle/crosslocale/internal/jsonutil"
)

// Splitter is a stateless strategy: the same inputs must always produce
// the same output, since the create and export pipelines assert
// consistency across calls.
type Splitter interface {
	ID() string

	// TrFileForEntireGameFile reports the tr-file that should hold every
	// fragment of the game file at filePath, if the whole file is routed
	// as a unit. ok is false when fragments of this file must be routed
	// individually via TrFileForFragment.
	TrFileForEntireGameFile(assetRoot, filePath string) (path string, ok bool)

	// TrFileForFragment is consulted only when TrFileForEntireGameFile
	// returned ok == false.
	TrFileForFragment(assetRoot, filePath, jsonPath string) string
}

// IDs, matching the stable wire identifiers in spec §4.5 / §6.
const (
	IDMonolithicFile    = "monolithic-file"
	IDSameFileTree      = "same-file-tree"
	IDLmFileTree        = "lm-file-tree"
	IDNotabenoidChapter = "notabenoid-chapters"
	IDNextGeneration    = "next-generation"
)

var registry = map[string]func() Splitter{
	IDMonolithicFile:    func() Splitter { return MonolithicFile{} },
	IDSameFileTree:      func() Splitter { return SameFileTree{} },
	IDLmFileTree:        func() Splitter { return LmFileTree{} },
	IDNotabenoidChapter: func() Splitter { return NotabenoidChapters{} },
	IDNextGeneration:    func() Splitter { return NextGeneration{} },
}

// IDs lists every registered splitter ID, in declaration order.
func IDs() []string {
	return []string{IDMonolithicFile, IDSameFileTree, IDLmFileTree, IDNotabenoidChapter, IDNextGeneration}
}

// New constructs the splitter registered under id.
func New(id string) (Splitter, error) {
	ctor, ok := registry[id]
	if !ok {
		return nil, clerrors.New("splitter.New", clerrors.CodeUnknownSplitter, unknownSplitterErr{id})
	}
	return ctor(), nil
}

type unknownSplitterErr struct{ id string }

func (e unknownSplitterErr) Error() string { return "unknown splitter id: " + e.id }

// stripAssetRoot removes the asset_root prefix from filePath; the caller
// guarantees filePath was discovered under assetRoot, so the prefix is
// always present.
func stripAssetRoot(assetRoot, filePath string) string {
	return strings.TrimPrefix(filePath, assetRoot)
}

// MonolithicFile routes every fragment of every game file into a single
// tr-file named "translation".
type MonolithicFile struct{}

func (MonolithicFile) ID() string { return IDMonolithicFile }

func (MonolithicFile) TrFileForEntireGameFile(_, _ string) (string, bool) {
	return "translation", true
}

func (s MonolithicFile) TrFileForFragment(assetRoot, filePath, _ string) string {
	path, _ := s.TrFileForEntireGameFile(assetRoot, filePath)
	return path
}

// SameFileTree mirrors the game's asset tree: a tr-file per game file,
// named the same as the file minus its asset root and final extension.
type SameFileTree struct{}

func (SameFileTree) ID() string { return IDSameFileTree }

func (SameFileTree) TrFileForEntireGameFile(assetRoot, filePath string) (string, bool) {
	stem, _, _ := jsonutil.SplitFilenameExtension(stripAssetRoot(assetRoot, filePath))
	return stem, true
}

func (s SameFileTree) TrFileForFragment(assetRoot, filePath, _ string) string {
	path, _ := s.TrFileForEntireGameFile(assetRoot, filePath)
	return path
}

// LmFileTree is SameFileTree, but the tr-file name is first run through
// Localize Me's path serialization rules (so the resulting tr-file tree
// lines up with a Localize Me translation pack's file layout).
type LmFileTree struct{}

func (LmFileTree) ID() string { return IDLmFileTree }

func (LmFileTree) TrFileForEntireGameFile(assetRoot, filePath string) (string, bool) {
	serialized := serializeFilePath(stripAssetRoot(assetRoot, filePath))
	stem, _, _ := jsonutil.SplitFilenameExtension(serialized)
	return stem, true
}

func (s LmFileTree) TrFileForFragment(assetRoot, filePath, _ string) string {
	path, _ := s.TrFileForEntireGameFile(assetRoot, filePath)
	return path
}

// serializeFilePath applies Localize Me's "data/" prefix rule: assets
// rooted under "data/" drop that prefix, everything else is used as-is.
// This is the same rule internal/localizeme applies to pack dict paths.
func serializeFilePath(filePath string) string {
	if rest, ok := strings.CutPrefix(filePath, "data/"); ok {
		return rest
	}
	return filePath
}

// areasWithChapters lists CrossCode areas that belong to a named story
// chapter, used by NotabenoidChapters and (in the legacy package) its
// asset-root-less predecessor.
var areasWithChapters = map[string]string{
	"arena":          "arena",
	"arid":           "arid",
	"arid-dng":       "arid-dng",
	"autumn":         "autumn",
	"autumn-fall":    "autumn-fall",
	"beach":          "beach",
	"bergen":         "bergen",
	"bergen-trail":   "bergen-trail",
	"cargo-ship":     "cargo-ship",
	"cold-dng":       "cold-dng",
	"dreams":         "dreams",
	"evo-village":    "evo-village",
	"final-dng":      "final-dng",
	"flashback":      "flashback",
	"forest":         "forest",
	"heat":           "heat",
	"heat-dng":       "heat-dng",
	"heat-village":   "heat-village",
	"hideout":        "hideout",
	"jungle":         "jungle",
	"jungle-city":    "jungle-city",
	"rhombus-dng":    "rhombus-dng",
	"rhombus-sqr":    "rhombus-sqr",
	"rookie-harbor":  "rookie-harbor",
	"shock-dng":      "shock-dng",
	"tree-dng":       "tree-dng",
	"wave-dng":       "wave-dng",
}

// NotabenoidChapters buckets fragments by CrossCode story chapter,
// rewritten from the crosscode-ru translation tooling's Notabenoid
// export script.
type NotabenoidChapters struct{}

func (NotabenoidChapters) ID() string { return IDNotabenoidChapter }

func (NotabenoidChapters) TrFileForEntireGameFile(assetRoot, filePath string) (string, bool) {
	components := strings.Split(stripAssetRoot(assetRoot, filePath), "/")
	return notabenoidBucket(components), true
}

func (s NotabenoidChapters) TrFileForFragment(assetRoot, filePath, _ string) string {
	path, _ := s.TrFileForEntireGameFile(assetRoot, filePath)
	return path
}

func notabenoidBucket(components []string) string {
	if len(components) == 0 || components[0] != "data" || len(components) <= 1 {
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
	case "database.json":
		if len(components) == 2 {
			return "database"
		}
	case "item-database.json":
		if len(components) == 2 {
			return "item-database"
		}
	}
	return "etc"
}

// NextGeneration is the newest splitter: it special-cases extension
// manifests and a handful of top-level data/ directories, falls back to
// SameFileTree otherwise, and always routes data/database.json
// fragment-by-fragment.
type NextGeneration struct{}

func (NextGeneration) ID() string { return IDNextGeneration }

func (NextGeneration) TrFileForEntireGameFile(assetRoot, filePath string) (string, bool) {
	full := strings.Split(filePath, "/")
	if len(full) == 3 && full[0] == "extension" {
		if stem, ext, hasExt := jsonutil.SplitFilenameExtension(full[2]); hasExt && ext == "json" && stem == full[1] {
			return "extensions", true
		}
	}

	components := strings.Split(stripAssetRoot(assetRoot, filePath), "/")
	if len(components) > 1 && components[0] == "data" {
		switch components[1] {
		case "areas":
			return "data/areas", true
		case "arena":
			return "data/arena", true
		case "characters":
			return "data/characters", true
		case "credits":
			return "data/credits", true
		case "events":
			return "data/events", true
		case "lang":
			return "data/lang", true
		case "players":
			return "data/players", true
		case "save-presets":
			return "data/save-presets", true
		case "enemies":
			return "data/enemies", true
		case "database.json":
			if len(components) == 2 {
				return "", false
			}
		}
	}

	return SameFileTree{}.TrFileForEntireGameFile(assetRoot, filePath)
}

func (NextGeneration) TrFileForFragment(assetRoot, filePath, jsonPath string) string {
	components := strings.Split(stripAssetRoot(assetRoot, filePath), "/")
	jsonComponents := strings.Split(jsonPath, "/")
	trFilePath, _ := SameFileTree{}.TrFileForEntireGameFile(assetRoot, filePath)

	if len(components) > 1 && components[1] == "database.json" && len(components) == 2 {
		bucket := "other"
		switch jsonComponents[0] {
		case "commonEvents":
			bucket = "commonEvents"
		case "enemies":
			bucket = "enemies"
		case "lore":
			bucket = "lore"
		case "quests":
			bucket = "quests"
		}
		return trFilePath + "/" + bucket
	}

	// Every other path is fully routed by TrFileForEntireGameFile, so
	// TrFileForFragment should never actually be reached for it.
	return trFilePath
}

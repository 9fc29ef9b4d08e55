// Package project implements the in-memory translation project graph:
// Project → TrFile → GameFileChunk → Fragment → Translation/Comment, its
// two indexed views (by tr-file and by virtual game file), dirty-flag
// propagation, and JSON persistence.
package project

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/standardbeagle/crosslocale/internal/clerrors"
	"github.com/standardbeagle/crosslocale/internal/ordmap"
)

// Meta is a project's header fields.
type Meta struct {
	ID                    string
	CreationTimestamp     int64
	ModificationTimestamp int64
	GameVersion           string
	OriginalLocale        string
	ReferenceLocales      []string
	TranslationLocale     string
	TranslationsDir       string
	SplitterID            string
}

// Project is the root of the translation graph for one on-disk project
// directory.
type Project struct {
	RootDir          string
	Meta             Meta
	TrFiles          *ordmap.Map[string, *TrFile]
	VirtualGameFiles *ordmap.Map[string, *VirtualGameFile]

	fragmentIndex map[fragmentKey]*Fragment
	metaDirty     bool
}

type fragmentKey struct {
	gameFilePath string
	jsonPath     string
}

// New creates an empty project rooted at rootDir.
func New(rootDir string, meta Meta) *Project {
	return &Project{
		RootDir:          rootDir,
		Meta:             meta,
		TrFiles:          ordmap.New[string, *TrFile](),
		VirtualGameFiles: ordmap.New[string, *VirtualGameFile](),
		fragmentIndex:    make(map[fragmentKey]*Fragment),
	}
}

// IsDirty reports whether any tr-file in the project has unsaved changes.
func (p *Project) IsDirty() bool {
	for _, path := range p.TrFiles.Keys() {
		tf, _ := p.TrFiles.Get(path)
		if tf.dirty {
			return true
		}
	}
	return false
}

// NewTrFile registers an empty TrFile at relativePath (under
// Meta.TranslationsDir) and returns it. now is used for both timestamps.
func (p *Project) NewTrFile(relativePath string, now int64) *TrFile {
	tf := &TrFile{
		ID:                    uuid.New().String(),
		CreationTimestamp:     now,
		ModificationTimestamp: now,
		RelativePath:          relativePath,
		GameFileChunks:        ordmap.New[string, *GameFileChunk](),
	}
	p.TrFiles.Set(relativePath, tf)
	return tf
}

// GetOrCreateTrFile returns the existing TrFile at relativePath, or
// creates one (in insertion order) on first use. now seeds the
// timestamps of a newly created TrFile only.
func (p *Project) GetOrCreateTrFile(relativePath string, now int64) *TrFile {
	return p.TrFiles.GetOrInsert(relativePath, func() *TrFile {
		return &TrFile{
			ID:                    uuid.New().String(),
			CreationTimestamp:     now,
			ModificationTimestamp: now,
			RelativePath:          relativePath,
			GameFileChunks:        ordmap.New[string, *GameFileChunk](),
		}
	})
}

// GetOrCreateVirtualGameFile returns the virtual game file for
// gameFilePath, creating it (in insertion order) on first use.
func (p *Project) GetOrCreateVirtualGameFile(gameFilePath string) *VirtualGameFile {
	return p.VirtualGameFiles.GetOrInsert(gameFilePath, func() *VirtualGameFile {
		return &VirtualGameFile{GameFilePath: gameFilePath, index: make(map[string]*Fragment)}
	})
}

// NewFragment creates a fragment under tf's chunk for gameFilePath (the
// chunk is created on demand) and registers it with the corresponding
// VirtualGameFile, enforcing the at-most-one-fragment-per-(game file,
// json path) invariant across the whole project.
func (p *Project) NewFragment(tf *TrFile, gameFilePath, jsonPath string, now int64) (*Fragment, error) {
	key := fragmentKey{gameFilePath, jsonPath}
	if _, exists := p.fragmentIndex[key]; exists {
		return nil, clerrors.New("project.NewFragment", clerrors.CodeDuplicateFragment,
			fmt.Errorf("fragment already exists for game file %q json path %q", gameFilePath, jsonPath))
	}

	chunk := tf.GameFileChunks.GetOrInsert(gameFilePath, func() *GameFileChunk {
		return &GameFileChunk{trFile: tf, GameFilePath: gameFilePath, Fragments: ordmap.New[string, *Fragment]()}
	})
	vgf := p.GetOrCreateVirtualGameFile(gameFilePath)
	if chunk.virtualGameFile == nil {
		chunk.virtualGameFile = vgf
		vgf.chunks = append(vgf.chunks, chunk)
	}

	frag := &Fragment{
		ID:                uuid.New().String(),
		FilePath:          gameFilePath,
		JSONPath:          jsonPath,
		ReferenceTexts:    make(map[string]string),
		creationTimestamp: now,
		chunk:             chunk,
	}
	chunk.Fragments.Set(jsonPath, frag)
	vgf.index[jsonPath] = frag
	p.fragmentIndex[key] = frag

	return frag, nil
}

// Fragment looks up the fragment at (gameFilePath, jsonPath), if any.
func (p *Project) Fragment(gameFilePath, jsonPath string) (*Fragment, bool) {
	f, ok := p.fragmentIndex[fragmentKey{gameFilePath, jsonPath}]
	return f, ok
}

// VirtualGameFile is the alternative index into the project's fragments,
// grouped by game file rather than by tr-file.
type VirtualGameFile struct {
	GameFilePath string

	chunks []*GameFileChunk
	index  map[string]*Fragment
}

// Fragments returns every fragment reachable from this virtual game
// file, in the order spec'd by §3: the concatenation of the contributing
// chunks' own insertion orders, in the order those chunks were first
// attached (project load/create order).
func (v *VirtualGameFile) Fragments() []*Fragment {
	var out []*Fragment
	for _, chunk := range v.chunks {
		for _, jsonPath := range chunk.Fragments.Keys() {
			frag, _ := chunk.Fragments.Get(jsonPath)
			out = append(out, frag)
		}
	}
	return out
}

// FragmentByJSONPath performs the point lookup query_fragments needs for
// its json_paths mode.
func (v *VirtualGameFile) FragmentByJSONPath(jsonPath string) (*Fragment, bool) {
	f, ok := v.index[jsonPath]
	return f, ok
}

// GameFileChunk is one TrFile's slice of one game file's fragments.
type GameFileChunk struct {
	trFile          *TrFile
	virtualGameFile *VirtualGameFile

	GameFilePath string
	IsLangFile   bool
	Fragments    *ordmap.Map[string, *Fragment]
}

// TrFile is one on-disk translation-storage file: the unit of
// persistence for a set of game-file chunks.
type TrFile struct {
	ID                    string
	CreationTimestamp     int64
	ModificationTimestamp int64
	RelativePath          string
	GameFileChunks        *ordmap.Map[string, *GameFileChunk]

	dirty bool
}

func (tf *TrFile) markDirty(now int64) {
	tf.dirty = true
	tf.ModificationTimestamp = now
}

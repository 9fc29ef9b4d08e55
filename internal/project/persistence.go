package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/standardbeagle/crosslocale/internal/clerrors"
	"github.com/standardbeagle/crosslocale/internal/jsonutil"
	"github.com/standardbeagle/crosslocale/internal/ordmap"
	"github.com/standardbeagle/crosslocale/internal/splitter"
)

// MetaFileName is the project meta file's fixed name under RootDir.
const MetaFileName = "crosslocale-project.json"

// textToLines splits s into an array of lines, each (except possibly the
// last) retaining its trailing "\n", matching §4.7/§6's on-disk
// multiline-string representation.
func textToLines(s string) []string {
	if s == "" {
		return nil
	}
	var lines []string
	for {
		idx := strings.IndexByte(s, '\n')
		if idx == -1 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:idx+1])
		s = s[idx+1:]
	}
	return lines
}

func linesToText(lines []string) string {
	return strings.Join(lines, "")
}

// Open loads a project from rootDir: the meta file plus every listed
// tr-file.
func Open(rootDir string) (*Project, error) {
	metaPath := filepath.Join(rootDir, MetaFileName)
	metaBytes, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, clerrors.New("project.Open", clerrors.CodeProjectNotFound, err).WithPath(metaPath)
	}

	metaRoot, err := jsonutil.Decode(metaBytes)
	if err != nil {
		return nil, clerrors.New("project.Open", clerrors.CodeProjectCorrupt, err).WithPath(metaPath)
	}
	if metaRoot.Kind != jsonutil.KindObject {
		return nil, clerrors.New("project.Open", clerrors.CodeProjectCorrupt, fmt.Errorf("project meta must be a JSON object")).WithPath(metaPath)
	}

	meta := Meta{}
	meta.ID = objStr(metaRoot, "id")
	meta.CreationTimestamp = objInt(metaRoot, "creation_timestamp")
	meta.ModificationTimestamp = objInt(metaRoot, "modification_timestamp")
	meta.GameVersion = objStr(metaRoot, "game_version")
	meta.OriginalLocale = objStr(metaRoot, "original_locale")
	meta.ReferenceLocales = objStrArr(metaRoot, "reference_locales")
	meta.TranslationLocale = objStr(metaRoot, "translation_locale")
	meta.TranslationsDir = objStr(metaRoot, "translations_dir")
	meta.SplitterID = objStr(metaRoot, "splitter")

	// Project files written before asset_root-aware splitters existed
	// carry the strategy under "splitting_strategy" instead; resolving it
	// through the legacy registry upgrades meta.SplitterID to a current
	// id, which the next Write persists under "splitter" like any other
	// project.
	upgradedFromLegacy := false
	if meta.SplitterID == "" {
		if legacyID := objStr(metaRoot, "splitting_strategy"); legacyID != "" {
			legacySplit, err := splitter.NewLegacy(legacyID)
			if err != nil {
				return nil, clerrors.New("project.Open", clerrors.CodeUnknownSplitter, err).WithPath(metaPath)
			}
			meta.SplitterID = legacySplit.ID()
			upgradedFromLegacy = true
		}
	}

	if !isKnownSplitterID(meta.SplitterID) {
		return nil, clerrors.New("project.Open", clerrors.CodeUnknownSplitter,
			fmt.Errorf("unknown splitter id %q", meta.SplitterID)).WithPath(metaPath)
	}

	trFilePaths := objStrArr(metaRoot, "tr_files")

	p := New(rootDir, meta)
	p.metaDirty = upgradedFromLegacy

	for _, relPath := range trFilePaths {
		if err := p.loadTrFile(relPath); err != nil {
			return nil, err
		}
	}

	for _, relPath := range p.TrFiles.Keys() {
		tf, _ := p.TrFiles.Get(relPath)
		tf.dirty = false
	}

	return p, nil
}

func isKnownSplitterID(id string) bool {
	for _, known := range splitter.IDs() {
		if known == id {
			return true
		}
	}
	return false
}

func (p *Project) loadTrFile(relPath string) error {
	fullPath := filepath.Join(p.RootDir, p.Meta.TranslationsDir, relPath)
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return clerrors.New("project.Open", clerrors.CodeProjectCorrupt, err).WithPath(fullPath)
	}
	root, err := jsonutil.Decode(data)
	if err != nil {
		return clerrors.New("project.Open", clerrors.CodeProjectCorrupt, err).WithPath(fullPath)
	}
	if root.Kind != jsonutil.KindObject {
		return clerrors.New("project.Open", clerrors.CodeProjectCorrupt, fmt.Errorf("tr-file must be a JSON object")).WithPath(fullPath)
	}

	tf := &TrFile{
		ID:                    objStr(root, "id"),
		CreationTimestamp:     objInt(root, "creation_timestamp"),
		ModificationTimestamp: objInt(root, "modification_timestamp"),
		RelativePath:          relPath,
		GameFileChunks:        ordmap.New[string, *GameFileChunk](),
	}
	p.TrFiles.Set(relPath, tf)

	chunksField, ok := root.Obj.Get("game_file_chunks")
	if !ok || chunksField.Kind != jsonutil.KindObject {
		return nil
	}

	for _, chunkEntry := range jsonutil.Entries(chunksField) {
		gameFilePath := chunkEntry.Key
		chunkVal := chunkEntry.Value
		if chunkVal.Kind != jsonutil.KindObject {
			continue
		}

		isLangFile := false
		if v, ok := chunkVal.Obj.Get("is_lang_file"); ok && v.Kind == jsonutil.KindBool {
			isLangFile = v.Bool
		}

		fragmentsField, ok := chunkVal.Obj.Get("fragments")
		if !ok || fragmentsField.Kind != jsonutil.KindObject {
			continue
		}

		for _, fragEntry := range jsonutil.Entries(fragmentsField) {
			jsonPath := fragEntry.Key
			key := fragmentKey{gameFilePath, jsonPath}
			if _, exists := p.fragmentIndex[key]; exists {
				return clerrors.New("project.Open", clerrors.CodeDuplicateFragment,
					fmt.Errorf("duplicate fragment for game file %q json path %q", gameFilePath, jsonPath)).WithPath(fullPath)
			}

			chunk := tf.GameFileChunks.GetOrInsert(gameFilePath, func() *GameFileChunk {
				return &GameFileChunk{trFile: tf, GameFilePath: gameFilePath, IsLangFile: isLangFile, Fragments: ordmap.New[string, *Fragment]()}
			})
			vgf := p.GetOrCreateVirtualGameFile(gameFilePath)
			if chunk.virtualGameFile == nil {
				chunk.virtualGameFile = vgf
				vgf.chunks = append(vgf.chunks, chunk)
			}

			frag := decodeFragment(gameFilePath, jsonPath, fragEntry.Value)
			frag.chunk = chunk
			chunk.Fragments.Set(jsonPath, frag)
			vgf.index[jsonPath] = frag
			p.fragmentIndex[key] = frag
		}
	}

	return nil
}

func decodeFragment(gameFilePath, jsonPath string, v *jsonutil.Value) *Fragment {
	frag := &Fragment{
		FilePath:       gameFilePath,
		JSONPath:       jsonPath,
		ID:             objStr(v, "id"),
		LangUID:        int32(objInt(v, "lang_uid")),
		Description:    objStrArr(v, "description"),
		OriginalText:   linesToText(objStrArr(v, "original_text")),
		ReferenceTexts: make(map[string]string),
		Flags:          objStrArr(v, "flags"),
	}

	if refs, ok := v.Obj.Get("reference_texts"); ok && refs.Kind == jsonutil.KindObject {
		for _, e := range jsonutil.Entries(refs) {
			if e.Value.Kind == jsonutil.KindArray {
				var lines []string
				for _, elem := range e.Value.Arr {
					if elem.Kind == jsonutil.KindString {
						lines = append(lines, elem.Str)
					}
				}
				frag.ReferenceTexts[e.Key] = linesToText(lines)
			}
		}
	}

	if trs, ok := v.Obj.Get("translations"); ok && trs.Kind == jsonutil.KindArray {
		for _, trVal := range trs.Arr {
			if trVal.Kind != jsonutil.KindObject {
				continue
			}
			frag.Translations = append(frag.Translations, &Translation{
				ID:                    objStr(trVal, "id"),
				AuthorUsername:        objStr(trVal, "author_username"),
				EditorUsername:        objStr(trVal, "editor_username"),
				CreationTimestamp:     objInt(trVal, "creation_timestamp"),
				ModificationTimestamp: objInt(trVal, "modification_timestamp"),
				Text:                  linesToText(objStrArr(trVal, "text")),
				Flags:                 objStrArr(trVal, "flags"),
			})
		}
	}

	if cs, ok := v.Obj.Get("comments"); ok && cs.Kind == jsonutil.KindArray {
		for _, cVal := range cs.Arr {
			if cVal.Kind != jsonutil.KindObject {
				continue
			}
			frag.Comments = append(frag.Comments, &Comment{
				ID:                    objStr(cVal, "id"),
				AuthorUsername:        objStr(cVal, "author_username"),
				EditorUsername:        objStr(cVal, "editor_username"),
				CreationTimestamp:     objInt(cVal, "creation_timestamp"),
				ModificationTimestamp: objInt(cVal, "modification_timestamp"),
				Text:                  linesToText(objStrArr(cVal, "text")),
			})
		}
	}

	return frag
}

// Write persists every dirty tr-file (atomically: write-to-temp then
// rename) and, if anything was written, refreshes the meta file. Clears
// dirty flags on the tr-files that were successfully written; partial
// failure leaves already-written files on disk with their flags cleared
// and surfaces the first error.
func (p *Project) Write() error {
	anyDirty := false
	for _, relPath := range p.TrFiles.Keys() {
		tf, _ := p.TrFiles.Get(relPath)
		if !tf.dirty {
			continue
		}
		anyDirty = true
		fullPath := filepath.Join(p.RootDir, p.Meta.TranslationsDir, relPath)
		if err := writeAtomic(fullPath, func(f *os.File) error { return writeTrFile(f, tf) }); err != nil {
			return clerrors.New("project.Write", clerrors.CodeWriteFailed, err).WithPath(fullPath)
		}
		tf.dirty = false
	}

	if anyDirty || p.metaDirty || !metaFileExists(p.RootDir) {
		metaPath := filepath.Join(p.RootDir, MetaFileName)
		if err := writeAtomic(metaPath, func(f *os.File) error { return writeMeta(f, p) }); err != nil {
			return clerrors.New("project.Write", clerrors.CodeWriteFailed, err).WithPath(metaPath)
		}
		p.metaDirty = false
	}

	return nil
}

func metaFileExists(rootDir string) bool {
	_, err := os.Stat(filepath.Join(rootDir, MetaFileName))
	return err == nil
}

func writeAtomic(path string, write func(f *os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

func writeMeta(f *os.File, p *Project) error {
	indent := jsonutil.DefaultIndent
	fmtW := jsonutil.NewFormatter(f, jsonutil.FormatterConfig{Indent: &indent})

	sortedTrFiles := append([]string(nil), p.TrFiles.Keys()...)
	sort.Strings(sortedTrFiles)

	fmtW.BeginObject()
	fmtW.Key("id")
	fmtW.String(p.Meta.ID)
	fmtW.Key("creation_timestamp")
	fmtW.Int(p.Meta.CreationTimestamp)
	fmtW.Key("modification_timestamp")
	fmtW.Int(p.Meta.ModificationTimestamp)
	fmtW.Key("game_version")
	fmtW.String(p.Meta.GameVersion)
	fmtW.Key("original_locale")
	fmtW.String(p.Meta.OriginalLocale)
	fmtW.Key("reference_locales")
	fmtW.BeginArray()
	for _, locale := range p.Meta.ReferenceLocales {
		fmtW.String(locale)
	}
	fmtW.EndArray()
	fmtW.Key("translation_locale")
	fmtW.String(p.Meta.TranslationLocale)
	fmtW.Key("translations_dir")
	fmtW.String(p.Meta.TranslationsDir)
	fmtW.Key("splitter")
	fmtW.String(p.Meta.SplitterID)
	fmtW.Key("tr_files")
	fmtW.BeginArray()
	for _, path := range sortedTrFiles {
		fmtW.String(path)
	}
	fmtW.EndArray()
	fmtW.EndObject()

	if err := fmtW.Flush(); err != nil {
		return err
	}
	_, err := f.WriteString("\n")
	return err
}

func writeTrFile(f *os.File, tf *TrFile) error {
	indent := jsonutil.DefaultIndent
	fmtW := jsonutil.NewFormatter(f, jsonutil.FormatterConfig{Indent: &indent})

	fmtW.BeginObject()
	fmtW.Key("id")
	fmtW.String(tf.ID)
	fmtW.Key("creation_timestamp")
	fmtW.Int(tf.CreationTimestamp)
	fmtW.Key("modification_timestamp")
	fmtW.Int(tf.ModificationTimestamp)
	fmtW.Key("game_file_chunks")
	fmtW.BeginObject()
	for _, gameFilePath := range tf.GameFileChunks.Keys() {
		chunk, _ := tf.GameFileChunks.Get(gameFilePath)
		fmtW.Key(gameFilePath)
		fmtW.BeginObject()
		fmtW.Key("is_lang_file")
		fmtW.Bool(chunk.IsLangFile)
		fmtW.Key("fragments")
		fmtW.BeginObject()
		for _, jsonPath := range chunk.Fragments.Keys() {
			frag, _ := chunk.Fragments.Get(jsonPath)
			fmtW.Key(jsonPath)
			writeFragment(fmtW, frag)
		}
		fmtW.EndObject()
		fmtW.EndObject()
	}
	fmtW.EndObject()
	fmtW.EndObject()

	if err := fmtW.Flush(); err != nil {
		return err
	}
	_, err := f.WriteString("\n")
	return err
}

func writeFragment(fmtW *jsonutil.Formatter, frag *Fragment) {
	fmtW.BeginObject()
	fmtW.Key("id")
	fmtW.String(frag.ID)
	fmtW.Key("lang_uid")
	fmtW.Int(int64(frag.LangUID))
	fmtW.Key("description")
	fmtW.BeginArray()
	for _, d := range frag.Description {
		fmtW.String(d)
	}
	fmtW.EndArray()
	fmtW.Key("original_text")
	fmtW.BeginArray()
	for _, line := range textToLines(frag.OriginalText) {
		fmtW.String(line)
	}
	fmtW.EndArray()
	fmtW.Key("reference_texts")
	fmtW.BeginObject()
	for locale, text := range frag.ReferenceTexts {
		fmtW.Key(locale)
		fmtW.BeginArray()
		for _, line := range textToLines(text) {
			fmtW.String(line)
		}
		fmtW.EndArray()
	}
	fmtW.EndObject()
	fmtW.Key("flags")
	fmtW.BeginArray()
	for _, flag := range frag.Flags {
		fmtW.String(flag)
	}
	fmtW.EndArray()
	fmtW.Key("translations")
	fmtW.BeginArray()
	for _, tr := range frag.Translations {
		fmtW.BeginObject()
		fmtW.Key("id")
		fmtW.String(tr.ID)
		fmtW.Key("author_username")
		fmtW.String(tr.AuthorUsername)
		fmtW.Key("editor_username")
		fmtW.String(tr.EditorUsername)
		fmtW.Key("creation_timestamp")
		fmtW.Int(tr.CreationTimestamp)
		fmtW.Key("modification_timestamp")
		fmtW.Int(tr.ModificationTimestamp)
		fmtW.Key("text")
		fmtW.BeginArray()
		for _, line := range textToLines(tr.Text) {
			fmtW.String(line)
		}
		fmtW.EndArray()
		fmtW.Key("flags")
		fmtW.BeginArray()
		for _, flag := range tr.Flags {
			fmtW.String(flag)
		}
		fmtW.EndArray()
		fmtW.EndObject()
	}
	fmtW.EndArray()
	fmtW.Key("comments")
	fmtW.BeginArray()
	for _, c := range frag.Comments {
		fmtW.BeginObject()
		fmtW.Key("id")
		fmtW.String(c.ID)
		fmtW.Key("author_username")
		fmtW.String(c.AuthorUsername)
		fmtW.Key("editor_username")
		fmtW.String(c.EditorUsername)
		fmtW.Key("creation_timestamp")
		fmtW.Int(c.CreationTimestamp)
		fmtW.Key("modification_timestamp")
		fmtW.Int(c.ModificationTimestamp)
		fmtW.Key("text")
		fmtW.BeginArray()
		for _, line := range textToLines(c.Text) {
			fmtW.String(line)
		}
		fmtW.EndArray()
		fmtW.EndObject()
	}
	fmtW.EndArray()
	fmtW.EndObject()
}

func objStr(v *jsonutil.Value, key string) string {
	if v == nil || v.Kind != jsonutil.KindObject {
		return ""
	}
	f, ok := v.Obj.Get(key)
	if !ok || f.Kind != jsonutil.KindString {
		return ""
	}
	return f.Str
}

func objInt(v *jsonutil.Value, key string) int64 {
	if v == nil || v.Kind != jsonutil.KindObject {
		return 0
	}
	f, ok := v.Obj.Get(key)
	if !ok || f.Kind != jsonutil.KindNumber {
		return 0
	}
	n, _ := f.Int64()
	return n
}

func objStrArr(v *jsonutil.Value, key string) []string {
	if v == nil || v.Kind != jsonutil.KindObject {
		return nil
	}
	f, ok := v.Obj.Get(key)
	if !ok || f.Kind != jsonutil.KindArray {
		return nil
	}
	var out []string
	for _, elem := range f.Arr {
		if elem.Kind == jsonutil.KindString {
			out = append(out, elem.Str)
		}
	}
	return out
}

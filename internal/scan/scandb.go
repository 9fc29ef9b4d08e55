package scan

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/standardbeagle/crosslocale/internal/clerrors"
	"github.com/standardbeagle/crosslocale/internal/jsonutil"
	"github.com/standardbeagle/crosslocale/internal/ordmap"
)

// Meta is the header of a scan database: which run produced it and
// against which game version.
type Meta struct {
	UUID              string
	CreationTimestamp int64
	GameVersion       string
	// ExtractedLocales is the richer shape's optional field (see Open
	// Questions in DESIGN.md): the set of locale codes the scan actually
	// extracted text for. Absent on the simpler on-disk shape.
	ExtractedLocales []string
}

// Fragment is one discovered translatable string inside a game file.
type Fragment struct {
	FileAssetRoot string
	FilePath      string
	JSONPath      string
	LangUID       int32
	Description   []string
	Flags         []string
	Text          map[string]string
}

// GameFile is one scanned JSON asset and every fragment found inside it.
type GameFile struct {
	AssetRoot  string
	Path       string
	IsLangFile bool
	Fragments  *ordmap.Map[string, *Fragment]
}

// Database is the persisted result of a scan: a game version plus every
// game file's fragments, in the order they were discovered.
type Database struct {
	Meta      Meta
	GameFiles *ordmap.Map[string, *GameFile]
	// ModificationTimestamp is the richer shape's optional field; it's
	// always populated when writing and defaulted to CreationTimestamp
	// when absent on read.
	ModificationTimestamp int64
}

// NewDatabase creates an empty scan database for a fresh scan.
func NewDatabase(gameVersion string, now int64) *Database {
	return &Database{
		Meta: Meta{
			UUID:              uuid.New().String(),
			CreationTimestamp: now,
			GameVersion:       gameVersion,
		},
		GameFiles:             ordmap.New[string, *GameFile](),
		ModificationTimestamp: now,
	}
}

// NewFile registers an empty GameFile under path (the asset-root-prefixed
// path produced by the file finder) and returns it.
func (db *Database) NewFile(assetRoot, path string, isLangFile bool) *GameFile {
	file := &GameFile{
		AssetRoot:  assetRoot,
		Path:       path,
		IsLangFile: isLangFile,
		Fragments:  ordmap.New[string, *Fragment](),
	}
	db.GameFiles.Set(path, file)
	return file
}

// NewFragment registers a fragment under jsonPath in file.
func (file *GameFile) NewFragment(jsonPath string, langUID int32, description []string, text map[string]string) *Fragment {
	f := &Fragment{
		FileAssetRoot: file.AssetRoot,
		FilePath:      file.Path,
		JSONPath:      jsonPath,
		LangUID:       langUID,
		Description:   description,
		Text:          text,
	}
	file.Fragments.Set(jsonPath, f)
	return f
}

// Open reads a scan database from path, accepting both the richer shape
// (with extracted_locales/modification_timestamp) and the simpler shape
// that omits them (see DESIGN.md Open Question 1).
func Open(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, clerrors.New("scan.Open", clerrors.CodeReadFailed, err).WithPath(path)
	}

	root, err := jsonutil.Decode(data)
	if err != nil {
		return nil, clerrors.New("scan.Open", clerrors.CodeScanDbCorrupt, err).WithPath(path)
	}
	if root.Kind != jsonutil.KindObject {
		return nil, clerrors.New("scan.Open", clerrors.CodeScanDbCorrupt, fmt.Errorf("expected a JSON object at the root")).WithPath(path)
	}

	db := &Database{GameFiles: ordmap.New[string, *GameFile]()}

	if v, ok := root.Obj.Get("uuid"); ok && v.Kind == jsonutil.KindString {
		db.Meta.UUID = v.Str
	}
	if v, ok := root.Obj.Get("creation_timestamp"); ok && v.Kind == jsonutil.KindNumber {
		n, _ := v.Int64()
		db.Meta.CreationTimestamp = n
	}
	if v, ok := root.Obj.Get("game_version"); ok && v.Kind == jsonutil.KindString {
		db.Meta.GameVersion = v.Str
	}
	if v, ok := root.Obj.Get("extracted_locales"); ok && v.Kind == jsonutil.KindArray {
		for _, elem := range v.Arr {
			if elem.Kind == jsonutil.KindString {
				db.Meta.ExtractedLocales = append(db.Meta.ExtractedLocales, elem.Str)
			}
		}
	}
	db.ModificationTimestamp = db.Meta.CreationTimestamp
	if v, ok := root.Obj.Get("modification_timestamp"); ok && v.Kind == jsonutil.KindNumber {
		n, _ := v.Int64()
		db.ModificationTimestamp = n
	}

	filesField, ok := root.Obj.Get("files")
	if !ok || filesField.Kind != jsonutil.KindObject {
		return nil, clerrors.New("scan.Open", clerrors.CodeScanDbCorrupt, fmt.Errorf("missing or invalid \"files\" field")).WithPath(path)
	}

	for _, fileEntry := range jsonutil.Entries(filesField) {
		fileVal := fileEntry.Value
		if fileVal.Kind != jsonutil.KindObject {
			continue
		}
		isLangFile := false
		if v, ok := fileVal.Obj.Get("is_lang_file"); ok && v.Kind == jsonutil.KindBool {
			isLangFile = v.Bool
		}
		assetRoot, _ := splitAssetRootFromPath(fileEntry.Key)
		file := db.NewFile(assetRoot, fileEntry.Key, isLangFile)

		fragmentsField, ok := fileVal.Obj.Get("fragments")
		if !ok || fragmentsField.Kind != jsonutil.KindObject {
			continue
		}
		for _, fragEntry := range jsonutil.Entries(fragmentsField) {
			fragVal := fragEntry.Value
			if fragVal.Kind != jsonutil.KindObject {
				continue
			}
			var langUID int32
			if v, ok := fragVal.Obj.Get("lang_uid"); ok && v.Kind == jsonutil.KindNumber {
				n, _ := v.Int64()
				langUID = int32(n)
			}
			var description []string
			if v, ok := fragVal.Obj.Get("description"); ok && v.Kind == jsonutil.KindArray {
				for _, elem := range v.Arr {
					if elem.Kind == jsonutil.KindString {
						description = append(description, elem.Str)
					}
				}
			}
			text := make(map[string]string)
			if v, ok := fragVal.Obj.Get("text"); ok && v.Kind == jsonutil.KindObject {
				for _, e := range jsonutil.Entries(v) {
					if e.Value.Kind == jsonutil.KindString {
						text[e.Key] = e.Value.Str
					}
				}
			}
			file.NewFragment(fragEntry.Key, langUID, description, text)
		}
	}

	return db, nil
}

// splitAssetRootFromPath recovers the asset_root prefix from a combined
// file path ("extension/<name>/data/..." or "data/...").
func splitAssetRootFromPath(path string) (assetRoot, rest string) {
	const extPrefix = "extension/"
	if len(path) > len(extPrefix) && path[:len(extPrefix)] == extPrefix {
		if idx := indexNthSlash(path, 2); idx >= 0 {
			return path[:idx+1], path[idx+1:]
		}
	}
	return "", path
}

func indexNthSlash(s string, n int) int {
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			count++
			if count == n {
				return i
			}
		}
	}
	return -1
}

// Write persists db to path, always emitting the richer shape
// (extracted_locales + modification_timestamp included).
func Write(db *Database, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return clerrors.New("scan.Write", clerrors.CodeWriteFailed, err).WithPath(path)
	}
	defer f.Close()

	indent := jsonutil.DefaultIndent
	fmtW := jsonutil.NewFormatter(f, jsonutil.FormatterConfig{Indent: &indent})

	fmtW.BeginObject()
	fmtW.Key("uuid")
	fmtW.String(db.Meta.UUID)
	fmtW.Key("creation_timestamp")
	fmtW.Int(db.Meta.CreationTimestamp)
	fmtW.Key("modification_timestamp")
	fmtW.Int(db.ModificationTimestamp)
	fmtW.Key("game_version")
	fmtW.String(db.Meta.GameVersion)
	fmtW.Key("extracted_locales")
	fmtW.BeginArray()
	for _, locale := range db.Meta.ExtractedLocales {
		fmtW.String(locale)
	}
	fmtW.EndArray()

	fmtW.Key("files")
	fmtW.BeginObject()
	for _, path := range db.GameFiles.Keys() {
		file, _ := db.GameFiles.Get(path)
		fmtW.Key(path)
		fmtW.BeginObject()
		fmtW.Key("is_lang_file")
		fmtW.Bool(file.IsLangFile)
		fmtW.Key("fragments")
		fmtW.BeginObject()
		for _, jsonPath := range file.Fragments.Keys() {
			frag, _ := file.Fragments.Get(jsonPath)
			fmtW.Key(jsonPath)
			fmtW.BeginObject()
			fmtW.Key("lang_uid")
			fmtW.Int(int64(frag.LangUID))
			fmtW.Key("description")
			fmtW.BeginArray()
			for _, d := range frag.Description {
				fmtW.String(d)
			}
			fmtW.EndArray()
			fmtW.Key("text")
			fmtW.BeginObject()
			for locale, text := range frag.Text {
				fmtW.Key(locale)
				fmtW.String(text)
			}
			fmtW.EndObject()
			fmtW.EndObject()
		}
		fmtW.EndObject()
		fmtW.EndObject()
	}
	fmtW.EndObject()
	fmtW.EndObject()

	if err := fmtW.Flush(); err != nil {
		return clerrors.New("scan.Write", clerrors.CodeWriteFailed, err).WithPath(path)
	}
	if _, err := f.WriteString("\n"); err != nil {
		return clerrors.New("scan.Write", clerrors.CodeWriteFailed, err).WithPath(path)
	}
	return nil
}

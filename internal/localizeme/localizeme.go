// Package localizeme implements the Localize Me translation pack format:
// path (de)serialization between CrossCode's asset tree and Localize Me's
// file_dict_path convention, and the pack entry shapes themselves.
//
// See https://github.com/L-Sherry/Localize-me/blob/9d0ff32abde457997ff58c35f20864d37ac8b2bf/Documentation.md
package localizeme

import (
	"strings"

	"github.com/standardbeagle/crosslocale/internal/jsonutil"
)

// Quality is a translator's self-reported confidence in one entry,
// carried through import but dropped on export (spec: "export emits only
// orig and text").
type Quality string

const (
	QualityUnknown    Quality = "unknown"
	QualityBad        Quality = "bad"
	QualityIncomplete Quality = "incomplete"
	QualityWrong      Quality = "wrong"
	QualitySpell      Quality = "spell"
)

// ParseFileDictPath splits a Localize Me file_dict_path at the first
// "/"-separated component ending in ".json": everything up to and
// including that component is the file path, everything after the next
// "/" is the json_path. Reports ok == false if no component ends in
// ".json".
func ParseFileDictPath(lmFileDictPath string) (filePath, jsonPath string, ok bool) {
	currIdx := 0
	for _, component := range strings.Split(lmFileDictPath, "/") {
		end := currIdx + len(component)
		if strings.HasSuffix(component, ".json") {
			filePath = lmFileDictPath[:end]
			if end+1 < len(lmFileDictPath) {
				jsonPath = lmFileDictPath[end+1:]
			}
			return filePath, jsonPath, true
		}
		currIdx = end + 1
	}
	return "", "", false
}

// SerializeFilePath converts an asset-tree-relative file path into the
// Localize Me file_path convention: the "data/" prefix is dropped.
func SerializeFilePath(filePath string) string {
	if rest, ok := strings.CutPrefix(filePath, "data/"); ok {
		return rest
	}
	return filePath
}

// DeserializeFilePath is the inverse of SerializeFilePath: paths already
// rooted under "extension" are left alone, everything else gets "data/"
// prepended back.
func DeserializeFilePath(lmFilePath string) string {
	if strings.HasPrefix(lmFilePath, "extension") {
		return lmFilePath
	}
	return "data/" + lmFilePath
}

// Entry is one fragment's worth of translation pack data, keyed by its
// dict path (SerializeFilePath(file_path) + "/" + json_path) once
// exported.
type Entry struct {
	FilePath string
	JSONPath string
	Orig     string
	Text     string
	Quality  Quality
	HasNote  bool
	Note     string
}

// DictKey returns the pack key this entry is (or would be) stored under.
func (e Entry) DictKey() string {
	return SerializeFilePath(e.FilePath) + "/" + e.JSONPath
}

// Import decodes a Localize Me translation pack. Unknown fields on each
// entry are ignored, matching the spec's documented import contract.
func Import(data []byte) ([]Entry, error) {
	root, err := jsonutil.Decode(data)
	if err != nil {
		return nil, err
	}
	if root.Kind != jsonutil.KindObject {
		return nil, errNotAnObject
	}

	var entries []Entry
	for _, e := range jsonutil.Entries(root) {
		filePath, jsonPath, ok := ParseFileDictPath(e.Key)
		if !ok {
			continue
		}
		entry := Entry{FilePath: DeserializeFilePath(filePath), JSONPath: jsonPath}

		if v, ok := e.Value.Obj.Get("orig"); ok && v.Kind == jsonutil.KindString {
			entry.Orig = v.Str
		}
		if v, ok := e.Value.Obj.Get("text"); ok && v.Kind == jsonutil.KindString {
			entry.Text = v.Str
		}
		if v, ok := e.Value.Obj.Get("quality"); ok && v.Kind == jsonutil.KindString {
			entry.Quality = Quality(v.Str)
		}
		if v, ok := e.Value.Obj.Get("note"); ok && v.Kind == jsonutil.KindString {
			entry.HasNote = true
			entry.Note = v.Str
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

var errNotAnObject = packFormatError("localize me pack root must be a JSON object")

type packFormatError string

func (e packFormatError) Error() string { return string(e) }

// Export writes entries, in the order given by the caller (per spec:
// "sorted by game-file order"), as a Localize Me translation pack. Only
// orig and text are emitted per entry.
func Export(f *jsonutil.Formatter, entries []Entry) {
	f.BeginObject()
	for _, e := range entries {
		f.Key(e.DictKey())
		f.BeginObject()
		f.Key("orig")
		f.String(e.Orig)
		f.Key("text")
		f.String(e.Text)
		f.EndObject()
	}
	f.EndObject()
}

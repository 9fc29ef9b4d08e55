package scan

import (
	"log"
	"strings"

	"github.com/standardbeagle/crosslocale/internal/jsonutil"
)

// MainLocale is the locale every lang label must carry text for.
const MainLocale = "en_US"

// KnownBuiltinLocales lists the locales the base game ships translations
// for out of the box.
var KnownBuiltinLocales = []string{"en_US", "de_DE", "zh_CN", "zh_TW", "ja_JP", "ko_KR"}

// LangUIDPropertyName is the optional numeric-id property a lang label
// may carry alongside its per-locale text.
const LangUIDPropertyName = "langUid"

// LangLabel is one discovered localizable object: a json_path inside a
// game file, the numeric lang UID (0 if absent), the text in the main
// locale (used for cheap pre-filtering), and the full per-locale text map.
type LangLabel struct {
	JSONPath       string
	LangUID        int32
	MainLocaleText string
	Text           map[string]string
}

// ExtractionOptions configures lang-label discovery.
type ExtractionOptions struct {
	// LocalesFilter restricts which locale keys (other than the lang UID
	// property) are collected. A nil filter collects every locale key
	// present.
	LocalesFilter map[string]struct{}
}

// ExtractFromFile walks jsonData and returns every lang label it finds, in
// document order. For a lang file (found.IsLangFile), the root object must
// have DOCTYPE == "STATIC-LANG-FILE"; if it doesn't, ExtractFromFile logs
// a warning and returns nil, matching the original's "invalid lang file"
// skip behavior.
func ExtractFromFile(found FoundJSONFile, jsonData *jsonutil.Value, options ExtractionOptions) []LangLabel {
	extract := extractGeneric
	if found.IsLangFile {
		doctype := objectStringField(jsonData, "DOCTYPE")
		if doctype != "STATIC-LANG-FILE" {
			log.Printf("%s: lang file is invalid: DOCTYPE isn't 'STATIC-LANG-FILE'", found.Path)
			return nil
		}
		extract = extractFromLangFile
	}
	return walkForLangLabels(found.Path, jsonData, extract, options)
}

func objectStringField(v *jsonutil.Value, key string) string {
	if v == nil || v.Kind != jsonutil.KindObject {
		return ""
	}
	field, ok := v.Obj.Get(key)
	if !ok || field.Kind != jsonutil.KindString {
		return ""
	}
	return field.Str
}

type extractFn func(options ExtractionOptions, filePath string, jsonPath []string, value *jsonutil.Value) *LangLabel

func extractGeneric(options ExtractionOptions, filePath string, jsonPath []string, value *jsonutil.Value) *LangLabel {
	if value == nil || value.Kind != jsonutil.KindObject || value.Obj.Len() == 0 {
		return nil
	}

	mainField, ok := value.Obj.Get(MainLocale)
	if !ok {
		return nil
	}
	if mainField.Kind != jsonutil.KindString {
		log.Printf("%s: lang label %v is invalid: property %q is not a string", filePath, jsonPath, MainLocale)
		return nil
	}
	mainLocaleText := mainField.Str

	jsonPathStr := strings.Join(jsonPath, "/")
	var langUID int32
	text := make(map[string]string, len(KnownBuiltinLocales))

	for _, entry := range jsonutil.Entries(value) {
		k, v := entry.Key, entry.Value
		if k == LangUIDPropertyName {
			switch v.Kind {
			case jsonutil.KindNull:
				langUID = 0
			case jsonutil.KindNumber:
				n, err := v.Int64()
				if err != nil || n < -(1<<31) || n > (1<<31-1) {
					log.Printf("%s: lang label %v is invalid: lang UID %v can't be converted to i32", filePath, jsonPathStr, v.Num)
					return nil
				}
				langUID = int32(n)
			default:
				log.Printf("%s: lang label %v is invalid: optional property %q is not a number", filePath, jsonPathStr, LangUIDPropertyName)
				return nil
			}
			continue
		}

		if options.LocalesFilter != nil {
			if _, ok := options.LocalesFilter[k]; !ok {
				continue
			}
		}

		if v.Kind != jsonutil.KindString {
			log.Printf("%s: lang label %v is invalid: property %q is not a string", filePath, jsonPathStr, k)
			return nil
		}
		text[k] = v.Str
	}

	return &LangLabel{JSONPath: jsonPathStr, LangUID: langUID, MainLocaleText: mainLocaleText, Text: text}
}

func extractFromLangFile(_ ExtractionOptions, _ string, jsonPath []string, value *jsonutil.Value) *LangLabel {
	if len(jsonPath) == 0 || jsonPath[0] != "labels" {
		return nil
	}
	if value == nil || value.Kind != jsonutil.KindString {
		return nil
	}
	return &LangLabel{
		JSONPath:       strings.Join(jsonPath, "/"),
		LangUID:        0,
		MainLocaleText: value.Str,
		Text:           map[string]string{MainLocale: value.Str},
	}
}

type frame struct {
	entries []jsonutil.Entry
	idx     int
}

// walkForLangLabels performs the same depth-first, stack-based traversal
// as the original's LangLabelIter: values that successfully extract a
// lang label are emitted but not recursed into (nested labels are never
// reported), everything else that's an array/object is descended into.
func walkForLangLabels(filePath string, root *jsonutil.Value, extract extractFn, options ExtractionOptions) []LangLabel {
	var labels []LangLabel
	var path []string
	var stack []frame

	if entries := jsonutil.Entries(root); entries != nil {
		stack = append(stack, frame{entries: entries})
	}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.idx >= len(top.entries) {
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				path = path[:len(path)-1]
			}
			continue
		}

		entry := top.entries[top.idx]
		top.idx++
		path = append(path, entry.Key)

		if label := extract(options, filePath, path, entry.Value); label != nil {
			labels = append(labels, *label)
			path = path[:len(path)-1]
			continue
		}

		if childEntries := jsonutil.Entries(entry.Value); childEntries != nil {
			stack = append(stack, frame{entries: childEntries})
			continue
		}

		path = path[:len(path)-1]
	}

	return labels
}

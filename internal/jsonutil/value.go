package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/standardbeagle/crosslocale/internal/ordmap"
)

// Kind identifies the type of a decoded Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a JSON value decoded while preserving object key insertion
// order — something encoding/json's map[string]interface{} cannot do.
// The scanner and description generator both need to walk a document in
// its on-disk order, so every object is backed by an ordmap.Map rather
// than a plain Go map.
type Value struct {
	Kind Kind
	Bool bool
	Num  json.Number
	Str  string
	Arr  []*Value
	Obj  *ordmap.Map[string, *Value]
}

// TypeName mirrors the original's type_name_of helper, used in error
// messages that report an unexpected JSON shape.
func (v *Value) TypeName() string {
	if v == nil {
		return "null"
	}
	return v.Kind.String()
}

// Int64 returns the value as an int64, for number values that fit.
func (v *Value) Int64() (int64, error) {
	if v == nil || v.Kind != KindNumber {
		return 0, fmt.Errorf("expected a number, got %s", v.TypeName())
	}
	return v.Num.Int64()
}

// Decode parses data into a Value tree, preserving object key order.
func Decode(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case nil:
		return &Value{Kind: KindNull}, nil
	case bool:
		return &Value{Kind: KindBool, Bool: t}, nil
	case json.Number:
		return &Value{Kind: KindNumber, Num: t}, nil
	case string:
		return &Value{Kind: KindString, Str: t}, nil
	case json.Delim:
		switch t {
		case '[':
			arr := make([]*Value, 0)
			for dec.More() {
				elem, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, elem)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return &Value{Kind: KindArray, Arr: arr}, nil
		case '{':
			obj := ordmap.New[string, *Value]()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return &Value{Kind: KindObject, Obj: obj}, nil
		}
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}

// Entry is one (key, value) pair produced by iterating an array or
// object Value. For arrays, Key is the stringified index.
type Entry struct {
	Key   string
	Value *Value
}

// Entries returns the ordered entries of v, or nil if v is not an array
// or object — the Go rendition of the original's ValueEntriesIter, which
// treats arrays as index-keyed and objects as string-keyed sequences so
// callers can walk either uniformly.
func Entries(v *Value) []Entry {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindArray:
		out := make([]Entry, len(v.Arr))
		for i, elem := range v.Arr {
			out[i] = Entry{Key: strconv.Itoa(i), Value: elem}
		}
		return out
	case KindObject:
		keys := v.Obj.Keys()
		out := make([]Entry, 0, len(keys))
		for _, k := range keys {
			val, _ := v.Obj.Get(k)
			out = append(out, Entry{Key: k, Value: val})
		}
		return out
	default:
		return nil
	}
}

// WriteTo streams v through a Formatter, preserving the original key and
// element order.
func (v *Value) WriteTo(f *Formatter) {
	if v == nil {
		f.Null()
		return
	}
	switch v.Kind {
	case KindNull:
		f.Null()
	case KindBool:
		f.Bool(v.Bool)
	case KindNumber:
		f.Raw(v.Num.String())
	case KindString:
		f.String(v.Str)
	case KindArray:
		f.BeginArray()
		for _, elem := range v.Arr {
			elem.WriteTo(f)
		}
		f.EndArray()
	case KindObject:
		f.BeginObject()
		v.Obj.Each(func(key string, val *Value) {
			f.Key(key)
			val.WriteTo(f)
		})
		f.EndObject()
	}
}

package scan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/standardbeagle/crosslocale/internal/jsonutil"
)

// generatorState accumulates the description lines for one fragment as
// GenerateDescription walks from the file root down to the fragment's
// json_path.
type generatorState struct {
	fileData          *jsonutil.Value
	description       []string
	words             []string
	currentEntityType string
}

// GenerateDescription re-walks fileData along fragmentJSONPath (a
// "/"-separated json path) and produces a human-readable tag line for
// each step that looks like a game entity, event step, or dialog line —
// rewritten from the CrossCode Russian translation tooling's tagging
// heuristics.
func GenerateDescription(fileData *jsonutil.Value, fragmentJSONPath string) ([]string, error) {
	state := &generatorState{fileData: fileData}

	current := fileData
	for depth, key := range strings.Split(fragmentJSONPath, "/") {
		next := step(current, key)
		if next == nil {
			return nil, fmt.Errorf("invalid JSON path at depth %d", depth+1)
		}
		generateForJSONObject(current, key, state)
		current = next
	}

	return state.description, nil
}

func step(v *jsonutil.Value, key string) *jsonutil.Value {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case jsonutil.KindObject:
		val, _ := v.Obj.Get(key)
		return val
	case jsonutil.KindArray:
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= len(v.Arr) {
			return nil
		}
		return v.Arr[idx]
	default:
		return nil
	}
}

func strField(obj *jsonutil.Value, key string) (string, bool) {
	if obj == nil || obj.Kind != jsonutil.KindObject {
		return "", false
	}
	f, ok := obj.Obj.Get(key)
	if !ok || f.Kind != jsonutil.KindString {
		return "", false
	}
	return f.Str, true
}

func objField(obj *jsonutil.Value, key string) (*jsonutil.Value, bool) {
	if obj == nil || obj.Kind != jsonutil.KindObject {
		return nil, false
	}
	f, ok := obj.Obj.Get(key)
	if !ok || f.Kind != jsonutil.KindObject {
		return nil, false
	}
	return f, true
}

func generateForJSONObject(value *jsonutil.Value, key string, state *generatorState) {
	state.words = state.words[:0]
	if value == nil || value.Kind != jsonutil.KindObject {
		return
	}

	switch {
	case state.currentEntityType == "XenoDialog" && key == "text":
		generateXenoDialogWords(value, state)

	default:
		if typeStr, ok := strField(value, "type"); ok {
			state.words = append(state.words, typeStr)

			settings, hasSettings := objField(value, "settings")
			xField, hasX := objFieldAny(value, "x")
			yField, hasY := objFieldAny(value, "y")

			if hasSettings && hasX && xField.Kind == jsonutil.KindNumber && hasY && yField.Kind == jsonutil.KindNumber {
				state.currentEntityType = typeStr
				generateEntityWords(settings, state)
			} else {
				generateEventStepWords(value, key, typeStr, state)
			}
		} else if cond, ok := strField(value, "condition"); ok && cond != "" {
			state.words = append(state.words, "IF", cond)
		}
	}

	if len(state.words) > 0 {
		line := strings.TrimSpace(strings.Join(state.words, " "))
		if line != "" {
			state.description = append(state.description, line)
		}
	}
}

func objFieldAny(obj *jsonutil.Value, key string) (*jsonutil.Value, bool) {
	if obj == nil || obj.Kind != jsonutil.KindObject {
		return nil, false
	}
	f, ok := obj.Obj.Get(key)
	return f, ok
}

// generateXenoDialogWords implements the XenoDialog "text" step special
// case: resolve entity.name against the file's top-level entities array
// (matching an NPC by settings.name) and surface that NPC's
// settings.characterName, inspired by Localize-Me-Tools' tags.py.
func generateXenoDialogWords(value *jsonutil.Value, state *generatorState) {
	entity, ok := objField(value, "entity")
	if !ok {
		return
	}
	globalField, hasGlobal := objFieldAny(entity, "global")
	entityName, hasName := strField(entity, "name")
	if !hasGlobal || globalField.Kind != jsonutil.KindBool || !globalField.Bool || !hasName {
		return
	}

	entitiesField, ok := objFieldAny(state.fileData, "entities")
	if !ok || entitiesField.Kind != jsonutil.KindArray {
		return
	}

	for _, entity2 := range entitiesField.Arr {
		if entity2.Kind != jsonutil.KindObject {
			continue
		}
		entity2Type, ok := strField(entity2, "type")
		if !ok || entity2Type != "NPC" {
			continue
		}
		settings, ok := objField(entity2, "settings")
		if !ok {
			continue
		}
		settingsName, ok := strField(settings, "name")
		if !ok || settingsName != entityName {
			continue
		}
		if characterName, ok := strField(settings, "characterName"); ok {
			state.words = append(state.words, characterName)
		}
		return
	}
}

func generateEntityWords(settings *jsonutil.Value, state *generatorState) {
	if name, ok := strField(settings, "name"); ok && name != "" {
		state.words = append(state.words, name)
	}
	if startCondition, ok := strField(settings, "startCondition"); ok && startCondition != "" {
		state.words = append(state.words, "START IF", startCondition)
	}
	if spawnCondition, ok := strField(settings, "spawnCondition"); ok && spawnCondition != "" {
		state.words = append(state.words, "SPAWN IF", spawnCondition)
	}
}

func generateEventStepWords(value *jsonutil.Value, key, typeStr string, state *generatorState) {
	if typeStr == "IF" {
		switch key {
		case "thenStep":
		case "elseStep":
			state.words = append(state.words, "NOT")
		default:
			state.words = append(state.words, key)
		}
		if condition, ok := strField(value, "condition"); ok && condition != "" {
			state.words = append(state.words, condition)
		}
		return
	}

	person, ok := objFieldAny(value, "person")
	if !ok {
		return
	}
	switch person.Kind {
	case jsonutil.KindString:
		state.words = append(state.words, person.Str, "@DEFAULT")
	case jsonutil.KindObject:
		p, okP := strField(person, "person")
		expr, okE := strField(person, "expression")
		if okP && okE {
			state.words = append(state.words, p, "@"+expr)
		}
	}
}

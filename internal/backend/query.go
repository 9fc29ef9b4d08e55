package backend

import (
	"encoding/json"
	"fmt"

	"github.com/standardbeagle/crosslocale/internal/clerrors"
	"github.com/standardbeagle/crosslocale/internal/project"
)

type queryFragmentsRequest struct {
	ProjectID    uint32          `json:"project_id"`
	FromTrFile   *string         `json:"from_tr_file"`
	FromGameFile *string         `json:"from_game_file"`
	SliceStart   *int            `json:"slice_start"`
	SliceEnd     *int            `json:"slice_end"`
	JSONPaths    []string        `json:"json_paths"`
	SelectFields map[string]bool `json:"select_fields"`
	OnlyCount    bool            `json:"only_count"`
}

type queryFragmentsResult struct {
	Count     int              `json:"count"`
	Fragments []map[string]any `json:"fragments"`
}

func handleQueryFragments(d *Dispatcher, params json.RawMessage) (any, error) {
	var req queryFragmentsRequest
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	p, err := d.lookupProject(req.ProjectID)
	if err != nil {
		return nil, err
	}

	if len(req.JSONPaths) > 0 {
		if req.FromGameFile == nil {
			return nil, clerrors.New("backend.query_fragments", clerrors.CodeQueryRequiresGameFile,
				fmt.Errorf("json_paths requires from_game_file to identify a single game file"))
		}
		return queryByJSONPaths(p, req)
	}

	scope, err := scopeFragments(p, req.FromTrFile, req.FromGameFile)
	if err != nil {
		return nil, err
	}

	start, end := 0, len(scope)
	if req.SliceStart != nil {
		start = *req.SliceStart
	}
	if req.SliceEnd != nil {
		end = *req.SliceEnd
	}
	if start > end {
		return nil, clerrors.New("backend.query_fragments", clerrors.CodeRangeInvalid,
			fmt.Errorf("slice_start %d > slice_end %d", start, end))
	}
	if end > len(scope) {
		return nil, clerrors.New("backend.query_fragments", clerrors.CodeRangeOverflow,
			fmt.Errorf("slice_end %d exceeds %d available fragments", end, len(scope)))
	}
	sliced := scope[start:end]

	if req.OnlyCount {
		return queryFragmentsResult{Count: len(sliced), Fragments: []map[string]any{}}, nil
	}

	views := make([]map[string]any, len(sliced))
	for i, frag := range sliced {
		views[i] = fragmentView(frag, req.SelectFields)
	}
	return queryFragmentsResult{Count: len(views), Fragments: views}, nil
}

func queryByJSONPaths(p *project.Project, req queryFragmentsRequest) (any, error) {
	var chunk *project.GameFileChunk
	if req.FromTrFile != nil {
		tf, ok := p.TrFiles.Get(*req.FromTrFile)
		if !ok {
			return nil, fmt.Errorf("unknown tr_file %q", *req.FromTrFile)
		}
		c, ok := tf.GameFileChunks.Get(*req.FromGameFile)
		if !ok {
			return nil, fmt.Errorf("tr_file %q has no chunk for game file %q", *req.FromTrFile, *req.FromGameFile)
		}
		chunk = c
	}

	vgf, ok := p.VirtualGameFiles.Get(*req.FromGameFile)
	if !ok && chunk == nil {
		return nil, fmt.Errorf("unknown game file %q", *req.FromGameFile)
	}

	views := make([]map[string]any, len(req.JSONPaths))
	count := 0
	for i, jsonPath := range req.JSONPaths {
		var frag *project.Fragment
		var found bool
		if chunk != nil {
			frag, found = chunk.Fragments.Get(jsonPath)
		} else {
			frag, found = vgf.FragmentByJSONPath(jsonPath)
		}
		if !found {
			views[i] = nil
			continue
		}
		count++
		views[i] = fragmentView(frag, req.SelectFields)
	}

	if req.OnlyCount {
		return queryFragmentsResult{Count: count, Fragments: []map[string]any{}}, nil
	}
	return queryFragmentsResult{Count: len(views), Fragments: views}, nil
}

// scopeFragments builds the ordered fragment list a slice query runs
// over, per spec §4.10's scoping rules.
func scopeFragments(p *project.Project, fromTrFile, fromGameFile *string) ([]*project.Fragment, error) {
	switch {
	case fromTrFile != nil && fromGameFile != nil:
		tf, ok := p.TrFiles.Get(*fromTrFile)
		if !ok {
			return nil, fmt.Errorf("unknown tr_file %q", *fromTrFile)
		}
		chunk, ok := tf.GameFileChunks.Get(*fromGameFile)
		if !ok {
			return nil, fmt.Errorf("tr_file %q has no chunk for game file %q", *fromTrFile, *fromGameFile)
		}
		return fragmentsOfChunk(chunk), nil

	case fromTrFile != nil:
		tf, ok := p.TrFiles.Get(*fromTrFile)
		if !ok {
			return nil, fmt.Errorf("unknown tr_file %q", *fromTrFile)
		}
		var out []*project.Fragment
		for _, gameFilePath := range tf.GameFileChunks.Keys() {
			chunk, _ := tf.GameFileChunks.Get(gameFilePath)
			out = append(out, fragmentsOfChunk(chunk)...)
		}
		return out, nil

	case fromGameFile != nil:
		vgf, ok := p.VirtualGameFiles.Get(*fromGameFile)
		if !ok {
			return nil, fmt.Errorf("unknown game file %q", *fromGameFile)
		}
		return vgf.Fragments(), nil

	default:
		var out []*project.Fragment
		for _, trFilePath := range p.TrFiles.Keys() {
			tf, _ := p.TrFiles.Get(trFilePath)
			for _, gameFilePath := range tf.GameFileChunks.Keys() {
				chunk, _ := tf.GameFileChunks.Get(gameFilePath)
				out = append(out, fragmentsOfChunk(chunk)...)
			}
		}
		return out, nil
	}
}

func fragmentsOfChunk(chunk *project.GameFileChunk) []*project.Fragment {
	out := make([]*project.Fragment, 0, chunk.Fragments.Len())
	for _, jsonPath := range chunk.Fragments.Keys() {
		frag, _ := chunk.Fragments.Get(jsonPath)
		out = append(out, frag)
	}
	return out
}

// fragmentView projects frag down to exactly the fields requested by
// fields; a nil/empty fields map includes every field.
func fragmentView(frag *project.Fragment, fields map[string]bool) map[string]any {
	all := len(fields) == 0
	want := func(name string) bool { return all || fields[name] }

	view := make(map[string]any, len(fields))
	if want("id") {
		view["id"] = frag.ID
	}
	if want("file_path") {
		view["file_path"] = frag.FilePath
	}
	if want("json_path") {
		view["json_path"] = frag.JSONPath
	}
	if want("lang_uid") {
		view["lang_uid"] = frag.LangUID
	}
	if want("description") {
		view["description"] = frag.Description
	}
	if want("original_text") {
		view["original_text"] = frag.OriginalText
	}
	if want("reference_texts") {
		view["reference_texts"] = frag.ReferenceTexts
	}
	if want("flags") {
		view["flags"] = frag.Flags
	}
	if want("translations") {
		view["translations"] = frag.Translations
	}
	if want("comments") {
		view["comments"] = frag.Comments
	}
	if want("best_translation_text") {
		view["best_translation_text"] = frag.BestTranslationText()
	}
	return view
}

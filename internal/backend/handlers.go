package backend

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/standardbeagle/crosslocale/internal/clerrors"
	"github.com/standardbeagle/crosslocale/internal/project"
)

func (d *Dispatcher) buildMethodTable() map[string]methodSpec {
	return map[string]methodSpec{
		"get_backend_info": {
			schema:  &jsonschema.Schema{Type: "object"},
			handler: handleGetBackendInfo,
		},
		"open_project": {
			schema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"dir": {Type: "string", Description: "path to the project's root directory"},
				},
				Required: []string{"dir"},
			},
			handler: handleOpenProject,
		},
		"close_project": {
			schema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"project_id": {Type: "integer"},
				},
				Required: []string{"project_id"},
			},
			handler: handleCloseProject,
		},
		"get_project_meta": {
			schema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"project_id": {Type: "integer"},
				},
				Required: []string{"project_id"},
			},
			handler: handleGetProjectMeta,
		},
		"list_files": {
			schema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"project_id": {Type: "integer"},
					"file_type":  {Type: "string", Description: "tr_file | game_file"},
				},
				Required: []string{"project_id", "file_type"},
			},
			handler: handleListFiles,
		},
		"query_fragments": {
			schema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"project_id":     {Type: "integer"},
					"from_tr_file":   {Type: "string"},
					"from_game_file": {Type: "string"},
					"slice_start":    {Type: "integer"},
					"slice_end":      {Type: "integer"},
					"json_paths":     {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
					"select_fields": {
						Type:        "object",
						Description: "field name -> include this field in each returned fragment",
					},
					"only_count": {Type: "boolean"},
				},
				Required: []string{"project_id", "select_fields"},
			},
			handler: handleQueryFragments,
		},
	}
}

func handleGetBackendInfo(d *Dispatcher, _ json.RawMessage) (any, error) {
	return backendInfoResult{
		ImplementationName:    d.info.ImplementationName,
		ImplementationVersion: d.info.ImplementationVersion,
		NiceVersion:           d.info.NiceVersion,
		ProtocolVersion:       d.info.ProtocolVersion,
	}, nil
}

func (d *Dispatcher) lookupProject(id uint32) (*project.Project, error) {
	p, ok := d.projects[id]
	if !ok {
		return nil, clerrors.New("backend.lookupProject", clerrors.CodeProjectNotFound,
			fmt.Errorf("no open project with id %d", id))
	}
	return p, nil
}

func handleOpenProject(d *Dispatcher, params json.RawMessage) (any, error) {
	var req struct {
		Dir string `json:"dir"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	p, err := project.Open(req.Dir)
	if err != nil {
		return nil, err
	}

	id := d.ids.Next()
	d.projects[id] = p
	return struct {
		ProjectID uint32 `json:"project_id"`
	}{ProjectID: id}, nil
}

func handleCloseProject(d *Dispatcher, params json.RawMessage) (any, error) {
	var req struct {
		ProjectID uint32 `json:"project_id"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	if _, err := d.lookupProject(req.ProjectID); err != nil {
		return nil, err
	}
	delete(d.projects, req.ProjectID)
	return struct{}{}, nil
}

type projectMetaResult struct {
	ID                    string   `json:"id"`
	CreationTimestamp     int64    `json:"creation_timestamp"`
	ModificationTimestamp int64    `json:"modification_timestamp"`
	GameVersion           string   `json:"game_version"`
	OriginalLocale        string   `json:"original_locale"`
	ReferenceLocales      []string `json:"reference_locales"`
	TranslationLocale     string   `json:"translation_locale"`
	TranslationsDir       string   `json:"translations_dir"`
	Splitter              string   `json:"splitter"`
}

func handleGetProjectMeta(d *Dispatcher, params json.RawMessage) (any, error) {
	var req struct {
		ProjectID uint32 `json:"project_id"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	p, err := d.lookupProject(req.ProjectID)
	if err != nil {
		return nil, err
	}
	return projectMetaResult{
		ID:                    p.Meta.ID,
		CreationTimestamp:     p.Meta.CreationTimestamp,
		ModificationTimestamp: p.Meta.ModificationTimestamp,
		GameVersion:           p.Meta.GameVersion,
		OriginalLocale:        p.Meta.OriginalLocale,
		ReferenceLocales:      p.Meta.ReferenceLocales,
		TranslationLocale:     p.Meta.TranslationLocale,
		TranslationsDir:       p.Meta.TranslationsDir,
		Splitter:              p.Meta.SplitterID,
	}, nil
}

const (
	fileTypeTrFile   = "tr_file"
	fileTypeGameFile = "game_file"
)

func handleListFiles(d *Dispatcher, params json.RawMessage) (any, error) {
	var req struct {
		ProjectID uint32 `json:"project_id"`
		FileType  string `json:"file_type"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	p, err := d.lookupProject(req.ProjectID)
	if err != nil {
		return nil, err
	}

	var files []string
	switch req.FileType {
	case fileTypeTrFile:
		files = p.TrFiles.Keys()
	case fileTypeGameFile:
		files = p.VirtualGameFiles.Keys()
	default:
		return nil, fmt.Errorf("unknown file_type %q", req.FileType)
	}

	return struct {
		Files []string `json:"files"`
	}{Files: files}, nil
}

package backend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/crosslocale/internal/project"
)

// buildFiveFragmentProject builds a single game file with 5 fragments in
// one tr-file, matching the worked example from spec §8.
func buildFiveFragmentProject(t *testing.T) (*project.Project, *Dispatcher, uint32) {
	t.Helper()
	rootDir := t.TempDir()
	p := project.New(rootDir, project.Meta{
		ID:                "proj-1",
		GameVersion:       "1.4.2-4226",
		OriginalLocale:    "en_US",
		TranslationLocale: "ru_RU",
		TranslationsDir:   "translations",
		SplitterID:        "monolithic-file",
	})
	tf := p.NewTrFile("translation.json", 1000)
	for i := 0; i < 5; i++ {
		frag, err := p.NewFragment(tf, "data/lang/sc/gui.en_US.json", jsonPathFor(i), 1000)
		require.NoError(t, err)
		frag.SetOriginalText("text")
	}
	require.NoError(t, p.Write())

	d := New(testInfo(), testLogger())
	d.Process(handshakeRequest(1, 0))
	openResp, fatal := d.Process(Request{ID: 2, Method: "open_project",
		Params: mustParamsT(map[string]any{"dir": rootDir})})
	require.False(t, fatal)
	require.Nil(t, openResp.Error)
	raw, err := json.Marshal(openResp.Result)
	require.NoError(t, err)
	var parsed struct {
		ProjectID uint32 `json:"project_id"`
	}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return p, d, parsed.ProjectID
}

func jsonPathFor(i int) string {
	return []string{"labels/a", "labels/b", "labels/c", "labels/d", "labels/e"}[i]
}

func queryRequest(id, reqID uint32, extra map[string]any) Request {
	params := map[string]any{"project_id": id, "select_fields": map[string]bool{}}
	for k, v := range extra {
		params[k] = v
	}
	return Request{ID: reqID, Method: "query_fragments", Params: mustParamsT(params)}
}

func TestQueryFragmentsSliceOnlyCount(t *testing.T) {
	_, d, id := buildFiveFragmentProject(t)

	resp, fatal := d.Process(queryRequest(id, 10, map[string]any{
		"from_game_file": "data/lang/sc/gui.en_US.json",
		"slice_start":    1,
		"slice_end":      4,
		"only_count":     true,
	}))
	require.False(t, fatal)
	require.Nil(t, resp.Error)

	raw, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var result queryFragmentsResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, 3, result.Count)
	assert.Empty(t, result.Fragments)
}

func TestQueryFragmentsStartAfterEndIsRangeInvalid(t *testing.T) {
	_, d, id := buildFiveFragmentProject(t)

	resp, fatal := d.Process(queryRequest(id, 10, map[string]any{
		"from_game_file": "data/lang/sc/gui.en_US.json",
		"slice_start":    4,
		"slice_end":      3,
	}))
	require.False(t, fatal)
	require.NotNil(t, resp.Error)
}

func TestQueryFragmentsEndBeyondLengthIsRangeOverflow(t *testing.T) {
	_, d, id := buildFiveFragmentProject(t)

	resp, fatal := d.Process(queryRequest(id, 10, map[string]any{
		"from_game_file": "data/lang/sc/gui.en_US.json",
		"slice_end":      100,
	}))
	require.False(t, fatal)
	require.NotNil(t, resp.Error)
}

func TestQueryFragmentsJSONPathsRequiresGameFile(t *testing.T) {
	_, d, id := buildFiveFragmentProject(t)

	resp, fatal := d.Process(queryRequest(id, 10, map[string]any{
		"json_paths": []string{"labels/a"},
	}))
	require.False(t, fatal)
	require.NotNil(t, resp.Error)
}

func TestQueryFragmentsJSONPathsMissingPathIsNullSlot(t *testing.T) {
	_, d, id := buildFiveFragmentProject(t)

	resp, fatal := d.Process(queryRequest(id, 10, map[string]any{
		"from_game_file": "data/lang/sc/gui.en_US.json",
		"json_paths":     []string{"labels/a", "labels/does-not-exist"},
	}))
	require.False(t, fatal)
	require.Nil(t, resp.Error)

	raw, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var result queryFragmentsResult
	require.NoError(t, json.Unmarshal(raw, &result))
	require.Len(t, result.Fragments, 2)
	assert.NotNil(t, result.Fragments[0])
	assert.Nil(t, result.Fragments[1])
}

func TestQueryFragmentsProjectScopeCoversEveryTrFile(t *testing.T) {
	_, d, id := buildFiveFragmentProject(t)

	resp, fatal := d.Process(queryRequest(id, 10, map[string]any{"only_count": true}))
	require.False(t, fatal)
	require.Nil(t, resp.Error)

	raw, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var result queryFragmentsResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, 5, result.Count)
}

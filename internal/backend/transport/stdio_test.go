package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/crosslocale/internal/backend"
)

func testDispatcher() *backend.Dispatcher {
	return backend.New(backend.Info{
		ImplementationName:    "crosslocale",
		ImplementationVersion: "0.1.0",
		NiceVersion:           "0.1.0",
		ProtocolVersion:       0,
	}, log.New(io.Discard, "", 0))
}

func TestRunStdioHandshakeThenGetBackendInfo(t *testing.T) {
	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"handshake","params":{"protocol_version":0}}`,
		`{"jsonrpc":"2.0","id":2,"method":"get_backend_info","params":{}}`,
	}, "\n") + "\n"

	var out bytes.Buffer
	err := RunStdio(testDispatcher(), strings.NewReader(input), &out, log.New(io.Discard, "", 0))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var first backend.Response
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Nil(t, first.Error)

	var second backend.Response
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Nil(t, second.Error)
}

func TestRunStdioStopsOnFatalHandshakeFailure(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"not_handshake","params":{}}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"get_backend_info","params":{}}` + "\n"

	var out bytes.Buffer
	err := RunStdio(testDispatcher(), strings.NewReader(input), &out, log.New(io.Discard, "", 0))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1, "the second line must never be processed once the handshake fails fatally")

	var resp backend.Response
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &resp))
	require.NotNil(t, resp.Error)
}

func TestRunStdioSkipsMalformedLines(t *testing.T) {
	input := "not json at all\n" +
		`{"jsonrpc":"2.0","id":1,"method":"handshake","params":{"protocol_version":0}}` + "\n"

	var out bytes.Buffer
	err := RunStdio(testDispatcher(), strings.NewReader(input), &out, log.New(io.Discard, "", 0))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
}

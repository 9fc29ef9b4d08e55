// Package backend implements the single-threaded request/response
// dispatcher that sits between a transport (stdio, or an in-memory queue
// pair for the C ABI) and the project/pipeline packages: handshake
// gating, a monotonic project-id allocator, and the registered method
// table (get_backend_info, open_project, close_project,
// get_project_meta, list_files, query_fragments).
package backend

import "encoding/json"

// Request is one incoming line: either the mandatory first "handshake"
// call or any registered method call afterward.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint32          `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// ErrorObject is a response's error payload; it carries only a
// human-readable message, per spec's wire protocol.
type ErrorObject struct {
	Message string `json:"message"`
}

// Response is one outgoing line. Exactly one of Result/Error is set.
type Response struct {
	JSONRPC string       `json:"jsonrpc"`
	ID      uint32       `json:"id"`
	Result  any          `json:"result,omitempty"`
	Error   *ErrorObject `json:"error,omitempty"`
}

func okResponse(id uint32, result any) Response {
	return Response{JSONRPC: "2.0", ID: id, Result: result}
}

func errResponse(id uint32, message string) Response {
	return Response{JSONRPC: "2.0", ID: id, Error: &ErrorObject{Message: message}}
}

package backend

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/standardbeagle/crosslocale/internal/clerrors"
	"github.com/standardbeagle/crosslocale/internal/project"
)

// Info identifies the implementation that get_backend_info reports.
type Info struct {
	ImplementationName    string
	ImplementationVersion string
	NiceVersion           string
	ProtocolVersion       uint32
}

type handlerFunc func(d *Dispatcher, params json.RawMessage) (any, error)

type methodSpec struct {
	schema  *jsonschema.Schema
	handler handlerFunc
}

// Dispatcher is the backend's single-threaded request processor: exactly
// one request is handled to completion before the next is read, so none
// of its state (open project table, id allocator, handshake flag) needs
// synchronization.
type Dispatcher struct {
	info Info
	log  *log.Logger

	handshakeDone bool
	projects      map[uint32]*project.Project
	ids           *idAllocator
	methods       map[string]methodSpec
}

// New constructs a Dispatcher that hasn't yet received its handshake.
func New(info Info, logger *log.Logger) *Dispatcher {
	d := &Dispatcher{
		info:     info,
		log:      logger,
		projects: make(map[uint32]*project.Project),
		ids:      newIDAllocator(),
	}
	d.methods = d.buildMethodTable()
	return d
}

// Process handles one decoded request and returns the exactly-one
// response it produces. fatal is true when the handshake itself failed,
// signaling to the transport that the connection must be torn down.
func (d *Dispatcher) Process(req Request) (resp Response, fatal bool) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Printf("request %d (%s): panic recovered: %v", req.ID, req.Method, r)
			resp = errResponse(req.ID, "internal error")
		}
	}()

	if !d.handshakeDone {
		if req.Method != "handshake" {
			d.log.Printf("request %d: expected a handshake message, got %q", req.ID, req.Method)
			return errResponse(req.ID, "expected a handshake message"), true
		}
		return d.handleHandshake(req)
	}

	if req.Method == "handshake" {
		return errResponse(req.ID, "already handshaked"), false
	}

	spec, ok := d.methods[req.Method]
	if !ok {
		d.log.Printf("request %d: unknown method %q", req.ID, req.Method)
		return errResponse(req.ID, fmt.Sprintf("unknown method %q", req.Method)), false
	}

	if err := validateRequired(spec.schema, req.Params); err != nil {
		d.log.Printf("request %d (%s): %v", req.ID, req.Method, err)
		return errResponse(req.ID, err.Error()), false
	}

	result, err := spec.handler(d, req.Params)
	if err != nil {
		d.log.Printf("request %d (%s): %v", req.ID, req.Method, fullChain(err))
		return errResponse(req.ID, outermostMessage(err)), false
	}
	return okResponse(req.ID, result), false
}

func (d *Dispatcher) handleHandshake(req Request) (Response, bool) {
	var params struct {
		ProtocolVersion uint32 `json:"protocol_version"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil || params.ProtocolVersion != d.info.ProtocolVersion {
		d.log.Printf("request %d: handshake protocol version mismatch (got %d, want %d)",
			req.ID, params.ProtocolVersion, d.info.ProtocolVersion)
		return errResponse(req.ID, "expected a handshake message"), true
	}
	d.handshakeDone = true
	return okResponse(req.ID, backendInfoResult{
		ImplementationName:    d.info.ImplementationName,
		ImplementationVersion: d.info.ImplementationVersion,
		NiceVersion:           d.info.NiceVersion,
		ProtocolVersion:       d.info.ProtocolVersion,
	}), false
}

// validateRequired is the "optional request validation" half of the
// per-method jsonschema.Schema declarations: a shallow check that every
// top-level required property is present, not a full schema validator.
func validateRequired(schema *jsonschema.Schema, params json.RawMessage) error {
	if schema == nil || len(schema.Required) == 0 {
		return nil
	}
	var obj map[string]json.RawMessage
	if len(params) > 0 {
		if err := json.Unmarshal(params, &obj); err != nil {
			return fmt.Errorf("params must be an object: %w", err)
		}
	}
	for _, name := range schema.Required {
		if _, ok := obj[name]; !ok {
			return fmt.Errorf("missing required parameter %q", name)
		}
	}
	return nil
}

func outermostMessage(err error) string {
	if e, ok := err.(*clerrors.Error); ok {
		return e.Error()
	}
	return err.Error()
}

func fullChain(err error) string {
	msg := err.Error()
	type unwrapper interface{ Unwrap() error }
	for {
		u, ok := err.(unwrapper)
		if !ok {
			break
		}
		next := u.Unwrap()
		if next == nil {
			break
		}
		err = next
		msg += " <- " + err.Error()
	}
	return msg
}

type backendInfoResult struct {
	ImplementationName    string `json:"implementation_name"`
	ImplementationVersion string `json:"implementation_version"`
	NiceVersion           string `json:"nice_version"`
	ProtocolVersion       uint32 `json:"protocol_version"`
}

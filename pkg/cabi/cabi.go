// Package cabi is the cgo-exported C ABI surface (spec.md §6): a host
// process embeds crosslocale by spawning exactly one backend worker
// goroutine per `backend_new`, talking to it through a bounded in-memory
// queue pair (internal/backend/transport's MemoryEndpoint). There is no
// teacher or pack example for a cgo export surface — this package is
// written directly against the standard library's cgo/runtime-cgo
// facilities rather than any dependency.
package cabi

/*
#include <stdlib.h>
#include <stdint.h>
*/
import "C"

import (
	"fmt"
	"log"
	"os"
	"runtime/cgo"
	"unsafe"

	"github.com/standardbeagle/crosslocale/internal/backend"
	"github.com/standardbeagle/crosslocale/internal/backend/transport"
	"github.com/standardbeagle/crosslocale/internal/version"
)

// Result mirrors the C `result` enum from spec.md §6.
type Result = C.int

const (
	ResultOK           Result = 0
	ResultGenericPanic Result = 1
	ResultDisconnected Result = 2
	ResultNonUTF8      Result = 3
	ResultSpawnFailed  Result = 4
)

var resultDescriptions = map[Result]string{
	ResultOK:           "ok",
	ResultGenericPanic: "an unhandled panic occurred in the backend worker",
	ResultDisconnected: "the backend worker is no longer reachable",
	ResultNonUTF8:      "a message was not valid UTF-8",
	ResultSpawnFailed:  "the backend worker thread could not be started",
}

var resultIDs = map[Result]string{
	ResultOK:           "OK",
	ResultGenericPanic: "GENERIC_PANIC",
	ResultDisconnected: "DISCONNECTED",
	ResultNonUTF8:      "NON_UTF8",
	ResultSpawnFailed:  "SPAWN_FAILED",
}

//export crosslocale_error_describe
func crosslocale_error_describe(code C.int) *C.char {
	desc, ok := resultDescriptions[Result(code)]
	if !ok {
		desc = "unknown result code"
	}
	return C.CString(desc)
}

//export crosslocale_error_id_str
func crosslocale_error_id_str(code C.int) *C.char {
	id, ok := resultIDs[Result(code)]
	if !ok {
		return nil
	}
	return C.CString(id)
}

//export crosslocale_bridge_version
func crosslocale_bridge_version() C.uint32_t {
	return C.uint32_t(version.BridgeVersion)
}

//export crosslocale_protocol_version
func crosslocale_protocol_version() C.uint32_t {
	return C.uint32_t(version.ProtocolVersion)
}

//export crosslocale_version_ptr
func crosslocale_version_ptr() *C.char {
	return C.CString(version.Version)
}

//export crosslocale_version_len
func crosslocale_version_len() C.size_t {
	return C.size_t(len(version.Version))
}

//export crosslocale_nice_version_ptr
func crosslocale_nice_version_ptr() *C.char {
	return C.CString(version.FullInfo())
}

//export crosslocale_nice_version_len
func crosslocale_nice_version_len() C.size_t {
	return C.size_t(len(version.FullInfo()))
}

// workerBackend is the Go-side state behind an opaque `backend*`: the
// host's end of the queue pair, and the worker goroutine's exit status.
type workerBackend struct {
	host *transport.MemoryEndpoint
}

const pipeBufferSize = 8

// newWorkerBackend starts the dispatcher's worker goroutine over a fresh
// MemoryEndpoint pair and returns the host-facing half. A worker panic is
// recovered, logged, and treated as the fail-stop abort spec.md §5
// describes: crosslocale never unwinds a Go panic across the C ABI.
func newWorkerBackend() *workerBackend {
	host, worker := transport.NewMemoryPipe(pipeBufferSize)

	d := backend.New(backend.Info{
		ImplementationName:    "crosslocale",
		ImplementationVersion: version.Version,
		NiceVersion:           version.FullInfo(),
		ProtocolVersion:       version.ProtocolVersion,
	}, log.New(os.Stderr, "crosslocale-backend: ", log.LstdFlags))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "crosslocale-backend: fatal panic in worker: %v\n", r)
				os.Exit(70)
			}
		}()
		logger := log.New(os.Stderr, "crosslocale-backend: ", log.LstdFlags)
		if err := transport.RunMemory(d, worker, logger); err != nil {
			logger.Printf("worker exiting: %v", err)
		}
	}()

	return &workerBackend{host: host}
}

//export crosslocale_backend_new
func crosslocale_backend_new(out *C.uintptr_t) C.int {
	if out == nil {
		return ResultSpawnFailed
	}
	wb := newWorkerBackend()
	h := cgo.NewHandle(wb)
	*out = C.uintptr_t(h)
	return ResultOK
}

func handleFor(opaque C.uintptr_t) (*workerBackend, bool) {
	h := cgo.Handle(opaque)
	v := h.Value()
	wb, ok := v.(*workerBackend)
	return wb, ok
}

//export crosslocale_backend_send
func crosslocale_backend_send(opaque C.uintptr_t, data *C.char, length C.size_t) C.int {
	wb, ok := handleFor(opaque)
	if !ok {
		return ResultDisconnected
	}
	buf := C.GoBytes(unsafe.Pointer(data), C.int(length))
	if err := wb.host.Send(buf); err != nil {
		return ResultDisconnected
	}
	return ResultOK
}

//export crosslocale_backend_recv
func crosslocale_backend_recv(opaque C.uintptr_t, outPtr **C.char, outLen *C.size_t) C.int {
	wb, ok := handleFor(opaque)
	if !ok {
		return ResultDisconnected
	}
	data, err := wb.host.Recv()
	if err != nil {
		return ResultDisconnected
	}
	*outPtr = (*C.char)(C.CBytes(data))
	*outLen = C.size_t(len(data))
	return ResultOK
}

//export crosslocale_backend_close
func crosslocale_backend_close(opaque C.uintptr_t) {
	wb, ok := handleFor(opaque)
	if !ok {
		return
	}
	wb.host.Close()
}

//export crosslocale_backend_is_closed
func crosslocale_backend_is_closed(opaque C.uintptr_t) C.int {
	wb, ok := handleFor(opaque)
	if !ok || wb.host.IsClosed() {
		return 1
	}
	return 0
}

//export crosslocale_backend_free
func crosslocale_backend_free(opaque C.uintptr_t) {
	h := cgo.Handle(opaque)
	if wb, ok := h.Value().(*workerBackend); ok {
		wb.host.Close()
	}
	h.Delete()
}

//export crosslocale_message_free
func crosslocale_message_free(ptr *C.char, _ C.size_t) {
	C.free(unsafe.Pointer(ptr))
}

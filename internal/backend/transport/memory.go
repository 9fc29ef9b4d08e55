package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/standardbeagle/crosslocale/internal/backend"
	"github.com/standardbeagle/crosslocale/internal/clerrors"
)

// ErrDisconnected is returned by MemoryEndpoint.Send/Recv once either
// side of the pipe has been closed.
var ErrDisconnected = clerrors.New("transport.MemoryEndpoint", clerrors.CodeDisconnected, fmt.Errorf("peer is gone"))

// MemoryEndpoint is one side of an in-memory, small-bounded queue pair:
// the C ABI's bridge between the foreign caller and the backend's worker
// goroutine. Recv blocks until a message arrives or the pipe closes;
// Send only blocks back-pressure-style while the peer is keeping up.
type MemoryEndpoint struct {
	out    chan []byte
	in     chan []byte
	done   chan struct{}
	closed int32
}

// NewMemoryPipe returns the two ends of a small-bounded queue pair: a
// message sent on host.Send is received by worker.Recv, and vice versa.
func NewMemoryPipe(bufferSize int) (host, worker *MemoryEndpoint) {
	hostToWorker := make(chan []byte, bufferSize)
	workerToHost := make(chan []byte, bufferSize)
	done := make(chan struct{})

	host = &MemoryEndpoint{out: hostToWorker, in: workerToHost, done: done}
	worker = &MemoryEndpoint{out: workerToHost, in: hostToWorker, done: done}
	return host, worker
}

// Send enqueues data for the peer. It fails ErrDisconnected once Close
// has been called on either end.
func (e *MemoryEndpoint) Send(data []byte) error {
	if atomic.LoadInt32(&e.closed) != 0 {
		return ErrDisconnected
	}
	select {
	case e.out <- data:
		return nil
	case <-e.done:
		return ErrDisconnected
	}
}

// Recv blocks until a message from the peer is available, or the pipe
// closes, in which case it fails ErrDisconnected.
func (e *MemoryEndpoint) Recv() ([]byte, error) {
	select {
	case data := <-e.in:
		return data, nil
	case <-e.done:
		return nil, ErrDisconnected
	}
}

// Close tears down the pipe for both ends; safe to call from either side
// and more than once.
func (e *MemoryEndpoint) Close() {
	if atomic.CompareAndSwapInt32(&e.closed, 0, 1) {
		closeDone(e.done)
	}
}

// IsClosed reports whether this end (or its peer) has closed the pipe.
func (e *MemoryEndpoint) IsClosed() bool {
	select {
	case <-e.done:
		return true
	default:
		return atomic.LoadInt32(&e.closed) != 0
	}
}

func closeDone(done chan struct{}) {
	defer func() { recover() }()
	close(done)
}

// RunMemory is the worker side of an in-memory transport: each Recv'd
// message is one JSON request (no newline framing, unlike RunStdio,
// since MemoryEndpoint already delivers whole messages), dispatched and
// answered with one Send of the marshaled response. It returns when the
// pipe disconnects or the handshake fails fatally; the caller (the C ABI
// worker goroutine) decides what a returned error means for the process.
func RunMemory(d *backend.Dispatcher, ep *MemoryEndpoint, logger *log.Logger) error {
	for {
		data, err := ep.Recv()
		if err != nil {
			if errors.Is(err, ErrDisconnected) {
				return nil
			}
			return err
		}

		var req backend.Request
		if err := json.Unmarshal(data, &req); err != nil {
			logger.Printf("memory: malformed request: %v", err)
			continue
		}

		resp, fatal := d.Process(req)
		payload, err := json.Marshal(resp)
		if err != nil {
			return fmt.Errorf("marshal response: %w", err)
		}
		if err := ep.Send(payload); err != nil {
			if errors.Is(err, ErrDisconnected) {
				return nil
			}
			return err
		}
		if fatal {
			return nil
		}
	}
}

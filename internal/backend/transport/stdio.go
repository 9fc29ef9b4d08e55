// Package transport implements the two ways a backend.Dispatcher is fed
// requests and drained of responses: newline-delimited JSON over stdio
// for a standalone backend process, and an in-memory queue pair for the
// C ABI's worker goroutine.
package transport

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"log"

	"github.com/standardbeagle/crosslocale/internal/backend"
)

// RunStdio reads newline-delimited request objects from r and writes
// newline-delimited response objects to w, dispatching each through d
// until r hits EOF, the handshake fails fatally, or writing a response
// fails (a broken pipe on w, logged and treated as a clean exit).
func RunStdio(d *backend.Dispatcher, r io.Reader, w io.Writer, logger *log.Logger) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	bw := bufio.NewWriter(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req backend.Request
		if err := json.Unmarshal(line, &req); err != nil {
			logger.Printf("stdio: malformed request line: %v", err)
			continue
		}

		resp, fatal := d.Process(req)
		if err := writeResponse(bw, resp); err != nil {
			if errors.Is(err, io.ErrClosedPipe) || errors.Is(err, io.EOF) {
				logger.Printf("stdio: peer closed stdout, stopping")
				return nil
			}
			return err
		}
		if fatal {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}
	return nil
}

func writeResponse(bw *bufio.Writer, resp backend.Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if _, err := bw.Write(data); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}

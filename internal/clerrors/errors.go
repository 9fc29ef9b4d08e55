// Package clerrors defines the typed error taxonomy used throughout
// crosslocale: every fallible operation returns (or wraps) one of the
// Kind values below so that callers — the CLI, the backend dispatcher, and
// the C ABI — can map a failure to the right exit code or result code
// without string-matching error text.
package clerrors

import (
	"fmt"
	"time"
)

// Kind groups errors into the four categories crosslocale distinguishes
// when deciding how to report a failure to a human versus a calling
// process: a bad invocation, bad data on disk, an I/O failure, or a
// transport-level problem talking to a host process.
type Kind string

const (
	KindUsage     Kind = "usage"
	KindData      Kind = "data"
	KindIO        Kind = "io"
	KindTransport Kind = "transport"
)

// Code identifies a specific error condition within its Kind. These are
// the named errors from the error handling design: each one is a distinct,
// programmatically distinguishable failure mode, not just a message.
type Code string

const (
	// Usage errors: the caller asked for something that doesn't exist.
	CodeUnknownSplitter          Code = "unknown_splitter"
	CodeUnknownImporter          Code = "unknown_importer"
	CodeUnknownExporter          Code = "unknown_exporter"
	CodeRangeInvalid             Code = "range_invalid"
	CodeRangeOverflow            Code = "range_overflow"
	CodeQueryRequiresGameFile    Code = "query_requires_game_file"
	CodeNotImplemented           Code = "not_implemented"

	// Data errors: something on disk doesn't match the shape crosslocale
	// expects.
	CodeProjectNotFound       Code = "project_not_found"
	CodeScanDbCorrupt         Code = "scan_db_corrupt"
	CodeProjectCorrupt        Code = "project_corrupt"
	CodeDuplicateFragment     Code = "duplicate_fragment"
	CodeInvalidLangLabel      Code = "invalid_lang_label"
	CodeChangelogMissing      Code = "changelog_missing"
	CodeChangelogEmpty        Code = "changelog_empty"
	CodeSplitterInconsistent  Code = "splitter_inconsistent"
	CodeAssetsDirInvalid      Code = "assets_dir_invalid"

	// IO errors: the filesystem didn't cooperate.
	CodeFileEnumerationFailed Code = "file_enumeration_failed"
	CodeReadFailed            Code = "read_failed"
	CodeWriteFailed           Code = "write_failed"
	CodeImportFailed          Code = "import_failed"
	CodeExportFailed          Code = "export_failed"

	// Transport errors: something went wrong talking to the host process
	// over the backend protocol or the C ABI.
	CodeHandshakeFailed Code = "handshake_failed"
	CodeDisconnected    Code = "disconnected"
	CodeNonUTF8         Code = "non_utf8"
	CodeSpawnFailed     Code = "spawn_failed"
)

// kindByCode is consulted by New when the caller doesn't pass a Kind
// explicitly, so call sites that already know their Code don't have to
// also spell out the Kind.
var kindByCode = map[Code]Kind{
	CodeUnknownSplitter:       KindUsage,
	CodeUnknownImporter:       KindUsage,
	CodeUnknownExporter:       KindUsage,
	CodeRangeInvalid:          KindUsage,
	CodeRangeOverflow:         KindUsage,
	CodeQueryRequiresGameFile: KindUsage,
	CodeNotImplemented:        KindUsage,

	CodeProjectNotFound:      KindData,
	CodeScanDbCorrupt:        KindData,
	CodeProjectCorrupt:       KindData,
	CodeDuplicateFragment:    KindData,
	CodeInvalidLangLabel:     KindData,
	CodeChangelogMissing:     KindData,
	CodeChangelogEmpty:       KindData,
	CodeSplitterInconsistent: KindData,
	CodeAssetsDirInvalid:     KindData,

	CodeFileEnumerationFailed: KindIO,
	CodeReadFailed:            KindIO,
	CodeWriteFailed:           KindIO,
	CodeImportFailed:          KindIO,
	CodeExportFailed:          KindIO,

	CodeHandshakeFailed: KindTransport,
	CodeDisconnected:    KindTransport,
	CodeNonUTF8:         KindTransport,
	CodeSpawnFailed:     KindTransport,
}

// Error is the concrete error type every crosslocale package returns for a
// recognized failure mode. It carries enough context (operation, path) to
// produce a useful log line without the caller needing to re-wrap it.
type Error struct {
	Kind      Kind
	Code      Code
	Op        string // operation that failed, e.g. "scan.Run", "project.Open"
	Path      string // file or asset path involved, if any
	Timestamp time.Time
	Err       error // underlying cause, if any
}

func (e *Error) Error() string {
	msg := string(e.Code)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg = msg + " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error for the given Code, inferring its Kind from the
// table above.
func New(op string, code Code, err error) *Error {
	return &Error{
		Kind:      kindByCode[code],
		Code:      code,
		Op:        op,
		Timestamp: timestamp(),
		Err:       err,
	}
}

// WithPath returns a copy of e with Path set, for call sites that learn
// the relevant path only after constructing the base error.
func (e *Error) WithPath(path string) *Error {
	cp := *e
	cp.Path = path
	return &cp
}

// timestamp is split out so tests can observe that a timestamp was set
// without depending on wall-clock value.
func timestamp() time.Time { return time.Now() }

// Is reports whether err is (or wraps) an *Error with the given Code,
// so callers can do clerrors.Is(err, clerrors.CodeProjectNotFound) instead
// of a type switch.
func Is(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			if e.Code == code {
				return true
			}
			err = e.Err
			continue
		}
		type unwrapper interface{ Unwrap() error }
		u, ok := err.(unwrapper)
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// ErrNotImplemented is returned by registry entries reserved for future
// functionality (the cc-ru-chapter-fragments importer and the po importer)
// that are registered under their IDs but not yet functional.
func ErrNotImplemented(op, id string) *Error {
	return New(op, CodeNotImplemented, fmt.Errorf("%q is registered but not implemented", id))
}

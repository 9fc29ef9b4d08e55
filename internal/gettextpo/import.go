package gettextpo

import "github.com/standardbeagle/crosslocale/internal/clerrors"

// Import is a reserved ID: gettext PO import is declared but not
// implemented in the source this behavior is modeled on (see
// DESIGN.md's Open Questions), so it always fails with NotImplemented.
func Import(_ []byte) ([]Fragment, error) {
	return nil, clerrors.ErrNotImplemented("gettextpo.Import", "po")
}

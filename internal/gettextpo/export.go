// Package gettextpo implements export of a translation project to the
// gettext PO format. Import is a reserved, not-yet-implemented ID (see
// clerrors.ErrNotImplemented and DESIGN.md): no gettext PO parser in the
// example corpus reproduces the byte-exact continuation-string splitting
// this format requires, so the writer is built directly against the
// documented wire format instead of a borrowed parser/serializer pair.
package gettextpo

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Meta carries the project header fields emitted into the PO file's
// leading empty-msgid entry.
type Meta struct {
	GameVersion            string
	CreationTimestamp      int64
	ModificationTimestamp  int64
	TranslationLocale      string
	GeneratorName          string
	GeneratorVersion       string
}

// Fragment is one translatable unit to emit as a PO entry.
type Fragment struct {
	FilePath        string
	JSONPath        string
	LangUID         int32
	Description     []string
	OriginalText    string
	TranslationText string
}

// Export writes meta and fragments as a gettext PO file. Fragments whose
// OriginalText is empty are skipped: the empty msgid is reserved for the
// header entry.
func Export(w io.Writer, meta Meta, fragments []Fragment) error {
	bw := &errWriter{w: w}

	bw.writeString("msgid \"\"\n")
	bw.writeString("msgstr \"\"\n")

	header := []string{
		fmt.Sprintf("Project-Id-Version: crosscode %s\n", meta.GameVersion),
		"Report-Msgid-Bugs-To: \n",
		fmt.Sprintf("POT-Creation-Date: %s+0000\n", formatPOTimestamp(meta.CreationTimestamp)),
		fmt.Sprintf("PO-Revision-Date: %s+0000\n", formatPOTimestamp(meta.ModificationTimestamp)),
		"Last-Translator: \n",
		"Language-Team: \n",
		fmt.Sprintf("Language: %s\n", meta.TranslationLocale),
		"MIME-Version: 1.0\n",
		"Content-Type: text/plain; charset=UTF-8\n",
		"Content-Transfer-Encoding: 8bit\n",
		"Plural-Forms: \n",
		fmt.Sprintf("X-Generator: %s %s\n", meta.GeneratorName, meta.GeneratorVersion),
	}
	for _, line := range header {
		bw.writePOValue("", line)
	}

	for _, frag := range fragments {
		if frag.OriginalText == "" {
			continue
		}

		locationLine := fmt.Sprintf("%s %s #%d", frag.FilePath, frag.JSONPath, frag.LangUID)

		bw.writeString("\n")
		bw.writeComment("#. ", locationLine)
		for _, line := range frag.Description {
			bw.writeComment("#. ", line)
		}
		bw.writeComment("#: ", encodeReferenceCommentURI(locationLine))

		bw.writeString("msgctxt ")
		bw.writePOValue("", frag.FilePath+" "+frag.JSONPath)
		bw.writePOValue("msgid", frag.OriginalText)
		bw.writePOValue("msgstr", frag.TranslationText)
	}

	return bw.err
}

func formatPOTimestamp(unixSeconds int64) string {
	return time.Unix(unixSeconds, 0).UTC().Format("2006-01-02 15:04")
}

// errWriter lets the export loop ignore per-call error checks and inspect
// the first failure once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) writeString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func (e *errWriter) writeComment(prefix, text string) {
	for _, line := range strings.Split(text, "\n") {
		e.writeString(prefix)
		e.writeString(line)
		e.writeString("\n")
	}
}

// writePOValue writes one PO string field. When keyword is non-empty it's
// written as "keyword value"; an empty keyword just writes bare quoted
// continuation lines (used for header entries, which follow the initial
// "msgstr \"\"" line directly).
//
// A value that splits into more than one continuation string (spec §4.6:
// "a string is split on embedded newlines into multiple continuation
// strings") is written as an empty leading declaration followed by one
// quoted line per continuation.
func (e *errWriter) writePOValue(keyword, value string) {
	chunks := splitContinuations(value)

	if keyword != "" {
		e.writeString(keyword)
		e.writeString(" ")
	}

	if len(chunks) <= 1 {
		chunk := ""
		if len(chunks) == 1 {
			chunk = chunks[0]
		}
		e.writeQuoted(chunk)
		e.writeString("\n")
		return
	}

	e.writeQuoted("")
	e.writeString("\n")
	for _, chunk := range chunks {
		e.writeQuoted(chunk)
		e.writeString("\n")
	}
}

func (e *errWriter) writeQuoted(s string) {
	e.writeString("\"")
	e.writeString(escapeString(s))
	e.writeString("\"")
}

// splitContinuations splits s at each embedded newline, keeping the
// newline attached to the chunk that precedes it, and dropping a final
// empty chunk produced by a trailing newline (so "line1\nline2\n" yields
// exactly ["line1\n", "line2\n"], matching spec §8 scenario 6).
func splitContinuations(s string) []string {
	var chunks []string
	for {
		idx := strings.IndexByte(s, '\n')
		if idx == -1 {
			if s != "" {
				chunks = append(chunks, s)
			}
			break
		}
		chunks = append(chunks, s[:idx+1])
		s = s[idx+1:]
	}
	return chunks
}

// escapeString applies the standard C escape set spec §9 documents:
// \n \t \b \r \f \v \a \\ \".
func escapeString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\r':
			b.WriteString(`\r`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		case '\a':
			b.WriteString(`\a`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

const uriUnreserved = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_.~/"

// encodeReferenceCommentURI produces the URL-safe form of a PO location
// comment that spec §4.6 says Weblate's reference-comment editor expects:
// percent-encode everything outside the URI-unreserved set (plus "/",
// which every location line contains as a path separator).
func encodeReferenceCommentURI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(uriUnreserved, c) >= 0 {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

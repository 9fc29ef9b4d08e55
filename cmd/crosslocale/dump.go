package main

import (
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/standardbeagle/crosslocale/internal/jsonutil"

	"github.com/urfave/cli/v2"
)

var dumpCommonFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    "compact-output",
		Aliases: []string{"c"},
		Usage:   "Emit compact JSON with no extra whitespace",
	},
	&cli.StringFlag{
		Name:  "indent",
		Value: "2",
		Usage: "Spaces per indent level (0-8), or \"tab\"",
	},
	&cli.BoolFlag{
		Name:  "unbuffered",
		Usage: "Flush output after every fragment",
	},
	&cli.BoolFlag{
		Name:    "wrap-array",
		Aliases: []string{"w"},
		Usage:   "Wrap all fragments in a single JSON array instead of newline-delimited objects",
	},
}

// dumpFormatter wraps a jsonutil.Formatter with the newline-delimited
// bookkeeping dump-scan/dump-project need between unwrapped top-level
// fragments.
type dumpFormatter = jsonutil.Formatter

func formatterConfigFromFlags(c *cli.Context) jsonutil.FormatterConfig {
	if c.Bool("compact-output") {
		return jsonutil.FormatterConfig{}
	}
	width := jsonutil.DefaultIndent
	switch raw := c.String("indent"); raw {
	case "tab":
		width = 1
	default:
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 && n <= 8 {
			width = n
		}
	}
	return jsonutil.FormatterConfig{Indent: &width}
}

// dumpWriter returns the dump's output stream. jsonutil.NewFormatter
// already buffers internally, so this needs no buffering of its own —
// --unbuffered only controls how often flushDumpLine drains that
// internal buffer.
func dumpWriter(c *cli.Context) io.Writer {
	return os.Stdout
}

func newDumpFormatter(c *cli.Context, w io.Writer) *dumpFormatter {
	return jsonutil.NewFormatter(w, formatterConfigFromFlags(c))
}

// flushDumpLine separates two unwrapped top-level dump objects with a
// bare newline and, for --unbuffered, forces the write through
// immediately. A broken output pipe (e.g. the reader piping into `head`
// exits early) is swallowed rather than reported, matching the
// original's graceful handling of that case.
func flushDumpLine(f *dumpFormatter, c *cli.Context) error {
	f.WriteRawByte('\n')
	if !c.Bool("unbuffered") {
		return nil
	}
	if err := f.Flush(); err != nil && !errors.Is(err, io.ErrClosedPipe) {
		return err
	}
	return nil
}

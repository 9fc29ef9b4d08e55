package main

import (
	"fmt"
	"io"
	"os"

	"github.com/standardbeagle/crosslocale/internal/gettextpo"

	"github.com/urfave/cli/v2"
)

// parsePoCommandDef is a hidden debug command mirroring the original
// tool's parse-po debug utility. gettext PO import has no real lexer
// behind it here (see internal/gettextpo.Import), so this always
// reports the same NotImplemented failure rather than pretending to
// parse anything.
var parsePoCommandDef = &cli.Command{
	Name:   "parse-po",
	Usage:  "Parse a PO file and print its structure (debug only)",
	Hidden: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "json",
			Aliases: []string{"J"},
			Usage:   "Print parsed messages as JSON instead of canonical PO text",
		},
	},
	ArgsUsage: "[file]",
	Action:    parsePoCommand,
}

func parsePoCommand(c *cli.Context) error {
	var (
		data []byte
		err  error
	)
	if c.NArg() > 0 {
		data, err = os.ReadFile(c.Args().First())
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	_, err = gettextpo.Import(data)
	return err
}

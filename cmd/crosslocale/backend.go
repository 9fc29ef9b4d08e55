package main

import (
	"os"

	"github.com/standardbeagle/crosslocale/internal/backend"
	"github.com/standardbeagle/crosslocale/internal/backend/transport"
	"github.com/standardbeagle/crosslocale/internal/version"

	"github.com/urfave/cli/v2"
)

// backendCommandDef runs the request/response dispatcher loop over
// stdio. It is not meant to be invoked manually: it is spawned as a
// subprocess by whatever translation tool embeds crosslocale, and speaks
// newline-delimited JSON on stdin/stdout until its peer disconnects.
var backendCommandDef = &cli.Command{
	Name:   "backend",
	Usage:  "Run the backend request/response server over stdio (internal use only)",
	Hidden: true,
	Action: backendCommand,
}

func backendCommand(c *cli.Context) error {
	d := backend.New(backend.Info{
		ImplementationName:    "crosslocale",
		ImplementationVersion: version.Version,
		NiceVersion:           version.FullInfo(),
		ProtocolVersion:       uint32(version.ProtocolVersion),
	}, logger)

	return transport.RunStdio(d, os.Stdin, os.Stdout, logger)
}

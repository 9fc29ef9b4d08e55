package main

import (
	"fmt"
	"io"
	"os"

	"github.com/standardbeagle/crosslocale/internal/jsonutil"
	"github.com/standardbeagle/crosslocale/internal/massfmt"

	"github.com/urfave/cli/v2"
)

var massJSONFormatCommandDef = &cli.Command{
	Name:    "mass-json-format",
	Aliases: []string{"fmt"},
	Usage:   "Reformat many JSON files at once",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "inputs",
			Usage: "Input files or directories to format",
		},
		&cli.StringFlag{
			Name:    "read-inputs",
			Aliases: []string{"I"},
			Usage:   "File listing input paths, one per line",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output directory to mirror formatted files into",
		},
		&cli.BoolFlag{
			Name:  "in-place",
			Usage: "Rewrite each input file at its own path",
		},
		&cli.BoolFlag{
			Name:    "pipe",
			Aliases: []string{"P"},
			Usage:   "Read one JSON document from stdin, format it, write it to stdout",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Value:   0,
			Usage:   "Concurrent formatting jobs (0 = unbounded)",
		},
		&cli.BoolFlag{
			Name:  "compact",
			Usage: "Emit compact JSON",
		},
	},
	Action: massJSONFormatCommand,
}

func massJSONFormatCommand(c *cli.Context) error {
	var cfg jsonutil.FormatterConfig
	if !c.Bool("compact") {
		width := jsonutil.DefaultIndent
		cfg.Indent = &width
	}

	if c.Bool("pipe") {
		return massJSONFormatPipe(cfg)
	}

	inputs, err := resolveInputPaths(c.StringSlice("inputs"), c.String("read-inputs"))
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input files given: pass --inputs or --read-inputs")
	}

	inPlace := c.Bool("in-place")
	output := c.String("output")
	if inPlace == (output != "") {
		return fmt.Errorf("exactly one of --in-place or --output must be given")
	}

	result, err := massfmt.Run(inputs, massfmt.Options{
		Jobs:      c.Int("jobs"),
		InPlace:   inPlace,
		OutputDir: output,
		Config:    cfg,
	})
	if err != nil {
		return fmt.Errorf("failed to collect input files: %w", err)
	}

	for _, fe := range result.Errors {
		logger.Printf("%s: %v", fe.Path, fe.Err)
	}
	logger.Printf("formatted %d files, %d failed", result.FormattedCount, len(result.Errors))
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d file(s) failed to format", len(result.Errors))
	}
	return nil
}

func massJSONFormatPipe(cfg jsonutil.FormatterConfig) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	formatted, err := massfmt.FormatBytes(data, cfg)
	if err != nil {
		return fmt.Errorf("failed to format stdin: %w", err)
	}
	_, err = os.Stdout.Write(formatted)
	return err
}

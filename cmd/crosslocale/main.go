package main

import (
	"fmt"
	"log"
	"os"

	"github.com/standardbeagle/crosslocale/internal/config"
	"github.com/standardbeagle/crosslocale/internal/version"

	"github.com/urfave/cli/v2"
)

var logger = log.New(os.Stderr, "", 0)

// loadConfigWithOverrides loads .crosslocale.kdl from searchDir (the
// current directory if searchDir is empty), then lets --include/--exclude
// CLI flags widen or narrow its filters.
func loadConfigWithOverrides(c *cli.Context, searchDir string) (*config.Config, error) {
	if searchDir == "" {
		searchDir = "."
	}

	cfg, err := config.Load(searchDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", searchDir, err)
	}

	if include := c.StringSlice("include"); len(include) > 0 {
		cfg.Include = include
	}
	if exclude := c.StringSlice("exclude"); len(exclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, exclude...)
	}

	return cfg, nil
}

func main() {
	app := &cli.App{
		Name:                   "crosslocale",
		Usage:                  "Manage CrossCode translation projects: scan, split, convert, and serve",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Include files matching glob patterns (overrides .crosslocale.kdl)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Exclude files matching glob patterns (appended to .crosslocale.kdl)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Show debug information",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				logger.SetFlags(log.Ltime | log.Lshortfile)
			}
			return nil
		},
		Commands: []*cli.Command{
			scanCommandDef,
			createProjectCommandDef,
			convertCommandDef,
			importCommandDef,
			exportCommandDef,
			backendCommandDef,
			statusCommandDef,
			dumpScanCommandDef,
			dumpProjectCommandDef,
			parsePoCommandDef,
			massJSONFormatCommandDef,
			completionsCommandDef,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/standardbeagle/crosslocale/internal/jsonutil"
	"github.com/standardbeagle/crosslocale/internal/scan"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v2"
)

var scanCommandDef = &cli.Command{
	Name:    "scan",
	Aliases: []string{"s"},
	Usage:   "Scan the game's assets directory and extract localizable strings",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    "Path to the output scan database JSON file",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:    "locales",
			Aliases: []string{"l"},
			Usage:   "Locales to extract (default: main locale only)",
		},
		&cli.BoolFlag{
			Name:  "all-locales",
			Usage: "Extract absolutely all locales",
		},
	},
	ArgsUsage: "<assets_dir>",
	Action:    scanCommand,
}

func scanCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: crosslocale scan [options] <assets_dir>")
	}
	assetsDir := c.Args().First()
	output := c.String("output")
	allLocales := c.Bool("all-locales")
	locales := c.StringSlice("locales")
	if !allLocales && len(locales) == 0 {
		locales = []string{scan.MainLocale}
	}

	logger.Printf("performing a scan of game files in %s", assetsDir)

	cfg, err := loadConfigWithOverrides(c, assetsDir)
	if err != nil {
		return err
	}

	gameVersion, err := scan.ReadGameVersion(assetsDir)
	if err != nil {
		return fmt.Errorf("failed to read the game version: %w", err)
	}
	logger.Printf("game version is %s", gameVersion)

	logger.Printf("finding all JSON files")
	found, err := scan.FindAllInAssetsDir(assetsDir)
	if err != nil {
		return fmt.Errorf("failed to find JSON files in the assets dir: %w", err)
	}
	logger.Printf("found %d JSON files in total", len(found))

	found = filterByConfig(found, cfg.Include, cfg.Exclude)
	logger.Printf("%d JSON files remain after include/exclude filters", len(found))

	var localesFilter map[string]struct{}
	if !allLocales {
		localesFilter = make(map[string]struct{}, len(locales))
		for _, l := range locales {
			localesFilter[l] = struct{}{}
		}
	}
	extractorOpts := scan.ExtractionOptions{LocalesFilter: localesFilter}

	now := time.Now().Unix()
	db := scan.NewDatabase(gameVersion, now)

	logger.Printf("extracting localizable strings")
	var totalFragments, ignoredLabels int

	for _, f := range found {
		absPath := filepath.Join(assetsDir, filepath.FromSlash(f.Path))
		data, err := os.ReadFile(absPath)
		if err != nil {
			return fmt.Errorf("failed to read JSON file %s: %w", absPath, err)
		}
		jsonData, err := jsonutil.Decode(data)
		if err != nil {
			return fmt.Errorf("failed to deserialize JSON file %s: %w", absPath, err)
		}

		labels := scan.ExtractFromFile(f, jsonData, extractorOpts)
		if labels == nil {
			continue
		}

		var dbFile *scan.GameFile
		for _, label := range labels {
			if scan.IsLangLabelIgnored(label, f) {
				ignoredLabels++
				continue
			}

			var description []string
			if !f.IsLangFile {
				description, err = scan.GenerateDescription(jsonData, label.JSONPath)
				if err != nil {
					logger.Printf("file %s: fragment %s: %v", f.Path, label.JSONPath, err)
					continue
				}
			}

			if dbFile == nil {
				dbFile = db.NewFile(f.AssetRoot, f.Path, f.IsLangFile)
			}
			dbFile.NewFragment(label.JSONPath, label.LangUID, description, label.Text)
			totalFragments++
		}
	}

	logger.Printf("found %d localizable strings in %d files, %d were ignored",
		totalFragments, db.GameFiles.Len(), ignoredLabels)

	logger.Printf("writing the scan database")
	if err := scan.Write(db, output); err != nil {
		return fmt.Errorf("failed to write the scan database: %w", err)
	}

	logger.Printf("done")
	return nil
}

// filterByConfig narrows found to the files matching at least one
// include glob (all files, if include is empty) and none of the exclude
// globs.
func filterByConfig(found []scan.FoundJSONFile, include, exclude []string) []scan.FoundJSONFile {
	if len(include) == 0 && len(exclude) == 0 {
		return found
	}

	out := found[:0]
	for _, f := range found {
		if len(include) > 0 && !matchesAny(include, f.Path) {
			continue
		}
		if matchesAny(exclude, f.Path) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

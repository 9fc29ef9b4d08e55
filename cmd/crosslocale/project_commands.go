package main

import (
	"fmt"
	"os"
	"time"

	"github.com/standardbeagle/crosslocale/internal/pipeline"
	"github.com/standardbeagle/crosslocale/internal/project"
	"github.com/standardbeagle/crosslocale/internal/scan"
	"github.com/standardbeagle/crosslocale/internal/splitter"

	"github.com/urfave/cli/v2"
)

var createProjectCommandDef = &cli.Command{
	Name:    "create-project",
	Aliases: []string{"c"},
	Usage:   "Create a translation project from one or more scan databases",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "original-locale",
			Value: scan.MainLocale,
			Usage: "Locale fragments' original_text is taken from",
		},
		&cli.StringSliceFlag{
			Name:  "reference-locales",
			Usage: "Additional locales to keep as reference text",
		},
		&cli.StringFlag{
			Name:     "translation-locale",
			Required: true,
			Usage:    "Locale the project's translations are written in",
		},
		&cli.StringFlag{
			Name:  "splitter",
			Value: splitter.IDNextGeneration,
			Usage: fmt.Sprintf("Splitter used to route fragments to tr-files (%v)", splitter.IDs()),
		},
		&cli.StringFlag{
			Name:  "translations-dir",
			Value: "tr",
			Usage: "Relative directory translation files are written under",
		},
	},
	ArgsUsage: "<project_dir> <main_scan_db> [extra_scan_dbs...]",
	Action:    createProjectCommand,
}

func createProjectCommand(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: crosslocale create-project [options] <project_dir> <main_scan_db> [extra_scan_dbs...]")
	}
	projectDir := c.Args().Get(0)
	mainScanDBPath := c.Args().Get(1)
	extraScanDBPaths := c.Args().Slice()[2:]

	mainDB, err := scan.Open(mainScanDBPath)
	if err != nil {
		return fmt.Errorf("failed to open the main scan database: %w", err)
	}

	for _, extraPath := range extraScanDBPaths {
		extraDB, err := scan.Open(extraPath)
		if err != nil {
			return fmt.Errorf("failed to open extra scan database %s: %w", extraPath, err)
		}
		if extraDB.Meta.GameVersion != mainDB.Meta.GameVersion {
			logger.Printf("warning: extra scan database %s has game version %q, main has %q",
				extraPath, extraDB.Meta.GameVersion, mainDB.Meta.GameVersion)
		}
		for _, path := range extraDB.GameFiles.Keys() {
			file, _ := extraDB.GameFiles.Get(path)
			mainDB.GameFiles.Set(path, file)
		}
	}

	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return fmt.Errorf("failed to create the project directory: %w", err)
	}

	now := time.Now().Unix()
	_, err = pipeline.CreateProject(mainDB, pipeline.CreateProjectOptions{
		OriginalLocale:    c.String("original-locale"),
		ReferenceLocales:  c.StringSlice("reference-locales"),
		TranslationLocale: c.String("translation-locale"),
		TranslationsDir:   c.String("translations-dir"),
		SplitterID:        c.String("splitter"),
	}, projectDir, now)
	if err != nil {
		return fmt.Errorf("failed to create the project: %w", err)
	}

	logger.Printf("project created at %s", projectDir)
	return nil
}

var statusCommandDef = &cli.Command{
	Name:      "status",
	Usage:     "Report translation progress statistics for a project",
	ArgsUsage: "<project_dir>",
	Action:    statusCommand,
}

func statusCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: crosslocale status <project_dir>")
	}
	p, err := project.Open(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to open the project: %w", err)
	}

	var totalFragments, translatedFragments, totalTranslations int
	uniqueOriginals := make(map[string]struct{})

	for _, gameFilePath := range p.VirtualGameFiles.Keys() {
		vgf, _ := p.VirtualGameFiles.Get(gameFilePath)
		for _, frag := range vgf.Fragments() {
			totalFragments++
			uniqueOriginals[frag.OriginalText] = struct{}{}
			totalTranslations += len(frag.Translations)
			if len(frag.Translations) > 0 {
				translatedFragments++
			}
		}
	}

	uniqueFragments := len(uniqueOriginals)
	pct := func(n, total int) float64 {
		if total == 0 {
			return 0
		}
		return float64(n) / float64(total) * 100
	}

	fmt.Printf("total fragments:       %d\n", totalFragments)
	fmt.Printf("unique fragments:      %d (%.1f%%)\n", uniqueFragments, pct(uniqueFragments, totalFragments))
	fmt.Printf("translated fragments:  %d (%.1f%%)\n", translatedFragments, pct(translatedFragments, totalFragments))
	fmt.Printf("total translations:    %d\n", totalTranslations)
	fmt.Printf("translations/fragment: %.2f\n", safeDiv(float64(totalTranslations), float64(totalFragments)))

	return nil
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

var dumpProjectCommandDef = &cli.Command{
	Name:      "dump-project",
	Usage:     "Dump every fragment of a project as JSON",
	Flags:     dumpCommonFlags,
	ArgsUsage: "<project_dir>",
	Action:    dumpProjectCommand,
}

func dumpProjectCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: crosslocale dump-project [options] <project_dir>")
	}
	p, err := project.Open(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to open the project: %w", err)
	}

	out := dumpWriter(c)
	f := newDumpFormatter(c, out)

	wrap := c.Bool("wrap-array")
	if wrap {
		f.BeginArray()
	}

	for _, trFilePath := range p.TrFiles.Keys() {
		tf, _ := p.TrFiles.Get(trFilePath)
		for _, gameFilePath := range tf.GameFileChunks.Keys() {
			chunk, _ := tf.GameFileChunks.Get(gameFilePath)
			for _, jsonPath := range chunk.Fragments.Keys() {
				frag, _ := chunk.Fragments.Get(jsonPath)
				writeDumpedProjectFragment(f, tf.ID, frag)
				if !wrap {
					if err := flushDumpLine(f, c); err != nil {
						return err
					}
				}
			}
		}
	}

	if wrap {
		f.EndArray()
	}
	return f.Flush()
}

func writeDumpedProjectFragment(f *dumpFormatter, trFileID string, frag *project.Fragment) {
	f.BeginObject()
	f.Key("tr_file_id")
	f.String(trFileID)
	f.Key("file_path")
	f.String(frag.FilePath)
	f.Key("json_path")
	f.String(frag.JSONPath)
	f.Key("lang_uid")
	f.Int(int64(frag.LangUID))
	f.Key("description")
	f.BeginArray()
	for _, line := range frag.Description {
		f.String(line)
	}
	f.EndArray()
	f.Key("original_text")
	f.String(frag.OriginalText)
	f.Key("translation")
	if best := frag.BestTranslationText(); best != "" {
		f.String(best)
	} else {
		f.Null()
	}
	f.Key("flags")
	f.BeginArray()
	for _, flag := range frag.Flags {
		f.String(flag)
	}
	f.EndArray()
	f.EndObject()
}

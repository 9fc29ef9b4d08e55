package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/standardbeagle/crosslocale/internal/pipeline"
	"github.com/standardbeagle/crosslocale/internal/project"
	"github.com/standardbeagle/crosslocale/internal/splitter"
	"github.com/standardbeagle/crosslocale/internal/version"

	"github.com/urfave/cli/v2"
)

var importCommandDef = &cli.Command{
	Name:  "import",
	Usage: "Import translations from one or more files into an existing project",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:     "inputs",
			Required: true,
			Usage:    "Input files to import",
		},
		&cli.StringFlag{
			Name:     "format",
			Aliases:  []string{"f"},
			Required: true,
			Usage:    fmt.Sprintf("Input format (%v)", pipeline.ImporterIDs()),
		},
		&cli.StringFlag{
			Name:    "importer-username",
			Aliases: []string{"u"},
			Value:   "autoimport",
			Usage:   "Author/editor username attributed to imported translations",
		},
		&cli.BoolFlag{
			Name:  "delete-other-translations",
			Usage: "Delete every translation not authored by --importer-username before importing",
		},
		&cli.BoolFlag{
			Name:  "edit-prev-imports",
			Usage: "Edit a fragment's previous import from this username instead of adding a new translation",
		},
		&cli.StringSliceFlag{
			Name:    "add-flag",
			Aliases: []string{"F"},
			Usage:   "Flag(s) to add to every imported fragment",
		},
	},
	ArgsUsage: "<project_dir>",
	Action:    importCommand,
}

func importCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: crosslocale import [options] <project_dir>")
	}
	p, err := project.Open(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to open the project: %w", err)
	}

	inputPaths := c.StringSlice("inputs")
	inputs := make(map[string][]byte, len(inputPaths))
	for _, path := range inputPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read input %s: %w", path, err)
		}
		inputs[path] = data
	}

	now := time.Now().Unix()
	result, err := pipeline.ImportIntoProject(p, c.String("format"), inputs, pipeline.ImportOptions{
		ImporterUsername:        c.String("importer-username"),
		DeleteOtherTranslations: c.Bool("delete-other-translations"),
		EditPrevImports:         c.Bool("edit-prev-imports"),
		AddFlags:                c.StringSlice("add-flag"),
	}, now)
	if err != nil {
		return fmt.Errorf("failed to import translations: %w", err)
	}

	for _, w := range result.Warnings {
		logger.Printf("%s: %s:%s: %s", w.InputPath, w.FilePath, w.JSONPath, w.Message)
	}
	logger.Printf("imported %d translations", result.ImportedCount)
	return nil
}

var exportCommandDef = &cli.Command{
	Name:  "export",
	Usage: "Export a project's translations to one or more files",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Required: true,
			Usage:    "Output file, or output directory when splitting produces multiple files",
		},
		&cli.StringFlag{
			Name:     "format",
			Aliases:  []string{"f"},
			Required: true,
			Usage:    fmt.Sprintf("Output format (%v)", pipeline.ExporterIDs()),
		},
		&cli.StringFlag{
			Name:  "splitter",
			Usage: fmt.Sprintf("Splitter used to route fragments to output files (%v)", splitter.IDs()),
		},
		&cli.BoolFlag{
			Name:  "remove-untranslated",
			Usage: "Drop fragments with no translation text from the output",
		},
		&cli.StringFlag{
			Name:  "mapping-file-output",
			Usage: "Write a game_file_path -> output_file_path mapping file here",
		},
		&cli.BoolFlag{
			Name:  "compact",
			Usage: "Emit compact output",
		},
	},
	ArgsUsage: "<project_dir>",
	Action:    exportCommand,
}

func exportCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: crosslocale export [options] <project_dir>")
	}
	p, err := project.Open(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to open the project: %w", err)
	}

	exporterID := c.String("format")
	compact := c.Bool("compact")
	remove := c.Bool("remove-untranslated")
	output := c.String("output")

	splitterID := c.String("splitter")
	if splitterID == "" {
		return exportToSingleFile(p, output, exporterID, compact, remove)
	}

	split, err := splitter.New(splitterID)
	if err != nil {
		return err
	}
	return exportSplit(p, split, output, exporterID, compact, remove, c.String("mapping-file-output"))
}

func exportToSingleFile(p *project.Project, output, exporterID string, compact, remove bool) error {
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", output, err)
	}
	defer f.Close()

	if !remove {
		return pipeline.ExportProject(f, p, exporterID, "crosslocale", version.Version, compact)
	}

	exp, err := pipeline.NewExporter(exporterID)
	if err != nil {
		return err
	}
	fragments := translatedExportFragments(p)
	return exp.Export(f, pipeline.ExportMeta{
		GameVersion:       p.Meta.GameVersion,
		TranslationLocale: p.Meta.TranslationLocale,
		GeneratorName:     "crosslocale",
		GeneratorVersion:  version.Version,
		Compact:           compact,
	}, fragments)
}

func translatedExportFragments(p *project.Project) []pipeline.ExportFragment {
	var out []pipeline.ExportFragment
	for _, gameFilePath := range p.VirtualGameFiles.Keys() {
		vgf, _ := p.VirtualGameFiles.Get(gameFilePath)
		for _, frag := range vgf.Fragments() {
			if best := frag.BestTranslationText(); best != "" {
				out = append(out, pipeline.ExportFragment{
					FilePath:        frag.FilePath,
					JSONPath:        frag.JSONPath,
					LangUID:         frag.LangUID,
					Description:     frag.Description,
					OriginalText:    frag.OriginalText,
					TranslationText: best,
				})
			}
		}
	}
	return out
}

func exportSplit(p *project.Project, split splitter.Splitter, outputDir, exporterID string, compact, remove bool, mappingPath string) error {
	exp, err := pipeline.NewExporter(exporterID)
	if err != nil {
		return err
	}

	byPath := make(map[string][]pipeline.ExportFragment)
	var order []string
	mapping := make(map[string]string)

	for _, gameFilePath := range p.VirtualGameFiles.Keys() {
		vgf, _ := p.VirtualGameFiles.Get(gameFilePath)
		wholeFilePath, wholeFile := split.TrFileForEntireGameFile("", gameFilePath)

		for _, frag := range vgf.Fragments() {
			best := frag.BestTranslationText()
			if remove && best == "" {
				continue
			}

			outPath := wholeFilePath
			if !wholeFile {
				outPath = split.TrFileForFragment("", gameFilePath, frag.JSONPath)
			}
			fullPath := filepath.Join(outputDir, outPath+"."+exp.FileExtension())
			if _, seen := byPath[fullPath]; !seen {
				order = append(order, fullPath)
			}
			byPath[fullPath] = append(byPath[fullPath], pipeline.ExportFragment{
				FilePath:        frag.FilePath,
				JSONPath:        frag.JSONPath,
				LangUID:         frag.LangUID,
				Description:     frag.Description,
				OriginalText:    frag.OriginalText,
				TranslationText: best,
			})
			mapping[gameFilePath] = fullPath
		}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create the output directory: %w", err)
	}

	for _, path := range order {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", path, err)
		}
		err = exp.Export(f, pipeline.ExportMeta{
			GameVersion:       p.Meta.GameVersion,
			TranslationLocale: p.Meta.TranslationLocale,
			GeneratorName:     "crosslocale",
			GeneratorVersion:  version.Version,
			Compact:           compact,
		}, byPath[path])
		closeErr := f.Close()
		if err != nil {
			return fmt.Errorf("failed to export to %s: %w", path, err)
		}
		if closeErr != nil {
			return closeErr
		}
	}

	if mappingPath != "" {
		if err := writeMappingFile(mappingPath, mapping); err != nil {
			return err
		}
	}

	logger.Printf("exported %d files", len(order))
	return nil
}

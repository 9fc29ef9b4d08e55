package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/standardbeagle/crosslocale/internal/pipeline"
	"github.com/standardbeagle/crosslocale/internal/scan"
	"github.com/standardbeagle/crosslocale/internal/version"

	"github.com/urfave/cli/v2"
)

var convertCommandDef = &cli.Command{
	Name:  "convert",
	Usage: "Convert translation files between formats, optionally cross-referencing a scan database",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "scan",
			Usage: "Scan database to cross-reference imported fragments against",
		},
		&cli.StringFlag{
			Name:  "original-locale",
			Usage: "Locale to check imported original_text staleness against (requires --scan)",
		},
		&cli.StringSliceFlag{
			Name:  "inputs",
			Usage: "Input files to convert",
		},
		&cli.StringFlag{
			Name:    "inputs-file",
			Aliases: []string{"i"},
			Usage:   "File listing input paths, one per line (conflicts with --inputs)",
		},
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
			Usage:    fmt.Sprintf("Input format (%v)", pipeline.ImporterIDs()),
		},
		&cli.StringFlag{
			Name:     "output-format",
			Aliases:  []string{"F"},
			Required: true,
			Usage:    fmt.Sprintf("Output format (%v)", pipeline.ExporterIDs()),
		},
		&cli.StringFlag{
			Name:  "default-author",
			Value: "__convert",
			Usage: "Author username attributed to translations with none",
		},
		&cli.StringFlag{
			Name:  "splitter",
			Usage: "Splitter used to route fragments to output files",
		},
		&cli.BoolFlag{
			Name:  "remove-untranslated",
			Usage: "Drop fragments with no translation text from the output",
		},
		&cli.StringFlag{
			Name:  "mapping-output",
			Usage: "Write a game_file_path -> output_file_path mapping file here",
		},
		&cli.BoolFlag{
			Name:  "compact",
			Usage: "Emit compact output",
		},
	},
	Action: convertCommand,
}

func convertCommand(c *cli.Context) error {
	inputs, err := resolveInputPaths(c.StringSlice("inputs"), c.String("inputs-file"))
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input files given: pass --inputs or --inputs-file")
	}

	opts := pipeline.ConvertOptions{
		ImporterID:         c.String("format"),
		ExporterID:         c.String("output-format"),
		SplitterID:         c.String("splitter"),
		FallbackOutputPath: c.String("output"),
		OriginalLocale:     c.String("original-locale"),
	}

	if scanPath := c.String("scan"); scanPath != "" {
		db, err := scan.Open(scanPath)
		if err != nil {
			return fmt.Errorf("failed to open the scan database: %w", err)
		}
		opts.ScanDB = db
	}

	mapping := make(map[string]string)
	var allOutputs []pipeline.ConvertOutput
	for _, inputPath := range inputs {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("failed to read input %s: %w", inputPath, err)
		}

		outputs, warnings, err := pipeline.Convert(data, opts)
		if err != nil {
			return fmt.Errorf("failed to convert %s: %w", inputPath, err)
		}
		for _, w := range warnings {
			logger.Printf("%s: %s:%s: %s", inputPath, w.FilePath, w.JSONPath, w.Message)
		}
		allOutputs = append(allOutputs, outputs...)
	}

	exp, err := pipeline.NewExporter(opts.ExporterID)
	if err != nil {
		return err
	}

	remove := c.Bool("remove-untranslated")
	compact := c.Bool("compact")
	splitting := opts.SplitterID != ""
	var gameVersion string
	if opts.ScanDB != nil {
		gameVersion = opts.ScanDB.Meta.GameVersion
	}
	if splitting {
		if err := os.MkdirAll(opts.FallbackOutputPath, 0o755); err != nil {
			return fmt.Errorf("failed to create the output directory: %w", err)
		}
	}

	for _, output := range allOutputs {
		fragments := output.Fragments
		if remove {
			filtered := fragments[:0]
			for _, frag := range fragments {
				if frag.TranslationText != "" {
					filtered = append(filtered, frag)
				}
			}
			fragments = filtered
		}

		// The splitter's routing answer is an extension-less stem: the
		// same bucket could be exported through any registered exporter,
		// so only here, once the exporter is chosen, does it gain an
		// extension and a place under the output directory.
		outPath := output.Path
		if splitting {
			outPath = filepath.Join(opts.FallbackOutputPath, outPath+"."+exp.FileExtension())
		}

		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", outPath, err)
		}
		err = exp.Export(f, pipeline.ExportMeta{
			GameVersion:      gameVersion,
			GeneratorName:    "crosslocale",
			GeneratorVersion: version.Version,
			Compact:          compact,
		}, fragments)
		closeErr := f.Close()
		if err != nil {
			return fmt.Errorf("failed to export to %s: %w", outPath, err)
		}
		if closeErr != nil {
			return closeErr
		}

		for _, frag := range fragments {
			mapping[frag.FilePath] = outPath
		}
	}

	if mappingPath := c.String("mapping-output"); mappingPath != "" {
		if err := writeMappingFile(mappingPath, mapping); err != nil {
			return err
		}
	}

	logger.Printf("converted %d input files into %d output files", len(inputs), len(allOutputs))
	return nil
}

func resolveInputPaths(inputs []string, inputsFile string) ([]string, error) {
	if len(inputs) > 0 && inputsFile != "" {
		return nil, fmt.Errorf("--inputs and --inputs-file are mutually exclusive")
	}
	if inputsFile == "" {
		return inputs, nil
	}
	data, err := os.ReadFile(inputsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read inputs file %s: %w", inputsFile, err)
	}
	return splitNonEmptyLines(string(data)), nil
}

func splitNonEmptyLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '\n' {
			line := s[start:i]
			line = trimCR(line)
			if line != "" {
				lines = append(lines, line)
			}
			start = i + 1
		}
	}
	return lines
}

func trimCR(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\r' {
		return s[:len(s)-1]
	}
	return s
}

func writeMappingFile(path string, mapping map[string]string) error {
	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}
	return nil
}

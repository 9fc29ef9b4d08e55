package main

import (
	"fmt"

	"github.com/standardbeagle/crosslocale/internal/scan"

	"github.com/urfave/cli/v2"
)

var dumpScanCommandDef = &cli.Command{
	Name:      "dump-scan",
	Usage:     "Dump every fragment of a scan database as JSON",
	Flags:     dumpCommonFlags,
	ArgsUsage: "<scan_db>",
	Action:    dumpScanCommand,
}

func dumpScanCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: crosslocale dump-scan [options] <scan_db>")
	}
	db, err := scan.Open(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to open the scan database: %w", err)
	}

	out := dumpWriter(c)
	f := newDumpFormatter(c, out)

	wrap := c.Bool("wrap-array")
	if wrap {
		f.BeginArray()
	}

	for _, path := range db.GameFiles.Keys() {
		file, _ := db.GameFiles.Get(path)
		for _, jsonPath := range file.Fragments.Keys() {
			frag, _ := file.Fragments.Get(jsonPath)
			writeDumpedScanFragment(f, file, frag)
			if !wrap {
				if err := flushDumpLine(f, c); err != nil {
					return err
				}
			}
		}
	}

	if wrap {
		f.EndArray()
	}
	return f.Flush()
}

func writeDumpedScanFragment(f *dumpFormatter, file *scan.GameFile, frag *scan.Fragment) {
	f.BeginObject()
	f.Key("file_asset_root")
	f.String(file.AssetRoot)
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
	f.Key("flags")
	f.BeginArray()
	for _, flag := range frag.Flags {
		f.String(flag)
	}
	f.EndArray()
	f.Key("text")
	f.BeginObject()
	for locale, text := range frag.Text {
		f.Key(locale)
		f.String(text)
	}
	f.EndObject()
	f.EndObject()
}

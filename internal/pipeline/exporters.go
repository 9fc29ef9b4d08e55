package pipeline

import (
	"io"

	"github.com/standardbeagle/crosslocale/internal/clerrors"
	"github.com/standardbeagle/crosslocale/internal/gettextpo"
	"github.com/standardbeagle/crosslocale/internal/jsonutil"
	"github.com/standardbeagle/crosslocale/internal/localizeme"
	"github.com/standardbeagle/crosslocale/internal/project"
)

// ExportMeta carries the project fields an exporter's output header
// needs.
type ExportMeta struct {
	GameVersion           string
	CreationTimestamp     int64
	ModificationTimestamp int64
	TranslationLocale     string
	GeneratorName         string
	GeneratorVersion      string
	Compact               bool
}

// ExportFragment is one fragment's worth of data handed to an Exporter.
type ExportFragment struct {
	FilePath        string
	JSONPath        string
	LangUID         int32
	Description     []string
	OriginalText    string
	TranslationText string
}

// Exporter writes one output file for a set of fragments.
type Exporter interface {
	ID() string
	FileExtension() string
	SupportsSplitting() bool
	Export(w io.Writer, meta ExportMeta, fragments []ExportFragment) error
}

var exporterRegistry = map[string]func() Exporter{
	IDLmTrPack: func() Exporter { return lmTrPackExporter{} },
	IDPO:       func() Exporter { return poExporter{} },
}

// ExporterIDs lists the registered exporter IDs.
func ExporterIDs() []string {
	return []string{IDLmTrPack, IDPO}
}

// NewExporter constructs the exporter registered under id.
func NewExporter(id string) (Exporter, error) {
	ctor, ok := exporterRegistry[id]
	if !ok {
		return nil, clerrors.New("pipeline.NewExporter", clerrors.CodeUnknownExporter, errUnknownID(id))
	}
	return ctor(), nil
}

type lmTrPackExporter struct{}

func (lmTrPackExporter) ID() string            { return IDLmTrPack }
func (lmTrPackExporter) FileExtension() string { return "json" }
func (lmTrPackExporter) SupportsSplitting() bool { return true }

func (lmTrPackExporter) Export(w io.Writer, meta ExportMeta, fragments []ExportFragment) error {
	var indent *int
	if !meta.Compact {
		d := jsonutil.DefaultIndent
		indent = &d
	}
	f := jsonutil.NewFormatter(w, jsonutil.FormatterConfig{Indent: indent})

	entries := make([]localizeme.Entry, 0, len(fragments))
	for _, frag := range fragments {
		entries = append(entries, localizeme.Entry{
			FilePath: frag.FilePath,
			JSONPath: frag.JSONPath,
			Orig:     frag.OriginalText,
			Text:     frag.TranslationText,
		})
	}
	localizeme.Export(f, entries)

	if err := f.Flush(); err != nil {
		return clerrors.New("lmTrPackExporter.Export", clerrors.CodeExportFailed, err)
	}
	_, err := io.WriteString(w, "\n")
	if err != nil {
		return clerrors.New("lmTrPackExporter.Export", clerrors.CodeExportFailed, err)
	}
	return nil
}

type poExporter struct{}

func (poExporter) ID() string              { return IDPO }
func (poExporter) FileExtension() string   { return "po" }
func (poExporter) SupportsSplitting() bool { return true }

func (poExporter) Export(w io.Writer, meta ExportMeta, fragments []ExportFragment) error {
	poFragments := make([]gettextpo.Fragment, 0, len(fragments))
	for _, frag := range fragments {
		poFragments = append(poFragments, gettextpo.Fragment{
			FilePath:        frag.FilePath,
			JSONPath:        frag.JSONPath,
			LangUID:         frag.LangUID,
			Description:     frag.Description,
			OriginalText:    frag.OriginalText,
			TranslationText: frag.TranslationText,
		})
	}

	err := gettextpo.Export(w, gettextpo.Meta{
		GameVersion:           meta.GameVersion,
		CreationTimestamp:     meta.CreationTimestamp,
		ModificationTimestamp: meta.ModificationTimestamp,
		TranslationLocale:     meta.TranslationLocale,
		GeneratorName:         meta.GeneratorName,
		GeneratorVersion:      meta.GeneratorVersion,
	}, poFragments)
	if err != nil {
		return clerrors.New("poExporter.Export", clerrors.CodeExportFailed, err)
	}
	return nil
}

// ExportProject exports every fragment of p (in project order: TrFiles,
// then each TrFile's GameFileChunks, then each chunk's Fragments) to w
// using the exporter registered under exporterID.
func ExportProject(w io.Writer, p *project.Project, exporterID string, generatorName, generatorVersion string, compact bool) error {
	exp, err := NewExporter(exporterID)
	if err != nil {
		return err
	}

	var fragments []ExportFragment
	for _, trFilePath := range p.TrFiles.Keys() {
		tf, _ := p.TrFiles.Get(trFilePath)
		for _, gameFilePath := range tf.GameFileChunks.Keys() {
			chunk, _ := tf.GameFileChunks.Get(gameFilePath)
			for _, jsonPath := range chunk.Fragments.Keys() {
				frag, _ := chunk.Fragments.Get(jsonPath)
				fragments = append(fragments, ExportFragment{
					FilePath:        frag.FilePath,
					JSONPath:        frag.JSONPath,
					LangUID:         frag.LangUID,
					Description:     frag.Description,
					OriginalText:    frag.OriginalText,
					TranslationText: frag.BestTranslationText(),
				})
			}
		}
	}

	return exp.Export(w, ExportMeta{
		GameVersion:           p.Meta.GameVersion,
		CreationTimestamp:     p.Meta.CreationTimestamp,
		ModificationTimestamp: p.Meta.ModificationTimestamp,
		TranslationLocale:     p.Meta.TranslationLocale,
		GeneratorName:         generatorName,
		GeneratorVersion:      generatorVersion,
		Compact:               compact,
	}, fragments)
}

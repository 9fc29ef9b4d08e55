// Package massfmt reformats many JSON files in parallel: read, decode,
// re-emit through internal/jsonutil's streaming formatter, write back.
// Grounded on original_source/src/cli/mass_json_format.rs's thread-pool
// design, with golang.org/x/sync/errgroup standing in for the original's
// threadpool::ThreadPool + mpsc::channel result collection, the same
// structured-concurrency-with-bounded-parallelism pattern lci's own
// internal/mcp/integration_test.go uses (errgroup.WithContext +
// g.SetLimit, goroutines swallowing their own errors into a shared slice
// rather than failing the group early, so one bad file never stops the
// rest from being formatted).
package massfmt

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/crosslocale/internal/jsonutil"
)

// Options controls how Run discovers, reformats, and writes files.
type Options struct {
	// Jobs bounds the number of files formatted concurrently. Zero means
	// unbounded (errgroup.SetLimit is not called).
	Jobs int

	// InPlace rewrites each input file at its own path. Mutually
	// exclusive with OutputDir.
	InPlace bool

	// OutputDir, when set, mirrors each input's path (relative to the
	// root it was discovered under) into this directory instead of
	// writing in place.
	OutputDir string

	// Config is the target formatting style (indent width, or compact
	// when Config.Indent is nil).
	Config jsonutil.FormatterConfig
}

// FileError pairs a failed file with its error, for Result.Errors.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Result summarizes one Run call.
type Result struct {
	FormattedCount int
	Errors         []FileError
}

type inputEntry struct {
	path    string // path to actually open for reading
	relPath string // path relative to the root it was discovered under
}

// CollectInputs expands roots into the concrete files to format: a
// root that is a regular file is included as-is; a root that is a
// directory is walked recursively for every `*.json` file beneath it,
// matching the original's "directories may be passed as well" behavior.
func CollectInputs(roots []string) ([]string, error) {
	entries, err := collectEntries(roots)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.path
	}
	return paths, nil
}

func collectEntries(roots []string) ([]inputEntry, error) {
	var out []inputEntry
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("massfmt: stat %s: %w", root, err)
		}

		if !info.IsDir() {
			out = append(out, inputEntry{path: root, relPath: filepath.Base(root)})
			continue
		}

		matches, err := doublestar.Glob(os.DirFS(root), "**/*.json")
		if err != nil {
			return nil, fmt.Errorf("massfmt: glob %s: %w", root, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			out = append(out, inputEntry{path: filepath.Join(root, filepath.FromSlash(m)), relPath: m})
		}
	}
	return out, nil
}

// Run reformats every file discovered under roots according to opts,
// running up to opts.Jobs formatting tasks concurrently. A single file's
// failure is recorded in Result.Errors rather than aborting the rest.
func Run(roots []string, opts Options) (Result, error) {
	entries, err := collectEntries(roots)
	if err != nil {
		return Result{}, err
	}

	var (
		mu     sync.Mutex
		result Result
	)

	g := new(errgroup.Group)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}

	for _, entry := range entries {
		entry := entry
		g.Go(func() error {
			if err := formatOne(entry, opts); err != nil {
				mu.Lock()
				result.Errors = append(result.Errors, FileError{Path: entry.path, Err: err})
				mu.Unlock()
				return nil
			}
			mu.Lock()
			result.FormattedCount++
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return result, nil
}

func formatOne(entry inputEntry, opts Options) error {
	data, err := os.ReadFile(entry.path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	formatted, err := FormatBytes(data, opts.Config)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}

	destPath, err := destinationFor(entry, opts)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(destPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(destPath, formatted, 0o644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func destinationFor(entry inputEntry, opts Options) (string, error) {
	switch {
	case opts.InPlace:
		return entry.path, nil
	case opts.OutputDir != "":
		return filepath.Join(opts.OutputDir, filepath.FromSlash(entry.relPath)), nil
	default:
		return "", fmt.Errorf("massfmt: neither InPlace nor OutputDir was set")
	}
}

// FormatBytes decodes data as JSON and re-emits it through a
// jsonutil.Formatter configured by cfg, preserving key and element
// order. A trailing newline is appended if the output doesn't already
// end with one.
func FormatBytes(data []byte, cfg jsonutil.FormatterConfig) ([]byte, error) {
	value, err := jsonutil.Decode(data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	f := jsonutil.NewFormatter(&buf, cfg)
	value.WriteTo(f)
	if err := f.Flush(); err != nil {
		return nil, err
	}

	out := buf.Bytes()
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return out, nil
}

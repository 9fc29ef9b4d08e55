// Package scan implements the translation-extractable-string scanner:
// enumerating JSON assets, recognizing localizable objects inside them,
// generating human-readable descriptions for each, and persisting the
// result as a scan database.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/standardbeagle/crosslocale/internal/clerrors"
)

const (
	dataDirName       = "data"
	extensionsDirName = "extension"
	langDirName       = "lang"
)

// FoundJSONFile is one JSON asset discovered under the assets dir, either
// in the base game's data/ tree or one extension's data/ tree.
type FoundJSONFile struct {
	// Path is slash-separated and relative to the assets dir.
	Path string
	// AssetRoot is "" for the base game, or "extension/<name>/" for an
	// extension.
	AssetRoot string
	// IsLangFile is true when Path sits under <AssetRoot>data/lang/ and
	// the scanner should use lang-file extraction rules for it.
	IsLangFile bool
}

// FindAllInAssetsDir enumerates every JSON file under assetsDir's data/
// directory and every extension's data/ directory, in deterministic
// (path-sorted) order.
func FindAllInAssetsDir(assetsDir string) ([]FoundJSONFile, error) {
	dataDir := filepath.Join(assetsDir, dataDirName)
	info, err := os.Stat(dataDir)
	if err != nil || !info.IsDir() {
		return nil, clerrors.New("scan.FindAllInAssetsDir", clerrors.CodeAssetsDirInvalid,
			fmt.Errorf("the data dir doesn't exist in the assets dir, path to the assets dir is incorrect")).WithPath(assetsDir)
	}

	found := make([]FoundJSONFile, 0, 2400)
	assetRoots := []string{""}

	extCount, err := readExtensionsDir(assetsDir, &assetRoots, &found)
	if err != nil {
		return nil, clerrors.New("scan.FindAllInAssetsDir", clerrors.CodeFileEnumerationFailed, err)
	}
	_ = extCount

	for _, assetRoot := range assetRoots {
		relDataDir := filepath.Join(assetRoot, dataDirName)
		langDir := filepath.Join(relDataDir, langDirName)
		absDataDir := filepath.Join(assetsDir, relDataDir)

		walkErr := filepath.WalkDir(absDataDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if os.IsNotExist(err) {
					return nil
				}
				return err
			}
			if d.IsDir() || filepath.Ext(path) != ".json" {
				return nil
			}

			rel, err := filepath.Rel(assetsDir, path)
			if err != nil {
				return nil
			}
			relSlash := toSlash(rel)

			isLangFile := strings.HasPrefix(relSlash, toSlash(langDir)+"/") || relSlash == toSlash(langDir)
			if isLangFile && !strings.HasSuffix(relSlash, ".en_US.json") {
				return nil
			}

			found = append(found, FoundJSONFile{
				Path:       relSlash,
				AssetRoot:  assetRoot,
				IsLangFile: isLangFile,
			})
			return nil
		})
		if walkErr != nil && !os.IsNotExist(walkErr) {
			return nil, clerrors.New("scan.FindAllInAssetsDir", clerrors.CodeFileEnumerationFailed, walkErr).WithPath(absDataDir)
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Path < found[j].Path })
	return found, nil
}

// readExtensionsDir looks for subdirectories of <assetsDir>/extension/ that
// carry a manifest file at extension/<name>/<name>.json. Each one
// contributes a new asset root and its manifest file is itself a found
// JSON file.
func readExtensionsDir(assetsDir string, assetRoots *[]string, found *[]FoundJSONFile) (int, error) {
	extensionsDir := filepath.Join(assetsDir, extensionsDirName)
	entries, err := os.ReadDir(extensionsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	count := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		extensionDir := filepath.Join(extensionsDirName, name)
		metadataFile := filepath.Join(extensionDir, name+".json")

		if _, err := os.Stat(filepath.Join(assetsDir, metadataFile)); err != nil {
			continue
		}

		assetRoot := toSlash(extensionDir) + "/"
		count++
		*found = append(*found, FoundJSONFile{
			Path:       toSlash(metadataFile),
			AssetRoot:  assetRoot,
			IsLangFile: false,
		})
		*assetRoots = append(*assetRoots, assetRoot)
	}

	return count, nil
}

func toSlash(p string) string {
	return filepath.ToSlash(p)
}

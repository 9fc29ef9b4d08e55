package scan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/standardbeagle/crosslocale/internal/clerrors"
)

const changelogFilePath = "data/changelog.json"

type changelogFile struct {
	Changelog []changelogEntry `json:"changelog"`
}

type changelogEntry struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Date    string   `json:"date"`
	Fixes   []string `json:"fixes"`
	Changes []string `json:"changes"`
}

// ReadGameVersion derives the scanned game's version from
// assetsDir/data/changelog.json: the first entry's version, with the
// highest HOTFIX(n) found among its changes and fixes appended as a
// hyphenated suffix.
func ReadGameVersion(assetsDir string) (string, error) {
	path := filepath.Join(assetsDir, filepath.FromSlash(changelogFilePath))
	data, err := os.ReadFile(path)
	if err != nil {
		return "", clerrors.New("scan.ReadGameVersion", clerrors.CodeChangelogMissing, err).WithPath(path)
	}

	var changelog changelogFile
	if err := json.Unmarshal(data, &changelog); err != nil {
		return "", clerrors.New("scan.ReadGameVersion", clerrors.CodeChangelogMissing, err).WithPath(path)
	}
	if len(changelog.Changelog) == 0 {
		return "", clerrors.New("scan.ReadGameVersion", clerrors.CodeChangelogEmpty,
			fmt.Errorf("changelog is empty, can't determine the game version")).WithPath(path)
	}

	latest := changelog.Changelog[0]

	var maxHotfix int
	var maxHotfixStr string
	for _, change := range append(append([]string{}, latest.Changes...), latest.Fixes...) {
		if hotfixStr, hotfix, ok := extractHotfix(change); ok && hotfix > maxHotfix {
			maxHotfix = hotfix
			maxHotfixStr = hotfixStr
		}
	}

	if maxHotfix > 0 {
		return latest.Version + "-" + maxHotfixStr, nil
	}
	return latest.Version, nil
}

// extractHotfix looks for a HOTFIX(<digits>) marker after stripping any
// leading run of '+', '-', '~', or space, matching the original
// changelog annotation convention.
func extractHotfix(change string) (digits string, value int, ok bool) {
	trimmed := strings.TrimLeft(change, "+-~ ")
	rest, ok := strings.CutPrefix(trimmed, "HOTFIX(")
	if !ok {
		return "", 0, false
	}

	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	if i == 0 {
		return "", 0, false
	}
	digits = rest[:i]
	rest = rest[i:]
	if !strings.HasPrefix(rest, ")") {
		return "", 0, false
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return "", 0, false
	}
	return digits, n, true
}

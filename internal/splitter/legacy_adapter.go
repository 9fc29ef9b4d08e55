package splitter

import "github.com/standardbeagle/crosslocale/internal/splitter/legacy"

// legacyAdapter satisfies Splitter on behalf of a legacy.SplittingStrategy,
// which predates asset_root: the asset root argument is simply discarded.
type legacyAdapter struct {
	strategy legacy.SplittingStrategy
}

func (a legacyAdapter) ID() string { return a.strategy.ID() }

func (a legacyAdapter) TrFileForEntireGameFile(_ string, filePath string) (string, bool) {
	return a.strategy.TrFileForEntireGameFile(filePath)
}

func (a legacyAdapter) TrFileForFragment(_ string, filePath, jsonPath string) string {
	return a.strategy.TrFileForFragment(filePath, jsonPath)
}

// NewLegacy constructs the legacy strategy registered under id and wraps it
// to satisfy Splitter, so project files written before asset_root-aware
// splitters existed can still be opened.
func NewLegacy(id string) (Splitter, error) {
	strategy, err := legacy.New(id)
	if err != nil {
		return nil, err
	}
	return legacyAdapter{strategy: strategy}, nil
}

// LegacyIDs lists splitter ids recognized by the legacy, pre-asset_root
// registry.
func LegacyIDs() []string {
	return legacy.IDs()
}

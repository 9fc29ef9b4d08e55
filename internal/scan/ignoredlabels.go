package scan

import "strings"

// ignoredMainLocaleTexts lists verbatim en_US strings the scanner never
// turns into fragments: placeholders and the handful of "don't translate
// this" markers the game's own data files carry.
var ignoredMainLocaleTexts = map[string]struct{}{
	"":                                               {},
	"en_US":                                          {},
	"LOL, DO NOT TRANSLATE THIS!":                    {},
	"LOL, DO NOT TRANSLATE THIS! (hologram)":         {},
	"\\c[1][DO NOT TRANSLATE THE FOLLOWING]\\c[0]":   {},
	"\\c[1][DO NOT TRANSLATE FOLLOWING TEXTS]\\c[0]": {},
}

const creditsPathPrefix = "data/credits/"

// IsLangLabelIgnored reports whether label, found in foundFile, should be
// dropped rather than turned into a fragment: a known placeholder string,
// or a credits entry's name field (data/credits/.../entries/<n>/names/...).
func IsLangLabelIgnored(label LangLabel, foundFile FoundJSONFile) bool {
	if _, ignored := ignoredMainLocaleTexts[label.MainLocaleText]; ignored {
		return true
	}

	if strings.HasPrefix(foundFile.Path, creditsPathPrefix) && isCreditsNameField(label.JSONPath) {
		return true
	}

	return false
}

func isCreditsNameField(jsonPath string) bool {
	parts := strings.Split(jsonPath, "/")
	return len(parts) >= 3 && parts[0] == "entries" && parts[2] == "names"
}

package scan

import "testing"

func TestIsLangLabelIgnoredPlaceholders(t *testing.T) {
	file := FoundJSONFile{Path: "data/lang/sc/gui.en_US.json", IsLangFile: true}
	cases := []string{
		"",
		"en_US",
		"LOL, DO NOT TRANSLATE THIS!",
		"LOL, DO NOT TRANSLATE THIS! (hologram)",
		"\\c[1][DO NOT TRANSLATE THE FOLLOWING]\\c[0]",
		"\\c[1][DO NOT TRANSLATE FOLLOWING TEXTS]\\c[0]",
	}
	for _, text := range cases {
		label := LangLabel{JSONPath: "labels/title", MainLocaleText: text}
		if !IsLangLabelIgnored(label, file) {
			t.Errorf("expected %q to be ignored", text)
		}
	}
}

func TestIsLangLabelIgnoredCreditsNames(t *testing.T) {
	file := FoundJSONFile{Path: "data/credits/credits.json"}
	label := LangLabel{JSONPath: "entries/3/names/0", MainLocaleText: "Some Person"}
	if !IsLangLabelIgnored(label, file) {
		t.Error("expected a credits entry's names field to be ignored")
	}
}

func TestIsLangLabelIgnoredCreditsOtherFields(t *testing.T) {
	file := FoundJSONFile{Path: "data/credits/credits.json"}
	label := LangLabel{JSONPath: "entries/3/role", MainLocaleText: "Programmer"}
	if IsLangLabelIgnored(label, file) {
		t.Error("expected a credits entry's non-names field to not be ignored")
	}
}

func TestIsLangLabelIgnoredOutsideCredits(t *testing.T) {
	file := FoundJSONFile{Path: "data/database.json"}
	label := LangLabel{JSONPath: "entries/3/names/0", MainLocaleText: "Some Person"}
	if IsLangLabelIgnored(label, file) {
		t.Error("expected the credits-names rule to not apply outside data/credits/")
	}
}

func TestIsLangLabelIgnoredOrdinaryText(t *testing.T) {
	label := LangLabel{JSONPath: "labels/title", MainLocaleText: "Hello"}
	if IsLangLabelIgnored(label, FoundJSONFile{Path: "data/lang/sc/gui.en_US.json"}) {
		t.Error("expected ordinary text to not be ignored")
	}
}

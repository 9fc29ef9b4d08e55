package markup

// ChapterFragmentsFile is the on-disk shape of the cc-ru-chapter-fragments
// import format reserved by spec.md §6's CLI surface: one Notabenoid
// chapter's fragments, as exported by the Russian localization team's
// tooling. Parsing is not wired to the importer registry yet — no
// importer claims this ID — but the wire shape is recorded here so that
// whoever implements it later doesn't have to re-derive it from
// original_source/src/cc_ru_compat.rs.
type ChapterFragmentsFile struct {
	Fragments []ChapterFragment `json:"fragments"`
}

// ChapterFragment is one translatable unit within a chapter.
type ChapterFragment struct {
	ChapterID    int32                 `json:"chapterId"`
	ID           int32                 `json:"id"`
	OrderNumber  int32                 `json:"orderNumber"`
	Original     FragmentOriginal      `json:"original"`
	Translations []FragmentTranslation `json:"translations"`
}

// FragmentOriginal is the source-language text a chapter fragment was
// translated from, plus the project metadata that locates it.
type FragmentOriginal struct {
	RawContent      string `json:"rawContent"`
	LangUID         int32  `json:"langUid"`
	File            string `json:"file"`
	JSONPath        string `json:"jsonPath"`
	DescriptionText string `json:"descriptionText"`
	Text            string `json:"text"`
}

// FragmentTranslation is one Notabenoid-sourced translation of a chapter
// fragment, including its voting metadata.
type FragmentTranslation struct {
	ID             int32           `json:"id"`
	RawText        string          `json:"rawText"`
	AuthorUsername string          `json:"authorUsername"`
	Votes          int16           `json:"votes"`
	Score          int64           `json:"score"`
	Timestamp      int64           `json:"timestamp"`
	Text           string          `json:"text"`
	Flags          map[string]bool `json:"flags"`
}

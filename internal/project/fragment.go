package project

import "github.com/google/uuid"

// Fragment is one translatable unit inside a game file. Its OriginalText
// is immutable after creation; Translations and Comments may mutate.
type Fragment struct {
	ID             string
	FilePath       string
	JSONPath       string
	LangUID        int32
	Description    []string
	OriginalText   string
	ReferenceTexts map[string]string
	Flags          []string
	Translations   []*Translation
	Comments       []*Comment

	creationTimestamp int64
	chunk             *GameFileChunk
}

// SetOriginalText is the only way OriginalText may be assigned, and is
// only ever called once, at creation time (create-project/import),
// matching the invariant that it's immutable afterward.
func (f *Fragment) SetOriginalText(text string) {
	f.OriginalText = text
}

func (f *Fragment) markDirty(now int64) {
	if f.chunk != nil && f.chunk.trFile != nil {
		f.chunk.trFile.markDirty(now)
	}
}

// BestTranslation returns the translation with the maximum
// ModificationTimestamp; ties go to the later one in insertion order.
func (f *Fragment) BestTranslation() *Translation {
	var best *Translation
	for _, tr := range f.Translations {
		if best == nil || tr.ModificationTimestamp >= best.ModificationTimestamp {
			best = tr
		}
	}
	return best
}

// BestTranslationText returns BestTranslation's text, or "" if there are
// no translations yet.
func (f *Fragment) BestTranslationText() string {
	if tr := f.BestTranslation(); tr != nil {
		return tr.Text
	}
	return ""
}

// AddTranslation appends a new translation authored by authorUsername and
// marks the owning tr-file dirty.
func (f *Fragment) AddTranslation(authorUsername, text string, now int64) *Translation {
	tr := &Translation{
		ID:                    uuid.New().String(),
		AuthorUsername:        authorUsername,
		EditorUsername:        authorUsername,
		CreationTimestamp:     now,
		ModificationTimestamp: now,
		Text:                  text,
	}
	f.Translations = append(f.Translations, tr)
	f.markDirty(now)
	return tr
}

// EditTranslation updates tr's text, stamping editorUsername and now as
// the new modification time, and marks the owning tr-file dirty.
func (f *Fragment) EditTranslation(tr *Translation, editorUsername, text string, now int64) {
	tr.Text = text
	tr.EditorUsername = editorUsername
	tr.ModificationTimestamp = now
	f.markDirty(now)
}

// AddComment appends a new comment authored by authorUsername and marks
// the owning tr-file dirty.
func (f *Fragment) AddComment(authorUsername, text string, now int64) *Comment {
	c := &Comment{
		ID:                    uuid.New().String(),
		AuthorUsername:        authorUsername,
		EditorUsername:        authorUsername,
		CreationTimestamp:     now,
		ModificationTimestamp: now,
		Text:                  text,
	}
	f.Comments = append(f.Comments, c)
	f.markDirty(now)
	return c
}

// Translation is one translator's candidate text for a fragment.
type Translation struct {
	ID                    string
	AuthorUsername        string
	EditorUsername        string
	CreationTimestamp     int64
	ModificationTimestamp int64
	Text                  string
	Flags                 []string
}

// Comment is a free-form note attached to a fragment.
type Comment struct {
	ID                    string
	AuthorUsername        string
	EditorUsername        string
	CreationTimestamp     int64
	ModificationTimestamp int64
	Text                  string
}

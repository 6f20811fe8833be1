package domain

// DefaultTheme is the only theme the bot files entries under.
const DefaultTheme = "General"

// DefinitionLang tells which definition variant was kept for an entry
type DefinitionLang string

const (
	DefinitionEnglish DefinitionLang = "en"
	DefinitionRussian DefinitionLang = "ru"
	DefinitionCustom  DefinitionLang = "custom"
)

// VocabularyEntry is a fully resolved word ready for the store.
// It is built once and passed by value; nothing mutates it afterwards.
type VocabularyEntry struct {
	UserID         int64
	Theme          string
	WordEn         string
	WordRu         string
	Definition     string
	DefinitionLang DefinitionLang
}

// NewVocabularyEntry builds an entry for the default theme
func NewVocabularyEntry(userID int64, wordEn, wordRu, definition string, lang DefinitionLang) VocabularyEntry {
	return VocabularyEntry{
		UserID:         userID,
		Theme:          DefaultTheme,
		WordEn:         wordEn,
		WordRu:         wordRu,
		Definition:     definition,
		DefinitionLang: lang,
	}
}

package domain

// Lang is one side of the ru/en pair the bot works with
type Lang string

const (
	LangRussian Lang = "ru"
	LangEnglish Lang = "en"
)

// Valid reports whether l is one of the supported languages
func (l Lang) Valid() bool {
	return l == LangRussian || l == LangEnglish
}

// Other returns the opposite language of the pair
func (l Lang) Other() Lang {
	if l == LangRussian {
		return LangEnglish
	}
	return LangRussian
}

// ResolvePair maps a source word and its translation onto the English and
// Russian forms of the entry.
func ResolvePair(source Lang, word, translation string) (wordEn, wordRu string) {
	if source == LangRussian {
		return translation, word
	}
	return word, translation
}

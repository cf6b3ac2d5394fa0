package domain

// LanguageTag identifies the script family a text was classified into.
// It is assigned once by the classifier and never mutated afterwards.
type LanguageTag string

const (
	LanguageEnglish  LanguageTag = "english"
	LanguageJapanese LanguageTag = "japanese"
	LanguageMixed    LanguageTag = "mixed"
	LanguageUnknown  LanguageTag = "unknown"
)

// Normalize maps any unrecognized tag value to LanguageUnknown so that
// downstream dispatch never has to handle an out-of-range tag.
func (t LanguageTag) Normalize() LanguageTag {
	switch t {
	case LanguageEnglish, LanguageJapanese, LanguageMixed, LanguageUnknown:
		return t
	default:
		return LanguageUnknown
	}
}

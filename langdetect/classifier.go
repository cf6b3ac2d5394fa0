// Package langdetect assigns language tags using script-range character
// ratios. It is deterministic and needs no model or external state.
package langdetect

import (
	"unicode"

	"bookmark-analytics/domain"
)

// Classifier tags text as english, japanese, mixed, or unknown. A text is
// mixed when both script families clear mixedThreshold of its non-whitespace
// code points.
type Classifier struct {
	mixedThreshold float64
}

func New(mixedThreshold float64) *Classifier {
	return &Classifier{mixedThreshold: mixedThreshold}
}

func (c *Classifier) Classify(text string) domain.LanguageTag {
	var total, japanese, latin int

	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		switch {
		case IsJapaneseRune(r):
			japanese++
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}

	if total == 0 {
		return domain.LanguageUnknown
	}

	japaneseRatio := float64(japanese) / float64(total)
	latinRatio := float64(latin) / float64(total)

	switch {
	case japaneseRatio >= c.mixedThreshold && latinRatio >= c.mixedThreshold:
		return domain.LanguageMixed
	case japaneseRatio > latinRatio && japaneseRatio > 0:
		return domain.LanguageJapanese
	case latinRatio > 0:
		return domain.LanguageEnglish
	default:
		return domain.LanguageUnknown
	}
}

// IsJapaneseRune reports whether r belongs to the Japanese script ranges
// (hiragana, katakana, CJK ideographs).
func IsJapaneseRune(r rune) bool {
	return unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han)
}

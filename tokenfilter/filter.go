// Package tokenfilter removes stopwords and noise tokens from token
// sequences. Filtering is pure and idempotent.
package tokenfilter

import (
	"strings"
	"unicode"

	"bookmark-analytics/domain"
)

type Filter struct {
	english  map[string]struct{}
	japanese map[string]struct{}
}

func New() *Filter {
	return &Filter{
		english:  toSet(englishStopwords),
		japanese: toSet(japaneseStopwords),
	}
}

// LoadOverrides merges additional stopwords from a YAML file into the
// built-in sets.
func (f *Filter) LoadOverrides(path string) error {
	overrides, err := loadStopwordOverrides(path)
	if err != nil {
		return err
	}

	for _, w := range overrides.English {
		f.english[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range overrides.Japanese {
		f.japanese[w] = struct{}{}
	}
	return nil
}

// Apply removes empty tokens, tokens made entirely of digits or
// punctuation, single-character Latin noise tokens, and tokens in the
// language-appropriate stopword set. For mixed and unknown text the union
// of both sets applies. Order of the surviving tokens is preserved.
// A single CJK character can carry a full word, so only Latin singles
// count as noise.
func (f *Filter) Apply(tokens []string, tag domain.LanguageTag) []string {
	if len(tokens) == 0 {
		return nil
	}

	checkEnglish, checkJapanese := true, true
	switch tag.Normalize() {
	case domain.LanguageEnglish:
		checkJapanese = false
	case domain.LanguageJapanese:
		checkEnglish = false
	}

	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == "" || isNoise(token) {
			continue
		}
		if checkEnglish {
			if _, ok := f.english[strings.ToLower(token)]; ok {
				continue
			}
		}
		if checkJapanese {
			if _, ok := f.japanese[token]; ok {
				continue
			}
		}
		kept = append(kept, token)
	}
	return kept
}

// isNoise reports whether the token is a single Latin character or is
// composed entirely of digits, punctuation, and symbols.
func isNoise(token string) bool {
	runes := []rune(token)
	if len(runes) == 1 && unicode.Is(unicode.Latin, runes[0]) {
		return true
	}

	for _, r := range runes {
		if !unicode.IsDigit(r) && !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

package domain

// NormalizedText is the normalizer's output for a single bookmark:
// the cleaned text plus the metadata extracted out of it.
type NormalizedText struct {
	CleanText string   `json:"clean_text"`
	Hashtags  []string `json:"hashtags"`
	Mentions  []string `json:"mentions"`
	HadEmoji  bool     `json:"had_emoji"`
}

// TokenSequence is the ordered tokenization of one bookmark's clean text,
// together with the language tag that selected the tokenizer.
type TokenSequence struct {
	Tokens   []string    `json:"tokens"`
	Language LanguageTag `json:"language"`
}

func (s TokenSequence) Len() int {
	return len(s.Tokens)
}

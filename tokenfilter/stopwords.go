package tokenfilter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// englishStopwords is the usual high-frequency English word set used for
// search-style filtering.
var englishStopwords = []string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an",
	"and", "any", "are", "as", "at", "be", "because", "been", "before",
	"being", "below", "between", "both", "but", "by", "can", "cannot",
	"could", "did", "do", "does", "doing", "down", "during", "each", "few",
	"for", "from", "further", "had", "has", "have", "having", "he", "her",
	"here", "hers", "herself", "him", "himself", "his", "how", "i", "if",
	"in", "into", "is", "it", "its", "itself", "just", "me", "more", "most",
	"my", "myself", "no", "nor", "not", "now", "of", "off", "on", "once",
	"only", "or", "other", "our", "ours", "ourselves", "out", "over", "own",
	"same", "she", "should", "so", "some", "such", "than", "that", "the",
	"their", "theirs", "them", "themselves", "then", "there", "these",
	"they", "this", "those", "through", "to", "too", "under", "until", "up",
	"very", "was", "we", "were", "what", "when", "where", "which", "while",
	"who", "whom", "why", "will", "with", "you", "your", "yours",
	"yourself", "yourselves",
}

// japaneseStopwords covers particles, auxiliary verbs, and the social-media
// noise terms that dominate bookmark text.
var japaneseStopwords = []string{
	"の", "が", "に", "を", "は", "た", "て", "と", "も", "な", "だ", "で",
	"や", "ね", "よ", "さ", "ん", "から", "まで", "より", "こと", "もの",
	"これ", "それ", "あれ", "この", "その", "あの", "ここ", "そこ",
	"する", "いる", "なる", "ある", "れる", "られる", "です", "ます",
	"ない", "って", "という", "ため", "よう", "そう", "どう",
	"rt", "http", "https", "co", "jp", "com", "www", "amp",
	"笑", "w", "ｗ", "…", "♪",
}

// stopwordOverrides is the YAML shape of an optional override file. Lists
// are merged into the built-in sets, never replacing them.
type stopwordOverrides struct {
	English  []string `yaml:"english"`
	Japanese []string `yaml:"japanese"`
}

func loadStopwordOverrides(path string) (*stopwordOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stopword file: %w", err)
	}

	var overrides stopwordOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse stopword file: %w", err)
	}
	return &overrides, nil
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

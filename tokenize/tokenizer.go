package tokenize

import (
	"strings"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Backend is the single capability every tokenizer variant implements.
type Backend interface {
	Tokenize(text string) []string
	Name() string
}

// InitTokenizer loads the bundled ipa dictionary once at process start.
// The returned tokenizer is read-only and safe to share across workers.
func InitTokenizer() (*tokenizer.Tokenizer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return t, nil
}

// MorphologicalBackend segments Japanese text into surface-form tokens
// using the kagome dictionary.
type MorphologicalBackend struct {
	tokenizer *tokenizer.Tokenizer
}

func NewMorphologicalBackend(t *tokenizer.Tokenizer) *MorphologicalBackend {
	return &MorphologicalBackend{tokenizer: t}
}

func (b *MorphologicalBackend) Name() string {
	return "morphological"
}

func (b *MorphologicalBackend) Tokenize(text string) []string {
	segments := b.tokenizer.Wakati(text)

	tokens := make([]string, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			tokens = append(tokens, seg)
		}
	}
	return tokens
}

// RuleBasedBackend splits on whitespace and punctuation boundaries and
// lower-cases the result. No stemming.
type RuleBasedBackend struct{}

func NewRuleBasedBackend() *RuleBasedBackend {
	return &RuleBasedBackend{}
}

func (b *RuleBasedBackend) Name() string {
	return "rule-based"
}

func (b *RuleBasedBackend) Tokenize(text string) []string {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		tokens = append(tokens, strings.ToLower(w))
	}
	return tokens
}

// HeuristicBackend is the dictionary-free fallback: overlapping character
// bigrams over each whitespace-separated field. A field at or below the
// window size passes through unchanged, so non-empty input always yields
// tokens.
type HeuristicBackend struct {
	window int
}

func NewHeuristicBackend() *HeuristicBackend {
	return &HeuristicBackend{window: 2}
}

func (b *HeuristicBackend) Name() string {
	return "heuristic"
}

func (b *HeuristicBackend) Tokenize(text string) []string {
	var tokens []string
	for _, field := range strings.Fields(text) {
		runes := []rune(field)
		if len(runes) <= b.window {
			tokens = append(tokens, field)
			continue
		}
		for i := 0; i+b.window <= len(runes); i++ {
			tokens = append(tokens, string(runes[i:i+b.window]))
		}
	}
	return tokens
}

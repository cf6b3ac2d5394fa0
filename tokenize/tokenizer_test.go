package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTokenizer(t *testing.T) {
	tok, err := InitTokenizer()
	require.NoError(t, err)
	assert.NotNil(t, tok)
}

func TestMorphologicalBackend_Tokenize(t *testing.T) {
	tok, err := InitTokenizer()
	require.NoError(t, err)
	b := NewMorphologicalBackend(tok)

	tokens := b.Tokenize("すもももももももものうち")
	assert.Equal(t, []string{"すもも", "も", "もも", "も", "もも", "の", "うち"}, tokens)
}

func TestMorphologicalBackend_TokenizeEmpty(t *testing.T) {
	tok, err := InitTokenizer()
	require.NoError(t, err)
	b := NewMorphologicalBackend(tok)

	assert.Empty(t, b.Tokenize(""))
}

func TestRuleBasedBackend_Tokenize(t *testing.T) {
	b := NewRuleBasedBackend()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple sentence", "The quick brown fox", []string{"the", "quick", "brown", "fox"}},
		{"punctuation boundaries", "hello, world! it's fine", []string{"hello", "world", "it", "s", "fine"}},
		{"no stemming applied", "running runners ran", []string{"running", "runners", "ran"}},
		{"digits kept", "go 123 go", []string{"go", "123", "go"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Tokenize(tt.text))
		})
	}
}

func TestHeuristicBackend_Tokenize(t *testing.T) {
	b := NewHeuristicBackend()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"character bigrams over a field", "たのしい", []string{"たの", "のし", "しい"}},
		{"short field passes through", "を", []string{"を"}},
		{"two rune field passes through", "うち", []string{"うち"}},
		{"fields handled independently", "ab cdef", []string{"ab", "cd", "de", "ef"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Tokenize(tt.text))
		})
	}
}

func TestHeuristicBackend_NonEmptyOutputForNonEmptyInput(t *testing.T) {
	b := NewHeuristicBackend()

	inputs := []string{"a", "あ", "日本語です", "x y z", "1234567890"}
	for _, in := range inputs {
		assert.NotEmpty(t, b.Tokenize(in), "input %q", in)
	}
}

package tokenize

import (
	"log/slog"

	"bookmark-analytics/domain"
	"bookmark-analytics/langdetect"
)

// Dispatcher routes text to the backend matching its language tag. The
// backend table is resolved once at construction; when the morphological
// dictionary is unavailable (or disabled) the heuristic backend substitutes
// for Japanese for the remainder of the run, decided and logged exactly once.
type Dispatcher struct {
	backends map[domain.LanguageTag]Backend
	degraded bool
}

func NewDispatcher(morphologicalEnabled bool, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}

	ruleBased := NewRuleBasedBackend()
	heuristic := NewHeuristicBackend()

	d := &Dispatcher{
		backends: map[domain.LanguageTag]Backend{
			domain.LanguageEnglish: ruleBased,
			domain.LanguageUnknown: heuristic,
		},
	}

	japanese := Backend(heuristic)
	if morphologicalEnabled {
		if t, err := InitTokenizer(); err != nil {
			logger.Warn("morphological dictionary unavailable, falling back to heuristic tokenization",
				"error", err)
			d.degraded = true
		} else {
			japanese = NewMorphologicalBackend(t)
		}
	} else {
		logger.Warn("morphological backend disabled by configuration, using heuristic tokenization for Japanese")
		d.degraded = true
	}
	d.backends[domain.LanguageJapanese] = japanese

	return d
}

// Degraded reports whether Japanese text is being tokenized by the
// heuristic fallback instead of the morphological backend.
func (d *Dispatcher) Degraded() bool {
	return d.degraded
}

// Tokenize never fails; an unrecognized tag is treated as unknown.
func (d *Dispatcher) Tokenize(text string, tag domain.LanguageTag) []string {
	if text == "" {
		return nil
	}

	switch tag.Normalize() {
	case domain.LanguageMixed:
		return d.tokenizeMixed(text)
	case domain.LanguageEnglish:
		return d.backends[domain.LanguageEnglish].Tokenize(text)
	case domain.LanguageJapanese:
		return d.backends[domain.LanguageJapanese].Tokenize(text)
	default:
		return d.backends[domain.LanguageUnknown].Tokenize(text)
	}
}

// tokenizeMixed splits the text into runs of Japanese and non-Japanese
// script, routes each run to its backend, and concatenates the results in
// left-to-right order of original appearance.
func (d *Dispatcher) tokenizeMixed(text string) []string {
	var tokens []string
	for _, run := range splitScriptRuns(text) {
		if run.japanese {
			tokens = append(tokens, d.backends[domain.LanguageJapanese].Tokenize(run.text)...)
		} else {
			tokens = append(tokens, d.backends[domain.LanguageEnglish].Tokenize(run.text)...)
		}
	}
	return tokens
}

type scriptRun struct {
	text     string
	japanese bool
}

func splitScriptRuns(text string) []scriptRun {
	var runs []scriptRun
	var current []rune
	currentJapanese := false

	flush := func() {
		if len(current) > 0 {
			runs = append(runs, scriptRun{text: string(current), japanese: currentJapanese})
			current = current[:0]
		}
	}

	for _, r := range text {
		japanese := langdetect.IsJapaneseRune(r)
		if len(current) > 0 && japanese != currentJapanese {
			flush()
		}
		currentJapanese = japanese
		current = append(current, r)
	}
	flush()

	return runs
}

// Package normalizer strips non-lexical content out of raw bookmark text
// before language classification and tokenization.
package normalizer

import (
	"regexp"
	"strings"
	"unicode"

	"bookmark-analytics/domain"
)

// Extraction passes run in a fixed order: mentions, then hashtags, then URLs.
// Each pass removes its matches from the working text before the next pass,
// and mention/hashtag patterns require a leading whitespace boundary, so a
// fragment inside a URL is never reported as a hashtag.
var (
	mentionPattern = regexp.MustCompile(`(^|\s)@([A-Za-z0-9_]+)`)
	hashtagPattern = regexp.MustCompile(`(^|\s)#([\p{L}\p{N}_]+)`)
	urlPattern     = regexp.MustCompile(`[A-Za-z][A-Za-z0-9+.-]*://\S+`)
)

// Pictographic blocks checked for the had_emoji flag. Emoji are flagged but
// left in the clean text; the tokenizer decides what to do with them.
var emojiRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2600, Hi: 0x27BF, Stride: 1}, // misc symbols, dingbats
		{Lo: 0x2B00, Hi: 0x2BFF, Stride: 1},
		{Lo: 0xFE0F, Hi: 0xFE0F, Stride: 1}, // variation selector
	},
	R32: []unicode.Range32{
		{Lo: 0x1F1E6, Hi: 0x1F1FF, Stride: 1}, // regional indicators
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1},
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1},
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1},
		{Lo: 0x1FA70, Hi: 0x1FAFF, Stride: 1},
	},
}

type Normalizer struct{}

func New() *Normalizer {
	return &Normalizer{}
}

// Normalize never fails: any input, including empty or control-only text,
// yields a NormalizedText with empty metadata at worst.
func (n *Normalizer) Normalize(raw string) domain.NormalizedText {
	working, mentions := extractCaptures(raw, mentionPattern)
	working, hashtags := extractCaptures(working, hashtagPattern)
	working = urlPattern.ReplaceAllString(working, " ")

	return domain.NormalizedText{
		CleanText: collapseWhitespace(working),
		Hashtags:  hashtags,
		Mentions:  mentions,
		HadEmoji:  containsEmoji(raw),
	}
}

// extractCaptures removes every match of pattern from text, keeping the
// leading boundary character, and returns the captured bodies deduplicated
// in order of first appearance.
func extractCaptures(text string, pattern *regexp.Regexp) (string, []string) {
	var captured []string
	seen := make(map[string]struct{})

	cleaned := pattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := pattern.FindStringSubmatch(match)
		body := groups[2]
		if _, dup := seen[body]; !dup {
			seen[body] = struct{}{}
			captured = append(captured, body)
		}
		return groups[1]
	})

	return cleaned, captured
}

func containsEmoji(text string) bool {
	for _, r := range text {
		if unicode.In(r, emojiRanges) {
			return true
		}
	}
	return false
}

// collapseWhitespace maps control characters to spaces, then collapses all
// whitespace runs to single spaces and trims the edges.
func collapseWhitespace(text string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, text)

	return strings.Join(strings.Fields(mapped), " ")
}

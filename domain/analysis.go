package domain

// RecordAnalysis is the per-record enrichment produced by one analytics run,
// emitted in the same order as the input batch.
type RecordAnalysis struct {
	RecordID   string      `json:"record_id"`
	Language   LanguageTag `json:"language"`
	Tokens     []string    `json:"tokens"`
	Hashtags   []string    `json:"hashtags"`
	Mentions   []string    `json:"mentions"`
	HadEmoji   bool        `json:"had_emoji"`
	Category   string      `json:"category"`
	Skipped    bool        `json:"skipped"`
	SkipReason string      `json:"skip_reason,omitempty"`
}

// AnalysisResult bundles the corpus statistics snapshot with the per-record
// enrichment of a single run.
type AnalysisResult struct {
	RunID    string           `json:"run_id"`
	Stats    *CorpusStats     `json:"stats"`
	Records  []RecordAnalysis `json:"records"`
	Degraded bool             `json:"degraded"`
}

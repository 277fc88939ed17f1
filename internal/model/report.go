package model

import "time"

// Report is the complete analysis result for one image (or text file)
type Report struct {
	Source      string    `json:"source"`       // input path
	ProcessedAt time.Time `json:"processed_at"` // when the run occurred

	OCR *OCRMeta `json:"ocr,omitempty"` // nil when analyzing plain text

	CleanedText string          `json:"cleaned_text"`
	Statistics  *VerbStatistics `json:"statistics"`

	LLM *LLMSummary `json:"llm,omitempty"` // optional summary, never affects statistics
}

// OCRMeta records how the text was recognized
type OCRMeta struct {
	Engine     string             `json:"engine"`
	Languages  []string           `json:"languages,omitempty"`
	Chain      string             `json:"chain"`                // winning preprocess chain ("" = none)
	Confidence float64            `json:"confidence,omitempty"` // mean word confidence 0..1
	Candidates map[string]int     `json:"candidates,omitempty"` // chain -> extracted text length (auto mode)
	Durations  map[string]float64 `json:"durations_ms,omitempty"`
}

// VerbRecord is one identified verb occurrence
type VerbRecord struct {
	Surface  string `json:"surface"`
	Lemma    string `json:"lemma"`
	Tag      string `json:"tag"`      // Penn Treebank tag (VB, VBD, ...)
	Category string `json:"category"` // linking, helping, action, regular, irregular
	Position int    `json:"position"` // token index in the cleaned text
}

// LemmaCount is one row of the frequency table
type LemmaCount struct {
	Lemma string   `json:"lemma"`
	Count int      `json:"count"`
	Tags  []string `json:"tags,omitempty"` // distinct tags seen for this lemma, first-seen order
}

// SentenceAnalysis mirrors the per-sentence breakdown of the report
type SentenceAnalysis struct {
	Number    int      `json:"number"` // 1-based
	Sentence  string   `json:"sentence"`
	Verbs     []string `json:"verbs"` // lemmas, occurrence order
	VerbCount int      `json:"verb_count"`
}

// VerbStatistics is the aggregate verb analysis.
// Invariant: the counts in Frequencies always sum to TotalVerbs, as do
// the per-tag counts.
type VerbStatistics struct {
	TotalWords     int `json:"total_words"`
	TotalSentences int `json:"total_sentences"`
	TotalVerbs     int `json:"total_verbs"` // verb instances
	UniqueVerbs    int `json:"unique_verbs"`

	// Frequencies is ordered by descending count; ties keep
	// first-occurrence order.
	Frequencies []LemmaCount   `json:"frequencies"`
	Tags        map[string]int `json:"tags"`
	Categories  map[string]int `json:"categories"`

	Records []VerbRecord `json:"records,omitempty"`

	Sentences             []SentenceAnalysis `json:"sentences,omitempty"`
	SentencesWithVerbs    int                `json:"sentences_with_verbs"`
	SentencesWithoutVerbs int                `json:"sentences_without_verbs"`
}

// TopN returns the first n frequency rows (all rows if n <= 0 or exceeds
// the table).
func (s *VerbStatistics) TopN(n int) []LemmaCount {
	if n <= 0 || n > len(s.Frequencies) {
		return s.Frequencies
	}
	return s.Frequencies[:n]
}

// LLMSummary contains the optional LLM-generated commentary
type LLMSummary struct {
	Enabled   bool   `json:"enabled"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	SummaryMD string `json:"summary_md,omitempty"`
}

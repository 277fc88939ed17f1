// Package analyze tokenizes and part-of-speech-tags text, filters the
// verbs, lemmatizes them and folds the occurrences into aggregate
// statistics.
package analyze

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	prose "github.com/jdkato/prose/v2"

	"github.com/pkarpov/verbscope/internal/model"
)

// TaggingError reports that the tagger or lemmatizer could not do its
// work (usually missing linguistic resources). Fatal for the whole run.
type TaggingError struct {
	Err error
}

func (e *TaggingError) Error() string {
	return fmt.Sprintf("pos tagging: %v", e.Err)
}

func (e *TaggingError) Unwrap() error { return e.Err }

// Analyzer extracts verb statistics from cleaned text
type Analyzer struct {
	lemmatizer *golem.Lemmatizer
}

// NewAnalyzer loads the English lemma dictionary once; the returned
// analyzer is safe for concurrent use.
func NewAnalyzer() (*Analyzer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, &TaggingError{Err: fmt.Errorf("load lemma dictionary: %w", err)}
	}
	return &Analyzer{lemmatizer: lem}, nil
}

// isVerbTag reports whether a Penn Treebank tag marks a verb. Modals
// (MD) count, matching the universal VERB class.
func isVerbTag(tag string) bool {
	return strings.HasPrefix(tag, "VB") || tag == "MD"
}

func isWordToken(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Analyze runs tokenization, tagging, verb filtering, lemmatization and
// aggregation over the cleaned text.
func (a *Analyzer) Analyze(text string) (*model.VerbStatistics, error) {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil, &TaggingError{Err: err}
	}

	stats := &model.VerbStatistics{
		Tags:       make(map[string]int),
		Categories: make(map[string]int),
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	lemmaTags := make(map[string][]string)

	for i, tok := range a.correctTags(doc.Tokens()) {
		if isWordToken(tok.Text) {
			stats.TotalWords++
		}
		if !isVerbTag(tok.Tag) {
			continue
		}

		lemma := a.Lemma(tok.Text)
		rec := model.VerbRecord{
			Surface:  tok.Text,
			Lemma:    lemma,
			Tag:      tok.Tag,
			Category: Categorize(tok.Text, lemma),
			Position: i,
		}
		stats.Records = append(stats.Records, rec)
		stats.TotalVerbs++
		stats.Tags[rec.Tag]++
		stats.Categories[rec.Category]++

		if _, seen := firstSeen[lemma]; !seen {
			firstSeen[lemma] = len(firstSeen)
		}
		counts[lemma]++
		if !containsString(lemmaTags[lemma], rec.Tag) {
			lemmaTags[lemma] = append(lemmaTags[lemma], rec.Tag)
		}
	}

	stats.Frequencies = rankFrequencies(counts, firstSeen, lemmaTags)
	stats.UniqueVerbs = len(stats.Frequencies)

	a.analyzeSentences(doc, stats)

	return stats, nil
}

// Lemma returns the dictionary base form of a word
func (a *Analyzer) Lemma(surface string) string {
	return a.lemmatizer.Lemma(strings.ToLower(surface))
}

// correctTags repairs a known tagger weakness: third-person singular
// verbs ("runs", "jumps") tagged as plural nouns. A noun token ending
// in "s" whose lemma is a known verb base is re-tagged VBZ when it
// follows a plausible subject or is conjoined to a preceding verb.
func (a *Analyzer) correctTags(toks []prose.Token) []prose.Token {
	out := make([]prose.Token, len(toks))
	copy(out, toks)

	for i, tok := range out {
		if tok.Tag != "NNS" && tok.Tag != "NN" {
			continue
		}
		lower := strings.ToLower(tok.Text)
		if !strings.HasSuffix(lower, "s") {
			continue
		}
		if !verbBases[a.Lemma(tok.Text)] {
			continue
		}
		if followsSubject(out, i) {
			out[i].Tag = "VBZ"
		}
	}
	return out
}

// followsSubject reports whether the token at index i sits where a
// finite verb would: directly after a noun or pronoun (modulo adverbs),
// or after a conjunction joining it to an earlier verb.
func followsSubject(toks []prose.Token, i int) bool {
	j := i - 1
	for j >= 0 && isAdverbTag(toks[j].Tag) {
		j--
	}
	if j < 0 {
		return false
	}
	switch toks[j].Tag {
	case "NN", "NNS", "NNP", "NNPS", "PRP", "WP", "WDT":
		return true
	case "CC":
		// conjoined predicate: "runs and jumps"
		for k := j - 1; k >= 0; k-- {
			if isVerbTag(toks[k].Tag) {
				return true
			}
			if !isAdverbTag(toks[k].Tag) {
				return false
			}
		}
	}
	return false
}

func isAdverbTag(tag string) bool {
	return tag == "RB" || tag == "RBR" || tag == "RBS"
}

// rankFrequencies orders lemmas by descending count; ties keep
// first-occurrence order.
func rankFrequencies(counts, firstSeen map[string]int, lemmaTags map[string][]string) []model.LemmaCount {
	rows := make([]model.LemmaCount, 0, len(counts))
	for lemma, n := range counts {
		rows = append(rows, model.LemmaCount{Lemma: lemma, Count: n, Tags: lemmaTags[lemma]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return firstSeen[rows[i].Lemma] < firstSeen[rows[j].Lemma]
	})
	return rows
}

// analyzeSentences fills the per-sentence breakdown. Each sentence is
// tagged on its own, mirroring the whole-document pass.
func (a *Analyzer) analyzeSentences(doc *prose.Document, stats *model.VerbStatistics) {
	sentences := doc.Sentences()
	stats.TotalSentences = len(sentences)

	for i, sent := range sentences {
		sa := model.SentenceAnalysis{
			Number:   i + 1,
			Sentence: sent.Text,
		}
		sdoc, err := prose.NewDocument(sent.Text, prose.WithExtraction(false))
		if err == nil {
			for _, tok := range a.correctTags(sdoc.Tokens()) {
				if isVerbTag(tok.Tag) {
					sa.Verbs = append(sa.Verbs, a.Lemma(tok.Text))
				}
			}
		}
		sa.VerbCount = len(sa.Verbs)
		if sa.VerbCount > 0 {
			stats.SentencesWithVerbs++
		} else {
			stats.SentencesWithoutVerbs++
		}
		stats.Sentences = append(stats.Sentences, sa)
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

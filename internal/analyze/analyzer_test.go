package analyze

import (
	"testing"

	prose "github.com/jdkato/prose/v2"

	"github.com/pkarpov/verbscope/internal/model"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer()
	if err != nil {
		t.Fatalf("new analyzer: %v", err)
	}
	return a
}

func TestAnalyzeCatAndDog(t *testing.T) {
	a := newTestAnalyzer(t)

	stats, err := a.Analyze("The cat runs and jumps quickly. The dog ran yesterday.")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if stats.TotalVerbs != 3 {
		t.Errorf("expected 3 verb instances, got %d", stats.TotalVerbs)
	}

	freq := make(map[string]int)
	for _, row := range stats.Frequencies {
		freq[row.Lemma] = row.Count
	}
	if freq["run"] != 2 {
		t.Errorf("expected run: 2 (runs, ran), got %d", freq["run"])
	}
	if freq["jump"] != 1 {
		t.Errorf("expected jump: 1, got %d", freq["jump"])
	}

	if stats.TotalSentences != 2 {
		t.Errorf("expected 2 sentences, got %d", stats.TotalSentences)
	}
	if stats.Frequencies[0].Lemma != "run" {
		t.Errorf("expected run ranked first, got %q", stats.Frequencies[0].Lemma)
	}
}

func TestFrequencySumEqualsTotal(t *testing.T) {
	a := newTestAnalyzer(t)

	stats, err := a.Analyze("She sings. He sang. They have sung and will sing again. Birds fly.")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	var freqSum, tagSum int
	for _, row := range stats.Frequencies {
		freqSum += row.Count
	}
	for _, n := range stats.Tags {
		tagSum += n
	}

	if freqSum != stats.TotalVerbs {
		t.Errorf("frequency sum %d != total verbs %d", freqSum, stats.TotalVerbs)
	}
	if tagSum != stats.TotalVerbs {
		t.Errorf("tag sum %d != total verbs %d", tagSum, stats.TotalVerbs)
	}
	if len(stats.Records) != stats.TotalVerbs {
		t.Errorf("record count %d != total verbs %d", len(stats.Records), stats.TotalVerbs)
	}
}

func TestAnalyzeNoVerbs(t *testing.T) {
	a := newTestAnalyzer(t)

	stats, err := a.Analyze("A very quiet green garden.")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if stats.TotalVerbs != 0 {
		t.Errorf("expected no verbs, got %d", stats.TotalVerbs)
	}
	if stats.UniqueVerbs != 0 || len(stats.Frequencies) != 0 {
		t.Errorf("expected empty frequency table")
	}
}

func TestCorrectTagsThirdPersonForms(t *testing.T) {
	a := newTestAnalyzer(t)

	// The tagger labels short third-person forms as plural nouns.
	toks := []prose.Token{
		{Text: "The", Tag: "DT"},
		{Text: "cat", Tag: "NN"},
		{Text: "runs", Tag: "NNS"},
		{Text: "and", Tag: "CC"},
		{Text: "jumps", Tag: "NNS"},
		{Text: "quickly", Tag: "RB"},
	}
	out := a.correctTags(toks)

	if out[2].Tag != "VBZ" {
		t.Errorf("expected runs re-tagged VBZ after subject, got %s", out[2].Tag)
	}
	if out[4].Tag != "VBZ" {
		t.Errorf("expected jumps re-tagged VBZ after conjunction, got %s", out[4].Tag)
	}
	if toks[2].Tag != "NNS" {
		t.Error("correctTags mutated its input")
	}
}

func TestCorrectTagsLeavesRealNouns(t *testing.T) {
	a := newTestAnalyzer(t)

	toks := []prose.Token{
		{Text: "The", Tag: "DT"},
		{Text: "cats", Tag: "NNS"}, // lemma "cat" is not a verb base
		{Text: "sleep", Tag: "VBP"},
		{Text: "on", Tag: "IN"},
		{Text: "mats", Tag: "NNS"}, // after a preposition, not a subject
	}
	out := a.correctTags(toks)

	if out[1].Tag != "NNS" {
		t.Errorf("cats should stay NNS, got %s", out[1].Tag)
	}
	if out[4].Tag != "NNS" {
		t.Errorf("mats should stay NNS, got %s", out[4].Tag)
	}
}

func TestRankFrequenciesTieBreakByFirstOccurrence(t *testing.T) {
	counts := map[string]int{"walk": 2, "talk": 2, "see": 5}
	firstSeen := map[string]int{"walk": 0, "see": 1, "talk": 2}

	rows := rankFrequencies(counts, firstSeen, nil)

	want := []string{"see", "walk", "talk"}
	for i, lemma := range want {
		if rows[i].Lemma != lemma {
			t.Fatalf("rank %d: expected %q, got %q (rows: %v)", i, lemma, rows[i].Lemma, rows)
		}
	}
}

func TestTopN(t *testing.T) {
	stats := &model.VerbStatistics{
		Frequencies: []model.LemmaCount{
			{Lemma: "run", Count: 3},
			{Lemma: "jump", Count: 2},
			{Lemma: "walk", Count: 1},
		},
	}
	if got := stats.TopN(2); len(got) != 2 || got[1].Lemma != "jump" {
		t.Errorf("unexpected top-2: %v", got)
	}
	if got := stats.TopN(0); len(got) != 3 {
		t.Errorf("top-0 should return all rows, got %d", len(got))
	}
	if got := stats.TopN(10); len(got) != 3 {
		t.Errorf("oversized n should return all rows, got %d", len(got))
	}
}

func TestCategorize(t *testing.T) {
	cases := []struct {
		surface, lemma, want string
	}{
		{"is", "be", CategoryLinking},
		{"were", "be", CategoryLinking},
		{"has", "have", CategoryHelping},
		{"could", "can", CategoryHelping},
		{"running", "run", CategoryAction},
		{"jumped", "jump", CategoryRegular},
		{"ran", "run", CategoryIrregular},
	}
	for _, c := range cases {
		if got := Categorize(c.surface, c.lemma); got != c.want {
			t.Errorf("Categorize(%q, %q) = %q, want %q", c.surface, c.lemma, got, c.want)
		}
	}
}

func TestIsVerbTag(t *testing.T) {
	for _, tag := range []string{"VB", "VBD", "VBG", "VBN", "VBP", "VBZ", "MD"} {
		if !isVerbTag(tag) {
			t.Errorf("%s should be a verb tag", tag)
		}
	}
	for _, tag := range []string{"NN", "JJ", "RB", "DT", "."} {
		if isVerbTag(tag) {
			t.Errorf("%s should not be a verb tag", tag)
		}
	}
}

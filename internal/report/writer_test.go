package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/pkarpov/verbscope/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		Source:      "page.png",
		ProcessedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		OCR: &model.OCRMeta{
			Engine: "tesseract",
			Chain:  "gray,otsu",
		},
		CleanedText: "The cat runs. The dog ran.",
		Statistics: &model.VerbStatistics{
			TotalWords:     8,
			TotalSentences: 2,
			TotalVerbs:     2,
			UniqueVerbs:    1,
			Frequencies: []model.LemmaCount{
				{Lemma: "run", Count: 2, Tags: []string{"VBZ", "VBD"}},
			},
			Tags:               map[string]int{"VBZ": 1, "VBD": 1},
			Categories:         map[string]int{"irregular": 2},
			SentencesWithVerbs: 2,
		},
	}
}

func TestWriteAllFormats(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10)

	results := w.WriteAll(sampleReport(), "page", []string{"json", "csv", "txt"}, false)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("%s: %v", res.Format, res.Err)
			continue
		}
		if _, err := os.Stat(res.Path); err != nil {
			t.Errorf("%s: missing output file: %v", res.Format, err)
		}
	}
}

func TestJSONAndCSVAgree(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10)

	r := sampleReport()
	r.Statistics.Frequencies = []model.LemmaCount{
		{Lemma: "run", Count: 3, Tags: []string{"VBZ"}},
		{Lemma: "jump", Count: 1, Tags: []string{"VBD"}},
	}
	r.Statistics.TotalVerbs = 4

	results := w.WriteAll(r, "page", []string{"json", "csv"}, false)
	for _, res := range results {
		if res.Err != nil {
			t.Fatalf("%s: %v", res.Format, res.Err)
		}
	}

	// Decode JSON frequencies.
	data, err := os.ReadFile(filepath.Join(dir, "page.json"))
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// Decode CSV rows.
	f, err := os.Open(filepath.Join(dir, "page.csv"))
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	rows = rows[1:] // drop header

	if len(rows) != len(decoded.Statistics.Frequencies) {
		t.Fatalf("row count mismatch: csv %d, json %d", len(rows), len(decoded.Statistics.Frequencies))
	}
	for i, row := range rows {
		jrow := decoded.Statistics.Frequencies[i]
		if row[0] != jrow.Lemma {
			t.Errorf("row %d: lemma mismatch %q != %q", i, row[0], jrow.Lemma)
		}
		count, err := strconv.Atoi(row[1])
		if err != nil || count != jrow.Count {
			t.Errorf("row %d: count mismatch %q != %d", i, row[1], jrow.Count)
		}
	}
}

func TestTXTContainsSummary(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10)

	results := w.WriteAll(sampleReport(), "page", []string{"txt"}, false)
	if results[0].Err != nil {
		t.Fatalf("txt: %v", results[0].Err)
	}
	data, err := os.ReadFile(results[0].Path)
	if err != nil {
		t.Fatalf("read txt: %v", err)
	}
	text := string(data)
	for _, want := range []string{"VERBS EXTRACTED FROM TEXT", "RUN", "2 occurrences", "tesseract"} {
		if !strings.Contains(text, want) {
			t.Errorf("txt summary missing %q", want)
		}
	}
}

func TestWriteChart(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10)

	results := w.WriteAll(sampleReport(), "page", []string{"json"}, true)
	var chartRes *Written
	for i := range results {
		if results[i].Format == "chart" {
			chartRes = &results[i]
		}
	}
	if chartRes == nil {
		t.Fatal("no chart result")
	}
	if chartRes.Err != nil {
		t.Fatalf("chart: %v", chartRes.Err)
	}
	info, err := os.Stat(chartRes.Path)
	if err != nil {
		t.Fatalf("stat chart: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}
}

func TestPartialFailureDoesNotBlockOthers(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10)

	// A report with nil statistics breaks csv/txt rendering paths that
	// dereference them, so instead simulate failure with an unknown
	// format sandwiched between valid ones.
	results := w.WriteAll(sampleReport(), "page", []string{"json", "bogus", "txt"}, false)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("json should succeed: %v", results[0].Err)
	}
	var we *WriteError
	if results[1].Err == nil || !errors.As(results[1].Err, &we) {
		t.Errorf("expected WriteError for bogus format, got %v", results[1].Err)
	}
	if results[2].Err != nil {
		t.Errorf("txt should still be attempted and succeed: %v", results[2].Err)
	}
}

func TestStem(t *testing.T) {
	if got := Stem("/data/images/page-01.png"); got != "page-01" {
		t.Errorf("got %q", got)
	}
	if got := Stem("notes.txt"); got != "notes" {
		t.Errorf("got %q", got)
	}
}

// Package report serializes analysis results to the requested output
// formats. Writers are independent: one failing format never blocks the
// others.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkarpov/verbscope/internal/model"
)

// WriteError is scoped to a single output format; other formats are
// still attempted.
type WriteError struct {
	Format string
	Path   string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s (%s): %v", e.Format, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Written records one attempted output file
type Written struct {
	Format string
	Path   string
	Err    error // nil on success
}

// Writer renders reports into an output directory
type Writer struct {
	dir  string
	topN int
}

// NewWriter creates a writer rooted at dir; topN bounds summary lists
// and charts.
func NewWriter(dir string, topN int) *Writer {
	return &Writer{dir: dir, topN: topN}
}

// WriteAll writes one file per requested format plus the optional
// chart, attempting every format regardless of earlier failures.
// Partial success is normal: callers must inspect each Written entry.
func (w *Writer) WriteAll(r *model.Report, stem string, formats []string, chart bool) []Written {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		// Without the directory nothing can be written; report the
		// failure once per requested format.
		var out []Written
		for _, f := range formats {
			out = append(out, Written{Format: f, Err: &WriteError{Format: f, Path: w.dir, Err: err}})
		}
		return out
	}

	var out []Written
	for _, format := range formats {
		path := filepath.Join(w.dir, stem+"."+format)
		var err error
		switch format {
		case "json":
			err = w.writeJSON(r, path)
		case "csv":
			err = w.writeCSV(r, path)
		case "txt":
			err = w.writeTXT(r, path)
		default:
			err = fmt.Errorf("unknown format %q", format)
		}
		if err != nil {
			err = &WriteError{Format: format, Path: path, Err: err}
		}
		out = append(out, Written{Format: format, Path: path, Err: err})
	}

	if chart {
		path := filepath.Join(w.dir, stem+".png")
		err := w.writeChart(r, path)
		if err != nil {
			err = &WriteError{Format: "chart", Path: path, Err: err}
		}
		out = append(out, Written{Format: "chart", Path: path, Err: err})
	}

	return out
}

func (w *Writer) writeJSON(r *model.Report, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// writeCSV emits the frequency table: one row per lemma, same order and
// counts as the JSON frequencies.
func (w *Writer) writeCSV(r *model.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"lemma", "count", "tags"}); err != nil {
		return err
	}
	for _, row := range r.Statistics.Frequencies {
		if err := cw.Write([]string{row.Lemma, fmt.Sprintf("%d", row.Count), strings.Join(row.Tags, " ")}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (w *Writer) writeTXT(r *model.Report, path string) error {
	var b strings.Builder
	s := r.Statistics

	b.WriteString("VERBS EXTRACTED FROM TEXT\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")
	b.WriteString(fmt.Sprintf("Source:     %s\n", r.Source))
	if r.OCR != nil {
		b.WriteString(fmt.Sprintf("Engine:     %s\n", r.OCR.Engine))
		if r.OCR.Chain != "" {
			b.WriteString(fmt.Sprintf("Preprocess: %s\n", r.OCR.Chain))
		}
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Sentences:            %d\n", s.TotalSentences))
	b.WriteString(fmt.Sprintf("Words:                %d\n", s.TotalWords))
	b.WriteString(fmt.Sprintf("Unique verbs:         %d\n", s.UniqueVerbs))
	b.WriteString(fmt.Sprintf("Verb instances:       %d\n", s.TotalVerbs))
	b.WriteString(fmt.Sprintf("Sentences with verbs: %d of %d\n", s.SentencesWithVerbs, s.TotalSentences))
	b.WriteString("\n")

	for _, row := range s.TopN(w.topN) {
		plural := ""
		if row.Count != 1 {
			plural = "s"
		}
		b.WriteString(fmt.Sprintf("%-20s : %d occurrence%s\n", strings.ToUpper(row.Lemma), row.Count, plural))
	}

	if len(s.Categories) > 0 {
		b.WriteString("\nCategories:\n")
		names := make([]string, 0, len(s.Categories))
		for name := range s.Categories {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteString(fmt.Sprintf("  %-12s %d\n", name, s.Categories[name]))
		}
	}

	if r.LLM != nil && r.LLM.SummaryMD != "" {
		b.WriteString("\nSummary (" + r.LLM.Provider + "/" + r.LLM.Model + "):\n")
		b.WriteString(r.LLM.SummaryMD + "\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// Stem derives the output file stem from the input path
func Stem(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

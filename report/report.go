// Package report serializes evaluation results into timestamped artifacts:
// a full-fidelity JSON array, a fixed-column CSV, a self-contained HTML
// comparison page, a summary JSON, and a CER bar chart. Every artifact is
// derived purely from the result list and summary, so a run is reproducible
// from those two values alone.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tak-akashi/test-ocr-models/evaluate"
)

// Artifacts holds the paths written by one Write call.
type Artifacts struct {
	ResultsJSON string
	ResultsCSV  string
	ResultsHTML string
	SummaryJSON string
	ChartsHTML  string
}

// Write serializes results and summary into outDir, stamping every file name
// with now. Zero results write nothing: empty reports are worse than no
// reports.
func Write(outDir string, results []evaluate.Result, summary evaluate.Summary, now time.Time) (Artifacts, error) {
	var a Artifacts
	if len(results) == 0 {
		return a, nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return a, fmt.Errorf("create output dir: %w", err)
	}

	ts := now.Format("20060102_150405")
	a.ResultsJSON = filepath.Join(outDir, "results_"+ts+".json")
	a.ResultsCSV = filepath.Join(outDir, "results_"+ts+".csv")
	a.ResultsHTML = filepath.Join(outDir, "results_"+ts+".html")
	a.SummaryJSON = filepath.Join(outDir, "summary_"+ts+".json")
	a.ChartsHTML = filepath.Join(outDir, "charts_"+ts+".html")

	if err := writeJSONFile(results, a.ResultsJSON); err != nil {
		return a, err
	}
	if err := writeCSV(results, a.ResultsCSV); err != nil {
		return a, err
	}
	if err := writeHTML(results, summary, a.ResultsHTML); err != nil {
		return a, err
	}
	if err := writeJSONFile(summary, a.SummaryJSON); err != nil {
		return a, err
	}
	if err := writeCharts(results, summary, a.ChartsHTML); err != nil {
		return a, err
	}
	return a, nil
}

func writeJSONFile(v any, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// writeCSV emits the fixed column subset. Word-level confidence columns and
// paragraph structure columns appear only when at least one result carries
// that metadata, so markdown-only runs do not get a block of zero columns.
func writeCSV(results []evaluate.Result, path string) error {
	hasWords := false
	hasParagraphs := false
	for _, r := range results {
		if r.WordCount > 0 {
			hasWords = true
		}
		if r.ParagraphCount > 0 || r.TableCount > 0 {
			hasParagraphs = true
		}
	}

	header := []string{"filename", "exact_match", "edit_distance", "cer", "predicted", "ground_truth"}
	if hasWords {
		header = append(header, "word_count", "avg_det_score", "avg_rec_score")
	}
	if hasParagraphs {
		header = append(header, "paragraph_count", "table_count")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.DocumentID,
			strconv.FormatBool(r.ExactMatch),
			strconv.Itoa(r.EditDistance),
			strconv.FormatFloat(r.CER, 'f', -1, 64),
			r.Predicted,
			r.GroundTruth,
		}
		if hasWords {
			row = append(row,
				strconv.Itoa(r.WordCount),
				strconv.FormatFloat(r.AvgDetScore, 'f', 4, 64),
				strconv.FormatFloat(r.AvgRecScore, 'f', 4, 64))
		}
		if hasParagraphs {
			row = append(row,
				strconv.Itoa(r.ParagraphCount),
				strconv.Itoa(r.TableCount))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

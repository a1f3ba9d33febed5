// Package evaluate walks one vendor's output directory, pairs each document
// with its ground truth, and scores the extracted text. One malformed file
// never aborts a corpus run: file-local failures downgrade to warnings and
// the file is skipped.
package evaluate

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/tak-akashi/test-ocr-models/extract"
	"github.com/tak-akashi/test-ocr-models/groundtruth"
	"github.com/tak-akashi/test-ocr-models/metrics"
	"github.com/tak-akashi/test-ocr-models/observability"
)

// Result is the immutable per-document evaluation record. JSON field names
// mirror the report schema consumed downstream.
type Result struct {
	DocumentID  string `json:"filename"`
	SourceFile  string `json:"source_file"`
	Predicted   string `json:"predicted"`
	GroundTruth string `json:"ground_truth"`
	metrics.Score
	extract.Metadata
}

// Config selects the extractor and its options for one vendor.
type Config struct {
	Format  extract.Format
	Options extract.Options
}

// Run evaluates every output file under dir against the ground-truth index.
// Files are visited in sorted path order so report ordering is deterministic.
// The returned error is reserved for directory-level failures; per-file
// problems are logged and skipped.
func Run(dir string, gt *groundtruth.Index, cfg Config, log observability.Logger) ([]Result, error) {
	if log == nil {
		log = observability.NopLogger{}
	}

	files, err := findOutputs(dir, cfg.Format.Glob())
	if err != nil {
		return nil, err
	}
	log.Info("outputs found", observability.Int("files", len(files)), observability.String("dir", dir))

	if d := gt.Duplicates(); d > 0 {
		log.Warn("ground truth contains duplicate document ids; later entries were kept",
			observability.Int("duplicates", d))
	}

	var results []Result
	skipped := 0
	seen := map[string]bool{}
	for _, path := range files {
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}

		id, gtText, ok := resolveGroundTruth(path, gt)
		if !ok {
			log.Warn("no ground truth entry", observability.String("file", rel))
			skipped++
			continue
		}
		// Multi-page vendors emit doc1_0.json, doc1_1.json, ... for one
		// document. Only the first page in sorted order is scored; counting
		// every page would inflate the sample count.
		if seen[id] {
			log.Warn("later page artifact for already scored document",
				observability.String("file", rel),
				observability.String("document", id))
			skipped++
			continue
		}
		seen[id] = true

		raw, err := os.ReadFile(path)
		if err != nil {
			log.Warn("unreadable output file", observability.String("file", rel), observability.Error("err", err))
			skipped++
			continue
		}

		predicted, meta, err := extract.Extract(raw, cfg.Format, cfg.Options)
		if err != nil {
			log.Warn("malformed output file", observability.String("file", rel), observability.Error("err", err))
			skipped++
			continue
		}

		results = append(results, Result{
			DocumentID:  id,
			SourceFile:  rel,
			Predicted:   predicted,
			GroundTruth: gtText,
			Score:       metrics.Compare(predicted, gtText),
			Metadata:    meta,
		})
	}

	log.Info("evaluation finished",
		observability.Int("results", len(results)),
		observability.Int("skipped", skipped))
	return results, nil
}

// findOutputs collects files under dir whose base name matches pattern,
// recursively, in sorted path order.
func findOutputs(dir string, pattern string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, matchErr := filepath.Match(pattern, d.Name())
		if matchErr != nil {
			return matchErr
		}
		if ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// resolveGroundTruth maps an output file to its ground-truth entry. The exact
// stem is tried first; vendors that emit one artifact per page append a
// numeric suffix ("doc1_0.json" for document "doc1"), so a trailing _<n> is
// stripped for the second attempt.
func resolveGroundTruth(path string, gt *groundtruth.Index) (string, string, bool) {
	stem := groundtruth.DocumentID(path)
	if text, ok := gt.Lookup(stem); ok {
		return stem, text, true
	}
	if stripped, ok := groundtruth.StripPageSuffix(stem); ok {
		if text, ok := gt.Lookup(stripped); ok {
			return stripped, text, true
		}
	}
	return stem, "", false
}

// Command evaluate scores one vendor's OCR outputs against a ground-truth
// dataset and writes timestamped report artifacts.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tak-akashi/test-ocr-models/config"
	"github.com/tak-akashi/test-ocr-models/evaluate"
	"github.com/tak-akashi/test-ocr-models/extract"
	"github.com/tak-akashi/test-ocr-models/groundtruth"
	"github.com/tak-akashi/test-ocr-models/observability"
	"github.com/tak-akashi/test-ocr-models/report"
	"github.com/tak-akashi/test-ocr-models/rundb"
)

type options struct {
	inputDir      string
	gtPath        string
	outDir        string
	format        extract.Format
	minScore      float64
	order         extract.OrderPolicy
	stripMarkdown bool
	dbPath        string
	vendor        string
	verbose       bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "evaluate: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "evaluate: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	cfg := config.Load()

	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: evaluate [flags] <vendor-output-dir>\n")
		flag.PrintDefaults()
	}
	format := flag.String("format", "", "Vendor output format: markdown, html, text, json-paragraphs, json-words")
	gtPath := flag.String("gt", cfg.GroundTruthPath, "Path to ground truth dataset JSON")
	outDir := flag.String("out", cfg.OutputDir, "Output directory for reports (default: <input>_evaluation)")
	minScore := flag.Float64("min-score", cfg.MinScore, "Minimum confidence score threshold (0.0-1.0)")
	order := flag.String("order", "vertical-first", "Reading order for mixed-direction pages: vertical-first or horizontal-first")
	stripMarkdown := flag.Bool("strip-markdown", false, "Strip markdown markup instead of scoring it as text")
	dbPath := flag.String("db", cfg.DatabasePath, "Optional SQLite database recording run history")
	vendor := flag.String("vendor", "", "Vendor label for run history (default: input directory name)")
	verbose := flag.Bool("v", cfg.Verbose, "Verbose logging")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return options{}, fmt.Errorf("missing vendor output directory")
	}
	opts.inputDir = flag.Arg(0)

	f, err := extract.ParseFormat(*format)
	if err != nil {
		return options{}, err
	}
	opts.format = f

	switch *order {
	case "vertical-first":
		opts.order = extract.VerticalFirst
	case "horizontal-first":
		opts.order = extract.HorizontalFirst
	default:
		return options{}, fmt.Errorf("unknown order policy %q", *order)
	}

	opts.gtPath = *gtPath
	opts.outDir = *outDir
	opts.minScore = *minScore
	opts.stripMarkdown = *stripMarkdown
	opts.dbPath = *dbPath
	opts.vendor = *vendor
	opts.verbose = *verbose
	if opts.outDir == "" {
		opts.outDir = strings.TrimSuffix(opts.inputDir, string(filepath.Separator)) + "_evaluation"
	}
	if opts.vendor == "" {
		opts.vendor = filepath.Base(strings.TrimSuffix(opts.inputDir, string(filepath.Separator)))
	}
	return opts, nil
}

func run(opts options) error {
	log := observability.NewConsoleLogger(opts.verbose)

	cfg := &config.Config{GroundTruthPath: opts.gtPath, MinScore: opts.minScore}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if info, err := os.Stat(opts.inputDir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: vendor output directory not found: %s", config.ErrConfiguration, opts.inputDir)
	}

	gt, err := groundtruth.Load(opts.gtPath)
	if err != nil {
		return err
	}
	log.Info("ground truth loaded",
		observability.Int("entries", gt.Len()),
		observability.String("path", opts.gtPath))

	results, err := evaluate.Run(opts.inputDir, gt, evaluate.Config{
		Format: opts.format,
		Options: extract.Options{
			MinScore:      opts.minScore,
			Order:         opts.order,
			StripMarkdown: opts.stripMarkdown,
		},
	}, log)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No results to process.")
		return nil
	}

	summary := evaluate.Summarize(results)
	printSummary(summary)

	artifacts, err := report.Write(opts.outDir, results, summary, time.Now())
	if err != nil {
		return err
	}
	for _, path := range []string{artifacts.ResultsJSON, artifacts.ResultsCSV, artifacts.ResultsHTML, artifacts.SummaryJSON, artifacts.ChartsHTML} {
		fmt.Printf("Saved: %s\n", path)
	}

	if opts.dbPath != "" {
		store, err := rundb.Open(opts.dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		runID, err := store.RecordRun(opts.vendor, opts.gtPath, results, summary)
		if err != nil {
			return err
		}
		log.Info("run recorded",
			observability.String("run_id", runID),
			observability.String("db", opts.dbPath))
	}
	return nil
}

func printSummary(s evaluate.Summary) {
	line := strings.Repeat("=", 80)
	fmt.Println(line)
	fmt.Println("Summary Statistics")
	fmt.Println(line)
	fmt.Printf("Total Samples:      %d\n", s.TotalSamples)
	fmt.Printf("Exact Matches:      %d\n", s.ExactMatches)
	fmt.Printf("Accuracy:           %.2f%%\n", s.Accuracy*100)
	fmt.Printf("Avg CER:            %.2f%%\n", s.AvgCER*100)
	fmt.Printf("Avg Edit Distance:  %.2f\n", s.AvgEditDistance)
	if s.AvgDetScore > 0 {
		fmt.Printf("Avg Det Score:      %.4f\n", s.AvgDetScore)
	}
	if s.AvgRecScore > 0 {
		fmt.Printf("Avg Rec Score:      %.4f\n", s.AvgRecScore)
	}
	if s.AvgParagraphCount > 0 {
		fmt.Printf("Avg Paragraphs:     %.2f\n", s.AvgParagraphCount)
	}
	fmt.Println(line)
}

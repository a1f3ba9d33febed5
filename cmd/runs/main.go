// Command runs lists recorded evaluation runs so vendors can be compared
// across time, and shows per-document results for a single run.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/tak-akashi/test-ocr-models/config"
	"github.com/tak-akashi/test-ocr-models/rundb"
)

type options struct {
	dbPath string
	vendor string
	showID string
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "runs: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "runs: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	cfg := config.Load()

	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: runs [flags]\n")
		flag.PrintDefaults()
	}
	dbPath := flag.String("db", cfg.DatabasePath, "Path to the SQLite run history database")
	vendor := flag.String("vendor", "", "Only list runs for this vendor")
	showID := flag.String("show", "", "Show per-document results for the given run id")
	flag.Parse()

	if *dbPath == "" {
		flag.Usage()
		return options{}, fmt.Errorf("missing database path (-db or OCR_EVAL_DB)")
	}
	opts.dbPath = *dbPath
	opts.vendor = *vendor
	opts.showID = *showID
	return opts, nil
}

func run(opts options) error {
	if _, err := os.Stat(opts.dbPath); err != nil {
		return fmt.Errorf("%w: run history database not found: %s", config.ErrConfiguration, opts.dbPath)
	}
	store, err := rundb.Open(opts.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if opts.showID != "" {
		results, err := store.RunResults(opts.showID)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return fmt.Errorf("no results recorded for run %s", opts.showID)
		}
		return printResults(os.Stdout, results)
	}

	runs, err := store.ListRuns(opts.vendor)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}
	return printRuns(os.Stdout, runs)
}

func printRuns(w io.Writer, runs []rundb.Run) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN ID\tVENDOR\tSAMPLES\tACCURACY\tAVG CER\tCREATED")
	for _, r := range runs {
		created := time.Unix(0, r.CreatedAt).Format("2006-01-02 15:04:05")
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f%%\t%.2f%%\t%s\n",
			r.RunID, r.Vendor, r.TotalSamples, r.Accuracy*100, r.AvgCER*100, created)
	}
	return tw.Flush()
}

func printResults(w io.Writer, results []rundb.StoredResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DOCUMENT\tMATCH\tEDIT DIST\tCER")
	for _, r := range results {
		match := "no"
		if r.ExactMatch {
			match = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f%%\n", r.DocumentID, match, r.EditDistance, r.CER*100)
	}
	return tw.Flush()
}

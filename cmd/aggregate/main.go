// Command aggregate merges extracted texts from several vendors' output
// directories into side-by-side CSV/JSON tables, with no scoring.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tak-akashi/test-ocr-models/aggregate"
	"github.com/tak-akashi/test-ocr-models/config"
	"github.com/tak-akashi/test-ocr-models/extract"
	"github.com/tak-akashi/test-ocr-models/observability"
)

type options struct {
	inputDir    string
	outDir      string
	vendorsPath string
	verbose     bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "aggregate: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "aggregate: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: aggregate [flags] <input-dir>\n")
		flag.PrintDefaults()
	}
	outDir := flag.String("out", "", "Output directory for extracted texts (default: <input>/_extracted)")
	vendorsPath := flag.String("vendors", "", "Path to vendors.yaml mapping (default: built-in azure/upstage/yomitoku probing)")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return options{}, fmt.Errorf("missing input directory")
	}
	opts.inputDir = flag.Arg(0)
	opts.outDir = *outDir
	opts.vendorsPath = *vendorsPath
	opts.verbose = *verbose
	if opts.outDir == "" {
		opts.outDir = filepath.Join(opts.inputDir, "_extracted")
	}
	return opts, nil
}

func run(opts options) error {
	log := observability.NewConsoleLogger(opts.verbose)

	if info, err := os.Stat(opts.inputDir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: input directory not found: %s", config.ErrConfiguration, opts.inputDir)
	}

	vendors, err := loadVendors(opts.vendorsPath)
	if err != nil {
		return err
	}

	if err := aggregate.Run(opts.inputDir, opts.outDir, vendors, log); err != nil {
		return err
	}
	fmt.Printf("Output files saved to: %s\n", opts.outDir)
	return nil
}

// loadVendors converts the YAML mapping into aggregator vendors, falling back
// to the conventional three-vendor layout when no mapping file is given.
func loadVendors(path string) ([]aggregate.Vendor, error) {
	if path == "" {
		return []aggregate.Vendor{
			{Name: "azure", Format: extract.FormatMarkdown},
			{Name: "upstage", Format: extract.FormatHTML},
			{Name: "yomitoku", Format: extract.FormatParagraphJSON},
		}, nil
	}

	specs, err := config.LoadVendors(path)
	if err != nil {
		return nil, err
	}
	vendors := make([]aggregate.Vendor, 0, len(specs))
	for _, spec := range specs {
		format, err := spec.ParsedFormat()
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, aggregate.Vendor{
			Name:    spec.Name,
			Dir:     spec.Dir,
			Format:  format,
			Options: extract.Options{MinScore: spec.MinScore},
		})
	}
	return vendors, nil
}

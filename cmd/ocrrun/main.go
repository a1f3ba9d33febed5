// Command ocrrun runs the local Tesseract engine over a directory of images
// and writes word-JSON outputs in the same layout the cloud vendor runners
// produce, so local OCR can be evaluated with the same pipeline.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/tak-akashi/test-ocr-models/config"
	"github.com/tak-akashi/test-ocr-models/observability"
	"github.com/tak-akashi/test-ocr-models/ocr"
	"github.com/tak-akashi/test-ocr-models/ocr/tesseract"
)

type options struct {
	imageDir  string
	outDir    string
	languages []string
	psm       int
	dpi       int
	verbose   bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ocrrun: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "ocrrun: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: ocrrun [flags] <image-dir>\n")
		flag.PrintDefaults()
	}
	outDir := flag.String("out", "", "Output directory for word-JSON files (default: <input>_tesseract)")
	langs := flag.String("lang", "eng", "Comma-separated Tesseract language hints (e.g. eng,jpn)")
	psm := flag.Int("psm", 0, "Tesseract page segmentation mode (0 keeps the engine default)")
	dpi := flag.Int("dpi", 0, "Override image DPI (0 keeps the engine default)")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return options{}, fmt.Errorf("missing image directory")
	}
	opts.imageDir = flag.Arg(0)
	opts.outDir = *outDir
	opts.psm = *psm
	opts.dpi = *dpi
	opts.verbose = *verbose
	for _, lang := range strings.Split(*langs, ",") {
		if lang = strings.TrimSpace(lang); lang != "" {
			opts.languages = append(opts.languages, lang)
		}
	}
	if opts.outDir == "" {
		opts.outDir = strings.TrimSuffix(opts.imageDir, string(filepath.Separator)) + "_tesseract"
	}
	return opts, nil
}

func run(opts options) error {
	log := observability.NewConsoleLogger(opts.verbose)

	if info, err := os.Stat(opts.imageDir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: image directory not found: %s", config.ErrConfiguration, opts.imageDir)
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	images, err := findImages(opts.imageDir)
	if err != nil {
		return err
	}
	log.Info("images found", observability.Int("count", len(images)))
	if len(images) == 0 {
		fmt.Println("No images to process.")
		return nil
	}

	inputOpts := []ocr.InputOption{ocr.WithLanguages(opts.languages...)}
	if opts.psm > 0 {
		inputOpts = append(inputOpts, ocr.WithTesseractPSM(opts.psm))
	}
	if opts.dpi > 0 {
		inputOpts = append(inputOpts, ocr.WithDPI(opts.dpi))
	}

	engine := tesseract.New()
	ctx := context.Background()
	processed := 0
	for _, path := range images {
		in, err := ocr.InputFromFile(path, inputOpts...)
		if err != nil {
			log.Warn("skipping image", observability.String("file", path), observability.Error("err", err))
			continue
		}

		if cfg, _, err := image.DecodeConfig(bytes.NewReader(in.Image)); err != nil {
			log.Warn("undecodable image", observability.String("file", path), observability.Error("err", err))
			continue
		} else {
			log.Debug("recognizing image",
				observability.String("id", in.ID),
				observability.Int("width", cfg.Width),
				observability.Int("height", cfg.Height))
		}

		res, err := engine.Recognize(ctx, in)
		if err != nil {
			log.Warn("recognition failed", observability.String("file", path), observability.Error("err", err))
			continue
		}
		if err := writeDocument(res, opts.outDir); err != nil {
			return err
		}
		processed++
	}

	log.Info("recognition finished",
		observability.Int("processed", processed),
		observability.Int("skipped", len(images)-processed))
	fmt.Printf("Output files saved to: %s\n", opts.outDir)
	return nil
}

func findImages(dir string) ([]string, error) {
	var images []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := ocr.FormatForPath(path); ok {
			images = append(images, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(images)
	return images, nil
}

// writeDocument serializes one recognized image as <id>_0.json, the page
// suffix convention the ground-truth lookup strips.
func writeDocument(res ocr.Result, outDir string) error {
	path := filepath.Join(outDir, res.InputID+"_0.json")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(res.Document()); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

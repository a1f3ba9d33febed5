// Package aggregate merges extracted texts from several vendors' output
// directories into side-by-side tables for manual review. No scoring is
// performed here; the extractors run exactly as in evaluation, but the
// metrics stage is skipped so corpora without ground truth can still be
// inspected.
package aggregate

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tak-akashi/test-ocr-models/extract"
	"github.com/tak-akashi/test-ocr-models/groundtruth"
	"github.com/tak-akashi/test-ocr-models/observability"
)

// Vendor names one OCR provider's output directory and format.
type Vendor struct {
	Name    string
	Dir     string // explicit directory; empty means probe under the root
	Format  extract.Format
	Options extract.Options
}

// Collection maps document id to extracted text for one vendor.
type Collection map[string]string

// Table is the combined view: one row per document id, one text column per
// vendor, in the vendor order given at build time.
type Table struct {
	Vendors []string
	Rows    []Row
}

// Row holds one document's text per vendor, empty string where a vendor has
// no output for the id.
type Row struct {
	DocumentID string
	Texts      []string
}

// ResolveDir finds a vendor's directory under root, trying the bare name
// first and then the "-ocr" and "_ocr" suffixed conventions some harnesses
// use.
func ResolveDir(root, name string) (string, bool) {
	for _, candidate := range []string{name, name + "-ocr", name + "_ocr"} {
		dir := filepath.Join(root, candidate)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, true
		}
	}
	return "", false
}

// resolveVendorDir returns the directory for v under root. An explicit Dir
// wins over suffix probing.
func resolveVendorDir(root string, v Vendor) (string, bool) {
	if v.Dir != "" {
		dir := v.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		info, err := os.Stat(dir)
		return dir, err == nil && info.IsDir()
	}
	return ResolveDir(root, v.Name)
}

// DetectDatasets returns subdirectory names common to every resolvable vendor
// directory, sorted. An empty result means the corpus is flat and should be
// aggregated as a single table.
func DetectDatasets(root string, vendors []Vendor) ([]string, error) {
	var sets []map[string]bool
	for _, v := range vendors {
		dir, ok := resolveVendorDir(root, v)
		if !ok {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read vendor dir %s: %w", dir, err)
		}
		subdirs := map[string]bool{}
		for _, e := range entries {
			if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
				subdirs[e.Name()] = true
			}
		}
		if len(subdirs) > 0 {
			sets = append(sets, subdirs)
		}
	}
	if len(sets) == 0 {
		return nil, nil
	}

	var common []string
	for name := range sets[0] {
		inAll := true
		for _, s := range sets[1:] {
			if !s[name] {
				inAll = false
				break
			}
		}
		if inAll {
			common = append(common, name)
		}
	}
	sort.Strings(common)
	return common, nil
}

// Collect extracts text from every output file of one vendor directory.
// Files are visited in sorted path order; a trailing page suffix ("doc_0")
// is stripped from the stem, and the first file seen for an id wins, so
// multi-page outputs contribute their first page. Unreadable or malformed
// files are logged and skipped.
func Collect(dir string, v Vendor, log observability.Logger) (Collection, error) {
	if log == nil {
		log = observability.NopLogger{}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, matchErr := filepath.Match(v.Format.Glob(), d.Name())
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

	texts := Collection{}
	for _, path := range files {
		id := documentID(path)
		if _, seen := texts[id]; seen {
			continue
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Warn("unreadable output file",
				observability.String("vendor", v.Name),
				observability.String("file", path),
				observability.Error("err", err))
			continue
		}
		text, _, err := extract.Extract(raw, v.Format, v.Options)
		if err != nil {
			log.Warn("malformed output file",
				observability.String("vendor", v.Name),
				observability.String("file", path),
				observability.Error("err", err))
			continue
		}
		texts[id] = text
	}
	return texts, nil
}

// Combine joins per-vendor collections over the sorted union of document
// ids. Missing entries become empty strings.
func Combine(vendors []Vendor, collections map[string]Collection) Table {
	ids := map[string]bool{}
	for _, c := range collections {
		for id := range c {
			ids[id] = true
		}
	}
	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	t := Table{Vendors: make([]string, 0, len(vendors))}
	for _, v := range vendors {
		t.Vendors = append(t.Vendors, v.Name)
	}
	for _, id := range sorted {
		row := Row{DocumentID: id, Texts: make([]string, len(vendors))}
		for i, v := range vendors {
			row.Texts[i] = collections[v.Name][id]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// documentID derives the document id from a vendor output path: the base
// name without extension, with a trailing _<n> page suffix removed.
func documentID(path string) string {
	stem := groundtruth.DocumentID(path)
	if stripped, ok := groundtruth.StripPageSuffix(stem); ok {
		return stripped
	}
	return stem
}

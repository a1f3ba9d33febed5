package aggregate

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tak-akashi/test-ocr-models/observability"
)

// Run aggregates every vendor under root and writes per-vendor and combined
// artifacts into outDir. When the vendor directories share dataset
// subdirectories, each dataset is aggregated into its own subdirectory of
// outDir; otherwise the root is treated as one flat corpus.
func Run(root, outDir string, vendors []Vendor, log observability.Logger) error {
	if log == nil {
		log = observability.NopLogger{}
	}

	datasets, err := DetectDatasets(root, vendors)
	if err != nil {
		return err
	}
	if len(datasets) == 0 {
		log.Info("no dataset subdirectories detected, aggregating flat corpus")
		return runDataset(root, outDir, "", vendors, log)
	}

	log.Info("datasets detected", observability.Int("count", len(datasets)))
	for _, name := range datasets {
		log.Info("aggregating dataset", observability.String("dataset", name))
		if err := runDataset(root, filepath.Join(outDir, name), name, vendors, log); err != nil {
			return err
		}
	}
	return nil
}

func runDataset(root, outDir, dataset string, vendors []Vendor, log observability.Logger) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	collections := map[string]Collection{}
	for _, v := range vendors {
		dir, ok := resolveVendorDir(root, v)
		if !ok {
			log.Warn("vendor directory not found", observability.String("vendor", v.Name))
			collections[v.Name] = Collection{}
			continue
		}
		if dataset != "" {
			dir = filepath.Join(dir, dataset)
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				log.Warn("vendor has no outputs for dataset",
					observability.String("vendor", v.Name),
					observability.String("dataset", dataset))
				collections[v.Name] = Collection{}
				continue
			}
		}

		texts, err := Collect(dir, v, log)
		if err != nil {
			return err
		}
		log.Info("vendor outputs collected",
			observability.String("vendor", v.Name),
			observability.Int("documents", len(texts)))
		collections[v.Name] = texts

		if err := writeVendorCSV(texts, filepath.Join(outDir, v.Name+"_texts.csv")); err != nil {
			return err
		}
		if err := writeVendorJSON(texts, filepath.Join(outDir, v.Name+"_texts.json")); err != nil {
			return err
		}
	}

	table := Combine(vendors, collections)
	if err := WriteCombinedCSV(table, filepath.Join(outDir, "combined_texts.csv")); err != nil {
		return err
	}
	return WriteCombinedJSON(table, filepath.Join(outDir, "combined_texts.json"))
}

func writeVendorCSV(texts Collection, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"filename", "text"}); err != nil {
		return err
	}
	for _, id := range sortedIDs(texts) {
		if err := w.Write([]string{id, texts[id]}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeVendorJSON(texts Collection, path string) error {
	type record struct {
		Filename string `json:"filename"`
		Text     string `json:"text"`
	}
	records := make([]record, 0, len(texts))
	for _, id := range sortedIDs(texts) {
		records = append(records, record{Filename: id, Text: texts[id]})
	}
	return writeJSON(records, path)
}

// WriteCombinedCSV writes the combined table with one text column per
// vendor, in table order.
func WriteCombinedCSV(t Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"filename"}, t.Vendors...)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := w.Write(append([]string{row.DocumentID}, row.Texts...)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteCombinedJSON writes the combined table as an array of objects with a
// "filename" key plus one key per vendor.
func WriteCombinedJSON(t Table, path string) error {
	records := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := map[string]string{"filename": row.DocumentID}
		for i, vendor := range t.Vendors {
			record[vendor] = row.Texts[i]
		}
		records = append(records, record)
	}
	return writeJSON(records, path)
}

func writeJSON(v any, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func sortedIDs(texts Collection) []string {
	ids := make([]string, 0, len(texts))
	for id := range texts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

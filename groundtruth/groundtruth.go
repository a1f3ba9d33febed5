// Package groundtruth loads the corpus ground-truth dataset and exposes
// lookup by document id. Document ids are the stem of the stored relative
// path: "cropped_images/batch_0_sample_0.png" becomes "batch_0_sample_0".
package groundtruth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrDataFormat marks a ground-truth file that is not a JSON array of
// {path, gt} objects. Fatal at the corpus level: evaluating against a
// half-parsed reference would produce misleading scores.
var ErrDataFormat = errors.New("ground truth data format")

type entry struct {
	Path string `json:"path"`
	GT   string `json:"gt"`
}

// Index is a read-only document id to transcription mapping, loaded once per
// evaluation run.
type Index struct {
	texts map[string]string
	// Duplicate path stems in the source file. Last entry wins on lookup;
	// the count is surfaced so dataset errors are not silently absorbed.
	duplicates int
}

// Load reads a ground-truth JSON file (array of {path, gt} objects) and
// builds the lookup index.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ground truth: %w", err)
	}

	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataFormat, path, err)
	}

	idx := &Index{texts: make(map[string]string, len(entries))}
	for _, e := range entries {
		if e.Path == "" {
			return nil, fmt.Errorf("%w: %s: entry missing path field", ErrDataFormat, path)
		}
		id := DocumentID(e.Path)
		if _, seen := idx.texts[id]; seen {
			idx.duplicates++
		}
		idx.texts[id] = e.GT
	}
	return idx, nil
}

// DocumentID derives the lookup key from a stored path: the filename with
// directory and extension stripped.
func DocumentID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// StripPageSuffix removes a trailing _<n> page index from a document stem
// ("doc1_0" to "doc1"). Vendors that emit one artifact per page append the
// index to the document id; both the evaluator and the aggregator strip it
// with this one rule so their ids cannot diverge.
func StripPageSuffix(stem string) (string, bool) {
	i := strings.LastIndexByte(stem, '_')
	if i <= 0 || i == len(stem)-1 {
		return "", false
	}
	for _, r := range stem[i+1:] {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return stem[:i], true
}

// Lookup returns the ground-truth text for id.
func (ix *Index) Lookup(id string) (string, bool) {
	text, ok := ix.texts[id]
	return text, ok
}

// Len returns the number of distinct document ids.
func (ix *Index) Len() int { return len(ix.texts) }

// Duplicates returns how many entries in the source file shared a document id
// with an earlier entry.
func (ix *Index) Duplicates() int { return ix.duplicates }

package evaluate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tak-akashi/test-ocr-models/extract"
	"github.com/tak-akashi/test-ocr-models/groundtruth"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func loadIndex(t *testing.T, dataset string) *groundtruth.Index {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gt.json")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o644))
	idx, err := groundtruth.Load(path)
	require.NoError(t, err)
	return idx
}

func TestRunMarkdownScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "hello   world\n")

	gt := loadIndex(t, `[{"path": "a.png", "gt": "hello world"}]`)
	results, err := Run(dir, gt, Config{Format: extract.FormatMarkdown}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "a", r.DocumentID)
	assert.Equal(t, "hello world", r.Predicted)
	assert.True(t, r.ExactMatch)
	assert.Equal(t, 0, r.EditDistance)
	assert.Equal(t, 0.0, r.CER)
}

func TestRunStripsPageSuffix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc1_0.json", `{"words": [
		{"content": "hi", "points": [[0,0],[10,0],[10,5],[0,5]]}
	]}`)

	gt := loadIndex(t, `[{"path": "x/doc1.png", "gt": "hi"}]`)
	results, err := Run(dir, gt, Config{Format: extract.FormatWordJSON}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "doc1", results[0].DocumentID)
	assert.True(t, results[0].ExactMatch)
}

func TestRunExactStemBeatsSuffixStripping(t *testing.T) {
	// Ids that themselves end in _<n> must not be mangled when the exact
	// stem is present in the index.
	dir := t.TempDir()
	writeFile(t, dir, "batch_0_sample_0.md", "text")

	gt := loadIndex(t, `[
		{"path": "cropped_images/batch_0_sample_0.png", "gt": "text"},
		{"path": "cropped_images/batch_0_sample.png", "gt": "wrong"}
	]`)
	results, err := Run(dir, gt, Config{Format: extract.FormatMarkdown}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "batch_0_sample_0", results[0].DocumentID)
	assert.Equal(t, "text", results[0].GroundTruth)
}

func TestRunSkipsMissingGroundTruth(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "unknown.md", "orphan output")

	gt := loadIndex(t, `[{"path": "other.png", "gt": "irrelevant"}]`)
	results, err := Run(dir, gt, Config{Format: extract.FormatMarkdown}, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRunSkipsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.json", `{"words": [{"content": "ok", "points": [[0,0],[1,0],[1,1],[0,1]]}]}`)
	writeFile(t, dir, "bad.json", "{definitely not json")

	gt := loadIndex(t, `[
		{"path": "good.png", "gt": "ok"},
		{"path": "bad.png", "gt": "whatever"}
	]`)
	results, err := Run(dir, gt, Config{Format: extract.FormatWordJSON}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "good", results[0].DocumentID)
}

func TestRunSortedOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", "two")
	writeFile(t, dir, "a.md", "one")
	writeFile(t, dir, "nested/c.md", "three")

	gt := loadIndex(t, `[
		{"path": "a.png", "gt": "one"},
		{"path": "b.png", "gt": "two"},
		{"path": "c.png", "gt": "three"}
	]`)
	results, err := Run(dir, gt, Config{Format: extract.FormatMarkdown}, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].DocumentID)
	assert.Equal(t, "b", results[1].DocumentID)
	assert.Equal(t, "nested/c.md", results[2].SourceFile)
}

func TestRunMinScoreConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.json", `{"words": [
		{"content": "keep", "points": [[0,0],[10,0],[10,5],[0,5]], "det_score": 0.9, "rec_score": 0.9},
		{"content": "drop", "points": [[0,10],[10,10],[10,15],[0,15]], "det_score": 0.1, "rec_score": 0.1}
	]}`)

	gt := loadIndex(t, `[{"path": "doc.png", "gt": "keep"}]`)
	cfg := Config{Format: extract.FormatWordJSON, Options: extract.Options{MinScore: 0.5}}
	results, err := Run(dir, gt, cfg, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].ExactMatch)
	assert.Equal(t, 1, results[0].WordCount)
}

func TestRunScoresOnlyFirstPage(t *testing.T) {
	// Multi-page vendors emit one artifact per page for a single document.
	// Only page zero may be scored, or sample counts and means inflate.
	dir := t.TempDir()
	writeFile(t, dir, "doc1_0.md", "page zero")
	writeFile(t, dir, "doc1_1.md", "page one")
	writeFile(t, dir, "doc1_2.md", "page two")

	gt := loadIndex(t, `[{"path": "doc1.png", "gt": "page zero"}]`)
	results, err := Run(dir, gt, Config{Format: extract.FormatMarkdown}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "doc1", results[0].DocumentID)
	assert.Equal(t, "doc1_0.md", results[0].SourceFile)
	assert.Equal(t, "page zero", results[0].Predicted)
	assert.True(t, results[0].ExactMatch)

	summary := Summarize(results)
	assert.Equal(t, 1, summary.TotalSamples)
	assert.Equal(t, 1.0, summary.Accuracy)
}

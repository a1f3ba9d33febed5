package rundb

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tak-akashi/test-ocr-models/evaluate"
	"github.com/tak-akashi/test-ocr-models/metrics"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndListRuns(t *testing.T) {
	store := openTestStore(t)

	results := []evaluate.Result{
		{DocumentID: "a", Predicted: "x", GroundTruth: "x", Score: metrics.Score{ExactMatch: true}},
		{DocumentID: "b", Predicted: "y", GroundTruth: "z", Score: metrics.Score{EditDistance: 1, CER: 1.0}},
	}
	summary := evaluate.Summarize(results)

	runID, err := store.RecordRun("yomitoku", "gt.json", results, summary)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	runs, err := store.ListRuns("")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	assert.Equal(t, "yomitoku", runs[0].Vendor)
	assert.Equal(t, 2, runs[0].TotalSamples)
	assert.Equal(t, 1, runs[0].ExactMatches)
	assert.InDelta(t, 0.5, runs[0].Accuracy, 1e-9)
	assert.Greater(t, runs[0].CreatedAt, int64(0))
}

func TestListRunsFiltersByVendor(t *testing.T) {
	store := openTestStore(t)

	results := []evaluate.Result{{DocumentID: "a", Score: metrics.Score{ExactMatch: true}}}
	summary := evaluate.Summarize(results)

	_, err := store.RecordRun("azure", "gt.json", results, summary)
	require.NoError(t, err)
	_, err = store.RecordRun("upstage", "gt.json", results, summary)
	require.NoError(t, err)

	runs, err := store.ListRuns("azure")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "azure", runs[0].Vendor)

	runs, err = store.ListRuns("")
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRunResults(t *testing.T) {
	store := openTestStore(t)

	results := []evaluate.Result{
		{DocumentID: "b", Predicted: "bb", GroundTruth: "bb", Score: metrics.Score{ExactMatch: true}},
		{DocumentID: "a", Predicted: "aa", GroundTruth: "ab", Score: metrics.Score{EditDistance: 1, CER: 0.5}},
	}
	runID, err := store.RecordRun("v", "gt.json", results, evaluate.Summarize(results))
	require.NoError(t, err)

	stored, err := store.RunResults(runID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "a", stored[0].DocumentID)
	assert.Equal(t, 0.5, stored[0].CER)
	assert.False(t, stored[0].ExactMatch)
	assert.True(t, stored[1].ExactMatch)
}

func TestRunResultsUnknownRun(t *testing.T) {
	store := openTestStore(t)
	stored, err := store.RunResults("nope")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRetryOnBusy(t *testing.T) {
	calls := 0
	err := retryOnBusy(func() error {
		calls++
		if calls < 3 {
			return errors.New("database is locked (5) (SQLITE_BUSY)")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	permanent := errors.New("constraint failed")
	calls = 0
	err = retryOnBusy(func() error {
		calls++
		return permanent
	})
	assert.Equal(t, permanent, err)
	assert.Equal(t, 1, calls)
}

package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tak-akashi/test-ocr-models/extract"
	"github.com/tak-akashi/test-ocr-models/metrics"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.TotalSamples)
	assert.Equal(t, 0.0, s.Accuracy)
	assert.Equal(t, 0.0, s.AvgCER)
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{
			Score:    metrics.Score{ExactMatch: true, EditDistance: 0, CER: 0.0, GroundTruthLength: 10},
			Metadata: extract.Metadata{WordCount: 4, AvgDetScore: 0.9},
		},
		{
			Score:    metrics.Score{ExactMatch: false, EditDistance: 2, CER: 0.2, GroundTruthLength: 10},
			Metadata: extract.Metadata{WordCount: 6, AvgDetScore: 0.7},
		},
		{
			Score: metrics.Score{ExactMatch: false, EditDistance: 4, CER: 0.4, GroundTruthLength: 10},
			// no word metadata: must not drag the confidence means down
		},
	}

	s := Summarize(results)
	assert.Equal(t, 3, s.TotalSamples)
	assert.Equal(t, 1, s.ExactMatches)
	assert.InDelta(t, 1.0/3.0, s.Accuracy, 1e-9)
	assert.InDelta(t, 0.2, s.AvgCER, 1e-9)
	assert.InDelta(t, 2.0, s.AvgEditDistance, 1e-9)
	assert.InDelta(t, 5.0, s.AvgWordCount, 1e-9)
	assert.InDelta(t, 0.8, s.AvgDetScore, 1e-9)
	assert.Equal(t, 0.0, s.AvgRecScore)
	assert.Equal(t, 0.0, s.AvgTableCount)
}

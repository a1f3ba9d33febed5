package evaluate

import "gonum.org/v1/gonum/stat"

// Summary aggregates a result list. It is recomputed from scratch on every
// report generation, never updated incrementally, so a report is always
// reproducible from its result list alone.
type Summary struct {
	TotalSamples    int     `json:"total_samples"`
	ExactMatches    int     `json:"exact_matches"`
	Accuracy        float64 `json:"accuracy"`
	AvgCER          float64 `json:"avg_cer"`
	AvgEditDistance float64 `json:"avg_edit_distance"`

	// Format-specific means, zero when the format carries no such data.
	AvgWordCount      float64 `json:"avg_word_count,omitempty"`
	AvgDetScore       float64 `json:"avg_det_score,omitempty"`
	AvgRecScore       float64 `json:"avg_rec_score,omitempty"`
	AvgParagraphCount float64 `json:"avg_paragraph_count,omitempty"`
	AvgTableCount     float64 `json:"avg_table_count,omitempty"`
}

// Summarize computes corpus-level statistics. Confidence means cover only
// documents that actually report confidences, so formats without scores do
// not drag the average to zero. All means over empty inputs are 0.0.
func Summarize(results []Result) Summary {
	s := Summary{TotalSamples: len(results)}
	if len(results) == 0 {
		return s
	}

	cers := make([]float64, 0, len(results))
	dists := make([]float64, 0, len(results))
	var words, paragraphs, tables []float64
	var detScores, recScores []float64

	for _, r := range results {
		if r.ExactMatch {
			s.ExactMatches++
		}
		cers = append(cers, r.CER)
		dists = append(dists, float64(r.EditDistance))
		if r.WordCount > 0 {
			words = append(words, float64(r.WordCount))
		}
		if r.ParagraphCount > 0 {
			paragraphs = append(paragraphs, float64(r.ParagraphCount))
		}
		if r.TableCount > 0 {
			tables = append(tables, float64(r.TableCount))
		}
		if r.AvgDetScore > 0 {
			detScores = append(detScores, r.AvgDetScore)
		}
		if r.AvgRecScore > 0 {
			recScores = append(recScores, r.AvgRecScore)
		}
	}

	s.Accuracy = float64(s.ExactMatches) / float64(s.TotalSamples)
	s.AvgCER = stat.Mean(cers, nil)
	s.AvgEditDistance = stat.Mean(dists, nil)
	s.AvgWordCount = meanOrZero(words)
	s.AvgParagraphCount = meanOrZero(paragraphs)
	s.AvgTableCount = meanOrZero(tables)
	s.AvgDetScore = meanOrZero(detScores)
	s.AvgRecScore = meanOrZero(recScores)
	return s
}

func meanOrZero(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

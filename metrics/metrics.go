// Package metrics scores a predicted transcription against ground truth.
// Scoring is pure and deterministic: both strings are canonicalized first so
// that encoding and whitespace differences never count as errors.
package metrics

import (
	"github.com/tak-akashi/test-ocr-models/textnorm"
)

// Score holds the comparison metrics for one document.
type Score struct {
	ExactMatch        bool    `json:"exact_match"`
	EditDistance      int     `json:"edit_distance"`
	CER               float64 `json:"cer"`
	PredictedLength   int     `json:"predicted_length"`
	GroundTruthLength int     `json:"ground_truth_length"`
}

// Compare normalizes both strings and computes exact match, Levenshtein edit
// distance, and character error rate. CER against an empty ground truth is
// defined as 0.0: there is nothing to get wrong, and the predicted length in
// the result keeps hallucinated output against blank references visible.
func Compare(predicted, groundTruth string) Score {
	pred := textnorm.Normalize(predicted)
	gt := textnorm.Normalize(groundTruth)

	dist := Levenshtein(pred, gt)
	gtLen := len([]rune(gt))

	cer := 0.0
	if gtLen > 0 {
		cer = float64(dist) / float64(gtLen)
	}

	return Score{
		ExactMatch:        pred == gt,
		EditDistance:      dist,
		CER:               cer,
		PredictedLength:   len([]rune(pred)),
		GroundTruthLength: gtLen,
	}
}

// Levenshtein returns the edit distance between a and b with unit cost for
// insertions, deletions and substitutions. Operates on runes so multi-byte
// characters count as single edits. Two-row dynamic programming keeps memory
// at O(min side) for long transcriptions.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

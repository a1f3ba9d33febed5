package extract

import (
	"sort"
	"strings"

	"github.com/tak-akashi/test-ocr-models/geo"
)

// Direction is the writing direction of a text fragment.
type Direction string

const (
	DirectionHorizontal Direction = "horizontal"
	DirectionVertical   Direction = "vertical"
)

// Fragment is a single positioned word as emitted by word-level OCR output.
type Fragment struct {
	Content   string      `json:"content"`
	Points    [][]float64 `json:"points"`
	Direction Direction   `json:"direction,omitempty"`
	DetScore  float64     `json:"det_score,omitempty"`
	RecScore  float64     `json:"rec_score,omitempty"`
}

// Polygon converts the raw point list to a geometry polygon, skipping
// malformed coordinate pairs.
func (f Fragment) Polygon() geo.Polygon {
	poly := make(geo.Polygon, 0, len(f.Points))
	for _, pt := range f.Points {
		if len(pt) < 2 {
			continue
		}
		poly = append(poly, geo.Point{X: pt[0], Y: pt[1]})
	}
	return poly
}

// OrderPolicy decides how the vertical and horizontal buckets concatenate on
// mixed-direction pages. The layouts this harness targets put vertical
// (Japanese column) text before the horizontal body, but that is a corpus
// convention, not a law.
type OrderPolicy int

const (
	// VerticalFirst emits vertical-direction text before horizontal text.
	VerticalFirst OrderPolicy = iota
	// HorizontalFirst emits horizontal-direction text first.
	HorizontalFirst
)

type placedFragment struct {
	content string
	leftX   float64
	topY    float64
	centerX float64
}

// Reconstruct orders positioned fragments into an approximate human reading
// order and concatenates their content with no separator. Horizontal text
// reads top-to-bottom then left-to-right; vertical text reads right-to-left
// by column, top-to-bottom within a column. Fragments with fewer than four
// polygon points are dropped. The result is independent of input order.
//
// This is a geometric heuristic, not layout analysis: multi-column horizontal
// layouts will interleave.
func Reconstruct(fragments []Fragment, policy OrderPolicy) string {
	var horizontal, vertical []placedFragment

	for _, f := range fragments {
		poly := f.Polygon()
		if !poly.Valid() {
			continue
		}
		pf := placedFragment{
			content: f.Content,
			leftX:   poly.LeftX(),
			topY:    poly.TopY(),
			centerX: poly.CenterX(),
		}
		if f.Direction == DirectionVertical {
			vertical = append(vertical, pf)
		} else {
			horizontal = append(horizontal, pf)
		}
	}

	// Ties beyond the geometric keys fall through to content so the order
	// never depends on how the input slice happened to be arranged.
	sort.Slice(horizontal, func(i, j int) bool {
		a, b := horizontal[i], horizontal[j]
		if a.topY != b.topY {
			return a.topY < b.topY
		}
		if a.leftX != b.leftX {
			return a.leftX < b.leftX
		}
		return a.content < b.content
	})
	sort.Slice(vertical, func(i, j int) bool {
		a, b := vertical[i], vertical[j]
		if a.centerX != b.centerX {
			return a.centerX > b.centerX
		}
		if a.topY != b.topY {
			return a.topY < b.topY
		}
		return a.content < b.content
	})

	var sb strings.Builder
	first, second := vertical, horizontal
	if policy == HorizontalFirst {
		first, second = horizontal, vertical
	}
	for _, pf := range first {
		sb.WriteString(pf.content)
	}
	for _, pf := range second {
		sb.WriteString(pf.content)
	}
	return sb.String()
}

// filterByScore keeps fragments whose detection and recognition confidence
// both meet the threshold.
func filterByScore(fragments []Fragment, minScore float64) []Fragment {
	if minScore <= 0 {
		return fragments
	}
	kept := make([]Fragment, 0, len(fragments))
	for _, f := range fragments {
		if f.DetScore >= minScore && f.RecScore >= minScore {
			kept = append(kept, f)
		}
	}
	return kept
}

// fragmentStats fills word count, direction counts and confidence statistics
// for a filtered fragment set.
func fragmentStats(fragments []Fragment) Metadata {
	meta := Metadata{WordCount: len(fragments)}
	if len(fragments) == 0 {
		return meta
	}

	meta.MinDetScore, meta.MinRecScore = fragments[0].DetScore, fragments[0].RecScore
	var sumDet, sumRec float64
	for _, f := range fragments {
		sumDet += f.DetScore
		sumRec += f.RecScore
		if f.DetScore < meta.MinDetScore {
			meta.MinDetScore = f.DetScore
		}
		if f.DetScore > meta.MaxDetScore {
			meta.MaxDetScore = f.DetScore
		}
		if f.RecScore < meta.MinRecScore {
			meta.MinRecScore = f.RecScore
		}
		if f.RecScore > meta.MaxRecScore {
			meta.MaxRecScore = f.RecScore
		}
		if f.Direction == DirectionVertical {
			meta.VerticalCount++
		} else {
			meta.HorizontalCount++
		}
	}
	meta.AvgDetScore = sumDet / float64(len(fragments))
	meta.AvgRecScore = sumRec / float64(len(fragments))
	return meta
}

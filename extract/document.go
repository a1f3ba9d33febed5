package extract

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Paragraph is a pre-ordered text block. The order field is vendor-assigned
// and used as-is; the vendor's layout mode emits "contents" where its OCR
// mode emits "content", so both spellings are accepted.
type Paragraph struct {
	Content  string `json:"content"`
	Contents string `json:"contents"`
	Order    int    `json:"order"`
}

func (p Paragraph) text() string {
	if p.Contents != "" {
		return p.Contents
	}
	return p.Content
}

// document is the superset of the structured JSON shapes produced by the
// supported vendors. Unknown fields are ignored.
type document struct {
	Paragraphs []Paragraph       `json:"paragraphs"`
	Tables     []json.RawMessage `json:"tables"`
	Figures    []json.RawMessage `json:"figures"`
	Words      []Fragment        `json:"words"`
	Pages      []page            `json:"pages"`
	Text       string            `json:"text"`
}

type page struct {
	Text string `json:"text"`
}

// ExtractParagraphJSON concatenates paragraph blocks in their declared order.
// Paragraphs with equal order keep their original sequence (stable sort,
// missing order defaults to zero). Documents without paragraphs fall back to
// word-level extraction.
func ExtractParagraphJSON(raw []byte, opts Options) (string, Metadata, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", Metadata{}, fmt.Errorf("parse paragraph json: %w", err)
	}

	if len(doc.Paragraphs) == 0 {
		text, meta, err := extractWords(doc, opts)
		meta.TableCount = len(doc.Tables)
		meta.FigureCount = len(doc.Figures)
		return text, meta, err
	}

	sorted := make([]Paragraph, len(doc.Paragraphs))
	copy(sorted, doc.Paragraphs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	var sb strings.Builder
	for _, p := range sorted {
		sb.WriteString(p.text())
	}

	meta := Metadata{
		ParagraphCount: len(doc.Paragraphs),
		TableCount:     len(doc.Tables),
		FigureCount:    len(doc.Figures),
	}
	return collapseWhitespace(sb.String()), meta, nil
}

// ExtractWordJSON reconstructs reading order from positioned words. Documents
// without words fall back to per-page texts, then to the top-level text field.
func ExtractWordJSON(raw []byte, opts Options) (string, Metadata, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", Metadata{}, fmt.Errorf("parse word json: %w", err)
	}
	return extractWords(doc, opts)
}

func extractWords(doc document, opts Options) (string, Metadata, error) {
	if len(doc.Words) > 0 {
		filtered := filterByScore(doc.Words, opts.MinScore)
		text := Reconstruct(filtered, opts.Order)
		return collapseWhitespace(text), fragmentStats(filtered), nil
	}

	if len(doc.Pages) > 0 {
		parts := make([]string, 0, len(doc.Pages))
		for _, pg := range doc.Pages {
			parts = append(parts, pg.Text)
		}
		return collapseWhitespace(strings.Join(parts, " ")), Metadata{}, nil
	}

	return collapseWhitespace(doc.Text), Metadata{}, nil
}

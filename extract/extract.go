// Package extract reduces heterogeneous vendor output formats to a single
// plain-text string per document. Formats that encode geometry instead of
// reading order (word-level JSON) go through reading-order reconstruction;
// formats that are already linear (markdown, HTML, paragraph JSON) are
// flattened in document order.
//
// No Unicode normalization happens here. Extracted text keeps the vendor's
// characters so it can be stored and inspected as-is; canonicalization is the
// metrics engine's job at comparison time.
package extract

import "fmt"

// Format identifies a vendor output encoding.
type Format string

const (
	// FormatMarkdown is plain markdown text (Azure Document Intelligence).
	FormatMarkdown Format = "markdown"
	// FormatHTML is arbitrary tag soup (Upstage layout mode).
	FormatHTML Format = "html"
	// FormatText is plain text with no markup.
	FormatText Format = "text"
	// FormatParagraphJSON is JSON with pre-ordered paragraph blocks plus
	// table/figure inventories (Yomitoku layout mode).
	FormatParagraphJSON Format = "json-paragraphs"
	// FormatWordJSON is JSON with positioned words, falling back to page
	// texts when no words are present (Yomitoku/Upstage OCR mode).
	FormatWordJSON Format = "json-words"
)

// ParseFormat validates a format name from configuration.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMarkdown, FormatHTML, FormatText, FormatParagraphJSON, FormatWordJSON:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// Glob returns the filename pattern for outputs in this format.
func (f Format) Glob() string {
	switch f {
	case FormatMarkdown:
		return "*.md"
	case FormatHTML:
		return "*.html"
	case FormatText:
		return "*.txt"
	default:
		return "*.json"
	}
}

// Metadata carries structural counts and confidence statistics useful for
// reporting. Fields are zero when not applicable to the source format.
type Metadata struct {
	WordCount       int     `json:"word_count,omitempty"`
	ParagraphCount  int     `json:"paragraph_count,omitempty"`
	TableCount      int     `json:"table_count,omitempty"`
	FigureCount     int     `json:"figure_count,omitempty"`
	HorizontalCount int     `json:"horizontal_count,omitempty"`
	VerticalCount   int     `json:"vertical_count,omitempty"`
	AvgDetScore     float64 `json:"avg_det_score,omitempty"`
	AvgRecScore     float64 `json:"avg_rec_score,omitempty"`
	MinDetScore     float64 `json:"min_det_score,omitempty"`
	MinRecScore     float64 `json:"min_rec_score,omitempty"`
	MaxDetScore     float64 `json:"max_det_score,omitempty"`
	MaxRecScore     float64 `json:"max_rec_score,omitempty"`
}

// Options tune format-specific extraction behavior.
type Options struct {
	// MinScore drops words whose detection or recognition confidence falls
	// below the threshold. Zero admits everything.
	MinScore float64
	// Order selects the concatenation policy for mixed-direction pages.
	Order OrderPolicy
	// StripMarkdown parses markdown and flattens it to text, discarding
	// heading markers and emphasis syntax, instead of treating the source as
	// already-linear text.
	StripMarkdown bool
}

// Extract converts one raw vendor output into plain text plus structural
// metadata using the extractor for the declared format.
func Extract(raw []byte, format Format, opts Options) (string, Metadata, error) {
	switch format {
	case FormatMarkdown:
		return ExtractMarkdown(string(raw), opts.StripMarkdown), Metadata{}, nil
	case FormatHTML:
		return ExtractHTML(string(raw))
	case FormatText:
		return collapseWhitespace(string(raw)), Metadata{}, nil
	case FormatParagraphJSON:
		return ExtractParagraphJSON(raw, opts)
	case FormatWordJSON:
		return ExtractWordJSON(raw, opts)
	}
	return "", Metadata{}, fmt.Errorf("unknown format %q", format)
}

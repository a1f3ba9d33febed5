package extract

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ExtractMarkdown flattens markdown output to a single line. Markdown is
// already linear text, so the default path only collapses whitespace; the
// heading markers and emphasis syntax the vendor emitted stay part of the
// prediction. With stripMarkup set, the source is parsed and only the text
// content of each block is kept.
func ExtractMarkdown(source string, stripMarkup bool) string {
	if !stripMarkup {
		return collapseWhitespace(source)
	}

	md := goldmark.New()
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	var sb strings.Builder
	walkMarkdown(&sb, doc, src)
	return collapseWhitespace(sb.String())
}

func walkMarkdown(sb *strings.Builder, node ast.Node, source []byte) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Heading:
			writeBlockText(sb, n, source)
		case *ast.Paragraph:
			writeBlockText(sb, n, source)
		case *ast.TextBlock:
			// Tight list items wrap their inline text in a TextBlock.
			writeBlockText(sb, n, source)
		case *ast.FencedCodeBlock:
			for i := 0; i < n.Lines().Len(); i++ {
				seg := n.Lines().At(i)
				sb.Write(seg.Value(source))
				sb.WriteByte(' ')
			}
		case *ast.CodeBlock:
			for i := 0; i < n.Lines().Len(); i++ {
				seg := n.Lines().At(i)
				sb.Write(seg.Value(source))
				sb.WriteByte(' ')
			}
		default:
			// Lists, blockquotes and tables nest their text inside child
			// blocks; recurse and let the block cases above collect it.
			walkMarkdown(sb, child, source)
		}
	}
}

func writeBlockText(sb *strings.Builder, node ast.Node, source []byte) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
			continue
		}
		sb.WriteString(string(child.Text(source)))
	}
	sb.WriteByte(' ')
}

// collapseWhitespace folds every whitespace run to a single space and trims.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

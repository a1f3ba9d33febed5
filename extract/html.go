package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ExtractHTML strips all markup from an HTML document and returns the text
// node content in document order with whitespace collapsed. Script and style
// subtrees are dropped entirely, contents included.
func ExtractHTML(source string) (string, Metadata, error) {
	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return "", Metadata{}, err
	}

	var sb strings.Builder
	var meta Metadata
	walkHTML(&sb, &meta, doc)
	return collapseWhitespace(sb.String()), meta, nil
}

func walkHTML(sb *strings.Builder, meta *Metadata, n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style:
			return
		case atom.P:
			meta.ParagraphCount++
		case atom.Table:
			meta.TableCount++
		case atom.Figure, atom.Img:
			meta.FigureCount++
		}
	}
	if n.Type == html.TextNode {
		// Text nodes concatenate with no separator: inline markup like
		// <b>spl</b>it must not grow spaces the page never had. Block
		// boundaries in real vendor output carry their own newlines.
		sb.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkHTML(sb, meta, c)
	}
}

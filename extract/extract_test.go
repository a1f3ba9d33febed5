package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"markdown", "html", "text", "json-paragraphs", "json-words"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), f)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestFormatGlob(t *testing.T) {
	assert.Equal(t, "*.md", FormatMarkdown.Glob())
	assert.Equal(t, "*.html", FormatHTML.Glob())
	assert.Equal(t, "*.txt", FormatText.Glob())
	assert.Equal(t, "*.json", FormatParagraphJSON.Glob())
	assert.Equal(t, "*.json", FormatWordJSON.Glob())
}

func TestExtractMarkdownPlain(t *testing.T) {
	text, meta, err := Extract([]byte("# Title\n\nhello   world\n"), FormatMarkdown, Options{})
	require.NoError(t, err)
	assert.Equal(t, "# Title hello world", text)
	assert.Equal(t, Metadata{}, meta)
}

func TestExtractMarkdownStripped(t *testing.T) {
	src := "# Title\n\nSome **bold** text.\n\n- item one\n- item two\n"
	text, _, err := Extract([]byte(src), FormatMarkdown, Options{StripMarkdown: true})
	require.NoError(t, err)
	assert.Equal(t, "Title Some bold text. item one item two", text)
}

func TestExtractHTML(t *testing.T) {
	src := `<html><head><style>body { color: red }</style>
<script>var hidden = "secret";</script></head>
<body><p>first   paragraph</p>
<p>spl<b>it</b> word</p>
<table><tr><td>cell</td></tr></table></body></html>`

	text, meta, err := Extract([]byte(src), FormatHTML, Options{})
	require.NoError(t, err)
	assert.Equal(t, "first paragraph split word cell", text)
	assert.NotContains(t, text, "secret")
	assert.NotContains(t, text, "color")
	assert.Equal(t, 2, meta.ParagraphCount)
	assert.Equal(t, 1, meta.TableCount)
}

func TestExtractText(t *testing.T) {
	text, _, err := Extract([]byte("  plain\ttext \n here "), FormatText, Options{})
	require.NoError(t, err)
	assert.Equal(t, "plain text here", text)
}

func TestExtractUnknownFormat(t *testing.T) {
	_, _, err := Extract(nil, Format("bogus"), Options{})
	assert.Error(t, err)
}

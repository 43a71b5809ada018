package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	renderhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/frontmatter"
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/models"
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/schema"
)

func newEngine() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		// Cells carry <br> line breaks and metadata sits in HTML comments.
		goldmark.WithRendererOptions(renderhtml.WithUnsafe()),
	)
}

// HTML renders the canonical markdown of wb as an HTML fragment. A
// frontmatter header is replaced by a level-1 heading with the title.
func HTML(wb models.Workbook, s schema.MultiTableSchema) ([]byte, error) {
	text := wb.ToMarkdown(s)
	if _, body, _, ok := frontmatter.Extract(text); ok {
		text = "# " + wb.Name + "\n" + body
	}

	var buf bytes.Buffer
	if err := newEngine().Convert([]byte(text), &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

// Document wraps an HTML fragment in a standalone page.
func Document(title string, body []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	buf.WriteString(html.EscapeString(title))
	buf.WriteString("</title>\n</head>\n<body>\n")
	buf.Write(body)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}

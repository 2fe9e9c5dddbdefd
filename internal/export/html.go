package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/qbexport/internal/question"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// HTMLWriter renders the question table as a standalone HTML page.
type HTMLWriter struct{}

func (h *HTMLWriter) ContentType() string { return "text/html; charset=utf-8" }

func (h *HTMLWriter) Extension() string { return "html" }

func (h *HTMLWriter) Write(w io.Writer, records []question.Record) error {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Table),
		// Cleaned fields carry <strong> and <br>.
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)

	var body bytes.Buffer
	if err := md.Convert([]byte(MarkdownTable(records)), &body); err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Questions</title>\n</head>\n<body>\n%s</body>\n</html>\n", body.String())
	return err
}

// MarkdownTable renders records as a GFM table.
func MarkdownTable(records []question.Record) string {
	cols := question.Columns(records)
	var sb strings.Builder

	writeRow := func(cells []string) {
		sb.WriteString("|")
		for _, c := range cells {
			sb.WriteString(" ")
			sb.WriteString(escapeMarkdown(c))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(cols)
	sb.WriteString("|")
	for range cols {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")
	for _, row := range question.Rows(records, cols) {
		writeRow(row)
	}
	return sb.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	`|`, `\|`,
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	`[`, `\[`,
	`]`, `\]`,
	"\n", " ",
)

// escapeMarkdown keeps LaTeX intact through Markdown rendering. Angle
// brackets are left alone so inline HTML survives.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

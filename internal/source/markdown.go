package source

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownReader handles Markdown notes that keep the question bank in
// fenced code blocks. Blocks tagged latex or tex are concatenated in
// order; when there are none, untagged blocks are used instead.
type MarkdownReader struct{}

func (p *MarkdownReader) Read(r io.Reader, filename string) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var tagged, untagged []string
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		body := codeBlockText(block, src)
		switch strings.ToLower(string(block.Language(src))) {
		case "latex", "tex":
			tagged = append(tagged, body)
		case "":
			untagged = append(untagged, body)
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return "", err
	}

	if len(tagged) == 0 {
		tagged = untagged
	}
	return strings.Join(tagged, "\n"), nil
}

func codeBlockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return buf.String()
}

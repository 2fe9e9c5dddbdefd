package export

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Run is a styled span of a cleaned field.
type Run struct {
	Text  string
	Bold  bool
	Break bool // line break; Text is empty
}

// markupRe matches the only markup the cleaners emit.
var markupRe = regexp.MustCompile(`(?i)</?strong>|<br\s*/?>`)

// Runs splits a cleaned field into styled runs. Only <strong> and <br>
// are markup; every other byte, including a bare '<' or '&' in math, is
// text.
func Runs(field string) []Run {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(escapeText(field)), body)
	if err != nil {
		return []Run{{Text: field}}
	}

	var runs []Run
	var walk func(n *html.Node, bold bool)
	walk = func(n *html.Node, bold bool) {
		switch n.Type {
		case html.TextNode:
			if n.Data != "" {
				runs = append(runs, Run{Text: n.Data, Bold: bold})
			}
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Br:
				runs = append(runs, Run{Break: true})
				return
			case atom.Strong, atom.B:
				bold = true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, bold)
		}
	}
	for _, n := range nodes {
		walk(n, false)
	}
	return runs
}

// escapeText HTML-escapes everything between markup tokens.
func escapeText(field string) string {
	var sb strings.Builder
	last := 0
	for _, loc := range markupRe.FindAllStringIndex(field, -1) {
		sb.WriteString(html.EscapeString(field[last:loc[0]]))
		sb.WriteString(field[loc[0]:loc[1]])
		last = loc[1]
	}
	sb.WriteString(html.EscapeString(field[last:]))
	return sb.String()
}

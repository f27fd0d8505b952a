package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/Lexamplify/lexamplify/internal/doctree"
)

// MarkdownParser handles Markdown files using goldmark. Headings map to
// heading nodes at their source level; every other block becomes a
// paragraph node.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	root := md.Parser().Parse(reader)

	content := doctree.Doc()
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := strings.TrimSpace(string(node.Text(src)))
			if title != "" {
				content.Content = append(content.Content, headingNode(node.Level, title))
			}
		default:
			t := blockText(n, src)
			if t != "" {
				content.Content = append(content.Content, paragraphNode(t))
			}
		}
	}

	return &Document{Title: titleFromFilename(filename), Content: content}, nil
}

// blockText gets the text content of a goldmark AST node. Blocks with
// source segments read them directly; everything else collects inline text.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			part := blockText(c, src)
			if part != "" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
				buf.WriteString(part)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

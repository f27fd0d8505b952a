package parser

import (
	"strings"
	"testing"

	"github.com/Lexamplify/lexamplify/internal/doctree"
)

func TestMarkdownParser_HeadingsAndParagraphs(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

## Section B

Section B content.
`
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", doc.Title)
	}

	nodes := doc.Content.Content
	if len(nodes) != 6 {
		t.Fatalf("expected 6 nodes, got %d", len(nodes))
	}

	wantTypes := []string{
		doctree.TypeHeading, doctree.TypeParagraph,
		doctree.TypeHeading, doctree.TypeParagraph,
		doctree.TypeHeading, doctree.TypeParagraph,
	}
	wantText := []string{
		"Title", "Intro text.",
		"Section A", "Section A content.",
		"Section B", "Section B content.",
	}
	for i := range nodes {
		if nodes[i].Type != wantTypes[i] {
			t.Errorf("node[%d]: expected type %q, got %q", i, wantTypes[i], nodes[i].Type)
		}
		if got := doctree.ExtractText(nodes[i]); got != wantText[i] {
			t.Errorf("node[%d]: expected text %q, got %q", i, wantText[i], got)
		}
	}

	if level := nodes[0].Attrs["level"]; level != 1 {
		t.Errorf("expected h1 level 1, got %v", level)
	}
	if level := nodes[2].Attrs["level"]; level != 2 {
		t.Errorf("expected h2 level 2, got %v", level)
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	input := "Just some plain text.\n\nSecond block."
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	nodes := doc.Content.Content
	if len(nodes) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(nodes))
	}
	for _, n := range nodes {
		if n.Type != doctree.TypeParagraph {
			t.Errorf("expected paragraph, got %q", n.Type)
		}
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Content.Content) != 0 {
		t.Errorf("expected no nodes, got %d", len(doc.Content.Content))
	}
}

func TestHTMLParser_HeadingsAndContent(t *testing.T) {
	input := `<html><head><title>Agreement</title></head><body>
<h1>Terms</h1>
<p>First clause.</p>
<h2>Payment</h2>
<p>Second clause.</p>
<script>ignore();</script>
</body></html>`

	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Agreement" {
		t.Errorf("expected title from <title>, got %q", doc.Title)
	}

	nodes := doc.Content.Content
	if len(nodes) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(nodes))
	}
	if nodes[0].Type != doctree.TypeHeading || doctree.ExtractText(nodes[0]) != "Terms" {
		t.Errorf("unexpected first node: %q %q", nodes[0].Type, doctree.ExtractText(nodes[0]))
	}
	if doctree.ExtractText(nodes[1]) != "First clause." {
		t.Errorf("unexpected paragraph: %q", doctree.ExtractText(nodes[1]))
	}
	for _, n := range nodes {
		if strings.Contains(doctree.ExtractText(n), "ignore") {
			t.Error("script content leaked into document")
		}
	}
}

func TestCSVParser_RowsBecomeParagraphs(t *testing.T) {
	input := "name,amount\nAlpha,100\nBeta,200\n"
	p := &CSVParser{}
	doc, err := p.Parse(strings.NewReader(input), "ledger.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	nodes := doc.Content.Content
	if len(nodes) != 3 {
		t.Fatalf("expected heading plus 2 rows, got %d", len(nodes))
	}
	if nodes[0].Type != doctree.TypeHeading {
		t.Errorf("expected leading heading, got %q", nodes[0].Type)
	}
	if got := doctree.ExtractText(nodes[1]); got != "name: Alpha, amount: 100" {
		t.Errorf("unexpected row text: %q", got)
	}
}

func TestForFile(t *testing.T) {
	for _, name := range []string{"a.txt", "b.md", "c.csv", "d.html", "e.pdf", "f.docx"} {
		if _, err := ForFile(name); err != nil {
			t.Errorf("ForFile(%q): %v", name, err)
		}
	}
	if _, err := ForFile("archive.zip"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if IsSupportedExtension("archive.zip") {
		t.Error("zip should not be supported")
	}
}

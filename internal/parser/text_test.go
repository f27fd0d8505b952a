package parser

import (
	"strings"
	"testing"

	"github.com/Lexamplify/lexamplify/internal/doctree"
)

func TestTextParser_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	if doc.Content.Type != doctree.TypeDoc {
		t.Fatalf("expected doc root, got %q", doc.Content.Type)
	}
	if len(doc.Content.Content) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(doc.Content.Content))
	}

	want := []string{
		"First paragraph line one.\nFirst paragraph line two.",
		"Second paragraph.",
		"Third paragraph.",
	}
	for i, w := range want {
		node := doc.Content.Content[i]
		if node.Type != doctree.TypeParagraph {
			t.Errorf("child[%d]: expected paragraph, got %q", i, node.Type)
		}
		if got := doctree.ExtractText(node); got != w {
			t.Errorf("child[%d]: expected %q, got %q", i, w, got)
		}
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", doc.Title)
	}
	if doc.Content.Content == nil {
		t.Fatal("expected non-nil content array")
	}
	if len(doc.Content.Content) != 0 {
		t.Errorf("expected 0 paragraphs for empty input, got %d", len(doc.Content.Content))
	}
}

func TestTextParser_SingleLine(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader("Hello world"), "single.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Content.Content) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(doc.Content.Content))
	}
	if got := doctree.ExtractText(doc.Content); got != "Hello world" {
		t.Errorf("expected %q, got %q", "Hello world", got)
	}
}

func TestTextParser_MultipleBlankLines(t *testing.T) {
	// Multiple consecutive blank lines should not produce empty paragraphs.
	input := "Para one.\n\n\n\nPara two."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Content.Content) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(doc.Content.Content))
	}
}

func TestTextParser_WhitespaceOnlyLines(t *testing.T) {
	// Lines with only whitespace should be treated as blank.
	input := "Para one.\n   \nPara two."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Content.Content) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(doc.Content.Content))
	}
}

// Package parser converts uploaded files into editor document trees so
// imported material can be edited and run through the AI pipeline like any
// native document.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Lexamplify/lexamplify/internal/doctree"
)

// Document is a parsed upload: a display title and the full editor tree.
type Document struct {
	Title   string
	Content *doctree.Node
}

// Parser converts raw file bytes into an editor document.
type Parser interface {
	Parse(r io.Reader, filename string) (*Document, error)
}

// SupportedExtensions lists file extensions this service can import.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func paragraphNode(text string) *doctree.Node {
	return doctree.Paragraph(doctree.TextLeaf(text))
}

func headingNode(level int, text string) *doctree.Node {
	return doctree.Heading(level, doctree.TextLeaf(text))
}

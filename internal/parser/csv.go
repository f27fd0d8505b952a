package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/Lexamplify/lexamplify/internal/doctree"
)

// CSVParser handles CSV files. Each data row becomes a paragraph of
// "header: value" pairs under a heading naming the source file.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	title := titleFromFilename(filename)
	content := doctree.Doc()
	if len(records) == 0 {
		return &Document{Title: title, Content: content}, nil
	}

	headers := records[0]
	content.Content = append(content.Content, headingNode(1, title))

	for _, row := range records[1:] {
		var text strings.Builder
		for j, cell := range row {
			if j > 0 {
				text.WriteString(", ")
			}
			if j < len(headers) {
				text.WriteString(headers[j] + ": " + cell)
			} else {
				text.WriteString(cell)
			}
		}
		if text.Len() > 0 {
			content.Content = append(content.Content, paragraphNode(text.String()))
		}
	}

	return &Document{Title: title, Content: content}, nil
}

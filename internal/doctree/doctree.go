package doctree

import "encoding/json"

// Node types that carry special meaning in the editor dialect.
const (
	TypeDoc       = "doc"
	TypeParagraph = "paragraph"
	TypeText      = "text"
	TypeHeading   = "heading"
)

// Node is a recursive ProseMirror-style document fragment. Container nodes
// carry their children in Content in reading order; text leaves carry Text
// and have no Content.
type Node struct {
	Type    string         `json:"type,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
	Content []*Node        `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
}

// Mark is an inline style tag on a text leaf (bold, textStyle, ...).
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// MarshalJSON emits "content" whenever the slice is non-nil, including when
// it is empty. A doc root always serializes with a content array; leaves
// with nil Content omit the field entirely.
func (n Node) MarshalJSON() ([]byte, error) {
	type wire struct {
		Type    string          `json:"type,omitempty"`
		Attrs   map[string]any  `json:"attrs,omitempty"`
		Marks   []Mark          `json:"marks,omitempty"`
		Content json.RawMessage `json:"content,omitempty"`
		Text    string          `json:"text,omitempty"`
	}
	w := wire{Type: n.Type, Attrs: n.Attrs, Marks: n.Marks, Text: n.Text}
	if n.Content != nil {
		b, err := json.Marshal(n.Content)
		if err != nil {
			return nil, err
		}
		w.Content = b
	}
	return json.Marshal(w)
}

// Doc wraps children in a document root. Content is never nil.
func Doc(children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Type: TypeDoc, Content: children}
}

// Paragraph builds a paragraph with the editor's default attributes.
func Paragraph(children ...*Node) *Node {
	return &Node{
		Type:    TypeParagraph,
		Attrs:   map[string]any{"lineHeight": "1.5", "textAlign": "left"},
		Content: children,
	}
}

// Heading builds a heading at the given level, clamped to 1..6.
func Heading(level int, children ...*Node) *Node {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return &Node{
		Type:    TypeHeading,
		Attrs:   map[string]any{"level": level, "textAlign": "left"},
		Content: children,
	}
}

// TextLeaf builds a text node with no marks.
func TextLeaf(text string) *Node {
	return &Node{Type: TypeText, Text: text, Marks: []Mark{}}
}

// ExtractText concatenates every text leaf depth-first, left to right.
// Nodes with neither text nor children contribute nothing. Document trees
// are acyclic by construction, so plain recursion terminates.
func ExtractText(n *Node) string {
	if n == nil {
		return ""
	}
	if n.Type == TypeText && n.Text != "" {
		return n.Text
	}
	var out string
	for _, c := range n.Content {
		out += ExtractText(c)
	}
	return out
}

// SpliceText returns a copy of the tree with every text leaf's text replaced
// by s. Node types, attributes, marks, and nesting are preserved unchanged.
// Used by the rephrase fallback, which produces a single flat string.
func SpliceText(n *Node, s string) *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Type:  n.Type,
		Attrs: n.Attrs,
		Marks: n.Marks,
		Text:  n.Text,
	}
	if n.Type == TypeText && n.Text != "" {
		out.Text = s
	}
	if n.Content != nil {
		out.Content = make([]*Node, 0, len(n.Content))
		for _, c := range n.Content {
			out.Content = append(out.Content, SpliceText(c, s))
		}
	}
	return out
}
